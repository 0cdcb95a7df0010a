package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	BookID string  `json:"book_id"`
	Score  float64 `json:"score"`
}

func newTestRedis(t *testing.T, ttl time.Duration) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewRedis(context.Background(), mr.Addr(), "", ttl)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestRedis_SetGetJSON(t *testing.T) {
	c, _ := newTestRedis(t, time.Minute)
	ctx := context.Background()

	in := []payload{{BookID: "bC", Score: 1.67}}
	require.NoError(t, c.SetJSON(ctx, "rec:user:u1:n:5", in))

	var out []payload
	ok, err := c.GetJSON(ctx, "rec:user:u1:n:5", &out)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, in, out)
}

func TestRedis_Miss(t *testing.T) {
	c, _ := newTestRedis(t, time.Minute)

	var out []payload
	ok, err := c.GetJSON(context.Background(), "missing", &out)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedis_TTLExpires(t *testing.T) {
	c, mr := newTestRedis(t, 30*time.Second)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "k", payload{BookID: "b"}))
	mr.FastForward(31 * time.Second)

	var out payload
	ok, err := c.GetJSON(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedis_CorruptValue(t *testing.T) {
	c, mr := newTestRedis(t, time.Minute)
	require.NoError(t, mr.Set("k", "{not json"))

	var out payload
	ok, err := c.GetJSON(context.Background(), "k", &out)
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestRedis_NilIsDisabled(t *testing.T) {
	c, err := NewRedis(context.Background(), "", "", time.Minute)
	require.NoError(t, err)
	require.Nil(t, c)

	var out payload
	ok, err := c.GetJSON(context.Background(), "k", &out)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, c.SetJSON(context.Background(), "k", out))
	assert.NoError(t, c.Close())
}

func TestNewRedis_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	c, err := NewRedis(context.Background(), addr, "", time.Minute)
	assert.Error(t, err)
	assert.Nil(t, c)
}
