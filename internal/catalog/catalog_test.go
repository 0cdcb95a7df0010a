package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DIEGUS15/readiego-book-recommender/internal/models"
)

func TestMemory(t *testing.T) {
	m := NewMemory(
		[]models.Book{
			{ISBN: "1", Title: "First"},
			{ISBN: "1", Title: "Duplicate"},
			{ISBN: "2", Title: "Second"},
		},
		[]models.User{{UserID: "u1", Location: "lima, peru"}},
	)
	ctx := context.Background()

	b, err := m.Book(ctx, "1")
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, "First", b.Title)

	b, err = m.Book(ctx, "404")
	require.NoError(t, err)
	assert.Nil(t, b)

	u, err := m.User(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "lima, peru", u.Location)

	u, err = m.User(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestMemory_ReturnsCopies(t *testing.T) {
	m := NewMemory([]models.Book{{ISBN: "1", Title: "First"}}, nil)

	b, _ := m.Book(context.Background(), "1")
	b.Title = "changed"

	again, _ := m.Book(context.Background(), "1")
	assert.Equal(t, "First", again.Title)
}

var _ Catalog = (*Memory)(nil)
var _ Catalog = (*Mongo)(nil)
