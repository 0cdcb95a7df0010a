package cluster

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DIEGUS15/readiego-book-recommender/internal/models"
)

func startServer(t *testing.T, scan ScanFunc) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	srv := &Server{NodeID: "n1", Scan: scan, Logger: zerolog.Nop()}
	go func() {
		defer close(done)
		_ = srv.Serve(ctx, ln)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return ln.Addr().String()
}

func TestSendTask_RoundTrip(t *testing.T) {
	got := make(chan ShardTask, 1)
	addr := startServer(t, func(_ context.Context, bookID string, shardID, shards int) ([]models.ScoredID, error) {
		got <- ShardTask{BookID: bookID, ShardID: shardID, Shards: shards}
		return []models.ScoredID{{ID: "bC", Value: 0.5}, {ID: "bB", Value: 1.0 / 3.0}}, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := SendTask(ctx, addr, &ShardTask{BookID: "bA", ShardID: 1, Shards: 3})
	require.NoError(t, err)

	assert.Equal(t, ShardTask{BookID: "bA", ShardID: 1, Shards: 3}, <-got)
	assert.Equal(t, 1, resp.ShardID)
	assert.Equal(t, "n1", resp.NodeID)
	assert.Equal(t, []models.ScoredID{{ID: "bC", Value: 0.5}, {ID: "bB", Value: 1.0 / 3.0}}, resp.Partials)
}

func TestSendTask_RemoteError(t *testing.T) {
	addr := startServer(t, func(context.Context, string, int, int) ([]models.ScoredID, error) {
		return nil, errors.New("graph not loaded")
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := SendTask(ctx, addr, &ShardTask{BookID: "bA", Shards: 1})
	assert.Nil(t, resp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "graph not loaded")
}

func TestSendTask_Unreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err = SendTask(ctx, addr, &ShardTask{BookID: "bA", Shards: 1})
	assert.Error(t, err)
}
