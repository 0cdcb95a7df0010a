package cluster

import (
	"bufio"
	"context"
	"errors"
	"net"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/DIEGUS15/readiego-book-recommender/internal/models"
)

// ScanFunc calcula los parciales de un shard.
type ScanFunc func(ctx context.Context, bookID string, shardID, shards int) ([]models.ScoredID, error)

// Server atiende tareas de shard, una por conexión.
type Server struct {
	NodeID string
	Scan   ScanFunc
	Logger zerolog.Logger
}

// Serve acepta conexiones hasta que ctx se cancela o el listener se cierra.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.Logger.Warn().Err(err).Msg("accept error")
			continue
		}
		go s.handleConn(ctx, conn)
	}
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	dec := json.NewDecoder(bufio.NewReader(conn))
	var task ShardTask
	if err := dec.Decode(&task); err != nil {
		s.Logger.Warn().Err(err).Msg("decode task error")
		return
	}

	log := s.Logger.With().
		Str("book_id", task.BookID).
		Int("shard", task.ShardID).
		Int("shards", task.Shards).
		Logger()
	log.Debug().Msg("task received")

	start := time.Now()
	resp := ShardResponse{ShardID: task.ShardID, NodeID: s.NodeID}

	partials, err := s.Scan(ctx, task.BookID, task.ShardID, task.Shards)
	if err != nil {
		log.Error().Err(err).Msg("compute error")
		resp.Error = err.Error()
	} else {
		resp.Partials = partials
	}

	log.Info().
		Int("partials", len(resp.Partials)).
		Dur("elapsed", time.Since(start)).
		Msg("task completed")

	if err := json.NewEncoder(conn).Encode(&resp); err != nil {
		log.Warn().Err(err).Msg("encode resp error")
	}
}
