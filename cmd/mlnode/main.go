package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/DIEGUS15/readiego-book-recommender/internal/cluster"
	"github.com/DIEGUS15/readiego-book-recommender/internal/config"
	"github.com/DIEGUS15/readiego-book-recommender/internal/dataset"
	"github.com/DIEGUS15/readiego-book-recommender/internal/graph"
	"github.com/DIEGUS15/readiego-book-recommender/internal/logging"
	"github.com/DIEGUS15/readiego-book-recommender/internal/recommend"
)

// Nodo ML: carga el mismo Ratings.csv (misma muestra, misma semilla) que la API
// y calcula shards de similitud entre libros.
func main() {
	if err := run(); err != nil {
		boot := logging.New(logging.Config{})
		boot.Fatal().Err(err).Msg("ml node stopped")
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load(logging.New(logging.Config{}))
	logger := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}).
		With().Str("node_id", cfg.NodeID).Logger()

	loader := &dataset.Loader{Dir: cfg.DataDir, SampleSize: cfg.SampleSize, Logger: logger}
	ratings, err := loader.LoadRatings()
	if err != nil {
		return err
	}

	g := graph.New()
	g.Load(ratings)

	engine, err := recommend.NewEngine(g, recommend.Config{
		MaxCandidates: cfg.MaxCandidates,
		Workers:       cfg.Workers,
	}, logger)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", cfg.MLNodeAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.MLNodeAddr, err)
	}

	logger.Info().
		Str("addr", cfg.MLNodeAddr).
		Int("books", g.BookCount()).
		Int("ratings", g.RatingCount()).
		Msg("ml node listening")

	srv := &cluster.Server{NodeID: cfg.NodeID, Scan: engine.ScanBooksShard, Logger: logger}
	return srv.Serve(ctx, ln)
}
