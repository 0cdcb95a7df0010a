package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	_ "github.com/DIEGUS15/readiego-book-recommender/docs" // swagger docs

	"github.com/DIEGUS15/readiego-book-recommender/internal/cache"
	"github.com/DIEGUS15/readiego-book-recommender/internal/catalog"
	"github.com/DIEGUS15/readiego-book-recommender/internal/config"
	"github.com/DIEGUS15/readiego-book-recommender/internal/dataset"
	"github.com/DIEGUS15/readiego-book-recommender/internal/db"
	"github.com/DIEGUS15/readiego-book-recommender/internal/graph"
	"github.com/DIEGUS15/readiego-book-recommender/internal/handler"
	"github.com/DIEGUS15/readiego-book-recommender/internal/logging"
	"github.com/DIEGUS15/readiego-book-recommender/internal/recommend"
	"github.com/DIEGUS15/readiego-book-recommender/internal/repository"
	"github.com/DIEGUS15/readiego-book-recommender/internal/service"
)

// @title Readiego Book Recommender API
// @version 1.0
// @description Recomendaciones de libros sobre un grafo bipartito usuario-libro (similitud de Jaccard).
// @host localhost:5000
// @BasePath /
func main() {
	if err := run(); err != nil {
		// el logger definitivo depende de la config; acá basta uno por defecto
		boot := logging.New(logging.Config{})
		boot.Fatal().Err(err).Msg("api stopped")
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load(logging.New(logging.Config{}))
	logger := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	// ============================
	// Dataset y grafo
	// ============================
	loader := &dataset.Loader{Dir: cfg.DataDir, SampleSize: cfg.SampleSize, Logger: logger}
	ds, err := loader.LoadAll()
	if err != nil {
		return err
	}

	g := graph.New()
	g.Load(ds.Ratings)
	st := g.Stats()
	logger.Info().
		Int("users", st.Users).
		Int("books", st.Books).
		Int("ratings", st.Ratings).
		Float64("density", st.Density).
		Msg("graph built")

	engine, err := recommend.NewEngine(g, recommend.Config{
		NeighborCount: cfg.NeighborCount,
		MaxTopN:       cfg.MaxTopN,
		MaxCandidates: cfg.MaxCandidates,
		Workers:       cfg.Workers,
	}, logger)
	if err != nil {
		return err
	}

	// ============================
	// Mongo (opcional)
	// ============================
	opts := service.Options{NodeAddrs: cfg.MLNodeAddrs, NodeTimeout: cfg.RequestTimeout}
	var cat catalog.Catalog = catalog.NewMemory(ds.Books, ds.Users)

	mg, err := db.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	if mg != nil {
		defer closeMongo(mg, logger)

		mongoCat := catalog.NewMongo(repository.NewBookRepository(mg.DB), repository.NewUserRepository(mg.DB))
		if cfg.MongoSeed {
			if err := mongoCat.Seed(ctx, ds.Books, ds.Users, logger); err != nil {
				return err
			}
		}
		cat = mongoCat
		opts.History = repository.NewRecommendationRepository(mg.DB)
		logger.Info().Str("db", cfg.MongoDB).Msg("mongo catalog and history enabled")
	}

	// ============================
	// Redis (opcional)
	// ============================
	rc, err := cache.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.CacheTTL)
	if err != nil {
		return err
	}
	if rc != nil {
		defer rc.Close()
		opts.Cache = rc
		logger.Info().Str("addr", cfg.RedisAddr).Dur("ttl", cfg.CacheTTL).Msg("redis cache enabled")
	}

	if len(cfg.MLNodeAddrs) > 0 {
		logger.Info().Strs("nodes", cfg.MLNodeAddrs).Msg("item similarity sharded over ml nodes")
	}

	svc := service.NewRecommendService(engine, cat, opts, logger)
	svc.Stats() // publica los gauges del grafo

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler.NewRouter(svc, logger, cfg.RequestTimeout),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("http listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

//nolint:gocritic // zerolog.Logger is passed by value
func closeMongo(mg *db.Mongo, logger zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mg.Close(ctx); err != nil {
		logger.Warn().Err(err).Msg("mongo disconnect failed")
	}
}
