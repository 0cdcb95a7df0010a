package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/DIEGUS15/readiego-book-recommender/internal/service"
)

// NewRouter arma las rutas de la API. timeout aplica a todo menos al WebSocket.
//
//nolint:gocritic // zerolog.Logger is passed by value
func NewRouter(svc *service.RecommendService, logger zerolog.Logger, timeout time.Duration) http.Handler {
	healthH := NewHealthHandler(svc)
	recH := NewRecommendHandler(svc, logger)
	metaH := NewMetadataHandler(svc)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger.With().Str("component", "http").Logger()))
	r.Use(middleware.Recoverer)
	r.Use(CORS)

	// WebSocket sin timeout: la conexión vive más que un request normal
	r.Get("/api/ws/recommend/user/{id}", recH.GetUserRecommendationsWS)

	r.Group(func(r chi.Router) {
		if timeout > 0 {
			r.Use(middleware.Timeout(timeout))
		}

		r.Get("/", healthH.Index)

		r.Route("/api", func(r chi.Router) {
			r.Get("/health", healthH.Health)

			r.Route("/recommend", func(r chi.Router) {
				r.Get("/user/{id}", recH.GetUserRecommendations)
				r.Get("/user/{id}/explain/{isbn}", recH.GetExplanation)
				r.Get("/book/{isbn}", recH.GetSimilarBooks)
			})

			r.Get("/book/{isbn}", metaH.GetBook)

			r.Route("/user/{id}", func(r chi.Router) {
				r.Get("/", metaH.GetUser)
				r.Get("/books", metaH.GetUserBooks)
				r.Get("/similar", recH.GetSimilarUsers)
				r.Get("/history", recH.GetHistory)
			})

			r.Get("/debug/sample-users", metaH.GetSampleUsers)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}
