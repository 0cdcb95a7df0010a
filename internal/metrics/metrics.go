package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/DIEGUS15/readiego-book-recommender/internal/models"
)

var (
	// RecommendDuration mide el cálculo de recomendaciones, sin cache.
	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "readiego_recommend_duration_seconds",
			Help:    "Duration of recommendation computations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	RecommendResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "readiego_recommend_results",
			Help:    "Number of items returned per recommendation request",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		},
		[]string{"method"},
	)

	RecommendErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readiego_recommend_errors_total",
			Help: "Total number of failed recommendation computations",
		},
		[]string{"method"},
	)

	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "readiego_cache_hits_total",
		Help: "Total number of recommendation cache hits",
	})

	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "readiego_cache_misses_total",
		Help: "Total number of recommendation cache misses",
	})

	ClusterShardErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readiego_cluster_shard_errors_total",
			Help: "Total number of failed ML node shard calls",
		},
		[]string{"node"},
	)

	GraphUsers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "readiego_graph_users",
		Help: "Users in the interaction graph",
	})

	GraphBooks = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "readiego_graph_books",
		Help: "Books in the interaction graph",
	})

	GraphRatings = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "readiego_graph_ratings",
		Help: "Ratings (edges) in the interaction graph",
	})

	GraphDensity = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "readiego_graph_density",
		Help: "Bipartite density of the interaction graph",
	})
)

// RecordGraphStats publica el tamaño del grafo.
func RecordGraphStats(s models.Stats) {
	GraphUsers.Set(float64(s.Users))
	GraphBooks.Set(float64(s.Books))
	GraphRatings.Set(float64(s.Ratings))
	GraphDensity.Set(s.Density)
}
