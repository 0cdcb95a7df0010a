package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	HTTPPort       string
	DataDir        string
	SampleSize     int
	RequestTimeout time.Duration

	MongoURI  string
	MongoDB   string
	MongoSeed bool

	RedisAddr string
	RedisPass string
	CacheTTL  time.Duration

	// direcciones de los nodos ML (api) y la propia (mlnode)
	MLNodeAddrs []string
	MLNodeAddr  string
	NodeID      string

	NeighborCount int
	MaxTopN       int
	MaxCandidates int
	Workers       int

	LogLevel  string
	LogFormat string
}

// Load lee el .env (si existe) y las variables de entorno.
// Cada valor ausente se reporta en el logger con su default.
func Load(logger zerolog.Logger) *Config {
	_ = godotenv.Load()

	l := loader{log: logger.With().Str("component", "config").Logger()}

	return &Config{
		HTTPPort:       l.str("HTTP_PORT", "5000"),
		DataDir:        l.str("DATA_DIR", "../data"),
		SampleSize:     l.int("SAMPLE_SIZE", 10000),
		RequestTimeout: l.duration("REQUEST_TIMEOUT", 30*time.Second),

		MongoURI:  l.str("MONGO_URI", ""),
		MongoDB:   l.str("MONGO_DB", "readiego"),
		MongoSeed: l.bool("MONGO_SEED", false),

		RedisAddr: l.str("REDIS_ADDR", ""),
		RedisPass: l.str("REDIS_PASSWORD", ""),
		CacheTTL:  l.duration("CACHE_TTL", time.Hour),

		MLNodeAddrs: l.list("ML_NODE_ADDRS"),
		MLNodeAddr:  l.str("ML_NODE_ADDR", ":9001"),
		NodeID:      l.str("NODE_ID", "?"),

		NeighborCount: l.int("NEIGHBOR_COUNT", 10),
		MaxTopN:       l.int("MAX_TOP_N", 50),
		MaxCandidates: l.int("MAX_CANDIDATES", 0),
		Workers:       l.int("WORKERS", 0),

		LogLevel:  l.str("LOG_LEVEL", "info"),
		LogFormat: l.str("LOG_FORMAT", "json"),
	}
}

type loader struct {
	log zerolog.Logger
}

func (l loader) str(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		l.log.Debug().Str("key", key).Str("default", def).Msg("not set, using default")
		return def
	}
	return v
}

func (l loader) int(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		l.log.Debug().Str("key", key).Int("default", def).Msg("not set, using default")
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		l.log.Warn().Str("key", key).Str("value", v).Int("default", def).Msg("invalid integer, using default")
		return def
	}
	return n
}

func (l loader) bool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		l.log.Warn().Str("key", key).Str("value", v).Bool("default", def).Msg("invalid boolean, using default")
		return def
	}
	return b
}

func (l loader) duration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		l.log.Warn().Str("key", key).Str("value", v).Dur("default", def).Msg("invalid duration, using default")
		return def
	}
	return d
}

// list parte una variable separada por comas, ignorando vacíos.
func (l loader) list(key string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
