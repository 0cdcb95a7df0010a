package recommend

import "runtime"

// Config ajusta el motor. Los campos en cero toman el valor de DefaultConfig.
type Config struct {
	// NeighborCount usuarios similares que alimentan el filtrado colaborativo.
	// No depende del topN pedido.
	NeighborCount int

	// DefaultUserTopN lo usa FindSimilarUsers cuando topN <= 0.
	DefaultUserTopN int

	// DefaultTopN lo usan las recomendaciones cuando topN <= 0.
	DefaultTopN int

	// MaxTopN tope de cualquier topN pedido; lo que pase se recorta sin error.
	MaxTopN int

	// MaxCandidates tope de usuarios o libros evaluados por llamada.
	// Cero es sin tope.
	MaxCandidates int

	// Workers goroutines que evalúan candidatos.
	Workers int
}

// DefaultConfig valores por defecto del motor.
func DefaultConfig() Config {
	return Config{
		NeighborCount:   10,
		DefaultUserTopN: 10,
		DefaultTopN:     5,
		MaxTopN:         50,
		MaxCandidates:   0,
		Workers:         runtime.NumCPU(),
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.NeighborCount <= 0 {
		c.NeighborCount = d.NeighborCount
	}
	if c.DefaultUserTopN <= 0 {
		c.DefaultUserTopN = d.DefaultUserTopN
	}
	if c.DefaultTopN <= 0 {
		c.DefaultTopN = d.DefaultTopN
	}
	if c.MaxTopN <= 0 {
		c.MaxTopN = d.MaxTopN
	}
	if c.MaxCandidates < 0 {
		c.MaxCandidates = 0
	}
	if c.Workers <= 0 {
		c.Workers = d.Workers
	}
	return c
}
