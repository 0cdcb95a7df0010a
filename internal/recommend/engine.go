// Package recommend calcula recomendaciones de libros sobre el grafo de
// interacciones con similitud de Jaccard entre conjuntos de vecinos.
//
// Hay dos estrategias:
//
//   - Filtrado colaborativo: busca los usuarios cuyos libros calificados más se
//     solapan con los del usuario y puntúa lo que leyeron, ponderado por
//     calificación y similitud.
//   - Similitud entre libros: ordena libros por el solapamiento de sus lectores
//     con los del libro base.
//
// No se precalcula nada. Cada llamada recorre el grafo actual bajo un solo
// lock de lectura y evalúa candidatos en paralelo. Los empates se rompen por
// id ascendente, así los resultados son reproducibles.
package recommend

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/DIEGUS15/readiego-book-recommender/internal/graph"
	"github.com/DIEGUS15/readiego-book-recommender/internal/models"
)

// ErrNilGraph NewEngine sin grafo.
var ErrNilGraph = errors.New("recommend: nil graph")

// Engine genera recomendaciones a partir de un grafo que solo lee.
// Se puede usar desde varias goroutines.
type Engine struct {
	graph  *graph.Graph
	config Config
	logger zerolog.Logger
}

// UserSimilarity vecino de un usuario con su similitud de Jaccard.
type UserSimilarity struct {
	UserID     string  `json:"user_id"`
	Similarity float64 `json:"similarity"`
}

// NewEngine crea un motor sobre g.
//
//nolint:gocritic // zerolog.Logger is passed by value
func NewEngine(g *graph.Graph, cfg Config, logger zerolog.Logger) (*Engine, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	return &Engine{
		graph:  g,
		config: cfg.withDefaults(),
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Config configuración efectiva, con defaults aplicados.
func (e *Engine) Config() Config {
	return e.config
}

// Graph grafo que lee el motor.
func (e *Engine) Graph() *graph.Graph {
	return e.graph
}

// FindSimilarUsers ordena a todos los demás usuarios por similitud de Jaccard
// entre sus libros calificados. Los de similitud 0 entran si no hay suficientes
// mejores. topN <= 0 usa DefaultUserTopN y topN > MaxTopN se recorta a MaxTopN.
func (e *Engine) FindSimilarUsers(ctx context.Context, userID string, topN int) ([]UserSimilarity, error) {
	topN = e.clampTopN(topN, e.config.DefaultUserTopN)

	var (
		scored []models.ScoredID
		err    error
	)
	e.graph.View(func(s graph.Snapshot) {
		scored, err = e.similarUsers(ctx, s, userID, topN)
	})
	if err != nil {
		return nil, err
	}

	out := make([]UserSimilarity, len(scored))
	for i, sc := range scored {
		out[i] = UserSimilarity{UserID: sc.ID, Similarity: sc.Value}
	}
	return out, nil
}

// RecommendCollaborative puntúa los libros no leídos sumando rating*similitud
// sobre los NeighborCount usuarios más similares. Usuario desconocido da lista
// vacía. topN <= 0 usa DefaultTopN y topN > MaxTopN se recorta a MaxTopN, así
// que nunca vuelven más de MaxTopN libros.
func (e *Engine) RecommendCollaborative(ctx context.Context, userID string, topN int) ([]models.Recommendation, error) {
	topN = e.clampTopN(topN, e.config.DefaultTopN)

	var (
		scored []models.ScoredID
		err    error
	)
	e.graph.View(func(s graph.Snapshot) {
		if !s.HasUser(userID) {
			return
		}

		var neighbors []models.ScoredID
		neighbors, err = e.similarUsers(ctx, s, userID, e.config.NeighborCount)
		if err != nil {
			return
		}

		rated := s.UserBooks(userID)
		scores := make(map[string]float64)
		for _, n := range neighbors {
			for bookID, rating := range s.UserBooks(n.ID) {
				if _, ok := rated[bookID]; ok {
					continue
				}
				scores[bookID] += rating * n.Value
			}
		}

		scored = make([]models.ScoredID, 0, len(scores))
		for bookID, v := range scores {
			scored = append(scored, models.ScoredID{ID: bookID, Value: v})
		}
		scored = topScored(scored, topN)
	})
	if err != nil {
		return nil, err
	}

	out := make([]models.Recommendation, len(scored))
	for i, sc := range scored {
		v := round2(sc.Value)
		out[i] = models.Recommendation{BookID: sc.ID, Score: &v, Method: models.MethodCollaborative}
	}
	return out, nil
}

// RecommendByBook ordena otros libros por similitud de Jaccard entre lectores.
// Solo devuelve similitud > 0; libro desconocido da lista vacía. topN se
// recorta a MaxTopN igual que en RecommendCollaborative.
func (e *Engine) RecommendByBook(ctx context.Context, bookID string, topN int) ([]models.Recommendation, error) {
	topN = e.clampTopN(topN, e.config.DefaultTopN)

	partial, err := e.ScanBooksShard(ctx, bookID, 0, 1)
	if err != nil {
		return nil, err
	}
	return e.MergeBookShards([][]models.ScoredID{partial}, topN), nil
}

// ScanBooksShard evalúa los candidatos de bookID cuya posición en la lista
// ordenada es congruente con shardID módulo shards. Los resultados no vienen
// redondeados ni ordenados y solo traen similitudes positivas.
func (e *Engine) ScanBooksShard(ctx context.Context, bookID string, shardID, shards int) ([]models.ScoredID, error) {
	if shards <= 0 {
		shards = 1
	}

	var (
		out []models.ScoredID
		err error
	)
	e.graph.View(func(s graph.Snapshot) {
		if !s.HasBook(bookID) {
			return
		}
		raters := s.BookUsers(bookID)

		// un libro sin lectores en común da 0 y se descarta igual: solo
		// los co-calificados son candidatos
		seen := make(map[string]struct{})
		for userID := range raters {
			for other := range s.UserBooks(userID) {
				if other != bookID {
					seen[other] = struct{}{}
				}
			}
		}
		candidates := e.capCandidates(sortedSet(seen), "books")

		shard := candidates[:0:0]
		for i, c := range candidates {
			if i%shards == shardID {
				shard = append(shard, c)
			}
		}

		out, err = e.scan(ctx, shard, func(other string) (float64, bool) {
			sim := Jaccard(raters, s.BookUsers(other))
			return sim, sim > 0
		})
	})
	return out, err
}

// MergeBookShards junta los shards en la lista item_similarity final.
func (e *Engine) MergeBookShards(partials [][]models.ScoredID, topN int) []models.Recommendation {
	topN = e.clampTopN(topN, e.config.DefaultTopN)

	best := make(map[string]float64)
	for _, p := range partials {
		for _, sc := range p {
			if sc.Value <= 0 {
				continue
			}
			if v, ok := best[sc.ID]; !ok || sc.Value > v {
				best[sc.ID] = sc.Value
			}
		}
	}

	merged := make([]models.ScoredID, 0, len(best))
	for id, v := range best {
		merged = append(merged, models.ScoredID{ID: id, Value: v})
	}
	merged = topScored(merged, topN)

	out := make([]models.Recommendation, len(merged))
	for i, sc := range merged {
		v := round2(sc.Value)
		out[i] = models.Recommendation{BookID: sc.ID, Similarity: &v, Method: models.MethodItemSimilarity}
	}
	return out
}

// similarUsers se llama dentro de View.
func (e *Engine) similarUsers(ctx context.Context, s graph.Snapshot, userID string, n int) ([]models.ScoredID, error) {
	target := s.UserBooks(userID)

	all := s.Users()
	candidates := make([]string, 0, len(all))
	for _, u := range all {
		if u != userID {
			candidates = append(candidates, u)
		}
	}
	candidates = e.capCandidates(candidates, "users")

	scored, err := e.scan(ctx, candidates, func(other string) (float64, bool) {
		return Jaccard(target, s.UserBooks(other)), true
	})
	if err != nil {
		return nil, err
	}
	return topScored(scored, n), nil
}

// scan evalúa candidatos en Workers goroutines. score indica si el candidato
// se queda.
func (e *Engine) scan(ctx context.Context, candidates []string, score func(id string) (float64, bool)) ([]models.ScoredID, error) {
	if len(candidates) == 0 {
		return []models.ScoredID{}, ctx.Err()
	}

	workers := e.config.Workers
	if workers > len(candidates) {
		workers = len(candidates)
	}
	chunk := (len(candidates) + workers - 1) / workers
	results := make([][]models.ScoredID, workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := min(start+chunk, len(candidates))
		if start >= end {
			break
		}

		g.Go(func() error {
			part := make([]models.ScoredID, 0, end-start)
			for i, id := range candidates[start:end] {
				if i%256 == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				if v, keep := score(id); keep {
					part = append(part, models.ScoredID{ID: id, Value: v})
				}
			}
			results[w] = part
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	out := make([]models.ScoredID, 0, total)
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}

func (e *Engine) capCandidates(candidates []string, kind string) []string {
	if e.config.MaxCandidates > 0 && len(candidates) > e.config.MaxCandidates {
		e.logger.Debug().
			Str("kind", kind).
			Int("candidates", len(candidates)).
			Int("cap", e.config.MaxCandidates).
			Msg("candidate set truncated")
		return candidates[:e.config.MaxCandidates]
	}
	return candidates
}

func (e *Engine) clampTopN(n, def int) int {
	if n <= 0 {
		n = def
	}
	if n > e.config.MaxTopN {
		n = e.config.MaxTopN
	}
	return n
}
