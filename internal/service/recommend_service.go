package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/DIEGUS15/readiego-book-recommender/internal/catalog"
	"github.com/DIEGUS15/readiego-book-recommender/internal/cluster"
	"github.com/DIEGUS15/readiego-book-recommender/internal/metrics"
	"github.com/DIEGUS15/readiego-book-recommender/internal/models"
	"github.com/DIEGUS15/readiego-book-recommender/internal/recommend"
)

const (
	// DefaultTopN es el default de la API HTTP (el motor usa 5).
	DefaultTopN = 10

	sampleMinBooks = 3
	sampleScan     = 100
	sampleLimit    = 20

	historyMaxLimit = 50
)

var (
	// ErrNotFound libro o usuario sin metadata.
	ErrNotFound = errors.New("not found")
	// ErrHistoryDisabled corre sin Mongo.
	ErrHistoryDisabled = errors.New("recommendation history disabled")
)

// Cache guarda respuestas ya enriquecidas.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any) error
}

// History persiste cada recomendación servida.
type History interface {
	Insert(ctx context.Context, h *models.History) error
	FindByUser(ctx context.Context, userID string, limit int64) ([]models.History, error)
}

// Options dependencias opcionales; nil desactiva cada una.
type Options struct {
	Cache   Cache
	History History
	// direcciones TCP de los nodos ML
	NodeAddrs   []string
	NodeTimeout time.Duration
}

type RecommendService struct {
	engine  *recommend.Engine
	catalog catalog.Catalog
	cache   Cache
	history History

	nodeAddrs   []string
	nodeTimeout time.Duration

	logger zerolog.Logger
}

//nolint:gocritic // zerolog.Logger is passed by value
func NewRecommendService(engine *recommend.Engine, cat catalog.Catalog, opts Options, logger zerolog.Logger) *RecommendService {
	if opts.NodeTimeout <= 0 {
		opts.NodeTimeout = 10 * time.Second
	}
	return &RecommendService{
		engine:      engine,
		catalog:     cat,
		cache:       opts.Cache,
		history:     opts.History,
		nodeAddrs:   opts.NodeAddrs,
		nodeTimeout: opts.NodeTimeout,
		logger:      logger.With().Str("component", "recommend_service").Logger(),
	}
}

// ====== Peticiones y respuestas ======

type UserRequest struct {
	UserID  string
	TopN    int
	Refresh bool
}

type BookRequest struct {
	BookID  string
	TopN    int
	Refresh bool
}

type UserRecommendations struct {
	UserID          string                  `json:"user_id"`
	Recommendations []models.Recommendation `json:"recommendations"`
}

type SimilarBooks struct {
	BaseBook     *models.Book            `json:"base_book"`
	SimilarBooks []models.Recommendation `json:"similar_books"`
}

type UserBooks struct {
	UserID string             `json:"user_id"`
	Books  []models.RatedBook `json:"books"`
	Total  int                `json:"total"`
}

type SampleUsers struct {
	SampleUsers       []models.SampleUser `json:"sample_users"`
	TotalUsersInGraph int                 `json:"total_users_in_graph"`
}

func (s *RecommendService) topN(n int) int {
	if n <= 0 {
		n = DefaultTopN
	}
	if maxN := s.engine.Config().MaxTopN; n > maxN {
		n = maxN
	}
	return n
}

// ====== Filtrado colaborativo ======

// RecommendForUser recomienda libros por filtrado colaborativo y los enriquece
// con la metadata del catálogo.
func (s *RecommendService) RecommendForUser(ctx context.Context, req UserRequest) (*UserRecommendations, error) {
	req.TopN = s.topN(req.TopN)
	key := fmt.Sprintf("rec:user:%s:n:%d", req.UserID, req.TopN)

	var cached UserRecommendations
	if s.getCached(ctx, key, req.Refresh, &cached) {
		return &cached, nil
	}

	start := time.Now()
	recs, err := s.engine.RecommendCollaborative(ctx, req.UserID, req.TopN)
	if err != nil {
		metrics.RecommendErrors.WithLabelValues(models.MethodCollaborative).Inc()
		return nil, fmt.Errorf("recommend user %s: %w", req.UserID, err)
	}
	s.observe(models.MethodCollaborative, start, len(recs))

	s.enrich(ctx, recs)
	out := &UserRecommendations{UserID: req.UserID, Recommendations: recs}

	s.saveHistory(ctx, &models.History{
		UserID: req.UserID,
		Method: models.MethodCollaborative,
		Params: map[string]any{
			"top_n":     req.TopN,
			"neighbors": s.engine.Config().NeighborCount,
			"refresh":   req.Refresh,
		},
		Items: recs,
	})
	s.setCached(ctx, key, out)
	return out, nil
}

// SimilarUsers expone el vecindario de un usuario.
func (s *RecommendService) SimilarUsers(ctx context.Context, userID string, topN int) ([]recommend.UserSimilarity, error) {
	if !s.engine.Graph().HasUser(userID) {
		return []recommend.UserSimilarity{}, nil
	}
	return s.engine.FindSimilarUsers(ctx, userID, topN)
}

// Neighbors vecinos que usa el filtrado colaborativo (NeighborCount).
func (s *RecommendService) Neighbors(ctx context.Context, userID string) ([]recommend.UserSimilarity, error) {
	return s.SimilarUsers(ctx, userID, s.engine.Config().NeighborCount)
}

// ====== Similitud de libros ======

// SimilarBooks recomienda libros parecidos a BookID. Si hay nodos ML
// configurados el escaneo se reparte entre ellos.
func (s *RecommendService) SimilarBooks(ctx context.Context, req BookRequest) (*SimilarBooks, error) {
	req.TopN = s.topN(req.TopN)
	key := fmt.Sprintf("rec:book:%s:n:%d", req.BookID, req.TopN)

	var cached SimilarBooks
	if s.getCached(ctx, key, req.Refresh, &cached) {
		return &cached, nil
	}

	start := time.Now()
	recs, err := s.similarBooks(ctx, req)
	if err != nil {
		metrics.RecommendErrors.WithLabelValues(models.MethodItemSimilarity).Inc()
		return nil, fmt.Errorf("similar books %s: %w", req.BookID, err)
	}
	s.observe(models.MethodItemSimilarity, start, len(recs))

	s.enrich(ctx, recs)
	base, err := s.catalog.Book(ctx, req.BookID)
	if err != nil {
		s.logger.Warn().Err(err).Str("book_id", req.BookID).Msg("base book lookup failed")
		base = nil
	}
	out := &SimilarBooks{BaseBook: base, SimilarBooks: recs}

	s.saveHistory(ctx, &models.History{
		BookID: req.BookID,
		Method: models.MethodItemSimilarity,
		Params: map[string]any{
			"top_n":   req.TopN,
			"shards":  max(len(s.nodeAddrs), 1),
			"refresh": req.Refresh,
		},
		Items: recs,
	})
	s.setCached(ctx, key, out)
	return out, nil
}

func (s *RecommendService) similarBooks(ctx context.Context, req BookRequest) ([]models.Recommendation, error) {
	if len(s.nodeAddrs) == 0 || !s.engine.Graph().HasBook(req.BookID) {
		return s.engine.RecommendByBook(ctx, req.BookID, req.TopN)
	}

	partials, err := s.scanOnNodes(ctx, req.BookID)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.Warn().Err(err).Str("book_id", req.BookID).Msg("cluster scan failed, computing locally")
		return s.engine.RecommendByBook(ctx, req.BookID, req.TopN)
	}
	return s.engine.MergeBookShards(partials, req.TopN), nil
}

// scanOnNodes manda un shard a cada nodo en paralelo. Si algún shard falla el
// resultado estaría incompleto, así que se devuelve error.
func (s *RecommendService) scanOnNodes(ctx context.Context, bookID string) ([][]models.ScoredID, error) {
	shards := len(s.nodeAddrs)

	ctxTimeout, cancel := context.WithTimeout(ctx, s.nodeTimeout)
	defer cancel()

	resCh := make(chan *cluster.ShardResponse, shards)
	errCh := make(chan error, shards)

	var wg sync.WaitGroup
	for shardID, addr := range s.nodeAddrs {
		wg.Add(1)
		go func(addr string, t *cluster.ShardTask) {
			defer wg.Done()
			resp, err := cluster.SendTask(ctxTimeout, addr, t)
			if err != nil {
				metrics.ClusterShardErrors.WithLabelValues(addr).Inc()
				errCh <- fmt.Errorf("%s: %w", addr, err)
				return
			}
			resCh <- resp
		}(addr, &cluster.ShardTask{BookID: bookID, ShardID: shardID, Shards: shards})
	}

	wg.Wait()
	close(resCh)
	close(errCh)

	if len(errCh) > 0 {
		errs := make([]error, 0, len(errCh))
		for err := range errCh {
			errs = append(errs, err)
		}
		return nil, errors.Join(errs...)
	}

	partials := make([][]models.ScoredID, 0, shards)
	for resp := range resCh {
		partials = append(partials, resp.Partials)
	}
	return partials, nil
}

// ====== Explicación ======

func (s *RecommendService) Explain(ctx context.Context, userID, bookID string) (*models.Explanation, error) {
	return s.engine.Explain(ctx, userID, bookID)
}

// ====== Historial ======

// RecentHistory últimas recomendaciones servidas al usuario, más nuevas primero.
func (s *RecommendService) RecentHistory(ctx context.Context, userID string, limit int64) ([]models.History, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}
	if limit <= 0 || limit > historyMaxLimit {
		limit = historyMaxLimit
	}
	items, err := s.history.FindByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("history %s: %w", userID, err)
	}
	if items == nil {
		items = []models.History{}
	}
	return items, nil
}

// ====== Metadata ======

func (s *RecommendService) Book(ctx context.Context, isbn string) (*models.Book, error) {
	b, err := s.catalog.Book(ctx, isbn)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}
	return b, nil
}

func (s *RecommendService) User(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.catalog.User(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

// UserBooks libros calificados por el usuario que tienen metadata, ordenados
// por calificación (desc) y luego isbn.
func (s *RecommendService) UserBooks(ctx context.Context, userID string) (*UserBooks, error) {
	rated := s.engine.Graph().UserBooks(userID)

	books := make([]models.RatedBook, 0, len(rated))
	for isbn, rating := range rated {
		b, err := s.catalog.Book(ctx, isbn)
		if err != nil {
			return nil, err
		}
		if b == nil {
			continue
		}
		books = append(books, models.RatedBook{Book: *b, UserRating: rating})
	}

	sort.Slice(books, func(i, j int) bool {
		if books[i].UserRating != books[j].UserRating {
			return books[i].UserRating > books[j].UserRating
		}
		return books[i].ISBN < books[j].ISBN
	})

	return &UserBooks{UserID: userID, Books: books, Total: len(books)}, nil
}

// ====== Estado ======

func (s *RecommendService) Stats() models.Stats {
	st := s.engine.Graph().Stats()
	metrics.RecordGraphStats(st)
	return st
}

// SampleUsers usuarios de ejemplo con al menos 3 libros, para probar la API.
func (s *RecommendService) SampleUsers() *SampleUsers {
	return &SampleUsers{
		SampleUsers:       s.engine.SampleUsers(sampleMinBooks, sampleScan, sampleLimit),
		TotalUsersInGraph: s.engine.Graph().UserCount(),
	}
}

// ====== helpers ======

func (s *RecommendService) enrich(ctx context.Context, recs []models.Recommendation) {
	for i := range recs {
		b, err := s.catalog.Book(ctx, recs[i].BookID)
		if err != nil {
			s.logger.Warn().Err(err).Str("book_id", recs[i].BookID).Msg("book lookup failed")
			continue
		}
		recs[i].BookInfo = b
	}
}

func (s *RecommendService) getCached(ctx context.Context, key string, refresh bool, dest any) bool {
	if s.cache == nil || refresh {
		return false
	}
	ok, err := s.cache.GetJSON(ctx, key, dest)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache read failed")
		return false
	}
	if ok {
		metrics.CacheHits.Inc()
	} else {
		metrics.CacheMisses.Inc()
	}
	return ok
}

func (s *RecommendService) setCached(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, key, value); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

// saveHistory no rompe la respuesta si Mongo falla.
func (s *RecommendService) saveHistory(ctx context.Context, h *models.History) {
	if s.history == nil {
		return
	}
	if err := s.history.Insert(ctx, h); err != nil {
		s.logger.Warn().Err(err).Str("method", h.Method).Msg("saving recommendation history failed")
	}
}

func (s *RecommendService) observe(method string, start time.Time, n int) {
	metrics.RecommendDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	metrics.RecommendResults.WithLabelValues(method).Observe(float64(n))
}
