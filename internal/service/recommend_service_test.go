package service

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DIEGUS15/readiego-book-recommender/internal/catalog"
	"github.com/DIEGUS15/readiego-book-recommender/internal/cluster"
	"github.com/DIEGUS15/readiego-book-recommender/internal/graph"
	"github.com/DIEGUS15/readiego-book-recommender/internal/models"
	"github.com/DIEGUS15/readiego-book-recommender/internal/recommend"
)

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) GetJSON(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dest)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = b
	c.sets++
	return nil
}

type memHistory struct {
	mu    sync.Mutex
	items []models.History
	err   error
}

func (h *memHistory) Insert(_ context.Context, rec *models.History) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return h.err
	}
	h.items = append(h.items, *rec)
	return nil
}

func (h *memHistory) FindByUser(_ context.Context, userID string, limit int64) ([]models.History, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []models.History
	for i := len(h.items) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		if h.items[i].UserID == userID {
			out = append(out, h.items[i])
		}
	}
	return out, nil
}

type failingCatalog struct{}

func (failingCatalog) Book(context.Context, string) (*models.Book, error) {
	return nil, errors.New("mongo down")
}

func (failingCatalog) User(context.Context, string) (*models.User, error) {
	return nil, errors.New("mongo down")
}

func intPtr(n int) *int { return &n }

func testGraph() *graph.Graph {
	g := graph.New()
	g.AddRating("u1", "bA", 5)
	g.AddRating("u1", "bB", 3)
	g.AddRating("u2", "bA", 4)
	g.AddRating("u2", "bC", 5)
	g.AddRating("u3", "bB", 5)
	return g
}

func testCatalog() *catalog.Memory {
	return catalog.NewMemory(
		[]models.Book{
			{ISBN: "bA", Title: "Book A", Year: intPtr(2001)},
			{ISBN: "bB", Title: "Book B"},
			{ISBN: "bC", Title: "Book C"},
		},
		[]models.User{{UserID: "u1", Location: "lima, peru", Age: intPtr(30)}},
	)
}

func newTestService(t *testing.T, cat catalog.Catalog, opts Options) *RecommendService {
	t.Helper()
	eng, err := recommend.NewEngine(testGraph(), recommend.Config{}, zerolog.Nop())
	require.NoError(t, err)
	return NewRecommendService(eng, cat, opts, zerolog.Nop())
}

func TestRecommendForUser(t *testing.T) {
	hist := &memHistory{}
	svc := newTestService(t, testCatalog(), Options{History: hist})

	out, err := svc.RecommendForUser(context.Background(), UserRequest{UserID: "u1"})
	require.NoError(t, err)

	assert.Equal(t, "u1", out.UserID)
	require.Len(t, out.Recommendations, 1)
	rec := out.Recommendations[0]
	assert.Equal(t, "bC", rec.BookID)
	assert.Equal(t, 1.67, *rec.Score)
	assert.Equal(t, models.MethodCollaborative, rec.Method)
	require.NotNil(t, rec.BookInfo)
	assert.Equal(t, "Book C", rec.BookInfo.Title)

	require.Len(t, hist.items, 1)
	assert.Equal(t, "u1", hist.items[0].UserID)
	assert.Equal(t, DefaultTopN, hist.items[0].Params["top_n"])
}

func TestRecommendForUser_UnknownUser(t *testing.T) {
	svc := newTestService(t, testCatalog(), Options{})

	out, err := svc.RecommendForUser(context.Background(), UserRequest{UserID: "nonexistent", TopN: 5})
	require.NoError(t, err)
	assert.Empty(t, out.Recommendations)
}

func TestRecommendForUser_Cache(t *testing.T) {
	c := newMemCache()
	svc := newTestService(t, testCatalog(), Options{Cache: c})
	ctx := context.Background()

	first, err := svc.RecommendForUser(ctx, UserRequest{UserID: "u1", TopN: 5})
	require.NoError(t, err)
	assert.Equal(t, 1, c.sets)
	assert.Contains(t, c.data, "rec:user:u1:n:5")

	second, err := svc.RecommendForUser(ctx, UserRequest{UserID: "u1", TopN: 5})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, c.sets, "cache hit does not write")

	_, err = svc.RecommendForUser(ctx, UserRequest{UserID: "u1", TopN: 5, Refresh: true})
	require.NoError(t, err)
	assert.Equal(t, 2, c.sets, "refresh recomputes and rewrites")
}

func TestRecommendForUser_HistoryFailureIsNotFatal(t *testing.T) {
	svc := newTestService(t, testCatalog(), Options{History: &memHistory{err: errors.New("insert failed")}})

	out, err := svc.RecommendForUser(context.Background(), UserRequest{UserID: "u1"})
	require.NoError(t, err)
	assert.Len(t, out.Recommendations, 1)
}

func TestRecommendForUser_CatalogFailureSkipsEnrichment(t *testing.T) {
	svc := newTestService(t, failingCatalog{}, Options{})

	out, err := svc.RecommendForUser(context.Background(), UserRequest{UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, out.Recommendations, 1)
	assert.Nil(t, out.Recommendations[0].BookInfo)
}

func TestRecommendForUser_ContextCancelled(t *testing.T) {
	svc := newTestService(t, testCatalog(), Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.RecommendForUser(ctx, UserRequest{UserID: "u1"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRecentHistory(t *testing.T) {
	hist := &memHistory{}
	svc := newTestService(t, testCatalog(), Options{History: hist})
	ctx := context.Background()

	_, err := svc.RecommendForUser(ctx, UserRequest{UserID: "u1", TopN: 3})
	require.NoError(t, err)
	_, err = svc.RecommendForUser(ctx, UserRequest{UserID: "u1", TopN: 4})
	require.NoError(t, err)
	_, err = svc.SimilarBooks(ctx, BookRequest{BookID: "bA"})
	require.NoError(t, err)

	items, err := svc.RecentHistory(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 4, items[0].Params["top_n"])

	items, err = svc.RecentHistory(ctx, "u2", 10)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	_, err = newTestService(t, testCatalog(), Options{}).RecentHistory(ctx, "u1", 10)
	assert.ErrorIs(t, err, ErrHistoryDisabled)
}

func TestSimilarBooks(t *testing.T) {
	svc := newTestService(t, testCatalog(), Options{})

	out, err := svc.SimilarBooks(context.Background(), BookRequest{BookID: "bA", TopN: 5})
	require.NoError(t, err)

	require.NotNil(t, out.BaseBook)
	assert.Equal(t, "Book A", out.BaseBook.Title)
	require.Len(t, out.SimilarBooks, 2)
	assert.Equal(t, "bC", out.SimilarBooks[0].BookID)
	assert.Equal(t, 0.5, *out.SimilarBooks[0].Similarity)
	assert.Equal(t, "Book C", out.SimilarBooks[0].BookInfo.Title)
	assert.Equal(t, "bB", out.SimilarBooks[1].BookID)
}

func TestSimilarBooks_UnknownBook(t *testing.T) {
	svc := newTestService(t, testCatalog(), Options{NodeAddrs: []string{"127.0.0.1:1"}})

	out, err := svc.SimilarBooks(context.Background(), BookRequest{BookID: "nope"})
	require.NoError(t, err)
	assert.Nil(t, out.BaseBook)
	assert.Empty(t, out.SimilarBooks)
}

func startNode(t *testing.T, eng *recommend.Engine, id string) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	srv := &cluster.Server{NodeID: id, Scan: eng.ScanBooksShard, Logger: zerolog.Nop()}
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

func TestSimilarBooks_Cluster(t *testing.T) {
	nodeEngine, err := recommend.NewEngine(testGraph(), recommend.Config{}, zerolog.Nop())
	require.NoError(t, err)
	addrs := []string{startNode(t, nodeEngine, "n1"), startNode(t, nodeEngine, "n2")}

	local := newTestService(t, testCatalog(), Options{})
	clustered := newTestService(t, testCatalog(), Options{NodeAddrs: addrs, NodeTimeout: 5 * time.Second})
	ctx := context.Background()

	want, err := local.SimilarBooks(ctx, BookRequest{BookID: "bA", TopN: 5})
	require.NoError(t, err)
	got, err := clustered.SimilarBooks(ctx, BookRequest{BookID: "bA", TopN: 5})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSimilarBooks_ClusterDownFallsBackToLocal(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	dead := ln.Addr().String()
	require.NoError(t, ln.Close())

	svc := newTestService(t, testCatalog(), Options{NodeAddrs: []string{dead}, NodeTimeout: time.Second})

	out, err := svc.SimilarBooks(context.Background(), BookRequest{BookID: "bA", TopN: 5})
	require.NoError(t, err)
	assert.Len(t, out.SimilarBooks, 2)
}

func TestSimilarUsers(t *testing.T) {
	svc := newTestService(t, testCatalog(), Options{})

	got, err := svc.SimilarUsers(context.Background(), "u1", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "u3", got[0].UserID)

	got, err = svc.SimilarUsers(context.Background(), "nobody", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNeighborsFollowNeighborCount(t *testing.T) {
	eng, err := recommend.NewEngine(testGraph(), recommend.Config{NeighborCount: 1}, zerolog.Nop())
	require.NoError(t, err)
	svc := NewRecommendService(eng, testCatalog(), Options{}, zerolog.Nop())

	got, err := svc.Neighbors(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "u3", got[0].UserID)

	all, err := svc.SimilarUsers(context.Background(), "u1", 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestBookAndUser(t *testing.T) {
	svc := newTestService(t, testCatalog(), Options{})
	ctx := context.Background()

	b, err := svc.Book(ctx, "bA")
	require.NoError(t, err)
	assert.Equal(t, "Book A", b.Title)

	_, err = svc.Book(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	u, err := svc.User(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 30, *u.Age)

	_, err = svc.User(ctx, "u2")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = newTestService(t, failingCatalog{}, Options{}).Book(ctx, "bA")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestUserBooks(t *testing.T) {
	cat := catalog.NewMemory([]models.Book{{ISBN: "bA", Title: "Book A"}, {ISBN: "bB", Title: "Book B"}}, nil)
	svc := newTestService(t, cat, Options{})

	out, err := svc.UserBooks(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, out.Total)
	require.Len(t, out.Books, 2)
	assert.Equal(t, "bA", out.Books[0].ISBN)
	assert.Equal(t, 5.0, out.Books[0].UserRating)
	assert.Equal(t, "bB", out.Books[1].ISBN)

	// bC no tiene metadata y queda afuera
	out, err = svc.UserBooks(context.Background(), "u2")
	require.NoError(t, err)
	assert.Equal(t, 1, out.Total)

	out, err = svc.UserBooks(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Zero(t, out.Total)
	assert.NotNil(t, out.Books)
}

func TestStatsAndSampleUsers(t *testing.T) {
	svc := newTestService(t, testCatalog(), Options{})

	st := svc.Stats()
	assert.Equal(t, 3, st.Users)
	assert.Equal(t, 3, st.Books)
	assert.Equal(t, 5, st.Ratings)
	assert.InDelta(t, 5.0/9.0, st.Density, 1e-12)

	sample := svc.SampleUsers()
	assert.Equal(t, 3, sample.TotalUsersInGraph)
	assert.Empty(t, sample.SampleUsers, "nobody rated 3 books")
}

func TestTopNClamp(t *testing.T) {
	svc := newTestService(t, testCatalog(), Options{})
	assert.Equal(t, DefaultTopN, svc.topN(0))
	assert.Equal(t, DefaultTopN, svc.topN(-3))
	assert.Equal(t, 7, svc.topN(7))
	assert.Equal(t, 50, svc.topN(500))
}
