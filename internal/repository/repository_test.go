package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/DIEGUS15/readiego-book-recommender/internal/models"
)

func TestBookRepository_GetByISBN(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		repo := &BookRepository{col: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "readiego.books", mtest.FirstBatch, bson.D{
			{Key: "isbn", Value: "0195153448"},
			{Key: "title", Value: "Classical Mythology"},
			{Key: "author", Value: "Mark P. O. Morford"},
			{Key: "year", Value: 2002},
			{Key: "imageM", Value: "http://m/1.jpg"},
		}))

		b, err := repo.GetByISBN(context.Background(), "0195153448")
		require.NoError(mt, err)
		require.NotNil(mt, b)
		assert.Equal(mt, "Classical Mythology", b.Title)
		assert.Equal(mt, "http://m/1.jpg", b.ImageURL)
		require.NotNil(mt, b.Year)
		assert.Equal(mt, 2002, *b.Year)
	})

	mt.Run("not found", func(mt *mtest.T) {
		repo := &BookRepository{col: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "readiego.books", mtest.FirstBatch))

		b, err := repo.GetByISBN(context.Background(), "missing")
		require.NoError(mt, err)
		assert.Nil(mt, b)
	})
}

func TestUserRepository_FindByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		repo := &UserRepository{col: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "readiego.users", mtest.FirstBatch, bson.D{
			{Key: "userId", Value: "276726"},
			{Key: "location", Value: "seattle, washington, usa"},
		}))

		u, err := repo.FindByID(context.Background(), "276726")
		require.NoError(mt, err)
		require.NotNil(mt, u)
		assert.Equal(mt, "seattle, washington, usa", u.Location)
		assert.Nil(mt, u.Age)
	})

	mt.Run("command error", func(mt *mtest.T) {
		repo := &UserRepository{col: mt.Coll}
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 11600, Message: "interrupted at shutdown",
		}))

		u, err := repo.FindByID(context.Background(), "276726")
		assert.Error(mt, err)
		assert.Nil(mt, u)
	})
}

func TestRecommendationRepository_Insert(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("fills id and timestamp", func(mt *mtest.T) {
		repo := &RecommendationRepository{col: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		h := &models.History{UserID: "u1", Method: models.MethodCollaborative}
		require.NoError(mt, repo.Insert(context.Background(), h))
		assert.NotEmpty(mt, h.ID)
		assert.False(mt, h.CreatedAt.IsZero())
	})
}

func TestBookRepository_UpsertMany(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("empty input does nothing", func(mt *mtest.T) {
		repo := &BookRepository{col: mt.Coll}
		n, err := repo.UpsertMany(context.Background(), nil)
		require.NoError(mt, err)
		assert.Zero(mt, n)
	})

	mt.Run("single batch", func(mt *mtest.T) {
		repo := &BookRepository{col: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 2},
			bson.E{Key: "nModified", Value: 0},
			bson.E{Key: "upserted", Value: bson.A{
				bson.D{{Key: "index", Value: 0}, {Key: "_id", Value: "a"}},
				bson.D{{Key: "index", Value: 1}, {Key: "_id", Value: "b"}},
			}},
		))

		n, err := repo.UpsertMany(context.Background(), []models.Book{{ISBN: "1"}, {ISBN: "2"}})
		require.NoError(mt, err)
		assert.Equal(mt, int64(2), n)
	})
}
