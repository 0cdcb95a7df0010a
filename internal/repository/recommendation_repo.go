package repository

import (
	"context"
	"time"

	"github.com/DIEGUS15/readiego-book-recommender/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RecommendationRepository historial de recomendaciones servidas.
type RecommendationRepository struct {
	col *mongo.Collection
}

func NewRecommendationRepository(db *mongo.Database) *RecommendationRepository {
	return &RecommendationRepository{col: db.Collection("recommendations")}
}

func (r *RecommendationRepository) Insert(ctx context.Context, h *models.History) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now()
	}
	_, err := r.col.InsertOne(ctx, h)
	return err
}

// FindByUser lista el historial de un usuario, más reciente primero.
func (r *RecommendationRepository) FindByUser(ctx context.Context, userID string, limit int64) ([]models.History, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := r.col.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.History
	for cur.Next(ctx) {
		var h models.History
		if err := cur.Decode(&h); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, cur.Err()
}
