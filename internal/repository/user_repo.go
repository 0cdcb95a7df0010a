package repository

import (
	"context"
	"errors"

	"github.com/DIEGUS15/readiego-book-recommender/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection("users")}
}

func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// FindByID devuelve nil, nil si el usuario no existe.
func (r *UserRepository) FindByID(ctx context.Context, userID string) (*models.User, error) {
	var u models.User
	err := r.col.FindOne(ctx, bson.M{"userId": userID}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) UpsertMany(ctx context.Context, users []models.User) (int64, error) {
	var total int64
	for i := 0; i < len(users); i += upsertBatch {
		j := min(i+upsertBatch, len(users))

		ops := make([]mongo.WriteModel, 0, j-i)
		for _, u := range users[i:j] {
			ops = append(ops, mongo.NewReplaceOneModel().
				SetFilter(bson.M{"userId": u.UserID}).
				SetReplacement(u).
				SetUpsert(true))
		}

		res, err := r.col.BulkWrite(ctx, ops, options.BulkWrite().SetOrdered(false))
		if err != nil {
			return total, err
		}
		total += res.UpsertedCount + res.ModifiedCount
	}
	return total, nil
}
