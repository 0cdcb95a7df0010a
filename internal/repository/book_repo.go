package repository

import (
	"context"
	"errors"

	"github.com/DIEGUS15/readiego-book-recommender/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// upsertBatch tamaño de cada BulkWrite al sembrar metadata.
const upsertBatch = 1000

type BookRepository struct {
	col *mongo.Collection
}

func NewBookRepository(db *mongo.Database) *BookRepository {
	return &BookRepository{col: db.Collection("books")}
}

// EnsureIndexes crea el índice único por isbn.
func (r *BookRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "isbn", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// GetByISBN devuelve nil, nil si el libro no existe.
func (r *BookRepository) GetByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	var b models.Book
	err := r.col.FindOne(ctx, bson.M{"isbn": isbn}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// UpsertMany guarda (o reemplaza) los libros por isbn, en lotes.
func (r *BookRepository) UpsertMany(ctx context.Context, books []models.Book) (int64, error) {
	var total int64
	for i := 0; i < len(books); i += upsertBatch {
		j := min(i+upsertBatch, len(books))

		ops := make([]mongo.WriteModel, 0, j-i)
		for _, b := range books[i:j] {
			ops = append(ops, mongo.NewReplaceOneModel().
				SetFilter(bson.M{"isbn": b.ISBN}).
				SetReplacement(b).
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
