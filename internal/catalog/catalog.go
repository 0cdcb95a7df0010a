// Package catalog resuelve la metadata de libros y usuarios para enriquecer
// las respuestas. El motor solo maneja ids; todo lo legible sale de acá.
package catalog

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/DIEGUS15/readiego-book-recommender/internal/models"
	"github.com/DIEGUS15/readiego-book-recommender/internal/repository"
)

// Catalog busca metadata. Lo que no existe devuelve nil, nil.
type Catalog interface {
	Book(ctx context.Context, isbn string) (*models.Book, error)
	User(ctx context.Context, userID string) (*models.User, error)
}

// Memory catálogo de solo lectura armado desde los CSV.
type Memory struct {
	books map[string]models.Book
	users map[string]models.User
}

// NewMemory indexa libros por ISBN y usuarios por id. Con ids repetidos queda la primera fila.
func NewMemory(books []models.Book, users []models.User) *Memory {
	m := &Memory{
		books: make(map[string]models.Book, len(books)),
		users: make(map[string]models.User, len(users)),
	}
	for _, b := range books {
		if _, ok := m.books[b.ISBN]; !ok {
			m.books[b.ISBN] = b
		}
	}
	for _, u := range users {
		if _, ok := m.users[u.UserID]; !ok {
			m.users[u.UserID] = u
		}
	}
	return m
}

func (m *Memory) Book(_ context.Context, isbn string) (*models.Book, error) {
	b, ok := m.books[isbn]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (m *Memory) User(_ context.Context, userID string) (*models.User, error) {
	u, ok := m.users[userID]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// Mongo sirve la metadata de las colecciones books y users.
type Mongo struct {
	books *repository.BookRepository
	users *repository.UserRepository
}

func NewMongo(books *repository.BookRepository, users *repository.UserRepository) *Mongo {
	return &Mongo{books: books, users: users}
}

func (m *Mongo) Book(ctx context.Context, isbn string) (*models.Book, error) {
	return m.books.GetByISBN(ctx, isbn)
}

func (m *Mongo) User(ctx context.Context, userID string) (*models.User, error) {
	return m.users.FindByID(ctx, userID)
}

// Seed crea índices y hace upsert de la metadata del dataset en Mongo.
//
//nolint:gocritic // zerolog.Logger is passed by value
func (m *Mongo) Seed(ctx context.Context, books []models.Book, users []models.User, logger zerolog.Logger) error {
	if err := m.books.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("books indexes: %w", err)
	}
	if err := m.users.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}

	nb, err := m.books.UpsertMany(ctx, books)
	if err != nil {
		return fmt.Errorf("seed books: %w", err)
	}
	nu, err := m.users.UpsertMany(ctx, users)
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	logger.Info().Int64("books", nb).Int64("users", nu).Msg("metadata seeded into mongo")
	return nil
}
