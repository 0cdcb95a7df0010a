package db

import (
	"context"
	"fmt"
	"time"

	"github.com/DIEGUS15/readiego-book-recommender/internal/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo agrupa el cliente y la base configurada.
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Connect abre la conexión y hace ping. Con MONGO_URI vacío devuelve (nil, nil):
// Mongo es opcional y el servicio funciona solo con los CSV.
func Connect(ctx context.Context, cfg *config.Config) (*Mongo, error) {
	if cfg.MongoURI == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &Mongo{Client: client, DB: client.Database(cfg.MongoDB)}, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	if m == nil {
		return nil
	}
	return m.Client.Disconnect(ctx)
}
