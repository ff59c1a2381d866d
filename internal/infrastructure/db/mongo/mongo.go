package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

// Config holds the connection settings of the Mongo backend.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Open creates a client without waiting for a server; the driver connects
// in the background.
func Open(cfg Config) (*mongo.Client, *mongo.Database, error) {
	client, err := mongo.Connect(context.Background(), options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(timeout(cfg)))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	return client, client.Database(cfg.Database), nil
}

// Connect opens a client, pings the primary and returns the selected database.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	client, db, err := Open(cfg)
	if err != nil {
		return nil, nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout(cfg))
	defer cancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, db, nil
}

func timeout(cfg Config) time.Duration {
	if cfg.Timeout <= 0 {
		return connectTimeout
	}
	return cfg.Timeout
}
