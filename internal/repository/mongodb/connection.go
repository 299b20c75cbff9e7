package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

// Connection wraps a MongoDB client bound to a single database.
type Connection struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewConnection connects to MongoDB and verifies the connection with a ping.
func NewConnection(ctx context.Context, uri, dbName string) (*Connection, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Connection{
		client: client,
		db:     client.Database(dbName),
	}, nil
}

// Database returns the bound database handle.
func (c *Connection) Database() *mongo.Database {
	return c.db
}

// Ping verifies the connection is alive.
func (c *Connection) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("mongodb client is nil")
	}
	return c.client.Ping(ctx, nil)
}

// Close disconnects the underlying client.
func (c *Connection) Close(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return c.client.Disconnect(ctx)
}
