package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Client wraps the MongoDB client bound to one database
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewClient connects to uri and verifies the connection with a ping
func NewClient(ctx context.Context, uri, database string) (*Client, error) {
	if database == "" {
		return nil, fmt.Errorf("mongo database name is required")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("invalid mongo uri: %w", err)
	}

	// Test connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	return &Client{client: client, db: client.Database(database)}, nil
}

// Collection returns a handle to the named collection
func (c *Client) Collection(name string) *mongo.Collection {
	return c.db.Collection(name)
}

// Ping checks connectivity
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

// Close disconnects from the server
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
