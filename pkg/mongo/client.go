package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/angelmondragon/subtrack/pkg/config"
	"github.com/angelmondragon/subtrack/pkg/logger"
)

// Client wraps the shared document-store connection. It is constructed once
// at startup and handed to repositories, never looked up globally.
type Client struct {
	conn *mongo.Client
	db   *mongo.Database
}

// Pinger exposes the health check surface.
type Pinger interface {
	Ping(ctx context.Context) error
}

// New boots a pooled driver client using the provided configuration and
// verifies the deployment is reachable before returning.
func New(ctx context.Context, cfg config.MongoConfig, logg *logger.Logger) (*Client, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("mongo URI is required")
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout)

	if cfg.MaxPoolSize > 0 {
		opts = opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}

	conn, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("opening mongo connection: %w", err)
	}

	pingCtx := ctx
	if cfg.PingTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.PingTimeout)
		defer cancel()
	}
	if err := conn.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = conn.Disconnect(ctx)
		return nil, fmt.Errorf("pinging mongo deployment: %w", err)
	}

	if logg != nil {
		logg.Info(ctx, "document store connection established")
	}

	return &Client{
		conn: conn,
		db:   conn.Database(cfg.Database),
	}, nil
}

// Database returns the configured database handle.
func (c *Client) Database() *mongo.Database {
	return c.db
}

// Collection returns a handle for the named collection.
func (c *Client) Collection(name string) *mongo.Collection {
	return c.db.Collection(name)
}

// Ping verifies the deployment is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.conn.Ping(ctx, readpref.Primary())
}

// Close shuts down the pooled connections.
func (c *Client) Close(ctx context.Context) error {
	return c.conn.Disconnect(ctx)
}
