package client

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	errNotConfigured = errors.New("mongodb client is not configured")
	errNoDatabase    = errors.New("mongodb database name is not configured")
)

// Client wraps a MongoDB client scoped to one database, which is all
// the document-scan adapter needs.
type Client struct {
	client   *mongo.Client
	database string
}

// NewClient connects to uri and pings the deployment so a bad address
// fails at startup rather than on first query. An empty uri yields an
// unconfigured client whose methods report errNotConfigured.
func NewClient(ctx context.Context, uri, database string) (*Client, error) {
	if uri == "" {
		return &Client{}, nil
	}

	cli, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongodb connect error: %w", err)
	}
	if err := cli.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongodb ping error: %w", err)
	}
	return &Client{client: cli, database: database}, nil
}

func (c *Client) ready() error {
	if c == nil || c.client == nil {
		return errNotConfigured
	}
	return nil
}

// GetClient returns the underlying MongoDB client, or nil when the
// wrapper is unconfigured.
func (c *Client) GetClient() *mongo.Client {
	if c == nil {
		return nil
	}
	return c.client
}

// Database returns the configured database handle.
func (c *Client) Database() (*mongo.Database, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	if c.database == "" {
		return nil, errNoDatabase
	}
	return c.client.Database(c.database), nil
}

// Collection returns a collection handle in the configured database.
func (c *Client) Collection(name string) (*mongo.Collection, error) {
	db, err := c.Database()
	if err != nil {
		return nil, err
	}
	return db.Collection(name), nil
}

// Health checks deployment reachability.
func (c *Client) Health(ctx context.Context) error {
	if err := c.ready(); err != nil {
		return err
	}
	return c.client.Ping(ctx, nil)
}

// Close disconnects from MongoDB. Closing an unconfigured client is a
// no-op.
func (c *Client) Close(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Disconnect(ctx)
}
