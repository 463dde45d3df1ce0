package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var errNotConfigured = errors.New("elasticsearch client is not configured")

// Client is a thin wrapper over the official Elasticsearch client. It
// exposes only the operations the search adapter needs and keeps the
// raw *elasticsearch.Client reachable for request-level APIs.
type Client struct {
	client *elasticsearch.Client
}

// NewClient connects to the given addresses. An empty address list
// yields an unconfigured client whose methods report errNotConfigured,
// which lets callers construct the wrapper unconditionally.
func NewClient(addresses []string, username, password string) (*Client, error) {
	if len(addresses) == 0 {
		return &Client{}, nil
	}

	cli, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: addresses,
		Username:  username,
		Password:  password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}
	return &Client{client: cli}, nil
}

func (c *Client) ready() error {
	if c == nil || c.client == nil {
		return errNotConfigured
	}
	return nil
}

// GetClient returns the underlying Elasticsearch client, or nil when
// the wrapper is unconfigured.
func (c *Client) GetClient() *elasticsearch.Client {
	if c == nil {
		return nil
	}
	return c.client
}

// Search runs the query body against indexName and returns the raw
// response. The caller owns the response body and must close it.
func (c *Client) Search(ctx context.Context, indexName, body string) (*esapi.Response, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}

	do := c.client.Search
	res, err := do(
		do.WithContext(ctx),
		do.WithIndex(indexName),
		do.WithBody(strings.NewReader(body)),
		do.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch search error: %w", err)
	}
	return res, nil
}

// IndexDocument stores one document under documentID, refreshing the
// index so the write is immediately searchable.
func (c *Client) IndexDocument(ctx context.Context, indexName, documentID, body string) error {
	if err := c.ready(); err != nil {
		return err
	}

	res, err := esapi.IndexRequest{
		Index:      indexName,
		DocumentID: documentID,
		Body:       strings.NewReader(body),
		Refresh:    "true",
	}.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("elasticsearch index error: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch index error: %s", res.String())
	}
	return nil
}

// Health verifies the cluster answers an info request.
func (c *Client) Health(ctx context.Context) error {
	if err := c.ready(); err != nil {
		return err
	}

	res, err := c.client.Info(c.client.Info.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch health check failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch health check failed: %s", res.String())
	}
	return nil
}
