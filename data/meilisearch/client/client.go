package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/meilisearch/meilisearch-go"
)

// Meilisearch resolves async writes through a task queue. Polling at
// this interval keeps WaitForTask responsive without hammering the
// service on long imports.
const taskPollInterval = 50 * time.Millisecond

var errNotConfigured = errors.New("meilisearch client is not configured")

// Client wraps the official Meilisearch service manager with the small
// surface the search adapter uses.
type Client struct {
	client meilisearch.ServiceManager
}

// NewClient connects to host. An empty host yields an unconfigured
// client whose methods report errNotConfigured.
func NewClient(host, apiKey string) (*Client, error) {
	if host == "" {
		return &Client{}, nil
	}
	return &Client{client: meilisearch.New(host, meilisearch.WithAPIKey(apiKey))}, nil
}

func (c *Client) ready() error {
	if c == nil || c.client == nil {
		return errNotConfigured
	}
	return nil
}

// GetClient returns the underlying service manager, or nil when the
// wrapper is unconfigured.
func (c *Client) GetClient() meilisearch.ServiceManager {
	if c == nil {
		return nil
	}
	return c.client
}

// Search runs a text query against an index with the given parameters.
func (c *Client) Search(ctx context.Context, indexName, query string, params *meilisearch.SearchRequest) (*meilisearch.SearchResponse, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}

	resp, err := c.client.Index(indexName).SearchWithContext(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("meilisearch search error: %w", err)
	}
	return resp, nil
}

// AddDocuments writes documents to an index keyed by primaryKey and
// waits for the resulting task, so failures surface to the caller
// instead of dying in the queue.
func (c *Client) AddDocuments(indexName string, documents []any, primaryKey string) error {
	if err := c.ready(); err != nil {
		return err
	}

	var pk *string
	if primaryKey != "" {
		pk = &primaryKey
	}

	task, err := c.client.Index(indexName).AddDocuments(documents, &meilisearch.DocumentOptions{PrimaryKey: pk})
	if err != nil {
		return fmt.Errorf("meilisearch add documents error: %w", err)
	}
	_, err = c.WaitForTask(task.TaskUID)
	return err
}

// GetDocuments pages through an index by offset, bypassing search
// entirely.
func (c *Client) GetDocuments(indexName string, query *meilisearch.DocumentsQuery) (*meilisearch.DocumentsResult, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}

	var result meilisearch.DocumentsResult
	if err := c.client.Index(indexName).GetDocuments(query, &result); err != nil {
		return nil, fmt.Errorf("meilisearch get documents error: %w", err)
	}
	return &result, nil
}

// GetIndexStats returns per index statistics. A not-found error here
// doubles as an existence probe.
func (c *Client) GetIndexStats(indexName string) (*meilisearch.StatsIndex, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	return c.client.Index(indexName).GetStats()
}

// CreateIndex registers a new index from config.
func (c *Client) CreateIndex(config *meilisearch.IndexConfig) (*meilisearch.TaskInfo, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}

	task, err := c.client.CreateIndex(config)
	if err != nil {
		return nil, fmt.Errorf("meilisearch create index error: %w", err)
	}
	return task, nil
}

// WaitForTask blocks until the task settles and converts a failed task
// into an error carrying the service's message.
func (c *Client) WaitForTask(taskUID int64) (*meilisearch.Task, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}

	task, err := c.client.WaitForTask(taskUID, taskPollInterval)
	if err != nil {
		return nil, fmt.Errorf("meilisearch wait for task error: %w", err)
	}
	if task.Status == meilisearch.TaskStatusFailed {
		return task, fmt.Errorf("meilisearch task %d failed: %s", taskUID, task.Error.Message)
	}
	return task, nil
}

// Health checks service reachability.
func (c *Client) Health() (*meilisearch.Health, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}

	health, err := c.client.Health()
	if err != nil {
		return nil, fmt.Errorf("meilisearch health check failed: %w", err)
	}
	return health, nil
}
