package client

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/opensearch-project/opensearch-go/v4"
	"github.com/opensearch-project/opensearch-go/v4/opensearchapi"
)

const maxRetries = 3

var errNotConfigured = errors.New("opensearch client is not configured")

// Client wraps the official OpenSearch client with the operations the
// search adapter needs. Index management goes through GetClient.
type Client struct {
	client *opensearchapi.Client
}

// NewClient connects to the given addresses. Self-hosted clusters
// often run with self-signed certificates, so TLS verification can be
// switched off per connection. An empty address list yields an
// unconfigured client whose methods report errNotConfigured.
func NewClient(addresses []string, username, password string, insecureSkipTLS bool) (*Client, error) {
	if len(addresses) == 0 {
		return &Client{}, nil
	}

	cli, err := opensearchapi.NewClient(opensearchapi.Config{
		Client: opensearch.Config{
			Addresses:  addresses,
			Username:   username,
			Password:   password,
			MaxRetries: maxRetries,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: insecureSkipTLS},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create opensearch client: %w", err)
	}
	return &Client{client: cli}, nil
}

func (c *Client) ready() error {
	if c == nil || c.client == nil {
		return errNotConfigured
	}
	return nil
}

// GetClient returns the underlying OpenSearch client, or nil when the
// wrapper is unconfigured.
func (c *Client) GetClient() *opensearchapi.Client {
	if c == nil {
		return nil
	}
	return c.client
}

// Search runs the query body against indexName.
func (c *Client) Search(ctx context.Context, indexName, body string) (*opensearchapi.SearchResp, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}

	res, err := c.client.Search(ctx, &opensearchapi.SearchReq{
		Indices: []string{indexName},
		Body:    strings.NewReader(body),
	})
	if err != nil {
		return nil, fmt.Errorf("opensearch search error: %w", err)
	}
	return res, nil
}

// IndexDocument stores one document under documentID, refreshing the
// index so the write is immediately searchable.
func (c *Client) IndexDocument(ctx context.Context, indexName, documentID, body string) error {
	if err := c.ready(); err != nil {
		return err
	}

	_, err := c.client.Index(ctx, opensearchapi.IndexReq{
		Index:      indexName,
		DocumentID: documentID,
		Body:       strings.NewReader(body),
		Params:     opensearchapi.IndexParams{Refresh: "true"},
	})
	if err != nil {
		return fmt.Errorf("opensearch index error: %w", err)
	}
	return nil
}

// Health returns the cluster health status string (green, yellow, red).
func (c *Client) Health(ctx context.Context) (string, error) {
	if err := c.ready(); err != nil {
		return "", err
	}

	res, err := c.client.Cluster.Health(ctx, &opensearchapi.ClusterHealthReq{})
	if err != nil {
		return "", fmt.Errorf("opensearch health check failed: %w", err)
	}
	return res.Status, nil
}
