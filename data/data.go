package data

import (
	"context"
	"fmt"
	"sync"

	"github.com/ncobase/ncursor/data/config"
	"github.com/ncobase/ncursor/data/connection"
	esclient "github.com/ncobase/ncursor/data/elasticsearch/client"
	msclient "github.com/ncobase/ncursor/data/meilisearch/client"
	mgclient "github.com/ncobase/ncursor/data/mongodb/client"
	osclient "github.com/ncobase/ncursor/data/opensearch/client"
	"github.com/ncobase/ncursor/data/search"
)

// Data is the data layer. It owns the engine connections and a unified
// search client built over them. Every call to New returns an
// independent instance; callers that want to share one pass it around
// explicitly.
type Data struct {
	Conn *connection.Connections

	conf         *config.Config
	searchClient *search.Client
	collector    search.Collector

	mu     sync.RWMutex
	closed bool
}

// Option configures Data during construction.
type Option func(*Data)

// WithCollector sets the metrics collector for search operations.
func WithCollector(collector search.Collector) Option {
	return func(d *Data) {
		if collector == nil {
			return
		}
		d.collector = collector
	}
}

// New dials the configured engines and builds the search client over
// them. The returned cleanup closes every connection; errors during
// cleanup are reported but not returned.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Data, func(), error) {
	conn, err := connection.New(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	d := &Data{
		Conn:      conn,
		conf:      cfg,
		collector: search.NoOpCollector{},
	}
	for _, opt := range opts {
		opt(d)
	}
	d.searchClient = NewSearchClient(d, d.collector)

	cleanup := func() {
		for _, err := range d.Close() {
			fmt.Printf("data cleanup: %v\n", err)
		}
	}
	return d, cleanup, nil
}

// GetConfig returns the data layer configuration.
func (d *Data) GetConfig() *config.Config {
	return d.conf
}

// GetElasticsearch returns the Elasticsearch client, nil when not dialed.
func (d *Data) GetElasticsearch() *esclient.Client {
	if d.Conn == nil {
		return nil
	}
	return d.Conn.ES
}

// GetOpenSearch returns the OpenSearch client, nil when not dialed.
func (d *Data) GetOpenSearch() *osclient.Client {
	if d.Conn == nil {
		return nil
	}
	return d.Conn.OS
}

// GetMeilisearch returns the Meilisearch client, nil when not dialed.
func (d *Data) GetMeilisearch() *msclient.Client {
	if d.Conn == nil {
		return nil
	}
	return d.Conn.MS
}

// GetMongoDB returns the MongoDB client, nil when not dialed.
func (d *Data) GetMongoDB() *mgclient.Client {
	if d.Conn == nil {
		return nil
	}
	return d.Conn.MG
}

// Close releases every connection. Calling it again is a no-op.
func (d *Data) Close() []error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true

	var errs []error
	if d.Conn != nil {
		errs = d.Conn.Close()
		d.Conn = nil
	}
	d.searchClient = nil
	return errs
}
