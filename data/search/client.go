package search

import (
	"context"
	"fmt"
	"iter"
	"sync"
	"time"
)

// healthProbeTimeout bounds the health checks run during engine election.
const healthProbeTimeout = 3 * time.Second

// enginePriority orders fallback election when the configured default
// engine is absent or unhealthy.
var enginePriority = []Engine{OpenSearch, Elasticsearch, Meilisearch, MongoDB}

// Client is the unified search client. It elects a primary engine from
// the registered adapters, qualifies index names with the configured
// prefix, provisions missing indices on write, and reports every
// operation to the Collector.
type Client struct {
	adapters  map[Engine]Adapter
	collector Collector
	engine    Engine
	config    *Config

	knownMu      sync.RWMutex
	knownIndices map[string]bool
}

// NewClient builds a client over the given adapters with default
// configuration. A nil collector disables metrics.
func NewClient(collector Collector, adapters ...Adapter) *Client {
	return NewClientWithConfig(collector, nil, adapters...)
}

// NewClientWithPrefix is NewClient with an index name prefix.
func NewClientWithPrefix(collector Collector, prefix string, adapters ...Adapter) *Client {
	cfg := defaultClientConfig()
	cfg.IndexPrefix = prefix
	return NewClientWithConfig(collector, cfg, adapters...)
}

// NewClientWithConfig builds a client with explicit configuration and
// elects the primary engine immediately.
func NewClientWithConfig(collector Collector, cfg *Config, adapters ...Adapter) *Client {
	if cfg == nil {
		cfg = defaultClientConfig()
	}
	if collector == nil {
		collector = NoOpCollector{}
	}

	byEngine := make(map[Engine]Adapter, len(adapters))
	for _, a := range adapters {
		byEngine[a.Type()] = a
	}

	c := &Client{
		adapters:     byEngine,
		collector:    collector,
		config:       cfg,
		knownIndices: make(map[string]bool),
	}
	c.electEngine()
	return c
}

func defaultClientConfig() *Config {
	return &Config{
		DefaultEngine:   string(Elasticsearch),
		AutoCreateIndex: true,
	}
}

// SetIndexPrefix changes the index name prefix and forgets which indices
// were already provisioned, since their qualified names changed.
func (c *Client) SetIndexPrefix(prefix string) {
	if c.config != nil {
		c.config.IndexPrefix = prefix
	}
	c.knownMu.Lock()
	c.knownIndices = make(map[string]bool)
	c.knownMu.Unlock()
}

// GetIndexPrefix returns the active index name prefix.
func (c *Client) GetIndexPrefix() string {
	if c.config == nil {
		return ""
	}
	return c.config.IndexPrefix
}

// GetSearchConfig returns the active configuration.
func (c *Client) GetSearchConfig() *Config {
	return c.config
}

// UpdateSearchConfig swaps the configuration and re-elects the primary
// engine under the new default.
func (c *Client) UpdateSearchConfig(cfg *Config) {
	c.config = cfg
	if cfg != nil {
		c.SetIndexPrefix(cfg.IndexPrefix)
	}
	c.electEngine()
}

// qualifyIndex prepends the configured prefix to a logical index name.
func (c *Client) qualifyIndex(index string) string {
	prefix := c.GetIndexPrefix()
	if prefix == "" {
		return index
	}
	return fmt.Sprintf("%s-%s", prefix, index)
}

// electEngine picks the primary engine: the configured default when it
// answers a health probe, then the fixed priority order, then anything
// that answers at all.
func (c *Client) electEngine() {
	ctx, cancel := context.WithTimeout(context.Background(), healthProbeTimeout)
	defer cancel()

	var candidates []Engine
	if c.config != nil && c.config.DefaultEngine != "" {
		candidates = append(candidates, Engine(c.config.DefaultEngine))
	}
	candidates = append(candidates, enginePriority...)

	for _, eng := range candidates {
		if adapter, ok := c.adapters[eng]; ok && adapter.Health(ctx) == nil {
			c.engine = eng
			return
		}
	}
	for eng, adapter := range c.adapters {
		if adapter.Health(ctx) == nil {
			c.engine = eng
			return
		}
	}
}

// primaryAdapter returns the elected engine's adapter, retrying election
// once if no engine was healthy at construction time.
func (c *Client) primaryAdapter() (Adapter, error) {
	if c.engine == "" {
		c.electEngine()
		if c.engine == "" {
			return nil, ErrNoEngineAvailable
		}
	}
	if adapter, ok := c.adapters[c.engine]; ok {
		return adapter, nil
	}
	return nil, ErrEngineNotFound
}

// Search runs a query on the primary engine.
func (c *Client) Search(ctx context.Context, req *Request) (*Response, error) {
	if _, err := c.primaryAdapter(); err != nil {
		return nil, err
	}
	return c.SearchWith(ctx, c.engine, req)
}

// SearchWith runs a query on a specific engine. The request is copied
// before the index name is qualified, so callers can reuse it.
func (c *Client) SearchWith(ctx context.Context, engine Engine, req *Request) (*Response, error) {
	adapter, ok := c.adapters[engine]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEngineNotFound, engine)
	}

	qualified := *req
	qualified.Index = c.qualifyIndex(req.Index)

	start := time.Now()
	resp, err := adapter.Search(ctx, &qualified)
	c.collector.SearchQuery(string(engine), err)

	if resp != nil {
		resp.Duration = time.Since(start)
		resp.Engine = engine
	}
	return resp, err
}

// Count returns the number of documents matching the request. The
// request's From and Size are ignored; a count probe never moves hits.
func (c *Client) Count(ctx context.Context, req *Request) (int64, error) {
	if _, err := c.primaryAdapter(); err != nil {
		return 0, err
	}
	return c.CountWith(ctx, c.engine, req)
}

// CountWith counts on a specific engine.
func (c *Client) CountWith(ctx context.Context, engine Engine, req *Request) (int64, error) {
	probe := *req
	probe.From = 0
	probe.Size = 0

	resp, err := c.SearchWith(ctx, engine, &probe)
	if err != nil {
		return 0, err
	}
	return resp.Total, nil
}

// ScanIDs streams every document id in the index through the primary
// engine's native deep pagination. The sequence is restartable: each
// range starts a fresh scan.
func (c *Client) ScanIDs(ctx context.Context, index string, batchSize int) iter.Seq2[string, error] {
	adapter, err := c.primaryAdapter()
	if err != nil {
		return failedScan(err)
	}
	return c.scanWith(ctx, adapter, index, batchSize)
}

// ScanIDsWith streams document ids from a specific engine.
func (c *Client) ScanIDsWith(ctx context.Context, engine Engine, index string, batchSize int) iter.Seq2[string, error] {
	adapter, ok := c.adapters[engine]
	if !ok {
		return failedScan(fmt.Errorf("%w: %s", ErrEngineNotFound, engine))
	}
	return c.scanWith(ctx, adapter, index, batchSize)
}

// failedScan is a sequence that yields only the construction error.
func failedScan(err error) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		yield("", err)
	}
}

// scanWith records one query per scan pass, not one per id.
func (c *Client) scanWith(ctx context.Context, adapter Adapter, index string, batchSize int) iter.Seq2[string, error] {
	qualified := c.qualifyIndex(index)
	return func(yield func(string, error) bool) {
		var scanErr error
		defer func() { c.collector.SearchQuery(string(adapter.Type()), scanErr) }()

		for id, err := range adapter.ScanIDs(ctx, qualified, batchSize) {
			if err != nil {
				scanErr = err
				yield("", err)
				return
			}
			if !yield(id, nil) {
				return
			}
		}
	}
}

// Index writes one document through the primary engine.
func (c *Client) Index(ctx context.Context, req *IndexRequest) error {
	if _, err := c.primaryAdapter(); err != nil {
		return err
	}
	return c.IndexWith(ctx, c.engine, req)
}

// IndexWith writes one document through a specific engine, provisioning
// the index first when auto-creation is on.
func (c *Client) IndexWith(ctx context.Context, engine Engine, req *IndexRequest) error {
	adapter, ok := c.adapters[engine]
	if !ok {
		return fmt.Errorf("%w: %s", ErrEngineNotFound, engine)
	}

	qualified := *req
	qualified.Index = c.qualifyIndex(req.Index)

	if c.autoCreate() {
		if err := c.ensureIndex(ctx, engine, qualified.Index); err != nil {
			return fmt.Errorf("failed to ensure index exists: %w", err)
		}
	}

	err := adapter.Index(ctx, &qualified)
	c.recordWrite("index", err)
	return err
}

// BulkIndex writes a document batch through the primary engine.
func (c *Client) BulkIndex(ctx context.Context, index string, documents []any) error {
	if _, err := c.primaryAdapter(); err != nil {
		return err
	}
	return c.BulkIndexWith(ctx, c.engine, index, documents)
}

// BulkIndexWith writes a document batch through a specific engine.
func (c *Client) BulkIndexWith(ctx context.Context, engine Engine, index string, documents []any) error {
	adapter, ok := c.adapters[engine]
	if !ok {
		return fmt.Errorf("%w: %s", ErrEngineNotFound, engine)
	}

	qualified := c.qualifyIndex(index)
	if c.autoCreate() {
		if err := c.ensureIndex(ctx, engine, qualified); err != nil {
			return fmt.Errorf("failed to ensure index exists: %w", err)
		}
	}

	err := adapter.BulkIndex(ctx, qualified, documents)
	c.recordWrite("bulk_index", err)
	return err
}

func (c *Client) autoCreate() bool {
	return c.config != nil && c.config.AutoCreateIndex
}

// GetAvailableEngines returns the engines that currently answer a health
// probe.
func (c *Client) GetAvailableEngines() []Engine {
	ctx, cancel := context.WithTimeout(context.Background(), healthProbeTimeout)
	defer cancel()

	var engines []Engine
	for eng, adapter := range c.adapters {
		if adapter.Health(ctx) == nil {
			engines = append(engines, eng)
		}
	}
	return engines
}

// GetEngine returns the elected primary engine.
func (c *Client) GetEngine() Engine {
	return c.engine
}

// Health probes every adapter and reports the results per engine.
func (c *Client) Health(ctx context.Context) map[Engine]error {
	results := make(map[Engine]error, len(c.adapters))
	for eng, adapter := range c.adapters {
		results[eng] = adapter.Health(ctx)
	}
	return results
}

// recordWrite reports a write operation to the collector.
func (c *Client) recordWrite(operation string, err error) {
	c.collector.SearchQuery(string(c.engine), err)
	if err == nil {
		c.collector.SearchIndex(string(c.engine), operation)
	}
}

// ensureIndex provisions the qualified index on the given engine once.
// Known indices are cached per engine so repeated writes skip the
// existence round trip.
func (c *Client) ensureIndex(ctx context.Context, engine Engine, indexName string) error {
	key := fmt.Sprintf("%s:%s", engine, indexName)

	c.knownMu.RLock()
	known := c.knownIndices[key]
	c.knownMu.RUnlock()
	if known {
		return nil
	}

	adapter, ok := c.adapters[engine]
	if !ok {
		return fmt.Errorf("%w: %s", ErrEngineNotFound, engine)
	}

	exists, err := adapter.IndexExists(ctx, indexName)
	if err != nil {
		return fmt.Errorf("failed to check index existence: %w", err)
	}
	if !exists {
		var settings *IndexSettings
		if c.config != nil {
			settings = c.config.IndexSettings
		}
		if err := adapter.CreateIndex(ctx, indexName, settings); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	c.knownMu.Lock()
	c.knownIndices[key] = true
	c.knownMu.Unlock()
	return nil
}
