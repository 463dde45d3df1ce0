package search

import (
	"context"
	"errors"
	"iter"
)

// Sentinel errors surfaced by Client when engine selection fails.
var (
	ErrNoEngineAvailable = errors.New("no search engine available")
	ErrEngineNotFound    = errors.New("search engine not found")
)

// Config carries client-level search settings: the shared index name
// prefix, the preferred engine, and index bootstrap behavior.
type Config struct {
	IndexPrefix     string
	DefaultEngine   string
	AutoCreateIndex bool
	IndexSettings   *IndexSettings
}

// IndexSettings describes how an index is provisioned when the client
// auto-creates one on first write.
type IndexSettings struct {
	Shards           int
	Replicas         int
	RefreshInterval  string
	SearchableFields []string
	FilterableFields []string
}

// Collector receives query and index events for metrics.
type Collector interface {
	SearchQuery(engine string, err error)
	SearchIndex(engine, operation string)
}

// NoOpCollector discards all events.
type NoOpCollector struct{}

func (NoOpCollector) SearchQuery(string, error)  {}
func (NoOpCollector) SearchIndex(string, string) {}

// Adapter interface for search engine implementations.
//
// Search must honor the count-probe rule: a request with Size == 0 returns
// the total match count and no hits. Implementations translate Query and
// Kind into the engine's native query form and must not retry failures.
//
// ScanIDs streams every document id in an index through the engine's own
// deep pagination (scroll, documents paging, native cursors). The sequence
// is lazy; iteration errors are yielded as the second value and end the
// sequence.
type Adapter interface {
	Search(ctx context.Context, req *Request) (*Response, error)
	ScanIDs(ctx context.Context, index string, batchSize int) iter.Seq2[string, error]
	Index(ctx context.Context, req *IndexRequest) error
	BulkIndex(ctx context.Context, index string, documents []any) error
	IndexExists(ctx context.Context, indexName string) (bool, error)
	CreateIndex(ctx context.Context, indexName string, settings *IndexSettings) error
	Health(ctx context.Context) error
	Type() Engine
}
