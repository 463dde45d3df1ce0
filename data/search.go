package data

import (
	"context"
	"errors"
	"iter"

	"github.com/ncobase/ncursor/data/search"
)

// ErrSearchUnavailable is returned when no search engine connection was
// configured or all engines failed to initialize.
var ErrSearchUnavailable = errors.New("search client not available")

// searchOrErr hands out the unified search client behind the nil guard
// every passthrough below needs.
func (d *Data) searchOrErr() (*search.Client, error) {
	d.mu.RLock()
	client := d.searchClient
	d.mu.RUnlock()
	if client == nil {
		return nil, ErrSearchUnavailable
	}
	return client, nil
}

// GetSearchClient returns the unified search client, or nil when no
// engine is available.
func (d *Data) GetSearchClient() *search.Client {
	client, err := d.searchOrErr()
	if err != nil {
		return nil
	}
	return client
}

// Search runs a query on the best available engine.
func (d *Data) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	client, err := d.searchOrErr()
	if err != nil {
		return nil, err
	}
	return client.Search(ctx, req)
}

// SearchWith runs a query on the named engine.
func (d *Data) SearchWith(ctx context.Context, engine search.Engine, req *search.Request) (*search.Response, error) {
	client, err := d.searchOrErr()
	if err != nil {
		return nil, err
	}
	return client.SearchWith(ctx, engine, req)
}

// Count returns the exact number of documents matching the request on
// the best available engine.
func (d *Data) Count(ctx context.Context, req *search.Request) (int64, error) {
	client, err := d.searchOrErr()
	if err != nil {
		return 0, err
	}
	return client.Count(ctx, req)
}

// CountWith counts matching documents on the named engine.
func (d *Data) CountWith(ctx context.Context, engine search.Engine, req *search.Request) (int64, error) {
	client, err := d.searchOrErr()
	if err != nil {
		return 0, err
	}
	return client.CountWith(ctx, engine, req)
}

// ScanIDs streams every document id of an index from the best available
// engine.
func (d *Data) ScanIDs(ctx context.Context, index string, batchSize int) iter.Seq2[string, error] {
	client, err := d.searchOrErr()
	if err != nil {
		return scanError(err)
	}
	return client.ScanIDs(ctx, index, batchSize)
}

// ScanIDsWith streams every document id of an index from the named
// engine.
func (d *Data) ScanIDsWith(ctx context.Context, engine search.Engine, index string, batchSize int) iter.Seq2[string, error] {
	client, err := d.searchOrErr()
	if err != nil {
		return scanError(err)
	}
	return client.ScanIDsWith(ctx, engine, index, batchSize)
}

func scanError(err error) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		yield("", err)
	}
}

// IndexDocument writes a document through the best available engine.
func (d *Data) IndexDocument(ctx context.Context, req *search.IndexRequest) error {
	client, err := d.searchOrErr()
	if err != nil {
		return err
	}
	return client.Index(ctx, req)
}

// IndexDocumentWith writes a document through the named engine.
func (d *Data) IndexDocumentWith(ctx context.Context, engine search.Engine, req *search.IndexRequest) error {
	client, err := d.searchOrErr()
	if err != nil {
		return err
	}
	return client.IndexWith(ctx, engine, req)
}

// BulkIndexDocuments writes a document batch through the best available
// engine.
func (d *Data) BulkIndexDocuments(ctx context.Context, index string, documents []any) error {
	client, err := d.searchOrErr()
	if err != nil {
		return err
	}
	return client.BulkIndex(ctx, index, documents)
}

// BulkIndexDocumentsWith writes a document batch through the named
// engine.
func (d *Data) BulkIndexDocumentsWith(ctx context.Context, engine search.Engine, index string, documents []any) error {
	client, err := d.searchOrErr()
	if err != nil {
		return err
	}
	return client.BulkIndexWith(ctx, engine, index, documents)
}

// GetAvailableSearchEngines returns engines that currently pass health
// checks.
func (d *Data) GetAvailableSearchEngines() []search.Engine {
	client, err := d.searchOrErr()
	if err != nil {
		return nil
	}
	return client.GetAvailableEngines()
}

// GetSearchEngine returns the primary search engine.
func (d *Data) GetSearchEngine() search.Engine {
	client, err := d.searchOrErr()
	if err != nil {
		return ""
	}
	return client.GetEngine()
}

// SearchHealth probes every connected engine.
func (d *Data) SearchHealth(ctx context.Context) map[search.Engine]error {
	client, err := d.searchOrErr()
	if err != nil {
		return nil
	}
	return client.Health(ctx)
}
