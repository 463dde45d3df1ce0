package meilisearch

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"strings"

	"github.com/meilisearch/meilisearch-go"
	"github.com/ncobase/ncursor/data/meilisearch/client"
	"github.com/ncobase/ncursor/data/search"
)

const defaultScanBatch = 1000

// primaryKey is the document field Meilisearch uses as identity.
const primaryKey = "id"

func init() {
	search.RegisterAdapterFactory(search.Meilisearch, func(conn any) (search.Adapter, error) {
		cli, ok := conn.(*client.Client)
		if !ok {
			return nil, fmt.Errorf("invalid meilisearch connection type: %T", conn)
		}
		return NewAdapter(cli), nil
	})
}

// Adapter adapts the Meilisearch client to the search.Adapter interface.
type Adapter struct {
	client *client.Client
}

// NewAdapter creates a new Meilisearch adapter.
func NewAdapter(cli *client.Client) *Adapter {
	return &Adapter{client: cli}
}

// Type returns the engine type.
func (a *Adapter) Type() search.Engine {
	return search.Meilisearch
}

// Search executes a search request. A request with Size 0 acts as a count
// probe. Meilisearch reports exhaustive totals only for page based
// pagination, so the probe requests the smallest possible page.
func (a *Adapter) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	params := &meilisearch.SearchRequest{}

	var filters []string
	for field, value := range req.Query.Filter {
		filters = append(filters, filterExpr(field, value))
	}
	if req.Kind != "" && req.Kind != search.DefaultKind {
		filters = append(filters, filterExpr("kind", req.Kind))
	}
	if len(filters) > 0 {
		params.Filter = strings.Join(filters, " AND ")
	}

	idsOnly := req.Query.Fields != nil && len(req.Query.Fields) == 0
	if req.Query.Fields != nil {
		if idsOnly {
			params.AttributesToRetrieve = []string{primaryKey}
		} else {
			params.AttributesToRetrieve = req.Query.Fields
		}
	}

	if req.Size == 0 {
		params.HitsPerPage = 1
		params.Page = 1
		resp, err := a.client.Search(ctx, req.Index, req.Query.Text, params)
		if err != nil {
			return nil, err
		}
		return &search.Response{Total: resp.TotalHits}, nil
	}

	params.Offset = req.From
	params.Limit = int64(req.Size)
	resp, err := a.client.Search(ctx, req.Index, req.Query.Text, params)
	if err != nil {
		return nil, err
	}

	out := &search.Response{Total: resp.EstimatedTotalHits}
	for _, h := range resp.Hits {
		doc, err := decodeDocument(h)
		if err != nil {
			return nil, err
		}
		hit := search.Hit{Source: doc}
		if v, ok := doc[primaryKey]; ok {
			hit.ID = fmt.Sprintf("%v", v)
		}
		if idsOnly {
			hit.Source = nil
		}
		out.Hits = append(out.Hits, hit)
	}
	return out, nil
}

// ScanIDs streams every document identifier of an index through the
// documents endpoint, batchSize ids per round trip.
func (a *Adapter) ScanIDs(ctx context.Context, index string, batchSize int) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if batchSize <= 0 {
			batchSize = defaultScanBatch
		}

		var offset int64
		for {
			if err := ctx.Err(); err != nil {
				yield("", err)
				return
			}

			res, err := a.client.GetDocuments(index, &meilisearch.DocumentsQuery{
				Offset: offset,
				Limit:  int64(batchSize),
				Fields: []string{primaryKey},
			})
			if err != nil {
				yield("", err)
				return
			}
			if len(res.Results) == 0 {
				return
			}

			for _, raw := range res.Results {
				doc, err := decodeDocument(raw)
				if err != nil {
					yield("", err)
					return
				}
				id := ""
				if v, ok := doc[primaryKey]; ok {
					id = fmt.Sprintf("%v", v)
				}
				if !yield(id, nil) {
					return
				}
			}

			offset += int64(len(res.Results))
			if offset >= res.Total {
				return
			}
		}
	}
}

// Index indexes a single document. Meilisearch keys documents by the
// primary key field, so an explicit document id is written into the
// document before indexing.
func (a *Adapter) Index(ctx context.Context, req *search.IndexRequest) error {
	doc := req.Document
	if req.DocumentID != "" {
		if m, ok := doc.(map[string]any); ok {
			keyed := make(map[string]any, len(m)+1)
			for k, v := range m {
				keyed[k] = v
			}
			keyed[primaryKey] = req.DocumentID
			doc = keyed
		}
	}
	return a.client.AddDocuments(req.Index, []any{doc}, primaryKey)
}

// BulkIndex indexes documents in one batch.
func (a *Adapter) BulkIndex(ctx context.Context, index string, documents []any) error {
	if len(documents) == 0 {
		return nil
	}
	return a.client.AddDocuments(index, documents, primaryKey)
}

// IndexExists checks whether an index exists.
func (a *Adapter) IndexExists(ctx context.Context, indexName string) (bool, error) {
	_, err := a.client.GetIndexStats(indexName)
	if err != nil {
		if strings.Contains(err.Error(), "index_not_found") ||
			strings.Contains(err.Error(), "not found") {
			return false, nil
		}
		return false, fmt.Errorf("meilisearch index exists check failed: %w", err)
	}
	return true, nil
}

// CreateIndex creates an index and applies searchable and filterable
// attributes from the settings. Creating an index that already exists is
// not an error.
func (a *Adapter) CreateIndex(ctx context.Context, indexName string, settings *search.IndexSettings) error {
	task, err := a.client.CreateIndex(&meilisearch.IndexConfig{
		Uid:        indexName,
		PrimaryKey: primaryKey,
	})
	if err != nil {
		if strings.Contains(err.Error(), "index_already_exists") {
			return nil
		}
		return err
	}
	if _, err := a.client.WaitForTask(task.TaskUID); err != nil {
		if strings.Contains(err.Error(), "index_already_exists") {
			return nil
		}
		return err
	}

	if settings == nil {
		return nil
	}

	sm := a.client.GetClient()
	if sm == nil {
		return fmt.Errorf("meilisearch client is nil, cannot apply index settings")
	}
	index := sm.Index(indexName)

	if len(settings.SearchableFields) > 0 {
		searchable := make([]string, len(settings.SearchableFields))
		copy(searchable, settings.SearchableFields)
		if _, err := index.UpdateSearchableAttributes(&searchable); err != nil {
			return fmt.Errorf("failed to set searchable attributes for index %s: %w", indexName, err)
		}
	}
	if len(settings.FilterableFields) > 0 {
		filterable := make([]any, len(settings.FilterableFields))
		for i, f := range settings.FilterableFields {
			filterable[i] = f
		}
		if _, err := index.UpdateFilterableAttributes(&filterable); err != nil {
			return fmt.Errorf("failed to set filterable attributes for index %s: %w", indexName, err)
		}
	}
	return nil
}

// Health checks service reachability.
func (a *Adapter) Health(ctx context.Context) error {
	_, err := a.client.Health()
	return err
}

// filterExpr renders one equality constraint as a Meilisearch filter
// expression. String values are quoted, other values compare as typed
// literals.
func filterExpr(field string, value any) string {
	if s, ok := value.(string); ok {
		return fmt.Sprintf("%s = '%s'", field, strings.ReplaceAll(s, "'", "\\'"))
	}
	return fmt.Sprintf("%s = %v", field, value)
}

// decodeDocument renders an engine hit as a plain map. Hits arrive as maps
// of raw JSON, so values go through one decode round trip.
func decodeDocument(hit any) (map[string]any, error) {
	raw, err := json.Marshal(hit)
	if err != nil {
		return nil, fmt.Errorf("failed to encode meilisearch hit: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode meilisearch hit: %w", err)
	}
	return doc, nil
}
