package opensearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/ncobase/ncursor/data/opensearch/client"
	"github.com/ncobase/ncursor/data/search"
	"github.com/opensearch-project/opensearch-go/v4"
	"github.com/opensearch-project/opensearch-go/v4/opensearchapi"
)

const (
	scrollKeepAlive  = time.Minute
	defaultScanBatch = 1000
)

func init() {
	search.RegisterAdapterFactory(search.OpenSearch, func(conn any) (search.Adapter, error) {
		cli, ok := conn.(*client.Client)
		if !ok {
			return nil, fmt.Errorf("invalid opensearch connection type: %T", conn)
		}
		return NewAdapter(cli), nil
	})
}

// Adapter adapts the OpenSearch client to the search.Adapter interface.
type Adapter struct {
	client *client.Client
}

// NewAdapter creates a new OpenSearch adapter.
func NewAdapter(cli *client.Client) *Adapter {
	return &Adapter{client: cli}
}

// Type returns the engine type.
func (a *Adapter) Type() search.Engine {
	return search.OpenSearch
}

// Search executes a search request. A request with Size 0 acts as a count
// probe: only the exact total is populated on the response.
func (a *Adapter) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	body, err := buildSearchBody(req)
	if err != nil {
		return nil, err
	}

	res, err := a.client.Search(ctx, req.Index, body)
	if err != nil {
		return nil, err
	}

	resp := &search.Response{Total: int64(res.Hits.Total.Value)}
	for _, h := range res.Hits.Hits {
		hit := search.Hit{ID: h.ID, Score: float64(h.Score)}
		if len(h.Source) > 0 {
			if err := json.Unmarshal(h.Source, &hit.Source); err != nil {
				return nil, fmt.Errorf("failed to decode document %s: %w", h.ID, err)
			}
		}
		resp.Hits = append(resp.Hits, hit)
	}
	return resp, nil
}

// ScanIDs streams every document identifier of an index through the
// scroll API, batchSize ids per round trip.
func (a *Adapter) ScanIDs(ctx context.Context, index string, batchSize int) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		osc := a.client.GetClient()
		if osc == nil {
			yield("", fmt.Errorf("opensearch client is nil, cannot scan index %s", index))
			return
		}
		if batchSize <= 0 {
			batchSize = defaultScanBatch
		}

		body := fmt.Sprintf(`{"size":%d,"query":{"match_all":{}},"sort":["_doc"],"_source":false}`, batchSize)
		res, err := osc.Search(ctx, &opensearchapi.SearchReq{
			Indices: []string{index},
			Body:    strings.NewReader(body),
			Params:  opensearchapi.SearchParams{Scroll: scrollKeepAlive},
		})
		if err != nil {
			yield("", fmt.Errorf("opensearch scan error: %w", err))
			return
		}

		scrollID := ""
		if res.ScrollID != nil {
			scrollID = *res.ScrollID
		}
		defer func() {
			if scrollID != "" {
				_, _ = osc.Scroll.Delete(context.Background(), opensearchapi.ScrollDeleteReq{
					ScrollIDs: []string{scrollID},
				})
			}
		}()

		ids := hitIDs(res.Hits.Hits)
		for len(ids) > 0 {
			for _, id := range ids {
				if !yield(id, nil) {
					return
				}
			}

			page, err := osc.Scroll.Get(ctx, opensearchapi.ScrollGetReq{
				ScrollID: scrollID,
				Params:   opensearchapi.ScrollGetParams{Scroll: scrollKeepAlive},
			})
			if err != nil {
				yield("", fmt.Errorf("opensearch scroll error: %w", err))
				return
			}
			if page.ScrollID != nil {
				scrollID = *page.ScrollID
			}
			ids = hitIDs(page.Hits.Hits)
		}
	}
}

// Index indexes a single document.
func (a *Adapter) Index(ctx context.Context, req *search.IndexRequest) error {
	raw, err := json.Marshal(req.Document)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	return a.client.IndexDocument(ctx, req.Index, req.DocumentID, string(raw))
}

// BulkIndex indexes documents in one bulk request.
func (a *Adapter) BulkIndex(ctx context.Context, index string, documents []any) error {
	osc := a.client.GetClient()
	if osc == nil {
		return fmt.Errorf("opensearch client is nil, cannot bulk index")
	}
	if len(documents) == 0 {
		return nil
	}

	var buf strings.Builder
	for _, doc := range documents {
		action := map[string]any{}
		if id := search.DocumentID(doc); id != "" {
			action["_id"] = id
		}
		meta, err := json.Marshal(map[string]any{"index": action})
		if err != nil {
			return fmt.Errorf("failed to encode bulk action: %w", err)
		}
		raw, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to encode document: %w", err)
		}
		buf.Write(meta)
		buf.WriteByte('\n')
		buf.Write(raw)
		buf.WriteByte('\n')
	}

	res, err := osc.Bulk(ctx, opensearchapi.BulkReq{
		Index:  index,
		Body:   strings.NewReader(buf.String()),
		Params: opensearchapi.BulkParams{Refresh: "true"},
	})
	if err != nil {
		return fmt.Errorf("opensearch bulk error: %w", err)
	}
	if res.Errors {
		return fmt.Errorf("opensearch bulk request completed with item errors")
	}
	return nil
}

// IndexExists checks whether an index exists.
func (a *Adapter) IndexExists(ctx context.Context, indexName string) (bool, error) {
	osc := a.client.GetClient()
	if osc == nil {
		return false, fmt.Errorf("opensearch client is nil, cannot check index")
	}

	res, err := osc.Indices.Exists(ctx, opensearchapi.IndicesExistsReq{Indices: []string{indexName}})
	if err != nil {
		if res != nil && res.StatusCode == 404 {
			return false, nil
		}
		return false, fmt.Errorf("opensearch index exists check failed: %w", err)
	}
	return res.StatusCode == 200, nil
}

// CreateIndex creates an index with the given settings. Creating an index
// that already exists is not an error.
func (a *Adapter) CreateIndex(ctx context.Context, indexName string, settings *search.IndexSettings) error {
	osc := a.client.GetClient()
	if osc == nil {
		return fmt.Errorf("opensearch client is nil, cannot create index")
	}

	req := opensearchapi.IndicesCreateReq{Index: indexName}

	body := map[string]any{}
	if settings != nil {
		idx := map[string]any{}
		if settings.Shards > 0 {
			idx["number_of_shards"] = settings.Shards
		}
		if settings.Replicas >= 0 {
			idx["number_of_replicas"] = settings.Replicas
		}
		if settings.RefreshInterval != "" {
			idx["refresh_interval"] = settings.RefreshInterval
		}
		if len(idx) > 0 {
			body["settings"] = map[string]any{"index": idx}
		}
	}
	if len(body) > 0 {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode index settings: %w", err)
		}
		req.Body = strings.NewReader(string(raw))
	}

	if _, err := osc.Indices.Create(ctx, req); err != nil {
		var osErr *opensearch.StructError
		if errors.As(err, &osErr) && osErr.Err.Type == "resource_already_exists_exception" {
			return nil
		}
		return fmt.Errorf("opensearch index create failed: %w", err)
	}
	return nil
}

// Health checks cluster reachability. A red cluster is unhealthy.
func (a *Adapter) Health(ctx context.Context) error {
	status, err := a.client.Health(ctx)
	if err != nil {
		return err
	}
	if status == "red" {
		return fmt.Errorf("opensearch cluster status is red")
	}
	return nil
}

// buildSearchBody renders a unified request as an OpenSearch query body.
func buildSearchBody(req *search.Request) (string, error) {
	body := map[string]any{
		"from":             req.From,
		"size":             req.Size,
		"track_total_hits": true,
		"query":            buildQuery(req),
	}

	if req.Query.Fields != nil {
		if len(req.Query.Fields) == 0 {
			body["_source"] = false
		} else {
			body["_source"] = req.Query.Fields
		}
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to encode search body: %w", err)
	}
	return string(raw), nil
}

// buildQuery composes the query clause from the request text, the filter
// map and the kind constraint.
func buildQuery(req *search.Request) map[string]any {
	var base map[string]any
	if req.Query.Text == "" {
		base = map[string]any{"match_all": map[string]any{}}
	} else {
		base = map[string]any{"multi_match": map[string]any{"query": req.Query.Text}}
	}

	var filters []map[string]any
	for field, value := range req.Query.Filter {
		filters = append(filters, map[string]any{"term": map[string]any{field: value}})
	}
	if req.Kind != "" && req.Kind != search.DefaultKind {
		filters = append(filters, map[string]any{"term": map[string]any{"kind": req.Kind}})
	}

	if len(filters) == 0 {
		return base
	}
	return map[string]any{
		"bool": map[string]any{
			"must":   []map[string]any{base},
			"filter": filters,
		},
	}
}

func hitIDs(hits []opensearchapi.SearchHit) []string {
	ids := make([]string, 0, len(hits))
	for _, h := range hits {
		ids = append(ids, h.ID)
	}
	return ids
}
