package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/ncobase/ncursor/data/elasticsearch/client"
	"github.com/ncobase/ncursor/data/search"
)

const (
	scrollKeepAlive  = time.Minute
	defaultScanBatch = 1000
)

func init() {
	search.RegisterAdapterFactory(search.Elasticsearch, func(conn any) (search.Adapter, error) {
		cli, ok := conn.(*client.Client)
		if !ok {
			return nil, fmt.Errorf("invalid elasticsearch connection type: %T", conn)
		}
		return NewAdapter(cli), nil
	})
}

// Adapter adapts the Elasticsearch client to the search.Adapter interface.
type Adapter struct {
	client *client.Client
}

// NewAdapter creates a new Elasticsearch adapter.
func NewAdapter(cli *client.Client) *Adapter {
	return &Adapter{client: cli}
}

// Type returns the engine type.
func (a *Adapter) Type() search.Engine {
	return search.Elasticsearch
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
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch search failed: %s", res.String())
	}

	var parsed struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				ID     string          `json:"_id"`
				Score  float64         `json:"_score"`
				Source json.RawMessage `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode elasticsearch response: %w", err)
	}

	resp := &search.Response{Total: parsed.Hits.Total.Value}
	for _, h := range parsed.Hits.Hits {
		hit := search.Hit{ID: h.ID, Score: h.Score}
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
		es := a.client.GetClient()
		if es == nil {
			yield("", fmt.Errorf("elasticsearch client is nil, cannot scan index %s", index))
			return
		}
		if batchSize <= 0 {
			batchSize = defaultScanBatch
		}

		body := `{"query":{"match_all":{}},"sort":["_doc"],"_source":false}`
		res, err := es.Search(
			es.Search.WithContext(ctx),
			es.Search.WithIndex(index),
			es.Search.WithBody(strings.NewReader(body)),
			es.Search.WithSize(batchSize),
			es.Search.WithScroll(scrollKeepAlive),
		)
		if err != nil {
			yield("", fmt.Errorf("elasticsearch scan error: %w", err))
			return
		}

		scrollID, ids, err := decodeScrollPage(res)
		if err != nil {
			yield("", err)
			return
		}
		defer func() { clearScroll(es, scrollID) }()

		for len(ids) > 0 {
			for _, id := range ids {
				if !yield(id, nil) {
					return
				}
			}

			res, err := es.Scroll(
				es.Scroll.WithContext(ctx),
				es.Scroll.WithScrollID(scrollID),
				es.Scroll.WithScroll(scrollKeepAlive),
			)
			if err != nil {
				yield("", fmt.Errorf("elasticsearch scroll error: %w", err))
				return
			}
			scrollID, ids, err = decodeScrollPage(res)
			if err != nil {
				yield("", err)
				return
			}
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
	es := a.client.GetClient()
	if es == nil {
		return fmt.Errorf("elasticsearch client is nil, cannot bulk index")
	}
	if len(documents) == 0 {
		return nil
	}

	var buf bytes.Buffer
	for _, doc := range documents {
		action := map[string]any{"_index": index}
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

	res, err := es.Bulk(bytes.NewReader(buf.Bytes()),
		es.Bulk.WithContext(ctx),
		es.Bulk.WithIndex(index),
		es.Bulk.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch bulk error: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch bulk failed: %s", res.String())
	}

	var report struct {
		Errors bool `json:"errors"`
	}
	if err := json.NewDecoder(res.Body).Decode(&report); err != nil {
		return fmt.Errorf("failed to decode bulk response: %w", err)
	}
	if report.Errors {
		return fmt.Errorf("elasticsearch bulk request completed with item errors")
	}
	return nil
}

// IndexExists checks whether an index exists.
func (a *Adapter) IndexExists(ctx context.Context, indexName string) (bool, error) {
	es := a.client.GetClient()
	if es == nil {
		return false, fmt.Errorf("elasticsearch client is nil, cannot check index")
	}

	res, err := es.Indices.Exists([]string{indexName}, es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return false, fmt.Errorf("elasticsearch index exists check failed: %w", err)
	}
	defer res.Body.Close()

	return res.StatusCode == 200, nil
}

// CreateIndex creates an index with the given settings. Creating an index
// that already exists is not an error.
func (a *Adapter) CreateIndex(ctx context.Context, indexName string, settings *search.IndexSettings) error {
	es := a.client.GetClient()
	if es == nil {
		return fmt.Errorf("elasticsearch client is nil, cannot create index")
	}

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

	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode index settings: %w", err)
	}

	res, err := es.Indices.Create(indexName,
		es.Indices.Create.WithContext(ctx),
		es.Indices.Create.WithBody(bytes.NewReader(raw)),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch index create failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		if strings.Contains(res.String(), "resource_already_exists_exception") {
			return nil
		}
		return fmt.Errorf("elasticsearch index create failed: %s", res.String())
	}
	return nil
}

// Health checks cluster reachability.
func (a *Adapter) Health(ctx context.Context) error {
	return a.client.Health(ctx)
}

// buildSearchBody renders a unified request as an Elasticsearch query body.
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

func decodeScrollPage(res *esapi.Response) (string, []string, error) {
	defer res.Body.Close()

	if res.IsError() {
		return "", nil, fmt.Errorf("elasticsearch scan failed: %s", res.String())
	}

	var page struct {
		ScrollID string `json:"_scroll_id"`
		Hits     struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&page); err != nil {
		return "", nil, fmt.Errorf("failed to decode scroll response: %w", err)
	}

	ids := make([]string, 0, len(page.Hits.Hits))
	for _, h := range page.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return page.ScrollID, ids, nil
}

func clearScroll(es *elasticsearch.Client, scrollID string) {
	if scrollID == "" {
		return
	}
	res, err := es.ClearScroll(es.ClearScroll.WithScrollID(scrollID))
	if err != nil {
		return
	}
	res.Body.Close()
}
