package search

import (
	"fmt"
	"time"
)

// Engine names a search backend.
type Engine string

const (
	Elasticsearch Engine = "elasticsearch"
	OpenSearch    Engine = "opensearch"
	Meilisearch   Engine = "meilisearch"
	MongoDB       Engine = "mongodb"
)

// DefaultKind is the document kind used when callers do not constrain
// results to a kind. Adapters treat it as "no kind filter".
const DefaultKind = "generic"

// Query represents a reusable query template. The zero value matches
// everything. Templates hold no paging state; From and Size live on
// Request so one template can back any number of iterations.
type Query struct {
	// Text is matched against the searchable fields. Empty matches all.
	Text string `json:"text,omitempty"`
	// Filter holds field -> value equality constraints.
	Filter map[string]any `json:"filter,omitempty"`
	// Fields selects which source fields to return. Nil returns the full
	// document source. A non-nil empty slice returns identifiers only.
	Fields []string `json:"fields,omitempty"`
}

// MatchAll returns a fresh match-everything template. Each call returns a
// new value, so callers can extend the result without affecting others.
func MatchAll() Query {
	return Query{}
}

// Clone returns a deep copy of the query. The nil/empty distinction of
// Fields is preserved.
func (q Query) Clone() Query {
	out := Query{Text: q.Text}
	if q.Filter != nil {
		out.Filter = make(map[string]any, len(q.Filter))
		for k, v := range q.Filter {
			out.Filter[k] = v
		}
	}
	if q.Fields != nil {
		out.Fields = make([]string, len(q.Fields))
		copy(out.Fields, q.Fields)
	}
	return out
}

// IsMatchAll reports whether the template carries no text and no filters.
func (q Query) IsMatchAll() bool {
	return q.Text == "" && len(q.Filter) == 0
}

// Request is one engine-independent search call.
type Request struct {
	Index string `json:"index"`
	// Kind constrains results to one document kind. Empty or DefaultKind
	// means unconstrained.
	Kind  string `json:"kind,omitempty"`
	Query Query  `json:"query"`
	// From is the zero-based offset of the result window.
	From int64 `json:"from,omitempty"`
	// Size is the window size. Zero designates a count probe: adapters
	// return Total with no hits.
	Size int `json:"size,omitempty"`
}

// Response carries the hits of one window plus the index-wide total.
type Response struct {
	Total    int64         `json:"total"`
	Hits     []Hit         `json:"hits"`
	Duration time.Duration `json:"duration"`
	Engine   Engine        `json:"engine"`
}

// Hit is one matched document.
type Hit struct {
	ID     string         `json:"id"`
	Score  float64        `json:"score"`
	Source map[string]any `json:"source"`
}

// IndexRequest writes one document to an index.
type IndexRequest struct {
	Index      string `json:"index"`
	DocumentID string `json:"document_id,omitempty"`
	Document   any    `json:"document"`
}

// DocumentID extracts the "id" field of a document map. It returns an
// empty string when the document is not a map or carries no id, in which
// case the engine assigns one.
func DocumentID(doc any) string {
	m, ok := doc.(map[string]any)
	if !ok {
		return ""
	}
	v, ok := m["id"]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}
