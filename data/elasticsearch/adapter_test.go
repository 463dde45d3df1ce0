package elasticsearch

import (
	"encoding/json"
	"testing"

	"github.com/ncobase/ncursor/data/search"
)

func decodeBody(t *testing.T, req *search.Request) map[string]any {
	t.Helper()

	body, err := buildSearchBody(req)
	if err != nil {
		t.Fatalf("buildSearchBody() error = %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal([]byte(body), &m); err != nil {
		t.Fatalf("buildSearchBody() produced invalid JSON: %v", err)
	}
	return m
}

func TestBuildSearchBody(t *testing.T) {
	t.Run("CountProbe", func(t *testing.T) {
		req := &search.Request{Index: "docs", Kind: search.DefaultKind, Query: search.MatchAll()}

		m := decodeBody(t, req)
		if got := m["size"].(float64); got != 0 {
			t.Errorf("size = %v, want 0", got)
		}
		if got := m["from"].(float64); got != 0 {
			t.Errorf("from = %v, want 0", got)
		}
		if m["track_total_hits"] != true {
			t.Error("track_total_hits should be true")
		}
		query := m["query"].(map[string]any)
		if _, ok := query["match_all"]; !ok {
			t.Errorf("query = %v, want match_all", query)
		}
		if _, ok := m["_source"]; ok {
			t.Error("nil fields should not constrain _source")
		}
	})

	t.Run("WindowWithText", func(t *testing.T) {
		req := &search.Request{
			Index: "docs",
			Query: search.Query{Text: "timeline"},
			From:  20,
			Size:  10,
		}

		m := decodeBody(t, req)
		if got := m["from"].(float64); got != 20 {
			t.Errorf("from = %v, want 20", got)
		}
		if got := m["size"].(float64); got != 10 {
			t.Errorf("size = %v, want 10", got)
		}
		query := m["query"].(map[string]any)
		mm, ok := query["multi_match"].(map[string]any)
		if !ok {
			t.Fatalf("query = %v, want multi_match", query)
		}
		if mm["query"] != "timeline" {
			t.Errorf("multi_match query = %v, want timeline", mm["query"])
		}
	})

	t.Run("KindAndFilters", func(t *testing.T) {
		req := &search.Request{
			Index: "docs",
			Kind:  "article",
			Query: search.Query{Filter: map[string]any{"status": "published"}},
			Size:  5,
		}

		m := decodeBody(t, req)
		boolQuery, ok := m["query"].(map[string]any)["bool"].(map[string]any)
		if !ok {
			t.Fatalf("query = %v, want bool", m["query"])
		}
		filters := boolQuery["filter"].([]any)
		if len(filters) != 2 {
			t.Fatalf("len(filters) = %d, want 2", len(filters))
		}

		seen := map[string]any{}
		for _, f := range filters {
			term := f.(map[string]any)["term"].(map[string]any)
			for field, value := range term {
				seen[field] = value
			}
		}
		if seen["status"] != "published" {
			t.Errorf("status filter = %v, want published", seen["status"])
		}
		if seen["kind"] != "article" {
			t.Errorf("kind filter = %v, want article", seen["kind"])
		}
	})

	t.Run("DefaultKindDoesNotFilter", func(t *testing.T) {
		req := &search.Request{Index: "docs", Kind: search.DefaultKind, Query: search.MatchAll(), Size: 5}

		m := decodeBody(t, req)
		if _, ok := m["query"].(map[string]any)["bool"]; ok {
			t.Errorf("query = %v, default kind should not add filters", m["query"])
		}
	})

	t.Run("EmptyFieldsDisableSource", func(t *testing.T) {
		req := &search.Request{
			Index: "docs",
			Query: search.Query{Fields: []string{}},
			Size:  5,
		}

		m := decodeBody(t, req)
		if m["_source"] != false {
			t.Errorf("_source = %v, want false", m["_source"])
		}
	})

	t.Run("FieldListSelectsSource", func(t *testing.T) {
		req := &search.Request{
			Index: "docs",
			Query: search.Query{Fields: []string{"id", "title"}},
			Size:  5,
		}

		m := decodeBody(t, req)
		fields, ok := m["_source"].([]any)
		if !ok || len(fields) != 2 {
			t.Fatalf("_source = %v, want [id title]", m["_source"])
		}
		if fields[0] != "id" || fields[1] != "title" {
			t.Errorf("_source = %v, want [id title]", fields)
		}
	})
}
