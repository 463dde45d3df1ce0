package mongodb

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ncobase/ncursor/data/search"
)

func TestBuildFilter(t *testing.T) {
	t.Run("MatchAll", func(t *testing.T) {
		req := &search.Request{Index: "docs", Kind: search.DefaultKind, Query: search.MatchAll()}

		filter := buildFilter(req)
		if len(filter) != 0 {
			t.Errorf("filter = %v, want empty", filter)
		}
	})

	t.Run("KindAndFields", func(t *testing.T) {
		req := &search.Request{
			Index: "docs",
			Kind:  "article",
			Query: search.Query{Filter: map[string]any{"status": "published"}},
		}

		filter := buildFilter(req)
		if filter["kind"] != "article" {
			t.Errorf("kind = %v, want article", filter["kind"])
		}
		if filter["status"] != "published" {
			t.Errorf("status = %v, want published", filter["status"])
		}
	})

	t.Run("TextSearch", func(t *testing.T) {
		req := &search.Request{Index: "docs", Query: search.Query{Text: "timeline"}}

		filter := buildFilter(req)
		text, ok := filter["$text"].(bson.M)
		if !ok {
			t.Fatalf("filter = %v, want $text clause", filter)
		}
		if text["$search"] != "timeline" {
			t.Errorf("$search = %v, want timeline", text["$search"])
		}
	})
}

func TestDocumentID(t *testing.T) {
	oid := primitive.NewObjectID()

	tests := []struct {
		name string
		doc  bson.M
		want string
	}{
		{"ObjectID", bson.M{"_id": oid}, oid.Hex()},
		{"String", bson.M{"_id": "doc-1"}, "doc-1"},
		{"Missing", bson.M{}, ""},
		{"Numeric", bson.M{"_id": int64(7)}, "7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := documentID(tt.doc); got != tt.want {
				t.Errorf("documentID(%v) = %q, want %q", tt.doc, got, tt.want)
			}
		})
	}
}
