package commands

import (
	"testing"
)

func TestParseFilters(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		filter, err := parseFilters(nil)
		if err != nil {
			t.Fatalf("parseFilters(nil) error: %v", err)
		}
		if filter != nil {
			t.Errorf("parseFilters(nil) = %v, want nil", filter)
		}
	})

	t.Run("Pairs", func(t *testing.T) {
		filter, err := parseFilters([]string{"status=published", "author=pat"})
		if err != nil {
			t.Fatalf("Failed to parse filters: %v", err)
		}
		if got, want := filter["status"], "published"; got != want {
			t.Errorf("filter[status] = %v, want %v", got, want)
		}
		if got, want := filter["author"], "pat"; got != want {
			t.Errorf("filter[author] = %v, want %v", got, want)
		}
	})

	t.Run("ValueWithEquals", func(t *testing.T) {
		filter, err := parseFilters([]string{"expr=a=b"})
		if err != nil {
			t.Fatalf("Failed to parse filters: %v", err)
		}
		if got, want := filter["expr"], "a=b"; got != want {
			t.Errorf("filter[expr] = %v, want %v", got, want)
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		if _, err := parseFilters([]string{"nodelimiter"}); err == nil {
			t.Error("Expected error for filter without delimiter, got nil")
		}
		if _, err := parseFilters([]string{"=value"}); err == nil {
			t.Error("Expected error for filter without field, got nil")
		}
	})
}

func TestBuildQuery(t *testing.T) {
	t.Run("Flags", func(t *testing.T) {
		q, err := buildQuery("search text", []string{"kind=article"}, "")
		if err != nil {
			t.Fatalf("Failed to build query: %v", err)
		}
		if got, want := q.Text, "search text"; got != want {
			t.Errorf("Text = %q, want %q", got, want)
		}
		if got, want := q.Filter["kind"], "article"; got != want {
			t.Errorf("Filter[kind] = %v, want %v", got, want)
		}
		if q.Fields != nil {
			t.Errorf("Fields = %v, want nil", q.Fields)
		}
	})

	t.Run("RawJSON", func(t *testing.T) {
		raw := `{"text":"from json","filter":{"status":"draft"},"fields":["id","title"]}`
		q, err := buildQuery("", nil, raw)
		if err != nil {
			t.Fatalf("Failed to build query: %v", err)
		}
		if got, want := q.Text, "from json"; got != want {
			t.Errorf("Text = %q, want %q", got, want)
		}
		if got, want := q.Filter["status"], "draft"; got != want {
			t.Errorf("Filter[status] = %v, want %v", got, want)
		}
		if got, want := len(q.Fields), 2; got != want {
			t.Errorf("len(Fields) = %d, want %d", got, want)
		}
	})

	t.Run("FlagsOverlayJSON", func(t *testing.T) {
		raw := `{"text":"from json","filter":{"status":"draft"}}`
		q, err := buildQuery("overridden", []string{"author=pat"}, raw)
		if err != nil {
			t.Fatalf("Failed to build query: %v", err)
		}
		if got, want := q.Text, "overridden"; got != want {
			t.Errorf("Text = %q, want %q", got, want)
		}
		if got, want := q.Filter["status"], "draft"; got != want {
			t.Errorf("Filter[status] = %v, want %v", got, want)
		}
		if got, want := q.Filter["author"], "pat"; got != want {
			t.Errorf("Filter[author] = %v, want %v", got, want)
		}
	})

	t.Run("BadJSON", func(t *testing.T) {
		if _, err := buildQuery("", nil, "{not json"); err == nil {
			t.Error("Expected error for malformed query JSON, got nil")
		}
	})
}

func TestNewRootCmd(t *testing.T) {
	root := NewRootCmd()

	want := map[string]bool{"count": false, "walk": false, "scan": false, "seed": false, "version": false}
	for _, sub := range root.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("Expected subcommand %q to be registered", name)
		}
	}
}
