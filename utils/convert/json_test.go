package convert

import (
	"strings"
	"testing"
)

type article struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Views int    `json:"views"`
}

func TestToJSONMap(t *testing.T) {
	t.Run("Struct", func(t *testing.T) {
		m, err := ToJSONMap(article{ID: "a1", Title: "first", Views: 3})
		if err != nil {
			t.Fatalf("Failed to convert struct: %v", err)
		}
		if got, want := m["id"], "a1"; got != want {
			t.Errorf("m[id] = %v, want %v", got, want)
		}
		// JSON numbers decode as float64.
		if got, want := m["views"], float64(3); got != want {
			t.Errorf("m[views] = %v, want %v", got, want)
		}
	})

	t.Run("Nil", func(t *testing.T) {
		m, err := ToJSONMap(nil)
		if err != nil {
			t.Fatalf("ToJSONMap(nil) error: %v", err)
		}
		if m != nil {
			t.Errorf("ToJSONMap(nil) = %v, want nil", m)
		}
	})
}

func TestJSONRoundTrip(t *testing.T) {
	s, err := ToJSON(article{ID: "a2", Title: "second"})
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	var got article
	if err := FromJSON(s, &got); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if got.ID != "a2" || got.Title != "second" {
		t.Errorf("Round trip = %+v, want id=a2 title=second", got)
	}
}

func TestFromJSONEmptyString(t *testing.T) {
	got := article{ID: "keep"}
	if err := FromJSON("", &got); err != nil {
		t.Fatalf("FromJSON(\"\") error: %v", err)
	}
	if got.ID != "keep" {
		t.Errorf("FromJSON(\"\") modified target: %+v", got)
	}
}

func TestPrettyJSON(t *testing.T) {
	s, err := PrettyJSON(article{ID: "a4", Title: "fourth"})
	if err != nil {
		t.Fatalf("Failed to format: %v", err)
	}
	if !strings.Contains(s, "\n  \"id\": \"a4\"") {
		t.Errorf("PrettyJSON output not indented:\n%s", s)
	}
}
