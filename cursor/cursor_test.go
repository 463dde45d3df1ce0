package cursor_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ncobase/ncursor/cursor"
	"github.com/ncobase/ncursor/data/search"
)

// fakeBackend serves windows out of an in-memory document slice and
// records every request it receives. The reported total can disagree
// with the real document count to simulate index churn.
type fakeBackend struct {
	total    int64
	docs     []search.Hit
	countErr error
	failFrom map[int64]error
	requests []search.Request
}

func (f *fakeBackend) Count(ctx context.Context, req *search.Request) (int64, error) {
	f.requests = append(f.requests, *req)
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.total, nil
}

func (f *fakeBackend) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	f.requests = append(f.requests, *req)
	if err := f.failFrom[req.From]; err != nil {
		return nil, err
	}

	var hits []search.Hit
	from := int(req.From)
	if from < len(f.docs) {
		end := from + req.Size
		if end > len(f.docs) {
			end = len(f.docs)
		}
		hits = f.docs[from:end]
	}
	return &search.Response{Total: f.total, Hits: hits}, nil
}

// windows returns the From offsets of the windowed fetches, skipping
// count probes.
func (f *fakeBackend) windows() []int64 {
	var offsets []int64
	for _, req := range f.requests {
		if req.Size > 0 {
			offsets = append(offsets, req.From)
		}
	}
	return offsets
}

func makeDocs(n int) []search.Hit {
	docs := make([]search.Hit, n)
	for i := range docs {
		docs[i] = search.Hit{
			ID:     fmt.Sprintf("doc-%d", i),
			Score:  1.0,
			Source: map[string]any{"seq": i},
		}
	}
	return docs
}

func newBackend(n int) *fakeBackend {
	return &fakeBackend{total: int64(n), docs: makeDocs(n)}
}

func collect(t *testing.T, c *cursor.Cursor) []search.Hit {
	t.Helper()
	ctx := context.Background()
	if err := c.Begin(ctx); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	var out []search.Hit
	for c.Next(ctx) {
		out = append(out, c.Document())
	}
	if err := c.Err(); err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	return out
}

func TestNewValidation(t *testing.T) {
	ctx := context.Background()

	if _, err := cursor.New(ctx, nil, "docs"); err == nil {
		t.Error("Expected error for nil backend, got nil")
	}
	if _, err := cursor.New(ctx, newBackend(1), ""); err == nil {
		t.Error("Expected error for empty index, got nil")
	}
}

func TestNewCountProbe(t *testing.T) {
	backend := newBackend(7)
	_, err := cursor.New(context.Background(), backend, "docs")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if len(backend.requests) != 1 {
		t.Fatalf("Expected exactly 1 count probe, got %d requests", len(backend.requests))
	}
	probe := backend.requests[0]
	if probe.Size != 0 {
		t.Errorf("Count probe should carry size 0, got %d", probe.Size)
	}
	if probe.Index != "docs" {
		t.Errorf("Count probe index = %q, want docs", probe.Index)
	}
}

func TestNewCountError(t *testing.T) {
	countErr := errors.New("cluster unreachable")
	backend := &fakeBackend{countErr: countErr}

	_, err := cursor.New(context.Background(), backend, "docs")
	if !errors.Is(err, countErr) {
		t.Errorf("Expected count error to propagate unchanged, got %v", err)
	}
}

func TestTotalCapping(t *testing.T) {
	cases := []struct {
		name      string
		actual    int
		opts      []cursor.Option
		wantTotal int64
		wantBatch int
	}{
		{"NoLimit", 25, nil, 25, 25},
		{"LimitBelowActual", 1000, []cursor.Option{cursor.WithLimit(5)}, 5, 5},
		{"LimitAboveActual", 25, []cursor.Option{cursor.WithLimit(100)}, 25, 25},
		{"ZeroLimit", 25, []cursor.Option{cursor.WithLimit(0)}, 0, 0},
		{"NegativeLimit", 25, []cursor.Option{cursor.WithLimit(-3)}, 0, 0},
		{"BatchClampedToTotal", 10, []cursor.Option{cursor.WithBatchSize(50)}, 10, 10},
		{"BatchBelowTotal", 100, []cursor.Option{cursor.WithBatchSize(30)}, 100, 30},
		{"NonPositiveBatch", 5, []cursor.Option{cursor.WithBatchSize(-1)}, 5, 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := cursor.New(context.Background(), newBackend(tc.actual), "docs", tc.opts...)
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if got := c.Total(); got != tc.wantTotal {
				t.Errorf("Total() = %d, want %d", got, tc.wantTotal)
			}
			if got := c.BatchSize(); got != tc.wantBatch {
				t.Errorf("BatchSize() = %d, want %d", got, tc.wantBatch)
			}
		})
	}
}

func TestWalkAllWindows(t *testing.T) {
	// 25 documents in windows of 10: full, full, partial
	backend := newBackend(25)
	c, err := cursor.New(context.Background(), backend, "docs", cursor.WithBatchSize(10))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	docs := collect(t, c)

	if len(docs) != 25 {
		t.Fatalf("Expected 25 documents, got %d", len(docs))
	}
	for i, doc := range docs {
		if want := fmt.Sprintf("doc-%d", i); doc.ID != want {
			t.Fatalf("Document %d out of order: got %s, want %s", i, doc.ID, want)
		}
	}

	wantWindows := []int64{0, 10, 20}
	gotWindows := backend.windows()
	if len(gotWindows) != len(wantWindows) {
		t.Fatalf("Expected %d windowed fetches, got %d (%v)", len(wantWindows), len(gotWindows), gotWindows)
	}
	for i, from := range wantWindows {
		if gotWindows[i] != from {
			t.Errorf("Window %d fetched at offset %d, want %d", i, gotWindows[i], from)
		}
	}
}

func TestLimitStopsEarly(t *testing.T) {
	// Large index, tiny limit: one window of exactly the limit
	backend := newBackend(1000)
	c, err := cursor.New(context.Background(), backend, "docs",
		cursor.WithBatchSize(10), cursor.WithLimit(5))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	docs := collect(t, c)

	if len(docs) != 5 {
		t.Fatalf("Expected 5 documents, got %d", len(docs))
	}
	windows := backend.windows()
	if len(windows) != 1 {
		t.Fatalf("Expected a single windowed fetch, got %v", windows)
	}
	last := backend.requests[len(backend.requests)-1]
	if last.Size != 5 {
		t.Errorf("Window size = %d, want 5", last.Size)
	}
}

func TestLimitLandsMidWindow(t *testing.T) {
	// Limit 25 over a large index with windows of 10: the third window
	// comes back full but only 5 of its documents are under the cap.
	backend := newBackend(1000)
	c, err := cursor.New(context.Background(), backend, "docs",
		cursor.WithBatchSize(10), cursor.WithLimit(25))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	docs := collect(t, c)

	if len(docs) != 25 {
		t.Fatalf("Expected exactly 25 documents, got %d", len(docs))
	}
	if last := docs[len(docs)-1].ID; last != "doc-24" {
		t.Errorf("Last document = %s, want doc-24", last)
	}

	wantWindows := []int64{0, 10, 20}
	gotWindows := backend.windows()
	if len(gotWindows) != len(wantWindows) {
		t.Fatalf("Expected fetches at %v, got %v", wantWindows, gotWindows)
	}
	for _, req := range backend.requests[1:] {
		if req.Size != 10 {
			t.Errorf("Window at offset %d requested size %d, want the full batch of 10", req.From, req.Size)
		}
	}
}

func TestEmptyResultSet(t *testing.T) {
	backend := newBackend(0)
	c, err := cursor.New(context.Background(), backend, "docs")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	docs := collect(t, c)

	if len(docs) != 0 {
		t.Errorf("Expected no documents, got %d", len(docs))
	}
	if windows := backend.windows(); len(windows) != 0 {
		t.Errorf("Zero-match cursor must not fetch windows, got %v", windows)
	}
}

func TestShrunkenIndex(t *testing.T) {
	// Count said 25 but only 13 documents remain: the short window at
	// offset 10 is consumed in full and the fetch at 13 comes back empty.
	backend := newBackend(25)
	backend.docs = backend.docs[:13]

	c, err := cursor.New(context.Background(), backend, "docs", cursor.WithBatchSize(10))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	docs := collect(t, c)

	if len(docs) != 13 {
		t.Fatalf("Expected 13 documents, got %d", len(docs))
	}

	wantWindows := []int64{0, 10, 13}
	gotWindows := backend.windows()
	if len(gotWindows) != len(wantWindows) {
		t.Fatalf("Expected fetches at %v, got %v", wantWindows, gotWindows)
	}
	for i := range wantWindows {
		if gotWindows[i] != wantWindows[i] {
			t.Errorf("Fetch %d at offset %d, want %d", i, gotWindows[i], wantWindows[i])
		}
	}
}

func TestWindowFetchError(t *testing.T) {
	fetchErr := errors.New("timeout")
	backend := newBackend(25)
	backend.failFrom = map[int64]error{10: fetchErr}

	c, err := cursor.New(context.Background(), backend, "docs", cursor.WithBatchSize(10))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx := context.Background()
	var got []search.Hit
	for c.Next(ctx) {
		got = append(got, c.Document())
	}

	if len(got) != 10 {
		t.Fatalf("Expected 10 documents before the failure, got %d", len(got))
	}
	if !errors.Is(c.Err(), fetchErr) {
		t.Errorf("Err() = %v, want the fetch error", c.Err())
	}

	// The cursor stays stopped until restarted
	if c.Next(ctx) {
		t.Error("Next should keep returning false after a failure")
	}
	if !errors.Is(c.Err(), fetchErr) {
		t.Errorf("Err() lost the failure: %v", c.Err())
	}

	// A restart is a fresh pass
	backend.failFrom = nil
	docs := collect(t, c)
	if len(docs) != 25 {
		t.Errorf("Expected 25 documents after restart, got %d", len(docs))
	}
}

func TestBeginRestarts(t *testing.T) {
	backend := newBackend(25)
	c, err := cursor.New(context.Background(), backend, "docs", cursor.WithBatchSize(10))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	first := collect(t, c)
	second := collect(t, c)

	if len(first) != 25 || len(second) != 25 {
		t.Fatalf("Expected two full passes of 25, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("Pass mismatch at %d: %s vs %s", i, first[i].ID, second[i].ID)
		}
	}

	wantWindows := []int64{0, 10, 20, 0, 10, 20}
	gotWindows := backend.windows()
	if len(gotWindows) != len(wantWindows) {
		t.Fatalf("Expected fetches at %v, got %v", wantWindows, gotWindows)
	}
	for i := range wantWindows {
		if gotWindows[i] != wantWindows[i] {
			t.Errorf("Fetch %d at offset %d, want %d", i, gotWindows[i], wantWindows[i])
		}
	}
}

func TestNextWithoutBegin(t *testing.T) {
	backend := newBackend(3)
	c, err := cursor.New(context.Background(), backend, "docs")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx := context.Background()
	var got []string
	for c.Next(ctx) {
		got = append(got, c.Document().ID)
	}
	if err := c.Err(); err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("Expected 3 documents without explicit Begin, got %d", len(got))
	}
}

func TestQueryTemplateIsolation(t *testing.T) {
	backend := newBackend(5)

	q := search.MatchAll()
	q.Filter = map[string]any{"status": "published"}
	q.Fields = []string{}

	c, err := cursor.New(context.Background(), backend, "docs",
		cursor.WithQuery(q), cursor.WithKind("article"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// Mutating the caller's template after construction must not show up
	// in later requests.
	q.Filter["status"] = "draft"
	q.Text = "oops"

	if err := c.Begin(context.Background()); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	last := backend.requests[len(backend.requests)-1]
	if got := last.Query.Filter["status"]; got != "published" {
		t.Errorf("Request filter = %v, want published", got)
	}
	if last.Query.Text != "" {
		t.Errorf("Request text = %q, want empty", last.Query.Text)
	}
	if last.Kind != "article" {
		t.Errorf("Request kind = %q, want article", last.Kind)
	}
	if last.Query.Fields == nil || len(last.Query.Fields) != 0 {
		t.Errorf("Request fields = %v, want empty id-only selector", last.Query.Fields)
	}
}

func TestInterleavedWindows(t *testing.T) {
	// Document() keeps returning the current hit between Next calls and
	// in-window advancement issues no requests.
	backend := newBackend(6)
	c, err := cursor.New(context.Background(), backend, "docs", cursor.WithBatchSize(3))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx := context.Background()
	if err := c.Begin(ctx); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	fetchesAfterBegin := len(backend.requests)

	if !c.Next(ctx) {
		t.Fatal("Next returned false on a populated cursor")
	}
	if c.Document().ID != "doc-0" {
		t.Errorf("Document() = %s, want doc-0", c.Document().ID)
	}
	if c.Document().ID != "doc-0" {
		t.Error("Repeated Document() calls must not advance the cursor")
	}

	c.Next(ctx)
	c.Next(ctx)
	if len(backend.requests) != fetchesAfterBegin {
		t.Errorf("In-window advancement issued %d extra requests", len(backend.requests)-fetchesAfterBegin)
	}

	if !c.Next(ctx) {
		t.Fatal("Next returned false at the second window")
	}
	if c.Document().ID != "doc-3" {
		t.Errorf("Document() = %s, want doc-3", c.Document().ID)
	}
	if len(backend.requests) != fetchesAfterBegin+1 {
		t.Errorf("Window boundary should cost exactly one request, got %d", len(backend.requests)-fetchesAfterBegin)
	}
}

func TestDocumentsSequence(t *testing.T) {
	t.Run("FullPass", func(t *testing.T) {
		backend := newBackend(25)
		c, err := cursor.New(context.Background(), backend, "docs", cursor.WithBatchSize(10))
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}

		var got []string
		for doc, err := range c.Documents(context.Background()) {
			if err != nil {
				t.Fatalf("Sequence failed: %v", err)
			}
			got = append(got, doc.ID)
		}
		if len(got) != 25 {
			t.Errorf("Expected 25 documents, got %d", len(got))
		}
	})

	t.Run("EarlyBreak", func(t *testing.T) {
		backend := newBackend(100)
		c, err := cursor.New(context.Background(), backend, "docs", cursor.WithBatchSize(10))
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}

		count := 0
		for _, err := range c.Documents(context.Background()) {
			if err != nil {
				t.Fatalf("Sequence failed: %v", err)
			}
			count++
			if count == 7 {
				break
			}
		}

		if count != 7 {
			t.Fatalf("Expected 7 documents, got %d", count)
		}
		if windows := backend.windows(); len(windows) != 1 {
			t.Errorf("Breaking inside the first window should cost one fetch, got %v", windows)
		}
	})

	t.Run("ErrorEndsSequence", func(t *testing.T) {
		fetchErr := errors.New("timeout")
		backend := newBackend(25)
		backend.failFrom = map[int64]error{10: fetchErr}

		c, err := cursor.New(context.Background(), backend, "docs", cursor.WithBatchSize(10))
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}

		var got []string
		var lastErr error
		for doc, err := range c.Documents(context.Background()) {
			if err != nil {
				lastErr = err
				continue
			}
			got = append(got, doc.ID)
		}

		if len(got) != 10 {
			t.Errorf("Expected 10 documents before the failure, got %d", len(got))
		}
		if !errors.Is(lastErr, fetchErr) {
			t.Errorf("Expected trailing fetch error, got %v", lastErr)
		}
	})

	t.Run("Restartable", func(t *testing.T) {
		backend := newBackend(5)
		c, err := cursor.New(context.Background(), backend, "docs")
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}

		for range 2 {
			count := 0
			for _, err := range c.Documents(context.Background()) {
				if err != nil {
					t.Fatalf("Sequence failed: %v", err)
				}
				count++
			}
			if count != 5 {
				t.Fatalf("Expected 5 documents per pass, got %d", count)
			}
		}
	})
}

func TestSingleDocumentWindows(t *testing.T) {
	backend := newBackend(3)
	c, err := cursor.New(context.Background(), backend, "docs", cursor.WithBatchSize(1))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	docs := collect(t, c)

	if len(docs) != 3 {
		t.Fatalf("Expected 3 documents, got %d", len(docs))
	}
	wantWindows := []int64{0, 1, 2}
	gotWindows := backend.windows()
	if len(gotWindows) != len(wantWindows) {
		t.Fatalf("Expected fetches at %v, got %v", wantWindows, gotWindows)
	}
}
