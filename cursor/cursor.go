package cursor

import (
	"context"
	"errors"

	"github.com/ncobase/ncursor/data/search"
)

// DefaultBatchSize is the window size used when none is configured.
const DefaultBatchSize = 10000

// Searcher is the backend contract the cursor iterates against.
// *search.Client satisfies it. The handle is borrowed: the cursor only
// issues queries and never closes it.
type Searcher interface {
	Count(ctx context.Context, req *search.Request) (int64, error)
	Search(ctx context.Context, req *search.Request) (*search.Response, error)
}

// Cursor walks every document matching a query template, fetching windows
// of at most BatchSize documents per request. The total match count is
// probed once at construction and fixed for the cursor's lifetime.
//
// A cursor supports one pass at a time and is not safe for concurrent use.
// Begin restarts a finished or failed pass from the first document.
type Cursor struct {
	backend Searcher
	index   string
	kind    string
	query   search.Query

	total int64
	batch int

	offset  int64
	window  []search.Hit
	pos     int
	current search.Hit
	started bool
	done    bool
	err     error
}

// New creates a cursor over index and probes the backend once for the
// total match count. The effective total is capped by WithLimit, and the
// window size by the effective total. The query template is deep-copied,
// so later changes to the caller's value never affect the cursor.
//
// Count errors are returned unchanged.
func New(ctx context.Context, backend Searcher, index string, opts ...Option) (*Cursor, error) {
	if backend == nil {
		return nil, errors.New("search backend is required")
	}
	if index == "" {
		return nil, errors.New("index name is required")
	}

	s := settings{
		kind:  search.DefaultKind,
		query: search.MatchAll(),
		batch: DefaultBatchSize,
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.batch <= 0 {
		s.batch = DefaultBatchSize
	}

	c := &Cursor{
		backend: backend,
		index:   index,
		kind:    s.kind,
		query:   s.query.Clone(),
	}

	actual, err := backend.Count(ctx, c.request(0, 0))
	if err != nil {
		return nil, err
	}

	total := actual
	if total < 0 {
		total = 0
	}
	if s.hasLimit {
		limit := s.limit
		if limit < 0 {
			limit = 0
		}
		if limit < total {
			total = limit
		}
	}
	c.total = total

	batch := int64(s.batch)
	if batch > total {
		batch = total
	}
	c.batch = int(batch)

	return c, nil
}

// Begin resets the cursor to the first document and primes the first
// window. A zero-total cursor is marked exhausted without a request.
func (c *Cursor) Begin(ctx context.Context) error {
	c.offset = 0
	c.window = nil
	c.pos = 0
	c.current = search.Hit{}
	c.done = false
	c.err = nil
	c.started = true
	c.fetch(ctx)
	return c.err
}

// Next advances to the following document, fetching the next window when
// the current one is consumed. It returns false when the result set is
// exhausted or a request failed; Err distinguishes the two. Calling Next
// on a fresh cursor primes the first window implicitly.
func (c *Cursor) Next(ctx context.Context) bool {
	if c.err != nil {
		return false
	}
	if !c.started {
		if err := c.Begin(ctx); err != nil {
			return false
		}
	}
	if c.pos < len(c.window) {
		c.current = c.window[c.pos]
		c.pos++
		return true
	}
	if c.done {
		return false
	}
	c.fetch(ctx)
	if c.err != nil || c.done {
		return false
	}
	c.current = c.window[0]
	c.pos = 1
	return true
}

// Document returns the hit produced by the last successful Next call.
func (c *Cursor) Document() search.Hit {
	return c.current
}

// Err returns the error that stopped the pass, or nil after normal
// exhaustion. Begin clears it.
func (c *Cursor) Err() error {
	return c.err
}

// Total returns the effective number of documents the cursor will visit:
// the probed match count capped by the configured limit.
func (c *Cursor) Total() int64 {
	return c.total
}

// BatchSize returns the window size used for fetches.
func (c *Cursor) BatchSize() int {
	return c.batch
}

// fetch advances the offset past the consumed window and loads the next
// one. Exhaustion is reached either by offset passing the effective total
// or by the backend returning an empty window for a live offset (the
// index shrank after the count probe).
func (c *Cursor) fetch(ctx context.Context) {
	c.offset += int64(len(c.window))
	c.window = nil
	c.pos = 0

	if c.offset >= c.total {
		c.done = true
		return
	}

	resp, err := c.backend.Search(ctx, c.request(c.offset, c.batch))
	if err != nil {
		c.err = err
		return
	}

	// A limit that lands mid-window caps the final window short.
	hits := resp.Hits
	if remaining := c.total - c.offset; int64(len(hits)) > remaining {
		hits = hits[:remaining]
	}
	if len(hits) == 0 {
		c.done = true
		return
	}
	c.window = hits
}

func (c *Cursor) request(from int64, size int) *search.Request {
	return &search.Request{
		Index: c.index,
		Kind:  c.kind,
		Query: c.query.Clone(),
		From:  from,
		Size:  size,
	}
}
