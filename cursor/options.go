package cursor

import "github.com/ncobase/ncursor/data/search"

type settings struct {
	kind     string
	query    search.Query
	batch    int
	limit    int64
	hasLimit bool
}

// Option configures a cursor at construction time.
type Option func(*settings)

// WithKind constrains the walk to one document kind. The default kind
// matches every document.
func WithKind(kind string) Option {
	return func(s *settings) {
		s.kind = kind
	}
}

// WithQuery sets the query template. The cursor stores a deep copy.
func WithQuery(q search.Query) Option {
	return func(s *settings) {
		s.query = q
	}
}

// WithBatchSize sets the window size per fetch. Non-positive values fall
// back to DefaultBatchSize. The effective size never exceeds the number
// of documents the cursor will visit.
func WithBatchSize(n int) Option {
	return func(s *settings) {
		s.batch = n
	}
}

// WithLimit caps the number of documents visited. Negative values behave
// like zero: the cursor is exhausted from the start.
func WithLimit(n int64) Option {
	return func(s *settings) {
		s.limit = n
		s.hasLimit = true
	}
}
