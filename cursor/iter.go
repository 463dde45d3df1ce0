package cursor

import (
	"context"
	"iter"

	"github.com/ncobase/ncursor/data/search"
)

// Documents restarts the cursor and returns a lazy sequence over every
// matching document. Each range over the sequence is a fresh pass from
// the first document. A failed request ends the sequence with the error
// as the second value; normal exhaustion just ends it.
func (c *Cursor) Documents(ctx context.Context) iter.Seq2[search.Hit, error] {
	return func(yield func(search.Hit, error) bool) {
		if err := c.Begin(ctx); err != nil {
			yield(search.Hit{}, err)
			return
		}
		for c.Next(ctx) {
			if !yield(c.Document(), nil) {
				return
			}
		}
		if err := c.Err(); err != nil {
			yield(search.Hit{}, err)
		}
	}
}
