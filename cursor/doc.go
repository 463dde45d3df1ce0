// Package cursor provides a batched pagination cursor over remote search
// indexes. It walks every document matching a query template without
// loading the full result set and without manual offset bookkeeping.
//
// The cursor targets backends that expose offset+limit windowed search
// with a total match count, such as the engines behind data/search. One
// count probe at construction fixes the effective total (capped by an
// optional limit); iteration then fetches windows of at most the batch
// size and serves documents from memory between fetches.
//
// # Basic Usage
//
// Construct a cursor against a search client and walk it:
//
//	c, err := cursor.New(ctx, client, "articles",
//	    cursor.WithBatchSize(500),
//	    cursor.WithLimit(10000),
//	)
//	if err != nil {
//	    return err
//	}
//
//	for c.Next(ctx) {
//	    doc := c.Document()
//	    process(doc.ID, doc.Source)
//	}
//	if err := c.Err(); err != nil {
//	    return err
//	}
//
// Next returning false with a nil Err means the result set is exhausted.
// Begin restarts a finished or failed cursor from the first document.
//
// # Range Form
//
// Documents exposes the same pass as a range-over-func sequence:
//
//	for doc, err := range c.Documents(ctx) {
//	    if err != nil {
//	        return err
//	    }
//	    process(doc.ID, doc.Source)
//	}
//
// # Query Templates
//
// Templates are deep-copied at construction, so one template value can
// back any number of cursors:
//
//	q := search.MatchAll()
//	q.Filter = map[string]any{"status": "published"}
//
//	c, err := cursor.New(ctx, client, "articles", cursor.WithQuery(q))
//
// # Consistency
//
// Windows are fetched with plain offset pagination, so documents shifting
// between fetches can be skipped or repeated. A shrinking index terminates
// the walk early and cleanly; a growing one is capped at the total probed
// at construction. Walks that need point-in-time exactness should snapshot
// upstream instead.
package cursor
