package query

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Execute runs spec against store.
//
// Sorting, limiting and field selection are left to storage. When a clause
// is marked FanOut, one equality sub-query is issued per value, concurrently,
// and the results are concatenated in value order with duplicates kept. The
// first storage error is returned unchanged.
func Execute(ctx context.Context, store Store, spec QuerySpec) ([]Document, error) {
	idx := spec.fanOutIndex()
	if idx < 0 {
		return store.Query(ctx, spec)
	}

	clause := spec.Clauses[idx]
	results := make([][]Document, len(clause.Values))

	g, gctx := errgroup.WithContext(ctx)
	for i, value := range clause.Values {
		sub := spec.withClause(idx, FilterClause{Field: clause.Field, Comparator: Equal, Value: value})
		g.Go(func() error {
			docs, err := store.Query(gctx, sub)
			if err != nil {
				return err
			}
			results[i] = docs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, docs := range results {
		total += len(docs)
	}
	out := make([]Document, 0, total)
	for _, docs := range results {
		out = append(out, docs...)
	}
	return out, nil
}

// subQueries returns how many storage calls Execute issues for spec.
func subQueries(spec QuerySpec) int {
	if idx := spec.fanOutIndex(); idx >= 0 {
		return len(spec.Clauses[idx].Values)
	}
	return 1
}
