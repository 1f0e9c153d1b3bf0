// Package memory provides an in-process implementation of query.Store.
//
// It evaluates QuerySpecs the way the document database does: every clause
// must match, sorting is stable, and documents lacking the sort field are
// ordered last. It backs tests and local runs from a JSON fixture.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/HTTPArchive/tech-report-apis/v1/query"
)

var (
	// ErrUnsupportedComparator is returned for clauses this store cannot evaluate.
	ErrUnsupportedComparator = errors.New("unsupported comparator")
)

// Store keeps documents per collection in insertion order.
type Store struct {
	mu          sync.RWMutex
	collections map[string][]query.Document
	seq         int
}

// New returns an empty store.
func New() *Store {
	return &Store{collections: make(map[string][]query.Document)}
}

// Put adds documents to collection. A document whose ID already exists in
// the collection replaces it in place; documents without an ID get one.
func (s *Store) Put(collection string, docs ...query.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.collections[collection]
	index := make(map[string]int, len(existing))
	for i, d := range existing {
		index[d.ID] = i
	}

	for _, doc := range docs {
		if doc.ID == "" {
			s.seq++
			doc.ID = strconv.Itoa(s.seq)
		}
		doc.Data = copyData(doc.Data, nil)
		if i, ok := index[doc.ID]; ok {
			existing[i] = doc
			continue
		}
		index[doc.ID] = len(existing)
		existing = append(existing, doc)
	}
	s.collections[collection] = existing
}

// Len returns the number of documents in collection.
func (s *Store) Len(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collections[collection])
}

// Query implements query.Store.
func (s *Store) Query(ctx context.Context, spec query.QuerySpec) ([]query.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, c := range spec.Clauses {
		if !c.Comparator.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedComparator, c.Comparator)
		}
	}

	s.mu.RLock()
	matched := make([]query.Document, 0)
	for _, doc := range s.collections[spec.Collection] {
		if matchesAll(doc, spec.Clauses) {
			matched = append(matched, doc)
		}
	}
	s.mu.RUnlock()

	if spec.Sort != nil {
		sortDocuments(matched, *spec.Sort)
	}
	if spec.Limit > 0 && len(matched) > spec.Limit {
		matched = matched[:spec.Limit]
	}

	out := make([]query.Document, len(matched))
	for i, doc := range matched {
		out[i] = query.Document{ID: doc.ID, Data: copyData(doc.Data, spec.Select)}
	}
	return out, nil
}

// MaxValue implements query.Store.
func (s *Store) MaxValue(ctx context.Context, collection, field string) (any, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		max   any
		found bool
	)
	for _, doc := range s.collections[collection] {
		v, ok := doc.Data[field]
		if !ok || v == nil {
			continue
		}
		if !found || compareValues(v, max) > 0 {
			max, found = v, true
		}
	}
	return max, found, nil
}

func sortDocuments(docs []query.Document, by query.Sort) {
	sort.SliceStable(docs, func(i, j int) bool {
		a, okA := docs[i].Data[by.Field]
		b, okB := docs[j].Data[by.Field]
		switch {
		case !okA || !okB:
			return okA && !okB
		case by.Direction == query.Descending:
			return compareValues(a, b) > 0
		default:
			return compareValues(a, b) < 0
		}
	})
}

func copyData(data map[string]any, fields []string) map[string]any {
	if fields == nil {
		out := make(map[string]any, len(data))
		for k, v := range data {
			out[k] = v
		}
		return out
	}
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		if v, ok := data[f]; ok {
			out[f] = v
		}
	}
	return out
}
