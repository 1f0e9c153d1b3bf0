/*
Package query translates request parameters into filtered document reads.

An endpoint is described declaratively by an Endpoint: the collection it
reads, an ordered list of FieldRule values mapping request parameters onto
filter clauses, an optional sort, limit and field selection, and the
projection applied to the documents that come back.

Core Features:
  - Deterministic QuerySpec construction: clauses follow rule order, never parameter order
  - Required-parameter validation that reports every missing key at once
  - Comma separated multi-value parameters with percent-encoded elements
  - Two-phase resolution of the "latest" sentinel against the stored maximum
  - Concurrent fan-out of set predicates into per-value sub-queries
  - Full, single-field (optionally deduplicated) and picked-field projections

Basic Usage:

	import "github.com/HTTPArchive/tech-report-apis/v1/query"

	endpoint := query.Endpoint{
		Name:       "technologies",
		Collection: "technologies",
		Rules: []query.FieldRule{
			query.AnyOf("technology", "technology").WithMax(30),
			query.ContainsAny("category", "category_obj"),
		},
		Sort:       query.SortAsc("technology"),
		Projection: query.FullDocuments(),
	}

	translator := query.NewTranslator(store, query.WithLogger(log))
	result, err := translator.Run(ctx, endpoint, query.NewParameterSet(r.URL.Query()))
	if err != nil {
		// storage failure, returned unchanged
	}
	if !result.OK() {
		// result.Errors() lists every rejected parameter
	}

Storage:

Any type implementing Store can back the translator. The store receives a
fully built QuerySpec and is responsible for filtering, sorting, limiting and
field selection; the translator never post-filters documents.

Fan-out:

A OneOf rule marked WithFanOut is executed as one equality query per value.
Sub-queries run concurrently and their results are concatenated in the order
the values were given. Documents matched by several sub-queries appear once
per match.

Thread Safety:

Translator, Endpoint and ParameterSet are safe for concurrent use. A
Validation belongs to a single request.
*/
package query
