package query

import (
	"context"
)

// BuildQuery maps params onto rules and returns the resulting filters.
//
// Clauses follow the declaration order of rules, so equal parameter sets
// always yield identical specs. Keys without a rule are ignored and the
// function never fails. The returned spec carries no collection, sort,
// limit or selection; Endpoint.Build fills those in.
func BuildQuery(params ParameterSet, rules []FieldRule) QuerySpec {
	spec := QuerySpec{Clauses: make([]FilterClause, 0, len(rules))}
	for _, rule := range rules {
		if clause, ok := rule.clause(params); ok {
			spec.Clauses = append(spec.Clauses, clause)
		}
	}
	return spec
}

// ResolveLatest replaces every LatestSentinel value of a Latest rule with
// the maximum stored value of the rule's field.
//
// It issues one MaxValue lookup per such rule and must complete before the
// main query is built. When the collection holds no value the parameter is
// removed, which drops the clause. Storage errors are returned unchanged.
func ResolveLatest(ctx context.Context, store Store, collection string, params ParameterSet, rules []FieldRule) (ParameterSet, error) {
	for _, rule := range rules {
		if !rule.Latest || params.Get(rule.Key) != LatestSentinel {
			continue
		}

		value, ok, err := store.MaxValue(ctx, collection, rule.Field)
		if err != nil {
			return params, err
		}
		if !ok {
			params = params.Without(rule.Key)
			continue
		}
		params = params.With(rule.Key, scalarString(value))
	}
	return params, nil
}
