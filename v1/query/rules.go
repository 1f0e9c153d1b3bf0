package query

// LatestSentinel is the parameter value resolved to the newest stored value
// of a rule's field before the query is built.
const LatestSentinel = "latest"

// FieldRule describes how one request parameter becomes a filter clause.
type FieldRule struct {
	// Key is the request parameter name.
	Key string
	// Field is the document field the clause targets.
	Field string
	// Comparator is the operator applied to Field. Multi-valued rules
	// default to OneOf.
	Comparator Comparator
	// MultiValue splits the raw parameter into a comma separated set.
	MultiValue bool
	// Required rejects the request when Key is absent or empty.
	Required bool
	// MaxValues caps the size of a multi-valued set. Zero means no cap.
	MaxValues int
	// FanOut executes a OneOf clause as one sub-query per value.
	FanOut bool
	// Default is used when Key is absent or empty.
	Default string
	// Latest enables resolution of LatestSentinel against Field.
	Latest bool
}

// Match maps key to an equality clause on field.
func Match(key, field string) FieldRule {
	return FieldRule{Key: key, Field: field, Comparator: Equal}
}

// AnyOf maps a comma separated key to a OneOf clause on field.
func AnyOf(key, field string) FieldRule {
	return FieldRule{Key: key, Field: field, Comparator: OneOf, MultiValue: true}
}

// ContainsAny maps a comma separated key to an ArrayContainsAny clause on
// the array field.
func ContainsAny(key, field string) FieldRule {
	return FieldRule{Key: key, Field: field, Comparator: ArrayContainsAny, MultiValue: true}
}

// DateRange returns the start and end rules over a date field: start is
// inclusive and accepts "latest", end is inclusive.
func DateRange(field string) []FieldRule {
	return []FieldRule{
		{Key: "start", Field: field, Comparator: GreaterOrEqual, Latest: true},
		{Key: "end", Field: field, Comparator: LessOrEqual},
	}
}

// DateRangeExclusive is DateRange with an exclusive end.
func DateRangeExclusive(field string) []FieldRule {
	return []FieldRule{
		{Key: "start", Field: field, Comparator: GreaterOrEqual, Latest: true},
		{Key: "end", Field: field, Comparator: LessThan},
	}
}

// AsRequired returns a copy of r that must be present.
func (r FieldRule) AsRequired() FieldRule {
	r.Required = true
	return r
}

// WithMax returns a copy of r that accepts at most n values.
func (r FieldRule) WithMax(n int) FieldRule {
	r.MaxValues = n
	return r
}

// WithFanOut returns a copy of r executed as one sub-query per value.
func (r FieldRule) WithFanOut() FieldRule {
	r.FanOut = true
	return r
}

// WithDefault returns a copy of r that falls back to value.
func (r FieldRule) WithDefault(value string) FieldRule {
	r.Default = value
	return r
}

func (r FieldRule) comparator() Comparator {
	switch {
	case r.MultiValue && !r.Comparator.IsSet():
		return OneOf
	case r.Comparator == "":
		return Equal
	}
	return r.Comparator
}

// raw returns the effective raw value of the rule and whether it applies.
func (r FieldRule) raw(params ParameterSet) (string, bool) {
	if v := params.Get(r.Key); v != "" {
		return v, true
	}
	if r.Default != "" {
		return r.Default, true
	}
	return "", false
}

// clause turns the rule into a filter clause when its key applies.
func (r FieldRule) clause(params ParameterSet) (FilterClause, bool) {
	raw, ok := r.raw(params)
	if !ok {
		return FilterClause{}, false
	}

	comparator := r.comparator()
	if !comparator.IsSet() {
		return FilterClause{Field: r.Field, Comparator: comparator, Value: raw}, true
	}

	values := []string{raw}
	if r.MultiValue {
		values = SplitValues(raw)
	}
	if len(values) == 0 {
		return FilterClause{}, false
	}
	return FilterClause{
		Field:      r.Field,
		Comparator: comparator,
		Values:     values,
		FanOut:     r.FanOut && comparator == OneOf,
	}, true
}
