package query

import (
	"fmt"
	"strconv"
)

// Comparator is the operator of a single filter clause.
// The string values double as the wire representation used when a
// QuerySpec is serialized.
type Comparator string

const (
	// Equal matches documents whose field equals the scalar operand.
	Equal Comparator = "=="
	// GreaterOrEqual matches documents whose field is >= the scalar operand.
	GreaterOrEqual Comparator = ">="
	// LessOrEqual matches documents whose field is <= the scalar operand.
	LessOrEqual Comparator = "<="
	// LessThan matches documents whose field is < the scalar operand.
	LessThan Comparator = "<"
	// OneOf matches documents whose field equals any value of the operand set.
	OneOf Comparator = "in"
	// ArrayContainsAny matches documents whose array field shares at least
	// one element with the operand set.
	ArrayContainsAny Comparator = "array-contains-any"
)

// IsSet reports whether the comparator takes a set operand.
func (c Comparator) IsSet() bool {
	return c == OneOf || c == ArrayContainsAny
}

// Valid reports whether c is one of the known comparators.
func (c Comparator) Valid() bool {
	switch c {
	case Equal, GreaterOrEqual, LessOrEqual, LessThan, OneOf, ArrayContainsAny:
		return true
	}
	return false
}

// Direction is the ordering of a sort directive.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Sort asks storage to order results by Field.
type Sort struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

// SortAsc is shorthand for an ascending sort on field.
func SortAsc(field string) *Sort {
	return &Sort{Field: field, Direction: Ascending}
}

// SortDesc is shorthand for a descending sort on field.
func SortDesc(field string) *Sort {
	return &Sort{Field: field, Direction: Descending}
}

// FilterClause is one predicate of a QuerySpec.
// Scalar comparators carry their operand in Value, set comparators in Values.
type FilterClause struct {
	Field      string     `json:"field"`
	Comparator Comparator `json:"op"`
	Value      string     `json:"value,omitempty"`
	Values     []string   `json:"values,omitempty"`

	// FanOut marks a OneOf clause that is executed as one equality
	// sub-query per value instead of a single set predicate.
	FanOut bool `json:"fanOut,omitempty"`
}

// QuerySpec is the storage-independent description of one read.
type QuerySpec struct {
	Collection string         `json:"collection"`
	Clauses    []FilterClause `json:"clauses"`
	Sort       *Sort          `json:"sort,omitempty"`
	Limit      int            `json:"limit,omitempty"`
	Select     []string       `json:"select,omitempty"`
}

// Clause returns the first clause on field.
func (q QuerySpec) Clause(field string) (FilterClause, bool) {
	for _, c := range q.Clauses {
		if c.Field == field {
			return c, true
		}
	}
	return FilterClause{}, false
}

// fanOutIndex returns the index of the first clause that must be fanned out, or -1.
func (q QuerySpec) fanOutIndex() int {
	for i, c := range q.Clauses {
		if c.FanOut && c.Comparator == OneOf && len(c.Values) > 0 {
			return i
		}
	}
	return -1
}

// withClause returns a copy of q with the clause at i replaced.
func (q QuerySpec) withClause(i int, clause FilterClause) QuerySpec {
	clauses := make([]FilterClause, len(q.Clauses))
	copy(clauses, q.Clauses)
	clauses[i] = clause
	q.Clauses = clauses
	return q
}

// Document is a single record returned by storage.
type Document struct {
	ID   string
	Data map[string]any
}

// Get returns the value of field and whether it is present.
func (d Document) Get(field string) (any, bool) {
	v, ok := d.Data[field]
	return v, ok
}

// MarshalJSON encodes the document as its field map.
func (d Document) MarshalJSON() ([]byte, error) {
	if d.Data == nil {
		return []byte("{}"), nil
	}
	return marshal(d.Data)
}

// scalarString renders a stored scalar as a filter operand.
func scalarString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
