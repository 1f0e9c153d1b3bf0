package memory

import (
	"fmt"
	"math"
	"strconv"

	"github.com/HTTPArchive/tech-report-apis/v1/query"
)

func matchesAll(doc query.Document, clauses []query.FilterClause) bool {
	for _, c := range clauses {
		if !matches(doc, c) {
			return false
		}
	}
	return true
}

func matches(doc query.Document, c query.FilterClause) bool {
	actual, ok := doc.Data[c.Field]
	if !ok {
		return false
	}

	switch c.Comparator {
	case query.Equal:
		return compareValues(actual, c.Value) == 0
	case query.GreaterOrEqual:
		return compareValues(actual, c.Value) >= 0
	case query.LessOrEqual:
		return compareValues(actual, c.Value) <= 0
	case query.LessThan:
		return compareValues(actual, c.Value) < 0
	case query.OneOf:
		for _, v := range c.Values {
			if compareValues(actual, v) == 0 {
				return true
			}
		}
	case query.ArrayContainsAny:
		for _, elem := range elements(actual) {
			for _, v := range c.Values {
				if compareValues(elem, v) == 0 {
					return true
				}
			}
		}
	}
	return false
}

func elements(v any) []any {
	switch arr := v.(type) {
	case []any:
		return arr
	case []string:
		out := make([]any, len(arr))
		for i, s := range arr {
			out[i] = s
		}
		return out
	}
	return nil
}

// compareValues orders two scalars numerically when both are numbers or
// numeric strings, and lexically otherwise.
func compareValues(a, b any) int {
	fa, okA := toFloat(a)
	fb, okB := toFloat(b)
	if okA && okB {
		switch {
		case fa > fb:
			return 1
		case fa < fb:
			return -1
		}
		return 0
	}

	sa, sb := fmt.Sprint(a), fmt.Sprint(b)
	switch {
	case sa > sb:
		return 1
	case sa < sb:
		return -1
	}
	return 0
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil && !math.IsInf(f, 0) && !math.IsNaN(f)
	}
	return 0, false
}
