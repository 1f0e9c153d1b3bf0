package query

// ProjectionMode selects how documents are shaped into the response payload.
type ProjectionMode int

const (
	// Full passes documents through unchanged.
	Full ProjectionMode = iota
	// FieldOnly replaces each document by the value of one field.
	FieldOnly
	// Pick reduces each document to a fixed set of fields.
	Pick
)

// Projection is the shaping step applied after execution.
type Projection struct {
	Mode   ProjectionMode
	Field  string
	Fields []string
	Dedupe bool
}

// FullDocuments returns the pass-through projection.
func FullDocuments() Projection {
	return Projection{Mode: Full}
}

// FieldValues projects every document to the value of name.
func FieldValues(name string, dedupe bool) Projection {
	return Projection{Mode: FieldOnly, Field: name, Dedupe: dedupe}
}

// PickFields keeps only the listed fields of every document.
func PickFields(fields ...string) Projection {
	return Projection{Mode: Pick, Fields: fields}
}

// Project shapes documents according to p.
// Missing fields are skipped, never reported.
func Project(documents []Document, p Projection) []any {
	out := make([]any, 0, len(documents))

	switch p.Mode {
	case FieldOnly:
		seen := make(map[any]struct{})
		for _, doc := range documents {
			value, ok := doc.Get(p.Field)
			if !ok {
				continue
			}
			if p.Dedupe {
				key := dedupeKey(value)
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
			}
			out = append(out, value)
		}

	case Pick:
		for _, doc := range documents {
			picked := make(map[string]any, len(p.Fields))
			for _, field := range p.Fields {
				if value, ok := doc.Get(field); ok {
					picked[field] = value
				}
			}
			out = append(out, picked)
		}

	default:
		for _, doc := range documents {
			out = append(out, doc)
		}
	}

	return out
}

// dedupeKey returns a comparable key for v. Composite values are keyed by
// their JSON encoding.
func dedupeKey(v any) any {
	switch v.(type) {
	case nil, string, bool, int, int32, int64, float32, float64, uint, uint32, uint64:
		return v
	}
	b, err := marshal(v)
	if err != nil {
		return scalarString(v)
	}
	return "json:" + string(b)
}
