package query

import (
	"bytes"

	"github.com/goccy/go-json"
)

// DecodeData decodes a JSON object into a document field map. Integral
// numbers become int64 and the rest float64.
func DecodeData(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		return nil, err
	}
	return NormalizeNumbers(data), nil
}

// DecodeValue decodes a single JSON value with the same number handling as DecodeData.
func DecodeValue(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return normalizeValue(v), nil
}

// NormalizeNumbers replaces json.Number values in m, recursively and in place.
func NormalizeNumbers(m map[string]any) map[string]any {
	for k, v := range m {
		m[k] = normalizeValue(v)
	}
	return m
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case []any:
		for i := range val {
			val[i] = normalizeValue(val[i])
		}
		return val
	case map[string]any:
		return NormalizeNumbers(val)
	}
	return v
}
