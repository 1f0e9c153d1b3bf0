package query

import (
	"net/url"
	"sort"
	"strings"
)

// ParameterSet holds the raw query parameters of one request.
// It is immutable: With and Without return modified copies.
type ParameterSet struct {
	values map[string]string
}

// NewParameterSet builds a ParameterSet from decoded query values.
// Only the first value of a repeated key is kept.
func NewParameterSet(values url.Values) ParameterSet {
	m := make(map[string]string, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			m[k] = vs[0]
		}
	}
	return ParameterSet{values: m}
}

// ParametersFromMap builds a ParameterSet from a plain map.
func ParametersFromMap(values map[string]string) ParameterSet {
	m := make(map[string]string, len(values))
	for k, v := range values {
		m[k] = v
	}
	return ParameterSet{values: m}
}

// Get returns the raw value of key, or "" when absent.
func (p ParameterSet) Get(key string) string {
	return p.values[key]
}

// Lookup returns the raw value of key and whether the key was sent at all.
func (p ParameterSet) Lookup(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Has reports whether key was sent, even with an empty value.
func (p ParameterSet) Has(key string) bool {
	_, ok := p.values[key]
	return ok
}

// Len returns the number of keys.
func (p ParameterSet) Len() int {
	return len(p.values)
}

// Keys returns the keys in lexical order.
func (p ParameterSet) Keys() []string {
	keys := make([]string, 0, len(p.values))
	for k := range p.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Values returns key split into its list elements.
func (p ParameterSet) Values(key string) []string {
	return SplitValues(p.values[key])
}

// With returns a copy of p with key set to value.
func (p ParameterSet) With(key, value string) ParameterSet {
	m := make(map[string]string, len(p.values)+1)
	for k, v := range p.values {
		m[k] = v
	}
	m[key] = value
	return ParameterSet{values: m}
}

// Without returns a copy of p with key removed.
func (p ParameterSet) Without(key string) ParameterSet {
	m := make(map[string]string, len(p.values))
	for k, v := range p.values {
		if k != key {
			m[k] = v
		}
	}
	return ParameterSet{values: m}
}

// SplitValues splits a comma separated list and URL-decodes each element.
// Commas that belong to a value must be sent percent-encoded (%2C).
// Elements that fail to decode are kept verbatim; empty elements are dropped.
func SplitValues(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if decoded, err := url.PathUnescape(part); err == nil {
			part = decoded
		}
		if part != "" {
			values = append(values, part)
		}
	}
	return values
}

// EncodeValues is the inverse of SplitValues.
func EncodeValues(values []string) string {
	escaped := make([]string, len(values))
	for i, v := range values {
		escaped[i] = url.PathEscape(v)
	}
	return strings.Join(escaped, ",")
}
