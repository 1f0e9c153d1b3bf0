package query

import (
	"github.com/goccy/go-json"
)

// Result is the envelope returned for every translated request.
// Exactly one of the success payload or the validation errors is set.
type Result struct {
	ok      bool
	payload []any
	errors  []ValidationError
}

// Success wraps a projected payload.
func Success(payload []any) Result {
	if payload == nil {
		payload = []any{}
	}
	return Result{ok: true, payload: payload}
}

// Failure wraps validation errors.
func Failure(errs []ValidationError) Result {
	out := make([]ValidationError, len(errs))
	copy(out, errs)
	return Result{errors: out}
}

// OK reports whether r is the success variant.
func (r Result) OK() bool {
	return r.ok
}

// Payload returns the success payload, nil for a failure.
func (r Result) Payload() []any {
	return r.payload
}

// Errors returns the validation errors, nil for a success.
func (r Result) Errors() []ValidationError {
	return r.errors
}

// MarshalJSON encodes the payload array on success and the array of
// {field: message} objects on failure.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.ok {
		return marshal(r.payload)
	}
	if r.errors == nil {
		return []byte("[]"), nil
	}
	return marshal(r.errors)
}

func marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}
