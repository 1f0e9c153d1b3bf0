package query

import (
	"fmt"
)

// ValidationError reports a rejected request parameter. It is returned as
// data inside a Failure result and never as a Go error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements error so a ValidationError can be logged like one.
func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// MarshalJSON encodes the error as a single {field: message} object.
func (e ValidationError) MarshalJSON() ([]byte, error) {
	return marshal(map[string]string{e.Field: e.Message})
}

func missingParameter(key string) ValidationError {
	return ValidationError{Field: key, Message: fmt.Sprintf("missing %s parameter", key)}
}

func tooManyValues(key string, max int) ValidationError {
	return ValidationError{
		Field:   key,
		Message: fmt.Sprintf("Too many values specified for %s. Maximum %d allowed.", key, max),
	}
}
