package postgres

import (
	"context"
	"errors"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Common database error types that can be used by consumers of this package.
// These provide a standardized set of errors that abstract away the
// underlying database-specific error details.
var (
	// ErrRecordNotFound is returned when a query doesn't find any matching records
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicateKey is returned when an insert or update violates a unique constraint
	ErrDuplicateKey = errors.New("duplicate key violation")

	// ErrInvalidData is returned when the data being saved doesn't meet validation rules
	ErrInvalidData = errors.New("invalid data")

	// ErrUndefinedTable is returned when the document table does not exist
	ErrUndefinedTable = errors.New("undefined table")

	// ErrConnection is returned when the server cannot be reached or drops the connection
	ErrConnection = errors.New("connection error")

	// ErrQueryCanceled is returned when the server cancels a statement
	ErrQueryCanceled = errors.New("query canceled")

	// ErrInvalidField is returned when a query names a field that cannot be addressed
	ErrInvalidField = errors.New("invalid field name")

	// ErrUnsupportedComparator is returned for filter clauses the store cannot render
	ErrUnsupportedComparator = errors.New("unsupported comparator")
)

// ErrorCategory groups translated errors by how callers should react to them.
type ErrorCategory int

const (
	CategoryUnknown ErrorCategory = iota
	CategoryConnection
	CategoryData
	CategorySchema
	CategoryTimeout
	CategoryQuery
)

// PostgreSQL SQLSTATE codes this package classifies.
const (
	codeUniqueViolation        = "23505"
	codeInvalidTextRep         = "22P02"
	codeDatetimeFormat         = "22007"
	codeUndefinedTable         = "42P01"
	codeUndefinedColumn        = "42703"
	codeSyntaxError            = "42601"
	codeQueryCanceled          = "57014"
	codeAdminShutdown          = "57P01"
	codeCannotConnectNow       = "57P03"
	codeTooManyConnections     = "53300"
	codeConnectionException    = "08000"
	codeConnectionFailure      = "08006"
	codeConnectionDoesNotExist = "08003"
)

// TranslateError converts GORM and driver errors into the sentinels above.
// The original error stays reachable through errors.Unwrap; unknown errors
// are returned as-is.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrRecordNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	case errors.Is(err, gorm.ErrInvalidData):
		return ErrInvalidData
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return wrap(ErrDuplicateKey, err)
		case codeInvalidTextRep, codeDatetimeFormat:
			return wrap(ErrInvalidData, err)
		case codeUndefinedTable:
			return wrap(ErrUndefinedTable, err)
		case codeUndefinedColumn, codeSyntaxError:
			return wrap(ErrInvalidField, err)
		case codeQueryCanceled:
			return wrap(ErrQueryCanceled, err)
		case codeAdminShutdown, codeCannotConnectNow, codeTooManyConnections,
			codeConnectionException, codeConnectionFailure, codeConnectionDoesNotExist:
			return wrap(ErrConnection, err)
		}
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return wrap(ErrConnection, err)
	}
	return err
}

// GetErrorCategory returns the category of a translated error.
func GetErrorCategory(err error) ErrorCategory {
	switch {
	case errors.Is(err, ErrConnection):
		return CategoryConnection
	case errors.Is(err, ErrDuplicateKey), errors.Is(err, ErrInvalidData), errors.Is(err, ErrRecordNotFound):
		return CategoryData
	case errors.Is(err, ErrUndefinedTable), errors.Is(err, ErrInvalidField), errors.Is(err, ErrUnsupportedComparator):
		return CategorySchema
	case errors.Is(err, ErrQueryCanceled), errors.Is(err, context.DeadlineExceeded):
		return CategoryTimeout
	case err != nil:
		return CategoryQuery
	default:
		return CategoryUnknown
	}
}

// IsRetryable reports whether repeating the operation may succeed.
func IsRetryable(err error) bool {
	switch GetErrorCategory(err) {
	case CategoryConnection, CategoryTimeout:
		return true
	}
	return false
}

type translatedError struct {
	sentinel error
	cause    error
}

func wrap(sentinel, cause error) error {
	return &translatedError{sentinel: sentinel, cause: cause}
}

func (e *translatedError) Error() string {
	return e.sentinel.Error() + ": " + e.cause.Error()
}

func (e *translatedError) Unwrap() []error {
	return []error{e.sentinel, e.cause}
}
