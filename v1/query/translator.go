package query

import (
	"context"
	"time"
)

// Translator turns request parameters into storage reads for an Endpoint.
// It holds no per-request state and is safe for concurrent use.
type Translator struct {
	store    Store
	logger   Logger
	observer Observer
}

// Option configures a Translator.
type Option func(*Translator)

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger Logger) Option {
	return func(t *Translator) {
		t.logger = logger
	}
}

// WithObserver sets the observer notified after every executed query.
func WithObserver(observer Observer) Option {
	return func(t *Translator) {
		t.observer = observer
	}
}

// NewTranslator returns a translator reading from store.
func NewTranslator(store Store, opts ...Option) *Translator {
	t := &Translator{store: store}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Run validates params, resolves "latest" values, builds and executes the
// endpoint query and projects the documents.
//
// Validation failures are returned as a Failure result with a nil error and
// never reach storage. Storage failures are returned as the error, unchanged,
// and the Result must then be ignored.
func (t *Translator) Run(ctx context.Context, endpoint Endpoint, params ParameterSet) (Result, error) {
	validation := NewValidation()
	if validation.Run(params, endpoint.Rules) == Invalid {
		errs := validation.Errors()
		t.debug("rejected request parameters", map[string]interface{}{
			"endpoint": endpoint.Name,
			"errors":   len(errs),
		})
		return Failure(errs), nil
	}

	if endpoint.Normalize != nil {
		params = endpoint.Normalize(params)
	}

	params, err := ResolveLatest(ctx, t.store, endpoint.Collection, params, endpoint.Rules)
	if err != nil {
		t.fail("failed to resolve latest value", err, endpoint)
		return Result{}, err
	}

	spec := endpoint.Build(params)

	start := time.Now()
	documents, err := Execute(ctx, t.store, spec)
	if t.observer != nil {
		t.observer.ObserveQuery(endpoint.Name, subQueries(spec), time.Since(start), err)
	}
	if err != nil {
		t.fail("failed to execute query", err, endpoint)
		return Result{}, err
	}

	t.debug("executed query", map[string]interface{}{
		"endpoint":   endpoint.Name,
		"collection": spec.Collection,
		"clauses":    len(spec.Clauses),
		"documents":  len(documents),
	})

	return Success(Project(documents, endpoint.ProjectionFor(params))), nil
}

func (t *Translator) debug(msg string, fields map[string]interface{}) {
	if t.logger != nil {
		t.logger.Debug(msg, nil, fields)
	}
}

func (t *Translator) fail(msg string, err error, endpoint Endpoint) {
	if t.logger != nil {
		t.logger.Error(msg, err, map[string]interface{}{
			"endpoint":   endpoint.Name,
			"collection": endpoint.Collection,
		})
	}
}
