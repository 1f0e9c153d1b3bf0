package query

// View is an alternate response shape selected by a flag parameter.
// A flag counts as set when its key is present, whatever its value.
type View struct {
	Flag       string
	Select     []string
	Projection Projection
}

// Endpoint is the declarative description of one read endpoint.
type Endpoint struct {
	Name       string
	Collection string
	Rules      []FieldRule
	Sort       *Sort
	Limit      int

	// Select returns the fields storage should return. Nil selects every field.
	Select func(ParameterSet) []string

	// Normalize rewrites validated parameters before the query is built.
	Normalize func(ParameterSet) ParameterSet

	Projection Projection
	Views      []View
}

// Build returns the complete QuerySpec for params.
// Parameters are expected to be validated and resolved already.
func (e Endpoint) Build(params ParameterSet) QuerySpec {
	spec := BuildQuery(params, e.Rules)
	spec.Collection = e.Collection
	spec.Limit = e.Limit
	if e.Sort != nil {
		s := *e.Sort
		spec.Sort = &s
	}

	if view, ok := e.view(params); ok && view.Select != nil {
		spec.Select = append([]string(nil), view.Select...)
	} else if e.Select != nil {
		spec.Select = e.Select(params)
	}
	return spec
}

// ProjectionFor returns the projection that applies to params.
func (e Endpoint) ProjectionFor(params ParameterSet) Projection {
	if view, ok := e.view(params); ok {
		return view.Projection
	}
	return e.Projection
}

func (e Endpoint) view(params ParameterSet) (View, bool) {
	for _, v := range e.Views {
		if params.Has(v.Flag) {
			return v, true
		}
	}
	return View{}, false
}

// StaticSelect returns a Select function that always yields fields.
func StaticSelect(fields ...string) func(ParameterSet) []string {
	return func(ParameterSet) []string {
		return append([]string(nil), fields...)
	}
}

// Plan validates and normalizes params and returns the QuerySpec that would
// be executed, leaving "latest" unresolved. It never touches storage.
func (e Endpoint) Plan(params ParameterSet) (QuerySpec, []ValidationError) {
	if errs := Validate(params, e.Rules); len(errs) > 0 {
		return QuerySpec{}, errs
	}
	if e.Normalize != nil {
		params = e.Normalize(params)
	}
	return e.Build(params), nil
}
