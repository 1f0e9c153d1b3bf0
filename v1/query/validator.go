package query

// ValidationState is the position of a request in the validation state machine.
type ValidationState int

const (
	Unvalidated ValidationState = iota
	Valid
	Invalid
)

func (s ValidationState) String() string {
	switch s {
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	default:
		return "unvalidated"
	}
}

// Validation checks one request against an endpoint's rules.
// It leaves Unvalidated exactly once; later calls to Run return the
// settled state without re-checking.
type Validation struct {
	state  ValidationState
	errors []ValidationError
}

// NewValidation returns a validation in the Unvalidated state.
func NewValidation() *Validation {
	return &Validation{}
}

// Run validates params against rules.
//
// Every missing required key is reported, in rule order, followed by every
// multi-valued key that exceeds its MaxValues. A key declared by several
// rules is reported once.
func (v *Validation) Run(params ParameterSet, rules []FieldRule) ValidationState {
	if v.state != Unvalidated {
		return v.state
	}

	errs := make([]ValidationError, 0)
	seen := make(map[string]bool, len(rules))
	for _, rule := range rules {
		if !rule.Required || seen[rule.Key] {
			continue
		}
		seen[rule.Key] = true
		if params.Get(rule.Key) == "" {
			errs = append(errs, missingParameter(rule.Key))
		}
	}

	seen = make(map[string]bool, len(rules))
	for _, rule := range rules {
		if rule.MaxValues <= 0 || !rule.MultiValue || seen[rule.Key] {
			continue
		}
		seen[rule.Key] = true
		if len(params.Values(rule.Key)) > rule.MaxValues {
			errs = append(errs, tooManyValues(rule.Key, rule.MaxValues))
		}
	}

	if len(errs) > 0 {
		v.state = Invalid
		v.errors = errs
	} else {
		v.state = Valid
	}
	return v.state
}

// State returns the current state.
func (v *Validation) State() ValidationState {
	return v.state
}

// Errors returns a copy of the collected errors.
func (v *Validation) Errors() []ValidationError {
	out := make([]ValidationError, len(v.errors))
	copy(out, v.errors)
	return out
}

// Validate is a one-shot helper returning the errors of a fresh Validation.
func Validate(params ParameterSet, rules []FieldRule) []ValidationError {
	v := NewValidation()
	v.Run(params, rules)
	return v.Errors()
}
