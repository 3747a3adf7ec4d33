package config

// Outcome tags the result of checking a candidate value against a rule.
type Outcome int

const (
	Ok Outcome = iota
	Warning
)

func (o Outcome) String() string {
	switch o {
	case Ok:
		return "ok"
	case Warning:
		return "warning"
	default:
		return "unknown"
	}
}

// SetResult is the outcome of a rule check. Reason is empty for Ok.
type SetResult struct {
	Outcome Outcome
	Reason  string
}

// Accepted is the Ok result.
func Accepted() SetResult { return SetResult{Outcome: Ok} }

// Warned builds a Warning result carrying reason.
func Warned(reason string) SetResult { return SetResult{Outcome: Warning, Reason: reason} }

// IsWarning reports whether the check produced a warning.
func (r SetResult) IsWarning() bool { return r.Outcome == Warning }

// WarningPolicy decides whether a value that produced a warning is stored.
type WarningPolicy int

const (
	// ApplyOnWarning stores the value after reporting the warning.
	ApplyOnWarning WarningPolicy = iota
	// RejectOnWarning keeps the previous value.
	RejectOnWarning
)

// Rule evaluates a candidate value.
type Rule[T any] func(T) SetResult

// NonNegative warns with reason when the value is below zero.
func NonNegative(reason string) Rule[float64] {
	return func(v float64) SetResult {
		if v < 0 {
			return Warned(reason)
		}
		return Accepted()
	}
}

// Parameter is a named typed value with an optional acceptance rule.
// Get and Set never consult the rule; Check and Apply do.
type Parameter[T any] struct {
	name  string
	value T
	rule  Rule[T]
}

// NewParameter creates a parameter holding initial. rule may be nil.
func NewParameter[T any](name string, initial T, rule Rule[T]) *Parameter[T] {
	return &Parameter[T]{name: name, value: initial, rule: rule}
}

func (p *Parameter[T]) Name() string { return p.name }

func (p *Parameter[T]) Get() T { return p.value }

// Set overwrites the value unconditionally.
func (p *Parameter[T]) Set(v T) { p.value = v }

// Check evaluates the rule against v without storing it.
func (p *Parameter[T]) Check(v T) SetResult {
	if p.rule == nil {
		return Accepted()
	}
	return p.rule(v)
}

// Apply checks v and stores it according to policy. The boolean reports
// whether the value was stored.
func (p *Parameter[T]) Apply(v T, policy WarningPolicy) (SetResult, bool) {
	res := p.Check(v)
	if res.IsWarning() && policy == RejectOnWarning {
		return res, false
	}
	p.value = v
	return res, true
}
