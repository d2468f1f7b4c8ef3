package drift

// CategorizedDrift is a drift finding annotated with its category and
// fixability for reporting.
type CategorizedDrift struct {
	Drift
	Category Category `json:"category"`
	Fixable  bool     `json:"fixable"`
}

// Categorize annotates a drift finding with its category and fixability.
func Categorize(d Drift) CategorizedDrift {
	return CategorizedDrift{
		Drift:    d,
		Category: d.Type.Category(),
		Fixable:  IsFixable(d),
	}
}

// IsFixable is the fixability policy: a drift is auto-fixable when the
// remediation is a mechanical documentation edit. Findings that require
// judgement (broken examples, visibility decisions) are not.
func IsFixable(d Drift) bool {
	switch d.Type {
	case ParamMismatch:
		return d.Suggestion != ""
	case ParamTypeMismatch, ReturnTypeMismatch, OptionalityMismatch,
		GenericConstraintMismatch, PropertyTypeDrift, DeprecatedMismatch:
		return true
	case AsyncMismatch, VisibilityMismatch, BrokenLink,
		ExampleDrift, ExampleSyntaxError, ExampleRuntimeError,
		ExampleAssertionFailed:
		return false
	}
	return false
}
