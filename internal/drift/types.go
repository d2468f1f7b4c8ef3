// Package drift detects disagreements between documentation and the
// actual declarations in an export manifest. Each defect is a pure data
// record; detectors never fail on malformed input.
package drift

// Type identifies one of the closed set of drift variants.
type Type string

const (
	// Structural: the documented shape disagrees with the declaration.
	ParamMismatch             Type = "param-mismatch"
	ParamTypeMismatch         Type = "param-type-mismatch"
	ReturnTypeMismatch        Type = "return-type-mismatch"
	OptionalityMismatch       Type = "optionality-mismatch"
	GenericConstraintMismatch Type = "generic-constraint-mismatch"
	PropertyTypeDrift         Type = "property-type-drift"
	AsyncMismatch             Type = "async-mismatch"

	// Semantic: annotations disagree with declaration metadata.
	DeprecatedMismatch Type = "deprecated-mismatch"
	VisibilityMismatch Type = "visibility-mismatch"
	BrokenLink         Type = "broken-link"

	// Example: defects inside embedded example code.
	ExampleDrift           Type = "example-drift"
	ExampleSyntaxError     Type = "example-syntax-error"
	ExampleRuntimeError    Type = "example-runtime-error"
	ExampleAssertionFailed Type = "example-assertion-failed"
)

// AllTypes lists every drift variant. Tests assert the category partition
// stays total over this list.
var AllTypes = []Type{
	ParamMismatch,
	ParamTypeMismatch,
	ReturnTypeMismatch,
	OptionalityMismatch,
	GenericConstraintMismatch,
	PropertyTypeDrift,
	AsyncMismatch,
	DeprecatedMismatch,
	VisibilityMismatch,
	BrokenLink,
	ExampleDrift,
	ExampleSyntaxError,
	ExampleRuntimeError,
	ExampleAssertionFailed,
}

// Category groups drift variants for reporting.
type Category string

const (
	CategoryStructural Category = "structural"
	CategorySemantic   Category = "semantic"
	CategoryExample    Category = "example"
)

// Category maps each drift variant to its fixed category. The switch is
// the single source of truth; a variant added without a case here is
// caught by TestCategoryTotal.
func (t Type) Category() Category {
	switch t {
	case ParamMismatch, ParamTypeMismatch, ReturnTypeMismatch,
		OptionalityMismatch, GenericConstraintMismatch, PropertyTypeDrift,
		AsyncMismatch:
		return CategoryStructural
	case DeprecatedMismatch, VisibilityMismatch, BrokenLink:
		return CategorySemantic
	case ExampleDrift, ExampleSyntaxError, ExampleRuntimeError,
		ExampleAssertionFailed:
		return CategoryExample
	}
	return ""
}

// Drift is one detected documentation↔declaration mismatch.
type Drift struct {
	Type       Type   `json:"type"`
	Target     string `json:"target,omitempty"`
	Issue      string `json:"issue"`
	Suggestion string `json:"suggestion,omitempty"`
}
