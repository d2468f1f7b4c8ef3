// Package manifest defines the export manifest consumed by the audit
// pipeline: the public API surface of a package (functions, classes,
// interfaces, enums, variables) together with raw documentation tags.
// Manifests are produced by external analyzers; this package only models,
// loads, and indexes them.
package manifest

// Kind represents the kind of an exported symbol
type Kind string

const (
	KindFunction  Kind = "function"
	KindClass     Kind = "class"
	KindInterface Kind = "interface"
	KindType      Kind = "type"
	KindEnum      Kind = "enum"
	KindVariable  Kind = "variable"
)

// IsCallable reports whether a symbol of this kind can appear in call
// position (functions and class constructors).
func (k Kind) IsCallable() bool {
	return k == KindFunction || k == KindClass
}

// Manifest is the structured export/type description consumed as input.
// It is immutable for the duration of an analysis run.
type Manifest struct {
	Meta    map[string]interface{} `json:"meta,omitempty" yaml:"meta,omitempty"`
	Exports []Export               `json:"exports" yaml:"exports"`
	Types   []TypeDecl             `json:"types,omitempty" yaml:"types,omitempty"`
}

// Export is a single exported symbol with its declaration and documentation.
type Export struct {
	ID             string          `json:"id,omitempty" yaml:"id,omitempty"`
	Name           string          `json:"name" yaml:"name"`
	Kind           Kind            `json:"kind" yaml:"kind"`
	Description    string          `json:"description,omitempty" yaml:"description,omitempty"`
	Signatures     []Signature     `json:"signatures,omitempty" yaml:"signatures,omitempty"`
	Members        []Member        `json:"members,omitempty" yaml:"members,omitempty"`
	Tags           []Tag           `json:"tags,omitempty" yaml:"tags,omitempty"`
	Examples       []string        `json:"examples,omitempty" yaml:"examples,omitempty"`
	Deprecated     bool            `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	TypeParameters []TypeParameter `json:"typeParameters,omitempty" yaml:"typeParameters,omitempty"`
}

// Identity returns the stable identity of the export: its id, falling back
// to its name.
func (e *Export) Identity() string {
	if e.ID != "" {
		return e.ID
	}
	return e.Name
}

// HasTag reports whether the export carries at least one tag with the
// given name.
func (e *Export) HasTag(name string) bool {
	for _, t := range e.Tags {
		if t.Name == name {
			return true
		}
	}
	return false
}

// TagsNamed returns all tags with the given name, in declaration order.
func (e *Export) TagsNamed(name string) []Tag {
	var out []Tag
	for _, t := range e.Tags {
		if t.Name == name {
			out = append(out, t)
		}
	}
	return out
}

// Signature is one call signature of a function/method export.
type Signature struct {
	Parameters     []Parameter     `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Returns        *Returns        `json:"returns,omitempty" yaml:"returns,omitempty"`
	TypeParameters []TypeParameter `json:"typeParameters,omitempty" yaml:"typeParameters,omitempty"`
}

// Parameter is a single declared parameter.
type Parameter struct {
	Name        string  `json:"name" yaml:"name"`
	Schema      *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
	Required    bool    `json:"required" yaml:"required"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
}

// Returns describes the declared return value of a signature.
type Returns struct {
	Schema      *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
}

// TypeParameter is a generic type parameter with an optional constraint.
type TypeParameter struct {
	Name       string `json:"name" yaml:"name"`
	Constraint string `json:"constraint,omitempty" yaml:"constraint,omitempty"`
}

// Member is a named member of a class or interface export.
type Member struct {
	Name       string  `json:"name" yaml:"name"`
	Schema     *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
	Tags       []Tag   `json:"tags,omitempty" yaml:"tags,omitempty"`
	Visibility string  `json:"visibility,omitempty" yaml:"visibility,omitempty"`
}

// TagsNamed returns all member tags with the given name.
func (m *Member) TagsNamed(name string) []Tag {
	var out []Tag
	for _, t := range m.Tags {
		if t.Name == name {
			out = append(out, t)
		}
	}
	return out
}

// Tag is a raw, unparsed documentation annotation. Multiple tags of the
// same name may coexist on one export.
type Tag struct {
	Name string `json:"name" yaml:"name"`
	Text string `json:"text" yaml:"text"`
}

// TypeDecl is a named type referenced by exports but not itself callable.
type TypeDecl struct {
	ID     string  `json:"id,omitempty" yaml:"id,omitempty"`
	Name   string  `json:"name" yaml:"name"`
	Schema *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// Identity returns the type's id, falling back to its name.
func (t *TypeDecl) Identity() string {
	if t.ID != "" {
		return t.ID
	}
	return t.Name
}
