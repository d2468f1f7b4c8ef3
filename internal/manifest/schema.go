package manifest

import (
	"sort"
	"strings"
)

// Schema is a structural type description: a primitive, a reference to a
// named type, a union, or an object with properties.
type Schema struct {
	Type       string             `json:"type,omitempty" yaml:"type,omitempty"`
	Ref        string             `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	AnyOf      []*Schema          `json:"anyOf,omitempty" yaml:"anyOf,omitempty"`
	Properties map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Items      *Schema            `json:"items,omitempty" yaml:"items,omitempty"`
}

// TypeString renders the schema as a display type expression suitable for
// comparison against documented types. It never fails; unknown shapes
// render as empty string.
func (s *Schema) TypeString() string {
	if s == nil {
		return ""
	}
	switch {
	case s.Ref != "":
		return refName(s.Ref)
	case len(s.AnyOf) > 0:
		parts := make([]string, 0, len(s.AnyOf))
		for _, sub := range s.AnyOf {
			if t := sub.TypeString(); t != "" {
				parts = append(parts, t)
			}
		}
		return strings.Join(parts, " | ")
	case s.Type == "array" && s.Items != nil:
		return s.Items.TypeString() + "[]"
	case s.Type != "":
		return s.Type
	}
	return ""
}

// PropertyNames returns the sorted property names of an object schema, or
// nil when the schema exposes no extractable properties (primitives, refs,
// unions).
func (s *Schema) PropertyNames() []string {
	if s == nil || len(s.Properties) == 0 {
		return nil
	}
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasProperty reports whether the schema exposes the named property.
func (s *Schema) HasProperty(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.Properties[name]
	return ok
}

// refName extracts the terminal segment of a $ref pointer,
// e.g. "#/types/UserOptions" -> "UserOptions".
func refName(ref string) string {
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		return ref[i+1:]
	}
	return ref
}
