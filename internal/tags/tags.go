// Package tags parses raw documentation tag text (@param, @returns,
// @template) into structured tokens and normalizes type expressions for
// comparison. Every function here is total: malformed input yields nil or
// an empty value, never a panic or an error. The grammar is deliberately
// forgiving; documentation authors do not write machine-checked syntax.
package tags

import (
	"regexp"
	"strings"
)

// ParamTag is the structured form of an @param tag.
type ParamTag struct {
	Name       string
	Type       string
	IsOptional bool
}

// TemplateTag is the structured form of an @template tag.
type TemplateTag struct {
	Name       string
	Constraint string
}

var (
	paramRe      = regexp.MustCompile(`^(?:\{([^}]*)\}\s+)?(\S+)`)
	returnTypeRe = regexp.MustCompile(`^\{([^}]*)\}`)
	promiseRe    = regexp.MustCompile(`(?i)^promise<(.+)>$`)
	// {Constraint} Name form
	templateBraceRe = regexp.MustCompile(`^\{([^}]*)\}\s+(\S+)`)
	// Name extends Constraint [- description] form
	templateExtendsRe = regexp.MustCompile(`^(\S+)\s+extends\s+(.*)$`)
)

// ExtractParamFromTag parses @param tag text into a name, an optional
// leading {type}, and an optionality marker. Returns nil when no name
// token is present.
//
// Accepted shapes: "{string} foo - the input", "[foo]", "[foo=42]",
// "foo, trailing prose".
func ExtractParamFromTag(text string) *ParamTag {
	m := paramRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil || m[2] == "" {
		return nil
	}

	tag := &ParamTag{Type: strings.TrimSpace(m[1])}

	name := m[2]
	if strings.HasPrefix(name, "[") {
		tag.IsOptional = true
		name = strings.TrimPrefix(name, "[")
		name = strings.TrimSuffix(name, "]")
		// [name=default] documents a default value alongside optionality
		if i := strings.Index(name, "="); i >= 0 {
			name = name[:i]
		}
	}
	name = strings.TrimSuffix(name, ",")
	if name == "" {
		return nil
	}

	tag.Name = name
	return tag
}

// ExtractReturnTypeFromTag returns the brace-delimited type of an @returns
// tag, only when the text starts with "{...}". A bare leading word is never
// treated as a type; prose like "returns the user" must not produce one.
func ExtractReturnTypeFromTag(text string) string {
	m := returnTypeRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// ParseTemplateTag parses @template tag text. Both documented forms are
// supported: "{Constraint} Name" and "Name extends Constraint - description".
// The constraint capture terminates at a literal "-" or en-dash token.
// Returns nil when no name token is present.
func ParseTemplateTag(text string) *TemplateTag {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	if m := templateBraceRe.FindStringSubmatch(text); m != nil {
		return &TemplateTag{
			Name:       strings.TrimSuffix(m[2], ","),
			Constraint: strings.TrimSpace(m[1]),
		}
	}

	if m := templateExtendsRe.FindStringSubmatch(text); m != nil {
		constraint := trimConstraintDescription(m[2])
		if constraint == "" {
			return nil
		}
		return &TemplateTag{Name: m[1], Constraint: constraint}
	}

	// Bare name with no constraint, e.g. "@template T".
	name := strings.Fields(text)
	if len(name) == 0 {
		return nil
	}
	return &TemplateTag{Name: strings.TrimSuffix(name[0], ",")}
}

// trimConstraintDescription cuts a trailing "- description" off a
// constraint expression. Only a standalone dash token terminates the
// constraint; a dash inside a type like "a-b" does not.
func trimConstraintDescription(s string) string {
	var kept []string
	for _, tok := range strings.Fields(s) {
		if tok == "-" || tok == "–" {
			break
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

var wsRe = regexp.MustCompile(`\s+`)

// NormalizeType canonicalizes a type expression for comparison: collapses
// runs of whitespace and removes spaces around angle brackets.
func NormalizeType(s string) string {
	s = wsRe.ReplaceAllString(strings.TrimSpace(s), " ")
	s = strings.ReplaceAll(s, " <", "<")
	s = strings.ReplaceAll(s, "< ", "<")
	s = strings.ReplaceAll(s, " >", ">")
	s = strings.ReplaceAll(s, "> ", ">")
	return s
}

// TypesEquivalent reports whether two type expressions are equal under
// normalization. "void" and "undefined" are treated as interchangeable,
// case-insensitively: TypeScript surfaces both for absent values.
func TypesEquivalent(a, b string) bool {
	na, nb := NormalizeType(a), NormalizeType(b)
	if na == nb {
		return true
	}
	return isVoidLike(na) && isVoidLike(nb)
}

func isVoidLike(s string) bool {
	switch strings.ToLower(s) {
	case "void", "undefined":
		return true
	}
	return false
}

// UnwrapPromise extracts X from "Promise<X>", case-insensitively on the
// Promise head. The second result is false when the expression is not a
// Promise type.
func UnwrapPromise(s string) (string, bool) {
	m := promiseRe.FindStringSubmatch(NormalizeType(s))
	if m == nil {
		return "", false
	}
	return m[1], true
}
