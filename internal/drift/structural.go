package drift

import (
	"fmt"
	"strings"

	"docdrift/internal/fuzzy"
	"docdrift/internal/manifest"
	"docdrift/internal/tags"
)

// collectParameters gathers the declared parameters across all signatures,
// preserving declaration order and keeping the first occurrence per name.
func collectParameters(exp *manifest.Export) ([]string, map[string]*manifest.Parameter) {
	var names []string
	byName := make(map[string]*manifest.Parameter)

	for si := range exp.Signatures {
		sig := &exp.Signatures[si]
		for pi := range sig.Parameters {
			param := &sig.Parameters[pi]
			if _, ok := byName[param.Name]; ok {
				continue
			}
			byName[param.Name] = param
			names = append(names, param.Name)
		}
	}
	return names, byName
}

// checkParamNames reports @param tags that name a parameter the
// declaration does not have. Dot-notation like "opts.field" is verified
// against the properties of the prefixed parameter's type; when that type
// exposes no properties the tag is skipped silently, since correctness
// cannot be verified.
func checkParamNames(exp *manifest.Export) []Drift {
	paramTags := exp.TagsNamed("param")
	if len(paramTags) == 0 {
		return nil
	}

	names, byName := collectParameters(exp)

	var out []Drift
	for _, t := range paramTags {
		pt := tags.ExtractParamFromTag(t.Text)
		if pt == nil {
			continue
		}
		if _, ok := byName[pt.Name]; ok {
			continue
		}

		if prefix, path, ok := strings.Cut(pt.Name, "."); ok {
			if param, declared := byName[prefix]; declared {
				if d := checkDestructuredParam(pt.Name, prefix, path, param); d != nil {
					out = append(out, *d)
				}
				continue
			}
		}

		d := Drift{
			Type:   ParamMismatch,
			Target: pt.Name,
			Issue:  fmt.Sprintf("Documented parameter %q is not a parameter of %q", pt.Name, exp.Name),
		}
		if match := fuzzy.FindClosestMatch(pt.Name, names); match != nil {
			d.Suggestion = fmt.Sprintf("Did you mean %q?", match.Value)
		} else if len(names) > 0 && len(names) <= 6 {
			d.Suggestion = fmt.Sprintf("Actual parameters: %s", strings.Join(names, ", "))
		}
		out = append(out, d)
	}
	return out
}

// checkDestructuredParam verifies the first path segment of a dot-notation
// @param against the properties of the prefixed parameter's type. Returns
// nil when the tag is consistent or unverifiable.
func checkDestructuredParam(documented, prefix, path string, param *manifest.Parameter) *Drift {
	props := param.Schema.PropertyNames()
	if props == nil {
		return nil
	}

	field, _, _ := strings.Cut(path, ".")
	if param.Schema.HasProperty(field) {
		return nil
	}

	d := &Drift{
		Type:   ParamMismatch,
		Target: documented,
		Issue:  fmt.Sprintf("Documented parameter %q does not match any property of %q", documented, prefix),
	}
	if match := fuzzy.FindClosestMatch(field, props); match != nil {
		d.Suggestion = fmt.Sprintf("Did you mean %q?", prefix+"."+match.Value)
	} else if len(props) <= 8 {
		d.Suggestion = fmt.Sprintf("Properties of %q: %s", prefix, strings.Join(props, ", "))
	}
	return d
}

// checkOptionality compares @param bracket notation against the declared
// required flag, in both directions.
func checkOptionality(exp *manifest.Export) []Drift {
	_, byName := collectParameters(exp)

	var out []Drift
	for _, t := range exp.TagsNamed("param") {
		pt := tags.ExtractParamFromTag(t.Text)
		if pt == nil {
			continue
		}
		param, ok := byName[pt.Name]
		if !ok {
			continue
		}

		switch {
		case pt.IsOptional && param.Required:
			out = append(out, Drift{
				Type:       OptionalityMismatch,
				Target:     pt.Name,
				Issue:      fmt.Sprintf("Documentation marks %q as optional, but the declaration requires it", pt.Name),
				Suggestion: fmt.Sprintf("Drop the brackets: @param %s", pt.Name),
			})
		case !pt.IsOptional && !param.Required:
			out = append(out, Drift{
				Type:       OptionalityMismatch,
				Target:     pt.Name,
				Issue:      fmt.Sprintf("Documentation marks %q as required, but the declaration makes it optional", pt.Name),
				Suggestion: fmt.Sprintf("Add brackets: @param [%s]", pt.Name),
			})
		}
	}
	return out
}

// checkParamTypes compares documented @param {Type} annotations against
// the declared parameter schemas.
func checkParamTypes(exp *manifest.Export) []Drift {
	_, byName := collectParameters(exp)

	var out []Drift
	for _, t := range exp.TagsNamed("param") {
		pt := tags.ExtractParamFromTag(t.Text)
		if pt == nil || pt.Type == "" {
			continue
		}
		param, ok := byName[pt.Name]
		if !ok {
			continue
		}
		declared := param.Schema.TypeString()
		if declared == "" {
			continue
		}
		if tags.TypesEquivalent(pt.Type, declared) {
			continue
		}
		out = append(out, Drift{
			Type:       ParamTypeMismatch,
			Target:     pt.Name,
			Issue:      fmt.Sprintf("@param documents %q as {%s} but the declared type is %q", pt.Name, pt.Type, declared),
			Suggestion: fmt.Sprintf("Update the tag to @param {%s} %s", declared, pt.Name),
		})
	}
	return out
}

// checkReturnTypes compares a documented @returns {Type} against the
// declared return type, with dedicated messaging when exactly one side
// carries a Promise wrapper.
func checkReturnTypes(exp *manifest.Export) []Drift {
	docType := documentedReturnType(exp)
	if docType == "" {
		return nil
	}

	declared := declaredReturnType(exp)
	if declared == "" {
		return nil
	}
	if tags.TypesEquivalent(docType, declared) {
		return nil
	}

	d := Drift{
		Type:   ReturnTypeMismatch,
		Target: "returns",
		Issue:  fmt.Sprintf("@returns documents {%s} but the declaration returns %q", docType, declared),
	}

	docInner, docIsPromise := tags.UnwrapPromise(docType)
	declInner, declIsPromise := tags.UnwrapPromise(declared)
	switch {
	case docIsPromise && !declIsPromise && tags.TypesEquivalent(docInner, declared):
		d.Issue = fmt.Sprintf("@returns documents {%s} but the declaration returns %q; the Promise wrapper looks extra", docType, declared)
		d.Suggestion = fmt.Sprintf("Document the return type as {%s}", declared)
	case declIsPromise && !docIsPromise && tags.TypesEquivalent(declInner, docType):
		d.Issue = fmt.Sprintf("@returns documents {%s} but the declaration returns %q; the Promise wrapper looks missing", docType, declared)
		d.Suggestion = fmt.Sprintf("Document the return type as {%s}", declared)
	default:
		d.Suggestion = fmt.Sprintf("Update the tag to @returns {%s}", declared)
	}

	return []Drift{d}
}

// documentedReturnType extracts the first brace-delimited type from a
// @returns/@return tag.
func documentedReturnType(exp *manifest.Export) string {
	for _, name := range []string{"returns", "return"} {
		for _, t := range exp.TagsNamed(name) {
			if typ := tags.ExtractReturnTypeFromTag(t.Text); typ != "" {
				return typ
			}
		}
	}
	return ""
}

// declaredReturnType returns the first declared return type across the
// export's signatures.
func declaredReturnType(exp *manifest.Export) string {
	for i := range exp.Signatures {
		ret := exp.Signatures[i].Returns
		if ret == nil {
			continue
		}
		if typ := ret.Schema.TypeString(); typ != "" {
			return typ
		}
	}
	return ""
}

// checkGenericConstraints compares documented @template constraints with
// the actual type-parameter constraints. Export-level type parameters are
// collected first, then signature-level ones; the first occurrence per
// name wins.
func checkGenericConstraints(exp *manifest.Export) []Drift {
	constraints := make(map[string]string)
	record := func(tp manifest.TypeParameter) {
		if _, ok := constraints[tp.Name]; !ok {
			constraints[tp.Name] = tp.Constraint
		}
	}
	for _, tp := range exp.TypeParameters {
		record(tp)
	}
	for i := range exp.Signatures {
		for _, tp := range exp.Signatures[i].TypeParameters {
			record(tp)
		}
	}

	var out []Drift
	for _, t := range exp.TagsNamed("template") {
		tt := tags.ParseTemplateTag(t.Text)
		if tt == nil || tt.Constraint == "" {
			continue
		}
		actual, ok := constraints[tt.Name]
		if !ok {
			continue
		}
		if actual == "" {
			out = append(out, Drift{
				Type:       GenericConstraintMismatch,
				Target:     tt.Name,
				Issue:      fmt.Sprintf("@template documents a %q constraint for %q, but the declaration has none", tt.Constraint, tt.Name),
				Suggestion: fmt.Sprintf("Remove the constraint from @template %s", tt.Name),
			})
			continue
		}
		if !tags.TypesEquivalent(tt.Constraint, actual) {
			out = append(out, Drift{
				Type:       GenericConstraintMismatch,
				Target:     tt.Name,
				Issue:      fmt.Sprintf("@template documents %q constrained to %q, but the declaration constrains it to %q", tt.Name, tt.Constraint, actual),
				Suggestion: fmt.Sprintf("Update the tag to @template {%s} %s", actual, tt.Name),
			})
		}
	}
	return out
}

// checkPropertyTypes compares member @type {T} annotations against the
// member's declared schema type.
func checkPropertyTypes(exp *manifest.Export) []Drift {
	var out []Drift
	for i := range exp.Members {
		member := &exp.Members[i]
		declared := member.Schema.TypeString()
		if declared == "" {
			continue
		}
		for _, t := range member.TagsNamed("type") {
			documented := tags.ExtractReturnTypeFromTag(t.Text)
			if documented == "" {
				continue
			}
			if tags.TypesEquivalent(documented, declared) {
				continue
			}
			out = append(out, Drift{
				Type:       PropertyTypeDrift,
				Target:     member.Name,
				Issue:      fmt.Sprintf("@type documents %q as {%s} but the declared type is %q", member.Name, documented, declared),
				Suggestion: fmt.Sprintf("Update the tag to @type {%s}", declared),
			})
		}
	}
	return out
}
