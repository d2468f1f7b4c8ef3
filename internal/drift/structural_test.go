package drift

import (
	"strings"
	"testing"

	"docdrift/internal/manifest"
)

func fnExport(name string, params []manifest.Parameter, tags []manifest.Tag) *manifest.Export {
	return &manifest.Export{
		Name:       name,
		Kind:       manifest.KindFunction,
		Signatures: []manifest.Signature{{Parameters: params}},
		Tags:       tags,
	}
}

func TestCheckParamNamesUnknownParam(t *testing.T) {
	exp := fnExport("applyTax",
		[]manifest.Parameter{
			{Name: "base", Required: true},
			{Name: "taxRate", Required: true},
		},
		[]manifest.Tag{{Name: "param", Text: "tax - the tax rate"}},
	)

	drifts := checkParamNames(exp)
	if len(drifts) != 1 {
		t.Fatalf("got %d drifts, want 1: %+v", len(drifts), drifts)
	}
	d := drifts[0]
	if d.Type != ParamMismatch {
		t.Errorf("Type = %s, want %s", d.Type, ParamMismatch)
	}
	if d.Target != "tax" {
		t.Errorf("Target = %q, want %q", d.Target, "tax")
	}
	if d.Suggestion != "Actual parameters: base, taxRate" {
		t.Errorf("Suggestion = %q, want parameter enumeration", d.Suggestion)
	}
}

func TestCheckParamNamesFuzzySuggestion(t *testing.T) {
	exp := fnExport("getUser",
		[]manifest.Parameter{{Name: "userID", Required: true}},
		[]manifest.Tag{{Name: "param", Text: "userId - the identifier"}},
	)

	drifts := checkParamNames(exp)
	if len(drifts) != 1 {
		t.Fatalf("got %d drifts, want 1: %+v", len(drifts), drifts)
	}
	if drifts[0].Suggestion != `Did you mean "userID"?` {
		t.Errorf("Suggestion = %q, want fuzzy match", drifts[0].Suggestion)
	}
}

func TestCheckParamNamesSuffixOnlyDoesNotMatch(t *testing.T) {
	exp := fnExport("formatUser",
		[]manifest.Parameter{{Name: "name", Required: true}},
		[]manifest.Tag{{Name: "param", Text: "firstName - the given name"}},
	)

	drifts := checkParamNames(exp)
	if len(drifts) != 1 {
		t.Fatalf("got %d drifts, want 1: %+v", len(drifts), drifts)
	}
	if drifts[0].Suggestion != "Actual parameters: name" {
		t.Errorf("Suggestion = %q, want parameter enumeration, not a fuzzy match", drifts[0].Suggestion)
	}
}

func TestCheckParamNamesDocumentedParamExists(t *testing.T) {
	exp := fnExport("add",
		[]manifest.Parameter{{Name: "a", Required: true}, {Name: "b", Required: true}},
		[]manifest.Tag{
			{Name: "param", Text: "a - first operand"},
			{Name: "param", Text: "b - second operand"},
		},
	)

	if drifts := checkParamNames(exp); len(drifts) != 0 {
		t.Errorf("got %d drifts, want 0: %+v", len(drifts), drifts)
	}
}

func TestCheckParamNamesDestructured(t *testing.T) {
	options := manifest.Parameter{
		Name:     "options",
		Required: true,
		Schema: &manifest.Schema{
			Type: "object",
			Properties: map[string]*manifest.Schema{
				"timeout": {Type: "number"},
				"retries": {Type: "number"},
			},
		},
	}

	t.Run("valid property", func(t *testing.T) {
		exp := fnExport("request",
			[]manifest.Parameter{options},
			[]manifest.Tag{{Name: "param", Text: "options.timeout - request timeout"}},
		)
		if drifts := checkParamNames(exp); len(drifts) != 0 {
			t.Errorf("got %d drifts, want 0: %+v", len(drifts), drifts)
		}
	})

	t.Run("unknown property", func(t *testing.T) {
		exp := fnExport("request",
			[]manifest.Parameter{options},
			[]manifest.Tag{{Name: "param", Text: "options.timeut - request timeout"}},
		)
		drifts := checkParamNames(exp)
		if len(drifts) != 1 {
			t.Fatalf("got %d drifts, want 1: %+v", len(drifts), drifts)
		}
		if drifts[0].Target != "options.timeut" {
			t.Errorf("Target = %q", drifts[0].Target)
		}
		if drifts[0].Suggestion != `Properties of "options": retries, timeout` {
			t.Errorf("Suggestion = %q, want property enumeration", drifts[0].Suggestion)
		}
	})

	t.Run("unverifiable type is skipped", func(t *testing.T) {
		exp := fnExport("request",
			[]manifest.Parameter{{Name: "config", Required: true, Schema: &manifest.Schema{Ref: "#/types/Config"}}},
			[]manifest.Tag{{Name: "param", Text: "config.anything - cannot be checked"}},
		)
		if drifts := checkParamNames(exp); len(drifts) != 0 {
			t.Errorf("got %d drifts, want 0: %+v", len(drifts), drifts)
		}
	})
}

func TestCheckOptionality(t *testing.T) {
	t.Run("documented optional but required", func(t *testing.T) {
		exp := fnExport("send",
			[]manifest.Parameter{{Name: "payload", Required: true}},
			[]manifest.Tag{{Name: "param", Text: "[payload] - the body"}},
		)
		drifts := checkOptionality(exp)
		if len(drifts) != 1 {
			t.Fatalf("got %d drifts, want 1: %+v", len(drifts), drifts)
		}
		if drifts[0].Type != OptionalityMismatch {
			t.Errorf("Type = %s", drifts[0].Type)
		}
		if !strings.Contains(drifts[0].Issue, "optional") || !strings.Contains(drifts[0].Issue, "requires it") {
			t.Errorf("Issue = %q, want direction-specific message", drifts[0].Issue)
		}
	})

	t.Run("documented required but optional", func(t *testing.T) {
		exp := fnExport("send",
			[]manifest.Parameter{{Name: "payload", Required: false}},
			[]manifest.Tag{{Name: "param", Text: "payload - the body"}},
		)
		drifts := checkOptionality(exp)
		if len(drifts) != 1 {
			t.Fatalf("got %d drifts, want 1: %+v", len(drifts), drifts)
		}
		if !strings.Contains(drifts[0].Issue, "required") || !strings.Contains(drifts[0].Issue, "makes it optional") {
			t.Errorf("Issue = %q, want direction-specific message", drifts[0].Issue)
		}
	})

	t.Run("agreement", func(t *testing.T) {
		exp := fnExport("send",
			[]manifest.Parameter{{Name: "payload", Required: false}},
			[]manifest.Tag{{Name: "param", Text: "[payload] - the body"}},
		)
		if drifts := checkOptionality(exp); len(drifts) != 0 {
			t.Errorf("got %d drifts, want 0: %+v", len(drifts), drifts)
		}
	})
}

func TestCheckParamTypes(t *testing.T) {
	exp := fnExport("repeat",
		[]manifest.Parameter{{Name: "count", Required: true, Schema: &manifest.Schema{Type: "number"}}},
		[]manifest.Tag{{Name: "param", Text: "{string} count - how many times"}},
	)

	drifts := checkParamTypes(exp)
	if len(drifts) != 1 {
		t.Fatalf("got %d drifts, want 1: %+v", len(drifts), drifts)
	}
	if drifts[0].Type != ParamTypeMismatch {
		t.Errorf("Type = %s", drifts[0].Type)
	}
	if drifts[0].Suggestion != "Update the tag to @param {number} count" {
		t.Errorf("Suggestion = %q", drifts[0].Suggestion)
	}

	// Untyped tag and unknown declared type are both silent.
	exp.Tags = []manifest.Tag{{Name: "param", Text: "count - how many times"}}
	if drifts := checkParamTypes(exp); len(drifts) != 0 {
		t.Errorf("untyped tag produced drifts: %+v", drifts)
	}
}

func TestCheckReturnTypes(t *testing.T) {
	withReturn := func(declared, documented string) *manifest.Export {
		return &manifest.Export{
			Name: "fn",
			Kind: manifest.KindFunction,
			Signatures: []manifest.Signature{{
				Returns: &manifest.Returns{Schema: &manifest.Schema{Type: declared}},
			}},
			Tags: []manifest.Tag{{Name: "returns", Text: documented}},
		}
	}

	t.Run("equivalent", func(t *testing.T) {
		if drifts := checkReturnTypes(withReturn("string", "{string} the output")); len(drifts) != 0 {
			t.Errorf("got drifts: %+v", drifts)
		}
	})

	t.Run("void and undefined interchangeable", func(t *testing.T) {
		if drifts := checkReturnTypes(withReturn("void", "{undefined}")); len(drifts) != 0 {
			t.Errorf("got drifts: %+v", drifts)
		}
	})

	t.Run("plain mismatch", func(t *testing.T) {
		drifts := checkReturnTypes(withReturn("number", "{string} the output"))
		if len(drifts) != 1 {
			t.Fatalf("got %d drifts, want 1", len(drifts))
		}
		if drifts[0].Type != ReturnTypeMismatch || drifts[0].Target != "returns" {
			t.Errorf("drift = %+v", drifts[0])
		}
		if drifts[0].Suggestion != "Update the tag to @returns {number}" {
			t.Errorf("Suggestion = %q", drifts[0].Suggestion)
		}
	})

	t.Run("extra promise wrapper", func(t *testing.T) {
		drifts := checkReturnTypes(withReturn("string", "{Promise<string>}"))
		if len(drifts) != 1 {
			t.Fatalf("got %d drifts, want 1", len(drifts))
		}
		if !strings.Contains(drifts[0].Issue, "wrapper looks extra") {
			t.Errorf("Issue = %q", drifts[0].Issue)
		}
	})

	t.Run("missing promise wrapper", func(t *testing.T) {
		drifts := checkReturnTypes(withReturn("Promise<string>", "{string}"))
		if len(drifts) != 1 {
			t.Fatalf("got %d drifts, want 1", len(drifts))
		}
		if !strings.Contains(drifts[0].Issue, "wrapper looks missing") {
			t.Errorf("Issue = %q", drifts[0].Issue)
		}
	})

	t.Run("prose tag has no type", func(t *testing.T) {
		if drifts := checkReturnTypes(withReturn("string", "returns the output")); len(drifts) != 0 {
			t.Errorf("got drifts: %+v", drifts)
		}
	})
}

func TestCheckGenericConstraints(t *testing.T) {
	t.Run("agreement", func(t *testing.T) {
		exp := &manifest.Export{
			Name:           "pick",
			Kind:           manifest.KindFunction,
			TypeParameters: []manifest.TypeParameter{{Name: "T", Constraint: "object"}},
			Tags:           []manifest.Tag{{Name: "template", Text: "{object} T"}},
		}
		if drifts := checkGenericConstraints(exp); len(drifts) != 0 {
			t.Errorf("got drifts: %+v", drifts)
		}
	})

	t.Run("documented constraint missing from declaration", func(t *testing.T) {
		exp := &manifest.Export{
			Name:           "identity",
			Kind:           manifest.KindFunction,
			TypeParameters: []manifest.TypeParameter{{Name: "T"}},
			Tags:           []manifest.Tag{{Name: "template", Text: "T extends object"}},
		}
		drifts := checkGenericConstraints(exp)
		if len(drifts) != 1 {
			t.Fatalf("got %d drifts, want 1", len(drifts))
		}
		if drifts[0].Type != GenericConstraintMismatch || drifts[0].Target != "T" {
			t.Errorf("drift = %+v", drifts[0])
		}
	})

	t.Run("constraint disagreement on signature type parameter", func(t *testing.T) {
		exp := &manifest.Export{
			Name: "keyOf",
			Kind: manifest.KindFunction,
			Signatures: []manifest.Signature{{
				TypeParameters: []manifest.TypeParameter{{Name: "K", Constraint: "string"}},
			}},
			Tags: []manifest.Tag{{Name: "template", Text: "{number} K"}},
		}
		drifts := checkGenericConstraints(exp)
		if len(drifts) != 1 {
			t.Fatalf("got %d drifts, want 1", len(drifts))
		}
		if drifts[0].Suggestion != "Update the tag to @template {string} K" {
			t.Errorf("Suggestion = %q", drifts[0].Suggestion)
		}
	})

	t.Run("undeclared template name is skipped", func(t *testing.T) {
		exp := &manifest.Export{
			Name: "plain",
			Kind: manifest.KindFunction,
			Tags: []manifest.Tag{{Name: "template", Text: "{object} T"}},
		}
		if drifts := checkGenericConstraints(exp); len(drifts) != 0 {
			t.Errorf("got drifts: %+v", drifts)
		}
	})
}

func TestCheckPropertyTypes(t *testing.T) {
	exp := &manifest.Export{
		Name: "Config",
		Kind: manifest.KindClass,
		Members: []manifest.Member{
			{
				Name:   "timeout",
				Schema: &manifest.Schema{Type: "number"},
				Tags:   []manifest.Tag{{Name: "type", Text: "{string}"}},
			},
			{
				Name:   "name",
				Schema: &manifest.Schema{Type: "string"},
				Tags:   []manifest.Tag{{Name: "type", Text: "{string}"}},
			},
		},
	}

	drifts := checkPropertyTypes(exp)
	if len(drifts) != 1 {
		t.Fatalf("got %d drifts, want 1: %+v", len(drifts), drifts)
	}
	if drifts[0].Type != PropertyTypeDrift || drifts[0].Target != "timeout" {
		t.Errorf("drift = %+v", drifts[0])
	}
	if drifts[0].Suggestion != "Update the tag to @type {number}" {
		t.Errorf("Suggestion = %q", drifts[0].Suggestion)
	}
}

func TestCollectParametersFirstOccurrenceWins(t *testing.T) {
	exp := &manifest.Export{
		Name: "overloaded",
		Kind: manifest.KindFunction,
		Signatures: []manifest.Signature{
			{Parameters: []manifest.Parameter{{Name: "input", Required: true}}},
			{Parameters: []manifest.Parameter{{Name: "input", Required: false}, {Name: "options", Required: false}}},
		},
	}

	names, byName := collectParameters(exp)
	if len(names) != 2 || names[0] != "input" || names[1] != "options" {
		t.Fatalf("names = %v", names)
	}
	if !byName["input"].Required {
		t.Error("first occurrence of input should win (required)")
	}
}
