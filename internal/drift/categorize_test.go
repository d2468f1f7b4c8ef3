package drift

import "testing"

func TestCategoryTotal(t *testing.T) {
	if len(AllTypes) != 14 {
		t.Fatalf("AllTypes has %d variants, want 14", len(AllTypes))
	}

	counts := make(map[Category]int)
	for _, typ := range AllTypes {
		cat := typ.Category()
		if cat == "" {
			t.Errorf("variant %q has no category", typ)
		}
		counts[cat]++
	}

	if counts[CategoryStructural] != 7 {
		t.Errorf("structural count = %d, want 7", counts[CategoryStructural])
	}
	if counts[CategorySemantic] != 3 {
		t.Errorf("semantic count = %d, want 3", counts[CategorySemantic])
	}
	if counts[CategoryExample] != 4 {
		t.Errorf("example count = %d, want 4", counts[CategoryExample])
	}
}

func TestIsFixable(t *testing.T) {
	tests := []struct {
		name string
		d    Drift
		want bool
	}{
		{
			name: "param mismatch with suggestion",
			d:    Drift{Type: ParamMismatch, Suggestion: `Did you mean "base"?`},
			want: true,
		},
		{
			name: "param mismatch without suggestion",
			d:    Drift{Type: ParamMismatch},
			want: false,
		},
		{
			name: "type mismatches are mechanical edits",
			d:    Drift{Type: ParamTypeMismatch},
			want: true,
		},
		{
			name: "return type",
			d:    Drift{Type: ReturnTypeMismatch},
			want: true,
		},
		{
			name: "deprecated",
			d:    Drift{Type: DeprecatedMismatch},
			want: true,
		},
		{
			name: "broken link needs judgement",
			d:    Drift{Type: BrokenLink, Suggestion: `Did you mean "other"?`},
			want: false,
		},
		{
			name: "example drift needs judgement",
			d:    Drift{Type: ExampleDrift},
			want: false,
		},
		{
			name: "runtime error needs judgement",
			d:    Drift{Type: ExampleRuntimeError},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFixable(tt.d); got != tt.want {
				t.Errorf("IsFixable(%s) = %v, want %v", tt.d.Type, got, tt.want)
			}
		})
	}
}

func TestCategorize(t *testing.T) {
	d := Drift{Type: OptionalityMismatch, Target: "payload", Issue: "mismatch"}
	cd := Categorize(d)
	if cd.Category != CategoryStructural {
		t.Errorf("Category = %s, want structural", cd.Category)
	}
	if !cd.Fixable {
		t.Error("optionality mismatch should be fixable")
	}
	if cd.Target != "payload" {
		t.Errorf("embedded drift lost: %+v", cd)
	}
}
