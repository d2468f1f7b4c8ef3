package drift

import "testing"

func TestGetSummary(t *testing.T) {
	drifts := []Drift{
		{Type: ParamMismatch, Suggestion: `Did you mean "base"?`},
		{Type: ReturnTypeMismatch},
		{Type: BrokenLink},
		{Type: ExampleDrift},
		{Type: ExampleSyntaxError},
	}

	s := GetSummary(drifts)
	if s.Total != 5 {
		t.Errorf("Total = %d, want 5", s.Total)
	}
	if s.ByCategory[CategoryStructural] != 2 {
		t.Errorf("structural = %d, want 2", s.ByCategory[CategoryStructural])
	}
	if s.ByCategory[CategorySemantic] != 1 {
		t.Errorf("semantic = %d, want 1", s.ByCategory[CategorySemantic])
	}
	if s.ByCategory[CategoryExample] != 2 {
		t.Errorf("example = %d, want 2", s.ByCategory[CategoryExample])
	}
	if s.Fixable != 2 {
		t.Errorf("Fixable = %d, want 2", s.Fixable)
	}
}

func TestFormatSummaryLine(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		got := FormatSummaryLine(GetSummary(nil))
		if got != "no documentation drift detected" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("mixed categories", func(t *testing.T) {
		drifts := []Drift{
			{Type: ParamTypeMismatch},
			{Type: ExampleDrift},
			{Type: ExampleSyntaxError},
		}
		got := FormatSummaryLine(GetSummary(drifts))
		want := "3 drift issue(s): 1 structural, 2 example (1 auto-fixable)"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("zero categories omitted", func(t *testing.T) {
		drifts := []Drift{{Type: BrokenLink}}
		got := FormatSummaryLine(GetSummary(drifts))
		want := "1 drift issue(s): 1 semantic"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})
}
