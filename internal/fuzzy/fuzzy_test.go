package fuzzy

import (
	"reflect"
	"testing"
)

func TestFindClosestMatch(t *testing.T) {
	tests := []struct {
		name       string
		source     string
		candidates []string
		want       string
		wantNil    bool
	}{
		{
			name:       "shared words win",
			source:     "fetchUserData",
			candidates: []string{"fetchUserInfo", "deleteUser"},
			want:       "fetchUserInfo",
		},
		{
			name:       "suffix plus shared words",
			source:     "getUserById",
			candidates: []string{"getPostById", "removeUser"},
			want:       "getPostById",
		},
		{
			name:       "suffix overlap alone is rejected",
			source:     "firstName",
			candidates: []string{"name"},
			wantNil:    true,
		},
		{
			name:       "single word source never matches",
			source:     "tax",
			candidates: []string{"base", "taxRate"},
			wantNil:    true,
		},
		{
			name:       "source itself is never suggested",
			source:     "parseConfig",
			candidates: []string{"parseConfig"},
			wantNil:    true,
		},
		{
			name:       "empty source",
			source:     "",
			candidates: []string{"anything"},
			wantNil:    true,
		},
		{
			name:       "no candidates",
			source:     "getUser",
			candidates: nil,
			wantNil:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindClosestMatch(tt.source, tt.candidates)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("FindClosestMatch(%q) = %+v, want nil", tt.source, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("FindClosestMatch(%q) = nil, want %q", tt.source, tt.want)
			}
			if got.Value != tt.want {
				t.Errorf("Value = %q, want %q", got.Value, tt.want)
			}
		})
	}
}

func TestSplitWords(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"getUserById", []string{"get", "user", "by", "id"}},
		{"HTTPServer", []string{"http", "server"}},
		{"parseJSON", []string{"parse", "json"}},
		{"snake_case_name", []string{"snake", "case", "name"}},
		{"options.timeout", []string{"options", "timeout"}},
		{"simple", []string{"simple"}},
		{"", nil},
	}

	for _, tt := range tests {
		if got := splitWords(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitWords(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"same", "same", 0},
	}

	for _, tt := range tests {
		if got := levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
