// Package examples handles the code snippets embedded in documentation:
// AST-based identifier extraction, syntax diagnostics, markdown fence
// stripping, expected-output assertions, the built-in identifier
// allowlist, and sandboxed example execution.
package examples

import (
	"regexp"
	"strings"
)

// RefContext classifies how an identifier is used in example code.
type RefContext string

const (
	// ContextCall marks an identifier in callee position
	ContextCall RefContext = "call"
	// ContextType marks an identifier in type-reference position
	ContextType RefContext = "type"
	// ContextValue marks any other identifier usage
	ContextValue RefContext = "value"
)

// Identifier is one identifier occurrence found in example code.
type Identifier struct {
	Name          string     `json:"name"`
	Context       RefContext `json:"context"`
	IsDeclaration bool       `json:"isDeclaration"`
}

// ParseResult is the outcome of parsing one example snippet. A failed
// parse is reported through SyntaxErrors, never through a Go error; the
// pipeline must not fail on malformed examples.
type ParseResult struct {
	Identifiers  []Identifier `json:"identifiers"`
	SyntaxErrors []string     `json:"syntaxErrors,omitempty"`
}

// Parser turns example source text into identifiers and syntax
// diagnostics. Implementations must be total: any input produces a result.
type Parser interface {
	Parse(source string) *ParseResult
}

var fenceRe = regexp.MustCompile("(?m)^```")

// StripFences extracts the code from markdown-fenced example text. Text
// without fences is returned unchanged. Multiple fenced blocks are joined
// with newlines; fence info strings (```ts) are dropped.
func StripFences(text string) string {
	if !strings.Contains(text, "```") {
		return text
	}

	var blocks []string
	var current []string
	inFence := false

	for _, line := range strings.Split(text, "\n") {
		if fenceRe.MatchString(line) {
			if inFence {
				blocks = append(blocks, strings.Join(current, "\n"))
				current = nil
			}
			inFence = !inFence
			continue
		}
		if inFence {
			current = append(current, line)
		}
	}
	// Unterminated fence: keep what was collected.
	if inFence && len(current) > 0 {
		blocks = append(blocks, strings.Join(current, "\n"))
	}

	return strings.Join(blocks, "\n")
}

// Assertion is an expected-output marker parsed from example code.
type Assertion struct {
	Expected string
	Line     int // 1-indexed line the marker appears on
}

var assertionRe = regexp.MustCompile(`//\s*=>\s*(.*)$`)

// ParseAssertions extracts trailing "// => expected" comments from example
// code, in source order. Expected text is trimmed; empty expectations are
// skipped.
func ParseAssertions(code string) []Assertion {
	var out []Assertion
	for i, line := range strings.Split(code, "\n") {
		m := assertionRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		expected := strings.TrimSpace(m[1])
		if expected == "" {
			continue
		}
		out = append(out, Assertion{Expected: expected, Line: i + 1})
	}
	return out
}
