package drift

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"docdrift/internal/examples"
	"docdrift/internal/fuzzy"
	"docdrift/internal/manifest"
)

// closeMatchDistance is the normalized fuzzy distance at or under which a
// lowercase unknown identifier is still worth reporting.
const closeMatchDistance = 5

// runtimeErrorMaxLen caps the stderr excerpt carried in a runtime drift.
const runtimeErrorMaxLen = 100

// checkExampleRefs resolves every identifier referenced in example code
// against the registry. Local declarations, single-character names, and
// known built-ins are excluded. Unresolved lowercase names are reported
// only when a close fuzzy match exists; PascalCase names are always
// reported, since they look like type or class references. The asymmetric
// gate keeps incidental local-looking names out of the findings.
func checkExampleRefs(exp *manifest.Export, reg *manifest.Registry, parser examples.Parser, isBuiltIn func(string) bool) []Drift {
	var out []Drift
	for i, example := range exp.Examples {
		code := examples.StripFences(example)
		if strings.TrimSpace(code) == "" {
			continue
		}
		result := parser.Parse(code)

		locals := make(map[string]struct{})
		for _, id := range result.Identifiers {
			if id.IsDeclaration {
				locals[id.Name] = struct{}{}
			}
		}

		seen := make(map[string]struct{})
		for _, id := range result.Identifiers {
			name := id.Name
			if id.IsDeclaration || utf8.RuneCountInString(name) <= 1 {
				continue
			}
			if _, local := locals[name]; local {
				continue
			}
			if isBuiltIn(name) || reg.Has(name) {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}

			match := fuzzy.FindClosestMatch(name, candidatePool(reg, id.Context))
			if (match == nil || match.Distance > closeMatchDistance) && !isPascalCase(name) {
				continue
			}

			d := Drift{
				Type:   ExampleDrift,
				Target: name,
				Issue:  fmt.Sprintf("Example %d references %q, which is not exported from this package", i+1, name),
			}
			if match != nil {
				d.Suggestion = fmt.Sprintf("Did you mean %q?", match.Value)
			}
			out = append(out, d)
		}
	}
	return out
}

// candidatePool builds the context-appropriate suggestion pool: call
// positions suggest callable exports only, type positions suggest types
// plus type-like exports, value positions suggest every export name.
func candidatePool(reg *manifest.Registry, ctx examples.RefContext) []string {
	var pool []string
	seen := make(map[string]struct{})
	add := func(name string) {
		if _, dup := seen[name]; !dup {
			seen[name] = struct{}{}
			pool = append(pool, name)
		}
	}

	switch ctx {
	case examples.ContextCall:
		for _, entry := range reg.Exports {
			if entry.IsCallable {
				add(entry.Name)
			}
		}
	case examples.ContextType:
		for name := range reg.Types {
			add(name)
		}
		for _, entry := range reg.Exports {
			switch entry.Kind {
			case manifest.KindClass, manifest.KindInterface, manifest.KindType, manifest.KindEnum:
				add(entry.Name)
			}
		}
	default:
		for _, entry := range reg.Exports {
			add(entry.Name)
		}
	}
	return pool
}

func isPascalCase(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}

// checkExampleSyntax surfaces the first parser diagnostic of each example
// verbatim.
func checkExampleSyntax(exp *manifest.Export, parser examples.Parser) []Drift {
	var out []Drift
	for i, example := range exp.Examples {
		code := examples.StripFences(example)
		if strings.TrimSpace(code) == "" {
			continue
		}
		result := parser.Parse(code)
		if len(result.SyntaxErrors) == 0 {
			continue
		}
		out = append(out, Drift{
			Type:       ExampleSyntaxError,
			Target:     fmt.Sprintf("example %d", i+1),
			Issue:      result.SyntaxErrors[0],
			Suggestion: "Fix the example so it parses",
		})
	}
	return out
}

var runtimeErrorLineRe = regexp.MustCompile(`^(Error|TypeError|ReferenceError|SyntaxError): `)

// checkExampleRuntime converts externally-supplied execution results into
// drift records: timeouts and thrown errors.
func checkExampleRuntime(exp *manifest.Export, results []examples.RunResult) []Drift {
	var out []Drift
	for i, r := range results {
		if i >= len(exp.Examples) {
			break
		}
		if r.Success {
			continue
		}

		if strings.Contains(r.Stderr, "timed out") {
			out = append(out, Drift{
				Type:       ExampleRuntimeError,
				Target:     fmt.Sprintf("example %d", i+1),
				Issue:      fmt.Sprintf("Example %d timed out during execution", i+1),
				Suggestion: "Simplify the example or raise the execution timeout",
			})
			continue
		}

		out = append(out, Drift{
			Type:       ExampleRuntimeError,
			Target:     fmt.Sprintf("example %d", i+1),
			Issue:      fmt.Sprintf("Example %d failed at runtime: %s", i+1, runtimeErrorLine(r.Stderr)),
			Suggestion: "Update the example so it runs cleanly",
		})
	}
	return out
}

// runtimeErrorLine extracts the most useful line from stderr: the first
// recognized error line, else the first non-empty line, truncated.
func runtimeErrorLine(stderr string) string {
	lines := strings.Split(stderr, "\n")

	for _, line := range lines {
		if runtimeErrorLineRe.MatchString(line) {
			return truncate(strings.TrimSpace(line), runtimeErrorMaxLen)
		}
	}
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			return truncate(strings.TrimSpace(line), runtimeErrorMaxLen)
		}
	}
	return "unknown error"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// checkExampleAssertions compares "// => expected" markers in successfully
// run examples against stdout, by position: the Nth assertion is checked
// against the Nth non-empty stdout line, not searched for anywhere.
func checkExampleAssertions(exp *manifest.Export, results []examples.RunResult) []Drift {
	var out []Drift
	for i, r := range results {
		if i >= len(exp.Examples) {
			break
		}
		if !r.Success {
			continue
		}

		code := examples.StripFences(exp.Examples[i])
		assertions := examples.ParseAssertions(code)
		if len(assertions) == 0 {
			continue
		}

		var outputLines []string
		for _, line := range strings.Split(r.Stdout, "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				outputLines = append(outputLines, trimmed)
			}
		}

		for j, assertion := range assertions {
			if j >= len(outputLines) {
				out = append(out, Drift{
					Type:       ExampleAssertionFailed,
					Target:     fmt.Sprintf("example %d", i+1),
					Issue:      fmt.Sprintf("Example %d expected %q but no output produced", i+1, assertion.Expected),
					Suggestion: "Remove the assertion or make the example print the value",
				})
				continue
			}
			actual := outputLines[j]
			if actual == assertion.Expected {
				continue
			}
			out = append(out, Drift{
				Type:       ExampleAssertionFailed,
				Target:     fmt.Sprintf("example %d", i+1),
				Issue:      fmt.Sprintf("Example %d expected %q but produced %q", i+1, assertion.Expected, actual),
				Suggestion: fmt.Sprintf("Update the assertion to // => %s", actual),
			})
		}
	}
	return out
}
