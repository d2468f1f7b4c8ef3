package drift

import (
	"context"

	"docdrift/internal/examples"
	"docdrift/internal/logging"
	"docdrift/internal/manifest"
)

// Options configures a drift analysis run.
type Options struct {
	// RuntimeResults holds externally-supplied example execution results,
	// keyed by export identity and index-aligned with the export's
	// examples. When absent, runtime and assertion detection are skipped.
	RuntimeResults map[string][]examples.RunResult
}

// Result maps export identities to their ordered drift findings.
type Result struct {
	Exports map[string][]Drift `json:"exports"`
}

// Total returns the total number of drift findings across all exports.
func (r *Result) Total() int {
	n := 0
	for _, drifts := range r.Exports {
		n += len(drifts)
	}
	return n
}

// Analyzer orchestrates the drift detectors over a manifest.
type Analyzer struct {
	logger    *logging.Logger
	parser    examples.Parser
	allowlist *examples.Allowlist
}

// NewAnalyzer creates a drift analyzer with the tree-sitter example parser
// and the default built-in allowlist.
func NewAnalyzer(logger *logging.Logger) *Analyzer {
	return &Analyzer{
		logger:    logger,
		parser:    examples.NewParser(),
		allowlist: examples.DefaultAllowlist(),
	}
}

// WithParser replaces the example parser. Used by tests and by callers
// with their own AST tooling.
func (a *Analyzer) WithParser(p examples.Parser) *Analyzer {
	a.parser = p
	return a
}

// WithAllowlist replaces the built-in identifier allowlist.
func (a *Analyzer) WithAllowlist(list *examples.Allowlist) *Analyzer {
	a.allowlist = list
	return a
}

// ComputeExportDrift runs every detector against one export and
// concatenates their findings in a fixed order. The registry must cover
// the entire manifest; the export under analysis holds no special place
// in it.
func (a *Analyzer) ComputeExportDrift(exp *manifest.Export, reg *manifest.Registry, opts Options) []Drift {
	results := opts.RuntimeResults[exp.Identity()]

	var out []Drift
	out = append(out, checkParamNames(exp)...)
	out = append(out, checkOptionality(exp)...)
	out = append(out, checkParamTypes(exp)...)
	out = append(out, checkReturnTypes(exp)...)
	out = append(out, checkGenericConstraints(exp)...)
	out = append(out, checkDeprecated(exp)...)
	out = append(out, checkVisibility(exp)...)
	out = append(out, checkExampleRefs(exp, reg, a.parser, a.allowlist.IsBuiltIn)...)
	out = append(out, checkBrokenLinks(exp, reg)...)
	out = append(out, checkExampleSyntax(exp, a.parser)...)
	out = append(out, checkAsync(exp)...)
	out = append(out, checkPropertyTypes(exp)...)
	out = append(out, checkExampleRuntime(exp, results)...)
	out = append(out, checkExampleAssertions(exp, results)...)
	return out
}

// ComputeDrift builds the registry once over the full manifest, then maps
// ComputeExportDrift over every export. The registry pass must complete
// before any detection runs: broken-link and example-reference detection
// need visibility of every export and type.
func (a *Analyzer) ComputeDrift(m *manifest.Manifest, opts Options) *Result {
	reg := manifest.BuildRegistry(m)

	result := &Result{Exports: make(map[string][]Drift, len(m.Exports))}
	for i := range m.Exports {
		exp := &m.Exports[i]
		result.Exports[exp.Identity()] = a.ComputeExportDrift(exp, reg, opts)
	}

	a.logger.Debug("Drift analysis completed", map[string]interface{}{
		"exports":  len(m.Exports),
		"findings": result.Total(),
	})
	return result
}

// RunExamples executes every example in the manifest through the runner
// and returns results keyed by export identity, ready for
// Options.RuntimeResults. Runner failures become failed results, never
// errors.
func (a *Analyzer) RunExamples(ctx context.Context, m *manifest.Manifest, runner examples.Runner) map[string][]examples.RunResult {
	results := make(map[string][]examples.RunResult)
	for i := range m.Exports {
		exp := &m.Exports[i]
		if len(exp.Examples) == 0 {
			continue
		}
		runs := make([]examples.RunResult, 0, len(exp.Examples))
		for _, example := range exp.Examples {
			runs = append(runs, runner.Run(ctx, examples.StripFences(example)))
		}
		results[exp.Identity()] = runs
	}
	return results
}
