// Package enrich merges coverage scores and drift findings back onto the
// manifest, producing the enriched report consumed by downstream
// formatting. The input manifest is never mutated; enrichment returns a
// new structure.
package enrich

import (
	"docdrift/internal/coverage"
	"docdrift/internal/drift"
	"docdrift/internal/manifest"
)

// CoverageMetadata is the documentation health block attached to an
// export or to the whole report. Missing and Drift are omitted, not
// empty, when there is nothing to report.
type CoverageMetadata struct {
	CoverageScore int               `json:"coverageScore"`
	Missing       []coverage.Signal `json:"missing,omitempty"`
	Drift         []drift.Drift     `json:"drift,omitempty"`
}

// EnrichedExport is an export together with its documentation health.
type EnrichedExport struct {
	manifest.Export `yaml:",inline"`
	Docs            *CoverageMetadata `json:"docs,omitempty" yaml:"docs,omitempty"`
}

// EnrichedManifest is the full audit report: the original manifest
// contents with per-export and manifest-level documentation health.
type EnrichedManifest struct {
	Meta    map[string]interface{} `json:"meta,omitempty"`
	Exports []EnrichedExport       `json:"exports"`
	Types   []manifest.TypeDecl    `json:"types,omitempty"`
	Docs    *CoverageMetadata      `json:"docs"`
}

// Enrich merges the coverage scorer's output with the drift result and
// any externally-supplied additional drift (keyed by export identity,
// concatenated after the computed findings). Manifest-level missing signals
// are the first-seen-order union across exports; manifest-level drift is the
// concatenation in export-iteration order.
func Enrich(m *manifest.Manifest, driftResult *drift.Result, additional map[string][]drift.Drift) *EnrichedManifest {
	enriched := &EnrichedManifest{
		Meta:    m.Meta,
		Exports: make([]EnrichedExport, 0, len(m.Exports)),
		Types:   m.Types,
	}

	scores := make([]coverage.Score, 0, len(m.Exports))
	var totalMissing []coverage.Signal
	seenMissing := make(map[coverage.Signal]struct{})
	var totalDrift []drift.Drift

	for i := range m.Exports {
		exp := &m.Exports[i]
		id := exp.Identity()

		score := coverage.ScoreExport(exp)
		scores = append(scores, score)

		var drifts []drift.Drift
		if driftResult != nil {
			drifts = append(drifts, driftResult.Exports[id]...)
		}
		drifts = append(drifts, additional[id]...)

		docs := &CoverageMetadata{CoverageScore: score.CoverageScore}
		if len(score.Missing) > 0 {
			docs.Missing = score.Missing
		}
		if len(drifts) > 0 {
			docs.Drift = drifts
		}

		enriched.Exports = append(enriched.Exports, EnrichedExport{
			Export: *exp,
			Docs:   docs,
		})

		for _, signal := range score.Missing {
			if _, seen := seenMissing[signal]; !seen {
				seenMissing[signal] = struct{}{}
				totalMissing = append(totalMissing, signal)
			}
		}
		totalDrift = append(totalDrift, drifts...)
	}

	totalDocs := &CoverageMetadata{CoverageScore: coverage.AggregateScore(scores)}
	if len(totalMissing) > 0 {
		totalDocs.Missing = totalMissing
	}
	if len(totalDrift) > 0 {
		totalDocs.Drift = totalDrift
	}
	enriched.Docs = totalDocs

	return enriched
}

// AllDrift returns the manifest-level drift list of the enriched report.
func (m *EnrichedManifest) AllDrift() []drift.Drift {
	if m.Docs == nil {
		return nil
	}
	return m.Docs.Drift
}
