// Package coverage scores documentation completeness per export across
// four tracked sections: description, params, returns, and examples. Each
// section is worth 25 points; a section is either satisfied or missing,
// with no partial credit.
package coverage

import (
	"math"
	"strings"

	"docdrift/internal/manifest"
)

// Signal names one of the four tracked documentation sections.
type Signal string

const (
	SignalDescription Signal = "description"
	SignalParams      Signal = "params"
	SignalReturns     Signal = "returns"
	SignalExamples    Signal = "examples"
)

// sectionWeight is the score contribution of each satisfied section.
const sectionWeight = 25

// Score is the coverage result for one export.
type Score struct {
	CoverageScore int      `json:"coverageScore"`
	Missing       []Signal `json:"missing,omitempty"`
}

// ScoreExport computes the coverage score for a single export.
//
// params is vacuously satisfied when no signature declares parameters;
// otherwise every parameter of every signature needs a non-empty
// description. returns is vacuously satisfied when the export has no
// signatures; otherwise every signature needs a non-empty returns
// description, including signatures that declare no return value — the
// literal behavior of the scoring rule, kept on purpose.
func ScoreExport(exp *manifest.Export) Score {
	var missing []Signal

	if !descriptionDocumented(exp) {
		missing = append(missing, SignalDescription)
	}
	if !paramsDocumented(exp) {
		missing = append(missing, SignalParams)
	}
	if !returnsDocumented(exp) {
		missing = append(missing, SignalReturns)
	}
	if len(exp.Examples) == 0 {
		missing = append(missing, SignalExamples)
	}

	score := Score{CoverageScore: sectionWeight * (4 - len(missing))}
	if len(missing) > 0 {
		score.Missing = missing
	}
	return score
}

func descriptionDocumented(exp *manifest.Export) bool {
	return strings.TrimSpace(exp.Description) != ""
}

func paramsDocumented(exp *manifest.Export) bool {
	for i := range exp.Signatures {
		for _, param := range exp.Signatures[i].Parameters {
			if strings.TrimSpace(param.Description) == "" {
				return false
			}
		}
	}
	return true
}

func returnsDocumented(exp *manifest.Export) bool {
	for i := range exp.Signatures {
		ret := exp.Signatures[i].Returns
		if ret == nil || strings.TrimSpace(ret.Description) == "" {
			return false
		}
	}
	return true
}

// AggregateScore is the manifest-level coverage score: the rounded mean of the
// per-export scores, defined as 100 when there are no exports.
func AggregateScore(scores []Score) int {
	if len(scores) == 0 {
		return 100
	}
	sum := 0
	for _, s := range scores {
		sum += s.CoverageScore
	}
	return int(math.Round(float64(sum) / float64(len(scores))))
}
