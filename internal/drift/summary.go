package drift

import (
	"fmt"
	"strings"
)

// Summary aggregates drift findings for reporting.
type Summary struct {
	Total      int              `json:"total"`
	ByCategory map[Category]int `json:"byCategory"`
	Fixable    int              `json:"fixable"`
}

// GetSummary counts drift findings by category and fixability.
func GetSummary(drifts []Drift) *Summary {
	summary := &Summary{ByCategory: make(map[Category]int)}
	for _, d := range drifts {
		summary.Total++
		summary.ByCategory[d.Type.Category()]++
		if IsFixable(d) {
			summary.Fixable++
		}
	}
	return summary
}

// FormatSummaryLine renders a one-line summary. Only non-zero categories
// appear; the auto-fixable count is appended when present.
func FormatSummaryLine(summary *Summary) string {
	if summary.Total == 0 {
		return "no documentation drift detected"
	}

	var parts []string
	for _, cat := range []Category{CategoryStructural, CategorySemantic, CategoryExample} {
		if n := summary.ByCategory[cat]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, cat))
		}
	}

	line := fmt.Sprintf("%d drift issue(s): %s", summary.Total, strings.Join(parts, ", "))
	if summary.Fixable > 0 {
		line += fmt.Sprintf(" (%d auto-fixable)", summary.Fixable)
	}
	return line
}
