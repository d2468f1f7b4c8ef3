package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"docdrift/internal/coverage"
	"docdrift/internal/drift"
	"docdrift/internal/enrich"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

// AuditResponseCLI is the CLI envelope for a full audit report.
type AuditResponseCLI struct {
	DocdriftVersion string                   `json:"docdriftVersion"`
	Manifest        string                   `json:"manifest"`
	Cached          bool                     `json:"cached"`
	Summary         *drift.Summary           `json:"summary"`
	Report          *enrich.EnrichedManifest `json:"report"`
	DurationMs      int64                    `json:"durationMs"`
}

// ExportDriftCLI pairs an export with its drift findings.
type ExportDriftCLI struct {
	Name  string        `json:"name"`
	Kind  string        `json:"kind"`
	Drift []drift.Drift `json:"drift"`
}

// DriftResponseCLI is the CLI envelope for drift-only output.
type DriftResponseCLI struct {
	DocdriftVersion string           `json:"docdriftVersion"`
	Manifest        string           `json:"manifest"`
	Total           int              `json:"total"`
	Exports         []ExportDriftCLI `json:"exports"`
}

// ExportCoverageCLI pairs an export with its coverage score.
type ExportCoverageCLI struct {
	Name          string            `json:"name"`
	Kind          string            `json:"kind"`
	CoverageScore int               `json:"coverageScore"`
	Missing       []coverage.Signal `json:"missing,omitempty"`
}

// CoverageResponseCLI is the CLI envelope for coverage-only output.
type CoverageResponseCLI struct {
	DocdriftVersion string              `json:"docdriftVersion"`
	Manifest        string              `json:"manifest"`
	Aggregate       int                 `json:"aggregate"`
	Exports         []ExportCoverageCLI `json:"exports"`
}

// SummaryResponseCLI is the CLI envelope for the one-line drift summary.
type SummaryResponseCLI struct {
	DocdriftVersion string         `json:"docdriftVersion"`
	Manifest        string         `json:"manifest"`
	Line            string         `json:"line"`
	Summary         *drift.Summary `json:"summary"`
}

// ExportFileResponseCLI is the CLI envelope for report archive export.
type ExportFileResponseCLI struct {
	DocdriftVersion string `json:"docdriftVersion"`
	Manifest        string `json:"manifest"`
	Path            string `json:"path"`
	RunID           string `json:"runId"`
	GeneratedAt     string `json:"generatedAt"`
	Exports         int    `json:"exports"`
}

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// formatJSON formats the response as JSON
func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

// formatHuman formats the response in human-readable format
func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *AuditResponseCLI:
		return formatAuditHuman(v)
	case *DriftResponseCLI:
		return formatDriftHuman(v)
	case *CoverageResponseCLI:
		return formatCoverageHuman(v)
	case *SummaryResponseCLI:
		return v.Line, nil
	case *ExportFileResponseCLI:
		return formatExportFileHuman(v)
	default:
		// For unknown types, fall back to JSON
		return formatJSON(resp)
	}
}

// formatAuditHuman formats a full audit report in human-readable format
func formatAuditHuman(resp *AuditResponseCLI) (string, error) {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("docdrift v%s - %s\n", resp.DocdriftVersion, resp.Manifest))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	if resp.Report.Docs != nil {
		b.WriteString(fmt.Sprintf("Coverage: %d/100\n", resp.Report.Docs.CoverageScore))
		if len(resp.Report.Docs.Missing) > 0 {
			missing := make([]string, len(resp.Report.Docs.Missing))
			for i, sig := range resp.Report.Docs.Missing {
				missing[i] = string(sig)
			}
			b.WriteString(fmt.Sprintf("Missing: %s\n", strings.Join(missing, ", ")))
		}
	}
	b.WriteString(fmt.Sprintf("Drift: %s\n", drift.FormatSummaryLine(resp.Summary)))
	if resp.Cached {
		b.WriteString("(cached)\n")
	}
	b.WriteString("\n")

	for _, exp := range resp.Report.Exports {
		if exp.Docs == nil {
			continue
		}
		b.WriteString(fmt.Sprintf("%s (%s): %d/100\n", exp.Name, exp.Kind, exp.Docs.CoverageScore))
		if len(exp.Docs.Missing) > 0 {
			missing := make([]string, len(exp.Docs.Missing))
			for i, sig := range exp.Docs.Missing {
				missing[i] = string(sig)
			}
			b.WriteString(fmt.Sprintf("  missing: %s\n", strings.Join(missing, ", ")))
		}
		writeDriftListHuman(&b, exp.Docs.Drift)
	}

	return b.String(), nil
}

// formatDriftHuman formats drift findings in human-readable format
func formatDriftHuman(resp *DriftResponseCLI) (string, error) {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("docdrift v%s - %s\n", resp.DocdriftVersion, resp.Manifest))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	if resp.Total == 0 {
		b.WriteString("no documentation drift detected\n")
		return b.String(), nil
	}

	b.WriteString(fmt.Sprintf("%d drift finding(s)\n\n", resp.Total))
	for _, exp := range resp.Exports {
		b.WriteString(fmt.Sprintf("%s (%s):\n", exp.Name, exp.Kind))
		writeDriftListHuman(&b, exp.Drift)
	}

	return b.String(), nil
}

func writeDriftListHuman(b *strings.Builder, drifts []drift.Drift) {
	for _, d := range drifts {
		b.WriteString(fmt.Sprintf("  [%s] %s: %s\n", d.Type, d.Target, d.Issue))
		if d.Suggestion != "" {
			b.WriteString(fmt.Sprintf("      -> %s\n", d.Suggestion))
		}
	}
}

// formatCoverageHuman formats coverage scores in human-readable format
func formatCoverageHuman(resp *CoverageResponseCLI) (string, error) {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("docdrift v%s - %s\n", resp.DocdriftVersion, resp.Manifest))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	b.WriteString(fmt.Sprintf("Aggregate coverage: %d/100\n\n", resp.Aggregate))
	for _, exp := range resp.Exports {
		b.WriteString(fmt.Sprintf("  %3d  %s (%s)", exp.CoverageScore, exp.Name, exp.Kind))
		if len(exp.Missing) > 0 {
			missing := make([]string, len(exp.Missing))
			for i, sig := range exp.Missing {
				missing[i] = string(sig)
			}
			b.WriteString(fmt.Sprintf("  missing: %s", strings.Join(missing, ", ")))
		}
		b.WriteString("\n")
	}

	return b.String(), nil
}

// formatExportFileHuman formats an archive export result
func formatExportFileHuman(resp *ExportFileResponseCLI) (string, error) {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Report archived to %s\n", resp.Path))
	b.WriteString(fmt.Sprintf("  Run ID:    %s\n", resp.RunID))
	b.WriteString(fmt.Sprintf("  Generated: %s\n", resp.GeneratedAt))
	b.WriteString(fmt.Sprintf("  Exports:   %d\n", resp.Exports))

	return b.String(), nil
}
