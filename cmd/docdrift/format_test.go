package main

import (
	"encoding/json"
	"strings"
	"testing"

	"docdrift/internal/coverage"
	"docdrift/internal/drift"
	"docdrift/internal/enrich"
	"docdrift/internal/manifest"
)

func sampleAuditResponse() *AuditResponseCLI {
	return &AuditResponseCLI{
		DocdriftVersion: "0.3.0",
		Manifest:        "openpkg.json",
		Summary: &drift.Summary{
			Total:      1,
			ByCategory: map[drift.Category]int{drift.CategoryStructural: 1},
			Fixable:    1,
		},
		Report: &enrich.EnrichedManifest{
			Exports: []enrich.EnrichedExport{
				{
					Export: manifest.Export{Name: "applyTax", Kind: manifest.KindFunction},
					Docs: &enrich.CoverageMetadata{
						CoverageScore: 75,
						Missing:       []coverage.Signal{coverage.SignalExamples},
						Drift: []drift.Drift{
							{
								Type:       drift.ParamMismatch,
								Target:     "tax",
								Issue:      "unknown parameter",
								Suggestion: "Actual parameters: base, taxRate",
							},
						},
					},
				},
			},
			Docs: &enrich.CoverageMetadata{
				CoverageScore: 75,
				Missing:       []coverage.Signal{coverage.SignalExamples},
			},
		},
	}
}

func TestFormatResponseJSON(t *testing.T) {
	out, err := FormatResponse(sampleAuditResponse(), FormatJSON)
	if err != nil {
		t.Fatalf("FormatResponse: %v", err)
	}

	var decoded AuditResponseCLI
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if decoded.Report.Exports[0].Name != "applyTax" {
		t.Errorf("decoded = %+v", decoded.Report.Exports[0])
	}
}

func TestFormatAuditHuman(t *testing.T) {
	out, err := FormatResponse(sampleAuditResponse(), FormatHuman)
	if err != nil {
		t.Fatalf("FormatResponse: %v", err)
	}

	for _, want := range []string{
		"docdrift v0.3.0",
		"Coverage: 75/100",
		"applyTax (function): 75/100",
		"missing: examples",
		"[param-mismatch] tax: unknown parameter",
		"-> Actual parameters: base, taxRate",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatDriftHumanEmpty(t *testing.T) {
	resp := &DriftResponseCLI{DocdriftVersion: "0.3.0", Manifest: "openpkg.json"}
	out, err := FormatResponse(resp, FormatHuman)
	if err != nil {
		t.Fatalf("FormatResponse: %v", err)
	}
	if !strings.Contains(out, "no documentation drift detected") {
		t.Errorf("output = %q", out)
	}
}

func TestFormatCoverageHuman(t *testing.T) {
	resp := &CoverageResponseCLI{
		DocdriftVersion: "0.3.0",
		Manifest:        "openpkg.json",
		Aggregate:       88,
		Exports: []ExportCoverageCLI{
			{Name: "applyTax", Kind: "function", CoverageScore: 75, Missing: []coverage.Signal{coverage.SignalExamples}},
			{Name: "Client", Kind: "class", CoverageScore: 100},
		},
	}

	out, err := FormatResponse(resp, FormatHuman)
	if err != nil {
		t.Fatalf("FormatResponse: %v", err)
	}
	for _, want := range []string{"Aggregate coverage: 88/100", "applyTax (function)", "missing: examples"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatSummaryHumanIsBareLine(t *testing.T) {
	resp := &SummaryResponseCLI{Line: "no documentation drift detected"}
	out, err := FormatResponse(resp, FormatHuman)
	if err != nil {
		t.Fatalf("FormatResponse: %v", err)
	}
	if out != "no documentation drift detected" {
		t.Errorf("output = %q", out)
	}
}

func TestFormatResponseUnsupported(t *testing.T) {
	if _, err := FormatResponse(struct{}{}, OutputFormat("xml")); err == nil {
		t.Error("want error for unsupported format")
	}
}
