package export

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"docdrift/internal/coverage"
	"docdrift/internal/drift"
	"docdrift/internal/enrich"
	"docdrift/internal/logging"
	"docdrift/internal/manifest"
)

func testLogger() *logging.Logger {
	return logging.NewLogger(logging.Config{
		Format: logging.HumanFormat,
		Level:  logging.ErrorLevel,
		Output: io.Discard,
	})
}

func testReport() *enrich.EnrichedManifest {
	return &enrich.EnrichedManifest{
		Exports: []enrich.EnrichedExport{
			{
				Export: manifest.Export{Name: "applyTax", Kind: manifest.KindFunction},
				Docs: &enrich.CoverageMetadata{
					CoverageScore: 75,
					Missing:       []coverage.Signal{coverage.SignalExamples},
					Drift: []drift.Drift{
						{Type: drift.ParamMismatch, Target: "tax", Issue: "unknown parameter"},
					},
				},
			},
		},
		Docs: &enrich.CoverageMetadata{CoverageScore: 75},
	}
}

func TestWriteAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "audit.json.zst")

	archive, err := NewExporter(testLogger()).Write(testReport(), path)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if archive.RunID == "" || archive.GeneratedAt == "" {
		t.Errorf("archive stamps missing: %+v", archive)
	}

	loaded, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if loaded.RunID != archive.RunID {
		t.Errorf("RunID = %q, want %q", loaded.RunID, archive.RunID)
	}
	if len(loaded.Report.Exports) != 1 {
		t.Fatalf("exports = %+v", loaded.Report.Exports)
	}
	exp := loaded.Report.Exports[0]
	if exp.Name != "applyTax" || exp.Docs.CoverageScore != 75 {
		t.Errorf("export = %+v", exp)
	}
	if len(exp.Docs.Drift) != 1 || exp.Docs.Drift[0].Type != drift.ParamMismatch {
		t.Errorf("drift = %+v", exp.Docs.Drift)
	}
}

func TestReadMissing(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "nope.json.zst")); err == nil {
		t.Error("want error for missing archive")
	}
}

func TestReadGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json.zst")
	if err := os.WriteFile(path, []byte("not a zstd stream"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Read(path); err == nil {
		t.Error("want error for corrupt archive")
	}
}
