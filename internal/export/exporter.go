// Package export writes audit reports to zstd-compressed JSON archives
// for retention alongside CI artifacts.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"docdrift/internal/enrich"
	"docdrift/internal/errors"
	"docdrift/internal/logging"
)

// Exporter writes enriched reports to disk.
type Exporter struct {
	logger *logging.Logger
}

// NewExporter creates a new report exporter.
func NewExporter(logger *logging.Logger) *Exporter {
	return &Exporter{logger: logger}
}

// Archive is the on-disk report envelope.
type Archive struct {
	RunID       string                   `json:"runId"`
	GeneratedAt string                   `json:"generatedAt"`
	Report      *enrich.EnrichedManifest `json:"report"`
}

// Write serializes the report and writes it to path as zstd-compressed
// JSON. The parent directory is created when missing.
func (e *Exporter) Write(report *enrich.EnrichedManifest, path string) (*Archive, error) {
	archive := &Archive{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Report:      report,
	}

	data, err := json.MarshalIndent(archive, "", "  ")
	if err != nil {
		return nil, errors.New(errors.ExportFailed, "failed to serialize report", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.New(errors.ExportFailed,
			fmt.Sprintf("failed to create output directory for %s", path), err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, errors.New(errors.ExportFailed,
			fmt.Sprintf("failed to create %s", path), err)
	}
	defer f.Close()

	w, err := zstd.NewWriter(f)
	if err != nil {
		return nil, errors.New(errors.ExportFailed, "failed to initialize compressor", err)
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, errors.New(errors.ExportFailed,
			fmt.Sprintf("failed to write %s", path), err)
	}
	if err := w.Close(); err != nil {
		return nil, errors.New(errors.ExportFailed,
			fmt.Sprintf("failed to finalize %s", path), err)
	}

	e.logger.Info("Report archived", map[string]interface{}{
		"path":  path,
		"runId": archive.RunID,
		"bytes": len(data),
	})
	return archive, nil
}

// Read loads an archive written by Write.
func Read(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New(errors.ExportFailed,
			fmt.Sprintf("failed to open %s", path), err)
	}
	defer f.Close()

	r, err := zstd.NewReader(f)
	if err != nil {
		return nil, errors.New(errors.ExportFailed, "failed to initialize decompressor", err)
	}
	defer r.Close()

	var archive Archive
	if err := json.NewDecoder(r).Decode(&archive); err != nil {
		return nil, errors.New(errors.ExportFailed,
			fmt.Sprintf("failed to decode %s", path), err)
	}
	return &archive, nil
}
