package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"docdrift/internal/export"
	"docdrift/internal/version"
)

var (
	exportManifest    string
	exportScip        string
	exportRunExamples bool
	exportTimeoutMs   int
	exportOut         string
	exportFormat      string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Archive the audit report to disk",
	Long: `Run the audit and write the enriched report to a zstd-compressed
JSON archive, stamped with a run ID and generation timestamp, for
retention alongside CI artifacts.

Examples:
  docdrift export
  docdrift export --out reports/audit.json.zst --run-examples`,
	Run: runExportCmd,
}

func init() {
	exportCmd.Flags().StringVar(&exportManifest, "manifest", "", "Path to the export manifest (default from config)")
	exportCmd.Flags().StringVar(&exportScip, "scip", "", "Build the manifest from a SCIP index instead")
	exportCmd.Flags().BoolVar(&exportRunExamples, "run-examples", false, "Execute example code blocks with the configured runner")
	exportCmd.Flags().IntVar(&exportTimeoutMs, "timeout", 0, "Per-example execution timeout in milliseconds (default from config)")
	exportCmd.Flags().StringVar(&exportOut, "out", ".docdrift/report.json.zst", "Archive output path")
	exportCmd.Flags().StringVar(&exportFormat, "format", "human", "Output format (json, human)")
	rootCmd.AddCommand(exportCmd)
}

func runExportCmd(cmd *cobra.Command, args []string) {
	repoRoot := mustGetRepoRoot()
	cfg := loadConfigOrDefault(repoRoot)
	if exportTimeoutMs > 0 {
		cfg.Examples.TimeoutMs = exportTimeoutMs
	}
	logger := newLogger(exportFormat, cfg.Logging.Level)

	result, err := runPipeline(newContext(), repoRoot, cfg, logger, pipelineOptions{
		manifestPath: exportManifest,
		scipPath:     exportScip,
		runExamples:  exportRunExamples,
		noCache:      true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting report: %v\n", err)
		os.Exit(1)
	}

	outPath := resolvePath(repoRoot, exportOut)
	archive, err := export.NewExporter(logger).Write(result.Report, outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing archive: %v\n", err)
		os.Exit(1)
	}

	resp := &ExportFileResponseCLI{
		DocdriftVersion: version.Version,
		Manifest:        result.ManifestPath,
		Path:            outPath,
		RunID:           archive.RunID,
		GeneratedAt:     archive.GeneratedAt,
		Exports:         len(result.Report.Exports),
	}

	output, err := FormatResponse(resp, OutputFormat(exportFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(output)
}
