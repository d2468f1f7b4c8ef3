package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"docdrift/internal/version"
)

var (
	auditManifest    string
	auditScip        string
	auditRunExamples bool
	auditNoCache     bool
	auditTimeoutMs   int
	auditFormat      string
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit documentation coverage and drift",
	Long: `Audit a package export manifest for documentation health.

Produces the full enriched report: every export annotated with its
coverage score (description, params, returns, examples - 25 points each),
the doc sections it is missing, and any drift findings where the
documentation contradicts the declared API.

Examples:
  docdrift audit
  docdrift audit --manifest dist/openpkg.json
  docdrift audit --scip index.scip
  docdrift audit --run-examples --format human`,
	Run: runAuditCmd,
}

func init() {
	auditCmd.Flags().StringVar(&auditManifest, "manifest", "", "Path to the export manifest (default from config)")
	auditCmd.Flags().StringVar(&auditScip, "scip", "", "Build the manifest from a SCIP index instead")
	auditCmd.Flags().BoolVar(&auditRunExamples, "run-examples", false, "Execute example code blocks with the configured runner")
	auditCmd.Flags().BoolVar(&auditNoCache, "no-cache", false, "Bypass the report cache")
	auditCmd.Flags().IntVar(&auditTimeoutMs, "timeout", 0, "Per-example execution timeout in milliseconds (default from config)")
	auditCmd.Flags().StringVar(&auditFormat, "format", "json", "Output format (json, human)")
	rootCmd.AddCommand(auditCmd)
}

func runAuditCmd(cmd *cobra.Command, args []string) {
	start := time.Now()
	repoRoot := mustGetRepoRoot()
	cfg := loadConfigOrDefault(repoRoot)
	if auditTimeoutMs > 0 {
		cfg.Examples.TimeoutMs = auditTimeoutMs
	}
	logger := newLogger(auditFormat, cfg.Logging.Level)

	result, err := runPipeline(newContext(), repoRoot, cfg, logger, pipelineOptions{
		manifestPath: auditManifest,
		scipPath:     auditScip,
		runExamples:  auditRunExamples,
		noCache:      auditNoCache,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error auditing: %v\n", err)
		os.Exit(1)
	}

	resp := &AuditResponseCLI{
		DocdriftVersion: version.Version,
		Manifest:        result.ManifestPath,
		Cached:          result.Cached,
		Summary:         result.Summary,
		Report:          result.Report,
		DurationMs:      time.Since(start).Milliseconds(),
	}

	output, err := FormatResponse(resp, OutputFormat(auditFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(output)

	logger.Debug("Audit completed", map[string]interface{}{
		"exports":  len(result.Report.Exports),
		"drift":    result.Summary.Total,
		"cached":   result.Cached,
		"duration": time.Since(start).Milliseconds(),
	})
}
