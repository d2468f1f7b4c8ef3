package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"docdrift/internal/drift"
	"docdrift/internal/version"
)

var (
	summaryManifest    string
	summaryScip        string
	summaryRunExamples bool
	summaryNoCache     bool
	summaryTimeoutMs   int
	summaryFormat      string
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "One-line drift summary",
	Long: `Print a one-line summary of drift findings by category.

Examples:
  docdrift summary
  docdrift summary --format json`,
	Run: runSummaryCmd,
}

func init() {
	summaryCmd.Flags().StringVar(&summaryManifest, "manifest", "", "Path to the export manifest (default from config)")
	summaryCmd.Flags().StringVar(&summaryScip, "scip", "", "Build the manifest from a SCIP index instead")
	summaryCmd.Flags().BoolVar(&summaryRunExamples, "run-examples", false, "Execute example code blocks with the configured runner")
	summaryCmd.Flags().BoolVar(&summaryNoCache, "no-cache", false, "Bypass the report cache")
	summaryCmd.Flags().IntVar(&summaryTimeoutMs, "timeout", 0, "Per-example execution timeout in milliseconds (default from config)")
	summaryCmd.Flags().StringVar(&summaryFormat, "format", "human", "Output format (json, human)")
	rootCmd.AddCommand(summaryCmd)
}

func runSummaryCmd(cmd *cobra.Command, args []string) {
	repoRoot := mustGetRepoRoot()
	cfg := loadConfigOrDefault(repoRoot)
	if summaryTimeoutMs > 0 {
		cfg.Examples.TimeoutMs = summaryTimeoutMs
	}
	logger := newLogger(summaryFormat, cfg.Logging.Level)

	result, err := runPipeline(newContext(), repoRoot, cfg, logger, pipelineOptions{
		manifestPath: summaryManifest,
		scipPath:     summaryScip,
		runExamples:  summaryRunExamples,
		noCache:      summaryNoCache,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error summarizing drift: %v\n", err)
		os.Exit(1)
	}

	resp := &SummaryResponseCLI{
		DocdriftVersion: version.Version,
		Manifest:        result.ManifestPath,
		Line:            drift.FormatSummaryLine(result.Summary),
		Summary:         result.Summary,
	}

	output, err := FormatResponse(resp, OutputFormat(summaryFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(output)
}
