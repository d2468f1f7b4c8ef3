package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"docdrift/internal/version"
)

var (
	driftManifest    string
	driftScip        string
	driftRunExamples bool
	driftNoCache     bool
	driftTimeoutMs   int
	driftFormat      string
)

var driftCmd = &cobra.Command{
	Use:   "drift",
	Short: "List documentation drift findings",
	Long: `List every place where the documentation contradicts the declared API.

Structural drift covers parameter names, types, optionality, return types,
generic constraints, and property types. Semantic drift covers @deprecated,
visibility tags, and broken {@link} references. Example drift covers
unresolved identifiers in example code, syntax errors, and (with
--run-examples) runtime failures and // => assertion mismatches.

Examples:
  docdrift drift
  docdrift drift --run-examples
  docdrift drift --format human`,
	Run: runDriftCmd,
}

func init() {
	driftCmd.Flags().StringVar(&driftManifest, "manifest", "", "Path to the export manifest (default from config)")
	driftCmd.Flags().StringVar(&driftScip, "scip", "", "Build the manifest from a SCIP index instead")
	driftCmd.Flags().BoolVar(&driftRunExamples, "run-examples", false, "Execute example code blocks with the configured runner")
	driftCmd.Flags().BoolVar(&driftNoCache, "no-cache", false, "Bypass the report cache")
	driftCmd.Flags().IntVar(&driftTimeoutMs, "timeout", 0, "Per-example execution timeout in milliseconds (default from config)")
	driftCmd.Flags().StringVar(&driftFormat, "format", "json", "Output format (json, human)")
	rootCmd.AddCommand(driftCmd)
}

func runDriftCmd(cmd *cobra.Command, args []string) {
	repoRoot := mustGetRepoRoot()
	cfg := loadConfigOrDefault(repoRoot)
	if driftTimeoutMs > 0 {
		cfg.Examples.TimeoutMs = driftTimeoutMs
	}
	logger := newLogger(driftFormat, cfg.Logging.Level)

	result, err := runPipeline(newContext(), repoRoot, cfg, logger, pipelineOptions{
		manifestPath: driftManifest,
		scipPath:     driftScip,
		runExamples:  driftRunExamples,
		noCache:      driftNoCache,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error detecting drift: %v\n", err)
		os.Exit(1)
	}

	resp := &DriftResponseCLI{
		DocdriftVersion: version.Version,
		Manifest:        result.ManifestPath,
		Total:           result.Summary.Total,
	}
	for _, exp := range result.Report.Exports {
		if exp.Docs == nil || len(exp.Docs.Drift) == 0 {
			continue
		}
		resp.Exports = append(resp.Exports, ExportDriftCLI{
			Name:  exp.Name,
			Kind:  string(exp.Kind),
			Drift: exp.Docs.Drift,
		})
	}

	output, err := FormatResponse(resp, OutputFormat(driftFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(output)
}
