package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"docdrift/internal/coverage"
	"docdrift/internal/manifest"
	"docdrift/internal/scipload"
	"docdrift/internal/version"
)

var (
	coverageManifest string
	coverageScip     string
	coverageFormat   string
)

var coverageCmd = &cobra.Command{
	Use:   "coverage",
	Short: "Score documentation coverage per export",
	Long: `Score how completely each export is documented.

Four sections are worth 25 points each: description, params, returns, and
examples. A section scores either full or zero credit; the aggregate is
the rounded mean across exports (100 for an empty manifest).

Examples:
  docdrift coverage
  docdrift coverage --manifest dist/openpkg.json --format human`,
	Run: runCoverageCmd,
}

func init() {
	coverageCmd.Flags().StringVar(&coverageManifest, "manifest", "", "Path to the export manifest (default from config)")
	coverageCmd.Flags().StringVar(&coverageScip, "scip", "", "Build the manifest from a SCIP index instead")
	coverageCmd.Flags().StringVar(&coverageFormat, "format", "json", "Output format (json, human)")
	rootCmd.AddCommand(coverageCmd)
}

func runCoverageCmd(cmd *cobra.Command, args []string) {
	repoRoot := mustGetRepoRoot()
	cfg := loadConfigOrDefault(repoRoot)

	var (
		m    *manifest.Manifest
		path string
		err  error
	)
	if coverageScip != "" {
		path = resolvePath(repoRoot, coverageScip)
		m, err = scipload.LoadManifest(path)
	} else {
		path = coverageManifest
		if path == "" {
			path = cfg.ManifestPath
		}
		path = resolvePath(repoRoot, path)
		m, err = manifest.Load(path)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scoring coverage: %v\n", err)
		os.Exit(1)
	}

	resp := &CoverageResponseCLI{
		DocdriftVersion: version.Version,
		Manifest:        path,
		Exports:         make([]ExportCoverageCLI, 0, len(m.Exports)),
	}
	scores := make([]coverage.Score, 0, len(m.Exports))
	for i := range m.Exports {
		exp := &m.Exports[i]
		score := coverage.ScoreExport(exp)
		scores = append(scores, score)
		resp.Exports = append(resp.Exports, ExportCoverageCLI{
			Name:          exp.Name,
			Kind:          string(exp.Kind),
			CoverageScore: score.CoverageScore,
			Missing:       score.Missing,
		})
	}
	resp.Aggregate = coverage.AggregateScore(scores)

	output, err := FormatResponse(resp, OutputFormat(coverageFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(output)
}
