package main

import (
	"docdrift/internal/version"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "docdrift",
	Short: "docdrift - Documentation drift auditor",
	Long: `docdrift audits package export manifests for documentation health.

It scores how completely each export is documented (description, parameters,
returns, examples) and detects drift: places where the documentation
contradicts the declared API surface, such as stale parameter names, wrong
types, broken {@link} references, or examples that no longer run.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("docdrift version {{.Version}}\n")
}
