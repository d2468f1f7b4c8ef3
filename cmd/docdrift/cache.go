package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"docdrift/internal/storage"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the report cache",
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Remove expired report cache entries",
	Run:   runCachePurgeCmd,
}

func init() {
	cacheCmd.AddCommand(cachePurgeCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCachePurgeCmd(cmd *cobra.Command, args []string) {
	repoRoot := mustGetRepoRoot()
	cfg := loadConfigOrDefault(repoRoot)

	db, err := storage.Open(resolvePath(repoRoot, cfg.Cache.Path))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening cache: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	cache := storage.NewReportCache(db, time.Duration(cfg.Cache.TtlSeconds)*time.Second)
	removed, err := cache.Purge()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error purging cache: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Removed %d expired cache entr%s\n", removed, pluralY(removed))
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
