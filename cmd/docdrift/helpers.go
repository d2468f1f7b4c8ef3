package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"docdrift/internal/config"
	"docdrift/internal/drift"
	"docdrift/internal/enrich"
	"docdrift/internal/errors"
	"docdrift/internal/examples"
	"docdrift/internal/logging"
	"docdrift/internal/manifest"
	"docdrift/internal/scipload"
	"docdrift/internal/storage"
	"docdrift/internal/version"
)

// getRepoRoot returns the repository root directory.
func getRepoRoot() (string, error) {
	return os.Getwd()
}

// mustGetRepoRoot returns the repository root or exits on error.
func mustGetRepoRoot() string {
	repoRoot, err := getRepoRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return repoRoot
}

// loadConfigOrDefault loads the configuration, falling back to defaults
// when the config file is missing or unreadable.
func loadConfigOrDefault(repoRoot string) *config.Config {
	cfg, err := config.Load(repoRoot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config, using defaults: %v\n", err)
		return config.DefaultConfig()
	}
	return cfg
}

// newLogger creates a logger with the specified output format and level.
func newLogger(format, level string) *logging.Logger {
	logFormat := logging.HumanFormat
	if format == "json" {
		logFormat = logging.JSONFormat
	}
	return logging.NewLogger(logging.Config{
		Format: logFormat,
		Level:  logging.ParseLevel(level),
	})
}

// newContext creates a new context for command execution.
func newContext() context.Context {
	return context.Background()
}

// resolvePath makes path absolute relative to repoRoot.
func resolvePath(repoRoot, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(repoRoot, path)
}

// pipelineOptions configures a single audit pipeline run.
type pipelineOptions struct {
	manifestPath string // overrides cfg.ManifestPath when set
	scipPath     string // load the manifest from a SCIP index instead
	runExamples  bool
	noCache      bool
}

// pipelineResult is the outcome of one audit pipeline run.
type pipelineResult struct {
	Report       *enrich.EnrichedManifest
	Summary      *drift.Summary
	ManifestPath string
	Cached       bool
}

// runPipeline executes the full audit: load the manifest, compute drift
// and coverage, and merge them into the enriched report. Results are
// served from the report cache when the manifest content hash matches a
// fresh entry; SCIP-sourced and example-running runs bypass the cache.
func runPipeline(ctx context.Context, repoRoot string, cfg *config.Config, logger *logging.Logger, opts pipelineOptions) (*pipelineResult, error) {
	var (
		m    *manifest.Manifest
		path string
		err  error
	)
	if opts.scipPath != "" {
		path = resolvePath(repoRoot, opts.scipPath)
		m, err = scipload.LoadManifest(path)
	} else {
		path = opts.manifestPath
		if path == "" {
			path = cfg.ManifestPath
		}
		path = resolvePath(repoRoot, path)
		m, err = manifest.Load(path)
	}
	if err != nil {
		return nil, err
	}

	useCache := cfg.Cache.Enabled && !opts.noCache && opts.scipPath == "" && !opts.runExamples
	var (
		cache    *storage.ReportCache
		cacheKey string
	)
	if useCache {
		hash, herr := manifest.Hash(path)
		if herr != nil {
			logger.Warn("Failed to hash manifest, skipping cache", map[string]interface{}{
				"error": herr.Error(),
			})
		} else if db, derr := storage.Open(resolvePath(repoRoot, cfg.Cache.Path)); derr != nil {
			logger.Warn("Failed to open report cache", map[string]interface{}{
				"error": derr.Error(),
			})
		} else {
			defer db.Close()
			cache = storage.NewReportCache(db, time.Duration(cfg.Cache.TtlSeconds)*time.Second)
			cacheKey = version.Version + ":" + hash

			if cached, ok, cerr := cache.Get(cacheKey); cerr == nil && ok {
				var report enrich.EnrichedManifest
				if json.Unmarshal([]byte(cached), &report) == nil {
					logger.Debug("Report cache hit", map[string]interface{}{
						"key": cacheKey,
					})
					return &pipelineResult{
						Report:       &report,
						Summary:      drift.GetSummary(report.AllDrift()),
						ManifestPath: path,
						Cached:       true,
					}, nil
				}
			}
		}
	}

	analyzer := drift.NewAnalyzer(logger)
	if cfg.Examples.AllowlistPath != "" {
		allowlist := examples.DefaultAllowlist()
		if aerr := allowlist.LoadFile(resolvePath(repoRoot, cfg.Examples.AllowlistPath)); aerr != nil {
			logger.Warn("Failed to load identifier allowlist", map[string]interface{}{
				"path":  cfg.Examples.AllowlistPath,
				"error": aerr.Error(),
			})
		} else {
			analyzer.WithAllowlist(allowlist)
		}
	}

	var driftOpts drift.Options
	if opts.runExamples {
		if cfg.Examples.Runner != "node" {
			return nil, errors.New(errors.RunnerUnavailable,
				fmt.Sprintf("unsupported example runner %q", cfg.Examples.Runner), nil)
		}
		runner := examples.NewNodeRunner(time.Duration(cfg.Examples.TimeoutMs) * time.Millisecond)
		driftOpts.RuntimeResults = analyzer.RunExamples(ctx, m, runner)
	}

	result := analyzer.ComputeDrift(m, driftOpts)
	report := enrich.Enrich(m, result, nil)

	if cache != nil {
		if data, merr := json.Marshal(report); merr == nil {
			if serr := cache.Set(cacheKey, string(data)); serr != nil {
				logger.Warn("Failed to cache report", map[string]interface{}{
					"error": serr.Error(),
				})
			}
		}
	}

	return &pipelineResult{
		Report:       report,
		Summary:      drift.GetSummary(report.AllDrift()),
		ManifestPath: path,
		Cached:       false,
	}, nil
}
