// compare-trigger-results compares the edm::TriggerResults collections of the
// EDM files produced by a reference and a target run of the same workflows.
// For every file present under both trees it lists the TriggerResults process
// names with edmDumpEventContent, runs hltDiff once per process name and
// writes one log per comparison plus summary.log to the output directory.
// Exit code 0 = run completed (with or without differences). Exit code 1 = error.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/hltvalidation/trcompare/internal/compare"
	"github.com/hltvalidation/trcompare/internal/config"
	"github.com/hltvalidation/trcompare/internal/connectors"
	"github.com/hltvalidation/trcompare/internal/connectors/edmdump"
	"github.com/hltvalidation/trcompare/internal/connectors/hltdiff"
	"github.com/hltvalidation/trcompare/internal/observability"
	"github.com/hltvalidation/trcompare/internal/pairing"
	"github.com/hltvalidation/trcompare/internal/scan"
)

const (
	summaryFile     = "summary.log"
	summaryJSONFile = "summary.json"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(run(ctx, filepath.Base(os.Args[0]), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) int {
	cfg, usage, err := config.Parse(name, args)
	if errors.Is(err, config.ErrHelp) {
		fmt.Fprintln(stdout, usage)
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}

	logger, err := observability.InitLogger(stderr, cfg.LogFormat, cfg.Verbosity)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}

	if err := compareRuns(ctx, cfg, logger, stdout); err != nil {
		logger.Error("comparison aborted", "error", err)
		return 1
	}
	return 0
}

func compareRuns(ctx context.Context, cfg config.Config, logger *slog.Logger, stdout io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	dumper, err := resolveTool(cfg.DumpBinary, cfg.Verbosity, logger)
	if err != nil {
		return err
	}
	differ, err := resolveTool(cfg.DiffBinary, cfg.Verbosity, logger)
	if err != nil {
		return err
	}

	shutdown, err := observability.InitTracer(ctx, "trcompare")
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn("tracer shutdown failed", "error", err)
		}
	}()

	metrics, err := observability.NewMetrics()
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	refFiles, err := scan.Files(cfg.ReferenceDir, cfg.FilePattern)
	if err != nil {
		return err
	}
	tgtFiles, err := scan.Files(cfg.TargetDir, cfg.FilePattern)
	if err != nil {
		return err
	}
	logger.Info("scanned input directories", "reference_files", len(refFiles), "target_files", len(tgtFiles))

	builder := &pairing.Builder{
		Lister:    edmdump.NewBinaryRunner(dumper.Path),
		Logger:    logger,
		Metrics:   metrics,
		Verbosity: cfg.Verbosity,
	}
	wl, _, err := builder.Build(ctx, pairing.Input{
		ReferenceRoot:  cfg.ReferenceDir,
		TargetRoot:     cfg.TargetDir,
		ReferenceFiles: refFiles,
		TargetFiles:    tgtFiles,
	})
	if err != nil {
		return err
	}

	runner := &compare.Runner{
		Differ:    hltdiff.NewBinaryRunner(differ.Path),
		OutputDir: cfg.OutputDir,
		MaxEvents: cfg.MaxEvents,
		DryRun:    cfg.DryRun,
		Verbosity: cfg.Verbosity,
		Logger:    logger,
		Metrics:   metrics,
		Stdout:    stdout,
	}
	summary, err := runner.Run(ctx, wl)
	if err != nil {
		return err
	}
	if cfg.DryRun {
		return nil
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := summary.WriteFile(filepath.Join(cfg.OutputDir, summaryFile)); err != nil {
		return err
	}
	if cfg.SummaryJSON {
		if err := summary.WriteJSON(filepath.Join(cfg.OutputDir, summaryJSONFile)); err != nil {
			return err
		}
	}

	if !cfg.Silent() {
		fmt.Fprintln(stdout, summary.Verdict())
	}
	return nil
}

func resolveTool(name string, verbosity int, logger *slog.Logger) (connectors.Executable, error) {
	exe, err := connectors.Resolve(name)
	if err != nil {
		return connectors.Executable{}, fmt.Errorf("executable %q is not available (set up an appropriate CMSSW area): %w", name, err)
	}
	if verbosity > 0 && exe.Ambiguous() {
		logger.Warn("executable has multiple matches", "name", name, "using", exe.Path, "matches", exe.Matches)
	}
	return exe, nil
}
