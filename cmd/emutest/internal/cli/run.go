package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/RenzRoos/test/cmd/emutest/internal/classify"
	"github.com/RenzRoos/test/cmd/emutest/internal/driver"
	"github.com/RenzRoos/test/cmd/emutest/internal/normalize"
	"github.com/RenzRoos/test/cmd/emutest/internal/process"
	"github.com/RenzRoos/test/cmd/emutest/internal/report"
	"github.com/RenzRoos/test/cmd/emutest/internal/testcase"
	"github.com/RenzRoos/test/cmd/emutest/shared"
	"github.com/RenzRoos/test/internal/logger"
	"github.com/RenzRoos/test/internal/output"
)

// run executes one test run and reports to stdout. Setup problems are
// returned before any test runs; failing tests yield a silent ExitError.
func (app *App) run(ctx context.Context, stdout io.Writer) error {
	cfg := app.Config

	// The emulator path is relative to the invocation directory, not --dir.
	emulator, err := shared.ResolveEmulator(cfg.Emulator)
	if err != nil {
		return WrapExitError(ExitFailure, "", err)
	}
	if err := shared.CheckBaseDir(cfg.BaseDir); err != nil {
		return WrapExitError(ExitFailure, "", err)
	}
	if cfg.ReportFile != "" {
		if _, err := report.FormatFromPath(cfg.ReportFile); err != nil {
			return WrapExitError(ExitUsage, "", err)
		}
	}

	names, err := collectTests(cfg)
	if err != nil {
		return WrapExitError(ExitFailure, "", err)
	}

	mode, err := output.ParseColorMode(cfg.Color)
	if err != nil {
		return WrapExitError(ExitUsage, "", err)
	}
	printer := output.NewPrinter(
		output.WithWriter(stdout),
		output.WithFormatter(output.NewFormatter(mode, stdout)),
	)
	reporter := report.New(printer, cfg.Verbose)

	var normOpts []normalize.Option
	if cfg.StripANSI {
		normOpts = append(normOpts, normalize.WithANSIStripping())
	}
	classifier := classify.New(cfg.AcceptableExitCodes, normalize.NewEngine(normOpts...))

	runner := process.NewRunner(emulator, cfg.BaseDir, cfg.Timeout)
	d := driver.New(baseDirLoader(cfg), runner, classifier, reporter, driver.Options{
		FailFast: cfg.FailFast,
		Jobs:     cfg.Jobs,
	})

	logger.Debug("starting run", "tests", len(names), "jobs", cfg.Jobs, "fail_fast", cfg.FailFast)
	if err := d.Run(ctx, names); err != nil {
		printer.Print("\n")
		logger.Warn("run aborted", "recorded", len(reporter.Summary().Results), "error", err)
		return WrapExitError(ExitFailure, "run aborted", err)
	}

	status := reporter.Finish()
	summary := reporter.Summary()
	logger.Info("run finished", "passed", summary.Passed, "failed", summary.Failed)

	if cfg.ReportFile != "" {
		if err := report.WriteReportFile(cfg.ReportFile, summary); err != nil {
			logger.Error("report not written", "path", cfg.ReportFile, "error", err)
			return WrapExitError(ExitFailure, "", err)
		}
		logger.Info("report written", "path", cfg.ReportFile)
	}

	if status != report.StatusPassed {
		return &ExitError{Code: status}
	}
	return nil
}

// collectTests returns test names relative to the base directory: the
// single requested test, or every discovered test case in sorted order.
func collectTests(cfg *shared.Config) ([]string, error) {
	if cfg.TestFile != "" {
		if err := testcase.Locate(cfg.TestFilePath()); err != nil {
			if errors.Is(err, testcase.ErrTestNotFound) {
				return nil, &shared.SetupError{Kind: shared.MissingTestFile, Path: cfg.TestFile, Err: err}
			}
			return nil, err
		}
		return []string{cfg.TestFile}, nil
	}

	paths, err := testcase.Discover(cfg.DiscoveryDir(), cfg.Extension)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(paths))
	for i, path := range paths {
		name, err := filepath.Rel(cfg.BaseDir, path)
		if err != nil {
			return nil, fmt.Errorf("failed to name test %s: %w", path, err)
		}
		names[i] = name
	}
	return names, nil
}

// baseDirLoader opens test names against the base directory while keeping
// the names themselves as the test identity.
func baseDirLoader(cfg *shared.Config) driver.Loader {
	return driver.LoaderFunc(func(name string) (*testcase.TestCase, error) {
		tc, err := testcase.Load(cfg.Resolve(name))
		if err != nil {
			return nil, err
		}
		tc.Name = name
		return tc, nil
	})
}
