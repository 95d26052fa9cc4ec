// Package cli provides command-line interface setup for emutest.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RenzRoos/test/cmd/emutest/shared"
)

// App represents the emutest CLI application
type App struct {
	Config *shared.Config

	// EnvFile is read for EMUTEST_* settings before the real environment.
	EnvFile string
}

// NewApp creates a new emutest CLI application
func NewApp() *App {
	return &App{
		Config:  shared.NewConfig(),
		EnvFile: defaultEnvFile,
	}
}

// CreateRootCommand creates and configures the root command
func (app *App) CreateRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "emutest [testfile]",
		Short: "Conformance test runner for the rv64-emu emulator",
		Long: `emutest runs the emulator against declarative test cases and compares its
combined stdout and stderr with the expected output stored in each case.

A test case file holds the emulator arguments on its first line, separated by
single spaces, followed by the expected output. Without a test file argument
all files matching <test-dir>/*<ext> are run in sorted order.

A test file whose path is exactly "version" selects the version subcommand;
give it as ./version to run it as a test.`,
		Args:          usageArgs(cobra.MaximumNArgs(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.loadConfig(cmd, args)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.run(cmd.Context(), cmd.OutOrStdout())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolP("verbose", "v", false, "Print a PASS/FAIL line per test with failure details inline")
	flags.BoolP("fail-fast", "f", false, "Stop on first failure")
	flags.StringP("dir", "C", ".", "Base directory for test discovery, test lookup and the emulator's working directory")
	flags.String("emulator", shared.DefaultEmulator(), "Emulator executable, relative to the invocation directory")
	flags.String("test-dir", shared.DefaultTestDir, "Directory searched for test cases, relative to --dir")
	flags.String("ext", shared.DefaultExtension, "File extension of test cases")
	flags.Duration("timeout", shared.DefaultTimeout, "Time limit for one emulator run")
	flags.IntSlice("accept-exit", shared.DefaultAcceptableExitCodes, "Exit codes that do not fail a test by themselves")
	flags.IntP("jobs", "j", shared.DefaultJobs, "Number of emulator processes to run at once")
	flags.String("color", shared.DefaultColor, "Colorize output (auto|always|never)")
	flags.Bool("strip-ansi", false, "Remove ANSI escape sequences from output before comparing")
	flags.String("report", "", "Write a machine-readable report (.json, .yaml or .yml)")
	flags.String("log-level", "", "Set log level (debug|info|warn|error) [default: warn]")
	flags.String("log-file", "", "Write logs to file instead of stderr")
	flags.String("config", "", "Config file [default: ./.emutest.yaml if present]")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return WrapExitError(ExitUsage, "invalid flags", err)
	})

	app.addVersionCommand(rootCmd)

	return rootCmd
}

func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return WrapExitError(ExitUsage, fmt.Sprintf("usage: %s", cmd.UseLine()), err)
		}
		return nil
	}
}
