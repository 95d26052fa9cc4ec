// Package shared provides the run configuration and setup checks for emutest.
package shared

import (
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/RenzRoos/test/cmd/emutest/internal/process"
)

// Config holds the configuration for one emutest run. It is built once by
// the CLI and passed explicitly to the reporter and driver.
type Config struct {
	// Emulator is the path to the executable under test.
	Emulator string

	// BaseDir is the working directory override: discovery, single-test
	// lookup and the emulator's working directory are all relative to it.
	BaseDir string

	// TestDir is the discovery directory, relative to BaseDir.
	TestDir string

	// Extension selects test case files during discovery.
	Extension string

	// TestFile, when set, runs a single test instead of discovering.
	TestFile string

	Verbose             bool
	FailFast            bool
	Timeout             time.Duration
	AcceptableExitCodes []int
	Jobs                int
	Color               string
	StripANSI           bool
	ReportFile          string
	LogLevel            string
	LogFile             string
}

// Default configuration values
const (
	DefaultTestDir   = "testdata"
	DefaultExtension = ".test"
	DefaultTimeout   = process.DefaultTimeout
	DefaultJobs      = 1
	DefaultColor     = "auto"
)

// DefaultAcceptableExitCodes are the exit codes that do not by themselves
// fail a test: 0 for success and 4 for deliberately invalid arguments.
var DefaultAcceptableExitCodes = []int{0, 4}

// DefaultEmulator returns the platform-dependent relative path of the emulator.
func DefaultEmulator() string {
	if runtime.GOOS == "windows" {
		return filepath.Join("Windows", "rv64-emu.exe")
	}
	return "rv64-emu"
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		Emulator:            DefaultEmulator(),
		BaseDir:             ".",
		TestDir:             DefaultTestDir,
		Extension:           DefaultExtension,
		Timeout:             DefaultTimeout,
		AcceptableExitCodes: append([]int(nil), DefaultAcceptableExitCodes...),
		Jobs:                DefaultJobs,
		Color:               DefaultColor,
	}
}

// DiscoveryDir returns the directory searched for test case files.
func (c *Config) DiscoveryDir() string {
	return filepath.Join(c.BaseDir, c.TestDir)
}

// TestFilePath returns the single test file resolved against BaseDir.
// Absolute paths are returned unchanged.
func (c *Config) TestFilePath() string {
	if c.TestFile == "" {
		return ""
	}
	return c.Resolve(c.TestFile)
}

// Resolve returns name relative to the invocation directory, joining it
// with BaseDir unless it is absolute.
func (c *Config) Resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.BaseDir, name)
}

// Validate checks values that flags and config files cannot constrain.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidConfig, c.Timeout)
	}
	if c.Jobs < 1 {
		return fmt.Errorf("%w: jobs must be at least 1, got %d", ErrInvalidConfig, c.Jobs)
	}
	if c.TestDir == "" {
		return fmt.Errorf("%w: test directory must not be empty", ErrInvalidConfig)
	}
	if c.Extension == "" {
		return fmt.Errorf("%w: test extension must not be empty", ErrInvalidConfig)
	}
	return nil
}
