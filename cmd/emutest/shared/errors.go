package shared

import (
	"errors"
	"fmt"
)

var (
	// ErrSetup is matched by every SetupError.
	ErrSetup = errors.New("setup error")

	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// SetupKind identifies which precondition of a run failed.
type SetupKind int

const (
	// MissingEmulator means the executable under test does not exist.
	MissingEmulator SetupKind = iota
	// MissingDirectory means the working directory override does not exist.
	MissingDirectory
	// MissingTestFile means the explicitly requested test file does not exist.
	MissingTestFile
)

// SetupError is a fatal error detected before any test runs.
type SetupError struct {
	Kind SetupKind
	Path string
	Err  error
}

func (e *SetupError) Error() string {
	switch e.Kind {
	case MissingEmulator:
		return fmt.Sprintf("%s executable not available, compile it first", e.Path)
	case MissingDirectory:
		return fmt.Sprintf("directory %s does not exist", e.Path)
	case MissingTestFile:
		return fmt.Sprintf("test %s does not exist", e.Path)
	default:
		return fmt.Sprintf("setup failed for %s", e.Path)
	}
}

// Unwrap returns the underlying error, if any.
func (e *SetupError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrSetup) true for every SetupError.
func (e *SetupError) Is(target error) bool {
	return target == ErrSetup
}
