package cli

import (
	"errors"
	"fmt"
	"io"
)

// Exit codes for emutest.
const (
	ExitSuccess = 0 // All tests passed
	ExitFailure = 1 // A test failed, or the run could not start
	ExitUsage   = 2 // Invalid flags or arguments
)

// ExitError carries a specific exit code back to main.
// An ExitError without Message and Err is silent: the run already reported why.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	case e.Err != nil:
		return e.Err.Error()
	case e.Message != "":
		return e.Message
	default:
		return fmt.Sprintf("exit status %d", e.Code)
	}
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// ExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil and ExitFailure if the error is not an ExitError.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// HandleError prints err to w unless it is silent and returns the exit code.
func HandleError(err error, w io.Writer) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Message != "" || exitErr.Err != nil {
		_, _ = fmt.Fprintln(w, err)
	}

	return ExitCode(err)
}
