// Package process runs the emulator as a child process under a time budget.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/RenzRoos/test/internal/logger"

	"github.com/charmbracelet/log"
)

// DefaultTimeout is the time budget of a single emulator invocation.
const DefaultTimeout = 5 * time.Second

// waitDelay bounds how long Wait blocks on output pipes after the child has
// been killed, in case a grandchild keeps them open.
const waitDelay = time.Second

// ErrStart is wrapped by errors returned when the child cannot be spawned.
var ErrStart = errors.New("failed to start process")

// Result is what one emulator invocation produced.
type Result struct {
	// ExitCode is nil when the process did not complete within the timeout.
	ExitCode *int
	Stdout   []byte
	Stderr   []byte
	Duration time.Duration
}

// TimedOut reports whether the process was abandoned at the timeout.
func (r *Result) TimedOut() bool {
	return r.ExitCode == nil
}

// Runner launches the emulator. The zero Timeout means DefaultTimeout.
type Runner struct {
	// Executable is the absolute path of the emulator.
	Executable string

	// Dir is the working directory of the child; empty means the current one.
	Dir string

	Timeout time.Duration

	// Env holds extra KEY=VALUE entries appended to the inherited environment.
	Env []string

	log *log.Logger
}

// NewRunner creates a runner for the given executable.
func NewRunner(executable, dir string, timeout time.Duration) *Runner {
	return &Runner{
		Executable: executable,
		Dir:        dir,
		Timeout:    timeout,
		log:        logger.NewStyledLogger("runner"),
	}
}

// Run executes the emulator once with args, passed through unmodified.
// Output is captured whatever the exit code. A timeout is not an error: it
// yields a Result without an exit code. Cancellation of ctx is returned as
// ctx.Err(), and a spawn failure wraps ErrStart.
func (r *Runner) Run(ctx context.Context, args []string) (*Result, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, r.Executable, args...)
	cmd.Dir = r.Dir
	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.logger().Debug("spawning emulator", "args", args, "dir", r.Dir)

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrStart, r.Executable, err)
	}
	waitErr := cmd.Wait()

	result := &Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: time.Since(start),
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if waitErr != nil && errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		r.logger().Debug("emulator timed out", "args", args, "timeout", timeout)
		return result, nil
	}

	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return nil, fmt.Errorf("waiting for %s: %w", r.Executable, waitErr)
		}
	}

	code := exitCode(cmd.ProcessState)
	result.ExitCode = &code

	r.logger().Debug("emulator exited", "exit_code", code, "duration", result.Duration)

	return result, nil
}

func (r *Runner) logger() *log.Logger {
	if r.log == nil {
		r.log = logger.NewStyledLogger("runner")
	}
	return r.log
}
