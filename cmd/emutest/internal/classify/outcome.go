// Package classify decides the outcome of one test case from the emulator's
// result and renders line diffs for mismatches.
package classify

import (
	"fmt"
	"strconv"
)

// Kind tags the variant of an Outcome.
type Kind int

const (
	// Passed means the output matched and the exit code was acceptable.
	Passed Kind = iota
	// OutputMismatch means the output differed from the expected text.
	OutputMismatch
	// AbnormalExit means the exit code was outside the acceptable set.
	AbnormalExit
	// TimedOut means the emulator did not finish within its time budget.
	TimedOut
	// StartFailed means the emulator could not be spawned at all.
	StartFailed
)

// String returns the machine-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case Passed:
		return "passed"
	case OutputMismatch:
		return "output-mismatch"
	case AbnormalExit:
		return "abnormal-exit"
	case TimedOut:
		return "timed-out"
	case StartFailed:
		return "start-failed"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Outcome is the classification of exactly one test case run.
// Diff is set for OutputMismatch, ExitCode for AbnormalExit and Err for StartFailed.
type Outcome struct {
	Kind     Kind
	Diff     string
	ExitCode int
	Err      error
}

// Pass returns a Passed outcome.
func Pass() Outcome { return Outcome{Kind: Passed} }

// Mismatch returns an OutputMismatch outcome carrying diff.
func Mismatch(diff string) Outcome { return Outcome{Kind: OutputMismatch, Diff: diff} }

// Exit returns an AbnormalExit outcome for code.
func Exit(code int) Outcome { return Outcome{Kind: AbnormalExit, ExitCode: code} }

// Timeout returns a TimedOut outcome.
func Timeout() Outcome { return Outcome{Kind: TimedOut} }

// NotStarted returns a StartFailed outcome for err, which is expected to
// describe the spawn failure in full.
func NotStarted(err error) Outcome { return Outcome{Kind: StartFailed, Err: err} }

// IsPassed reports whether the outcome counts as a pass.
func (o Outcome) IsPassed() bool {
	return o.Kind == Passed
}

// Detail returns the failure detail shown in reports; empty for a pass.
func (o Outcome) Detail() string {
	switch o.Kind {
	case OutputMismatch:
		return o.Diff
	case AbnormalExit:
		return "error: non-zero exit status: " + strconv.Itoa(o.ExitCode)
	case TimedOut:
		return "error: timeout expired while running test"
	case StartFailed:
		if o.Err == nil {
			return "error: failed to start process"
		}
		return fmt.Sprintf("error: %v", o.Err)
	default:
		return ""
	}
}
