// Package report tallies test outcomes, prints pytest-style progress and
// failure logs, and produces the final banner and exit status.
package report

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/RenzRoos/test/cmd/emutest/internal/classify"
	"github.com/RenzRoos/test/internal/output"
)

// Exit statuses returned by Finish.
const (
	StatusPassed = 0
	StatusFailed = 1
)

const bannerRule = "===================="

// Failure is one entry of the failure log, in execution order.
type Failure struct {
	Name   string `json:"name" yaml:"name"`
	Detail string `json:"detail" yaml:"detail"`
}

// Entry is the machine-readable record of one executed test.
type Entry struct {
	Name     string `json:"name" yaml:"name"`
	Status   string `json:"status" yaml:"status"`
	ExitCode *int   `json:"exit_code,omitempty" yaml:"exit_code,omitempty"`
	Detail   string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Summary is the aggregate state of a run.
// Passed+Failed can be lower than Collected when the run stopped early.
type Summary struct {
	RunID     string    `json:"run_id" yaml:"run_id"`
	Collected int       `json:"collected" yaml:"collected"`
	Passed    int       `json:"passed" yaml:"passed"`
	Failed    int       `json:"failed" yaml:"failed"`
	Failures  []Failure `json:"failures" yaml:"failures"`
	Results   []Entry   `json:"results" yaml:"results"`
}

// Reporter accumulates outcomes and renders them through a Printer.
// It is not safe for concurrent use; the driver records outcomes one at a time.
type Reporter struct {
	printer *output.Printer
	verbose bool
	summary Summary
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithRunID overrides the generator of the run identifier.
func WithRunID(newID func() string) Option {
	return func(r *Reporter) {
		r.summary.RunID = newID()
	}
}

// New creates a reporter writing to printer. In verbose mode every test gets
// its own PASS/FAIL line and failure details are printed immediately.
func New(printer *output.Printer, verbose bool, opts ...Option) *Reporter {
	r := &Reporter{
		printer: printer,
		verbose: verbose,
		summary: Summary{
			RunID:    uuid.NewString(),
			Failures: []Failure{},
			Results:  []Entry{},
		},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Start records the number of collected tests and prints the header.
func (r *Reporter) Start(collected int) {
	r.summary.Collected = collected

	r.printer.Bright(fmt.Sprintf("collected %d tests", collected))
	r.printer.Print("\n\n")
}

// Record tallies one outcome and prints its progress marker.
func (r *Reporter) Record(name string, outcome classify.Outcome) {
	entry := Entry{Name: name, Status: outcome.Kind.String(), Detail: outcome.Detail()}
	if outcome.Kind == classify.AbnormalExit {
		code := outcome.ExitCode
		entry.ExitCode = &code
	}
	r.summary.Results = append(r.summary.Results, entry)

	if outcome.IsPassed() {
		r.summary.Passed++
		if r.verbose {
			r.printer.Passed("PASS")
			r.printer.Printf(" %s\n", name)
		} else {
			r.printer.Passed(".")
		}
		return
	}

	r.summary.Failed++
	r.summary.Failures = append(r.summary.Failures, Failure{Name: name, Detail: entry.Detail})
	if r.verbose {
		r.printer.Failed("FAIL")
		r.printer.Printf(" %s\n%s\n", name, entry.Detail)
		return
	}

	r.printer.Failed("F")
}

// Finish prints the failure log (compact mode only, verbose mode printed each
// failure as it happened) and the banner, and returns the exit status:
// StatusPassed when nothing failed, StatusFailed otherwise.
func (r *Reporter) Finish() int {
	r.printer.Println("")

	if !r.verbose {
		r.printer.Println("")
		for _, f := range r.summary.Failures {
			r.printer.Failed("FAIL")
			r.printer.Printf(" %s\n%s\n", f.Name, f.Detail)
		}
		r.printer.Println("")
	}

	b := Banner(r.summary)
	if r.summary.Failed == 0 {
		r.printer.Passed(b)
		r.printer.Println("")
		return StatusPassed
	}

	r.printer.Failed(b)
	r.printer.Println("")
	return StatusFailed
}

// Summary returns a copy of the current run state.
func (r *Reporter) Summary() Summary {
	s := r.summary
	s.Failures = append([]Failure(nil), r.summary.Failures...)
	s.Results = append([]Entry(nil), r.summary.Results...)
	return s
}

// Banner renders the final summary line.
func Banner(s Summary) string {
	var sb strings.Builder
	sb.WriteString(bannerRule)
	fmt.Fprintf(&sb, " %d tests, %d pass, %d fail ", s.Collected, s.Passed, s.Failed)
	sb.WriteString(bannerRule)
	return sb.String()
}
