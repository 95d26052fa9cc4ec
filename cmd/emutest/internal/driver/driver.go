// Package driver runs a list of test case files through the loader, the
// emulator runner, the classifier and the reporter.
package driver

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/sourcegraph/conc/stream"

	"github.com/RenzRoos/test/cmd/emutest/internal/classify"
	"github.com/RenzRoos/test/cmd/emutest/internal/process"
	"github.com/RenzRoos/test/cmd/emutest/internal/testcase"
	"github.com/RenzRoos/test/internal/logger"
)

// Loader reads a test case file.
type Loader interface {
	Load(path string) (*testcase.TestCase, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(path string) (*testcase.TestCase, error)

// Load calls f(path).
func (f LoaderFunc) Load(path string) (*testcase.TestCase, error) {
	return f(path)
}

// FileLoader loads test cases from disk.
var FileLoader Loader = LoaderFunc(testcase.Load)

// Executor runs the emulator once with the given arguments.
type Executor interface {
	Run(ctx context.Context, args []string) (*process.Result, error)
}

// Classifier decides the outcome of one run.
type Classifier interface {
	Classify(expected string, res *process.Result) classify.Outcome
}

// Reporter receives the collected count and one outcome per executed test.
type Reporter interface {
	Start(collected int)
	Record(name string, outcome classify.Outcome)
}

// Options controls how a run proceeds.
type Options struct {
	// FailFast stops the run after the first test that does not pass.
	FailFast bool
	// Jobs is the number of emulator processes run at once. Values below 2
	// run tests one after another.
	Jobs int
}

// Driver orchestrates a run.
type Driver struct {
	loader     Loader
	executor   Executor
	classifier Classifier
	reporter   Reporter
	opts       Options
	log        *log.Logger
}

// New creates a driver. A nil loader reads test cases from disk.
func New(loader Loader, executor Executor, classifier Classifier, reporter Reporter, opts Options) *Driver {
	if loader == nil {
		loader = FileLoader
	}
	return &Driver{
		loader:     loader,
		executor:   executor,
		classifier: classifier,
		reporter:   reporter,
		opts:       opts,
		log:        logger.NewStyledLogger("driver"),
	}
}

// Run executes the test cases at paths in order and records their outcomes.
// The reporter is started with len(paths) even if the run stops early.
// A malformed test file or a cancelled ctx ends the run with an error after
// the outcomes recorded so far.
func (d *Driver) Run(ctx context.Context, paths []string) error {
	d.reporter.Start(len(paths))

	if d.opts.Jobs > 1 {
		return d.runConcurrent(ctx, paths)
	}
	return d.runSequential(ctx, paths)
}

func (d *Driver) runSequential(ctx context.Context, paths []string) error {
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}

		name, outcome, err := d.runOne(ctx, path)
		if err != nil {
			return err
		}

		d.reporter.Record(name, outcome)
		if d.stopAfter(name, outcome) {
			break
		}
	}
	return nil
}

// runConcurrent runs up to Jobs emulators at once. Outcomes are recorded in
// path order from stream callbacks, so output is the same as a sequential run.
// Stopping cancels in-flight children and drops their results.
func (d *Driver) runConcurrent(parent context.Context, paths []string) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	// Only touched from callbacks, which the stream runs one at a time.
	var (
		stopped bool
		fatal   error
	)

	s := stream.New().WithMaxGoroutines(d.opts.Jobs)
	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}

		s.Go(func() stream.Callback {
			if ctx.Err() != nil {
				return func() {}
			}

			name, outcome, err := d.runOne(ctx, path)
			return func() {
				if stopped || fatal != nil {
					return
				}
				if err != nil {
					fatal = err
					cancel()
					return
				}

				d.reporter.Record(name, outcome)
				if d.stopAfter(name, outcome) {
					stopped = true
					cancel()
				}
			}
		})
	}
	s.Wait()

	if fatal != nil {
		return fatal
	}
	return parent.Err()
}

func (d *Driver) runOne(ctx context.Context, path string) (string, classify.Outcome, error) {
	tc, err := d.loader.Load(path)
	if err != nil {
		return path, classify.Outcome{}, err
	}

	res, err := d.executor.Run(ctx, tc.Args)
	switch {
	case errors.Is(err, process.ErrStart):
		d.log.Warn("emulator did not start", "test", tc.Name, "error", err)
		return tc.Name, classify.NotStarted(err), nil
	case err != nil:
		return tc.Name, classify.Outcome{}, err
	}

	outcome := d.classifier.Classify(tc.Expected, res)
	d.log.Debug("classified", "test", tc.Name, "outcome", outcome.Kind)
	return tc.Name, outcome, nil
}

func (d *Driver) stopAfter(name string, outcome classify.Outcome) bool {
	if !d.opts.FailFast || outcome.IsPassed() {
		return false
	}
	d.log.Debug("stopping after first failure", "test", name)
	return true
}
