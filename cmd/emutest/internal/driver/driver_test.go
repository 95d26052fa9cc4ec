package driver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RenzRoos/test/cmd/emutest/internal/classify"
	"github.com/RenzRoos/test/cmd/emutest/internal/process"
	"github.com/RenzRoos/test/cmd/emutest/internal/report"
	"github.com/RenzRoos/test/cmd/emutest/internal/testcase"
	"github.com/RenzRoos/test/internal/output"
)

// Test case paths encode their behaviour: "pass-*" prints the expected text,
// "fail-*" prints something else, "slow-*" passes after a delay, "nostart-*"
// cannot be spawned, "broken-*" is malformed and "crash-*" makes the executor error.
func fakeLoader(path string) (*testcase.TestCase, error) {
	if strings.HasPrefix(path, "broken-") {
		return nil, &testcase.MalformedError{Path: path, Reason: "empty file"}
	}
	return &testcase.TestCase{Name: path, Args: []string{path}, Expected: "ok\n"}, nil
}

type fakeExecutor struct {
	mu    sync.Mutex
	calls []string
}

func (e *fakeExecutor) Run(ctx context.Context, args []string) (*process.Result, error) {
	name := args[0]

	e.mu.Lock()
	e.calls = append(e.calls, name)
	e.mu.Unlock()

	delay := 5 * time.Millisecond
	if strings.HasPrefix(name, "slow-") {
		delay = 100 * time.Millisecond
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(delay):
	}

	code := 0
	switch {
	case strings.HasPrefix(name, "fail-"):
		return &process.Result{ExitCode: &code, Stdout: []byte("bad\n")}, nil
	case strings.HasPrefix(name, "nostart-"):
		return nil, fmt.Errorf("%w: %s: no such file", process.ErrStart, name)
	case strings.HasPrefix(name, "crash-"):
		return nil, errors.New("pipe closed")
	}
	return &process.Result{ExitCode: &code, Stdout: []byte("ok\n")}, nil
}

func (e *fakeExecutor) called(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, c := range e.calls {
		if c == name {
			return true
		}
	}
	return false
}

type recorded struct {
	name string
	kind classify.Kind
}

type fakeReporter struct {
	collected int
	records   []recorded
}

func (r *fakeReporter) Start(collected int) { r.collected = collected }

func (r *fakeReporter) Record(name string, outcome classify.Outcome) {
	r.records = append(r.records, recorded{name, outcome.Kind})
}

func newDriver(opts Options) (*Driver, *fakeExecutor, *fakeReporter) {
	exec := &fakeExecutor{}
	rep := &fakeReporter{}
	return New(LoaderFunc(fakeLoader), exec, classify.New([]int{0, 4}, nil), rep, opts), exec, rep
}

func TestRunRecordsEveryTestInOrder(t *testing.T) {
	for _, jobs := range []int{1, 4} {
		t.Run(fmt.Sprintf("jobs=%d", jobs), func(t *testing.T) {
			d, _, rep := newDriver(Options{Jobs: jobs})

			err := d.Run(context.Background(), []string{"slow-a", "fail-b", "pass-c", "nostart-d", "pass-e"})
			require.NoError(t, err)

			assert.Equal(t, 5, rep.collected)
			assert.Equal(t, []recorded{
				{"slow-a", classify.Passed},
				{"fail-b", classify.OutputMismatch},
				{"pass-c", classify.Passed},
				{"nostart-d", classify.StartFailed},
				{"pass-e", classify.Passed},
			}, rep.records)
		})
	}
}

func TestRunFailFastStopsAfterFirstFailure(t *testing.T) {
	for _, jobs := range []int{1, 3} {
		t.Run(fmt.Sprintf("jobs=%d", jobs), func(t *testing.T) {
			d, _, rep := newDriver(Options{FailFast: true, Jobs: jobs})

			err := d.Run(context.Background(), []string{"pass-a", "fail-b", "pass-c", "pass-d", "pass-e", "pass-f"})
			require.NoError(t, err)

			assert.Equal(t, 6, rep.collected)
			assert.Equal(t, []recorded{
				{"pass-a", classify.Passed},
				{"fail-b", classify.OutputMismatch},
			}, rep.records)
		})
	}
}

func TestRunFailFastSequentialDoesNotRunLaterTests(t *testing.T) {
	d, exec, _ := newDriver(Options{FailFast: true})

	require.NoError(t, d.Run(context.Background(), []string{"fail-a", "pass-b"}))
	assert.False(t, exec.called("pass-b"))
}

func TestRunStartFailureDoesNotStopWithoutFailFast(t *testing.T) {
	d, exec, rep := newDriver(Options{})

	require.NoError(t, d.Run(context.Background(), []string{"nostart-a", "pass-b"}))
	assert.True(t, exec.called("pass-b"))
	assert.Len(t, rep.records, 2)
}

func TestRunMalformedFileIsFatal(t *testing.T) {
	for _, jobs := range []int{1, 2} {
		t.Run(fmt.Sprintf("jobs=%d", jobs), func(t *testing.T) {
			d, _, rep := newDriver(Options{Jobs: jobs})

			err := d.Run(context.Background(), []string{"pass-a", "broken-b", "pass-c"})
			require.Error(t, err)
			assert.ErrorIs(t, err, testcase.ErrMalformedTestFile)
			assert.Equal(t, []recorded{{"pass-a", classify.Passed}}, rep.records)
		})
	}
}

func TestRunExecutorErrorIsFatal(t *testing.T) {
	d, _, rep := newDriver(Options{})

	err := d.Run(context.Background(), []string{"crash-a", "pass-b"})
	assert.EqualError(t, err, "pipe closed")
	assert.Empty(t, rep.records)
}

func TestRunCancelledContext(t *testing.T) {
	for _, jobs := range []int{1, 2} {
		t.Run(fmt.Sprintf("jobs=%d", jobs), func(t *testing.T) {
			d, _, rep := newDriver(Options{Jobs: jobs})
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			err := d.Run(ctx, []string{"pass-a", "pass-b"})
			assert.ErrorIs(t, err, context.Canceled)
			assert.Empty(t, rep.records)
			assert.Equal(t, 2, rep.collected)
		})
	}
}

func TestRunWithReporterKeepsCollectedUnderFailFast(t *testing.T) {
	buffer := output.NewCaptureBuffer()
	rep := report.New(output.NewPrinter(output.WithWriter(buffer)), false)
	d := New(LoaderFunc(fakeLoader), &fakeExecutor{}, classify.New([]int{0}, nil), rep, Options{FailFast: true})

	require.NoError(t, d.Run(context.Background(), []string{"pass-a", "fail-b", "pass-c"}))
	status := rep.Finish()

	s := rep.Summary()
	assert.Equal(t, 3, s.Collected)
	assert.Equal(t, 1, s.Passed)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, report.StatusFailed, status)
	assert.Contains(t, buffer.String(), "3 tests, 1 pass, 1 fail")
}

func TestFileLoaderReadsFromDisk(t *testing.T) {
	_, err := FileLoader.Load("does-not-exist.test")
	assert.ErrorIs(t, err, testcase.ErrTestNotFound)
}
