package process

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/RenzRoos/test/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	testutils.MaybeRunFakeEmulator()
	os.Exit(m.Run())
}

func newFakeRunner(t *testing.T, timeout time.Duration) *Runner {
	t.Helper()
	exe, env := testutils.FakeEmulatorPath()
	r := NewRunner(exe, "", timeout)
	r.Env = []string{env}
	return r
}

func TestRunCapturesStreamsSeparately(t *testing.T) {
	r := newFakeRunner(t, 0)

	res, err := r.Run(context.Background(), []string{"split", "out", "err"})
	require.NoError(t, err)
	require.NotNil(t, res.ExitCode)

	assert.Equal(t, 0, *res.ExitCode)
	assert.Equal(t, "out\n", string(res.Stdout))
	assert.Equal(t, "err\n", string(res.Stderr))
	assert.False(t, res.TimedOut())
}

func TestRunNonZeroExitStillCaptures(t *testing.T) {
	r := newFakeRunner(t, 0)

	res, err := r.Run(context.Background(), []string{"exit", "3", "partial"})
	require.NoError(t, err)
	require.NotNil(t, res.ExitCode)

	assert.Equal(t, 3, *res.ExitCode)
	assert.Equal(t, "partial\n", string(res.Stdout))
}

func TestRunInvalidArgumentExitCode(t *testing.T) {
	r := newFakeRunner(t, 0)

	res, err := r.Run(context.Background(), []string{"--bad-flag"})
	require.NoError(t, err)
	require.NotNil(t, res.ExitCode)

	assert.Equal(t, 4, *res.ExitCode)
	assert.Equal(t, "error: unknown flag\n", string(res.Stderr))
}

func TestRunSignalledChildReportsNegatedSignal(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("no signals on windows")
	}
	r := newFakeRunner(t, 0)

	res, err := r.Run(context.Background(), []string{"kill"})
	require.NoError(t, err)
	require.NotNil(t, res.ExitCode)

	assert.Equal(t, -9, *res.ExitCode)
	assert.False(t, res.TimedOut())
}

func TestDefaultTimeoutIsFiveSeconds(t *testing.T) {
	assert.Equal(t, 5*time.Second, DefaultTimeout)
}

func TestRunTimeout(t *testing.T) {
	r := newFakeRunner(t, 200*time.Millisecond)

	start := time.Now()
	res, err := r.Run(context.Background(), []string{"hang"})
	require.NoError(t, err)

	assert.True(t, res.TimedOut())
	assert.Nil(t, res.ExitCode)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestRunWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	r := newFakeRunner(t, 0)
	r.Dir = dir

	res, err := r.Run(context.Background(), []string{"pwd"})
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(string(res.Stdout[:len(res.Stdout)-1]))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRunStartFailure(t *testing.T) {
	r := NewRunner(filepath.Join(t.TempDir(), "does-not-exist"), "", 0)

	res, err := r.Run(context.Background(), nil)
	assert.Nil(t, res)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStart))
}

func TestRunParentCancellation(t *testing.T) {
	r := newFakeRunner(t, 10*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(100*time.Millisecond, cancel)

	res, err := r.Run(ctx, []string{"hang"})
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, context.Canceled))
}
