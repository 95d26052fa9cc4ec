package testutils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunFakeEmulator(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"echo", []string{"echo", "hello", "world"}, 0, "hello world\n", ""},
		{"stderr", []string{"stderr", "oops"}, 0, "", "oops\n"},
		{"split", []string{"split", "out", "err"}, 0, "out\n", "err\n"},
		{"crlf", []string{"crlf", "a"}, 0, "a\r\n", ""},
		{"exit with words", []string{"exit", "3", "bye"}, 3, "bye\n", ""},
		{"unknown flag", []string{"--bad-flag"}, 4, "", "error: unknown flag\n"},
		{"sum", []string{"1", "2", "3"}, 0, "6\n", ""},
		{"bad program", []string{"prog.bin"}, 1, "", "error: cannot open prog.bin\n"},
		{"no args", nil, 1, "", "usage: rv64-emu [options] <program>\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := RunFakeEmulator(tt.args, &stdout, &stderr)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantStdout, stdout.String())
			assert.Equal(t, tt.wantStderr, stderr.String())
		})
	}
}

func TestDeterministicIDs(t *testing.T) {
	next := DeterministicIDs()
	assert.Equal(t, "00000001-0000-4000-8000-000000000001", next())
	assert.Equal(t, "00000002-0000-4000-8000-000000000002", next())

	other := DeterministicIDs()
	assert.Equal(t, "00000001-0000-4000-8000-000000000001", other())
}

func TestWriteTestFile(t *testing.T) {
	dir := t.TempDir()
	path := WriteTestFile(t, dir, "testdata/add.test", []string{"1", "2"}, "3\n")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1 2\n3\n", string(data))
	assert.Equal(t, filepath.Join(dir, "testdata", "add.test"), path)
}
