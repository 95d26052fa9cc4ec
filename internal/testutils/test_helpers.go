package testutils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestFileContent renders a test case file: the argument line followed by
// the expected output, verbatim.
func TestFileContent(args []string, expected string) string {
	return strings.Join(args, " ") + "\n" + expected
}

// WriteTestFile writes a test case file named name into dir and returns its path.
func WriteTestFile(t *testing.T, dir, name string, args []string, expected string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(TestFileContent(args, expected)), 0644))

	return path
}

// CreateTempDir creates a temporary directory structure from a map of
// relative file names to contents.
func CreateTempDir(t *testing.T, files map[string]string) string {
	t.Helper()

	tmpDir := t.TempDir()
	for filename, content := range files {
		filePath := filepath.Join(tmpDir, filename)

		err := os.MkdirAll(filepath.Dir(filePath), 0755)
		require.NoError(t, err, "Should create directory for %s", filename)

		err = os.WriteFile(filePath, []byte(content), 0644)
		require.NoError(t, err, "Should create file %s", filename)
	}

	return tmpDir
}
