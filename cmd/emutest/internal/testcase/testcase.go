// Package testcase discovers and parses emulator test case files.
//
// A test case file has two parts: the first line holds the emulator's
// arguments separated by single spaces (no quoting), and everything after it
// is the expected combined stdout+stderr output.
package testcase

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"
)

// TestCase is one (argument vector, expected output) pair loaded from a file.
// It is not modified after loading.
type TestCase struct {
	// Name identifies the test in reports: the path as discovered or given.
	Name     string
	Args     []string
	Expected string
}

var (
	// ErrMalformedTestFile is matched by every MalformedError.
	ErrMalformedTestFile = errors.New("malformed test file")

	// ErrTestNotFound is returned when an explicitly requested test is missing.
	ErrTestNotFound = errors.New("test not found")
)

// MalformedError describes a test file that cannot be split into an
// argument line and an expected output body.
type MalformedError struct {
	Path   string
	Reason string
	Err    error
}

func (e *MalformedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed test file %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed test file %s: %s", e.Path, e.Reason)
}

// Unwrap returns the underlying error, if any.
func (e *MalformedError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrMalformedTestFile) true for every MalformedError.
func (e *MalformedError) Is(target error) bool {
	return target == ErrMalformedTestFile
}

// Load reads and parses the test case file at path.
func Load(path string) (*TestCase, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTestNotFound, path)
		}
		return nil, &MalformedError{Path: path, Reason: "cannot open", Err: err}
	}
	defer func() { _ = f.Close() }()

	return Parse(path, f)
}

// Parse reads a test case from r. name is used as the test identity and in errors.
func Parse(name string, r io.Reader) (*TestCase, error) {
	br := bufio.NewReader(r)

	line, err := br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, &MalformedError{Path: name, Reason: "cannot read argument line", Err: err}
	}
	if line == "" {
		return nil, &MalformedError{Path: name, Reason: "missing argument line"}
	}

	body, err := io.ReadAll(br)
	if err != nil {
		return nil, &MalformedError{Path: name, Reason: "cannot read expected output", Err: err}
	}

	if !utf8.ValidString(line) || !utf8.Valid(body) {
		return nil, &MalformedError{Path: name, Reason: "content is not valid UTF-8"}
	}

	return &TestCase{
		Name:     name,
		Args:     SplitArgs(line),
		Expected: string(body),
	}, nil
}

// SplitArgs splits an argument line on single spaces. Consecutive spaces
// produce empty arguments, and an empty line is one empty argument.
func SplitArgs(line string) []string {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return strings.Split(line, " ")
}

// Discover returns the files in dir whose names end in ext, sorted
// lexicographically by full path. Subdirectories are not searched.
func Discover(dir, ext string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+ext))
	if err != nil {
		return nil, fmt.Errorf("invalid test pattern %q: %w", ext, err)
	}

	paths := make([]string, 0, len(matches))
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", match, err)
		}
		if info.IsDir() {
			continue
		}
		paths = append(paths, match)
	}

	sort.Strings(paths)
	return paths, nil
}

// Locate checks that an explicitly requested test file exists.
func Locate(path string) error {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return fmt.Errorf("%w: %s", ErrTestNotFound, path)
	}
	return nil
}
