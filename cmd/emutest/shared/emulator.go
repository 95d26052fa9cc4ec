package shared

import (
	"fmt"
	"os"
	"path/filepath"
)

// ResolveEmulator verifies that the emulator exists and returns its absolute
// path. It must be called before the working directory override applies, so
// relative paths resolve against the invocation directory.
func ResolveEmulator(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", &SetupError{Kind: MissingEmulator, Path: path, Err: err}
	}
	if info.IsDir() {
		return "", &SetupError{Kind: MissingEmulator, Path: path, Err: fmt.Errorf("%s is a directory", path)}
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path of %s: %w", path, err)
	}

	return absPath, nil
}

// CheckBaseDir verifies that the working directory override is a directory.
func CheckBaseDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return &SetupError{Kind: MissingDirectory, Path: dir, Err: err}
	}
	if !info.IsDir() {
		return &SetupError{Kind: MissingDirectory, Path: dir}
	}
	return nil
}
