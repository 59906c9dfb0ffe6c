// Package devserver serves a static web application over local HTTP for development:
// permissive CORS headers, ES module friendly content types and a next-port fallback
// when the default port is already taken.
// Not to be used for anything but localhost development.
package devserver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ContentDir is the directory, beneath the project base, that gets served.
const ContentDir = "src"

// ErrNoContentRoot is returned by ContentRoot when the src directory is missing.
var ErrNoContentRoot = errors.New("src directory not found")

// ExecutableDir returns the directory holding the running binary, symlinks resolved.
// It is the default project base, so the tool finds its src/ no matter where it's started from.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// ContentRoot returns the absolute path of the src directory beneath base
// or an error wrapping ErrNoContentRoot if it doesn't exist or isn't a directory.
func ContentRoot(base string) (string, error) {
	root, err := filepath.Abs(filepath.Join(base, ContentDir))
	if err != nil {
		return "", err
	}
	st, err := os.Stat(root)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNoContentRoot, root)
	}
	if !st.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrNoContentRoot, root)
	}
	return root, nil
}
