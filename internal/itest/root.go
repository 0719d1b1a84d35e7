//go:build integration

package itest

import (
	"errors"
	"os"
	"path/filepath"
)

func findRepoRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for wd != filepath.Dir(wd) {
		if info, err := os.Stat(filepath.Join(wd, "go.mod")); err == nil && info.Mode().IsRegular() {
			return wd, nil
		}
		wd = filepath.Dir(wd)
	}
	return "", errors.New("could not locate go.mod")
}

// realTempDir resolves symlinks so paths printed by the binary compare
// equal on systems where the temp dir lives behind a link.
func realTempDir() (string, error) {
	dir, err := os.MkdirTemp("", "projroot-itest-")
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(dir)
}
