package test

//go:generate go run ../cmd --dir fixtures/robot

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	assert "github.com/stretchr/testify/require"
)

func getWd(t *testing.T, folder string) string {
	wd, err := os.Getwd()
	assert.NoError(t, err, "failed to get working directory")
	return filepath.Join(wd, folder)
}

// copyFixture copies a fixture project into a temporary directory so that
// generated code isn't written into the source tree.
func copyFixture(t *testing.T, folder string) string {
	src := getWd(t, folder)
	dst := t.TempDir()

	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}

		if d.IsDir() {
			return os.MkdirAll(filepath.Join(dst, rel), 0700)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		return os.WriteFile(filepath.Join(dst, rel), data, 0600)
	})

	assert.NoError(t, err, "failed to copy fixture")
	return dst
}
