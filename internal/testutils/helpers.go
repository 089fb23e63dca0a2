// Package testutils builds on-disk automaton catalogs for tests.
package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/require"
)

// NewCatalogRepo initializes a Loam repository in a temp dir and writes the
// given automaton documents into it, keyed by file name.
func NewCatalogRepo(t *testing.T, docs map[string]string, opts ...loam.Option) (string, core.Repository) {
	t.Helper()

	dir, err := filepath.Abs(t.TempDir())
	require.NoError(t, err)

	repo, err := loam.Init(dir, opts...)
	require.NoError(t, err, "init catalog repo")

	WriteDocuments(t, dir, docs)
	return dir, repo
}

// WriteDocuments writes automaton definition files (.md, .json, .yaml) into dir.
func WriteDocuments(t *testing.T, dir string, docs map[string]string) {
	t.Helper()
	for name, content := range docs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644), name)
	}
}
