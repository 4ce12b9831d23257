package detect

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFiles creates empty files with the given names under dir.
func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}\n"), 0o644))
	}
}

func TestDetect_GoProject(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "go.mod")

	meta, err := Detect(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, "Go", meta.Language)
	assert.Equal(t, "go test ./...", meta.TestCommand)
	assert.Equal(t, "go build ./...", meta.BuildCommand)
}

func TestDetect_TypeScriptUpgrade(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "package.json", "tsconfig.json")

	meta, err := Detect(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, "TypeScript", meta.Language)
	assert.Equal(t, "npm test", meta.TestCommand)
}

func TestDetect_PriorityOrder(t *testing.T) {
	// go.mod outranks package.json when both are present.
	dir := t.TempDir()
	writeFiles(t, dir, "package.json", "go.mod")

	meta, err := Detect(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, "Go", meta.Language)
}

func TestDetect_UnknownProject(t *testing.T) {
	dir := t.TempDir()

	meta, err := Detect(context.Background(), dir)
	require.NoError(t, err)
	assert.Empty(t, meta.Language)
	assert.Empty(t, meta.TestCommand)
	// Name falls back to the directory name outside a git repo.
	assert.Equal(t, filepath.Base(dir), meta.Name)
}

func TestDetect_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Detect(ctx, t.TempDir())
	assert.Error(t, err)
}
