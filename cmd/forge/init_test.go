package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRunInit_FreshProject(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example\n"), 0o644))

	require.NoError(t, runInit([]string{dir}))

	content := readFile(t, filepath.Join(dir, "AGENTS.md"))
	assert.Contains(t, content, "## Development Workflow")
	assert.Contains(t, content, "`go test ./...`")

	// State file is written alongside.
	assert.FileExists(t, filepath.Join(dir, ".forge", "state.json"))
}

func TestRunInit_MergesExistingFile(t *testing.T) {
	dir := t.TempDir()
	existing := "## Project Description\n\nSells widgets.\n\n## Workflow\n\nAd hoc.\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "AGENTS.md"), []byte(existing), 0o644))

	require.NoError(t, runInit([]string{dir}))

	content := readFile(t, filepath.Join(dir, "AGENTS.md"))
	assert.Contains(t, content, "Sells widgets.")
	assert.Contains(t, content, "## Development Workflow")
	assert.NotContains(t, content, "Ad hoc.")
}

func TestRunInit_KeepExisting(t *testing.T) {
	dir := t.TempDir()
	existing := "leave me alone\n"
	target := filepath.Join(dir, "AGENTS.md")
	require.NoError(t, os.WriteFile(target, []byte(existing), 0o644))

	require.NoError(t, runInit([]string{"-keep-existing", dir}))
	assert.Equal(t, existing, readFile(t, target))
}

func TestRunInit_ForceDiscardsExisting(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "AGENTS.md")
	require.NoError(t, os.WriteFile(target, []byte("## Project Description\n\nold\n"), 0o644))

	require.NoError(t, runInit([]string{"-force", dir}))

	content := readFile(t, target)
	assert.NotContains(t, content, "old")
	assert.Contains(t, content, "## Development Workflow")
}

func TestRunInit_DryRunWritesNothing(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, runInit([]string{"-dry-run", dir}))
	assert.NoFileExists(t, filepath.Join(dir, "AGENTS.md"))
	assert.NoFileExists(t, filepath.Join(dir, ".forge", "state.json"))
}

func TestRunInit_TargetFromConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "forge.yml"), []byte("targetFile: CLAUDE.md\n"), 0o644))

	require.NoError(t, runInit([]string{dir}))
	assert.FileExists(t, filepath.Join(dir, "CLAUDE.md"))
	assert.NoFileExists(t, filepath.Join(dir, "AGENTS.md"))
}

func TestRunInit_AddMarkers(t *testing.T) {
	dir := t.TempDir()
	existing := "## Project Description\n\nSells widgets.\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "AGENTS.md"), []byte(existing), 0o644))

	require.NoError(t, runInit([]string{"-add-markers", dir}))

	content := readFile(t, filepath.Join(dir, "AGENTS.md"))
	assert.Contains(t, content, "<!-- FORGE:START -->")
	assert.Contains(t, content, "<!-- USER:START -->")
	assert.Contains(t, content, "Sells widgets.")
}

func TestRun_UnknownCommand(t *testing.T) {
	assert.Error(t, run([]string{"frobnicate"}))
	assert.Error(t, run([]string{}))
}
