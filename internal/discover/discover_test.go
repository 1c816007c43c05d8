package discover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestPackages(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "alpha/package.toml", "")
	writeFile(t, dir, "nested/beta/package.toml", "")
	writeFile(t, dir, "no-manifest/README.md", "")

	dirs, err := Packages(dir, "package.toml", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "alpha"),
		filepath.Join(dir, "nested", "beta"),
	}, dirs)
}

func TestPackages_RootManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.toml", "")

	dirs, err := Packages(dir, "package.toml", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{dir}, dirs)
}

func TestPackages_SkipsHiddenAndBuiltinDirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "alpha/package.toml", "")
	writeFile(t, dir, ".cache/package.toml", "")
	writeFile(t, dir, "target/debug/package.toml", "")
	writeFile(t, dir, "node_modules/dep/package.toml", "")

	dirs, err := Packages(dir, "package.toml", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "alpha")}, dirs)
}

func TestPackages_IgnoreDirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "alpha/package.toml", "")
	writeFile(t, dir, "fixtures/fake/package.toml", "")

	dirs, err := Packages(dir, "package.toml", []string{"fixtures"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "alpha")}, dirs)
}

func TestPackages_Gitignore(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".gitignore", "scratch/\n")
	writeFile(t, dir, "alpha/package.toml", "")
	writeFile(t, dir, "scratch/package.toml", "")

	dirs, err := Packages(dir, "package.toml", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "alpha")}, dirs)
}

func TestPackages_CustomManifestName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "alpha/buildpack.toml", "")
	writeFile(t, dir, "beta/package.toml", "")

	dirs, err := Packages(dir, "buildpack.toml", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "alpha")}, dirs)
}
