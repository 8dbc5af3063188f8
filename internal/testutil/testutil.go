// Package testutil provides isolated environments for command tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ellipszist/texport/internal/config"
)

// TestEnv is a test-scoped config directory plus scratch space for manifests,
// data files and export output.
type TestEnv struct {
	t         *testing.T
	ConfigDir string
	DataDir   string
}

// NewTestEnv creates an isolated environment. HOME and the TEXPORT_ path
// variables point into a temp directory and config is reinitialized. Both are
// undone by t.Cleanup.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	root := t.TempDir()
	env := &TestEnv{
		t:         t,
		ConfigDir: filepath.Join(root, "config"),
		DataDir:   filepath.Join(root, "data"),
	}
	for _, dir := range []string{env.ConfigDir, env.DataDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("failed to create %s: %v", dir, err)
		}
	}

	t.Setenv("HOME", root)
	t.Setenv("TEXPORT_CONFIG_DIR", env.ConfigDir)
	t.Setenv("TEXPORT_LOG_FILE", filepath.Join(env.ConfigDir, "texport.log"))

	config.Reset()
	if err := config.Init(); err != nil {
		t.Fatalf("failed to initialize test config: %v", err)
	}
	t.Cleanup(config.Reset)

	return env
}

// OutputDir creates and returns a fresh directory for export output.
func (e *TestEnv) OutputDir(name string) string {
	e.t.Helper()

	dir := filepath.Join(e.t.TempDir(), name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		e.t.Fatalf("failed to create output dir %s: %v", name, err)
	}
	return dir
}

// WriteFile writes content under DataDir and returns its path.
func (e *TestEnv) WriteFile(name string, content []byte) string {
	e.t.Helper()

	path := filepath.Join(e.DataDir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		e.t.Fatalf("failed to create dir for %s: %v", name, err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		e.t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// WriteManifest writes a manifest document under DataDir and returns its path.
func (e *TestEnv) WriteManifest(name, content string) string {
	e.t.Helper()
	return e.WriteFile(name, []byte(content))
}
