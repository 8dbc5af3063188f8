package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ellipszist/texport/internal/fsutil"
)

func TestWrite_RoundTrip(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := NewDefaultConfig()
	cfg.Export.DefaultContainer = "bmp"
	cfg.Export.MaxErrorLines = 7

	if err := Write(&cfg, path, false); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("file permissions = %o, want 0600", perm)
	}

	data, _ := os.ReadFile(path)
	if !strings.HasPrefix(string(data), "# texport configuration") {
		t.Errorf("config should start with header, got %q", string(data)[:40])
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if loaded.Export.DefaultContainer != "bmp" || loaded.Export.MaxErrorLines != 7 {
		t.Errorf("loaded export config = %+v", loaded.Export)
	}
}

func TestWrite_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("log_level: warn\n"), 0600); err != nil {
		t.Fatalf("failed to seed config: %v", err)
	}

	cfg := NewDefaultConfig()
	err := Write(&cfg, path, false)
	if !errors.Is(err, fsutil.ErrExists) {
		t.Fatalf("Write() error = %v, want ErrExists", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "log_level: warn\n" {
		t.Error("existing config must be left untouched")
	}

	if err := Write(&cfg, path, true); err != nil {
		t.Fatalf("Write() with overwrite error = %v", err)
	}
}
