package config

import (
	"os"
	"path/filepath"
	"testing"
)

// isolate points every config search path at empty temp directories.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("TEXPORT_CONFIG_DIR", tmpDir)
	t.Setenv("HOME", tmpDir)

	origDir, _ := os.Getwd()
	os.Chdir(tmpDir)
	t.Cleanup(func() { os.Chdir(origDir) })

	Reset()
	t.Cleanup(Reset)
	return tmpDir
}

func TestInit_NoConfigFile_UsesDefaults(t *testing.T) {
	isolate(t)

	if err := Init(); err != nil {
		t.Fatalf("Init() returned error when no config file exists: %v", err)
	}

	if got := GetConfigPath(); got != DefaultConfigPath() {
		t.Errorf("GetConfigPath() = %q, want default %q when no config file", got, DefaultConfigPath())
	}
	if got := GetString("export.default_container"); got != DefaultExportContainer {
		t.Errorf("export.default_container = %q, want %q", got, DefaultExportContainer)
	}

	cfg, err := Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if cfg.Export.MaxErrorLines != DefaultExportMaxErrorLines {
		t.Errorf("Export.MaxErrorLines = %d, want %d", cfg.Export.MaxErrorLines, DefaultExportMaxErrorLines)
	}
	if !cfg.Export.Overwrite {
		t.Error("Export.Overwrite should default to true")
	}
}

func TestInit_ConfigInEnvDir_LoadsFromEnvDir(t *testing.T) {
	isolate(t)

	envDir := t.TempDir()
	configPath := filepath.Join(envDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("export:\n  default_container: tga\n"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	t.Setenv("TEXPORT_CONFIG_DIR", envDir)

	if err := Init(); err != nil {
		t.Fatalf("Init() returned error: %v", err)
	}

	if got := GetConfigPath(); got != configPath {
		t.Errorf("GetConfigPath() = %q, want %q", got, configPath)
	}
	if got := GetString("export.default_container"); got != "tga" {
		t.Errorf("export.default_container = %q, want %q", got, "tga")
	}
}

func TestInit_ConfigInDefaultDir_LoadsFromDefaultDir(t *testing.T) {
	tmpHome := isolate(t)
	t.Setenv("TEXPORT_CONFIG_DIR", "")

	defaultDir := filepath.Join(tmpHome, ".config", "texport")
	if err := os.MkdirAll(defaultDir, 0755); err != nil {
		t.Fatalf("failed to create default dir: %v", err)
	}
	configPath := filepath.Join(defaultDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("log_level: debug\n"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	if err := Init(); err != nil {
		t.Fatalf("Init() returned error: %v", err)
	}

	if got := GetConfigPath(); got != configPath {
		t.Errorf("GetConfigPath() = %q, want %q", got, configPath)
	}
	if got := GetString("log_level"); got != "debug" {
		t.Errorf("log_level = %q, want %q", got, "debug")
	}
}

func TestInit_InvalidYAML_ReturnsError(t *testing.T) {
	dir := isolate(t)

	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("export: [unclosed\n"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	if err := Init(); err == nil {
		t.Error("Init() should fail for invalid YAML")
	}
}

func TestInit_EnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("TEXPORT_EXPORT_MAX_ERROR_LINES", "5")

	if err := Init(); err != nil {
		t.Fatalf("Init() returned error: %v", err)
	}

	cfg, err := Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if cfg.Export.MaxErrorLines != 5 {
		t.Errorf("Export.MaxErrorLines = %d, want 5", cfg.Export.MaxErrorLines)
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", "/home/tester"},
		{"~/logs/texport.log", "/home/tester/logs/texport.log"},
		{"~other/x", "~other/x"},
		{"/abs/path", "/abs/path"},
		{"relative", "relative"},
	}

	for _, tt := range tests {
		if got := expandHome(tt.in); got != tt.want {
			t.Errorf("expandHome(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGetPath_ExpandsHome(t *testing.T) {
	isolate(t)
	t.Setenv("HOME", "/home/tester")
	t.Setenv("TEXPORT_METRICS_TEXTFILE", "~/metrics/texport.prom")

	if err := Init(); err != nil {
		t.Fatalf("Init() returned error: %v", err)
	}
	if got := GetPath("metrics.textfile"); got != "/home/tester/metrics/texport.prom" {
		t.Errorf("GetPath() = %q", got)
	}
}

func TestGetConfigPath_DefaultsWhenNoneLoaded(t *testing.T) {
	home := isolate(t)

	want := filepath.Join(home, ".config", "texport", "config.yaml")
	if got := GetConfigPath(); got != want {
		t.Errorf("GetConfigPath() = %q, want %q", got, want)
	}
	if ConfigExistsAt(GetConfigPath()) {
		t.Error("ConfigExistsAt() should be false")
	}
}

func TestInitPath(t *testing.T) {
	dir := isolate(t)

	if got, want := InitPath(), filepath.Join(dir, "config.yaml"); got != want {
		t.Errorf("InitPath() = %q, want %q", got, want)
	}

	t.Setenv("TEXPORT_CONFIG_DIR", "")
	if got := InitPath(); got != DefaultConfigPath() {
		t.Errorf("InitPath() without env = %q, want %q", got, DefaultConfigPath())
	}
}
