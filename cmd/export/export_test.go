package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/ellipszist/texport/internal/testutil"
)

// Two 2x2 RGBA32 textures and one streamed texture whose resource is missing.
const sceneManifest = `version: 1
members:
  - id: m0
    path: sharedassets0.assets
textures:
  - member: m0
    path_id: 1
    name: icon
    width: 2
    height: 2
    format: RGBA32
    image_data: AAAAAAAAAAAAAAAAAAAAAA==
  - member: m0
    path_id: 2
    name: sky
    width: 2
    height: 2
    format: RGBA32
    stream_data:
      path: sharedassets0.assets.resS
      offset: 0
      size: 16
  - member: m0
    path_id: 3
    name: ui/logo
    width: 2
    height: 2
    format: RGBA32
    image_data: AAAAAAAAAAAAAAAAAAAAAA==
  - member: m0
    path_id: 4
    name: Font Texture
    width: 0
    height: 0
    format: Alpha8
`

type result struct {
	stdout string
	stderr string
	err    error
}

func runExportCmd(t *testing.T, args ...string) result {
	t.Helper()

	cmd := createTestCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{}, args...))

	err := cmd.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestExportCmd_Batch(t *testing.T) {
	env := testutil.NewTestEnv(t)
	manifestPath := env.WriteManifest("scene.yaml", sceneManifest)
	out := env.OutputDir("out")
	reportPath := filepath.Join(env.DataDir, "report.json")

	res := runExportCmd(t, manifestPath, "--dir", out, "--container", "tga", "--report", reportPath)
	if res.err != nil {
		t.Fatalf("export failed: %v\nstderr: %s", res.err, res.stderr)
	}

	for _, name := range []string{"icon-sharedassets0.assets-1.tga", "ui_logo-sharedassets0.assets-3.tga"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("expected %s to be written: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "sky-sharedassets0.assets-2.tga")); !os.IsNotExist(err) {
		t.Error("failed texture should not be written")
	}

	if !strings.Contains(res.stdout, "Exported 2 of 4 textures") {
		t.Errorf("unexpected stdout: %s", res.stdout)
	}
	want := "[sharedassets0.assets/2]: resS was detected but sharedassets0.assets.resS was not found on disk"
	if !strings.Contains(res.stderr, want) {
		t.Errorf("stderr should contain %q, got: %s", want, res.stderr)
	}

	data, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	var report map[string]any
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("report is not JSON: %v", err)
	}
	if outcomes, _ := report["outcomes"].([]any); len(outcomes) != 4 {
		t.Errorf("expected 4 outcomes in report, got %v", report["outcomes"])
	}
}

func TestExportCmd_Single(t *testing.T) {
	env := testutil.NewTestEnv(t)
	manifestPath := env.WriteManifest("scene.yaml", sceneManifest)
	dest := filepath.Join(env.OutputDir("single"), "icon")

	res := runExportCmd(t, manifestPath, "--select", "sharedassets0.assets/1", "--output", dest)
	if res.err != nil {
		t.Fatalf("export failed: %v\nstderr: %s", res.err, res.stderr)
	}

	if _, err := os.Stat(dest + ".png"); err != nil {
		t.Errorf("expected default container extension: %v", err)
	}
	if !strings.Contains(res.stdout, "Exported "+dest+".png") {
		t.Errorf("unexpected stdout: %s", res.stdout)
	}
}

func TestExportCmd_SingleToOutputDir(t *testing.T) {
	env := testutil.NewTestEnv(t)
	manifestPath := env.WriteManifest("scene.yaml", sceneManifest)
	out := env.OutputDir("configured")
	t.Setenv("TEXPORT_EXPORT_OUTPUT_DIR", out)

	res := runExportCmd(t, manifestPath, "--select", "3")
	if res.err != nil {
		t.Fatalf("export failed: %v", res.err)
	}
	if _, err := os.Stat(filepath.Join(out, "ui_logo-sharedassets0.assets-3.png")); err != nil {
		t.Errorf("expected suggested name in output dir: %v", err)
	}
}

func TestExportCmd_SingleDegenerate(t *testing.T) {
	env := testutil.NewTestEnv(t)
	manifestPath := env.WriteManifest("scene.yaml", sceneManifest)

	res := runExportCmd(t, manifestPath, "--select", "4", "--output", filepath.Join(env.DataDir, "font.png"))
	if !errors.Is(res.err, errExportFailed) {
		t.Fatalf("expected errExportFailed, got %v", res.err)
	}
	if !strings.Contains(res.stderr, "Texture size is 0x0. Texture cannot be exported.") {
		t.Errorf("unexpected stderr: %s", res.stderr)
	}
}

func TestExportCmd_SingleMissingResource(t *testing.T) {
	env := testutil.NewTestEnv(t)
	manifestPath := env.WriteManifest("scene.yaml", sceneManifest)

	res := runExportCmd(t, manifestPath, "--select", "2", "--output", filepath.Join(env.DataDir, "sky.png"))
	if !errors.Is(res.err, errExportFailed) {
		t.Fatalf("expected errExportFailed, got %v", res.err)
	}
	if !strings.Contains(res.stderr, "sharedassets0.assets.resS was not found on disk") {
		t.Errorf("unexpected stderr: %s", res.stderr)
	}
}

func TestExportCmd_MetricsTextfile(t *testing.T) {
	env := testutil.NewTestEnv(t)
	manifestPath := env.WriteManifest("scene.yaml", sceneManifest)
	promPath := filepath.Join(env.DataDir, "texport.prom")
	t.Setenv("TEXPORT_METRICS_TEXTFILE", promPath)

	res := runExportCmd(t, manifestPath, "--dir", env.OutputDir("out"))
	if res.err != nil {
		t.Fatalf("export failed: %v", res.err)
	}

	data, err := os.ReadFile(promPath)
	if err != nil {
		t.Fatalf("metrics textfile not written: %v", err)
	}
	if !strings.Contains(string(data), "texport_exports_total") {
		t.Errorf("textfile missing exports counter:\n%s", data)
	}
}

func TestExportCmd_CancelledDirectoryExitsNonZero(t *testing.T) {
	env := testutil.NewTestEnv(t)
	manifestPath := env.WriteManifest("scene.yaml", sceneManifest)
	reportPath := filepath.Join(env.DataDir, "report.json")

	res := runExportCmd(t, manifestPath, "--dir", "  ", "--report", reportPath)
	if !errors.Is(res.err, errExportCancelled) {
		t.Fatalf("expected errExportCancelled, got %v", res.err)
	}
	if !strings.Contains(res.stderr, "Export cancelled") {
		t.Errorf("unexpected stderr: %s", res.stderr)
	}
	if _, err := os.Stat(reportPath); !os.IsNotExist(err) {
		t.Error("cancelled export should not write a report")
	}
}

func TestExportCmd_UnknownSelection(t *testing.T) {
	env := testutil.NewTestEnv(t)
	manifestPath := env.WriteManifest("scene.yaml", sceneManifest)

	res := runExportCmd(t, manifestPath, "--select", "99")
	if res.err == nil {
		t.Fatal("expected error for unknown selection")
	}
}

func TestExportCmd_InvalidContainer(t *testing.T) {
	env := testutil.NewTestEnv(t)
	manifestPath := env.WriteManifest("scene.yaml", sceneManifest)

	res := runExportCmd(t, manifestPath, "--container", "gif")
	if res.err == nil {
		t.Fatal("expected error for unsupported container")
	}
}

func createTestCommand() *cobra.Command {
	exportSelect = nil
	exportOutput = ""
	exportDir = ""
	exportContainer = ""
	exportInteractive = false
	exportReport = ""

	cmd := &cobra.Command{
		Use:     ExportCmd.Use,
		Args:    ExportCmd.Args,
		PreRunE: ExportCmd.PreRunE,
		RunE:    ExportCmd.RunE,
	}

	cmd.Flags().StringSliceVarP(&exportSelect, "select", "s", nil, "")
	cmd.Flags().StringVarP(&exportOutput, "output", "o", "", "")
	cmd.Flags().StringVarP(&exportDir, "dir", "d", "", "")
	cmd.Flags().StringVarP(&exportContainer, "container", "c", "", "")
	cmd.Flags().BoolVarP(&exportInteractive, "interactive", "i", false, "")
	cmd.Flags().StringVar(&exportReport, "report", "", "")
	cmd.SilenceErrors = true

	return cmd
}
