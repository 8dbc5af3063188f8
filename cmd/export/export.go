// Package export implements the export command.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ellipszist/texport/internal/codec"
	"github.com/ellipszist/texport/internal/config"
	texport "github.com/ellipszist/texport/internal/export"
	"github.com/ellipszist/texport/internal/export/formatters"
	"github.com/ellipszist/texport/internal/fsutil"
	"github.com/ellipszist/texport/internal/manifest"
	"github.com/ellipszist/texport/internal/metrics"
	"github.com/ellipszist/texport/internal/plugin"
	"github.com/ellipszist/texport/internal/plugin/textureexport"
	"github.com/ellipszist/texport/internal/tui/prompt"
	"github.com/ellipszist/texport/internal/tui/styles"
	"github.com/ellipszist/texport/internal/version"
)

// Flag variables for the export command.
var (
	exportSelect      []string
	exportOutput      string
	exportDir         string
	exportContainer   string
	exportInteractive bool
	exportReport      string
)

var (
	// errExportFailed is returned when the export option reported a failure. The
	// failure itself has already been printed.
	errExportFailed = errors.New("export failed")

	// errExportCancelled is returned when a prompt was dismissed or left empty.
	errExportCancelled = errors.New("export cancelled")
)

// ExportCmd exports the selected textures of a manifest.
var ExportCmd = &cobra.Command{
	Use:   "export <manifest>",
	Short: "Export textures to image files",
	Long: "Export Texture2D assets listed in a manifest to image files.\n\n" +
		"With one texture selected the texture is written to --output, or to the output " +
		"directory under its suggested name. With several textures selected every texture " +
		"is written to --dir in the --container format; failures do not stop the batch and " +
		"the first errors are reported at the end.\n\n" +
		"Textures are selected with --select using \"<member>/<path id>\" or a bare path id. " +
		"Without --select every texture in the manifest is exported.",
	Example: `  # Export one texture
  texport export scene.yaml --select level0/42 --output icon.png

  # Batch export everything as TGA
  texport export scene.yaml --dir out --container tga

  # Ask for destinations interactively and keep a JSON report
  texport export scene.yaml --interactive --report report.json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: validateExport,
	RunE:    runExport,
}

func init() {
	ExportCmd.Flags().StringSliceVarP(&exportSelect, "select", "s", nil,
		"Textures to export as <member>/<path id> or <path id> (repeatable)")
	ExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "",
		"Destination file for a single texture")
	ExportCmd.Flags().StringVarP(&exportDir, "dir", "d", "",
		"Destination directory for a batch export (default export.output_dir)")
	ExportCmd.Flags().StringVarP(&exportContainer, "container", "c", "",
		"Image format: png, tga, bmp or tiff (default export.default_container)")
	ExportCmd.Flags().BoolVarP(&exportInteractive, "interactive", "i", false,
		"Ask for the destination in the terminal")
	ExportCmd.Flags().StringVar(&exportReport, "report", "",
		"Write a report of the export; format from extension (.json, .yaml, .xml, .txt), JSON otherwise")
}

func validateExport(cmd *cobra.Command, args []string) error {
	if exportContainer != "" {
		if _, err := codec.ParseContainer(exportContainer); err != nil {
			return err
		}
	}

	// All validation passed - errors after this are runtime errors
	cmd.SilenceUsage = true
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := slog.Default().With("component", "export-cmd")

	cfg, err := config.Get()
	if err != nil {
		return fmt.Errorf("failed to load configuration; %w", err)
	}

	container, err := resolveContainer(cfg)
	if err != nil {
		return err
	}

	m, err := manifest.Load(args[0])
	if err != nil {
		return err
	}
	selection, err := m.Selection(exportSelect...)
	if err != nil {
		return err
	}
	if len(selection) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Manifest contains no textures.")
		return nil
	}
	logger.Debug("selection resolved", "manifest", m.Path, "count", len(selection))

	recorder := metrics.NewRecorder()
	recorder.SetBuildInfo(version.Get().Version)

	exporter := texport.NewExporter(
		codec.NewImageCodec(codec.WithOverwrite(cfg.Export.Overwrite)),
		texport.WithObserver(recorder))

	registry := plugin.NewRegistry()
	option := textureexport.New(exporter, newPrompter(cmd, cfg, container),
		textureexport.WithContainers(codec.Containers()...),
		textureexport.WithDefaultContainer(container),
		textureexport.WithMaxErrorLines(cfg.Export.MaxErrorLines))
	if err := registry.Register(textureexport.Name, option); err != nil {
		return err
	}

	match, ok := registry.Find(selection, plugin.ActionExport)
	if !ok {
		return errors.New("no export option applies to the selection; only Texture2D assets can be exported")
	}
	logger.Info("running export option", "option", match.Name, "label", match.Label, "count", len(selection))

	res := match.Option.Execute(ctx, selection)

	report := res.Report
	if report == nil && res.Outcome != nil {
		report = singleReport(*res.Outcome, container)
	}
	if res.Report != nil {
		recorder.ObserveReport(res.Report)
	}

	if exportReport != "" && report != nil {
		if err := writeReport(exportReport, report); err != nil {
			return err
		}
	}
	if path := cfg.ResolvedMetricsTextfile(); path != "" {
		if err := recorder.WriteTextfile(path); err != nil {
			logger.Warn("failed to write metrics textfile", "path", path, "error", err)
		}
	}

	return printResult(cmd.OutOrStdout(), cmd.ErrOrStderr(), res)
}

// commandContext returns the command's context, or Background when run
// outside ExecuteContext.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func resolveContainer(cfg *config.Config) (codec.Container, error) {
	name := exportContainer
	if name == "" {
		name = cfg.Export.DefaultContainer
	}
	return codec.ParseContainer(name)
}

// newPrompter answers from flags and config, or asks in the terminal with
// --interactive or export.interactive.
func newPrompter(cmd *cobra.Command, cfg *config.Config, container codec.Container) prompt.Prompter {
	outputDir := cfg.ResolvedOutputDir()

	if exportInteractive || cfg.Export.Interactive {
		return prompt.NewTerminal(
			prompt.WithIO(cmd.InOrStdin(), cmd.ErrOrStderr()),
			prompt.WithDefaultDir(outputDir))
	}

	dir := exportDir
	if dir == "" {
		dir = outputDir
	}
	file := exportOutput
	if file == "" {
		file = outputDir + string(filepath.Separator)
	}

	return &prompt.Static{
		Container: container,
		Dir:       dir,
		File:      file,
		IsDir:     isDir,
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func singleReport(o texport.Outcome, container codec.Container) *texport.Report {
	return &texport.Report{
		ID:        uuid.NewString(),
		Dir:       filepath.Dir(o.Path),
		Container: container,
		Outcomes:  []texport.Outcome{o},
	}
}

func writeReport(path string, report *texport.Report) error {
	data, err := formatters.ForPath(path).Format(report)
	if err != nil {
		return fmt.Errorf("failed to format report; %w", err)
	}

	_, err = fsutil.WriteFileAtomic(path, fsutil.WriteOptions{Overwrite: true}, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to write report; %w", err)
	}
	return nil
}

func printResult(stdout, stderr io.Writer, res plugin.Result) error {
	switch {
	case res.Report != nil:
		r := res.Report
		fmt.Fprintln(stdout, styles.Heading.Render(fmt.Sprintf("Exported %d of %d textures to %s",
			r.Count(texport.StatusSuccess), len(r.Outcomes), r.Dir)))
		if skipped := r.Count(texport.StatusSkipped); skipped > 0 {
			fmt.Fprintln(stdout, styles.Muted.Render(fmt.Sprintf("Skipped %d empty textures", skipped)))
		}
		if r.Interrupted {
			fmt.Fprintln(stderr, styles.ErrorLine.Render("Export interrupted"))
		}
		if res.Summary != "" {
			fmt.Fprintln(stderr, styles.ErrorLine.Render(res.Summary))
		}
		return nil

	case res.OK && res.Outcome != nil:
		fmt.Fprintln(stdout, styles.SuccessText.Render("Exported "+res.Outcome.Path))
		return nil

	case res.Message != "":
		fmt.Fprintln(stderr, styles.ErrorLine.Render(res.Message))
		return errExportFailed

	default:
		fmt.Fprintln(stderr, styles.Muted.Render("Export cancelled"))
		return errExportCancelled
	}
}
