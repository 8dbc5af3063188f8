package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ellipszist/texport/cmd/config"
	"github.com/ellipszist/texport/cmd/export"
	"github.com/ellipszist/texport/cmd/formats"
	"github.com/ellipszist/texport/cmd/list"
	"github.com/ellipszist/texport/cmd/version"
	internalconfig "github.com/ellipszist/texport/internal/config"
	"github.com/ellipszist/texport/internal/logging"
)

// logManager is the global logging manager, created in init() and upgraded after config loads
var logManager *logging.Manager

var texportCmd = &cobra.Command{
	Use:   "texport",
	Short: "Export textures from game asset archives to image files",
	Long: "Texport exports Texture2D assets described by an archive manifest to PNG, TGA, BMP or TIFF files.\n\n" +
		"A single selected texture is written to one file. Selecting several textures runs a batch export " +
		"that continues past failures and reports the first errors at the end. " +
		"Payloads streamed into external resource files are read from the owning bundle or from disk next to the serialized file.",
	PersistentPreRunE: runInitialize,
}

func init() {
	logManager = logging.NewManager()
	slog.SetDefault(logManager.Logger())

	texportCmd.AddCommand(export.ExportCmd)
	texportCmd.AddCommand(list.ListCmd)
	texportCmd.AddCommand(formats.FormatsCmd)
	texportCmd.AddCommand(config.ConfigCmd)
	texportCmd.AddCommand(version.VersionCmd)
}

func runInitialize(cmd *cobra.Command, args []string) error {
	logger := logManager.Logger()

	if err := internalconfig.Init(); err != nil {
		return err
	}

	logFile := internalconfig.GetPath("log_file")
	levelStr := internalconfig.GetString("log_level")
	level, ok := logging.ParseLevel(levelStr)
	if !ok && levelStr != "" {
		logger.Warn("invalid log level configured, using default", "configured", levelStr, "default", logging.DefaultLevel.String())
	}

	if err := logManager.Upgrade(logFile, level); err != nil {
		logger.Warn("failed to enable file logging, continuing with stderr only", "error", err)
	}

	return nil
}

// Execute runs the root command.
func Execute() error {
	texportCmd.SilenceErrors = true
	texportCmd.SilenceUsage = true

	defer func() { _ = logManager.Close() }()

	err := texportCmd.Execute()
	if err != nil {
		cmd, _, _ := texportCmd.Find(os.Args[1:])
		if cmd == nil {
			cmd = texportCmd
		}

		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if !cmd.SilenceUsage {
			fmt.Fprintln(os.Stderr)
			cmd.SetOut(os.Stderr)
			_ = cmd.Usage()
		}

		return err
	}

	return nil
}
