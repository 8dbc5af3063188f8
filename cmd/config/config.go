// Package config provides the config parent command and subcommands.
package config

import (
	"github.com/spf13/cobra"

	"github.com/ellipszist/texport/cmd/config/subcommands"
)

// ConfigCmd is the parent command for all config-related subcommands.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage texport configuration",
	Long: "Manage texport configuration.\n\n" +
		"Configuration is stored in a YAML file located at ~/.config/texport/config.yaml " +
		"by default. Set TEXPORT_CONFIG_DIR to use another directory. Every setting can " +
		"also be overridden with a TEXPORT_ environment variable, e.g. TEXPORT_EXPORT_DEFAULT_CONTAINER.",
}

func init() {
	ConfigCmd.AddCommand(subcommands.ShowCmd)
	ConfigCmd.AddCommand(subcommands.ValidateCmd)
	ConfigCmd.AddCommand(subcommands.InitCmd)
}
