package subcommands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ellipszist/texport/internal/config"
	"github.com/ellipszist/texport/internal/fsutil"
)

var (
	initForce bool
)

// InitCmd writes a configuration file with default values.
var InitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: "Write a default configuration file.\n\n" +
		"Creates config.yaml in the configuration directory with every setting at its " +
		"default value. An existing file is left alone unless --force is given.",
	Example: `  # Create the default configuration
  texport config init

  # Replace an existing configuration
  texport config init --force`,
	Args:    cobra.NoArgs,
	PreRunE: validateInit,
	RunE:    runInit,
}

func init() {
	InitCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing configuration file")
}

func validateInit(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	return nil
}

func runInit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	path := config.InitPath()

	cfg := config.NewDefaultConfig()
	if err := config.WriteDefault(&cfg, initForce); err != nil {
		if errors.Is(err, fsutil.ErrExists) {
			fmt.Fprintf(out, "Configuration already exists: %s\n", path)
			fmt.Fprintln(out, "Use --force to overwrite it.")
			return nil
		}
		return err
	}

	fmt.Fprintf(out, "Configuration written: %s\n", path)
	return nil
}
