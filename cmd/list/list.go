// Package list implements the list command for displaying the textures of a manifest.
package list

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ellipszist/texport/internal/assets"
	"github.com/ellipszist/texport/internal/codec"
	"github.com/ellipszist/texport/internal/export"
	"github.com/ellipszist/texport/internal/manifest"
)

// Flag variables for the list command.
var (
	listVerbose bool
)

// ListCmd lists the textures of a manifest.
var ListCmd = &cobra.Command{
	Use:   "list <manifest>",
	Short: "List the textures of a manifest",
	Long: "List the textures described by a manifest.\n\n" +
		"The ID column is what --select of the export command accepts. Use --verbose " +
		"to show where each payload comes from and the suggested export name.",
	Example: `  # List textures
  texport list scene.yaml

  # Include payload source and suggested file name
  texport list scene.yaml --verbose`,
	Args:    cobra.ExactArgs(1),
	PreRunE: validateList,
	RunE:    runList,
}

func init() {
	ListCmd.Flags().BoolVarP(&listVerbose, "verbose", "v", false,
		"Show payload source and suggested file name")
}

func validateList(cmd *cobra.Command, args []string) error {
	// All validation passed - errors after this are runtime errors
	cmd.SilenceUsage = true
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	m, err := manifest.Load(args[0])
	if err != nil {
		return err
	}

	if len(m.Assets) == 0 {
		fmt.Fprintln(out, "Manifest contains no textures.")
		return nil
	}

	fmt.Fprintf(out, "Textures (%d):\n\n", len(m.Assets))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if listVerbose {
		fmt.Fprintln(w, "ID\tNAME\tSIZE\tFORMAT\tDECODABLE\tSOURCE\tSUGGESTED NAME")
	} else {
		fmt.Fprintln(w, "ID\tNAME\tSIZE\tFORMAT")
	}
	for _, a := range m.Assets {
		printRow(w, a)
	}
	return w.Flush()
}

func printRow(w io.Writer, a *assets.Asset) {
	rec := a.Record
	size := fmt.Sprintf("%dx%d", rec.Width, rec.Height)

	if !listVerbose {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.Identity(), rec.Name, size, rec.Format)
		return
	}

	decodable := "no"
	if codec.Decodable(rec.Format) {
		decodable = "yes"
	}
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		a.Identity(), rec.Name, size, rec.Format, decodable, source(a), export.SuggestedName(a))
}

// source describes where the payload of a comes from.
func source(a *assets.Asset) string {
	switch {
	case a.Record.IsStreamed():
		where := "disk"
		if a.Member.InBundle() {
			where = "bundle"
		}
		return fmt.Sprintf("%s (%s)", a.Record.StreamData.ResourceName(), where)
	case a.DataFile != "":
		return "file"
	default:
		return "inline"
	}
}
