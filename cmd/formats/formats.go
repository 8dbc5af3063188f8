// Package formats implements the formats command.
package formats

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ellipszist/texport/internal/codec"
	"github.com/ellipszist/texport/internal/fsutil"
	"github.com/ellipszist/texport/internal/texture"
)

var formatsAll bool

// FormatsCmd lists output containers and texture formats.
var FormatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported image and texture formats",
	Long: "List supported image and texture formats.\n\n" +
		"Shows the image containers textures can be written to, and the texture pixel " +
		"formats the bundled codec can decode. Use --all to include formats that are " +
		"recognized in manifests but cannot be decoded.",
	Example: `  # List decodable formats
  texport formats

  # Include every recognized texture format
  texport formats --all`,
	Args:    cobra.NoArgs,
	PreRunE: validateFormats,
	RunE:    runFormats,
}

func init() {
	FormatsCmd.Flags().BoolVar(&formatsAll, "all", false, "Include texture formats that cannot be decoded")
}

func validateFormats(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	return nil
}

func runFormats(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Image containers:")
	fmt.Fprintln(out)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tEXTENSION\tMIME TYPE")
	for _, c := range codec.Containers() {
		fmt.Fprintf(w, "%s\t.%s\t%s\n", c.Label(), c.Extension(), fsutil.MIMEFromExtension(c.Extension()))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Texture formats:")
	fmt.Fprintln(out)
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FORMAT\tID\tDECODABLE")
	for _, f := range texture.Formats() {
		decodable := codec.Decodable(f)
		if !decodable && !formatsAll {
			continue
		}
		mark := "no"
		if decodable {
			mark = "yes"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", f, int32(f), mark)
	}
	return w.Flush()
}
