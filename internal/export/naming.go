package export

import (
	"fmt"
	"strings"

	"github.com/ellipszist/texport/internal/assets"
	"github.com/ellipszist/texport/internal/pathutil"
)

// SuggestedName returns "{sanitizedName}-{memberFileName}-{pathID}" for an asset.
func SuggestedName(a *assets.Asset) string {
	return fmt.Sprintf("%s-%s-%d", pathutil.Sanitize(a.Record.Name), a.Member.FileName(), a.Record.PathID)
}

// FileName returns the output file name with a lowercased extension.
func FileName(a *assets.Asset, ext string) string {
	return SuggestedName(a) + "." + strings.ToLower(strings.TrimPrefix(ext, "."))
}
