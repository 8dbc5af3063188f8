package formatters

import (
	"bytes"
	"fmt"

	"github.com/ellipszist/texport/internal/export"
)

// TextFormatter formats reports as compact line-oriented text.
//
// Format:
//
//	@report id=... dir=... container=png
//	ok   sharedassets0.assets/1 -> out/icon-sharedassets0.assets-1.png
//	skip sharedassets0.assets/2 Texture size is 0x0. Texture cannot be exported.
//	fail sharedassets0.assets/3 Failed to decode texture format DXT1
//	@stats ok=1 skip=1 fail=1 ms=12
type TextFormatter struct{}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Name returns the formatter name.
func (f *TextFormatter) Name() string {
	return "text"
}

// ContentType returns the MIME content type.
func (f *TextFormatter) ContentType() string {
	return "text/plain"
}

// FileExtension returns the typical file extension.
func (f *TextFormatter) FileExtension() string {
	return ".txt"
}

// Format converts the report to text.
func (f *TextFormatter) Format(report *export.Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "@report id=%s dir=%s container=%s\n", report.ID, report.Dir, report.Container)

	for _, o := range report.Outcomes {
		switch o.Status {
		case export.StatusSuccess:
			fmt.Fprintf(&buf, "ok   %s -> %s\n", o.Identity, o.Path)
		case export.StatusSkipped:
			fmt.Fprintf(&buf, "skip %s %s\n", o.Identity, o.ReasonText())
		default:
			fmt.Fprintf(&buf, "fail %s %s\n", o.Identity, o.ReasonText())
		}
	}

	if report.Interrupted {
		buf.WriteString("@interrupted\n")
	}

	fmt.Fprintf(&buf, "@stats ok=%d skip=%d fail=%d ms=%d\n",
		report.Count(export.StatusSuccess),
		report.Count(export.StatusSkipped),
		report.Count(export.StatusFailed),
		report.Duration().Milliseconds())

	return buf.Bytes(), nil
}
