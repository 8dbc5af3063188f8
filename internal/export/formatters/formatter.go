// Package formatters renders batch export reports for the --report flag.
package formatters

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ellipszist/texport/internal/export"
)

// Formatter formats a batch report into a specific output format.
type Formatter interface {
	// Format converts the report to the output format.
	Format(report *export.Report) ([]byte, error)

	// Name returns the formatter name.
	Name() string

	// ContentType returns the MIME content type.
	ContentType() string

	// FileExtension returns the typical file extension.
	FileExtension() string
}

// Names returns the registered formatter names.
func Names() []string {
	return []string{"json", "yaml", "xml", "text"}
}

// ForName returns the formatter registered under name.
func ForName(name string) (Formatter, error) {
	switch strings.ToLower(name) {
	case "json":
		return NewJSONFormatter(), nil
	case "yaml", "yml":
		return NewYAMLFormatter(), nil
	case "xml":
		return NewXMLFormatter(), nil
	case "text", "txt":
		return NewTextFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown report format %q; valid formats: %s", name, strings.Join(Names(), ", "))
	}
}

// ForPath picks a formatter from the extension of path, defaulting to JSON.
func ForPath(path string) Formatter {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if f, err := ForName(ext); err == nil {
		return f
	}
	return NewJSONFormatter()
}

const timeLayout = "2006-01-02T15:04:05Z"

// reportDoc is the serializable form of a report shared by the structured formatters.
type reportDoc struct {
	ID          string       `json:"id" yaml:"id" xml:"id,attr"`
	Dir         string       `json:"dir" yaml:"dir" xml:"dir,attr"`
	Container   string       `json:"container" yaml:"container" xml:"container,attr"`
	StartedAt   string       `json:"started_at" yaml:"started_at" xml:"started_at,attr"`
	FinishedAt  string       `json:"finished_at" yaml:"finished_at" xml:"finished_at,attr"`
	DurationMS  int64        `json:"duration_ms" yaml:"duration_ms" xml:"duration_ms,attr"`
	Interrupted bool         `json:"interrupted" yaml:"interrupted" xml:"interrupted,attr"`
	Totals      totalsDoc    `json:"totals" yaml:"totals" xml:"totals"`
	Outcomes    []outcomeDoc `json:"outcomes" yaml:"outcomes" xml:"outcomes>outcome"`
}

type totalsDoc struct {
	Succeeded int `json:"succeeded" yaml:"succeeded" xml:"succeeded,attr"`
	Skipped   int `json:"skipped" yaml:"skipped" xml:"skipped,attr"`
	Failed    int `json:"failed" yaml:"failed" xml:"failed,attr"`
}

type outcomeDoc struct {
	Identity   string `json:"identity" yaml:"identity" xml:"identity,attr"`
	Name       string `json:"name" yaml:"name" xml:"name,attr"`
	Status     string `json:"status" yaml:"status" xml:"status,attr"`
	Reason     string `json:"reason,omitempty" yaml:"reason,omitempty" xml:"reason,attr,omitempty"`
	Message    string `json:"message,omitempty" yaml:"message,omitempty" xml:"message,omitempty"`
	Format     string `json:"format" yaml:"format" xml:"format,attr"`
	Path       string `json:"path,omitempty" yaml:"path,omitempty" xml:"path,omitempty"`
	Bytes      int64  `json:"bytes,omitempty" yaml:"bytes,omitempty" xml:"bytes,attr,omitempty"`
	SHA256     string `json:"sha256,omitempty" yaml:"sha256,omitempty" xml:"sha256,omitempty"`
	DurationMS int64  `json:"duration_ms" yaml:"duration_ms" xml:"duration_ms,attr"`
}

func newReportDoc(report *export.Report) reportDoc {
	doc := reportDoc{
		ID:          report.ID,
		Dir:         report.Dir,
		Container:   string(report.Container),
		StartedAt:   formatTime(report.StartedAt),
		FinishedAt:  formatTime(report.FinishedAt),
		DurationMS:  report.Duration().Milliseconds(),
		Interrupted: report.Interrupted,
		Totals: totalsDoc{
			Succeeded: report.Count(export.StatusSuccess),
			Skipped:   report.Count(export.StatusSkipped),
			Failed:    report.Count(export.StatusFailed),
		},
		Outcomes: make([]outcomeDoc, 0, len(report.Outcomes)),
	}

	for _, o := range report.Outcomes {
		od := outcomeDoc{
			Identity:   o.Identity,
			Name:       o.Name,
			Status:     o.Status.String(),
			Format:     o.Format.String(),
			Path:       o.Path,
			Bytes:      o.Bytes,
			SHA256:     o.SHA256,
			DurationMS: o.Duration.Milliseconds(),
		}
		if o.Reason != export.ReasonNone {
			od.Reason = o.Reason.String()
			od.Message = o.ReasonText()
		}
		doc.Outcomes = append(doc.Outcomes, od)
	}
	return doc
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}
