package export

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/ellipszist/texport/internal/codec"
	"github.com/ellipszist/texport/internal/texture"
)

// Status is the tag of an Outcome.
type Status int

const (
	StatusSuccess Status = iota + 1
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Reason explains a Skipped or Failed outcome.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonDegenerate
	ReasonBundleResourceMissing
	ReasonDiskResourceMissing
	ReasonDecodeFailure
	ReasonDataUnreadable
	ReasonDestinationExists
	ReasonWriteFailure
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonDegenerate:
		return "degenerate"
	case ReasonBundleResourceMissing:
		return "bundle_resource_missing"
	case ReasonDiskResourceMissing:
		return "disk_resource_missing"
	case ReasonDecodeFailure:
		return "decode_failure"
	case ReasonDataUnreadable:
		return "data_unreadable"
	case ReasonDestinationExists:
		return "destination_exists"
	case ReasonWriteFailure:
		return "write_failure"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (r Reason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// DegenerateMessage is shown when a single 0x0 texture is exported.
const DegenerateMessage = "Texture size is 0x0. Texture cannot be exported."

// Outcome is the result of exporting one texture.
type Outcome struct {
	Status Status `json:"status" yaml:"status"`
	Reason Reason `json:"reason,omitempty" yaml:"reason,omitempty"`

	// Identity is "{memberFileName}/{pathID}".
	Identity string `json:"identity" yaml:"identity"`
	Name     string `json:"name" yaml:"name"`

	// Path is the written file for successes and the intended destination otherwise.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	Format texture.Format `json:"format" yaml:"format"`

	// Resource is the streamed resource base name for resource failures.
	Resource string `json:"resource,omitempty" yaml:"resource,omitempty"`

	Bytes  int64  `json:"bytes,omitempty" yaml:"bytes,omitempty"`
	SHA256 string `json:"sha256,omitempty" yaml:"sha256,omitempty"`

	Duration time.Duration `json:"duration" yaml:"duration"`

	// Err is the underlying error. It is logged, never shown to the user.
	Err error `json:"-" yaml:"-"`
}

// OK reports whether the outcome is not a failure.
func (o Outcome) OK() bool {
	return o.Status != StatusFailed
}

// ReasonText returns the user-facing explanation of a failure.
func (o Outcome) ReasonText() string {
	switch o.Reason {
	case ReasonDegenerate:
		return DegenerateMessage
	case ReasonBundleResourceMissing:
		return fmt.Sprintf("resS was detected but %s was not found in bundle", o.Resource)
	case ReasonDiskResourceMissing:
		return fmt.Sprintf("resS was detected but %s was not found on disk", o.Resource)
	case ReasonDecodeFailure:
		return fmt.Sprintf("Failed to decode texture format %s", o.Format)
	case ReasonDataUnreadable:
		return "could not read texture data"
	case ReasonDestinationExists:
		return fmt.Sprintf("%s already exists", filepath.Base(o.Path))
	case ReasonWriteFailure:
		return fmt.Sprintf("Failed to write %s", filepath.Base(o.Path))
	default:
		return ""
	}
}

// Message returns the diagnostic line "[{identity}]: {reason}".
func (o Outcome) Message() string {
	return fmt.Sprintf("[%s]: %s", o.Identity, o.ReasonText())
}

// Report is the ordered list of outcomes of a batch export.
type Report struct {
	ID          string          `json:"id" yaml:"id"`
	Dir         string          `json:"dir" yaml:"dir"`
	Container   codec.Container `json:"container" yaml:"container"`
	StartedAt   time.Time       `json:"started_at" yaml:"started_at"`
	FinishedAt  time.Time       `json:"finished_at" yaml:"finished_at"`
	Interrupted bool            `json:"interrupted,omitempty" yaml:"interrupted,omitempty"`
	Outcomes    []Outcome       `json:"outcomes" yaml:"outcomes"`
}

// Add appends an outcome.
func (r *Report) Add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
}

// Count returns the number of outcomes with the given status.
func (r *Report) Count(s Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == s {
			n++
		}
	}
	return n
}

// Failures returns the failed outcomes in input order.
func (r *Report) Failures() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed {
			failed = append(failed, o)
		}
	}
	return failed
}

// Duration returns the wall time of the batch.
func (r *Report) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
