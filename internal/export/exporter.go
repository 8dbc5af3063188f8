// Package export runs textures through resolve, decode and write, one at a time
// or as a batch that continues past per-item failures.
package export

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/ellipszist/texport/internal/assets"
	"github.com/ellipszist/texport/internal/codec"
	"github.com/ellipszist/texport/internal/fsutil"
	"github.com/ellipszist/texport/internal/resolve"
	"github.com/ellipszist/texport/internal/texture"
)

// Resolver fetches the raw payload of a texture.
type Resolver interface {
	Resolve(ctx context.Context, rec *texture.Record, member *assets.Member) ([]byte, error)
}

// Observer is notified of every outcome, e.g. to record metrics.
type Observer interface {
	Observe(o Outcome)
}

// Exporter exports textures to image files.
type Exporter struct {
	resolver Resolver
	encoder  codec.Encoder
	observer Observer
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithResolver replaces the payload resolver.
func WithResolver(r Resolver) Option {
	return func(e *Exporter) {
		e.resolver = r
	}
}

// WithObserver registers an outcome observer.
func WithObserver(o Observer) Option {
	return func(e *Exporter) {
		e.observer = o
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Exporter) {
		e.logger = logger
	}
}

// NewExporter creates an exporter writing through encoder.
func NewExporter(encoder codec.Encoder, opts ...Option) *Exporter {
	e := &Exporter{
		resolver: resolve.New(),
		encoder:  encoder,
		logger:   slog.Default().With("component", "export"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExportOne exports a single texture to dest. The asset's payload must already be
// materialized. It never panics or returns an error; every failure is an Outcome.
func (e *Exporter) ExportOne(ctx context.Context, a *assets.Asset, dest string, container codec.Container) Outcome {
	start := e.now()
	out := e.exportOne(ctx, a, dest, container)
	out.Duration = e.now().Sub(start)

	if e.observer != nil {
		e.observer.Observe(out)
	}
	return out
}

func (e *Exporter) exportOne(ctx context.Context, a *assets.Asset, dest string, container codec.Container) Outcome {
	rec := &a.Record
	out := Outcome{
		Identity: a.Identity(),
		Name:     rec.Name,
		Path:     dest,
		Format:   rec.Format,
	}

	if rec.IsDegenerate() {
		e.logger.Debug("skipping 0x0 texture", "asset", out.Identity, "name", rec.Name)
		out.Status = StatusSkipped
		out.Reason = ReasonDegenerate
		return out
	}

	if a.Member == nil {
		out.Status = StatusFailed
		out.Reason = ReasonDataUnreadable
		out.Err = assets.ErrNoMember
		e.logger.Warn("texture has no owning member", "asset", out.Identity)
		return out
	}

	data, err := e.resolver.Resolve(ctx, rec, a.Member)
	if err != nil {
		out.Status = StatusFailed
		out.Err = err
		out.Resource = rec.StreamData.ResourceName()

		var resErr *resolve.ResourceError
		switch {
		case errors.As(err, &resErr) && resErr.Kind == resolve.BundleResourceMissing:
			out.Reason = ReasonBundleResourceMissing
		case errors.As(err, &resErr):
			out.Reason = ReasonDiskResourceMissing
		default:
			out.Reason = ReasonDataUnreadable
		}
		e.logger.Warn("failed to resolve texture payload",
			"asset", out.Identity,
			"resource", out.Resource,
			"error", err)
		return out
	}

	res, err := e.encoder.Encode(ctx, codec.Request{
		Data:         data,
		Width:        rec.Width,
		Height:       rec.Height,
		Format:       rec.Format,
		Platform:     a.Member.TargetPlatform,
		PlatformBlob: rec.PlatformBlob,
		Path:         dest,
		Container:    container,
	})
	if err != nil {
		out.Status = StatusFailed
		out.Reason = encodeReason(err)
		out.Err = err
		e.logger.Warn("failed to export texture",
			"asset", out.Identity,
			"format", rec.Format.String(),
			"reason", out.Reason.String(),
			"error", err)
		return out
	}

	out.Status = StatusSuccess
	if res != nil {
		out.Path = res.Path
		out.Bytes = res.Bytes
		out.SHA256 = res.SHA256
	}
	e.logger.Debug("texture exported", "asset", out.Identity, "path", out.Path)
	return out
}

// encodeReason classifies an encoder error. Anything that is not a
// filesystem failure counts as a decode failure.
func encodeReason(err error) Reason {
	switch {
	case errors.Is(err, fsutil.ErrExists):
		return ReasonDestinationExists
	case errors.Is(err, codec.ErrWriteFailed):
		return ReasonWriteFailure
	default:
		return ReasonDecodeFailure
	}
}

// ExportBatch exports every asset in order into dir, continuing past skipped and
// failed items. Each asset is materialized just before it is exported. The loop
// only stops early when ctx is cancelled, which marks the report interrupted.
func (e *Exporter) ExportBatch(ctx context.Context, items []*assets.Asset, dir string, container codec.Container) *Report {
	report := &Report{
		ID:        uuid.NewString(),
		Dir:       dir,
		Container: container,
		StartedAt: e.now(),
		Outcomes:  make([]Outcome, 0, len(items)),
	}
	logger := e.logger.With("batch", report.ID)
	logger.Info("batch export started", "count", len(items), "dir", dir, "container", string(container))

	for _, a := range items {
		if err := ctx.Err(); err != nil {
			report.Interrupted = true
			logger.Warn("batch export interrupted", "done", len(report.Outcomes), "error", err)
			break
		}

		dest := filepath.Join(dir, FileName(a, container.Extension()))

		if a.Record.IsDegenerate() {
			report.Add(e.ExportOne(ctx, a, dest, container))
			continue
		}

		if err := a.Materialize(); err != nil {
			out := Outcome{
				Status:   StatusFailed,
				Reason:   ReasonDataUnreadable,
				Identity: a.Identity(),
				Name:     a.Record.Name,
				Path:     dest,
				Format:   a.Record.Format,
				Err:      err,
			}
			logger.Warn("failed to materialize texture data", "asset", out.Identity, "error", err)
			if e.observer != nil {
				e.observer.Observe(out)
			}
			report.Add(out)
			continue
		}

		report.Add(e.ExportOne(ctx, a, dest, container))
	}

	report.FinishedAt = e.now()
	logger.Info("batch export finished",
		"succeeded", report.Count(StatusSuccess),
		"skipped", report.Count(StatusSkipped),
		"failed", report.Count(StatusFailed),
		"duration", report.Duration())

	return report
}
