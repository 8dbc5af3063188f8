// Package codec turns raw texture payloads into image files.
//
// The Encoder interface is the boundary between the export pipeline and pixel
// decoding. ImageCodec is the bundled implementation: it decodes uncompressed
// layouts and reports failure for block-compressed formats and for payloads
// that depend on platform swizzling.
package codec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ellipszist/texport/internal/fsutil"
	"github.com/ellipszist/texport/internal/texture"
)

var (
	// ErrUnsupportedFormat is returned for pixel formats the codec cannot decode.
	ErrUnsupportedFormat = errors.New("unsupported texture format")

	// ErrInvalidPayload is returned when the payload does not match the dimensions.
	ErrInvalidPayload = errors.New("invalid texture payload")

	// ErrWriteFailed wraps failures to write the decoded image to disk.
	ErrWriteFailed = errors.New("failed to write image")
)

// Request carries everything needed to decode one payload and write it out.
type Request struct {
	Data         []byte
	Width        int
	Height       int
	Format       texture.Format
	Platform     texture.Platform
	PlatformBlob []byte
	Path         string
	Container    Container
}

// Result describes a written file.
type Result struct {
	Path   string
	Bytes  int64
	SHA256 string
}

// Encoder decodes a payload and writes it to Request.Path. On error no file may
// be left at Request.Path.
type Encoder interface {
	Encode(ctx context.Context, req Request) (*Result, error)
}

// ImageCodec is the bundled Encoder.
type ImageCodec struct {
	overwrite bool
	logger    *slog.Logger
}

// Option configures an ImageCodec.
type Option func(*ImageCodec)

// WithOverwrite allows replacing existing destination files.
func WithOverwrite(overwrite bool) Option {
	return func(c *ImageCodec) {
		c.overwrite = overwrite
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *ImageCodec) {
		c.logger = logger
	}
}

// NewImageCodec creates the bundled codec. Existing files are overwritten by default.
func NewImageCodec(opts ...Option) *ImageCodec {
	c := &ImageCodec{
		overwrite: true,
		logger:    slog.Default().With("component", "codec"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ Encoder = (*ImageCodec)(nil)

// Encode decodes req.Data and writes it atomically to req.Path.
func (c *ImageCodec) Encode(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Switch payloads carrying a platform blob are block-swizzled.
	if req.Platform == texture.PlatformSwitch && len(req.PlatformBlob) > 0 {
		return nil, fmt.Errorf("%w: swizzled %s payload for %s", ErrUnsupportedFormat, req.Format, req.Platform)
	}

	img, err := decodePixels(req.Data, req.Width, req.Height, req.Format)
	if err != nil {
		return nil, err
	}

	n, err := fsutil.WriteFileAtomic(req.Path, fsutil.WriteOptions{Overwrite: c.overwrite}, func(w io.Writer) error {
		return encodeImage(w, img, req.Container)
	})
	if err != nil {
		return nil, fmt.Errorf("%w %s; %w", ErrWriteFailed, req.Container, err)
	}

	// The file is in place; a hashing failure only drops the digest.
	sum, err := fsutil.HashFile(req.Path)
	if err != nil {
		c.logger.Warn("failed to hash exported texture", "path", req.Path, "error", err)
	}

	c.logger.Debug("texture encoded",
		"path", req.Path,
		"format", req.Format.String(),
		"container", string(req.Container),
		"bytes", n)

	return &Result{Path: req.Path, Bytes: n, SHA256: sum}, nil
}
