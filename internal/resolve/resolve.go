// Package resolve locates the raw pixel payload of a texture record, whether it is
// stored inline or streamed from an external resource next to the archive member.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ellipszist/texport/internal/assets"
	"github.com/ellipszist/texport/internal/texture"
)

// Sentinel errors matched with errors.Is against a *ResourceError.
var (
	ErrBundleResourceMissing = errors.New("streamed resource not found in bundle")
	ErrDiskResourceMissing   = errors.New("streamed resource not found on disk")
)

// Kind classifies a resolve failure.
type Kind int

const (
	BundleResourceMissing Kind = iota + 1
	DiskResourceMissing
)

func (k Kind) String() string {
	switch k {
	case BundleResourceMissing:
		return "bundle_resource_missing"
	case DiskResourceMissing:
		return "disk_resource_missing"
	default:
		return "unknown"
	}
}

// ResourceError reports a streamed resource that could not be read.
type ResourceError struct {
	Kind Kind
	// Name is the resource's base file name, never the full descriptor path.
	Name string
	Err  error
}

func (e *ResourceError) Error() string {
	where := "on disk"
	if e.Kind == BundleResourceMissing {
		where = "in bundle"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s was not found %s; %v", e.Name, where, e.Err)
	}
	return fmt.Sprintf("%s was not found %s", e.Name, where)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind.
func (e *ResourceError) Is(target error) bool {
	switch target {
	case ErrBundleResourceMissing:
		return e.Kind == BundleResourceMissing
	case ErrDiskResourceMissing:
		return e.Kind == DiskResourceMissing
	}
	return false
}

// Finder locates a sibling resource for an archive member.
type Finder func(name string, member *assets.Member) (assets.Resource, error)

// Resolver fetches texture payloads.
type Resolver struct {
	find   Finder
	logger *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithFinder replaces the sibling lookup.
func WithFinder(f Finder) Option {
	return func(r *Resolver) {
		r.find = f
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// New creates a Resolver that looks up resources with assets.FindSiblingResource.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		find:   assets.FindSiblingResource,
		logger: slog.Default().With("component", "resolver"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the raw payload bytes of rec. Inline payloads are returned as-is;
// streamed payloads are read from the {offset, size} slice of the sibling resource.
// Neither rec nor member is modified.
func (r *Resolver) Resolve(ctx context.Context, rec *texture.Record, member *assets.Member) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !rec.IsStreamed() {
		return rec.ImageData, nil
	}

	name := rec.StreamData.ResourceName()
	bundled := member != nil && member.InBundle()

	res, err := r.find(name, member)
	if err != nil {
		if bundled && errors.Is(err, assets.ErrResourceNotFound) {
			return nil, &ResourceError{Kind: BundleResourceMissing, Name: name, Err: err}
		}
		return nil, &ResourceError{Kind: DiskResourceMissing, Name: name, Err: err}
	}
	defer res.Close()

	data, err := readSlice(res, rec.StreamData.Offset, rec.StreamData.Size)
	if err != nil {
		return nil, &ResourceError{Kind: DiskResourceMissing, Name: name, Err: err}
	}

	r.logger.Debug("resolved streamed payload",
		"resource", name,
		"bundled", bundled,
		"offset", rec.StreamData.Offset,
		"size", rec.StreamData.Size)

	return data, nil
}

// readSlice reads exactly size bytes at offset.
func readSlice(res assets.Resource, offset uint64, size uint32) ([]byte, error) {
	end := offset + uint64(size)
	if end < offset || end > uint64(res.Size()) {
		return nil, fmt.Errorf("range %d+%d exceeds resource size %d", offset, size, res.Size())
	}
	buf := make([]byte, size)
	n, err := res.ReadAt(buf, int64(offset))
	if n == len(buf) {
		return buf, nil
	}
	if err == nil {
		err = io.ErrUnexpectedEOF
	}
	return nil, fmt.Errorf("failed to read resource slice; %w", err)
}
