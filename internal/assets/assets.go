// Package assets models archive members and the sibling resources their textures stream from.
package assets

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ellipszist/texport/internal/texture"
)

var (
	// ErrResourceNotFound is returned when a sibling resource cannot be located.
	ErrResourceNotFound = errors.New("resource not found")

	// ErrNoMember is returned for assets that have no owning member.
	ErrNoMember = errors.New("texture has no owning member")
)

// unknownMember stands in for the member name of an orphaned asset.
const unknownMember = "unknown"

// Resource is a byte-range readable handle on a sibling resource.
type Resource interface {
	io.ReaderAt
	io.Closer
	Size() int64
}

// Bundle is a container whose members are addressed by name.
type Bundle interface {
	// Name returns the bundle's display name.
	Name() string

	// Open returns the named entry, or ErrResourceNotFound.
	Open(name string) (Resource, error)
}

// Member is one serialized file inside an archive, the owner of texture records.
type Member struct {
	// Path is the member's file path. Only its base name is used for naming.
	Path string

	// TargetPlatform is the build target from the member's metadata.
	TargetPlatform texture.Platform

	// Bundle is set when the member is packed inside a container bundle.
	Bundle Bundle
}

// FileName returns the member's base file name, or "unknown" for a nil member.
func (m *Member) FileName() string {
	if m == nil {
		return unknownMember
	}
	return filepath.Base(m.Path)
}

// InBundle reports whether the member is packed inside a bundle.
func (m *Member) InBundle() bool {
	return m != nil && m.Bundle != nil
}

// Asset is one selected entry: a record together with its owning member.
type Asset struct {
	ClassID int
	Record  texture.Record

	// Member is the owning serialized file. A nil Member is tolerated by the
	// naming helpers, but such an asset cannot be exported.
	Member *Member

	// DataFile holds the inline payload when the parser left it on disk
	// instead of embedding it. Materialize loads it into Record.ImageData.
	DataFile string
}

// Identity returns the "{member}/{pathID}" form used in diagnostics.
func (a *Asset) Identity() string {
	return a.Member.FileName() + "/" + strconv.FormatInt(a.Record.PathID, 10)
}

// Materialize brings the inline payload into byte-array form.
// It is idempotent: once ImageData is populated the call does nothing.
func (a *Asset) Materialize() error {
	if len(a.Record.ImageData) > 0 || a.DataFile == "" {
		return nil
	}
	data, err := os.ReadFile(a.DataFile)
	if err != nil {
		return fmt.Errorf("failed to read texture data %q; %w", a.DataFile, err)
	}
	a.Record.ImageData = data
	return nil
}

// FindSiblingResource locates name next to member. Bundled members are looked up
// among the bundle's entries only; loose members are looked up in the directory
// holding the member file.
func FindSiblingResource(name string, member *Member) (Resource, error) {
	if member == nil {
		return nil, fmt.Errorf("no archive member for %q; %w", name, ErrResourceNotFound)
	}
	if member.InBundle() {
		return member.Bundle.Open(name)
	}
	return openDiskResource(filepath.Join(filepath.Dir(member.Path), name))
}

// fileResource is a Resource backed by an open file.
type fileResource struct {
	*os.File
	size int64
}

func (f *fileResource) Size() int64 { return f.size }

func openDiskResource(path string) (Resource, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s; %w", path, ErrResourceNotFound)
		}
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("%s is a directory; %w", path, ErrResourceNotFound)
	}
	return &fileResource{File: f, size: info.Size()}, nil
}

// bytesResource is a Resource over an in-memory buffer.
type bytesResource struct {
	*bytes.Reader
}

func (b bytesResource) Close() error { return nil }
