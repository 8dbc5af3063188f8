package fsutil

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrExists is returned by WriteFileAtomic when the destination exists and
// overwriting was not requested.
var ErrExists = errors.New("destination already exists")

// WriteOptions configures WriteFileAtomic.
type WriteOptions struct {
	// Perm is applied to the destination file. Zero means 0644.
	Perm os.FileMode

	// Overwrite allows replacing an existing destination.
	Overwrite bool
}

// WriteFileAtomic streams the output of write into a temporary file in the
// destination directory and renames it over path once write succeeds. If write
// or any filesystem step fails the temporary file is removed and path is left
// untouched. Missing parent directories are created.
func WriteFileAtomic(path string, opts WriteOptions, write func(w io.Writer) error) (int64, error) {
	perm := opts.Perm
	if perm == 0 {
		perm = 0644
	}

	if !opts.Overwrite {
		if _, err := os.Stat(path); err == nil {
			return 0, fmt.Errorf("%s; %w", path, ErrExists)
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create directory %q; %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".texport-*")
	if err != nil {
		return 0, fmt.Errorf("failed to create temp file; %w", err)
	}
	tmpPath := tmp.Name()

	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	counter := &countingWriter{}
	bw := bufio.NewWriterSize(io.MultiWriter(tmp, counter), 64*1024)
	if err := write(bw); err != nil {
		cleanup()
		return 0, err
	}
	if err := bw.Flush(); err != nil {
		cleanup()
		return 0, fmt.Errorf("failed to flush %q; %w", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return 0, fmt.Errorf("failed to sync %q; %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return 0, fmt.Errorf("failed to close %q; %w", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		_ = os.Remove(tmpPath)
		return 0, fmt.Errorf("failed to set permissions on %q; %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return 0, fmt.Errorf("failed to move output into place; %w", err)
	}

	return counter.n, nil
}

type countingWriter struct {
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	c.n += int64(len(p))
	return len(p), nil
}

// HashFile computes the SHA-256 hash of a file's contents.
func HashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %q; %w", path, err)
	}
	defer file.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", fmt.Errorf("failed to read %q; %w", path, err)
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}

// MIMEFromExtension returns the MIME type for an image container extension.
// The extension may be provided with or without a leading dot.
func MIMEFromExtension(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	switch ext {
	case ".png":
		return "image/png"
	case ".tga":
		return "image/x-tga"
	case ".bmp":
		return "image/bmp"
	case ".tif", ".tiff":
		return "image/tiff"
	default:
		return "application/octet-stream"
	}
}
