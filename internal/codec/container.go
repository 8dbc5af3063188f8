package codec

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Container is an output image file format.
type Container string

const (
	PNG  Container = "png"
	TGA  Container = "tga"
	BMP  Container = "bmp"
	TIFF Container = "tiff"
)

// Containers lists the supported containers in presentation order.
func Containers() []Container {
	return []Container{PNG, TGA, BMP, TIFF}
}

// Extension returns the lowercase file extension without a dot.
func (c Container) Extension() string {
	return string(c)
}

// Label returns a human-readable name, e.g. "PNG file".
func (c Container) Label() string {
	return strings.ToUpper(string(c)) + " file"
}

// ParseContainer accepts a container name or extension, case-insensitive,
// with or without a leading dot.
func ParseContainer(s string) (Container, error) {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".")
	switch s {
	case "png":
		return PNG, nil
	case "tga":
		return TGA, nil
	case "bmp":
		return BMP, nil
	case "tif", "tiff":
		return TIFF, nil
	case "":
		return "", fmt.Errorf("empty container")
	default:
		return "", fmt.Errorf("unsupported container %q; must be one of: png, tga, bmp, tiff", s)
	}
}

// ContainerFromPath derives the container from a file path's extension,
// falling back to def when the extension is absent or unknown.
func ContainerFromPath(path string, def Container) Container {
	idx := strings.LastIndex(path, ".")
	if idx < 0 || strings.ContainsAny(path[idx:], `/\`) {
		return def
	}
	c, err := ParseContainer(path[idx+1:])
	if err != nil {
		return def
	}
	return c
}

// encodeImage writes img to w in the given container.
func encodeImage(w io.Writer, img image.Image, c Container) error {
	switch c {
	case PNG:
		return png.Encode(w, img)
	case TGA:
		return tga.Encode(w, img)
	case BMP:
		return bmp.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unsupported container %q", c)
	}
}
