package codec

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"

	"github.com/ellipszist/texport/internal/texture"
)

// pixelLayout describes an uncompressed format: bytes per pixel and how to
// turn one pixel into a color.
type pixelLayout struct {
	bpp    int
	decode func(p []byte) color.NRGBA
}

func expand4(v uint16) uint8 { return uint8(v&0xf) * 17 }

var layouts = map[texture.Format]pixelLayout{
	texture.Alpha8: {1, func(p []byte) color.NRGBA {
		return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: p[0]}
	}},
	texture.R8: {1, func(p []byte) color.NRGBA {
		return color.NRGBA{R: p[0], A: 0xff}
	}},
	texture.R16: {2, func(p []byte) color.NRGBA {
		return color.NRGBA{R: uint8(binary.LittleEndian.Uint16(p) >> 8), A: 0xff}
	}},
	texture.RG16: {2, func(p []byte) color.NRGBA {
		return color.NRGBA{R: p[0], G: p[1], A: 0xff}
	}},
	texture.ARGB4444: {2, func(p []byte) color.NRGBA {
		v := binary.LittleEndian.Uint16(p)
		return color.NRGBA{R: expand4(v >> 8), G: expand4(v >> 4), B: expand4(v), A: expand4(v >> 12)}
	}},
	texture.RGBA4444: {2, func(p []byte) color.NRGBA {
		v := binary.LittleEndian.Uint16(p)
		return color.NRGBA{R: expand4(v >> 12), G: expand4(v >> 8), B: expand4(v >> 4), A: expand4(v)}
	}},
	texture.RGB565: {2, func(p []byte) color.NRGBA {
		v := binary.LittleEndian.Uint16(p)
		r := uint8((v >> 11) & 0x1f)
		g := uint8((v >> 5) & 0x3f)
		b := uint8(v & 0x1f)
		return color.NRGBA{R: r<<3 | r>>2, G: g<<2 | g>>4, B: b<<3 | b>>2, A: 0xff}
	}},
	texture.RGB24: {3, func(p []byte) color.NRGBA {
		return color.NRGBA{R: p[0], G: p[1], B: p[2], A: 0xff}
	}},
	texture.BGR24: {3, func(p []byte) color.NRGBA {
		return color.NRGBA{R: p[2], G: p[1], B: p[0], A: 0xff}
	}},
	texture.RGBA32: {4, func(p []byte) color.NRGBA {
		return color.NRGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
	}},
	texture.ARGB32: {4, func(p []byte) color.NRGBA {
		return color.NRGBA{R: p[1], G: p[2], B: p[3], A: p[0]}
	}},
	texture.BGRA32: {4, func(p []byte) color.NRGBA {
		return color.NRGBA{R: p[2], G: p[1], B: p[0], A: p[3]}
	}},
	texture.RG32: {4, func(p []byte) color.NRGBA {
		return color.NRGBA{R: p[1], G: p[3], A: 0xff}
	}},
	texture.RGB48: {6, func(p []byte) color.NRGBA {
		return color.NRGBA{R: p[1], G: p[3], B: p[5], A: 0xff}
	}},
	texture.RGBA64: {8, func(p []byte) color.NRGBA {
		return color.NRGBA{R: p[1], G: p[3], B: p[5], A: p[7]}
	}},
}

// Decodable reports whether the bundled codec can decode f.
func Decodable(f texture.Format) bool {
	_, ok := layouts[f]
	return ok
}

// decodePixels converts a raw payload into an image. Payloads are stored
// bottom-up, so the first row of data becomes the last row of the image.
func decodePixels(data []byte, width, height int, f texture.Format) (*image.NRGBA, error) {
	layout, ok := layouts[f]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
	if width <= 0 || height <= 0 || !texture.ValidDimensions(width, height) {
		return nil, fmt.Errorf("%w: invalid dimensions %dx%d", ErrInvalidPayload, width, height)
	}

	// Both dimensions are bounded by MaxDimension, so need fits in int64.
	need := int64(width) * int64(height) * int64(layout.bpp)
	if int64(len(data)) < need {
		return nil, fmt.Errorf("%w: need %d bytes for %dx%d %s, have %d",
			ErrInvalidPayload, need, width, height, f, len(data))
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		src := data[y*width*layout.bpp:]
		dstY := height - 1 - y
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, dstY, layout.decode(src[x*layout.bpp:]))
		}
	}
	return img, nil
}
