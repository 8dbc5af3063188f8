package codec

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/ellipszist/texport/internal/fsutil"
	"github.com/ellipszist/texport/internal/texture"
)

// rgba32 builds a 2x2 RGBA32 payload, bottom row first.
func rgba32() []byte {
	return []byte{
		255, 0, 0, 255, 0, 255, 0, 255, // bottom row: red, green
		0, 0, 255, 255, 255, 255, 255, 128, // top row: blue, translucent white
	}
}

func TestEncode_PNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tex.png")

	res, err := NewImageCodec().Encode(context.Background(), Request{
		Data:      rgba32(),
		Width:     2,
		Height:    2,
		Format:    texture.RGBA32,
		Path:      path,
		Container: PNG,
	})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if res.Path != path {
		t.Errorf("Path = %q, want %q", res.Path, path)
	}
	if res.Bytes <= 0 {
		t.Errorf("Bytes = %d, want > 0", res.Bytes)
	}

	hash, err := fsutil.HashFile(path)
	if err != nil {
		t.Fatalf("HashFile failed: %v", err)
	}
	if res.SHA256 != hash {
		t.Errorf("SHA256 = %q, want %q", res.SHA256, hash)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode failed: %v", err)
	}

	assertColor(t, img, 0, 0, color.NRGBA{0, 0, 255, 255})
	assertColor(t, img, 1, 0, color.NRGBA{255, 255, 255, 128})
	assertColor(t, img, 0, 1, color.NRGBA{255, 0, 0, 255})
	assertColor(t, img, 1, 1, color.NRGBA{0, 255, 0, 255})
}

func TestEncode_AllContainersDecodeBack(t *testing.T) {
	dir := t.TempDir()
	c := NewImageCodec()

	for _, container := range Containers() {
		t.Run(string(container), func(t *testing.T) {
			path := filepath.Join(dir, "tex."+container.Extension())
			_, err := c.Encode(context.Background(), Request{
				Data: rgba32(), Width: 2, Height: 2, Format: texture.RGBA32,
				Path: path, Container: container,
			})
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read failed: %v", err)
			}

			var img image.Image
			switch container {
			case PNG:
				img, err = png.Decode(bytes.NewReader(data))
			case TGA:
				img, err = tga.Decode(bytes.NewReader(data))
			case BMP:
				img, err = bmp.Decode(bytes.NewReader(data))
			case TIFF:
				img, err = tiff.Decode(bytes.NewReader(data))
			}
			if err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if got := img.Bounds(); got != image.Rect(0, 0, 2, 2) {
				t.Errorf("Bounds = %v, want 2x2", got)
			}
			r, g, b, _ := img.At(0, 1).RGBA()
			if r != 0xffff || g != 0 || b != 0 {
				t.Errorf("pixel (0,1) = %x,%x,%x, want red", r, g, b)
			}
		})
	}
}

func TestEncode_TGAKeepsAlpha(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tex.tga")

	_, err := NewImageCodec().Encode(context.Background(), Request{
		Data: rgba32(), Width: 2, Height: 2, Format: texture.RGBA32,
		Path: path, Container: TGA,
	})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer f.Close()
	img, err := tga.Decode(f)
	if err != nil {
		t.Fatalf("tga.Decode failed: %v", err)
	}

	assertColor(t, img, 0, 0, color.NRGBA{0, 0, 255, 255})
	assertColor(t, img, 1, 0, color.NRGBA{255, 255, 255, 128})
}

func TestEncode_UnsupportedFormatWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tex.png")

	_, err := NewImageCodec().Encode(context.Background(), Request{
		Data: make([]byte, 64), Width: 4, Height: 4, Format: texture.DXT5,
		Path: path, Container: PNG,
	})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("error = %v, want ErrUnsupportedFormat", err)
	}
	assertNotExist(t, path)
}

func TestEncode_ShortPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tex.png")

	_, err := NewImageCodec().Encode(context.Background(), Request{
		Data: []byte{1, 2, 3}, Width: 2, Height: 2, Format: texture.RGBA32,
		Path: path, Container: PNG,
	})
	if !errors.Is(err, ErrInvalidPayload) {
		t.Errorf("error = %v, want ErrInvalidPayload", err)
	}
	assertNotExist(t, path)
}

func TestEncode_OversizeDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"both huge", 1 << 31, 1 << 31},
		{"product overflows", 1 << 40, 1 << 40},
		{"width over limit", texture.MaxDimension + 1, 1},
		{"height over limit", 1, texture.MaxDimension + 1},
		{"negative", -4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tex.png")

			_, err := NewImageCodec().Encode(context.Background(), Request{
				Data: rgba32(), Width: tt.width, Height: tt.height, Format: texture.RGBA32,
				Path: path, Container: PNG,
			})
			if !errors.Is(err, ErrInvalidPayload) {
				t.Errorf("error = %v, want ErrInvalidPayload", err)
			}
			assertNotExist(t, path)
		})
	}
}

func TestEncode_SwitchSwizzleUnsupported(t *testing.T) {
	_, err := NewImageCodec().Encode(context.Background(), Request{
		Data: rgba32(), Width: 2, Height: 2, Format: texture.RGBA32,
		Platform: texture.PlatformSwitch, PlatformBlob: []byte{1, 0, 0, 0},
		Path: filepath.Join(t.TempDir(), "tex.png"), Container: PNG,
	})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestEncode_NoOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tex.png")
	if err := os.WriteFile(path, []byte("keep"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	_, err := NewImageCodec(WithOverwrite(false)).Encode(context.Background(), Request{
		Data: rgba32(), Width: 2, Height: 2, Format: texture.RGBA32,
		Path: path, Container: PNG,
	})
	if !errors.Is(err, fsutil.ErrExists) {
		t.Errorf("error = %v, want fsutil.ErrExists", err)
	}
	if !errors.Is(err, ErrWriteFailed) {
		t.Errorf("error = %v, want ErrWriteFailed", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "keep" {
		t.Errorf("existing file was replaced: %q", data)
	}
}

func TestEncode_UnwritableDestination(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	_, err := NewImageCodec().Encode(context.Background(), Request{
		Data: rgba32(), Width: 2, Height: 2, Format: texture.RGBA32,
		Path: filepath.Join(blocker, "tex.png"), Container: PNG,
	})
	if !errors.Is(err, ErrWriteFailed) {
		t.Errorf("error = %v, want ErrWriteFailed", err)
	}
	if errors.Is(err, ErrInvalidPayload) || errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("write failure classified as decode failure: %v", err)
	}
}

func TestDecodePixels_Layouts(t *testing.T) {
	tests := []struct {
		name   string
		format texture.Format
		pixel  []byte
		want   color.NRGBA
	}{
		{"Alpha8", texture.Alpha8, []byte{0x40}, color.NRGBA{255, 255, 255, 0x40}},
		{"R8", texture.R8, []byte{0x80}, color.NRGBA{0x80, 0, 0, 255}},
		{"R16", texture.R16, []byte{0x34, 0x12}, color.NRGBA{0x12, 0, 0, 255}},
		{"RG16", texture.RG16, []byte{1, 2}, color.NRGBA{1, 2, 0, 255}},
		{"ARGB4444", texture.ARGB4444, []byte{0x34, 0x12}, color.NRGBA{0x22, 0x33, 0x44, 0x11}},
		{"RGBA4444", texture.RGBA4444, []byte{0x34, 0x12}, color.NRGBA{0x11, 0x22, 0x33, 0x44}},
		{"RGB565 white", texture.RGB565, []byte{0xff, 0xff}, color.NRGBA{255, 255, 255, 255}},
		{"RGB565 red", texture.RGB565, []byte{0x00, 0xf8}, color.NRGBA{255, 0, 0, 255}},
		{"RGB24", texture.RGB24, []byte{1, 2, 3}, color.NRGBA{1, 2, 3, 255}},
		{"BGR24", texture.BGR24, []byte{1, 2, 3}, color.NRGBA{3, 2, 1, 255}},
		{"RGBA32", texture.RGBA32, []byte{1, 2, 3, 4}, color.NRGBA{1, 2, 3, 4}},
		{"ARGB32", texture.ARGB32, []byte{4, 1, 2, 3}, color.NRGBA{1, 2, 3, 4}},
		{"BGRA32", texture.BGRA32, []byte{3, 2, 1, 4}, color.NRGBA{1, 2, 3, 4}},
		{"RGBA64", texture.RGBA64, []byte{0, 1, 0, 2, 0, 3, 0, 4}, color.NRGBA{1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := decodePixels(tt.pixel, 1, 1, tt.format)
			if err != nil {
				t.Fatalf("decodePixels failed: %v", err)
			}
			if got := img.NRGBAAt(0, 0); got != tt.want {
				t.Errorf("pixel = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecodable(t *testing.T) {
	tests := []struct {
		format texture.Format
		want   bool
	}{
		{texture.RGBA32, true},
		{texture.Alpha8, true},
		{texture.DXT1, false},
		{texture.ASTC_RGBA_4x4, false},
	}

	for _, tt := range tests {
		if got := Decodable(tt.format); got != tt.want {
			t.Errorf("Decodable(%s) = %v, want %v", tt.format, got, tt.want)
		}
	}
}

func TestParseContainer(t *testing.T) {
	tests := []struct {
		input   string
		want    Container
		wantErr bool
	}{
		{"png", PNG, false},
		{"PNG", PNG, false},
		{".tga", TGA, false},
		{"bmp", BMP, false},
		{"tif", TIFF, false},
		{"tiff", TIFF, false},
		{"", "", true},
		{"jpg", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseContainer(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseContainer(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseContainer(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseContainer(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestContainerFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Container
	}{
		{"/out/icon.TGA", TGA},
		{"/out/icon", PNG},
		{"/out.d/icon", PNG},
		{"/out/icon.jpg", PNG},
		{"icon.bmp", BMP},
	}

	for _, tt := range tests {
		if got := ContainerFromPath(tt.path, PNG); got != tt.want {
			t.Errorf("ContainerFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestContainer_Label(t *testing.T) {
	if got := PNG.Label(); got != "PNG file" {
		t.Errorf("Label = %q, want %q", got, "PNG file")
	}
	if got := TGA.Extension(); got != "tga" {
		t.Errorf("Extension = %q, want %q", got, "tga")
	}
	want := []Container{PNG, TGA, BMP, TIFF}
	if got := Containers(); !reflect.DeepEqual(got, want) {
		t.Errorf("Containers = %v, want %v", got, want)
	}
}

func assertColor(t *testing.T, img image.Image, x, y int, want color.NRGBA) {
	t.Helper()
	got := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	if got != want {
		t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
	}
}

func assertNotExist(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("%s exists after failed encode", path)
	}
}
