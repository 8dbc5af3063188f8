package texture

import (
	"fmt"
	"strconv"
	"strings"
)

// Format identifies the pixel encoding of a texture payload.
// Values follow the TextureFormat numbering used by serialized Texture2D assets.
type Format int32

const (
	FormatUnknown Format = 0

	Alpha8      Format = 1
	ARGB4444    Format = 2
	RGB24       Format = 3
	RGBA32      Format = 4
	ARGB32      Format = 5
	ARGBFloat   Format = 6
	RGB565      Format = 7
	BGR24       Format = 8
	R16         Format = 9
	DXT1        Format = 10
	DXT3        Format = 11
	DXT5        Format = 12
	RGBA4444    Format = 13
	BGRA32      Format = 14
	RHalf       Format = 15
	RGHalf      Format = 16
	RGBAHalf    Format = 17
	RFloat      Format = 18
	RGFloat     Format = 19
	RGBAFloat   Format = 20
	YUY2        Format = 21
	RGB9e5Float Format = 22
	RGBFloat    Format = 23
	BC6H        Format = 24
	BC7         Format = 25
	BC4         Format = 26
	BC5         Format = 27

	DXT1Crunched Format = 28
	DXT5Crunched Format = 29

	PVRTC_RGB2  Format = 30
	PVRTC_RGBA2 Format = 31
	PVRTC_RGB4  Format = 32
	PVRTC_RGBA4 Format = 33
	ETC_RGB4    Format = 34
	ATC_RGB4    Format = 35
	ATC_RGBA8   Format = 36

	EAC_R         Format = 41
	EAC_R_SIGNED  Format = 42
	EAC_RG        Format = 43
	EAC_RG_SIGNED Format = 44
	ETC2_RGB4     Format = 45
	ETC2_RGBA1    Format = 46
	ETC2_RGBA8    Format = 47

	ASTC_RGB_4x4    Format = 48
	ASTC_RGB_5x5    Format = 49
	ASTC_RGB_6x6    Format = 50
	ASTC_RGB_8x8    Format = 51
	ASTC_RGB_10x10  Format = 52
	ASTC_RGB_12x12  Format = 53
	ASTC_RGBA_4x4   Format = 54
	ASTC_RGBA_5x5   Format = 55
	ASTC_RGBA_6x6   Format = 56
	ASTC_RGBA_8x8   Format = 57
	ASTC_RGBA_10x10 Format = 58
	ASTC_RGBA_12x12 Format = 59

	ETC_RGB4_3DS  Format = 60
	ETC_RGBA8_3DS Format = 61
	RG16          Format = 62
	R8            Format = 63

	ETC_RGB4Crunched   Format = 64
	ETC2_RGBA8Crunched Format = 65

	ASTC_HDR_4x4   Format = 66
	ASTC_HDR_5x5   Format = 67
	ASTC_HDR_6x6   Format = 68
	ASTC_HDR_8x8   Format = 69
	ASTC_HDR_10x10 Format = 70
	ASTC_HDR_12x12 Format = 71

	RG32   Format = 72
	RGB48  Format = 73
	RGBA64 Format = 74
)

var formatNames = map[Format]string{
	Alpha8:             "Alpha8",
	ARGB4444:           "ARGB4444",
	RGB24:              "RGB24",
	RGBA32:             "RGBA32",
	ARGB32:             "ARGB32",
	ARGBFloat:          "ARGBFloat",
	RGB565:             "RGB565",
	BGR24:              "BGR24",
	R16:                "R16",
	DXT1:               "DXT1",
	DXT3:               "DXT3",
	DXT5:               "DXT5",
	RGBA4444:           "RGBA4444",
	BGRA32:             "BGRA32",
	RHalf:              "RHalf",
	RGHalf:             "RGHalf",
	RGBAHalf:           "RGBAHalf",
	RFloat:             "RFloat",
	RGFloat:            "RGFloat",
	RGBAFloat:          "RGBAFloat",
	YUY2:               "YUY2",
	RGB9e5Float:        "RGB9e5Float",
	RGBFloat:           "RGBFloat",
	BC6H:               "BC6H",
	BC7:                "BC7",
	BC4:                "BC4",
	BC5:                "BC5",
	DXT1Crunched:       "DXT1Crunched",
	DXT5Crunched:       "DXT5Crunched",
	PVRTC_RGB2:         "PVRTC_RGB2",
	PVRTC_RGBA2:        "PVRTC_RGBA2",
	PVRTC_RGB4:         "PVRTC_RGB4",
	PVRTC_RGBA4:        "PVRTC_RGBA4",
	ETC_RGB4:           "ETC_RGB4",
	ATC_RGB4:           "ATC_RGB4",
	ATC_RGBA8:          "ATC_RGBA8",
	EAC_R:              "EAC_R",
	EAC_R_SIGNED:       "EAC_R_SIGNED",
	EAC_RG:             "EAC_RG",
	EAC_RG_SIGNED:      "EAC_RG_SIGNED",
	ETC2_RGB4:          "ETC2_RGB4",
	ETC2_RGBA1:         "ETC2_RGBA1",
	ETC2_RGBA8:         "ETC2_RGBA8",
	ASTC_RGB_4x4:       "ASTC_RGB_4x4",
	ASTC_RGB_5x5:       "ASTC_RGB_5x5",
	ASTC_RGB_6x6:       "ASTC_RGB_6x6",
	ASTC_RGB_8x8:       "ASTC_RGB_8x8",
	ASTC_RGB_10x10:     "ASTC_RGB_10x10",
	ASTC_RGB_12x12:     "ASTC_RGB_12x12",
	ASTC_RGBA_4x4:      "ASTC_RGBA_4x4",
	ASTC_RGBA_5x5:      "ASTC_RGBA_5x5",
	ASTC_RGBA_6x6:      "ASTC_RGBA_6x6",
	ASTC_RGBA_8x8:      "ASTC_RGBA_8x8",
	ASTC_RGBA_10x10:    "ASTC_RGBA_10x10",
	ASTC_RGBA_12x12:    "ASTC_RGBA_12x12",
	ETC_RGB4_3DS:       "ETC_RGB4_3DS",
	ETC_RGBA8_3DS:      "ETC_RGBA8_3DS",
	RG16:               "RG16",
	R8:                 "R8",
	ETC_RGB4Crunched:   "ETC_RGB4Crunched",
	ETC2_RGBA8Crunched: "ETC2_RGBA8Crunched",
	ASTC_HDR_4x4:       "ASTC_HDR_4x4",
	ASTC_HDR_5x5:       "ASTC_HDR_5x5",
	ASTC_HDR_6x6:       "ASTC_HDR_6x6",
	ASTC_HDR_8x8:       "ASTC_HDR_8x8",
	ASTC_HDR_10x10:     "ASTC_HDR_10x10",
	ASTC_HDR_12x12:     "ASTC_HDR_12x12",
	RG32:               "RG32",
	RGB48:              "RGB48",
	RGBA64:             "RGBA64",
}

// String returns the format name, or its number when the value is not a known format.
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return strconv.Itoa(int(f))
}

// Known reports whether f is a recognized format.
func (f Format) Known() bool {
	_, ok := formatNames[f]
	return ok
}

// ParseFormat accepts a format name (case-insensitive) or its numeric value.
func ParseFormat(s string) (Format, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return FormatUnknown, fmt.Errorf("empty texture format")
	}
	if n, err := strconv.ParseInt(s, 10, 32); err == nil {
		return Format(n), nil
	}
	for f, name := range formatNames {
		if strings.EqualFold(name, s) {
			return f, nil
		}
	}
	return FormatUnknown, fmt.Errorf("unknown texture format %q", s)
}

// Formats returns every recognized format ordered by value.
func Formats() []Format {
	out := make([]Format, 0, len(formatNames))
	for f := Alpha8; f <= RGBA64; f++ {
		if f.Known() {
			out = append(out, f)
		}
	}
	return out
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalJSON accepts either a format name or its numeric value.
func (f *Format) UnmarshalJSON(data []byte) error {
	if s, err := strconv.Unquote(string(data)); err == nil {
		return f.UnmarshalText([]byte(s))
	}
	return f.UnmarshalText(data)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
