// Package texture describes texture records handed over by an archive parser.
package texture

import (
	"fmt"
	"path"
	"strconv"
	"strings"
)

// ClassTexture2D is the serialized class id of texture assets.
const ClassTexture2D = 28

// MaxDimension is the largest width or height a texture may declare.
const MaxDimension = 1 << 15

// Platform is the build target recorded in a serialized file's metadata.
// Some pixel formats are laid out differently per platform.
type Platform uint32

// Known build targets that affect how payloads are interpreted.
const (
	PlatformStandaloneWindows Platform = 5
	PlatformIOS               Platform = 9
	PlatformPS4               Platform = 31
	PlatformXboxOne           Platform = 33
	PlatformSwitch            Platform = 38
)

var platformNames = map[Platform]string{
	PlatformStandaloneWindows: "StandaloneWindows",
	PlatformIOS:               "iOS",
	PlatformPS4:               "PS4",
	PlatformXboxOne:           "XboxOne",
	PlatformSwitch:            "Switch",
}

func (p Platform) String() string {
	if name, ok := platformNames[p]; ok {
		return name
	}
	return strconv.FormatUint(uint64(p), 10)
}

// StreamInfo locates a payload stored outside the serialized file.
type StreamInfo struct {
	Path   string `json:"path" yaml:"path" toml:"path"`
	Offset uint64 `json:"offset" yaml:"offset" toml:"offset"`
	Size   uint32 `json:"size" yaml:"size" toml:"size"`
}

// ResourceName returns the base file name of the external resource.
// Both slash and backslash separators are accepted.
func (s *StreamInfo) ResourceName() string {
	if s == nil || s.Path == "" {
		return ""
	}
	return path.Base(strings.ReplaceAll(s.Path, "\\", "/"))
}

// Record is one texture asset.
type Record struct {
	Name   string
	Width  int
	Height int
	Format Format
	PathID int64

	// ImageData is the inline payload. It is empty when the payload is streamed
	// or has not been materialized yet.
	ImageData []byte

	// StreamData is nil when the payload is inline.
	StreamData *StreamInfo

	// PlatformBlob is opaque per-platform layout data passed through to the codec.
	PlatformBlob []byte
}

// IsDegenerate reports whether the texture is a 0x0 placeholder, such as a font atlas
// that has not been rendered. Degenerate textures are never exported.
func (r *Record) IsDegenerate() bool {
	return r.Width == 0 && r.Height == 0
}

// ValidDimensions reports whether both dimensions lie in [0, MaxDimension].
func ValidDimensions(width, height int) bool {
	return width >= 0 && height >= 0 && width <= MaxDimension && height <= MaxDimension
}

// IsStreamed reports whether the payload lives in an external resource.
func (r *Record) IsStreamed() bool {
	return r.StreamData != nil && r.StreamData.Path != ""
}

// ParsePlatform accepts a build target name (case-insensitive) or its number.
func ParsePlatform(s string) (Platform, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	for p, name := range platformNames {
		if strings.EqualFold(name, s) {
			return p, nil
		}
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("unknown platform %q", s)
	}
	return Platform(n), nil
}

// MarshalText implements encoding.TextMarshaler.
func (p Platform) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalJSON accepts either a platform name or its numeric value.
func (p *Platform) UnmarshalJSON(data []byte) error {
	if s, err := strconv.Unquote(string(data)); err == nil {
		return p.UnmarshalText([]byte(s))
	}
	return p.UnmarshalText(data)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Platform) UnmarshalText(text []byte) error {
	parsed, err := ParsePlatform(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
