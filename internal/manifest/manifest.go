// Package manifest loads texture manifests written by an archive parser and turns
// them into export selections.
package manifest

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/ellipszist/texport/internal/assets"
	"github.com/ellipszist/texport/internal/texture"
)

// CurrentVersion is the newest manifest schema understood by Load.
const CurrentVersion = 1

// Errors returned by Load and Selection.
var (
	ErrUnsupportedEncoding = errors.New("unsupported manifest encoding")
	ErrUnknownSelection    = errors.New("no texture matches selection")
	ErrAmbiguousSelection  = errors.New("selection matches more than one texture")
)

// Document is the on-disk manifest schema.
type Document struct {
	Version  int          `json:"version" yaml:"version" toml:"version"`
	Members  []MemberDoc  `json:"members" yaml:"members" toml:"members"`
	Textures []TextureDoc `json:"textures" yaml:"textures" toml:"textures"`
}

// MemberDoc describes one archive member.
type MemberDoc struct {
	ID             string           `json:"id" yaml:"id" toml:"id"`
	Path           string           `json:"path" yaml:"path" toml:"path"`
	TargetPlatform texture.Platform `json:"target_platform" yaml:"target_platform" toml:"target_platform"`
	Bundle         *BundleDoc       `json:"bundle,omitempty" yaml:"bundle,omitempty" toml:"bundle,omitempty"`
}

// BundleDoc lists the extracted entries of the bundle a member is packed in.
type BundleDoc struct {
	Name    string            `json:"name" yaml:"name" toml:"name"`
	Path    string            `json:"path,omitempty" yaml:"path,omitempty" toml:"path,omitempty"`
	Entries map[string]string `json:"entries" yaml:"entries" toml:"entries"`
}

// TextureDoc describes one texture record.
type TextureDoc struct {
	Member        string              `json:"member" yaml:"member" toml:"member"`
	PathID        int64               `json:"path_id" yaml:"path_id" toml:"path_id"`
	ClassID       int                 `json:"class_id,omitempty" yaml:"class_id,omitempty" toml:"class_id,omitempty"`
	Name          string              `json:"name" yaml:"name" toml:"name"`
	Width         int                 `json:"width" yaml:"width" toml:"width"`
	Height        int                 `json:"height" yaml:"height" toml:"height"`
	Format        texture.Format      `json:"format" yaml:"format" toml:"format"`
	ImageData     string              `json:"image_data,omitempty" yaml:"image_data,omitempty" toml:"image_data,omitempty"`
	ImageDataFile string              `json:"image_data_file,omitempty" yaml:"image_data_file,omitempty" toml:"image_data_file,omitempty"`
	StreamData    *texture.StreamInfo `json:"stream_data,omitempty" yaml:"stream_data,omitempty" toml:"stream_data,omitempty"`
	PlatformBlob  string              `json:"platform_blob,omitempty" yaml:"platform_blob,omitempty" toml:"platform_blob,omitempty"`
}

// Manifest is a loaded manifest with members resolved and payloads decoded.
type Manifest struct {
	// Path is the file the manifest was loaded from, empty for in-memory input.
	Path string

	Members []*assets.Member
	Assets  []*assets.Asset
}

// Load reads a manifest, choosing the decoder from the file extension:
// .yaml/.yml, .toml or .json. Relative paths inside the manifest are resolved
// against the manifest's directory.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest; %w", err)
	}

	doc, err := Decode(data, strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."))
	if err != nil {
		return nil, fmt.Errorf("failed to decode manifest %s; %w", path, err)
	}

	m, err := Build(doc, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("invalid manifest %s; %w", path, err)
	}
	m.Path = path
	return m, nil
}

// Decode parses a manifest document in the named encoding. Unknown fields are rejected.
func Decode(data []byte, encoding string) (*Document, error) {
	var doc Document

	switch encoding {
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML; %w", err)
		}
	case "toml":
		if err := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to parse TOML; %w", err)
		}
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON; %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, encoding)
	}

	return &doc, nil
}

// Build validates a document and converts it into members and assets.
// baseDir anchors relative paths.
func Build(doc *Document, baseDir string) (*Manifest, error) {
	if doc.Version > CurrentVersion {
		return nil, fmt.Errorf("manifest version %d is newer than supported version %d", doc.Version, CurrentVersion)
	}

	m := &Manifest{}
	byID := make(map[string]*assets.Member, len(doc.Members))

	for i, md := range doc.Members {
		if md.ID == "" {
			return nil, fmt.Errorf("members[%d]: id is required", i)
		}
		if md.Path == "" {
			return nil, fmt.Errorf("members[%d]: path is required", i)
		}
		if _, dup := byID[md.ID]; dup {
			return nil, fmt.Errorf("members[%d]: duplicate id %q", i, md.ID)
		}

		member := &assets.Member{
			Path:           anchor(baseDir, md.Path),
			TargetPlatform: md.TargetPlatform,
		}
		if md.Bundle != nil {
			entries := make(map[string]string, len(md.Bundle.Entries))
			for name, file := range md.Bundle.Entries {
				entries[name] = anchor(baseDir, file)
			}
			name := md.Bundle.Name
			if name == "" {
				name = filepath.Base(md.Bundle.Path)
			}
			member.Bundle = assets.NewFileBundle(name, entries)
		}

		byID[md.ID] = member
		m.Members = append(m.Members, member)
	}

	for i, td := range doc.Textures {
		member, ok := byID[td.Member]
		if !ok {
			return nil, fmt.Errorf("textures[%d]: unknown member %q", i, td.Member)
		}
		if !texture.ValidDimensions(td.Width, td.Height) {
			return nil, fmt.Errorf("textures[%d]: dimensions %dx%d outside 0..%d", i, td.Width, td.Height, texture.MaxDimension)
		}

		imageData, err := decodeBase64(td.ImageData)
		if err != nil {
			return nil, fmt.Errorf("textures[%d]: image_data; %w", i, err)
		}
		blob, err := decodeBase64(td.PlatformBlob)
		if err != nil {
			return nil, fmt.Errorf("textures[%d]: platform_blob; %w", i, err)
		}

		classID := td.ClassID
		if classID == 0 {
			classID = texture.ClassTexture2D
		}

		a := &assets.Asset{
			ClassID: classID,
			Record: texture.Record{
				Name:         td.Name,
				Width:        td.Width,
				Height:       td.Height,
				Format:       td.Format,
				PathID:       td.PathID,
				ImageData:    imageData,
				StreamData:   td.StreamData,
				PlatformBlob: blob,
			},
			Member: member,
		}
		if td.ImageDataFile != "" {
			a.DataFile = anchor(baseDir, td.ImageDataFile)
		}
		m.Assets = append(m.Assets, a)
	}

	return m, nil
}

// Selection returns the assets named by ids, in the order given. An id is either
// an identity "{memberFileName}/{pathID}" or a bare path id, which must then be
// unique in the manifest. No ids selects every asset in manifest order.
func (m *Manifest) Selection(ids ...string) ([]*assets.Asset, error) {
	if len(ids) == 0 {
		out := make([]*assets.Asset, len(m.Assets))
		copy(out, m.Assets)
		return out, nil
	}

	out := make([]*assets.Asset, 0, len(ids))
	for _, id := range ids {
		a, err := m.find(strings.TrimSpace(id))
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (m *Manifest) find(id string) (*assets.Asset, error) {
	if strings.Contains(id, "/") {
		for _, a := range m.Assets {
			if a.Identity() == id {
				return a, nil
			}
		}
		return nil, fmt.Errorf("%w: %q", ErrUnknownSelection, id)
	}

	pathID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is neither a path id nor member/path id", ErrUnknownSelection, id)
	}

	var match *assets.Asset
	for _, a := range m.Assets {
		if a.Record.PathID != pathID {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("%w: %q; use member/path id", ErrAmbiguousSelection, id)
		}
		match = a
	}
	if match == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSelection, id)
	}
	return match, nil
}

func anchor(baseDir, p string) string {
	if p == "" || filepath.IsAbs(p) || baseDir == "" {
		return p
	}
	return filepath.Join(baseDir, p)
}

func decodeBase64(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("invalid base64; %w", err)
	}
	return data, nil
}
