package assets

import (
	"bytes"
	"fmt"
	"sort"
)

// FileBundle is a bundle whose entries were extracted to individual files.
type FileBundle struct {
	name    string
	entries map[string]string
}

// NewFileBundle creates a bundle mapping entry names to extracted file paths.
func NewFileBundle(name string, entries map[string]string) *FileBundle {
	copied := make(map[string]string, len(entries))
	for k, v := range entries {
		copied[k] = v
	}
	return &FileBundle{name: name, entries: copied}
}

// Name returns the bundle name.
func (b *FileBundle) Name() string {
	return b.name
}

// Open returns the named entry.
func (b *FileBundle) Open(name string) (Resource, error) {
	path, ok := b.entries[name]
	if !ok {
		return nil, fmt.Errorf("%s not in bundle %s; %w", name, b.name, ErrResourceNotFound)
	}
	// A listed entry whose extracted file is gone is a read failure, not a missing entry.
	res, err := openDiskResource(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open bundle entry %s; %v", name, err)
	}
	return res, nil
}

// Entries returns the bundle's entry names in sorted order.
func (b *FileBundle) Entries() []string {
	names := make([]string, 0, len(b.entries))
	for name := range b.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MemoryBundle is a bundle held entirely in memory.
type MemoryBundle struct {
	name    string
	entries map[string][]byte
}

// NewMemoryBundle creates an empty in-memory bundle.
func NewMemoryBundle(name string) *MemoryBundle {
	return &MemoryBundle{name: name, entries: make(map[string][]byte)}
}

// Add stores data under name, replacing any previous entry.
func (b *MemoryBundle) Add(name string, data []byte) {
	b.entries[name] = data
}

// Name returns the bundle name.
func (b *MemoryBundle) Name() string {
	return b.name
}

// Open returns the named entry.
func (b *MemoryBundle) Open(name string) (Resource, error) {
	data, ok := b.entries[name]
	if !ok {
		return nil, fmt.Errorf("%s not in bundle %s; %w", name, b.name, ErrResourceNotFound)
	}
	return bytesResource{Reader: bytes.NewReader(data)}, nil
}
