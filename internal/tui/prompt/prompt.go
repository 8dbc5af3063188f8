// Package prompt asks the user for export destinations, either interactively in
// the terminal or from values supplied up front on the command line.
package prompt

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/ellipszist/texport/internal/codec"
)

// ErrCancelled is returned when the user dismisses a prompt or leaves it empty.
var ErrCancelled = errors.New("prompt cancelled")

// Prompter asks the questions of the export flows.
type Prompter interface {
	// ChooseContainer asks for the output container of a batch export.
	ChooseContainer(ctx context.Context, choices []codec.Container) (codec.Container, error)

	// ChooseDirectory asks for the batch output directory.
	ChooseDirectory(ctx context.Context, title string) (string, error)

	// SaveFile asks for the destination of a single export. suggested is the file
	// name without extension; def is the container appended when the answer has
	// no extension.
	SaveFile(ctx context.Context, title, suggested string, choices []codec.Container, def codec.Container) (string, error)
}

// Static answers every prompt from preset values. An empty value cancels.
type Static struct {
	Container codec.Container
	Dir       string

	// File is the single-export destination. A directory (trailing separator or
	// an existing directory) receives the suggested name.
	File string

	// IsDir reports whether a path is an existing directory. Defaults to false.
	IsDir func(path string) bool
}

// ChooseContainer implements Prompter.
func (s *Static) ChooseContainer(ctx context.Context, choices []codec.Container) (codec.Container, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.Container == "" {
		return "", ErrCancelled
	}
	for _, c := range choices {
		if c == s.Container {
			return c, nil
		}
	}
	return "", ErrCancelled
}

// ChooseDirectory implements Prompter.
func (s *Static) ChooseDirectory(ctx context.Context, title string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.TrimSpace(s.Dir) == "" {
		return "", ErrCancelled
	}
	return s.Dir, nil
}

// SaveFile implements Prompter.
func (s *Static) SaveFile(ctx context.Context, title, suggested string, choices []codec.Container, def codec.Container) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	file := strings.TrimSpace(s.File)
	if file == "" {
		return "", ErrCancelled
	}

	isDir := strings.HasSuffix(file, "/") || strings.HasSuffix(file, string(filepath.Separator))
	if !isDir && s.IsDir != nil {
		isDir = s.IsDir(file)
	}
	if isDir {
		file = filepath.Join(file, suggested)
	}
	return WithDefaultExtension(file, def), nil
}

// WithDefaultExtension appends def's extension unless path already ends in a
// container extension. Suggested names contain dots ("icon-level0.assets-3"),
// so any other extension is treated as part of the name.
func WithDefaultExtension(path string, def codec.Container) string {
	if def == "" {
		return path
	}
	if ext := filepath.Ext(path); ext != "" {
		if _, err := codec.ParseContainer(ext); err == nil {
			return path
		}
	}
	return path + "." + def.Extension()
}
