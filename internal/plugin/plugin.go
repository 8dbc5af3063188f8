// Package plugin is the capability registry hosts use to find an option that can
// act on the current selection.
package plugin

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/ellipszist/texport/internal/assets"
	"github.com/ellipszist/texport/internal/export"
)

// ErrDuplicateOption is returned when an option name is registered twice.
var ErrDuplicateOption = errors.New("option already registered")

// Action is the kind of operation the host is offering.
type Action int

const (
	ActionImport Action = iota + 1
	ActionExport
)

func (a Action) String() string {
	switch a {
	case ActionImport:
		return "import"
	case ActionExport:
		return "export"
	default:
		return "unknown"
	}
}

// Result is what an option reports back to the host.
type Result struct {
	// OK is false when the option did nothing useful, e.g. the user cancelled.
	OK bool

	// Message is a single error to show, empty on success or cancel.
	Message string

	// Summary holds the batch diagnostic lines, empty when nothing failed.
	Summary string

	// Report is the batch report, nil for single exports and aborted batches.
	Report *export.Report

	// Outcome is set for single exports that reached the pipeline.
	Outcome *export.Outcome
}

// Option is a capability offered on a selection of assets.
type Option interface {
	// Applicable reports whether the option handles selection for action,
	// along with the label to show for it.
	Applicable(selection []*assets.Asset, action Action) (bool, string)

	// Execute runs the option on selection.
	Execute(ctx context.Context, selection []*assets.Asset) Result
}

// Match is an applicable option with its label.
type Match struct {
	Name   string
	Label  string
	Option Option
}

// Registry holds named options.
type Registry struct {
	mu      sync.RWMutex
	options map[string]Option
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{options: make(map[string]Option)}
}

// Register adds an option under name.
func (r *Registry) Register(name string, opt Option) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.options[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateOption, name)
	}
	r.options[name] = opt
	return nil
}

// Names returns registered option names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNamesLocked()
}

// Applicable returns every option that handles selection for action, ordered by name.
func (r *Registry) Applicable(selection []*assets.Asset, action Action) []Match {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []Match
	for _, name := range r.sortedNamesLocked() {
		opt := r.options[name]
		if ok, label := opt.Applicable(selection, action); ok {
			matches = append(matches, Match{Name: name, Label: label, Option: opt})
		}
	}
	return matches
}

// Find returns the first applicable option.
func (r *Registry) Find(selection []*assets.Asset, action Action) (Match, bool) {
	matches := r.Applicable(selection, action)
	if len(matches) == 0 {
		return Match{}, false
	}
	return matches[0], true
}

func (r *Registry) sortedNamesLocked() []string {
	names := make([]string, 0, len(r.options))
	for name := range r.options {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
