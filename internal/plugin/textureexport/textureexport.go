// Package textureexport is the export option for Texture2D selections. One
// selected texture runs the single flow (save prompt, one file); more run the
// batch flow (container and directory prompts, then one file per texture).
package textureexport

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ellipszist/texport/internal/assets"
	"github.com/ellipszist/texport/internal/codec"
	"github.com/ellipszist/texport/internal/export"
	"github.com/ellipszist/texport/internal/plugin"
	"github.com/ellipszist/texport/internal/texture"
	"github.com/ellipszist/texport/internal/tui/prompt"
)

// Name is the option's registry name.
const Name = "texture-export"

// Labels shown by hosts for the option.
const (
	LabelSingle = "Export texture"
	LabelBatch  = "Batch export textures"
)

// Prompt titles.
const (
	titleSave      = "Save texture"
	titleDirectory = "Select export directory"
)

// Exporter is the part of export.Exporter the option drives.
type Exporter interface {
	ExportOne(ctx context.Context, a *assets.Asset, dest string, container codec.Container) export.Outcome
	ExportBatch(ctx context.Context, items []*assets.Asset, dir string, container codec.Container) *export.Report
}

// Option exports textures.
type Option struct {
	exporter         Exporter
	prompter         prompt.Prompter
	containers       []codec.Container
	defaultContainer codec.Container
	maxErrorLines    int
	logger           *slog.Logger
}

// OptionFunc configures an Option.
type OptionFunc func(*Option)

// WithContainers sets the containers offered by the prompts.
func WithContainers(containers ...codec.Container) OptionFunc {
	return func(o *Option) {
		o.containers = containers
	}
}

// WithDefaultContainer sets the container used when a save path has no extension.
func WithDefaultContainer(c codec.Container) OptionFunc {
	return func(o *Option) {
		o.defaultContainer = c
	}
}

// WithMaxErrorLines caps the batch summary.
func WithMaxErrorLines(n int) OptionFunc {
	return func(o *Option) {
		o.maxErrorLines = n
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) OptionFunc {
	return func(o *Option) {
		o.logger = logger
	}
}

// New creates the texture export option.
func New(exporter Exporter, prompter prompt.Prompter, opts ...OptionFunc) *Option {
	o := &Option{
		exporter:         exporter,
		prompter:         prompter,
		containers:       []codec.Container{codec.PNG, codec.TGA},
		defaultContainer: codec.PNG,
		maxErrorLines:    export.DefaultMaxErrorLines,
		logger:           slog.Default().With("component", "texture-export"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Applicable implements plugin.Option. The label is computed even when the
// option does not apply.
func (o *Option) Applicable(selection []*assets.Asset, action plugin.Action) (bool, string) {
	label := LabelSingle
	if len(selection) > 1 {
		label = LabelBatch
	}

	if action != plugin.ActionExport || len(selection) == 0 {
		return false, label
	}
	for _, a := range selection {
		if a.ClassID != texture.ClassTexture2D {
			return false, label
		}
	}
	return true, label
}

// Execute implements plugin.Option.
func (o *Option) Execute(ctx context.Context, selection []*assets.Asset) plugin.Result {
	switch len(selection) {
	case 0:
		return plugin.Result{}
	case 1:
		return o.single(ctx, selection[0])
	default:
		return o.batch(ctx, selection)
	}
}

func (o *Option) single(ctx context.Context, a *assets.Asset) plugin.Result {
	if err := a.Materialize(); err != nil {
		o.logger.Warn("failed to materialize texture data", "asset", a.Identity(), "error", err)
		out := export.Outcome{
			Status:   export.StatusFailed,
			Reason:   export.ReasonDataUnreadable,
			Identity: a.Identity(),
			Name:     a.Record.Name,
			Format:   a.Record.Format,
			Err:      err,
		}
		return plugin.Result{Message: out.Message(), Outcome: &out}
	}

	if a.Record.IsDegenerate() {
		return plugin.Result{Message: export.DegenerateMessage}
	}

	dest, err := o.prompter.SaveFile(ctx, titleSave, export.SuggestedName(a), o.containers, o.defaultContainer)
	if err != nil {
		o.logCancel("save", err)
		return plugin.Result{}
	}

	container := codec.ContainerFromPath(dest, o.defaultContainer)
	out := o.exporter.ExportOne(ctx, a, dest, container)
	if !out.OK() {
		return plugin.Result{Message: out.Message(), Outcome: &out}
	}
	return plugin.Result{OK: true, Outcome: &out}
}

func (o *Option) batch(ctx context.Context, selection []*assets.Asset) plugin.Result {
	container, err := o.prompter.ChooseContainer(ctx, o.containers)
	if err != nil || container == "" {
		o.logCancel("container", err)
		return plugin.Result{}
	}

	dir, err := o.prompter.ChooseDirectory(ctx, titleDirectory)
	if err != nil || dir == "" {
		o.logCancel("directory", err)
		return plugin.Result{}
	}

	report := o.exporter.ExportBatch(ctx, selection, dir, container)

	res := plugin.Result{OK: true, Report: report}
	if summary, failed := export.Summarize(report, o.maxErrorLines); failed {
		res.Summary = summary
	}
	return res
}

func (o *Option) logCancel(step string, err error) {
	if err == nil || errors.Is(err, prompt.ErrCancelled) {
		o.logger.Info("export cancelled", "prompt", step)
		return
	}
	o.logger.Warn("export prompt failed", "prompt", step, "error", err)
}
