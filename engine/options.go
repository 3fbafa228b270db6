package engine

import (
	"io/fs"
	"log/slog"
	"text/template"

	"github.com/cpcf/metergen/postprocess"
	"github.com/cpcf/metergen/state"
)

type Option func(*Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func WithFailureMode(mode FailureMode) Option {
	return func(e *Engine) {
		e.failMode = mode
	}
}

// WithTemplates sets the file system Render reads templates from.
func WithTemplates(fsys fs.FS, funcs template.FuncMap) Option {
	return func(e *Engine) {
		e.cache = NewTemplateCache(fsys, funcs)
	}
}

func WithPostProcessors(chain *postprocess.Chain) Option {
	return func(e *Engine) {
		e.chain = chain
	}
}

// WithStateTracker records every emitted file in the tracker's manifest
// and warns before hand-edited files are replaced.
func WithStateTracker(tracker *state.StateTracker) Option {
	return func(e *Engine) {
		e.tracker = tracker
	}
}

// WithDryRun makes Emit report what it would write without touching disk.
func WithDryRun(dryRun bool) Option {
	return func(e *Engine) {
		e.dryRun = dryRun
	}
}
