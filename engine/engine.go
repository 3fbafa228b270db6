// Package engine renders generated files and moves them through
// post-processing onto disk.
package engine

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/cpcf/metergen/postprocess"
	"github.com/cpcf/metergen/state"
	"github.com/cpcf/metergen/write"
)

type Engine struct {
	logger   *slog.Logger
	failMode FailureMode
	cache    *TemplateCache
	chain    *postprocess.Chain
	writer   write.Writer
	tracker  *state.StateTracker
	dryRun   bool
}

type FailureMode int

const (
	// FailFast stops at the first failing file.
	FailFast FailureMode = iota
	// FailAtEnd post-processes every file and writes none if any of them
	// failed. A failed write is collected and the remaining files are still
	// written before the errors are returned.
	FailAtEnd
	// BestEffort writes every file that succeeded and logs the rest.
	BestEffort
)

func (m FailureMode) String() string {
	switch m {
	case FailFast:
		return "fail-fast"
	case FailAtEnd:
		return "fail-at-end"
	case BestEffort:
		return "best-effort"
	default:
		return fmt.Sprintf("FailureMode(%d)", int(m))
	}
}

// ParseFailureMode accepts the names String returns.
func ParseFailureMode(s string) (FailureMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fail-fast", "failfast":
		return FailFast, nil
	case "", "fail-at-end", "failatend":
		return FailAtEnd, nil
	case "best-effort", "besteffort":
		return BestEffort, nil
	default:
		return FailFast, fmt.Errorf("unknown failure mode %q", s)
	}
}

func New(opts ...Option) *Engine {
	e := &Engine{
		logger:   slog.Default(),
		failMode: FailAtEnd,
		chain:    postprocess.NewChain(),
		writer:   write.NewBaseWriter(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Report describes what Emit did, or in dry-run mode would have done.
type Report struct {
	Written   []string
	Unchanged []string
	// Modified lists files that were edited by hand since the last run and
	// are replaced by this one.
	Modified []string
	// Stale lists files a previous run generated that this run no longer
	// produces. They are left on disk.
	Stale []string
}

// Emit post-processes files and writes those whose content changed.
func (e *Engine) Emit(files []File) (*Report, error) {
	processed, err := e.process(files)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	var multi MultiError

	for _, f := range processed {
		if err := e.emitFile(f, report); err != nil {
			if ferr := e.fail(&multi, f.Path, "write", err); ferr != nil {
				return report, ferr
			}
		}
	}

	if e.tracker != nil {
		report.Stale = e.tracker.Stale()
		for _, path := range report.Stale {
			e.logger.Warn("previously generated file is no longer produced", "path", path)
		}
		if !e.dryRun {
			e.tracker.Forget()
			if err := e.tracker.Save(); err != nil {
				return report, fmt.Errorf("save manifest: %w", err)
			}
		}
	}

	if e.failMode == BestEffort {
		return report, nil
	}
	return report, multi.ErrorOrNil()
}

func (e *Engine) emitFile(f File, report *Report) error {
	needs, err := e.writer.NeedsWrite(f.Path, f.Content)
	if err != nil {
		return err
	}

	opts := write.DefaultOptions()
	if e.tracker != nil {
		fileState, err := e.tracker.GetFileState(f.Path)
		if err != nil {
			return err
		}
		if fileState == state.FileStateModified && needs {
			e.logger.Warn("generated file was edited by hand and will be replaced", "path", f.Path)
			report.Modified = append(report.Modified, f.Path)
			opts.Backup = true
		}
	}

	if !needs {
		report.Unchanged = append(report.Unchanged, f.Path)
		e.logger.Debug("unchanged", "path", f.Path)
		return e.track(f)
	}

	if e.dryRun {
		report.Written = append(report.Written, f.Path)
		e.logger.Info("would write", "path", f.Path, "bytes", len(f.Content))
		return e.track(f)
	}

	if err := e.writer.Write(f.Path, f.Content, opts); err != nil {
		return err
	}
	report.Written = append(report.Written, f.Path)
	e.logger.Info("wrote", "path", f.Path, "bytes", len(f.Content))
	return e.track(f)
}

func (e *Engine) track(f File) error {
	if e.tracker == nil {
		return nil
	}
	return e.tracker.Track(f.Path, f.Content, f.Source)
}

// Check post-processes files and returns the paths whose content on disk
// differs from the generated content. Nothing is written.
func (e *Engine) Check(files []File) ([]string, error) {
	processed, err := e.process(files)
	if err != nil {
		return nil, err
	}

	var drifted []string
	for _, f := range processed {
		needs, err := e.writer.NeedsWrite(f.Path, f.Content)
		if err != nil {
			return nil, &GenerationError{Path: f.Path, Message: "compare", Err: err}
		}
		if needs {
			drifted = append(drifted, f.Path)
		}
	}
	return drifted, nil
}
