// Package generator runs the whole pipeline: tables in, validated model,
// compatibility check against the previous run, generated files out.
package generator

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/cpcf/metergen/compat"
	"github.com/cpcf/metergen/config"
	"github.com/cpcf/metergen/emit"
	"github.com/cpcf/metergen/engine"
	"github.com/cpcf/metergen/meters"
	"github.com/cpcf/metergen/postprocess"
	"github.com/cpcf/metergen/processors"
	"github.com/cpcf/metergen/render"
	"github.com/cpcf/metergen/state"
	"github.com/cpcf/metergen/table"
	"golang.org/x/sync/errgroup"
)

// Banner starts every generated file.
const Banner = "// WARNING: This file is generated."

type Generator struct {
	cfg     *config.Generator
	logger  *slog.Logger
	classes []string
}

func New(cfg *config.Generator, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{cfg: cfg, logger: logger, classes: meters.Classes}
}

// WithClasses replaces the built-in class list.
func (g *Generator) WithClasses(classes []string) *Generator {
	g.classes = classes
	return g
}

type Options struct {
	// AllowBreaking turns compatibility violations into warnings.
	AllowBreaking bool
	DryRun        bool
}

type Result struct {
	Model  *meters.Model
	Report *engine.Report
	// Breaking holds the violations that AllowBreaking let through.
	Breaking *compat.Report
}

// Load reads and decodes the three tables concurrently.
func (g *Generator) Load() (meters.Input, error) {
	in := meters.Input{Classes: g.classes}
	for _, tr := range g.cfg.Translations {
		in.Locales = append(in.Locales, meters.Locale(tr.Locale))
	}

	var eg errgroup.Group
	eg.Go(func() error {
		records, err := table.LoadFile(g.cfg.Resolve(g.cfg.Inputs.Values), table.ValueKey)
		if err != nil {
			return err
		}
		if in.Values, err = table.DecodeValues(records); err != nil {
			return fmt.Errorf("%s: %w", g.cfg.Inputs.Values, err)
		}
		return nil
	})
	eg.Go(func() error {
		records, err := table.LoadFile(g.cfg.Resolve(g.cfg.Inputs.Groups), table.GroupKey)
		if err != nil {
			return err
		}
		in.Groups = table.DecodeGroups(records)
		return nil
	})
	eg.Go(func() error {
		records, err := table.LoadFile(g.cfg.Resolve(g.cfg.Inputs.Fragments), table.FragmentKey)
		if err != nil {
			return err
		}
		in.Fragments = table.DecodeFragments(records)
		return nil
	})
	if err := eg.Wait(); err != nil {
		return in, err
	}

	g.logger.Debug("loaded tables",
		"values", len(in.Values),
		"groups", len(in.Groups),
		"fragments", len(in.Fragments))
	return in, nil
}

// Inputs lists every file a run reads besides the configuration itself.
func (g *Generator) Inputs() []string {
	paths := []string{
		g.cfg.Resolve(g.cfg.Inputs.Values),
		g.cfg.Resolve(g.cfg.Inputs.Groups),
		g.cfg.Resolve(g.cfg.Inputs.Fragments),
	}
	for _, tr := range g.cfg.Translations {
		if tr.Template != "" {
			paths = append(paths, g.cfg.Resolve(tr.Template))
		}
	}
	return paths
}

// Build loads the tables and validates the identifier space.
func (g *Generator) Build() (*meters.Model, error) {
	in, err := g.Load()
	if err != nil {
		return nil, err
	}

	m, err := meters.Build(in)
	if err != nil {
		return nil, err
	}

	for _, u := range m.Unmatched {
		g.logger.Warn("phase matches no phase triple, value stays ungrouped",
			"id", u.ID, "identifier", u.Identifier, "phase", u.Phase)
	}
	return m, nil
}

// Targets maps the configuration onto output paths.
func (g *Generator) Targets() (emit.Targets, error) {
	out := g.cfg.Outputs
	t := emit.Targets{
		ValueHeader: g.cfg.FirmwarePath(out.ValueHeader),
		ClassHeader: g.cfg.FirmwarePath(out.ClassHeader),
		ValueModule: g.cfg.WebPath(out.ValueModule),
		ClassModule: g.cfg.WebPath(out.ClassModule),
		GoFile:      g.cfg.Resolve(out.GoFile),
		GoPackage:   out.GoPackage,
	}

	for _, tr := range g.cfg.Translations {
		target := emit.TranslationTarget{Locale: meters.Locale(tr.Locale), Path: g.cfg.WebPath(tr.Output)}
		if tr.Template != "" {
			data, err := os.ReadFile(g.cfg.Resolve(tr.Template))
			if err != nil {
				return t, fmt.Errorf("translation template for %s: %w", tr.Locale, err)
			}
			target.Template = string(data)
		}
		t.Translations = append(t.Translations, target)
	}
	return t, nil
}

func (g *Generator) engine(opts ...engine.Option) *engine.Engine {
	chain := postprocess.NewChain().
		Add("whitespace", processors.NewTrimWhitespace()).
		Add("header", processors.NewAddGeneratedHeader(Banner, ".h", ".ts", ".tsx", ".go")).
		Add("goimports", processors.NewGoImports())
	g.logger.Debug("post-processing chain", "steps", chain.Names())

	base := []engine.Option{
		engine.WithLogger(g.logger),
		engine.WithFailureMode(g.cfg.Mode()),
		engine.WithTemplates(emit.Templates(), render.DefaultFuncMap()),
		engine.WithPostProcessors(chain),
	}
	return engine.New(append(base, opts...)...)
}

func (g *Generator) render(m *meters.Model) ([]engine.File, emit.Targets, error) {
	targets, err := g.Targets()
	if err != nil {
		return nil, targets, err
	}
	files, err := emit.Emit(g.engine(), m, targets)
	return files, targets, err
}

// guard compares m against what the previous run wrote.
func (g *Generator) guard(m *meters.Model, t emit.Targets) (*compat.Report, error) {
	prev, err := compat.LoadSnapshot(t.ValueHeader, t.ClassHeader, t.ValueModule)
	if err != nil {
		return nil, fmt.Errorf("read previous output: %w", err)
	}
	if prev.Empty() {
		g.logger.Info("no previous output found, skipping compatibility check")
		return nil, nil
	}
	return compat.Check(prev, m), nil
}

// Generate writes every output whose content changed.
func (g *Generator) Generate(opts Options) (*Result, error) {
	m, err := g.Build()
	if err != nil {
		return nil, err
	}

	files, targets, err := g.render(m)
	if err != nil {
		return nil, err
	}

	res := &Result{Model: m}
	breaking, err := g.guard(m, targets)
	if err != nil {
		return nil, err
	}
	if breaking != nil {
		if !opts.AllowBreaking {
			return nil, breaking
		}
		for _, v := range breaking.Violations {
			g.logger.Warn("breaking identifier change", "kind", v.Kind.String(), "id", v.ID, "old", v.Old, "new", v.New)
		}
		res.Breaking = breaking
	}

	tracker, err := state.NewStateTracker(g.cfg.Resolve(g.cfg.Manifest))
	if err != nil {
		return nil, err
	}

	eng := g.engine(engine.WithStateTracker(tracker), engine.WithDryRun(opts.DryRun))
	res.Report, err = eng.Emit(files)
	if err != nil {
		return res, err
	}

	g.logger.Info("generation finished",
		"values", len(m.Values),
		"written", len(res.Report.Written),
		"unchanged", len(res.Report.Unchanged),
		"dry_run", opts.DryRun)
	return res, nil
}

// DriftError lists generated files that are out of date.
type DriftError struct {
	Paths []string
}

func (e *DriftError) Error() string {
	return fmt.Sprintf("%d generated files are out of date", len(e.Paths))
}

// Check renders everything without writing and fails with a *DriftError
// when any output on disk differs, or with a *compat.Report when the
// tables break the previous output.
func (g *Generator) Check() error {
	m, err := g.Build()
	if err != nil {
		return err
	}

	files, targets, err := g.render(m)
	if err != nil {
		return err
	}

	breaking, err := g.guard(m, targets)
	if err != nil {
		return err
	}
	if breaking != nil {
		return breaking
	}

	drifted, err := g.engine().Check(files)
	if err != nil {
		return err
	}
	for _, path := range drifted {
		g.logger.Warn("out of date", "path", path)
	}
	if len(drifted) > 0 {
		return &DriftError{Paths: drifted}
	}
	return nil
}
