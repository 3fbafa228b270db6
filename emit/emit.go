// Package emit renders the validated identifier space into the firmware
// headers, the web modules and the per-locale translation modules.
package emit

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/cpcf/metergen/engine"
	"github.com/cpcf/metergen/meters"
)

//go:embed templates
var templates embed.FS

// Template names, relative to Templates.
const (
	ValueHeaderTemplate = "firmware/meter_value_id.h.tmpl"
	ClassHeaderTemplate = "firmware/meters_defs.h.tmpl"
	ValueModuleTemplate = "web/meter_value_id.ts.tmpl"
	ClassModuleTemplate = "web/meters_defs.ts.tmpl"
	GoDefsTemplate      = "go/meterdefs.go.tmpl"
)

// Templates returns the embedded text/template sources.
func Templates() fs.FS {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Renderer executes a named template. *engine.Engine satisfies it.
type Renderer interface {
	Render(name string, data any) ([]byte, error)
}

type TranslationTarget struct {
	Locale meters.Locale
	// Template is the template text; empty selects the default.
	Template string
	Path     string
}

// Targets are the output paths. Empty paths are skipped.
type Targets struct {
	ValueHeader  string
	ClassHeader  string
	ValueModule  string
	ClassModule  string
	GoFile       string
	GoPackage    string
	Translations []TranslationTarget
}

// Emit renders every target. It fails at the end with an
// *engine.MultiError listing every target that could not be rendered.
func Emit(r Renderer, m *meters.Model, t Targets) ([]engine.File, error) {
	view := newModelView(m)
	view.Package = t.GoPackage

	var (
		files []engine.File
		multi engine.MultiError
	)

	for _, target := range []struct {
		path     string
		template string
	}{
		{t.ValueHeader, ValueHeaderTemplate},
		{t.ClassHeader, ClassHeaderTemplate},
		{t.ValueModule, ValueModuleTemplate},
		{t.ClassModule, ClassModuleTemplate},
		{t.GoFile, GoDefsTemplate},
	} {
		if target.path == "" {
			continue
		}
		content, err := r.Render(target.template, view)
		if err != nil {
			multi.Add(target.path, "render", err)
			continue
		}
		files = append(files, engine.File{Path: target.path, Content: content, Source: target.template})
	}

	for _, tr := range t.Translations {
		bundle := m.Translations.Bundle(tr.Locale)
		if bundle == nil {
			multi.Add(tr.Path, "translation", fmt.Errorf("no bundle for locale %q", tr.Locale))
			continue
		}
		content, err := Translation(bundle, tr.Template)
		if err != nil {
			multi.Add(tr.Path, "translation", err)
			continue
		}
		files = append(files, engine.File{Path: tr.Path, Content: content, Source: "translation:" + string(tr.Locale)})
	}

	if err := multi.ErrorOrNil(); err != nil {
		return nil, err
	}
	return files, nil
}
