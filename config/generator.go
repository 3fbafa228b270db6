package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/cpcf/metergen/engine"
	"github.com/cpcf/metergen/meters"
)

// DefaultFile is the configuration file name the CLI looks for.
const DefaultFile = "metergen.yaml"

type Inputs struct {
	Values    string `yaml:"values" toml:"values"`
	Groups    string `yaml:"groups" toml:"groups"`
	Fragments string `yaml:"fragments" toml:"fragments"`
}

type Outputs struct {
	FirmwareDir string `yaml:"firmware_dir" toml:"firmware_dir"`
	WebDir      string `yaml:"web_dir" toml:"web_dir"`

	ValueHeader string `yaml:"value_header" toml:"value_header"`
	ClassHeader string `yaml:"class_header" toml:"class_header"`
	ValueModule string `yaml:"value_module" toml:"value_module"`
	ClassModule string `yaml:"class_module" toml:"class_module"`

	// GoFile enables the Go mirror of the enums when set.
	GoFile    string `yaml:"go_file" toml:"go_file"`
	GoPackage string `yaml:"go_package" toml:"go_package"`
}

type Translation struct {
	Locale string `yaml:"locale" toml:"locale"`
	// Template is the hand-maintained module text with {{{values}}},
	// {{{groups}}} and {{{fragments}}} placeholders. Empty selects the
	// built-in template.
	Template string `yaml:"template" toml:"template"`
	Output   string `yaml:"output" toml:"output"`
}

// Generator is the content of metergen.yaml. Relative paths are taken
// relative to the directory the file was loaded from.
type Generator struct {
	Inputs       Inputs        `yaml:"inputs" toml:"inputs"`
	Outputs      Outputs       `yaml:"outputs" toml:"outputs"`
	Translations []Translation `yaml:"translations" toml:"translations"`
	Manifest     string        `yaml:"manifest" toml:"manifest"`
	FailureMode  string        `yaml:"failure_mode" toml:"failure_mode"`

	dir string
}

func (g *Generator) Defaults() {
	setDefault(&g.Inputs.Values, "meter_value_ids.csv")
	setDefault(&g.Inputs.Groups, "meter_value_groups.csv")
	setDefault(&g.Inputs.Fragments, "meter_value_fragments.csv")

	setDefault(&g.Outputs.FirmwareDir, ".")
	setDefault(&g.Outputs.WebDir, ".")
	setDefault(&g.Outputs.ValueHeader, "meter_value_id.h")
	setDefault(&g.Outputs.ClassHeader, "meters_defs.h")
	setDefault(&g.Outputs.ValueModule, "meter_value_id.ts")
	setDefault(&g.Outputs.ClassModule, "meters_defs.ts")
	setDefault(&g.Outputs.GoPackage, "meterdefs")

	if len(g.Translations) == 0 {
		for _, l := range meters.Locales {
			g.Translations = append(g.Translations, Translation{Locale: string(l)})
		}
	}
	for i := range g.Translations {
		setDefault(&g.Translations[i].Output, "translation_"+g.Translations[i].Locale+".tsx")
	}

	setDefault(&g.Manifest, ".metergen.manifest.json")
}

func (g *Generator) Validate() error {
	var errs []error

	seen := make(map[string]bool)
	for _, t := range g.Translations {
		if !meters.IsLocale(t.Locale) {
			errs = append(errs, fmt.Errorf("translations: unsupported locale %q", t.Locale))
		}
		if seen[t.Locale] {
			errs = append(errs, fmt.Errorf("translations: locale %q listed twice", t.Locale))
		}
		seen[t.Locale] = true
	}

	if g.Outputs.GoFile != "" && !meters.ValidIdentifier(g.Outputs.GoPackage) {
		errs = append(errs, fmt.Errorf("outputs: invalid go_package %q", g.Outputs.GoPackage))
	}

	if _, err := engine.ParseFailureMode(g.FailureMode); err != nil {
		errs = append(errs, fmt.Errorf("failure_mode: %w", err))
	}

	return errors.Join(errs...)
}

// LoadGenerator reads the configuration at path, YAML or TOML by
// extension.
func LoadGenerator(path string) (*Generator, error) {
	var g Generator
	if err := Load(path, &g); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	g.dir = filepath.Dir(abs)
	return &g, nil
}

// SetDir sets the directory relative paths resolve against.
func (g *Generator) SetDir(dir string) {
	g.dir = dir
}

func (g *Generator) Dir() string {
	return g.dir
}

// Resolve returns p relative to the configuration directory.
func (g *Generator) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(g.dir, p)
}

func (g *Generator) FirmwarePath(name string) string {
	return g.Resolve(filepath.Join(g.Outputs.FirmwareDir, name))
}

func (g *Generator) WebPath(name string) string {
	return g.Resolve(filepath.Join(g.Outputs.WebDir, name))
}

// Mode returns the parsed failure mode. Validate has checked it.
func (g *Generator) Mode() engine.FailureMode {
	mode, _ := engine.ParseFailureMode(g.FailureMode)
	return mode
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}
