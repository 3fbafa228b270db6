package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cpcf/metergen/engine"
)

type sample struct {
	Name    string            `yaml:"name"`
	Options map[string]string `yaml:"options"`

	defaulted bool
}

func (s *sample) Defaults() {
	s.defaulted = true
	if s.Name == "" {
		s.Name = "default"
	}
}

func (s *sample) Validate() error {
	if s.Name == "invalid" {
		return errors.New("name must not be invalid")
	}
	return nil
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFile)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "name: meters\noptions:\n  debug: \"true\"\n")

	var s sample
	if err := LoadYAML(path, &s); err != nil {
		t.Fatalf("LoadYAML failed: %v", err)
	}
	if s.Name != "meters" || s.Options["debug"] != "true" {
		t.Errorf("decoded = %+v", s)
	}
	if !s.defaulted {
		t.Error("Defaults was not called")
	}
}

func TestLoadYAMLErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown field", "name: x\nnmae: y\n", "nmae"},
		{"syntax", "name: [unclosed\n", "parse YAML"},
		{"validation", "name: invalid\n", "invalid configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s sample
			err := LoadYAML(writeConfig(t, tt.content), &s)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to mention %q", err, tt.want)
			}
		})
	}

	var s sample
	if err := LoadYAML(filepath.Join(t.TempDir(), "absent.yaml"), &s); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadYAMLFromStringEmpty(t *testing.T) {
	var s sample
	if err := LoadYAMLFromString("", &s); err != nil {
		t.Fatalf("empty document: %v", err)
	}
	if s.Name != "default" {
		t.Errorf("Name = %q, want default", s.Name)
	}
}

func TestGeneratorDefaults(t *testing.T) {
	var g Generator
	if err := LoadYAMLFromString("", &g); err != nil {
		t.Fatal(err)
	}

	if g.Inputs.Values != "meter_value_ids.csv" || g.Outputs.ValueHeader != "meter_value_id.h" {
		t.Errorf("defaults not applied: %+v", g)
	}
	if len(g.Translations) != 2 || g.Translations[0].Locale != "en" || g.Translations[1].Output != "translation_de.tsx" {
		t.Errorf("Translations = %+v", g.Translations)
	}
	if g.Mode() != engine.FailAtEnd {
		t.Errorf("Mode = %s", g.Mode())
	}
	if g.Outputs.GoFile != "" {
		t.Errorf("Go output enabled by default")
	}
}

func TestGeneratorValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown locale", "translations:\n  - locale: fr\n", `"fr"`},
		{"duplicate locale", "translations:\n  - locale: en\n  - locale: en\n", "twice"},
		{"bad package", "outputs:\n  go_file: x.go\n  go_package: meter-defs\n", "go_package"},
		{"bad failure mode", "failure_mode: sometimes\n", "failure_mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var g Generator
			err := LoadYAMLFromString(tt.content, &g)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadGeneratorResolvesPaths(t *testing.T) {
	path := writeConfig(t, `
inputs:
  values: tables/values.csv
outputs:
  firmware_dir: ../firmware
  web_dir: web
translations:
  - locale: de
    template: web/translation_de.tsx.template
failure_mode: best-effort
`)
	dir := filepath.Dir(path)

	g, err := LoadGenerator(path)
	if err != nil {
		t.Fatalf("LoadGenerator failed: %v", err)
	}

	if got := g.Resolve(g.Inputs.Values); got != filepath.Join(dir, "tables", "values.csv") {
		t.Errorf("values path = %s", got)
	}
	if got := g.FirmwarePath(g.Outputs.ValueHeader); got != filepath.Join(filepath.Dir(dir), "firmware", "meter_value_id.h") {
		t.Errorf("firmware path = %s", got)
	}
	if got := g.WebPath(g.Translations[0].Output); got != filepath.Join(dir, "web", "translation_de.tsx") {
		t.Errorf("translation path = %s", got)
	}
	if g.Resolve("") != "" {
		t.Error("empty path should stay empty")
	}
	if g.Mode() != engine.BestEffort {
		t.Errorf("Mode = %s", g.Mode())
	}
}

func TestLoadGeneratorTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metergen.toml")
	content := `failure_mode = "fail-fast"

[outputs]
web_dir = "web"

[[translations]]
locale = "de"
output = "i18n/de.tsx"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	g, err := LoadGenerator(path)
	if err != nil {
		t.Fatalf("LoadGenerator: %v", err)
	}
	if g.Mode() != engine.FailFast {
		t.Errorf("mode = %v, want fail-fast", g.Mode())
	}
	if len(g.Translations) != 1 || g.Translations[0].Output != "i18n/de.tsx" {
		t.Errorf("translations = %+v", g.Translations)
	}
	if g.Inputs.Values != "meter_value_ids.csv" {
		t.Errorf("defaults not applied: %+v", g.Inputs)
	}
	if want := filepath.Join(filepath.Dir(path), "web", "i18n", "de.tsx"); g.WebPath(g.Translations[0].Output) != want {
		t.Errorf("web path = %q, want %q", g.WebPath(g.Translations[0].Output), want)
	}
}

func TestLoadTOMLRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metergen.toml")
	if err := os.WriteFile(path, []byte("unknown_key = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadGenerator(path); err == nil {
		t.Fatal("expected an error for an unknown key")
	}
}
