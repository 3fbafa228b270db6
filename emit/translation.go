package emit

import (
	"strings"

	"github.com/cpcf/metergen/meters"
	"github.com/cpcf/metergen/render"
)

// Translation placeholders. Hand-maintained templates must contain the
// three section placeholders; {{{locale}}} is optional. Any other
// placeholder is left for the web build to fill.
const (
	PlaceholderValues    = "values"
	PlaceholderGroups    = "groups"
	PlaceholderFragments = "fragments"
	PlaceholderLocale    = "locale"
)

// DefaultTranslationTemplate is used for locales without a configured
// template.
func DefaultTranslationTemplate() string {
	data, err := templates.ReadFile("templates/translation/translation.tsx.template")
	if err != nil {
		panic(err)
	}
	return string(data)
}

// Translation fills tmpl with the entries of b. Each entry is written as
// `"key": "value",` on its own line, aligned with its placeholder.
func Translation(b *meters.Bundle, tmpl string) ([]byte, error) {
	if tmpl == "" {
		tmpl = DefaultTranslationTemplate()
	}
	if err := render.Require(tmpl, PlaceholderValues, PlaceholderGroups, PlaceholderFragments); err != nil {
		return nil, err
	}

	out := render.Specialize(tmpl, map[string]string{
		PlaceholderValues:    formatEntries(b.Values, render.Indent(tmpl, PlaceholderValues)),
		PlaceholderGroups:    formatEntries(b.Groups, render.Indent(tmpl, PlaceholderGroups)),
		PlaceholderFragments: formatEntries(b.Fragments, render.Indent(tmpl, PlaceholderFragments)),
		PlaceholderLocale:    string(b.Locale),
	})
	return []byte(out), nil
}

func formatEntries(entries []meters.Entry, indent string) string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = render.Quote(e.Key) + ": " + render.Quote(e.Value) + ","
	}
	return strings.Join(lines, "\n"+indent)
}
