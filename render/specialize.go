// Package render provides the text helpers generated files are assembled
// with: triple-brace placeholder substitution for hand-maintained templates
// and the function map for the embedded text/template targets.
package render

import (
	"fmt"
	"sort"
	"strings"
)

// Placeholder returns the marker for name, e.g. "{{{values}}}".
func Placeholder(name string) string {
	return "{{{" + name + "}}}"
}

// Specialize replaces the placeholders named in values. Other placeholders
// are kept verbatim for later build steps to fill. Substituted values are
// not rescanned.
func Specialize(text string, values map[string]string) string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, 0, 2*len(names))
	for _, name := range names {
		pairs = append(pairs, Placeholder(name), values[name])
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

// Require checks that text contains a placeholder for each name.
func Require(text string, names ...string) error {
	var missing []string
	for _, name := range names {
		if !strings.Contains(text, Placeholder(name)) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("template lacks placeholders: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Indent returns the whitespace in front of the first placeholder for name
// on its line, so multi-line values can continue at the same column.
func Indent(text, name string) string {
	idx := strings.Index(text, Placeholder(name))
	if idx < 0 {
		return ""
	}
	start := strings.LastIndexByte(text[:idx], '\n') + 1
	prefix := text[start:idx]
	if strings.TrimLeft(prefix, " \t") != "" {
		return ""
	}
	return prefix
}
