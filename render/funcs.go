package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"text/template"
)

// DefaultFuncMap is the function set every embedded template is parsed
// with.
func DefaultFuncMap() template.FuncMap {
	return template.FuncMap{
		"join":       strings.Join,
		"quote":      Quote,
		"stringList": StringList,
	}
}

// Quote renders s as a double-quoted string literal valid in both C++ and
// TypeScript. Non-ASCII text is kept as UTF-8.
func Quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return `""`
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// StringList renders items as a literal array: ["a", "b"].
func StringList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = Quote(item)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
