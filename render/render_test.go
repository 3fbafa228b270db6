package render

import (
	"strings"
	"testing"
	"text/template"
)

func TestSpecialize(t *testing.T) {
	text := "export const {{{locale}}} = {\n    {{{values}}}\n};\n"

	out := Specialize(text, map[string]string{
		"locale": "en",
		"values": "a: 1,",
		"unused": "x",
	})

	want := "export const en = {\n    a: 1,\n};\n"
	if out != want {
		t.Errorf("Specialize = %q, want %q", out, want)
	}
}

func TestSpecializeKeepsUnknownPlaceholders(t *testing.T) {
	out := Specialize(`{{{values}}} <a href="{{{manual_url}}}">`, map[string]string{"values": "v"})
	if want := `v <a href="{{{manual_url}}}">`; out != want {
		t.Errorf("Specialize = %q, want %q", out, want)
	}
}

func TestSpecializeDoesNotRescan(t *testing.T) {
	out := Specialize("{{{a}}}", map[string]string{"a": "{{{b}}}x", "b": "y"})
	if out != "{{{b}}}x" {
		t.Errorf("Specialize = %q, want substituted value kept literal", out)
	}
}

func TestRequire(t *testing.T) {
	if err := Require("{{{values}}}{{{groups}}}", "values", "groups"); err != nil {
		t.Errorf("Require failed: %v", err)
	}
	err := Require("{{{values}}}", "values", "fragments")
	if err == nil || !strings.Contains(err.Error(), "fragments") {
		t.Errorf("Require error = %v, want missing fragments", err)
	}
}

func TestIndent(t *testing.T) {
	text := "const x = {\n        {{{values}}}\n    };\ny({{{groups}}})"

	if got := Indent(text, "values"); got != "        " {
		t.Errorf("Indent(values) = %q", got)
	}
	if got := Indent(text, "groups"); got != "" {
		t.Errorf("Indent(groups) = %q, want empty for inline placeholder", got)
	}
	if got := Indent(text, "missing"); got != "" {
		t.Errorf("Indent(missing) = %q", got)
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`plain`, `"plain"`},
		{`say "hi"`, `"say \"hi\""`},
		{`a\b`, `"a\\b"`},
		{`Wirkleistung Bezug <L1>`, `"Wirkleistung Bezug <L1>"`},
		{"Spannung Ü", "\"Spannung Ü\""},
	}

	for _, tt := range tests {
		if got := Quote(tt.in); got != tt.want {
			t.Errorf("Quote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestStringList(t *testing.T) {
	if got := StringList([]string{"power", "l1"}); got != `["power", "l1"]` {
		t.Errorf("StringList = %s", got)
	}
	if got := StringList(nil); got != `[]` {
		t.Errorf("StringList(nil) = %s", got)
	}
}

func TestDefaultFuncMap(t *testing.T) {
	tmpl := template.Must(template.New("t").Funcs(DefaultFuncMap()).Parse(
		`{{quote .Name}}|{{stringList .Path}}|{{join .Path "."}}`))

	var sb strings.Builder
	data := map[string]any{"Name": "x", "Path": []string{"power", "l1"}}
	if err := tmpl.Execute(&sb, data); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	want := `"x"|["power", "l1"]|power.l1`
	if sb.String() != want {
		t.Errorf("got %q, want %q", sb.String(), want)
	}
}
