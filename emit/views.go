package emit

import (
	"strings"

	"github.com/cpcf/metergen/meters"
	"github.com/cpcf/metergen/render"
)

type valueView struct {
	Identifier string
	ID         uint32
	Unit       string
	Digits     int
	TreePath   []string
}

// QuotedPath is TreePath with each segment as a string literal.
func (v valueView) QuotedPath() []string {
	out := make([]string, len(v.TreePath))
	for i, seg := range v.TreePath {
		out[i] = render.Quote(seg)
	}
	return out
}

type orderView struct {
	IDs    []string
	Group  string
	Phases string
}

type modelView struct {
	Package string
	Values  []valueView
	Order   []orderView
	Classes []meters.ClassEntry
	Tree    string
}

func newModelView(m *meters.Model) modelView {
	view := modelView{Classes: m.Classes, Tree: formatTree(m.Tree, 0)}

	for _, v := range m.Values {
		view.Values = append(view.Values, valueView{
			Identifier: v.Identifier,
			ID:         v.ID,
			Unit:       v.Unit,
			Digits:     v.Digits,
			TreePath:   v.Path.Segments,
		})
	}

	for _, g := range m.Groups {
		o := orderView{Group: "null", Phases: "null"}
		for _, v := range g.Members {
			o.IDs = append(o.IDs, "MeterValueID."+v.Identifier)
		}
		if g.Grouped() {
			o.Group = render.Quote(g.Key)
			o.Phases = render.Quote(g.Triple.Label())
		}
		view.Order = append(view.Order, o)
	}

	return view
}

// formatTree renders the children of n as nested object literal entries,
// one per line, four spaces per level.
func formatTree(n *meters.Node, depth int) string {
	if n == nil {
		return ""
	}

	var sb strings.Builder
	indent := strings.Repeat("    ", depth+1)
	for _, key := range n.Keys() {
		child := n.Child(key)
		sb.WriteString(indent)
		sb.WriteString(quoteKey(key))
		sb.WriteString(": ")
		switch child.Kind {
		case meters.BranchNode:
			sb.WriteString("{\n")
			sb.WriteString(formatTree(child, depth+1))
			sb.WriteString(indent)
			sb.WriteString("},\n")
		case meters.LeafNode:
			sb.WriteString("MeterValueID.")
			sb.WriteString(child.Identifier)
			sb.WriteString(",\n")
		}
	}
	return sb.String()
}

var keyEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// quoteKey renders a tree segment as a single-quoted object key.
func quoteKey(key string) string {
	return "'" + keyEscaper.Replace(key) + "'"
}
