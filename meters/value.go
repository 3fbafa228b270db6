package meters

import (
	"regexp"
	"strings"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidIdentifier reports whether s can be used as an enum member name in
// every target language.
func ValidIdentifier(s string) bool {
	return identifierPattern.MatchString(s)
}

// Path is the position of a value in the display tree: classifier segments
// followed by the value's identifier as leaf.
type Path struct {
	Segments []string
	Leaf     string
}

// Flat joins the segments with dots. The leaf is not part of it.
func (p Path) Flat() string {
	return strings.Join(p.Segments, ".")
}

// Equal reports whether both paths have the same segments.
func (p Path) Equal(other Path) bool {
	if len(p.Segments) != len(other.Segments) {
		return false
	}
	for i := range p.Segments {
		if p.Segments[i] != other.Segments[i] {
			return false
		}
	}
	return true
}

// IsPrefixOf reports whether p's segments are a strict leading subsequence of
// other's. "power" is a prefix of "power.l1" but not of "power_factor".
func (p Path) IsPrefixOf(other Path) bool {
	if len(p.Segments) >= len(other.Segments) {
		return false
	}
	for i := range p.Segments {
		if p.Segments[i] != other.Segments[i] {
			return false
		}
	}
	return true
}

// Value is a value row with everything derived from its classifiers.
type Value struct {
	ValueRow

	// Name joins the visible classifiers with spaces, e.g. "Power L1".
	Name             string
	NameWithoutPhase string
	// Identifier is Name without spaces and names the enum member.
	Identifier string
	// GroupKey is the phase-less name in snake case; values sharing it
	// are candidates for a phase group.
	GroupKey string
	Path     Path
}

// DeriveValue computes names, identifier and tree path for row.
func DeriveValue(row ValueRow) Value {
	v := Value{ValueRow: row}
	v.Name = joinVisible(row.classifiers(), " ")
	v.NameWithoutPhase = joinVisible(row.classifiersWithoutPhase(), " ")
	v.Identifier = strings.ReplaceAll(v.Name, " ", "")
	v.GroupKey = strings.ToLower(strings.ReplaceAll(v.NameWithoutPhase, " ", "_"))

	for _, c := range row.classifiers() {
		if c.Empty() {
			continue
		}
		v.Path.Segments = append(v.Path.Segments, c.Segment())
	}
	v.Path.Leaf = v.Identifier
	return v
}
