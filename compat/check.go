package compat

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/cpcf/metergen/meters"
)

type Kind int

const (
	RemovedID Kind = iota
	RenamedID
	RenumberedIdentifier
	ChangedPath
	ClassChanged
)

func (k Kind) String() string {
	switch k {
	case RemovedID:
		return "removed id"
	case RenamedID:
		return "renamed id"
	case RenumberedIdentifier:
		return "renumbered identifier"
	case ChangedPath:
		return "changed tree path"
	case ClassChanged:
		return "changed class"
	default:
		return "unknown"
	}
}

// Violation is one breaking difference. ID is the value ID, or the class
// ordinal for ClassChanged.
type Violation struct {
	Kind Kind
	ID   uint32
	Old  string
	New  string
}

func (v Violation) String() string {
	if v.New == "" {
		return fmt.Sprintf("%s %d: %s was removed", v.Kind, v.ID, v.Old)
	}
	return fmt.Sprintf("%s %d: %s -> %s", v.Kind, v.ID, v.Old, v.New)
}

// Report lists every breaking change. It is returned as an error.
type Report struct {
	Violations []Violation
}

func (r *Report) Error() string {
	lines := make([]string, len(r.Violations))
	for i, v := range r.Violations {
		lines[i] = "  " + v.String()
	}
	return fmt.Sprintf("%d breaking identifier changes:\n%s", len(r.Violations), strings.Join(lines, "\n"))
}

// Check compares model against the previous snapshot and returns nil when
// every published ID, identifier, tree path and class ordinal survived.
func Check(prev *Snapshot, model *meters.Model) *Report {
	byID := make(map[uint32]meters.Value, len(model.Values))
	byIdentifier := make(map[string]uint32, len(model.Values))
	for _, v := range model.Values {
		byID[v.ID] = v
		byIdentifier[v.Identifier] = v.ID
	}

	var violations []Violation
	for _, old := range sortedMembers(prev.Values) {
		cur, ok := byID[old.Value]
		switch {
		case !ok:
			violations = append(violations, Violation{Kind: RemovedID, ID: old.Value, Old: old.Identifier})
		case cur.Identifier != old.Identifier:
			violations = append(violations, Violation{Kind: RenamedID, ID: old.Value, Old: old.Identifier, New: cur.Identifier})
		}

		if id, ok := byIdentifier[old.Identifier]; ok && id != old.Value {
			violations = append(violations, Violation{
				Kind: RenumberedIdentifier,
				ID:   old.Value,
				Old:  old.Identifier,
				New:  fmt.Sprintf("%s = %d", old.Identifier, id),
			})
		}

		if oldPath, known := prev.Paths[old.Value]; known && ok && !slices.Equal(oldPath, cur.Path.Segments) {
			violations = append(violations, Violation{
				Kind: ChangedPath,
				ID:   old.Value,
				Old:  strings.Join(oldPath, "."),
				New:  cur.Path.Flat(),
			})
		}
	}

	classes := make(map[int]string, len(model.Classes))
	for _, c := range model.Classes {
		classes[c.Ordinal] = c.Identifier
	}
	for _, old := range sortedMembers(prev.Classes) {
		if cur := classes[int(old.Value)]; cur != old.Identifier {
			violations = append(violations, Violation{Kind: ClassChanged, ID: old.Value, Old: old.Identifier, New: cur})
		}
	}

	if len(violations) == 0 {
		return nil
	}
	return &Report{Violations: violations}
}

func sortedMembers(members []Member) []Member {
	out := append([]Member(nil), members...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}
