package meters

import "strings"

// PhaseTriple is a set of three phase labels that together describe one
// quantity measured across three lines.
type PhaseTriple [3]string

// PhaseTriples are the recognized phase groupings. Phase text must match a
// member exactly; "L1-N" is not "L1 N".
var PhaseTriples = []PhaseTriple{
	{"L1", "L2", "L3"},
	{"L1 N", "L2 N", "L3 N"},
	{"L1 L2", "L2 L3", "L3 L1"},
}

// Contains reports whether phase is a member of t.
func (t PhaseTriple) Contains(phase string) bool {
	for _, p := range t {
		if p == phase {
			return true
		}
	}
	return false
}

// Label renders the triple for the web front end, e.g. "L1-N, L2-N, L3-N".
func (t PhaseTriple) Label() string {
	parts := make([]string, len(t))
	for i, p := range t {
		parts[i] = strings.ReplaceAll(p, " ", "-")
	}
	return strings.Join(parts, ", ")
}

// MatchTriple finds the triple containing phase.
func MatchTriple(phase Classifier) (PhaseTriple, bool) {
	if phase.Empty() || phase.Internal {
		return PhaseTriple{}, false
	}
	for _, t := range PhaseTriples {
		if t.Contains(phase.Text) {
			return t, true
		}
	}
	return PhaseTriple{}, false
}

// GroupEntry is one row of the display order. Grouped entries collect the
// per-phase values of one quantity; standalone entries hold a single value
// and have no key or triple.
type GroupEntry struct {
	Members []Value
	Key     string
	Triple  *PhaseTriple
}

// Grouped reports whether the entry is a phase group.
func (g *GroupEntry) Grouped() bool {
	return g.Triple != nil
}

// UnmatchedPhase notes a value whose phase text matches no triple. Such
// values stay standalone; the note lets the table owner check whether the
// phase spelling is intended. Internal phases such as *Sum are not noted.
type UnmatchedPhase struct {
	ID         uint32
	Identifier string
	Phase      string
}

// Aggregate clusters values that differ only by phase. Entries keep the
// order in which their key was first seen and members keep table order.
func Aggregate(values []Value) ([]*GroupEntry, []UnmatchedPhase) {
	var (
		entries   []*GroupEntry
		unmatched []UnmatchedPhase
	)

	for _, v := range values {
		triple, ok := MatchTriple(v.Phase)
		if !ok {
			if v.Phase.Visible() {
				unmatched = append(unmatched, UnmatchedPhase{ID: v.ID, Identifier: v.Identifier, Phase: v.Phase.Text})
			}
			entries = append(entries, &GroupEntry{Members: []Value{v}})
			continue
		}

		if entry := findGroup(entries, v.GroupKey, triple); entry != nil {
			entry.Members = append(entry.Members, v)
			continue
		}
		t := triple
		entries = append(entries, &GroupEntry{Members: []Value{v}, Key: v.GroupKey, Triple: &t})
	}

	return entries, unmatched
}

func findGroup(entries []*GroupEntry, key string, triple PhaseTriple) *GroupEntry {
	for _, e := range entries {
		if e.Grouped() && e.Key == key && *e.Triple == triple {
			return e
		}
	}
	return nil
}
