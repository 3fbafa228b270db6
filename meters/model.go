package meters

import "fmt"

// Input is everything read from the tables plus the class list.
type Input struct {
	Values    []ValueRow
	Groups    []GroupRow
	Fragments []FragmentRow
	Classes   []string
	Locales   []Locale
}

// Model is the validated identifier space handed to the emitters.
type Model struct {
	Values       []Value
	Groups       []*GroupEntry
	Tree         *Node
	Translations *Translations
	Classes      []ClassEntry
	Unmatched    []UnmatchedPhase
}

// Build runs builder, path validation and grouping over in. Any structural
// error aborts the whole build.
func Build(in Input) (*Model, error) {
	b := NewBuilder(in.Locales...)

	for _, row := range in.Groups {
		b.AddGroup(row)
	}
	for _, row := range in.Fragments {
		b.AddFragment(row)
	}
	for _, row := range in.Values {
		if _, err := b.AddValue(row); err != nil {
			return nil, err
		}
	}

	values := b.Values()
	if err := ValidatePaths(values); err != nil {
		return nil, err
	}

	tree, err := BuildTree(values)
	if err != nil {
		return nil, fmt.Errorf("build value tree: %w", err)
	}

	classes, err := ClassEntries(in.Classes)
	if err != nil {
		return nil, err
	}

	groups, unmatched := Aggregate(values)

	return &Model{
		Values:       values,
		Groups:       groups,
		Tree:         tree,
		Translations: b.Translations(),
		Classes:      classes,
		Unmatched:    unmatched,
	}, nil
}
