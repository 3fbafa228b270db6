package meters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func derive(rows ...ValueRow) []Value {
	values := make([]Value, len(rows))
	for i, r := range rows {
		values[i] = DeriveValue(r)
	}
	return values
}

func identifiers(values []Value) []string {
	ids := make([]string, len(values))
	for i, v := range values {
		ids[i] = v.Identifier
	}
	return ids
}

func TestValidatePaths(t *testing.T) {
	t.Run("disjoint", func(t *testing.T) {
		values := derive(
			row(1, "Power", "", "L1", "", ""),
			row(2, "Power", "", "L2", "", ""),
			row(3, "Power Factor", "", "", "", ""),
		)
		assert.NoError(t, ValidatePaths(values))
	})

	t.Run("structural prefix", func(t *testing.T) {
		values := derive(
			row(1, "Power", "", "L1", "", ""),
			row(2, "Power", "", "", "", ""),
		)
		err := ValidatePaths(values)

		var target *PrefixConflictError
		require.ErrorAs(t, err, &target)
		assert.Equal(t, "power", target.Prefix)
		assert.Equal(t, "power.l1", target.Path)
		assert.Contains(t, err.Error(), "power.l1")
	})

	t.Run("substring is not a prefix", func(t *testing.T) {
		values := derive(
			row(1, "Power", "", "", "", ""),
			row(2, "Power Factor", "", "", "", ""),
		)
		assert.NoError(t, ValidatePaths(values))
	})

	t.Run("duplicate", func(t *testing.T) {
		values := derive(
			row(1, "Power", "", "", "", ""),
			row(2, "power", "", "", "", ""),
		)
		var target *DuplicatePathError
		require.ErrorAs(t, ValidatePaths(values), &target)
	})
}

func TestAggregatePhaseTriple(t *testing.T) {
	values := derive(
		row(1, "Voltage", "", "L1 N", "", ""),
		row(2, "Power", "", "", "", ""),
		row(3, "Voltage", "", "L2 N", "", ""),
		row(4, "Voltage", "", "L3 N", "", ""),
	)

	groups, unmatched := Aggregate(values)
	require.Len(t, groups, 2)
	assert.Empty(t, unmatched)

	assert.True(t, groups[0].Grouped())
	assert.Equal(t, "voltage", groups[0].Key)
	assert.Equal(t, "L1-N, L2-N, L3-N", groups[0].Triple.Label())
	assert.Equal(t, []string{"VoltageL1N", "VoltageL2N", "VoltageL3N"}, identifiers(groups[0].Members))

	assert.False(t, groups[1].Grouped())
	assert.Empty(t, groups[1].Key)
	assert.Equal(t, []string{"Power"}, identifiers(groups[1].Members))
}

func TestAggregateSeparatesTriples(t *testing.T) {
	values := derive(
		row(1, "Voltage", "", "L1", "", ""),
		row(2, "Voltage", "", "L1 L2", "", ""),
		row(3, "Voltage", "", "L2", "", ""),
		row(4, "Current", "", "L1", "", ""),
	)

	groups, _ := Aggregate(values)
	require.Len(t, groups, 3)
	assert.Equal(t, []string{"VoltageL1", "VoltageL2"}, identifiers(groups[0].Members))
	assert.Equal(t, "L1, L2, L3", groups[0].Triple.Label())
	assert.Equal(t, []string{"VoltageL1L2"}, identifiers(groups[1].Members))
	assert.Equal(t, "L1-L2, L2-L3, L3-L1", groups[1].Triple.Label())
	assert.Equal(t, []string{"CurrentL1"}, identifiers(groups[2].Members))
}

func TestAggregateUnmatchedPhase(t *testing.T) {
	values := derive(
		row(1, "Voltage", "", "L1-N", "", ""),
		row(2, "Voltage", "", "*L2", "", ""),
	)

	groups, unmatched := Aggregate(values)
	require.Len(t, groups, 2)
	assert.False(t, groups[0].Grouped())
	assert.False(t, groups[1].Grouped())

	require.Len(t, unmatched, 1, "internal phases are not noted")
	assert.Equal(t, UnmatchedPhase{ID: 1, Identifier: "VoltageL1-N", Phase: "L1-N"}, unmatched[0])
}

func TestBuildTree(t *testing.T) {
	values := derive(
		row(1, "Power", "", "L1", "", ""),
		row(2, "Power", "", "L2", "", ""),
		row(3, "Current", "", "", "", ""),
	)

	tree, err := BuildTree(values)
	require.NoError(t, err)

	assert.Equal(t, BranchNode, tree.Kind)
	assert.Equal(t, []string{"power", "current"}, tree.Keys())

	power := tree.Child("power")
	require.NotNil(t, power)
	assert.Equal(t, BranchNode, power.Kind)
	assert.Equal(t, []string{"l1", "l2"}, power.Keys())
	assert.Equal(t, LeafNode, power.Child("l1").Kind)
	assert.Equal(t, "PowerL1", power.Child("l1").Identifier)

	assert.Equal(t, "Current", tree.Child("current").Identifier)
}

func TestTreeInsertConflicts(t *testing.T) {
	tree := NewBranch()
	require.NoError(t, tree.Insert(Path{Segments: []string{"power"}, Leaf: "Power"}))

	err := tree.Insert(Path{Segments: []string{"power", "l1"}, Leaf: "PowerL1"})
	var prefix *PrefixConflictError
	require.ErrorAs(t, err, &prefix)
	assert.Equal(t, "power", prefix.Prefix)

	tree = NewBranch()
	require.NoError(t, tree.Insert(Path{Segments: []string{"power", "l1"}, Leaf: "PowerL1"}))
	err = tree.Insert(Path{Segments: []string{"power"}, Leaf: "Power"})
	require.ErrorAs(t, err, &prefix)
	assert.Equal(t, "power.l1", prefix.Path)

	var dup *DuplicatePathError
	err = tree.Insert(Path{Segments: []string{"power", "l1"}, Leaf: "Other"})
	require.ErrorAs(t, err, &dup)
}

func TestClassEntries(t *testing.T) {
	entries, err := ClassEntries(Classes)
	require.NoError(t, err)
	require.Len(t, entries, len(Classes))

	want := []string{"None", "RS485Bricklet", "EVSEV2", "EnergyManager", "API", "SunSpec", "ModbusTCP", "MQTTSubscription"}
	for i, e := range entries {
		assert.Equal(t, i, e.Ordinal)
		assert.Equal(t, want[i], e.Identifier)
	}
}

func TestClassEntriesAppendKeepsOrdinals(t *testing.T) {
	before, err := ClassEntries(Classes)
	require.NoError(t, err)

	extended := append(append([]string(nil), Classes...), "meter over http")
	after, err := ClassEntries(extended)
	require.NoError(t, err)

	assert.Equal(t, before, after[:len(before)])
	assert.Equal(t, "MeterOverHttp", after[len(before)].Identifier)
	assert.Equal(t, len(before), after[len(before)].Ordinal)
}

func TestClassEntriesRejects(t *testing.T) {
	_, err := ClassEntries([]string{"None", "none"})
	assert.Error(t, err, "lower-case first letter is title-cased into a duplicate")

	_, err = ClassEntries([]string{"1st Meter"})
	assert.Error(t, err)
}

func TestTranslationsMissingFallback(t *testing.T) {
	b := NewBuilder()
	r := row(7, "Power", "", "L1", "", "")
	r.Labels = map[Locale]Label{
		LocaleEN: {Text: "Power", Muted: "L1"},
		LocaleDE: {Muted: "L1"},
	}
	_, err := b.AddValue(r)
	require.NoError(t, err)

	en := b.Translations().Bundle(LocaleEN)
	de := b.Translations().Bundle(LocaleDE)
	assert.Equal(t, []Entry{{Key: "value_7", Value: "Power"}, {Key: "value_7_muted", Value: "L1"}}, en.Values)
	assert.Equal(t, []Entry{{Key: "value_7", Value: "TRANSLATION_MISSING Power L1"}, {Key: "value_7_muted", Value: "L1"}}, de.Values)
}

func TestTranslationsGroupsAndFragments(t *testing.T) {
	b := NewBuilder(LocaleEN, LocaleDE)
	b.AddGroup(GroupRow{
		Measurand: ParseClassifier("Energy"),
		Direction: ParseClassifier("Import"),
		Kind:      ParseClassifier("*Internal"),
		Labels:    map[Locale]Label{LocaleEN: {Text: "Energy import"}},
	})
	b.AddFragment(FragmentRow{
		Fragment: "Active Power",
		Labels:   map[Locale]Label{LocaleDE: {Text: "Wirkleistung"}},
	})

	en := b.Translations().Bundle(LocaleEN)
	de := b.Translations().Bundle(LocaleDE)

	assert.Equal(t, []Entry{
		{Key: "group_energy_import", Value: "Energy import"},
		{Key: "group_energy_import_muted", Value: ""},
	}, en.Groups)
	assert.Equal(t, "TRANSLATION_MISSING Energy Import", de.Groups[0].Value)

	assert.Equal(t, []Entry{{Key: "fragment_active_power", Value: "TRANSLATION_MISSING Active Power"}}, en.Fragments)
	assert.Equal(t, []Entry{{Key: "fragment_active_power", Value: "Wirkleistung"}}, de.Fragments)
}

func TestBuild(t *testing.T) {
	in := Input{
		Values: []ValueRow{
			row(1, "Voltage", "", "L1 N", "", ""),
			row(2, "Voltage", "", "L2 N", "", ""),
			row(3, "Voltage", "", "L3 N", "", ""),
			row(4, "Power", "", "", "", ""),
		},
		Classes: Classes,
	}

	m, err := Build(in)
	require.NoError(t, err)
	assert.Len(t, m.Values, 4)
	assert.Len(t, m.Groups, 2)
	assert.Len(t, m.Classes, len(Classes))
	assert.Equal(t, []string{"voltage", "power"}, m.Tree.Keys())
	assert.Equal(t, []Locale{LocaleEN, LocaleDE}, m.Translations.Locales())
}

func TestBuildAdditiveChangeIsStable(t *testing.T) {
	base := []ValueRow{
		row(1, "Voltage", "", "L1 N", "", ""),
		row(2, "Power", "", "", "Import", ""),
	}
	before, err := Build(Input{Values: base})
	require.NoError(t, err)

	after, err := Build(Input{Values: append(append([]ValueRow(nil), base...), row(3, "Voltage", "", "L2 N", "", ""))})
	require.NoError(t, err)

	for i, v := range before.Values {
		assert.Equal(t, v.ID, after.Values[i].ID)
		assert.Equal(t, v.Identifier, after.Values[i].Identifier)
		assert.Equal(t, v.Path, after.Values[i].Path)
	}
}

func TestBuildAbortsOnPrefixConflict(t *testing.T) {
	_, err := Build(Input{Values: []ValueRow{
		row(1, "Power", "", "L1", "", ""),
		row(2, "Power", "", "", "", ""),
	}})

	var target *PrefixConflictError
	require.ErrorAs(t, err, &target)
}
