package testing

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
)

// ValueColumns is the header of the value identifier table.
var ValueColumns = []string{
	"id", "measurand", "submeasurand", "phase", "direction", "kind", "unit", "digits",
	"display_name_en", "display_name_en_muted", "display_name_de", "display_name_de_muted",
}

// GroupColumns is the header of the value group table.
var GroupColumns = []string{
	"measurand", "submeasurand", "direction", "kind",
	"display_name_en", "display_name_en_muted", "display_name_de", "display_name_de_muted",
}

// FragmentColumns is the header of the fragment table.
var FragmentColumns = []string{"fragment", "display_name_en", "display_name_de"}

// ValueFixture is one row of the value identifier table.
type ValueFixture struct {
	ID           uint32
	Measurand    string
	Submeasurand string
	Phase        string
	Direction    string
	Kind         string
	Unit         string
	Digits       int
	EN, ENMuted  string
	DE, DEMuted  string
}

func (v ValueFixture) record() []string {
	return []string{
		strconv.FormatUint(uint64(v.ID), 10), v.Measurand, v.Submeasurand, v.Phase, v.Direction, v.Kind,
		v.Unit, strconv.Itoa(v.Digits), v.EN, v.ENMuted, v.DE, v.DEMuted,
	}
}

type GroupFixture struct {
	Measurand    string
	Submeasurand string
	Direction    string
	Kind         string
	EN, ENMuted  string
	DE, DEMuted  string
}

func (g GroupFixture) record() []string {
	return []string{g.Measurand, g.Submeasurand, g.Direction, g.Kind, g.EN, g.ENMuted, g.DE, g.DEMuted}
}

type FragmentFixture struct {
	Fragment string
	EN, DE   string
}

func (f FragmentFixture) record() []string {
	return []string{f.Fragment, f.EN, f.DE}
}

// Tables is a complete set of input tables.
type Tables struct {
	Values    []ValueFixture
	Groups    []GroupFixture
	Fragments []FragmentFixture
}

// ValuesCSV renders the value table.
func (t Tables) ValuesCSV() []byte {
	rows := make([][]string, len(t.Values))
	for i, v := range t.Values {
		rows[i] = v.record()
	}
	return encodeCSV(ValueColumns, rows)
}

func (t Tables) GroupsCSV() []byte {
	rows := make([][]string, len(t.Groups))
	for i, g := range t.Groups {
		rows[i] = g.record()
	}
	return encodeCSV(GroupColumns, rows)
}

func (t Tables) FragmentsCSV() []byte {
	rows := make([][]string, len(t.Fragments))
	for i, f := range t.Fragments {
		rows[i] = f.record()
	}
	return encodeCSV(FragmentColumns, rows)
}

// WriteDir writes the three tables under dir with their default names.
func (t Tables) WriteDir(dir string) error {
	for name, data := range map[string][]byte{
		"meter_value_ids.csv":       t.ValuesCSV(),
		"meter_value_groups.csv":    t.GroupsCSV(),
		"meter_value_fragments.csv": t.FragmentsCSV(),
	} {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			return err
		}
	}
	return nil
}

// SampleTables is a small but complete identifier space: one phase triple,
// a submeasurand, an internal classifier and a German gap.
func SampleTables() Tables {
	return Tables{
		Values: []ValueFixture{
			{ID: 1, Measurand: "Voltage", Phase: "L1 N", Unit: "V", Digits: 1, EN: "Voltage", ENMuted: "L1 N", DE: "Spannung", DEMuted: "L1 N"},
			{ID: 2, Measurand: "Voltage", Phase: "L2 N", Unit: "V", Digits: 1, EN: "Voltage", ENMuted: "L2 N", DE: "Spannung", DEMuted: "L2 N"},
			{ID: 3, Measurand: "Voltage", Phase: "L3 N", Unit: "V", Digits: 1, EN: "Voltage", ENMuted: "L3 N", DE: "Spannung", DEMuted: "L3 N"},
			{ID: 4, Measurand: "Power", Submeasurand: "Active", Direction: "Import", Unit: "W", Digits: 0, EN: "Active power", ENMuted: "import"},
			{ID: 5, Measurand: "Energy", Submeasurand: "Active", Phase: "*Sum", Direction: "Import", Unit: "kWh", Digits: 3, EN: "Active energy", ENMuted: "import", DE: "Wirkenergie", DEMuted: "Bezug"},
		},
		Groups: []GroupFixture{
			{Measurand: "Voltage", EN: "Voltage", DE: "Spannung"},
		},
		Fragments: []FragmentFixture{
			{Fragment: "L1 N", EN: "L1-N", DE: "L1-N"},
			{Fragment: "Import", EN: "import", DE: "Bezug"},
		},
	}
}

func encodeCSV(header []string, rows [][]string) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(header)
	_ = w.WriteAll(rows)
	return buf.Bytes()
}
