package table

import (
	"fmt"
	"strconv"

	"github.com/cpcf/metergen/meters"
)

// Key columns of the three tables.
const (
	ValueKey    = "id"
	GroupKey    = "measurand"
	FragmentKey = "fragment"
)

// RowError locates a cell that could not be decoded.
type RowError struct {
	Line   int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d, column %s: %v", e.Line, e.Column, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// DecodeValues turns value identifier records into rows.
func DecodeValues(records []Record) ([]meters.ValueRow, error) {
	rows := make([]meters.ValueRow, 0, len(records))
	for _, rec := range records {
		id, err := strconv.ParseUint(rec.Get("id"), 10, 32)
		if err != nil {
			return nil, &RowError{Line: rec.Line, Column: "id", Err: err}
		}
		digits, err := strconv.Atoi(rec.Get("digits"))
		if err != nil {
			return nil, &RowError{Line: rec.Line, Column: "digits", Err: err}
		}

		rows = append(rows, meters.ValueRow{
			ID:           uint32(id),
			Measurand:    meters.ParseClassifier(rec.Get("measurand")),
			Submeasurand: meters.ParseClassifier(rec.Get("submeasurand")),
			Phase:        meters.ParseClassifier(rec.Get("phase")),
			Direction:    meters.ParseClassifier(rec.Get("direction")),
			Kind:         meters.ParseClassifier(rec.Get("kind")),
			Unit:         rec.Get("unit"),
			Digits:       digits,
			Labels:       labels(rec, true),
		})
	}
	return rows, nil
}

// DecodeGroups turns value group records into rows.
func DecodeGroups(records []Record) []meters.GroupRow {
	rows := make([]meters.GroupRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, meters.GroupRow{
			Measurand:    meters.ParseClassifier(rec.Get("measurand")),
			Submeasurand: meters.ParseClassifier(rec.Get("submeasurand")),
			Direction:    meters.ParseClassifier(rec.Get("direction")),
			Kind:         meters.ParseClassifier(rec.Get("kind")),
			Labels:       labels(rec, true),
		})
	}
	return rows
}

// DecodeFragments turns fragment records into rows.
func DecodeFragments(records []Record) []meters.FragmentRow {
	rows := make([]meters.FragmentRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, meters.FragmentRow{
			Fragment: rec.Get("fragment"),
			Labels:   labels(rec, false),
		})
	}
	return rows
}

func labels(rec Record, muted bool) map[meters.Locale]meters.Label {
	out := make(map[meters.Locale]meters.Label, len(meters.Locales))
	for _, l := range meters.Locales {
		label := meters.Label{Text: rec.Get("display_name_" + string(l))}
		if muted {
			label.Muted = rec.Get("display_name_" + string(l) + "_muted")
		}
		out[l] = label
	}
	return out
}
