// Package table reads the CSV tables the identifier space is maintained in.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const bom = "\ufeff"

// Record is one data row. Values are looked up by column name; Line is the
// 1-based line the row starts on.
type Record struct {
	Line    int
	columns []string
	values  map[string]string
}

// Get returns the value of column, or "" when the row has no such cell.
func (r Record) Get(column string) string {
	return r.values[column]
}

// Columns returns the header in file order.
func (r Record) Columns() []string {
	return r.columns
}

// Load reads a CSV table with a header row. Rows with an empty key column
// are blank separator rows and are skipped.
func Load(r io.Reader, key string) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("table is empty")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], bom)
	}

	hasKey := false
	for _, col := range header {
		if col == key {
			hasKey = true
			break
		}
	}
	if !hasKey {
		return nil, fmt.Errorf("table has no %q column", key)
	}

	var records []Record
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		line, _ := cr.FieldPos(0)
		rec := Record{Line: line, columns: header, values: make(map[string]string, len(header))}
		for i, col := range header {
			if i < len(fields) {
				rec.values[col] = fields[i]
			}
		}

		if rec.Get(key) == "" {
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}

// LoadFile opens path and loads it with Load.
func LoadFile(path, key string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := Load(f, key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}
