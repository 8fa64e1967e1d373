package core

// validation.go turns raw records into Tables and reports missing columns.
//
// A missing column is never fatal: the column is left out of the table, a
// ColumnWarning is recorded, and every lookup against the column finds no
// rows. Header matching accepts the spreadsheet header, the SQL column name
// or the logical name, all compared after CleanHeader.

import "strings"

// ColumnWarning reports a declared column that the source did not provide.
type ColumnWarning struct {
	Table    string `json:"table"`
	Sheet    string `json:"sheet"`
	Column   Column `json:"column"`
	Header   string `json:"header"`
	Required bool   `json:"required"`
}

// String formats the warning as "<sheet>.<header>".
func (w ColumnWarning) String() string {
	return w.Sheet + "." + w.Header
}

// FormatWarnings joins warnings for display.
func FormatWarnings(ws []ColumnWarning) string {
	parts := make([]string, len(ws))
	for i, w := range ws {
		parts[i] = w.String()
	}
	return strings.Join(parts, ", ")
}

// resolveHeader returns the position of spec in idx, trying each spelling.
func resolveHeader(idx HeaderIndex, spec ColumnSpec) (int, bool) {
	for _, name := range []string{spec.Header, spec.DBColumn, string(spec.Name)} {
		if name == "" {
			continue
		}
		if pos, ok := idx[CleanHeader(name)]; ok {
			return pos, true
		}
	}
	return 0, false
}

// ValidateHeaders maps a header row onto def's columns.
// It returns the position of every column found and a warning for each
// column that is absent.
func ValidateHeaders(def TableDefinition, header []string) (map[Column]int, []ColumnWarning) {
	idx := MakeHeaderIndex(header)
	positions := make(map[Column]int, len(def.Columns))
	var warnings []ColumnWarning

	for _, spec := range def.Columns {
		pos, ok := resolveHeader(idx, spec)
		if !ok {
			warnings = append(warnings, ColumnWarning{
				Table:    def.Key,
				Sheet:    def.Sheet,
				Column:   spec.Name,
				Header:   headerName(spec),
				Required: spec.Required,
			})
			continue
		}
		positions[spec.Name] = pos
	}
	return positions, warnings
}

func headerName(spec ColumnSpec) string {
	if spec.Header != "" {
		return spec.Header
	}
	return string(spec.Name)
}

// TableFromRecords builds a Table for def from a header row and data rows.
// Fully empty rows are skipped. Cells are cleaned with CleanCell.
func TableFromRecords(def TableDefinition, header []string, records [][]string) (*Table, []ColumnWarning) {
	positions, warnings := ValidateHeaders(def, header)

	present := make([]Column, 0, len(positions))
	for _, spec := range def.Columns {
		if _, ok := positions[spec.Name]; ok {
			present = append(present, spec.Name)
		}
	}

	b := NewTableBuilder(def.Key, present...)
	values := make([]string, len(present))
	for _, rec := range records {
		if isBlankRecord(rec) {
			continue
		}
		for i, col := range present {
			pos := positions[col]
			if pos < len(rec) {
				values[i] = CleanCell(rec[pos])
			} else {
				values[i] = ""
			}
		}
		b.Add(values...)
	}
	return b.Build(), warnings
}

// SplitHeader finds the header row (the first non-blank record) and returns
// it with the records that follow. An empty sheet yields a nil header, which
// TableFromRecords reports as every column missing.
func SplitHeader(records [][]string) ([]string, [][]string) {
	for i, rec := range records {
		if isBlankRecord(rec) {
			continue
		}
		return rec, records[i+1:]
	}
	return nil, nil
}

func isBlankRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
