package core

// convert.go provides cell conversion for tabular source data.
//
// Spreadsheet exports carry the usual artifacts: surrounding whitespace,
// Excel formula prefixes (="value"), stray quotes, byte order marks and
// headers typed with decomposed accents. Every loader funnels raw strings
// through these helpers so the Filter Engine compares clean values.

import (
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
	"golang.org/x/text/unicode/norm"
)

// ToPgText converts a string to pgtype.Text.
// Returns invalid (null) if the string is empty or only whitespace.
func ToPgText(s string) pgtype.Text {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

// TextValue returns the string of t and whether it is present.
func TextValue(t pgtype.Text) (string, bool) {
	return t.String, t.Valid
}

// TextPtr returns a pointer to the string of t, or nil when t is null.
func TextPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}

// CleanCell removes common spreadsheet artifacts from a cell value:
// - Trims whitespace
// - Removes Excel formula prefix (="...")
// - Removes surrounding quotes
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	return strings.TrimSpace(strings.Trim(s, `"'`))
}

// CleanHeader normalizes a header for matching: BOM removed, cell artifacts
// stripped, Unicode NFC composed and lowercased.
func CleanHeader(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	s = CleanCell(s)
	return strings.ToLower(norm.NFC.String(s))
}

// HeaderIndex maps normalized header names to their position in a row.
type HeaderIndex map[string]int

// MakeHeaderIndex creates a HeaderIndex from a header row.
// The first occurrence of a repeated header wins.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		key := CleanHeader(h)
		if key == "" {
			continue
		}
		if _, dup := idx[key]; dup {
			continue
		}
		idx[key] = i
	}
	return idx
}
