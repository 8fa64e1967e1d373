package core

import (
	"sort"
	"strings"
)

// Constraint is an equality predicate on one column.
type Constraint struct {
	Column Column
	Value  string
}

// Eq builds an equality constraint.
func Eq(c Column, value string) Constraint {
	return Constraint{Column: c, Value: value}
}

// ScopeValue normalizes a scope kind ("Pais", "Area") for comparison against
// table cells, which store it lowercased.
func ScopeValue(scope string) string {
	return strings.ToLower(scope)
}

// matches reports whether row i satisfies every constraint. A constraint on
// an absent column or a null cell never matches.
func matches(t *Table, i int, cs []Constraint) bool {
	for _, c := range cs {
		cell, ok := t.Cell(i, c.Column)
		if !ok || !cell.Valid || cell.String != c.Value {
			return false
		}
	}
	return true
}

// DistinctValues returns the sorted distinct non-null values of target among
// rows satisfying all constraints. No match yields an empty slice.
func DistinctValues(t *Table, target Column, cs ...Constraint) []string {
	if !t.HasColumn(target) {
		return []string{}
	}

	seen := make(map[string]struct{})
	out := []string{}
	for i := 0; i < t.Len(); i++ {
		if !matches(t, i, cs) {
			continue
		}
		cell, _ := t.Cell(i, target)
		if !cell.Valid {
			continue
		}
		if _, dup := seen[cell.String]; dup {
			continue
		}
		seen[cell.String] = struct{}{}
		out = append(out, cell.String)
	}

	sort.Strings(out)
	return out
}

// Lookup returns the target value of the first row satisfying all
// constraints. It reports false when no row matches or the cell is null.
func Lookup(t *Table, target Column, cs ...Constraint) (string, bool) {
	for i := 0; i < t.Len(); i++ {
		if !matches(t, i, cs) {
			continue
		}
		cell, ok := t.Cell(i, target)
		if !ok || !cell.Valid {
			return "", false
		}
		return cell.String, true
	}
	return "", false
}

// First returns the first element of values, if any.
func First(values []string) (string, bool) {
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}
