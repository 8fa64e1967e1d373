package core

import (
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// BuildCode returns uppercase(promotion) followed by uppercase(modality),
// with no separator. If either input is absent the result is invalid, which
// callers treat as "incomplete"; this is distinct from a valid empty code.
func BuildCode(promotion, modality pgtype.Text) pgtype.Text {
	if !promotion.Valid || !modality.Valid {
		return pgtype.Text{}
	}
	return pgtype.Text{
		String: strings.ToUpper(promotion.String) + strings.ToUpper(modality.String),
		Valid:  true,
	}
}

// lookupText wraps Lookup into a pgtype.Text.
func lookupText(t *Table, target Column, cs ...Constraint) pgtype.Text {
	v, ok := Lookup(t, target, cs...)
	if !ok {
		return pgtype.Text{}
	}
	return pgtype.Text{String: v, Valid: true}
}
