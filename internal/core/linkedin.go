package core

import "github.com/jackc/pgx/v5/pgtype"

func init() {
	RegisterResolver(linkedInResolver{})
}

// linkedInResolver enumerates regions from the area/country table and the
// campaign type (Column1) from the modality table.
type linkedInResolver struct{}

func (linkedInResolver) Platform() Platform { return LinkedIn }

func (linkedInResolver) Fields() []Field {
	return []Field{
		{
			Key:   FieldRegion,
			Label: "Región (país/área)",
			Options: func(s *Store, sel Selection) []string {
				return DistinctValues(s.AreaCountries(), ColParticularity,
					Eq(ColPlatform, string(LinkedIn)),
					Eq(ColAreaOrProgram, ScopeValue(sel.Scope())),
				)
			},
		},
		{
			Key:   FieldParticularity,
			Label: "Tipo de campaña (Columna1)",
			Options: func(s *Store, sel Selection) []string {
				return DistinctValues(s.Modalities(), ColColumn1,
					Eq(ColPlatform, string(LinkedIn)),
					Eq(ColParticularity, sel.Get(FieldRegion)),
				)
			},
		},
	}
}

// Resolve takes the lowest promotion listed for LinkedIn regardless of scope
// or region, and the modality for the full (scope, region, Column1) key.
func (linkedInResolver) Resolve(s *Store, sel Selection) Resolution {
	var promo pgtype.Text
	if v, ok := First(DistinctValues(s.Promotions(), ColPromotion, Eq(ColPlatform, string(LinkedIn)))); ok {
		promo = pgtype.Text{String: v, Valid: true}
	}

	modality := lookupText(s.Modalities(), ColModality,
		Eq(ColPlatform, string(LinkedIn)),
		Eq(ColAreaOrProgram, ScopeValue(sel.Scope())),
		Eq(ColParticularity, sel.Get(FieldRegion)),
		Eq(ColColumn1, sel.Get(FieldParticularity)),
	)

	return Resolution{Promotion: promo, Modality: modality}
}
