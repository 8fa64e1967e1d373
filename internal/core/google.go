package core

func init() {
	RegisterResolver(googleResolver{})
}

// googleResolver runs two independent chains: region and expat status pick
// the promotion, while program area and demand-gen pick the modality.
type googleResolver struct{}

func (googleResolver) Platform() Platform { return Google }

func (googleResolver) Fields() []Field {
	return []Field{
		{
			Key:   FieldRegion,
			Label: "Región (país/área)",
			Options: func(s *Store, sel Selection) []string {
				return DistinctValues(s.Promotions(), ColAreaOrProgram,
					Eq(ColPlatform, string(Google)),
					Eq(ColCountryOrArea, ScopeValue(sel.Scope())),
				)
			},
		},
		{
			Key:   FieldParticularity,
			Label: "Expats/No",
			Options: func(s *Store, sel Selection) []string {
				return DistinctValues(s.Promotions(), ColExpatsOrNo,
					Eq(ColPlatform, string(Google)),
					Eq(ColAreaOrProgram, sel.Get(FieldRegion)),
					Eq(ColCountryOrArea, ScopeValue(sel.Scope())),
				)
			},
		},
		{
			Key:   FieldGoogleArea,
			Label: "Área/Programa (Google)",
			Options: func(s *Store, _ Selection) []string {
				return DistinctValues(s.Modalities(), ColAreaOrProgram,
					Eq(ColPlatform, string(Google)),
				)
			},
		},
		{
			Key:   FieldGoogleDemandGen,
			Label: "Demand gen o no",
			Options: func(s *Store, sel Selection) []string {
				return DistinctValues(s.Modalities(), ColParticularity,
					Eq(ColPlatform, string(Google)),
					Eq(ColAreaOrProgram, sel.Get(FieldGoogleArea)),
				)
			},
		},
	}
}

func (googleResolver) Resolve(s *Store, sel Selection) Resolution {
	modality := lookupText(s.Modalities(), ColModality,
		Eq(ColPlatform, string(Google)),
		Eq(ColAreaOrProgram, sel.Get(FieldGoogleArea)),
		Eq(ColParticularity, sel.Get(FieldGoogleDemandGen)),
	)

	promo := lookupText(s.Promotions(), ColPromotion,
		Eq(ColPlatform, string(Google)),
		Eq(ColCountryOrArea, ScopeValue(sel.Scope())),
		Eq(ColAreaOrProgram, sel.Get(FieldRegion)),
		Eq(ColExpatsOrNo, sel.Get(FieldParticularity)),
	)

	return Resolution{
		Promotion: promo,
		Modality:  modality,
		Metadata: []MetaField{
			{Key: "ProgramArea", Label: "Programa/Área (Google)", Value: sel.Get(FieldGoogleArea)},
			{Key: "DemandGen", Label: "Demand gen o no", Value: sel.Get(FieldGoogleDemandGen)},
		},
	}
}
