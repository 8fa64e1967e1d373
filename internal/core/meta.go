package core

func init() {
	RegisterResolver(metaResolver{})
}

// metaResolver cascades area -> campaign type -> zone -> zone area through
// the modality table. The promotion is looked up with the top-level region,
// not with the Meta area chosen inside the cascade.
type metaResolver struct{}

func (metaResolver) Platform() Platform { return Meta }

// metaChain returns the modality constraints for the Meta fields chosen so
// far, stopping at the first unset one.
func metaChain(sel Selection) []Constraint {
	cs := []Constraint{Eq(ColPlatform, string(Meta))}
	steps := []struct {
		key FieldKey
		col Column
	}{
		{FieldMetaArea, ColAreaOrProgram},
		{FieldMetaCampaignType, ColParticularity},
		{FieldMetaZone, ColMetaZone},
		{FieldMetaZoneArea, ColColumn1},
	}
	for _, st := range steps {
		v, ok := sel[st.key]
		if !ok {
			break
		}
		cs = append(cs, Eq(st.col, v))
	}
	return cs
}

func metaStep(key FieldKey, label string, target Column) Field {
	return Field{
		Key:   key,
		Label: label,
		Options: func(s *Store, sel Selection) []string {
			return DistinctValues(s.Modalities(), target, metaChain(sel)...)
		},
	}
}

func (metaResolver) Fields() []Field {
	return []Field{
		{
			Key:   FieldRegion,
			Label: "Región (país/área)",
			Options: func(s *Store, sel Selection) []string {
				return DistinctValues(s.Promotions(), ColAreaOrProgram,
					Eq(ColPlatform, string(Meta)),
					Eq(ColCountryOrArea, ScopeValue(sel.Scope())),
				)
			},
		},
		metaStep(FieldMetaArea, "Área/Programa (Meta)", ColAreaOrProgram),
		metaStep(FieldMetaCampaignType, "Tipo de campaña", ColParticularity),
		metaStep(FieldMetaZone, "Zona Meta", ColMetaZone),
		metaStep(FieldMetaZoneArea, "Área de programas (según Zona)", ColColumn1),
	}
}

func (metaResolver) Resolve(s *Store, sel Selection) Resolution {
	modality := lookupText(s.Modalities(), ColModality, metaChain(sel)...)

	promo := lookupText(s.Promotions(), ColPromotion,
		Eq(ColPlatform, string(Meta)),
		Eq(ColCountryOrArea, ScopeValue(sel.Scope())),
		Eq(ColAreaOrProgram, sel.Get(FieldRegion)),
	)

	return Resolution{
		Promotion: promo,
		Modality:  modality,
		Metadata: []MetaField{
			{Key: "ProgramArea", Label: "Programa/Área", Value: sel.Get(FieldMetaArea)},
			{Key: "CampaignType", Label: "Tipo de campaña", Value: sel.Get(FieldMetaCampaignType)},
			{Key: "MetaZone", Label: "Zona Meta", Value: sel.Get(FieldMetaZone)},
			{Key: "ZoneProgramArea", Label: "Área (según Zona)", Value: sel.Get(FieldMetaZoneArea)},
		},
	}
}
