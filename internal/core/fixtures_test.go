package core

// Fixture builders shared by the core tests. Rows are given in column order;
// empty strings become null cells.

func promotionTable(rows ...[]string) *Table {
	b := NewTableBuilder(TablePromotion,
		ColPlatform, ColCountryOrArea, ColAreaOrProgram, ColPromotion, ColExpatsOrNo)
	for _, r := range rows {
		b.Add(r...)
	}
	return b.Build()
}

func modalityTable(rows ...[]string) *Table {
	b := NewTableBuilder(TableModality,
		ColPlatform, ColAreaOrProgram, ColParticularity, ColColumn1, ColModality, ColMetaZone)
	for _, r := range rows {
		b.Add(r...)
	}
	return b.Build()
}

func areaCountryTable(rows ...[]string) *Table {
	b := NewTableBuilder(TableAreaCountry, ColPlatform, ColAreaOrProgram, ColParticularity)
	for _, r := range rows {
		b.Add(r...)
	}
	return b.Build()
}

// fixtureStore holds one consistent path per platform.
func fixtureStore() *Store {
	return NewStore("fixture", []*Table{
		promotionTable(
			// Platform, CountryOrArea, AreaOrProgram, Promotion, ExpatsOrNo
			[]string{"LinkedIn", "pais", "España", "B10", ""},
			[]string{"LinkedIn", "area", "Europa", "A5", ""},
			[]string{"Google", "pais", "España", "expat10", "Expats"},
			[]string{"Google", "pais", "España", "local5", "No"},
			[]string{"Google", "pais", "Chile", "cl5", "No"},
			[]string{"Meta", "pais", "Senior", "REF", ""},
		),
		modalityTable(
			// Platform, AreaOrProgram, Particularity, Column1, Modality, MetaZone
			[]string{"LinkedIn", "pais", "España", "Sponsored", "sp", ""},
			[]string{"LinkedIn", "pais", "España", "InMail", "im", ""},
			[]string{"Google", "Marketing", "Si", "", "remarketing", ""},
			[]string{"Google", "Marketing", "No", "", "search", ""},
			[]string{"Google", "Ingeniería", "No", "", "", ""},
			[]string{"Meta", "Engineering", "Awareness", "Senior", "PROG", "LATAM"},
			[]string{"Meta", "Engineering", "Awareness", "Junior", "JUN", "LATAM"},
			[]string{"Meta", "Engineering", "Leads", "Senior", "LEAD", "EU"},
		),
		areaCountryTable(
			// Platform, AreaOrProgram, Particularity
			[]string{"LinkedIn", "pais", "España"},
			[]string{"LinkedIn", "pais", "México"},
			[]string{"LinkedIn", "area", "Europa"},
			[]string{"LinkedIn", "Pais", "Ignored"},
		),
	}, nil)
}
