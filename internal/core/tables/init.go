// Package tables registers the three lookup table definitions with the core
// registry. Import it for side effects wherever a source is loaded:
//
//	import _ "github.com/JonMunkholm/promomod/internal/core/tables"
package tables

import "github.com/JonMunkholm/promomod/internal/core"

// Shared column specs. The spreadsheet headers are Spanish; SQL sources use
// the snake_case spelling.
var (
	platform      = core.ColumnSpec{Name: core.ColPlatform, Header: "Plataforma", DBColumn: "plataforma"}
	countryOrArea = core.ColumnSpec{Name: core.ColCountryOrArea, Header: "Pais/Area", DBColumn: "pais_area"}
	areaOrProgram = core.ColumnSpec{Name: core.ColAreaOrProgram, Header: "Area/programa", DBColumn: "area_programa"}
	promotion     = core.ColumnSpec{Name: core.ColPromotion, Header: "Promocion", DBColumn: "promocion"}
	expatsOrNo    = core.ColumnSpec{Name: core.ColExpatsOrNo, Header: "Expats/No", DBColumn: "expats_no"}
	particularity = core.ColumnSpec{Name: core.ColParticularity, Header: "particularidad", DBColumn: "particularidad"}
	column1       = core.ColumnSpec{Name: core.ColColumn1, Header: "Columna1", DBColumn: "columna1"}
	modality      = core.ColumnSpec{Name: core.ColModality, Header: "Modalidad", DBColumn: "modalidad"}
	metaZone      = core.ColumnSpec{Name: core.ColMetaZone, Header: "Zona Meta", DBColumn: "zona_meta"}
)

func required(c core.ColumnSpec) core.ColumnSpec {
	c.Required = true
	return c
}
