package tables

import "github.com/JonMunkholm/promomod/internal/core"

func init() {
	core.RegisterTable(core.TableDefinition{
		Key:   core.TablePromotion,
		Sheet: "promocion",
		Label: "Promociones",
		Columns: []core.ColumnSpec{
			required(platform),
			required(countryOrArea),
			required(areaOrProgram),
			promotion,
			expatsOrNo, // Google only
		},
	})
}
