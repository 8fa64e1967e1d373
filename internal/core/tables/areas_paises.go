package tables

import "github.com/JonMunkholm/promomod/internal/core"

func init() {
	core.RegisterTable(core.TableDefinition{
		Key:   core.TableAreaCountry,
		Sheet: "areas_paises",
		Label: "Áreas y países",
		Columns: []core.ColumnSpec{
			platform,
			areaOrProgram,
			particularity,
		},
	})
}
