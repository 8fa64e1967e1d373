package tables

import "github.com/JonMunkholm/promomod/internal/core"

func init() {
	core.RegisterTable(core.TableDefinition{
		Key:   core.TableModality,
		Sheet: "modalidad",
		Label: "Modalidades",
		Columns: []core.ColumnSpec{
			required(platform),
			required(areaOrProgram),
			particularity,
			column1,
			required(modality),
			metaZone, // Meta only
		},
	})
}
