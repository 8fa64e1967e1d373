// Package core provides the lookup logic that derives a PROMOMODALIDAD code.
//
// This package is the heart of the builder, containing all domain logic
// independent of any UI or transport layer. It can be used by web handlers,
// the CLI, the terminal wizard, or tests without modification.
//
// # Architecture
//
// The package is organized around four pieces, leaf-first:
//
//   - Table Store: three immutable tables (promocion, modalidad, areas_paises)
//     loaded once from a source and shared read-only. See [Store].
//   - Filter Engine: equality filters over a table that return the sorted
//     distinct values of a target column ([DistinctValues]) or the first
//     matching cell ([Lookup]).
//   - Platform Resolver: one [Resolver] per platform (LinkedIn, Google, Meta)
//     describing the cascade of form fields and how the final promotion and
//     modality are looked up.
//   - Code Builder: [BuildCode] concatenates the uppercased promotion and
//     modality, or reports the code as incomplete.
//
// # Table Registry
//
// Table layouts are registered at init time using [RegisterTable]. Each
// [TableDefinition] maps logical columns to spreadsheet headers and SQL
// column names so every source loader produces the same [Table] shape:
//
//	core.RegisterTable(core.TableDefinition{
//	    Key:   core.TablePromotion,
//	    Sheet: "promocion",
//	    Columns: []core.ColumnSpec{
//	        {Name: core.ColPlatform, Header: "Plataforma", Required: true},
//	    },
//	})
//
// # Walking the form
//
// [Engine.Walk] evaluates the fields of the selected platform in order. Each
// field's options are computed from every value chosen before it; a submitted
// value that is no longer valid falls back to the first option. The walk
// stops at the first field with no options, which leaves the outcome
// incomplete rather than failing.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Missing cells, missing columns and lookup misses are not errors: they
// produce empty option lists or absent values.
package core
