package core

import (
	"fmt"
	"sort"
	"sync"
)

// ColumnSpec describes one logical column and how sources spell it.
type ColumnSpec struct {
	Name     Column // Logical name used by the Filter Engine
	Header   string // Spreadsheet / CSV header
	DBColumn string // SQL column name
	Required bool   // Reported prominently when missing
}

// TableDefinition contains everything a loader needs to build a Table.
type TableDefinition struct {
	Key     string // Table key and SQL table name: "promocion"
	Sheet   string // Workbook sheet / CSV file stem
	Label   string // Display name
	Columns []ColumnSpec
}

// Names returns the logical columns in definition order.
func (d TableDefinition) Names() []Column {
	out := make([]Column, len(d.Columns))
	for i, c := range d.Columns {
		out[i] = c.Name
	}
	return out
}

var (
	tableRegistry = make(map[string]TableDefinition)
	resolvers     = make(map[Platform]Resolver)
	registryMu    sync.RWMutex
)

// RegisterTable adds a table definition to the registry.
// Panics if a table with the same key is already registered.
func RegisterTable(def TableDefinition) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := tableRegistry[def.Key]; exists {
		panic(fmt.Sprintf("table already registered: %s", def.Key))
	}
	if def.Sheet == "" {
		def.Sheet = def.Key
	}
	tableRegistry[def.Key] = def
}

// GetTable returns a table definition by key.
// Returns false if not found.
func GetTable(key string) (TableDefinition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	def, ok := tableRegistry[key]
	return def, ok
}

// Tables returns all registered table definitions sorted by key.
func Tables() []TableDefinition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]TableDefinition, 0, len(tableRegistry))
	for _, def := range tableRegistry {
		result = append(result, def)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Key < result[j].Key
	})
	return result
}

// TableCount returns the number of registered tables.
func TableCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(tableRegistry)
}

// ClearTables removes all registered tables.
// Primarily useful for testing.
func ClearTables() {
	registryMu.Lock()
	defer registryMu.Unlock()
	tableRegistry = make(map[string]TableDefinition)
}

// RegisterResolver adds a platform resolver.
// Panics if the platform already has one.
func RegisterResolver(r Resolver) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := resolvers[r.Platform()]; exists {
		panic(fmt.Sprintf("resolver already registered: %s", r.Platform()))
	}
	resolvers[r.Platform()] = r
}

// ResolverFor returns the resolver for p.
func ResolverFor(p Platform) (Resolver, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	r, ok := resolvers[p]
	return r, ok
}

// SupportedPlatforms returns the platforms with a registered resolver, sorted.
func SupportedPlatforms() []Platform {
	registryMu.RLock()
	defer registryMu.RUnlock()

	out := make([]Platform, 0, len(resolvers))
	for p := range resolvers {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
