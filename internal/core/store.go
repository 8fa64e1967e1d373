package core

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Store is an immutable snapshot of the three lookup tables.
// It is safe to share across goroutines; nothing mutates it after NewStore.
type Store struct {
	ID       uuid.UUID
	Source   string
	LoadedAt time.Time

	tables   map[string]*Table
	warnings []ColumnWarning
}

// NewStore builds a snapshot from loaded tables and the column warnings
// found while loading them.
func NewStore(source string, tables []*Table, warnings []ColumnWarning) *Store {
	s := &Store{
		ID:       uuid.New(),
		Source:   source,
		LoadedAt: time.Now().UTC(),
		tables:   make(map[string]*Table, len(tables)),
	}
	for _, t := range tables {
		if t != nil {
			s.tables[t.Key()] = t
		}
	}
	s.warnings = append([]ColumnWarning(nil), warnings...)
	return s
}

// Table returns the table for key. A table that was never loaded is
// returned empty so lookups against it find nothing.
func (s *Store) Table(key string) *Table {
	if t, ok := s.tables[key]; ok {
		return t
	}
	return EmptyTable(key)
}

// Promotions returns the promotion table.
func (s *Store) Promotions() *Table { return s.Table(TablePromotion) }

// Modalities returns the modality table.
func (s *Store) Modalities() *Table { return s.Table(TableModality) }

// AreaCountries returns the area/country table.
func (s *Store) AreaCountries() *Table { return s.Table(TableAreaCountry) }

// Warnings returns the column warnings recorded at load time.
func (s *Store) Warnings() []ColumnWarning {
	return append([]ColumnWarning(nil), s.warnings...)
}

// Provider hands out the current Engine and lets a reload swap it atomically.
// Requests that already hold an Engine keep using their snapshot.
type Provider struct {
	cur atomic.Pointer[Engine]
}

// NewProvider returns a provider serving e.
func NewProvider(e *Engine) *Provider {
	p := &Provider{}
	p.cur.Store(e)
	return p
}

// Current returns the engine for the latest snapshot.
func (p *Provider) Current() *Engine {
	return p.cur.Load()
}

// Swap installs e and returns the previous engine.
func (p *Provider) Swap(e *Engine) *Engine {
	return p.cur.Swap(e)
}
