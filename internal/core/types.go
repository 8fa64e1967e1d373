package core

import (
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// Column is the logical name of a table column, independent of the
// header spelling used by a particular source.
type Column string

const (
	ColPlatform      Column = "Platform"
	ColCountryOrArea Column = "CountryOrArea"
	ColAreaOrProgram Column = "AreaOrProgram"
	ColPromotion     Column = "Promotion"
	ColExpatsOrNo    Column = "ExpatsOrNo"
	ColParticularity Column = "Particularity"
	ColColumn1       Column = "Column1"
	ColModality      Column = "Modality"
	ColMetaZone      Column = "MetaZone"
)

// Table keys, also used as SQL table names.
const (
	TablePromotion   = "promocion"
	TableModality    = "modalidad"
	TableAreaCountry = "areas_paises"
)

// Platform identifies one of the advertising platforms with its own cascade.
type Platform string

const (
	LinkedIn Platform = "LinkedIn"
	Google   Platform = "Google"
	Meta     Platform = "Meta"
)

// Scope kinds offered by the form. The first entry is the default.
var ScopeKinds = []string{"Pais", "Area"}

// FieldKey names a form field. Keys double as query parameter names.
type FieldKey string

const (
	FieldPlatform         FieldKey = "platform"
	FieldScope            FieldKey = "scope"
	FieldRegion           FieldKey = "region"
	FieldParticularity    FieldKey = "particularity"
	FieldGoogleArea       FieldKey = "google_area"
	FieldGoogleDemandGen  FieldKey = "google_demand_gen"
	FieldMetaArea         FieldKey = "meta_area"
	FieldMetaCampaignType FieldKey = "meta_campaign_type"
	FieldMetaZone         FieldKey = "meta_zone"
	FieldMetaZoneArea     FieldKey = "meta_zone_area"
)

// FieldKeys lists every field key in form order across all platforms.
var FieldKeys = []FieldKey{
	FieldPlatform,
	FieldScope,
	FieldRegion,
	FieldParticularity,
	FieldGoogleArea,
	FieldGoogleDemandGen,
	FieldMetaArea,
	FieldMetaCampaignType,
	FieldMetaZone,
	FieldMetaZoneArea,
}

// Selection holds the values chosen so far, keyed by field.
type Selection map[FieldKey]string

// Get returns the value for key, or "" if unset.
func (s Selection) Get(key FieldKey) string {
	return s[key]
}

// Platform returns the selected platform.
func (s Selection) Platform() Platform {
	return Platform(s[FieldPlatform])
}

// Scope returns the selected scope kind as typed by the user.
func (s Selection) Scope() string {
	return s[FieldScope]
}

// Clone returns an independent copy of the selection.
func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Key returns a canonical string for the selection, stable across map order.
func (s Selection) Key() string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(s[FieldKey(k)])
		b.WriteByte('\x1f')
	}
	return b.String()
}

// Field is one step of a platform cascade.
type Field struct {
	Key   FieldKey
	Label string
	// Options returns the candidates for this field given every value
	// chosen before it.
	Options func(s *Store, sel Selection) []string
}

// FieldState is the evaluated state of a field during a walk.
type FieldState struct {
	Key       FieldKey `json:"key"`
	Label     string   `json:"label"`
	Options   []string `json:"options"`
	Value     string   `json:"value"`
	Defaulted bool     `json:"defaulted"` // submitted value was absent or stale
}

// MetaField is a platform-specific detail reported alongside the code.
type MetaField struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// Resolution is what a platform resolver produces once every field is chosen.
type Resolution struct {
	Promotion pgtype.Text
	Modality  pgtype.Text
	Metadata  []MetaField
}

// Form is the result of walking the fields for a selection.
type Form struct {
	Selection Selection    `json:"selection"`
	Fields    []FieldState `json:"fields"`
	// Halted is the key of the first field with no options, if any.
	Halted FieldKey `json:"halted,omitempty"`
	Notice string   `json:"notice,omitempty"`
}

// Complete reports whether every field produced a value.
func (f Form) Complete() bool {
	return f.Halted == "" && f.Notice == ""
}

// Outcome is the full result for a selection: walked form, looked-up values
// and the built code.
type Outcome struct {
	Form
	Promotion pgtype.Text `json:"promotion"`
	Modality  pgtype.Text `json:"modality"`
	Code      pgtype.Text `json:"code"`
	Metadata  []MetaField `json:"metadata,omitempty"`
}

// HasCode reports whether a code was produced.
func (o Outcome) HasCode() bool {
	return o.Code.Valid
}
