// Package export turns a resolved outcome into the record offered for
// download, serialized as JSON or YAML.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/JonMunkholm/promomod/internal/core"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned by ParseFormat for an unsupported format.
var ErrUnknownFormat = errors.New("unknown export format")

// Record is the exported selection. Field order is the key order in both
// formats. Particularity is null for Meta; platform metadata not produced
// by the selected platform is omitted.
type Record struct {
	Code          string  `json:"PROMOMODALIDAD" yaml:"PROMOMODALIDAD"`
	Platform      string  `json:"Platform" yaml:"Platform"`
	Scope         string  `json:"Scope" yaml:"Scope"`
	Region        string  `json:"Region" yaml:"Region"`
	Particularity *string `json:"Particularity" yaml:"Particularity"`

	ProgramArea     *string `json:"ProgramArea,omitempty" yaml:"ProgramArea,omitempty"`
	CampaignType    *string `json:"CampaignType,omitempty" yaml:"CampaignType,omitempty"`
	MetaZone        *string `json:"MetaZone,omitempty" yaml:"MetaZone,omitempty"`
	ZoneProgramArea *string `json:"ZoneProgramArea,omitempty" yaml:"ZoneProgramArea,omitempty"`
	DemandGen       *string `json:"DemandGen,omitempty" yaml:"DemandGen,omitempty"`
}

// FromOutcome builds the record for o. Only outcomes with a code can be
// exported; anything else returns core.ErrIncomplete.
func FromOutcome(o core.Outcome) (Record, error) {
	if !o.HasCode() {
		return Record{}, core.ErrIncomplete
	}

	sel := o.Selection
	rec := Record{
		Code:     o.Code.String,
		Platform: sel.Get(core.FieldPlatform),
		Scope:    sel.Get(core.FieldScope),
		Region:   sel.Get(core.FieldRegion),
	}
	if sel.Platform() != core.Meta {
		rec.Particularity = strPtr(sel.Get(core.FieldParticularity))
	}

	for _, m := range o.Metadata {
		v := strPtr(m.Value)
		switch m.Key {
		case "ProgramArea":
			rec.ProgramArea = v
		case "CampaignType":
			rec.CampaignType = v
		case "MetaZone":
			rec.MetaZone = v
		case "ZoneProgramArea":
			rec.ZoneProgramArea = v
		case "DemandGen":
			rec.DemandGen = v
		}
	}
	return rec, nil
}

func strPtr(s string) *string {
	return &s
}

// Format is a serialization format.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat parses a format name. Empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FileName is the suggested download name.
func (f Format) FileName() string {
	return "promomod_seleccion." + string(f)
}

// ContentType is the HTTP content type.
func (f Format) ContentType() string {
	if f == YAML {
		return "application/yaml; charset=utf-8"
	}
	return "application/json; charset=utf-8"
}

// Encode writes v in format f. JSON is indented and keeps non-ASCII
// characters unescaped.
func Encode(w io.Writer, f Format, v any) error {
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}
