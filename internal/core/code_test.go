package core

import (
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
)

func text(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: true}
}

func TestBuildCode(t *testing.T) {
	tests := []struct {
		name      string
		promotion pgtype.Text
		modality  pgtype.Text
		want      string
		wantValid bool
	}{
		{"both present", text("expat10"), text("remarketing"), "EXPAT10REMARKETING", true},
		{"mixed case", text("A"), text("b"), "AB", true},
		{"promotion absent", pgtype.Text{}, text("x"), "", false},
		{"modality absent", text("x"), pgtype.Text{}, "", false},
		{"both absent", pgtype.Text{}, pgtype.Text{}, "", false},
		{"empty but present is a valid empty code", text(""), text(""), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildCode(tt.promotion, tt.modality)
			if got.Valid != tt.wantValid {
				t.Fatalf("BuildCode() valid = %v, want %v", got.Valid, tt.wantValid)
			}
			if got.String != tt.want {
				t.Errorf("BuildCode() = %q, want %q", got.String, tt.want)
			}
		})
	}
}
