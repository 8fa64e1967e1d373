package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/JonMunkholm/promomod/internal/core"
	"github.com/jackc/pgx/v5/pgtype"
)

func renderString(t *testing.T, render func(*bytes.Buffer) error) string {
	t.Helper()
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

func TestForm_SelectsCurrentValue(t *testing.T) {
	f := core.Form{Fields: []core.FieldState{
		{Key: core.FieldPlatform, Label: "Plataforma", Options: []string{"Google", "Meta"}, Value: "Meta"},
	}}

	out := renderString(t, func(b *bytes.Buffer) error { return Form(f).Render(context.Background(), b) })

	if !strings.Contains(out, `name="platform"`) {
		t.Errorf("missing select name:\n%s", out)
	}
	if !strings.Contains(out, `<option selected>Meta</option>`) {
		t.Errorf("current value should be selected:\n%s", out)
	}
}

func TestForm_EscapesValues(t *testing.T) {
	f := core.Form{
		Fields: []core.FieldState{
			{Key: core.FieldRegion, Label: "Región", Options: []string{"<script>"}, Value: "<script>"},
		},
		Notice: `No options available for "<b>"`,
	}

	out := renderString(t, func(b *bytes.Buffer) error { return Form(f).Render(context.Background(), b) })

	if strings.Contains(out, "<script>") || strings.Contains(out, "<b>") {
		t.Errorf("dynamic text must be escaped:\n%s", out)
	}
}

func TestResult(t *testing.T) {
	t.Run("incomplete form renders nothing", func(t *testing.T) {
		o := core.Outcome{Form: core.Form{Halted: core.FieldRegion, Notice: "halt"}}
		out := renderString(t, func(b *bytes.Buffer) error { return Result(o).Render(context.Background(), b) })
		if out != "" {
			t.Errorf("Result() = %q, want empty", out)
		}
	})

	t.Run("lookup miss", func(t *testing.T) {
		o := core.Outcome{Form: core.Form{Selection: core.Selection{}}}
		out := renderString(t, func(b *bytes.Buffer) error { return Result(o).Render(context.Background(), b) })
		if !strings.Contains(out, `class="incomplete"`) {
			t.Errorf("expected incomplete notice:\n%s", out)
		}
	})

	t.Run("code with export links", func(t *testing.T) {
		o := core.Outcome{
			Form: core.Form{Selection: core.Selection{core.FieldPlatform: "Meta", core.FieldRegion: "España"}},
			Code: pgtype.Text{String: "REFPROG", Valid: true},
		}
		out := renderString(t, func(b *bytes.Buffer) error { return Result(o).Render(context.Background(), b) })
		if !strings.Contains(out, "<output>REFPROG</output>") {
			t.Errorf("missing code:\n%s", out)
		}
		if !strings.Contains(out, "format=yaml") || !strings.Contains(out, "platform=Meta") {
			t.Errorf("missing export links:\n%s", out)
		}
	})
}

func TestWarnings_RequiredFirst(t *testing.T) {
	ws := []core.ColumnWarning{
		{Sheet: "modalidad", Header: "Zona Meta"},
		{Sheet: "promocion", Header: "Pais/Area", Required: true},
	}
	out := renderString(t, func(b *bytes.Buffer) error { return Warnings(ws).Render(context.Background(), b) })

	req := strings.Index(out, "promocion.Pais/Area")
	opt := strings.Index(out, "modalidad.Zona Meta")
	if req < 0 || opt < 0 || req > opt {
		t.Errorf("required warning should come first:\n%s", out)
	}
}

func TestErrorAlert(t *testing.T) {
	out := renderString(t, func(b *bytes.Buffer) error {
		return ErrorAlert("Too many requests", "Wait", "RATE001").Render(context.Background(), b)
	})
	for _, want := range []string{"Too many requests", "Wait", "Code: RATE001"} {
		if !strings.Contains(out, want) {
			t.Errorf("ErrorAlert missing %q:\n%s", want, out)
		}
	}
}
