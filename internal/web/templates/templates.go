// Package templates renders the HTML surface of the code builder.
// Components are plain templ.Component values; all dynamic text goes
// through templ.EscapeString.
package templates

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/JonMunkholm/promomod/internal/core"
	"github.com/a-h/templ"
)

// PageData is everything the form page shows.
type PageData struct {
	Outcome  core.Outcome
	Warnings []core.ColumnWarning
	Snapshot string
	LoadedAt time.Time
	Source   string
}

// htmlWriter accumulates the first write error so components can emit
// markup without checking every call.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (hw *htmlWriter) raw(s string) {
	if hw.err != nil {
		return
	}
	_, hw.err = io.WriteString(hw.w, s)
}

func (hw *htmlWriter) text(s string) {
	hw.raw(templ.EscapeString(s))
}

func (hw *htmlWriter) rawf(format string, args ...any) {
	hw.raw(fmt.Sprintf(format, args...))
}

// Page renders the full form page.
func Page(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<!DOCTYPE html><html lang="es"><head><meta charset="utf-8">`)
		hw.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		hw.raw(`<title>PROMOMODALIDAD</title><link rel="stylesheet" href="/static/style.css"></head><body><main>`)
		hw.raw(`<h1>PROMOMODALIDAD</h1>`)
		if hw.err != nil {
			return hw.err
		}

		if err := Warnings(data.Warnings).Render(ctx, w); err != nil {
			return err
		}
		if err := Form(data.Outcome.Form).Render(ctx, w); err != nil {
			return err
		}
		if err := Result(data.Outcome).Render(ctx, w); err != nil {
			return err
		}

		hw.raw(`<footer>`)
		hw.text(fmt.Sprintf("Tablas %s · cargadas %s · %s",
			data.Snapshot, data.LoadedAt.Format(time.RFC3339), data.Source))
		hw.raw(`</footer></main></body></html>`)
		return hw.err
	})
}

// Warnings renders the missing-column banner. Required columns are listed
// first and highlighted.
func Warnings(ws []core.ColumnWarning) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if len(ws) == 0 {
			return nil
		}
		hw := &htmlWriter{w: w}
		hw.raw(`<section class="warnings" role="status"><strong>Columnas faltantes:</strong><ul>`)
		for _, required := range []bool{true, false} {
			for _, cw := range ws {
				if cw.Required != required {
					continue
				}
				if required {
					hw.raw(`<li class="required">`)
				} else {
					hw.raw(`<li>`)
				}
				hw.text(cw.String())
				hw.raw(`</li>`)
			}
		}
		hw.raw(`</ul></section>`)
		return hw.err
	})
}

// Form renders one select per walked field. Changing any field resubmits
// the whole form so every downstream field is recomputed.
func Form(f core.Form) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<form method="get" action="/" class="cascade">`)
		for _, fs := range f.Fields {
			id := "f-" + string(fs.Key)
			hw.rawf(`<label for="%s">`, templ.EscapeString(id))
			hw.text(fs.Label)
			hw.raw(`</label>`)
			if len(fs.Options) == 0 {
				hw.rawf(`<select id="%s" disabled></select>`, templ.EscapeString(id))
				continue
			}
			hw.rawf(`<select id="%s" name="%s" onchange="this.form.submit()">`,
				templ.EscapeString(id), templ.EscapeString(string(fs.Key)))
			for _, opt := range fs.Options {
				if opt == fs.Value {
					hw.raw(`<option selected>`)
				} else {
					hw.raw(`<option>`)
				}
				hw.text(opt)
				hw.raw(`</option>`)
			}
			hw.raw(`</select>`)
		}
		hw.raw(`<noscript><button type="submit">Actualizar</button></noscript></form>`)
		if f.Notice != "" {
			hw.raw(`<p class="notice" role="alert">`)
			hw.text(f.Notice)
			hw.raw(`</p>`)
		}
		return hw.err
	})
}

// Result renders the code, or the incomplete state, plus export links.
func Result(o core.Outcome) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if !o.Complete() {
			return nil
		}
		hw := &htmlWriter{w: w}
		hw.raw(`<section class="result">`)
		if len(o.Metadata) > 0 {
			hw.raw(`<dl>`)
			for _, m := range o.Metadata {
				hw.raw(`<dt>`)
				hw.text(m.Label)
				hw.raw(`</dt><dd>`)
				hw.text(m.Value)
				hw.raw(`</dd>`)
			}
			hw.raw(`</dl>`)
		}

		if !o.HasCode() {
			hw.raw(`<p class="incomplete">No se encontró promoción o modalidad para esta combinación.</p></section>`)
			return hw.err
		}

		hw.raw(`<p class="code">PROMOMODALIDAD: <output>`)
		hw.text(o.Code.String)
		hw.raw(`</output></p>`)

		q := selectionQuery(o.Selection)
		for _, format := range []string{"json", "yaml"} {
			q.Set("format", format)
			hw.rawf(`<a class="export" href="/api/export?%s" download>`, templ.EscapeString(q.Encode()))
			hw.text("Descargar " + format)
			hw.raw(`</a> `)
		}
		hw.raw(`</section>`)
		return hw.err
	})
}

// ErrorAlert renders a user-facing error with its support code.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<div class="alert" role="alert"><p>`)
		hw.text(message)
		hw.raw(`</p>`)
		if action != "" {
			hw.raw(`<p>`)
			hw.text(action)
			hw.raw(`</p>`)
		}
		hw.raw(`<small>`)
		hw.text("Code: " + code)
		hw.raw(`</small></div>`)
		return hw.err
	})
}

// ErrorPage wraps ErrorAlert in a minimal document.
func ErrorPage(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<!DOCTYPE html><html lang="es"><head><meta charset="utf-8"><title>Error</title>`)
		hw.raw(`<link rel="stylesheet" href="/static/style.css"></head><body><main>`)
		if hw.err != nil {
			return hw.err
		}
		if err := ErrorAlert(message, action, code).Render(ctx, w); err != nil {
			return err
		}
		hw.raw(`<p><a href="/">Volver</a></p></main></body></html>`)
		return hw.err
	})
}

func selectionQuery(sel core.Selection) url.Values {
	q := url.Values{}
	for _, k := range core.FieldKeys {
		if v, ok := sel[k]; ok {
			q.Set(string(k), v)
		}
	}
	return q
}
