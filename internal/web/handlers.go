package web

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/JonMunkholm/promomod/internal/admin"
	"github.com/JonMunkholm/promomod/internal/config"
	"github.com/JonMunkholm/promomod/internal/core"
	"github.com/JonMunkholm/promomod/internal/export"
	"github.com/JonMunkholm/promomod/internal/logging"
	"github.com/JonMunkholm/promomod/internal/web/templates"
	"github.com/a-h/templ"
)

// parseSelection reads field values from the query string. Unknown
// parameters are ignored; blank values count as unset.
func parseSelection(q url.Values) core.Selection {
	sel := core.Selection{}
	for _, k := range core.FieldKeys {
		if v := strings.TrimSpace(q.Get(string(k))); v != "" {
			sel[k] = v
		}
	}
	return sel
}

// handleIndex renders the form page for the submitted selection.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	engine := s.provider.Current()
	store := engine.Store()
	outcome := engine.Resolve(parseSelection(r.URL.Query()))

	templ.Handler(templates.Page(templates.PageData{
		Outcome:  outcome,
		Warnings: store.Warnings(),
		Snapshot: store.ID.String(),
		LoadedAt: store.LoadedAt,
		Source:   config.MaskURL(store.Source),
	})).ServeHTTP(w, r)
}

type platformsResponse struct {
	Platforms []string        `json:"platforms"`
	Supported []core.Platform `json:"supported"`
}

func (s *Server) handlePlatforms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, platformsResponse{
		Platforms: s.provider.Current().Platforms(),
		Supported: core.SupportedPlatforms(),
	})
}

// handleForm returns the walked fields without resolving the code.
func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	form := s.provider.Current().Walk(parseSelection(r.URL.Query()))
	writeJSON(w, http.StatusOK, form)
}

type resolveResponse struct {
	core.Outcome
	IsComplete bool   `json:"complete"`
	Snapshot   string `json:"snapshot"`
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	engine := s.provider.Current()
	outcome := engine.Resolve(parseSelection(r.URL.Query()))

	logging.FromContext(r.Context()).Debug("resolved",
		"platform", outcome.Selection.Platform(),
		"code", outcome.Code.String,
		"has_code", outcome.HasCode(),
	)

	writeJSON(w, http.StatusOK, resolveResponse{
		Outcome:    outcome,
		IsComplete: outcome.Complete(),
		Snapshot:   engine.Store().ID.String(),
	})
}

// handleExport downloads the resolved selection. Selections without a code
// are rejected with 409 so the client can tell them from bad input.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format, err := export.ParseFormat(q.Get("format"))
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	outcome := s.provider.Current().Resolve(parseSelection(q))
	rec, err := export.FromOutcome(outcome)
	if err != nil {
		s.respondError(w, r, err, http.StatusConflict)
		return
	}

	var buf bytes.Buffer
	if err := export.Encode(&buf, format, rec); err != nil {
		s.respondError(w, r, fmt.Errorf("encode export: %w", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.FileName()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

type statusResponse struct {
	Snapshot string              `json:"snapshot"`
	Source   string              `json:"source"`
	LoadedAt time.Time           `json:"loadedAt"`
	Rows     map[string]int      `json:"rows"`
	Warnings []string            `json:"warnings"`
	Reload   *admin.ReloadStatus `json:"reload,omitempty"`
}

func (s *Server) status() statusResponse {
	store := s.provider.Current().Store()

	rows := make(map[string]int)
	for _, def := range core.Tables() {
		rows[def.Key] = store.Table(def.Key).Len()
	}

	warnings := make([]string, 0, len(store.Warnings()))
	for _, cw := range store.Warnings() {
		warnings = append(warnings, cw.String())
	}

	resp := statusResponse{
		Snapshot: store.ID.String(),
		Source:   config.MaskURL(store.Source),
		LoadedAt: store.LoadedAt,
		Rows:     rows,
		Warnings: warnings,
	}
	if s.reloader != nil {
		st := s.reloader.Status()
		resp.Reload = &st
	}
	return resp
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.status())
}

// handleReload reloads the source. On failure the previous snapshot stays
// in service and the error is reported with SRC004 or the loader's code.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if _, err := s.reloader.Reload(r.Context(), "api"); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, core.ErrSourceNotFound) || errors.Is(err, core.ErrSheetNotFound) {
			status = http.StatusUnprocessableEntity
		}
		s.respondError(w, r, err, status)
		return
	}
	writeJSON(w, http.StatusOK, s.status())
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"snapshot": s.provider.Current().Store().ID.String(),
	})
}
