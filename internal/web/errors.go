package web

// errors.go provides unified error response handling for the web layer.
//
// Every error is logged with its technical detail and request id, then
// returned as the user-facing message from core.MapError in the format
// the client expects: a JSON body for API calls, an HTML page otherwise.

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JonMunkholm/promomod/internal/core"
	"github.com/JonMunkholm/promomod/internal/web/templates"
	"github.com/go-chi/chi/v5/middleware"
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError logs err and writes the mapped user message.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := core.MapError(err)

	level := slog.LevelError
	if statusCode < http.StatusInternalServerError {
		level = slog.LevelWarn
	}
	slog.Log(r.Context(), level, "request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
		"request_id", middleware.GetReqID(r.Context()),
	)

	if wantsJSON(r) {
		respondErrorJSON(w, userMsg, statusCode)
		return
	}
	respondErrorHTML(w, userMsg, statusCode)
}

// respondErrorJSON writes a JSON error response.
func respondErrorJSON(w http.ResponseWriter, msg core.UserMessage, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	}); err != nil {
		slog.Error("json encode error", "error", err)
	}
}

// respondErrorHTML renders the error page.
func respondErrorHTML(w http.ResponseWriter, msg core.UserMessage, statusCode int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	if err := templates.ErrorPage(msg.Message, msg.Action, msg.Code).Render(context.Background(), w); err != nil {
		slog.Error("render error page", "error", err)
	}
}

// wantsJSON checks if the client prefers a JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}

	// API routes default to JSON
	return strings.HasPrefix(r.URL.Path, "/api/")
}
