package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"portfolio-site/internal/middleware"
	"portfolio-site/internal/models"
	"portfolio-site/internal/session"
)

type sessionSaver interface {
	Save(w http.ResponseWriter, r *http.Request, sess *session.Session) error
}

type ThemeHandler struct {
	sessions sessionSaver
}

func NewThemeHandler(sessions sessionSaver) *ThemeHandler {
	return &ThemeHandler{sessions: sessions}
}

// SetTheme stores the visitor's light/dark preference in their session.
func (h *ThemeHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req models.SetThemeRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 4<<10)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	theme := models.ThemeLight
	if req.Theme != nil {
		theme = models.ParseTheme(*req.Theme)
	}

	sess := middleware.GetSession(r.Context())
	sess.SetTheme(theme)

	if err := h.sessions.Save(w, r, sess); err != nil {
		slog.Error("failed to save session", "error", err, "request_id", r.Header.Get("X-Request-ID"))
		handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
