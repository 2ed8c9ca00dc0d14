package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"portfolio-site/internal/models"
	"portfolio-site/internal/services"
)

const maxAskBodyBytes = 16 << 10

type assistant interface {
	Ask(ctx context.Context, query string) (string, error)
}

type AssistantHandler struct {
	assistant assistant
}

func NewAssistantHandler(assistant assistant) *AssistantHandler {
	return &AssistantHandler{assistant: assistant}
}

// Ask proxies a visitor question to the chat-completion API.
func (h *AssistantHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req models.AskRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxAskBodyBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No query provided"})
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No query provided"})
		return
	}

	reply, err := h.assistant.Ask(r.Context(), req.Query)
	if err != nil {
		status, message := assistantFailure(err)
		slog.Error("assistant request failed",
			"error", err,
			"status", status,
			"request_id", r.Header.Get("X-Request-ID"),
		)
		writeJSON(w, status, models.AskResponse{Response: message})
		return
	}

	writeJSON(w, http.StatusOK, models.AskResponse{Response: reply})
}

// assistantFailure maps an assistant error to the status and message shown to the visitor.
func assistantFailure(err error) (int, string) {
	var aerr *services.AssistantError
	if !errors.As(err, &aerr) {
		return http.StatusInternalServerError, services.CategoryUnexpected.UserMessage()
	}

	switch aerr.Category {
	case services.CategoryConfig,
		services.CategoryHTTP,
		services.CategoryConnection,
		services.CategoryTimeout,
		services.CategoryMalformed,
		services.CategoryUnexpected:
		return http.StatusInternalServerError, aerr.Category.UserMessage()
	}
	return http.StatusInternalServerError, services.CategoryUnexpected.UserMessage()
}
