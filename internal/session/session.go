// Package session holds per-visitor state and the stores that keep it between requests.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"portfolio-site/internal/models"
)

// ErrNotFound is returned by a Store when no live session exists for an id.
var ErrNotFound = errors.New("session not found")

// Data is the persisted part of a session.
type Data struct {
	Theme models.Theme `json:"theme"`
}

// Session is the per-request view of a visitor's state.
type Session struct {
	ID   uuid.UUID
	Data Data
}

// New returns an empty session with a fresh id.
func New() *Session {
	return &Session{ID: uuid.New()}
}

// Theme returns the stored theme, light when none was set.
func (s *Session) Theme() models.Theme {
	if s == nil || s.Data.Theme == "" {
		return models.ThemeLight
	}
	return s.Data.Theme
}

// SetTheme replaces the stored theme.
func (s *Session) SetTheme(t models.Theme) {
	s.Data.Theme = t
}

type Store interface {
	Load(ctx context.Context, id uuid.UUID) (Data, error)
	Save(ctx context.Context, id uuid.UUID, data Data, ttl time.Duration) error
}
