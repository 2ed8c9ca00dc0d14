package models

import (
	"time"

	"github.com/google/uuid"
)

type ContactMessage struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	RemoteIP  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type ContactRequest struct {
	Name    string
	Email   string
	Message string
}
