package services

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"portfolio-site/internal/models"
)

const (
	maxContactNameLen    = 100
	maxContactMessageLen = 5000
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ContactStore persists contact form submissions.
type ContactStore interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
}

// ContactNotifier tells the site owner about a new submission.
type ContactNotifier interface {
	SendContactNotification(msg *models.ContactMessage) error
}

type ContactService struct {
	store    ContactStore
	notifier ContactNotifier
}

// NewContactService builds the contact form service. A nil store disables
// submissions; a nil notifier skips owner notification.
func NewContactService(store ContactStore, notifier ContactNotifier) *ContactService {
	return &ContactService{store: store, notifier: notifier}
}

// Enabled reports whether submissions can be stored.
func (s *ContactService) Enabled() bool {
	return s.store != nil
}

func (s *ContactService) Submit(ctx context.Context, req models.ContactRequest, remoteIP string) (*models.ContactMessage, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)

	// Validate all fields at once
	fieldErrors := make(map[string]string)

	if req.Name == "" {
		fieldErrors["name"] = "Name is required"
	} else if utf8.RuneCountInString(req.Name) > maxContactNameLen {
		fieldErrors["name"] = fmt.Sprintf("Name must be at most %d characters", maxContactNameLen)
	}
	if !emailRegex.MatchString(req.Email) {
		fieldErrors["email"] = "Invalid email format"
	}
	if req.Message == "" {
		fieldErrors["message"] = "Message is required"
	} else if utf8.RuneCountInString(req.Message) > maxContactMessageLen {
		fieldErrors["message"] = fmt.Sprintf("Message must be at most %d characters", maxContactMessageLen)
	}

	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Fields: fieldErrors}
	}

	if s.store == nil {
		return nil, &UnavailableError{Message: "The contact form is temporarily unavailable"}
	}

	msg := &models.ContactMessage{
		ID:        uuid.New(),
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		RemoteIP:  remoteIP,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to store contact message: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.SendContactNotification(msg); err != nil {
			slog.Error("contact notification failed", "message_id", msg.ID, "error", err)
		}
	}

	return msg, nil
}
