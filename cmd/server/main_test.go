package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-site/internal/models"
)

type stubLister struct {
	messages []*models.ContactMessage
	err      error
	limit    uint64
}

func (s *stubLister) ListRecent(ctx context.Context, limit uint64) ([]*models.ContactMessage, error) {
	s.limit = limit
	return s.messages, s.err
}

func TestListContacts(t *testing.T) {
	id := uuid.New()
	repo := &stubLister{messages: []*models.ContactMessage{{
		ID:        id,
		Name:      "Ada",
		Email:     "ada@example.com",
		Message:   "Hello\nthere,   friend",
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}}}

	var out bytes.Buffer
	require.NoError(t, listContacts(context.Background(), repo, 5, &out))

	assert.Equal(t, uint64(5), repo.limit)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], id.String())
	assert.Contains(t, lines[1], "2026-03-01T12:00:00Z")
	assert.Contains(t, lines[1], "Hello there, friend")
}

func TestListContacts_Error(t *testing.T) {
	repo := &stubLister{err: errors.New("connection refused")}

	err := listContacts(context.Background(), repo, 5, &bytes.Buffer{})
	assert.ErrorContains(t, err, "connection refused")
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", preview("short", 10))
	assert.Equal(t, "abcd…", preview("abcdefgh", 5))
	assert.Equal(t, "ééé…", preview("éééééé", 4))
}
