package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"portfolio-site/internal/middleware"
	"portfolio-site/internal/models"
	"portfolio-site/internal/session"
)

func newTestSessions(t *testing.T, store session.Store) *middleware.Sessions {
	t.Helper()
	s, err := middleware.NewSessions("test-secret", store, time.Hour, false)
	if err != nil {
		t.Fatalf("NewSessions: %v", err)
	}
	return s
}

// setTheme posts body to the theme handler behind the session middleware.
func setTheme(sessions *middleware.Sessions, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	h := sessions.Middleware(http.HandlerFunc(NewThemeHandler(sessions).SetTheme))

	req := httptest.NewRequest(http.MethodPost, "/set-theme", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func sessionCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	t.Fatalf("expected a %q cookie to be set", middleware.SessionCookieName)
	return nil
}

// storedTheme reads the theme saved for the session carried by cookie.
func storedTheme(t *testing.T, sessions *middleware.Sessions, cookie *http.Cookie) models.Theme {
	t.Helper()
	var theme models.Theme
	h := sessions.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		theme = middleware.GetSession(r.Context()).Theme()
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	h.ServeHTTP(httptest.NewRecorder(), req)
	return theme
}

func TestSetTheme_StoresPreference(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected models.Theme
	}{
		{"dark", `{"theme":"dark"}`, models.ThemeDark},
		{"light", `{"theme":"light"}`, models.ThemeLight},
		{"absent defaults to light", `{}`, models.ThemeLight},
		{"empty body defaults to light", ``, models.ThemeLight},
		{"unknown value normalises to light", `{"theme":"solarized"}`, models.ThemeLight},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sessions := newTestSessions(t, session.NewMemoryStore())

			rr := setTheme(sessions, tc.body)

			if rr.Code != http.StatusNoContent {
				t.Fatalf("expected 204, got %d", rr.Code)
			}
			if rr.Body.Len() != 0 {
				t.Errorf("expected empty body, got %q", rr.Body.String())
			}
			if got := storedTheme(t, sessions, sessionCookie(t, rr)); got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestSetTheme_Idempotent(t *testing.T) {
	store := session.NewMemoryStore()
	sessions := newTestSessions(t, store)

	first := setTheme(sessions, `{"theme":"dark"}`)
	cookie := sessionCookie(t, first)

	second := setTheme(sessions, `{"theme":"dark"}`, cookie)
	if second.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", second.Code)
	}

	if got := storedTheme(t, sessions, sessionCookie(t, second)); got != models.ThemeDark {
		t.Errorf("expected dark, got %q", got)
	}
	if store.Len() != 1 {
		t.Errorf("expected a single stored session, got %d", store.Len())
	}
}

func TestSetTheme_OverwritesPrevious(t *testing.T) {
	sessions := newTestSessions(t, session.NewMemoryStore())

	cookie := sessionCookie(t, setTheme(sessions, `{"theme":"dark"}`))
	rr := setTheme(sessions, `{"theme":"light"}`, cookie)

	if got := storedTheme(t, sessions, sessionCookie(t, rr)); got != models.ThemeLight {
		t.Errorf("expected light after switching back, got %q", got)
	}
}

func TestSetTheme_MalformedJSON(t *testing.T) {
	sessions := newTestSessions(t, session.NewMemoryStore())

	rr := setTheme(sessions, `{"theme":`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if len(rr.Result().Cookies()) != 0 {
		t.Error("expected no session cookie on a rejected request")
	}
}

type brokenStore struct{}

func (brokenStore) Load(ctx context.Context, id uuid.UUID) (session.Data, error) {
	return session.Data{}, session.ErrNotFound
}

func (brokenStore) Save(ctx context.Context, id uuid.UUID, data session.Data, ttl time.Duration) error {
	return errors.New("redis: connection refused")
}

func TestSetTheme_StoreFailure(t *testing.T) {
	sessions := newTestSessions(t, brokenStore{})

	rr := setTheme(sessions, `{"theme":"dark"}`)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "connection refused") {
		t.Error("store error leaked to the client")
	}
}
