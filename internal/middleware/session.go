package middleware

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/hkdf"

	"portfolio-site/internal/session"
)

type contextKey string

const SessionKey contextKey = "session"

// SessionCookieName is the cookie holding the signed session token.
const SessionCookieName = "session"

const sessionKeyInfo = "portfolio-site session signing v1"

// Sessions signs session ids into a cookie and loads the matching state from a store.
type Sessions struct {
	Secret []byte
	store  session.Store
	ttl    time.Duration
	secure bool
}

// NewSessions derives the cookie signing key from secret. secure marks the
// cookie HTTPS-only.
func NewSessions(secret string, store session.Store, ttl time.Duration, secure bool) (*Sessions, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(sessionKeyInfo)), key); err != nil {
		return nil, fmt.Errorf("failed to derive session key: %w", err)
	}
	return &Sessions{Secret: key, store: store, ttl: ttl, secure: secure}, nil
}

// signToken creates a JWT carrying the session id, expiring with the session.
func (s *Sessions) signToken(id uuid.UUID, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sid": id.String(),
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.Secret)
}

func (s *Sessions) parseToken(tokenStr string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.Secret, nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return uuid.Nil, errors.New("invalid token claims")
	}

	sid, ok := claims["sid"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing session id")
	}
	return uuid.Parse(sid)
}

// Middleware attaches the visitor's session to the request context. Visitors
// without a valid cookie get a fresh, unsaved session.
func (s *Sessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := s.load(r)
		ctx := context.WithValue(r.Context(), SessionKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Sessions) load(r *http.Request) *session.Session {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return session.New()
	}

	id, err := s.parseToken(cookie.Value)
	if err != nil {
		slog.Debug("ignoring invalid session cookie", "error", err)
		return session.New()
	}

	data, err := s.store.Load(r.Context(), id)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			slog.Warn("session store unavailable", "error", err)
		}
		return &session.Session{ID: id}
	}
	return &session.Session{ID: id, Data: data}
}

// Save persists sess and refreshes the session cookie.
func (s *Sessions) Save(w http.ResponseWriter, r *http.Request, sess *session.Session) error {
	if err := s.store.Save(r.Context(), sess.ID, sess.Data, s.ttl); err != nil {
		return err
	}

	token, err := s.signToken(sess.ID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to sign session token: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// GetSession extracts the visitor session from request context. It never
// returns nil.
func GetSession(ctx context.Context) *session.Session {
	if sess, ok := ctx.Value(SessionKey).(*session.Session); ok && sess != nil {
		return sess
	}
	return session.New()
}
