package auth

import (
	"context"
	"strings"
	"time"
)

// SystemEmail identifies requests authenticated with the API key
const SystemEmail = "system@mrqzremodeling.com"

// Session is the authenticated identity attached to a request
type Session struct {
	Email     string    `json:"email"`
	Subject   string    `json:"subject,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
	System    bool      `json:"system,omitempty"`
}

// Expired reports whether the session's token has expired at now.
// A zero ExpiresAt never expires.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

type contextKey string

const sessionContextKey contextKey = "session"

// WithSession adds the session to the context
func WithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}

// FromContext extracts the session from the context
func FromContext(ctx context.Context) (*Session, bool) {
	session, ok := ctx.Value(sessionContextKey).(*Session)
	return session, ok
}

// normalizeEmail lowercases and trims an address for comparison
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
