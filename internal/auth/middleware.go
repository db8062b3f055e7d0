package auth

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/mrqz-remodeling/console-api/internal/config"
	"github.com/mrqz-remodeling/console-api/internal/domain"
	"github.com/mrqz-remodeling/console-api/internal/logger"
	"go.uber.org/zap"
)

// Middleware gates requests on a valid token whose email is allow-listed
type Middleware struct {
	jwtValidator *JWTValidator
	allowList    *AllowList
	apiKey       string
	loginURL     string
	sessionTTL   time.Duration
	logger       *zap.Logger
	now          func() time.Time
}

// NewMiddleware creates a new authentication middleware
func NewMiddleware(cfg *config.AuthConfig, log *zap.Logger) *Middleware {
	if len(cfg.AllowedEmails) == 0 {
		log.Warn("allow-list is empty; every signed-in user will be signed out")
	}
	return &Middleware{
		jwtValidator: NewJWTValidator(cfg),
		allowList:    NewAllowList(cfg.AllowedEmails),
		apiKey:       cfg.APIKey,
		loginURL:     cfg.LoginURL,
		sessionTTL:   cfg.SessionTTLDuration(),
		logger:       log,
		now:          time.Now,
	}
}

// BearerToken extracts the token from an "Authorization: Bearer" header
func BearerToken(r *http.Request) (string, bool) {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// Authenticate is the main authentication middleware
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		if apiKey := r.Header.Get("x-api-key"); apiKey != "" {
			if !m.validateAPIKey(apiKey) {
				m.logger.Warn("invalid API key attempt",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
				)
				m.unauthorized(w, "Invalid API key")
				return
			}
			session := &Session{Email: SystemEmail, Subject: "system", System: true}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
			return
		}

		token, ok := BearerToken(r)
		if !ok {
			m.unauthorized(w, "Missing or malformed authorization header")
			return
		}

		key := TokenKey(token)
		cache := currentStore()

		var session *Session
		if cache != nil {
			revoked, err := cache.Revoked(r.Context(), key)
			if err != nil {
				m.logger.Warn("session revocation check failed", zap.Error(err))
			}
			if revoked {
				m.unauthorized(w, "Session has been signed out")
				return
			}

			cached, found, err := cache.Get(r.Context(), key)
			if err != nil {
				m.logger.Warn("session cache read failed", zap.Error(err))
			}
			if found && !cached.Expired(m.now()) {
				session = cached
			}
		}

		if session == nil {
			validated, err := m.jwtValidator.ValidateToken(token)
			if err != nil {
				m.logger.Warn("token validation failed",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
					zap.Error(err),
				)
				m.unauthorized(w, err.Error())
				return
			}
			session = validated
		}

		if !m.allowList.Allows(session.Email) {
			if cache != nil {
				if err := cache.Delete(r.Context(), key); err != nil {
					m.logger.Warn("failed to tear down session", zap.Error(err))
				}
			}
			m.logger.Warn("email not on allow-list, signing out",
				zap.String("user_email", session.Email),
				zap.String("path", r.URL.Path),
			)
			m.forbidden(w)
			return
		}

		if cache != nil {
			if err := cache.Set(r.Context(), key, session, m.cacheTTL(session)); err != nil {
				m.logger.Warn("session cache write failed", zap.Error(err))
			}
		}

		logger.WithSession(m.logger, session.Subject, session.Email).Debug("request authenticated",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("auth_duration", time.Since(start)),
		)

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}

// cacheTTL bounds the cache lifetime by the token's own expiry
func (m *Middleware) cacheTTL(session *Session) time.Duration {
	ttl := m.sessionTTL
	if !session.ExpiresAt.IsZero() {
		if remaining := session.ExpiresAt.Sub(m.now()); remaining < ttl {
			ttl = remaining
		}
	}
	return ttl
}

func (m *Middleware) validateAPIKey(key string) bool {
	if m.apiKey == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(m.apiKey)) == 1
}

func (m *Middleware) unauthorized(w http.ResponseWriter, detail string) {
	writeProblem(w, &domain.APIError{
		Type:     domain.ErrorTypeUnauthorized,
		Title:    "Unauthorized",
		Status:   http.StatusUnauthorized,
		Detail:   detail,
		LoginURL: m.loginURL,
	})
}

func (m *Middleware) forbidden(w http.ResponseWriter) {
	writeProblem(w, &domain.APIError{
		Type:     domain.ErrorTypeForbidden,
		Title:    "Forbidden",
		Status:   http.StatusForbidden,
		Detail:   "This account is not allowed to use the console",
		SignOut:  true,
		LoginURL: m.loginURL,
	})
}

func writeProblem(w http.ResponseWriter, problem *domain.APIError) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(problem.Status)
	_ = json.NewEncoder(w).Encode(problem)
}
