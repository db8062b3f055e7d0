package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mrqz-remodeling/console-api/internal/auth"
	"github.com/mrqz-remodeling/console-api/internal/config"
	"github.com/mrqz-remodeling/console-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func ok() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestRecovery_ReturnsProblem(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	h := Recovery(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/projects", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	var problem domain.APIError
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&problem))
	assert.Equal(t, domain.ErrorTypeInternal, problem.Type)
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestRecovery_RepanicsOnAbort(t *testing.T) {
	h := Recovery(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestLogging_EchoesRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := Logging(zap.New(core))(ok())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))
	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "req-123", fields["request_id"])
	assert.EqualValues(t, http.StatusNoContent, fields["status_code"])
}

func TestLogging_GeneratesRequestID(t *testing.T) {
	h := Logging(zap.NewNop())(ok())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestLogging_IncludesCapturedSession(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	// stands in for auth.Middleware.Authenticate
	authenticate := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := &auth.Session{Email: "owner@example.com", Subject: "abc"}
			next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), session)))
		})
	}
	h := Logging(zap.New(core))(authenticate(CaptureSession(ok())))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil))

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "owner@example.com", logs.All()[0].ContextMap()["user_email"])
}

func TestSecurityHeaders(t *testing.T) {
	cfg := &config.SecurityConfig{
		EnableHSTS:            true,
		HSTSMaxAge:            3600,
		HSTSIncludeSubdomains: true,
		FrameOptions:          "DENY",
		ContentTypeNosniff:    true,
		ReferrerPolicy:        "no-referrer",
	}

	rec := httptest.NewRecorder()
	SecurityHeaders(cfg)(ok()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "no-referrer", rec.Header().Get("Referrer-Policy"))
	assert.Equal(t, "max-age=3600; includeSubDomains", rec.Header().Get("Strict-Transport-Security"))
	assert.Empty(t, rec.Header().Get("Content-Security-Policy"))
	assert.Empty(t, rec.Header().Get("Cache-Control"))
}

func TestSecurityHeaders_PathRules(t *testing.T) {
	cfg := &config.SecurityConfig{ContentSecurityPolicy: "default-src 'self'"}
	handler := SecurityHeaders(cfg)(ok())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/projects", nil))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "default-src 'self'", rec.Header().Get("Content-Security-Policy"))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
	assert.Empty(t, rec.Header().Get("Content-Security-Policy"))
	assert.Empty(t, rec.Header().Get("Cache-Control"))
}

func TestWithDownloadHeaders(t *testing.T) {
	assert.Equal(t,
		[]string{"X-Total-Count", "Content-Disposition", RequestIDHeader},
		withDownloadHeaders([]string{"X-Total-Count"}),
	)
	assert.Equal(t,
		[]string{"content-disposition", RequestIDHeader},
		withDownloadHeaders([]string{"content-disposition"}),
	)
}

func TestRateLimiter_LimitsByIP(t *testing.T) {
	rl := NewRateLimiter(&config.RateLimitConfig{
		Enabled:               true,
		RequestsPerMinute:     2,
		RequestsPerMinuteAuth: 10,
		WhitelistPaths:        []string{"/health/*"},
	}, zap.NewNop())
	h := rl.LimitByIP(ok())

	call := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusNoContent, call("/api/v1/bases").Code)
	assert.Equal(t, http.StatusNoContent, call("/api/v1/bases").Code)

	limited := call("/api/v1/bases")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "application/problem+json", limited.Header().Get("Content-Type"))

	var problem domain.APIError
	require.NoError(t, json.NewDecoder(limited.Body).Decode(&problem))
	assert.Equal(t, domain.ErrorTypeRateLimited, problem.Type)

	assert.Equal(t, http.StatusNoContent, call("/health/ready").Code, "whitelisted prefix")
}

func TestRateLimiter_DisabledPassesThrough(t *testing.T) {
	rl := NewRateLimiter(&config.RateLimitConfig{RequestsPerMinute: 1, RequestsPerMinuteAuth: 1}, zap.NewNop())
	h := rl.LimitBySession(ok())

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}
}

func TestKeyBySessionOrIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")

	key, err := keyBySessionOrIP(req)
	require.NoError(t, err)
	assert.Equal(t, "ip:203.0.113.9", key)

	req = req.WithContext(auth.WithSession(req.Context(), &auth.Session{Email: "office@example.com"}))
	key, err = keyBySessionOrIP(req)
	require.NoError(t, err)
	assert.Equal(t, "user:office@example.com", key)
}
