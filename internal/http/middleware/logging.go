package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/mrqz-remodeling/console-api/internal/auth"
	"github.com/mrqz-remodeling/console-api/internal/logger"
	"go.uber.org/zap"
)

// RequestIDHeader carries the request id in and out
const RequestIDHeader = "X-Request-ID"

type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	written     int64
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// sessionSlot lets handlers further down publish the session to the logger,
// since auth runs after logging in the chain.
type sessionSlot struct {
	session *auth.Session
}

// Logging logs one line per request with its id and, once authenticated, the operator's email
func Logging(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.New().String()
				r.Header.Set(RequestIDHeader, requestID)
			}
			w.Header().Set(RequestIDHeader, requestID)

			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			slot := &sessionSlot{}
			next.ServeHTTP(rw, r.WithContext(withSessionSlot(r.Context(), slot)))

			duration := time.Since(start)
			reqLogger := logger.WithRequest(log, r.Method, r.URL.Path, requestID)
			if slot.session != nil {
				reqLogger = logger.WithSession(reqLogger, slot.session.Subject, slot.session.Email)
			}

			reqLogger.Info(
				fmt.Sprintf("%s %-30s -> %3d (%s)",
					r.Method,
					r.URL.Path,
					rw.statusCode,
					duration.Truncate(time.Microsecond),
				),
				zap.String("remote_addr", r.RemoteAddr),
				zap.Int("status_code", rw.statusCode),
				zap.Int64("response_size", rw.written),
				zap.Duration("duration", duration),
			)
		})
	}
}

// CaptureSession records the authenticated session for the request log line.
// It must be mounted after auth.Middleware.Authenticate.
func CaptureSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if slot, ok := sessionSlotFrom(r.Context()); ok {
			if session, ok := auth.FromContext(r.Context()); ok {
				slot.session = session
			}
		}
		next.ServeHTTP(w, r)
	})
}
