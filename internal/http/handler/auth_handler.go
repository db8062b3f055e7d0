package handler

import (
	"net/http"
	"time"

	"github.com/mrqz-remodeling/console-api/internal/auth"
	"github.com/mrqz-remodeling/console-api/internal/domain"
	"go.uber.org/zap"
)

type AuthHandler struct {
	logger *zap.Logger
}

func NewAuthHandler(logger *zap.Logger) *AuthHandler {
	return &AuthHandler{logger: logger}
}

// Me godoc
// @Summary Get current session
// @Description Returns the signed-in operator's email and token expiry
// @Tags Auth
// @Produce json
// @Success 200 {object} domain.SessionDTO
// @Failure 401 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.FromContext(r.Context())
	if !ok || session == nil {
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	dto := domain.SessionDTO{
		Email:   session.Email,
		Subject: session.Subject,
		System:  session.System,
	}
	if !session.ExpiresAt.IsZero() {
		dto.ExpiresAt = session.ExpiresAt.UTC().Format(time.RFC3339)
	}
	respondJSON(w, http.StatusOK, dto)
}

// Logout godoc
// @Summary Sign out
// @Description Drops the cached session and rejects the bearer token until it expires. The identity provider session is ended by the client.
// @Tags Auth
// @Success 204
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := auth.FromContext(r.Context())
	if token, ok := auth.BearerToken(r); ok && session != nil && !session.System {
		if err := auth.Invalidate(r.Context(), token, session.ExpiresAt); err != nil {
			h.logger.Warn("failed to invalidate session", zap.Error(err))
		}
	}
	w.WriteHeader(http.StatusNoContent)
}
