package handler

import (
	"net/http"

	"github.com/mrqz-remodeling/console-api/internal/service"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
	logger           *zap.Logger
}

func NewDashboardHandler(dashboardService *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// Get godoc
// @Summary Get dashboard
// @Description Aggregate statistics over every project plus the five most recent drafts.
// @Description
// @Description - `totalPaid` sums projects whose payment status is paid; `totalPending` sums the rest
// @Description - `averageProjectValue` is unrounded; `averageProjectValueRounded` is for display
// @Description - `propertyStats` keeps first-occurrence order; `estimatedPaid` is 80% of revenue and `collected` sums recorded payments
// @Description - `topServices` holds the five most used services, ties broken by name
// @Tags Dashboard
// @Produce json
// @Success 200 {object} domain.DashboardDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /dashboard [get]
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.dashboardService.Get(r.Context())
	if err != nil {
		h.logger.Error("failed to get dashboard", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to get dashboard")
		return
	}

	respondJSON(w, http.StatusOK, dashboard)
}
