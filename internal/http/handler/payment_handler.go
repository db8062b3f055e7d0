package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/mrqz-remodeling/console-api/internal/domain"
	"github.com/mrqz-remodeling/console-api/internal/repository"
	"github.com/mrqz-remodeling/console-api/internal/service"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	paymentService *service.PaymentService
	logger         *zap.Logger
}

func NewPaymentHandler(paymentService *service.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		logger:         logger,
	}
}

// Record godoc
// @Summary Record payment
// @Description Append a payment to a project and derive its payment status. Payments above the remaining balance are accepted.
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body domain.CreatePaymentRequest true "Payment data"
// @Success 201 {object} domain.RecordPaymentResult
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /payments [post]
func (h *PaymentHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req domain.CreatePaymentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.paymentService.Record(r.Context(), &req)
	if err != nil {
		h.handlePaymentError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, result)
}

// List godoc
// @Summary List payments
// @Tags Payments
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(50)
// @Param projectId query string false "Filter by project" format(uuid)
// @Param paymentMethod query string false "Filter by method" Enums(cash, check, transfer, credit_card)
// @Param sortBy query string false "Sort field" Enums(createdAt, amount, paymentMethod)
// @Param sortOrder query string false "Sort order" Enums(asc, desc)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.PaymentDTO}
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /payments [get]
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)

	filters := &repository.PaymentFilters{}
	if pid := r.URL.Query().Get("projectId"); pid != "" {
		id, err := uuid.Parse(pid)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid project ID format")
			return
		}
		filters.ProjectID = &id
	}
	if m := r.URL.Query().Get("paymentMethod"); m != "" {
		method := domain.PaymentMethod(m)
		filters.PaymentMethod = &method
	}

	result, err := h.paymentService.List(r.Context(), page, pageSize, filters, parseSort(r))
	if err != nil {
		h.handlePaymentError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Balance godoc
// @Summary Project balance
// @Description Amount paid, remaining and the suggested next payment
// @Tags Payments
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Success 200 {object} domain.BalanceDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /projects/{id}/balance [get]
func (h *PaymentHandler) Balance(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id", "project")
	if !ok {
		return
	}

	balance, err := h.paymentService.Balance(r.Context(), id)
	if err != nil {
		h.handlePaymentError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, balance)
}

func (h *PaymentHandler) handlePaymentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrProjectNotFound):
		respondWithError(w, http.StatusNotFound, "Project not found")
	case errors.Is(err, service.ErrInvalidAmount), errors.Is(err, service.ErrInvalidPaymentMethod):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("payment handler error", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
