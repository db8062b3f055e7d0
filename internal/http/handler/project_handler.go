package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/mrqz-remodeling/console-api/internal/domain"
	"github.com/mrqz-remodeling/console-api/internal/repository"
	"github.com/mrqz-remodeling/console-api/internal/service"
	"go.uber.org/zap"
)

// draftListLimit caps GET /projects/drafts
const draftListLimit = 50

type ProjectHandler struct {
	projectService *service.ProjectService
	logger         *zap.Logger
}

func NewProjectHandler(projectService *service.ProjectService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		logger:         logger,
	}
}

// Preview godoc
// @Summary Preview quotation
// @Description Price a quotation without saving it. total = base + sum(price x multiplier) + changeOrders x 10
// @Tags Quotations
// @Accept json
// @Produce json
// @Param request body domain.QuotationRequest true "Quotation selection"
// @Success 200 {object} domain.QuotationPreviewDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotations/preview [post]
func (h *ProjectHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req domain.QuotationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	preview, err := h.projectService.Preview(r.Context(), &req)
	if err != nil {
		h.handleProjectError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, preview)
}

// List godoc
// @Summary List projects
// @Description Paginated projects with their items and payments
// @Tags Projects
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(50)
// @Param status query string false "Filter by status" Enums(draft, sent, approved, invoiced, paid, cancelled)
// @Param paymentStatus query string false "Filter by payment status" Enums(pending, partial, paid)
// @Param outstanding query bool false "Exclude projects whose status is paid"
// @Param search query string false "Match unit number or property name"
// @Param sortBy query string false "Sort field" Enums(date, total, propertyName, unitNumber, status, paymentStatus, createdAt, updatedAt)
// @Param sortOrder query string false "Sort order" Enums(asc, desc)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.ProjectDTO}
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /projects [get]
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)

	result, err := h.projectService.List(r.Context(), page, pageSize, parseProjectFilters(r), parseSort(r))
	if err != nil {
		h.handleProjectError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// ListDrafts godoc
// @Summary List drafts
// @Description Draft projects, newest first
// @Tags Projects
// @Produce json
// @Param limit query int false "Maximum drafts (max 50)" default(50)
// @Success 200 {array} domain.ProjectDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /projects/drafts [get]
func (h *ProjectHandler) ListDrafts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > draftListLimit {
		limit = draftListLimit
	}

	drafts, err := h.projectService.ListDrafts(r.Context(), limit)
	if err != nil {
		h.handleProjectError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, drafts)
}

// Create godoc
// @Summary Create project
// @Description Save a quotation as a draft project with payment status pending
// @Tags Projects
// @Accept json
// @Produce json
// @Param request body domain.QuotationRequest true "Quotation selection"
// @Success 201 {object} domain.ProjectDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /projects [post]
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.QuotationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	project, err := h.projectService.Create(r.Context(), &req)
	if err != nil {
		h.handleProjectError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, project)
}

// GetByID godoc
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Success 200 {object} domain.ProjectDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id", "project")
	if !ok {
		return
	}

	project, err := h.projectService.GetByID(r.Context(), id)
	if err != nil {
		h.handleProjectError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, project)
}

// AddItem godoc
// @Summary Add item slot
// @Description Append an empty service slot to a draft
// @Tags Projects
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Success 200 {object} domain.ProjectDTO
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /projects/{id}/items [post]
func (h *ProjectHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id", "project")
	if !ok {
		return
	}

	project, err := h.projectService.AddItem(r.Context(), id)
	if err != nil {
		h.handleProjectError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, project)
}

// AssignItem godoc
// @Summary Assign service to item
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Param itemId path string true "Item ID" format(uuid)
// @Param request body domain.AssignItemRequest true "Service to assign"
// @Success 200 {object} domain.ProjectDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /projects/{id}/items/{itemId} [put]
func (h *ProjectHandler) AssignItem(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id", "project")
	if !ok {
		return
	}
	itemID, ok := urlUUID(w, r, "itemId", "item")
	if !ok {
		return
	}
	var req domain.AssignItemRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	project, err := h.projectService.AssignItem(r.Context(), id, itemID, &req)
	if err != nil {
		h.handleProjectError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, project)
}

// RemoveItem godoc
// @Summary Remove item
// @Description Remove a slot from a draft and return the repriced project. Unknown items are ignored.
// @Tags Projects
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Param itemId path string true "Item ID" format(uuid)
// @Success 200 {object} domain.ProjectDTO
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /projects/{id}/items/{itemId} [delete]
func (h *ProjectHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id", "project")
	if !ok {
		return
	}
	itemID, ok := urlUUID(w, r, "itemId", "item")
	if !ok {
		return
	}

	project, err := h.projectService.RemoveItem(r.Context(), id, itemID)
	if err != nil {
		h.handleProjectError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, project)
}

// UpdateChangeOrders godoc
// @Summary Update change orders
// @Description Set the change order count. Totals and payment status are derived again.
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Param request body domain.UpdateChangeOrdersRequest true "Change order count"
// @Success 200 {object} domain.ProjectDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /projects/{id}/change-orders [put]
func (h *ProjectHandler) UpdateChangeOrders(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id", "project")
	if !ok {
		return
	}
	var req domain.UpdateChangeOrdersRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	project, err := h.projectService.UpdateChangeOrders(r.Context(), id, req.ChangeOrders)
	if err != nil {
		h.handleProjectError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, project)
}

// UpdateStatus godoc
// @Summary Update status
// @Description Set the workflow status. Transitions are not enforced.
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Param request body domain.UpdateProjectStatusRequest true "New status"
// @Success 200 {object} domain.ProjectDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /projects/{id}/status [put]
func (h *ProjectHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id", "project")
	if !ok {
		return
	}
	var req domain.UpdateProjectStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	project, err := h.projectService.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		h.handleProjectError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, project)
}

// parseProjectFilters reads the list filters shared by listing and export.
// Values are checked by the service.
func parseProjectFilters(r *http.Request) *repository.ProjectFilters {
	q := r.URL.Query()
	filters := &repository.ProjectFilters{
		Outstanding: parseBool(r, "outstanding"),
		Search:      q.Get("search"),
	}
	if s := q.Get("status"); s != "" {
		status := domain.ProjectStatus(s)
		filters.Status = &status
	}
	if s := q.Get("paymentStatus"); s != "" {
		status := domain.PaymentStatus(s)
		filters.PaymentStatus = &status
	}
	return filters
}

func (h *ProjectHandler) handleProjectError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrProjectNotFound):
		respondWithError(w, http.StatusNotFound, "Project not found")
	case errors.Is(err, service.ErrItemNotFound):
		respondWithError(w, http.StatusNotFound, "Quotation item not found")
	case errors.Is(err, service.ErrBaseNotFound):
		respondWithError(w, http.StatusNotFound, "Base not found")
	case errors.Is(err, service.ErrServiceNotFound):
		respondWithError(w, http.StatusNotFound, "Service not found")
	case errors.Is(err, service.ErrPropertyNotFound):
		respondWithError(w, http.StatusNotFound, "Property not found")
	case errors.Is(err, service.ErrUnitNotFound):
		respondWithError(w, http.StatusNotFound, "Unit type not found")
	case errors.Is(err, service.ErrProjectNotDraft):
		respondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidStatus), errors.Is(err, service.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("project handler error", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
