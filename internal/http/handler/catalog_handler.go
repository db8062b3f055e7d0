package handler

import (
	"errors"
	"net/http"

	"github.com/mrqz-remodeling/console-api/internal/domain"
	"github.com/mrqz-remodeling/console-api/internal/service"
	"go.uber.org/zap"
)

// CatalogHandler serves the base and service catalogs
type CatalogHandler struct {
	catalogService *service.CatalogService
	logger         *zap.Logger
}

func NewCatalogHandler(catalogService *service.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// ListBases godoc
// @Summary List bases
// @Description List base packages, by name unless a sort is given
// @Tags Catalog
// @Produce json
// @Param activeOnly query bool false "Only active bases"
// @Param sortBy query string false "Sort field" Enums(name, price, createdAt, updatedAt)
// @Param sortOrder query string false "Sort order" Enums(asc, desc)
// @Success 200 {array} domain.BaseDTO
// @Failure 401 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /bases [get]
func (h *CatalogHandler) ListBases(w http.ResponseWriter, r *http.Request) {
	bases, err := h.catalogService.ListBases(r.Context(), parseSort(r), parseBool(r, "activeOnly"))
	if err != nil {
		h.handleCatalogError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bases)
}

// GetBase godoc
// @Summary Get base
// @Tags Catalog
// @Produce json
// @Param id path string true "Base ID" format(uuid)
// @Success 200 {object} domain.BaseDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /bases/{id} [get]
func (h *CatalogHandler) GetBase(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id", "base")
	if !ok {
		return
	}

	base, err := h.catalogService.GetBase(r.Context(), id)
	if err != nil {
		h.handleCatalogError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, base)
}

// CreateBase godoc
// @Summary Create base
// @Tags Catalog
// @Accept json
// @Produce json
// @Param request body domain.CreateBaseRequest true "Base data"
// @Success 201 {object} domain.BaseDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /bases [post]
func (h *CatalogHandler) CreateBase(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateBaseRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	base, err := h.catalogService.CreateBase(r.Context(), &req)
	if err != nil {
		h.handleCatalogError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, base)
}

// UpdateBase godoc
// @Summary Update base
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "Base ID" format(uuid)
// @Param request body domain.UpdateBaseRequest true "Base data"
// @Success 200 {object} domain.BaseDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /bases/{id} [put]
func (h *CatalogHandler) UpdateBase(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id", "base")
	if !ok {
		return
	}
	var req domain.UpdateBaseRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	base, err := h.catalogService.UpdateBase(r.Context(), id, &req)
	if err != nil {
		h.handleCatalogError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, base)
}

// ListServices godoc
// @Summary List services
// @Description List catalog services, by category then name unless a sort is given
// @Tags Catalog
// @Produce json
// @Param category query string false "Filter by category" Enums(Estructural, Carpintería, Plomería, Acabados)
// @Param sortBy query string false "Sort field" Enums(name, price, category, createdAt, updatedAt)
// @Param sortOrder query string false "Sort order" Enums(asc, desc)
// @Success 200 {array} domain.ServiceDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /services [get]
func (h *CatalogHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	var category *domain.ServiceCategory
	if c := r.URL.Query().Get("category"); c != "" {
		sc := domain.ServiceCategory(c)
		category = &sc
	}

	services, err := h.catalogService.ListServices(r.Context(), parseSort(r), category)
	if err != nil {
		h.handleCatalogError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, services)
}

// GetService godoc
// @Summary Get service
// @Tags Catalog
// @Produce json
// @Param id path string true "Service ID" format(uuid)
// @Success 200 {object} domain.ServiceDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /services/{id} [get]
func (h *CatalogHandler) GetService(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id", "service")
	if !ok {
		return
	}

	svc, err := h.catalogService.GetService(r.Context(), id)
	if err != nil {
		h.handleCatalogError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, svc)
}

// CreateService godoc
// @Summary Create service
// @Description The multiplier is derived from the unit: X<n> gives n, anything else gives 1
// @Tags Catalog
// @Accept json
// @Produce json
// @Param request body domain.CreateServiceRequest true "Service data"
// @Success 201 {object} domain.ServiceDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /services [post]
func (h *CatalogHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateServiceRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	svc, err := h.catalogService.CreateService(r.Context(), &req)
	if err != nil {
		h.handleCatalogError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, svc)
}

// UpdateService godoc
// @Summary Update service
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "Service ID" format(uuid)
// @Param request body domain.UpdateServiceRequest true "Service data"
// @Success 200 {object} domain.ServiceDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /services/{id} [put]
func (h *CatalogHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id", "service")
	if !ok {
		return
	}
	var req domain.UpdateServiceRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	svc, err := h.catalogService.UpdateService(r.Context(), id, &req)
	if err != nil {
		h.handleCatalogError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, svc)
}

func (h *CatalogHandler) handleCatalogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrBaseNotFound):
		respondWithError(w, http.StatusNotFound, "Base not found")
	case errors.Is(err, service.ErrServiceNotFound):
		respondWithError(w, http.StatusNotFound, "Service not found")
	case errors.Is(err, service.ErrInvalidCategory):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("catalog handler error", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
