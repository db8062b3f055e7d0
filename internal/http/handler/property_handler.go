package handler

import (
	"errors"
	"net/http"

	"github.com/mrqz-remodeling/console-api/internal/domain"
	"github.com/mrqz-remodeling/console-api/internal/service"
	"go.uber.org/zap"
)

type PropertyHandler struct {
	propertyService *service.PropertyService
	logger          *zap.Logger
}

func NewPropertyHandler(propertyService *service.PropertyService, logger *zap.Logger) *PropertyHandler {
	return &PropertyHandler{
		propertyService: propertyService,
		logger:          logger,
	}
}

// List godoc
// @Summary List properties
// @Description List properties with their unit types in position order
// @Tags Properties
// @Produce json
// @Param sortBy query string false "Sort field" Enums(name, address, createdAt, updatedAt)
// @Param sortOrder query string false "Sort order" Enums(asc, desc)
// @Success 200 {array} domain.PropertyDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /properties [get]
func (h *PropertyHandler) List(w http.ResponseWriter, r *http.Request) {
	properties, err := h.propertyService.List(r.Context(), parseSort(r))
	if err != nil {
		h.handlePropertyError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, properties)
}

// GetByID godoc
// @Summary Get property
// @Tags Properties
// @Produce json
// @Param id path string true "Property ID" format(uuid)
// @Success 200 {object} domain.PropertyDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /properties/{id} [get]
func (h *PropertyHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id", "property")
	if !ok {
		return
	}

	property, err := h.propertyService.GetByID(r.Context(), id)
	if err != nil {
		h.handlePropertyError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, property)
}

// Create godoc
// @Summary Create property
// @Description Create a property, optionally with its unit types
// @Tags Properties
// @Accept json
// @Produce json
// @Param request body domain.CreatePropertyRequest true "Property data"
// @Success 201 {object} domain.PropertyDTO
// @Failure 400 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /properties [post]
func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreatePropertyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	property, err := h.propertyService.Create(r.Context(), &req)
	if err != nil {
		h.handlePropertyError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, property)
}

// Update godoc
// @Summary Update property
// @Tags Properties
// @Accept json
// @Produce json
// @Param id path string true "Property ID" format(uuid)
// @Param request body domain.UpdatePropertyRequest true "Property data"
// @Success 200 {object} domain.PropertyDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /properties/{id} [put]
func (h *PropertyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id", "property")
	if !ok {
		return
	}
	var req domain.UpdatePropertyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	property, err := h.propertyService.Update(r.Context(), id, &req)
	if err != nil {
		h.handlePropertyError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, property)
}

// ListUnits godoc
// @Summary List unit types
// @Tags Properties
// @Produce json
// @Param id path string true "Property ID" format(uuid)
// @Param sortBy query string false "Sort field" Enums(code, basePrice, squareFeet, bedrooms, position)
// @Param sortOrder query string false "Sort order" Enums(asc, desc)
// @Success 200 {array} domain.UnitTypeDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /properties/{id}/units [get]
func (h *PropertyHandler) ListUnits(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id", "property")
	if !ok {
		return
	}

	units, err := h.propertyService.ListUnits(r.Context(), id, parseSort(r))
	if err != nil {
		h.handlePropertyError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, units)
}

// CreateUnit godoc
// @Summary Create unit type
// @Tags Properties
// @Accept json
// @Produce json
// @Param id path string true "Property ID" format(uuid)
// @Param request body domain.CreateUnitTypeRequest true "Unit type data"
// @Success 201 {object} domain.UnitTypeDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /properties/{id}/units [post]
func (h *PropertyHandler) CreateUnit(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id", "property")
	if !ok {
		return
	}
	var req domain.CreateUnitTypeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	unit, err := h.propertyService.CreateUnit(r.Context(), id, &req)
	if err != nil {
		h.handlePropertyError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, unit)
}

// UpdateUnit godoc
// @Summary Update unit type
// @Tags Properties
// @Accept json
// @Produce json
// @Param id path string true "Property ID" format(uuid)
// @Param unitId path string true "Unit type ID" format(uuid)
// @Param request body domain.UpdateUnitTypeRequest true "Unit type data"
// @Success 200 {object} domain.UnitTypeDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /properties/{id}/units/{unitId} [put]
func (h *PropertyHandler) UpdateUnit(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := urlUUID(w, r, "id", "property")
	if !ok {
		return
	}
	unitID, ok := urlUUID(w, r, "unitId", "unit")
	if !ok {
		return
	}
	var req domain.UpdateUnitTypeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	unit, err := h.propertyService.UpdateUnit(r.Context(), propertyID, unitID, &req)
	if err != nil {
		h.handlePropertyError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, unit)
}

func (h *PropertyHandler) handlePropertyError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrPropertyNotFound):
		respondWithError(w, http.StatusNotFound, "Property not found")
	case errors.Is(err, service.ErrUnitNotFound):
		respondWithError(w, http.StatusNotFound, "Unit type not found")
	case errors.Is(err, service.ErrDuplicateUnitCode):
		respondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("property handler error", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
