package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/mrqz-remodeling/console-api/internal/domain"
	"github.com/mrqz-remodeling/console-api/internal/service"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DocumentHandler serves the quotation PDF, its delivery by email and the spreadsheet export
type DocumentHandler struct {
	documentService *service.DocumentService
	projectService  *service.ProjectService
	logger          *zap.Logger
}

func NewDocumentHandler(documentService *service.DocumentService, projectService *service.ProjectService, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		projectService:  projectService,
		logger:          logger,
	}
}

// PDF godoc
// @Summary Quotation PDF
// @Description Render the quotation, store it and return it as proyecto-<unitNumber>.pdf
// @Tags Documents
// @Produce application/pdf
// @Param id path string true "Project ID" format(uuid)
// @Success 200 {file} file
// @Failure 404 {object} domain.APIError
// @Failure 503 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /projects/{id}/pdf [get]
func (h *DocumentHandler) PDF(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id", "project")
	if !ok {
		return
	}

	doc, err := h.documentService.RenderPDF(r.Context(), id)
	if err != nil {
		h.handleDocumentError(w, err)
		return
	}
	respondFile(w, "application/pdf", doc.FileName, doc.Data)
}

// Send godoc
// @Summary Send quotation
// @Description Email the quotation PDF and mark the project as sent
// @Tags Documents
// @Accept json
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Param request body domain.SendQuotationRequest true "Recipient and message"
// @Success 200 {object} domain.ProjectDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 503 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /projects/{id}/send [post]
func (h *DocumentHandler) Send(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id", "project")
	if !ok {
		return
	}
	var req domain.SendQuotationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if _, err := h.documentService.Send(r.Context(), id, &req); err != nil {
		h.handleDocumentError(w, err)
		return
	}

	project, err := h.projectService.GetByID(r.Context(), id)
	if err != nil {
		h.handleDocumentError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, project)
}

// Export godoc
// @Summary Export projects
// @Description Workbook with a Projects sheet and a Payments sheet. Accepts the project list filters.
// @Tags Documents
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param status query string false "Filter by status" Enums(draft, sent, approved, invoiced, paid, cancelled)
// @Param paymentStatus query string false "Filter by payment status" Enums(pending, partial, paid)
// @Param outstanding query bool false "Exclude projects whose status is paid"
// @Param search query string false "Match unit number or property name"
// @Success 200 {file} file
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /projects/export.xlsx [get]
func (h *DocumentHandler) Export(w http.ResponseWriter, r *http.Request) {
	filters := parseProjectFilters(r)
	if filters.Status != nil && !filters.Status.IsValid() {
		respondWithError(w, http.StatusBadRequest, service.ErrInvalidStatus.Error())
		return
	}
	if filters.PaymentStatus != nil && !filters.PaymentStatus.IsValid() {
		respondWithError(w, http.StatusBadRequest, "invalid payment status")
		return
	}

	data, err := h.documentService.Export(r.Context(), filters)
	if err != nil {
		h.handleDocumentError(w, err)
		return
	}
	respondFile(w, xlsxContentType, "proyectos-"+time.Now().Format("2006-01-02")+".xlsx", data)
}

func (h *DocumentHandler) handleDocumentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrProjectNotFound):
		respondWithError(w, http.StatusNotFound, "Project not found")
	case errors.Is(err, service.ErrMailDisabled), errors.Is(err, service.ErrDocumentNotAvailable):
		respondWithError(w, http.StatusServiceUnavailable, err.Error())
	default:
		h.logger.Error("document handler error", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
