package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mrqz-remodeling/console-api/internal/document"
	"github.com/mrqz-remodeling/console-api/internal/domain"
	"github.com/mrqz-remodeling/console-api/internal/mailer"
	"github.com/mrqz-remodeling/console-api/internal/repository"
	"github.com/mrqz-remodeling/console-api/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const pdfContentType = "application/pdf"

// MailSender delivers a message; *mailer.Mailer satisfies it
type MailSender interface {
	Enabled() bool
	Send(ctx context.Context, msg *mailer.Message) error
}

// RenderedDocument is a generated quotation PDF
type RenderedDocument struct {
	FileName string
	Key      string
	Data     []byte
}

// DocumentService renders, stores, exports and mails project documents
type DocumentService struct {
	projectRepo *repository.ProjectRepository
	renderer    document.Renderer
	store       storage.Storage
	mail        MailSender
	letterhead  document.Letterhead
	logger      *zap.Logger
}

func NewDocumentService(
	projectRepo *repository.ProjectRepository,
	renderer document.Renderer,
	store storage.Storage,
	mail MailSender,
	letterhead document.Letterhead,
	logger *zap.Logger,
) *DocumentService {
	return &DocumentService{
		projectRepo: projectRepo,
		renderer:    renderer,
		store:       store,
		mail:        mail,
		letterhead:  letterhead,
		logger:      logger,
	}
}

// RenderPDF prints the project's quotation, stores it and records its key on the project
func (s *DocumentService) RenderPDF(ctx context.Context, projectID uuid.UUID) (*RenderedDocument, error) {
	if s.renderer == nil {
		return nil, ErrDocumentNotAvailable
	}

	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	q := document.NewQuotation(project, s.letterhead)
	data, err := s.renderer.Render(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to render quotation: %w", err)
	}

	key := storage.QuotationKey(project.ID, q.FileName)
	if _, err := s.store.Put(ctx, key, pdfContentType, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to store quotation: %w", err)
	}
	if err := s.projectRepo.UpdateDocumentPath(ctx, project.ID, key); err != nil {
		return nil, fmt.Errorf("failed to record document path: %w", err)
	}

	s.logger.Info("quotation rendered",
		zap.String("project_id", project.ID.String()),
		zap.String("key", key),
		zap.Int("size", len(data)))

	return &RenderedDocument{FileName: q.FileName, Key: key, Data: data}, nil
}

// Send renders the quotation, emails it and marks the project as sent
func (s *DocumentService) Send(ctx context.Context, projectID uuid.UUID, req *domain.SendQuotationRequest) (*RenderedDocument, error) {
	if s.mail == nil || !s.mail.Enabled() {
		return nil, ErrMailDisabled
	}

	doc, err := s.RenderPDF(ctx, projectID)
	if err != nil {
		return nil, err
	}

	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		subject = fmt.Sprintf("Cotización %s - %s", s.letterhead.CompanyName, strings.TrimSuffix(doc.FileName, ".pdf"))
	}
	body := strings.TrimSpace(req.Message)
	if body == "" {
		body = "Adjuntamos la cotización solicitada.\n\n" + s.letterhead.CompanyName + "\n" + s.letterhead.Phone
	}

	err = s.mail.Send(ctx, &mailer.Message{
		To:             req.To,
		Subject:        subject,
		Body:           body,
		AttachmentName: doc.FileName,
		Attachment:     doc.Data,
	})
	if err != nil {
		if errors.Is(err, mailer.ErrDisabled) {
			return nil, ErrMailDisabled
		}
		return nil, fmt.Errorf("failed to send quotation: %w", err)
	}

	if err := s.projectRepo.UpdateStatus(ctx, projectID, domain.ProjectStatusSent); err != nil {
		return nil, fmt.Errorf("failed to mark project as sent: %w", err)
	}

	s.logger.Info("quotation sent", zap.String("project_id", projectID.String()), zap.String("to", req.To))
	return doc, nil
}

// Export writes every project matching filters to an xlsx workbook
func (s *DocumentService) Export(ctx context.Context, filters *repository.ProjectFilters) ([]byte, error) {
	projects, err := s.projectRepo.ListAll(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	data, err := document.ExportProjects(projects)
	if err != nil {
		return nil, fmt.Errorf("failed to export projects: %w", err)
	}
	return data, nil
}
