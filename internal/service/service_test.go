package service_test

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"

	"github.com/mrqz-remodeling/console-api/internal/document"
	"github.com/mrqz-remodeling/console-api/internal/mailer"
	"github.com/mrqz-remodeling/console-api/internal/repository"
	"github.com/mrqz-remodeling/console-api/internal/service"
	"github.com/mrqz-remodeling/console-api/internal/storage"
	"github.com/mrqz-remodeling/console-api/internal/testutil"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type services struct {
	db        *gorm.DB
	catalog   *service.CatalogService
	property  *service.PropertyService
	project   *service.ProjectService
	payment   *service.PaymentService
	dashboard *service.DashboardService
	document  *service.DocumentService
	renderer  *fakeRenderer
	mail      *fakeMailer
	store     storage.Storage
}

func setup(t *testing.T) *services {
	t.Helper()

	db := testutil.SetupTestDB(t)
	log := zap.NewNop()

	baseRepo := repository.NewBaseRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	unitRepo := repository.NewUnitRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	store, err := storage.NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	renderer := &fakeRenderer{}
	mail := &fakeMailer{enabled: true}

	return &services{
		db:        db,
		catalog:   service.NewCatalogService(baseRepo, serviceRepo, log),
		property:  service.NewPropertyService(propertyRepo, unitRepo, log),
		project:   service.NewProjectService(projectRepo, baseRepo, serviceRepo, propertyRepo, log),
		payment:   service.NewPaymentService(paymentRepo, projectRepo, log),
		dashboard: service.NewDashboardService(projectRepo, log),
		document: service.NewDocumentService(projectRepo, renderer, store, mail, document.Letterhead{
			CompanyName: "MRQZ REMODELING LLC",
			Phone:       "(720) 736-9728",
		}, log),
		renderer: renderer,
		mail:     mail,
		store:    store,
	}
}

type fakeRenderer struct {
	mu       sync.Mutex
	rendered []*document.Quotation
	err      error
}

func (r *fakeRenderer) Render(ctx context.Context, q *document.Quotation) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	r.rendered = append(r.rendered, q)
	return []byte("%PDF-1.4 " + q.FileName), nil
}

type fakeMailer struct {
	enabled bool
	sent    []*mailer.Message
	err     error
}

func (m *fakeMailer) Enabled() bool { return m.enabled }

func (m *fakeMailer) Send(ctx context.Context, msg *mailer.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func readAll(t *testing.T, r io.ReadCloser) []byte {
	t.Helper()
	defer r.Close()
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}
