package document_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mrqz-remodeling/console-api/internal/config"
	"github.com/mrqz-remodeling/console-api/internal/document"
	"github.com/mrqz-remodeling/console-api/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func letterhead() document.Letterhead {
	return document.LetterheadFromConfig(&config.DocumentConfig{
		CompanyName: "MRQZ REMODELING LLC",
		AddressLine: "Denver, Colorado 80210",
		Phone:       "(720) 736-9728",
		Email:       "robmarq47@gmail.com",
		Website:     "www.mrqzremodeling.com",
	})
}

func sampleProject() *domain.Project {
	notes := "Entrada por la puerta trasera"
	p := &domain.Project{
		PropertyName:     "Cherry Creek",
		UnitNumber:       "101",
		UnitType:         "A1",
		SquareFeet:       750,
		Bedrooms:         1,
		Bathrooms:        1.5,
		ChangeOrders:     3,
		ChangeOrderTotal: decimal.NewFromInt(30),
		Total:            decimal.NewFromInt(1730),
		Date:             time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		Notes:            &notes,
		Items: []domain.QuotationItem{
			{Type: domain.ItemTypeBase, Name: "Turnover", Price: decimal.NewFromInt(1500), Multiplier: 1},
			{Type: domain.ItemTypeService, Name: "Puertas", Price: decimal.NewFromInt(100), Multiplier: 2},
		},
	}
	p.ID = uuid.New()
	return p
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"12.5", "$12.50"},
		{"999", "$999.00"},
		{"1000", "$1,000.00"},
		{"1234567.891", "$1,234,567.89"},
		{"-2500", "-$2,500.00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, document.FormatCurrency(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestFileName(t *testing.T) {
	p := sampleProject()
	assert.Equal(t, "proyecto-101.pdf", document.FileName(p))

	p.UnitNumber = "Apt 2/B"
	assert.Equal(t, "proyecto-Apt-2-B.pdf", document.FileName(p))

	p.UnitNumber = ""
	assert.Equal(t, "proyecto-"+p.ID.String()[:8]+".pdf", document.FileName(p))
}

func TestQuotationHTML(t *testing.T) {
	html, err := document.NewQuotation(sampleProject(), letterhead()).HTML()
	require.NoError(t, err)
	out := string(html)

	for _, want := range []string{
		"MRQZ REMODELING LLC",
		"Denver, Colorado 80210",
		"Tel: (720) 736-9728",
		"robmarq47@gmail.com",
		"Propiedad: Cherry Creek",
		"Unidad: 101",
		"Tipo: A1",
		"Fecha: 03/14/2025",
		"Pies Cuadrados: 750",
		"Baños: 1.5",
		"Puertas",
		"X2",
		"$1,500.00",
		"Change orders",
		"$30.00",
		"Total: $1,730.00",
		"Entrada por la puerta trasera",
		"www.mrqzremodeling.com",
	} {
		assert.Contains(t, out, want)
	}
}

func TestQuotationHTML_OmitsEmptySections(t *testing.T) {
	p := sampleProject()
	p.ChangeOrders = 0
	p.Notes = nil

	html, err := document.NewQuotation(p, letterhead()).HTML()
	require.NoError(t, err)
	assert.NotContains(t, string(html), "Change orders")
	assert.NotContains(t, string(html), "Notas:")
}

func TestQuotationHTML_EscapesUserText(t *testing.T) {
	p := sampleProject()
	p.Items[1].Name = "<script>alert(1)</script>"

	html, err := document.NewQuotation(p, letterhead()).HTML()
	require.NoError(t, err)
	assert.NotContains(t, string(html), "<script>alert(1)</script>")
}

func TestExportProjects(t *testing.T) {
	p := sampleProject()
	ref := "CHK-7"
	p.Payments = []domain.Payment{
		{Amount: decimal.NewFromInt(1000), PaymentMethod: domain.PaymentMethodCheck, ReferenceNumber: &ref, CreatedAt: p.Date},
	}

	data, err := document.ExportProjects([]domain.Project{*p})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{document.ProjectsSheet, document.PaymentsSheet}, f.GetSheetList())

	rows, err := f.GetRows(document.ProjectsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Property", rows[0][1])
	assert.Equal(t, "Cherry Creek", rows[1][1])

	paid, err := f.GetCellValue(document.ProjectsSheet, "I2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "1000", paid)
	remaining, err := f.GetCellValue(document.ProjectsSheet, "J2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "730", remaining)

	payments, err := f.GetRows(document.PaymentsSheet)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, "check", payments[1][4])
	assert.Equal(t, "CHK-7", payments[1][5])
}

func TestExportProjects_Empty(t *testing.T) {
	data, err := document.ExportProjects(nil)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
