// Package document renders quotation PDFs and spreadsheet exports.
package document

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"regexp"
	"strconv"
	"strings"

	"github.com/mrqz-remodeling/console-api/internal/config"
	"github.com/mrqz-remodeling/console-api/internal/domain"
	"github.com/mrqz-remodeling/console-api/internal/mapper"
	"github.com/shopspring/decimal"
)

//go:embed templates/quotation.html
var templateFS embed.FS

var quotationTemplate = template.Must(template.ParseFS(templateFS, "templates/quotation.html"))

// Letterhead is the company block printed on every quotation
type Letterhead struct {
	CompanyName string
	AddressLine string
	Phone       string
	Email       string
	Website     string
}

// LetterheadFromConfig builds the letterhead from document configuration
func LetterheadFromConfig(cfg *config.DocumentConfig) Letterhead {
	return Letterhead{
		CompanyName: cfg.CompanyName,
		AddressLine: cfg.AddressLine,
		Phone:       cfg.Phone,
		Email:       cfg.Email,
		Website:     cfg.Website,
	}
}

// Line is one row of the quotation table
type Line struct {
	Description string
	Quantity    string
	Price       string
}

// Quotation is the printable view of a project
type Quotation struct {
	Letterhead       Letterhead
	FileName         string
	PropertyName     string
	UnitNumber       string
	UnitType         string
	Date             string
	SquareFeet       int
	Bedrooms         int
	Bathrooms        string
	Lines            []Line
	ChangeOrders     int
	ChangeOrderTotal string
	Total            string
	Notes            string
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// FileName returns the download name of a project's quotation, proyecto-<unit>.pdf
func FileName(project *domain.Project) string {
	unit := unsafeFileChars.ReplaceAllString(strings.TrimSpace(project.UnitNumber), "-")
	unit = strings.Trim(unit, "-.")
	if unit == "" {
		unit = project.ID.String()[:8]
	}
	return "proyecto-" + unit + ".pdf"
}

// NewQuotation builds the printable view of project
func NewQuotation(project *domain.Project, letterhead Letterhead) *Quotation {
	lines := make([]Line, 0, len(project.Items))
	for i := range project.Items {
		item := &project.Items[i]
		lines = append(lines, Line{
			Description: item.Name,
			Quantity:    mapper.QuantityLabel(item),
			Price:       FormatCurrency(item.Price),
		})
	}

	q := &Quotation{
		Letterhead:       letterhead,
		FileName:         FileName(project),
		PropertyName:     project.PropertyName,
		UnitNumber:       project.UnitNumber,
		UnitType:         project.UnitType,
		Date:             project.Date.Format("01/02/2006"),
		SquareFeet:       project.SquareFeet,
		Bedrooms:         project.Bedrooms,
		Bathrooms:        strconv.FormatFloat(project.Bathrooms, 'f', -1, 64),
		Lines:            lines,
		ChangeOrders:     project.ChangeOrders,
		ChangeOrderTotal: FormatCurrency(project.ChangeOrderTotal),
		Total:            FormatCurrency(project.Total),
	}
	if project.Notes != nil {
		q.Notes = *project.Notes
	}
	return q
}

// HTML renders the quotation template
func (q *Quotation) HTML() ([]byte, error) {
	var buf bytes.Buffer
	if err := quotationTemplate.Execute(&buf, q); err != nil {
		return nil, fmt.Errorf("failed to render quotation template: %w", err)
	}
	return buf.Bytes(), nil
}

// FormatCurrency formats an amount as US dollars with thousands separators: $1,234.50
func FormatCurrency(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}

	parts := strings.SplitN(amount.StringFixed(2), ".", 2)
	intPart := parts[0]

	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}

	return sign + "$" + b.String() + "." + parts[1]
}
