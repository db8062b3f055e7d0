package document

import (
	"fmt"

	"github.com/mrqz-remodeling/console-api/internal/domain"
	"github.com/mrqz-remodeling/console-api/internal/ledger"
	"github.com/xuri/excelize/v2"
)

const (
	ProjectsSheet = "Projects"
	PaymentsSheet = "Payments"
)

var projectHeaders = []interface{}{
	"Date", "Property", "Unit", "Type", "Status", "Payment Status",
	"Change Orders", "Total", "Paid", "Remaining",
}

var paymentHeaders = []interface{}{
	"Date", "Property", "Unit", "Amount", "Method", "Reference", "Notes",
}

// ExportProjects writes projects and their payments to an xlsx workbook
func ExportProjects(projects []domain.Project) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ProjectsSheet); err != nil {
		return nil, fmt.Errorf("failed to name projects sheet: %w", err)
	}
	if _, err := f.NewSheet(PaymentsSheet); err != nil {
		return nil, fmt.Errorf("failed to create payments sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	moneyFormat := "#,##0.00"
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFormat})
	if err != nil {
		return nil, fmt.Errorf("failed to create money style: %w", err)
	}

	if err := writeRow(f, ProjectsSheet, 1, projectHeaders); err != nil {
		return nil, err
	}
	if err := writeRow(f, PaymentsSheet, 1, paymentHeaders); err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(ProjectsSheet, 1, 1, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}
	if err := f.SetRowStyle(PaymentsSheet, 1, 1, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	paymentRow := 2
	for i := range projects {
		p := &projects[i]
		balance := ledger.Summarize(p.Total, p.Payments)

		row := []interface{}{
			p.Date.Format("2006-01-02"),
			p.PropertyName,
			p.UnitNumber,
			p.UnitType,
			string(p.Status),
			string(p.PaymentStatus),
			p.ChangeOrders,
			p.Total.InexactFloat64(),
			balance.AmountPaid.InexactFloat64(),
			balance.AmountRemaining.InexactFloat64(),
		}
		if err := writeRow(f, ProjectsSheet, i+2, row); err != nil {
			return nil, err
		}

		for j := range p.Payments {
			pay := &p.Payments[j]
			reference, notes := "", ""
			if pay.ReferenceNumber != nil {
				reference = *pay.ReferenceNumber
			}
			if pay.Notes != nil {
				notes = *pay.Notes
			}
			if err := writeRow(f, PaymentsSheet, paymentRow, []interface{}{
				pay.CreatedAt.Format("2006-01-02"),
				p.PropertyName,
				p.UnitNumber,
				pay.Amount.InexactFloat64(),
				string(pay.PaymentMethod),
				reference,
				notes,
			}); err != nil {
				return nil, err
			}
			paymentRow++
		}
	}

	if len(projects) > 0 {
		if err := f.SetCellStyle(ProjectsSheet, "H2", fmt.Sprintf("J%d", len(projects)+1), moneyStyle); err != nil {
			return nil, fmt.Errorf("failed to style totals: %w", err)
		}
	}
	if paymentRow > 2 {
		if err := f.SetCellStyle(PaymentsSheet, "D2", fmt.Sprintf("D%d", paymentRow-1), moneyStyle); err != nil {
			return nil, fmt.Errorf("failed to style amounts: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}
