package mapper

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/mrqz-remodeling/console-api/internal/domain"
	"github.com/mrqz-remodeling/console-api/internal/ledger"
	"github.com/mrqz-remodeling/console-api/internal/report"
)

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ToBaseDTO converts Base entity to BaseDTO
func ToBaseDTO(base *domain.Base) domain.BaseDTO {
	return domain.BaseDTO{
		ID:        base.ID,
		Name:      base.Name,
		Price:     base.Price,
		IsActive:  base.IsActive,
		CreatedAt: formatTime(base.CreatedAt),
		UpdatedAt: formatTime(base.UpdatedAt),
	}
}

// ToServiceDTO converts Service entity to ServiceDTO
func ToServiceDTO(service *domain.Service) domain.ServiceDTO {
	return domain.ServiceDTO{
		ID:         service.ID,
		Name:       service.Name,
		Price:      service.Price,
		Category:   service.Category,
		Unit:       service.Unit,
		Multiplier: service.Multiplier,
		CreatedAt:  formatTime(service.CreatedAt),
		UpdatedAt:  formatTime(service.UpdatedAt),
	}
}

// ToUnitTypeDTO converts UnitType entity to UnitTypeDTO
func ToUnitTypeDTO(unit *domain.UnitType) domain.UnitTypeDTO {
	return domain.UnitTypeDTO{
		ID:          unit.ID,
		PropertyID:  unit.PropertyID,
		Code:        unit.Code,
		BasePrice:   unit.BasePrice,
		SquareFeet:  unit.SquareFeet,
		Bedrooms:    unit.Bedrooms,
		Bathrooms:   unit.Bathrooms,
		HasBalcony:  unit.HasBalcony,
		HasCurtains: unit.HasCurtains,
	}
}

// ToPropertyDTO converts Property entity to PropertyDTO, units included
func ToPropertyDTO(property *domain.Property) domain.PropertyDTO {
	units := make([]domain.UnitTypeDTO, 0, len(property.Units))
	for i := range property.Units {
		units = append(units, ToUnitTypeDTO(&property.Units[i]))
	}
	return domain.PropertyDTO{
		ID:             property.ID,
		Name:           property.Name,
		Address:        property.Address,
		AdditionalInfo: property.AdditionalInfo,
		Units:          units,
		CreatedAt:      formatTime(property.CreatedAt),
		UpdatedAt:      formatTime(property.UpdatedAt),
	}
}

// ToQuotationItemDTO converts a line item, computing its effective amount
func ToQuotationItemDTO(item *domain.QuotationItem) domain.QuotationItemDTO {
	return domain.QuotationItemDTO{
		ID:         item.ID,
		Type:       item.Type,
		ServiceID:  item.ServiceID,
		Name:       item.Name,
		Price:      item.Price,
		Multiplier: item.EffectiveMultiplier(),
		Quantity:   item.Quantity,
		Category:   item.Category,
		Notes:      item.Notes,
		Amount:     item.Amount(),
	}
}

// ToQuotationItemDTOs converts a slice of line items
func ToQuotationItemDTOs(items []domain.QuotationItem) []domain.QuotationItemDTO {
	out := make([]domain.QuotationItemDTO, 0, len(items))
	for i := range items {
		out = append(out, ToQuotationItemDTO(&items[i]))
	}
	return out
}

// ToPaymentDTO converts Payment entity to PaymentDTO
func ToPaymentDTO(payment *domain.Payment) domain.PaymentDTO {
	return domain.PaymentDTO{
		ID:              payment.ID,
		ProjectID:       payment.ProjectID,
		Amount:          payment.Amount,
		PaymentMethod:   payment.PaymentMethod,
		ReferenceNumber: payment.ReferenceNumber,
		Notes:           payment.Notes,
		CreatedAt:       formatTime(payment.CreatedAt),
	}
}

// ToProjectDTO converts Project entity to ProjectDTO with the ledger view of its payments
func ToProjectDTO(project *domain.Project) domain.ProjectDTO {
	balance := ledger.Summarize(project.Total, project.Payments)

	payments := make([]domain.PaymentDTO, 0, len(project.Payments))
	for i := range project.Payments {
		payments = append(payments, ToPaymentDTO(&project.Payments[i]))
	}

	dto := domain.ProjectDTO{
		ID:               project.ID,
		PropertyID:       project.PropertyID,
		UnitID:           project.UnitID,
		BaseID:           project.BaseID,
		PropertyName:     project.PropertyName,
		UnitNumber:       project.UnitNumber,
		UnitType:         project.UnitType,
		SquareFeet:       project.SquareFeet,
		Bedrooms:         project.Bedrooms,
		Bathrooms:        project.Bathrooms,
		Items:            ToQuotationItemDTOs(project.Items),
		ChangeOrders:     project.ChangeOrders,
		ChangeOrderTotal: project.ChangeOrderTotal,
		Total:            project.Total,
		Date:             formatTime(project.Date),
		Status:           project.Status,
		PaymentStatus:    project.PaymentStatus,
		Notes:            project.Notes,
		DocumentPath:     project.DocumentPath,
		AmountPaid:       balance.AmountPaid,
		AmountRemaining:  balance.AmountRemaining,
		Payments:         payments,
		CreatedAt:        formatTime(project.CreatedAt),
		UpdatedAt:        formatTime(project.UpdatedAt),
	}
	if project.PaymentDate != nil {
		dto.PaymentDate = formatTime(*project.PaymentDate)
	}
	return dto
}

// ToBalanceDTO converts a ledger balance
func ToBalanceDTO(projectID uuid.UUID, balance ledger.Balance) domain.BalanceDTO {
	return domain.BalanceDTO{
		ProjectID:       projectID,
		Total:           balance.Total,
		AmountPaid:      balance.AmountPaid,
		AmountRemaining: balance.AmountRemaining,
		SuggestedAmount: balance.SuggestedAmount(),
		Status:          balance.Status,
	}
}

// ToDashboardDTO converts a report summary and the recent drafts
func ToDashboardDTO(summary report.Summary, drafts []domain.Project) domain.DashboardDTO {
	properties := make([]domain.PropertyStatsDTO, 0, len(summary.Properties))
	for _, p := range summary.Properties {
		properties = append(properties, domain.PropertyStatsDTO{
			PropertyName:  p.PropertyName,
			Count:         p.Count,
			Revenue:       p.Revenue,
			EstimatedPaid: p.EstimatedPaid,
			Collected:     p.Collected,
		})
	}

	services := make([]domain.ServiceStatsDTO, 0, len(summary.TopServices))
	for _, s := range summary.TopServices {
		services = append(services, domain.ServiceStatsDTO{
			Name:         s.Name,
			Count:        s.Count,
			Revenue:      s.Revenue,
			UsagePercent: s.UsagePercent,
		})
	}

	recent := make([]domain.ProjectDTO, 0, len(drafts))
	for i := range drafts {
		recent = append(recent, ToProjectDTO(&drafts[i]))
	}

	return domain.DashboardDTO{
		TotalProjects:              summary.TotalProjects,
		TotalRevenue:               summary.TotalRevenue,
		TotalPaid:                  summary.TotalPaid,
		TotalPending:               summary.TotalPending,
		AverageProjectValue:        summary.AverageProjectValue,
		AverageProjectValueRounded: summary.AverageProjectValueRounded(),
		PropertyStats:              properties,
		TopServices:                services,
		RecentDrafts:               recent,
	}
}

// QuantityLabel renders the quantity column of a quotation: "X<n>" above 1, else "1"
func QuantityLabel(item *domain.QuotationItem) string {
	if m := item.EffectiveMultiplier(); m > 1 {
		return "X" + strconv.Itoa(m)
	}
	return "1"
}
