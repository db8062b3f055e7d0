// Package report folds projects into the dashboard's summary statistics.
package report

import (
	"sort"

	"github.com/mrqz-remodeling/console-api/internal/domain"
	"github.com/mrqz-remodeling/console-api/internal/ledger"
	"github.com/shopspring/decimal"
)

// TopServiceLimit caps the service ranking.
const TopServiceLimit = 5

// UnknownProperty labels projects with no property name.
const UnknownProperty = "Unknown"

// EstimatedPaidRatio is the flat share of revenue shown as "paid" per property.
// It is an estimate; Collected carries the figure derived from payments.
var EstimatedPaidRatio = decimal.RequireFromString("0.8")

// PropertyStats aggregates projects sharing a property name.
type PropertyStats struct {
	PropertyName  string
	Count         int
	Revenue       decimal.Decimal
	EstimatedPaid decimal.Decimal
	Collected     decimal.Decimal
}

// ServiceStats aggregates service line items sharing a name.
type ServiceStats struct {
	Name         string
	Count        int
	Revenue      decimal.Decimal
	UsagePercent int64
}

// Summary is the full dashboard fold.
type Summary struct {
	TotalProjects       int
	TotalRevenue        decimal.Decimal
	TotalPaid           decimal.Decimal
	TotalPending        decimal.Decimal
	AverageProjectValue decimal.Decimal
	Properties          []PropertyStats
	TopServices         []ServiceStats
}

// AverageProjectValueRounded is the display value; the aggregate stays unrounded.
func (s Summary) AverageProjectValueRounded() decimal.Decimal {
	return s.AverageProjectValue.Round(0)
}

// Build folds projects into a Summary. Property stats keep first-occurrence
// order. Services are ranked by count descending, then name ascending.
func Build(projects []domain.Project) Summary {
	summary := Summary{
		TotalProjects:       len(projects),
		TotalRevenue:        decimal.Zero,
		TotalPaid:           decimal.Zero,
		TotalPending:        decimal.Zero,
		AverageProjectValue: decimal.Zero,
		Properties:          []PropertyStats{},
		TopServices:         []ServiceStats{},
	}

	propertyIndex := make(map[string]int)
	serviceIndex := make(map[string]int)
	var services []ServiceStats

	for i := range projects {
		p := &projects[i]

		summary.TotalRevenue = summary.TotalRevenue.Add(p.Total)
		if p.PaymentStatus == domain.PaymentStatusPaid {
			summary.TotalPaid = summary.TotalPaid.Add(p.Total)
		} else {
			summary.TotalPending = summary.TotalPending.Add(p.Total)
		}

		name := p.PropertyName
		if name == "" {
			name = UnknownProperty
		}
		idx, ok := propertyIndex[name]
		if !ok {
			idx = len(summary.Properties)
			propertyIndex[name] = idx
			summary.Properties = append(summary.Properties, PropertyStats{
				PropertyName: name,
				Revenue:      decimal.Zero,
				Collected:    decimal.Zero,
			})
		}
		stats := &summary.Properties[idx]
		stats.Count++
		stats.Revenue = stats.Revenue.Add(p.Total)
		stats.Collected = stats.Collected.Add(ledger.AmountPaid(p.Payments))

		for _, item := range p.Items {
			if item.Type != domain.ItemTypeService {
				continue
			}
			sidx, ok := serviceIndex[item.Name]
			if !ok {
				sidx = len(services)
				serviceIndex[item.Name] = sidx
				services = append(services, ServiceStats{Name: item.Name, Revenue: decimal.Zero})
			}
			services[sidx].Count++
			services[sidx].Revenue = services[sidx].Revenue.Add(item.Amount())
		}
	}

	for i := range summary.Properties {
		summary.Properties[i].EstimatedPaid = summary.Properties[i].Revenue.Mul(EstimatedPaidRatio)
	}

	if summary.TotalProjects > 0 {
		summary.AverageProjectValue = summary.TotalRevenue.Div(decimal.NewFromInt(int64(summary.TotalProjects)))
	}

	sort.SliceStable(services, func(i, j int) bool {
		if services[i].Count != services[j].Count {
			return services[i].Count > services[j].Count
		}
		return services[i].Name < services[j].Name
	})
	if len(services) > TopServiceLimit {
		services = services[:TopServiceLimit]
	}
	for i := range services {
		services[i].UsagePercent = usagePercent(services[i].Count, summary.TotalProjects)
	}
	if services != nil {
		summary.TopServices = services
	}

	return summary
}

func usagePercent(count, totalProjects int) int64 {
	if totalProjects == 0 {
		return 0
	}
	return decimal.NewFromInt(int64(count) * 100).
		Div(decimal.NewFromInt(int64(totalProjects))).
		Round(0).
		IntPart()
}
