package domain

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidEnum is returned when a stored value does not match its enumeration
var ErrInvalidEnum = errors.New("invalid enum value")

// ProjectStatus is the lifecycle tag of a project. Transitions are not enforced.
type ProjectStatus string

const (
	ProjectStatusDraft     ProjectStatus = "draft"
	ProjectStatusSent      ProjectStatus = "sent"
	ProjectStatusApproved  ProjectStatus = "approved"
	ProjectStatusInvoiced  ProjectStatus = "invoiced"
	ProjectStatusPaid      ProjectStatus = "paid"
	ProjectStatusCancelled ProjectStatus = "cancelled"
)

// IsValid checks if the ProjectStatus is a valid enum value
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusDraft, ProjectStatusSent, ProjectStatusApproved,
		ProjectStatusInvoiced, ProjectStatusPaid, ProjectStatusCancelled:
		return true
	}
	return false
}

// PaymentStatus is derived from a project's payments by the ledger
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// IsValid checks if the PaymentStatus is a valid enum value
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPartial, PaymentStatusPaid:
		return true
	}
	return false
}

// PaymentMethod is how a payment was received
type PaymentMethod string

const (
	PaymentMethodCash       PaymentMethod = "cash"
	PaymentMethodCheck      PaymentMethod = "check"
	PaymentMethodTransfer   PaymentMethod = "transfer"
	PaymentMethodCreditCard PaymentMethod = "credit_card"
)

// IsValid checks if the PaymentMethod is a valid enum value
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCheck, PaymentMethodTransfer, PaymentMethodCreditCard:
		return true
	}
	return false
}

// ItemType tags a quotation line item
type ItemType string

const (
	ItemTypeBase        ItemType = "base"
	ItemTypeService     ItemType = "service"
	ItemTypeChangeOrder ItemType = "changeOrder"
)

// IsValid checks if the ItemType is a valid enum value
func (t ItemType) IsValid() bool {
	switch t {
	case ItemTypeBase, ItemTypeService, ItemTypeChangeOrder:
		return true
	}
	return false
}

// ServiceCategory groups services in the catalog
type ServiceCategory string

const (
	ServiceCategoryStructural ServiceCategory = "Estructural"
	ServiceCategoryCarpentry  ServiceCategory = "Carpintería"
	ServiceCategoryPlumbing   ServiceCategory = "Plomería"
	ServiceCategoryFinishes   ServiceCategory = "Acabados"
	ServiceCategoryElectrical ServiceCategory = "Eléctrico"
	ServiceCategoryCleaning   ServiceCategory = "Limpieza"
)

// ServiceCategories lists the categories in display order
var ServiceCategories = []ServiceCategory{
	ServiceCategoryStructural,
	ServiceCategoryCarpentry,
	ServiceCategoryPlumbing,
	ServiceCategoryFinishes,
	ServiceCategoryElectrical,
	ServiceCategoryCleaning,
}

// ServiceUnits are the unit labels offered by the catalog screens
var ServiceUnits = []string{"Unidad", "X2", "X3", "X4", "Metro", "Pie"}

// IsValid checks if the ServiceCategory is a valid enum value
func (c ServiceCategory) IsValid() bool {
	for _, known := range ServiceCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseMultiplier returns N for units of the form "X<N>" and 1 otherwise.
func ParseMultiplier(unit string) int {
	if len(unit) < 2 || unit[0] != 'X' {
		return 1
	}
	digits := unit[1:]
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 1
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Value and Scan keep unknown enum values from leaking out of the database
// as zero-meaning strings.

func (s ProjectStatus) Value() (driver.Value, error) { return string(s), nil }

func (s *ProjectStatus) Scan(value interface{}) error {
	return scanEnum(value, "project status", func(v string) bool {
		*s = ProjectStatus(v)
		return s.IsValid()
	})
}

func (s PaymentStatus) Value() (driver.Value, error) { return string(s), nil }

func (s *PaymentStatus) Scan(value interface{}) error {
	return scanEnum(value, "payment status", func(v string) bool {
		*s = PaymentStatus(v)
		return s.IsValid()
	})
}

func (m PaymentMethod) Value() (driver.Value, error) { return string(m), nil }

func (m *PaymentMethod) Scan(value interface{}) error {
	return scanEnum(value, "payment method", func(v string) bool {
		*m = PaymentMethod(v)
		return m.IsValid()
	})
}

func (t ItemType) Value() (driver.Value, error) { return string(t), nil }

func (t *ItemType) Scan(value interface{}) error {
	return scanEnum(value, "item type", func(v string) bool {
		*t = ItemType(v)
		return t.IsValid()
	})
}

func (c ServiceCategory) Value() (driver.Value, error) { return string(c), nil }

func (c *ServiceCategory) Scan(value interface{}) error {
	return scanEnum(value, "service category", func(v string) bool {
		*c = ServiceCategory(v)
		return c.IsValid()
	})
}

func scanEnum(value interface{}, name string, assign func(string) bool) error {
	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case nil:
		raw = ""
	default:
		return fmt.Errorf("%w: %s has unsupported type %T", ErrInvalidEnum, name, value)
	}
	if !assign(strings.TrimSpace(raw)) {
		return fmt.Errorf("%w: %s %q", ErrInvalidEnum, name, raw)
	}
	return nil
}
