package service

import "errors"

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when there's a conflict (e.g., duplicate)
	ErrConflict = errors.New("resource conflict")
)

// Catalog errors
var (
	ErrBaseNotFound     = errors.New("base not found")
	ErrServiceNotFound  = errors.New("service not found")
	ErrPropertyNotFound = errors.New("property not found")
	ErrUnitNotFound     = errors.New("unit type not found")

	// ErrDuplicateUnitCode is returned when a property already has a unit with the code
	ErrDuplicateUnitCode = errors.New("unit code already exists for this property")

	// ErrInvalidCategory is returned for a service category outside the catalog list
	ErrInvalidCategory = errors.New("invalid service category")
)

// Project errors
var (
	ErrProjectNotFound = errors.New("project not found")

	// ErrProjectNotDraft is returned when editing the items of a project that has left draft
	ErrProjectNotDraft = errors.New("project items can only be edited while in draft")

	// ErrItemNotFound is returned when an item slot does not exist on the project
	ErrItemNotFound = errors.New("quotation item not found")

	// ErrInvalidStatus is returned for an unknown workflow status
	ErrInvalidStatus = errors.New("invalid project status")
)

// Payment errors
var (
	// ErrInvalidAmount is returned for payments that are zero or negative
	ErrInvalidAmount = errors.New("payment amount must be greater than zero")

	// ErrInvalidPaymentMethod is returned for an unknown payment method
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// Document errors
var (
	// ErrMailDisabled is returned when sending a quotation without SMTP configured
	ErrMailDisabled = errors.New("mail delivery is not configured")

	// ErrDocumentNotAvailable is returned when the PDF renderer is not configured
	ErrDocumentNotAvailable = errors.New("document rendering is not available")
)
