package repository

import "strings"

// MaxPageSize is the maximum allowed page size for paginated queries
const MaxPageSize = 200

// DefaultPageSize applies when the caller does not ask for one
const DefaultPageSize = 50

// SortOrder represents the sort direction
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// SortConfig holds sorting configuration for list queries.
// An empty Field selects the repository's default ordering.
type SortConfig struct {
	Field string    // API field name
	Order SortOrder // asc or desc
}

// ParseSortOrder parses a string into SortOrder, defaulting to asc
func ParseSortOrder(s string) SortOrder {
	if strings.ToLower(s) == "desc" {
		return SortOrderDesc
	}
	return SortOrderAsc
}

// BuildOrderClause builds the ORDER BY clause. fieldMap whitelists API field
// names against column names; unknown or empty fields fall back to defaultOrder,
// which may name several columns.
func BuildOrderClause(config SortConfig, fieldMap map[string]string, defaultOrder string) string {
	column, ok := fieldMap[config.Field]
	if !ok {
		return defaultOrder
	}

	order := "ASC"
	if config.Order == SortOrderDesc {
		order = "DESC"
	}

	return column + " " + order
}

// normalizePage clamps pagination parameters
func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a case-insensitive substring pattern for LIKE ... ESCAPE '\'.
// Wildcards typed by the user match literally.
func likePattern(search string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(search))) + "%"
}
