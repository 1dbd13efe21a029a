package query

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Defaults applied when the client omits paging parameters.
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
)

// Accepted sort order literals. An empty sort order means ascending.
const (
	SortAscending  = "ascending"
	SortDescending = "descending"
)

// Violation messages reported by Validate.
const (
	InvalidPageNumber       = "page number must be greater than 0"
	InvalidPageSize         = "page size must be greater than 0"
	InvalidSortOrder        = `sort order must be either "ascending" or "descending"`
	InvalidFilterParameters = "filter columns and filter queries must have the same number of entries"
	InvalidPageRange        = "page number is too large for the page size"
)

// InvalidSortByColumn is reported when the sort column is not a known field.
func InvalidSortByColumn(column string) string {
	return fmt.Sprintf("sort column %q is not a valid field", column)
}

// InvalidFilterColumn is reported once per unknown filter column.
func InvalidFilterColumn(column string) string {
	return fmt.Sprintf("filter column %q is not a valid field", column)
}

// Request holds raw listing parameters as supplied by a client.
// FilterColumns and FilterQueries are positionally paired.
type Request struct {
	PageNumber    int      `form:"pageNumber,default=1" json:"pageNumber" validate:"gte=1"`
	PageSize      int      `form:"pageSize,default=10" json:"pageSize" validate:"gte=1"`
	SearchTerm    string   `form:"searchTerm" json:"searchTerm"`
	SortBy        string   `form:"sortBy" json:"sortBy"`
	SortOrder     string   `form:"sortOrder" json:"sortOrder" validate:"omitempty,oneof=ascending descending"`
	FilterColumns []string `form:"filterColumns" json:"filterColumns"`
	FilterQueries []string `form:"filterQueries" json:"filterQueries"`
}

// NewRequest returns a Request populated with the default paging values.
func NewRequest() Request {
	return Request{PageNumber: DefaultPageNumber, PageSize: DefaultPageSize}
}

// ValidationError lists every violation found in a Request.
type ValidationError struct {
	Violations []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return "invalid query parameters: " + strings.Join(e.Violations, "; ")
}

// Filter is one column filter of a validated request.
type Filter struct {
	Field string
	Term  string
}

// Validated is a Request that passed every check in Validate.
// The zero value is not usable; obtain one from Request.Validate.
type Validated struct {
	pageNumber int
	pageSize   int
	searchTerm string
	sortBy     string
	descending bool
	filters    []Filter
}

var structValidator = validator.New()

// tagViolations maps struct fields checked through validator tags to the
// message reported for them.
var tagViolations = map[string]string{
	"PageNumber": InvalidPageNumber,
	"PageSize":   InvalidPageSize,
	"SortOrder":  InvalidSortOrder,
}

// Validate checks r against schema and returns the normalized request.
// All violations are collected; on failure the error is a *ValidationError.
func (r Request) Validate(schema *Schema) (Validated, error) {
	if schema == nil {
		return Validated{}, errors.New("query: schema is nil")
	}

	var violations []string

	if err := structValidator.Struct(r); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return Validated{}, fmt.Errorf("query: validate request: %w", err)
		}
		for _, fe := range fieldErrs {
			if msg, ok := tagViolations[fe.StructField()]; ok {
				violations = append(violations, msg)
			}
		}
	}

	// The skip of the requested page must be representable as an int.
	if r.PageNumber >= 1 && r.PageSize >= 1 && r.PageNumber-1 > math.MaxInt/r.PageSize {
		violations = append(violations, InvalidPageRange)
	}

	if len(r.FilterColumns) != len(r.FilterQueries) {
		violations = append(violations, InvalidFilterParameters)
	}

	if r.SortBy != "" && !schema.IsKnownField(r.SortBy) {
		violations = append(violations, InvalidSortByColumn(r.SortBy))
	}

	for _, column := range r.FilterColumns {
		if !schema.IsKnownField(column) {
			violations = append(violations, InvalidFilterColumn(column))
		}
	}

	if len(violations) > 0 {
		return Validated{}, &ValidationError{Violations: violations}
	}

	v := Validated{
		pageNumber: r.PageNumber,
		pageSize:   r.PageSize,
		searchTerm: r.SearchTerm,
		sortBy:     r.SortBy,
		descending: r.SortOrder == SortDescending,
	}
	if len(r.FilterColumns) > 0 {
		v.filters = make([]Filter, len(r.FilterColumns))
		for i, column := range r.FilterColumns {
			v.filters[i] = Filter{Field: column, Term: r.FilterQueries[i]}
		}
	}
	return v, nil
}

// PageNumber returns the 1-based page number.
func (v Validated) PageNumber() int { return v.pageNumber }

// PageSize returns the maximum number of items per page.
func (v Validated) PageSize() int { return v.pageSize }

// Skip returns the number of matching items preceding the requested page.
func (v Validated) Skip() int { return (v.pageNumber - 1) * v.pageSize }

// SearchTerm returns the free-text search term, possibly empty.
func (v Validated) SearchTerm() string { return v.searchTerm }

// SortBy returns the requested sort field, possibly empty.
func (v Validated) SortBy() string { return v.sortBy }

// Descending reports whether the descending sort order was requested.
func (v Validated) Descending() bool { return v.descending }

// Filters returns the column filters in request order.
func (v Validated) Filters() []Filter {
	return append([]Filter(nil), v.filters...)
}
