package queries

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"purchasing/internal/core/domain/model/order"
	"purchasing/internal/pkg/errs"
	"purchasing/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

const (
	DefaultPage     = 1
	DefaultLimit    = 10
	DefaultMaxLimit = 100
	DefaultSortBy   = "createdAt"
)

// sortColumns maps the accepted sort fields to purchase_orders columns.
var sortColumns = map[string]string{
	"createdAt":    "created_at",
	"orderNumber":  "sequence_no",
	"totalAmount":  "total_amount",
	"deliveryDate": "delivery_date",
	"status":       "status",
	"supplierName": "supplier_name",
}

type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// ListOrdersParams are the raw list parameters. Nil or empty values take the defaults.
type ListOrdersParams struct {
	Page         *int
	Limit        *int
	SortBy       string
	SortOrder    string
	Status       string
	SupplierName string
}

// ListOrdersQuery is a validated page request.
//
// Example:
//
//	query, err := NewListOrdersQuery(ListOrdersParams{Status: "approved"}, cfg.ListMaxLimit)
//	page, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	page          int
	limit         int
	sortBy        string
	sortDirection SortDirection
	status        *order.Status
	supplierName  string

	guard guard.ConstructorGuard
}

// NewListOrdersQuery validates params. limit may not exceed maxLimit; a maxLimit below
// one means DefaultMaxLimit. Every invalid parameter is reported.
func NewListOrdersQuery(params ListOrdersParams, maxLimit int) (ListOrdersQuery, error) {
	if maxLimit < 1 {
		maxLimit = DefaultMaxLimit
	}

	query := ListOrdersQuery{
		page:          DefaultPage,
		limit:         DefaultLimit,
		sortBy:        DefaultSortBy,
		sortDirection: Descending,
		supplierName:  strings.TrimSpace(params.SupplierName),
		guard:         guard.NewConstructorGuard(),
	}

	var problems []error

	if params.Page != nil {
		if *params.Page < 1 {
			problems = append(problems, errs.NewValueIsOutOfRangeError("page", *params.Page, 1, "+inf"))
		}
		query.page = *params.Page
	}

	if params.Limit != nil {
		if *params.Limit < 1 || *params.Limit > maxLimit {
			problems = append(problems, errs.NewValueIsOutOfRangeError("limit", *params.Limit, 1, maxLimit))
		}
		query.limit = *params.Limit
	}

	if params.SortBy != "" {
		if _, ok := sortColumns[params.SortBy]; !ok {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
				"sortBy",
				fmt.Errorf("must be one of %s", strings.Join(SortFields(), ", ")),
			))
		}
		query.sortBy = params.SortBy
	}

	if params.SortOrder != "" {
		switch SortDirection(strings.ToLower(params.SortOrder)) {
		case Ascending:
			query.sortDirection = Ascending
		case Descending:
			query.sortDirection = Descending
		default:
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
				"sortOrder",
				errors.New(`must be "asc" or "desc"`),
			))
		}
	}

	if params.Status != "" {
		status, err := order.ParseStatus(params.Status)
		if err != nil {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("status", err))
		}
		query.status = &status
	}

	if err := errors.Join(problems...); err != nil {
		return ListOrdersQuery{}, err
	}
	return query, nil
}

// SortFields lists the accepted sortBy values in a stable order.
func SortFields() []string {
	fields := make([]string, 0, len(sortColumns))
	for field := range sortColumns {
		fields = append(fields, field)
	}
	slices.Sort(fields)
	return fields
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Page() int { return q.page }

func (q ListOrdersQuery) Limit() int { return q.limit }

func (q ListOrdersQuery) SortBy() string { return q.sortBy }

func (q ListOrdersQuery) SortDirection() SortDirection { return q.sortDirection }

// Status is nil when the list is not filtered by status.
func (q ListOrdersQuery) Status() *order.Status { return q.status }

func (q ListOrdersQuery) SupplierName() string { return q.supplierName }

// IsBeyond reports whether the page starts after the last of total matching rows.
// It compares page counts, so a huge page number cannot overflow into a negative offset.
func (q ListOrdersQuery) IsBeyond(total int64) bool {
	return int64(q.page-1) >= totalPages(total, q.limit)
}

// offset is only meaningful once IsBeyond returned false.
func (q ListOrdersQuery) offset() int { return (q.page - 1) * q.limit }

func totalPages(total int64, limit int) int64 {
	return (total + int64(limit) - 1) / int64(limit)
}
