package models

import (
	"github.com/google/uuid"
)

// Pagination and export limits
const (
	DefaultPage     = 1
	DefaultPageSize = 20

	// ExportRowCap bounds the unpaginated export fetch. A safety valve, not
	// a pagination replacement.
	ExportRowCap = 5000
)

// allowedPageSizes is the closed set of page sizes the table UI offers.
// Out-of-set values are clamped to the default during normalization.
var allowedPageSizes = map[int]bool{10: true, 20: true, 50: true, 100: true}

// Sort directions
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// DefaultSortField orders newest orders first when the client sends no sort
const DefaultSortField = "orderDate"

// sortableTradeFields is the allow-list of sort keys a client may use.
// Anything else rejects the whole request; unknown keys are never silently
// dropped or passed to the query layer.
var sortableTradeFields = map[string]bool{
	"id":                 true,
	"tradeDate":          true,
	"orderDate":          true,
	"commodity":          true,
	"timeframe":          true,
	"tradeType":          true,
	"trendlineType":      true,
	"position":           true,
	"stopLossTicks":      true,
	"targetR":            true,
	"actualExitR":        true,
	"leverage":           true,
	"profitLoss":         true,
	"holdingTimeMinutes": true,
	"winLoss":            true,
	"tradingSession":     true,
	"isFavorite":         true,
	"createdAt":          true,
	"updatedAt":          true,
}

// SortableTradeFields returns a copy of the sort-field allow-list
func SortableTradeFields() []string {
	fields := make([]string, 0, len(sortableTradeFields))
	for f := range sortableTradeFields {
		fields = append(fields, f)
	}
	return fields
}

// PaginationRequest selects one page of a DataTable result
type PaginationRequest struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// SortSpec is one entry of a multi-key sort; the first entry is primary
type SortSpec struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

// TradeFilters is the structured filter vocabulary of the trades table.
// Every field is optional; an absent field contributes no predicate.
type TradeFilters struct {
	// Inclusive ISO date bounds on trade_date
	DateFrom *string `json:"dateFrom,omitempty"`
	DateTo   *string `json:"dateTo,omitempty"`

	// Inclusive ISO date bounds on order_date
	OrderDateFrom *string `json:"orderDateFrom,omitempty"`
	OrderDateTo   *string `json:"orderDateTo,omitempty"`

	TradeTypeIDs     []uuid.UUID `json:"tradeTypeIds,omitempty"`
	CommodityIDs     []uuid.UUID `json:"commodityIds,omitempty"`
	TimeframeIDs     []uuid.UUID `json:"timeframeIds,omitempty"`
	TrendlineTypeIDs []uuid.UUID `json:"trendlineTypeIds,omitempty"`

	// Existence within the respective many-to-many join
	EntryTypeIDs []uuid.UUID `json:"entryTypeIds,omitempty"`
	TagIDs       []uuid.UUID `json:"tagIds,omitempty"`

	Positions      []string `json:"positions,omitempty"`
	WinLoss        *string  `json:"winLoss,omitempty"`
	TradingSession *string  `json:"tradingSession,omitempty"`

	HoldingTimeMin *int     `json:"holdingTimeMin,omitempty"`
	HoldingTimeMax *int     `json:"holdingTimeMax,omitempty"`
	ActualExitRMin *float64 `json:"actualExitRMin,omitempty"`
	ActualExitRMax *float64 `json:"actualExitRMax,omitempty"`

	// Case-insensitive substring match on notes
	Keyword *string `json:"keyword,omitempty"`

	IsFavorite *bool `json:"isFavorite,omitempty"`

	// Fixed filter applied by the collections view, not user-editable
	CollectionID *uuid.UUID `json:"collectionId,omitempty"`
}

// DataTableRequest is the declarative {pagination, sort, filters} triple
// driving server-side query construction
type DataTableRequest struct {
	Pagination PaginationRequest `json:"pagination"`
	Sort       []SortSpec        `json:"sort"`
	Filters    TradeFilters      `json:"filters"`
}

// NormalizeDataTableRequest fills defaults for missing sections and folds
// sentinel values away. It is total (never fails) and idempotent: an empty
// filters object and an absent one normalize identically.
func NormalizeDataTableRequest(req DataTableRequest) DataTableRequest {
	if req.Pagination.Page < 1 {
		req.Pagination.Page = DefaultPage
	}
	if !allowedPageSizes[req.Pagination.PageSize] {
		req.Pagination.PageSize = DefaultPageSize
	}

	if len(req.Sort) == 0 {
		req.Sort = []SortSpec{{Field: DefaultSortField, Direction: SortDesc}}
	}
	for i := range req.Sort {
		if req.Sort[i].Direction != SortAsc {
			req.Sort[i].Direction = SortDesc
		}
	}

	// The "all" sentinel means "no win/loss filter"; it must never reach the
	// query layer as a comparison value.
	if req.Filters.WinLoss != nil && *req.Filters.WinLoss == WinLossAll {
		req.Filters.WinLoss = nil
	}

	// Defensively repair inverted numeric ranges instead of silently
	// matching zero rows.
	if req.Filters.HoldingTimeMin != nil && req.Filters.HoldingTimeMax != nil &&
		*req.Filters.HoldingTimeMin > *req.Filters.HoldingTimeMax {
		req.Filters.HoldingTimeMin, req.Filters.HoldingTimeMax = req.Filters.HoldingTimeMax, req.Filters.HoldingTimeMin
	}
	if req.Filters.ActualExitRMin != nil && req.Filters.ActualExitRMax != nil &&
		*req.Filters.ActualExitRMin > *req.Filters.ActualExitRMax {
		req.Filters.ActualExitRMin, req.Filters.ActualExitRMax = req.Filters.ActualExitRMax, req.Filters.ActualExitRMin
	}

	return req
}

// ValidateSortFields reports whether every sort key belongs to the fixed
// allow-list. One unknown field invalidates the whole request; this is the
// boundary that keeps arbitrary column names out of the query.
func ValidateSortFields(sort []SortSpec) bool {
	for _, s := range sort {
		if !sortableTradeFields[s.Field] {
			return false
		}
	}
	return true
}

// PaginationMeta is the pagination metadata block of a DataTable response
type PaginationMeta struct {
	CurrentPage     int   `json:"currentPage"`
	PageSize        int   `json:"pageSize"`
	TotalRecords    int64 `json:"totalRecords"`
	TotalPages      int   `json:"totalPages"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

// CalculatePaginationMeta computes page counts without division errors.
// Zero rows yield zero pages while still echoing the requested page.
func CalculatePaginationMeta(page, pageSize int, totalCount int64) PaginationMeta {
	totalPages := 0
	if pageSize > 0 && totalCount > 0 {
		totalPages = int((totalCount + int64(pageSize) - 1) / int64(pageSize))
	}

	return PaginationMeta{
		CurrentPage:     page,
		PageSize:        pageSize,
		TotalRecords:    totalCount,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}
