package pagination

import (
	"math"
	"strings"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MinPageSize     = 1
	MaxPageSize     = 100

	// SearchWildcard is sent by list views to mean "no name filter".
	SearchWildcard = "*"
)

type Params struct {
	Page     int
	PageSize int
}

// Normalize applies the shared defaults: page below 1 becomes DefaultPage,
// a zero page size becomes DefaultPageSize, anything else is clamped to
// [MinPageSize, MaxPageSize]. Page is capped at MaxPage(pageSize) so the
// offset always fits in a Postgres integer.
func Normalize(page, pageSize int) Params {
	if page < 1 {
		page = DefaultPage
	}
	switch {
	case pageSize == 0:
		pageSize = DefaultPageSize
	case pageSize < MinPageSize:
		pageSize = MinPageSize
	case pageSize > MaxPageSize:
		pageSize = MaxPageSize
	}
	if maxPage := MaxPage(pageSize); page > maxPage {
		page = maxPage
	}
	return Params{Page: page, PageSize: pageSize}
}

// MaxPage is the highest page whose offset does not exceed math.MaxInt32.
// Pages past it are empty for any realistic row count.
func MaxPage(pageSize int) int {
	return math.MaxInt32/pageSize + 1
}

func (p Params) Limit() int {
	return p.PageSize
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// NormalizeSearch returns the substring to filter by, or "" for no filter.
func NormalizeSearch(search *string) string {
	if search == nil {
		return ""
	}
	s := strings.TrimSpace(*search)
	if s == SearchWildcard {
		return ""
	}
	return s
}

type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

func NewPage[T any](items []T, total int, p Params) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		Total:      total,
		TotalPages: TotalPages(total, p.PageSize),
	}
}
