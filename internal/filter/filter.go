// Package filter holds the list state for the transaction views: free
// text search, type/category/date filters, pagination and sorting.
//
// All transitions are pure and total. Every State method returns the
// new state, no transition can produce an invalid one.
package filter

import (
	"net/url"
	"strconv"
	"time"
)

// All is the sentinel for type and category filters that do not
// restrict the result set. It is never serialized into query
// parameters.
const All = "all"

// Order is the sort direction.
type Order string

const (
	Ascending  Order = "asc"
	Descending Order = "desc"
)

// flip returns the opposite sort direction.
func (o Order) flip() Order {
	if o == Ascending {
		return Descending
	}
	return Ascending
}

// State is the full filter, pagination and sort state for a
// transaction list. It is ephemeral and client-side only, it is never
// persisted.
type State struct {
	SearchTerm     string
	TypeFilter     string
	CategoryFilter string
	StartDate      time.Time
	EndDate        time.Time
	CurrentPage    int
	PageSize       int
	SortField      string
	SortOrder      Order
}

// DefaultState returns the state a freshly loaded list starts with.
func DefaultState() State {
	return State{
		TypeFilter:     All,
		CategoryFilter: All,
		CurrentPage:    1,
		PageSize:       50,
		SortField:      "createdAt",
		SortOrder:      Descending,
	}
}

// WithSearchTerm sets the search term and resets to the first page.
func (s State) WithSearchTerm(term string) State {
	s.SearchTerm = term
	s.CurrentPage = 1
	return s
}

// WithTypeFilter sets the type filter and resets to the first page.
func (s State) WithTypeFilter(t string) State {
	s.TypeFilter = t
	s.CurrentPage = 1
	return s
}

// WithCategoryFilter sets the category filter and resets to the first page.
func (s State) WithCategoryFilter(id string) State {
	s.CategoryFilter = id
	s.CurrentPage = 1
	return s
}

// WithStartDate sets the start date and resets to the first page.
func (s State) WithStartDate(date time.Time) State {
	s.StartDate = date
	s.CurrentPage = 1
	return s
}

// WithEndDate sets the end date and resets to the first page.
func (s State) WithEndDate(date time.Time) State {
	s.EndDate = date
	s.CurrentPage = 1
	return s
}

// WithPageSize sets the page size and resets to the first page.
func (s State) WithPageSize(size int) State {
	s.PageSize = size
	s.CurrentPage = 1
	return s
}

// WithPage navigates to the given page. No other field changes.
func (s State) WithPage(page int) State {
	s.CurrentPage = page
	return s
}

// ToggleSort sorts by the given field. Selecting the field that is
// already sorted by flips the direction, selecting a new field sorts
// descending. Both reset to the first page.
func (s State) ToggleSort(field string) State {
	if field == s.SortField {
		s.SortOrder = s.SortOrder.flip()
	} else {
		s.SortField = field
		s.SortOrder = Descending
	}

	s.CurrentPage = 1
	return s
}

// ClearFilters resets all filter fields to their defaults and
// navigates to the first page. Sorting and page size are preserved.
func (s State) ClearFilters() State {
	defaults := DefaultState()

	s.SearchTerm = defaults.SearchTerm
	s.TypeFilter = defaults.TypeFilter
	s.CategoryFilter = defaults.CategoryFilter
	s.StartDate = defaults.StartDate
	s.EndDate = defaults.EndDate
	s.CurrentPage = 1

	return s
}

// HasActiveFilters reports whether any filter field deviates from the
// defaults. Pagination and sorting are not filters.
func (s State) HasActiveFilters() bool {
	return s.SearchTerm != "" ||
		s.TypeFilter != All ||
		s.CategoryFilter != All ||
		!s.StartDate.IsZero() ||
		!s.EndDate.IsZero()
}

// Params derives the server query parameters for the state.
//
// The type and category filters are omitted entirely when set to All.
// Dates are normalized to the start and end of the day in UTC before
// serialization.
func (s State) Params() url.Values {
	params := url.Values{}

	params.Set("sort", s.SortField)
	params.Set("order", string(s.SortOrder))
	params.Set("limit", strconv.Itoa(s.PageSize))
	params.Set("offset", strconv.Itoa((s.CurrentPage-1)*s.PageSize))

	if s.TypeFilter != All {
		params.Set("type", s.TypeFilter)
	}

	if s.CategoryFilter != All {
		params.Set("categoryId", s.CategoryFilter)
	}

	if s.SearchTerm != "" {
		params.Set("query", s.SearchTerm)
	}

	if !s.StartDate.IsZero() {
		params.Set("fromDate", startOfDay(s.StartDate).Format(time.RFC3339))
	}

	if !s.EndDate.IsZero() {
		params.Set("toDate", endOfDay(s.EndDate).Format(time.RFC3339))
	}

	return params
}

func startOfDay(t time.Time) time.Time {
	t = t.In(time.UTC)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func endOfDay(t time.Time) time.Time {
	t = t.In(time.UTC)
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, time.UTC)
}
