package food

import (
	"errors"
	"strings"
)

// ErrInvalidFilterRange is returned when the maximum price is below the minimum.
var ErrInvalidFilterRange = errors.New("max_price must be greater than or equal to min_price")

// Filter holds the optional listing criteria. Empty strings and nil bounds are ignored.
type Filter struct {
	Name     string
	MinPrice *float64
	MaxPrice *float64
	Search   string
}

// Page is one window of a filtered listing.
type Page struct {
	Items []Item `json:"items"`
	Total int    `json:"total"`
	Page  int    `json:"page"`
	Size  int    `json:"size"`
	Pages int    `json:"pages"`
}

// Validate checks the price bounds.
func (f Filter) Validate() error {
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MaxPrice < *f.MinPrice {
		return ErrInvalidFilterRange
	}
	return nil
}

// IsZero reports whether no criterion is set.
func (f Filter) IsZero() bool {
	return f.Name == "" && f.MinPrice == nil && f.MaxPrice == nil && f.Search == ""
}

// Match reports whether item satisfies every active criterion.
func (f Filter) Match(item Item) bool {
	if f.Name != "" && !containsFold(item.Name, f.Name) {
		return false
	}
	if f.MinPrice != nil && item.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && item.Price > *f.MaxPrice {
		return false
	}
	if f.Search != "" && !containsFold(item.Name, f.Search) && !containsFold(item.Description, f.Search) {
		return false
	}
	return true
}

// Apply returns the items matching f in insertion order.
func Apply(items []Item, f Filter) []Item {
	if f.IsZero() {
		return items
	}
	matched := make([]Item, 0, len(items))
	for _, item := range items {
		if f.Match(item) {
			matched = append(matched, item)
		}
	}
	return matched
}

// Paginate cuts the requested window out of items. An empty input always
// reports page 1; otherwise page is clamped into [1, pages].
func Paginate(items []Item, page, size int) Page {
	if size < 1 {
		size = 1
	}

	total := len(items)
	if total == 0 {
		return Page{Items: []Item{}, Total: 0, Page: 1, Size: size, Pages: 0}
	}

	pages := total / size
	if total%size != 0 {
		pages++
	}
	if page < 1 {
		page = 1
	} else if page > pages {
		page = pages
	}

	start := (page - 1) * size
	end := total
	if total-start > size {
		end = start + size
	}
	window := make([]Item, end-start)
	copy(window, items[start:end])

	return Page{Items: window, Total: total, Page: page, Size: size, Pages: pages}
}

// Query filters the snapshot and paginates the result.
func Query(snapshot []Item, f Filter, page, size int) Page {
	return Paginate(Apply(snapshot, f), page, size)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
