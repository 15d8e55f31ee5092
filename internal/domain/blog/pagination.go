package blog

import (
	"errors"
	"strconv"
	"strings"
)

// PageSize is the fixed number of posts per page on every list view.
const PageSize = 10

// PageMeta describes one page of an ordered result set.
type PageMeta struct {
	Number      int  `json:"number"`
	PerPage     int  `json:"per_page"`
	TotalItems  int  `json:"total_items"`
	TotalPages  int  `json:"total_pages"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
	NextNumber  int  `json:"next_page,omitempty"`
	PrevNumber  int  `json:"previous_page,omitempty"`
}

// Page is a bounded slice of an ordered result set plus navigation metadata.
type Page[T any] struct {
	Items []T      `json:"items"`
	Meta  PageMeta `json:"meta"`
}

// NewPageMeta resolves the requested page number against total items.
// A missing or non-numeric number selects the first page; a number outside
// 1..TotalPages selects the last page. An empty result still has one page.
func NewPageMeta(raw string, total, perPage int) PageMeta {
	if perPage <= 0 {
		perPage = PageSize
	}
	if total < 0 {
		total = 0
	}
	pages := (total + perPage - 1) / perPage
	if pages < 1 {
		pages = 1
	}

	number := 1
	if raw = strings.TrimSpace(raw); raw != "" {
		n, err := strconv.Atoi(raw)
		switch {
		case err == nil:
			number = n
			if number < 1 || number > pages {
				number = pages
			}
		case errors.Is(err, strconv.ErrRange):
			number = pages
		}
	}

	m := PageMeta{
		Number:      number,
		PerPage:     perPage,
		TotalItems:  total,
		TotalPages:  pages,
		HasNext:     number < pages,
		HasPrevious: number > 1,
	}
	if m.HasNext {
		m.NextNumber = number + 1
	}
	if m.HasPrevious {
		m.PrevNumber = number - 1
	}
	return m
}

// Offset is the index of the first item on the page.
func (m PageMeta) Offset() int { return (m.Number - 1) * m.PerPage }

// Limit is the maximum number of items on the page.
func (m PageMeta) Limit() int { return m.PerPage }

// Paginate slices an already ordered sequence using PageSize.
func Paginate[T any](items []T, raw string) Page[T] {
	meta := NewPageMeta(raw, len(items), PageSize)
	start := meta.Offset()
	end := start + meta.Limit()
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}
	page := make([]T, end-start)
	copy(page, items[start:end])
	return Page[T]{Items: page, Meta: meta}
}
