package entity

import "strconv"

// PageNumber is a 1-based page index.
type PageNumber int

// FirstPage is the default page.
const FirstPage PageNumber = 1

// NewPageNumber clamps n to the valid range.
func NewPageNumber(n int) PageNumber {
	if n < 1 {
		return FirstPage
	}
	return PageNumber(n)
}

// Offset converts the page number into the backend's item offset.
func (p PageNumber) Offset(perPage int) int { return (int(p) - 1) * perPage }

func (p PageNumber) String() string { return strconv.Itoa(int(p)) }

// PaginatedList is one page of a larger result set.
type PaginatedList[T any] struct {
	Items   []T
	PerPage int // items per page, > 0
	Total   int // total items across all pages
}

// TotalPages returns ceil(Total / PerPage), or 0 for an empty set.
func (l PaginatedList[T]) TotalPages() int {
	if l.Total == 0 {
		return 0
	}
	return (l.Total + l.PerPage - 1) / l.PerPage
}
