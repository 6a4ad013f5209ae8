package repokit

import "math"

// Paging is a 1-based page request
type Paging struct {
	Page  int
	Limit int
}

// Offset is the number of rows to skip: (page-1)*limit
// It saturates at MaxInt so a huge page still reads as past the end
func (p Paging) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// TotalPages is ceil(total/limit); zero rows is zero pages
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// Paged is one page of a result set plus the numbers a client needs to walk it
type Paged[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// NewPaged assembles a page; a nil items slice becomes empty so it encodes as []
func NewPaged[T any](items []T, total int, p Paging) Paged[T] {
	if items == nil {
		items = []T{}
	}
	return Paged[T]{
		Items:      items,
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: TotalPages(total, p.Limit),
	}
}
