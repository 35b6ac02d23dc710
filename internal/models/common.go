package models

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageQuery is bound from ?page=&page_size= on list endpoints.
type PageQuery struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1"`
}

// Normalize fills defaults and clamps the page size.
func (q PageQuery) Normalize() PageQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	return q
}

func (q PageQuery) Offset() int {
	q = q.Normalize()
	return (q.Page - 1) * q.PageSize
}

// Page is one page of a list result. Results is never nil.
type Page[T any] struct {
	Count    int64 `json:"count"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Results  []T   `json:"results"`
}

func NewPage[T any](q PageQuery, count int64, results []T) *Page[T] {
	q = q.Normalize()
	if results == nil {
		results = []T{}
	}
	return &Page[T]{
		Count:    count,
		Page:     q.Page,
		PageSize: q.PageSize,
		Results:  results,
	}
}
