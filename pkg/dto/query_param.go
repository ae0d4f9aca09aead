package dto

import "math"

type Filter struct {
	Limit  int    `query:"limit"`
	Page   int    `query:"page"`
	Status string `query:"status"`
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

func NewPagination(page, limit int, total int64) Pagination {
	pages := 0
	if limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(limit)))
	}

	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// Normalize applies the defaults and clamps limit to maxLimit when maxLimit > 0.
func (f *Filter) Normalize(defaultLimit, maxLimit int) {
	if f.Page < 1 {
		f.Page = 1
	}

	if f.Limit < 1 {
		f.Limit = defaultLimit
	}

	if maxLimit > 0 && f.Limit > maxLimit {
		f.Limit = maxLimit
	}
}

func (f Filter) Offset() int64 {
	return int64(f.Page-1) * int64(f.Limit)
}
