package browse

import "github.com/junyours/occ-admission-sub001/internal/models"

// PageResult is one window over an ordered collection.
type PageResult[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	TotalPages int
	TotalCount int
	StartIndex int // 0-based, inclusive
	EndIndex   int // exclusive
}

// Paginate slices an ordered collection into the requested window.
// window.Page is 1-based and clamps into [1, TotalPages] instead of
// erroring; window.PageSize == models.PageSizeAll returns everything as a
// single page. Callers are responsible for resetting Page to 1 whenever the
// upstream filtered count may have changed.
func Paginate[T any](records []T, window models.PageWindow) PageResult[T] {
	total := len(records)

	if window.PageSize == models.PageSizeAll {
		return PageResult[T]{
			Items:      append([]T(nil), records...),
			Page:       1,
			PageSize:   models.PageSizeAll,
			TotalPages: 1,
			TotalCount: total,
			StartIndex: 0,
			EndIndex:   total,
		}
	}

	size := window.PageSize
	if size <= 0 {
		size = 10
	}

	totalPages := total / size
	if total%size != 0 {
		totalPages++
	}
	if totalPages == 0 {
		totalPages = 1
	}

	page := window.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return PageResult[T]{
		Items:      append([]T(nil), records[start:end]...),
		Page:       page,
		PageSize:   size,
		TotalPages: totalPages,
		TotalCount: total,
		StartIndex: start,
		EndIndex:   end,
	}
}

// Pagination converts the result into the response envelope's metadata.
func (p PageResult[T]) Pagination() *models.Pagination {
	return &models.Pagination{
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalCount: p.TotalCount,
		TotalPages: p.TotalPages,
	}
}
