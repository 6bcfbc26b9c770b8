package models

// PageSizeAll disables pagination: the whole filtered set on one page.
const PageSizeAll = -1

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
	TotalPages int `json:"total_pages"`
}

// PageWindow is the requested slice of a filtered collection. Page is
// 1-based; PageSize may be PageSizeAll.
type PageWindow struct {
	Page     int
	PageSize int
}

// Facets lists the distinct values present in a working set, used to
// populate filter dropdowns without extra round-trips.
type Facets struct {
	ExamRefs   []string `json:"exam_refs,omitempty"`
	Subjects   []string `json:"subjects,omitempty"`
	Categories []string `json:"categories,omitempty"`
}
