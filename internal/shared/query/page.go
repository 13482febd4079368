package query

// Meta is the page metadata returned alongside every listing.
type Meta struct {
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
}

// NewMeta computes page metadata. TotalPages is ceil(total/limit) and 0
// for an empty collection; CurrentPage echoes the requested page even
// when it lies beyond the last one.
func NewMeta(total int64, page, limit int) Meta {
	pages := 0
	if total > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Meta{
		TotalItems:  total,
		TotalPages:  pages,
		CurrentPage: page,
		PageSize:    limit,
	}
}
