package paging

// Bounds shared by every paginated listing.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Normalize clamps/defaults page and pageSize against the configured
// bounds. It cannot fail: missing or sub-minimum values fall back to
// the defaults and oversized pageSize is capped at the maximum.
func Normalize(page, pageSize int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	} else if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// TotalPages returns ceil(totalItems/pageSize), or 0 when pageSize is 0.
func TotalPages(totalItems, pageSize int) int {
	if pageSize == 0 {
		return 0
	}
	return (totalItems + pageSize - 1) / pageSize
}

// Slice cuts one page out of an in-memory result set.
func Slice[T any](items []T, page, pageSize int) []T {
	start := (page - 1) * pageSize
	if start >= len(items) {
		return nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
