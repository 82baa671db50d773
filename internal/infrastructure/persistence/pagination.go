package persistence

import "github.com/stitchdesk/backend/internal/domain/shared"

// normalizePaging clamps filter paging to sane values so paginated
// queries never divide by zero or skip negative offsets.
func normalizePaging(filter shared.Filter) (page, pageSize int) {
	page = filter.Page
	if page < 1 {
		page = 1
	}
	pageSize = filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	return page, pageSize
}
