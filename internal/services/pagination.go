package services

import "math"

const (
	DefaultProductLimit = 20
	DefaultUserLimit    = 10
	MaxPageLimit        = 100
)

// Page is one slice of a tenant-scoped listing.
type Page[T any] struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"total_items"`
	TotalPages int64 `json:"total_pages"`
	Items      []T   `json:"items"`
}

// NormalizePage clamps page to at least 1 and limit to [1, MaxPageLimit],
// substituting defaultLimit for a non-positive limit. page is capped so its
// offset stays representable.
func NormalizePage(page, limit, defaultLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	// Keep (page-1)*limit within int; GORM ignores a negative offset.
	if maxPage := math.MaxInt / limit; page > maxPage {
		page = maxPage
	}
	return page, limit
}

func offset(page, limit int) int {
	return (page - 1) * limit
}

func newPage[T any](page, limit int, total int64, items []T) *Page[T] {
	return &Page[T]{
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: (total + int64(limit) - 1) / int64(limit),
		Items:      items,
	}
}
