package facet

import "real-estate-marketplace/internal/core/domain"

// Paginate вырезает страницу; offset за пределами набора дает пустую страницу.
func Paginate(listings []domain.Listing, limit, offset int) []domain.Listing {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(listings) {
		return []domain.Listing{}
	}
	end := len(listings)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return listings[offset:end]
}
