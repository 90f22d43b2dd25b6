package usecases_port

import (
	"context"

	"real-estate-marketplace/internal/core/domain"
)

type SearchListingsUseCasePort interface {
	Execute(ctx context.Context, query domain.SearchQuery) (*domain.SearchResult, error)
}

type GetFilterOptionsUseCasePort interface {
	Execute(ctx context.Context, params domain.FilterParams) (*domain.FilterOptions, error)
}

type GetListingUseCasePort interface {
	Execute(ctx context.Context, id int) (*domain.Listing, error)
}

type SaveListingUseCasePort interface {
	// Execute создает объявление, если id == nil, иначе обновляет существующее
	Execute(ctx context.Context, id *int, draft domain.ListingDraft) (*domain.Listing, error)
}
