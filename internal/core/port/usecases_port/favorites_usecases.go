package usecases_port

import (
	"context"

	"real-estate-marketplace/internal/core/domain"

	"github.com/google/uuid"
)

type ToggleFavoriteUseCasePort interface {
	// Execute возвращает true, если объявление добавлено, и false, если убрано
	Execute(ctx context.Context, userID uuid.UUID, listingID int) (bool, error)
}

type GetFavoriteIDsUseCasePort interface {
	Execute(ctx context.Context, userID uuid.UUID) ([]int, error)
}

type GetFavoriteListingsUseCasePort interface {
	Execute(ctx context.Context, userID uuid.UUID) ([]domain.Listing, error)
}

type ClearFavoritesUseCasePort interface {
	Execute(ctx context.Context, userID uuid.UUID) error
}

// FavoritesSubscriptionPort - поток изменений избранного для SSE.
type FavoritesSubscriptionPort interface {
	Subscribe(userID uuid.UUID) (<-chan domain.FavoritesEvent, func())
}
