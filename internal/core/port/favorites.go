package port

import (
	"context"

	"real-estate-marketplace/internal/core/domain"

	"github.com/google/uuid"
)

// FavoritesRepositoryPort - хранилище избранного. Add идемпотентен.
type FavoritesRepositoryPort interface {
	Add(ctx context.Context, userID uuid.UUID, listingID int) error
	Remove(ctx context.Context, userID uuid.UUID, listingID int) error
	Contains(ctx context.Context, userID uuid.UUID, listingID int) (bool, error)
	// FindIDsByUser возвращает ID в порядке добавления, новые первыми
	FindIDsByUser(ctx context.Context, userID uuid.UUID) ([]int, error)
	ClearByUser(ctx context.Context, userID uuid.UUID) error
}

// FavoritesEventPublisherPort - публикация изменений избранного во внешнюю шину.
type FavoritesEventPublisherPort interface {
	PublishFavoritesChanged(ctx context.Context, event domain.FavoritesEvent) error
}
