package domain

import "github.com/google/uuid"

type FavoritesAction string

const (
	FavoritesAdded   FavoritesAction = "added"
	FavoritesRemoved FavoritesAction = "removed"
	FavoritesCleared FavoritesAction = "cleared"
)

// FavoritesEvent - изменение избранного пользователя. IDs - состояние после изменения.
type FavoritesEvent struct {
	UserID    uuid.UUID
	ListingID int
	Action    FavoritesAction
	IDs       []int
}
