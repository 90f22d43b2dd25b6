package memory

import (
	"context"
	"slices"
	"sync"

	"real-estate-marketplace/internal/contextkeys"
	"real-estate-marketplace/internal/core/port"

	"github.com/google/uuid"
)

// FavoritesRepository - хранилище избранного в памяти процесса.
// Используется, когда DATABASE_URL не задан.
type FavoritesRepository struct {
	mu     sync.RWMutex
	byUser map[uuid.UUID][]int
}

func NewFavoritesRepository() *FavoritesRepository {
	return &FavoritesRepository{byUser: make(map[uuid.UUID][]int)}
}

func (r *FavoritesRepository) Add(ctx context.Context, userID uuid.UUID, listingID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := r.byUser[userID]
	if slices.Contains(ids, listingID) {
		contextkeys.LoggerFromContext(ctx).Debug("Favorite already exists, operation considered successful.", port.Fields{
			"component": "MemoryFavoritesRepository", "user_id": userID, "listing_id": listingID,
		})
		return nil
	}
	// новые первыми, как ORDER BY created_at DESC в postgres
	r.byUser[userID] = append([]int{listingID}, ids...)
	return nil
}

func (r *FavoritesRepository) Remove(ctx context.Context, userID uuid.UUID, listingID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := r.byUser[userID]
	if i := slices.Index(ids, listingID); i >= 0 {
		r.byUser[userID] = slices.Delete(slices.Clone(ids), i, i+1)
	}
	return nil
}

func (r *FavoritesRepository) Contains(ctx context.Context, userID uuid.UUID, listingID int) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Contains(r.byUser[userID], listingID), nil
}

func (r *FavoritesRepository) FindIDsByUser(ctx context.Context, userID uuid.UUID) ([]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.byUser[userID]), nil
}

func (r *FavoritesRepository) ClearByUser(ctx context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byUser, userID)
	return nil
}
