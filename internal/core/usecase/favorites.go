package usecase

import (
	"context"
	"errors"
	"fmt"

	"real-estate-marketplace/internal/contextkeys"
	"real-estate-marketplace/internal/core/domain"
	"real-estate-marketplace/internal/core/favorites"
	"real-estate-marketplace/internal/core/port"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// favoriteFetchConcurrency ограничивает число параллельных запросов к бэкенду.
const favoriteFetchConcurrency = 8

type ToggleFavoriteUseCase struct {
	store *favorites.Store
}

func NewToggleFavoriteUseCase(store *favorites.Store) *ToggleFavoriteUseCase {
	return &ToggleFavoriteUseCase{store: store}
}

func (uc *ToggleFavoriteUseCase) Execute(ctx context.Context, userID uuid.UUID, listingID int) (bool, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "ToggleFavorite",
		"user_id":    userID,
		"listing_id": listingID,
	})
	ucLogger.Info("Use case started", nil)

	added, err := uc.store.Toggle(ctx, userID, listingID)
	if err != nil {
		ucLogger.Error("Failed to toggle favorite", err, nil)
		return false, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"added": added})
	return added, nil
}

type GetFavoriteIDsUseCase struct {
	store *favorites.Store
}

func NewGetFavoriteIDsUseCase(store *favorites.Store) *GetFavoriteIDsUseCase {
	return &GetFavoriteIDsUseCase{store: store}
}

func (uc *GetFavoriteIDsUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]int, error) {
	ids, err := uc.store.Get(ctx, userID)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to get favorite IDs", err, port.Fields{
			"use_case": "GetFavoriteIDs",
			"user_id":  userID,
		})
		return nil, err
	}
	return ids, nil
}

type GetFavoriteListingsUseCase struct {
	store    *favorites.Store
	listings port.ListingsPort
}

func NewGetFavoriteListingsUseCase(store *favorites.Store, listings port.ListingsPort) *GetFavoriteListingsUseCase {
	return &GetFavoriteListingsUseCase{store: store, listings: listings}
}

// Execute возвращает объявления в порядке избранного (новые первыми).
// Объявления, удаленные на бэкенде, пропускаются.
func (uc *GetFavoriteListingsUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]domain.Listing, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "GetFavoriteListings",
		"user_id":  userID,
	})
	ucLogger.Info("Use case started", nil)

	ids, err := uc.store.Get(ctx, userID)
	if err != nil {
		ucLogger.Error("Failed to get favorite IDs", err, nil)
		return nil, err
	}
	if len(ids) == 0 {
		return []domain.Listing{}, nil
	}

	found := make([]*domain.Listing, len(ids))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(favoriteFetchConcurrency)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			listing, err := uc.listings.GetListing(gCtx, id)
			if errors.Is(err, domain.ErrNotFound) {
				ucLogger.Warn("Favorite listing no longer exists", port.Fields{"listing_id": id})
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to get listing %d: %w", id, err)
			}
			found[i] = listing
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		ucLogger.Error("Failed to fetch favorite listings", err, nil)
		return nil, err
	}

	result := make([]domain.Listing, 0, len(ids))
	for _, l := range found {
		if l != nil {
			result = append(result, *l)
		}
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"favorites": len(ids), "returned": len(result)})
	return result, nil
}

type ClearFavoritesUseCase struct {
	store *favorites.Store
}

func NewClearFavoritesUseCase(store *favorites.Store) *ClearFavoritesUseCase {
	return &ClearFavoritesUseCase{store: store}
}

func (uc *ClearFavoritesUseCase) Execute(ctx context.Context, userID uuid.UUID) error {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "ClearFavorites",
		"user_id":  userID,
	})
	if err := uc.store.Clear(ctx, userID); err != nil {
		ucLogger.Error("Failed to clear favorites", err, nil)
		return err
	}
	ucLogger.Info("Favorites cleared", nil)
	return nil
}
