package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"real-estate-marketplace/internal/adapters/memory"
	"real-estate-marketplace/internal/core/domain"
	"real-estate-marketplace/internal/core/favorites"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFavoritesUseCases_Flow(t *testing.T) {
	ctx := context.Background()
	store := favorites.NewStore(memory.NewFavoritesRepository(), nil)
	user := uuid.New()

	toggle := NewToggleFavoriteUseCase(store)
	for _, id := range []int{1, 2, 3} {
		added, err := toggle.Execute(ctx, user, id)
		require.NoError(t, err)
		assert.True(t, added)
	}

	listings := new(mockListings)
	listings.On("GetListing", mock.Anything, 3).Return(&domain.Listing{ID: 3}, nil)
	listings.On("GetListing", mock.Anything, 2).Return((*domain.Listing)(nil), fmt.Errorf("gone: %w", domain.ErrNotFound))
	listings.On("GetListing", mock.Anything, 1).Return(&domain.Listing{ID: 1}, nil)

	result, err := NewGetFavoriteListingsUseCase(store, listings).Execute(ctx, user)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, 3, result[0].ID)
	assert.Equal(t, 1, result[1].ID)

	added, err := toggle.Execute(ctx, user, 2)
	require.NoError(t, err)
	assert.False(t, added)

	ids, err := NewGetFavoriteIDsUseCase(store).Execute(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1}, ids)

	require.NoError(t, NewClearFavoritesUseCase(store).Execute(ctx, user))
	ids, err = NewGetFavoriteIDsUseCase(store).Execute(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestGetFavoriteListings_BackendErrorFails(t *testing.T) {
	ctx := context.Background()
	store := favorites.NewStore(memory.NewFavoritesRepository(), nil)
	user := uuid.New()
	_, err := store.Toggle(ctx, user, 7)
	require.NoError(t, err)

	listings := new(mockListings)
	listings.On("GetListing", mock.Anything, 7).Return((*domain.Listing)(nil), errors.New("timeout"))

	_, err = NewGetFavoriteListingsUseCase(store, listings).Execute(ctx, user)
	assert.Error(t, err)
}

func TestGetFavoriteListings_Empty(t *testing.T) {
	store := favorites.NewStore(memory.NewFavoritesRepository(), nil)
	listings := new(mockListings)

	result, err := NewGetFavoriteListingsUseCase(store, listings).Execute(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, result)
	listings.AssertNotCalled(t, "GetListing", mock.Anything, mock.Anything)
}
