package usecase

import (
	"context"
	"errors"
	"fmt"

	"real-estate-marketplace/internal/contextkeys"
	"real-estate-marketplace/internal/core/domain"
	"real-estate-marketplace/internal/core/port"
)

type GetListingUseCase struct {
	listings port.ListingsPort
}

func NewGetListingUseCase(listings port.ListingsPort) *GetListingUseCase {
	return &GetListingUseCase{listings: listings}
}

func (uc *GetListingUseCase) Execute(ctx context.Context, id int) (*domain.Listing, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "GetListing",
		"listing_id": id,
	})

	listing, err := uc.listings.GetListing(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			ucLogger.Warn("Listing not found", nil)
		} else {
			ucLogger.Error("Failed to get listing", err, nil)
		}
		return nil, fmt.Errorf("failed to get listing %d: %w", id, err)
	}
	return listing, nil
}
