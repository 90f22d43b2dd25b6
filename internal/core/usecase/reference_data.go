package usecase

import (
	"context"
	"fmt"

	"real-estate-marketplace/internal/contextkeys"
	"real-estate-marketplace/internal/core/domain"
	"real-estate-marketplace/internal/core/port"
)

// GetLocationsUseCase - справочник локаций для каскада выбора.
type GetLocationsUseCase struct {
	source port.LocationSourcePort
}

func NewGetLocationsUseCase(source port.LocationSourcePort) *GetLocationsUseCase {
	return &GetLocationsUseCase{source: source}
}

func (uc *GetLocationsUseCase) Cities(ctx context.Context) ([]domain.City, error) {
	cities, err := uc.source.GetCities(ctx)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to load cities", err, port.Fields{"use_case": "GetLocations"})
		return nil, fmt.Errorf("failed to load cities: %w", err)
	}
	return nonNil(cities), nil
}

func (uc *GetLocationsUseCase) Neighborhoods(ctx context.Context, cityID int) ([]domain.Neighborhood, error) {
	items, err := uc.source.GetNeighborhoods(ctx, cityID)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to load neighborhoods", err, port.Fields{
			"use_case": "GetLocations",
			"city_id":  cityID,
		})
		return nil, fmt.Errorf("failed to load neighborhoods: %w", err)
	}
	return nonNil(items), nil
}

func (uc *GetLocationsUseCase) FinalCities(ctx context.Context, neighborhoodID int) ([]domain.FinalCity, error) {
	items, err := uc.source.GetFinalCities(ctx, neighborhoodID)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to load final cities", err, port.Fields{
			"use_case":        "GetLocations",
			"neighborhood_id": neighborhoodID,
		})
		return nil, fmt.Errorf("failed to load final cities: %w", err)
	}
	return nonNil(items), nil
}

type GetTaxonomyUseCase struct {
	source port.TaxonomyPort
}

func NewGetTaxonomyUseCase(source port.TaxonomyPort) *GetTaxonomyUseCase {
	return &GetTaxonomyUseCase{source: source}
}

func (uc *GetTaxonomyUseCase) MainTypes(ctx context.Context) ([]domain.MainType, error) {
	items, err := uc.source.GetMainTypes(ctx)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to load main types", err, port.Fields{"use_case": "GetTaxonomy"})
		return nil, fmt.Errorf("failed to load main types: %w", err)
	}
	return nonNil(items), nil
}

func (uc *GetTaxonomyUseCase) FinalTypes(ctx context.Context, subTypeID int) ([]domain.FinalType, error) {
	items, err := uc.source.GetFinalTypes(ctx, subTypeID)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to load final types", err, port.Fields{
			"use_case":    "GetTaxonomy",
			"sub_type_id": subTypeID,
		})
		return nil, fmt.Errorf("failed to load final types: %w", err)
	}
	return nonNil(items), nil
}

// nonNil - пустой список сериализуется как [], а не null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
