package usecases_port

import (
	"context"

	"real-estate-marketplace/internal/core/domain"
)

type GetLocationsUseCasePort interface {
	Cities(ctx context.Context) ([]domain.City, error)
	Neighborhoods(ctx context.Context, cityID int) ([]domain.Neighborhood, error)
	FinalCities(ctx context.Context, neighborhoodID int) ([]domain.FinalCity, error)
}

type GetTaxonomyUseCasePort interface {
	MainTypes(ctx context.Context) ([]domain.MainType, error)
	FinalTypes(ctx context.Context, subTypeID int) ([]domain.FinalType, error)
}
