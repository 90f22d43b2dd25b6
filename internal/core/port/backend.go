package port

import (
	"context"

	"real-estate-marketplace/internal/core/domain"
)

// ListingsPort - объявления удаленного бэкенда.
type ListingsPort interface {
	ListListings(ctx context.Context) ([]domain.Listing, error)
	GetListing(ctx context.Context, id int) (*domain.Listing, error)
	CreateListing(ctx context.Context, draft domain.ListingDraft) (*domain.Listing, error)
	UpdateListing(ctx context.Context, id int, draft domain.ListingDraft) (*domain.Listing, error)
}

// PropertySchemaPort - определения динамических свойств по finalType.
type PropertySchemaPort interface {
	GetPropertiesByFinalType(ctx context.Context, finalTypeID int) ([]domain.DynamicProperty, error)
	GetPropertyGroups(ctx context.Context, finalTypeID int) ([]domain.PropertyGroupInfo, error)
}

// LocationSourcePort - справочник локаций: город → район → конечный город.
type LocationSourcePort interface {
	GetCities(ctx context.Context) ([]domain.City, error)
	GetNeighborhoods(ctx context.Context, cityID int) ([]domain.Neighborhood, error)
	GetFinalCities(ctx context.Context, neighborhoodID int) ([]domain.FinalCity, error)
}

// TaxonomyPort - справочник категорий.
type TaxonomyPort interface {
	GetMainTypes(ctx context.Context) ([]domain.MainType, error)
	GetFinalTypes(ctx context.Context, subTypeID int) ([]domain.FinalType, error)
}
