package usecase

import (
	"context"

	"real-estate-marketplace/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type mockListings struct {
	mock.Mock
}

func (m *mockListings) ListListings(ctx context.Context) ([]domain.Listing, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Listing), args.Error(1)
}

func (m *mockListings) GetListing(ctx context.Context, id int) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *mockListings) CreateListing(ctx context.Context, draft domain.ListingDraft) (*domain.Listing, error) {
	args := m.Called(ctx, draft)
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *mockListings) UpdateListing(ctx context.Context, id int, draft domain.ListingDraft) (*domain.Listing, error) {
	args := m.Called(ctx, id, draft)
	return args.Get(0).(*domain.Listing), args.Error(1)
}

type mockSchema struct {
	mock.Mock
}

func (m *mockSchema) GetPropertiesByFinalType(ctx context.Context, finalTypeID int) ([]domain.DynamicProperty, error) {
	args := m.Called(ctx, finalTypeID)
	return args.Get(0).([]domain.DynamicProperty), args.Error(1)
}

func (m *mockSchema) GetPropertyGroups(ctx context.Context, finalTypeID int) ([]domain.PropertyGroupInfo, error) {
	args := m.Called(ctx, finalTypeID)
	return args.Get(0).([]domain.PropertyGroupInfo), args.Error(1)
}

type mockTaxonomy struct {
	mock.Mock
}

func (m *mockTaxonomy) GetMainTypes(ctx context.Context) ([]domain.MainType, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.MainType), args.Error(1)
}

func (m *mockTaxonomy) GetFinalTypes(ctx context.Context, subTypeID int) ([]domain.FinalType, error) {
	args := m.Called(ctx, subTypeID)
	return args.Get(0).([]domain.FinalType), args.Error(1)
}

type mockLocations struct {
	mock.Mock
}

func (m *mockLocations) GetCities(ctx context.Context) ([]domain.City, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.City), args.Error(1)
}

func (m *mockLocations) GetNeighborhoods(ctx context.Context, cityID int) ([]domain.Neighborhood, error) {
	args := m.Called(ctx, cityID)
	return args.Get(0).([]domain.Neighborhood), args.Error(1)
}

func (m *mockLocations) GetFinalCities(ctx context.Context, neighborhoodID int) ([]domain.FinalCity, error) {
	args := m.Called(ctx, neighborhoodID)
	return args.Get(0).([]domain.FinalCity), args.Error(1)
}

func floatPtr(v float64) *float64 { return &v }

func numberProp(v any) domain.PropertyValue {
	return domain.PropertyValue{Value: v, Property: &domain.PropertyMeta{DataType: domain.DataTypeNumber}}
}

func snapshot() []domain.Listing {
	return []domain.Listing{
		{ID: 1, Price: 100, FinalTypeID: 3, CityID: 1, Latitude: floatPtr(33.51), Longitude: floatPtr(36.29),
			Properties: map[string]domain.PropertyValue{"rooms": numberProp(3)}},
		{ID: 2, Price: 200, FinalTypeID: 3, CityID: 2, Latitude: floatPtr(33.51), Longitude: floatPtr(36.29),
			Properties: map[string]domain.PropertyValue{"rooms": numberProp(1)}},
		{ID: 3, Price: 300, FinalTypeID: 4, CityID: 1,
			Properties: map[string]domain.PropertyValue{"rooms": numberProp(5)}},
	}
}
