package facet

import (
	"testing"

	"real-estate-marketplace/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFilterOptions(t *testing.T) {
	defs := []domain.DynamicProperty{
		{PropertyKey: "rooms", PropertyName: "Rooms", DataType: domain.DataTypeNumber, IsFilter: true},
		{PropertyKey: "heating", PropertyName: "Heating", DataType: domain.DataTypeSingleChoice, IsFilter: true},
		{PropertyKey: "furnished", DataType: domain.DataTypeBoolean, IsFilter: true},
		{PropertyKey: "notes", DataType: domain.DataTypeText, IsFilter: true},
		{PropertyKey: "hidden", DataType: domain.DataTypeSingleChoice, AllowedValues: []string{"a"}},
	}

	opts := BuildFilterOptions(sampleListings(), defs)

	require.NotNil(t, opts.PriceMin)
	require.NotNil(t, opts.PriceMax)
	assert.Equal(t, 500.0, *opts.PriceMin)
	assert.Equal(t, 1500.0, *opts.PriceMax)
	assert.Equal(t, 3, opts.MatchingCount)

	require.Len(t, opts.Facets, 3)
	assert.Equal(t, "property_rooms", opts.Facets[0].Key)
	assert.Equal(t, 3.0, *opts.Facets[0].Min)
	assert.Equal(t, 5.0, *opts.Facets[0].Max)
	assert.ElementsMatch(t, []string{"Central", "none"}, opts.Facets[1].Options)
	assert.Equal(t, []string{"true", "false"}, opts.Facets[2].Options)
}

func TestBuildFilterOptions_Empty(t *testing.T) {
	opts := BuildFilterOptions(nil, nil)
	assert.Nil(t, opts.PriceMin)
	assert.Zero(t, opts.MatchingCount)
	assert.Empty(t, opts.Facets)
}

func TestBuildFacetedOptions_IgnoresOwnFilter(t *testing.T) {
	defs := []domain.DynamicProperty{
		{PropertyKey: "heating", DataType: domain.DataTypeSingleChoice, IsFilter: true},
		{PropertyKey: "rooms", DataType: domain.DataTypeNumber, IsFilter: true},
	}
	params := domain.FilterParams{Filters: domain.Filters{"property_heating": "Central"}}

	opts := BuildFacetedOptions(sampleListings(), params, defs)

	assert.Equal(t, 1, opts.MatchingCount)
	require.Len(t, opts.Facets, 2)
	assert.ElementsMatch(t, []string{"Central", "none"}, opts.Facets[0].Options)
	// чужой фильтр сужает диапазон rooms
	assert.Equal(t, 3.0, *opts.Facets[1].Min)
	assert.Equal(t, 3.0, *opts.Facets[1].Max)
}

func TestBuildFacetedOptions_OtherFiltersStillApply(t *testing.T) {
	defs := []domain.DynamicProperty{
		{PropertyKey: "heating", DataType: domain.DataTypeSingleChoice, IsFilter: true},
	}
	params := domain.FilterParams{Filters: domain.Filters{
		"city":             []any{"2"},
		"property_heating": "none",
	}}

	opts := BuildFacetedOptions(sampleListings(), params, defs)
	require.Len(t, opts.Facets, 1)
	assert.Equal(t, []string{"none"}, opts.Facets[0].Options)
}

func TestPaginate(t *testing.T) {
	listings := sampleListings()
	assert.Equal(t, []int{2, 3}, ids(Paginate(listings, 2, 1)))
	assert.Equal(t, []int{1, 2, 3}, ids(Paginate(listings, 0, 0)))
	assert.Empty(t, Paginate(listings, 10, 5))
}

func TestClusters(t *testing.T) {
	lat1, lng1 := 33.5138, 36.2765
	lat2, lng2 := 33.5139, 36.2766
	lat3, lng3 := 36.2021, 37.1343

	listings := []domain.Listing{
		{ID: 1, Latitude: &lat1, Longitude: &lng1},
		{ID: 2, Latitude: &lat2, Longitude: &lng2},
		{ID: 3, Latitude: &lat3, Longitude: &lng3},
		{ID: 4},
	}

	clusters := Clusters(listings, DefaultClusterPrecision)
	require.Len(t, clusters, 2)
	assert.Equal(t, 2, clusters[0].Count)
	assert.ElementsMatch(t, []int{1, 2}, clusters[0].ListingIDs)
	assert.Len(t, clusters[0].Geohash, 5)
	assert.InDelta(t, 33.51385, clusters[0].Latitude, 1e-9)

	assert.Nil(t, Clusters(listings, 0))
}
