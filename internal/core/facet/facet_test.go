package facet

import (
	"slices"
	"testing"
	"time"

	"real-estate-marketplace/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func prop(dt domain.DataType, v any) domain.PropertyValue {
	return domain.PropertyValue{Value: v, Property: &domain.PropertyMeta{DataType: dt}}
}

func sampleListings() []domain.Listing {
	return []domain.Listing{
		{ID: 1, Price: 500, MainCategoryID: 1, SubCategoryID: 10, FinalTypeID: 100, CityID: 1, NeighborhoodID: 11, FinalCityID: 111,
			Properties: map[string]domain.PropertyValue{
				"rooms":   prop(domain.DataTypeNumber, "3"),
				"heating": prop(domain.DataTypeSingleChoice, "Central"),
			},
			CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 2, Price: 1500, MainCategoryID: 1, SubCategoryID: 10, FinalTypeID: 101, CityID: 2, NeighborhoodID: 21, FinalCityID: 211,
			Properties: map[string]domain.PropertyValue{
				"rooms":   prop(domain.DataTypeNumber, 5.0),
				"heating": prop(domain.DataTypeSingleChoice, "none"),
			},
			CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 3, Price: 900, MainCategoryID: 2, SubCategoryID: 20, FinalTypeID: 200, CityID: 1, NeighborhoodID: 12, FinalCityID: 121,
			Properties: map[string]domain.PropertyValue{},
			CreatedAt:  time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func ids(listings []domain.Listing) []int {
	out := make([]int, len(listings))
	for i, l := range listings {
		out[i] = l.ID
	}
	return out
}

func TestFilter_EmptyFiltersReturnEverythingInRange(t *testing.T) {
	listings := sampleListings()

	got := Filter(listings, domain.FilterParams{Filters: domain.Filters{}}, nil, nil)
	assert.Equal(t, []int{1, 2, 3}, ids(got))

	got = Filter(listings, domain.FilterParams{
		PriceRange: &domain.PriceRange{Min: 600, Max: 1000},
	}, nil, nil)
	assert.Equal(t, []int{3}, ids(got))
}

func TestFilter_PriceBoundsAreInclusive(t *testing.T) {
	got := Filter(sampleListings(), domain.FilterParams{
		PriceRange: &domain.PriceRange{Min: 500, Max: 900},
	}, nil, nil)
	assert.Equal(t, []int{1, 3}, ids(got))
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	listings := sampleListings()
	_ = Filter(listings, domain.FilterParams{}, &domain.SortOption{Field: domain.SortFieldPrice, Direction: domain.SortDesc}, nil)
	assert.Equal(t, []int{1, 2, 3}, ids(listings))
}

func TestFilter_MainAndSubType(t *testing.T) {
	listings := sampleListings()

	got := Filter(listings, domain.FilterParams{SelectedMainTypeID: intPtr(1)}, nil, nil)
	assert.Equal(t, []int{1, 2}, ids(got))

	got = Filter(listings, domain.FilterParams{SelectedMainTypeID: intPtr(1), SelectedSubTypeID: intPtr(20)}, nil, nil)
	assert.Empty(t, got)
}

func TestFilter_IsIdempotentAndMonotone(t *testing.T) {
	listings := sampleListings()
	params := domain.FilterParams{Filters: domain.Filters{"city": []any{"1"}}}

	once := Filter(listings, params, nil, nil)
	twice := Filter(once, params, nil, nil)
	assert.Equal(t, ids(once), ids(twice))

	stricter := domain.FilterParams{Filters: domain.Filters{
		"city":           []any{"1"},
		"property_rooms": map[string]any{"min": 2.0},
	}}
	narrowed := Filter(listings, stricter, nil, nil)
	for _, l := range narrowed {
		assert.Contains(t, ids(once), l.ID)
	}
	assert.Equal(t, []int{1}, ids(narrowed))
}

func TestFilter_BuiltInMultiSelect(t *testing.T) {
	listings := sampleListings()

	tests := []struct {
		name    string
		filters domain.Filters
		want    []int
	}{
		{"city list", domain.Filters{"city": []any{"2"}}, []int{2}},
		{"numeric entries", domain.Filters{"city": []any{1.0}}, []int{1, 3}},
		{"single value is a list of one", domain.Filters{"neighborhood": "12"}, []int{3}},
		{"empty entries are ignored", domain.Filters{"finalCity": []any{"", " "}}, []int{1, 2, 3}},
		{"final type", domain.Filters{"finalType": []string{"100", "200"}}, []int{1, 3}},
		{"unknown id excludes all", domain.Filters{"city": []any{"99"}}, []int{}},
		{"malformed shape is unconstrained", domain.Filters{"city": map[string]any{"x": 1}}, []int{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(listings, domain.FilterParams{Filters: tt.filters}, nil, nil)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilter_DynamicPropertyRange(t *testing.T) {
	listings := sampleListings()

	got := Filter(listings, domain.FilterParams{Filters: domain.Filters{
		"property_rooms": map[string]any{"min": "4", "max": ""},
	}}, nil, nil)
	// у объявления 3 свойства нет, непустой фильтр его отсекает
	assert.Equal(t, []int{2}, ids(got))
}

func TestFilter_DefinitionsOverrideEmbeddedMetadata(t *testing.T) {
	listings := []domain.Listing{
		{ID: 1, Price: 10, Properties: map[string]domain.PropertyValue{"code": prop(domain.DataTypeText, "A12")}},
		{ID: 2, Price: 10, Properties: map[string]domain.PropertyValue{"code": prop(domain.DataTypeText, "B1")}},
	}
	params := domain.FilterParams{Filters: domain.Filters{"property_code": "1"}}

	// TEXT из метаданных: поиск подстроки
	assert.Equal(t, []int{1, 2}, ids(Filter(listings, params, nil, nil)))

	defs := []domain.DynamicProperty{{PropertyKey: "code", DataType: domain.DataTypeSingleChoice}}
	assert.Empty(t, Filter(listings, params, nil, defs))
}

func TestFilter_MissingMetadataFallsBackToText(t *testing.T) {
	listings := []domain.Listing{
		{ID: 1, Price: 1, Properties: map[string]domain.PropertyValue{"note": {Value: "Sea View"}}},
	}
	got := Filter(listings, domain.FilterParams{Filters: domain.Filters{"property_note": "sea"}}, nil, nil)
	assert.Equal(t, []int{1}, ids(got))
}

func TestFilter_AppliesSort(t *testing.T) {
	got := Filter(sampleListings(), domain.FilterParams{}, &domain.SortOption{Field: domain.SortFieldPrice, Direction: domain.SortDesc}, nil)
	require.Len(t, got, 3)
	assert.Equal(t, []int{2, 3, 1}, ids(got))
}

func TestCount(t *testing.T) {
	assert.Equal(t, 2, Count(sampleListings(), domain.FilterParams{Filters: domain.Filters{"city": []any{"1"}}}, nil))
}

func TestSelectedFinalType(t *testing.T) {
	id, ok := SelectedFinalType(domain.Filters{domain.FilterKeyFinalType: []any{float64(7)}})
	assert.True(t, ok)
	assert.Equal(t, 7, id)

	id, ok = SelectedFinalType(domain.Filters{domain.FilterKeyFinalType: "12"})
	assert.True(t, ok)
	assert.Equal(t, 12, id)

	_, ok = SelectedFinalType(domain.Filters{domain.FilterKeyFinalType: []any{1, 2}})
	assert.False(t, ok)

	_, ok = SelectedFinalType(domain.Filters{})
	assert.False(t, ok)
}

func TestFilter_NumericIDForms(t *testing.T) {
	listings := []domain.Listing{
		{ID: 1, Price: 1, FinalTypeID: 3},
		{ID: 2, Price: 1, FinalTypeID: 30},
	}
	tests := []struct {
		name  string
		value any
		want  []int
	}{
		{"decimal string", []any{"3.0"}, []int{1}},
		{"leading zero", []any{"03"}, []int{1}},
		{"float entry", []any{30.0}, []int{2}},
		{"not a number", []any{"3x"}, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(listings, domain.FilterParams{Filters: domain.Filters{"finalType": tt.value}}, nil, nil)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilter_CombinedFiltersIntersect(t *testing.T) {
	listings := sampleListings()

	tests := []struct {
		name string
		a, b domain.Filters
	}{
		{"city and final type", domain.Filters{"city": []any{"1"}}, domain.Filters{"finalType": []any{"100", "101"}}},
		{"city and property", domain.Filters{"city": []any{"1", "2"}}, domain.Filters{"property_heating": "Central"}},
		{"disjoint", domain.Filters{"city": []any{"2"}}, domain.Filters{"neighborhood": []any{"11"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			both := domain.Filters{}
			for k, v := range tt.a {
				both[k] = v
			}
			for k, v := range tt.b {
				both[k] = v
			}

			onlyA := ids(Filter(listings, domain.FilterParams{Filters: tt.a}, nil, nil))
			onlyB := ids(Filter(listings, domain.FilterParams{Filters: tt.b}, nil, nil))
			want := []int{}
			for _, id := range onlyA {
				if slices.Contains(onlyB, id) {
					want = append(want, id)
				}
			}
			assert.Equal(t, want, ids(Filter(listings, domain.FilterParams{Filters: both}, nil, nil)))
		})
	}
}

func TestFilter_PriceRangeEdges(t *testing.T) {
	listings := []domain.Listing{
		{ID: 1, Price: 99},
		{ID: 2, Price: 100},
		{ID: 3, Price: 200},
		{ID: 4, Price: 201},
	}
	tests := []struct {
		name string
		rng  domain.PriceRange
		want []int
	}{
		{"bounds included", domain.PriceRange{Min: 100, Max: 200}, []int{2, 3}},
		{"point range", domain.PriceRange{Min: 100, Max: 100}, []int{2}},
		{"wide range", domain.PriceRange{Min: 99, Max: 201}, []int{1, 2, 3, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := tt.rng
			got := Filter(listings, domain.FilterParams{PriceRange: &rng}, nil, nil)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilter_PropertyRangeThroughFilter(t *testing.T) {
	area := func(id int, v any) domain.Listing {
		return domain.Listing{ID: id, Price: 1, Properties: map[string]domain.PropertyValue{
			"area": prop(domain.DataTypeNumber, v),
		}}
	}
	listings := []domain.Listing{area(1, 150.0), area(2, "99"), area(3, 200.0), area(4, "201")}

	tests := []struct {
		name  string
		value any
		want  []int
	}{
		{"closed range", map[string]any{"min": 100.0, "max": 200.0}, []int{1, 3}},
		{"string bounds", map[string]any{"min": "100", "max": "200"}, []int{1, 3}},
		{"only min", map[string]any{"min": 200.0}, []int{3, 4}},
		{"only max", map[string]any{"max": 150.0}, []int{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(listings, domain.FilterParams{Filters: domain.Filters{"property_area": tt.value}}, nil, nil)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilter_CityWithNewestFirst(t *testing.T) {
	listings := []domain.Listing{
		{ID: 1, Price: 10, CityID: 1, CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 2, Price: 10, CityID: 2, CreatedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
	}
	got := Filter(listings, domain.FilterParams{Filters: domain.Filters{"city": []any{"1"}}},
		&domain.SortOption{Field: domain.SortFieldCreatedAt, Direction: domain.SortDesc}, nil)
	assert.Equal(t, []int{1}, ids(got))

	got = Filter(listings, domain.FilterParams{}, &domain.SortOption{Field: domain.SortFieldCreatedAt, Direction: domain.SortDesc}, nil)
	assert.Equal(t, []int{2, 1}, ids(got))
}
