package facet

import (
	"testing"
	"time"

	"real-estate-marketplace/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func TestSort_ByPrice(t *testing.T) {
	listings := sampleListings()

	asc := Sort(listings, domain.SortOption{Field: domain.SortFieldPrice, Direction: domain.SortAsc}, nil)
	assert.Equal(t, []int{1, 3, 2}, ids(asc))

	desc := Sort(listings, domain.SortOption{Field: domain.SortFieldPrice, Direction: domain.SortDesc}, nil)
	assert.Equal(t, []int{2, 3, 1}, ids(desc))
}

func TestSort_ByCreatedAt(t *testing.T) {
	got := Sort(sampleListings(), domain.SortOption{Field: domain.SortFieldCreatedAt, Direction: domain.SortDesc}, nil)
	assert.Equal(t, []int{2, 3, 1}, ids(got))
}

func TestSort_IsStable(t *testing.T) {
	listings := []domain.Listing{
		{ID: 1, Price: 100}, {ID: 2, Price: 50}, {ID: 3, Price: 100}, {ID: 4, Price: 100},
	}
	got := Sort(listings, domain.SortOption{Field: domain.SortFieldPrice, Direction: domain.SortAsc}, nil)
	assert.Equal(t, []int{2, 1, 3, 4}, ids(got))

	got = Sort(listings, domain.SortOption{Field: domain.SortFieldPrice, Direction: domain.SortDesc}, nil)
	assert.Equal(t, []int{1, 3, 4, 2}, ids(got))
}

func TestSort_NumberPropertyMissingCountsAsZero(t *testing.T) {
	got := Sort(sampleListings(), domain.SortOption{Field: "property_rooms", Direction: domain.SortAsc}, nil)
	assert.Equal(t, []int{3, 1, 2}, ids(got))
}

func TestSort_StringPropertyAscThenDescReverses(t *testing.T) {
	listings := []domain.Listing{
		{ID: 1, Properties: map[string]domain.PropertyValue{"name": prop(domain.DataTypeText, "ب")}},
		{ID: 2, Properties: map[string]domain.PropertyValue{"name": prop(domain.DataTypeText, "أ")}},
		{ID: 3, Properties: map[string]domain.PropertyValue{"name": prop(domain.DataTypeText, "ت")}},
	}

	asc := Sort(listings, domain.SortOption{Field: "property_name", Direction: domain.SortAsc}, nil)
	desc := Sort(listings, domain.SortOption{Field: "property_name", Direction: domain.SortDesc}, nil)

	assert.Equal(t, []int{2, 1, 3}, ids(asc))
	assert.Equal(t, []int{3, 1, 2}, ids(desc))
}

func TestSort_DateProperty(t *testing.T) {
	listings := []domain.Listing{
		{ID: 1, Properties: map[string]domain.PropertyValue{"built": prop(domain.DataTypeDate, "2020-01-01")}},
		{ID: 2, Properties: map[string]domain.PropertyValue{"built": prop(domain.DataTypeDate, "2010-06-01")}},
		{ID: 3},
	}
	got := Sort(listings, domain.SortOption{Field: "property_built", Direction: domain.SortAsc}, nil)
	assert.Equal(t, []int{3, 2, 1}, ids(got))
}

func TestSort_UnknownFieldKeepsOrder(t *testing.T) {
	listings := sampleListings()
	got := Sort(listings, domain.SortOption{Field: "title", Direction: domain.SortAsc}, nil)
	assert.Equal(t, ids(listings), ids(got))
}

func TestSort_ZeroCreatedAt(t *testing.T) {
	listings := []domain.Listing{
		{ID: 1, CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 2},
	}
	got := Sort(listings, domain.SortOption{Field: domain.SortFieldCreatedAt, Direction: domain.SortAsc}, nil)
	assert.Equal(t, []int{2, 1}, ids(got))
}
