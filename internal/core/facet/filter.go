package facet

import (
	"strconv"
	"strings"

	"real-estate-marketplace/internal/core/domain"
)

// Filter применяет все фильтры по очереди и, если задана сортировка, сортирует результат.
// Входной срез не изменяется.
func Filter(listings []domain.Listing, params domain.FilterParams, sortOpt *domain.SortOption, defs []domain.DynamicProperty) []domain.Listing {
	c := compile(params, defs)

	out := make([]domain.Listing, 0, len(listings))
	for _, l := range listings {
		if c.accepts(l) {
			out = append(out, l)
		}
	}

	if sortOpt != nil && sortOpt.Field != "" {
		out = Sort(out, *sortOpt, defs)
	}
	return out
}

// Count - число объявлений, прошедших фильтры.
func Count(listings []domain.Listing, params domain.FilterParams, defs []domain.DynamicProperty) int {
	c := compile(params, defs)
	n := 0
	for _, l := range listings {
		if c.accepts(l) {
			n++
		}
	}
	return n
}

type propertyFilter struct {
	key   string
	value any
}

// compiledFilter - параметры фильтрации, разобранные один раз на весь проход.
type compiledFilter struct {
	m             *matcher
	mainTypeID    int
	subTypeID     int
	price         domain.PriceRange
	finalTypes    []string
	cities        []string
	neighborhoods []string
	finalCities   []string
	properties    []propertyFilter
	defs          map[string]domain.DataType
}

func compile(params domain.FilterParams, defs []domain.DynamicProperty) *compiledFilter {
	c := &compiledFilter{
		m:     newMatcher(),
		price: domain.DefaultPriceRange,
		defs:  indexDefinitions(defs),
	}
	if params.SelectedMainTypeID != nil {
		c.mainTypeID = *params.SelectedMainTypeID
	}
	if params.SelectedSubTypeID != nil {
		c.subTypeID = *params.SelectedSubTypeID
	}
	if params.PriceRange != nil {
		c.price = *params.PriceRange
	}

	for key, value := range params.Filters {
		switch key {
		case domain.FilterKeyFinalType:
			c.finalTypes = normalizeIDs(value)
		case domain.FilterKeyCity:
			c.cities = normalizeIDs(value)
		case domain.FilterKeyNeighborhood:
			c.neighborhoods = normalizeIDs(value)
		case domain.FilterKeyFinalCity:
			c.finalCities = normalizeIDs(value)
		default:
			propKey, ok := strings.CutPrefix(key, domain.PropertyFilterPrefix)
			if !ok || propKey == "" || isEmptyFilter(value) {
				continue
			}
			c.properties = append(c.properties, propertyFilter{key: propKey, value: value})
		}
	}
	return c
}

func (c *compiledFilter) accepts(l domain.Listing) bool {
	if c.mainTypeID != 0 && l.MainCategoryID != c.mainTypeID {
		return false
	}
	if c.subTypeID != 0 && l.SubCategoryID != c.subTypeID {
		return false
	}
	if l.Price < c.price.Min || l.Price > c.price.Max {
		return false
	}
	if len(c.finalTypes) > 0 && !containsID(c.finalTypes, l.FinalTypeID) {
		return false
	}
	if len(c.cities) > 0 && !containsID(c.cities, l.CityID) {
		return false
	}
	if len(c.neighborhoods) > 0 && !containsID(c.neighborhoods, l.NeighborhoodID) {
		return false
	}
	if len(c.finalCities) > 0 && !containsID(c.finalCities, l.FinalCityID) {
		return false
	}

	for _, pf := range c.properties {
		var itemValue any
		if pv, ok := l.Properties[pf.key]; ok {
			itemValue = pv.Value
		}
		dt := resolveDataType(pf.key, l, c.defs)
		if !c.m.matches(itemValue, pf.value, dt) {
			return false
		}
	}
	return true
}

func indexDefinitions(defs []domain.DynamicProperty) map[string]domain.DataType {
	idx := make(map[string]domain.DataType, len(defs))
	for _, d := range defs {
		if d.PropertyKey == "" {
			continue
		}
		if _, seen := idx[d.PropertyKey]; !seen {
			idx[d.PropertyKey] = d.DataType
		}
	}
	return idx
}

// ResolveDataType: определение свойства, затем метаданные внутри объявления, иначе TEXT.
func ResolveDataType(key string, l domain.Listing, defs []domain.DynamicProperty) domain.DataType {
	return resolveDataType(key, l, indexDefinitions(defs))
}

func resolveDataType(key string, l domain.Listing, defs map[string]domain.DataType) domain.DataType {
	if dt, ok := defs[key]; ok && dt != "" {
		return dt
	}
	if pv, ok := l.Properties[key]; ok && pv.Property != nil && pv.Property.DataType != "" {
		return pv.Property.DataType
	}
	return domain.DataTypeText
}

// SelectedFinalType возвращает finalType, если в фильтрах выбран ровно один.
// Только в этом случае поиск подгружает определения свойств.
func SelectedFinalType(filters domain.Filters) (int, bool) {
	ids := normalizeIDs(filters[domain.FilterKeyFinalType])
	if len(ids) != 1 {
		return 0, false
	}
	id, err := strconv.Atoi(ids[0])
	if err != nil {
		return 0, false
	}
	return id, true
}
