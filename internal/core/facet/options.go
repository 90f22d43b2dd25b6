package facet

import (
	"slices"

	"real-estate-marketplace/internal/core/domain"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// BuildFilterOptions строит фасеты по набору объявлений: диапазон цены и
// значения/диапазоны для свойств с isFilter. Для выбора без allowedValues
// берутся значения, встречающиеся в объявлениях.
func BuildFilterOptions(listings []domain.Listing, defs []domain.DynamicProperty) domain.FilterOptions {
	opts := summarize(listings)
	col := collate.New(language.Arabic)
	for _, def := range defs {
		if facet, ok := buildFacet(listings, def, col); ok {
			opts.Facets = append(opts.Facets, facet)
		}
	}
	return opts
}

// BuildFacetedOptions - как BuildFilterOptions, но каждый фасет считается по объявлениям,
// отфильтрованным без его собственного property_<key>. Иначе выбор одного значения
// single choice оставил бы в фасете только это значение.
func BuildFacetedOptions(listings []domain.Listing, params domain.FilterParams, defs []domain.DynamicProperty) domain.FilterOptions {
	opts := summarize(Filter(listings, params, nil, defs))
	col := collate.New(language.Arabic)
	for _, def := range defs {
		own := domain.PropertyFilterPrefix + def.PropertyKey
		source := Filter(listings, withoutFilter(params, own), nil, defs)
		if facet, ok := buildFacet(source, def, col); ok {
			opts.Facets = append(opts.Facets, facet)
		}
	}
	return opts
}

func withoutFilter(params domain.FilterParams, key string) domain.FilterParams {
	if _, ok := params.Filters[key]; !ok {
		return params
	}
	filters := make(domain.Filters, len(params.Filters))
	for k, v := range params.Filters {
		if k != key {
			filters[k] = v
		}
	}
	params.Filters = filters
	return params
}

func summarize(listings []domain.Listing) domain.FilterOptions {
	opts := domain.FilterOptions{MatchingCount: len(listings)}
	for _, l := range listings {
		opts.PriceMin = minPtr(opts.PriceMin, l.Price)
		opts.PriceMax = maxPtr(opts.PriceMax, l.Price)
	}
	return opts
}

func buildFacet(listings []domain.Listing, def domain.DynamicProperty, col *collate.Collator) (domain.FilterOption, bool) {
	if !def.IsFilter || def.PropertyKey == "" {
		return domain.FilterOption{}, false
	}

	facet := domain.FilterOption{
		Key:      domain.PropertyFilterPrefix + def.PropertyKey,
		Label:    def.PropertyName,
		DataType: def.DataType,
		Unit:     def.Unit,
	}

	switch def.DataType {
	case domain.DataTypeSingleChoice, domain.DataTypeMultipleChoice:
		if len(def.AllowedValues) > 0 {
			facet.Options = slices.Clone(def.AllowedValues)
		} else {
			facet.Options = observedValues(listings, def.PropertyKey)
			col.SortStrings(facet.Options)
		}
	case domain.DataTypeNumber:
		for _, l := range listings {
			pv, ok := l.Properties[def.PropertyKey]
			if !ok {
				continue
			}
			if n, ok := toNumber(pv.Value); ok {
				facet.Min = minPtr(facet.Min, n)
				facet.Max = maxPtr(facet.Max, n)
			}
		}
	case domain.DataTypeBoolean:
		facet.Options = []string{"true", "false"}
	default:
		// TEXT, DATE, FILE фасетов не имеют
		return domain.FilterOption{}, false
	}
	return facet, true
}

func observedValues(listings []domain.Listing, key string) []string {
	seen := make(map[string]struct{})
	values := []string{}
	add := func(v any) {
		s := toString(v)
		if s == "" {
			return
		}
		if _, dup := seen[s]; dup {
			return
		}
		seen[s] = struct{}{}
		values = append(values, s)
	}

	for _, l := range listings {
		pv, ok := l.Properties[key]
		if !ok {
			continue
		}
		if list, ok := asList(pv.Value); ok {
			for _, e := range list {
				add(e)
			}
			continue
		}
		add(pv.Value)
	}
	return values
}

func minPtr(cur *float64, v float64) *float64 {
	if cur == nil || v < *cur {
		return &v
	}
	return cur
}

func maxPtr(cur *float64, v float64) *float64 {
	if cur == nil || v > *cur {
		return &v
	}
	return cur
}
