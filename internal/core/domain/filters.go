package domain

// Встроенные ключи фильтров со списками ID.
const (
	FilterKeyCity         = "city"
	FilterKeyNeighborhood = "neighborhood"
	FilterKeyFinalCity    = "finalCity"
	FilterKeyFinalType    = "finalType"

	// PropertyFilterPrefix - префикс ключей фильтров по динамическим свойствам.
	PropertyFilterPrefix = "property_"
)

// Filters (ExtendedFilters) - значения как после json.Unmarshal:
// []any, map[string]any{"min","max"}, bool, string, float64.
type Filters map[string]any

// PriceRange - включительный диапазон цены.
type PriceRange struct {
	Min float64
	Max float64
}

// DefaultPriceRange - диапазон по умолчанию [0, 1 000 000].
var DefaultPriceRange = PriceRange{Min: 0, Max: 1_000_000}

type FilterParams struct {
	// nil или 0 означает "не выбрано"
	SelectedMainTypeID *int
	SelectedSubTypeID  *int
	// nil означает DefaultPriceRange
	PriceRange *PriceRange
	Filters    Filters
}

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

const (
	SortFieldPrice     = "price"
	SortFieldCreatedAt = "createdAt"
)

type SortOption struct {
	Field     string
	Direction SortDirection
	Label     string
}

// SearchQuery - полный запрос поиска с пагинацией.
type SearchQuery struct {
	Params FilterParams
	Sort   *SortOption
	Limit  int
	Offset int
	// ClusterPrecision - точность geohash для кластеров карты, 0 отключает кластеры
	ClusterPrecision uint
}

// FilterOption - доступные значения одного фасета.
type FilterOption struct {
	Key      string
	Label    string
	DataType DataType
	Unit     string
	Options  []string
	Min      *float64
	Max      *float64
}

// FilterOptions - фасеты, построенные по текущему набору объявлений.
type FilterOptions struct {
	PriceMin      *float64
	PriceMax      *float64
	MatchingCount int
	Facets        []FilterOption
}
