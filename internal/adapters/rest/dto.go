package rest

import (
	"time"

	"real-estate-marketplace/internal/core/domain"
	"real-estate-marketplace/internal/core/dynform"
	"real-estate-marketplace/internal/core/facet"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 200
)

// --- запросы ---

type PriceRangeDTO struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type SortDTO struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
	Label     string `json:"label,omitempty"`
}

// FilterParamsRequest - тело POST /filters/options и основа запроса поиска.
type FilterParamsRequest struct {
	SelectedMainTypeID *int           `json:"selectedMainTypeId"`
	SelectedSubTypeID  *int           `json:"selectedSubTypeId"`
	PriceRange         *PriceRangeDTO `json:"priceRange"`
	Filters            map[string]any `json:"filters"`
}

type SearchListingsRequest struct {
	FilterParamsRequest
	Sort             *SortDTO `json:"sort"`
	Limit            int      `json:"limit"`
	Offset           int      `json:"offset"`
	ClusterPrecision *uint    `json:"clusterPrecision"`
}

func (r FilterParamsRequest) toDomain() domain.FilterParams {
	params := domain.FilterParams{
		SelectedMainTypeID: r.SelectedMainTypeID,
		SelectedSubTypeID:  r.SelectedSubTypeID,
		Filters:            domain.Filters(r.Filters),
	}
	if r.PriceRange != nil {
		params.PriceRange = &domain.PriceRange{Min: r.PriceRange.Min, Max: r.PriceRange.Max}
	}
	return params
}

func (r SearchListingsRequest) toDomain() domain.SearchQuery {
	q := domain.SearchQuery{
		Params:           r.FilterParamsRequest.toDomain(),
		Limit:            r.Limit,
		Offset:           r.Offset,
		ClusterPrecision: facet.DefaultClusterPrecision,
	}
	if q.Limit <= 0 {
		q.Limit = defaultSearchLimit
	}
	if q.Limit > maxSearchLimit {
		q.Limit = maxSearchLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	if r.ClusterPrecision != nil {
		q.ClusterPrecision = *r.ClusterPrecision
	}
	if r.Sort != nil && r.Sort.Field != "" {
		q.Sort = &domain.SortOption{
			Field:     r.Sort.Field,
			Direction: domain.SortDirection(r.Sort.Direction),
			Label:     r.Sort.Label,
		}
	}
	return q
}

// ValidateFormRequest - тело POST /properties/final-type/{id}/validate
type ValidateFormRequest struct {
	Values map[string]any `json:"values"`
}

// --- ответы ---

type ValidationErrorResponse struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields"`
}

type PropertyMetaResponse struct {
	DataType      string   `json:"dataType"`
	PropertyName  string   `json:"propertyName"`
	Unit          string   `json:"unit,omitempty"`
	AllowedValues []string `json:"allowedValues,omitempty"`
}

type PropertyValueResponse struct {
	Value    any                   `json:"value"`
	Property *PropertyMetaResponse `json:"property,omitempty"`
}

type ListingResponse struct {
	ID             int                              `json:"id"`
	Title          string                           `json:"title"`
	Description    string                           `json:"description"`
	Price          float64                          `json:"price"`
	MainCategoryID int                              `json:"mainCategoryId"`
	SubCategoryID  int                              `json:"subCategoryId"`
	FinalTypeID    int                              `json:"finalTypeId"`
	CityID         int                              `json:"cityId"`
	NeighborhoodID int                              `json:"neighborhoodId"`
	FinalCityID    int                              `json:"finalCityId"`
	Bedrooms       int                              `json:"bedrooms"`
	Bathrooms      int                              `json:"bathrooms"`
	BuildingArea   float64                          `json:"buildingArea"`
	FloorNumber    int                              `json:"floorNumber"`
	Latitude       *float64                         `json:"latitude,omitempty"`
	Longitude      *float64                         `json:"longitude,omitempty"`
	CoverImage     string                           `json:"coverImage"`
	Files          []string                         `json:"files"`
	Properties     map[string]PropertyValueResponse `json:"properties"`
	CreatedAt      *time.Time                       `json:"createdAt,omitempty"`
}

func toListingResponse(l domain.Listing) ListingResponse {
	resp := ListingResponse{
		ID:             l.ID,
		Title:          l.Title,
		Description:    l.Description,
		Price:          l.Price,
		MainCategoryID: l.MainCategoryID,
		SubCategoryID:  l.SubCategoryID,
		FinalTypeID:    l.FinalTypeID,
		CityID:         l.CityID,
		NeighborhoodID: l.NeighborhoodID,
		FinalCityID:    l.FinalCityID,
		Bedrooms:       l.Bedrooms,
		Bathrooms:      l.Bathrooms,
		BuildingArea:   l.BuildingArea,
		FloorNumber:    l.FloorNumber,
		Latitude:       l.Latitude,
		Longitude:      l.Longitude,
		CoverImage:     l.CoverImage,
		Files:          l.Files,
		Properties:     make(map[string]PropertyValueResponse, len(l.Properties)),
	}
	if resp.Files == nil {
		resp.Files = []string{}
	}
	if !l.CreatedAt.IsZero() {
		created := l.CreatedAt
		resp.CreatedAt = &created
	}
	for key, pv := range l.Properties {
		item := PropertyValueResponse{Value: pv.Value}
		if pv.Property != nil {
			item.Property = &PropertyMetaResponse{
				DataType:      string(pv.Property.DataType),
				PropertyName:  pv.Property.PropertyName,
				Unit:          pv.Property.Unit,
				AllowedValues: pv.Property.AllowedValues,
			}
		}
		resp.Properties[key] = item
	}
	return resp
}

func toListingResponses(listings []domain.Listing) []ListingResponse {
	out := make([]ListingResponse, len(listings))
	for i, l := range listings {
		out[i] = toListingResponse(l)
	}
	return out
}

type MapClusterResponse struct {
	Geohash    string  `json:"geohash"`
	Count      int     `json:"count"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	ListingIDs []int   `json:"listingIds"`
}

type SearchListingsResponse struct {
	Data     []ListingResponse    `json:"data"`
	Total    int                  `json:"total"`
	Limit    int                  `json:"limit"`
	Offset   int                  `json:"offset"`
	Clusters []MapClusterResponse `json:"clusters"`
}

func toSearchResponse(res *domain.SearchResult) SearchListingsResponse {
	resp := SearchListingsResponse{
		Data:     toListingResponses(res.Listings),
		Total:    res.Total,
		Limit:    res.Limit,
		Offset:   res.Offset,
		Clusters: make([]MapClusterResponse, len(res.Clusters)),
	}
	for i, c := range res.Clusters {
		resp.Clusters[i] = MapClusterResponse{
			Geohash:    c.Geohash,
			Count:      c.Count,
			Latitude:   c.Latitude,
			Longitude:  c.Longitude,
			ListingIDs: c.ListingIDs,
		}
	}
	return resp
}

type FilterOptionResponse struct {
	Key      string   `json:"key"`
	Label    string   `json:"label"`
	DataType string   `json:"dataType"`
	Unit     string   `json:"unit,omitempty"`
	Options  []string `json:"options,omitempty"`
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
}

type FilterOptionsResponse struct {
	PriceMin      *float64               `json:"priceMin"`
	PriceMax      *float64               `json:"priceMax"`
	MatchingCount int                    `json:"matchingCount"`
	Facets        []FilterOptionResponse `json:"facets"`
}

func toFilterOptionsResponse(opts *domain.FilterOptions) FilterOptionsResponse {
	resp := FilterOptionsResponse{
		PriceMin:      opts.PriceMin,
		PriceMax:      opts.PriceMax,
		MatchingCount: opts.MatchingCount,
		Facets:        make([]FilterOptionResponse, len(opts.Facets)),
	}
	for i, f := range opts.Facets {
		resp.Facets[i] = FilterOptionResponse{
			Key:      f.Key,
			Label:    f.Label,
			DataType: string(f.DataType),
			Unit:     f.Unit,
			Options:  f.Options,
			Min:      f.Min,
			Max:      f.Max,
		}
	}
	return resp
}

type DynamicPropertyResponse struct {
	ID            int      `json:"id"`
	FinalTypeID   int      `json:"finalTypeId"`
	PropertyKey   string   `json:"propertyKey"`
	PropertyName  string   `json:"propertyName"`
	DataType      string   `json:"dataType"`
	IsRequired    bool     `json:"isRequired"`
	AllowedValues []string `json:"allowedValues"`
	GroupName     string   `json:"groupName"`
	DisplayOrder  int      `json:"displayOrder"`
	IsFilter      bool     `json:"isFilter"`
	Unit          string   `json:"unit,omitempty"`
	Placeholder   string   `json:"placeholder,omitempty"`
}

func toPropertyResponses(props []domain.DynamicProperty) []DynamicPropertyResponse {
	out := make([]DynamicPropertyResponse, len(props))
	for i, p := range props {
		allowed := p.AllowedValues
		if allowed == nil {
			allowed = []string{}
		}
		out[i] = DynamicPropertyResponse{
			ID:            p.ID,
			FinalTypeID:   p.FinalTypeID,
			PropertyKey:   p.PropertyKey,
			PropertyName:  p.PropertyName,
			DataType:      string(p.DataType),
			IsRequired:    p.IsRequired,
			AllowedValues: allowed,
			GroupName:     p.Group(),
			DisplayOrder:  p.DisplayOrder,
			IsFilter:      p.IsFilter,
			Unit:          p.Unit,
			Placeholder:   p.Placeholder,
		}
	}
	return out
}

type PropertyGroupResponse struct {
	Name       string                    `json:"name"`
	Properties []DynamicPropertyResponse `json:"properties"`
}

func toGroupResponses(groups []dynform.PropertyGroup) []PropertyGroupResponse {
	out := make([]PropertyGroupResponse, len(groups))
	for i, g := range groups {
		out[i] = PropertyGroupResponse{Name: g.Name, Properties: toPropertyResponses(g.Properties)}
	}
	return out
}

type PropertySchemaResponse struct {
	FinalTypeID int                       `json:"finalTypeId"`
	Properties  []DynamicPropertyResponse `json:"properties"`
	Groups      []PropertyGroupResponse   `json:"groups"`
	Defaults    map[string]any            `json:"defaults"`
}

type PropertyGroupInfoResponse struct {
	GroupName     string `json:"groupName"`
	PropertyCount int    `json:"propertyCount"`
}

type ValidateFormResponse struct {
	Valid  bool                `json:"valid"`
	Errors map[string][]string `json:"errors"`
}

type CityResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type NeighborhoodResponse struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	CityID int    `json:"cityId"`
}

type FinalCityResponse struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	NeighborhoodID int    `json:"neighborhoodId"`
}

func toCityResponses(items []domain.City) []CityResponse {
	out := make([]CityResponse, len(items))
	for i, c := range items {
		out[i] = CityResponse{ID: c.ID, Name: c.Name}
	}
	return out
}

func toNeighborhoodResponses(items []domain.Neighborhood) []NeighborhoodResponse {
	out := make([]NeighborhoodResponse, len(items))
	for i, n := range items {
		out[i] = NeighborhoodResponse{ID: n.ID, Name: n.Name, CityID: n.CityID}
	}
	return out
}

func toFinalCityResponses(items []domain.FinalCity) []FinalCityResponse {
	out := make([]FinalCityResponse, len(items))
	for i, f := range items {
		out[i] = FinalCityResponse{ID: f.ID, Name: f.Name, NeighborhoodID: f.NeighborhoodID}
	}
	return out
}

type SubTypeResponse struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	MainID int    `json:"mainId"`
}

type MainTypeResponse struct {
	ID       int               `json:"id"`
	Name     string            `json:"name"`
	Icon     string            `json:"icon,omitempty"`
	SubTypes []SubTypeResponse `json:"subTypes"`
}

type FinalTypeResponse struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	SubID int    `json:"subId"`
}

func toMainTypeResponses(items []domain.MainType) []MainTypeResponse {
	out := make([]MainTypeResponse, len(items))
	for i, m := range items {
		subs := make([]SubTypeResponse, len(m.SubTypes))
		for j, s := range m.SubTypes {
			subs[j] = SubTypeResponse{ID: s.ID, Name: s.Name, MainID: s.MainID}
		}
		out[i] = MainTypeResponse{ID: m.ID, Name: m.Name, Icon: m.Icon, SubTypes: subs}
	}
	return out
}

func toFinalTypeResponses(items []domain.FinalType) []FinalTypeResponse {
	out := make([]FinalTypeResponse, len(items))
	for i, f := range items {
		out[i] = FinalTypeResponse{ID: f.ID, Name: f.Name, SubID: f.SubID}
	}
	return out
}

type ToggleFavoriteResponse struct {
	ListingID  int  `json:"listingId"`
	IsFavorite bool `json:"isFavorite"`
}

// FavoritesEventResponse - полезная нагрузка SSE-события favorites
type FavoritesEventResponse struct {
	Action    string `json:"action"`
	ListingID int    `json:"listingId,omitempty"`
	IDs       []int  `json:"ids"`
}

func toFavoritesEventResponse(e domain.FavoritesEvent) FavoritesEventResponse {
	ids := e.IDs
	if ids == nil {
		ids = []int{}
	}
	return FavoritesEventResponse{Action: string(e.Action), ListingID: e.ListingID, IDs: ids}
}
