package domain

import "time"

// Listing - объявление о недвижимости (RealEstateData).
type Listing struct {
	ID             int
	Title          string
	Description    string
	Price          float64
	MainCategoryID int
	SubCategoryID  int
	FinalTypeID    int
	CityID         int
	NeighborhoodID int
	FinalCityID    int
	Bedrooms       int
	Bathrooms      int
	BuildingArea   float64
	FloorNumber    int
	Latitude       *float64
	Longitude      *float64
	CoverImage     string
	Files          []string
	Properties     map[string]PropertyValue
	CreatedAt      time.Time
}

// HasLocation - есть ли у объявления координаты для карты.
func (l Listing) HasLocation() bool {
	return l.Latitude != nil && l.Longitude != nil
}

// Upload - файл, который пересылается бэкенду в multipart-запросе.
type Upload struct {
	FieldName   string
	FileName    string
	ContentType string
	Content     []byte
}

// ListingDraft - данные формы создания/редактирования объявления.
type ListingDraft struct {
	Title          string
	Description    string
	Price          float64
	MainCategoryID int
	SubCategoryID  int
	FinalTypeID    int
	CityID         int
	NeighborhoodID int
	FinalCityID    int
	Bedrooms       int
	Bathrooms      int
	BuildingArea   float64
	FloorNumber    int
	Latitude       *float64
	Longitude      *float64
	// Properties - значения динамических свойств по propertyKey
	Properties map[string]any
	CoverImage *Upload
	Files      []Upload
}

// MapCluster - группа найденных объявлений в одной ячейке geohash.
type MapCluster struct {
	Geohash    string
	Count      int
	Latitude   float64
	Longitude  float64
	ListingIDs []int
}

// SearchResult - страница отфильтрованных объявлений.
type SearchResult struct {
	Listings []Listing
	Total    int
	Limit    int
	Offset   int
	Clusters []MapCluster
}
