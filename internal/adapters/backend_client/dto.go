package backend_client

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"real-estate-marketplace/internal/core/domain"
)

// Бэкенд непоследователен в типах: числа иногда приходят строками,
// allowedValues - то массивом, то строкой через запятую. Типы ниже это сглаживают.

type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			// нечисловая строка считается отсутствующим значением
			*f = 0
			return nil
		}
		*f = flexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

type flexInt int

func (i *flexInt) UnmarshalJSON(b []byte) error {
	var f flexFloat
	if err := f.UnmarshalJSON(b); err != nil {
		return err
	}
	*i = flexInt(int(f))
	return nil
}

type flexStrings []string

func (s *flexStrings) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*s = nil
		return nil
	}
	if b[0] == '[' {
		var raw []any
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		out := make([]string, 0, len(raw))
		for _, v := range raw {
			switch x := v.(type) {
			case string:
				out = append(out, x)
			case float64:
				out = append(out, strconv.FormatFloat(x, 'f', -1, 64))
			case bool:
				out = append(out, strconv.FormatBool(x))
			}
		}
		*s = out
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	// строка может быть JSON-массивом или списком через запятую
	if strings.HasPrefix(strings.TrimSpace(str), "[") {
		var nested flexStrings
		if err := nested.UnmarshalJSON([]byte(str)); err == nil {
			*s = nested
			return nil
		}
	}
	var out []string
	for _, part := range strings.Split(str, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	*s = out
	return nil
}

type propertyMetaDTO struct {
	DataType      string      `json:"dataType"`
	PropertyName  string      `json:"propertyName"`
	Unit          string      `json:"unit"`
	AllowedValues flexStrings `json:"allowedValues"`
}

type propertyValueDTO struct {
	Value    any              `json:"value"`
	Property *propertyMetaDTO `json:"property"`
}

type listingDTO struct {
	ID             flexInt                     `json:"id"`
	Title          string                      `json:"title"`
	Description    string                      `json:"description"`
	Price          flexFloat                   `json:"price"`
	MainCategoryID flexInt                     `json:"mainCategoryId"`
	SubCategoryID  flexInt                     `json:"subCategoryId"`
	FinalTypeID    flexInt                     `json:"finalTypeId"`
	CityID         flexInt                     `json:"cityId"`
	NeighborhoodID flexInt                     `json:"neighborhoodId"`
	FinalCityID    flexInt                     `json:"finalCityId"`
	Bedrooms       flexInt                     `json:"bedrooms"`
	Bathrooms      flexInt                     `json:"bathrooms"`
	BuildingArea   flexFloat                   `json:"buildingArea"`
	FloorNumber    flexInt                     `json:"floorNumber"`
	Latitude       *flexFloat                  `json:"latitude"`
	Longitude      *flexFloat                  `json:"longitude"`
	CoverImage     string                      `json:"coverImage"`
	Files          []string                    `json:"files"`
	Properties     map[string]propertyValueDTO `json:"properties"`
	CreatedAt      string                      `json:"createdAt"`
}

func (d listingDTO) toDomain() domain.Listing {
	l := domain.Listing{
		ID:             int(d.ID),
		Title:          d.Title,
		Description:    d.Description,
		Price:          float64(d.Price),
		MainCategoryID: int(d.MainCategoryID),
		SubCategoryID:  int(d.SubCategoryID),
		FinalTypeID:    int(d.FinalTypeID),
		CityID:         int(d.CityID),
		NeighborhoodID: int(d.NeighborhoodID),
		FinalCityID:    int(d.FinalCityID),
		Bedrooms:       int(d.Bedrooms),
		Bathrooms:      int(d.Bathrooms),
		BuildingArea:   float64(d.BuildingArea),
		FloorNumber:    int(d.FloorNumber),
		CoverImage:     d.CoverImage,
		Files:          d.Files,
		Properties:     make(map[string]domain.PropertyValue, len(d.Properties)),
		CreatedAt:      parseTime(d.CreatedAt),
	}
	if d.Latitude != nil && d.Longitude != nil {
		lat, lng := float64(*d.Latitude), float64(*d.Longitude)
		l.Latitude, l.Longitude = &lat, &lng
	}
	for key, pv := range d.Properties {
		value := domain.PropertyValue{Value: pv.Value}
		if pv.Property != nil {
			value.Property = &domain.PropertyMeta{
				DataType:      domain.ParseDataType(pv.Property.DataType),
				PropertyName:  pv.Property.PropertyName,
				Unit:          pv.Property.Unit,
				AllowedValues: pv.Property.AllowedValues,
			}
		}
		l.Properties[key] = value
	}
	return l
}

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"}

func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

type dynamicPropertyDTO struct {
	ID            flexInt     `json:"id"`
	FinalTypeID   flexInt     `json:"finalTypeId"`
	PropertyKey   string      `json:"propertyKey"`
	PropertyName  string      `json:"propertyName"`
	DataType      string      `json:"dataType"`
	IsRequired    bool        `json:"isRequired"`
	AllowedValues flexStrings `json:"allowedValues"`
	GroupName     string      `json:"groupName"`
	DisplayOrder  flexInt     `json:"displayOrder"`
	IsFilter      bool        `json:"isFilter"`
	Unit          string      `json:"unit"`
	Placeholder   string      `json:"placeholder"`
}

func (d dynamicPropertyDTO) toDomain() domain.DynamicProperty {
	return domain.DynamicProperty{
		ID:            int(d.ID),
		FinalTypeID:   int(d.FinalTypeID),
		PropertyKey:   d.PropertyKey,
		PropertyName:  d.PropertyName,
		DataType:      domain.ParseDataType(d.DataType),
		IsRequired:    d.IsRequired,
		AllowedValues: d.AllowedValues,
		GroupName:     d.GroupName,
		DisplayOrder:  int(d.DisplayOrder),
		IsFilter:      d.IsFilter,
		Unit:          d.Unit,
		Placeholder:   d.Placeholder,
	}
}

// propertyGroupDTO - результат groupBy бэкенда: {groupName, _count: {groupName}}
type propertyGroupDTO struct {
	GroupName string `json:"groupName"`
	Count     struct {
		GroupName flexInt `json:"groupName"`
	} `json:"_count"`
}

type cityDTO struct {
	ID   flexInt `json:"id"`
	Name string  `json:"name"`
}

type neighborhoodDTO struct {
	ID     flexInt `json:"id"`
	Name   string  `json:"name"`
	CityID flexInt `json:"cityId"`
}

type finalCityDTO struct {
	ID             flexInt `json:"id"`
	Name           string  `json:"name"`
	NeighborhoodID flexInt `json:"neighborhoodId"`
}

type subTypeDTO struct {
	ID     flexInt `json:"id"`
	Name   string  `json:"name"`
	MainID flexInt `json:"mainId"`
}

type mainTypeDTO struct {
	ID       flexInt      `json:"id"`
	Name     string       `json:"name"`
	Icon     string       `json:"icon"`
	SubTypes []subTypeDTO `json:"subTypes"`
}

type finalTypeDTO struct {
	ID    flexInt `json:"id"`
	Name  string  `json:"name"`
	SubID flexInt `json:"subId"`
}
