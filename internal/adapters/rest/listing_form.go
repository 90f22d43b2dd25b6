package rest

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"real-estate-marketplace/internal/core/domain"
)

const maxMultipartMemory = 32 << 20

// ListingDraftRequest - JSON-вариант формы объявления (без файлов).
type ListingDraftRequest struct {
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Price          float64        `json:"price"`
	MainCategoryID int            `json:"mainCategoryId"`
	SubCategoryID  int            `json:"subCategoryId"`
	FinalTypeID    int            `json:"finalTypeId"`
	CityID         int            `json:"cityId"`
	NeighborhoodID int            `json:"neighborhoodId"`
	FinalCityID    int            `json:"finalCityId"`
	Bedrooms       int            `json:"bedrooms"`
	Bathrooms      int            `json:"bathrooms"`
	BuildingArea   float64        `json:"buildingArea"`
	FloorNumber    int            `json:"floorNumber"`
	Latitude       *float64       `json:"latitude"`
	Longitude      *float64       `json:"longitude"`
	Properties     map[string]any `json:"properties"`
}

func (d ListingDraftRequest) toDomain() domain.ListingDraft {
	props := d.Properties
	if props == nil {
		props = map[string]any{}
	}
	return domain.ListingDraft{
		Title:          d.Title,
		Description:    d.Description,
		Price:          d.Price,
		MainCategoryID: d.MainCategoryID,
		SubCategoryID:  d.SubCategoryID,
		FinalTypeID:    d.FinalTypeID,
		CityID:         d.CityID,
		NeighborhoodID: d.NeighborhoodID,
		FinalCityID:    d.FinalCityID,
		Bedrooms:       d.Bedrooms,
		Bathrooms:      d.Bathrooms,
		BuildingArea:   d.BuildingArea,
		FloorNumber:    d.FloorNumber,
		Latitude:       d.Latitude,
		Longitude:      d.Longitude,
		Properties:     props,
	}
}

// parseListingDraft принимает multipart/form-data (с файлами) или application/json.
func parseListingDraft(w http.ResponseWriter, r *http.Request) (domain.ListingDraft, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		body, err := readBody(w, r)
		if err != nil {
			return domain.ListingDraft{}, fmt.Errorf("failed to read body: %w", err)
		}
		var req ListingDraftRequest
		if err := json.Unmarshal(body, &req); err != nil {
			return domain.ListingDraft{}, fmt.Errorf("invalid JSON body: %w", err)
		}
		return req.toDomain(), nil
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return domain.ListingDraft{}, fmt.Errorf("invalid multipart form: %w", err)
	}
	form := r.MultipartForm

	var req ListingDraftRequest
	var err error
	req.Title = formValue(form, "title")
	req.Description = formValue(form, "description")
	ints := map[string]*int{
		"mainCategoryId": &req.MainCategoryID,
		"subCategoryId":  &req.SubCategoryID,
		"finalTypeId":    &req.FinalTypeID,
		"cityId":         &req.CityID,
		"neighborhoodId": &req.NeighborhoodID,
		"finalCityId":    &req.FinalCityID,
		"bedrooms":       &req.Bedrooms,
		"bathrooms":      &req.Bathrooms,
		"floorNumber":    &req.FloorNumber,
	}
	for name, dst := range ints {
		if *dst, err = formInt(form, name); err != nil {
			return domain.ListingDraft{}, err
		}
	}
	if req.Price, err = formFloat(form, "price"); err != nil {
		return domain.ListingDraft{}, err
	}
	if req.BuildingArea, err = formFloat(form, "buildingArea"); err != nil {
		return domain.ListingDraft{}, err
	}
	if req.Latitude, err = formOptionalFloat(form, "latitude"); err != nil {
		return domain.ListingDraft{}, err
	}
	if req.Longitude, err = formOptionalFloat(form, "longitude"); err != nil {
		return domain.ListingDraft{}, err
	}
	if raw := formValue(form, "properties"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Properties); err != nil {
			return domain.ListingDraft{}, fmt.Errorf("field properties must be a JSON object: %w", err)
		}
	}

	draft := req.toDomain()
	if headers := form.File["coverImage"]; len(headers) > 0 {
		upload, err := readUpload("coverImage", headers[0])
		if err != nil {
			return domain.ListingDraft{}, err
		}
		draft.CoverImage = &upload
	}
	for _, fh := range form.File["files"] {
		upload, err := readUpload("files", fh)
		if err != nil {
			return domain.ListingDraft{}, err
		}
		draft.Files = append(draft.Files, upload)
	}
	return draft, nil
}

func formValue(form *multipart.Form, name string) string {
	if vals := form.Value[name]; len(vals) > 0 {
		return strings.TrimSpace(vals[0])
	}
	return ""
}

func formInt(form *multipart.Form, name string) (int, error) {
	raw := formValue(form, name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("field %s must be an integer", name)
	}
	return v, nil
}

func formFloat(form *multipart.Form, name string) (float64, error) {
	v, err := formOptionalFloat(form, name)
	if err != nil || v == nil {
		return 0, err
	}
	return *v, nil
}

func formOptionalFloat(form *multipart.Form, name string) (*float64, error) {
	raw := formValue(form, name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("field %s must be a number", name)
	}
	return &v, nil
}

func readUpload(field string, fh *multipart.FileHeader) (domain.Upload, error) {
	f, err := fh.Open()
	if err != nil {
		return domain.Upload{}, fmt.Errorf("failed to open uploaded file %s: %w", fh.Filename, err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return domain.Upload{}, fmt.Errorf("failed to read uploaded file %s: %w", fh.Filename, err)
	}
	return domain.Upload{
		FieldName:   field,
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Content:     content,
	}, nil
}
