package backend_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"

	"real-estate-marketplace/internal/contextkeys"
	"real-estate-marketplace/internal/core/domain"
	"real-estate-marketplace/internal/core/port"
)

// ListListings - снимок всех объявлений; фасетная фильтрация выполняется на нашей стороне.
func (c *Client) ListListings(ctx context.Context) ([]domain.Listing, error) {
	var dtos []listingDTO
	if err := c.getJSON(ctx, "ListListings", "/api/realestate", false, &dtos); err != nil {
		return nil, err
	}

	listings := make([]domain.Listing, len(dtos))
	for i, d := range dtos {
		listings[i] = d.toDomain()
	}
	return listings, nil
}

func (c *Client) GetListing(ctx context.Context, id int) (*domain.Listing, error) {
	var dto listingDTO
	if err := c.getJSON(ctx, "GetListing", fmt.Sprintf("/api/realestate/%d", id), false, &dto); err != nil {
		return nil, err
	}
	l := dto.toDomain()
	return &l, nil
}

func (c *Client) CreateListing(ctx context.Context, draft domain.ListingDraft) (*domain.Listing, error) {
	return c.sendListing(ctx, "CreateListing", http.MethodPost, "/api/realestate", draft)
}

func (c *Client) UpdateListing(ctx context.Context, id int, draft domain.ListingDraft) (*domain.Listing, error) {
	return c.sendListing(ctx, "UpdateListing", http.MethodPut, fmt.Sprintf("/api/realestate/%d", id), draft)
}

func (c *Client) sendListing(ctx context.Context, method, httpMethod, path string, draft domain.ListingDraft) (*domain.Listing, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "BackendClient",
		"method":    method,
	})

	body, contentType, err := encodeListingForm(draft)
	if err != nil {
		logger.Error("Failed to encode multipart form", err, nil)
		return nil, err
	}

	data, err := c.fetch(ctx, logger, httpMethod, path, body, contentType)
	if err != nil {
		return nil, err
	}

	var dto listingDTO
	if err := decodePayload(data, &dto); err != nil {
		logger.Error("Failed to decode response from backend", err, nil)
		return nil, err
	}
	l := dto.toDomain()
	logger.Info("Listing saved on backend", port.Fields{"listing_id": l.ID})
	return &l, nil
}

type formField struct {
	name  string
	value string
}

// encodeListingForm собирает multipart: поля объявления, properties как JSON,
// coverImage и files как файлы.
func encodeListingForm(draft domain.ListingDraft) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	fields := []formField{
		{"title", draft.Title},
		{"description", draft.Description},
		{"price", strconv.FormatFloat(draft.Price, 'f', -1, 64)},
		{"mainCategoryId", strconv.Itoa(draft.MainCategoryID)},
		{"subCategoryId", strconv.Itoa(draft.SubCategoryID)},
		{"finalTypeId", strconv.Itoa(draft.FinalTypeID)},
		{"cityId", strconv.Itoa(draft.CityID)},
		{"neighborhoodId", strconv.Itoa(draft.NeighborhoodID)},
		{"finalCityId", strconv.Itoa(draft.FinalCityID)},
		{"bedrooms", strconv.Itoa(draft.Bedrooms)},
		{"bathrooms", strconv.Itoa(draft.Bathrooms)},
		{"buildingArea", strconv.FormatFloat(draft.BuildingArea, 'f', -1, 64)},
		{"floorNumber", strconv.Itoa(draft.FloorNumber)},
	}
	if draft.Latitude != nil && draft.Longitude != nil {
		fields = append(fields,
			formField{"latitude", strconv.FormatFloat(*draft.Latitude, 'f', -1, 64)},
			formField{"longitude", strconv.FormatFloat(*draft.Longitude, 'f', -1, 64)},
		)
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", fmt.Errorf("failed to write form field %s: %w", f.name, err)
		}
	}

	if len(draft.Properties) > 0 {
		props, err := json.Marshal(draft.Properties)
		if err != nil {
			return nil, "", fmt.Errorf("failed to marshal properties: %w", err)
		}
		if err := w.WriteField("properties", string(props)); err != nil {
			return nil, "", fmt.Errorf("failed to write properties field: %w", err)
		}
	}

	if draft.CoverImage != nil {
		if err := writeFile(w, "coverImage", *draft.CoverImage); err != nil {
			return nil, "", err
		}
	}
	for _, f := range draft.Files {
		if err := writeFile(w, "files", f); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}

func writeFile(w *multipart.Writer, field string, u domain.Upload) error {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, field, escapeQuotes(u.FileName)))
	contentType := u.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("failed to create form file %s: %w", field, err)
	}
	if _, err := part.Write(u.Content); err != nil {
		return fmt.Errorf("failed to write form file %s: %w", field, err)
	}
	return nil
}

func escapeQuotes(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '"' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
