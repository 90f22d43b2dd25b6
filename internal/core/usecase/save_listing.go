package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"real-estate-marketplace/internal/contextkeys"
	"real-estate-marketplace/internal/core/domain"
	"real-estate-marketplace/internal/core/dynform"
	"real-estate-marketplace/internal/core/port"
)

const titleRequiredMessage = "العنوان مطلوب"

// SaveListingUseCase проверяет категорию, локацию и динамические свойства
// и только потом отправляет форму бэкенду.
type SaveListingUseCase struct {
	listings  port.ListingsPort
	taxonomy  port.TaxonomyPort
	locations port.LocationSourcePort
	schema    port.PropertySchemaPort
}

func NewSaveListingUseCase(
	listings port.ListingsPort,
	taxonomy port.TaxonomyPort,
	locations port.LocationSourcePort,
	schema port.PropertySchemaPort,
) *SaveListingUseCase {
	return &SaveListingUseCase{
		listings:  listings,
		taxonomy:  taxonomy,
		locations: locations,
		schema:    schema,
	}
}

func (uc *SaveListingUseCase) Execute(ctx context.Context, id *int, draft domain.ListingDraft) (*domain.Listing, error) {
	fields := port.Fields{"use_case": "SaveListing", "final_type_id": draft.FinalTypeID}
	if id != nil {
		fields["listing_id"] = *id
	}
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(fields)
	ucLogger.Info("Use case started", nil)

	// Шаг 1: цепочка категорий main → sub → final
	mainTypes, err := uc.taxonomy.GetMainTypes(ctx)
	if err != nil {
		ucLogger.Error("Failed to load main types", err, nil)
		return nil, fmt.Errorf("failed to load main types: %w", err)
	}
	finalTypes, err := uc.taxonomy.GetFinalTypes(ctx, draft.SubCategoryID)
	if err != nil {
		ucLogger.Error("Failed to load final types", err, nil)
		return nil, fmt.Errorf("failed to load final types: %w", err)
	}
	if _, err := domain.ResolveCategoryPath(mainTypes, finalTypes, draft.MainCategoryID, draft.SubCategoryID, draft.FinalTypeID); err != nil {
		ucLogger.Warn("Category path rejected", port.Fields{"error": err.Error()})
		return nil, err
	}

	// Шаг 2: цепочка локаций city → neighborhood → finalCity
	if err := uc.checkLocation(ctx, draft); err != nil {
		ucLogger.Warn("Location path rejected", port.Fields{"error": err.Error()})
		return nil, err
	}

	// Шаг 3: динамические свойства
	props, err := uc.schema.GetPropertiesByFinalType(ctx, draft.FinalTypeID)
	if err != nil {
		ucLogger.Error("Failed to load property definitions", err, nil)
		return nil, fmt.Errorf("failed to load property definitions: %w", err)
	}
	errs := dynform.ValidateForm(props, draft.Properties)
	if strings.TrimSpace(draft.Title) == "" {
		errs["title"] = []string{titleRequiredMessage}
	}
	if len(errs) > 0 {
		ucLogger.Info("Listing form rejected", port.Fields{"invalid_fields": len(errs)})
		return nil, &domain.ValidationError{Fields: errs}
	}

	var saved *domain.Listing
	if id == nil {
		saved, err = uc.listings.CreateListing(ctx, draft)
	} else {
		saved, err = uc.listings.UpdateListing(ctx, *id, draft)
	}
	if err != nil {
		ucLogger.Error("Backend rejected listing", err, nil)
		return nil, fmt.Errorf("failed to save listing: %w", err)
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"saved_id": saved.ID})
	return saved, nil
}

// checkLocation - нулевой ID уровня означает "не выбрано", но ниже пустого уровня выбора быть не может.
func (uc *SaveListingUseCase) checkLocation(ctx context.Context, draft domain.ListingDraft) error {
	if draft.CityID == 0 {
		if draft.NeighborhoodID != 0 || draft.FinalCityID != 0 {
			return fmt.Errorf("%w: neighborhood selected without city", domain.ErrInvalidLocationPath)
		}
		return nil
	}
	if draft.NeighborhoodID == 0 {
		if draft.FinalCityID != 0 {
			return fmt.Errorf("%w: final city selected without neighborhood", domain.ErrInvalidLocationPath)
		}
		return nil
	}

	neighborhoods, err := uc.locations.GetNeighborhoods(ctx, draft.CityID)
	if err != nil {
		return fmt.Errorf("failed to load neighborhoods: %w", err)
	}
	if !slices.ContainsFunc(neighborhoods, func(n domain.Neighborhood) bool { return n.ID == draft.NeighborhoodID }) {
		return fmt.Errorf("%w: neighborhood %d does not belong to city %d", domain.ErrInvalidLocationPath, draft.NeighborhoodID, draft.CityID)
	}

	if draft.FinalCityID == 0 {
		return nil
	}
	finalCities, err := uc.locations.GetFinalCities(ctx, draft.NeighborhoodID)
	if err != nil {
		return fmt.Errorf("failed to load final cities: %w", err)
	}
	if !slices.ContainsFunc(finalCities, func(f domain.FinalCity) bool { return f.ID == draft.FinalCityID }) {
		return fmt.Errorf("%w: final city %d does not belong to neighborhood %d", domain.ErrInvalidLocationPath, draft.FinalCityID, draft.NeighborhoodID)
	}
	return nil
}
