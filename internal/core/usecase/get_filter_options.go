package usecase

import (
	"context"
	"fmt"

	"real-estate-marketplace/internal/contextkeys"
	"real-estate-marketplace/internal/core/domain"
	"real-estate-marketplace/internal/core/facet"
	"real-estate-marketplace/internal/core/port"
)

// GetFilterOptionsUseCase строит фасеты по объявлениям, прошедшим текущие фильтры;
// собственный фильтр фасета при расчете его значений не учитывается.
type GetFilterOptionsUseCase struct {
	listings port.ListingsPort
	schema   port.PropertySchemaPort
}

func NewGetFilterOptionsUseCase(listings port.ListingsPort, schema port.PropertySchemaPort) *GetFilterOptionsUseCase {
	return &GetFilterOptionsUseCase{listings: listings, schema: schema}
}

func (uc *GetFilterOptionsUseCase) Execute(ctx context.Context, params domain.FilterParams) (*domain.FilterOptions, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "GetFilterOptions"})
	ucLogger.Info("Use case started", nil)

	listings, err := uc.listings.ListListings(ctx)
	if err != nil {
		ucLogger.Error("Failed to fetch listings snapshot", err, nil)
		return nil, fmt.Errorf("failed to fetch listings: %w", err)
	}

	defs := loadDefinitions(ctx, uc.schema, params.Filters, ucLogger)
	options := facet.BuildFacetedOptions(listings, params, defs)

	ucLogger.Info("Use case finished successfully", port.Fields{
		"matched": options.MatchingCount,
		"facets":  len(options.Facets),
	})
	return &options, nil
}
