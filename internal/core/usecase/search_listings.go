package usecase

import (
	"context"
	"fmt"

	"real-estate-marketplace/internal/contextkeys"
	"real-estate-marketplace/internal/core/domain"
	"real-estate-marketplace/internal/core/facet"
	"real-estate-marketplace/internal/core/port"
)

type SearchListingsUseCase struct {
	listings port.ListingsPort
	schema   port.PropertySchemaPort
}

func NewSearchListingsUseCase(listings port.ListingsPort, schema port.PropertySchemaPort) *SearchListingsUseCase {
	return &SearchListingsUseCase{listings: listings, schema: schema}
}

func (uc *SearchListingsUseCase) Execute(ctx context.Context, query domain.SearchQuery) (*domain.SearchResult, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "SearchListings",
		"limit":    query.Limit,
		"offset":   query.Offset,
	})
	ucLogger.Info("Use case started", nil)

	// Шаг 1: снимок объявлений с бэкенда. Фильтрация целиком на нашей стороне.
	listings, err := uc.listings.ListListings(ctx)
	if err != nil {
		ucLogger.Error("Failed to fetch listings snapshot", err, nil)
		return nil, fmt.Errorf("failed to fetch listings: %w", err)
	}

	defs := loadDefinitions(ctx, uc.schema, query.Params.Filters, ucLogger)

	// Шаг 2: фильтры и сортировка
	filtered := facet.Filter(listings, query.Params, query.Sort, defs)

	result := &domain.SearchResult{
		Listings: facet.Paginate(filtered, query.Limit, query.Offset),
		Total:    len(filtered),
		Limit:    query.Limit,
		Offset:   query.Offset,
		Clusters: facet.Clusters(filtered, query.ClusterPrecision),
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"snapshot_size": len(listings),
		"matched":       result.Total,
		"returned":      len(result.Listings),
		"clusters":      len(result.Clusters),
	})
	return result, nil
}
