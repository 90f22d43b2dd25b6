package usecase

import (
	"context"

	"real-estate-marketplace/internal/core/domain"
	"real-estate-marketplace/internal/core/facet"
	"real-estate-marketplace/internal/core/port"
)

// loadDefinitions подгружает определения свойств, когда выбран ровно один finalType.
// Ошибка не фатальна: без определений тип берется из метаданных объявления.
func loadDefinitions(ctx context.Context, schema port.PropertySchemaPort, filters domain.Filters, logger port.LoggerPort) []domain.DynamicProperty {
	finalTypeID, ok := facet.SelectedFinalType(filters)
	if !ok {
		return nil
	}
	defs, err := schema.GetPropertiesByFinalType(ctx, finalTypeID)
	if err != nil {
		logger.Warn("Failed to load property definitions, falling back to listing metadata", port.Fields{
			"final_type_id": finalTypeID,
			"error":         err.Error(),
		})
		return nil
	}
	return defs
}
