package usecases_port

import (
	"context"

	"real-estate-marketplace/internal/core/domain"
	"real-estate-marketplace/internal/core/dynform"
)

type GetPropertySchemaUseCasePort interface {
	Execute(ctx context.Context, finalTypeID int) (*dynform.Schema, error)
}

type GetPropertyGroupsUseCasePort interface {
	Execute(ctx context.Context, finalTypeID int) ([]domain.PropertyGroupInfo, error)
}

type ValidateListingFormUseCasePort interface {
	// Execute возвращает сообщения об ошибках по ключам, пустая карта - форма валидна
	Execute(ctx context.Context, finalTypeID int, values map[string]any) (map[string][]string, error)
}
