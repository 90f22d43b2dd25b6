package usecase

import (
	"context"
	"fmt"

	"real-estate-marketplace/internal/contextkeys"
	"real-estate-marketplace/internal/core/domain"
	"real-estate-marketplace/internal/core/dynform"
	"real-estate-marketplace/internal/core/port"
)

type GetPropertySchemaUseCase struct {
	schema port.PropertySchemaPort
}

func NewGetPropertySchemaUseCase(schema port.PropertySchemaPort) *GetPropertySchemaUseCase {
	return &GetPropertySchemaUseCase{schema: schema}
}

// Execute отдает определения, сгруппированные для формы, вместе с начальными значениями.
func (uc *GetPropertySchemaUseCase) Execute(ctx context.Context, finalTypeID int) (*dynform.Schema, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":      "GetPropertySchema",
		"final_type_id": finalTypeID,
	})

	props, err := uc.schema.GetPropertiesByFinalType(ctx, finalTypeID)
	if err != nil {
		ucLogger.Error("Failed to load property definitions", err, nil)
		return nil, fmt.Errorf("failed to load property definitions: %w", err)
	}

	schema := dynform.BuildSchema(finalTypeID, props)
	ucLogger.Debug("Property schema built", port.Fields{"properties": len(props), "groups": len(schema.Groups)})
	return &schema, nil
}

type GetPropertyGroupsUseCase struct {
	schema port.PropertySchemaPort
}

func NewGetPropertyGroupsUseCase(schema port.PropertySchemaPort) *GetPropertyGroupsUseCase {
	return &GetPropertyGroupsUseCase{schema: schema}
}

func (uc *GetPropertyGroupsUseCase) Execute(ctx context.Context, finalTypeID int) ([]domain.PropertyGroupInfo, error) {
	groups, err := uc.schema.GetPropertyGroups(ctx, finalTypeID)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to load property groups", err, port.Fields{
			"use_case":      "GetPropertyGroups",
			"final_type_id": finalTypeID,
		})
		return nil, fmt.Errorf("failed to load property groups: %w", err)
	}
	if groups == nil {
		groups = []domain.PropertyGroupInfo{}
	}
	return groups, nil
}

type ValidateListingFormUseCase struct {
	schema port.PropertySchemaPort
}

func NewValidateListingFormUseCase(schema port.PropertySchemaPort) *ValidateListingFormUseCase {
	return &ValidateListingFormUseCase{schema: schema}
}

func (uc *ValidateListingFormUseCase) Execute(ctx context.Context, finalTypeID int, values map[string]any) (map[string][]string, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":      "ValidateListingForm",
		"final_type_id": finalTypeID,
	})

	props, err := uc.schema.GetPropertiesByFinalType(ctx, finalTypeID)
	if err != nil {
		ucLogger.Error("Failed to load property definitions", err, nil)
		return nil, fmt.Errorf("failed to load property definitions: %w", err)
	}

	errs := dynform.ValidateForm(props, values)
	ucLogger.Debug("Form validated", port.Fields{"invalid_fields": len(errs)})
	return errs, nil
}
