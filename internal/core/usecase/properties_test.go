package usecase

import (
	"context"
	"errors"
	"testing"

	"real-estate-marketplace/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetPropertySchema(t *testing.T) {
	schema := new(mockSchema)
	schema.On("GetPropertiesByFinalType", mock.Anything, 3).Return([]domain.DynamicProperty{
		{PropertyKey: "pool", DataType: domain.DataTypeBoolean, GroupName: "مرافق", DisplayOrder: 2},
		{PropertyKey: "rooms", DataType: domain.DataTypeNumber, DisplayOrder: 1},
		{PropertyKey: "view", DataType: domain.DataTypeMultipleChoice, GroupName: "مرافق", DisplayOrder: 1},
	}, nil)

	result, err := NewGetPropertySchemaUseCase(schema).Execute(context.Background(), 3)
	require.NoError(t, err)

	require.Len(t, result.Groups, 2)
	assert.Equal(t, "مرافق", result.Groups[0].Name)
	assert.Equal(t, "view", result.Groups[0].Properties[0].PropertyKey)
	assert.Equal(t, domain.DefaultGroupName, result.Groups[1].Name)
	assert.Equal(t, false, result.Defaults["pool"])
	assert.Equal(t, "", result.Defaults["rooms"])
	assert.Equal(t, []string{}, result.Defaults["view"])
}

func TestGetPropertyGroups_EmptyIsNotNil(t *testing.T) {
	schema := new(mockSchema)
	schema.On("GetPropertyGroups", mock.Anything, 4).Return([]domain.PropertyGroupInfo(nil), nil)

	groups, err := NewGetPropertyGroupsUseCase(schema).Execute(context.Background(), 4)
	require.NoError(t, err)
	assert.NotNil(t, groups)
}

func TestValidateListingForm(t *testing.T) {
	schema := new(mockSchema)
	schema.On("GetPropertiesByFinalType", mock.Anything, 3).Return(roomsDefinition(), nil)
	schema.On("GetPropertiesByFinalType", mock.Anything, 5).Return([]domain.DynamicProperty(nil), errors.New("down"))

	uc := NewValidateListingFormUseCase(schema)

	errs, err := uc.Execute(context.Background(), 3, map[string]any{"rooms": ""})
	require.NoError(t, err)
	assert.Contains(t, errs, "rooms")

	errs, err = uc.Execute(context.Background(), 3, map[string]any{"rooms": "4"})
	require.NoError(t, err)
	assert.Empty(t, errs)

	_, err = uc.Execute(context.Background(), 5, nil)
	assert.Error(t, err)
}
