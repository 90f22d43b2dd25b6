package dynform

import (
	"slices"

	"real-estate-marketplace/internal/core/domain"
)

// PropertyGroup - свойства одной группы формы в порядке отображения.
type PropertyGroup struct {
	Name       string
	Properties []domain.DynamicProperty
}

// GroupProperties группирует по groupName (пустое имя попадает в группу по умолчанию).
// Группы идут в порядке первого появления, внутри группы - по displayOrder.
func GroupProperties(props []domain.DynamicProperty) []PropertyGroup {
	index := make(map[string]int)
	var groups []PropertyGroup

	for _, p := range props {
		name := p.Group()
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, PropertyGroup{Name: name})
		}
		groups[i].Properties = append(groups[i].Properties, p)
	}

	for i := range groups {
		slices.SortStableFunc(groups[i].Properties, func(a, b domain.DynamicProperty) int {
			return a.DisplayOrder - b.DisplayOrder
		})
	}
	return groups
}

// DefaultValue - начальное значение поля формы для типа свойства.
func DefaultValue(dt domain.DataType) any {
	switch dt {
	case domain.DataTypeBoolean:
		return false
	case domain.DataTypeMultipleChoice:
		return []string{}
	case domain.DataTypeFile:
		return nil
	default:
		// NUMBER тоже начинается с пустой строки: поле ввода еще не заполнено
		return ""
	}
}

// DefaultValues строит начальные значения всех полей формы.
func DefaultValues(props []domain.DynamicProperty) map[string]any {
	values := make(map[string]any, len(props))
	for _, p := range props {
		values[p.PropertyKey] = DefaultValue(p.DataType)
	}
	return values
}

// FilterableProperties - свойства, по которым строятся фасеты поиска.
func FilterableProperties(props []domain.DynamicProperty) []domain.DynamicProperty {
	var out []domain.DynamicProperty
	for _, p := range props {
		if p.IsFilter {
			out = append(out, p)
		}
	}
	return out
}

// Schema - все, что нужно клиенту для построения формы одного finalType.
type Schema struct {
	FinalTypeID int
	Properties  []domain.DynamicProperty
	Groups      []PropertyGroup
	Defaults    map[string]any
}

func BuildSchema(finalTypeID int, props []domain.DynamicProperty) Schema {
	if props == nil {
		props = []domain.DynamicProperty{}
	}
	return Schema{
		FinalTypeID: finalTypeID,
		Properties:  props,
		Groups:      GroupProperties(props),
		Defaults:    DefaultValues(props),
	}
}
