package domain

import "strings"

// DataType - тип значения динамического свойства. Набор закрыт.
type DataType string

const (
	DataTypeText           DataType = "TEXT"
	DataTypeNumber         DataType = "NUMBER"
	DataTypeBoolean        DataType = "BOOLEAN"
	DataTypeSingleChoice   DataType = "SINGLE_CHOICE"
	DataTypeMultipleChoice DataType = "MULTIPLE_CHOICE"
	DataTypeDate           DataType = "DATE"
	DataTypeFile           DataType = "FILE"
)

// ParseDataType нормализует строку с бэкенда. Неизвестные значения считаются TEXT.
func ParseDataType(s string) DataType {
	switch dt := DataType(strings.ToUpper(strings.TrimSpace(s))); dt {
	case DataTypeText, DataTypeNumber, DataTypeBoolean, DataTypeSingleChoice,
		DataTypeMultipleChoice, DataTypeDate, DataTypeFile:
		return dt
	default:
		return DataTypeText
	}
}

// IsChoice - SINGLE_CHOICE или MULTIPLE_CHOICE.
func (dt DataType) IsChoice() bool {
	return dt == DataTypeSingleChoice || dt == DataTypeMultipleChoice
}

// DefaultGroupName - группа для свойств без groupName.
const DefaultGroupName = "عام"

// DynamicProperty - определение свойства для конкретного finalType.
type DynamicProperty struct {
	ID            int
	FinalTypeID   int
	PropertyKey   string
	PropertyName  string
	DataType      DataType
	IsRequired    bool
	AllowedValues []string
	GroupName     string
	DisplayOrder  int
	IsFilter      bool
	Unit          string
	Placeholder   string
}

// Group возвращает имя группы с учетом группы по умолчанию.
func (p DynamicProperty) Group() string {
	if strings.TrimSpace(p.GroupName) == "" {
		return DefaultGroupName
	}
	return p.GroupName
}

// PropertyGroupInfo - ответ /api/properties/groups/{id}.
type PropertyGroupInfo struct {
	Name          string
	PropertyCount int
}

// PropertyMeta - метаданные, которые бэкенд встраивает в значение свойства объявления.
type PropertyMeta struct {
	DataType      DataType
	PropertyName  string
	Unit          string
	AllowedValues []string
}

// PropertyValue - значение динамического свойства внутри объявления.
// Value хранит то, что пришло в JSON: string, float64, bool, []any или nil.
type PropertyValue struct {
	Value    any
	Property *PropertyMeta
}
