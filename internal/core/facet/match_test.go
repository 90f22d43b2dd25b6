package facet

import (
	"testing"

	"real-estate-marketplace/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name   string
		item   any
		filter any
		dt     domain.DataType
		want   bool
	}{
		{"nil filter", "x", nil, domain.DataTypeText, true},
		{"empty string filter", nil, "", domain.DataTypeText, true},
		{"empty list filter", nil, []any{}, domain.DataTypeSingleChoice, true},
		{"missing item fails list", nil, []any{"a"}, domain.DataTypeSingleChoice, false},
		{"missing item fails scalar", nil, "a", domain.DataTypeText, false},
		{"missing item fails range", nil, map[string]any{"min": 1.0}, domain.DataTypeNumber, false},

		{"single choice list case-insensitive", "Central", []any{"central", "none"}, domain.DataTypeSingleChoice, true},
		{"single choice list miss", "gas", []any{"central"}, domain.DataTypeSingleChoice, false},
		{"multiple choice array item", []any{"Pool", "Garden"}, []any{"garden"}, domain.DataTypeMultipleChoice, true},
		{"multiple choice array item miss", []any{"Pool"}, []any{"garage"}, domain.DataTypeMultipleChoice, false},
		{"multiple choice scalar item", "Pool", []any{"pool"}, domain.DataTypeMultipleChoice, true},
		{"number list numeric equality", "3", []any{"3.0"}, domain.DataTypeNumber, true},
		{"number list NaN never equal", "abc", []any{"abc"}, domain.DataTypeNumber, false},

		{"range inside", "150", map[string]any{"min": 100.0, "max": 200.0}, domain.DataTypeNumber, true},
		{"range inclusive lower", 100.0, map[string]any{"min": "100"}, domain.DataTypeNumber, true},
		{"range above max", 201.0, map[string]any{"max": 200.0}, domain.DataTypeNumber, false},
		{"range NaN item", "n/a", map[string]any{"min": 1.0}, domain.DataTypeNumber, false},
		{"range ignored for text", "abc", map[string]any{"min": 1.0}, domain.DataTypeText, true},
		{"range without bounds", "abc", map[string]any{"min": "", "max": nil}, domain.DataTypeNumber, true},

		{"boolean true", true, true, domain.DataTypeBoolean, true},
		{"boolean false item", false, true, domain.DataTypeBoolean, false},
		{"boolean truthy string", "yes", true, domain.DataTypeBoolean, true},
		{"boolean empty string is false", "", false, domain.DataTypeBoolean, true},
		{"boolean ignored for non boolean", "x", true, domain.DataTypeText, true},

		{"number scalar", "42", 42.0, domain.DataTypeNumber, true},
		{"number scalar mismatch", "41", "42", domain.DataTypeNumber, false},
		{"text substring", "Sea View Apartment", "view", domain.DataTypeText, true},
		{"text substring miss", "Garden", "view", domain.DataTypeText, false},
		{"date same instant", "2024-05-01T00:00:00Z", "2024-05-01", domain.DataTypeDate, true},
		{"date different", "2024-05-02", "2024-05-01", domain.DataTypeDate, false},
		{"date unparsable", "soon", "soon", domain.DataTypeDate, false},
		{"single choice exact not substring", "Central heating", "central", domain.DataTypeSingleChoice, false},
		{"single choice exact", "CENTRAL", "central", domain.DataTypeSingleChoice, true},
		{"arabic text", "شقة مفروشة", "مفروشة", domain.DataTypeText, true},

		{"unknown filter shape", "x", struct{}{}, domain.DataTypeText, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.item, tt.filter, tt.dt))
		})
	}
}

func TestToNumber(t *testing.T) {
	n, ok := toNumber("12.5 m2")
	assert.True(t, ok)
	assert.Equal(t, 12.5, n)

	_, ok = toNumber("m2")
	assert.False(t, ok)

	_, ok = toNumber(true)
	assert.False(t, ok)

	n, ok = toNumber([]any{"7", "8"})
	assert.True(t, ok)
	assert.Equal(t, 7.0, n)
}
