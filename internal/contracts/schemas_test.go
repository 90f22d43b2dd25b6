package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRequest_Search(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"empty body", ``, false},
		{"full request", `{"selectedMainTypeId":1,"selectedSubTypeId":null,"priceRange":{"min":0,"max":5000},
			"filters":{"city":[1,2],"property_rooms":{"min":2},"property_pool":true,"property_view":["بحر"]},
			"sort":{"field":"price","direction":"desc"},"limit":20,"offset":40,"clusterPrecision":6}`, false},
		{"unknown filter key", `{"filters":{"color":"red"}}`, true},
		{"nested object in list", `{"filters":{"property_a":[{"x":1}]}}`, true},
		{"bad sort direction", `{"sort":{"field":"price","direction":"up"}}`, true},
		{"negative offset", `{"offset":-1}`, true},
		{"unknown top-level field", `{"page":2}`, true},
		{"not json", `{`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(SearchListingsRequest, 1, []byte(tt.body))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateRequest_FilterOptionsSharesDefinitions(t *testing.T) {
	assert.NoError(t, ValidateRequest(FilterOptionsRequest, 1, []byte(`{"filters":{"finalType":[3]}}`)))
	assert.Error(t, ValidateRequest(FilterOptionsRequest, 1, []byte(`{"sort":{"field":"price","direction":"asc"}}`)))
	assert.Error(t, ValidateRequest(FilterOptionsRequest, 1, []byte(`{"priceRange":{"min":"a","max":1}}`)))
}

func TestValidateRequest_UnknownSchema(t *testing.T) {
	assert.Error(t, ValidateRequest("Nope", 1, []byte(`{}`)))
}
