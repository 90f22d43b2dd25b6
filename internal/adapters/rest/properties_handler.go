package rest

import (
	"encoding/json"
	"net/http"

	"real-estate-marketplace/internal/contextkeys"
	"real-estate-marketplace/internal/core/port"
	"real-estate-marketplace/internal/core/port/usecases_port"
)

type PropertiesHandler struct {
	schemaUC   usecases_port.GetPropertySchemaUseCasePort
	groupsUC   usecases_port.GetPropertyGroupsUseCasePort
	validateUC usecases_port.ValidateListingFormUseCasePort
}

func NewPropertiesHandler(
	schemaUC usecases_port.GetPropertySchemaUseCasePort,
	groupsUC usecases_port.GetPropertyGroupsUseCasePort,
	validateUC usecases_port.ValidateListingFormUseCasePort,
) *PropertiesHandler {
	return &PropertiesHandler{schemaUC: schemaUC, groupsUC: groupsUC, validateUC: validateUC}
}

// GetSchema обрабатывает GET /api/v1/properties/final-type/{finalTypeId}
func (h *PropertiesHandler) GetSchema(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetPropertySchema"})

	finalTypeID, err := intURLParam(r, "finalTypeId")
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	schema, err := h.schemaUC.Execute(r.Context(), finalTypeID)
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to load property schema")
		return
	}

	RespondWithJSON(w, http.StatusOK, PropertySchemaResponse{
		FinalTypeID: schema.FinalTypeID,
		Properties:  toPropertyResponses(schema.Properties),
		Groups:      toGroupResponses(schema.Groups),
		Defaults:    schema.Defaults,
	})
}

// GetGroups обрабатывает GET /api/v1/properties/groups/{finalTypeId}
func (h *PropertiesHandler) GetGroups(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetPropertyGroups"})

	finalTypeID, err := intURLParam(r, "finalTypeId")
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	groups, err := h.groupsUC.Execute(r.Context(), finalTypeID)
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to load property groups")
		return
	}

	resp := make([]PropertyGroupInfoResponse, len(groups))
	for i, g := range groups {
		resp[i] = PropertyGroupInfoResponse{GroupName: g.Name, PropertyCount: g.PropertyCount}
	}
	RespondWithJSON(w, http.StatusOK, resp)
}

// Validate обрабатывает POST /api/v1/properties/final-type/{finalTypeId}/validate
func (h *PropertiesHandler) Validate(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ValidateListingForm"})

	finalTypeID, err := intURLParam(r, "finalTypeId")
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req ValidateFormRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	errs, err := h.validateUC.Execute(r.Context(), finalTypeID, req.Values)
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to validate form")
		return
	}
	RespondWithJSON(w, http.StatusOK, ValidateFormResponse{Valid: len(errs) == 0, Errors: errs})
}
