package rest

import (
	"encoding/json"
	"net/http"

	"real-estate-marketplace/internal/contextkeys"
	"real-estate-marketplace/internal/contracts"
	"real-estate-marketplace/internal/core/port"
	"real-estate-marketplace/internal/core/port/usecases_port"
)

type ListingsHandler struct {
	searchUC  usecases_port.SearchListingsUseCasePort
	optionsUC usecases_port.GetFilterOptionsUseCasePort
	getUC     usecases_port.GetListingUseCasePort
	saveUC    usecases_port.SaveListingUseCasePort
}

func NewListingsHandler(
	searchUC usecases_port.SearchListingsUseCasePort,
	optionsUC usecases_port.GetFilterOptionsUseCasePort,
	getUC usecases_port.GetListingUseCasePort,
	saveUC usecases_port.SaveListingUseCasePort,
) *ListingsHandler {
	return &ListingsHandler{
		searchUC:  searchUC,
		optionsUC: optionsUC,
		getUC:     getUC,
		saveUC:    saveUC,
	}
}

// decodeContract читает тело, проверяет его по JSON-схеме и раскладывает в dst.
func decodeContract(w http.ResponseWriter, r *http.Request, schemaName string, dst any) bool {
	body, err := readBody(w, r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Failed to read request body")
		return false
	}
	if err := contracts.ValidateRequest(schemaName, 1, body); err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return false
	}
	if len(body) == 0 {
		return true
	}
	if err := json.Unmarshal(body, dst); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}

// Search обрабатывает POST /api/v1/listings/search
func (h *ListingsHandler) Search(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SearchListings"})

	var req SearchListingsRequest
	if !decodeContract(w, r, contracts.SearchListingsRequest, &req) {
		return
	}

	result, err := h.searchUC.Execute(r.Context(), req.toDomain())
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to search listings")
		return
	}
	RespondWithJSON(w, http.StatusOK, toSearchResponse(result))
}

// FilterOptions обрабатывает POST /api/v1/filters/options
func (h *ListingsHandler) FilterOptions(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "FilterOptions"})

	var req FilterParamsRequest
	if !decodeContract(w, r, contracts.FilterOptionsRequest, &req) {
		return
	}

	opts, err := h.optionsUC.Execute(r.Context(), req.toDomain())
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to build filter options")
		return
	}
	RespondWithJSON(w, http.StatusOK, toFilterOptionsResponse(opts))
}

// GetByID обрабатывает GET /api/v1/listings/{id}
func (h *ListingsHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetListing"})

	id, err := intURLParam(r, "id")
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	listing, err := h.getUC.Execute(r.Context(), id)
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to retrieve listing")
		return
	}
	RespondWithJSON(w, http.StatusOK, toListingResponse(*listing))
}

// Create обрабатывает POST /api/v1/listings
func (h *ListingsHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, nil)
}

// Update обрабатывает PUT /api/v1/listings/{id}
func (h *ListingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := intURLParam(r, "id")
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.save(w, r, &id)
}

func (h *ListingsHandler) save(w http.ResponseWriter, r *http.Request, id *int) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SaveListing"})

	draft, err := parseListingDraft(w, r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	saved, err := h.saveUC.Execute(r.Context(), id, draft)
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to save listing")
		return
	}

	status := http.StatusOK
	if id == nil {
		status = http.StatusCreated
	}
	RespondWithJSON(w, status, toListingResponse(*saved))
}
