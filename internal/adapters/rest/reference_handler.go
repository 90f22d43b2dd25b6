package rest

import (
	"net/http"

	"real-estate-marketplace/internal/contextkeys"
	"real-estate-marketplace/internal/core/port"
	"real-estate-marketplace/internal/core/port/usecases_port"
)

// ReferenceHandler отдает справочники категорий и локаций.
type ReferenceHandler struct {
	locationsUC usecases_port.GetLocationsUseCasePort
	taxonomyUC  usecases_port.GetTaxonomyUseCasePort
}

func NewReferenceHandler(locationsUC usecases_port.GetLocationsUseCasePort, taxonomyUC usecases_port.GetTaxonomyUseCasePort) *ReferenceHandler {
	return &ReferenceHandler{locationsUC: locationsUC, taxonomyUC: taxonomyUC}
}

func (h *ReferenceHandler) logger(r *http.Request, name string) port.LoggerPort {
	return contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": name})
}

func (h *ReferenceHandler) GetCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.locationsUC.Cities(r.Context())
	if err != nil {
		writeUseCaseError(w, h.logger(r, "GetCities"), err, "Failed to load cities")
		return
	}
	RespondWithJSON(w, http.StatusOK, toCityResponses(cities))
}

func (h *ReferenceHandler) GetNeighborhoods(w http.ResponseWriter, r *http.Request) {
	cityID, err := intURLParam(r, "cityId")
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	items, err := h.locationsUC.Neighborhoods(r.Context(), cityID)
	if err != nil {
		writeUseCaseError(w, h.logger(r, "GetNeighborhoods"), err, "Failed to load neighborhoods")
		return
	}
	RespondWithJSON(w, http.StatusOK, toNeighborhoodResponses(items))
}

func (h *ReferenceHandler) GetFinalCities(w http.ResponseWriter, r *http.Request) {
	neighborhoodID, err := intURLParam(r, "neighborhoodId")
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	items, err := h.locationsUC.FinalCities(r.Context(), neighborhoodID)
	if err != nil {
		writeUseCaseError(w, h.logger(r, "GetFinalCities"), err, "Failed to load final cities")
		return
	}
	RespondWithJSON(w, http.StatusOK, toFinalCityResponses(items))
}

func (h *ReferenceHandler) GetMainTypes(w http.ResponseWriter, r *http.Request) {
	items, err := h.taxonomyUC.MainTypes(r.Context())
	if err != nil {
		writeUseCaseError(w, h.logger(r, "GetMainTypes"), err, "Failed to load categories")
		return
	}
	RespondWithJSON(w, http.StatusOK, toMainTypeResponses(items))
}

func (h *ReferenceHandler) GetFinalTypes(w http.ResponseWriter, r *http.Request) {
	subTypeID, err := intURLParam(r, "subTypeId")
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	items, err := h.taxonomyUC.FinalTypes(r.Context(), subTypeID)
	if err != nil {
		writeUseCaseError(w, h.logger(r, "GetFinalTypes"), err, "Failed to load final types")
		return
	}
	RespondWithJSON(w, http.StatusOK, toFinalTypeResponses(items))
}
