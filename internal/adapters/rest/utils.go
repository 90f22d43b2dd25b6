package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"real-estate-marketplace/internal/core/domain"
	"real-estate-marketplace/internal/core/port"

	"github.com/go-chi/chi/v5"
)

const maxJSONBodyBytes = 1 << 20

// WriteJSONError отправляет ошибку в формате {"error": "..."}
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// writeValidationErrors - 422 с сообщениями по полям формы.
func writeValidationErrors(w http.ResponseWriter, fields map[string][]string) {
	RespondWithJSON(w, http.StatusUnprocessableEntity, ValidationErrorResponse{
		Error:  domain.ErrValidationFailed.Error(),
		Fields: fields,
	})
}

// writeUseCaseError переводит ошибку use case в HTTP-статус.
func writeUseCaseError(w http.ResponseWriter, logger port.LoggerPort, err error, fallbackMsg string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeValidationErrors(w, verr.Fields)
	case errors.Is(err, domain.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, "Resource not found")
	case errors.Is(err, domain.ErrInvalidCategoryPath), errors.Is(err, domain.ErrInvalidLocationPath):
		WriteJSONError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error(fallbackMsg, err, nil)
		WriteJSONError(w, http.StatusBadGateway, fallbackMsg)
	}
}

func intURLParam(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return id, nil
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBodyBytes))
}
