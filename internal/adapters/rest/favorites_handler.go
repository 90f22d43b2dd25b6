package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"real-estate-marketplace/internal/contextkeys"
	"real-estate-marketplace/internal/core/port"
	"real-estate-marketplace/internal/core/port/usecases_port"
)

const sseKeepAliveInterval = 15 * time.Second

type FavoritesHandler struct {
	toggleUC       usecases_port.ToggleFavoriteUseCasePort
	getIDsUC       usecases_port.GetFavoriteIDsUseCasePort
	getListingsUC  usecases_port.GetFavoriteListingsUseCasePort
	clearUC        usecases_port.ClearFavoritesUseCasePort
	subscriptions  usecases_port.FavoritesSubscriptionPort
	keepAliveEvery time.Duration
}

func NewFavoritesHandler(
	toggleUC usecases_port.ToggleFavoriteUseCasePort,
	getIDsUC usecases_port.GetFavoriteIDsUseCasePort,
	getListingsUC usecases_port.GetFavoriteListingsUseCasePort,
	clearUC usecases_port.ClearFavoritesUseCasePort,
	subscriptions usecases_port.FavoritesSubscriptionPort,
) *FavoritesHandler {
	return &FavoritesHandler{
		toggleUC:       toggleUC,
		getIDsUC:       getIDsUC,
		getListingsUC:  getListingsUC,
		clearUC:        clearUC,
		subscriptions:  subscriptions,
		keepAliveEvery: sseKeepAliveInterval,
	}
}

// GetListings обрабатывает GET /api/v1/favorites
func (h *FavoritesHandler) GetListings(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetFavoriteListings"})
	userID, ok := contextkeys.UserIDFromContext(r.Context())
	if !ok {
		logger.Error("Invalid or missing user ID in context", nil, nil)
		WriteJSONError(w, http.StatusUnauthorized, "Invalid user ID in context")
		return
	}

	listings, err := h.getListingsUC.Execute(r.Context(), userID)
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to retrieve favorites")
		return
	}
	RespondWithJSON(w, http.StatusOK, toListingResponses(listings))
}

// GetIDs обрабатывает GET /api/v1/favorites/ids
func (h *FavoritesHandler) GetIDs(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetFavoriteIDs"})
	userID, ok := contextkeys.UserIDFromContext(r.Context())
	if !ok {
		logger.Error("Invalid or missing user ID in context", nil, nil)
		WriteJSONError(w, http.StatusUnauthorized, "Invalid user ID in context")
		return
	}

	ids, err := h.getIDsUC.Execute(r.Context(), userID)
	if err != nil {
		logger.Error("Get favorite IDs use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve favorites")
		return
	}
	RespondWithJSON(w, http.StatusOK, ids)
}

// Toggle обрабатывает POST /api/v1/favorites/{listingId}/toggle
func (h *FavoritesHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ToggleFavorite"})
	userID, ok := contextkeys.UserIDFromContext(r.Context())
	if !ok {
		logger.Error("Invalid or missing user ID in context", nil, nil)
		WriteJSONError(w, http.StatusUnauthorized, "Invalid user ID in context")
		return
	}

	listingID, err := intURLParam(r, "listingId")
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	added, err := h.toggleUC.Execute(r.Context(), userID, listingID)
	if err != nil {
		logger.Error("Toggle favorite use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to update favorites")
		return
	}
	RespondWithJSON(w, http.StatusOK, ToggleFavoriteResponse{ListingID: listingID, IsFavorite: added})
}

// Clear обрабатывает DELETE /api/v1/favorites
func (h *FavoritesHandler) Clear(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ClearFavorites"})
	userID, ok := contextkeys.UserIDFromContext(r.Context())
	if !ok {
		logger.Error("Invalid or missing user ID in context", nil, nil)
		WriteJSONError(w, http.StatusUnauthorized, "Invalid user ID in context")
		return
	}

	if err := h.clearUC.Execute(r.Context(), userID); err != nil {
		logger.Error("Clear favorites use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to clear favorites")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Subscribe обрабатывает GET /api/v1/favorites/subscribe (Server-Sent Events).
func (h *FavoritesHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SubscribeFavorites"})
	userID, ok := contextkeys.UserIDFromContext(r.Context())
	if !ok {
		logger.Error("User ID in context for SSE subscription invalid or missing", nil, nil)
		WriteJSONError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteJSONError(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"user_id": userID})
	handlerLogger.Info("New client subscribing to favorites events", nil)

	events, unsubscribe := h.subscriptions.Subscribe(userID)
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	// Текущее состояние сразу, чтобы клиенту не нужен был отдельный запрос
	ids, err := h.getIDsUC.Execute(r.Context(), userID)
	if err != nil {
		handlerLogger.Error("Failed to load initial favorites", err, nil)
		ids = []int{}
	}
	snapshot, _ := json.Marshal(FavoritesEventResponse{Action: "snapshot", IDs: ids})
	fmt.Fprintf(w, "event: connected\ndata: %s\n\n", snapshot)
	flusher.Flush()

	ticker := time.NewTicker(h.keepAliveEvery)
	defer ticker.Stop()

	for {
		select {
		case event, open := <-events:
			if !open {
				return
			}
			data, err := json.Marshal(toFavoritesEventResponse(event))
			if err != nil {
				handlerLogger.Error("Failed to marshal favorites event", err, nil)
				continue
			}
			if _, err := fmt.Fprintf(w, "event: favorites\ndata: %s\n\n", data); err != nil {
				handlerLogger.Error("Error writing to client, closing SSE connection", err, nil)
				return
			}
			flusher.Flush()

		case <-ticker.C:
			// строки с ':' - комментарии SSE, держат соединение живым
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			handlerLogger.Info("SSE client disconnected.", nil)
			return
		}
	}
}
