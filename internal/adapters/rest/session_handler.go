package rest

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"sync"
	"time"

	"real-estate-marketplace/internal/contextkeys"
	"real-estate-marketplace/internal/core/cascade"
	"real-estate-marketplace/internal/core/domain"
	"real-estate-marketplace/internal/core/dynform"
	"real-estate-marketplace/internal/core/port"

	"github.com/gorilla/websocket"
)

const (
	sessionWriteTimeout = 10 * time.Second
	sessionReadLimit    = 64 << 10
)

// Команды клиента формы объявления.
const (
	actionLoadCities         = "load_cities"
	actionSelectCity         = "select_city"
	actionSelectNeighborhood = "select_neighborhood"
	actionSelectFinalCity    = "select_final_city"
	actionSelectFinalType    = "select_final_type"
	actionSetValue           = "set_value"
	actionValidate           = "validate"
	actionState              = "state"
)

type sessionCommand struct {
	Action string `json:"action"`
	ID     *int   `json:"id"`
	Key    string `json:"key"`
	Value  any    `json:"value"`
}

type LocationStateResponse struct {
	Cities                 []CityResponse         `json:"cities"`
	Neighborhoods          []NeighborhoodResponse `json:"neighborhoods"`
	FinalCities            []FinalCityResponse    `json:"finalCities"`
	SelectedCityID         *int                   `json:"selectedCityId"`
	SelectedNeighborhoodID *int                   `json:"selectedNeighborhoodId"`
	SelectedFinalCityID    *int                   `json:"selectedFinalCityId"`
	LoadingNeighborhoods   bool                   `json:"loadingNeighborhoods"`
	LoadingFinalCities     bool                   `json:"loadingFinalCities"`
	Error                  string                 `json:"error,omitempty"`
}

type FormStateResponse struct {
	FinalTypeID           *int                      `json:"finalTypeId"`
	PropertiesFinalTypeID *int                      `json:"propertiesFinalTypeId"`
	Properties            []DynamicPropertyResponse `json:"properties"`
	Groups                []PropertyGroupResponse   `json:"groups"`
	Values                map[string]any            `json:"values"`
	Loading               bool                      `json:"loading"`
	Error                 string                    `json:"error,omitempty"`
}

type sessionMessage struct {
	Type     string                 `json:"type"`
	Action   string                 `json:"action,omitempty"`
	Location *LocationStateResponse `json:"location,omitempty"`
	Form     *FormStateResponse     `json:"form,omitempty"`
	Valid    *bool                  `json:"valid,omitempty"`
	Errors   map[string][]string    `json:"errors,omitempty"`
	Message  string                 `json:"message,omitempty"`
}

// SessionHandler ведет WebSocket-сессии формы объявления: каскад локаций и схема свойств.
type SessionHandler struct {
	locations port.LocationSourcePort
	schema    port.PropertySchemaPort
	upgrader  websocket.Upgrader
}

func NewSessionHandler(locations port.LocationSourcePort, schema port.PropertySchemaPort, allowedOrigins []string) *SessionHandler {
	return &SessionHandler{
		locations: locations,
		schema:    schema,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(allowedOrigins, "*") || slices.Contains(allowedOrigins, origin)
			},
		},
	}
}

type listingFormSession struct {
	conn     *websocket.Conn
	resolver *cascade.Resolver
	loader   *dynform.Loader
	logger   port.LoggerPort

	writeMu sync.Mutex
	wg      sync.WaitGroup
}

// ListingForm обрабатывает GET /api/v1/sessions/listing-form
func (h *SessionHandler) ListingForm(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListingFormSession"})

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade уже ответил клиенту
		logger.Warn("WebSocket upgrade failed", port.Fields{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	s := &listingFormSession{
		conn:     conn,
		resolver: cascade.NewResolver(h.locations),
		loader:   dynform.NewLoader(h.schema),
		logger:   logger,
	}
	defer func() {
		cancel()
		s.resolver.Close()
		s.wg.Wait()
		_ = conn.Close()
		logger.Info("Listing form session closed", nil)
	}()

	logger.Info("Listing form session opened", nil)
	conn.SetReadLimit(sessionReadLimit)

	s.async(actionLoadCities, func() error { return s.resolver.LoadCities(ctx) })

	for {
		var cmd sessionCommand
		if err := conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("Listing form session read failed", port.Fields{"error": err.Error()})
			}
			return
		}
		s.dispatch(ctx, cmd)
	}
}

// dispatch применяет выбор сразу в порядке поступления команд,
// а сетевые загрузки выполняет в фоне: новый выбор отменяет предыдущую загрузку.
func (s *listingFormSession) dispatch(ctx context.Context, cmd sessionCommand) {
	switch cmd.Action {
	case actionLoadCities:
		s.async(cmd.Action, func() error { return s.resolver.LoadCities(ctx) })
	case actionSelectCity:
		s.startAndReport(cmd.Action, s.resolver.BeginSelectCity(ctx, cmd.ID))
	case actionSelectNeighborhood:
		s.startAndReport(cmd.Action, s.resolver.BeginSelectNeighborhood(ctx, cmd.ID))
	case actionSelectFinalCity:
		s.resolver.SelectFinalCity(cmd.ID)
		s.sendState(cmd.Action)
	case actionSelectFinalType:
		s.startAndReport(cmd.Action, s.loader.BeginSetFinalType(ctx, cmd.ID))
	case actionSetValue:
		if cmd.Key == "" {
			s.send(sessionMessage{Type: "error", Action: cmd.Action, Message: "key is required"})
			return
		}
		s.loader.SetValue(cmd.Key, cmd.Value)
		s.sendState(cmd.Action)
	case actionValidate:
		errs, valid := s.loader.Validate()
		s.send(sessionMessage{Type: "validation", Action: cmd.Action, Valid: &valid, Errors: errs})
	case actionState:
		s.sendState(cmd.Action)
	default:
		s.send(sessionMessage{Type: "error", Action: cmd.Action, Message: "unknown action"})
	}
}

// startAndReport отправляет состояние с флагом загрузки и запускает загрузку.
func (s *listingFormSession) startAndReport(action string, fetch func() error) {
	s.sendState(action)
	s.async(action, fetch)
}

func (s *listingFormSession) async(action string, fetch func() error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		err := fetch()
		if errors.Is(err, domain.ErrSelectionSuperseded) {
			// ответ устарел, состояние отправит более новый выбор
			return
		}
		if err != nil {
			s.logger.Warn("Listing form load failed", port.Fields{"action": action, "error": err.Error()})
		}
		s.sendState(action)
	}()
}

func (s *listingFormSession) sendState(action string) {
	loc := s.resolver.State()
	form := s.loader.State()
	s.send(sessionMessage{
		Type:   "state",
		Action: action,
		Location: &LocationStateResponse{
			Cities:                 toCityResponses(loc.Cities),
			Neighborhoods:          toNeighborhoodResponses(loc.Neighborhoods),
			FinalCities:            toFinalCityResponses(loc.FinalCities),
			SelectedCityID:         loc.SelectedCityID,
			SelectedNeighborhoodID: loc.SelectedNeighborhoodID,
			SelectedFinalCityID:    loc.SelectedFinalCityID,
			LoadingNeighborhoods:   loc.LoadingNeighborhoods,
			LoadingFinalCities:     loc.LoadingFinalCities,
			Error:                  loc.Error,
		},
		Form: &FormStateResponse{
			FinalTypeID:           form.FinalTypeID,
			PropertiesFinalTypeID: form.PropertiesFinalTypeID,
			Properties:            toPropertyResponses(form.Properties),
			Groups:                toGroupResponses(form.Groups),
			Values:                form.Values,
			Loading:               form.Loading,
			Error:                 form.Error,
		},
	})
}

func (s *listingFormSession) send(msg sessionMessage) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	_ = s.conn.SetWriteDeadline(time.Now().Add(sessionWriteTimeout))
	if err := s.conn.WriteJSON(msg); err != nil {
		s.logger.Debug("Failed to write session message", port.Fields{"type": msg.Type, "error": err.Error()})
	}
}
