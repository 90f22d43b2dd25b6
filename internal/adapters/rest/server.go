package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	core_port "real-estate-marketplace/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Handlers - все обработчики, которые монтирует роутер.
type Handlers struct {
	Listings   *ListingsHandler
	Properties *PropertiesHandler
	Reference  *ReferenceHandler
	Favorites  *FavoritesHandler
	Sessions   *SessionHandler
}

type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

// NewRouter собирает chi-роутер со всеми маршрутами /api/v1.
func NewRouter(h Handlers, allowedOrigins []string, baseLogger core_port.LoggerPort) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-User-ID", "X-Trace-ID"},
		ExposedHeaders:   []string{"X-Trace-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware(baseLogger))
	r.Use(middleware.Recoverer)
	r.Use(BearerTokenMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/listings/search", h.Listings.Search)
		r.Post("/filters/options", h.Listings.FilterOptions)
		r.Get("/listings/{id}", h.Listings.GetByID)
		r.Post("/listings", h.Listings.Create)
		r.Put("/listings/{id}", h.Listings.Update)

		r.Route("/properties", func(r chi.Router) {
			r.Get("/final-type/{finalTypeId}", h.Properties.GetSchema)
			r.Post("/final-type/{finalTypeId}/validate", h.Properties.Validate)
			r.Get("/groups/{finalTypeId}", h.Properties.GetGroups)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/main-types", h.Reference.GetMainTypes)
			r.Get("/sub-types/{subTypeId}/final-types", h.Reference.GetFinalTypes)
		})

		r.Route("/locations", func(r chi.Router) {
			r.Get("/cities", h.Reference.GetCities)
			r.Get("/cities/{cityId}/neighborhoods", h.Reference.GetNeighborhoods)
			r.Get("/neighborhoods/{neighborhoodId}/final-cities", h.Reference.GetFinalCities)
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Use(AuthMiddleware)

			r.Get("/", h.Favorites.GetListings)
			r.Get("/ids", h.Favorites.GetIDs)
			r.Get("/subscribe", h.Favorites.Subscribe)
			r.Post("/{listingId}/toggle", h.Favorites.Toggle)
			r.Delete("/", h.Favorites.Clear)
		})

		r.Get("/sessions/listing-form", h.Sessions.ListingForm)
	})

	return r
}

func NewServer(port string, h Handlers, allowedOrigins []string, baseLogger core_port.LoggerPort) *Server {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           NewRouter(h, allowedOrigins, baseLogger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return &Server{
		httpServer: srv,
		logger:     baseLogger.WithFields(core_port.Fields{"component": "rest_server"}),
	}
}

// Start запускает HTTP-сервер.
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", core_port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop корректно останавливает сервер.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	return s.httpServer.Shutdown(ctx)
}
