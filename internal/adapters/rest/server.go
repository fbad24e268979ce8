package rest

import (
	"context"
	"net/http"

	core_port "catalog-service/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

func NewServer(port string,
	allowedOrigins []string,
	listingsHandler *ListingsHandler,
	filterHandler *FilterHandler,
	agentsHandler *AgentsHandler,
	healthHandler *HealthHandler,
	baseLogger core_port.LoggerPort) *Server {

	return &Server{
		httpServer: &http.Server{
			Addr:    ":" + port,
			Handler: newRouter(allowedOrigins, listingsHandler, filterHandler, agentsHandler, healthHandler, baseLogger),
		},
		logger: baseLogger,
	}
}

func newRouter(allowedOrigins []string,
	listingsHandler *ListingsHandler,
	filterHandler *FilterHandler,
	agentsHandler *AgentsHandler,
	healthHandler *HealthHandler,
	baseLogger core_port.LoggerPort) http.Handler {

	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Trace-ID"},
		ExposedHeaders: []string{"X-Trace-ID"},
		MaxAge:         300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/listings", listingsHandler.FindListings)
		r.Get("/listings/{listingID}", listingsHandler.GetListingDetails)

		r.Get("/filters/options", filterHandler.GetFilterOptions)

		r.Get("/agents", agentsHandler.FindAgents)
		r.Get("/agents/filters/options", agentsHandler.GetAgentFilterOptions)
	})

	r.Get("/health", healthHandler.Health)

	return r
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST server", core_port.Fields{"address": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST server...", nil)
	return s.httpServer.Shutdown(ctx)
}
