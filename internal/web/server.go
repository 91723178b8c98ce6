package web

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/hoa-reconcile/internal/match"
	"github.com/hoa-reconcile/internal/store"
	"github.com/hoa-reconcile/internal/web/handlers"
	"github.com/hoa-reconcile/internal/web/middleware"
)

// Server serves a completed match run for review. Results are held in
// memory; the store is optional and only backs the run archive endpoint.
type Server struct {
	config     *Config
	results    []match.Result
	store      *store.Store
	httpServer *http.Server
	router     *mux.Router
}

// NewServer creates a review server for the given results. st may be nil
// when no run archive is configured.
func NewServer(config *Config, results []match.Result, st *store.Store) *Server {
	server := &Server{
		config:  config,
		results: results,
		store:   st,
	}

	server.setupRoutes()

	server.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port),
		Handler:      server.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return server
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router = mux.NewRouter()

	// Convert config for handlers (to avoid import cycle)
	handlerConfig := &handlers.Config{}
	handlerConfig.Features.ExportEnabled = s.config.Features.ExportEnabled
	handlerConfig.Features.SearchLimit = s.config.Features.SearchLimit

	resultsHandler := &handlers.ResultsHandler{Results: s.results, Config: handlerConfig}
	searchHandler := &handlers.SearchHandler{Results: s.results, Config: handlerConfig}
	summaryHandler := &handlers.SummaryHandler{Results: s.results, Config: handlerConfig}
	exportHandler := &handlers.ExportHandler{Results: s.results, Config: handlerConfig}
	runsHandler := &handlers.RunsHandler{Store: s.store, Config: handlerConfig}

	// API routes
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/results", resultsHandler.ListResults).Methods("GET")
	api.HandleFunc("/results/search", searchHandler.SearchResults).Methods("GET")
	api.HandleFunc("/results/{index:[0-9]+}", resultsHandler.GetResult).Methods("GET")

	api.HandleFunc("/summary", summaryHandler.GetSummary).Methods("GET")
	api.HandleFunc("/flags", summaryHandler.GetFlags).Methods("GET")

	// Export endpoint (if enabled)
	if s.config.Features.ExportEnabled {
		api.HandleFunc("/export", exportHandler.ExportCSV).Methods("GET")
	}

	api.HandleFunc("/runs", runsHandler.ListRuns).Methods("GET")

	// Static file serving
	staticDir := "internal/web/static"
	if _, err := os.Stat(staticDir); err == nil {
		s.router.PathPrefix("/").Handler(http.FileServer(http.Dir(staticDir + "/")))
	}

	// Apply middleware
	s.router.Use(middleware.CORS())
	s.router.Use(middleware.RequestLogging())

	if s.config.Auth.Enabled {
		// Apply authentication middleware to API routes only
		api.Use(middleware.Authentication(s.config.Auth.APIKey))
	}
}

// Router exposes the configured routes, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the web server
func (s *Server) Start() error {
	// Setup graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Start server in background
	go func() {
		fmt.Printf("Starting server on http://%s\n", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("Server error: %v\n", err)
		}
	}()

	// Wait for shutdown signal
	<-stop
	fmt.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := s.httpServer.Shutdown(ctx); err != nil {
		fmt.Printf("Server shutdown error: %v\n", err)
	}

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			fmt.Printf("Database close error: %v\n", err)
		}
	}

	fmt.Println("Server stopped")
	return nil
}
