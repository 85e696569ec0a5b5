// Package api exposes the record store over HTTP: recid-indexed CRUD
// plus the transaction, compaction and diagnostic operations.
package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gisdevelope/mapdb/pkg/store"
)

// NewRouter builds the HTTP routing table for a server. Handlers are
// instrumented only when the server carries metrics, so tests can run
// without touching the global Prometheus registry.
func NewRouter(server *Server) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	instrument := func(method, endpoint string, h http.HandlerFunc) http.HandlerFunc {
		if server.metrics == nil {
			return h
		}
		return server.metrics.InstrumentHandler(method, endpoint, h)
	}

	// API key authentication middleware for protected routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(requireAPIKey(server.config.APIKey))

		// Health check
		r.Get("/health", instrument("GET", "/api/v1/health", server.handleHealth))

		// Record operations
		r.Post("/records", instrument("POST", "/api/v1/records", server.handlePut))
		r.Post("/records/preallocate", instrument("POST", "/api/v1/records/preallocate", server.handlePreallocate))
		r.Get("/records", instrument("GET", "/api/v1/records", server.handleListRecids))
		r.Get("/records/{recid}", instrument("GET", "/api/v1/records/{recid}", server.handleGet))
		r.Put("/records/{recid}", instrument("PUT", "/api/v1/records/{recid}", server.handleUpdate))
		r.Post("/records/{recid}/cas", instrument("POST", "/api/v1/records/{recid}/cas", server.handleCAS))
		r.Delete("/records/{recid}", instrument("DELETE", "/api/v1/records/{recid}", server.handleDelete))

		// Transaction boundaries
		r.Post("/tx/commit", instrument("POST", "/api/v1/tx/commit", server.handleCommit))
		r.Post("/tx/rollback", instrument("POST", "/api/v1/tx/rollback", server.handleRollback))

		// Maintenance and diagnostics
		r.Post("/compact", instrument("POST", "/api/v1/compact", server.handleCompact))
		r.Post("/verify", instrument("POST", "/api/v1/verify", server.handleVerify))
		r.Get("/stats", instrument("GET", "/api/v1/stats", server.handleStats))
		r.Get("/files", instrument("GET", "/api/v1/files", server.handleFiles))
	})

	return r
}

// StartServer starts the HTTP server with all routes configured
func StartServer(st store.Store, config ServerConfig) error {
	metrics := NewMetrics()
	server := NewServer(st, config, metrics)
	r := NewRouter(server)

	// background gauge refresh
	go server.startMetricsUpdater()

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	fmt.Printf("Starting record store REST API on %s\n", addr)
	fmt.Printf("Metrics available at: http://%s/metrics\n", addr)
	return http.ListenAndServe(addr, r)
}
