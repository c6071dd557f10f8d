package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/user/primbench/internal/primitive"
)

// Server is the HTTP server for the in-memory primitive backend.
type Server struct {
	store      *primitive.Store
	ops        *OpsTracker
	httpServer *http.Server
	router     chi.Router
}

// New creates a new Server.
func New(s *primitive.Store, bindAddr string) *Server {
	srv := &Server{store: s, ops: NewOpsTracker()}
	srv.router = srv.buildRouter()
	srv.httpServer = &http.Server{
		Addr:    bindAddr,
		Handler: srv.router,
	}
	return srv
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(structuredLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		// Counter
		r.Post("/counter/{name}/increment", s.handleCounterIncrement)
		r.Post("/counter/{name}/decrement", s.handleCounterDecrement)
		r.Get("/counter/{name}", s.handleCounterGet)

		// Map
		r.Put("/map/{name}/keys/{key}", s.handleMapPut)
		r.Get("/map/{name}/keys/{key}", s.handleMapGet)
		r.Delete("/map/{name}/keys/{key}", s.handleMapRemove)

		// Set
		r.Post("/set/{name}/elements", s.handleSetAdd)
		r.Get("/set/{name}/elements/{element}", s.handleSetContains)
		r.Delete("/set/{name}/elements/{element}", s.handleSetRemove)
	})

	r.Get("/healthz", s.handleHealthz)
	r.Get("/metrics", s.handlePrometheusMetrics)

	return r
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	slog.Info("HTTP server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("HTTP server shutting down")
	return s.httpServer.Shutdown(ctx)
}

// Handler returns the http.Handler for testing.
func (s *Server) Handler() http.Handler {
	return s.router
}

// JSON response helpers

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, code string) {
	writeJSON(w, status, map[string]string{"error": msg, "code": code})
}

// writeStoreError maps a typed store error to an HTTP response.
func writeStoreError(w http.ResponseWriter, err error) {
	if primitive.IsNotFound(err) {
		writeError(w, http.StatusNotFound, err.Error(), string(primitive.ErrorCodeNotFound))
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
}

func decodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// Middleware

func structuredLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
