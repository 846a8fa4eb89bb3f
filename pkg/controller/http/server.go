package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ziggy/pkg/usecase"
)

// Config holds HTTP server settings
type Config struct {
	addr string
}

// NewConfig creates a new server config
func NewConfig(addr string) *Config {
	return &Config{addr: addr}
}

// UseCases groups the use cases served over HTTP
type UseCases struct {
	posting  *usecase.Posting
	settings *usecase.Settings
}

// NewUseCases creates a new UseCases
func NewUseCases(posting *usecase.Posting, settings *usecase.Settings) *UseCases {
	return &UseCases{
		posting:  posting,
		settings: settings,
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
	router  chi.Router
	handler *Handler
}

// NewServer creates a new HTTP server
func NewServer(ctx context.Context, cfg *Config, useCases *UseCases) (*Server, error) {
	if useCases == nil || useCases.posting == nil || useCases.settings == nil {
		return nil, goerr.New("posting and settings use cases are required")
	}

	router := chi.NewRouter()
	h := NewHandler(useCases)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)
	router.Use(CORS)

	router.Get("/health", handleHealth)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Post("/match", h.HandleMatch)
		r.Post("/preview", h.HandlePreview)
		r.Post("/dispatch", h.HandleDispatch)

		r.Get("/settings", h.HandleGetSettings)
		r.Put("/settings", h.HandlePutSettings)
		r.Delete("/settings", h.HandleDeleteSettings)
	})

	return &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		router:  router,
		handler: h,
	}, nil
}

// Wait blocks until background reports have finished or ctx is done
func (s *Server) Wait(ctx context.Context) error {
	return s.handler.wait(ctx)
}

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "ziggy",
	})
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctxlog.From(ctx).Error("Failed to encode response", "error", err)
	}
}

// writeError writes an error response
func writeError(ctx context.Context, w http.ResponseWriter, err error, status int) {
	message := err.Error()
	if goErr := goerr.Unwrap(err); goErr != nil {
		message = goErr.Error()
	}

	writeJSON(ctx, w, status, map[string]string{
		"error": message,
	})
}
