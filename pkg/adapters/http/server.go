// Package http exposes menus, generation passes and generated outputs over HTTP.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/suzuryg/facial-expression-switcher/internal/logging"
	"github.com/suzuryg/facial-expression-switcher/internal/presentation/graph"
	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
	"github.com/suzuryg/facial-expression-switcher/pkg/generator"
	"github.com/suzuryg/facial-expression-switcher/pkg/ports"
)

// Generator runs generation passes.
type Generator interface {
	Generate(ctx context.Context, menu *domain.Menu) (*generator.Result, error)
}

// Server serves the generator API.
type Server struct {
	menus        ports.MenuSource
	gen          Generator
	store        ports.OutputStore
	installation ports.Installation

	streams *StreamManager
	metrics http.Handler
	logger  *slog.Logger
	version string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithStreams sets the stream manager /events subscribes to. Its Hooks must be
// registered with the generator for events to arrive.
func WithStreams(sm *StreamManager) Option {
	return func(s *Server) { s.streams = sm }
}

// WithMetrics mounts a metrics handler at /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) { s.metrics = h }
}

// WithVersion sets the version reported by /info.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// NewServer creates a server.
func NewServer(menus ports.MenuSource, gen Generator, store ports.OutputStore, installation ports.Installation, opts ...Option) *Server {
	s := &Server{
		menus:        menus,
		gen:          gen,
		store:        store,
		installation: installation,
		logger:       logging.NewNop(),
		version:      "dev",
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.streams == nil {
		s.streams = NewStreamManager(s.logger)
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/events", s.SubscribeEvents)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}

	r.Route("/menus", func(r chi.Router) {
		r.Get("/", s.ListMenus)
		r.Get("/{id}", s.GetMenu)
		r.Post("/{id}/generate", s.Generate)
	})
	r.Route("/outputs", func(r chi.Router) {
		r.Get("/", s.ListOutputs)
		r.Get("/{name}/manifest", s.GetManifest)
		r.Get("/{name}/graph", s.GetGraph)
		r.Get("/{name}/artifacts/*", s.GetArtifact)
	})
	r.Get("/installed", s.GetInstalled)

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "fxgen-http",
		"version": strings.TrimSpace(s.version),
	})
}

// ListMenus handles GET /menus.
func (s *Server) ListMenus(w http.ResponseWriter, r *http.Request) {
	ids, err := s.menus.ListMenus(r.Context())
	if err != nil {
		s.writeError(w, "List menus", err)
		return
	}
	s.writeJSON(w, http.StatusOK, ids)
}

// GetMenu handles GET /menus/{id}.
func (s *Server) GetMenu(w http.ResponseWriter, r *http.Request) {
	menu, err := s.menus.LoadMenu(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, "Load menu", err)
		return
	}
	s.writeJSON(w, http.StatusOK, menu)
}

// GenerateResponse is the body of a finished pass.
type GenerateResponse struct {
	Output       string          `json:"output"`
	Manifest     domain.Manifest `json:"manifest"`
	Cleaned      []string        `json:"cleaned,omitempty"`
	CleanupError string          `json:"cleanup_error,omitempty"`
}

// Generate handles POST /menus/{id}/generate.
// A failed cleanup after a successful install still answers 200 with cleanup_error set.
func (s *Server) Generate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	menu, err := s.menus.LoadMenu(r.Context(), id)
	if err != nil {
		s.writeError(w, "Load menu", err)
		return
	}

	res, err := s.gen.Generate(r.Context(), menu)
	if res == nil {
		s.writeError(w, "Generate", err)
		return
	}
	resp := GenerateResponse{Output: res.Output, Manifest: res.Manifest, Cleaned: res.Cleaned}
	if err != nil {
		s.logger.Warn("Generate: cleanup failed", "menu", id, "err", err)
		resp.CleanupError = err.Error()
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// ListOutputs handles GET /outputs.
func (s *Server) ListOutputs(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, "List outputs", err)
		return
	}
	s.writeJSON(w, http.StatusOK, names)
}

// GetManifest handles GET /outputs/{name}/manifest.
func (s *Server) GetManifest(w http.ResponseWriter, r *http.Request) {
	data, err := s.store.Get(r.Context(), chi.URLParam(r, "name"), domain.ArtifactManifest)
	if err != nil {
		s.writeError(w, "Get manifest", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

// GetArtifact handles GET /outputs/{name}/artifacts/{key...}.
func (s *Server) GetArtifact(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	data, err := s.store.Get(r.Context(), chi.URLParam(r, "name"), key)
	if err != nil {
		s.writeError(w, "Get artifact", err)
		return
	}
	w.Header().Set("Content-Type", contentType(key))
	_, _ = w.Write(data)
}

// GetGraph handles GET /outputs/{name}/graph?layer=NAME and answers a Mermaid flowchart.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	layerName := r.URL.Query().Get("layer")
	if layerName == "" {
		http.Error(w, "Missing layer parameter", http.StatusBadRequest)
		return
	}

	data, err := s.store.Get(r.Context(), chi.URLParam(r, "name"), domain.ArtifactController)
	if err != nil {
		s.writeError(w, "Get controller", err)
		return
	}
	var ctrl domain.Controller
	if err := json.Unmarshal(data, &ctrl); err != nil {
		s.writeError(w, "Decode controller", err)
		return
	}
	layer := ctrl.Layer(layerName)
	if layer == nil {
		http.Error(w, fmt.Sprintf("Layer %q not found", layerName), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(graph.GenerateMermaid(layer, nil)))
}

// GetInstalled handles GET /installed.
func (s *Server) GetInstalled(w http.ResponseWriter, r *http.Request) {
	refs, err := s.installation.Installed(r.Context())
	if err != nil {
		s.writeError(w, "Read installation", err)
		return
	}
	s.writeJSON(w, http.StatusOK, refs)
}

// -- Helpers --

func contentType(key string) string {
	switch path.Ext(key) {
	case ".json":
		return "application/json"
	case ".webp":
		return "image/webp"
	}
	return "application/octet-stream"
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrMenuNotFound), errors.Is(err, domain.ErrOutputNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConfiguration):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrTemplateMissing):
		return http.StatusFailedDependency
	case errors.Is(err, context.Canceled):
		return 499
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(op+" failed", "err", err)
	} else {
		s.logger.Warn(op+" rejected", "status", status, "err", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Response encode failed", "err", err)
	}
}
