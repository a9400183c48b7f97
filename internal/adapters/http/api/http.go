// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/aura/internal/adapters/repository"
	"github.com/okian/aura/internal/domain/aura"
	"github.com/okian/aura/internal/domain/model"
	"github.com/okian/aura/pkg/logger"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Render composes one aura synchronously.
	Render(ctx context.Context, req model.RenderRequest) (model.Rendering, error)

	// RenderBatch composes many auras on the worker pool, in request order.
	RenderBatch(ctx context.Context, reqs []model.RenderRequest) ([]model.Rendering, error)

	// RenderLive fetches current weather for a place and composes its aura.
	RenderLive(ctx context.Context, req model.LiveRequest) (model.Rendering, error)

	// RenderRandomPlace composes the live aura of a random curated place.
	RenderRandomPlace(ctx context.Context, mode aura.Mode, seed *int64) (model.Rendering, error)

	// Peaks returns up to n places with the most severe live weather seen.
	Peaks(ctx context.Context, n int) ([]repository.Peak, error)

	// ResolveMode maps a selector name to a mode, empty meaning the default.
	ResolveMode(name string) aura.Mode

	// MaxBatchSize is the largest accepted batch.
	MaxBatchSize() int
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	auraHandler   *AuraHandler
	modesHandler  *ModesHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(statsProvider),
		auraHandler:   NewAuraHandler(deps, logger.Named("api")),
		modesHandler:  NewModesHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("/metrics", s.healthHandler.MetricsHandler())
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/modes", MetricsMiddleware(s.modesHandler.HandleModes, "modes"))
	mux.HandleFunc("/aura/batch", MetricsMiddleware(s.auraHandler.HandleBatch, "aura_batch"))
	mux.HandleFunc("/aura/live", MetricsMiddleware(s.auraHandler.HandleLive, "aura_live"))
	mux.HandleFunc("/aura/random", MetricsMiddleware(s.auraHandler.HandleRandom, "aura_random"))
	mux.HandleFunc("/aura/peaks", MetricsMiddleware(s.auraHandler.HandlePeaks, "aura_peaks"))
	mux.HandleFunc("/aura", MetricsMiddleware(s.auraHandler.HandleRender, "aura"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure classifies err, tags it with op and writes the matching status.
func writeFailure(w http.ResponseWriter, op string, err error) {
	kind := classify(err)
	status, code := statusFor(kind)
	writeError(w, status, code, WrapKind(op, kind, err))
}
