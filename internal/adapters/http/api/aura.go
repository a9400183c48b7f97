package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/okian/aura/internal/adapters/repository"
	"github.com/okian/aura/internal/domain/model"
	"github.com/okian/aura/internal/domain/weather"
	"github.com/okian/aura/pkg/logger"
)

// renderRequest mirrors the OpenAPI schema for POST /aura. Mode stays a
// string so an omitted mode can fall back to the configured default.
type renderRequest struct {
	Observation weather.Observation `json:"observation"`
	Mode        string              `json:"mode"`
	Seed        *int64              `json:"seed,omitempty"`
}

// defaultPeaksLimit applies when GET /aura/peaks names no limit.
const defaultPeaksLimit = 10

type peaksResponse struct {
	Count int               `json:"count"`
	Items []repository.Peak `json:"items"`
}

type batchRequest struct {
	Items []renderRequest `json:"items"`
}

type batchResponse struct {
	Count int               `json:"count"`
	Items []model.Rendering `json:"items"`
}

// AuraHandler serves the render endpoints.
type AuraHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewAuraHandler creates a new aura handler.
func NewAuraHandler(deps Dependencies, l logger.Logger) *AuraHandler {
	return &AuraHandler{deps: deps, logger: l}
}

func (h *AuraHandler) toModel(r renderRequest) model.RenderRequest {
	return model.RenderRequest{
		Observation: r.Observation,
		Mode:        h.deps.ResolveMode(r.Mode),
		Seed:        r.Seed,
	}
}

// HandleRender handles POST /aura requests.
func (h *AuraHandler) HandleRender(w http.ResponseWriter, r *http.Request) {
	const op = "api.render"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req renderRequest
	if err := decode(w, r, &req); err != nil {
		writeFailure(w, op, err)
		return
	}
	rendering, err := h.deps.Render(r.Context(), h.toModel(req))
	if err != nil {
		h.logger.Warn(r.Context(), "render failed", logger.Error(err))
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, rendering)
}

// HandleBatch handles POST /aura/batch requests.
func (h *AuraHandler) HandleBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.render_batch"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req batchRequest
	if err := decode(w, r, &req); err != nil {
		writeFailure(w, op, err)
		return
	}
	switch n := len(req.Items); {
	case n == 0:
		writeFailure(w, op, fmt.Errorf("%w: items must not be empty", ErrBadRequest))
		return
	case n > h.deps.MaxBatchSize():
		writeFailure(w, op, fmt.Errorf("%w: at most %d items allowed, got %d", ErrBadRequest, h.deps.MaxBatchSize(), n))
		return
	}

	reqs := make([]model.RenderRequest, len(req.Items))
	for i, item := range req.Items {
		reqs[i] = h.toModel(item)
	}
	out, err := h.deps.RenderBatch(r.Context(), reqs)
	if err != nil {
		h.logger.Warn(r.Context(), "batch failed", logger.Int("size", len(reqs)), logger.Error(err))
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, batchResponse{Count: len(out), Items: out})
}

// HandleLive handles GET /aura/live?q=place or ?lat=&lon= requests.
func (h *AuraHandler) HandleLive(w http.ResponseWriter, r *http.Request) {
	const op = "api.render_live"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()
	req, err := h.liveRequest(q)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	rendering, err := h.deps.RenderLive(r.Context(), req)
	if err != nil {
		h.logger.Warn(r.Context(), "live render failed", logger.Error(err))
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, rendering)
}

// HandleRandom handles GET /aura/random requests.
func (h *AuraHandler) HandleRandom(w http.ResponseWriter, r *http.Request) {
	const op = "api.render_random"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()
	seed, err := optionalInt(q, "seed")
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	rendering, err := h.deps.RenderRandomPlace(r.Context(), h.deps.ResolveMode(q.Get("mode")), seed)
	if err != nil {
		h.logger.Warn(r.Context(), "random render failed", logger.Error(err))
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, rendering)
}

// HandlePeaks handles GET /aura/peaks?limit=N requests.
func (h *AuraHandler) HandlePeaks(w http.ResponseWriter, r *http.Request) {
	const op = "api.peaks"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	limit, err := optionalInt(r.URL.Query(), "limit")
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	n := defaultPeaksLimit
	if limit != nil {
		n = int(*limit)
	}
	peaks, err := h.deps.Peaks(r.Context(), n)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, peaksResponse{Count: len(peaks), Items: peaks})
}

func (h *AuraHandler) liveRequest(q url.Values) (model.LiveRequest, error) {
	req := model.LiveRequest{
		Query: strings.TrimSpace(q.Get("q")),
		Mode:  h.deps.ResolveMode(q.Get("mode")),
	}
	var err error
	if req.Latitude, err = optionalFloat(q, "lat"); err != nil {
		return req, err
	}
	if req.Longitude, err = optionalFloat(q, "lon"); err != nil {
		return req, err
	}
	if req.Altitude, err = optionalFloat(q, "alt"); err != nil {
		return req, err
	}
	if req.Seed, err = optionalInt(q, "seed"); err != nil {
		return req, err
	}
	if req.Query == "" && (req.Latitude == nil || req.Longitude == nil) {
		return req, fmt.Errorf("%w: q or both lat and lon are required", ErrBadRequest)
	}
	return req, nil
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return nil
}

func optionalFloat(q url.Values, key string) (*float64, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid %s %q", ErrBadRequest, key, raw)
	}
	return &v, nil
}

func optionalInt(q url.Values, key string) (*int64, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid %s %q", ErrBadRequest, key, raw)
	}
	return &v, nil
}
