// Package handlers contains the HTTP handlers for the graph API.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"cadence-backend/application/services"
	domainservices "cadence-backend/domain/services"
	"cadence-backend/pkg/errors"
)

// GraphHandler serves the composed graph views.
type GraphHandler struct {
	views        *services.ViewService
	logger       *zap.Logger
	errorHandler *errors.ErrorHandler
}

// NewGraphHandler creates a new graph handler.
func NewGraphHandler(views *services.ViewService, logger *zap.Logger, errorHandler *errors.ErrorHandler) *GraphHandler {
	return &GraphHandler{
		views:        views,
		logger:       logger,
		errorHandler: errorHandler,
	}
}

// GetView handles GET /api/v1/graph/view.
func (h *GraphHandler) GetView(w http.ResponseWriter, r *http.Request) {
	month, err := parseMonth(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	pruned, err := parseBoolParam(r, "pruned")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	opts := services.ViewOptions{
		Direction: domainservices.Direction(r.URL.Query().Get("direction")),
		Pruned:    pruned,
	}

	view, err := h.views.ViewAtMonth(r.Context(), month, opts)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, view)
}

// GetFilter handles GET /api/v1/graph/filter.
func (h *GraphHandler) GetFilter(w http.ResponseWriter, r *http.Request) {
	month, err := parseMonth(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	view, err := h.views.FilterAtMonth(r.Context(), month)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, view)
}

// GetStats handles GET /api/v1/graph/stats.
func (h *GraphHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	month, err := parseMonth(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	stats, err := h.views.StatsAtMonth(r.Context(), month)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, stats)
}

// GetPrunePreview handles GET /api/v1/graph/prune-preview.
func (h *GraphHandler) GetPrunePreview(w http.ResponseWriter, r *http.Request) {
	month, err := parseMonth(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	preview, err := h.views.PrunePreview(r.Context(), month)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, preview)
}

// GetPath handles GET /api/v1/graph/path/{nodeID}. An unknown node yields a
// found=false highlight, not a 404.
func (h *GraphHandler) GetPath(w http.ResponseWriter, r *http.Request) {
	nodeID := chi.URLParam(r, "nodeID")
	if nodeID == "" {
		h.errorHandler.Handle(w, r, errors.NewValidation("node id is required"))
		return
	}

	month, err := parseMonth(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	depth, err := parseIntParam(r, "depth", 0)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	highlight, err := h.views.PathHighlight(r.Context(), nodeID, month, depth)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, highlight)
}

func (h *GraphHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

// parseMonth extracts the required month query parameter. Integer values
// outside the 1..12 window are accepted here and clamped downstream; only a
// missing or non-integer value is rejected.
func parseMonth(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("month")
	if raw == "" {
		return 0, errors.NewValidation("month query parameter is required")
	}
	month, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewValidationf("month must be an integer, got %q", raw)
	}
	return month, nil
}

func parseBoolParam(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.NewValidationf("%s must be a boolean, got %q", name, raw)
	}
	return value, nil
}

func parseIntParam(r *http.Request, name string, defaultValue int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewValidationf("%s must be an integer, got %q", name, raw)
	}
	return value, nil
}
