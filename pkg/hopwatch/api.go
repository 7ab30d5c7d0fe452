// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package hopwatch

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/telekom/hopwatch/internal/logger"
	"github.com/telekom/hopwatch/pkg/api"
	"gopkg.in/yaml.v3"
)

const (
	urlParamCheckName = "check"
	// defaultHistoryLimit is the number of past results returned
	// when the request does not specify a limit
	defaultHistoryLimit = 25
)

// startupAPI registers the hopwatch routes and serves the API
func (h *Hopwatch) startupAPI(ctx context.Context) error {
	routes := []api.Route{
		{Path: "/openapi", Method: http.MethodGet, Handler: h.handleOpenAPI},
		{Path: "/v1/checks", Method: http.MethodGet, Handler: h.handleCheckResults},
		{Path: "/v1/checks/{check}", Method: http.MethodGet, Handler: h.handleCheckResult},
		{Path: "/v1/checks/{check}/history", Method: http.MethodGet, Handler: h.handleCheckHistory},
		{Path: "/metrics", Method: http.MethodGet, Handler: promhttp.HandlerFor(
			h.metrics.GetRegistry(),
			promhttp.HandlerOpts{Registry: h.metrics.GetRegistry()},
		).ServeHTTP},
	}

	if err := h.api.RegisterRoutes(ctx, routes...); err != nil {
		return err
	}
	return h.api.Run(ctx)
}

// handleOpenAPI serves the openapi document of the registered checks
func (h *Hopwatch) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	doc, err := h.controller.GenerateCheckSpecs(ctx)
	if err != nil {
		log.Error("Failed to generate openapi document", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to generate openapi document")
		return
	}

	// kin-openapi only knows how to serialize the document to JSON,
	// so the yaml rendering goes through an intermediate map
	jb, err := doc.MarshalJSON()
	if err != nil {
		log.Error("Failed to marshal openapi document", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to marshal openapi document")
		return
	}
	var openapi map[string]any
	if err = json.Unmarshal(jb, &openapi); err != nil {
		log.Error("Failed to marshal openapi document", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to marshal openapi document")
		return
	}
	b, err := yaml.Marshal(openapi)
	if err != nil {
		log.Error("Failed to marshal openapi document", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to marshal openapi document")
		return
	}

	w.Header().Set("Content-Type", "text/yaml")
	if _, err := w.Write(b); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// handleCheckResults serves the latest result of every check
func (h *Hopwatch) handleCheckResults(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, h.db.List())
}

// handleCheckResult serves the latest result of a single check
func (h *Hopwatch) handleCheckResult(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, urlParamCheckName)

	result, ok := h.db.Get(name)
	if !ok {
		writeError(w, http.StatusNotFound, "no result for check "+name)
		return
	}
	writeJSON(r.Context(), w, result)
}

// handleCheckHistory serves past results of a single check, newest first.
// The number of results is bound by the "limit" query parameter.
func (h *Hopwatch) handleCheckHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)
	name := chi.URLParam(r, urlParamCheckName)

	limit := defaultHistoryLimit
	if q := r.URL.Query().Get("limit"); q != "" {
		l, err := strconv.Atoi(q)
		if err != nil || l <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = l
	}

	history, err := h.db.History(name, limit)
	if err != nil {
		log.Error("Failed to load check history", "check", name, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load check history")
		return
	}
	writeJSON(ctx, w, history)
}

func writeJSON(ctx context.Context, w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(ctx).Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
