// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package hopwatch

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"github.com/telekom/hopwatch/pkg/checks"
	"github.com/telekom/hopwatch/pkg/db"
	"github.com/telekom/hopwatch/pkg/hopwatch/metrics"
)

// newTestHopwatch builds a hopwatch with a seeded in-memory store
// and a router serving its api handlers
func newTestHopwatch(t *testing.T) (*Hopwatch, chi.Router) {
	t.Helper()

	store := db.NewInMemory()
	store.Save(checks.ResultDTO{
		Name:   "trace",
		Result: &checks.Result{Data: map[string]any{"hops": float64(7)}, Timestamp: time.Now().UTC()},
	})

	registry := prometheus.NewRegistry()
	m := &metrics.ProviderMock{
		GetRegistryFunc: func() *prometheus.Registry { return registry },
	}

	h := &Hopwatch{
		db:         store,
		metrics:    m,
		controller: NewChecksController(store, m),
	}

	r := chi.NewRouter()
	r.Get("/openapi", h.handleOpenAPI)
	r.Get("/v1/checks", h.handleCheckResults)
	r.Get("/v1/checks/{check}", h.handleCheckResult)
	r.Get("/v1/checks/{check}/history", h.handleCheckHistory)
	return h, r
}

func TestHopwatch_handleCheckResults(t *testing.T) {
	_, r := newTestHopwatch(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/checks", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)

	var results map[string]checks.Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&results))
	require.Contains(t, results, "trace")
}

func TestHopwatch_handleCheckResult(t *testing.T) {
	_, r := newTestHopwatch(t)

	t.Run("known check", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/checks/trace", http.NoBody))
		require.Equal(t, http.StatusOK, rec.Code)

		var result checks.Result
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
		require.Equal(t, map[string]any{"hops": float64(7)}, result.Data)
	})

	t.Run("unknown check", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/checks/unknown", http.NoBody))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHopwatch_handleCheckHistory(t *testing.T) {
	h, r := newTestHopwatch(t)
	for i := range 3 {
		h.db.Save(checks.ResultDTO{
			Name:   "trace",
			Result: &checks.Result{Data: float64(i), Timestamp: time.Now().UTC()},
		})
	}

	t.Run("default limit", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/checks/trace/history", http.NoBody))
		require.Equal(t, http.StatusOK, rec.Code)

		var history []checks.Result
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&history))
		require.Len(t, history, 4)
		// Newest first
		require.Equal(t, float64(2), history[0].Data)
	})

	t.Run("explicit limit", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/checks/trace/history?limit=2", http.NoBody))
		require.Equal(t, http.StatusOK, rec.Code)

		var history []checks.Result
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&history))
		require.Len(t, history, 2)
	})

	t.Run("invalid limit", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/checks/trace/history?limit=-1", http.NoBody))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHopwatch_handleOpenAPI(t *testing.T) {
	h, r := newTestHopwatch(t)
	h.controller.checks.Add(newCheckMock("trace"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/yaml", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Body.String(), "openapi: 3.0.0")
}
