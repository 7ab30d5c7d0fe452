// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "empty address uses the default", cfg: Config{}},
		{name: "host and port", cfg: Config{ListeningAddress: "localhost:8080"}},
		{name: "port only", cfg: Config{ListeningAddress: ":8080"}},
		{name: "missing port", cfg: Config{ListeningAddress: "localhost"}, wantErr: true},
		{name: "garbage address", cfg: Config{ListeningAddress: "local:host:8080"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestAPI_RegisterRoutes(t *testing.T) {
	ctx := context.Background()
	a := New(Config{}).(*api)

	err := a.RegisterRoutes(ctx, Route{
		Path:   "/v1/checks",
		Method: http.MethodGet,
		Handler: func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("ok"))
		},
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/checks", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	require.Equal(t, "ok", string(body))
}

func TestAPI_RegisterRoutes_NilHandler(t *testing.T) {
	a := New(Config{})
	err := a.RegisterRoutes(context.Background(), Route{Path: "/broken", Method: http.MethodGet})
	require.ErrorIs(t, err, ErrInvalidRoute)
}

func TestAPI_RunAndShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	a := New(Config{ListeningAddress: "localhost:0"})

	cErr := make(chan error, 1)
	go func() {
		cErr <- a.Run(ctx)
	}()

	// Cancellation must stop the server
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-cErr:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("api did not shut down in time")
	}
}
