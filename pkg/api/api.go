// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package api serves check results, the generated openapi schema
// and the prometheus metrics over http.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/telekom/hopwatch/internal/logger"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

//go:generate go tool moq -out api_moq.go . API
type API interface {
	// Run serves the api until the context is canceled
	Run(ctx context.Context) error
	// RegisterRoutes registers the given routes on the api router
	RegisterRoutes(ctx context.Context, routes ...Route) error
	// Shutdown gracefully stops the api server
	Shutdown(ctx context.Context) error
}

// Route binds an http handler to a method and path
type Route struct {
	Path    string
	Method  string
	Handler http.HandlerFunc
}

var _ API = (*api)(nil)

type api struct {
	server *http.Server
	router chi.Router
}

// New creates a new api server with the given configuration
func New(cfg Config) API {
	addr := cfg.ListeningAddress
	if addr == "" {
		addr = defaultListeningAddress
	}

	r := chi.NewRouter()
	return &api{
		router: r,
		server: &http.Server{Addr: addr, ReadHeaderTimeout: readHeaderTimeout},
	}
}

// RegisterRoutes registers the given routes on the api router
func (a *api) RegisterRoutes(ctx context.Context, routes ...Route) error {
	log := logger.FromContext(ctx)
	for _, route := range routes {
		if route.Handler == nil {
			return fmt.Errorf("%w: %s %s", ErrInvalidRoute, route.Method, route.Path)
		}
		a.router.Method(route.Method, route.Path, route.Handler)
		log.Debug("Registered route", "method", route.Method, "path", route.Path)
	}
	return nil
}

// Run serves the api until the context is canceled.
// The request logger is derived from the passed context.
func (a *api) Run(ctx context.Context) error {
	ctx, cancel := logger.NewContextWithLogger(ctx)
	defer cancel()
	log := logger.FromContext(ctx)

	a.server.Handler = logger.Middleware(ctx)(a.router)

	cErr := make(chan error, 1)
	go func() {
		cErr <- a.server.ListenAndServe()
	}()
	log.Info("Serving API", "address", a.server.Addr)

	select {
	case <-ctx.Done():
		if err := a.Shutdown(ctx); err != nil {
			return errors.Join(ctx.Err(), err)
		}
		return ctx.Err()
	case err := <-cErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		if err != nil {
			log.Error("Failed to serve API", "error", err)
			return fmt.Errorf("failed to serve api: %w", err)
		}
		return nil
	}
}

// Shutdown gracefully stops the api server
func (a *api) Shutdown(ctx context.Context) error {
	sCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(sCtx); err != nil {
		return fmt.Errorf("failed to shut down api server: %w", err)
	}
	return nil
}
