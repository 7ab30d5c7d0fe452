// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package hopwatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/telekom/hopwatch/internal/logger"
	"github.com/telekom/hopwatch/pkg/api"
	"github.com/telekom/hopwatch/pkg/checks/runtime"
	"github.com/telekom/hopwatch/pkg/config"
	"github.com/telekom/hopwatch/pkg/db"
	"github.com/telekom/hopwatch/pkg/hopwatch/metrics"
)

const shutdownTimeout = time.Second * 90

// Hopwatch is the main struct of the hopwatch application
type Hopwatch struct {
	// config is the startup configuration of the hopwatch
	config *config.Config
	// db is the database used to store the check results
	db db.DB
	// api is the hopwatch's API
	api api.API
	// loader is used to load the runtime configuration
	loader config.Loader
	// metrics is used to collect metrics
	metrics metrics.Provider
	// controller is used to manage the checks
	controller *ChecksController
	// cRuntime is used to signal that the runtime configuration has changed
	cRuntime chan runtime.Config
	// cErr is used to handle non-recoverable errors of the hopwatch components
	cErr chan error
	// cDone is used to signal that the hopwatch was shut down because of an error
	cDone chan struct{}
	// shutOnce is used to ensure that the shutdown function is only called once
	shutOnce sync.Once
}

// New creates a new hopwatch from a given configfile
func New(cfg *config.Config) (*Hopwatch, error) {
	m := metrics.New(cfg.Telemetry)
	dbase, err := db.New(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create result store: %w", err)
	}

	hw := &Hopwatch{
		config:     cfg,
		db:         dbase,
		api:        api.New(cfg.Api),
		metrics:    m,
		controller: NewChecksController(dbase, m),
		cRuntime:   make(chan runtime.Config, 1),
		cErr:       make(chan error, 1),
		cDone:      make(chan struct{}, 1),
		shutOnce:   sync.Once{},
	}
	hw.loader = config.NewLoader(cfg, hw.cRuntime)

	return hw, nil
}

// Run starts the hopwatch
func (h *Hopwatch) Run(ctx context.Context) error {
	ctx, cancel := logger.NewContextWithLogger(ctx)
	log := logger.FromContext(ctx)
	defer cancel()

	err := h.metrics.InitTracing(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if h.config.Name != "" {
		meta := h.config.Metadata
		if iErr := metrics.RegisterInstanceInfo(h.metrics.GetRegistry(), h.config.Name, meta.Team.Name, meta.Team.Email, meta.Platform); iErr != nil {
			log.Warn("Failed to register instance info metric", "error", iErr)
		}
	}

	go func() {
		h.cErr <- h.loader.Run(ctx)
	}()

	go func() {
		h.cErr <- h.startupAPI(ctx)
	}()

	go func() {
		h.cErr <- h.controller.Run(ctx)
	}()

	for {
		select {
		case cfg := <-h.cRuntime:
			h.controller.Reconcile(ctx, cfg)
		case <-ctx.Done():
			h.shutdown(ctx)
		case err := <-h.cErr:
			if err != nil {
				log.Error("Non-recoverable error in hopwatch component", "error", err)
				h.shutdown(ctx)
			}
		case <-h.cDone:
			log.InfoContext(ctx, "Hopwatch was shut down")
			return ErrFinalShutdown
		}
	}
}

// shutdown shuts down the hopwatch and all managed components gracefully.
func (h *Hopwatch) shutdown(ctx context.Context) {
	errC := ctx.Err()
	log := logger.FromContext(ctx)
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	h.shutOnce.Do(func() {
		log.InfoContext(ctx, "Shutting down hopwatch")
		var sErrs ErrShutdown
		sErrs.errAPI = h.api.Shutdown(ctx)
		sErrs.errMetrics = h.metrics.Shutdown(ctx)
		h.loader.Shutdown(ctx)
		h.controller.Shutdown(ctx)
		sErrs.errDB = h.db.Close()

		if sErrs.HasError() {
			log.ErrorContext(ctx, "Failed to shutdown gracefully", "contextError", errC, "errors", sErrs)
		}

		// Signal that shutdown is complete
		h.cDone <- struct{}{}
	})
}
