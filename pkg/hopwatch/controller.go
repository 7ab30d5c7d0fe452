// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package hopwatch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/telekom/hopwatch/internal/logger"
	"github.com/telekom/hopwatch/pkg/checks"
	"github.com/telekom/hopwatch/pkg/checks/runtime"
	"github.com/telekom/hopwatch/pkg/db"
	"github.com/telekom/hopwatch/pkg/factory"
	"github.com/telekom/hopwatch/pkg/hopwatch/metrics"
)

// ChecksController manages the lifecycle of the configured checks.
// It reconciles the running checks with the runtime configuration,
// stores their results and exposes their prometheus collectors.
type ChecksController struct {
	db      db.DB
	metrics metrics.Provider
	checks  runtime.Checks
	cResult chan checks.ResultDTO
	cErr    chan error
	done    chan struct{}
	// shutOnce guards against concurrent shutdowns racing on the
	// registered checks
	shutOnce sync.Once
}

// NewChecksController creates a new ChecksController
func NewChecksController(dbase db.DB, m metrics.Provider) *ChecksController {
	return &ChecksController{
		db:      dbase,
		metrics: m,
		checks:  runtime.Checks{},
		cResult: make(chan checks.ResultDTO, 1),
		cErr:    make(chan error, 1),
		done:    make(chan struct{}, 1),
	}
}

// Run runs the controller until the context is canceled.
// Check results are persisted as they arrive.
func (cc *ChecksController) Run(ctx context.Context) error {
	ctx, cancel := logger.NewContextWithLogger(ctx)
	defer cancel()

	for {
		select {
		case result := <-cc.cResult:
			cc.db.Save(result)
		case <-ctx.Done():
			cc.Shutdown(ctx)
			return ctx.Err()
		case err := <-cc.cErr:
			var runErr *ErrRunningCheck
			if errors.As(err, &runErr) {
				cc.UnregisterCheck(ctx, runErr.Check)
			}
			return err
		case <-cc.done:
			return nil
		}
	}
}

// Shutdown shuts down the controller and all running checks
func (cc *ChecksController) Shutdown(ctx context.Context) {
	cc.shutOnce.Do(func() {
		log := logger.FromContext(ctx)
		log.Info("Shutting down checks controller")

		for c := range cc.checks.Iter() {
			cc.UnregisterCheck(ctx, c)
		}
		select {
		case cc.done <- struct{}{}:
		default:
		}
	})
}

// Reconcile reconciles the checks with the runtime configuration.
// Registered checks that are no longer configured are unregistered,
// new checks are created and running checks are updated in place.
func (cc *ChecksController) Reconcile(ctx context.Context, cfg runtime.Config) {
	log := logger.FromContext(ctx)

	for c := range cc.checks.Iter() {
		if !cfg.HasCheck(c.Name()) {
			cc.UnregisterCheck(ctx, c)
			continue
		}

		if err := c.UpdateConfig(cfg.For(c.Name())); err != nil {
			log.ErrorContext(ctx, "Failed to update check", "check", c.Name(), "error", err)
		}
	}

	for c := range cfg.Iter() {
		if cc.hasCheck(c.For()) {
			continue
		}

		check, err := factory.NewCheck(c)
		if err != nil {
			log.ErrorContext(ctx, "Failed to create check", "check", c.For(), "error", err)
			continue
		}
		cc.RegisterCheck(ctx, check)
	}
}

// RegisterCheck registers and starts a new check
func (cc *ChecksController) RegisterCheck(ctx context.Context, check checks.Check) {
	log := logger.FromContext(ctx).With("check", check.Name())

	for _, collector := range check.GetMetricCollectors() {
		if err := cc.metrics.GetRegistry().Register(collector); err != nil {
			log.ErrorContext(ctx, "Could not register check metrics", "error", err)
		}
	}

	go func() {
		if err := check.Run(ctx, cc.cResult); err != nil {
			log.ErrorContext(ctx, "Failed to run check", "error", err)
			cc.cErr <- &ErrRunningCheck{Check: check, Err: err}
		}
	}()

	cc.checks.Add(check)
	log.InfoContext(ctx, "Check registered")
}

// UnregisterCheck stops and unregisters a check
func (cc *ChecksController) UnregisterCheck(ctx context.Context, check checks.Check) {
	log := logger.FromContext(ctx).With("check", check.Name())

	for _, collector := range check.GetMetricCollectors() {
		cc.metrics.GetRegistry().Unregister(collector)
	}

	check.Shutdown()
	cc.checks.Delete(check)
	log.InfoContext(ctx, "Check unregistered")
}

// hasCheck returns true if a check with the given name is registered
func (cc *ChecksController) hasCheck(name string) bool {
	for c := range cc.checks.Iter() {
		if c.Name() == name {
			return true
		}
	}
	return false
}

// GenerateCheckSpecs generates the openapi document for the registered checks
func (cc *ChecksController) GenerateCheckSpecs(ctx context.Context) (openapi3.T, error) {
	log := logger.FromContext(ctx)

	doc := openapi3.T{
		OpenAPI: "3.0.0",
		Info: &openapi3.Info{
			Title:       "hopwatch metrics API",
			Description: "Serves results of the configured checks",
			Version:     "0.1.0",
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: make(openapi3.Schemas),
		},
	}

	for c := range cc.checks.Iter() {
		name := c.Name()
		schema, err := c.Schema()
		if err != nil {
			log.ErrorContext(ctx, "Failed to get schema of check", "check", name, "error", err)
			return doc, &ErrCreateOpenapiSchema{name: name, err: err}
		}

		doc.Components.Schemas[name] = schema
		doc.Paths.Set(fmt.Sprintf("/v1/checks/%s", name), &openapi3.PathItem{
			Description: fmt.Sprintf("Returns the latest result of the %s check", name),
			Get: &openapi3.Operation{
				Description: fmt.Sprintf("Get the latest result of the %s check", name),
				Tags:        []string{"checks", name},
				Responses: openapi3.NewResponses(
					openapi3.WithStatus(200, &openapi3.ResponseRef{
						Value: openapi3.NewResponse().
							WithDescription("Latest check result").
							WithJSONSchemaRef(schema),
					}),
				),
			},
		})
	}

	return doc, nil
}
