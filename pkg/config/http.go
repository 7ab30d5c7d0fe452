// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/telekom/hopwatch/internal/helper"
	"github.com/telekom/hopwatch/internal/logger"
	"github.com/telekom/hopwatch/pkg/checks/runtime"
	"gopkg.in/yaml.v3"
)

// defaultHttpTimeout bounds a single fetch of the remote configuration
const defaultHttpTimeout = 30 * time.Second

var _ Loader = (*HttpLoader)(nil)

type HttpLoader struct {
	config   LoaderConfig
	cRuntime chan<- runtime.Config
	done     chan struct{}
	client   *http.Client
}

func NewHttpLoader(cfg *Config, cRuntime chan<- runtime.Config) *HttpLoader {
	timeout := cfg.Loader.Http.Timeout
	if timeout == 0 {
		timeout = defaultHttpTimeout
	}

	return &HttpLoader{
		config:   cfg.Loader,
		cRuntime: cRuntime,
		done:     make(chan struct{}, 1),
		client:   &http.Client{Timeout: timeout},
	}
}

// Run gets the runtime configuration from the remote endpoint.
// The config will be loaded periodically defined by the loader interval configuration.
// Failed fetches are retried with the configured backoff.
// If the interval is 0, the configuration is only fetched once and the loader is disabled.
func (h *HttpLoader) Run(ctx context.Context) error {
	ctx, cancel := logger.NewContextWithLogger(ctx)
	defer cancel()
	log := logger.FromContext(ctx)

	getConfigRetry := helper.Retry(func(ctx context.Context) error {
		cfg, err := h.getRuntimeConfig(ctx)
		if err != nil {
			return err
		}
		h.cRuntime <- cfg
		return nil
	}, h.config.Http.RetryCfg)

	// Get the runtime configuration once on startup
	err := getConfigRetry(ctx)
	if err != nil {
		log.Warn("Could not get remote runtime configuration", "error", err)
		err = fmt.Errorf("could not get remote runtime configuration: %w", err)
	}

	if h.config.Interval == 0 {
		log.Info("Http Loader disabled")
		return err
	}

	tick := time.NewTicker(h.config.Interval)
	defer tick.Stop()

	for {
		select {
		case <-h.done:
			log.Info("Http Loader terminated")
			return nil
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
			if err := getConfigRetry(ctx); err != nil {
				log.Warn("Could not get remote runtime configuration", "error", err)
				tick.Reset(h.config.Interval)
				continue
			}

			log.Info("Successfully got remote runtime configuration")
			tick.Reset(h.config.Interval)
		}
	}
}

// getRuntimeConfig fetches the runtime configuration from the remote endpoint.
func (h *HttpLoader) getRuntimeConfig(ctx context.Context) (cfg runtime.Config, err error) {
	log := logger.FromContext(ctx).With("url", h.config.Http.Url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.config.Http.Url, http.NoBody)
	if err != nil {
		log.Error("Could not create http request", "error", err)
		return cfg, fmt.Errorf("failed to create http request: %w", err)
	}
	if h.config.Http.Token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", h.config.Http.Token))
	}

	resp, err := h.client.Do(req)
	if err != nil {
		log.Error("Http request failed", "error", err)
		return cfg, fmt.Errorf("http request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			log.Error("Failed to close response body", "error", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		log.Error("Http request responded with unexpected status code", "code", resp.StatusCode)
		return cfg, fmt.Errorf("request failed, status is %d", resp.StatusCode)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("Failed to read response body", "error", err)
		return cfg, fmt.Errorf("failed to read response body: %w", err)
	}

	if err := yaml.Unmarshal(b, &cfg); err != nil {
		log.Error("Failed to parse response body", "error", err)
		return cfg, fmt.Errorf("failed to parse response body: %w", err)
	}

	return cfg, nil
}

func (h *HttpLoader) Shutdown(ctx context.Context) {
	log := logger.FromContext(ctx)
	select {
	case h.done <- struct{}{}:
		log.Debug("Sending signal to shut down http loader")
	default:
	}
}
