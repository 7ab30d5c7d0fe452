// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/telekom/hopwatch/internal/logger"
	"github.com/telekom/hopwatch/internal/tracer"
	"github.com/telekom/hopwatch/pkg/checks"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
)

var (
	_ checks.Check   = (*Trace)(nil)
	_ checks.Runtime = (*Config)(nil)
)

const CheckName = "trace"

// Trace is a check that samples the network path to its destinations by
// repeatedly invoking the route tracer and aggregating per-hop RTT trends.
type Trace struct {
	checks.CheckBase
	config  Config
	metrics metrics
	runner  tracer.Runner
	tracer  oteltrace.Tracer
}

// NewCheck creates a new instance of the trace check
func NewCheck() checks.Check {
	c := &Trace{
		CheckBase: checks.CheckBase{
			Mu:       sync.Mutex{},
			DoneChan: make(chan struct{}, 1),
		},
		config: Config{
			Samples:        defaultSamples,
			SampleInterval: defaultSampleInterval,
			Timeout:        defaultTimeout,
		},
		runner:  tracer.NewRunner(),
		metrics: newMetrics(),
	}
	c.tracer = otel.Tracer(c.Name())
	return c
}

// Run runs the check in a loop sending results to the provided channel
func (tr *Trace) Run(ctx context.Context, cResult chan checks.ResultDTO) error {
	ctx, cancel := logger.NewContextWithLogger(ctx)
	defer cancel()
	log := logger.FromContext(ctx)

	interval := tr.GetConfig().(*Config).Interval

	log.InfoContext(ctx, "Starting trace check", "interval", interval.String())
	for {
		select {
		case <-ctx.Done():
			log.ErrorContext(ctx, "Context canceled", "error", ctx.Err())
			return ctx.Err()
		case <-tr.DoneChan:
			log.Debug("Soft shut down")
			return nil
		case <-time.After(interval):
			res := tr.check(ctx)
			cResult <- checks.ResultDTO{
				Name: tr.Name(),
				Result: &checks.Result{
					Data:      res,
					Timestamp: time.Now(),
				},
			}
			log.DebugContext(ctx, "Successfully finished trace check run")

			// Re-read interval in case config was updated
			interval = tr.GetConfig().(*Config).Interval
		}
	}
}

// GetConfig returns a copy of the current configuration of the check
func (tr *Trace) GetConfig() checks.Runtime {
	tr.Mu.Lock()
	defer tr.Mu.Unlock()
	configCopy := tr.config
	return &configCopy
}

// check runs one sampling session per destination, all in parallel
func (tr *Trace) check(ctx context.Context) result {
	log := logger.FromContext(ctx)
	ctx, span := tr.tracer.Start(ctx, "trace.check")
	defer span.End()

	cfg := tr.GetConfig().(*Config)
	if len(cfg.Destinations) == 0 {
		log.WarnContext(ctx, "No destinations configured for trace check")
		return result{}
	}
	span.SetAttributes(
		attribute.Int("hopwatch.trace.destinations", len(cfg.Destinations)),
		attribute.Int("hopwatch.trace.samples", cfg.Samples),
	)

	var wg sync.WaitGroup
	var mu sync.Mutex
	res := result{}

	for _, d := range cfg.Destinations {
		destination := d
		wg.Add(1)

		go func() {
			defer wg.Done()
			data := tr.sample(ctx, destination, cfg)

			mu.Lock()
			res[destination] = data
			mu.Unlock()

			tr.metrics.Set(destination, data)
		}()
	}
	wg.Wait()

	return res
}

// sample runs one sampling session against a destination: cfg.Samples
// tracer invocations spaced cfg.SampleInterval apart, each parsed and
// tagged with its sample index and timestamp.
func (tr *Trace) sample(ctx context.Context, destination string, cfg *Config) pathData {
	log := logger.FromContext(ctx).With("destination", destination)

	data := pathData{Samples: make([]Sample, 0, cfg.Samples)}
	for i := range cfg.Samples {
		if i > 0 {
			select {
			case <-ctx.Done():
				data.Trends = aggregateTrends(data.Samples)
				return data
			case <-time.After(cfg.SampleInterval):
			}
		}

		hops := tracer.Parse(tr.trace(ctx, destination, cfg.Timeout))
		if len(hops) == 0 {
			// Either the destination produced no interpretable hops or
			// the tracer invocation failed; both look the same here.
			log.WarnContext(ctx, "Trace produced no hops", "sample", i+1)
		}

		data.Samples = append(data.Samples, Sample{
			Sample:    i + 1,
			Timestamp: time.Now().UTC(),
			Hops:      hops,
		})
	}

	data.Trends = aggregateTrends(data.Samples)
	return data
}

// trace obtains the raw text of a single trace attempt
func (tr *Trace) trace(ctx context.Context, destination string, timeout time.Duration) string {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return tr.runner.Run(ctx, destination)
}

// Shutdown is called once when the check is unregistered or hopwatch shuts down
func (tr *Trace) Shutdown() {
	tr.DoneChan <- struct{}{}
	close(tr.DoneChan)
}

// UpdateConfig is called once when the check is registered
// This is also called while the check is running, if the configuration is reloaded
// This should return an error if the config is invalid
func (tr *Trace) UpdateConfig(cfg checks.Runtime) error {
	if c, ok := cfg.(*Config); ok {
		tr.Mu.Lock()
		defer tr.Mu.Unlock()

		for _, destination := range tr.config.Destinations {
			if !slices.Contains(c.Destinations, destination) {
				err := tr.metrics.Remove(destination)
				if err != nil {
					return err
				}
			}
		}

		c.applyDefaults()
		tr.config = *c
		return nil
	}

	return checks.ErrConfigMismatch{
		Expected: CheckName,
		Current:  cfg.For(),
	}
}

// Schema returns an openapi3.SchemaRef of the result type returned by the check
func (tr *Trace) Schema() (*openapi3.SchemaRef, error) {
	return checks.OpenapiFromPerfData(result{})
}

// GetMetricCollectors allows the check to provide prometheus metric collectors
func (tr *Trace) GetMetricCollectors() []prometheus.Collector {
	return tr.metrics.List()
}

// Name returns the name of the check
func (tr *Trace) Name() string {
	return CheckName
}

// RemoveLabelledMetrics removes the metrics which have the passed
// target as a label
func (tr *Trace) RemoveLabelledMetrics(target string) error {
	return tr.metrics.Remove(target)
}
