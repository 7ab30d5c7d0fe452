// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/grpc/credentials"
)

// Exporter is the otlp exporter used to export the traces
type Exporter string

const (
	// HTTP exports the traces to an otlp collector over http
	HTTP Exporter = "http"
	// GRPC exports the traces to an otlp collector over grpc
	GRPC Exporter = "grpc"
	// STDOUT prints the traces to the standard output
	STDOUT Exporter = "stdout"
	// NOOP discards the traces
	NOOP Exporter = ""
)

type factory func(ctx context.Context, config *Config) (sdktrace.SpanExporter, error)

var registry = map[Exporter]factory{
	HTTP:   newHTTPExporter,
	GRPC:   newGRPCExporter,
	STDOUT: newStdoutExporter,
	NOOP:   newNoopExporter,
}

// Create creates a new span exporter based on the configuration
func (e Exporter) Create(ctx context.Context, config *Config) (sdktrace.SpanExporter, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return registry[e](ctx, config)
}

// Validate checks if the exporter is supported
func (e Exporter) Validate() error {
	if _, ok := registry[e]; !ok {
		return fmt.Errorf("unsupported exporter type: %q", e)
	}
	return nil
}

// IsExporting returns true if the exporter sends traces to a collector
func (e Exporter) IsExporting() bool {
	return e == HTTP || e == GRPC
}

func (e Exporter) String() string {
	if e == NOOP {
		return "noop"
	}
	return string(e)
}

func newHTTPExporter(ctx context.Context, config *Config) (sdktrace.SpanExporter, error) {
	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(config.Url),
		otlptracehttp.WithHeaders(config.headers()),
	}

	if config.TLS.Enabled {
		tlsCfg, err := config.TLS.tlsConfig()
		if err != nil {
			return nil, err
		}
		opts = append(opts, otlptracehttp.WithTLSClientConfig(tlsCfg))
	} else {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	return otlptracehttp.New(ctx, opts...)
}

func newGRPCExporter(ctx context.Context, config *Config) (sdktrace.SpanExporter, error) {
	opts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(config.Url),
		otlptracegrpc.WithHeaders(config.headers()),
	}

	if config.TLS.Enabled {
		tlsCfg, err := config.TLS.tlsConfig()
		if err != nil {
			return nil, err
		}
		opts = append(opts, otlptracegrpc.WithTLSCredentials(credentials.NewTLS(tlsCfg)))
	} else {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}

	return otlptracegrpc.New(ctx, opts...)
}

func newStdoutExporter(_ context.Context, _ *Config) (sdktrace.SpanExporter, error) {
	return stdouttrace.New(stdouttrace.WithPrettyPrint())
}

func newNoopExporter(_ context.Context, _ *Config) (sdktrace.SpanExporter, error) {
	return noopExporter{}, nil
}

// tlsConfig builds the tls configuration for the collector connection.
// A custom certificate file is only loaded when a path is set.
func (t *TLSConfig) tlsConfig() (*tls.Config, error) {
	cfg := &tls.Config{MinVersion: tls.VersionTLS12}
	if t.CertPath == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(t.CertPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read certificate file %q: %w", t.CertPath, err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(b) {
		return nil, fmt.Errorf("failed to parse certificate file %q", t.CertPath)
	}
	cfg.RootCAs = pool
	return cfg, nil
}

// noopExporter discards all spans
type noopExporter struct{}

func (noopExporter) ExportSpans(_ context.Context, _ []sdktrace.ReadOnlySpan) error { return nil }

func (noopExporter) Shutdown(_ context.Context) error { return nil }
