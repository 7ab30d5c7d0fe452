// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/telekom/hopwatch/pkg/checks"
)

const (
	// defaultSamples is the number of traces taken per sampling session
	// when the configuration does not specify one.
	defaultSamples = 3
	// defaultSampleInterval is the pause between consecutive traces of a
	// session when the configuration does not specify one.
	defaultSampleInterval = 5 * time.Second
	// defaultTimeout bounds a single tracer invocation when the
	// configuration does not specify one.
	defaultTimeout = 60 * time.Second
)

// Config is the configuration for the trace check
type Config struct {
	// Destinations is the list of hosts or addresses to trace to.
	Destinations []string `json:"destinations,omitempty" yaml:"destinations,omitempty" mapstructure:"destinations"`
	// Interval is the interval between sampling sessions.
	Interval time.Duration `json:"interval" yaml:"interval" mapstructure:"interval"`
	// Samples is the number of traces taken per sampling session.
	Samples int `json:"samples" yaml:"samples" mapstructure:"samples"`
	// SampleInterval is the pause between consecutive traces of a session.
	SampleInterval time.Duration `json:"sampleInterval" yaml:"sampleInterval" mapstructure:"sampleInterval"`
	// Timeout is the timeout for a single tracer invocation.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// For returns the name of the check
func (c *Config) For() string {
	return CheckName
}

// applyDefaults fills unset sampling parameters with their defaults
func (c *Config) applyDefaults() {
	if c.Samples == 0 {
		c.Samples = defaultSamples
	}
	if c.SampleInterval == 0 {
		c.SampleInterval = defaultSampleInterval
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Interval <= 0 {
		return checks.ErrInvalidConfig{CheckName: CheckName, Field: "trace.interval", Reason: "must be greater than 0"}
	}

	if c.Samples < 0 {
		return checks.ErrInvalidConfig{CheckName: CheckName, Field: "trace.samples", Reason: "must not be negative"}
	}

	if c.SampleInterval < 0 {
		return checks.ErrInvalidConfig{CheckName: CheckName, Field: "trace.sampleInterval", Reason: "must not be negative"}
	}

	if c.Timeout < 0 {
		return checks.ErrInvalidConfig{CheckName: CheckName, Field: "trace.timeout", Reason: "must not be negative"}
	}

	for i, d := range c.Destinations {
		if ip := net.ParseIP(d); ip != nil {
			continue
		}

		if _, err := url.Parse(d); err != nil {
			return checks.ErrInvalidConfig{CheckName: CheckName, Field: fmt.Sprintf("trace.destinations[%d]", i), Reason: "invalid url or ip"}
		}
	}
	return nil
}
