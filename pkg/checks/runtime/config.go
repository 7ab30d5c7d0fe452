// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package runtime

import (
	"errors"
	"iter"

	"github.com/telekom/hopwatch/pkg/checks"
	"github.com/telekom/hopwatch/pkg/checks/trace"
)

// Config holds the runtime configuration
// for the various checks
// the hopwatch supports
type Config struct {
	Trace *trace.Config `yaml:"trace" json:"trace"`
}

// Empty returns true if no checks are configured
func (c Config) Empty() bool {
	return c.size() == 0
}

func (c Config) Validate() (err error) {
	for cfg := range c.Iter() {
		if vErr := cfg.Validate(); vErr != nil {
			err = errors.Join(err, vErr)
		}
	}

	return err
}

// Iter returns configured checks as an iterator
func (c Config) Iter() iter.Seq[checks.Runtime] {
	return func(yield func(checks.Runtime) bool) {
		if c.Trace != nil {
			if !yield(c.Trace) {
				return
			}
		}
	}
}

// size returns the number of checks configured
func (c Config) size() int {
	size := 0
	if c.HasTraceCheck() {
		size++
	}
	return size
}

// HasTraceCheck returns true if the config has a trace check configured
func (c Config) HasTraceCheck() bool {
	return c.Trace != nil
}

// HasCheck returns true if the config has a check with the given name configured
func (c Config) HasCheck(name string) bool {
	switch name {
	case trace.CheckName:
		return c.HasTraceCheck()
	default:
		return false
	}
}

// For returns the runtime configuration for the check with the given name
func (c Config) For(name string) checks.Runtime {
	switch name {
	case trace.CheckName:
		if c.HasTraceCheck() {
			return c.Trace
		}
	}
	return nil
}
