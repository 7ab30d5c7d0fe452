// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package tracer

import (
	"context"
	"os/exec"
	"slices"

	"github.com/telekom/hopwatch/internal/logger"
)

var _ Runner = (*execRunner)(nil)

// Runner provides the raw text of one trace attempt against a destination.
//
//go:generate go tool moq -out runner_moq.go . Runner
type Runner interface {
	// Run invokes the tracer once for the given destination and returns
	// its raw textual output verbatim. Any invocation failure is absorbed
	// into an empty string, so the caller's only failure signal is an
	// empty result.
	Run(ctx context.Context, destination string) string
}

// execRunner shells out to the system traceroute binary.
type execRunner struct {
	binary string
	args   []string
}

// NewRunner returns a Runner that invokes the system traceroute binary
// with ICMP echo probes.
func NewRunner() Runner {
	return &execRunner{
		binary: "traceroute",
		args:   []string{"-I"},
	}
}

func (r *execRunner) Run(ctx context.Context, destination string) string {
	log := logger.FromContext(ctx)

	args := append(slices.Clone(r.args), destination)
	out, err := exec.CommandContext(ctx, r.binary, args...).Output()
	if err != nil {
		log.WarnContext(ctx, "Failed to invoke tracer", "destination", destination, "error", err)
		return ""
	}
	return string(out)
}
