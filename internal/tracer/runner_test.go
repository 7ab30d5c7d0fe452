// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package tracer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExecRunner_Run(t *testing.T) {
	t.Run("Returns the raw output verbatim", func(t *testing.T) {
		runner := &execRunner{binary: "echo", args: []string{header}}

		out := runner.Run(t.Context(), "example.com")
		require.NotEmpty(t, out)
		require.True(t, strings.Contains(out, "example.com"), "output should contain the destination")
	})

	t.Run("Absorbs invocation failures into an empty result", func(t *testing.T) {
		runner := &execRunner{binary: "hopwatch-test-missing-binary"}

		out := runner.Run(t.Context(), "example.com")
		require.Empty(t, out)
	})

	t.Run("Absorbs a canceled context into an empty result", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		runner := &execRunner{binary: "echo"}

		out := runner.Run(ctx, "example.com")
		require.Empty(t, out)
	})
}
