// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package factory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/telekom/hopwatch/pkg/checks/runtime"
	"github.com/telekom/hopwatch/pkg/checks/trace"
)

func TestNewChecksFromConfig(t *testing.T) {
	t.Run("Empty config creates no checks", func(t *testing.T) {
		cks, err := NewChecksFromConfig(runtime.Config{})
		require.NoError(t, err)
		require.Empty(t, cks)
	})

	t.Run("Trace config creates the trace check", func(t *testing.T) {
		cks, err := NewChecksFromConfig(runtime.Config{
			Trace: &trace.Config{
				Destinations: []string{"example.com"},
				Interval:     time.Minute,
			},
		})
		require.NoError(t, err)
		require.Len(t, cks, 1)
		require.Contains(t, cks, trace.CheckName)
	})

	t.Run("Invalid config is rejected", func(t *testing.T) {
		_, err := NewChecksFromConfig(runtime.Config{
			Trace: &trace.Config{
				Destinations: []string{"example.com"},
			},
		})
		require.Error(t, err)
	})
}

func TestNewCheck(t *testing.T) {
	t.Run("Nil config fails", func(t *testing.T) {
		_, err := NewCheck(nil)
		require.Error(t, err)
	})

	t.Run("Known check is created", func(t *testing.T) {
		c, err := NewCheck(&trace.Config{Destinations: []string{"example.com"}, Interval: time.Minute})
		require.NoError(t, err)
		require.Equal(t, trace.CheckName, c.Name())
	})
}
