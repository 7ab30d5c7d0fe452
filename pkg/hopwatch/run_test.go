// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package hopwatch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/telekom/hopwatch/pkg/api"
	"github.com/telekom/hopwatch/pkg/config"
)

// TestHopwatch_Run_FullComponentStart tests that the Run method starts the API,
// loader and controller.
func TestHopwatch_Run_FullComponentStart(t *testing.T) {
	c := &config.Config{
		Api: api.Config{ListeningAddress: "localhost:0"},
		Loader: config.LoaderConfig{
			Type:     "file",
			File:     config.FileLoaderConfig{Path: "../config/test/data/config.yaml"},
			Interval: time.Second * 1,
		},
	}

	h, err := New(c)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	cErr := make(chan error, 1)
	go func() { cErr <- h.Run(ctx) }()

	t.Log("Running hopwatch for 100ms")
	<-time.After(100 * time.Millisecond)
	cancel()

	select {
	case err := <-cErr:
		require.ErrorIs(t, err, ErrFinalShutdown)
	case <-time.After(5 * time.Second):
		t.Fatal("hopwatch did not shut down in time")
	}
}

// TestHopwatch_Run_ContextCancel tests that after a context cancels the Run method
// will return an error and all started components will be shut down.
func TestHopwatch_Run_ContextCancel(t *testing.T) {
	c := &config.Config{
		Api: api.Config{ListeningAddress: "localhost:0"},
		Loader: config.LoaderConfig{
			Type:     "file",
			File:     config.FileLoaderConfig{Path: "../config/test/data/config.yaml"},
			Interval: time.Second * 1,
		},
	}

	h, err := New(c)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	cErr := make(chan error, 1)
	go func() { cErr <- h.Run(ctx) }()

	t.Log("Running hopwatch for 10ms")
	time.Sleep(time.Millisecond * 10)

	t.Log("Canceling context and waiting for shutdown")
	cancel()

	select {
	case err := <-cErr:
		if err == nil {
			t.Error("Hopwatch.Run() should have errored out, no error received")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("hopwatch did not shut down in time")
	}
}

// TestHopwatch_Run_ReconcilesRuntimeConfig tests that a runtime configuration
// sent by the loader ends up in a registered check.
func TestHopwatch_Run_ReconcilesRuntimeConfig(t *testing.T) {
	c := &config.Config{
		Api: api.Config{ListeningAddress: "localhost:0"},
		Loader: config.LoaderConfig{
			Type:     "file",
			File:     config.FileLoaderConfig{Path: "../config/test/data/config.yaml"},
			Interval: time.Second * 1,
		},
	}

	h, err := New(c)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	cErr := make(chan error, 1)
	go func() { cErr <- h.Run(ctx) }()

	require.Eventually(t, func() bool {
		return h.controller.hasCheck("trace")
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case <-cErr:
	case <-time.After(5 * time.Second):
		t.Fatal("hopwatch did not shut down in time")
	}
}
