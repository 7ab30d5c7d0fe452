// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/telekom/hopwatch/pkg/checks"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "empty config defaults to memory", cfg: Config{}},
		{name: "memory store", cfg: Config{Type: "memory"}},
		{name: "sqlite store with path", cfg: Config{Type: "sqlite", Sqlite: SqliteConfig{Path: "results.db"}}},
		{name: "sqlite store without path", cfg: Config{Type: "sqlite"}, wantErr: true},
		{name: "unknown store type", cfg: Config{Type: "postgres"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestInMemory_SaveAndGet(t *testing.T) {
	store := NewInMemory()
	t.Cleanup(func() { require.NoError(t, store.Close()) })

	_, ok := store.Get("trace")
	require.False(t, ok)

	want := checks.Result{Data: "hop data", Timestamp: time.Now().UTC()}
	store.Save(checks.ResultDTO{Name: "trace", Result: &want})

	got, ok := store.Get("trace")
	require.True(t, ok)
	require.Equal(t, want, got)

	list := store.List()
	require.Len(t, list, 1)
	require.Equal(t, want, list["trace"])
}

func TestInMemory_SaveNilResult(t *testing.T) {
	store := NewInMemory()
	store.Save(checks.ResultDTO{Name: "trace"})

	_, ok := store.Get("trace")
	require.False(t, ok)
}

func TestInMemory_History(t *testing.T) {
	store := NewInMemory()

	for i := range 5 {
		store.Save(checks.ResultDTO{
			Name:   "trace",
			Result: &checks.Result{Data: fmt.Sprintf("run %d", i), Timestamp: time.Now().UTC()},
		})
	}

	history, err := store.History("trace", 3)
	require.NoError(t, err)
	require.Len(t, history, 3)
	// Newest first
	require.Equal(t, "run 4", history[0].Data)
	require.Equal(t, "run 2", history[2].Data)
}

func TestInMemory_HistoryBounded(t *testing.T) {
	store := NewInMemory()

	for i := range historyLimit + 10 {
		store.Save(checks.ResultDTO{
			Name:   "trace",
			Result: &checks.Result{Data: i, Timestamp: time.Now().UTC()},
		})
	}

	history, err := store.History("trace", historyLimit*2)
	require.NoError(t, err)
	require.Len(t, history, historyLimit)
	require.Equal(t, historyLimit+9, history[0].Data)
}

func TestNew(t *testing.T) {
	t.Run("defaults to the in-memory store", func(t *testing.T) {
		store, err := New(Config{})
		require.NoError(t, err)
		require.IsType(t, &InMemory{}, store)
	})

	t.Run("creates a sqlite store", func(t *testing.T) {
		store, err := New(Config{Type: "sqlite", Sqlite: SqliteConfig{Path: t.TempDir() + "/results.db"}})
		require.NoError(t, err)
		require.IsType(t, &Sqlite{}, store)
		require.NoError(t, store.Close())
	})
}
