// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package db stores check results. The in-memory store keeps the latest
// result and a bounded history per check; the sqlite store additionally
// archives every result so RTT trends survive restarts.
package db

import (
	"fmt"
	"sync"

	"github.com/telekom/hopwatch/pkg/checks"
)

// historyLimit caps the number of results the in-memory store
// keeps per check.
const historyLimit = 100

// DB is the interface for the hopwatch result store
//
//go:generate go tool moq -out db_moq.go . DB
type DB interface {
	// Save stores the result of a check run
	Save(result checks.ResultDTO)
	// Get returns the latest result of the check with the given name
	Get(check string) (checks.Result, bool)
	// List returns the latest result of every check
	List() map[string]checks.Result
	// History returns up to limit past results of the check,
	// newest first
	History(check string, limit int) ([]checks.Result, error)
	// Close releases the store's resources
	Close() error
}

// Config is the configuration of the result store
type Config struct {
	// Type selects the store implementation, "memory" or "sqlite"
	Type string `yaml:"type" mapstructure:"type"`
	// Sqlite is the configuration of the sqlite store
	Sqlite SqliteConfig `yaml:"sqlite" mapstructure:"sqlite"`
}

// SqliteConfig is the configuration of the sqlite store
type SqliteConfig struct {
	// Path is the location of the database file
	Path string `yaml:"path" mapstructure:"path"`
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Type {
	case "", "memory":
		return nil
	case "sqlite":
		if c.Sqlite.Path == "" {
			return ErrInvalidSqlitePath
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidDBType, c.Type)
	}
}

// New creates the result store selected by the config
func New(cfg Config) (DB, error) {
	if cfg.Type == "sqlite" {
		return NewSqlite(cfg.Sqlite.Path)
	}
	return NewInMemory(), nil
}

var _ DB = (*InMemory)(nil)

// InMemory is a result store backed by in-process maps
type InMemory struct {
	mu      sync.RWMutex
	latest  map[string]checks.Result
	history map[string][]checks.Result
}

// NewInMemory creates a new in-memory result store
func NewInMemory() *InMemory {
	return &InMemory{
		latest:  map[string]checks.Result{},
		history: map[string][]checks.Result{},
	}
}

// Save stores the result of a check run
func (i *InMemory) Save(result checks.ResultDTO) {
	if result.Result == nil {
		return
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	i.latest[result.Name] = *result.Result

	h := append(i.history[result.Name], *result.Result)
	if len(h) > historyLimit {
		h = h[len(h)-historyLimit:]
	}
	i.history[result.Name] = h
}

// Get returns the latest result of the check with the given name
func (i *InMemory) Get(check string) (checks.Result, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	res, ok := i.latest[check]
	return res, ok
}

// List returns the latest result of every check
func (i *InMemory) List() map[string]checks.Result {
	i.mu.RLock()
	defer i.mu.RUnlock()

	results := make(map[string]checks.Result, len(i.latest))
	for name, res := range i.latest {
		results[name] = res
	}
	return results
}

// History returns up to limit past results of the check, newest first
func (i *InMemory) History(check string, limit int) ([]checks.Result, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	h := i.history[check]
	results := make([]checks.Result, 0, len(h))
	for j := len(h) - 1; j >= 0 && len(results) < limit; j-- {
		results = append(results, h[j])
	}
	return results, nil
}

// Close releases the store's resources
func (i *InMemory) Close() error {
	return nil
}
