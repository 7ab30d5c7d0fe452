// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"net"
	"strings"
)

// defaultListeningAddress is used when no address is configured
const defaultListeningAddress = ":8080"

// Config is the configuration for the api server
type Config struct {
	// ListeningAddress is the address the api server listens on
	ListeningAddress string `yaml:"address" mapstructure:"address"`
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.ListeningAddress == "" {
		return nil
	}

	if !strings.Contains(c.ListeningAddress, ":") {
		return ErrInvalidListeningAddress
	}
	if _, _, err := net.SplitHostPort(c.ListeningAddress); err != nil {
		return ErrInvalidListeningAddress
	}
	return nil
}
