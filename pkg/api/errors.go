// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package api

import "errors"

// ErrInvalidListeningAddress is returned when the configured
// listening address is not a host:port pair
var ErrInvalidListeningAddress = errors.New("invalid api listening address")

// ErrInvalidRoute is returned when a route without a handler is registered
var ErrInvalidRoute = errors.New("invalid route")
