// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package db

import "errors"

// ErrInvalidDBType is returned when the configured store type is unknown
var ErrInvalidDBType = errors.New("invalid database type")

// ErrInvalidSqlitePath is returned when the sqlite store is selected
// without a database file path
var ErrInvalidSqlitePath = errors.New("sqlite database path must be set")
