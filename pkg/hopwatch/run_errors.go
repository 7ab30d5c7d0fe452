// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package hopwatch

import "errors"

// ErrFinalShutdown is returned when the hopwatch was shut down
var ErrFinalShutdown = errors.New("hopwatch was shut down")

// ErrShutdown holds any errors that may
// have occurred during shutdown of the Hopwatch
type ErrShutdown struct {
	errAPI     error
	errMetrics error
	errDB      error
}

// HasError returns true if any of the errors are set
func (e ErrShutdown) HasError() bool {
	return e.errAPI != nil || e.errMetrics != nil || e.errDB != nil
}
