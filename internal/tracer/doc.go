// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package tracer turns the raw textual output of the system route tracer
// into structured per-hop records.
//
// It exposes a [Runner] for obtaining the raw text of one trace attempt
// and [Parse] for converting that text into an ordered slice of [Hop]
// records.
//
// The parser is deliberately forgiving: tracer output is free-form,
// inconsistently spaced and platform dependent, so nothing in this package
// ever fails on malformed input. Lines that cannot be interpreted as a hop
// are skipped, and missing values (timed out probes, unresolved names,
// fully silent hops) become nil fields instead of errors or sentinels.
//
// Key behavior:
//   - The first non-blank line of the raw text is treated as the tracer's
//     column header and discarded
//   - Every hop record carries exactly three round-trip-time slots,
//     padded or truncated to tolerate tracers probing more or fewer times
//   - The token before each literal "ms" is a timing value, with "*"
//     marking a timed out probe
//   - The first IPv4 shaped token of a line is the hop's address, and the
//     token directly before it, when not itself IPv4 shaped, its hostname
//   - A hostname equal to the address is dropped as a duplicate
//
// Typical usage:
//
//	runner := tracer.NewRunner()
//	hops := tracer.Parse(runner.Run(ctx, "example.com"))
//
// The parser is a pure function without shared state and is safe to call
// concurrently.
package tracer
