// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package tracer

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

const (
	// unitMarker is the token the tracer prints after every timing value.
	unitMarker = "ms"
	// timeoutMarker is the token the tracer prints for a probe that
	// received no reply within its wait window.
	timeoutMarker = "*"
)

var (
	// ipv4Pattern matches tokens that start with four dot separated
	// groups of one to three digits.
	ipv4Pattern = regexp.MustCompile(`^\d{1,3}(?:\.\d{1,3}){3}`)
	// nonNumeric matches every character that cannot be part of a
	// decimal timing value.
	nonNumeric = regexp.MustCompile(`[^0-9.]`)
)

// Parse converts the raw output of one tracer invocation into an ordered
// slice of hop records, one per interpretable hop line. Lines that do not
// start with a hop number are skipped. Parse never fails: empty or garbage
// input yields an empty slice, and anomalies within a hop line degrade to
// nil fields.
func Parse(raw string) []Hop {
	hops := []Hop{}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return hops
	}

	lines := strings.Split(trimmed, "\n")
	// The first line is the tracer's column header and carries no hop data.
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}

		tokens := strings.Fields(line)
		number, err := strconv.Atoi(tokens[0])
		if err != nil {
			// Not a hop line.
			continue
		}

		address, hostname := parseIdentity(tokens)
		hops = append(hops, Hop{
			Number:   number,
			Address:  address,
			Hostname: hostname,
			RTT:      parseRTT(tokens),
		})
	}
	return hops
}

// parseRTT collects the timing values of one hop line. The token before
// each unit marker is one probe's round trip time; the timeout marker
// there is a probe without a reply. The sequence is padded with nil
// entries and truncated so it always holds exactly probeCount values.
func parseRTT(tokens []string) []*float64 {
	rtts := make([]*float64, 0, probeCount)
	for i, token := range tokens {
		if token != unitMarker || i == 0 {
			continue
		}

		value := tokens[i-1]
		if value == timeoutMarker {
			rtts = append(rtts, nil)
			continue
		}

		cleaned := nonNumeric.ReplaceAllString(value, "")
		ms, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			rtts = append(rtts, nil)
			continue
		}
		rtts = append(rtts, &ms)
	}

	for len(rtts) < probeCount {
		rtts = append(rtts, nil)
	}
	return rtts[:probeCount]
}

// parseIdentity extracts the address and hostname of one hop line. The
// span between the hop number and the first unit marker holds the identity
// tokens; the first IPv4 shaped token in it is the address, and the token
// directly before that, when not itself IPv4 shaped, is the hostname.
// Only the first such pair is used. A hop whose line holds no IPv4 shaped
// token has neither address nor hostname, which covers the fully timed
// out case of a line carrying only timeout markers.
func parseIdentity(tokens []string) (address, hostname *string) {
	idEnd := len(tokens)
	if i := slices.Index(tokens, unitMarker); i >= 0 {
		idEnd = i - 1
	}
	identity := tokens[1:]
	if idEnd > 1 {
		identity = tokens[1:idEnd]
	}

	for i, token := range identity {
		candidate := strings.Trim(token, "()")
		if !ipv4Pattern.MatchString(candidate) {
			continue
		}

		address = &candidate
		if i > 0 {
			if prev := strings.Trim(identity[i-1], "()"); !ipv4Pattern.MatchString(prev) {
				name := identity[i-1]
				hostname = &name
			}
		}
		break
	}

	// The tracer prints the address a second time as a pseudo name when
	// it has no distinct hostname for the hop. Drop that duplicate.
	if hostname != nil && address != nil && strings.Trim(*hostname, "()") == *address {
		hostname = nil
	}
	return address, hostname
}
