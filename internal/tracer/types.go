// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package tracer

import (
	"fmt"
	"strings"
)

// probeCount is the number of probes the tracer sends per hop and
// therefore the fixed length of every hop's RTT sequence.
const probeCount = 3

// Hop is one measured (or missing) hop along a traced path.
// Optional fields are pointers; nil means the tracer did not report
// a value, which is distinct from a reported zero.
type Hop struct {
	// Number is the 1-based position of the hop along the path.
	Number int `json:"hop" yaml:"hop"`
	// Address is the network address reported for the hop.
	// It is nil when every probe for the hop timed out.
	Address *string `json:"address,omitempty" yaml:"address,omitempty"`
	// Hostname is the name reported for the hop. It is nil when the
	// tracer reported no name distinct from the address. A hop without
	// an address never carries a hostname.
	Hostname *string `json:"hostname,omitempty" yaml:"hostname,omitempty"`
	// RTT holds exactly three round trip times in milliseconds, in
	// probe order. A nil entry is a probe that timed out.
	RTT []*float64 `json:"rtt" yaml:"rtt"`
}

// AvgRTT returns the average of the hop's measured round trip times in
// milliseconds, ignoring timed out probes. It returns nil when no probe
// was answered.
func (h Hop) AvgRTT() *float64 {
	sum := 0.0
	n := 0
	for _, rtt := range h.RTT {
		if rtt == nil {
			continue
		}
		sum += *rtt
		n++
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}

func (h Hop) String() string {
	name := "*"
	if h.Address != nil {
		name = *h.Address
	}
	if h.Hostname != nil {
		name = fmt.Sprintf("%s (%s)", *h.Hostname, name)
	}

	rtts := make([]string, 0, len(h.RTT))
	for _, rtt := range h.RTT {
		if rtt == nil {
			rtts = append(rtts, "*")
			continue
		}
		rtts = append(rtts, fmt.Sprintf("%.3f ms", *rtt))
	}

	return fmt.Sprintf("%-2d  %-45.45s  %s", h.Number, name, strings.Join(rtts, "  "))
}
