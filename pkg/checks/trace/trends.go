// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"maps"
	"slices"
	"time"

	"github.com/telekom/hopwatch/internal/tracer"
)

// result maps each destination to the data of its last sampling session.
type result map[string]pathData

// pathData holds the tagged samples of one session and the per-hop
// trends aggregated from them.
type pathData struct {
	// Samples are the individual traces of the session, in sampling order.
	Samples []Sample `json:"samples"`
	// Trends aggregates each hop position across all samples.
	Trends []HopTrend `json:"trends"`
}

// Sample is one parsed trace, tagged with its 1-based index within the
// sampling session and the UTC time it was taken.
type Sample struct {
	Sample    int          `json:"sample"`
	Timestamp time.Time    `json:"timestamp"`
	Hops      []tracer.Hop `json:"hops"`
}

// HopTrend aggregates one hop position across the samples of a session.
type HopTrend struct {
	// Hop is the 1-based position along the path.
	Hop int `json:"hop"`
	// AvgRTT is the mean of the per-sample average round trip times in
	// milliseconds. It is nil when the hop answered no probe in any sample.
	AvgRTT *float64 `json:"avgRtt,omitempty"`
	// MinRTT and MaxRTT are the extremes of all measured probes.
	MinRTT *float64 `json:"minRtt,omitempty"`
	MaxRTT *float64 `json:"maxRtt,omitempty"`
	// Loss is the share of timed out probes in percent.
	Loss float64 `json:"loss"`
}

// aggregateTrends computes the per-hop RTT trend over the samples of one
// session. Hops are keyed by their position; a hop missing from a sample
// simply does not contribute to its trend.
func aggregateTrends(samples []Sample) []HopTrend {
	byHop := map[int][]tracer.Hop{}
	for _, sample := range samples {
		for _, hop := range sample.Hops {
			byHop[hop.Number] = append(byHop[hop.Number], hop)
		}
	}

	trends := make([]HopTrend, 0, len(byHop))
	for _, number := range slices.Sorted(maps.Keys(byHop)) {
		trend := HopTrend{Hop: number}

		avgSum := 0.0
		avgCount := 0
		probes := 0
		timeouts := 0
		for _, hop := range byHop[number] {
			if avg := hop.AvgRTT(); avg != nil {
				avgSum += *avg
				avgCount++
			}
			for _, rtt := range hop.RTT {
				probes++
				if rtt == nil {
					timeouts++
					continue
				}
				if trend.MinRTT == nil || *rtt < *trend.MinRTT {
					trend.MinRTT = ptr(*rtt)
				}
				if trend.MaxRTT == nil || *rtt > *trend.MaxRTT {
					trend.MaxRTT = ptr(*rtt)
				}
			}
		}

		if avgCount > 0 {
			trend.AvgRTT = ptr(avgSum / float64(avgCount))
		}
		if probes > 0 {
			trend.Loss = float64(timeouts) / float64(probes) * 100
		}

		trends = append(trends, trend)
	}
	return trends
}

func ptr[T any](v T) *T {
	return &v
}
