// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/telekom/hopwatch/internal/tracer"
)

func TestAggregateTrends(t *testing.T) {
	tests := []struct {
		name    string
		samples []Sample
		want    []HopTrend
	}{
		{
			name:    "No samples",
			samples: nil,
			want:    []HopTrend{},
		},
		{
			name: "Single sample",
			samples: []Sample{
				{Sample: 1, Hops: []tracer.Hop{
					{Number: 1, RTT: []*float64{ptrF(1.0), ptrF(2.0), ptrF(3.0)}},
				}},
			},
			want: []HopTrend{
				{Hop: 1, AvgRTT: ptrF(2.0), MinRTT: ptrF(1.0), MaxRTT: ptrF(3.0), Loss: 0},
			},
		},
		{
			name: "Hop missing from one sample does not skew the trend",
			samples: []Sample{
				{Sample: 1, Hops: []tracer.Hop{
					{Number: 1, RTT: []*float64{ptrF(2.0), ptrF(2.0), ptrF(2.0)}},
					{Number: 2, RTT: []*float64{ptrF(8.0), ptrF(8.0), ptrF(8.0)}},
				}},
				{Sample: 2, Hops: []tracer.Hop{
					{Number: 1, RTT: []*float64{ptrF(4.0), ptrF(4.0), ptrF(4.0)}},
				}},
			},
			want: []HopTrend{
				{Hop: 1, AvgRTT: ptrF(3.0), MinRTT: ptrF(2.0), MaxRTT: ptrF(4.0), Loss: 0},
				{Hop: 2, AvgRTT: ptrF(8.0), MinRTT: ptrF(8.0), MaxRTT: ptrF(8.0), Loss: 0},
			},
		},
		{
			name: "Timed out probes count into the loss",
			samples: []Sample{
				{Sample: 1, Hops: []tracer.Hop{
					{Number: 1, RTT: []*float64{ptrF(1.0), nil, ptrF(3.0)}},
				}},
				{Sample: 2, Hops: []tracer.Hop{
					{Number: 1, RTT: []*float64{nil, nil, nil}},
				}},
			},
			want: []HopTrend{
				{Hop: 1, AvgRTT: ptrF(2.0), MinRTT: ptrF(1.0), MaxRTT: ptrF(3.0), Loss: float64(4) / 6 * 100},
			},
		},
		{
			name: "Fully silent hop has no averages",
			samples: []Sample{
				{Sample: 1, Hops: []tracer.Hop{
					{Number: 3, RTT: []*float64{nil, nil, nil}},
				}},
			},
			want: []HopTrend{
				{Hop: 3, Loss: 100},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := aggregateTrends(tt.samples)
			opts := []cmp.Option{cmpopts.EquateApprox(0, 1e-9)}
			if !cmp.Equal(got, tt.want, opts...) {
				t.Errorf("unexpected trends: -want +got\n%s", cmp.Diff(tt.want, got, opts...))
			}
		})
	}
}
