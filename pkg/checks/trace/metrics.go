// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/telekom/hopwatch/pkg/checks"
)

// metrics defines the metric collectors of the trace check
type metrics struct {
	rtt        *prometheus.GaugeVec
	loss       *prometheus.GaugeVec
	pathLength *prometheus.GaugeVec
	samples    *prometheus.CounterVec
}

// newMetrics initializes metric collectors of the trace check
func newMetrics() metrics {
	return metrics{
		rtt: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "hopwatch_trace_rtt_milliseconds",
				Help: "Average round trip time per hop across the samples of the last session.",
			},
			[]string{"target", "hop"},
		),
		loss: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "hopwatch_trace_probe_loss_percent",
				Help: "Share of timed out probes per hop across the samples of the last session.",
			},
			[]string{"target", "hop"},
		),
		pathLength: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "hopwatch_trace_path_length",
				Help: "Number of hops reported by the last trace of the target.",
			},
			[]string{"target"},
		),
		samples: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hopwatch_trace_sample_count",
				Help: "Total number of traces taken against the target.",
			},
			[]string{"target"},
		),
	}
}

// List returns all metric collectors
func (m *metrics) List() []prometheus.Collector {
	return []prometheus.Collector{
		m.rtt,
		m.loss,
		m.pathLength,
		m.samples,
	}
}

// Set sets the metrics of one destination's sampling session
func (m *metrics) Set(target string, data pathData) {
	for _, trend := range data.Trends {
		hop := strconv.Itoa(trend.Hop)
		if trend.AvgRTT != nil {
			m.rtt.WithLabelValues(target, hop).Set(*trend.AvgRTT)
		}
		m.loss.WithLabelValues(target, hop).Set(trend.Loss)
	}

	if n := len(data.Samples); n > 0 {
		m.pathLength.WithLabelValues(target).Set(float64(len(data.Samples[n-1].Hops)))
		m.samples.WithLabelValues(target).Add(float64(n))
	}
}

// Remove removes the metrics of one destination
func (m *metrics) Remove(target string) error {
	labels := prometheus.Labels{"target": target}
	if m.rtt.DeletePartialMatch(labels)+m.loss.DeletePartialMatch(labels) == 0 {
		return checks.ErrMetricNotFound{Label: target}
	}

	if !m.pathLength.DeleteLabelValues(target) {
		return checks.ErrMetricNotFound{Label: target}
	}

	if !m.samples.DeleteLabelValues(target) {
		return checks.ErrMetricNotFound{Label: target}
	}

	return nil
}
