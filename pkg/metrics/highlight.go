// Package metrics provides prometheus collectors for the highlight service
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Result label values
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// HighlightMetrics contains prometheus metrics for upload, detection and export
type HighlightMetrics struct {
	uploadsTotal         *prometheus.CounterVec
	highlightsDetected   prometheus.Counter
	detectionsTotal      prometheus.Counter
	exportsTotal         *prometheus.CounterVec
	exportDuration       prometheus.Histogram
	clipsCutTotal        *prometheus.CounterVec
	clipCutDuration      prometheus.Histogram
	eventsPublishedTotal *prometheus.CounterVec
}

// NewHighlightMetrics creates and registers the collectors on registry
func NewHighlightMetrics(registry prometheus.Registerer) (*HighlightMetrics, error) {
	m := &HighlightMetrics{
		uploadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "highlight_uploads_total",
			Help: "Total number of video uploads",
		}, []string{"result"}),
		highlightsDetected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "highlight_detected_highlights_total",
			Help: "Total number of highlight intervals produced by the detector",
		}),
		detectionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "highlight_detections_total",
			Help: "Total number of detection runs",
		}),
		exportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "highlight_exports_total",
			Help: "Total number of export requests",
		}, []string{"result"}),
		exportDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "highlight_export_duration_seconds",
			Help:    "Time taken to cut and merge an export",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12), // 100ms to ~3m
		}),
		clipsCutTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "highlight_clips_cut_total",
			Help: "Total number of clip cut invocations",
		}, []string{"result"}),
		clipCutDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "highlight_clip_cut_duration_seconds",
			Help:    "Time taken to cut a single clip",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		eventsPublishedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "highlight_export_events_total",
			Help: "Total number of export events published",
		}, []string{"result"}),
	}

	for _, c := range []prometheus.Collector{
		m.uploadsTotal, m.highlightsDetected, m.detectionsTotal, m.exportsTotal,
		m.exportDuration, m.clipsCutTotal, m.clipCutDuration, m.eventsPublishedTotal,
	} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// RecordUpload counts an upload attempt
func (m *HighlightMetrics) RecordUpload(result string) {
	m.uploadsTotal.WithLabelValues(result).Inc()
}

// RecordDetection counts a detection run and its highlights
func (m *HighlightMetrics) RecordDetection(count int) {
	m.detectionsTotal.Inc()
	m.highlightsDetected.Add(float64(count))
}

// RecordExport counts an export and observes its duration
func (m *HighlightMetrics) RecordExport(result string, elapsed time.Duration) {
	m.exportsTotal.WithLabelValues(result).Inc()
	m.exportDuration.Observe(elapsed.Seconds())
}

// RecordCut counts a clip cut and observes its duration
func (m *HighlightMetrics) RecordCut(result string, elapsed time.Duration) {
	m.clipsCutTotal.WithLabelValues(result).Inc()
	m.clipCutDuration.Observe(elapsed.Seconds())
}

// RecordEvent counts an export event publish
func (m *HighlightMetrics) RecordEvent(result string) {
	m.eventsPublishedTotal.WithLabelValues(result).Inc()
}
