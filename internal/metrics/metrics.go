// Package metrics records export outcomes as Prometheus metrics and flushes them
// to a node-exporter textfile at the end of a run.
package metrics

import (
	"fmt"
	"log/slog"
	"runtime"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ellipszist/texport/internal/export"
)

const (
	namespace = "texport"
)

// Recorder owns a private registry and the export metrics registered on it.
type Recorder struct {
	registry *prometheus.Registry
	logger   *slog.Logger

	// ExportsTotal counts exported textures by status and reason.
	ExportsTotal *prometheus.CounterVec

	// ExportDuration is a histogram of single-texture export time by status.
	ExportDuration *prometheus.HistogramVec

	// BytesWritten counts bytes of image files written.
	BytesWritten prometheus.Counter

	// BatchesTotal counts batch runs by whether they were interrupted.
	BatchesTotal *prometheus.CounterVec

	// BatchSize is a histogram of textures per batch.
	BatchSize prometheus.Histogram

	// LastBatchFailures is the failed count of the most recent batch.
	LastBatchFailures prometheus.Gauge

	// BuildInfo carries the version as a label.
	BuildInfo *prometheus.GaugeVec
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recorder) {
		r.logger = logger
	}
}

// NewRecorder creates a recorder with all metrics registered.
func NewRecorder(opts ...Option) *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	r := &Recorder{
		registry: reg,
		logger:   slog.Default().With("component", "metrics"),

		ExportsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Total number of texture exports by status and reason",
		}, []string{"status", "reason"}),

		ExportDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "export_duration_seconds",
			Help:      "Duration of single texture exports in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~2s
		}, []string{"status"}),

		BytesWritten: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_written_total",
			Help:      "Total bytes of image files written",
		}),

		BatchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches_total",
			Help:      "Total number of batch exports",
		}, []string{"interrupted"}),

		BatchSize: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_size",
			Help:      "Number of textures per batch export",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),

		LastBatchFailures: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_batch_failures",
			Help:      "Number of failed textures in the most recent batch",
		}),

		BuildInfo: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "build_info",
			Help:      "Build information",
		}, []string{"version", "go_version"}),
	}

	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Registry returns the recorder's registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// SetBuildInfo records the running version.
func (r *Recorder) SetBuildInfo(version string) {
	r.BuildInfo.WithLabelValues(version, runtime.Version()).Set(1)
}

// Observe implements export.Observer.
func (r *Recorder) Observe(o export.Outcome) {
	status := o.Status.String()
	r.ExportsTotal.WithLabelValues(status, o.Reason.String()).Inc()
	r.ExportDuration.WithLabelValues(status).Observe(o.Duration.Seconds())
	if o.Bytes > 0 {
		r.BytesWritten.Add(float64(o.Bytes))
	}
}

// ObserveReport records a finished batch. Per-item outcomes are recorded
// through Observe as they happen.
func (r *Recorder) ObserveReport(report *export.Report) {
	if report == nil {
		return
	}
	r.BatchesTotal.WithLabelValues(strconv.FormatBool(report.Interrupted)).Inc()
	r.BatchSize.Observe(float64(len(report.Outcomes)))
	r.LastBatchFailures.Set(float64(report.Count(export.StatusFailed)))
}

// WriteTextfile writes every metric to path in the Prometheus text format.
// The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile; %w", err)
	}
	r.logger.Debug("metrics written", "path", path)
	return nil
}
