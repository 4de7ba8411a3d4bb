// Package observe provides the observability primitives of rtaudio:
// OpenTelemetry metrics, the Prometheus exporter bridge, structured logging
// and HTTP middleware.
//
// Metrics are recorded through the OpenTelemetry Metrics API. [InitProvider]
// installs a Prometheus exporter so that metrics can be scraped from
// /metrics. Tests should use [NewMetrics] with a custom
// [metric.MeterProvider] to avoid cross-test pollution.
package observe

import (
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all rtaudio metrics.
const meterName = "github.com/martinblech/rtaudio"

// Metrics holds all OpenTelemetry metric instruments for the application.
// All fields are safe for concurrent use.
type Metrics struct {
	// ProcessDuration tracks the time one Pipeline.Process call takes.
	ProcessDuration metric.Float64Histogram

	// Blocks counts processed blocks.
	Blocks metric.Int64Counter

	// Overflows counts blocks delivered after the source dropped input.
	Overflows metric.Int64Counter

	// ReadTimeouts counts reads that gave up waiting for audio.
	ReadTimeouts metric.Int64Counter

	// Level records the latest instantaneous level. Use with attributes:
	//   attribute.String("scope", ...), attribute.String("stat", "rms"|"peak")
	Level metric.Float64Gauge

	// ActiveClients tracks connected WebSocket viewers.
	ActiveClients metric.Int64UpDownCounter

	// DroppedMessages counts frame messages skipped for slow clients.
	DroppedMessages metric.Int64Counter

	// HTTPRequestDuration tracks HTTP request processing time. Use with attributes:
	//   attribute.String("method", ...), attribute.String("path", ...)
	HTTPRequestDuration metric.Float64Histogram
}

// processBuckets defines histogram bucket boundaries (in seconds) for one
// block of processing. A 512-sample block at 44.1 kHz must finish well
// inside 11.6 ms.
var processBuckets = []float64{
	0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.ProcessDuration, err = m.Float64Histogram("rtaudio.pipeline.duration",
		metric.WithDescription("Time spent processing one audio block."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(processBuckets...),
	); err != nil {
		return nil, err
	}

	if met.Blocks, err = m.Int64Counter("rtaudio.blocks",
		metric.WithDescription("Total audio blocks processed."),
	); err != nil {
		return nil, err
	}
	if met.Overflows, err = m.Int64Counter("rtaudio.overflows",
		metric.WithDescription("Total blocks delivered after captured input was dropped."),
	); err != nil {
		return nil, err
	}
	if met.ReadTimeouts, err = m.Int64Counter("rtaudio.read.timeouts",
		metric.WithDescription("Total reads that timed out waiting for audio."),
	); err != nil {
		return nil, err
	}

	if met.Level, err = m.Float64Gauge("rtaudio.level",
		metric.WithDescription("Latest instantaneous level by scope and statistic."),
	); err != nil {
		return nil, err
	}

	if met.ActiveClients, err = m.Int64UpDownCounter("rtaudio.ws.clients",
		metric.WithDescription("Number of connected WebSocket clients."),
	); err != nil {
		return nil, err
	}
	if met.DroppedMessages, err = m.Int64Counter("rtaudio.ws.dropped",
		metric.WithDescription("Total frame messages dropped for slow clients."),
	); err != nil {
		return nil, err
	}

	if met.HTTPRequestDuration, err = m.Float64Histogram("rtaudio.http.request.duration",
		metric.WithDescription("HTTP request latency by method and path."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	return met, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Call it after [InitProvider] so
// the instruments bind to the exporting provider.
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}
