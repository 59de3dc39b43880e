package prometheus

import (
	"context"
	"strings"

	"github.com/goliatone/go-health/core"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "health"

	metricPrefix    = "health."
	counterSuffix   = ".total"
	histogramSuffix = ".duration_ms"
)

var labelNames = []string{"operation", "status", "platform_id", "data_type"}

// Recorder maps core metric names of the form health.<operation>.total and
// health.<operation>.duration_ms onto two labelled vectors.
type Recorder struct {
	operations *prometheus.CounterVec
	durations  *prometheus.HistogramVec
}

type Option func(*recorderOptions)

type recorderOptions struct {
	buckets []float64
}

// WithBuckets overrides the duration histogram buckets, in milliseconds.
func WithBuckets(buckets ...float64) Option {
	return func(o *recorderOptions) {
		if len(buckets) > 0 {
			o.buckets = append([]float64(nil), buckets...)
		}
	}
}

// NewRecorder builds the vectors and registers them on registerer. A nil
// registerer uses prometheus.DefaultRegisterer.
func NewRecorder(registerer prometheus.Registerer, opts ...Option) (*Recorder, error) {
	options := recorderOptions{
		buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	recorder := &Recorder{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Health facade operations by outcome.",
		}, labelNames),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_ms",
			Help:      "Health facade operation latency in milliseconds.",
			Buckets:   options.buckets,
		}, labelNames),
	}
	if err := registerer.Register(recorder.operations); err != nil {
		return nil, err
	}
	if err := registerer.Register(recorder.durations); err != nil {
		registerer.Unregister(recorder.operations)
		return nil, err
	}
	return recorder, nil
}

func (r *Recorder) IncCounter(_ context.Context, name string, value int64, tags map[string]string) {
	if r == nil || value <= 0 {
		return
	}
	operation, ok := operationName(name, counterSuffix)
	if !ok {
		return
	}
	r.operations.WithLabelValues(labelValues(operation, tags)...).Add(float64(value))
}

func (r *Recorder) ObserveHistogram(_ context.Context, name string, value float64, tags map[string]string) {
	if r == nil {
		return
	}
	operation, ok := operationName(name, histogramSuffix)
	if !ok {
		return
	}
	r.durations.WithLabelValues(labelValues(operation, tags)...).Observe(value)
}

// Operations exposes the counter vector for scraping helpers and tests.
func (r *Recorder) Operations() *prometheus.CounterVec {
	return r.operations
}

func (r *Recorder) Durations() *prometheus.HistogramVec {
	return r.durations
}

func operationName(name string, suffix string) (string, bool) {
	name = strings.TrimSpace(name)
	if !strings.HasPrefix(name, metricPrefix) || !strings.HasSuffix(name, suffix) {
		return "", false
	}
	operation := strings.TrimSuffix(strings.TrimPrefix(name, metricPrefix), suffix)
	return operation, operation != ""
}

func labelValues(operation string, tags map[string]string) []string {
	values := []string{operation}
	for _, label := range labelNames[1:] {
		values = append(values, strings.TrimSpace(tags[label]))
	}
	return values
}

var _ core.MetricsRecorder = (*Recorder)(nil)
