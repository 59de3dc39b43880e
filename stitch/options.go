package stitch

import (
	"time"

	"github.com/goliatone/go-health/record"
)

const (
	DefaultSleepGapTolerance = time.Second
	DefaultHeartRateMaxGap   = time.Minute
)

type config struct {
	sleepGapTolerance time.Duration
	heartRateMaxGap   time.Duration
	metadata          record.Metadata
}

type Option func(*config)

// WithSleepGapTolerance sets how far a stage may start before the previous
// stage ends and still join the same session. Zero requires an exact match.
func WithSleepGapTolerance(tolerance time.Duration) Option {
	return func(cfg *config) {
		if cfg == nil || tolerance < 0 {
			return
		}
		cfg.sleepGapTolerance = tolerance
	}
}

// WithHeartRateMaxGap sets the gap between samples that starts a new series.
func WithHeartRateMaxGap(gap time.Duration) Option {
	return func(cfg *config) {
		if cfg == nil || gap <= 0 {
			return
		}
		cfg.heartRateMaxGap = gap
	}
}

// WithMetadata sets the metadata attached to every produced record.
func WithMetadata(meta record.Metadata) Option {
	return func(cfg *config) {
		if cfg == nil {
			return
		}
		cfg.metadata = meta
	}
}

func newConfig(opts []Option) config {
	cfg := config{
		sleepGapTolerance: DefaultSleepGapTolerance,
		heartRateMaxGap:   DefaultHeartRateMaxGap,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
