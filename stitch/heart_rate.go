package stitch

import (
	"time"

	"github.com/goliatone/go-health/record"
)

// GroupHeartRate splits samples into series wherever consecutive samples are
// at least the max gap apart. A gap of exactly the max gap splits.
func GroupHeartRate(samples []record.HeartRateSample, opts ...Option) ([]record.HeartRate, error) {
	cfg := newConfig(opts)
	grouped := runs(samples,
		func(sample record.HeartRateSample) time.Time { return sample.Time },
		func(prev, next record.HeartRateSample) bool {
			return next.Time.Sub(prev.Time) < cfg.heartRateMaxGap
		},
	)

	out := make([]record.HeartRate, 0, len(grouped))
	for _, run := range grouped {
		series, err := record.NewHeartRate(run[0].Time, run[len(run)-1].Time, run, cfg.metadata)
		if err != nil {
			return nil, err
		}
		out = append(out, series)
	}
	return out, nil
}

// FlattenHeartRate returns the samples of every series in series order.
func FlattenHeartRate(series []record.HeartRate) []record.HeartRateSample {
	var out []record.HeartRateSample
	for _, item := range series {
		out = append(out, item.Samples()...)
	}
	return out
}
