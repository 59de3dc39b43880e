package record

import (
	"fmt"
	"slices"
	"time"

	"github.com/goliatone/go-health/units"
)

var maxPower = units.Watts(100_000)

type HeartRateSample struct {
	Time           time.Time
	BeatsPerMinute int64
}

type HeartRate struct {
	series
	samples []HeartRateSample
}

// NewHeartRate stores samples sorted by time. Every sample must fall inside
// [start, end].
func NewHeartRate(start, end time.Time, samples []HeartRateSample, meta Metadata) (HeartRate, error) {
	if err := requireSpan(start, end); err != nil {
		return HeartRate{}, err
	}
	sorted, err := sortSamples(start, end, samples, func(sample HeartRateSample) time.Time { return sample.Time })
	if err != nil {
		return HeartRate{}, err
	}
	for idx, sample := range sorted {
		field := fmt.Sprintf("samples[%d].beats_per_minute", idx)
		if err := requireNumberInRange(field, sample.BeatsPerMinute, MinHeartRate, MaxHeartRate); err != nil {
			return HeartRate{}, err
		}
	}
	return HeartRate{series: series{start: start, end: end, meta: meta}, samples: sorted}, nil
}

func (HeartRate) DataType() DataType { return DataTypeHeartRate }

func (h HeartRate) Samples() []HeartRateSample {
	return slices.Clone(h.samples)
}

func (h HeartRate) SampleTimes() []time.Time {
	out := make([]time.Time, 0, len(h.samples))
	for _, sample := range h.samples {
		out = append(out, sample.Time)
	}
	return out
}

func (h HeartRate) withMetadata(meta Metadata) Record {
	h.meta = meta
	return h
}

type PowerSample struct {
	Time  time.Time
	Power units.Power
}

type Power struct {
	series
	samples []PowerSample
}

func NewPower(start, end time.Time, samples []PowerSample, meta Metadata) (Power, error) {
	if err := requireSpan(start, end); err != nil {
		return Power{}, err
	}
	sorted, err := sortSamples(start, end, samples, func(sample PowerSample) time.Time { return sample.Time })
	if err != nil {
		return Power{}, err
	}
	for idx, sample := range sorted {
		field := fmt.Sprintf("samples[%d].power", idx)
		if err := RequireInRange(field, sample.Power, sample.Power.Zero(), maxPower); err != nil {
			return Power{}, err
		}
	}
	return Power{series: series{start: start, end: end, meta: meta}, samples: sorted}, nil
}

func (Power) DataType() DataType { return DataTypePower }

func (p Power) Samples() []PowerSample {
	return slices.Clone(p.samples)
}

func (p Power) SampleTimes() []time.Time {
	out := make([]time.Time, 0, len(p.samples))
	for _, sample := range p.samples {
		out = append(out, sample.Time)
	}
	return out
}

func (p Power) withMetadata(meta Metadata) Record {
	p.meta = meta
	return p
}

func sortSamples[S any](start, end time.Time, samples []S, at func(S) time.Time) ([]S, error) {
	if len(samples) == 0 {
		return nil, nil
	}
	sorted := slices.Clone(samples)
	slices.SortStableFunc(sorted, func(a, b S) int {
		return at(a).Compare(at(b))
	})
	for idx, sample := range sorted {
		ts := at(sample)
		if ts.Before(start) || ts.After(end) {
			return nil, validationError(fmt.Sprintf("samples[%d].time", idx), "sample time must be inside the series range")
		}
	}
	return sorted, nil
}
