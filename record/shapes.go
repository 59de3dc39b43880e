package record

import "time"

// Record is implemented only by the kinds in this package.
type Record interface {
	DataType() DataType
	Shape() Shape
	Metadata() Metadata
	StartTime() time.Time
	EndTime() time.Time
	withMetadata(Metadata) Record
}

type IntervalRecord interface {
	Record
	Duration() time.Duration
	isInterval()
}

type InstantaneousRecord interface {
	Record
	Time() time.Time
	isInstantaneous()
}

type SeriesRecord interface {
	Record
	SampleTimes() []time.Time
	isSeries()
}

// WithMetadata returns a copy of rec carrying meta.
func WithMetadata(rec Record, meta Metadata) Record {
	if rec == nil {
		return nil
	}
	return rec.withMetadata(meta)
}

type interval struct {
	start time.Time
	end   time.Time
	meta  Metadata
}

func (i interval) Shape() Shape            { return ShapeInterval }
func (i interval) Metadata() Metadata      { return i.meta }
func (i interval) StartTime() time.Time    { return i.start }
func (i interval) EndTime() time.Time      { return i.end }
func (i interval) Duration() time.Duration { return i.end.Sub(i.start) }
func (interval) isInterval()               {}

type instant struct {
	time time.Time
	meta Metadata
}

func (i instant) Shape() Shape         { return ShapeInstantaneous }
func (i instant) Metadata() Metadata   { return i.meta }
func (i instant) StartTime() time.Time { return i.time }
func (i instant) EndTime() time.Time   { return i.time }
func (i instant) Time() time.Time      { return i.time }
func (instant) isInstantaneous()       {}

type series struct {
	start time.Time
	end   time.Time
	meta  Metadata
}

func (s series) Shape() Shape         { return ShapeSeries }
func (s series) Metadata() Metadata   { return s.meta }
func (s series) StartTime() time.Time { return s.start }
func (s series) EndTime() time.Time   { return s.end }
func (series) isSeries()              {}

// TimeRange is the half-open interval [Start, End).
type TimeRange struct {
	Start time.Time
	End   time.Time
}

func NewTimeRange(start, end time.Time) (TimeRange, error) {
	rng := TimeRange{Start: start, End: end}
	if err := rng.Validate(); err != nil {
		return TimeRange{}, err
	}
	return rng, nil
}

func (r TimeRange) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return validationError("range", "start and end are required")
	}
	if !r.Start.Before(r.End) {
		return validationError("range", "start must be before end")
	}
	return nil
}

func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}
