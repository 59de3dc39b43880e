package record

import (
	"time"

	"github.com/goliatone/go-health/units"
)

const (
	MinStepCount = 1
	MaxStepCount = 1_000_000
	MaxFloors    = 1_000_000
)

var (
	maxDistance     = units.Meters(1_000_000)
	maxActiveEnergy = units.Kilocalories(1_000_000)
)

type Steps struct {
	interval
	count int64
}

func NewSteps(start, end time.Time, count int64, meta Metadata) (Steps, error) {
	if err := requireInterval(start, end); err != nil {
		return Steps{}, err
	}
	if err := requireNumberInRange("count", count, MinStepCount, MaxStepCount); err != nil {
		return Steps{}, err
	}
	return Steps{interval: interval{start: start, end: end, meta: meta}, count: count}, nil
}

func (Steps) DataType() DataType { return DataTypeSteps }

func (s Steps) Count() int64 {
	return s.count
}

func (s Steps) withMetadata(meta Metadata) Record {
	s.meta = meta
	return s
}

type Distance struct {
	interval
	length units.Length
}

func NewDistance(start, end time.Time, length units.Length, meta Metadata) (Distance, error) {
	if err := requireInterval(start, end); err != nil {
		return Distance{}, err
	}
	if err := RequireInRange("distance", length, length.Zero(), maxDistance); err != nil {
		return Distance{}, err
	}
	return Distance{interval: interval{start: start, end: end, meta: meta}, length: length}, nil
}

func (Distance) DataType() DataType { return DataTypeDistance }

func (d Distance) Length() units.Length {
	return d.length
}

func (d Distance) withMetadata(meta Metadata) Record {
	d.meta = meta
	return d
}

type FloorsClimbed struct {
	interval
	floors float64
}

func NewFloorsClimbed(start, end time.Time, floors float64, meta Metadata) (FloorsClimbed, error) {
	if err := requireInterval(start, end); err != nil {
		return FloorsClimbed{}, err
	}
	if err := requireNumberInRange("floors", floors, 0, MaxFloors); err != nil {
		return FloorsClimbed{}, err
	}
	return FloorsClimbed{interval: interval{start: start, end: end, meta: meta}, floors: floors}, nil
}

func (FloorsClimbed) DataType() DataType { return DataTypeFloorsClimbed }

func (f FloorsClimbed) Floors() float64 {
	return f.floors
}

func (f FloorsClimbed) withMetadata(meta Metadata) Record {
	f.meta = meta
	return f
}

type ActiveEnergy struct {
	interval
	energy units.Energy
}

func NewActiveEnergy(start, end time.Time, energy units.Energy, meta Metadata) (ActiveEnergy, error) {
	if err := requireInterval(start, end); err != nil {
		return ActiveEnergy{}, err
	}
	if err := RequireInRange("energy", energy, energy.Zero(), maxActiveEnergy); err != nil {
		return ActiveEnergy{}, err
	}
	return ActiveEnergy{interval: interval{start: start, end: end, meta: meta}, energy: energy}, nil
}

func (ActiveEnergy) DataType() DataType { return DataTypeActiveEnergy }

func (a ActiveEnergy) Energy() units.Energy {
	return a.energy
}

func (a ActiveEnergy) withMetadata(meta Metadata) Record {
	a.meta = meta
	return a
}
