package record

import (
	"time"

	"github.com/goliatone/go-health/units"
)

// AggregatedRecord summarizes one data type over a time range. Values are
// only produced by aggregation and are never written back.
type AggregatedRecord interface {
	DataType() DataType
	TimeRange() TimeRange
	aggregated()
}

// Stats holds the average, minimum and maximum of Samples values. Min and Max
// keep the unit they were recorded in; Avg uses the canonical unit.
type Stats[Q any] struct {
	Avg     Q
	Min     Q
	Max     Q
	Samples int
}

type BeatsPerMinuteStats struct {
	Avg     float64
	Min     int64
	Max     int64
	Samples int
}

type aggregate struct {
	Range TimeRange
}

func (a aggregate) TimeRange() TimeRange { return a.Range }
func (aggregate) aggregated()            {}

type StepsAggregate struct {
	aggregate
	Count int64
}

func (StepsAggregate) DataType() DataType { return DataTypeSteps }

type DistanceAggregate struct {
	aggregate
	Total units.Length
}

func (DistanceAggregate) DataType() DataType { return DataTypeDistance }

type FloorsClimbedAggregate struct {
	aggregate
	Total float64
}

func (FloorsClimbedAggregate) DataType() DataType { return DataTypeFloorsClimbed }

type ActiveEnergyAggregate struct {
	aggregate
	Total units.Energy
}

func (ActiveEnergyAggregate) DataType() DataType { return DataTypeActiveEnergy }

type SleepSessionAggregate struct {
	aggregate
	Sessions       int
	TotalDuration  time.Duration
	AsleepDuration time.Duration
}

func (SleepSessionAggregate) DataType() DataType { return DataTypeSleepSession }

type ExerciseSessionAggregate struct {
	aggregate
	Sessions      int
	TotalDuration time.Duration
}

func (ExerciseSessionAggregate) DataType() DataType { return DataTypeExerciseSession }

type WeightAggregate struct {
	aggregate
	Mass Stats[units.Mass]
}

func (WeightAggregate) DataType() DataType { return DataTypeWeight }

type HeightAggregate struct {
	aggregate
	Length Stats[units.Length]
}

func (HeightAggregate) DataType() DataType { return DataTypeHeight }

type BodyFatAggregate struct {
	aggregate
	Percentage Stats[units.Percentage]
}

func (BodyFatAggregate) DataType() DataType { return DataTypeBodyFat }

type BodyTemperatureAggregate struct {
	aggregate
	Temperature Stats[units.Temperature]
}

func (BodyTemperatureAggregate) DataType() DataType { return DataTypeBodyTemperature }

type BloodPressureAggregate struct {
	aggregate
	Systolic  Stats[units.Pressure]
	Diastolic Stats[units.Pressure]
}

func (BloodPressureAggregate) DataType() DataType { return DataTypeBloodPressure }

type BloodGlucoseAggregate struct {
	aggregate
	Level Stats[units.BloodGlucose]
}

func (BloodGlucoseAggregate) DataType() DataType { return DataTypeBloodGlucose }

type OxygenSaturationAggregate struct {
	aggregate
	Percentage Stats[units.Percentage]
}

func (OxygenSaturationAggregate) DataType() DataType { return DataTypeOxygenSaturation }

type RestingHeartRateAggregate struct {
	aggregate
	BeatsPerMinute BeatsPerMinuteStats
}

func (RestingHeartRateAggregate) DataType() DataType { return DataTypeRestingHeartRate }

type HeartRateAggregate struct {
	aggregate
	BeatsPerMinute BeatsPerMinuteStats
}

func (HeartRateAggregate) DataType() DataType { return DataTypeHeartRate }

type PowerAggregate struct {
	aggregate
	Power Stats[units.Power]
}

func (PowerAggregate) DataType() DataType { return DataTypePower }

func NewStepsAggregate(rng TimeRange, count int64) StepsAggregate {
	return StepsAggregate{aggregate: aggregate{Range: rng}, Count: count}
}

func NewDistanceAggregate(rng TimeRange, total units.Length) DistanceAggregate {
	return DistanceAggregate{aggregate: aggregate{Range: rng}, Total: total}
}
