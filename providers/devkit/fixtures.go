package devkit

import (
	"fmt"
	"time"

	"github.com/goliatone/go-health/record"
	"github.com/goliatone/go-health/units"
)

// FixtureDuration is the span of interval and series fixtures.
const FixtureDuration = 30 * time.Minute

// SampleRecord builds a valid record of dataType starting at start.
func SampleRecord(dataType record.DataType, start time.Time) (record.Record, error) {
	start = start.UTC()
	end := start.Add(FixtureDuration)
	meta := record.ManualEntry()

	switch dataType {
	case record.DataTypeSteps:
		return record.NewSteps(start, end, 1200, meta)
	case record.DataTypeDistance:
		return record.NewDistance(start, end, units.Kilometers(1.5), meta)
	case record.DataTypeFloorsClimbed:
		return record.NewFloorsClimbed(start, end, 4, meta)
	case record.DataTypeActiveEnergy:
		return record.NewActiveEnergy(start, end, units.Kilocalories(180), meta)
	case record.DataTypeSleepSession:
		middle := start.Add(FixtureDuration / 2)
		return record.NewSleepSession(start, end, []record.SleepStage{
			{Start: start, End: middle, Type: record.SleepStageLight},
			{Start: middle, End: end, Type: record.SleepStageDeep},
		}, meta)
	case record.DataTypeExerciseSession:
		return record.NewExerciseSession(start, end, record.ExerciseTypeRunning, nil, meta)
	case record.DataTypeWeight:
		return record.NewWeight(start, units.Kilograms(72.5), meta)
	case record.DataTypeHeight:
		return record.NewHeight(start, units.Meters(1.78), meta)
	case record.DataTypeBodyFat:
		return record.NewBodyFat(start, units.Percent(18), meta)
	case record.DataTypeBodyTemperature:
		return record.NewBodyTemperature(start, units.Celsius(36.8), record.BodyTemperatureLocationForehead, meta)
	case record.DataTypeBloodPressure:
		return record.NewBloodPressure(start,
			units.MillimetersOfMercury(118),
			units.MillimetersOfMercury(76),
			record.BodyPositionSittingDown,
			record.BloodPressureLocationLeftUpperArm,
			meta,
		)
	case record.DataTypeBloodGlucose:
		return record.NewBloodGlucose(start, units.MillimolesPerLiter(5.4), record.SpecimenSourceCapillaryBlood, record.MealTypeLunch, meta)
	case record.DataTypeOxygenSaturation:
		return record.NewOxygenSaturation(start, units.Percent(97), meta)
	case record.DataTypeRestingHeartRate:
		return record.NewRestingHeartRate(start, 58, meta)
	case record.DataTypeHeartRate:
		return record.NewHeartRate(start, end, []record.HeartRateSample{
			{Time: start, BeatsPerMinute: 72},
			{Time: start.Add(time.Minute), BeatsPerMinute: 75},
		}, meta)
	case record.DataTypePower:
		return record.NewPower(start, end, []record.PowerSample{
			{Time: start, Power: units.Watts(180)},
			{Time: start.Add(time.Minute), Power: units.Watts(210)},
		}, meta)
	default:
		return nil, fmt.Errorf("devkit: no fixture for data type %q", dataType)
	}
}

// SampleRecords builds one fixture per data type, each starting at start.
func SampleRecords(start time.Time, dataTypes ...record.DataType) ([]record.Record, error) {
	out := make([]record.Record, 0, len(dataTypes))
	for _, dataType := range dataTypes {
		rec, err := SampleRecord(dataType, start)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}
