package record

import (
	"fmt"

	"github.com/goliatone/go-health/units"
)

// Summarize computes the aggregate for dataType from records. Records of other
// data types are ignored; callers are expected to have filtered by range.
func Summarize(dataType DataType, rng TimeRange, records []Record) (AggregatedRecord, error) {
	base := aggregate{Range: rng}
	switch dataType {
	case DataTypeSteps:
		out := StepsAggregate{aggregate: base}
		for _, rec := range collect[Steps](records) {
			out.Count += rec.Count()
		}
		return out, nil
	case DataTypeDistance:
		var total float64
		for _, rec := range collect[Distance](records) {
			total += rec.Length().InMeters()
		}
		return DistanceAggregate{aggregate: base, Total: units.Meters(total)}, nil
	case DataTypeFloorsClimbed:
		out := FloorsClimbedAggregate{aggregate: base}
		for _, rec := range collect[FloorsClimbed](records) {
			out.Total += rec.Floors()
		}
		return out, nil
	case DataTypeActiveEnergy:
		var total float64
		for _, rec := range collect[ActiveEnergy](records) {
			total += rec.Energy().InKilocalories()
		}
		return ActiveEnergyAggregate{aggregate: base, Total: units.Kilocalories(total)}, nil
	case DataTypeSleepSession:
		out := SleepSessionAggregate{aggregate: base}
		for _, rec := range collect[SleepSession](records) {
			out.Sessions++
			out.TotalDuration += rec.Duration()
			out.AsleepDuration += rec.AsleepDuration()
		}
		return out, nil
	case DataTypeExerciseSession:
		out := ExerciseSessionAggregate{aggregate: base}
		for _, rec := range collect[ExerciseSession](records) {
			out.Sessions++
			out.TotalDuration += rec.Duration()
		}
		return out, nil
	case DataTypeWeight:
		values := mapRecords(collect[Weight](records), Weight.Mass)
		return WeightAggregate{aggregate: base, Mass: statsOf(values, units.Mass.InKilograms, units.Kilograms)}, nil
	case DataTypeHeight:
		values := mapRecords(collect[Height](records), Height.Length)
		return HeightAggregate{aggregate: base, Length: statsOf(values, units.Length.InMeters, units.Meters)}, nil
	case DataTypeBodyFat:
		values := mapRecords(collect[BodyFat](records), BodyFat.Percentage)
		return BodyFatAggregate{aggregate: base, Percentage: statsOf(values, units.Percentage.InPercent, units.Percent)}, nil
	case DataTypeBodyTemperature:
		values := mapRecords(collect[BodyTemperature](records), BodyTemperature.Temperature)
		return BodyTemperatureAggregate{
			aggregate:   base,
			Temperature: statsOf(values, units.Temperature.InCelsius, units.Celsius),
		}, nil
	case DataTypeBloodPressure:
		matched := collect[BloodPressure](records)
		return BloodPressureAggregate{
			aggregate: base,
			Systolic:  statsOf(mapRecords(matched, BloodPressure.Systolic), units.Pressure.InMillimetersOfMercury, units.MillimetersOfMercury),
			Diastolic: statsOf(mapRecords(matched, BloodPressure.Diastolic), units.Pressure.InMillimetersOfMercury, units.MillimetersOfMercury),
		}, nil
	case DataTypeBloodGlucose:
		values := mapRecords(collect[BloodGlucose](records), BloodGlucose.Level)
		return BloodGlucoseAggregate{
			aggregate: base,
			Level:     statsOf(values, units.BloodGlucose.InMillimolesPerLiter, units.MillimolesPerLiter),
		}, nil
	case DataTypeOxygenSaturation:
		values := mapRecords(collect[OxygenSaturation](records), OxygenSaturation.Percentage)
		return OxygenSaturationAggregate{
			aggregate:  base,
			Percentage: statsOf(values, units.Percentage.InPercent, units.Percent),
		}, nil
	case DataTypeRestingHeartRate:
		values := mapRecords(collect[RestingHeartRate](records), RestingHeartRate.BeatsPerMinute)
		return RestingHeartRateAggregate{aggregate: base, BeatsPerMinute: bpmStatsOf(values)}, nil
	case DataTypeHeartRate:
		var values []int64
		for _, rec := range collect[HeartRate](records) {
			for _, sample := range rec.samples {
				values = append(values, sample.BeatsPerMinute)
			}
		}
		return HeartRateAggregate{aggregate: base, BeatsPerMinute: bpmStatsOf(values)}, nil
	case DataTypePower:
		var values []units.Power
		for _, rec := range collect[Power](records) {
			for _, sample := range rec.samples {
				values = append(values, sample.Power)
			}
		}
		return PowerAggregate{aggregate: base, Power: statsOf(values, units.Power.InWatts, units.Watts)}, nil
	default:
		return nil, unsupportedError(
			fmt.Sprintf("record: aggregation for data type %q is not supported", dataType),
			map[string]any{"data_type": string(dataType)},
		)
	}
}

func collect[T Record](records []Record) []T {
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if typed, ok := rec.(T); ok {
			out = append(out, typed)
		}
	}
	return out
}

func mapRecords[T any, V any](records []T, value func(T) V) []V {
	out := make([]V, 0, len(records))
	for _, rec := range records {
		out = append(out, value(rec))
	}
	return out
}

func statsOf[Q units.Comparable[Q]](values []Q, canonical func(Q) float64, build func(float64) Q) Stats[Q] {
	if len(values) == 0 {
		return Stats[Q]{}
	}
	out := Stats[Q]{Min: values[0], Max: values[0], Samples: len(values)}
	var sum float64
	for _, value := range values {
		if value.Compare(out.Min) < 0 {
			out.Min = value
		}
		if value.Compare(out.Max) > 0 {
			out.Max = value
		}
		sum += canonical(value)
	}
	out.Avg = build(sum / float64(len(values)))
	return out
}

func bpmStatsOf(values []int64) BeatsPerMinuteStats {
	if len(values) == 0 {
		return BeatsPerMinuteStats{}
	}
	out := BeatsPerMinuteStats{Min: values[0], Max: values[0], Samples: len(values)}
	var sum int64
	for _, value := range values {
		out.Min = min(out.Min, value)
		out.Max = max(out.Max, value)
		sum += value
	}
	out.Avg = float64(sum) / float64(len(values))
	return out
}
