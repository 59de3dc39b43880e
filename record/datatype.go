package record

import (
	"slices"
	"strings"
)

// DataType identifies a record kind across every platform boundary.
type DataType string

const (
	DataTypeSteps            DataType = "steps"
	DataTypeDistance         DataType = "distance"
	DataTypeFloorsClimbed    DataType = "floors_climbed"
	DataTypeActiveEnergy     DataType = "active_energy"
	DataTypeSleepSession     DataType = "sleep_session"
	DataTypeExerciseSession  DataType = "exercise_session"
	DataTypeWeight           DataType = "weight"
	DataTypeHeight           DataType = "height"
	DataTypeBodyFat          DataType = "body_fat"
	DataTypeBodyTemperature  DataType = "body_temperature"
	DataTypeBloodPressure    DataType = "blood_pressure"
	DataTypeBloodGlucose     DataType = "blood_glucose"
	DataTypeOxygenSaturation DataType = "oxygen_saturation"
	DataTypeRestingHeartRate DataType = "resting_heart_rate"
	DataTypeHeartRate        DataType = "heart_rate"
	DataTypePower            DataType = "power"
)

// Shape is the temporal shape shared by every record of a data type.
type Shape uint8

const (
	ShapeUnknown Shape = iota
	ShapeInterval
	ShapeInstantaneous
	ShapeSeries
)

func (s Shape) String() string {
	switch s {
	case ShapeInterval:
		return "interval"
	case ShapeInstantaneous:
		return "instantaneous"
	case ShapeSeries:
		return "series"
	default:
		return "unknown"
	}
}

var dataTypeShapes = map[DataType]Shape{
	DataTypeSteps:            ShapeInterval,
	DataTypeDistance:         ShapeInterval,
	DataTypeFloorsClimbed:    ShapeInterval,
	DataTypeActiveEnergy:     ShapeInterval,
	DataTypeSleepSession:     ShapeInterval,
	DataTypeExerciseSession:  ShapeInterval,
	DataTypeWeight:           ShapeInstantaneous,
	DataTypeHeight:           ShapeInstantaneous,
	DataTypeBodyFat:          ShapeInstantaneous,
	DataTypeBodyTemperature:  ShapeInstantaneous,
	DataTypeBloodPressure:    ShapeInstantaneous,
	DataTypeBloodGlucose:     ShapeInstantaneous,
	DataTypeOxygenSaturation: ShapeInstantaneous,
	DataTypeRestingHeartRate: ShapeInstantaneous,
	DataTypeHeartRate:        ShapeSeries,
	DataTypePower:            ShapeSeries,
}

// AllDataTypes returns every known data type in lexical order.
func AllDataTypes() []DataType {
	out := make([]DataType, 0, len(dataTypeShapes))
	for dataType := range dataTypeShapes {
		out = append(out, dataType)
	}
	slices.Sort(out)
	return out
}

// ParseDataType normalizes raw and reports whether it names a known data type.
func ParseDataType(raw string) (DataType, bool) {
	dataType := DataType(strings.ToLower(strings.TrimSpace(raw)))
	_, ok := dataTypeShapes[dataType]
	return dataType, ok
}

func (d DataType) Valid() bool {
	_, ok := dataTypeShapes[d]
	return ok
}

func (d DataType) Shape() Shape {
	return dataTypeShapes[d]
}

func (d DataType) String() string {
	return string(d)
}

// NormalizeDataTypes drops blanks, unknown values and duplicates, and returns
// the remaining data types sorted.
func NormalizeDataTypes(values []DataType) []DataType {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[DataType]struct{}, len(values))
	out := make([]DataType, 0, len(values))
	for _, value := range values {
		normalized, ok := ParseDataType(string(value))
		if !ok {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	slices.Sort(out)
	return out
}
