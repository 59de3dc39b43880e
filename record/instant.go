package record

import (
	"time"

	"github.com/goliatone/go-health/units"
)

const (
	MinHeartRate = 1
	MaxHeartRate = 300
)

var (
	maxWeight          = units.Kilograms(1000)
	maxHeight          = units.Meters(3)
	maxPercentage      = units.Percent(100)
	minBodyTemperature = units.Celsius(0)
	maxBodyTemperature = units.Celsius(100)
	minSystolic        = units.MillimetersOfMercury(20)
	maxSystolic        = units.MillimetersOfMercury(200)
	minDiastolic       = units.MillimetersOfMercury(10)
	maxDiastolic       = units.MillimetersOfMercury(180)
	maxBloodGlucose    = units.MillimolesPerLiter(50)
)

type BodyTemperatureLocation uint8

const (
	BodyTemperatureLocationUnknown BodyTemperatureLocation = iota
	BodyTemperatureLocationArmpit
	BodyTemperatureLocationFinger
	BodyTemperatureLocationForehead
	BodyTemperatureLocationMouth
	BodyTemperatureLocationRectum
	BodyTemperatureLocationTemporalArtery
	BodyTemperatureLocationToe
	BodyTemperatureLocationEar
	BodyTemperatureLocationWrist
)

type BodyPosition uint8

const (
	BodyPositionUnknown BodyPosition = iota
	BodyPositionStandingUp
	BodyPositionSittingDown
	BodyPositionLyingDown
	BodyPositionReclining
)

type BloodPressureLocation uint8

const (
	BloodPressureLocationUnknown BloodPressureLocation = iota
	BloodPressureLocationLeftWrist
	BloodPressureLocationRightWrist
	BloodPressureLocationLeftUpperArm
	BloodPressureLocationRightUpperArm
)

type SpecimenSource uint8

const (
	SpecimenSourceUnknown SpecimenSource = iota
	SpecimenSourceInterstitialFluid
	SpecimenSourceCapillaryBlood
	SpecimenSourcePlasma
	SpecimenSourceSerum
	SpecimenSourceTears
	SpecimenSourceWholeBlood
)

type MealType uint8

const (
	MealTypeUnknown MealType = iota
	MealTypeBreakfast
	MealTypeLunch
	MealTypeDinner
	MealTypeSnack
)

type Weight struct {
	instant
	mass units.Mass
}

func NewWeight(at time.Time, mass units.Mass, meta Metadata) (Weight, error) {
	if err := requireTime("time", at); err != nil {
		return Weight{}, err
	}
	if err := RequireInRange("weight", mass, mass.Zero(), maxWeight); err != nil {
		return Weight{}, err
	}
	return Weight{instant: instant{time: at, meta: meta}, mass: mass}, nil
}

func (Weight) DataType() DataType { return DataTypeWeight }

func (w Weight) Mass() units.Mass {
	return w.mass
}

func (w Weight) withMetadata(meta Metadata) Record {
	w.meta = meta
	return w
}

type Height struct {
	instant
	length units.Length
}

func NewHeight(at time.Time, length units.Length, meta Metadata) (Height, error) {
	if err := requireTime("time", at); err != nil {
		return Height{}, err
	}
	if err := RequireInRange("height", length, length.Zero(), maxHeight); err != nil {
		return Height{}, err
	}
	return Height{instant: instant{time: at, meta: meta}, length: length}, nil
}

func (Height) DataType() DataType { return DataTypeHeight }

func (h Height) Length() units.Length {
	return h.length
}

func (h Height) withMetadata(meta Metadata) Record {
	h.meta = meta
	return h
}

type BodyFat struct {
	instant
	percentage units.Percentage
}

func NewBodyFat(at time.Time, percentage units.Percentage, meta Metadata) (BodyFat, error) {
	if err := requireTime("time", at); err != nil {
		return BodyFat{}, err
	}
	if err := RequireInRange("body_fat", percentage, percentage.Zero(), maxPercentage); err != nil {
		return BodyFat{}, err
	}
	return BodyFat{instant: instant{time: at, meta: meta}, percentage: percentage}, nil
}

func (BodyFat) DataType() DataType { return DataTypeBodyFat }

func (b BodyFat) Percentage() units.Percentage {
	return b.percentage
}

func (b BodyFat) withMetadata(meta Metadata) Record {
	b.meta = meta
	return b
}

type BodyTemperature struct {
	instant
	temperature units.Temperature
	location    BodyTemperatureLocation
}

func NewBodyTemperature(at time.Time, temperature units.Temperature, location BodyTemperatureLocation, meta Metadata) (BodyTemperature, error) {
	if err := requireTime("time", at); err != nil {
		return BodyTemperature{}, err
	}
	if err := RequireInRange("temperature", temperature, minBodyTemperature, maxBodyTemperature); err != nil {
		return BodyTemperature{}, err
	}
	return BodyTemperature{
		instant:     instant{time: at, meta: meta},
		temperature: temperature,
		location:    location,
	}, nil
}

func (BodyTemperature) DataType() DataType { return DataTypeBodyTemperature }

func (b BodyTemperature) Temperature() units.Temperature {
	return b.temperature
}

func (b BodyTemperature) Location() BodyTemperatureLocation {
	return b.location
}

func (b BodyTemperature) withMetadata(meta Metadata) Record {
	b.meta = meta
	return b
}

type BloodPressure struct {
	instant
	systolic     units.Pressure
	diastolic    units.Pressure
	bodyPosition BodyPosition
	location     BloodPressureLocation
}

func NewBloodPressure(
	at time.Time,
	systolic units.Pressure,
	diastolic units.Pressure,
	bodyPosition BodyPosition,
	location BloodPressureLocation,
	meta Metadata,
) (BloodPressure, error) {
	if err := requireTime("time", at); err != nil {
		return BloodPressure{}, err
	}
	if err := RequireInRange("systolic", systolic, minSystolic, maxSystolic); err != nil {
		return BloodPressure{}, err
	}
	if err := RequireInRange("diastolic", diastolic, minDiastolic, maxDiastolic); err != nil {
		return BloodPressure{}, err
	}
	return BloodPressure{
		instant:      instant{time: at, meta: meta},
		systolic:     systolic,
		diastolic:    diastolic,
		bodyPosition: bodyPosition,
		location:     location,
	}, nil
}

func (BloodPressure) DataType() DataType { return DataTypeBloodPressure }

func (b BloodPressure) Systolic() units.Pressure {
	return b.systolic
}

func (b BloodPressure) Diastolic() units.Pressure {
	return b.diastolic
}

func (b BloodPressure) BodyPosition() BodyPosition {
	return b.bodyPosition
}

func (b BloodPressure) Location() BloodPressureLocation {
	return b.location
}

func (b BloodPressure) withMetadata(meta Metadata) Record {
	b.meta = meta
	return b
}

type BloodGlucose struct {
	instant
	level          units.BloodGlucose
	specimenSource SpecimenSource
	mealType       MealType
}

func NewBloodGlucose(
	at time.Time,
	level units.BloodGlucose,
	specimenSource SpecimenSource,
	mealType MealType,
	meta Metadata,
) (BloodGlucose, error) {
	if err := requireTime("time", at); err != nil {
		return BloodGlucose{}, err
	}
	if err := RequireInRange("blood_glucose", level, level.Zero(), maxBloodGlucose); err != nil {
		return BloodGlucose{}, err
	}
	return BloodGlucose{
		instant:        instant{time: at, meta: meta},
		level:          level,
		specimenSource: specimenSource,
		mealType:       mealType,
	}, nil
}

func (BloodGlucose) DataType() DataType { return DataTypeBloodGlucose }

func (b BloodGlucose) Level() units.BloodGlucose {
	return b.level
}

func (b BloodGlucose) SpecimenSource() SpecimenSource {
	return b.specimenSource
}

func (b BloodGlucose) MealType() MealType {
	return b.mealType
}

func (b BloodGlucose) withMetadata(meta Metadata) Record {
	b.meta = meta
	return b
}

type OxygenSaturation struct {
	instant
	percentage units.Percentage
}

func NewOxygenSaturation(at time.Time, percentage units.Percentage, meta Metadata) (OxygenSaturation, error) {
	if err := requireTime("time", at); err != nil {
		return OxygenSaturation{}, err
	}
	if err := RequireInRange("oxygen_saturation", percentage, percentage.Zero(), maxPercentage); err != nil {
		return OxygenSaturation{}, err
	}
	return OxygenSaturation{instant: instant{time: at, meta: meta}, percentage: percentage}, nil
}

func (OxygenSaturation) DataType() DataType { return DataTypeOxygenSaturation }

func (o OxygenSaturation) Percentage() units.Percentage {
	return o.percentage
}

func (o OxygenSaturation) withMetadata(meta Metadata) Record {
	o.meta = meta
	return o
}

type RestingHeartRate struct {
	instant
	beatsPerMinute int64
}

func NewRestingHeartRate(at time.Time, beatsPerMinute int64, meta Metadata) (RestingHeartRate, error) {
	if err := requireTime("time", at); err != nil {
		return RestingHeartRate{}, err
	}
	if err := requireNumberInRange("beats_per_minute", beatsPerMinute, MinHeartRate, MaxHeartRate); err != nil {
		return RestingHeartRate{}, err
	}
	return RestingHeartRate{instant: instant{time: at, meta: meta}, beatsPerMinute: beatsPerMinute}, nil
}

func (RestingHeartRate) DataType() DataType { return DataTypeRestingHeartRate }

func (r RestingHeartRate) BeatsPerMinute() int64 {
	return r.beatsPerMinute
}

func (r RestingHeartRate) withMetadata(meta Metadata) Record {
	r.meta = meta
	return r
}
