package units

import "fmt"

type LengthUnit uint8

const (
	LengthMeters LengthUnit = iota
	LengthKilometers
	LengthMiles
	LengthInches
	LengthFeet
)

var lengthTable = []conversion{
	LengthMeters:     {factor: 1},
	LengthKilometers: {factor: 1000},
	LengthMiles:      {factor: 1609.344},
	LengthInches:     {factor: 0.0254},
	LengthFeet:       {factor: 0.3048},
}

var lengthZeros = zeroTable(len(lengthTable), func(unit LengthUnit) Length {
	return Length{measure[LengthUnit]{unit: unit}}
})

func (u LengthUnit) String() string {
	switch u {
	case LengthMeters:
		return "m"
	case LengthKilometers:
		return "km"
	case LengthMiles:
		return "mi"
	case LengthInches:
		return "in"
	case LengthFeet:
		return "ft"
	default:
		return "unknown"
	}
}

type Length struct {
	measure[LengthUnit]
}

func Meters(value float64) Length {
	return Length{measure[LengthUnit]{value: value, unit: LengthMeters}}
}

func Kilometers(value float64) Length {
	return Length{measure[LengthUnit]{value: value, unit: LengthKilometers}}
}

func Miles(value float64) Length {
	return Length{measure[LengthUnit]{value: value, unit: LengthMiles}}
}

func Inches(value float64) Length {
	return Length{measure[LengthUnit]{value: value, unit: LengthInches}}
}

func Feet(value float64) Length {
	return Length{measure[LengthUnit]{value: value, unit: LengthFeet}}
}

// LengthZero returns the cached zero length for unit. An unknown unit gets
// the zero in meters.
func LengthZero(unit LengthUnit) Length {
	return zeroOf(lengthZeros, unit)
}

func (l Length) Value() float64 {
	return l.value
}

func (l Length) Unit() LengthUnit {
	return l.unit
}

func (l Length) Zero() Length {
	return zeroOf(lengthZeros, l.unit)
}

func (l Length) InMeters() float64 {
	return l.in(lengthTable, LengthMeters)
}

func (l Length) InKilometers() float64 {
	return l.in(lengthTable, LengthKilometers)
}

func (l Length) InMiles() float64 {
	return l.in(lengthTable, LengthMiles)
}

func (l Length) InInches() float64 {
	return l.in(lengthTable, LengthInches)
}

func (l Length) InFeet() float64 {
	return l.in(lengthTable, LengthFeet)
}

func (l Length) Compare(other Length) int {
	return compareMeasures(l.measure, other.measure, lengthTable)
}

func (l Length) Equal(other Length) bool {
	return l.Compare(other) == 0
}

func (l Length) String() string {
	return fmt.Sprintf("%g %s", l.value, l.unit)
}
