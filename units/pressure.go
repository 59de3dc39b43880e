package units

import "fmt"

type PressureUnit uint8

const (
	PressureMillimetersOfMercury PressureUnit = iota
)

var pressureTable = []conversion{
	PressureMillimetersOfMercury: {factor: 1},
}

var pressureZeros = zeroTable(len(pressureTable), func(unit PressureUnit) Pressure {
	return Pressure{measure[PressureUnit]{unit: unit}}
})

func (u PressureUnit) String() string {
	switch u {
	case PressureMillimetersOfMercury:
		return "mmHg"
	default:
		return "unknown"
	}
}

type Pressure struct {
	measure[PressureUnit]
}

func MillimetersOfMercury(value float64) Pressure {
	return Pressure{measure[PressureUnit]{value: value, unit: PressureMillimetersOfMercury}}
}

func PressureZero(unit PressureUnit) Pressure {
	return zeroOf(pressureZeros, unit)
}

func (p Pressure) Value() float64 {
	return p.value
}

func (p Pressure) Unit() PressureUnit {
	return p.unit
}

func (p Pressure) Zero() Pressure {
	return zeroOf(pressureZeros, p.unit)
}

func (p Pressure) InMillimetersOfMercury() float64 {
	return p.in(pressureTable, PressureMillimetersOfMercury)
}

func (p Pressure) Compare(other Pressure) int {
	return compareMeasures(p.measure, other.measure, pressureTable)
}

func (p Pressure) Equal(other Pressure) bool {
	return p.Compare(other) == 0
}

func (p Pressure) String() string {
	return fmt.Sprintf("%g %s", p.value, p.unit)
}
