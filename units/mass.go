package units

import "fmt"

type MassUnit uint8

const (
	MassKilograms MassUnit = iota
	MassGrams
	MassMilligrams
	MassMicrograms
	MassOunces
	MassPounds
)

var massTable = []conversion{
	MassKilograms:  {factor: 1},
	MassGrams:      {factor: 0.001},
	MassMilligrams: {factor: 1e-6},
	MassMicrograms: {factor: 1e-9},
	MassOunces:     {factor: 0.028349523125},
	MassPounds:     {factor: 0.45359237},
}

var massZeros = zeroTable(len(massTable), func(unit MassUnit) Mass {
	return Mass{measure[MassUnit]{unit: unit}}
})

func (u MassUnit) String() string {
	switch u {
	case MassKilograms:
		return "kg"
	case MassGrams:
		return "g"
	case MassMilligrams:
		return "mg"
	case MassMicrograms:
		return "mcg"
	case MassOunces:
		return "oz"
	case MassPounds:
		return "lb"
	default:
		return "unknown"
	}
}

type Mass struct {
	measure[MassUnit]
}

func Kilograms(value float64) Mass {
	return Mass{measure[MassUnit]{value: value, unit: MassKilograms}}
}

func Grams(value float64) Mass {
	return Mass{measure[MassUnit]{value: value, unit: MassGrams}}
}

func Milligrams(value float64) Mass {
	return Mass{measure[MassUnit]{value: value, unit: MassMilligrams}}
}

func Micrograms(value float64) Mass {
	return Mass{measure[MassUnit]{value: value, unit: MassMicrograms}}
}

func Ounces(value float64) Mass {
	return Mass{measure[MassUnit]{value: value, unit: MassOunces}}
}

func Pounds(value float64) Mass {
	return Mass{measure[MassUnit]{value: value, unit: MassPounds}}
}

func MassZero(unit MassUnit) Mass {
	return zeroOf(massZeros, unit)
}

func (m Mass) Value() float64 {
	return m.value
}

func (m Mass) Unit() MassUnit {
	return m.unit
}

func (m Mass) Zero() Mass {
	return zeroOf(massZeros, m.unit)
}

func (m Mass) InKilograms() float64 {
	return m.in(massTable, MassKilograms)
}

func (m Mass) InGrams() float64 {
	return m.in(massTable, MassGrams)
}

func (m Mass) InMilligrams() float64 {
	return m.in(massTable, MassMilligrams)
}

func (m Mass) InMicrograms() float64 {
	return m.in(massTable, MassMicrograms)
}

func (m Mass) InOunces() float64 {
	return m.in(massTable, MassOunces)
}

func (m Mass) InPounds() float64 {
	return m.in(massTable, MassPounds)
}

func (m Mass) Compare(other Mass) int {
	return compareMeasures(m.measure, other.measure, massTable)
}

func (m Mass) Equal(other Mass) bool {
	return m.Compare(other) == 0
}

func (m Mass) String() string {
	return fmt.Sprintf("%g %s", m.value, m.unit)
}
