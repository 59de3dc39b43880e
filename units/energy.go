package units

import "fmt"

type EnergyUnit uint8

const (
	EnergyKilocalories EnergyUnit = iota
	EnergyCalories
	EnergyJoules
	EnergyKilojoules
)

var energyTable = []conversion{
	EnergyKilocalories: {factor: 1},
	EnergyCalories:     {factor: 0.001},
	EnergyJoules:       {factor: 1.0 / 4184.0},
	EnergyKilojoules:   {factor: 1.0 / 4.184},
}

var energyZeros = zeroTable(len(energyTable), func(unit EnergyUnit) Energy {
	return Energy{measure[EnergyUnit]{unit: unit}}
})

func (u EnergyUnit) String() string {
	switch u {
	case EnergyKilocalories:
		return "kcal"
	case EnergyCalories:
		return "cal"
	case EnergyJoules:
		return "J"
	case EnergyKilojoules:
		return "kJ"
	default:
		return "unknown"
	}
}

type Energy struct {
	measure[EnergyUnit]
}

func Kilocalories(value float64) Energy {
	return Energy{measure[EnergyUnit]{value: value, unit: EnergyKilocalories}}
}

func Calories(value float64) Energy {
	return Energy{measure[EnergyUnit]{value: value, unit: EnergyCalories}}
}

func Joules(value float64) Energy {
	return Energy{measure[EnergyUnit]{value: value, unit: EnergyJoules}}
}

func Kilojoules(value float64) Energy {
	return Energy{measure[EnergyUnit]{value: value, unit: EnergyKilojoules}}
}

func EnergyZero(unit EnergyUnit) Energy {
	return zeroOf(energyZeros, unit)
}

func (e Energy) Value() float64 {
	return e.value
}

func (e Energy) Unit() EnergyUnit {
	return e.unit
}

func (e Energy) Zero() Energy {
	return zeroOf(energyZeros, e.unit)
}

func (e Energy) InKilocalories() float64 {
	return e.in(energyTable, EnergyKilocalories)
}

func (e Energy) InCalories() float64 {
	return e.in(energyTable, EnergyCalories)
}

func (e Energy) InJoules() float64 {
	return e.in(energyTable, EnergyJoules)
}

func (e Energy) InKilojoules() float64 {
	return e.in(energyTable, EnergyKilojoules)
}

func (e Energy) Compare(other Energy) int {
	return compareMeasures(e.measure, other.measure, energyTable)
}

func (e Energy) Equal(other Energy) bool {
	return e.Compare(other) == 0
}

func (e Energy) String() string {
	return fmt.Sprintf("%g %s", e.value, e.unit)
}
