package units

import "fmt"

type PowerUnit uint8

const (
	PowerWatts PowerUnit = iota
	PowerKilocaloriesPerDay
)

var powerTable = []conversion{
	PowerWatts:              {factor: 1},
	PowerKilocaloriesPerDay: {factor: 4184.0 / 86400.0},
}

var powerZeros = zeroTable(len(powerTable), func(unit PowerUnit) Power {
	return Power{measure[PowerUnit]{unit: unit}}
})

func (u PowerUnit) String() string {
	switch u {
	case PowerWatts:
		return "W"
	case PowerKilocaloriesPerDay:
		return "kcal/day"
	default:
		return "unknown"
	}
}

type Power struct {
	measure[PowerUnit]
}

func Watts(value float64) Power {
	return Power{measure[PowerUnit]{value: value, unit: PowerWatts}}
}

func KilocaloriesPerDay(value float64) Power {
	return Power{measure[PowerUnit]{value: value, unit: PowerKilocaloriesPerDay}}
}

func PowerZero(unit PowerUnit) Power {
	return zeroOf(powerZeros, unit)
}

func (p Power) Value() float64 {
	return p.value
}

func (p Power) Unit() PowerUnit {
	return p.unit
}

func (p Power) Zero() Power {
	return zeroOf(powerZeros, p.unit)
}

func (p Power) InWatts() float64 {
	return p.in(powerTable, PowerWatts)
}

func (p Power) InKilocaloriesPerDay() float64 {
	return p.in(powerTable, PowerKilocaloriesPerDay)
}

func (p Power) Compare(other Power) int {
	return compareMeasures(p.measure, other.measure, powerTable)
}

func (p Power) Equal(other Power) bool {
	return p.Compare(other) == 0
}

func (p Power) String() string {
	return fmt.Sprintf("%g %s", p.value, p.unit)
}
