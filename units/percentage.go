package units

import "fmt"

type PercentageUnit uint8

const (
	PercentagePercent PercentageUnit = iota
)

var percentageTable = []conversion{
	PercentagePercent: {factor: 1},
}

var percentageZeros = zeroTable(len(percentageTable), func(unit PercentageUnit) Percentage {
	return Percentage{measure[PercentageUnit]{unit: unit}}
})

func (u PercentageUnit) String() string {
	switch u {
	case PercentagePercent:
		return "%"
	default:
		return "unknown"
	}
}

type Percentage struct {
	measure[PercentageUnit]
}

func Percent(value float64) Percentage {
	return Percentage{measure[PercentageUnit]{value: value, unit: PercentagePercent}}
}

func PercentageZero(unit PercentageUnit) Percentage {
	return zeroOf(percentageZeros, unit)
}

func (p Percentage) Value() float64 {
	return p.value
}

func (p Percentage) Unit() PercentageUnit {
	return p.unit
}

func (p Percentage) Zero() Percentage {
	return zeroOf(percentageZeros, p.unit)
}

func (p Percentage) InPercent() float64 {
	return p.in(percentageTable, PercentagePercent)
}

func (p Percentage) Compare(other Percentage) int {
	return compareMeasures(p.measure, other.measure, percentageTable)
}

func (p Percentage) Equal(other Percentage) bool {
	return p.Compare(other) == 0
}

func (p Percentage) String() string {
	return fmt.Sprintf("%g %s", p.value, p.unit)
}
