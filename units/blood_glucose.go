package units

import "fmt"

type BloodGlucoseUnit uint8

const (
	BloodGlucoseMillimolesPerLiter BloodGlucoseUnit = iota
	BloodGlucoseMilligramsPerDeciliter
)

var bloodGlucoseTable = []conversion{
	BloodGlucoseMillimolesPerLiter:     {factor: 1},
	BloodGlucoseMilligramsPerDeciliter: {factor: 1.0 / 18.0},
}

var bloodGlucoseZeros = zeroTable(len(bloodGlucoseTable), func(unit BloodGlucoseUnit) BloodGlucose {
	return BloodGlucose{measure[BloodGlucoseUnit]{unit: unit}}
})

func (u BloodGlucoseUnit) String() string {
	switch u {
	case BloodGlucoseMillimolesPerLiter:
		return "mmol/L"
	case BloodGlucoseMilligramsPerDeciliter:
		return "mg/dL"
	default:
		return "unknown"
	}
}

type BloodGlucose struct {
	measure[BloodGlucoseUnit]
}

func MillimolesPerLiter(value float64) BloodGlucose {
	return BloodGlucose{measure[BloodGlucoseUnit]{value: value, unit: BloodGlucoseMillimolesPerLiter}}
}

func MilligramsPerDeciliter(value float64) BloodGlucose {
	return BloodGlucose{measure[BloodGlucoseUnit]{value: value, unit: BloodGlucoseMilligramsPerDeciliter}}
}

func BloodGlucoseZero(unit BloodGlucoseUnit) BloodGlucose {
	return zeroOf(bloodGlucoseZeros, unit)
}

func (g BloodGlucose) Value() float64 {
	return g.value
}

func (g BloodGlucose) Unit() BloodGlucoseUnit {
	return g.unit
}

func (g BloodGlucose) Zero() BloodGlucose {
	return zeroOf(bloodGlucoseZeros, g.unit)
}

func (g BloodGlucose) InMillimolesPerLiter() float64 {
	return g.in(bloodGlucoseTable, BloodGlucoseMillimolesPerLiter)
}

func (g BloodGlucose) InMilligramsPerDeciliter() float64 {
	return g.in(bloodGlucoseTable, BloodGlucoseMilligramsPerDeciliter)
}

func (g BloodGlucose) Compare(other BloodGlucose) int {
	return compareMeasures(g.measure, other.measure, bloodGlucoseTable)
}

func (g BloodGlucose) Equal(other BloodGlucose) bool {
	return g.Compare(other) == 0
}

func (g BloodGlucose) String() string {
	return fmt.Sprintf("%g %s", g.value, g.unit)
}
