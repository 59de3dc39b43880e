package units

import "fmt"

type TemperatureUnit uint8

const (
	TemperatureCelsius TemperatureUnit = iota
	TemperatureFahrenheit
	TemperatureKelvin
)

var temperatureTable = []conversion{
	TemperatureCelsius:    {factor: 1},
	TemperatureFahrenheit: {factor: 5.0 / 9.0, offset: -32 * 5.0 / 9.0},
	TemperatureKelvin:     {factor: 1, offset: -273.15},
}

var temperatureZeros = zeroTable(len(temperatureTable), func(unit TemperatureUnit) Temperature {
	return Temperature{measure[TemperatureUnit]{unit: unit}}
})

func (u TemperatureUnit) String() string {
	switch u {
	case TemperatureCelsius:
		return "C"
	case TemperatureFahrenheit:
		return "F"
	case TemperatureKelvin:
		return "K"
	default:
		return "unknown"
	}
}

type Temperature struct {
	measure[TemperatureUnit]
}

func Celsius(value float64) Temperature {
	return Temperature{measure[TemperatureUnit]{value: value, unit: TemperatureCelsius}}
}

func Fahrenheit(value float64) Temperature {
	return Temperature{measure[TemperatureUnit]{value: value, unit: TemperatureFahrenheit}}
}

func Kelvin(value float64) Temperature {
	return Temperature{measure[TemperatureUnit]{value: value, unit: TemperatureKelvin}}
}

func TemperatureZero(unit TemperatureUnit) Temperature {
	return zeroOf(temperatureZeros, unit)
}

func (t Temperature) Value() float64 {
	return t.value
}

func (t Temperature) Unit() TemperatureUnit {
	return t.unit
}

func (t Temperature) Zero() Temperature {
	return zeroOf(temperatureZeros, t.unit)
}

func (t Temperature) InCelsius() float64 {
	return t.in(temperatureTable, TemperatureCelsius)
}

func (t Temperature) InFahrenheit() float64 {
	return t.in(temperatureTable, TemperatureFahrenheit)
}

func (t Temperature) InKelvin() float64 {
	return t.in(temperatureTable, TemperatureKelvin)
}

func (t Temperature) Compare(other Temperature) int {
	return compareMeasures(t.measure, other.measure, temperatureTable)
}

func (t Temperature) Equal(other Temperature) bool {
	return t.Compare(other) == 0
}

func (t Temperature) String() string {
	return fmt.Sprintf("%g %s", t.value, t.unit)
}
