package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-health/stitch"
	"github.com/goliatone/go-health/units"
)

type Config struct {
	ServiceName              string        `koanf:"service_name" mapstructure:"service_name"`
	Platform                 string        `koanf:"platform" mapstructure:"platform"`
	SleepGapTolerance        time.Duration `koanf:"sleep_gap_tolerance" mapstructure:"sleep_gap_tolerance"`
	SleepExactMatch          bool          `koanf:"sleep_exact_match" mapstructure:"sleep_exact_match"`
	HeartRateMaxGap          time.Duration `koanf:"heart_rate_max_gap" mapstructure:"heart_rate_max_gap"`
	DefaultTemperatureUnit   string        `koanf:"default_temperature_unit" mapstructure:"default_temperature_unit"`
	DefaultMeasurementSystem string        `koanf:"default_measurement_system" mapstructure:"default_measurement_system"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName:              "health",
		SleepGapTolerance:        stitch.DefaultSleepGapTolerance,
		HeartRateMaxGap:          stitch.DefaultHeartRateMaxGap,
		DefaultTemperatureUnit:   "celsius",
		DefaultMeasurementSystem: string(MeasurementSystemMetric),
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("core: service_name is required")
	}
	if c.SleepGapTolerance < 0 {
		return fmt.Errorf("core: sleep_gap_tolerance must not be negative")
	}
	if c.HeartRateMaxGap < 0 {
		return fmt.Errorf("core: heart_rate_max_gap must not be negative")
	}
	if _, ok := parseTemperatureUnit(c.DefaultTemperatureUnit); !ok {
		return fmt.Errorf("core: default_temperature_unit %q is invalid", c.DefaultTemperatureUnit)
	}
	if _, ok := parseMeasurementSystem(c.DefaultMeasurementSystem); !ok {
		return fmt.Errorf("core: default_measurement_system %q is invalid", c.DefaultMeasurementSystem)
	}
	return nil
}

// sleepGapTolerance is the configured tolerance, zero when exact matching
// was requested.
func (c Config) sleepGapTolerance() time.Duration {
	if c.SleepExactMatch {
		return 0
	}
	return c.SleepGapTolerance
}

func (c Config) defaultPreferences() RegionalPreferences {
	temperature, _ := parseTemperatureUnit(c.DefaultTemperatureUnit)
	system, _ := parseMeasurementSystem(c.DefaultMeasurementSystem)
	return RegionalPreferences{
		Temperature:       temperature,
		MeasurementSystem: system,
		Source:            PreferenceSourceDefault,
	}
}

// parseTemperatureUnit treats an empty value as celsius.
func parseTemperatureUnit(raw string) (units.TemperatureUnit, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "celsius", "c":
		return units.TemperatureCelsius, true
	case "fahrenheit", "f":
		return units.TemperatureFahrenheit, true
	case "kelvin", "k":
		return units.TemperatureKelvin, true
	default:
		return units.TemperatureCelsius, false
	}
}

func parseMeasurementSystem(raw string) (MeasurementSystem, bool) {
	switch MeasurementSystem(strings.ToLower(strings.TrimSpace(raw))) {
	case "", MeasurementSystemMetric:
		return MeasurementSystemMetric, true
	case MeasurementSystemImperial:
		return MeasurementSystemImperial, true
	default:
		return MeasurementSystemMetric, false
	}
}
