package models

import (
	"fmt"
	"math"
	"strings"
)

// TemperatureUnit is the display unit for temperatures
type TemperatureUnit int

const (
	Celsius TemperatureUnit = iota
	Fahrenheit
)

// ParseTemperatureUnit accepts "celsius"/"c" and "fahrenheit"/"f", case-insensitively
func ParseTemperatureUnit(s string) (TemperatureUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "celsius", "c":
		return Celsius, nil
	case "fahrenheit", "f":
		return Fahrenheit, nil
	}
	return Celsius, fmt.Errorf("unknown temperature unit %q", s)
}

// Symbol returns the unit suffix shown next to a temperature
func (u TemperatureUnit) Symbol() string {
	if u == Fahrenheit {
		return "°F"
	}
	return "°C"
}

// String implements fmt.Stringer
func (u TemperatureUnit) String() string {
	if u == Fahrenheit {
		return "fahrenheit"
	}
	return "celsius"
}

// Toggle returns the other unit
func (u TemperatureUnit) Toggle() TemperatureUnit {
	if u == Fahrenheit {
		return Celsius
	}
	return Fahrenheit
}

// ConvertTemperature converts a Celsius value to the target unit and rounds it.
// Rounding is half away from zero (math.Round): 0.5 -> 1, -0.5 -> -1.
func ConvertTemperature(celsius float64, unit TemperatureUnit) int {
	if unit == Fahrenheit {
		return int(math.Round(celsius*9/5 + 32))
	}
	return int(math.Round(celsius))
}
