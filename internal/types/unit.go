package types

import (
	"fmt"
	"strings"
)

// Unit selects both the provider request tokens and the display labels.
// Metric is Celsius, km/h and millimetres; imperial is Fahrenheit, mph and inches.
type Unit string

const (
	UnitMetric   Unit = "metric"
	UnitImperial Unit = "imperial"
)

// ParseUnit parses a unit name, case-insensitively
func ParseUnit(s string) (Unit, error) {
	switch Unit(strings.ToLower(strings.TrimSpace(s))) {
	case UnitMetric:
		return UnitMetric, nil
	case UnitImperial:
		return UnitImperial, nil
	default:
		return "", fmt.Errorf("unknown unit %q", s)
	}
}

func (u Unit) Valid() bool {
	return u == UnitMetric || u == UnitImperial
}


// Tokens are the provider query values for a unit. They are always derived
// together from one Unit so a request can never mix systems.
type Tokens struct {
	Temperature   string
	WindSpeed     string
	Precipitation string
}

func (u Unit) Tokens() Tokens {
	if u == UnitImperial {
		return Tokens{Temperature: "fahrenheit", WindSpeed: "mph", Precipitation: "inch"}
	}
	return Tokens{Temperature: "celsius", WindSpeed: "kmh", Precipitation: "mm"}
}

// Labels are the display suffixes for a unit
type Labels struct {
	Temperature   string
	WindSpeed     string
	Precipitation string
}

func (u Unit) Labels() Labels {
	if u == UnitImperial {
		return Labels{Temperature: "°F", WindSpeed: "mph", Precipitation: "in"}
	}
	return Labels{Temperature: "°C", WindSpeed: "km/h", Precipitation: "mm"}
}
