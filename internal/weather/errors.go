package weather

import (
	"errors"
	"fmt"

	"weather-now/internal/providers/openmeteo"
)

// Failure kinds. A failed lookup always carries exactly one of these inside a
// *LookupError, so callers can branch with errors.Is.
var (
	ErrNotFound           = errors.New("city not found")
	ErrNetwork            = errors.New("network error")
	ErrService            = errors.New("service error")
	ErrDataUnavailable    = errors.New("weather data not available")
	ErrInvalidCity        = errors.New("city name is empty")
	ErrInvalidCoordinates = errors.New("coordinates out of range")
)

// Stage names the lookup step that failed
type Stage string

const (
	StageGeocoding Stage = "geocoding"
	StageForecast  Stage = "forecast"
)

// LookupError is a failed geocoding or forecast step
type LookupError struct {
	Stage Stage
	Kind  error
	Err   error
}

func (e *LookupError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Stage, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Stage, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the underlying cause to errors.Is and errors.As
func (e *LookupError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// classify maps a provider error onto the failure kinds
func classify(stage Stage, err error) *LookupError {
	var statusErr *openmeteo.StatusError

	kind := ErrNetwork
	switch {
	case errors.As(err, &statusErr), errors.Is(err, openmeteo.ErrCircuitOpen):
		kind = ErrService
	case errors.Is(err, openmeteo.ErrDecode):
		// an unreadable forecast is missing data, an unreadable geocoding answer is a broken service
		if stage == StageForecast {
			kind = ErrDataUnavailable
		} else {
			kind = ErrService
		}
	}

	return &LookupError{Stage: stage, Kind: kind, Err: err}
}
