package dashboard

import (
	"errors"

	"weather-now/internal/geolocation"
	"weather-now/internal/weather"
)

// User-facing failure messages
const (
	MsgCityNotFound         = "City not found"
	MsgGeocodingError       = "Geocoding error"
	MsgGeocodingNetwork     = "Network error while fetching coordinates"
	MsgForecastError        = "Weather API returned an error"
	MsgForecastNetwork      = "Network error while fetching weather"
	MsgDataUnavailable      = "Weather data not available"
	MsgInvalidCity          = "Please enter a city name"
	MsgInvalidCoordinates   = "Invalid coordinates"
	MsgGeolocationDenied    = "Geolocation permission denied. Please search by city."
	MsgGeolocationFailed    = "Failed to get geolocation. Try searching a city."
	MsgGeolocationUnsupport = "Geolocation not supported"
	MsgUnknown              = "An error occurred"
)

// Message converts a lookup or geolocation failure into the single line shown to the user
func Message(err error) string {
	var (
		geoErr    *geolocation.Error
		lookupErr *weather.LookupError
	)

	switch {
	case err == nil:
		return ""
	case errors.Is(err, geolocation.ErrUnsupported):
		return MsgGeolocationUnsupport
	case errors.As(err, &geoErr):
		if geoErr.Code == geolocation.PermissionDenied {
			return MsgGeolocationDenied
		}
		return MsgGeolocationFailed
	case errors.Is(err, weather.ErrInvalidCity):
		return MsgInvalidCity
	case errors.Is(err, weather.ErrNotFound):
		return MsgCityNotFound
	case errors.Is(err, weather.ErrDataUnavailable):
		return MsgDataUnavailable
	case errors.Is(err, weather.ErrInvalidCoordinates):
		return MsgInvalidCoordinates
	case errors.As(err, &lookupErr):
		return stageMessage(lookupErr)
	default:
		return MsgUnknown
	}
}

func stageMessage(err *weather.LookupError) string {
	network := errors.Is(err, weather.ErrNetwork)
	if err.Stage == weather.StageGeocoding {
		if network {
			return MsgGeocodingNetwork
		}
		return MsgGeocodingError
	}
	if network {
		return MsgForecastNetwork
	}
	return MsgForecastError
}
