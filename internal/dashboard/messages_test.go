package dashboard

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"weather-now/internal/geolocation"
	"weather-now/internal/weather"
)

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "unsupported", err: geolocation.ErrUnsupported, want: MsgGeolocationUnsupport},
		{name: "denied", err: &geolocation.Error{Code: geolocation.PermissionDenied}, want: MsgGeolocationDenied},
		{name: "unavailable", err: &geolocation.Error{Code: geolocation.PositionUnavailable}, want: MsgGeolocationFailed},
		{name: "timeout", err: &geolocation.Error{Code: geolocation.Timeout, Err: context.DeadlineExceeded}, want: MsgGeolocationFailed},
		{name: "wrapped denial", err: fmt.Errorf("start: %w", &geolocation.Error{Code: geolocation.PermissionDenied}), want: MsgGeolocationDenied},
		{name: "invalid city", err: &weather.LookupError{Stage: weather.StageGeocoding, Kind: weather.ErrInvalidCity}, want: MsgInvalidCity},
		{name: "not found", err: &weather.LookupError{Stage: weather.StageGeocoding, Kind: weather.ErrNotFound}, want: MsgCityNotFound},
		{name: "geocoding service", err: &weather.LookupError{Stage: weather.StageGeocoding, Kind: weather.ErrService}, want: MsgGeocodingError},
		{name: "geocoding network", err: &weather.LookupError{Stage: weather.StageGeocoding, Kind: weather.ErrNetwork}, want: MsgGeocodingNetwork},
		{name: "forecast service", err: &weather.LookupError{Stage: weather.StageForecast, Kind: weather.ErrService}, want: MsgForecastError},
		{name: "forecast network", err: &weather.LookupError{Stage: weather.StageForecast, Kind: weather.ErrNetwork}, want: MsgForecastNetwork},
		{name: "data unavailable", err: &weather.LookupError{Stage: weather.StageForecast, Kind: weather.ErrDataUnavailable}, want: MsgDataUnavailable},
		{name: "invalid coordinates", err: &weather.LookupError{Stage: weather.StageForecast, Kind: weather.ErrInvalidCoordinates}, want: MsgInvalidCoordinates},
		{name: "unknown", err: errors.New("boom"), want: MsgUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Message(tt.err); got != tt.want {
				t.Errorf("Message(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}
