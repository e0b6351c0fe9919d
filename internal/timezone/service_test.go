package timezone

import (
	"errors"
	"testing"
	"time"
)

func TestService_GetTimezone(t *testing.T) {
	svc, err := NewService()
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}

	tests := []struct {
		name      string
		latitude  float64
		longitude float64
		want      string
		wantErr   error
	}{
		{
			name:      "Paris, France",
			latitude:  48.8566,
			longitude: 2.3522,
			want:      "Europe/Paris",
		},
		{
			name:      "Aspen, Colorado",
			latitude:  39.19110,
			longitude: -106.81754,
			want:      "America/Denver",
		},
		{
			name:      "Tokyo, Japan",
			latitude:  35.6762,
			longitude: 139.6503,
			want:      "Asia/Tokyo",
		},
		{
			name:      "Sydney, Australia",
			latitude:  -33.8688,
			longitude: 151.2093,
			want:      "Australia/Sydney",
		},
		{
			name:      "latitude out of range",
			latitude:  91,
			longitude: 0,
			wantErr:   ErrOutOfRange,
		},
		{
			name:      "longitude out of range",
			latitude:  0,
			longitude: -181,
			wantErr:   ErrOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.GetTimezone(tt.latitude, tt.longitude)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("GetTimezone() error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("GetTimezone() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("GetTimezone() = %v, want %v", got, tt.want)
			}
			if _, err := time.LoadLocation(got); err != nil {
				t.Errorf("LoadLocation(%q) error = %v", got, err)
			}
		})
	}
}

func TestService_GetTimezone_Repeated(t *testing.T) {
	svc, err := NewService()
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}

	for range 3 {
		got, err := svc.GetTimezone(48.8566, 2.3522)
		if err != nil || got != "Europe/Paris" {
			t.Fatalf("GetTimezone() = %q, %v, want Europe/Paris", got, err)
		}
	}
}

func TestNewService_Singleton(t *testing.T) {
	first, err := NewService()
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}
	second, err := NewService()
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}
	if first != second {
		t.Error("NewService() returned different instances")
	}
}
