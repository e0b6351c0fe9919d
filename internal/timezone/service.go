// Package timezone resolves IANA zone names from coordinates offline.
package timezone

import (
	"errors"
	"fmt"
	"sync"
	"time"
	_ "time/tzdata"

	"github.com/ringsaturn/tzf"
)

var ErrOutOfRange = errors.New("coordinates out of range")

// Service provides timezone lookup functionality
type Service interface {
	GetTimezone(latitude, longitude float64) (string, error)
}

// service implements timezone lookup using tzf. The finder is read-only after
// construction, so lookups need no locking.
type service struct {
	finder tzf.F
	// zones that time.LoadLocation accepted, keyed by name
	zones sync.Map
}

var (
	instance *service
	initErr  error
	once     sync.Once
)

// NewService creates or returns the singleton timezone service.
// tzf.Finder keeps its polygon data in memory, so it is loaded once per process.
func NewService() (Service, error) {
	once.Do(func() {
		finder, err := tzf.NewDefaultFinder()
		if err != nil {
			initErr = fmt.Errorf("failed to initialize timezone finder: %w", err)
			return
		}
		instance = &service{finder: finder}
	})
	if initErr != nil {
		return nil, initErr
	}
	return instance, nil
}

// GetTimezone returns the IANA timezone name for the given coordinates, like
// "Europe/Paris". Only names the runtime can load are returned, so callers can
// pass the result straight to time.LoadLocation.
func (s *service) GetTimezone(latitude, longitude float64) (string, error) {
	if latitude < -90 || latitude > 90 || longitude < -180 || longitude > 180 {
		return "", fmt.Errorf("%w: lat=%f, lon=%f", ErrOutOfRange, latitude, longitude)
	}

	// tzf takes longitude first
	name := s.finder.GetTimezoneName(longitude, latitude)
	if name == "" {
		return "", fmt.Errorf("could not determine timezone for coordinates lat=%f, lon=%f", latitude, longitude)
	}

	if _, ok := s.zones.Load(name); ok {
		return name, nil
	}
	if _, err := time.LoadLocation(name); err != nil {
		return "", fmt.Errorf("failed to load timezone %s: %w", name, err)
	}
	s.zones.Store(name, struct{}{})

	return name, nil
}
