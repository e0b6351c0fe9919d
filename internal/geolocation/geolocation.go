// Package geolocation acquires the user's coordinates once, with a bounded wait.
package geolocation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"weather-now/internal/types"
)

// DefaultTimeout bounds a single position request
const DefaultTimeout = 10 * time.Second

// Code classifies a failed position request, numbered like the browser API
type Code int

const (
	PermissionDenied    Code = 1
	PositionUnavailable Code = 2
	Timeout             Code = 3
)

func (c Code) String() string {
	switch c {
	case PermissionDenied:
		return "permission denied"
	case PositionUnavailable:
		return "position unavailable"
	case Timeout:
		return "timeout"
	default:
		return fmt.Sprintf("unknown (%d)", int(c))
	}
}

// ErrUnsupported is returned when no locator is available
var ErrUnsupported = errors.New("geolocation not supported")

// Error is a failed position request
type Error struct {
	Code Code
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("geolocation %s: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("geolocation %s", e.Code)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Locator produces a one-shot position
type Locator interface {
	Locate(ctx context.Context) (types.Coords, error)
}

// Locate asks l for a position, giving up after timeout. Every failure other
// than caller cancellation comes back as an *Error.
func Locate(ctx context.Context, l Locator, timeout time.Duration) (types.Coords, error) {
	if l == nil {
		return types.Coords{}, ErrUnsupported
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	locateCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	coords, err := l.Locate(locateCtx)
	if err != nil {
		var geoErr *Error
		switch {
		case errors.As(err, &geoErr):
			return types.Coords{}, err
		case ctx.Err() != nil:
			return types.Coords{}, ctx.Err()
		case errors.Is(err, context.DeadlineExceeded) || locateCtx.Err() != nil:
			return types.Coords{}, &Error{Code: Timeout, Err: err}
		default:
			return types.Coords{}, &Error{Code: PositionUnavailable, Err: err}
		}
	}

	if !coords.Valid() {
		return types.Coords{}, &Error{
			Code: PositionUnavailable,
			Err:  fmt.Errorf("invalid coordinates %s", coords),
		}
	}
	return coords, nil
}

// Static always reports the same position. It serves configured coordinates
// and positions reported by a browser.
type Static struct {
	Coords types.Coords
}

func NewStatic(coords types.Coords) Static {
	return Static{Coords: coords}
}

func (s Static) Locate(ctx context.Context) (types.Coords, error) {
	return s.Coords, nil
}

// Failed always fails with its code. It serves a denied configuration and
// failures reported by a browser.
type Failed struct {
	Code Code
}

func (f Failed) Locate(ctx context.Context) (types.Coords, error) {
	return types.Coords{}, &Error{Code: f.Code}
}

// Disabled denies every position request
func Disabled() Locator {
	return Failed{Code: PermissionDenied}
}
