// Package dashboard holds the session state behind the weather dashboard and
// turns user actions into weather lookups.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"weather-now/internal/geolocation"
	"weather-now/internal/location"
	"weather-now/internal/types"
	"weather-now/internal/weather"
)

// Status is the controller state
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// FetchMode records how the current snapshot was obtained
type FetchMode string

const (
	ModeNone        FetchMode = ""
	ModeCity        FetchMode = "city"
	ModeCoords      FetchMode = "coords"
	ModeGeolocation FetchMode = "geolocation"
)

// YourLocation labels snapshots fetched for the user's own position
const YourLocation = "Your Location"

var (
	// ErrInvalidTransition is returned for actions the current state does not allow
	ErrInvalidTransition = errors.New("invalid transition")
	ErrInvalidUnit       = errors.New("invalid unit")
	ErrInvalidTheme      = errors.New("invalid theme")
)

// RecentSearches is the persisted list successful city searches are recorded in
type RecentSearches interface {
	Record(ctx context.Context, city string) error
	Entries() []string
}

type Options struct {
	Unit  types.Unit
	Theme types.Theme
	// Locator is used by Start and whenever no other locator has been used yet
	Locator            geolocation.Locator
	GeolocationTimeout time.Duration
	// Describer names geolocated positions; nil labels them "Your Location"
	Describer location.Service
}

// Controller is the single dashboard session. All methods are safe for
// concurrent use. Each action starts at most one lookup; starting a new one
// cancels the one in flight and only the newest lookup may change state.
type Controller struct {
	weather    weather.Service
	recent     RecentSearches
	describer  location.Service
	geoTimeout time.Duration
	logger     *slog.Logger

	mu             sync.Mutex
	status         Status
	message        string
	snapshot       *types.Snapshot
	unit           types.Unit
	theme          types.Theme
	mode           FetchMode
	lastCoords     types.Coords
	lastPlace      types.Place
	defaultLocator geolocation.Locator
	locator        geolocation.Locator
	generation     uint64
	cancel         context.CancelFunc
}

func NewController(weatherService weather.Service, recent RecentSearches, opts Options, logger *slog.Logger) *Controller {
	unit := opts.Unit
	if !unit.Valid() {
		unit = types.UnitMetric
	}
	theme := opts.Theme
	if theme != types.ThemeDark {
		theme = types.ThemeLight
	}
	timeout := opts.GeolocationTimeout
	if timeout <= 0 {
		timeout = geolocation.DefaultTimeout
	}

	return &Controller{
		weather:        weatherService,
		recent:         recent,
		describer:      opts.Describer,
		geoTimeout:     timeout,
		logger:         logger.With("component", "dashboard"),
		status:         StatusIdle,
		unit:           unit,
		theme:          theme,
		defaultLocator: opts.Locator,
	}
}

// outcome is what a successful lookup changes
type outcome struct {
	snapshot *types.Snapshot
	mode     FetchMode
	coords   types.Coords
	place    types.Place
}

type lookupFunc func(ctx context.Context, unit types.Unit) (outcome, error)

// run moves to loading and performs the lookup chosen by plan, which is called
// under the lock and may refuse the action. It reports whether the lookup
// succeeded and was applied.
func (c *Controller) run(ctx context.Context, action string, plan func() (lookupFunc, error)) (bool, error) {
	c.mu.Lock()
	lookup, err := plan()
	if err != nil {
		c.mu.Unlock()
		return false, err
	}
	if c.cancel != nil {
		c.cancel()
	}
	c.generation++
	generation := c.generation
	unit := c.unit
	// a client hanging up must not leave the session stuck in loading
	lookupCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	c.cancel = cancel
	c.status = StatusLoading
	c.message = ""
	c.mu.Unlock()

	defer cancel()

	c.logger.Debug("lookup started", "action", action, "generation", generation, "unit", unit)

	result, lookupErr := lookup(lookupCtx, unit)

	c.mu.Lock()
	defer c.mu.Unlock()

	if generation != c.generation {
		c.logger.Debug("discarding superseded lookup", "action", action, "generation", generation)
		return false, nil
	}
	c.cancel = nil

	if lookupErr != nil {
		c.status = StatusError
		c.message = Message(lookupErr)
		c.logger.Info("lookup failed", "action", action, "message", c.message, "error", lookupErr)
		return false, nil
	}

	c.status = StatusReady
	c.snapshot = result.snapshot
	c.mode = result.mode
	c.lastCoords = result.coords
	c.lastPlace = result.place

	c.logger.Info("lookup succeeded",
		"action", action,
		"mode", result.mode,
		"name", result.snapshot.Name,
		"unit", result.snapshot.Unit,
	)
	return true, nil
}

// Start begins the session with a geolocation lookup
func (c *Controller) Start(ctx context.Context) {
	_, _ = c.run(ctx, "start", func() (lookupFunc, error) {
		return c.locate(c.currentLocator()), nil
	})
}

// Search looks weather up by city name and records the name on success
func (c *Controller) Search(ctx context.Context, city string) {
	city = strings.TrimSpace(city)

	applied, _ := c.run(ctx, "search", func() (lookupFunc, error) {
		return func(ctx context.Context, unit types.Unit) (outcome, error) {
			snapshot, err := c.weather.GetWeatherByCity(ctx, city, unit)
			if err != nil {
				return outcome{}, err
			}
			return outcome{
				snapshot: snapshot,
				mode:     ModeCity,
				coords:   snapshot.Coords(),
				place:    snapshot.Place(),
			}, nil
		}, nil
	})
	if !applied {
		return
	}

	// the list is updated in memory even if persisting fails, which Record logs
	_ = c.recent.Record(context.WithoutCancel(ctx), city)
}

// UseLocation looks weather up for the position reported by locator. A nil
// locator means geolocation is not available at all.
func (c *Controller) UseLocation(ctx context.Context, locator geolocation.Locator) {
	_, _ = c.run(ctx, "location", func() (lookupFunc, error) {
		if locator != nil {
			c.locator = locator
		}
		return c.locate(locator), nil
	})
}

// ChangeUnit switches units and re-fetches the current location in the new
// unit. A stored snapshot is never converted.
func (c *Controller) ChangeUnit(ctx context.Context, unit types.Unit) error {
	if !unit.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidUnit, unit)
	}

	_, err := c.run(ctx, "unit", func() (lookupFunc, error) {
		c.unit = unit
		switch c.mode {
		case ModeCity, ModeCoords:
			return c.byCoords(c.lastCoords, c.lastPlace, c.mode), nil
		default:
			return c.locate(c.currentLocator()), nil
		}
	})
	return err
}

// Retry repeats a failed lookup: the last snapshot's coordinates, name and mode when
// there is one, otherwise geolocation.
func (c *Controller) Retry(ctx context.Context) error {
	_, err := c.run(ctx, "retry", func() (lookupFunc, error) {
		if c.status != StatusError {
			return nil, fmt.Errorf("%w: retry from %s", ErrInvalidTransition, c.status)
		}
		if c.snapshot != nil {
			mode := c.mode
			if mode == ModeNone {
				mode = ModeCoords
			}
			return c.byCoords(c.snapshot.Coords(), c.snapshot.Place(), mode), nil
		}
		return c.locate(c.currentLocator()), nil
	})
	return err
}

// Dismiss clears the error message and returns to idle, keeping the last snapshot
func (c *Controller) Dismiss() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status != StatusError {
		return fmt.Errorf("%w: dismiss from %s", ErrInvalidTransition, c.status)
	}
	c.status = StatusIdle
	c.message = ""
	return nil
}

// SetTheme changes the theme without fetching
func (c *Controller) SetTheme(theme types.Theme) error {
	if theme != types.ThemeLight && theme != types.ThemeDark {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, theme)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.theme = theme
	return nil
}

// View returns the presentation model of the current state
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := View{
		Status:         c.status,
		Loading:        c.status == StatusLoading,
		Error:          c.message,
		Unit:           c.unit,
		Theme:          c.theme,
		RecentSearches: c.recent.Entries(),
	}

	if c.snapshot != nil {
		view.Weather = newWeatherCard(c.snapshot)
		view.Sky = view.Weather.Sky
	}
	view.Background = backgroundFor(c.theme, view.Sky)

	return view
}

// currentLocator must be called with the lock held
func (c *Controller) currentLocator() geolocation.Locator {
	if c.locator != nil {
		return c.locator
	}
	return c.defaultLocator
}

func (c *Controller) byCoords(coords types.Coords, place types.Place, mode FetchMode) lookupFunc {
	return func(ctx context.Context, unit types.Unit) (outcome, error) {
		snapshot, err := c.weather.GetWeatherByCoords(ctx, coords, unit, place)
		if err != nil {
			return outcome{}, err
		}
		return outcome{snapshot: snapshot, mode: mode, coords: coords, place: place}, nil
	}
}

func (c *Controller) locate(locator geolocation.Locator) lookupFunc {
	return func(ctx context.Context, unit types.Unit) (outcome, error) {
		coords, err := geolocation.Locate(ctx, locator, c.geoTimeout)
		if err != nil {
			return outcome{}, err
		}

		if c.describer == nil {
			place := types.Place{Name: YourLocation}
			snapshot, err := c.weather.GetWeatherByCoords(ctx, coords, unit, place)
			if err != nil {
				return outcome{}, err
			}
			return outcome{snapshot: snapshot, mode: ModeGeolocation, coords: coords, place: place}, nil
		}

		// Name the position while the forecast is in flight
		var (
			wg    sync.WaitGroup
			place types.Place
		)
		wg.Add(1)
		go func() {
			defer wg.Done()
			place = c.describe(ctx, coords)
		}()

		snapshot, err := c.weather.GetWeatherByCoords(ctx, coords, unit, types.Place{})
		wg.Wait()
		if err != nil {
			return outcome{}, err
		}

		return outcome{
			snapshot: snapshot.WithPlace(place),
			mode:     ModeGeolocation,
			coords:   coords,
			place:    place,
		}, nil
	}
}

// describe reverse geocodes coords, falling back to "Your Location"
func (c *Controller) describe(ctx context.Context, coords types.Coords) types.Place {
	place, err := c.describer.Describe(ctx, coords)
	if err != nil {
		c.logger.Warn("failed to name location", "coords", coords.String(), "error", err)
		return types.Place{Name: YourLocation}
	}
	return place
}
