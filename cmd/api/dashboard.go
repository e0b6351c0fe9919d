package main

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"weather-now/internal/dashboard"
	"weather-now/internal/geolocation"
	"weather-now/internal/types"
)

// DashboardOutput is returned by every dashboard action
type DashboardOutput struct {
	Body dashboard.View
}

type SearchInput struct {
	Body struct {
		City string `json:"city" maxLength:"200" example:"Paris" doc:"City name; blank names are reported as an error state"`
	}
}

// LocationBody is what the browser's geolocation API reported: a position,
// or an error code when it failed.
type LocationBody struct {
	Latitude  *float64 `json:"latitude,omitempty" minimum:"-90" maximum:"90" example:"48.8566" doc:"Latitude in decimal degrees"`
	Longitude *float64 `json:"longitude,omitempty" minimum:"-180" maximum:"180" example:"2.3522" doc:"Longitude in decimal degrees"`
	ErrorCode int      `json:"error_code,omitempty" minimum:"0" maximum:"3" doc:"Browser geolocation error: 1 permission denied, 2 position unavailable, 3 timeout"`
}

type LocationInput struct {
	Body *LocationBody `required:"false"`
}

type UnitInput struct {
	Body struct {
		Unit types.Unit `json:"unit" enum:"metric,imperial" doc:"Unit system"`
	}
}

type ThemeInput struct {
	Body struct {
		Theme types.Theme `json:"theme" enum:"light,dark" doc:"Color theme"`
	}
}

type RecentSearchesOutput struct {
	Body struct {
		Searches []string `json:"searches" doc:"Most recent first"`
	}
}

func (app *App) dashboardOutput() *DashboardOutput {
	return &DashboardOutput{Body: app.dashboard.View()}
}

func (app *App) handleGetDashboard(ctx context.Context, input *struct{}) (*DashboardOutput, error) {
	return app.dashboardOutput(), nil
}

func (app *App) handleSearch(ctx context.Context, input *SearchInput) (*DashboardOutput, error) {
	app.dashboard.Search(ctx, input.Body.City)
	return app.dashboardOutput(), nil
}

func (app *App) handleUseLocation(ctx context.Context, input *LocationInput) (*DashboardOutput, error) {
	locator, err := app.locatorFor(input.Body)
	if err != nil {
		return nil, err
	}
	app.dashboard.UseLocation(ctx, locator)
	return app.dashboardOutput(), nil
}

// locatorFor turns a browser report into a locator, falling back to the
// configured one when nothing was reported
func (app *App) locatorFor(body *LocationBody) (geolocation.Locator, error) {
	if body == nil {
		return app.locator, nil
	}

	switch {
	case body.ErrorCode != 0:
		return geolocation.Failed{Code: geolocation.Code(body.ErrorCode)}, nil
	case body.Latitude != nil && body.Longitude != nil:
		return geolocation.NewStatic(types.NewCoords(*body.Latitude, *body.Longitude)), nil
	case body.Latitude != nil || body.Longitude != nil:
		return nil, huma.Error422UnprocessableEntity("latitude and longitude must be given together")
	default:
		return app.locator, nil
	}
}

func (app *App) handleChangeUnit(ctx context.Context, input *UnitInput) (*DashboardOutput, error) {
	if err := app.dashboard.ChangeUnit(ctx, input.Body.Unit); err != nil {
		return nil, app.toHTTPError(err)
	}
	return app.dashboardOutput(), nil
}

func (app *App) handleSetTheme(ctx context.Context, input *ThemeInput) (*DashboardOutput, error) {
	if err := app.dashboard.SetTheme(input.Body.Theme); err != nil {
		return nil, app.toHTTPError(err)
	}
	return app.dashboardOutput(), nil
}

func (app *App) handleRetry(ctx context.Context, input *struct{}) (*DashboardOutput, error) {
	if err := app.dashboard.Retry(ctx); err != nil {
		return nil, app.toHTTPError(err)
	}
	return app.dashboardOutput(), nil
}

func (app *App) handleDismiss(ctx context.Context, input *struct{}) (*DashboardOutput, error) {
	if err := app.dashboard.Dismiss(); err != nil {
		return nil, app.toHTTPError(err)
	}
	return app.dashboardOutput(), nil
}

func (app *App) handleListRecentSearches(ctx context.Context, input *struct{}) (*RecentSearchesOutput, error) {
	resp := &RecentSearchesOutput{}
	resp.Body.Searches = app.recent.Entries()
	return resp, nil
}

// toHTTPError maps controller errors onto status codes. Lookup failures never
// get here, they are part of the dashboard state.
func (app *App) toHTTPError(err error) error {
	switch {
	case errors.Is(err, dashboard.ErrInvalidTransition):
		return huma.Error409Conflict(err.Error())
	case errors.Is(err, dashboard.ErrInvalidUnit), errors.Is(err, dashboard.ErrInvalidTheme):
		return huma.Error422UnprocessableEntity(err.Error())
	default:
		app.logger.Error("dashboard action failed", "error", err)
		return huma.Error500InternalServerError("dashboard action failed")
	}
}
