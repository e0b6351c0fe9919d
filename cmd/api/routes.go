package main

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// registerRoutes sets up all API endpoints
func (app *App) registerRoutes() {
	// Health check endpoint
	huma.Register(app.api, huma.Operation{
		OperationID: "ping",
		Method:      http.MethodGet,
		Path:        "/ping",
		Summary:     "Ping health check",
		Description: "Check if the API is running",
		Tags:        []string{"health"},
	}, app.handlePing)

	huma.Register(app.api, huma.Operation{
		OperationID: "get-dashboard",
		Method:      http.MethodGet,
		Path:        "/dashboard",
		Summary:     "Get dashboard",
		Description: "Current state, weather card and preferences",
		Tags:        []string{"dashboard"},
	}, app.handleGetDashboard)

	huma.Register(app.api, huma.Operation{
		OperationID: "search-city",
		Method:      http.MethodPost,
		Path:        "/dashboard/search",
		Summary:     "Search by city",
		Description: "Look current weather up by city name. Lookup failures are reported in the dashboard state.",
		Tags:        []string{"dashboard"},
	}, app.handleSearch)

	huma.Register(app.api, huma.Operation{
		OperationID: "use-location",
		Method:      http.MethodPost,
		Path:        "/dashboard/location",
		Summary:     "Use my location",
		Description: "Look current weather up for the user's position. Send the position or error code reported by the browser, or no body to use the server's configured geolocation.",
		Tags:        []string{"dashboard"},
	}, app.handleUseLocation)

	huma.Register(app.api, huma.Operation{
		OperationID: "change-unit",
		Method:      http.MethodPut,
		Path:        "/dashboard/unit",
		Summary:     "Change unit",
		Description: "Switch between metric and imperial and re-fetch the current location",
		Tags:        []string{"dashboard"},
	}, app.handleChangeUnit)

	huma.Register(app.api, huma.Operation{
		OperationID: "set-theme",
		Method:      http.MethodPut,
		Path:        "/dashboard/theme",
		Summary:     "Set theme",
		Tags:        []string{"dashboard"},
	}, app.handleSetTheme)

	huma.Register(app.api, huma.Operation{
		OperationID: "retry",
		Method:      http.MethodPost,
		Path:        "/dashboard/retry",
		Summary:     "Retry failed lookup",
		Description: "Only allowed while the dashboard shows an error",
		Tags:        []string{"dashboard"},
	}, app.handleRetry)

	huma.Register(app.api, huma.Operation{
		OperationID: "dismiss-error",
		Method:      http.MethodPost,
		Path:        "/dashboard/dismiss",
		Summary:     "Dismiss error",
		Description: "Only allowed while the dashboard shows an error",
		Tags:        []string{"dashboard"},
	}, app.handleDismiss)

	huma.Register(app.api, huma.Operation{
		OperationID: "list-recent-searches",
		Method:      http.MethodGet,
		Path:        "/recent-searches",
		Summary:     "List recent searches",
		Description: "Up to five recently searched cities, most recent first",
		Tags:        []string{"dashboard"},
	}, app.handleListRecentSearches)
}
