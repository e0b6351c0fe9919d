package main

import (
	"context"

	"weather-now/internal/dashboard"
)

// PingOutput represents the response for the ping endpoint
type PingOutput struct {
	Body struct {
		Message   string           `json:"message" example:"pong" doc:"Response message"`
		Dashboard dashboard.Status `json:"dashboard" example:"ready" doc:"Current dashboard state"`
	}
}

// handlePing is a health check endpoint that returns a simple pong message
func (app *App) handlePing(ctx context.Context, input *struct{}) (*PingOutput, error) {
	resp := &PingOutput{}
	resp.Body.Message = "pong"
	resp.Body.Dashboard = app.dashboard.View().Status
	return resp, nil
}
