// ABOUTME: Clock handler reports the current Nepali date and time

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"nepalvoices-web/core/domain"
)

// NepaliClock reads the current Bikram Sambat date and Kathmandu time
type NepaliClock interface {
	Now() (domain.NepaliDateTime, error)
}

// ClockHandler serves the header clock
type ClockHandler struct {
	clock NepaliClock
}

// NewClockHandler creates a new clock handler
func NewClockHandler(clock NepaliClock) *ClockHandler {
	return &ClockHandler{clock: clock}
}

// RegisterRoutes registers the clock route
func (h *ClockHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getClock",
		Method:      http.MethodGet,
		Path:        "/api/clock",
		Summary:     "Current Nepali date and time",
		Tags:        []string{"Calendar"},
	}, h.Now)
}

// ClockOutput defines the output for the Now operation
type ClockOutput struct {
	CacheControl string `header:"Cache-Control"`
	Body         domain.NepaliDateTime
}

// Now handles GET /api/clock
func (h *ClockHandler) Now(ctx context.Context, _ *struct{}) (*ClockOutput, error) {
	now, err := h.clock.Now()
	if err != nil {
		return nil, huma.Error500InternalServerError("Date outside supported calendar range", err)
	}
	return &ClockOutput{CacheControl: "no-store", Body: now}, nil
}
