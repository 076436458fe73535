package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"nepalvoices-web/api/dto/responses"
)

// RegisterHealth registers the liveness check
func RegisterHealth(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "healthz",
		Method:      http.MethodGet,
		Path:        "/healthz",
		Summary:     "Liveness check",
		Tags:        []string{"Health"},
	}, func(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
		return &HealthOutput{Body: responses.HealthResponse{Status: "ok"}}, nil
	})
}

// HealthOutput defines the output for the healthz operation
type HealthOutput struct {
	Body responses.HealthResponse
}
