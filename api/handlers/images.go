// ABOUTME: Image resolution handler exposes the thumbnail pipeline
// ABOUTME: Returns the card thumbnail, the remaining images and the cleaned body

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"nepalvoices-web/api/dto/requests"
	"nepalvoices-web/core/domain"
)

// ImageResolver runs the image pipeline for one article
type ImageResolver interface {
	ResolveImages(src domain.ArticleImageSource) domain.Resolution
}

// ImagesHandler handles image resolution requests
type ImagesHandler struct {
	resolver ImageResolver
}

// NewImagesHandler creates a new images handler
func NewImagesHandler(resolver ImageResolver) *ImagesHandler {
	return &ImagesHandler{resolver: resolver}
}

// RegisterRoutes registers the image resolution route
func (h *ImagesHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "resolveImages",
		Method:      http.MethodPost,
		Path:        "/api/images/resolve",
		Summary:     "Resolve article images",
		Description: "Extracts body images, picks the card thumbnail and removes it from the body",
		Tags:        []string{"Images"},
	}, h.Resolve)
}

// ResolveImagesInput defines the input for the Resolve operation
type ResolveImagesInput struct {
	Body requests.ResolveImagesRequest
}

// ResolveImagesOutput defines the output for the Resolve operation
type ResolveImagesOutput struct {
	Body domain.Resolution
}

// Resolve handles POST /api/images/resolve. The pipeline never fails.
func (h *ImagesHandler) Resolve(ctx context.Context, input *ResolveImagesInput) (*ResolveImagesOutput, error) {
	resolution := h.resolver.ResolveImages(input.Body.ToDomain())
	if resolution.RemainingImages == nil {
		resolution.RemainingImages = []string{}
	}
	return &ResolveImagesOutput{Body: resolution}, nil
}
