// ABOUTME: Summarize handler returns the leading text of an article
// ABOUTME: Disabled by the summarizer feature flag

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"nepalvoices-web/api/dto/requests"
	"nepalvoices-web/api/dto/responses"
	"nepalvoices-web/pkg/featureflags"
)

// Summarizer produces a short summary of article text
type Summarizer interface {
	Summarize(text string) (string, error)
}

// SummarizeHandler handles summary requests
type SummarizeHandler struct {
	summarizer Summarizer
	flags      featureflags.Manager
}

// NewSummarizeHandler creates a new summarize handler
func NewSummarizeHandler(summarizer Summarizer, flags featureflags.Manager) *SummarizeHandler {
	return &SummarizeHandler{summarizer: summarizer, flags: flags}
}

// RegisterRoutes registers the summarize routes. The legacy path is kept for
// cached client scripts.
func (h *SummarizeHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "summarize",
		Method:      http.MethodPost,
		Path:        "/api/summarize",
		Summary:     "Summarize article text",
		Description: "Strips markup and returns the first characters of the text",
		Tags:        []string{"Summary"},
	}, h.Summarize)

	huma.Register(api, huma.Operation{
		OperationID: "summarizeLegacy",
		Method:      http.MethodPost,
		Path:        "/api/summarizeroute",
		Summary:     "Summarize article text (legacy path)",
		Tags:        []string{"Summary"},
		Deprecated:  true,
	}, h.Summarize)
}

// SummarizeInput defines the input for the Summarize operation
type SummarizeInput struct {
	Body requests.SummarizeRequest
}

// SummarizeOutput defines the output for the Summarize operation
type SummarizeOutput struct {
	Body responses.SummaryResponse
}

// Summarize handles POST /api/summarize
func (h *SummarizeHandler) Summarize(ctx context.Context, input *SummarizeInput) (*SummarizeOutput, error) {
	if h.flags != nil && !h.flags.IsEnabled(ctx, featureflags.SummarizerEnabled) {
		return nil, huma.Error404NotFound("Summarizer is disabled")
	}

	summary, err := h.summarizer.Summarize(input.Body.Text)
	if err != nil {
		return nil, toHumaError(err)
	}

	return &SummarizeOutput{Body: responses.SummaryResponse{Summary: summary}}, nil
}
