// ABOUTME: Comment handler passes reader comments through to WordPress

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"nepalvoices-web/api/dto/mappers"
	"nepalvoices-web/api/dto/requests"
	"nepalvoices-web/api/dto/responses"
	"nepalvoices-web/core/interfaces"
)

// CommentHandler handles comment submissions
type CommentHandler struct {
	sink interfaces.CommentSink
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(sink interfaces.CommentSink) *CommentHandler {
	return &CommentHandler{sink: sink}
}

// RegisterRoutes registers the comment route
func (h *CommentHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "createComment",
		Method:      http.MethodPost,
		Path:        "/api/comment",
		Summary:     "Submit a comment",
		Description: "Forwards a reader comment to WordPress. Name and email default to Anonymous values.",
		Tags:        []string{"Comments"},
	}, h.CreateComment)
}

// CreateCommentInput defines the input for the CreateComment operation
type CreateCommentInput struct {
	Body requests.CommentRequest
}

// CreateCommentOutput defines the output for the CreateComment operation
type CreateCommentOutput struct {
	Body responses.CommentResponse
}

// CreateComment handles the POST /api/comment endpoint
func (h *CommentHandler) CreateComment(ctx context.Context, input *CreateCommentInput) (*CreateCommentOutput, error) {
	result, err := h.sink.CreateComment(ctx, input.Body.ToDomain())
	if err != nil {
		return nil, toHumaError(err)
	}

	return &CreateCommentOutput{Body: mappers.ToCommentResponse(result)}, nil
}
