// ABOUTME: Request DTOs for the comment, summarize and image resolution endpoints
// ABOUTME: Provides schema docs and conversion to domain inputs

package requests

import (
	"strings"

	"nepalvoices-web/core/domain"
)

// CommentRequest represents the body of POST /api/comment
type CommentRequest struct {
	// PostID is the WordPress database id of the post
	PostID int `json:"postId" doc:"WordPress database id of the post"`

	// Name is the commenter's display name
	Name string `json:"name,omitempty" doc:"Commenter name; Anonymous when empty"`

	// Email is the commenter's address
	Email string `json:"email,omitempty" doc:"Commenter email"`

	// Content is the comment text
	Content string `json:"content" doc:"Comment text; WordPress decides what it accepts"`
}

// ToDomain converts the request into a comment input with defaults applied
func (r *CommentRequest) ToDomain() domain.CommentInput {
	return domain.CommentInput{
		PostID:  r.PostID,
		Name:    strings.TrimSpace(r.Name),
		Email:   strings.TrimSpace(r.Email),
		Content: r.Content,
	}.WithDefaults()
}

// SummarizeRequest represents the body of POST /api/summarize
type SummarizeRequest struct {
	Text string `json:"text" doc:"Article text or HTML to summarize"`
}

// ResolveImagesRequest represents the body of POST /api/images/resolve
type ResolveImagesRequest struct {
	// BodyHTML is the rendered article body
	BodyHTML string `json:"bodyHtml" doc:"Rendered article body HTML"`

	// FeaturedImageURL is the post's featured image, if any
	FeaturedImageURL string `json:"featuredImageUrl,omitempty" doc:"Featured image URL"`
}

// ToDomain converts the request into a pipeline input
func (r *ResolveImagesRequest) ToDomain() domain.ArticleImageSource {
	return domain.ArticleImageSource{
		BodyHTML:         r.BodyHTML,
		FeaturedImageURL: strings.TrimSpace(r.FeaturedImageURL),
	}
}
