// ABOUTME: Mappers for converting domain posts and banners to API DTOs

package mappers

import (
	"time"

	"nepalvoices-web/api/dto/responses"
	"nepalvoices-web/core/domain"
)

// ToPostResponse converts a post; images are the body images already
// resolved against the content origin
func ToPostResponse(post domain.Post, images []string) responses.PostResponse {
	if images == nil {
		images = []string{}
	}

	resp := responses.PostResponse{
		ID:      post.ID,
		URI:     post.URI,
		Title:   post.Title,
		Slug:    post.Slug,
		Status:  post.Status,
		Link:    post.Link,
		Content: post.Content,
		Images:  images,
	}

	if !post.Date.IsZero() {
		resp.Date = post.Date.Format(time.RFC3339)
	}
	if post.Excerpt != "" {
		excerpt := post.Excerpt
		resp.Excerpt = &excerpt
	}
	if featured := post.FeaturedImageURL(); featured != "" {
		resp.FeaturedImage = &featured
	}

	return resp
}

// ToBannerResponses converts banner ads, preserving order
func ToBannerResponses(banners []domain.BannerAd) responses.BannersResponse {
	out := make([]responses.BannerResponse, 0, len(banners))
	for _, b := range banners {
		out = append(out, responses.BannerResponse{
			ID:       b.ID,
			Title:    b.Title,
			AdTitle:  b.AdTitle,
			Slug:     b.Slug,
			Category: b.Category,
			AdImage:  b.AdImage,
			Link:     b.Link,
			Priority: b.Priority,
			Active:   b.Active,
		})
	}
	return responses.BannersResponse{Banners: out, Total: len(out)}
}

// ToCommentResponse wraps a mutation result the way the GraphQL endpoint does
func ToCommentResponse(result *domain.CommentResult) responses.CommentResponse {
	success := result != nil && result.Success
	return responses.CommentResponse{
		Data: responses.CommentData{CreateComment: responses.CommentResult{Success: success}},
	}
}
