// ABOUTME: Service interfaces for the core business logic
// ABOUTME: Defines contracts between the page assembly layer and its content sources

package interfaces

import (
	"context"

	"nepalvoices-web/core/domain"
)

// ContentSource provides posts from the headless CMS
type ContentSource interface {
	FetchPosts(ctx context.Context, first int) ([]domain.Post, error)
	FetchPostBySlug(ctx context.Context, slug string) (*domain.Post, error)
	FetchHomePagePosts(ctx context.Context) (*domain.HomePagePosts, error)
	FetchCategoryPosts(ctx context.Context, categorySlug string, first int) ([]domain.Post, error)
	FetchRelatedPosts(ctx context.Context, categorySlug, excludeID string, limit int) ([]domain.Post, error)
}

// CommentSink forwards reader comments upstream
type CommentSink interface {
	CreateComment(ctx context.Context, input domain.CommentInput) (*domain.CommentResult, error)
}

// AdSource provides banner ads
type AdSource interface {
	FetchBanners(ctx context.Context) ([]domain.BannerAd, error)
}

// ThumbnailColorService extracts colors from thumbnail images
type ThumbnailColorService interface {
	ExtractColor(ctx context.Context, imageURL string) (*domain.RGBColor, error)
	ExtractColorBatch(ctx context.Context, imageURLs []string) map[string]*domain.RGBColor
	GetCachedColor(ctx context.Context, imageURL string) (*domain.RGBColor, error)
}
