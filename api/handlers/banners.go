// ABOUTME: Banner handler lists banner ads for client-side placement

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"nepalvoices-web/api/dto/mappers"
	"nepalvoices-web/api/dto/responses"
	"nepalvoices-web/core/domain"
	"nepalvoices-web/pkg/featureflags"
)

// BannerSource returns banner ads in display order
type BannerSource interface {
	Banners(ctx context.Context, category string, activeOnly bool) []domain.BannerAd
}

// BannerHandler handles banner ad requests
type BannerHandler struct {
	ads   BannerSource
	flags featureflags.Manager
}

// NewBannerHandler creates a new banner handler
func NewBannerHandler(ads BannerSource, flags featureflags.Manager) *BannerHandler {
	return &BannerHandler{ads: ads, flags: flags}
}

// RegisterRoutes registers the banner route
func (h *BannerHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "listBanners",
		Method:      http.MethodGet,
		Path:        "/api/banners",
		Summary:     "List banner ads",
		Description: "Returns banner ads sorted by descending priority. An unavailable ad service yields an empty list.",
		Tags:        []string{"Ads"},
	}, h.ListBanners)
}

// ListBannersInput defines the input for the ListBanners operation
type ListBannersInput struct {
	Category string `query:"category" maxLength:"100" doc:"Only banners for this category"`
	Active   bool   `query:"active" default:"true" doc:"Only active banners"`
}

// ListBannersOutput defines the output for the ListBanners operation
type ListBannersOutput struct {
	Body responses.BannersResponse
}

// ListBanners handles GET /api/banners
func (h *BannerHandler) ListBanners(ctx context.Context, input *ListBannersInput) (*ListBannersOutput, error) {
	if h.flags != nil && !h.flags.IsEnabled(ctx, featureflags.BannersEnabled) {
		return &ListBannersOutput{Body: mappers.ToBannerResponses(nil)}, nil
	}

	banners := h.ads.Banners(ctx, input.Category, input.Active)
	return &ListBannersOutput{Body: mappers.ToBannerResponses(banners)}, nil
}
