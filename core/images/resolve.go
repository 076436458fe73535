// ABOUTME: Composes extraction, thumbnail selection and body excision into one call
// ABOUTME: Resolutions are computed per render and are never cached

package images

import "nepalvoices-web/core/domain"

// Resolver binds the content origin used for root-relative image URLs
type Resolver struct {
	Origin string
}

// NewResolver creates a resolver for the given content origin
func NewResolver(origin string) *Resolver {
	return &Resolver{Origin: origin}
}

// Resolve runs the full pipeline for one article
func (r *Resolver) Resolve(src domain.ArticleImageSource) domain.Resolution {
	return Resolve(src, r.Origin)
}

// Extract returns the body images of html resolved against the bound origin
func (r *Resolver) Extract(bodyHTML string) []string {
	return ExtractImages(bodyHTML, r.Origin)
}

// Resolve runs extraction, selection and excision for one article
func Resolve(src domain.ArticleImageSource, origin string) domain.Resolution {
	extracted := ExtractImages(src.BodyHTML, origin)
	thumbnail, remaining, source := selectThumbnail(src.FeaturedImageURL, extracted)

	return domain.Resolution{
		CardThumbnail:   thumbnail,
		RemainingImages: remaining,
		CleanedBodyHTML: RemoveThumbnailFromBody(src.BodyHTML, thumbnail),
		ThumbnailSource: source,
	}
}
