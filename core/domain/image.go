// ABOUTME: Image resolution value types shared by the pipeline and its callers
// ABOUTME: A Resolution is computed per render and never mutated afterwards

package domain

// Thumbnail sources recorded on a Resolution
const (
	ThumbnailFromFeatured = "featured"
	ThumbnailFromContent  = "content"
	ThumbnailNone         = "none"
)

// ArticleImageSource is the input of the image resolution pipeline
type ArticleImageSource struct {
	// BodyHTML is the raw article body, possibly malformed
	BodyHTML string

	// FeaturedImageURL is empty when the post has no featured image
	FeaturedImageURL string
}

// Resolution is the output of the image resolution pipeline
type Resolution struct {
	// CardThumbnail is empty when the article has no usable image
	CardThumbnail string `json:"cardThumbnail,omitempty"`

	// RemainingImages feed the in-article rotator
	RemainingImages []string `json:"remainingImages"`

	// CleanedBodyHTML is the body with every copy of the thumbnail removed
	CleanedBodyHTML string `json:"cleanedBodyHtml"`

	// ThumbnailSource is one of the ThumbnailFrom* constants
	ThumbnailSource string `json:"thumbnailSource"`
}

// HasThumbnail reports whether a card thumbnail was selected
func (r Resolution) HasThumbnail() bool {
	return r.CardThumbnail != ""
}
