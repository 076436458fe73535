package images

import "nepalvoices-web/core/domain"

// SelectThumbnail picks the card thumbnail and the images left for the article
// body.
//
// A featured image wins and the extracted list is returned unchanged, even when
// it contains a rendition of the featured image. Without a featured image the
// first extracted image becomes the thumbnail and is dropped from the list.
// Returned slices never alias extracted.
func SelectThumbnail(featuredImageURL string, extracted []string) (string, []string) {
	thumbnail, remaining, _ := selectThumbnail(featuredImageURL, extracted)
	return thumbnail, remaining
}

func selectThumbnail(featuredImageURL string, extracted []string) (string, []string, string) {
	switch {
	case featuredImageURL != "":
		return featuredImageURL, cloneStrings(extracted), domain.ThumbnailFromFeatured
	case len(extracted) > 0:
		return extracted[0], cloneStrings(extracted[1:]), domain.ThumbnailFromContent
	default:
		return "", []string{}, domain.ThumbnailNone
	}
}

// CardImages is the single-image list used for teaser cards: the featured
// image, else the first body image, else nothing.
func CardImages(featuredImageURL string, extracted []string) []string {
	thumbnail, _ := SelectThumbnail(featuredImageURL, extracted)
	if thumbnail == "" {
		return []string{}
	}
	return []string{thumbnail}
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
