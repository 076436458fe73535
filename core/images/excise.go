package images

import "github.com/PuerkitoBio/goquery"

// RemoveThumbnailFromBody deletes every <img> in bodyHTML whose normalized
// identity matches the thumbnail, so the thumbnail is not shown twice.
//
// The body is returned untouched when there is no thumbnail, nothing matches,
// or the markup cannot be parsed or serialized.
func RemoveThumbnailFromBody(bodyHTML, cardThumbnail string) string {
	if bodyHTML == "" || cardThumbnail == "" {
		return bodyHTML
	}

	thumbID := NormalizedIdentity(cardThumbnail)
	if thumbID == "" {
		return bodyHTML
	}

	doc, err := parseFragment(bodyHTML)
	if err != nil {
		return bodyHTML
	}

	removed := 0
	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		src := imageSource(img)
		if src == "" {
			return
		}
		if NormalizedIdentity(src) == thumbID {
			img.Remove()
			removed++
		}
	})

	if removed == 0 {
		return bodyHTML
	}

	out, err := doc.Html()
	if err != nil {
		return bodyHTML
	}
	return out
}
