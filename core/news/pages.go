package news

import (
	"net/url"
	"strings"

	"nepalvoices-web/core/domain"
)

// Headline is a breaking news ticker entry
type Headline struct {
	Title string
	Link  string
}

// Section is a homepage block of cards for one category
type Section struct {
	Category domain.NavCategory
	Cards    []domain.Card
}

// HomePage is the homepage view model
type HomePage struct {
	Breaking []Headline

	// Featured is nil when no post carries the featured-news category
	Featured  *domain.Card
	Secondary []domain.Card
	Trending  []domain.Card
	Latest    []domain.Card

	// News is the grid of the most recent posts, shown without a featured story
	News     []domain.Card
	Sections []Section
}

// CategoryPage is a section listing
type CategoryPage struct {
	Category domain.NavCategory
	Cards    []domain.Card
}

// ArticlePage is the article view model
type ArticlePage struct {
	Post          *domain.Post
	Title         string
	Date          string
	Resolution    domain.Resolution
	RotatorImages []string
	Related       []domain.Card
	CanonicalURL  string
	Share         ShareLinks
}

// ShareLinks are the social share targets of an article
type ShareLinks struct {
	Facebook string
	WhatsApp string
	Twitter  string

	// Copy is the text placed on the clipboard for Instagram
	Copy string
}

// NewShareLinks builds share targets for a title and absolute URL
func NewShareLinks(title, pageURL string) ShareLinks {
	encodedTitle := encodeComponent(title)
	encodedURL := encodeComponent(pageURL)

	return ShareLinks{
		Facebook: "https://www.facebook.com/sharer/sharer.php?u=" + encodedURL,
		WhatsApp: "https://api.whatsapp.com/send?text=" + encodedTitle + "%20" + encodedURL,
		Twitter:  "https://twitter.com/intent/tweet?text=" + encodedTitle + "&url=" + encodedURL,
		Copy:     title + " " + pageURL,
	}
}

// encodeComponent escapes spaces as %20 rather than "+"
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
