// ABOUTME: Post domain model represents a WordPress article as rendered by the site
// ABOUTME: Carries the body HTML, featured image and category assignments

package domain

import "time"

// MetaCategorySlugs are editorial flags rather than topical sections.
var MetaCategorySlugs = []string{"featured-news", "latest-news"}

// Post represents a published WordPress post
type Post struct {
	// ID is the WordPress GraphQL global id
	ID string

	// DatabaseID is the numeric post id used by mutations
	DatabaseID int

	URI    string
	Title  string
	Slug   string
	Status string
	Link   string

	// Date is the publication time as reported by WordPress
	Date time.Time

	// Content is the rendered body HTML
	Content string

	// Excerpt is the rendered excerpt HTML
	Excerpt string

	// FeaturedImage is nil when the editor did not pick one
	FeaturedImage *FeaturedImage

	Categories []Category
}

// FeaturedImage is the editor-selected image of a post
type FeaturedImage struct {
	SourceURL string
	AltText   string
	Width     int
	Height    int
}

// FeaturedImageURL returns the featured image source or an empty string
func (p *Post) FeaturedImageURL() string {
	if p == nil || p.FeaturedImage == nil {
		return ""
	}
	return p.FeaturedImage.SourceURL
}

// ImageSource returns the inputs of the image resolution pipeline for this post
func (p *Post) ImageSource() ArticleImageSource {
	return ArticleImageSource{
		BodyHTML:         p.Content,
		FeaturedImageURL: p.FeaturedImageURL(),
	}
}

// TopicalCategorySlug returns the first category slug that is not an editorial flag
func (p *Post) TopicalCategorySlug() string {
	for _, c := range p.Categories {
		if c.Slug == "" || IsMetaCategory(c.Slug) {
			continue
		}
		return c.Slug
	}
	return ""
}

// IsMetaCategory reports whether slug is one of MetaCategorySlugs
func IsMetaCategory(slug string) bool {
	for _, m := range MetaCategorySlugs {
		if m == slug {
			return true
		}
	}
	return false
}

// HomePagePosts groups the post lists shown on the homepage
type HomePagePosts struct {
	Featured   []Post
	Trending   []Post
	Latest     []Post
	Politics   []Post
	Society    []Post
	Breaking   []Post
	Economy    []Post
	Technology []Post
	Arts       []Post
	Sports     []Post
	World      []Post
	Podcast    []Post
}
