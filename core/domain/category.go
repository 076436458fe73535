package domain

// Category is a WordPress taxonomy term attached to a post
type Category struct {
	Name string
	Slug string
}

// NavCategory is a section shown in the site navigation
type NavCategory struct {
	// Nepali is the label shown in the menu
	Nepali string `yaml:"nepali" json:"nepali"`

	// English is the secondary label
	English string `yaml:"english" json:"english"`

	// Slug is the path segment of the section page
	Slug string `yaml:"slug" json:"slug"`

	// WordPressSlug is the category queried upstream; defaults to Slug
	WordPressSlug string `yaml:"wordpressSlug,omitempty" json:"wordpressSlug,omitempty"`
}

// UpstreamSlug returns the WordPress category slug backing this section
func (c NavCategory) UpstreamSlug() string {
	if c.WordPressSlug != "" {
		return c.WordPressSlug
	}
	return c.Slug
}
