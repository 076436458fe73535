// ABOUTME: News service assembles the homepage, category and article views
// ABOUTME: Combines WordPress content with image resolution, card cleaning and colors

package news

import (
	"context"
	"strings"

	"nepalvoices-web/core/domain"
	"nepalvoices-web/core/errors"
	"nepalvoices-web/core/images"
	"nepalvoices-web/core/interfaces"
	htmlutil "nepalvoices-web/pkg/utils/html"
	timeutil "nepalvoices-web/pkg/utils/time"
)

// Excerpt lengths used by the different card layouts
const (
	CardExcerptLength     = 150
	FeaturedExcerptLength = 200
	LatestExcerptLength   = 120

	maxBreaking  = 3
	newsGridSize = 6
	relatedLimit = 4
)

// CategoryDirectory resolves navigation slugs to sections
type CategoryDirectory interface {
	Lookup(slug string) (domain.NavCategory, bool)
	Categories() []domain.NavCategory
}

// ColorLookup reads thumbnail colors without computing them
type ColorLookup interface {
	GetCachedColor(ctx context.Context, imageURL string) (*domain.RGBColor, error)
}

// ColorWarmer schedules background color extraction
type ColorWarmer interface {
	Warm(urls []string)
}

// Options configure a Service
type Options struct {
	// Origin resolves root-relative image URLs in post bodies
	Origin string

	// SiteURL is the public address used for canonical and share links
	SiteURL string

	Navigation CategoryDirectory
	Colors     ColorLookup
	Warmer     ColorWarmer
	Logger     interfaces.Logger
}

// Service builds page view models
type Service struct {
	content  interfaces.ContentSource
	resolver *images.Resolver
	nav      CategoryDirectory
	colors   ColorLookup
	warmer   ColorWarmer
	logger   interfaces.Logger
	siteURL  string
}

// NewService creates a news service
func NewService(content interfaces.ContentSource, opts Options) *Service {
	return &Service{
		content:  content,
		resolver: images.NewResolver(strings.TrimRight(opts.Origin, "/")),
		nav:      opts.Navigation,
		colors:   opts.Colors,
		warmer:   opts.Warmer,
		logger:   opts.Logger,
		siteURL:  strings.TrimRight(opts.SiteURL, "/"),
	}
}

// HomePage assembles the homepage
func (s *Service) HomePage(ctx context.Context) (*HomePage, error) {
	posts, err := s.content.FetchHomePagePosts(ctx)
	if err != nil {
		return nil, errors.WrapError(err, "failed to fetch homepage posts")
	}

	cb := s.newCardBuilder(ctx)
	page := &HomePage{
		Breaking:  make([]Headline, 0, maxBreaking),
		Secondary: cb.cards(sliceRange(posts.Latest, 1, 4), CardExcerptLength),
		Trending:  cb.cards(posts.Trending, CardExcerptLength),
		Latest:    cb.cards(posts.Latest, LatestExcerptLength),
		Sections:  s.sections(cb, posts),
	}

	for _, p := range sliceRange(posts.Breaking, 0, maxBreaking) {
		page.Breaking = append(page.Breaking, Headline{
			Title: htmlutil.CleanTitle(p.Title),
			Link:  PostPath(p.Slug),
		})
	}

	if len(posts.Featured) > 0 {
		featured := cb.card(posts.Featured[0], FeaturedExcerptLength)
		page.Featured = &featured
	}

	grid, err := s.content.FetchPosts(ctx, newsGridSize)
	if err != nil {
		s.warn("News grid unavailable", err, nil)
		grid = nil
	}
	page.News = cb.cards(grid, CardExcerptLength)

	cb.flush()
	return page, nil
}

// CategoryPage lists the posts of a navigation section
func (s *Service) CategoryPage(ctx context.Context, slug string) (*CategoryPage, error) {
	category, ok := s.lookup(slug)
	if !ok {
		return nil, &errors.NotFoundError{Resource: "category", ID: slug}
	}

	posts, err := s.content.FetchCategoryPosts(ctx, category.UpstreamSlug(), 0)
	if err != nil {
		return nil, errors.WrapError(err, "failed to fetch category posts")
	}

	cb := s.newCardBuilder(ctx)
	page := &CategoryPage{
		Category: category,
		Cards:    cb.cards(posts, CardExcerptLength),
	}
	cb.flush()
	return page, nil
}

// Navigation returns the configured sections
func (s *Service) Navigation() []domain.NavCategory {
	if s.nav == nil {
		return []domain.NavCategory{}
	}
	return s.nav.Categories()
}

// ArticlePage assembles an article view. Missing posts surface as
// NotFoundError; related posts degrade to an empty list.
func (s *Service) ArticlePage(ctx context.Context, slug string) (*ArticlePage, error) {
	post, err := s.content.FetchPostBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	page := s.article(post)

	cb := s.newCardBuilder(ctx)
	page.Related = cb.relatedCards(s.relatedPosts(ctx, post))
	cb.flush()

	return page, nil
}

// article builds the page without related posts
func (s *Service) article(post *domain.Post) *ArticlePage {
	resolution := s.resolver.Resolve(post.ImageSource())
	canonical := s.siteURL + PostPath(post.Slug)
	title := htmlutil.CleanTitle(post.Title)

	return &ArticlePage{
		Post:          post,
		Title:         title,
		Date:          timeutil.FormatLongDate(post.Date),
		Resolution:    resolution,
		RotatorImages: resolution.RemainingImages,
		Related:       []domain.Card{},
		CanonicalURL:  canonical,
		Share:         NewShareLinks(title, canonical),
	}
}

// relatedPosts prefers the first topical category and falls back to trending
func (s *Service) relatedPosts(ctx context.Context, post *domain.Post) []domain.Post {
	if category := post.TopicalCategorySlug(); category != "" {
		related, err := s.content.FetchRelatedPosts(ctx, category, post.ID, relatedLimit)
		if err != nil {
			s.warn("Related posts unavailable", err, map[string]interface{}{"category": category})
			return nil
		}
		return related
	}

	home, err := s.content.FetchHomePagePosts(ctx)
	if err != nil {
		s.warn("Trending posts unavailable", err, nil)
		return nil
	}

	related := make([]domain.Post, 0, relatedLimit)
	for _, p := range home.Trending {
		if p.ID == post.ID {
			continue
		}
		related = append(related, p)
		if len(related) == relatedLimit {
			break
		}
	}
	return related
}

// ResolveImages runs the image pipeline against the configured origin
func (s *Service) ResolveImages(src domain.ArticleImageSource) domain.Resolution {
	return s.resolver.Resolve(src)
}

// RotatorImages returns the images the in-article rotator cycles through
func (s *Service) RotatorImages(ctx context.Context, slug string) ([]string, error) {
	post, err := s.content.FetchPostBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.resolver.Resolve(post.ImageSource()).RemainingImages, nil
}

// PostImages returns every distinct body image of a post, resolved against
// the content origin
func (s *Service) PostImages(post domain.Post) []string {
	return s.resolver.Extract(post.Content)
}

// Card builds a teaser card without color lookups
func (s *Service) Card(post domain.Post, excerptLength int) domain.Card {
	return buildCard(post, s.resolver, excerptLength)
}

func (s *Service) sections(cb *cardBuilder, posts *domain.HomePagePosts) []Section {
	groups := []struct {
		slug  string
		posts []domain.Post
	}{
		{"politics", posts.Politics},
		{"society", posts.Society},
		{"economy", posts.Economy},
		{"technology", posts.Technology},
		{"arts", posts.Arts},
		{"sports", posts.Sports},
		{"world", posts.World},
		{"podcast", posts.Podcast},
	}

	sections := make([]Section, 0, len(groups))
	for _, g := range groups {
		if len(g.posts) == 0 {
			continue
		}
		category, ok := s.lookup(g.slug)
		if !ok {
			category = domain.NavCategory{Slug: g.slug, English: g.slug}
		}
		sections = append(sections, Section{
			Category: category,
			Cards:    cb.cards(g.posts, CardExcerptLength),
		})
	}
	return sections
}

func (s *Service) lookup(slug string) (domain.NavCategory, bool) {
	if s.nav == nil {
		return domain.NavCategory{}, false
	}
	return s.nav.Lookup(slug)
}

func (s *Service) warn(msg string, err error, fields map[string]interface{}) {
	if s.logger == nil {
		return
	}
	if fields == nil {
		fields = map[string]interface{}{}
	}
	fields["error"] = err.Error()
	s.logger.Warn(msg, fields)
}

// PostPath is the site path of an article
func PostPath(slug string) string {
	return "/news/" + slug
}

func sliceRange(posts []domain.Post, from, to int) []domain.Post {
	if from >= len(posts) {
		return nil
	}
	if to > len(posts) {
		to = len(posts)
	}
	return posts[from:to]
}
