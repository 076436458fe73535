package news

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nepalvoices-web/core/domain"
	coreerrors "nepalvoices-web/core/errors"
)

const origin = "https://news.nepalvoices.com"

func post(id, slug string, opts ...func(*domain.Post)) domain.Post {
	p := domain.Post{
		ID:      id,
		Slug:    slug,
		Title:   "Title " + id,
		Content: "<p>Body of " + id + ".</p>",
		Date:    time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

func withFeatured(u string) func(*domain.Post) {
	return func(p *domain.Post) { p.FeaturedImage = &domain.FeaturedImage{SourceURL: u} }
}

func withContent(html string) func(*domain.Post) {
	return func(p *domain.Post) { p.Content = html }
}

func withCategories(slugs ...string) func(*domain.Post) {
	return func(p *domain.Post) {
		for _, s := range slugs {
			p.Categories = append(p.Categories, domain.Category{Slug: s})
		}
	}
}

func posts(prefix string, n int) []domain.Post {
	out := make([]domain.Post, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, post(fmt.Sprintf("%s%d", prefix, i), fmt.Sprintf("%s-%d", prefix, i)))
	}
	return out
}

func newTestService(src *mockContentSource, opts Options) *Service {
	if opts.Origin == "" {
		opts.Origin = origin
	}
	if opts.SiteURL == "" {
		opts.SiteURL = "https://www.nepalvoices.com"
	}
	if opts.Navigation == nil {
		opts.Navigation = staticDirectory{
			"politics":   {Slug: "politics", Nepali: "राजनीति"},
			"technology": {Slug: "technology", WordPressSlug: "technology-science"},
		}
	}
	return NewService(src, opts)
}

func TestCard_ThumbnailRule(t *testing.T) {
	svc := newTestService(&mockContentSource{}, Options{})

	featured := svc.Card(post("1", "a", withFeatured("https://cdn.example.com/f.jpg"),
		withContent(`<img src="/wp-content/uploads/b.jpg">`)), CardExcerptLength)
	assert.Equal(t, []string{"https://cdn.example.com/f.jpg"}, featured.Images)

	content := svc.Card(post("2", "b", withContent(`<img src="/wp-content/uploads/b.jpg"><img src="/wp-content/uploads/c.jpg">`)), CardExcerptLength)
	assert.Equal(t, []string{origin + "/wp-content/uploads/b.jpg"}, content.Images)

	none := svc.Card(post("3", "c"), CardExcerptLength)
	assert.Empty(t, none.Images)
	assert.Equal(t, "/news/c", none.Link)
	assert.Equal(t, "Title 3", none.Title)
	assert.Equal(t, "May 1, 2024", none.Date)
}

func TestCard_CleansTitleAndExcerpt(t *testing.T) {
	svc := newTestService(&mockContentSource{}, Options{})

	card := svc.Card(post("1", "a", func(p *domain.Post) {
		p.Title = "Budget &amp; tax 2/5 [Photos]"
		p.Content = ""
	}), CardExcerptLength)

	assert.Equal(t, "Budget & tax", card.Title)
	assert.Equal(t, "No preview available.", card.Excerpt)
}

func TestHomePage(t *testing.T) {
	latest := posts("l", 6)
	latest[2] = post("l2", "l-2", withFeatured("https://cdn.example.com/l2.jpg"))
	src := &mockContentSource{
		fetchHomeFunc: func(ctx context.Context) (*domain.HomePagePosts, error) {
			return &domain.HomePagePosts{
				Featured: []domain.Post{post("f", "featured", withFeatured("https://cdn.example.com/hero.jpg"))},
				Breaking: posts("b", 5),
				Trending: posts("t", 2),
				Latest:   latest,
				Politics: posts("p", 2),
			}, nil
		},
		fetchPostsFunc: func(ctx context.Context, first int) ([]domain.Post, error) {
			assert.Equal(t, 6, first)
			return posts("n", first), nil
		},
	}
	colors := &mockColors{known: map[string]domain.RGBColor{"https://cdn.example.com/hero.jpg": {R: 1, G: 2, B: 3}}}
	warmer := &mockWarmer{}
	svc := newTestService(src, Options{Colors: colors, Warmer: warmer})

	page, err := svc.HomePage(context.Background())
	require.NoError(t, err)

	assert.Len(t, page.Breaking, 3)
	assert.Equal(t, "/news/b-0", page.Breaking[0].Link)

	require.NotNil(t, page.Featured)
	assert.Equal(t, "/news/featured", page.Featured.Link)
	require.NotNil(t, page.Featured.Color)
	assert.Equal(t, uint8(2), page.Featured.Color.G)

	require.Len(t, page.Secondary, 3)
	assert.Equal(t, "l1", page.Secondary[0].ID)
	assert.Equal(t, "l3", page.Secondary[2].ID)

	assert.Len(t, page.Trending, 2)
	assert.Len(t, page.Latest, 6)
	assert.Len(t, page.News, 6)

	require.Len(t, page.Sections, 1)
	assert.Equal(t, "राजनीति", page.Sections[0].Category.Nepali)

	require.Len(t, warmer.batches, 1)
	assert.Equal(t, []string{"https://cdn.example.com/l2.jpg"}, warmer.batches[0])
}

func TestHomePage_NewsGridFailureDegrades(t *testing.T) {
	logger := &mockLogger{}
	src := &mockContentSource{
		fetchPostsFunc: func(ctx context.Context, first int) ([]domain.Post, error) {
			return nil, errors.New("feed down")
		},
	}
	svc := newTestService(src, Options{Logger: logger})

	page, err := svc.HomePage(context.Background())
	require.NoError(t, err)

	assert.Nil(t, page.Featured)
	assert.Empty(t, page.News)
	assert.NotNil(t, page.News)
	assert.Contains(t, logger.warns, "News grid unavailable")
}

func TestHomePage_UpstreamError(t *testing.T) {
	src := &mockContentSource{
		fetchHomeFunc: func(ctx context.Context) (*domain.HomePagePosts, error) {
			return nil, &coreerrors.ExternalAPIError{API: "wordpress", StatusCode: 502}
		},
	}
	svc := newTestService(src, Options{})

	_, err := svc.HomePage(context.Background())

	assert.True(t, coreerrors.IsExternalAPI(err))
}

func TestCategoryPage(t *testing.T) {
	var gotSlug string
	src := &mockContentSource{
		fetchCategoryFunc: func(ctx context.Context, slug string, first int) ([]domain.Post, error) {
			gotSlug = slug
			return posts("c", 3), nil
		},
	}
	svc := newTestService(src, Options{})

	page, err := svc.CategoryPage(context.Background(), "technology")
	require.NoError(t, err)

	assert.Equal(t, "technology-science", gotSlug)
	assert.Equal(t, "technology", page.Category.Slug)
	assert.Len(t, page.Cards, 3)
}

func TestCategoryPage_Unknown(t *testing.T) {
	src := &mockContentSource{}
	svc := newTestService(src, Options{})

	_, err := svc.CategoryPage(context.Background(), "favicon.ico")

	assert.True(t, coreerrors.IsNotFound(err))
	assert.False(t, src.called("category"))
}

func TestArticlePage_ResolvesImages(t *testing.T) {
	body := `<p>Intro.</p>` +
		`<img src="https://news.nepalvoices.com/wp-content/uploads/hero-1024x576.jpg">` +
		`<p>More.</p>` +
		`<img data-src="/wp-content/uploads/second.jpg" src="data:image/gif;base64,R0lGOD">`
	src := &mockContentSource{
		fetchPostFunc: func(ctx context.Context, slug string) (*domain.Post, error) {
			p := post("42", slug, withContent(body), withFeatured("https://news.nepalvoices.com/wp-content/uploads/hero.jpg"))
			p.Title = "Budget speech"
			return &p, nil
		},
	}
	svc := newTestService(src, Options{})

	page, err := svc.ArticlePage(context.Background(), "budget-speech")
	require.NoError(t, err)

	assert.Equal(t, "Budget speech", page.Title)
	assert.Equal(t, "May 1, 2024", page.Date)
	assert.Equal(t, domain.ThumbnailFromFeatured, page.Resolution.ThumbnailSource)
	assert.Equal(t, "https://news.nepalvoices.com/wp-content/uploads/hero.jpg", page.Resolution.CardThumbnail)
	assert.Equal(t, []string{
		"https://news.nepalvoices.com/wp-content/uploads/hero-1024x576.jpg",
		"https://news.nepalvoices.com/wp-content/uploads/second.jpg",
	}, page.RotatorImages)
	assert.NotContains(t, page.Resolution.CleanedBodyHTML, "hero-1024x576.jpg")
	assert.Contains(t, page.Resolution.CleanedBodyHTML, "second.jpg")

	assert.Equal(t, "https://www.nepalvoices.com/news/budget-speech", page.CanonicalURL)
	assert.Equal(t, "https://www.facebook.com/sharer/sharer.php?u=https%3A%2F%2Fwww.nepalvoices.com%2Fnews%2Fbudget-speech", page.Share.Facebook)
}

func TestArticlePage_RelatedByTopicalCategory(t *testing.T) {
	src := &mockContentSource{
		fetchPostFunc: func(ctx context.Context, slug string) (*domain.Post, error) {
			p := post("42", slug, withCategories("featured-news", "politics", "society"))
			return &p, nil
		},
		fetchRelatedFunc: func(ctx context.Context, category, excludeID string, limit int) ([]domain.Post, error) {
			assert.Equal(t, "politics", category)
			assert.Equal(t, "42", excludeID)
			assert.Equal(t, 4, limit)
			return []domain.Post{
				post("r1", "r1", withContent(`<img src="/a.jpg"><img src="/b.jpg">`), withFeatured("https://cdn.example.com/f.jpg")),
				post("r2", "r2", withFeatured("https://cdn.example.com/r2.jpg")),
				post("r3", "r3"),
			}, nil
		},
	}
	svc := newTestService(src, Options{})

	page, err := svc.ArticlePage(context.Background(), "story")
	require.NoError(t, err)

	require.Len(t, page.Related, 3)
	assert.Equal(t, []string{origin + "/a.jpg", origin + "/b.jpg"}, page.Related[0].Images)
	assert.Equal(t, []string{"https://cdn.example.com/r2.jpg"}, page.Related[1].Images)
	assert.Empty(t, page.Related[2].Images)
	assert.False(t, src.called("home"))
}

func TestArticlePage_RelatedFallsBackToTrending(t *testing.T) {
	src := &mockContentSource{
		fetchPostFunc: func(ctx context.Context, slug string) (*domain.Post, error) {
			p := post("t1", slug, withCategories("latest-news", "featured-news"))
			return &p, nil
		},
		fetchHomeFunc: func(ctx context.Context) (*domain.HomePagePosts, error) {
			return &domain.HomePagePosts{Trending: posts("t", 6)}, nil
		},
	}
	svc := newTestService(src, Options{})

	page, err := svc.ArticlePage(context.Background(), "story")
	require.NoError(t, err)

	require.Len(t, page.Related, 4)
	for _, c := range page.Related {
		assert.NotEqual(t, "t1", c.ID)
	}
	assert.Equal(t, "t0", page.Related[0].ID)
	assert.Equal(t, "t4", page.Related[3].ID)
	assert.False(t, src.called("related"))
}

func TestArticlePage_RelatedFailureDegrades(t *testing.T) {
	logger := &mockLogger{}
	src := &mockContentSource{
		fetchPostFunc: func(ctx context.Context, slug string) (*domain.Post, error) {
			p := post("42", slug, withCategories("sports"))
			return &p, nil
		},
		fetchRelatedFunc: func(ctx context.Context, category, excludeID string, limit int) ([]domain.Post, error) {
			return nil, errors.New("timeout")
		},
	}
	svc := newTestService(src, Options{Logger: logger})

	page, err := svc.ArticlePage(context.Background(), "story")
	require.NoError(t, err)

	assert.Empty(t, page.Related)
	assert.Contains(t, logger.warns, "Related posts unavailable")
}

func TestArticlePage_NotFound(t *testing.T) {
	svc := newTestService(&mockContentSource{}, Options{})

	_, err := svc.ArticlePage(context.Background(), "missing")

	assert.True(t, coreerrors.IsNotFound(err))
}

func TestRotatorImages(t *testing.T) {
	src := &mockContentSource{
		fetchPostFunc: func(ctx context.Context, slug string) (*domain.Post, error) {
			p := post("1", slug, withContent(`<img src="/a.jpg"><img src="/b.jpg"><img src="/c.jpg">`))
			return &p, nil
		},
	}
	svc := newTestService(src, Options{})

	imgs, err := svc.RotatorImages(context.Background(), "gallery")
	require.NoError(t, err)

	assert.Equal(t, []string{origin + "/b.jpg", origin + "/c.jpg"}, imgs)
}

func TestNewShareLinks(t *testing.T) {
	links := NewShareLinks("बजेट भाषण & more", "https://www.nepalvoices.com/news/budget")

	assert.True(t, strings.HasPrefix(links.WhatsApp, "https://api.whatsapp.com/send?text="))
	assert.Contains(t, links.WhatsApp, "%20%26%20more%20https%3A%2F%2F")
	assert.Contains(t, links.Twitter, "&url=https%3A%2F%2Fwww.nepalvoices.com%2Fnews%2Fbudget")
	assert.NotContains(t, links.Twitter, "+")
	assert.Equal(t, "बजेट भाषण & more https://www.nepalvoices.com/news/budget", links.Copy)
}
