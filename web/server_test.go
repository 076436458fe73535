package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nepalvoices-web/core/domain"
	"nepalvoices-web/core/errors"
	"nepalvoices-web/core/news"
	"nepalvoices-web/pkg/featureflags"
)

type fakePages struct {
	home     *news.HomePage
	category map[string]*news.CategoryPage
	articles map[string]*news.ArticlePage
	images   map[string][]string
	homeErr  error
}

func (f *fakePages) HomePage(ctx context.Context) (*news.HomePage, error) {
	if f.homeErr != nil {
		return nil, f.homeErr
	}
	return f.home, nil
}

func (f *fakePages) CategoryPage(ctx context.Context, slug string) (*news.CategoryPage, error) {
	if page, ok := f.category[slug]; ok {
		return page, nil
	}
	return nil, &errors.NotFoundError{Resource: "category", ID: slug}
}

func (f *fakePages) ArticlePage(ctx context.Context, slug string) (*news.ArticlePage, error) {
	if page, ok := f.articles[slug]; ok {
		return page, nil
	}
	return nil, &errors.NotFoundError{Resource: "post", ID: slug}
}

func (f *fakePages) RotatorImages(ctx context.Context, slug string) ([]string, error) {
	if imgs, ok := f.images[slug]; ok {
		return imgs, nil
	}
	return nil, &errors.NotFoundError{Resource: "post", ID: slug}
}

func (f *fakePages) Navigation() []domain.NavCategory {
	return []domain.NavCategory{
		{Nepali: "राजनीति", English: "Politics", Slug: "politics"},
		{Nepali: "प्रविधि", English: "Technology", Slug: "technology", WordPressSlug: "technology-science"},
	}
}

type fakeBanners struct {
	lastCategory string
}

func (f *fakeBanners) Banners(ctx context.Context, category string, activeOnly bool) []domain.BannerAd {
	f.lastCategory = category
	return []domain.BannerAd{{ID: "1", AdTitle: "Sponsor", Link: "https://ads.example.com", Active: true}}
}

type fakeClock struct{}

func (fakeClock) Now() (domain.NepaliDateTime, error) {
	return domain.NepaliDateTime{Display: "असार १७, २०८१ | १०:३०:००"}, nil
}

func newTestPages() *fakePages {
	return &fakePages{
		home: &news.HomePage{
			Breaking: []news.Headline{{Title: "Breaking headline", Link: "/news/breaking"}},
			Featured: &domain.Card{Title: "Featured story", Link: "/news/featured", Images: []string{"https://x/f.jpg"}},
			Trending: []domain.Card{{Title: "Trending one", Link: "/news/t1"}},
			Latest:   []domain.Card{{Title: "Latest one", Link: "/news/l1"}},
			Sections: []news.Section{{
				Category: domain.NavCategory{Nepali: "राजनीति", English: "Politics", Slug: "politics"},
				Cards:    []domain.Card{{Title: "Politics card", Link: "/news/p1", Color: &domain.RGBColor{R: 10, G: 20, B: 30}}},
			}},
		},
		category: map[string]*news.CategoryPage{
			"politics": {
				Category: domain.NavCategory{Nepali: "राजनीति", English: "Politics", Slug: "politics"},
				Cards:    []domain.Card{{Title: "Election results", Link: "/news/election"}},
			},
		},
		articles: map[string]*news.ArticlePage{
			"budget": {
				Post:  &domain.Post{Slug: "budget", DatabaseID: 77},
				Title: "Budget announced",
				Date:  "May 29, 2024",
				Resolution: domain.Resolution{
					CardThumbnail:   "https://x/lead.jpg",
					RemainingImages: []string{"https://x/a.jpg", "https://x/b.jpg"},
					CleanedBodyHTML: `<p>Body text</p><script>alert("x")</script><p onclick="evil()">More</p>`,
				},
				RotatorImages: []string{"https://x/a.jpg", "https://x/b.jpg"},
				CanonicalURL:  "https://www.nepalvoices.com/news/budget",
				Share:         news.NewShareLinks("Budget announced", "https://www.nepalvoices.com/news/budget"),
			},
		},
		images: map[string][]string{
			"budget": {"https://x/a.jpg", "https://x/b.jpg"},
			"single": {"https://x/only.jpg"},
		},
	}
}

func newTestRouter(t *testing.T, pages *fakePages, flags featureflags.Manager, banners BannerSource) chi.Router {
	t.Helper()
	srv, err := NewServer(Options{
		Pages:   pages,
		Banners: banners,
		Clock:   fakeClock{},
		Flags:   flags,
	})
	require.NoError(t, err)

	router := chi.NewRouter()
	srv.RegisterRoutes(router)
	return router
}

func get(router http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
	return rec
}

func TestHomePage(t *testing.T) {
	banners := &fakeBanners{}
	router := newTestRouter(t, newTestPages(), nil, banners)

	rec := get(router, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	for _, want := range []string{
		"Breaking headline",
		"Featured story",
		"Trending one",
		"Latest one",
		"Politics card",
		"--card-color: rgb(10, 20, 30)",
		`href="/technology"`,
		"असार १७, २०८१",
		"Sponsor",
		"१",
	} {
		assert.Contains(t, body, want)
	}
}

func TestHomePage_BannersDisabled(t *testing.T) {
	banners := &fakeBanners{lastCategory: "untouched"}
	flags := featureflags.NewStaticManager(map[featureflags.FeatureFlag]bool{featureflags.BannersEnabled: false})
	router := newTestRouter(t, newTestPages(), flags, banners)

	rec := get(router, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Sponsor")
	assert.Equal(t, "untouched", banners.lastCategory)
}

func TestHomePage_UpstreamFailure(t *testing.T) {
	pages := newTestPages()
	pages.homeErr = &errors.ExternalAPIError{API: "wordpress", StatusCode: 500}
	router := newTestRouter(t, pages, nil, nil)

	rec := get(router, "/")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Go Back Home")
}

func TestCategoryPage(t *testing.T) {
	banners := &fakeBanners{}
	router := newTestRouter(t, newTestPages(), nil, banners)

	rec := get(router, "/politics")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Election results")
	assert.Contains(t, rec.Body.String(), `class="active"`)
	assert.Equal(t, "politics", banners.lastCategory)
}

func TestCategoryPage_Unknown(t *testing.T) {
	router := newTestRouter(t, newTestPages(), nil, nil)

	rec := get(router, "/no-such-section")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")
	assert.Contains(t, rec.Body.String(), "Go Back Home")
}

func TestArticlePage(t *testing.T) {
	router := newTestRouter(t, newTestPages(), nil, nil)

	rec := get(router, "/news/budget")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<h1>Budget announced</h1>")
	assert.Contains(t, body, `<link rel="canonical" href="https://www.nepalvoices.com/news/budget">`)
	assert.Contains(t, body, "<p>Body text</p>")
	assert.NotContains(t, body, "alert(")
	assert.NotContains(t, body, "onclick")
	assert.Contains(t, body, `data-slug="budget"`)
	assert.Contains(t, body, `data-post-id="77"`)
	assert.Contains(t, body, "https://x/lead.jpg")
	assert.Equal(t, 2, strings.Count(body, `data-index=`))
}

func TestArticlePage_RotatorSocketDisabled(t *testing.T) {
	flags := featureflags.NewStaticManager(map[featureflags.FeatureFlag]bool{featureflags.RotatorSocketEnabled: false})
	router := newTestRouter(t, newTestPages(), flags, nil)

	rec := get(router, "/news/budget")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "data-rotator")
	assert.NotContains(t, rec.Body.String(), "data-slug")
}

func TestArticlePage_NotFound(t *testing.T) {
	router := newTestRouter(t, newTestPages(), nil, nil)

	rec := get(router, "/news/missing")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Go Back Home")
}

func TestUnknownPathRendersNotFound(t *testing.T) {
	router := newTestRouter(t, newTestPages(), nil, nil)

	rec := get(router, "/a/b/c")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Go Back Home")
}

func TestStaticAssets(t *testing.T) {
	router := newTestRouter(t, newTestPages(), nil, nil)

	rec := get(router, "/static/site.css")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = get(router, "/static/site.js")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/ws/rotator")
}

func TestArticlePage_SummaryButton(t *testing.T) {
	router := newTestRouter(t, newTestPages(), nil, nil)

	rec := get(router, "/news/budget")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `class="summary-button" data-summary`)
	assert.Contains(t, body, "data-summary-modal")
	assert.Contains(t, body, `<article class="article">`)

	home := get(router, "/")
	assert.NotContains(t, home.Body.String(), "data-summary")
}

func TestArticlePage_SummarizerDisabled(t *testing.T) {
	flags := featureflags.NewStaticManager(map[featureflags.FeatureFlag]bool{featureflags.SummarizerEnabled: false})
	router := newTestRouter(t, newTestPages(), flags, nil)

	rec := get(router, "/news/budget")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "data-summary")
}

func TestArticlePage_SingleImageRotator(t *testing.T) {
	pages := newTestPages()
	pages.articles["single"] = &news.ArticlePage{
		Post:          &domain.Post{Slug: "single", DatabaseID: 78},
		Title:         "One photo",
		RotatorImages: []string{"https://x/only.jpg"},
		Share:         news.NewShareLinks("One photo", "https://www.nepalvoices.com/news/single"),
	}
	router := newTestRouter(t, pages, nil, nil)

	rec := get(router, "/news/single")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `src="https://x/only.jpg"`)
	assert.NotContains(t, body, `data-index=`)

	js := get(router, "/static/site.js").Body.String()
	assert.Contains(t, js, `if (dots.length < 2) {
      img.addEventListener("error", function () { root.classList.add("failed"); });`)
}

func TestStaticAssets_SummaryScript(t *testing.T) {
	router := newTestRouter(t, newTestPages(), nil, nil)

	js := get(router, "/static/site.js").Body.String()

	assert.Contains(t, js, `fetch("/api/summarize"`)
	assert.Contains(t, js, "article.innerText")
}
