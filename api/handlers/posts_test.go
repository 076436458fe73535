package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nepalvoices-web/api/dto/responses"
	"nepalvoices-web/core/domain"
	"nepalvoices-web/core/errors"
)

func TestPostsHandler_RegisterRoutes(t *testing.T) {
	handler := NewPostsHandler(&mockPostLister{}, &mockArticles{})
	_, api := humatest.New(t)
	handler.RegisterRoutes(api)

	paths := api.OpenAPI().Paths
	if paths["/api/posts"] == nil || paths["/api/posts"].Get == nil {
		t.Error("GET /api/posts not registered")
	}
	if paths["/api/posts/{slug}/markdown"] == nil || paths["/api/posts/{slug}/markdown"].Get == nil {
		t.Error("GET /api/posts/{slug}/markdown not registered")
	}
}

func TestPostsHandler_ListPosts(t *testing.T) {
	lister := &mockPostLister{
		fetchPostsFunc: func(ctx context.Context, first int) ([]domain.Post, error) {
			return []domain.Post{
				{
					ID:            "cG9zdDox",
					Slug:          "flood",
					Title:         "Flood",
					Date:          time.Date(2024, 7, 1, 6, 0, 0, 0, time.UTC),
					Content:       `<p><img src="/wp-content/a.jpg"><img src="https://cdn.example.com/b.png"></p>`,
					FeaturedImage: &domain.FeaturedImage{SourceURL: "https://news.nepalvoices.com/f.jpg"},
				},
				{ID: "cG9zdDoy", Slug: "quiet", Title: "Quiet"},
			}, nil
		},
	}
	handler := NewPostsHandler(lister, &mockArticles{})
	_, api := humatest.New(t)
	handler.RegisterRoutes(api)

	resp := api.Get("/api/posts")

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, 50, lister.lastFirst)
	assert.Equal(t, "*", resp.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "public, s-maxage=60, stale-while-revalidate=300", resp.Header().Get("Cache-Control"))

	var posts []responses.PostResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &posts))
	require.Len(t, posts, 2)

	assert.Equal(t, []string{"https://news.nepalvoices.com/wp-content/a.jpg", "https://cdn.example.com/b.png"}, posts[0].Images)
	require.NotNil(t, posts[0].FeaturedImage)
	assert.Equal(t, "https://news.nepalvoices.com/f.jpg", *posts[0].FeaturedImage)
	assert.Equal(t, "2024-07-01T06:00:00Z", posts[0].Date)

	assert.Nil(t, posts[1].FeaturedImage)
	assert.Empty(t, posts[1].Images)
	assert.Contains(t, resp.Body.String(), `"featuredImage":null`)
}

func TestPostsHandler_ListPosts_FirstParam(t *testing.T) {
	lister := &mockPostLister{}
	handler := NewPostsHandler(lister, &mockArticles{})
	_, api := humatest.New(t)
	handler.RegisterRoutes(api)

	resp := api.Get("/api/posts?first=5")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, 5, lister.lastFirst)

	resp = api.Get("/api/posts?first=500")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestPostsHandler_ListPosts_UpstreamFailure(t *testing.T) {
	lister := &mockPostLister{
		fetchPostsFunc: func(ctx context.Context, first int) ([]domain.Post, error) {
			return nil, &errors.GraphQLError{API: "wordpress", Message: "syntax error"}
		},
	}
	handler := NewPostsHandler(lister, &mockArticles{})
	_, api := humatest.New(t)
	handler.RegisterRoutes(api)

	resp := api.Get("/api/posts")

	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
}

func TestPostsHandler_PostMarkdown(t *testing.T) {
	articles := &mockArticles{
		markdownFunc: func(ctx context.Context, slug string) (string, error) {
			if slug != "budget" {
				return "", &errors.NotFoundError{Resource: "post", ID: slug}
			}
			return "# Budget\n\nBody text\n", nil
		},
	}
	handler := NewPostsHandler(&mockPostLister{}, articles)
	_, api := humatest.New(t)
	handler.RegisterRoutes(api)

	resp := api.Get("/api/posts/budget/markdown")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.True(t, strings.HasPrefix(resp.Header().Get("Content-Type"), "text/markdown"))
	assert.Equal(t, "# Budget\n\nBody text\n", resp.Body.String())

	resp = api.Get("/api/posts/missing/markdown")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
