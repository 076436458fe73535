// ABOUTME: Post handlers for the Huma API
// ABOUTME: Lists recent posts with extracted images and exports articles as Markdown

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"nepalvoices-web/api/dto/mappers"
	"nepalvoices-web/api/dto/responses"
	"nepalvoices-web/core/domain"
)

const (
	postsCacheControl = "public, s-maxage=60, stale-while-revalidate=300"
	defaultPostsLimit = 50
)

// PostLister fetches the most recent posts
type PostLister interface {
	FetchPosts(ctx context.Context, first int) ([]domain.Post, error)
}

// ArticleService renders posts for API consumers
type ArticleService interface {
	PostImages(post domain.Post) []string
	ArticleMarkdown(ctx context.Context, slug string) (string, error)
}

// PostsHandler handles post-related HTTP requests
type PostsHandler struct {
	posts    PostLister
	articles ArticleService
}

// NewPostsHandler creates a new posts handler
func NewPostsHandler(posts PostLister, articles ArticleService) *PostsHandler {
	return &PostsHandler{posts: posts, articles: articles}
}

// RegisterRoutes registers all post-related routes
func (h *PostsHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "listPosts",
		Method:      http.MethodGet,
		Path:        "/api/posts",
		Summary:     "List recent posts",
		Description: "Returns the most recent posts with their featured image and every image found in the body",
		Tags:        []string{"Posts"},
	}, h.ListPosts)

	huma.Register(api, huma.Operation{
		OperationID: "getPostMarkdown",
		Method:      http.MethodGet,
		Path:        "/api/posts/{slug}/markdown",
		Summary:     "Export a post as Markdown",
		Description: "Renders the cleaned article body of a post as Markdown",
		Tags:        []string{"Posts"},
	}, h.PostMarkdown)
}

// ListPostsInput defines the input for the ListPosts operation
type ListPostsInput struct {
	First int `query:"first" minimum:"1" maximum:"100" default:"50" doc:"Number of posts to return"`
}

// ListPostsOutput defines the output for the ListPosts operation
type ListPostsOutput struct {
	AllowOrigin  string `header:"Access-Control-Allow-Origin"`
	CacheControl string `header:"Cache-Control"`
	Body         []responses.PostResponse
}

// ListPosts handles the GET /api/posts endpoint
func (h *PostsHandler) ListPosts(ctx context.Context, input *ListPostsInput) (*ListPostsOutput, error) {
	first := input.First
	if first <= 0 {
		first = defaultPostsLimit
	}

	posts, err := h.posts.FetchPosts(ctx, first)
	if err != nil {
		return nil, toHumaError(err)
	}

	body := make([]responses.PostResponse, 0, len(posts))
	for _, post := range posts {
		body = append(body, mappers.ToPostResponse(post, h.articles.PostImages(post)))
	}

	return &ListPostsOutput{
		AllowOrigin:  "*",
		CacheControl: postsCacheControl,
		Body:         body,
	}, nil
}

// PostMarkdownInput defines the input for the PostMarkdown operation
type PostMarkdownInput struct {
	Slug string `path:"slug" minLength:"1" maxLength:"200" doc:"Post slug"`
}

// PostMarkdownOutput defines the output for the PostMarkdown operation
type PostMarkdownOutput struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

// PostMarkdown handles the GET /api/posts/{slug}/markdown endpoint
func (h *PostsHandler) PostMarkdown(ctx context.Context, input *PostMarkdownInput) (*PostMarkdownOutput, error) {
	md, err := h.articles.ArticleMarkdown(ctx, input.Slug)
	if err != nil {
		return nil, toHumaError(err)
	}

	return &PostMarkdownOutput{
		ContentType: "text/markdown; charset=utf-8",
		Body:        []byte(md),
	}, nil
}
