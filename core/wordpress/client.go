// ABOUTME: WordPress GraphQL client serving posts, homepage sections and comments
// ABOUTME: Responses are cached; the latest-posts list falls back to the RSS feed

package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"nepalvoices-web/core/calendar"
	"nepalvoices-web/core/domain"
	"nepalvoices-web/core/errors"
	"nepalvoices-web/core/interfaces"
	"nepalvoices-web/pkg/featureflags"
)

const (
	// DefaultCacheTTL matches how often editors expect the site to refresh
	DefaultCacheTTL = 5 * time.Minute

	// DefaultRelatedLimit is the number of related posts shown under an article
	DefaultRelatedLimit = 4

	apiName       = "wordpress"
	maxErrorBody  = 512
	cacheKeyBase  = "wp:"
	maxPostsFirst = 100
)

// Config configures a Client
type Config struct {
	// Endpoint is the GraphQL URL
	Endpoint string

	// Origin prefixes root-relative media URLs and hosts the RSS feed
	Origin string

	// CacheTTL is how long query results are cached; zero means DefaultCacheTTL
	CacheTTL time.Duration

	// Location interprets WordPress dates, which carry no zone; nil means
	// Asia/Kathmandu
	Location *time.Location
}

// Client implements interfaces.ContentSource and interfaces.CommentSink
type Client struct {
	http     interfaces.HTTPClient
	cache    interfaces.Cache
	logger   interfaces.Logger
	endpoint string
	origin   string
	ttl      time.Duration
	loc      *time.Location
}

// NewClient creates a WordPress client
func NewClient(deps interfaces.Dependencies, cfg Config) *Client {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	loc := cfg.Location
	if loc == nil {
		loc = calendar.Kathmandu()
	}
	return &Client{
		http:     deps.HTTPClient,
		cache:    deps.Cache,
		logger:   deps.Logger,
		endpoint: cfg.Endpoint,
		origin:   strings.TrimRight(cfg.Origin, "/"),
		ttl:      ttl,
		loc:      loc,
	}
}

// Origin returns the public content origin
func (c *Client) Origin() string {
	return c.origin
}

// FetchPosts returns the latest posts, newest first. When GraphQL fails the
// site's RSS feed is used instead.
func (c *Client) FetchPosts(ctx context.Context, first int) ([]domain.Post, error) {
	first = clampFirst(first)

	var data postsData
	key := fmt.Sprintf("%sposts:%d", cacheKeyBase, first)
	err := c.cachedQuery(ctx, key, "GetPosts", postsQuery, map[string]interface{}{"first": first}, &data)
	if err == nil {
		return toDomainPosts(data.Posts.all(), c.origin, c.loc), nil
	}

	c.logger.Warn("GraphQL posts query failed, trying RSS feed", map[string]interface{}{
		"error": err.Error(),
	})

	posts, feedErr := c.fetchFeedPosts(ctx, first)
	if feedErr != nil {
		c.logger.Error("RSS fallback failed", map[string]interface{}{
			"error": feedErr.Error(),
		})
		return nil, err
	}
	return posts, nil
}

// FetchPostBySlug returns a single post with its categories
func (c *Client) FetchPostBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, &errors.ValidationError{Field: "slug", Message: "slug is required"}
	}

	var data postByData
	key := cacheKeyBase + "post:" + slug
	if err := c.cachedQuery(ctx, key, "GetPostBySlug", postBySlugQuery, map[string]interface{}{"slug": slug}, &data); err != nil {
		return nil, err
	}

	if data.PostBy == nil {
		return nil, &errors.NotFoundError{Resource: "post", ID: slug}
	}

	post := data.PostBy.toDomain(c.origin, c.loc)
	return &post, nil
}

// FetchHomePagePosts fetches every homepage section in one query
func (c *Client) FetchHomePagePosts(ctx context.Context) (*domain.HomePagePosts, error) {
	var data map[string]*postConnection
	if err := c.cachedQuery(ctx, cacheKeyBase+"home", "HomePagePosts", homePageQuery, nil, &data); err != nil {
		return nil, err
	}

	section := func(alias string) []domain.Post {
		return toDomainPosts(data[alias].all(), c.origin, c.loc)
	}

	return &domain.HomePagePosts{
		Featured:   section("featured"),
		Trending:   section("politics"),
		Latest:     section("latest"),
		Politics:   section("politics"),
		Society:    section("society"),
		Breaking:   section("breaking"),
		Economy:    section("economy"),
		Technology: section("technology"),
		Arts:       section("arts"),
		Sports:     section("sports"),
		World:      section("world"),
		Podcast:    section("podcast"),
	}, nil
}

// FetchCategoryPosts returns the newest posts of a WordPress category
func (c *Client) FetchCategoryPosts(ctx context.Context, categorySlug string, first int) ([]domain.Post, error) {
	if categorySlug == "" {
		return nil, &errors.ValidationError{Field: "category", Message: "category is required"}
	}
	first = clampFirst(first)

	var data postsData
	key := fmt.Sprintf("%scategory:%s:%d", cacheKeyBase, categorySlug, first)
	vars := map[string]interface{}{"category": categorySlug, "first": first}
	if err := c.cachedQuery(ctx, key, "CategoryPosts", categoryPostsQuery, vars, &data); err != nil {
		return nil, err
	}

	return toDomainPosts(data.Posts.all(), c.origin, c.loc), nil
}

// FetchRelatedPosts returns up to limit posts of categorySlug, excluding one post
func (c *Client) FetchRelatedPosts(ctx context.Context, categorySlug, excludeID string, limit int) ([]domain.Post, error) {
	if categorySlug == "" {
		return []domain.Post{}, nil
	}
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}

	var data postsData
	key := fmt.Sprintf("%srelated:%s:%s:%d", cacheKeyBase, categorySlug, excludeID, limit)
	vars := map[string]interface{}{
		"category": categorySlug,
		"exclude":  []string{excludeID},
		"first":    limit,
	}
	if err := c.cachedQuery(ctx, key, "RelatedPosts", relatedPostsQuery, vars, &data); err != nil {
		return nil, err
	}

	posts := toDomainPosts(data.Posts.all(), c.origin, c.loc)
	// notIn is advisory on some WPGraphQL versions
	filtered := posts[:0]
	for _, p := range posts {
		if p.ID != excludeID {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// CreateComment forwards a comment to WordPress, which owns validation and
// moderation. Comments are never cached.
func (c *Client) CreateComment(ctx context.Context, input domain.CommentInput) (*domain.CommentResult, error) {
	input = input.WithDefaults()

	vars := map[string]interface{}{
		"postId":  input.PostID,
		"content": input.Content,
		"author":  input.Name,
		"email":   input.Email,
	}

	raw, err := c.query(ctx, "AddComment", createCommentMutation, vars)
	if err != nil {
		return nil, err
	}

	var data createCommentData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, errors.WrapError(err, "failed to decode comment response")
	}

	result := &domain.CommentResult{}
	if data.CreateComment != nil {
		result.Success = data.CreateComment.Success
	}

	c.logger.Info("Comment submitted", map[string]interface{}{
		"post_id": input.PostID,
		"success": result.Success,
	})
	return result, nil
}

// cachedQuery serves data from the cache when allowed, otherwise runs the
// query and stores its data payload
func (c *Client) cachedQuery(ctx context.Context, key, op, query string, vars map[string]interface{}, out interface{}) error {
	useCache := c.cache != nil && featureflags.IsEnabled(ctx, featureflags.CacheEnabled)

	if useCache {
		if cached, err := c.cache.Get(ctx, key); err == nil {
			if err := json.Unmarshal(cached, out); err == nil {
				return nil
			}
			c.logger.Warn("Discarding undecodable cache entry", map[string]interface{}{"key": key})
		}
	}

	raw, err := c.query(ctx, op, query, vars)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return errors.WrapError(err, "failed to decode "+op+" response")
	}

	if useCache {
		if err := c.cache.Set(ctx, key, raw, c.ttl); err != nil {
			c.logger.Debug("Failed to cache GraphQL response", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}
	return nil
}

// query posts a GraphQL document and returns its data payload
func (c *Client) query(ctx context.Context, op, query string, vars map[string]interface{}) (json.RawMessage, error) {
	body, err := json.Marshal(graphQLRequest{Query: query, OperationName: op, Variables: vars})
	if err != nil {
		return nil, errors.WrapError(err, "failed to encode GraphQL request")
	}

	start := time.Now()
	resp, err := c.http.Post(ctx, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &errors.ExternalAPIError{API: apiName, StatusCode: http.StatusBadGateway, Message: err.Error()}
	}
	defer resp.Body().Close()

	payload, err := io.ReadAll(resp.Body())
	if err != nil {
		return nil, &errors.ExternalAPIError{API: apiName, StatusCode: http.StatusBadGateway, Message: err.Error()}
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		msg := string(payload)
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody]
		}
		c.logger.Error("WordPress returned an error status", map[string]interface{}{
			"operation": op,
			"status":    resp.StatusCode(),
		})
		return nil, &errors.ExternalAPIError{API: apiName, StatusCode: resp.StatusCode(), Message: msg}
	}

	var gql graphQLResponse
	if err := json.Unmarshal(payload, &gql); err != nil {
		return nil, &errors.ExternalAPIError{API: apiName, StatusCode: http.StatusBadGateway, Message: "invalid JSON response"}
	}

	if len(gql.Errors) > 0 {
		c.logger.Error("GraphQL query failed", map[string]interface{}{
			"operation": op,
			"errors":    len(gql.Errors),
			"first":     gql.Errors[0].Message,
		})
		return nil, &errors.GraphQLError{API: apiName, Message: gql.Errors[0].Message, Count: len(gql.Errors)}
	}

	if len(gql.Data) == 0 || string(gql.Data) == "null" {
		return nil, &errors.ExternalAPIError{API: apiName, StatusCode: http.StatusBadGateway, Message: "response has no data"}
	}

	c.logger.Debug("GraphQL query completed", map[string]interface{}{
		"operation":   op,
		"duration_ms": time.Since(start).Milliseconds(),
		"bytes":       len(payload),
	})
	return gql.Data, nil
}

func clampFirst(first int) int {
	switch {
	case first <= 0:
		return 10
	case first > maxPostsFirst:
		return maxPostsFirst
	default:
		return first
	}
}
