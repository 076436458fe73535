package wordpress

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/mmcdole/gofeed"

	"nepalvoices-web/core/domain"
	"nepalvoices-web/core/errors"
	"nepalvoices-web/core/images"
)

const feedAPIName = "wordpress-rss"

// FeedURL is the site's RSS feed
func (c *Client) FeedURL() string {
	return c.origin + "/feed/"
}

// fetchFeedPosts reads the RSS feed. Feed items carry no database ids or
// categories, so posts built from it are display-only.
func (c *Client) fetchFeedPosts(ctx context.Context, limit int) ([]domain.Post, error) {
	if c.origin == "" {
		return nil, fmt.Errorf("no content origin configured for RSS fallback")
	}

	resp, err := c.http.Get(ctx, c.FeedURL())
	if err != nil {
		return nil, &errors.ExternalAPIError{API: feedAPIName, StatusCode: http.StatusBadGateway, Message: err.Error()}
	}
	defer resp.Body().Close()

	if resp.StatusCode() != http.StatusOK {
		return nil, &errors.ExternalAPIError{API: feedAPIName, StatusCode: resp.StatusCode(), Message: "unexpected status"}
	}

	feed, err := gofeed.NewParser().Parse(resp.Body())
	if err != nil {
		return nil, errors.WrapError(err, "failed to parse RSS feed")
	}

	posts := make([]domain.Post, 0, len(feed.Items))
	for _, item := range feed.Items {
		if len(posts) == limit {
			break
		}
		posts = append(posts, c.feedItemToPost(item))
	}

	c.logger.Info("Served posts from RSS feed", map[string]interface{}{
		"count": len(posts),
	})
	return posts, nil
}

func (c *Client) feedItemToPost(item *gofeed.Item) domain.Post {
	post := domain.Post{
		ID:      item.GUID,
		Title:   item.Title,
		Link:    item.Link,
		Slug:    slugFromLink(item.Link),
		Status:  "publish",
		Content: item.Content,
		Excerpt: item.Description,
	}
	if post.ID == "" {
		post.ID = item.Link
	}
	if post.Content == "" {
		post.Content = item.Description
	}
	if post.Slug != "" {
		post.URI = "/" + post.Slug + "/"
	}
	if item.PublishedParsed != nil {
		post.Date = item.PublishedParsed.In(c.loc)
	}

	if src := feedImage(item); src != "" {
		post.FeaturedImage = &domain.FeaturedImage{SourceURL: images.NormalizeURL(src, c.origin)}
	}

	for _, name := range item.Categories {
		post.Categories = append(post.Categories, domain.Category{Name: name})
	}

	return post
}

func feedImage(item *gofeed.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	for _, enc := range item.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}
	return ""
}

// slugFromLink takes the last path segment of a permalink, still escaped as
// WordPress stores it
func slugFromLink(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	p := strings.TrimRight(u.EscapedPath(), "/")
	if p == "" {
		return ""
	}
	return path.Base(p)
}
