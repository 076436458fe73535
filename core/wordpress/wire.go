package wordpress

import (
	"encoding/json"
	"time"

	"nepalvoices-web/core/domain"
	"nepalvoices-web/core/images"
	timeutil "nepalvoices-web/pkg/utils/time"
)

type graphQLRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName,omitempty"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage  `json:"data"`
	Errors []graphQLMessage `json:"errors"`
}

type graphQLMessage struct {
	Message string `json:"message"`
}

type postNode struct {
	ID            string         `json:"id"`
	DatabaseID    int            `json:"databaseId"`
	URI           string         `json:"uri"`
	Title         *string        `json:"title"`
	Slug          string         `json:"slug"`
	Status        string         `json:"status"`
	Link          string         `json:"link"`
	Date          string         `json:"date"`
	Content       *string        `json:"content"`
	Excerpt       *string        `json:"excerpt"`
	FeaturedImage *featuredEdge  `json:"featuredImage"`
	Categories    *categoryNodes `json:"categories"`
}

type featuredEdge struct {
	Node *mediaNode `json:"node"`
}

type mediaNode struct {
	SourceURL    string `json:"sourceUrl"`
	AltText      string `json:"altText"`
	MediaDetails *struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"mediaDetails"`
}

type categoryNodes struct {
	Nodes []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Slug string `json:"slug"`
	} `json:"nodes"`
}

type postConnection struct {
	Edges []struct {
		Node postNode `json:"node"`
	} `json:"edges"`
	Nodes []postNode `json:"nodes"`
}

// all returns the posts of a connection whether it was selected via edges or nodes
func (c *postConnection) all() []postNode {
	if c == nil {
		return nil
	}
	if len(c.Nodes) > 0 {
		return c.Nodes
	}
	out := make([]postNode, 0, len(c.Edges))
	for _, e := range c.Edges {
		out = append(out, e.Node)
	}
	return out
}

type postsData struct {
	Posts *postConnection `json:"posts"`
}

type postByData struct {
	PostBy *postNode `json:"postBy"`
}

type createCommentData struct {
	CreateComment *struct {
		Success bool `json:"success"`
	} `json:"createComment"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// toDomain converts a wire node; root-relative featured images are made
// absolute against origin
func (n postNode) toDomain(origin string, loc *time.Location) domain.Post {
	post := domain.Post{
		ID:         n.ID,
		DatabaseID: n.DatabaseID,
		URI:        n.URI,
		Title:      deref(n.Title),
		Slug:       n.Slug,
		Status:     n.Status,
		Link:       n.Link,
		Date:       timeutil.ParseFlexibleTime(n.Date, loc),
		Content:    deref(n.Content),
		Excerpt:    deref(n.Excerpt),
	}

	if n.FeaturedImage != nil && n.FeaturedImage.Node != nil && n.FeaturedImage.Node.SourceURL != "" {
		img := &domain.FeaturedImage{
			SourceURL: images.NormalizeURL(n.FeaturedImage.Node.SourceURL, origin),
			AltText:   n.FeaturedImage.Node.AltText,
		}
		if d := n.FeaturedImage.Node.MediaDetails; d != nil {
			img.Width = d.Width
			img.Height = d.Height
		}
		post.FeaturedImage = img
	}

	if n.Categories != nil {
		for _, c := range n.Categories.Nodes {
			post.Categories = append(post.Categories, domain.Category{Name: c.Name, Slug: c.Slug})
		}
	}

	return post
}

func toDomainPosts(nodes []postNode, origin string, loc *time.Location) []domain.Post {
	posts := make([]domain.Post, 0, len(nodes))
	for _, n := range nodes {
		posts = append(posts, n.toDomain(origin, loc))
	}
	return posts
}
