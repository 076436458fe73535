// ABOUTME: Response DTOs for post, banner and utility endpoints
// ABOUTME: Field names follow the JSON the site's client scripts already consume

package responses

// PostResponse is a post as returned by GET /api/posts
type PostResponse struct {
	ID            string   `json:"id" doc:"WordPress global id"`
	URI           string   `json:"uri" doc:"Post URI"`
	Title         string   `json:"title" doc:"Rendered title"`
	Slug          string   `json:"slug" doc:"Post slug"`
	Status        string   `json:"status" doc:"Publication status"`
	Link          string   `json:"link" doc:"Permalink on the content host"`
	Date          string   `json:"date" doc:"Publication time, RFC 3339"`
	Content       string   `json:"content" doc:"Rendered body HTML"`
	Excerpt       *string  `json:"excerpt" doc:"Rendered excerpt or null"`
	FeaturedImage *string  `json:"featuredImage" doc:"Absolute featured image URL or null"`
	Images        []string `json:"images" doc:"Absolute URLs of images found in the body"`
}

// CommentResponse mirrors the createComment mutation payload
type CommentResponse struct {
	Data CommentData `json:"data"`
}

// CommentData wraps the mutation result
type CommentData struct {
	CreateComment CommentResult `json:"createComment"`
}

// CommentResult reports whether WordPress accepted the comment
type CommentResult struct {
	Success bool `json:"success"`
}

// SummaryResponse is returned by POST /api/summarize
type SummaryResponse struct {
	Summary string `json:"summary" doc:"Leading text of the article"`
}

// BannerResponse is a banner ad
type BannerResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	AdTitle  string `json:"adTitle"`
	Slug     string `json:"slug,omitempty"`
	Category string `json:"category,omitempty"`
	AdImage  string `json:"adImage,omitempty"`
	Link     string `json:"link,omitempty"`
	Priority int    `json:"priority"`
	Active   bool   `json:"active"`
}

// BannersResponse lists banner ads in display order
type BannersResponse struct {
	Banners []BannerResponse `json:"banners"`
	Total   int              `json:"total"`
}

// HealthResponse is returned by GET /healthz
type HealthResponse struct {
	Status string `json:"status"`
}
