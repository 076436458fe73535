// Package core contains the business logic for the Nepal Voices site.
// Nothing under core imports an HTTP framework; upstream access, caching and
// logging arrive through the contracts in core/interfaces.
//
// The core package is organized into several sub-packages:
//
// - domain: Posts, categories, banners, cards and the image pipeline types
// - images: Body image extraction, thumbnail selection and removal
// - rotator: The in-article image carousel state machine
// - wordpress: GraphQL client for posts and comments with an RSS fallback
// - ads: Banner ads fetched from the WordPress ads endpoint
// - calendar: Bikram Sambat conversion and the header clock
// - news: Page assembly for the home, category and article views
// - summary: Extractive summaries of article text
// - services, workers: Thumbnail accent colors computed in the background
// - errors: Custom error types mapped to HTTP status codes by the API
// - interfaces: Contracts for external dependencies (cache, HTTP, logger)
//
// # Usage Example
//
//	deps := interfaces.Dependencies{
//	    Cache:      myCache,      // implements interfaces.Cache
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	}
//
//	client := wordpress.NewClient(deps, wordpress.Config{
//	    Endpoint: "https://news.nepalvoices.com/graphql",
//	    Origin:   "https://news.nepalvoices.com",
//	})
//
//	post, err := client.FetchPostBySlug(ctx, "budget-2081")
//	if err != nil {
//	    return err
//	}
//	resolution := images.Resolve(post.ImageSource(), client.Origin())
package core
