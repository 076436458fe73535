// Package api provides the JSON API of the Nepal Voices site.
// It uses the Huma framework on a chi router for OpenAPI documentation,
// request validation and a uniform error format.
//
// # Architecture
//
// - server.go: Huma API configuration and the shared middleware chain
// - handlers/: HTTP request handlers
// - dto/: Data Transfer Objects for requests and responses
// - middleware/: Request logging, per-IP rate limiting and Prometheus metrics
//
// The same chi router also serves the HTML pages from the web package, so
// logging, CORS and metrics apply to both. Rate limiting only covers /api/.
//
// # Endpoints
//
//	GET  /api/posts                  latest posts with their body images
//	GET  /api/posts/{slug}/markdown  article as Markdown
//	POST /api/comment                submit a comment for moderation
//	POST /api/summarize              extractive summary of text
//	GET  /api/banners                banner ads by category
//	GET  /api/clock                  Nepali date and time
//	POST /api/images/resolve         run the image pipeline on a body
//	GET  /healthz                    liveness
//
// OpenAPI is served at /openapi.json and interactive docs at /docs.
//
// # Usage Example
//
//	humaAPI := api.NewAPIWithMiddleware(api.APIConfig{
//	    Logger:      logger,
//	    RateLimiter: middleware.NewRateLimiter(10, 20),
//	    Metrics:     true,
//	})
//	handlers.NewPostsHandler(client, newsService).RegisterRoutes(humaAPI)
//	http.ListenAndServe(":3000", humaAPI.Adapter())
//
// # Error Handling
//
// Errors follow RFC 7807:
//
//	{
//	    "status": 404,
//	    "title": "Not Found",
//	    "detail": "post not found: budget-2081"
//	}
//
// Domain errors are mapped to status codes in handlers/errors.go.
package api
