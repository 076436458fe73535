// Package infrastructure provides concrete implementations of the interfaces
// defined in core/interfaces.
//
// - cache/memory: In-process cache backed by go-cache
// - cache/redis: Redis cache for sharing upstream responses between instances
// - cache/sqlite: File-backed cache that survives restarts on a single host
// - http/standard: HTTP client with retries for idempotent requests
// - logger/structured: logrus JSON logger with optional rotated file output
//
// # Cache
//
//	cache := memory.NewMemoryCache(time.Hour, memory.DefaultCleanupInterval)
//	err := cache.Set(ctx, "key", []byte("value"), 5*time.Minute)
//	value, err := cache.Get(ctx, "key")
//
// # HTTP Client
//
// GET requests are retried on transport errors and 5xx responses. POST is
// sent once, since the comment mutation is not idempotent.
//
//	client := standard.NewStandardHTTPClient(15 * time.Second)
//	resp, err := client.Get(ctx, "https://news.nepalvoices.com/feed/")
//	if err != nil {
//	    return err
//	}
//	defer resp.Body().Close()
//
// # Logger
//
//	logger := structured.New(structured.Options{Level: "info"})
//	logger.Info("Page rendered", map[string]interface{}{
//	    "path": "/news/budget-2081",
//	})
package infrastructure
