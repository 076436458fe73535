// ABOUTME: Main entry point for the Nepal Voices web server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nepalvoices-web/api"
	"nepalvoices-web/api/handlers"
	"nepalvoices-web/api/middleware"
	"nepalvoices-web/core/ads"
	"nepalvoices-web/core/calendar"
	"nepalvoices-web/core/interfaces"
	"nepalvoices-web/core/news"
	"nepalvoices-web/core/services"
	"nepalvoices-web/core/summary"
	"nepalvoices-web/core/wordpress"
	"nepalvoices-web/core/workers"
	"nepalvoices-web/infrastructure/cache/memory"
	"nepalvoices-web/infrastructure/cache/redis"
	"nepalvoices-web/infrastructure/cache/sqlite"
	stdhttp "nepalvoices-web/infrastructure/http/standard"
	"nepalvoices-web/infrastructure/logger/structured"
	"nepalvoices-web/pkg/config"
	"nepalvoices-web/pkg/featureflags"
	"nepalvoices-web/web"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := structured.New(structured.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	defer logger.Close()

	logger.Info("Starting Nepal Voices", map[string]interface{}{
		"port":       cfg.Server.Port,
		"cache_type": cfg.Cache.Type,
		"graphql":    cfg.WordPress.GraphQLURL,
	})

	flags := featureflags.NewEnvManager("FEATURE_")
	logger.Info("Feature flags", map[string]interface{}{"flags": flags.GetAllFlags()})

	cache, closeCache := newCache(cfg, logger)
	defer closeCache()

	httpClient := stdhttp.NewStandardHTTPClient(cfg.WordPress.Timeout,
		stdhttp.WithTransport(&middleware.LoggingRoundTripper{Transport: http.DefaultTransport, Logger: logger}),
	)

	deps := interfaces.Dependencies{
		Cache:      cache,
		HTTPClient: httpClient,
		Logger:     logger,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	navigation, err := config.LoadNavigation(cfg.Site.NavigationFile)
	if err != nil {
		log.Fatalf("Failed to load navigation: %v", err)
	}
	if cfg.Site.NavigationFile != "" {
		if err := navigation.Watch(ctx, cfg.Site.NavigationFile, logger); err != nil {
			logger.Warn("Navigation hot reload disabled", map[string]interface{}{"error": err.Error()})
		}
	}

	content := wordpress.NewClient(deps, wordpress.Config{
		Endpoint: cfg.WordPress.GraphQLURL,
		Origin:   cfg.WordPress.Origin,
		CacheTTL: cfg.WordPress.ContentTTL,
		Location: calendar.Kathmandu(),
	})
	banners := ads.NewService(deps, cfg.WordPress.AdsGraphQLURL)
	clock := calendar.NewClock(calendar.Kathmandu())
	summarizer := summary.NewService(cfg.Site.SummaryMaxChars)

	colors := services.NewThumbnailColorService(deps)
	colorWorker := workers.NewColorWorker(colors, logger, workers.DefaultWorkerConfig())
	if err := colorWorker.Start(); err != nil {
		log.Fatalf("Failed to start color worker: %v", err)
	}

	newsService := news.NewService(content, news.Options{
		Origin:     cfg.WordPress.Origin,
		SiteURL:    cfg.Site.PublicURL,
		Navigation: navigation,
		Colors:     colors,
		Warmer:     colorWorker,
		Logger:     logger,
	})

	var limiter *middleware.RateLimiter
	if flags.IsEnabled(ctx, featureflags.RateLimitEnabled) {
		limiter = middleware.NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)
		defer limiter.Stop()
	}

	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
		Logger:      logger,
		RateLimiter: limiter,
		Metrics:     flags.IsEnabled(ctx, featureflags.MetricsEnabled),
		Flags:       flags,
	})

	handlers.RegisterHealth(humaAPI)
	handlers.NewPostsHandler(content, newsService).RegisterRoutes(humaAPI)
	handlers.NewCommentHandler(content).RegisterRoutes(humaAPI)
	handlers.NewSummarizeHandler(summarizer, flags).RegisterRoutes(humaAPI)
	handlers.NewBannerHandler(banners, flags).RegisterRoutes(humaAPI)
	handlers.NewClockHandler(clock).RegisterRoutes(humaAPI)
	handlers.NewImagesHandler(newsService).RegisterRoutes(humaAPI)

	site, err := web.NewServer(web.Options{
		Pages:           newsService,
		Banners:         banners,
		Clock:           clock,
		Flags:           flags,
		Logger:          logger,
		RotatorInterval: cfg.Site.RotatorInterval,
	})
	if err != nil {
		log.Fatalf("Failed to create web server: %v", err)
	}
	site.RegisterRoutes(router)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Websocket connections are hijacked and not tracked by Shutdown
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if err := colorWorker.Stop(); err != nil {
		logger.Warn("Color worker stop failed", map[string]interface{}{"error": err.Error()})
	}

	logger.Info("Server stopped", nil)
}

// newCache builds the configured backend, falling back to memory when it
// cannot be opened. The returned func releases it.
func newCache(cfg *config.Config, logger interfaces.Logger) (interfaces.Cache, func()) {
	memoryCache := func() interfaces.Cache {
		return memory.NewMemoryCache(time.Duration(cfg.Cache.Memory.DefaultExpiration)*time.Second, memory.DefaultCleanupInterval)
	}

	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			return memoryCache(), func() {}
		}
		logger.Info("Using Redis cache", map[string]interface{}{
			"address": cfg.Cache.Redis.Address,
		})
		return redisCache, func() { _ = redisCache.Close() }
	case "sqlite":
		sqliteCache, err := sqlite.NewSQLiteCache(cfg.Cache.SQLitePath)
		if err != nil {
			logger.Error("Failed to open SQLite cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
				"path":  cfg.Cache.SQLitePath,
			})
			return memoryCache(), func() {}
		}
		logger.Info("Using SQLite cache", map[string]interface{}{
			"path": cfg.Cache.SQLitePath,
		})
		return sqliteCache, func() { _ = sqliteCache.Close() }
	default:
		logger.Info("Using memory cache", nil)
		return memoryCache(), func() {}
	}
}
