// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration for the server, upstream WordPress APIs, caches and logging

package config

import (
	"errors"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultGraphQLURL = "https://news.nepalvoices.com/news/graphql"
	defaultOrigin     = "https://news.nepalvoices.com"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// WordPress contains upstream content API configuration
	WordPress WordPressConfig

	// Cache contains cache configuration
	Cache CacheConfig

	// Log contains logger configuration
	Log LogConfig

	// Site contains presentation settings
	Site SiteConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// RateLimitRPS is the sustained requests per second allowed per client IP
	RateLimitRPS float64

	// RateLimitBurst is the burst size allowed per client IP
	RateLimitBurst int
}

// WordPressConfig holds the GraphQL endpoints and the public content origin
type WordPressConfig struct {
	// GraphQLURL serves posts and the comment mutation
	GraphQLURL string

	// AdsGraphQLURL serves banner ads; empty means GraphQLURL
	AdsGraphQLURL string

	// Origin is prefixed to root-relative image URLs
	Origin string

	// ContentTTL is how long upstream responses are cached
	ContentTTL time.Duration

	// Timeout bounds each upstream request
	Timeout time.Duration
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (redis/memory/sqlite)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// Memory contains in-memory cache configuration
	Memory MemoryConfig

	// SQLitePath is the database file used by the sqlite backend
	SQLitePath string
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// MemoryConfig holds in-memory cache configuration
type MemoryConfig struct {
	// DefaultExpiration is the default TTL for cache entries in seconds
	DefaultExpiration int
}

// LogConfig holds logger configuration
type LogConfig struct {
	// Level is a logrus level name
	Level string

	// File enables rotated file output when set
	File string
}

// SiteConfig holds settings for the rendered pages
type SiteConfig struct {
	// RotatorInterval is the image rotator dwell time
	RotatorInterval time.Duration

	// SummaryMaxChars caps summaries produced by the summarizer
	SummaryMaxChars int

	// NavigationFile overrides the embedded navigation categories
	NavigationFile string

	// PublicURL is the canonical site address used in share links
	PublicURL string
}

// LoadFromEnv loads configuration from environment variables. A .env file in
// the working directory is read first when present; real environment
// variables win over it.
func LoadFromEnv() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	graphQLURL := getEnvOrDefault("WORDPRESS_GRAPHQL_URL", defaultGraphQLURL)

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnvOrDefault("PORT", "3000"),
			RateLimitRPS:   getEnvAsFloatOrDefault("RATE_LIMIT_RPS", 10),
			RateLimitBurst: getEnvAsIntOrDefault("RATE_LIMIT_BURST", 20),
		},
		WordPress: WordPressConfig{
			GraphQLURL:    graphQLURL,
			AdsGraphQLURL: getEnvOrDefault("ADS_GRAPHQL_URL", graphQLURL),
			Origin:        getEnvOrDefault("CONTENT_ORIGIN", defaultOrigin),
			ContentTTL:    time.Duration(getEnvAsIntOrDefault("CONTENT_CACHE_TTL", 300)) * time.Second,
			Timeout:       time.Duration(getEnvAsIntOrDefault("UPSTREAM_TIMEOUT", 15)) * time.Second,
		},
		Cache: CacheConfig{
			Type: getEnvOrDefault("CACHE_TYPE", "memory"),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
			Memory: MemoryConfig{
				DefaultExpiration: getEnvAsIntOrDefault("MEMORY_CACHE_EXPIRATION", 3600),
			},
			SQLitePath: getEnvOrDefault("SQLITE_CACHE_PATH", "cache.db"),
		},
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "info"),
			File:  getEnvOrDefault("LOG_FILE", ""),
		},
		Site: SiteConfig{
			RotatorInterval: time.Duration(getEnvAsIntOrDefault("ROTATOR_INTERVAL_MS", 4000)) * time.Millisecond,
			SummaryMaxChars: getEnvAsIntOrDefault("SUMMARY_MAX_CHARS", 500),
			NavigationFile:  getEnvOrDefault("NAVIGATION_FILE", ""),
			PublicURL:       strings.TrimRight(getEnvOrDefault("SITE_URL", "https://www.nepalvoices.com"), "/"),
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Server.RateLimitRPS <= 0 || c.Server.RateLimitBurst < 1 {
		return errors.New("rate limit must allow at least one request")
	}

	if err := validateURL(c.WordPress.GraphQLURL); err != nil {
		return errors.New("wordpress graphql url must be an absolute http(s) url")
	}

	if err := validateURL(c.WordPress.Origin); err != nil {
		return errors.New("content origin must be an absolute http(s) url")
	}

	switch c.Cache.Type {
	case "memory", "redis", "sqlite":
	default:
		return errors.New("cache type must be 'redis', 'memory' or 'sqlite'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	if c.Cache.Type == "sqlite" && c.Cache.SQLitePath == "" {
		return errors.New("sqlite path cannot be empty when using sqlite cache")
	}

	if err := validateURL(c.Site.PublicURL); err != nil {
		return errors.New("site url must be an absolute http(s) url")
	}

	if c.Site.RotatorInterval < 100*time.Millisecond {
		return errors.New("rotator interval must be at least 100ms")
	}

	if c.Site.SummaryMaxChars < 1 {
		return errors.New("summary length must be positive")
	}

	return nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("invalid url")
	}
	return nil
}
