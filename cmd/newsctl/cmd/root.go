// Package cmd contains the newsctl commands
package cmd

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"nepalvoices-web/core/interfaces"
	"nepalvoices-web/infrastructure/cache/memory"
	stdhttp "nepalvoices-web/infrastructure/http/standard"
	"nepalvoices-web/infrastructure/logger/structured"
	"nepalvoices-web/pkg/config"
)

var (
	graphQLURL string
	adsURL     string
	origin     string
	verbose    bool
	cfg        *config.Config
	logger     interfaces.Logger
	version    = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "newsctl",
	Short: "Nepal Voices content tooling",
	Long: `newsctl runs the site's content pipeline from the command line.

Example usage:
  newsctl resolve --file body.html          # Pick the card thumbnail of a saved body
  newsctl resolve --slug budget-2081        # Resolve a published post
  newsctl banners --category politics       # List banner ads
  newsctl clock                             # Current Nepali date and time`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	rootCmd.PersistentFlags().StringVar(&graphQLURL, "graphql", "", "WordPress GraphQL endpoint (default from WORDPRESS_GRAPHQL_URL)")
	rootCmd.PersistentFlags().StringVar(&adsURL, "ads-graphql", "", "banner ads GraphQL endpoint (default from ADS_GRAPHQL_URL)")
	rootCmd.PersistentFlags().StringVar(&origin, "origin", "", "content origin for relative image URLs (default from CONTENT_ORIGIN)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log upstream requests to stderr")
}

func initConfig(cmd *cobra.Command) error {
	loaded, err := config.LoadFromEnv()
	if err != nil {
		return err
	}
	if graphQLURL != "" {
		loaded.WordPress.GraphQLURL = graphQLURL
		if adsURL == "" {
			loaded.WordPress.AdsGraphQLURL = graphQLURL
		}
	}
	if adsURL != "" {
		loaded.WordPress.AdsGraphQLURL = adsURL
	}
	if origin != "" {
		loaded.WordPress.Origin = origin
	}
	cfg = loaded

	level := "warn"
	if verbose {
		level = "debug"
	}
	logger = structured.New(structured.Options{Level: level, Output: cmd.ErrOrStderr()})
	return nil
}

// dependencies wires a short-lived memory cache for one-shot commands
func dependencies() interfaces.Dependencies {
	return interfaces.Dependencies{
		Cache:      memory.NewMemoryCache(time.Minute, memory.DefaultCleanupInterval),
		HTTPClient: stdhttp.NewStandardHTTPClient(cfg.WordPress.Timeout),
		Logger:     logger,
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}
