package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"nepalvoices-web/core/domain"
	"nepalvoices-web/core/images"
	"nepalvoices-web/core/wordpress"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Run the image pipeline on an article body",
	Long: `Extract the images of an article body, pick the card thumbnail and remove
it from the body. The result is printed as JSON.

Examples:
  newsctl resolve --file body.html
  newsctl resolve --file body.html --featured https://news.nepalvoices.com/a.jpg
  cat body.html | newsctl resolve --file -
  newsctl resolve --slug budget-2081`,
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().String("file", "", "HTML file holding the article body, - for stdin")
	resolveCmd.Flags().String("slug", "", "slug of a published post")
	resolveCmd.Flags().String("featured", "", "featured image URL used with --file")
	resolveCmd.Flags().Bool("body", false, "print the cleaned body HTML instead of JSON")
}

func runResolve(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	slug, _ := cmd.Flags().GetString("slug")
	featured, _ := cmd.Flags().GetString("featured")
	bodyOnly, _ := cmd.Flags().GetBool("body")

	if (file == "") == (slug == "") {
		return errors.New("exactly one of --file or --slug is required")
	}

	var src domain.ArticleImageSource
	if file != "" {
		data, err := readInput(file, cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading body: %w", err)
		}
		src = domain.ArticleImageSource{BodyHTML: string(data), FeaturedImageURL: featured}
	} else {
		client := wordpress.NewClient(dependencies(), wordpress.Config{
			Endpoint: cfg.WordPress.GraphQLURL,
			Origin:   cfg.WordPress.Origin,
			CacheTTL: cfg.WordPress.ContentTTL,
		})
		post, err := client.FetchPostBySlug(cmd.Context(), slug)
		if err != nil {
			return err
		}
		src = post.ImageSource()
	}

	resolution := images.Resolve(src, cfg.WordPress.Origin)
	if bodyOnly {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), resolution.CleanedBodyHTML)
		return err
	}
	return writeJSON(cmd.OutOrStdout(), resolution)
}
