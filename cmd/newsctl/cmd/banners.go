package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"nepalvoices-web/core/ads"
)

var bannersCmd = &cobra.Command{
	Use:   "banners",
	Short: "List banner ads",
	Long: `List banner ads in display order (highest priority first).

Examples:
  newsctl banners
  newsctl banners --category politics --all
  newsctl banners --json`,
	RunE: runBanners,
}

func init() {
	rootCmd.AddCommand(bannersCmd)

	bannersCmd.Flags().String("category", "", "only banners for this category")
	bannersCmd.Flags().Bool("all", false, "include inactive banners")
	bannersCmd.Flags().Bool("json", false, "output as JSON")
}

func runBanners(cmd *cobra.Command, args []string) error {
	category, _ := cmd.Flags().GetString("category")
	all, _ := cmd.Flags().GetBool("all")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	service := ads.NewService(dependencies(), cfg.WordPress.AdsGraphQLURL)
	banners := service.Banners(cmd.Context(), category, !all)

	if jsonOutput {
		return writeJSON(cmd.OutOrStdout(), banners)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PRIORITY\tACTIVE\tCATEGORY\tTITLE\tLINK")
	for _, b := range banners {
		fmt.Fprintf(tw, "%d\t%t\t%s\t%s\t%s\n", b.Priority, b.Active, b.Category, b.AdTitle, b.Link)
	}
	return tw.Flush()
}
