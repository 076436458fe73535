package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"nepalvoices-web/core/calendar"
)

var clockCmd = &cobra.Command{
	Use:   "clock",
	Short: "Print the Nepali date and time",
	Long: `Print the Bikram Sambat date and Kathmandu time shown in the site header.

Examples:
  newsctl clock
  newsctl clock --at 2024-05-29T10:00:00+05:45 --json`,
	RunE: runClock,
}

func init() {
	rootCmd.AddCommand(clockCmd)

	clockCmd.Flags().String("at", "", "RFC 3339 time to convert instead of now")
	clockCmd.Flags().Bool("json", false, "output as JSON")
}

func runClock(cmd *cobra.Command, args []string) error {
	at, _ := cmd.Flags().GetString("at")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	t := time.Now()
	if at != "" {
		parsed, err := time.Parse(time.RFC3339, at)
		if err != nil {
			return fmt.Errorf("invalid --at: %w", err)
		}
		t = parsed
	}

	now, err := calendar.NewClock(calendar.Kathmandu()).At(t)
	if err != nil {
		return err
	}

	if jsonOutput {
		return writeJSON(cmd.OutOrStdout(), now)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), now.Display)
	return err
}
