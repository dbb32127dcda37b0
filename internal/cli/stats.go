package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hivellm/compression-prompt/internal/config"
	"github.com/hivellm/compression-prompt/internal/db"
)

func newStatsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show compression run history",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.HistoryDBPath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); os.IsNotExist(err) {
				fmt.Println("No runs recorded yet.")
				return nil
			}

			database, err := db.OpenHistory(path)
			if err != nil {
				return fmt.Errorf("open history db: %w", err)
			}
			defer database.Close()

			summary, err := database.Summarize()
			if err != nil {
				return err
			}
			if summary.RunCount == 0 {
				fmt.Println("No runs recorded yet.")
				return nil
			}

			fmt.Printf("Runs:         %d\n", summary.RunCount)
			fmt.Printf("Tokens saved: %d\n", summary.TokensSaved)
			fmt.Printf("Avg ratio:    %.2f\n", summary.AvgRatio)
			if summary.AvgQualityScore.Valid {
				fmt.Printf("Avg quality:  %.1f%%\n", summary.AvgQualityScore.Float64*100)
			}
			if summary.LastRunAt.Valid {
				fmt.Printf("Last run:     %s\n", summary.LastRunAt.Time.Format("2006-01-02 15:04"))
			}

			runs, err := database.ListRuns(limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				return nil
			}

			fmt.Println("\nRecent runs:")
			for _, r := range runs {
				line := fmt.Sprintf("  %s  %-30s %6d -> %-6d tokens  ratio %.2f",
					r.CreatedAt.Format("01-02 15:04"), truncate(r.Source, 30),
					r.OriginalTokens, r.CompressedTokens, r.Ratio)
				if r.QualityScore.Valid {
					line += fmt.Sprintf("  quality %.0f%%", r.QualityScore.Float64*100)
				}
				fmt.Println(line)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of recent runs to list")

	return cmd
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "…" + s[len(s)-max+1:]
}
