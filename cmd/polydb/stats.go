package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/polyglothq/polydb/internal/ioreview"
	"github.com/spf13/cobra"
)

func getStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Shows review statistics",
		Long: `Shows overall review statistics: cards learned, accuracy,
per-language counts, cards due today and the daily study streak.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer op.Close()

			rev := ioreview.New(getConfig(), op)
			now := time.Now()

			stats, err := rev.Stats(cmd.Context())
			if err != nil {
				return err
			}
			streak, err := rev.Streak(cmd.Context(), now)
			if err != nil {
				return err
			}
			due, err := rev.DueCounts(cmd.Context(), now)
			if err != nil {
				return err
			}

			fmt.Printf("Cards learned: %s\n",
				humanize.Comma(int64(stats.TotalCards)))
			fmt.Printf("Reviews: %s", humanize.Comma(int64(stats.TotalReviews)))
			if stats.TotalReviews > 0 {
				fmt.Printf(" (%.0f%% correct)",
					100*float64(stats.CorrectReviews)/float64(stats.TotalReviews))
			}
			fmt.Println()
			fmt.Printf("Average ease: %.2f\n", stats.AverageEase)
			fmt.Printf("Study streak: %d day(s)\n", streak)

			langs := make([]string, 0, len(stats.LearnedByLanguage))
			for l := range stats.LearnedByLanguage {
				langs = append(langs, l)
			}
			sort.Strings(langs)
			for _, l := range langs {
				fmt.Printf("  %s: %d card(s), %d due\n",
					l, stats.LearnedByLanguage[l], due[l])
			}
			return nil
		},
	}
	return cmd
}
