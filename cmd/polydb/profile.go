package main

import (
	"fmt"

	"github.com/polyglothq/polydb/internal/iodrill"
	"github.com/polyglothq/polydb/pkg/adaptive"
	"github.com/spf13/cobra"
)

func getProfileCmd() *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Shows adaptive difficulty profiles",
		Long: `Shows the current difficulty, streaks and derived drill
parameters for each (language, engine) pair.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer op.Close()

			rows, err := iodrill.New(getConfig(), op).
				Profiles(cmd.Context(), lang)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				fmt.Println("No drill attempts recorded yet.")
				return nil
			}
			for _, p := range rows {
				fmt.Printf(
					"%s/%s: difficulty %.2f, %d attempts, "+
						"%d distractors, streak +%d/-%d\n",
					p.LanguageID, p.EngineType,
					p.Difficulty, p.TotalAttempts,
					adaptive.DistractorCount(p.Difficulty),
					p.ConsecutiveCorrect, p.ConsecutiveWrong)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", "filter by language id")
	return cmd
}
