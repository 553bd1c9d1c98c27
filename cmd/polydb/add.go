package main

import (
	"fmt"
	"os"
	"time"

	"github.com/polyglothq/polydb/internal/iovocab"
	"github.com/polyglothq/polydb/pkg/schema"
	"github.com/spf13/cobra"
)

func getAddCmd() *cobra.Command {
	var (
		lang         string
		meaningAlt   string
		romanization string
		tags         string
		csvFile      string
	)

	cmd := &cobra.Command{
		Use:   "add [word] [meaning]",
		Short: "Adds custom vocabulary",
		Long: `Adds a learner-authored word, or imports a batch from a CSV
file with columns word,meaning[,meaning_alt[,romanization[,tags]]].
Custom words join the review queue like bundled content but are never
deduplicated against content packs.

Examples:
  polydb add --lang fr "ordinateur" "computer"
  polydb add --lang pl --csv my_words.csv`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if lang == "" {
				return fmt.Errorf("--lang is required")
			}

			op, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer op.Close()

			svc := iovocab.New(getConfig(), op)

			if csvFile != "" {
				f, err := os.Open(csvFile)
				if err != nil {
					return err
				}
				defer f.Close()

				n, err := svc.ImportCSV(cmd.Context(), f, lang)
				if err != nil {
					return err
				}
				fmt.Printf("imported %d custom word(s)\n", n)
				return nil
			}

			if len(args) != 2 {
				return fmt.Errorf("need word and meaning arguments, or --csv")
			}
			id, err := svc.AddWord(cmd.Context(), schema.CustomWord{
				LanguageID:   lang,
				Word:         args[0],
				Meaning:      args[1],
				MeaningAlt:   meaningAlt,
				Romanization: romanization,
				Tags:         tags,
				CreatedAt:    time.Now(),
			})
			if err != nil {
				return err
			}
			fmt.Printf("added custom word %d: %s - %s\n", id, args[0], args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", "language id (required)")
	cmd.Flags().StringVar(&meaningAlt, "alt", "", "alternative meaning")
	cmd.Flags().StringVar(&romanization, "romanization", "", "romanization")
	cmd.Flags().StringVar(&tags, "tags", "", "comma-separated tags")
	cmd.Flags().StringVar(&csvFile, "csv", "", "import words from a CSV file")
	return cmd
}
