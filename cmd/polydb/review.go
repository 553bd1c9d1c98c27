package main

import (
	"fmt"
	"strconv"

	"github.com/polyglothq/polydb/internal/ioreview"
	"github.com/polyglothq/polydb/pkg/polydb"
	"github.com/polyglothq/polydb/pkg/srs"
	"github.com/spf13/cobra"
)

func getDueCmd() *cobra.Command {
	var (
		lang     string
		family   string
		limit    int
		priority string
		date     string
	)

	cmd := &cobra.Command{
		Use:   "due",
		Short: "Lists cards due for review",
		Long: `Lists review cards due on the given date (default today),
most overdue first.

Examples:
  polydb due --lang fr
  polydb due --family slavic --limit 10 --priority cefr`,
		RunE: func(cmd *cobra.Command, args []string) error {
			on, err := parseDate(date)
			if err != nil {
				return err
			}

			op, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer op.Close()

			q := polydb.DueQuery{
				On:         on,
				LanguageID: lang,
				Family:     family,
				Limit:      limit,
			}
			switch priority {
			case "concept":
				q.Priority = polydb.PriorityConcept
			case "cefr":
				q.Priority = polydb.PriorityCEFR
			}

			due, err := ioreview.New(getConfig(), op).DueCards(cmd.Context(), q)
			if err != nil {
				return err
			}
			if len(due) == 0 {
				fmt.Println("Nothing due. Come back tomorrow.")
				return nil
			}
			for _, d := range due {
				fmt.Printf("card %d  [%s] %s - %s  (overdue %dd, ease %.2f)\n",
					d.Card.ID, d.Language.ID, d.Word.Word,
					d.Word.Meaning, d.OverdueDays, d.Card.EaseFactor)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", "filter by language id")
	cmd.Flags().StringVar(&family, "family", "", "filter by language family")
	cmd.Flags().IntVar(&limit, "limit", 0, "batch size cap (default from config)")
	cmd.Flags().StringVar(&priority, "priority", "",
		"secondary ordering: concept or cefr")
	cmd.Flags().StringVar(&date, "date", "", "session date (YYYY-MM-DD, default today)")
	return cmd
}

func getReviewCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "review <card-id> <quality>",
		Short: "Grades one review outcome",
		Long: `Grades a review card with a quality from 0 (complete blackout)
to 5 (perfect recall) and reschedules it.

Examples:
  polydb review 42 5
  polydb review 42 2 --date 2026-09-01`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cardID, err := parseID(args[0])
			if err != nil {
				return err
			}
			quality, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quality %q", args[1])
			}
			on, err := parseDate(date)
			if err != nil {
				return err
			}

			op, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer op.Close()

			res, err := ioreview.New(getConfig(), op).
				Grade(cmd.Context(), cardID, srs.Quality(quality), on)
			if err != nil {
				return err
			}

			verdict := "again tomorrow"
			if res.Correct {
				verdict = fmt.Sprintf("next in %d day(s)", res.Card.IntervalDays)
			}
			fmt.Printf("card %d: ease %.2f, reps %d, %s\n",
				res.Card.ID, res.Card.EaseFactor,
				res.Card.Repetitions, verdict)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "review date (YYYY-MM-DD, default today)")
	return cmd
}

func getLearnCmd() *cobra.Command {
	var (
		lang  string
		count int
		date  string
	)

	cmd := &cobra.Command{
		Use:   "learn",
		Short: "Introduces new words into the review queue",
		Long: `Picks the highest-frequency words without review cards and
creates cards for them, due immediately.

Examples:
  polydb learn --lang fr --count 15`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if lang == "" {
				return fmt.Errorf("--lang is required")
			}
			on, err := parseDate(date)
			if err != nil {
				return err
			}

			op, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer op.Close()

			rev := ioreview.New(getConfig(), op)
			words, err := rev.UnlearnedWords(cmd.Context(), lang, count)
			if err != nil {
				return err
			}
			for _, w := range words {
				if _, err := rev.EnsureCard(cmd.Context(), w.ID, on); err != nil {
					return err
				}
				fmt.Printf("learning: %s - %s\n", w.Word, w.Meaning)
			}
			fmt.Printf("%d new word(s) scheduled\n", len(words))
			return nil
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", "language id (required)")
	cmd.Flags().IntVar(&count, "count", 15, "number of new words")
	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD, default today)")
	return cmd
}
