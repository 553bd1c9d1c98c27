package main

import (
	"fmt"

	"github.com/polyglothq/polydb/internal/iodrill"
	"github.com/polyglothq/polydb/pkg/adaptive"
	"github.com/spf13/cobra"
)

func getDrillCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drill",
		Short: "Records drill outcomes",
		Long: `Records the outcome of one drill attempt. The generic attempt
subcommand moves the per-language difficulty profile; the cloze,
conjugation and builder subcommands additionally update their
per-item ledgers.`,
	}
	cmd.AddCommand(
		getDrillAttemptCmd(),
		getDrillClozeCmd(),
		getDrillConjugationCmd(),
		getDrillBuilderCmd(),
	)
	return cmd
}

func getDrillAttemptCmd() *cobra.Command {
	var wrong bool

	cmd := &cobra.Command{
		Use:   "attempt <lang> <engine>",
		Short: "Records a generic drill attempt",
		Long: `Records one correct (default) or wrong attempt against the
(language, engine) difficulty profile.

Examples:
  polydb drill attempt fr cloze
  polydb drill attempt pl conjugation --wrong`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer op.Close()

			res, err := iodrill.New(getConfig(), op).
				RecordAttempt(cmd.Context(), args[0], args[1], !wrong)
			if err != nil {
				return err
			}

			switch res.Direction {
			case adaptive.Raised:
				fmt.Printf("difficulty raised to %.2f\n", res.Profile.Difficulty)
			case adaptive.Lowered:
				fmt.Printf("difficulty lowered to %.2f\n", res.Profile.Difficulty)
			default:
				fmt.Printf("difficulty steady at %.2f\n", res.Profile.Difficulty)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&wrong, "wrong", false, "record the attempt as wrong")
	return cmd
}

func getDrillClozeCmd() *cobra.Command {
	var (
		wrong      bool
		clozeType  string
		templateID string
		date       string
	)

	cmd := &cobra.Command{
		Use:   "cloze <lang> <word-id>",
		Short: "Records a cloze attempt",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			wordID, err := parseID(args[1])
			if err != nil {
				return err
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

			tr := iodrill.New(getConfig(), op)
			rec, err := tr.RecordCloze(cmd.Context(),
				wordID, clozeType, templateID, !wrong, on)
			if err != nil {
				return err
			}
			if _, err := tr.RecordAttempt(cmd.Context(),
				args[0], "cloze", !wrong); err != nil {
				return err
			}
			fmt.Printf("cloze %s word %d: %d/%d correct\n",
				rec.ClozeType, rec.WordID, rec.Correct, rec.Attempts)
			return nil
		},
	}

	cmd.Flags().BoolVar(&wrong, "wrong", false, "record the attempt as wrong")
	cmd.Flags().StringVar(&clozeType, "type", "vocab", "cloze type")
	cmd.Flags().StringVar(&templateID, "template", "", "sentence template id")
	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD, default today)")
	return cmd
}

func getDrillConjugationCmd() *cobra.Command {
	var (
		wrong bool
		date  string
	)

	cmd := &cobra.Command{
		Use:   "conjugation <lang> <verb-concept> <tense> <person>",
		Short: "Records a conjugation attempt",
		Args:  cobra.ExactArgs(4),
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

			tr := iodrill.New(getConfig(), op)
			rec, err := tr.RecordConjugation(cmd.Context(),
				args[0], args[1], args[2], args[3], !wrong, on)
			if err != nil {
				return err
			}
			if _, err := tr.RecordAttempt(cmd.Context(),
				args[0], "conjugation", !wrong); err != nil {
				return err
			}

			state := fmt.Sprintf("streak %d", rec.Streak)
			if rec.Mastered {
				state = "mastered"
			}
			fmt.Printf("%s %s %s: %s\n",
				rec.VerbConceptID, rec.Tense, rec.Person, state)
			return nil
		},
	}

	cmd.Flags().BoolVar(&wrong, "wrong", false, "record the attempt as wrong")
	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD, default today)")
	return cmd
}

func getDrillBuilderCmd() *cobra.Command {
	var (
		wrong      bool
		difficulty int
		date       string
	)

	cmd := &cobra.Command{
		Use:   "builder <lang> <pattern-id>",
		Short: "Records a sentence-builder attempt",
		Args:  cobra.ExactArgs(2),
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

			tr := iodrill.New(getConfig(), op)
			rec, err := tr.RecordBuilder(cmd.Context(),
				args[0], args[1], difficulty, !wrong, on)
			if err != nil {
				return err
			}
			if _, err := tr.RecordAttempt(cmd.Context(),
				args[0], "builder", !wrong); err != nil {
				return err
			}
			fmt.Printf("pattern %s: %d/%d correct\n",
				rec.PatternID, rec.Correct, rec.Attempts)
			return nil
		},
	}

	cmd.Flags().BoolVar(&wrong, "wrong", false, "record the attempt as wrong")
	cmd.Flags().IntVar(&difficulty, "difficulty", 1, "pattern difficulty level")
	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD, default today)")
	return cmd
}
