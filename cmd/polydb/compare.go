package main

import (
	"fmt"
	"strings"

	"github.com/polyglothq/polydb/internal/iocluster"
	"github.com/spf13/cobra"
)

func getCompareCmd() *cobra.Command {
	var families []string

	cmd := &cobra.Command{
		Use:   "compare <concept-id>",
		Short: "Compares a concept across languages",
		Long: `Shows how one concept is expressed in every language, grouped
by language family. Useful for spotting cognates inside a family and
contrasts between families.

Examples:
  polydb compare water
  polydb compare water --family romance --family slavic`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer op.Close()

			graph, err := iocluster.Build(cmd.Context(), op)
			if err != nil {
				return err
			}

			concept, ok := graph.Concept(args[0])
			if !ok {
				return fmt.Errorf("unknown concept %q", args[0])
			}
			fmt.Printf("%s - %s\n", concept.ID, concept.Meaning)

			set := graph.ComparisonSet(args[0], families...)
			if len(set) == 0 {
				fmt.Println("No words recorded for this concept.")
				return nil
			}
			for _, f := range graph.Families() {
				entries := set[f]
				if len(entries) == 0 {
					continue
				}
				fmt.Printf("\n%s:\n", strings.ToUpper(f))
				for _, e := range entries {
					mark := " "
					if e.Learned {
						mark = "*"
					}
					line := fmt.Sprintf("  %s %-12s %s",
						mark, e.Language.Name, e.Word.Word)
					if e.Word.Romanization != "" {
						line += " (" + e.Word.Romanization + ")"
					}
					fmt.Println(line)
				}
			}
			fmt.Println("\n* = in review queue")
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&families, "family", nil,
		"restrict to language families (repeatable)")
	return cmd
}
