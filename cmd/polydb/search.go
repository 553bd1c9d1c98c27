package main

import (
	"fmt"

	"github.com/polyglothq/polydb/internal/iocluster"
	"github.com/polyglothq/polydb/internal/iovocab"
	"github.com/spf13/cobra"
)

func getSearchCmd() *cobra.Command {
	var (
		limit    int
		concepts bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Searches words and concepts",
		Long: `Searches word text, meanings and romanization across all
languages. With --concepts the concept reference data is searched
instead.

Examples:
  polydb search water
  polydb search --concepts animal`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer op.Close()

			if concepts {
				graph, err := iocluster.Build(cmd.Context(), op)
				if err != nil {
					return err
				}
				hits := graph.SearchConcepts(args[0])
				if len(hits) == 0 {
					fmt.Println("No concepts found.")
					return nil
				}
				for _, c := range hits {
					fmt.Printf("%s - %s (%d word(s))\n",
						c.ID, c.Meaning, len(graph.Entries(c.ID)))
				}
				return nil
			}

			words, err := iovocab.New(getConfig(), op).
				SearchWords(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			if len(words) == 0 {
				fmt.Println("No words found.")
				return nil
			}
			for _, w := range words {
				line := fmt.Sprintf("%d  [%s] %s - %s",
					w.ID, w.LanguageID, w.Word, w.Meaning)
				if w.Romanization != "" {
					line += " (" + w.Romanization + ")"
				}
				fmt.Println(line)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 25, "maximum results")
	cmd.Flags().BoolVar(&concepts, "concepts", false, "search concepts instead of words")
	return cmd
}
