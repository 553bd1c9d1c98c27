package main

import (
	"fmt"

	"github.com/polyglothq/polydb/internal/iostore"
	"github.com/spf13/cobra"
)

func getInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Creates the database schema",
		Long: `Creates (or migrates) the local SQLite database schema.

Safe to run multiple times; existing data is never touched.

Examples:
  polydb init
  polydb init --db /tmp/scratch.db`,
		RunE: func(cmd *cobra.Command, args []string) error {
			op := iostore.New(getConfig())
			if err := op.Connect(); err != nil {
				return err
			}
			defer op.Close()

			if err := op.Create(cmd.Context()); err != nil {
				return err
			}
			fmt.Printf("Database ready at %s\n", getConfig().DatabasePath())
			return nil
		},
	}
	return cmd
}
