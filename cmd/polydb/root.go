package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/polyglothq/polydb/internal/ioconfig"
	"github.com/polyglothq/polydb/internal/iologger"
	"github.com/polyglothq/polydb/internal/iostore"
	pkgconfig "github.com/polyglothq/polydb/pkg/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	dbPath  string
	cfg     *pkgconfig.Config
)

func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "polydb",
		Short: "polydb manages the vocabulary learning database",
		Long: `polydb is a CLI tool for managing the lifecycle of a local SQLite
vocabulary-learning database, from schema creation through versioned
content import, spaced-repetition review and adaptive drill tracking.

Main phases:
  - init:    create the database schema
  - import:  import a versioned content pack (idempotent)
  - due:     list cards due for review
  - review:  grade one review outcome
  - drill:   record drill attempts and ledger results

Configuration precedence (highest to lowest):
  1. CLI flags (--db, --pack, etc.)
  2. Environment variables (POLYDB_*)
  3. Config file (config.yaml)
  4. Built-in defaults

Environment Variables:
  All configuration can be set via POLYDB_* environment variables.
  Nested fields use underscores (database.path -> POLYDB_DATABASE_PATH).`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Auto-generate a config file on first run.
			if cfgFile == "" {
				exists, err := ioconfig.ConfigFileExists()
				if err != nil {
					return fmt.Errorf("failed to check config file: %w", err)
				}
				if !exists {
					generatedPath, err := ioconfig.GenerateDefaultConfig()
					if err != nil {
						fmt.Printf("Warning: could not generate config file: %v\n", err)
					} else {
						fmt.Printf("Generated default config at: %s\n", generatedPath)
					}
				}
			}

			result, err := ioconfig.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			cfg = result.Config

			var opts []pkgconfig.Option
			if dbPath != "" {
				opts = append(opts, pkgconfig.OptDatabasePath(dbPath))
			}
			cfg.Update(opts)

			return iologger.Init(pkgconfig.LogDir(cfg.HomeDir), cfg.Log)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ~/.config/polydb/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "",
		"database file (default: ~/.local/share/polydb/polydb.db)")

	rootCmd.AddCommand(getInitCmd())
	rootCmd.AddCommand(getImportCmd())
	rootCmd.AddCommand(getDueCmd())
	rootCmd.AddCommand(getReviewCmd())
	rootCmd.AddCommand(getLearnCmd())
	rootCmd.AddCommand(getDrillCmd())
	rootCmd.AddCommand(getProfileCmd())
	rootCmd.AddCommand(getAddCmd())
	rootCmd.AddCommand(getStatsCmd())
	rootCmd.AddCommand(getSearchCmd())
	rootCmd.AddCommand(getCompareCmd())

	return rootCmd
}

// getConfig returns the loaded configuration (for use in subcommands).
func getConfig() *pkgconfig.Config {
	return cfg
}

// openStore connects to the configured database and migrates the
// schema so commands work on a fresh installation too.
func openStore(cmd *cobra.Command) (*iostore.Operator, error) {
	op := iostore.New(getConfig())
	if err := op.Connect(); err != nil {
		return nil, err
	}
	if err := op.Create(cmd.Context()); err != nil {
		_ = op.Close()
		return nil, err
	}
	return op, nil
}

// parseDate parses a --date flag value, defaulting to today.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01-02", s)
}

// parseID parses a numeric row id argument.
func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return uint(id), nil
}
