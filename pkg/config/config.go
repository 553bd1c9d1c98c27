// Package config provides configuration management for polydb.
//
// This package has no I/O dependencies; file loading lives in
// internal/ioconfig.
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml
// > defaults.
//
// # Design Principles
//
//   - Default config (from New()) is always valid; no validation step
//     is needed before use.
//   - All mutations go through Option functions, the only way to
//     modify a Config.
//   - Invalid options are rejected with a warning; the config remains
//     in a valid state.
//
// # Environment Variables
//
// Use the POLYDB_ prefix with underscores for nesting:
//
//	POLYDB_DATABASE_PATH=/path/to/polydb.db
//	POLYDB_IMPORT_PACK_DIR=/path/to/pack
//	POLYDB_LOG_LEVEL=debug
package config

import (
	"runtime"

	"github.com/polyglothq/polydb/pkg/adaptive"
	"github.com/polyglothq/polydb/pkg/srs"
)

// Config represents the complete polydb configuration.
type Config struct {
	// Database contains SQLite storage settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Import contains settings specific to the import command.
	Import ImportConfig `mapstructure:"import" yaml:"import"`

	// SRS tunes the spaced-repetition scheduler.
	SRS SRSConfig `mapstructure:"srs" yaml:"srs"`

	// Difficulty tunes the adaptive difficulty engine.
	Difficulty DifficultyConfig `mapstructure:"difficulty" yaml:"difficulty"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers used while
	// reading and validating bundle files.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, data and log directories
	// reside. Set by the CLI during init; no default.
	HomeDir string `mapstructure:"-" yaml:"-"`
}

// DatabaseConfig contains SQLite storage parameters.
type DatabaseConfig struct {
	// Path is the SQLite database file. Empty means the default
	// location under the data directory.
	Path string `mapstructure:"path" yaml:"path"`

	// BatchSize is the number of word rows inserted per batch during
	// import.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// ImportConfig contains settings specific to the import command.
type ImportConfig struct {
	// PackDir is the directory holding the content pack: the
	// manifest.yaml plus the files it names.
	PackDir string `mapstructure:"pack_dir" yaml:"pack_dir"`
}

// SRSConfig tunes the SM-2 scheduler. The values are documented
// defaults rather than hard-coded literals; see pkg/srs.
type SRSConfig struct {
	InitialEase    float64 `mapstructure:"initial_ease" yaml:"initial_ease"`
	MinEase        float64 `mapstructure:"min_ease" yaml:"min_ease"`
	PassThreshold  int     `mapstructure:"pass_threshold" yaml:"pass_threshold"`
	FirstInterval  int     `mapstructure:"first_interval" yaml:"first_interval"`
	SecondInterval int     `mapstructure:"second_interval" yaml:"second_interval"`

	// MaxBatch caps the due set returned for one session.
	MaxBatch int `mapstructure:"max_batch" yaml:"max_batch"`
}

// DifficultyConfig tunes the adaptive difficulty engine; see
// pkg/adaptive.
type DifficultyConfig struct {
	Min           float64 `mapstructure:"min" yaml:"min"`
	Max           float64 `mapstructure:"max" yaml:"max"`
	Initial       float64 `mapstructure:"initial" yaml:"initial"`
	IncreaseAfter int     `mapstructure:"increase_after" yaml:"increase_after"`
	DecreaseAfter int     `mapstructure:"decrease_after" yaml:"decrease_after"`
	StepUp        float64 `mapstructure:"step_up" yaml:"step_up"`
	StepDown      float64 `mapstructure:"step_down" yaml:"step_down"`

	// MasteryStreak is the correctness streak that flags a ledger
	// item as mastered.
	MasteryStreak int `mapstructure:"mastery_streak" yaml:"mastery_streak"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'.
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (at the default place), STDERR
	// or STDOUT.
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	srsDefaults := srs.DefaultParams()
	diffDefaults := adaptive.DefaultParams()

	return &Config{
		Database: DatabaseConfig{
			Path:      "",
			BatchSize: 500,
		},
		Import: ImportConfig{
			PackDir: "",
		},
		SRS: SRSConfig{
			InitialEase:    srsDefaults.InitialEase,
			MinEase:        srsDefaults.MinEase,
			PassThreshold:  int(srsDefaults.PassThreshold),
			FirstInterval:  srsDefaults.FirstInterval,
			SecondInterval: srsDefaults.SecondInterval,
			MaxBatch:       20,
		},
		Difficulty: DifficultyConfig{
			Min:           diffDefaults.Min,
			Max:           diffDefaults.Max,
			Initial:       diffDefaults.Initial,
			IncreaseAfter: diffDefaults.IncreaseAfter,
			DecreaseAfter: diffDefaults.DecreaseAfter,
			StepUp:        diffDefaults.StepUp,
			StepDown:      diffDefaults.StepDown,
			MasteryStreak: 3,
		},
		Log: LogConfig{
			Format:      "text",
			Level:       "info",
			Destination: "stderr",
		},
		JobsNumber: runtime.NumCPU(),
	}
}

// SRSParams converts the SRS section into algorithm parameters.
func (c *Config) SRSParams() srs.Params {
	return srs.Params{
		InitialEase:    c.SRS.InitialEase,
		MinEase:        c.SRS.MinEase,
		PassThreshold:  srs.Quality(c.SRS.PassThreshold),
		FirstInterval:  c.SRS.FirstInterval,
		SecondInterval: c.SRS.SecondInterval,
	}
}

// DifficultyParams converts the Difficulty section into algorithm
// parameters.
func (c *Config) DifficultyParams() adaptive.Params {
	return adaptive.Params{
		Min:           c.Difficulty.Min,
		Max:           c.Difficulty.Max,
		Initial:       c.Difficulty.Initial,
		IncreaseAfter: c.Difficulty.IncreaseAfter,
		DecreaseAfter: c.Difficulty.DecreaseAfter,
		StepUp:        c.Difficulty.StepUp,
		StepDown:      c.Difficulty.StepDown,
	}
}
