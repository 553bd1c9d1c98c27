// Package ioconfig provides I/O operations for loading configuration
// from files and the environment. This is an impure package that
// handles file system operations.
package ioconfig

import (
	"fmt"
	"os"
	"strings"

	"github.com/polyglothq/polydb/pkg/config"
	"github.com/spf13/viper"
)

// LoadResult contains the loaded configuration and metadata about the
// source.
type LoadResult struct {
	Config     *config.Config
	SourcePath string // Path to config file used, or empty if using defaults
	Source     string // "file", "defaults", or "defaults+env"
}

// Load reads configuration from a YAML file and returns a validated
// Config with source info. If configPath is empty, the default
// location (~/.config/polydb/config.yaml) is tried.
//
// Precedence: flags > env vars > config file > defaults.
func Load(configPath string) (*LoadResult, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to find home directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")

	// Env overrides use the POLYDB_ prefix with underscores for
	// nesting: POLYDB_DATABASE_PATH, POLYDB_LOG_LEVEL, ...
	v.SetEnvPrefix("POLYDB")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Defaults are registered before reading so AutomaticEnv knows
	// every key to check.
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		defaultPath := config.ConfigFilePath(home)
		if _, statErr := os.Stat(defaultPath); statErr == nil {
			v.SetConfigFile(defaultPath)
		}
	}

	configFileRead := false
	usedConfigPath := ""
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if configPath != "" {
				return nil, fmt.Errorf("config file not found: %s", configPath)
			}
		} else if configPath != "" || v.ConfigFileUsed() != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		configFileRead = true
		usedConfigPath = v.ConfigFileUsed()
	}

	cfg := config.New()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.HomeDir = home

	res := &LoadResult{Config: cfg}
	switch {
	case configFileRead:
		res.Source = "file"
		res.SourcePath = usedConfigPath
	case len(os.Environ()) > 0 && hasPolydbEnv():
		res.Source = "defaults+env"
	default:
		res.Source = "defaults"
	}
	return res, nil
}

func hasPolydbEnv() bool {
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, "POLYDB_") {
			return true
		}
	}
	return false
}

func setDefaults(v *viper.Viper) {
	d := config.New()
	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("database.batch_size", d.Database.BatchSize)
	v.SetDefault("import.pack_dir", d.Import.PackDir)
	v.SetDefault("srs.initial_ease", d.SRS.InitialEase)
	v.SetDefault("srs.min_ease", d.SRS.MinEase)
	v.SetDefault("srs.pass_threshold", d.SRS.PassThreshold)
	v.SetDefault("srs.first_interval", d.SRS.FirstInterval)
	v.SetDefault("srs.second_interval", d.SRS.SecondInterval)
	v.SetDefault("srs.max_batch", d.SRS.MaxBatch)
	v.SetDefault("difficulty.min", d.Difficulty.Min)
	v.SetDefault("difficulty.max", d.Difficulty.Max)
	v.SetDefault("difficulty.initial", d.Difficulty.Initial)
	v.SetDefault("difficulty.increase_after", d.Difficulty.IncreaseAfter)
	v.SetDefault("difficulty.decrease_after", d.Difficulty.DecreaseAfter)
	v.SetDefault("difficulty.step_up", d.Difficulty.StepUp)
	v.SetDefault("difficulty.step_down", d.Difficulty.StepDown)
	v.SetDefault("difficulty.mastery_streak", d.Difficulty.MasteryStreak)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.destination", d.Log.Destination)
	v.SetDefault("jobs_number", d.JobsNumber)
}
