package config

import (
	"log/slog"
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

func isValidString(name, s string) bool {
	if s == "" {
		slog.Warn("Ignoring empty value", "option", name)
		return false
	}
	return true
}

func isValidInt(name string, i int) bool {
	if i <= 0 {
		slog.Warn("Ignoring non-positive value", "option", name, "value", i)
		return false
	}
	return true
}

func isValidFloat(name string, f float64) bool {
	if f <= 0 {
		slog.Warn("Ignoring non-positive value", "option", name, "value", f)
		return false
	}
	return true
}

// OptDatabasePath sets the SQLite database file location.
func OptDatabasePath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Path", s) {
			c.Database.Path = s
		}
	}
}

// OptDatabaseBatchSize sets the number of word rows inserted per
// batch during import.
func OptDatabaseBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Database.BatchSize = i
		}
	}
}

// OptImportPackDir sets the content pack directory.
func OptImportPackDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Pack Dir", s) {
			c.Import.PackDir = s
		}
	}
}

// OptSRSMinEase sets the ease-factor floor.
func OptSRSMinEase(f float64) Option {
	return func(c *Config) {
		if isValidFloat("SRS MinEase", f) {
			c.SRS.MinEase = f
		}
	}
}

// OptSRSInitialEase sets the ease factor of fresh cards.
func OptSRSInitialEase(f float64) Option {
	return func(c *Config) {
		if isValidFloat("SRS InitialEase", f) {
			c.SRS.InitialEase = f
		}
	}
}

// OptSRSPassThreshold sets the lowest quality counted as a pass.
func OptSRSPassThreshold(i int) Option {
	return func(c *Config) {
		if i < 0 || i > 5 {
			slog.Warn("Ignoring out-of-range value",
				"option", "SRS PassThreshold", "value", i)
			return
		}
		c.SRS.PassThreshold = i
	}
}

// OptSRSMaxBatch caps the due set returned for one session.
func OptSRSMaxBatch(i int) Option {
	return func(c *Config) {
		if isValidInt("SRS MaxBatch", i) {
			c.SRS.MaxBatch = i
		}
	}
}

// OptDifficultyBand sets the difficulty clamp band.
func OptDifficultyBand(minVal, maxVal float64) Option {
	return func(c *Config) {
		if minVal <= 0 || maxVal <= minVal {
			slog.Warn("Ignoring invalid difficulty band",
				"min", minVal, "max", maxVal)
			return
		}
		c.Difficulty.Min = minVal
		c.Difficulty.Max = maxVal
	}
}

// OptDifficultySteps sets the adjustment amounts per streak.
func OptDifficultySteps(up, down float64) Option {
	return func(c *Config) {
		if isValidFloat("Difficulty StepUp", up) &&
			isValidFloat("Difficulty StepDown", down) {
			c.Difficulty.StepUp = up
			c.Difficulty.StepDown = down
		}
	}
}

// OptDifficultyStreaks sets the streak thresholds that move
// difficulty.
func OptDifficultyStreaks(increaseAfter, decreaseAfter int) Option {
	return func(c *Config) {
		if isValidInt("Difficulty IncreaseAfter", increaseAfter) &&
			isValidInt("Difficulty DecreaseAfter", decreaseAfter) {
			c.Difficulty.IncreaseAfter = increaseAfter
			c.Difficulty.DecreaseAfter = decreaseAfter
		}
	}
}

// OptMasteryStreak sets the correctness streak that flags a ledger
// item as mastered.
func OptMasteryStreak(i int) Option {
	return func(c *Config) {
		if isValidInt("MasteryStreak", i) {
			c.Difficulty.MasteryStreak = i
		}
	}
}

// OptLogFormat sets the log output format: 'json' or 'text'.
func OptLogFormat(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		switch s {
		case "json", "text":
			c.Log.Format = s
		default:
			slog.Warn("Ignoring unknown log format", "value", s)
		}
	}
}

// OptLogLevel sets the log level: 'error', 'warn', 'info' or
// 'debug'.
func OptLogLevel(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		switch s {
		case "error", "warn", "info", "debug":
			c.Log.Level = s
		default:
			slog.Warn("Ignoring unknown log level", "value", s)
		}
	}
}

// OptLogDestination sets the log destination: 'stdout', 'stderr' or
// 'file'.
func OptLogDestination(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		switch s {
		case "stdout", "stderr", "file":
			c.Log.Destination = s
		default:
			slog.Warn("Ignoring unknown log destination", "value", s)
		}
	}
}

// OptJobsNumber sets the number of concurrent bundle readers.
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("JobsNumber", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory used to derive default paths.
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("HomeDir", s) {
			c.HomeDir = s
		}
	}
}
