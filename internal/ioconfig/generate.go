package ioconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/polyglothq/polydb/pkg/config"
	"gopkg.in/yaml.v3"
)

// ConfigFileExists reports whether a config file is present at the
// default location.
func ConfigFileExists() (bool, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return false, err
	}
	_, err = os.Stat(config.ConfigFilePath(home))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// GenerateDefaultConfig writes the default configuration to the
// default location and returns its path. Used on first run so the
// user has a file to edit.
func GenerateDefaultConfig() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	path := config.ConfigFilePath(home)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config.New())
	if err != nil {
		return "", fmt.Errorf("failed to marshal default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}
