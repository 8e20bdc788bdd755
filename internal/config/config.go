// Package config provides repository configuration management,
// including reading and writing chisel configuration files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultGraphLimit caps how many commits the graph loads per render.
const DefaultGraphLimit = 500

// RepoConfig represents the repository configuration
type RepoConfig struct {
	GraphLimit           *int  `json:"graphLimit,omitempty"`
	ReplayTimeoutSeconds *int  `json:"replayTimeoutSeconds,omitempty"`
	Color                *bool `json:"color,omitempty"`
}

func configPath(repoRoot string) string {
	return filepath.Join(repoRoot, ".git", ".chisel_config")
}

// GetRepoConfig reads the repository configuration
func GetRepoConfig(repoRoot string) (*RepoConfig, error) {
	data, err := os.ReadFile(configPath(repoRoot))
	if err != nil {
		// Config doesn't exist - return default
		return &RepoConfig{}, nil
	}

	var config RepoConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse repo config: %w", err)
	}

	return &config, nil
}

// GetGraphLimit returns the configured graph commit limit, or the default
func GetGraphLimit(repoRoot string) (int, error) {
	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		return 0, err
	}

	if config.GraphLimit != nil && *config.GraphLimit > 0 {
		return *config.GraphLimit, nil
	}

	return DefaultGraphLimit, nil
}

// SetGraphLimit updates the graph commit limit in the config
func SetGraphLimit(repoRoot string, limit int) error {
	if limit <= 0 {
		return fmt.Errorf("graph limit must be positive, got %d", limit)
	}

	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		config = &RepoConfig{}
	}

	config.GraphLimit = &limit
	return writeConfig(repoRoot, config)
}

// GetReplayTimeout returns the configured replay timeout, or zero when the
// built-in default should apply
func GetReplayTimeout(repoRoot string) (time.Duration, error) {
	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		return 0, err
	}

	if config.ReplayTimeoutSeconds != nil && *config.ReplayTimeoutSeconds > 0 {
		return time.Duration(*config.ReplayTimeoutSeconds) * time.Second, nil
	}

	return 0, nil
}

// SetReplayTimeout updates the replay timeout in the config
func SetReplayTimeout(repoRoot string, seconds int) error {
	if seconds <= 0 {
		return fmt.Errorf("replay timeout must be positive, got %d", seconds)
	}

	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		config = &RepoConfig{}
	}

	config.ReplayTimeoutSeconds = &seconds
	return writeConfig(repoRoot, config)
}

// GetColor returns whether colored output is enabled, or true by default
func GetColor(repoRoot string) (bool, error) {
	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		return false, err
	}

	if config.Color != nil {
		return *config.Color, nil
	}

	return true, nil
}

// SetColor updates the colored output setting
func SetColor(repoRoot string, enabled bool) error {
	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		config = &RepoConfig{}
	}

	config.Color = &enabled
	return writeConfig(repoRoot, config)
}

func writeConfig(repoRoot string, config *RepoConfig) error {
	configJSON, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(configPath(repoRoot), configJSON, 0600)
}
