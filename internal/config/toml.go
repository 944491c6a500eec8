// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Board  BoardConfig  `toml:"board"`
	Import ImportConfig `toml:"import"`
}

// BoardConfig maps leaderboard display settings.
type BoardConfig struct {
	Top         *int  `toml:"top"`
	Last        *int  `toml:"last"`
	VictoryOnly *bool `toml:"victory-only"`
}

// ImportConfig maps legacy import settings.
type ImportConfig struct {
	GameDir *string `toml:"game-dir"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
