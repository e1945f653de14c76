// Package config loads the habitquest configuration from
// ~/.habitquest/config.toml, falling back to defaults when no file exists.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Database DatabaseConfig `toml:"database"`
	Server   ServerConfig   `toml:"server"`
	Logging  LoggingConfig  `toml:"logging"`
	UI       UIConfig       `toml:"ui"`
}

// DatabaseConfig locates the sqlite file.
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// ServerConfig controls the optional local HTTP API.
type ServerConfig struct {
	Host           string `toml:"host"`
	Port           int    `toml:"port"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // text or json
}

// UIConfig holds cosmetic knobs.
type UIConfig struct {
	Theme string `toml:"theme"`
}

func Default() Config {
	home := Home()
	return Config{
		Database: DatabaseConfig{
			Path: filepath.Join(home, "habitquest.db"),
		},
		Server: ServerConfig{
			Host:           "127.0.0.1",
			Port:           7311,
			TimeoutSeconds: 30,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		UI: UIConfig{
			Theme: "default",
		},
	}
}

// Load reads the config file, layering it over defaults. $HABITQUEST_DB
// overrides the database path last.
func Load() (Config, error) {
	cfg := Default()
	path := filepath.Join(Home(), "config.toml")

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	if p := os.Getenv("HABITQUEST_DB"); p != "" {
		cfg.Database.Path = p
	}
	return cfg, nil
}

// Save writes the config to ~/.habitquest/config.toml.
func Save(cfg Config) error {
	path := filepath.Join(Home(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Home returns the habitquest data directory. $HABITQUEST_HOME overrides
// the default under the user's home.
func Home() string {
	if env := os.Getenv("HABITQUEST_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".habitquest")
}
