// Package config loads driverjars settings from a TOML file.
//
// The config file is optional and lives at ~/.config/driverjars/config.toml
// by default. It supplies defaults that flags and the
// DATABASECONNECTOR_JAR_FOLDER environment variable override.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the optional settings read from the config file.
// Zero values mean "not configured".
type Config struct {
	JarFolder     string `toml:"jar_folder"`      // default installation directory
	BaseURL       string `toml:"base_url"`        // archive host override
	CacheTTLHours int    `toml:"cache_ttl_hours"` // metadata cache TTL (0 = default)
}

// DefaultPath returns the default config file location
// (~/.config/driverjars/config.toml), honoring XDG_CONFIG_HOME.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "driverjars", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "driverjars", "config.toml"), nil
}

// Load reads the config file at path. A missing file is not an error and
// yields a zero Config; a malformed file is an error.
// Pass "" to load from DefaultPath.
func Load(path string) (Config, error) {
	var cfg Config

	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
