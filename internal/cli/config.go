package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is looked up in the working directory and then the home
// directory when --config is not given.
const ConfigFileName = ".trnamod.yaml"

// DefaultThreshold is the odd cutoff applied when neither flag nor config
// file sets one.
const DefaultThreshold = 0.95

// Config mirrors the YAML config file. Zero values mean "not set"; the
// merge into RootOptions only applies fields the file actually carries.
type Config struct {
	Threshold *float64 `yaml:"threshold,omitempty"`
	CM        string   `yaml:"cm,omitempty"`
	DB        string   `yaml:"db,omitempty"`
	Format    string   `yaml:"format,omitempty"`
	ModsDir   string   `yaml:"mods_dir,omitempty"`
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Threshold != nil && (*cfg.Threshold < 0 || *cfg.Threshold > 1) {
		return nil, fmt.Errorf("config %s: threshold %v outside [0, 1]", path, *cfg.Threshold)
	}
	return &cfg, nil
}

// FindConfig returns the path of the nearest config file: the working
// directory first, then the home directory. Empty string when none exists.
func FindConfig() string {
	if _, err := os.Stat(ConfigFileName); err == nil {
		return ConfigFileName
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(home, ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

// resolveConfig loads the explicit --config path, or falls back to
// FindConfig. A missing explicit path is an error; a missing implicit one
// is not.
func resolveConfig(explicit string) (*Config, error) {
	path := explicit
	if path == "" {
		path = FindConfig()
		if path == "" {
			return &Config{}, nil
		}
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		if explicit == "" && errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}
	return cfg, nil
}
