package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name looked up in the search directories.
const FileName = "framelife.yaml"

// Load loads the framelife configuration.
// Search order: customPath -> ~/.framelife/config.yaml -> ./configs/framelife.yaml -> embedded default.
// Files are decoded on top of Default(), so partial files only override what they set.
func Load(customPath string) (Config, error) {
	cfg := Default()

	// Try custom path first
	if customPath != "" {
		path, err := ExpandHome(customPath)
		if err != nil {
			return cfg, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", path, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath(); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if c, ok := decode(data); ok {
				return c, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", FileName)); err == nil {
		if c, ok := decode(data); ok {
			return c, nil
		}
	}

	// Use embedded default YAML
	if c, ok := decode(defaultYAML); ok {
		return c, nil
	}
	return Default(), nil // Fallback to hardcoded if embed fails
}

// decode parses data over the defaults and reports whether the result is usable.
func decode(data []byte) (Config, bool) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	return cfg, cfg.Validate() == nil
}

// userConfigPath returns the path to the user config file, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".framelife", "config.yaml")
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
