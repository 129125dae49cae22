package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadWhale loads the whale game configuration.
// Search order: customPath -> ~/.whale/configs/whale.yaml -> ./configs/whale.yaml -> embedded default.
// Files only need to set the keys they change; everything else keeps its default.
func LoadWhale(customPath string) (WhaleConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return WhaleConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseWhale(data)
		if err != nil {
			return WhaleConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return WhaleConfig{}, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath("whale.yaml"), filepath.Join("configs", "whale.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parseWhale(data); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseWhale(defaultWhaleYAML)
	if err != nil {
		return DefaultWhaleConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseWhale decodes YAML on top of the hardcoded defaults.
func parseWhale(data []byte) (WhaleConfig, error) {
	cfg := DefaultWhaleConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Marshal renders a configuration as YAML.
func Marshal(cfg WhaleConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".whale", "configs", filename)
}

// ApplyWhalePreset modifies the config based on a difficulty preset.
func ApplyWhalePreset(cfg *WhaleConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	case DifficultyEasy:
		cfg.Difficulty.Enabled = true
		cfg.Obstacles.Speed *= 0.75
		cfg.Collectibles.Speed *= 0.75
		cfg.Difficulty.IntervalSecs *= 1.5
	case DifficultyNormal:
		cfg.Difficulty.Enabled = true
	case DifficultyHard:
		cfg.Difficulty.Enabled = true
		cfg.Obstacles.Count += 2
		cfg.Obstacles.Speed *= 1.4
		cfg.Collectibles.Speed *= 1.4
		cfg.Difficulty.Increment *= 2
	}
}
