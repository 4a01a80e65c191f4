package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const vanguardFile = "vanguard.yaml"

// LoadVanguard loads the game configuration.
// Search order: customPath -> ~/.vanguard/configs/vanguard.yaml -> ./configs/vanguard.yaml -> embedded default
// Documents are decoded over the defaults, so a file only needs the keys it changes.
func LoadVanguard(customPath string) (VanguardConfig, error) {
	cfg := DefaultVanguardConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(vanguardFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultVanguardConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", vanguardFile)); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultVanguardConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultVanguardYAML, &cfg); err != nil {
		return DefaultVanguardConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Marshal renders a configuration as YAML.
func Marshal(cfg VanguardConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a YAML document over the defaults.
func Unmarshal(data []byte) (VanguardConfig, error) {
	cfg := DefaultVanguardConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".vanguard", "configs", filename)
}

// ApplyVanguardPreset modifies the config based on a difficulty preset.
// Normal leaves the configuration untouched.
func ApplyVanguardPreset(cfg *VanguardConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Player.Lives = 5
		cfg.Enemy.BulletDamage *= 0.75
		cfg.Enemy.ContactDamage *= 0.75
		cfg.Enemy.FireStartAt *= 2
		cfg.Spawner.EnemyInterval *= 1.25
		cfg.Spawner.DropChance = clampF(cfg.Spawner.DropChance*1.3, 0, 1)
	case DifficultyHard:
		cfg.Player.Lives = 2
		cfg.Enemy.BulletDamage *= 1.25
		cfg.Enemy.ContactDamage *= 1.25
		cfg.Enemy.FireStartAt /= 2
		cfg.Enemy.SpeedPerLevel *= 1.5
		cfg.Spawner.EnemyInterval *= 0.8
		cfg.Spawner.DropChance = clampF(cfg.Spawner.DropChance*0.7, 0, 1)
	}
}
