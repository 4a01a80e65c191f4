package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg VanguardConfig
	if err := yaml.Unmarshal(defaultVanguardYAML, &cfg); err != nil {
		t.Fatalf("Unmarshal(embedded) failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultVanguardConfig()) {
		t.Errorf("embedded YAML and DefaultVanguardConfig() differ:\n%+v\n%+v", cfg, DefaultVanguardConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadVanguardCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	doc := "player:\n  lives: 7\nresources:\n  max_ammo: 10\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadVanguard(path)
	if err != nil {
		t.Fatalf("LoadVanguard failed: %v", err)
	}
	if cfg.Player.Lives != 7 {
		t.Errorf("Lives = %d, expected 7", cfg.Player.Lives)
	}
	if cfg.Resources.MaxAmmo != 10 {
		t.Errorf("MaxAmmo = %v, expected 10", cfg.Resources.MaxAmmo)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Resources.MaxFuel != 160 {
		t.Errorf("MaxFuel = %v, expected default 160", cfg.Resources.MaxFuel)
	}
}

func TestLoadVanguardMissingCustomPath(t *testing.T) {
	_, err := LoadVanguard(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := DefaultVanguardConfig()
	ApplyVanguardPreset(&cfg, DifficultyHard)

	data, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	back, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, back) {
		t.Errorf("round trip changed config:\n%+v\n%+v", cfg, back)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*VanguardConfig)
		valid  bool
	}{
		{"defaults", func(*VanguardConfig) {}, true},
		{"zero width", func(c *VanguardConfig) { c.Playfield.Width = 0 }, false},
		{"negative max ammo", func(c *VanguardConfig) { c.Resources.MaxAmmo = -1 }, false},
		{"zero lives", func(c *VanguardConfig) { c.Player.Lives = 0 }, false},
		{"zero tick rate", func(c *VanguardConfig) { c.Timing.TickRate = 0 }, false},
		{"floor above one", func(c *VanguardConfig) { c.Resources.FuelSpeedFloor = 1.5 }, false},
		{"drop chance above one", func(c *VanguardConfig) { c.Spawner.DropChance = 2 }, false},
		{"unknown pickup", func(c *VanguardConfig) { c.Spawner.DropWeights["bomb"] = 1 }, false},
		{"negative weight", func(c *VanguardConfig) { c.Spawner.AmbientWeights["fuel"] = -1 }, false},
		{"empty weights", func(c *VanguardConfig) { c.Spawner.DropWeights = nil }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultVanguardConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tc.valid && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{"normal", DifficultyNormal, false},
		{"hard", DifficultyHard, false},
		{"fixed", "", true},
	}

	for _, tc := range tests {
		got, err := ParsePreset(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParsePreset(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Errorf("ParsePreset(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}

func TestApplyVanguardPreset(t *testing.T) {
	normal := DefaultVanguardConfig()
	ApplyVanguardPreset(&normal, DifficultyNormal)
	if !reflect.DeepEqual(normal, DefaultVanguardConfig()) {
		t.Error("normal preset should not change the config")
	}

	easy := DefaultVanguardConfig()
	ApplyVanguardPreset(&easy, DifficultyEasy)
	hard := DefaultVanguardConfig()
	ApplyVanguardPreset(&hard, DifficultyHard)

	if easy.Player.Lives <= normal.Player.Lives || hard.Player.Lives >= normal.Player.Lives {
		t.Errorf("lives should be easy > normal > hard, got %d %d %d", easy.Player.Lives, normal.Player.Lives, hard.Player.Lives)
	}
	if easy.Spawner.EnemyInterval <= hard.Spawner.EnemyInterval {
		t.Error("easy should spawn enemies less often than hard")
	}
	for _, cfg := range []VanguardConfig{easy, hard} {
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset config should validate: %v", err)
		}
	}
}
