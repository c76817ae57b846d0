package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/tui-crossing/internal/core"
	"github.com/vovakirdan/tui-crossing/internal/crossing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(GetDefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultCrossingConfig()) {
		t.Errorf("embedded YAML and DefaultCrossingConfig differ:\n%+v\n%+v", cfg, DefaultCrossingConfig())
	}
	if cfg.Timing.ResetDelay != 200*time.Millisecond {
		t.Errorf("reset delay = %v, expected 200ms", cfg.Timing.ResetDelay)
	}
}

func TestParsePartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("map:\n  rows: 7\n  min_enemy_rows: 3\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Map.Rows != 7 || cfg.Map.MinEnemyRows != 3 {
		t.Errorf("overrides not applied: rows=%d min=%d", cfg.Map.Rows, cfg.Map.MinEnemyRows)
	}
	if cfg.Map.Columns != 5 || cfg.Map.TileWidth != 101 {
		t.Errorf("unset keys should keep defaults, got columns=%d tile_width=%d", cfg.Map.Columns, cfg.Map.TileWidth)
	}
	if cfg.Enemies.MinSpeed != 75 || cfg.Enemies.MaxSpeed != 200 {
		t.Errorf("enemy defaults lost: %+v", cfg.Enemies)
	}
}

func TestValidateRejectsInfeasibleMap(t *testing.T) {
	_, err := Parse([]byte("map:\n  rows: 6\n  min_enemy_rows: 5\n"))
	if err == nil {
		t.Fatal("expected error for 5 enemy rows in 4 interior rows")
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("error should wrap ErrInvalidConfig, got %v", err)
	}
	if !errors.Is(err, crossing.ErrInfeasibleMap) {
		t.Errorf("error should wrap crossing.ErrInfeasibleMap, got %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero columns", "map:\n  columns: 0\n"},
		{"inverted speed range", "enemies:\n  min_speed: 200\n  max_speed: 75\n"},
		{"empty spawn range", "enemies:\n  min_spawn_offset: 30\n  max_spawn_offset: 30\n"},
		{"zero collision box", "collision:\n  box_size: 0\n"},
		{"negative reset delay", "timing:\n  reset_delay: -1s\n"},
		{"unknown progression", "difficulty:\n  progression:\n    type: time\n"},
		{"unknown hud colour", "hud:\n  color: chartreuse\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.yaml)); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Parse(%q) error = %v, expected ErrInvalidConfig", tc.yaml, err)
			}
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("timing:\n  reset_delay: 1s\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%s) failed: %v", path, err)
	}
	if cfg.Timing.ResetDelay != time.Second {
		t.Errorf("reset delay = %v, expected 1s", cfg.Timing.ResetDelay)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load of a missing custom path should fail")
	}
}

func TestSettingsConversion(t *testing.T) {
	s := DefaultCrossingConfig().Settings()

	if err := s.Validate(); err != nil {
		t.Fatalf("default settings invalid: %v", err)
	}
	if s.Dimensions.PixelWidth() != 505 {
		t.Errorf("PixelWidth = %v, expected 505", s.Dimensions.PixelWidth())
	}
	x, y := s.PlayerStart()
	if x != 202 || y != 647 {
		t.Errorf("PlayerStart = (%v, %v), expected (202, 647)", x, y)
	}
	if s.Moves[core.DirUp] != -83 || s.Moves[core.DirRight] != 101 {
		t.Errorf("moves not converted: %v", s.Moves)
	}
	if got := s.Difficulty.SpeedBonus(3); got != 12 {
		t.Errorf("SpeedBonus(3) = %v, expected 12", got)
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset(""); err != nil || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = (%q, %v), expected normal", p, err)
	}
	if p, err := ParsePreset("hard"); err != nil || p != DifficultyHard {
		t.Errorf("ParsePreset(hard) = (%q, %v)", p, err)
	}
	if _, err := ParsePreset("nightmare"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("unknown preset should fail with ErrInvalidConfig, got %v", err)
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset   DifficultyPreset
		expected float64 // bonus at score 10
	}{
		{DifficultyEasy, 20},
		{DifficultyNormal, 40},
		{DifficultyHard, 60},
		{DifficultyFixed, 0},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultCrossingConfig()
			ApplyPreset(&cfg, tc.preset)
			got := NewDifficultyManager(cfg.Difficulty).SpeedBonus(10)
			if got != tc.expected {
				t.Errorf("SpeedBonus(10) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestSpeedBonusCap(t *testing.T) {
	cfg := DefaultCrossingConfig().Difficulty
	cfg.Progression.MaxAt = 5
	dm := NewDifficultyManager(cfg)

	if got := dm.SpeedBonus(3); got != 12 {
		t.Errorf("SpeedBonus(3) = %v, expected 12", got)
	}
	if got := dm.SpeedBonus(50); got != 20 {
		t.Errorf("SpeedBonus(50) should stop at max_at, got %v", got)
	}
	if got := dm.SpeedBonus(0); got != 0 {
		t.Errorf("SpeedBonus(0) = %v, expected 0", got)
	}

	cfg.Progression.Type = "none"
	if got := NewDifficultyManager(cfg).SpeedBonus(4); got != 0 {
		t.Errorf("progression none should give no bonus, got %v", got)
	}
}
