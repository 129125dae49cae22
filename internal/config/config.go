// Package config provides YAML-based game configuration loading and
// difficulty presets for Whale Rescue.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/whale-rescue/internal/leaderboard"
)

// ScrollAxis selects the direction in which obstacles and trash travel.
type ScrollAxis string

const (
	ScrollLeft ScrollAxis = "left" // Entities enter on the right and move left
	ScrollDown ScrollAxis = "down" // Entities enter at the top and fall down
)

// Movement selects which directions the whale may steer in.
type Movement string

const (
	MovementVertical Movement = "vertical" // Up/down only
	MovementPlanar   Movement = "planar"   // Up/down/left/right
)

// WhaleConfig contains all configuration for the whale game.
type WhaleConfig struct {
	Field        FieldConfig       `yaml:"field"`
	Player       PlayerConfig      `yaml:"player"`
	Obstacles    ScrollerConfig    `yaml:"obstacles"`
	Collectibles CollectibleConfig `yaml:"collectibles"`
	Difficulty   DifficultyConfig  `yaml:"difficulty"`
	Leaderboard  LeaderboardConfig `yaml:"leaderboard"`
}

// FieldConfig describes the playing field.
type FieldConfig struct {
	Scroll   ScrollAxis `yaml:"scroll"`
	Movement Movement   `yaml:"movement"`
	HUDRows  int        `yaml:"hud_rows"` // Rows reserved above the field
}

// PlayerConfig defines the whale.
type PlayerConfig struct {
	X      float64 `yaml:"x"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Speed  float64 `yaml:"speed"` // Cells per tick while a direction is held
}

// ScrollerConfig defines a set of scrolling entities.
type ScrollerConfig struct {
	Count  int     `yaml:"count"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Speed  float64 `yaml:"speed"` // Baseline cells per tick
}

// CollectibleConfig defines the trash items.
type CollectibleConfig struct {
	ScrollerConfig `yaml:",inline"`
	Points         int `yaml:"points"`
}

// DifficultyConfig defines the escalation rules.
type DifficultyConfig struct {
	Enabled        bool    `yaml:"enabled"`
	Increment      float64 `yaml:"increment"`       // Added to both speeds per escalation
	IntervalSecs   float64 `yaml:"interval_secs"`   // Time trigger period
	ScoreThreshold int     `yaml:"score_threshold"` // Score trigger period
	MaxLevel       int     `yaml:"max_level"`       // 0 = uncapped
}

// LeaderboardConfig defines leaderboard retention.
type LeaderboardConfig struct {
	Size int `yaml:"size"`
}

// Validate reports every invalid setting at once.
func (c WhaleConfig) Validate() error {
	var errs []error

	switch c.Field.Scroll {
	case ScrollLeft, ScrollDown:
	default:
		errs = append(errs, fmt.Errorf("field.scroll: unknown axis %q", c.Field.Scroll))
	}
	switch c.Field.Movement {
	case MovementVertical, MovementPlanar:
	default:
		errs = append(errs, fmt.Errorf("field.movement: unknown mode %q", c.Field.Movement))
	}
	if c.Field.HUDRows < 0 {
		errs = append(errs, errors.New("field.hud_rows: must not be negative"))
	}

	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		errs = append(errs, errors.New("player: width and height must be positive"))
	}
	if c.Player.Speed <= 0 {
		errs = append(errs, errors.New("player.speed: must be positive"))
	}

	errs = append(errs, c.Obstacles.validate("obstacles")...)
	errs = append(errs, c.Collectibles.validate("collectibles")...)
	if c.Collectibles.Points <= 0 {
		errs = append(errs, errors.New("collectibles.points: must be positive"))
	}

	if c.Difficulty.Enabled {
		if c.Difficulty.Increment <= 0 {
			errs = append(errs, errors.New("difficulty.increment: must be positive"))
		}
		if c.Difficulty.IntervalSecs <= 0 {
			errs = append(errs, errors.New("difficulty.interval_secs: must be positive"))
		}
		if c.Difficulty.ScoreThreshold <= 0 {
			errs = append(errs, errors.New("difficulty.score_threshold: must be positive"))
		}
		if c.Difficulty.MaxLevel < 0 {
			errs = append(errs, errors.New("difficulty.max_level: must not be negative"))
		}
	}

	if c.Leaderboard.Size <= 0 || c.Leaderboard.Size > leaderboard.MaxEntries {
		errs = append(errs, fmt.Errorf("leaderboard.size: must be between 1 and %d", leaderboard.MaxEntries))
	}

	return errors.Join(errs...)
}

func (s ScrollerConfig) validate(section string) []error {
	var errs []error
	if s.Count < 0 {
		errs = append(errs, fmt.Errorf("%s.count: must not be negative", section))
	}
	if s.Width <= 0 || s.Height <= 0 {
		errs = append(errs, fmt.Errorf("%s: width and height must be positive", section))
	}
	if s.Speed <= 0 {
		errs = append(errs, fmt.Errorf("%s.speed: must be positive", section))
	}
	return errs
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value into a preset.
// Empty or unknown values return "" so the config file decides.
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}
