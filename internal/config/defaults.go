package config

import (
	_ "embed"
)

//go:embed defaults/whale.yaml
var defaultWhaleYAML []byte

// DefaultWhaleConfig returns the built-in configuration.
// It mirrors defaults/whale.yaml and is used when the embedded file
// cannot be parsed.
func DefaultWhaleConfig() WhaleConfig {
	return WhaleConfig{
		Field: FieldConfig{
			Scroll:   ScrollLeft,
			Movement: MovementPlanar,
			HUDRows:  1,
		},
		Player: PlayerConfig{
			X:      10,
			Width:  5,
			Height: 2,
			Speed:  0.5,
		},
		Obstacles: ScrollerConfig{
			Count:  4,
			Width:  4,
			Height: 2,
			Speed:  0.35,
		},
		Collectibles: CollectibleConfig{
			ScrollerConfig: ScrollerConfig{
				Count:  3,
				Width:  2,
				Height: 1,
				Speed:  0.3,
			},
			Points: 10,
		},
		Difficulty: DifficultyConfig{
			Enabled:        true,
			Increment:      0.05,
			IntervalSecs:   15,
			ScoreThreshold: 50,
			MaxLevel:       0,
		},
		Leaderboard: LeaderboardConfig{
			Size: 10,
		},
	}
}

// ClassicWhaleConfig returns the classic layout: the whale only moves up
// and down.
func ClassicWhaleConfig() WhaleConfig {
	cfg := DefaultWhaleConfig()
	cfg.Field.Movement = MovementVertical
	return cfg
}

// DefaultYAML returns the embedded default YAML document.
func DefaultYAML() []byte {
	return defaultWhaleYAML
}
