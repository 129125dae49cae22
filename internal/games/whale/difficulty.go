package whale

import (
	"github.com/vovakirdan/whale-rescue/internal/config"
)

// Difficulty holds the shared entity speeds for one session.
// Speeds start at the configured baselines and only ever grow by a fixed
// increment, either on the periodic timer or on score milestones.
type Difficulty struct {
	ObstacleSpeed    float64
	CollectibleSpeed float64
	Level            int

	cfg             config.DifficultyConfig
	obstacleBase    float64
	collectibleBase float64
}

// NewDifficulty creates the difficulty state at its baseline.
func NewDifficulty(cfg config.DifficultyConfig, obstacleBase, collectibleBase float64) *Difficulty {
	d := &Difficulty{
		cfg:             cfg,
		obstacleBase:    obstacleBase,
		collectibleBase: collectibleBase,
	}
	d.Reset()
	return d
}

// Reset returns both speeds to their baselines.
func (d *Difficulty) Reset() {
	d.ObstacleSpeed = d.obstacleBase
	d.CollectibleSpeed = d.collectibleBase
	d.Level = 0
}

// IsEnabled returns whether escalation is active.
func (d *Difficulty) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Increment > 0
}

// Interval returns the period of the time trigger in seconds.
func (d *Difficulty) Interval() float64 {
	return d.cfg.IntervalSecs
}

// SpeedFor returns the current shared speed for a kind of entity.
func (d *Difficulty) SpeedFor(k Kind) float64 {
	if k == KindCollectible {
		return d.CollectibleSpeed
	}
	return d.ObstacleSpeed
}

// Escalate raises both speeds by one increment and writes the new values
// into every entity so none is left at a stale speed. It reports whether
// an escalation happened (false when disabled or at the level cap).
func (d *Difficulty) Escalate(entities []Scroller) bool {
	if !d.IsEnabled() {
		return false
	}
	if d.cfg.MaxLevel > 0 && d.Level >= d.cfg.MaxLevel {
		return false
	}

	d.ObstacleSpeed += d.cfg.Increment
	d.CollectibleSpeed += d.cfg.Increment
	d.Level++

	d.Apply(entities)
	return true
}

// Apply copies the shared speeds into the entities.
func (d *Difficulty) Apply(entities []Scroller) {
	for i := range entities {
		entities[i].Speed = d.SpeedFor(entities[i].Kind)
	}
}

// Milestones returns how many score-threshold multiples lie in (from, to].
// Scores are never negative.
// A collection that jumps over several multiples triggers once per multiple.
func (d *Difficulty) Milestones(from, to int) int {
	t := d.cfg.ScoreThreshold
	if t <= 0 || to <= from {
		return 0
	}
	return to/t - from/t
}
