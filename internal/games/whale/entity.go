package whale

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/whale-rescue/internal/config"
	"github.com/vovakirdan/whale-rescue/internal/core"
)

// Direction is a steering input.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Field is the playable area in field coordinates.
type Field struct {
	W, H   float64
	Scroll config.ScrollAxis
}

// Player is the whale.
// Velocity is set directly by input; it is never accumulated.
type Player struct {
	Rect     core.Rect
	DX, DY   float64
	Speed    float64
	Movement config.Movement
}

// Move sets the velocity component of one axis to ±Speed.
// Horizontal directions are ignored in vertical movement mode.
func (p *Player) Move(d Direction) {
	switch d {
	case DirUp:
		p.DY = -p.Speed
	case DirDown:
		p.DY = p.Speed
	case DirLeft:
		if p.Movement == config.MovementPlanar {
			p.DX = -p.Speed
		}
	case DirRight:
		if p.Movement == config.MovementPlanar {
			p.DX = p.Speed
		}
	}
}

// Stop zeroes both velocity components.
func (p *Player) Stop() {
	p.DX = 0
	p.DY = 0
}

// Update applies the velocity once, then clamps each axis to the field.
func (p *Player) Update(f Field) {
	p.Rect.X = core.ClampF(p.Rect.X+p.DX, 0, math.Max(0, f.W-p.Rect.W))
	p.Rect.Y = core.ClampF(p.Rect.Y+p.DY, 0, math.Max(0, f.H-p.Rect.H))
}

// Kind tags what a scrolling entity does on contact.
type Kind int

const (
	KindObstacle    Kind = iota // Fatal on contact
	KindCollectible             // Scores and recycles on contact
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	if k == KindCollectible {
		return "collectible"
	}
	return "obstacle"
}

// Scroller is an obstacle or a collectible. Both travel along the
// field's scroll axis at a speed owned by the difficulty state and are
// recycled to the near edge once they leave the field.
type Scroller struct {
	Kind  Kind
	Rect  core.Rect
	Speed float64
}

// Spawn places the entity somewhere within one field extent beyond the
// near edge, at a random lateral position.
func (s *Scroller) Spawn(f Field, rng *rand.Rand) {
	switch f.Scroll {
	case config.ScrollDown:
		s.Rect.X = lateral(f.W, s.Rect.W, rng)
		s.Rect.Y = -s.Rect.H - rng.Float64()*f.H
	default:
		s.Rect.X = f.W + rng.Float64()*f.W
		s.Rect.Y = lateral(f.H, s.Rect.H, rng)
	}
}

// Recycle moves the entity just off the near edge with a fresh lateral
// coordinate. Identity and collection membership are unchanged.
func (s *Scroller) Recycle(f Field, rng *rand.Rand) {
	switch f.Scroll {
	case config.ScrollDown:
		s.Rect.X = lateral(f.W, s.Rect.W, rng)
		s.Rect.Y = -s.Rect.H
	default:
		s.Rect.X = f.W
		s.Rect.Y = lateral(f.H, s.Rect.H, rng)
	}
}

// Update advances the entity by its speed and recycles it once it has
// fully left the field. It reports whether a recycle happened.
func (s *Scroller) Update(f Field, rng *rand.Rand) bool {
	switch f.Scroll {
	case config.ScrollDown:
		s.Rect.Y += s.Speed
		if s.Rect.Y >= f.H {
			s.Recycle(f, rng)
			return true
		}
	default:
		s.Rect.X -= s.Speed
		if s.Rect.Right() <= 0 {
			s.Recycle(f, rng)
			return true
		}
	}
	return false
}

// lateral returns a uniform coordinate in [0, extent-size].
func lateral(extent, size float64, rng *rand.Rand) float64 {
	span := extent - size
	if span <= 0 {
		return 0
	}
	return rng.Float64() * span
}
