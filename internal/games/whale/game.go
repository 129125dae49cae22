// Package whale implements Whale Rescue, a scrolling arcade game.
// The whale dodges obstacles and collects floating trash while the
// current speeds up over time and with every score milestone.
package whale

import (
	"fmt"

	"github.com/vovakirdan/whale-rescue/internal/config"
	"github.com/vovakirdan/whale-rescue/internal/core"
	"github.com/vovakirdan/whale-rescue/internal/leaderboard"
	"github.com/vovakirdan/whale-rescue/internal/registry"
)

// Game IDs for the registered variants.
const (
	IDWhale   = "whale"
	IDClassic = "whale_classic"
)

// Visual characters for rendering
const (
	WhaleChar       = '█'
	WhaleEye        = '•'
	WhaleTail       = '◀'
	ObstacleChar    = '▓'
	CollectibleChar = '◆'
)

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// LoadConfig resolves the configuration a game variant would use.
func LoadConfig(id string) (config.WhaleConfig, error) {
	cfg, err := config.LoadWhale(configPath)
	if err != nil {
		return config.DefaultWhaleConfig(), err
	}
	if difficultyPreset != "" {
		config.ApplyWhalePreset(&cfg, difficultyPreset)
	}
	if id == IDClassic {
		cfg.Field.Movement = config.MovementVertical
	}
	return cfg, nil
}

// Game adapts a Session to the platform's Game interface.
type Game struct {
	id      string
	title   string
	runtime core.RuntimeConfig
	cfg     config.WhaleConfig
	session *Session
	board   *leaderboard.Board
	paused  bool
	cfgErr  error
}

// New creates the standard variant: the whale moves in all four directions.
func New() *Game {
	return &Game{id: IDWhale, title: "Whale Rescue"}
}

// NewClassic creates the variant in which the whale only moves up and down.
func NewClassic() *Game {
	return &Game{id: IDClassic, title: "Whale Rescue Classic"}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// SetLeaderboard sets where finished sessions are recorded.
func (g *Game) SetLeaderboard(b *leaderboard.Board) {
	g.board = b
}

// ConfigError returns the error from the last config load, if any.
// The game falls back to built-in defaults when loading fails.
func (g *Game) ConfigError() error {
	return g.cfgErr
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg, g.cfgErr = LoadConfig(g.id)
	g.paused = false

	field := Field{
		W: float64(core.Max(runtime.ScreenW, 1)),
		H: float64(core.Max(runtime.ScreenH-g.cfg.Field.HUDRows, 1)),
	}

	var rec Recorder
	if g.board != nil {
		rec = g.board
	}
	g.session = NewSession(g.cfg, field, runtime.TickRate, runtime.Seed, rec)
	g.session.Start()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session.Phase() != PhaseRunning {
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	for _, a := range in.Actions() {
		switch a {
		case core.ActionUp:
			g.session.Move(DirUp)
		case core.ActionDown:
			g.session.Move(DirDown)
		case core.ActionLeft:
			g.session.Move(DirLeft)
		case core.ActionRight:
			g.session.Move(DirRight)
		case core.ActionStop:
			g.session.StopMoving()
		}
	}

	g.session.Advance(g.session.TickInterval())

	return core.StepResult{State: g.State()}
}

// Session exposes the underlying simulation.
func (g *Game) Session() *Session {
	return g.session
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	snap := g.session.Snapshot()
	oy := float64(g.cfg.Field.HUDRows)

	for _, r := range snap.Collectibles {
		dst.DrawRectColored(shift(r, oy), CollectibleChar, core.ColorGreen)
	}
	for _, r := range snap.Obstacles {
		dst.DrawRectColored(shift(r, oy), ObstacleChar, core.ColorRed)
	}
	g.drawWhale(dst, shift(snap.Player, oy))

	// Draw HUD
	if g.cfg.Field.HUDRows > 0 {
		dst.DrawHLine(0, 0, dst.Width(), ' ')
		hud := fmt.Sprintf(" Score: %d  Time: %ds ", snap.Score, snap.Elapsed)
		dst.DrawTextColored(1, 0, hud, core.ColorBrightCyan)

		level := fmt.Sprintf(" Lv %d  Spd %.2f/%.2f ", snap.Level, snap.ObstacleSpeed, snap.CollectibleSpeed)
		dst.DrawTextColored(dst.Width()-len(level)-1, 0, level, core.ColorGray)
	}

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	if snap.Phase == PhaseOver {
		res := g.session.Result()
		subtitle := fmt.Sprintf("Score: %d  Time: %ds", res.Record.Score, res.Record.Time)
		if res.Rank > 0 {
			subtitle += fmt.Sprintf("  Rank #%d", res.Rank)
		}
		subtitle += "  |  R restart  L scores"
		g.drawCenteredMessage(dst, "GAME OVER", subtitle)
	}
}

// drawWhale renders the player with a tail on the left and an eye on the right.
func (g *Game) drawWhale(dst *core.Screen, r core.Rect) {
	dst.DrawRectColored(r, WhaleChar, core.ColorBrightBlue)
	x, y, w, h := r.Cells()
	if w >= 3 {
		dst.SetColored(x+w-2, y, WhaleEye, core.ColorWhite)
	}
	if h >= 2 {
		dst.SetColored(x, y, WhaleTail, core.ColorBlue)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(float64(boxX), float64(boxY), float64(boxW), float64(boxH))
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.session.Score(),
		Elapsed:  g.session.Elapsed(),
		Level:    g.session.Difficulty().Level,
		Rank:     g.session.Result().Rank,
		GameOver: g.session.Phase() == PhaseOver,
		Paused:   g.paused,
	}
}

func shift(r core.Rect, dy float64) core.Rect {
	r.Y += dy
	return r
}

// Register the game variants with the registry
func init() {
	registry.Register(IDWhale, func() registry.Game {
		return New()
	})
	registry.Register(IDClassic, func() registry.Game {
		return NewClassic()
	})
}

var _ registry.Ranked = (*Game)(nil)
