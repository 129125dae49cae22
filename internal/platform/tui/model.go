package tui

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/whale-rescue/internal/core"
	"github.com/vovakirdan/whale-rescue/internal/leaderboard"
	"github.com/vovakirdan/whale-rescue/internal/registry"
	"github.com/vovakirdan/whale-rescue/internal/storage"
)

// Services bundles what a game host shares with other hosts.
type Services struct {
	Store    *storage.Store     // Run history; nil disables it
	Boards   *Boards            // Leaderboards; memory-backed when nil
	Logger   *log.Logger        // Discards when nil
	Renderer *lipgloss.Renderer // Output renderer; default when nil
}

func (s Services) withDefaults() Services {
	if s.Boards == nil {
		s.Boards = NewBoards(s.Store, nil)
	}
	if s.Logger == nil {
		s.Logger = log.New(io.Discard)
	}
	return s
}

// configErrorer is implemented by games that fall back to defaults when
// their config file cannot be loaded.
type configErrorer interface {
	ConfigError() error
}

// Model is the Bubble Tea model for running a game.
//
// Every TickMsg delivers the frame's input to the game and advances it by
// exactly one tick interval, whatever the wall-clock delay was.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	painter    *Painter
	svc        Services
	config     core.RuntimeConfig
	fixedSeed  bool
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	recorded   bool // Whether the current game over has been recorded

	showScores bool
	scores     []leaderboard.Record

	embedded   bool // Hosted inside a menu session; back returns to it
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, svc Services, cfg core.RuntimeConfig) Model {
	svc = svc.withDefaults()

	fixed := cfg.Seed != 0
	if !fixed {
		cfg.Seed = time.Now().UnixNano()
	}

	if ranked, ok := game.(registry.Ranked); ok {
		ranked.SetLeaderboard(svc.Boards.For(game.ID()))
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		painter:    NewPainter(svc.Renderer),
		svc:        svc,
		config:     cfg,
		fixedSeed:  fixed,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	if ce, ok := m.game.(configErrorer); ok && ce.ConfigError() != nil {
		m.svc.Logger.Warn("using default config", "game", m.game.ID(), "error", ce.ConfigError())
	}
	m.svc.Logger.Info("game started", "game", m.game.ID(), "seed", m.config.Seed,
		"width", m.config.ScreenW, "height", m.config.ScreenH)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keyMapper.IsScoresKey(msg) {
		m.toggleScores()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionBack:
		if m.showScores {
			m.showScores = false
			return m, nil
		}
		if m.embedded && (m.gameState.GameOver || m.gameState.Paused) {
			m.backToMenu = true
		}
		return m, nil
	case core.ActionRestart:
		if !m.gameState.GameOver {
			return m, nil
		}
	}

	if !m.showScores {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// toggleScores shows or hides the leaderboard panel. The game is frozen
// while the panel is shown.
func (m *Model) toggleScores() {
	if m.showScores {
		m.showScores = false
		return
	}
	records, err := m.svc.Boards.For(m.game.ID()).Top()
	if err != nil {
		m.svc.Logger.Warn("could not read leaderboard", "game", m.game.ID(), "error", err)
	}
	m.scores = records
	m.showScores = true
	m.inputFrame.Clear()
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	if msg.Width == m.config.ScreenW && msg.Height == m.config.ScreenH {
		return m, nil
	}

	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	// The field follows the terminal, so a running game starts over.
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
		m.gameState = m.game.State()
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.showScores {
		return m, tickCmd(m.config.TickRate)
	}

	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		if !m.fixedSeed {
			m.config.Seed = time.Now().UnixNano()
		}
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.recorded = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver && !m.recorded {
		m.recordRun()
		m.recorded = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// recordRun appends the finished session to the run history.
// The leaderboard itself is updated by the game at the moment it ends.
func (m Model) recordRun() {
	st := m.gameState
	m.svc.Logger.Info("game over", "game", m.game.ID(),
		"score", st.Score, "time", st.Elapsed, "level", st.Level, "rank", st.Rank)

	if m.svc.Store == nil {
		return
	}
	if _, err := m.svc.Store.RecordRun(m.game.ID(), st.Score, st.Elapsed, st.Level); err != nil {
		m.svc.Logger.Error("could not record run", "game", m.game.ID(), "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	if m.showScores {
		highlight := 0
		if m.gameState.GameOver {
			highlight = m.gameState.Rank
		}
		title := "HIGH SCORES - " + m.game.Title()
		return LeaderboardPanel(title, m.scores, highlight, m.config.ScreenW, m.config.ScreenH)
	}

	m.game.Render(m.screen)
	return m.painter.Render(m.screen)
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// ShowingScores reports whether the leaderboard panel is open.
func (m Model) ShowingScores() bool {
	return m.showScores
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, svc Services, cfg core.RuntimeConfig) error {
	model := NewModel(game, svc, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
