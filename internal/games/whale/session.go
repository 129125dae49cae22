package whale

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/whale-rescue/internal/config"
	"github.com/vovakirdan/whale-rescue/internal/core"
	"github.com/vovakirdan/whale-rescue/internal/leaderboard"
)

// Phase is the lifecycle state of a session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseOver
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}

// Recorder receives the result of a finished session.
// *leaderboard.Board satisfies it.
type Recorder interface {
	Submit(rec leaderboard.Record) (int, error)
}

// Result describes a finished session.
type Result struct {
	Record leaderboard.Record
	Level  int
	Rank   int   // Leaderboard position, 0 if unranked or not recorded
	Err    error // Recording failure, if any
}

// Session runs one game of Whale Rescue.
//
// Three periodic tasks drive it: the simulation tick, the elapsed-second
// counter and the difficulty timer. Every task body checks that the
// session is still running, so a callback that was already due when the
// session ended does nothing.
type Session struct {
	cfg       config.WhaleConfig
	field     Field
	rng       *rand.Rand
	sched     *Scheduler
	tickEvery time.Duration
	recorder  Recorder

	phase      Phase
	player     Player
	entities   []Scroller // Obstacles first, then collectibles
	difficulty *Difficulty
	score      int
	elapsed    int
	ticks      int
	result     Result

	tickTask, secondTask, difficultyTask *Task

	// OnGameOver, if set, is called once when the session ends.
	OnGameOver func(Result)
}

// NewSession creates an idle session. rec may be nil.
func NewSession(cfg config.WhaleConfig, field Field, tickRate int, seed int64, rec Recorder) *Session {
	if tickRate <= 0 {
		tickRate = 60
	}
	field.Scroll = cfg.Field.Scroll
	return &Session{
		cfg:        cfg,
		field:      field,
		rng:        rand.New(rand.NewSource(seed)),
		sched:      NewScheduler(),
		tickEvery:  time.Second / time.Duration(tickRate),
		recorder:   rec,
		difficulty: NewDifficulty(cfg.Difficulty, cfg.Obstacles.Speed, cfg.Collectibles.Speed),
	}
}

// TickInterval returns the simulation step length.
func (s *Session) TickInterval() time.Duration {
	return s.tickEvery
}

// Start begins a fresh run: score, time and speeds return to baseline,
// entities are placed at random and the three tasks are scheduled.
// Starting a running session restarts it.
func (s *Session) Start() {
	s.cancelTasks()

	s.score = 0
	s.elapsed = 0
	s.ticks = 0
	s.result = Result{}
	s.difficulty.Reset()

	pc := s.cfg.Player
	s.player = Player{
		Rect:     core.NewRect(pc.X, (s.field.H-pc.Height)/2, pc.Width, pc.Height),
		Speed:    pc.Speed,
		Movement: s.cfg.Field.Movement,
	}
	s.player.Update(s.field) // clamp into small fields

	s.entities = s.entities[:0]
	s.spawn(KindObstacle, s.cfg.Obstacles.Count, s.cfg.Obstacles.Width, s.cfg.Obstacles.Height)
	s.spawn(KindCollectible, s.cfg.Collectibles.Count, s.cfg.Collectibles.Width, s.cfg.Collectibles.Height)
	s.difficulty.Apply(s.entities)

	s.phase = PhaseRunning

	s.tickTask = s.sched.Every(s.tickEvery, s.Tick)
	s.secondTask = s.sched.Every(time.Second, s.SecondTick)
	if s.difficulty.IsEnabled() {
		interval := time.Duration(s.difficulty.Interval() * float64(time.Second))
		s.difficultyTask = s.sched.Every(interval, s.DifficultyTick)
	}
}

func (s *Session) spawn(kind Kind, count int, w, h float64) {
	for i := 0; i < count; i++ {
		e := Scroller{Kind: kind, Rect: core.NewRect(0, 0, w, h)}
		e.Spawn(s.field, s.rng)
		s.entities = append(s.entities, e)
	}
}

// Advance moves the session clock forward, running due tasks.
func (s *Session) Advance(d time.Duration) {
	s.sched.Advance(d)
}

// Move steers the whale. Ignored unless running.
func (s *Session) Move(d Direction) {
	if s.phase != PhaseRunning {
		return
	}
	s.player.Move(d)
}

// StopMoving halts the whale. Ignored unless running.
func (s *Session) StopMoving() {
	if s.phase != PhaseRunning {
		return
	}
	s.player.Stop()
}

// Tick advances the simulation by one step.
//
// Collisions are tested against positions after this tick's update.
// Obstacles are processed before collectibles; the first obstacle hit
// ends the session and the rest of the tick is skipped, so a collectible
// touched in the same tick does not score.
func (s *Session) Tick() {
	if s.phase != PhaseRunning {
		return
	}
	s.ticks++

	s.player.Update(s.field)

	for i := range s.entities {
		e := &s.entities[i]
		if e.Kind != KindObstacle {
			continue
		}
		e.Update(s.field, s.rng)
		if core.Overlaps(s.player.Rect, e.Rect) {
			s.finish()
			return
		}
	}

	for i := range s.entities {
		e := &s.entities[i]
		if e.Kind != KindCollectible {
			continue
		}
		e.Update(s.field, s.rng)
		if core.Overlaps(s.player.Rect, e.Rect) {
			s.collect(e)
		}
	}
}

func (s *Session) collect(e *Scroller) {
	old := s.score
	s.score += s.cfg.Collectibles.Points
	e.Recycle(s.field, s.rng)

	for n := s.difficulty.Milestones(old, s.score); n > 0; n-- {
		s.difficulty.Escalate(s.entities)
	}
}

// SecondTick counts one elapsed second. Ignored unless running.
func (s *Session) SecondTick() {
	if s.phase != PhaseRunning {
		return
	}
	s.elapsed++
}

// DifficultyTick is the periodic escalation. Ignored unless running.
func (s *Session) DifficultyTick() {
	if s.phase != PhaseRunning {
		return
	}
	s.difficulty.Escalate(s.entities)
}

// finish performs the single Running -> Over transition.
func (s *Session) finish() {
	if s.phase != PhaseRunning {
		return
	}
	s.phase = PhaseOver
	s.cancelTasks()

	s.result = Result{
		Record: leaderboard.Record{Score: s.score, Time: s.elapsed},
		Level:  s.difficulty.Level,
	}
	if s.recorder != nil {
		s.result.Rank, s.result.Err = s.recorder.Submit(s.result.Record)
	}
	if s.OnGameOver != nil {
		s.OnGameOver(s.result)
	}
}

func (s *Session) cancelTasks() {
	s.tickTask.Cancel()
	s.secondTask.Cancel()
	s.difficultyTask.Cancel()
	s.tickTask, s.secondTask, s.difficultyTask = nil, nil, nil
}

// Phase returns the lifecycle state.
func (s *Session) Phase() Phase {
	return s.phase
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score
}

// Elapsed returns the whole seconds counted so far.
func (s *Session) Elapsed() int {
	return s.elapsed
}

// Difficulty returns the shared speed state.
func (s *Session) Difficulty() *Difficulty {
	return s.difficulty
}

// Result returns the outcome once the session is over.
func (s *Session) Result() Result {
	return s.result
}

// Snapshot is a read-only view of a session for rendering.
type Snapshot struct {
	Phase            Phase
	Field            Field
	Player           core.Rect
	Obstacles        []core.Rect
	Collectibles     []core.Rect
	Score            int
	Elapsed          int
	Ticks            int
	Level            int
	ObstacleSpeed    float64
	CollectibleSpeed float64
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:            s.phase,
		Field:            s.field,
		Player:           s.player.Rect,
		Score:            s.score,
		Elapsed:          s.elapsed,
		Ticks:            s.ticks,
		Level:            s.difficulty.Level,
		ObstacleSpeed:    s.difficulty.ObstacleSpeed,
		CollectibleSpeed: s.difficulty.CollectibleSpeed,
	}
	for _, e := range s.entities {
		if e.Kind == KindObstacle {
			snap.Obstacles = append(snap.Obstacles, e.Rect)
		} else {
			snap.Collectibles = append(snap.Collectibles, e.Rect)
		}
	}
	return snap
}
