package whale

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/whale-rescue/internal/config"
	"github.com/vovakirdan/whale-rescue/internal/core"
	"github.com/vovakirdan/whale-rescue/internal/leaderboard"
)

var testField = Field{W: 80, H: 23}

type fakeRecorder struct {
	records []leaderboard.Record
	rank    int
	err     error
}

func (f *fakeRecorder) Submit(rec leaderboard.Record) (int, error) {
	f.records = append(f.records, rec)
	return f.rank, f.err
}

func newRunningSession(t *testing.T, cfg config.WhaleConfig, rec Recorder) *Session {
	t.Helper()
	s := NewSession(cfg, testField, 60, 42, rec)
	s.Start()
	require.Equal(t, PhaseRunning, s.Phase())
	return s
}

// park moves every entity far beyond the near edge so it cannot interfere.
func park(s *Session) {
	for i := range s.entities {
		s.entities[i].Rect.X = 10_000
	}
}

// placeForHit positions entity i so that after its next update its
// rectangle coincides with the player's.
func placeForHit(s *Session, i int) {
	e := &s.entities[i]
	e.Rect = s.player.Rect
	e.Rect.X += e.Speed
}

func firstOf(s *Session, k Kind) int {
	for i, e := range s.entities {
		if e.Kind == k {
			return i
		}
	}
	return -1
}

func TestSessionStartsIdle(t *testing.T) {
	s := NewSession(config.DefaultWhaleConfig(), testField, 60, 1, nil)
	assert.Equal(t, PhaseIdle, s.Phase())

	// Nothing happens before Start.
	s.Move(DirUp)
	s.Tick()
	s.SecondTick()
	s.DifficultyTick()
	s.Advance(time.Minute)
	assert.Zero(t, s.Snapshot().Ticks)
	assert.Zero(t, s.Elapsed())
	assert.Zero(t, s.player.DY)
}

func TestSessionStartAllocatesEntities(t *testing.T) {
	cfg := config.DefaultWhaleConfig()
	s := newRunningSession(t, cfg, nil)

	snap := s.Snapshot()
	assert.Len(t, snap.Obstacles, cfg.Obstacles.Count)
	assert.Len(t, snap.Collectibles, cfg.Collectibles.Count)
	assert.Equal(t, cfg.Player.X, snap.Player.X)
	assert.Equal(t, (testField.H-cfg.Player.Height)/2, snap.Player.Y)
	assert.Equal(t, cfg.Obstacles.Speed, snap.ObstacleSpeed)

	for _, e := range s.entities {
		assert.Equal(t, s.difficulty.SpeedFor(e.Kind), e.Speed)
		assert.GreaterOrEqual(t, e.Rect.X, testField.W, "entities start off-field")
	}
}

func TestSessionObstacleHitEndsGame(t *testing.T) {
	rec := &fakeRecorder{rank: 4}
	s := newRunningSession(t, config.DefaultWhaleConfig(), rec)
	park(s)

	var results []Result
	s.OnGameOver = func(r Result) { results = append(results, r) }

	s.Advance(3 * time.Second)
	require.Equal(t, PhaseRunning, s.Phase())

	i := firstOf(s, KindObstacle)
	placeForHit(s, i)
	s.Tick()

	require.Equal(t, PhaseOver, s.Phase())
	assert.InDelta(t, s.player.Rect.X, s.entities[i].Rect.X, 1e-9)
	assert.Equal(t, []leaderboard.Record{{Score: 0, Time: 3}}, rec.records)
	require.Len(t, results, 1)
	assert.Equal(t, 4, results[0].Rank)
	assert.Equal(t, 0, s.sched.Pending(), "all tasks are cancelled")

	// Later callbacks, scheduled or stray, have no effect.
	before := s.Snapshot()
	s.Tick()
	s.SecondTick()
	s.DifficultyTick()
	s.Move(DirDown)
	s.Advance(time.Minute)
	assert.Equal(t, before, s.Snapshot())
	assert.Len(t, rec.records, 1)
	assert.Len(t, results, 1)
}

func TestSessionCollectScoresAndRecycles(t *testing.T) {
	s := newRunningSession(t, config.DefaultWhaleConfig(), nil)
	park(s)

	i := firstOf(s, KindCollectible)
	placeForHit(s, i)
	s.Tick()

	assert.Equal(t, PhaseRunning, s.Phase())
	assert.Equal(t, 10, s.Score())
	assert.Equal(t, testField.W, s.entities[i].Rect.X, "collected item returns to the near edge")
	assert.Len(t, s.entities, 7, "collected items are recycled, not removed")
}

func TestSessionSimultaneousHitIsFatalWithoutScore(t *testing.T) {
	rec := &fakeRecorder{}
	s := newRunningSession(t, config.DefaultWhaleConfig(), rec)
	park(s)

	placeForHit(s, firstOf(s, KindObstacle))
	placeForHit(s, firstOf(s, KindCollectible))
	s.Tick()

	assert.Equal(t, PhaseOver, s.Phase())
	assert.Zero(t, s.Score())
	assert.Equal(t, []leaderboard.Record{{Score: 0, Time: 0}}, rec.records)
}

func TestSessionScoreMilestoneEscalates(t *testing.T) {
	cfg := config.DefaultWhaleConfig()
	cfg.Difficulty.IntervalSecs = 3600
	s := newRunningSession(t, cfg, nil)
	park(s)

	i := firstOf(s, KindCollectible)
	for n := 1; n <= 5; n++ {
		placeForHit(s, i)
		s.Tick()
		require.Equal(t, n*10, s.Score())
		if n < 5 {
			assert.Zero(t, s.difficulty.Level)
		}
	}

	assert.Equal(t, 1, s.difficulty.Level)
	assert.InDelta(t, cfg.Obstacles.Speed+cfg.Difficulty.Increment, s.difficulty.ObstacleSpeed, 1e-9)
	assert.InDelta(t, cfg.Collectibles.Speed+cfg.Difficulty.Increment, s.difficulty.CollectibleSpeed, 1e-9)
	for _, e := range s.entities {
		assert.Equal(t, s.difficulty.SpeedFor(e.Kind), e.Speed)
	}
}

func TestSessionTimeTriggers(t *testing.T) {
	cfg := config.DefaultWhaleConfig()
	cfg.Obstacles.Count = 0
	cfg.Collectibles.Count = 0
	s := newRunningSession(t, cfg, nil)

	s.Advance(14 * time.Second)
	assert.Equal(t, 14, s.Elapsed())
	assert.Zero(t, s.difficulty.Level)

	s.Advance(time.Second)
	assert.Equal(t, 15, s.Elapsed())
	assert.Equal(t, 1, s.difficulty.Level)

	s.Advance(30 * time.Second)
	assert.Equal(t, 45, s.Elapsed())
	assert.Equal(t, 3, s.difficulty.Level)
	assert.InDelta(t, cfg.Obstacles.Speed+3*cfg.Difficulty.Increment, s.difficulty.ObstacleSpeed, 1e-9)
}

func TestSessionFixedDifficultyNeverEscalates(t *testing.T) {
	cfg := config.DefaultWhaleConfig()
	cfg.Obstacles.Count = 0
	cfg.Difficulty.Enabled = false
	s := newRunningSession(t, cfg, nil)

	s.Advance(2 * time.Minute)
	assert.Zero(t, s.difficulty.Level)
	assert.Equal(t, cfg.Obstacles.Speed, s.difficulty.ObstacleSpeed)
}

func TestSessionSpeedsMonotonic(t *testing.T) {
	cfg := config.DefaultWhaleConfig()
	cfg.Obstacles.Count = 0
	cfg.Collectibles.Count = 12
	cfg.Difficulty.IntervalSecs = 2
	cfg.Difficulty.ScoreThreshold = 20
	s := newRunningSession(t, cfg, nil)

	rng := rand.New(rand.NewSource(99))
	prevO, prevC := s.difficulty.ObstacleSpeed, s.difficulty.CollectibleSpeed
	prevLevel := 0
	for i := 0; i < 60*60; i++ {
		if i%20 == 0 {
			s.Move(Direction(rng.Intn(4)))
		}
		s.Advance(s.TickInterval())

		d := s.difficulty
		require.GreaterOrEqual(t, d.ObstacleSpeed, prevO)
		require.GreaterOrEqual(t, d.CollectibleSpeed, prevC)
		steps := float64(d.Level - prevLevel)
		require.InDelta(t, steps*cfg.Difficulty.Increment, d.ObstacleSpeed-prevO, 1e-9)
		require.InDelta(t, steps*cfg.Difficulty.Increment, d.CollectibleSpeed-prevC, 1e-9)
		prevO, prevC, prevLevel = d.ObstacleSpeed, d.CollectibleSpeed, d.Level
	}
	assert.Greater(t, prevLevel, 0)
}

func TestSessionPlayerStaysInField(t *testing.T) {
	cfg := config.DefaultWhaleConfig()
	cfg.Obstacles.Count = 0
	cfg.Player.Speed = 7
	s := newRunningSession(t, cfg, nil)

	rng := rand.New(rand.NewSource(4))
	for i := 0; i < 2000; i++ {
		s.Move(Direction(rng.Intn(4)))
		s.Tick()
		p := s.player.Rect
		require.True(t, p.X >= 0 && p.X <= testField.W-p.W && p.Y >= 0 && p.Y <= testField.H-p.H, "player out of field: %+v", p)
	}
}

func TestSessionRestart(t *testing.T) {
	s := newRunningSession(t, config.DefaultWhaleConfig(), nil)
	park(s)
	placeForHit(s, firstOf(s, KindCollectible))
	s.Tick()
	placeForHit(s, firstOf(s, KindObstacle))
	s.Tick()
	require.Equal(t, PhaseOver, s.Phase())

	s.Start()
	assert.Equal(t, PhaseRunning, s.Phase())
	assert.Zero(t, s.Score())
	assert.Zero(t, s.Elapsed())
	assert.Equal(t, 3, s.sched.Pending(), "tick, second and difficulty tasks")
	assert.Equal(t, Result{}, s.Result())
}

func TestSessionRecorderErrorIsReported(t *testing.T) {
	boom := errors.New("no disk")
	s := newRunningSession(t, config.DefaultWhaleConfig(), &fakeRecorder{err: boom})
	park(s)
	placeForHit(s, firstOf(s, KindObstacle))
	s.Tick()

	assert.ErrorIs(t, s.Result().Err, boom)
	assert.Equal(t, PhaseOver, s.Phase())
}

func TestSessionRecordsToLeaderboard(t *testing.T) {
	board := leaderboard.New(leaderboard.NewMemoryPersister(nil), leaderboard.MaxEntries)
	s := newRunningSession(t, config.DefaultWhaleConfig(), board)
	park(s)

	placeForHit(s, firstOf(s, KindCollectible))
	s.Tick()
	s.Advance(2 * time.Second)
	park(s)
	placeForHit(s, firstOf(s, KindObstacle))
	s.Tick()

	top, err := board.Top()
	require.NoError(t, err)
	assert.Equal(t, []leaderboard.Record{{Score: 10, Time: 2}}, top)
	assert.Equal(t, 1, s.Result().Rank)
}

func TestSessionDownScroll(t *testing.T) {
	cfg := config.DefaultWhaleConfig()
	cfg.Field.Scroll = config.ScrollDown
	s := newRunningSession(t, cfg, nil)

	for _, e := range s.entities {
		assert.LessOrEqual(t, e.Rect.Bottom(), 0.0)
	}

	i := firstOf(s, KindObstacle)
	for j := range s.entities {
		s.entities[j].Rect.Y = -10_000
	}
	s.entities[i].Rect = s.player.Rect
	s.entities[i].Rect.Y -= s.entities[i].Speed
	s.Tick()
	assert.Equal(t, PhaseOver, s.Phase())
}

func TestSessionTinyField(t *testing.T) {
	s := NewSession(config.DefaultWhaleConfig(), Field{W: 3, H: 1}, 60, 1, nil)
	s.Start()
	p := s.Snapshot().Player
	assert.Equal(t, core.NewRect(0, 0, 5, 2), p)
}
