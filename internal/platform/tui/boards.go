package tui

import (
	"sync"

	"github.com/vovakirdan/whale-rescue/internal/leaderboard"
	"github.com/vovakirdan/whale-rescue/internal/storage"
)

// Boards hands out one leaderboard per game ID. All hosts sharing a
// Boards value, such as concurrent SSH sessions, submit through the
// same Board and therefore never interleave a read-modify-write.
type Boards struct {
	mu     sync.Mutex
	store  *storage.Store
	sizeOf SizeFunc
	boards map[string]*leaderboard.Board
}

// SizeFunc returns the leaderboard length configured for a game.
type SizeFunc func(gameID string) int

// FixedSize gives every game the same leaderboard length.
func FixedSize(n int) SizeFunc {
	return func(string) int { return n }
}

// NewBoards creates a leaderboard set backed by store. A nil store keeps
// the lists in memory for the lifetime of the process. A nil sizeOf gives
// every board leaderboard.MaxEntries.
func NewBoards(store *storage.Store, sizeOf SizeFunc) *Boards {
	if sizeOf == nil {
		sizeOf = FixedSize(leaderboard.MaxEntries)
	}
	return &Boards{
		store:  store,
		sizeOf: sizeOf,
		boards: make(map[string]*leaderboard.Board),
	}
}

// For returns the leaderboard of a game, creating it on first use.
func (b *Boards) For(gameID string) *leaderboard.Board {
	b.mu.Lock()
	defer b.mu.Unlock()

	if board, ok := b.boards[gameID]; ok {
		return board
	}

	var p leaderboard.Persister
	if b.store != nil {
		p = b.store.Leaderboard(storage.LeaderboardKey(gameID))
	} else {
		p = leaderboard.NewMemoryPersister(nil)
	}
	board := leaderboard.New(p, b.sizeOf(gameID))
	b.boards[gameID] = board
	return board
}
