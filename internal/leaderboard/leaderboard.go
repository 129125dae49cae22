// Package leaderboard keeps the ranked list of best session results.
//
// The list is stored as a single JSON document (an array of
// {"score": n, "time": n} objects) behind a Persister. Every submission is
// one load-insert-save unit guarded by the Board's mutex.
package leaderboard

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// MaxEntries is the default number of records kept.
const MaxEntries = 10

// Record is one finished session.
type Record struct {
	Score int `json:"score"`
	Time  int `json:"time"` // Elapsed seconds
}

// Less reports whether a ranks above b: higher score first, then shorter time.
func Less(a, b Record) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Time < b.Time
}

// Insert appends rec to list, re-sorts and truncates to limit entries.
// It returns the new list and the 1-based rank of rec, or 0 if rec did not
// make the cut. The input slice is not modified.
func Insert(list []Record, rec Record, limit int) ([]Record, int) {
	if limit <= 0 {
		limit = MaxEntries
	}

	out := make([]Record, 0, len(list)+1)
	out = append(out, list...)
	out = append(out, rec)

	sort.SliceStable(out, func(i, j int) bool {
		return Less(out[i], out[j])
	})

	// Stable sort keeps rec behind equal records that were already listed.
	rank := 0
	for i := len(out) - 1; i >= 0; i-- {
		if out[i] == rec {
			rank = i + 1
			break
		}
	}

	if len(out) > limit {
		out = out[:limit]
	}
	if rank > limit {
		rank = 0
	}
	return out, rank
}

// Decode parses a stored leaderboard document.
// Missing, malformed or invalid data yields an empty list, never an error.
func Decode(data []byte) []Record {
	if len(data) == 0 {
		return nil
	}
	var raw []Record
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	valid := raw[:0]
	for _, r := range raw {
		if r.Score < 0 || r.Time < 0 {
			continue
		}
		valid = append(valid, r)
	}
	return valid
}

// Encode serializes records as a JSON array.
func Encode(list []Record) ([]byte, error) {
	if list == nil {
		list = []Record{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: encode: %w", err)
	}
	return data, nil
}

// Persister is the durable key-value slot holding the encoded leaderboard.
// Load returns nil data when nothing has been stored yet.
type Persister interface {
	Load() ([]byte, error)
	Save(data []byte) error
}

// Board is a leaderboard backed by a Persister.
type Board struct {
	mu    sync.Mutex
	store Persister
	limit int
}

// New creates a board that keeps at most limit records, never more than
// MaxEntries.
func New(store Persister, limit int) *Board {
	if limit <= 0 || limit > MaxEntries {
		limit = MaxEntries
	}
	return &Board{store: store, limit: limit}
}

// Limit returns the maximum number of records kept.
func (b *Board) Limit() int {
	return b.limit
}

// Top returns the current ordered records.
func (b *Board) Top() ([]Record, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	data, err := b.store.Load()
	if err != nil {
		return nil, fmt.Errorf("leaderboard: load: %w", err)
	}
	list := Decode(data)
	sort.SliceStable(list, func(i, j int) bool {
		return Less(list[i], list[j])
	})
	if len(list) > b.limit {
		list = list[:b.limit]
	}
	return list, nil
}

// Submit records one finished session and returns its rank (0 if unranked).
// Load, insert, truncate and save happen as one unit under the board lock.
func (b *Board) Submit(rec Record) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	// A failed read must not overwrite the stored list. Missing or
	// malformed documents still decode as empty.
	data, err := b.store.Load()
	if err != nil {
		return 0, fmt.Errorf("leaderboard: load: %w", err)
	}

	list, rank := Insert(Decode(data), rec, b.limit)

	encoded, err := Encode(list)
	if err != nil {
		return 0, err
	}
	if err := b.store.Save(encoded); err != nil {
		return 0, fmt.Errorf("leaderboard: save: %w", err)
	}
	return rank, nil
}

// MemoryPersister keeps the document in memory.
type MemoryPersister struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryPersister creates a persister, optionally seeded with a document.
func NewMemoryPersister(seed []byte) *MemoryPersister {
	return &MemoryPersister{data: append([]byte(nil), seed...)}
}

// Load returns a copy of the stored document.
func (m *MemoryPersister) Load() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, nil
	}
	return append([]byte(nil), m.data...), nil
}

// Save replaces the stored document.
func (m *MemoryPersister) Save(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	return nil
}

var _ Persister = (*MemoryPersister)(nil)
