package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/whale-rescue/internal/leaderboard"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreKV(t *testing.T) {
	store := openTestStore(t)

	got, err := store.Get("missing")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got != nil {
		t.Errorf("Get(missing) = %q, want nil", got)
	}

	if err := store.Put("k", []byte("one")); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	if err := store.Put("k", []byte("two")); err != nil {
		t.Fatalf("Put() overwrite failed: %v", err)
	}
	got, err = store.Get("k")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if string(got) != "two" {
		t.Errorf("Get(k) = %q, want %q", got, "two")
	}

	if err := store.Delete("k"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if got, _ := store.Get("k"); got != nil {
		t.Errorf("Get after Delete = %q, want nil", got)
	}
}

func TestStoreLeaderboardPersists(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "board.db")
	key := LeaderboardKey("whale")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	board := leaderboard.New(store.Leaderboard(key), leaderboard.MaxEntries)
	for _, rec := range []leaderboard.Record{{Score: 50, Time: 10}, {Score: 80, Time: 20}, {Score: 50, Time: 30}} {
		if _, err := board.Submit(rec); err != nil {
			t.Fatalf("Submit(%v) failed: %v", rec, err)
		}
	}
	store.Close()

	// Reopen: the list must survive process restarts
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	top, err := leaderboard.New(store.Leaderboard(key), leaderboard.MaxEntries).Top()
	if err != nil {
		t.Fatalf("Top() failed: %v", err)
	}
	want := []leaderboard.Record{{Score: 80, Time: 20}, {Score: 50, Time: 10}, {Score: 50, Time: 30}}
	if len(top) != len(want) {
		t.Fatalf("got %d records, want %d", len(top), len(want))
	}
	for i := range want {
		if top[i] != want[i] {
			t.Errorf("record %d = %v, want %v", i, top[i], want[i])
		}
	}

	raw, _ := store.Get(key)
	if string(raw) != `[{"score":80,"time":20},{"score":50,"time":10},{"score":50,"time":30}]` {
		t.Errorf("stored document = %s", raw)
	}
}

func TestStoreLeaderboardKeysAreIndependent(t *testing.T) {
	store := openTestStore(t)

	a := leaderboard.New(store.Leaderboard(LeaderboardKey("whale")), 10)
	b := leaderboard.New(store.Leaderboard(LeaderboardKey("whale_classic")), 10)
	if _, err := a.Submit(leaderboard.Record{Score: 10, Time: 1}); err != nil {
		t.Fatal(err)
	}

	top, err := b.Top()
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 0 {
		t.Errorf("classic board has %d entries, want 0", len(top))
	}
}

func TestStoreRuns(t *testing.T) {
	store := openTestStore(t)

	runs := []struct {
		game                  string
		score, seconds, level int
	}{
		{"whale", 100, 30, 2},
		{"whale", 50, 12, 1},
		{"whale", 200, 61, 4},
		{"whale_classic", 500, 90, 6},
	}
	for _, r := range runs {
		if _, err := store.RecordRun(r.game, r.score, r.seconds, r.level); err != nil {
			t.Fatalf("RecordRun() failed: %v", err)
		}
	}

	recent, err := store.RecentRuns("whale", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(recent))
	}
	if recent[0].Score != 200 || recent[2].Score != 100 {
		t.Errorf("runs not newest first: %+v", recent)
	}
	if recent[0].Seconds != 61 || recent[0].Level != 4 {
		t.Errorf("run fields = %+v", recent[0])
	}

	all, err := store.RecentRuns("", 2)
	if err != nil {
		t.Fatalf("RecentRuns(all) failed: %v", err)
	}
	if len(all) != 2 || all[0].GameID != "whale_classic" {
		t.Errorf("RecentRuns(all, 2) = %+v", all)
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetGameStats("whale")
	if err != nil {
		t.Fatalf("GetGameStats() on empty failed: %v", err)
	}
	if stats.Runs != 0 || stats.BestScore != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", stats)
	}

	store.RecordRun("whale", 10, 5, 0)
	store.RecordRun("whale", 30, 20, 1)
	store.RecordRun("whale_classic", 40, 7, 0)

	stats, err = store.GetGameStats("whale")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.BestScore != 30 || stats.AvgScore != 20 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.TotalSeconds != 25 || stats.LongestRun != 20 {
		t.Errorf("time stats = %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed not set")
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 || all["whale_classic"].BestScore != 40 {
		t.Errorf("all stats = %+v", all)
	}

	if err := store.ClearRuns("whale"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	stats, _ = store.GetGameStats("whale")
	if stats.Runs != 0 {
		t.Errorf("runs after clear = %d", stats.Runs)
	}
}
