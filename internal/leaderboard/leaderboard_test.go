package leaderboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitOrdering(t *testing.T) {
	b := New(NewMemoryPersister(nil), MaxEntries)

	_, err := b.Submit(Record{Score: 50, Time: 30})
	require.NoError(t, err)
	_, err = b.Submit(Record{Score: 80, Time: 20})
	require.NoError(t, err)
	rank, err := b.Submit(Record{Score: 50, Time: 10})
	require.NoError(t, err)

	top, err := b.Top()
	require.NoError(t, err)
	assert.Equal(t, []Record{{80, 20}, {50, 10}, {50, 30}}, top)
	assert.Equal(t, 2, rank)
}

func TestSubmitNeverExceedsLimit(t *testing.T) {
	store := NewMemoryPersister(nil)
	b := New(store, MaxEntries)

	for i := 0; i < 35; i++ {
		_, err := b.Submit(Record{Score: (i * 7) % 23, Time: i})
		require.NoError(t, err)

		top, err := b.Top()
		require.NoError(t, err)
		assert.LessOrEqual(t, len(top), MaxEntries)
	}

	data, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, Decode(data), MaxEntries)
}

func TestSubmitUnrankedReturnsZero(t *testing.T) {
	b := New(NewMemoryPersister(nil), 3)
	for _, s := range []int{100, 90, 80} {
		_, err := b.Submit(Record{Score: s, Time: 1})
		require.NoError(t, err)
	}

	rank, err := b.Submit(Record{Score: 10, Time: 1})
	require.NoError(t, err)
	assert.Zero(t, rank)

	rank, err = b.Submit(Record{Score: 95, Time: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, rank)
}

func TestInsertTieKeepsEarlierEntryFirst(t *testing.T) {
	list := []Record{{Score: 10, Time: 5}}
	out, rank := Insert(list, Record{Score: 10, Time: 5}, 10)

	assert.Len(t, out, 2)
	assert.Equal(t, 2, rank)
	assert.Equal(t, []Record{{10, 5}}, list, "input must not be modified")
}

func TestDecodeMalformedIsEmpty(t *testing.T) {
	cases := map[string]string{
		"empty":       "",
		"not json":    "{{{",
		"wrong shape": `{"score": 1}`,
		"wrong types": `[{"score": "ten", "time": 1}]`,
		"null":        "null",
		"empty array": "[]",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Empty(t, Decode([]byte(raw)))
		})
	}
}

func TestDecodeDropsNegativeRecords(t *testing.T) {
	got := Decode([]byte(`[{"score":5,"time":2},{"score":-1,"time":3},{"score":4,"time":-9}]`))
	assert.Equal(t, []Record{{5, 2}}, got)
}

func TestEncodeRoundTrip(t *testing.T) {
	list := []Record{{Score: 80, Time: 20}, {Score: 50, Time: 10}}
	data, err := Encode(list)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"score":80,"time":20},{"score":50,"time":10}]`, string(data))
	assert.Equal(t, list, Decode(data))

	empty, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(empty))
}

func TestBoardReadsMalformedStoreAsEmpty(t *testing.T) {
	b := New(NewMemoryPersister([]byte("garbage")), MaxEntries)

	top, err := b.Top()
	require.NoError(t, err)
	assert.Empty(t, top)

	rank, err := b.Submit(Record{Score: 3, Time: 4})
	require.NoError(t, err)
	assert.Equal(t, 1, rank)
}

type failingPersister struct {
	loadErr, saveErr error
}

func (f failingPersister) Load() ([]byte, error) { return nil, f.loadErr }
func (f failingPersister) Save([]byte) error     { return f.saveErr }

func TestBoardErrors(t *testing.T) {
	boom := errors.New("disk on fire")

	b := New(failingPersister{loadErr: boom}, MaxEntries)
	_, err := b.Top()
	assert.ErrorIs(t, err, boom)

	rank, err := b.Submit(Record{Score: 1, Time: 1})
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, rank)

	b = New(failingPersister{saveErr: boom}, MaxEntries)
	_, err = b.Submit(Record{Score: 1, Time: 1})
	assert.ErrorIs(t, err, boom)
}

// flakyPersister fails the next failLoads reads and otherwise behaves like
// a MemoryPersister.
type flakyPersister struct {
	*MemoryPersister
	failLoads int
	saves     int
}

func (f *flakyPersister) Load() ([]byte, error) {
	if f.failLoads > 0 {
		f.failLoads--
		return nil, errors.New("database is locked")
	}
	return f.MemoryPersister.Load()
}

func (f *flakyPersister) Save(data []byte) error {
	f.saves++
	return f.MemoryPersister.Save(data)
}

func TestSubmitKeepsStoredListWhenLoadFails(t *testing.T) {
	store := &flakyPersister{MemoryPersister: NewMemoryPersister(nil)}
	b := New(store, MaxEntries)
	for i := 1; i <= MaxEntries; i++ {
		_, err := b.Submit(Record{Score: i * 10, Time: i})
		require.NoError(t, err)
	}
	before, err := b.Top()
	require.NoError(t, err)
	require.Len(t, before, MaxEntries)
	saves := store.saves

	store.failLoads = 1
	rank, err := b.Submit(Record{Score: 1000, Time: 1})
	require.Error(t, err)
	assert.Zero(t, rank)
	assert.Equal(t, saves, store.saves, "nothing may be saved after a failed read")

	after, err := b.Top()
	require.NoError(t, err)
	assert.Equal(t, before, after)

	// Once storage recovers the next result ranks against the full list.
	rank, err = b.Submit(Record{Score: 1000, Time: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, rank)
}

func TestNewCapsLimitAtMaxEntries(t *testing.T) {
	b := New(NewMemoryPersister(nil), 25)
	assert.Equal(t, MaxEntries, b.Limit())

	for i := range 25 {
		_, err := b.Submit(Record{Score: i, Time: i})
		require.NoError(t, err)
	}
	top, err := b.Top()
	require.NoError(t, err)
	assert.Len(t, top, MaxEntries)
}
