package position

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory/internal/core/clock"
	"inventory/internal/core/id"
)

type fakeRecord struct {
	parent    id.ID
	position  int64
	timestamp int64
}

// fakeStore keeps one collection of records keyed by id.
type fakeStore struct {
	records map[id.ID]*fakeRecord
	locked  []Scope
	failSet error
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: map[id.ID]*fakeRecord{}}
}

func (s *fakeStore) add(recordID, parent id.ID, pos, ts int64) {
	s.records[recordID] = &fakeRecord{parent: parent, position: pos, timestamp: ts}
}

func (s *fakeStore) inScope(scope Scope) []Slot {
	var out []Slot
	for rid, r := range s.records {
		if scope.IsGlobal() || r.parent == scope.ParentID {
			out = append(out, Slot{ID: rid, Position: r.position})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

func (s *fakeStore) LockScope(_ context.Context, scope Scope) error {
	s.locked = append(s.locked, scope)
	return nil
}

func (s *fakeStore) MaxPosition(_ context.Context, scope Scope) (int64, error) {
	var max int64
	for _, slot := range s.inScope(scope) {
		if slot.Position > max {
			max = slot.Position
		}
	}
	return max, nil
}

func (s *fakeStore) Neighbor(_ context.Context, scope Scope, pos int64, dir Direction) (Slot, bool, error) {
	slots := s.inScope(scope)
	if dir == Up {
		for i := len(slots) - 1; i >= 0; i-- {
			if slots[i].Position < pos {
				return slots[i], true, nil
			}
		}
		return Slot{}, false, nil
	}
	for _, slot := range slots {
		if slot.Position > pos {
			return slot, true, nil
		}
	}
	return Slot{}, false, nil
}

func (s *fakeStore) SetPosition(_ context.Context, _ id.Kind, recordID id.ID, pos int64, ts *int64) error {
	if s.failSet != nil {
		return s.failSet
	}
	r := s.records[recordID]
	r.position = pos
	if ts != nil {
		r.timestamp = *ts
	}
	return nil
}

func (s *fakeStore) CloseGap(_ context.Context, scope Scope, pos int64) error {
	for _, r := range s.records {
		if (scope.IsGlobal() || r.parent == scope.ParentID) && r.position > pos {
			r.position--
		}
	}
	return nil
}

func TestNext(t *testing.T) {
	store := newFakeStore()
	m := NewManager(store, clock.NewFixed(time.Unix(100, 0)))
	ctx := context.Background()

	scope := Within(id.KindArticle, "category", 1)
	next, err := m.Next(ctx, scope)
	require.NoError(t, err)
	assert.Equal(t, int64(1), next, "empty scope starts at 1")

	store.add(1, 1, 1, 0)
	store.add(2, 1, 2, 0)
	store.add(3, 2, 7, 0)

	next, err = m.Next(ctx, scope)
	require.NoError(t, err)
	assert.Equal(t, int64(3), next)

	next, err = m.Next(ctx, Within(id.KindArticle, "category", 2))
	require.NoError(t, err)
	assert.Equal(t, int64(8), next)
}

func TestSwap_Up(t *testing.T) {
	store := newFakeStore()
	store.add(10, 0, 1, 50)
	store.add(11, 0, 2, 60)
	store.add(12, 0, 3, 70)
	m := NewManager(store, clock.NewFixed(time.Unix(900, 0)))

	res, err := m.Swap(context.Background(), Global(id.KindCategory), Slot{ID: 12, Position: 3}, Up)
	require.NoError(t, err)

	assert.Equal(t, Slot{ID: 12, Position: 2}, res.Moved)
	assert.Equal(t, Slot{ID: 11, Position: 3}, res.Displaced)
	assert.Equal(t, int64(900), res.Timestamp)

	assert.Equal(t, int64(900), store.records[12].timestamp, "moved record gets now")
	assert.Equal(t, int64(60), store.records[11].timestamp, "displaced record keeps its timestamp")
	assert.Equal(t, int64(1), store.records[10].position)
	assert.Len(t, store.locked, 1)
}

func TestSwap_DownSkipsGaps(t *testing.T) {
	store := newFakeStore()
	store.add(1, 5, 1, 0)
	store.add(2, 5, 4, 0)
	store.add(3, 6, 2, 0)
	m := NewManager(store, clock.NewFixed(time.Unix(1, 0)))

	res, err := m.Swap(context.Background(), Within(id.KindLot, "article", 5), Slot{ID: 1, Position: 1}, Down)
	require.NoError(t, err)
	assert.Equal(t, id.ID(2), res.Displaced.ID)
	assert.Equal(t, int64(4), store.records[1].position)
	assert.Equal(t, int64(1), store.records[2].position)
	assert.Equal(t, int64(2), store.records[3].position, "other scope untouched")
}

func TestSwap_NoNeighbor(t *testing.T) {
	store := newFakeStore()
	store.add(1, 0, 1, 10)
	store.add(2, 0, 2, 20)
	m := NewManager(store, clock.NewFixed(time.Unix(99, 0)))
	ctx := context.Background()

	_, err := m.Swap(ctx, Global(id.KindCategory), Slot{ID: 1, Position: 1}, Up)
	assert.ErrorIs(t, err, ErrNoNeighbor)

	_, err = m.Swap(ctx, Global(id.KindCategory), Slot{ID: 2, Position: 2}, Down)
	assert.ErrorIs(t, err, ErrNoNeighbor)

	assert.Equal(t, int64(10), store.records[1].timestamp, "nothing written")
	assert.Equal(t, int64(2), store.records[2].position)
}

func TestSwap_StoreFailure(t *testing.T) {
	store := newFakeStore()
	store.add(1, 0, 1, 0)
	store.add(2, 0, 2, 0)
	store.failSet = errors.New("disk full")
	m := NewManager(store, clock.System{})

	_, err := m.Swap(context.Background(), Global(id.KindCategory), Slot{ID: 2, Position: 2}, Up)
	assert.ErrorContains(t, err, "disk full")
	assert.NotErrorIs(t, err, ErrNoNeighbor)
}

func TestDetach(t *testing.T) {
	store := newFakeStore()
	store.add(1, 3, 1, 0)
	store.add(2, 3, 2, 0)
	store.add(3, 3, 3, 0)
	store.add(4, 9, 3, 0)
	m := NewManager(store, clock.System{})

	delete(store.records, 2)
	require.NoError(t, m.Detach(context.Background(), Within(id.KindArticle, "category", 3), 2))

	assert.Equal(t, int64(1), store.records[1].position)
	assert.Equal(t, int64(2), store.records[3].position)
	assert.Equal(t, int64(3), store.records[4].position)
}

func TestScopeString(t *testing.T) {
	assert.Equal(t, "categories", Global(id.KindCategory).String())
	assert.Equal(t, "lots[article=4]", Within(id.KindLot, "article", 4).String())
	assert.Equal(t, "up", Up.String())
	assert.Equal(t, "down", Down.String())
}
