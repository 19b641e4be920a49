package memory

import (
	"context"
	"fmt"

	"inventory/internal/core/id"
	"inventory/internal/domain/position"
)

var _ position.Store = (*PositionStore)(nil)

// PositionStore implements position.Store over all three collections.
type PositionStore struct {
	db *DB
}

// NewPositionStore creates a position store.
func NewPositionStore(db *DB) *PositionStore {
	return &PositionStore{db: db}
}

// LockScope is a no-op: transactions are already serialized.
func (s *PositionStore) LockScope(context.Context, position.Scope) error {
	return nil
}

// member is a record's parent and position, independent of its kind.
type member struct {
	id       id.ID
	parent   id.ID
	position int64
}

// members lists the records of kind. Callers hold db.mu.
func (s *PositionStore) members(kind id.Kind) ([]member, error) {
	var out []member
	switch kind {
	case id.KindCategory:
		for _, c := range s.db.categories {
			out = append(out, member{id: c.ID, position: c.Position})
		}
	case id.KindArticle:
		for _, a := range s.db.articles {
			out = append(out, member{id: a.ID, parent: a.Category, position: a.Position})
		}
	case id.KindLot:
		for _, l := range s.db.lots {
			out = append(out, member{id: l.ID, parent: l.Article, position: l.Position})
		}
	default:
		return nil, fmt.Errorf("unknown kind %q", kind)
	}
	return out, nil
}

func inScope(scope position.Scope, m member) bool {
	return scope.IsGlobal() || m.parent == scope.ParentID
}

func (s *PositionStore) MaxPosition(_ context.Context, scope position.Scope) (int64, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	members, err := s.members(scope.Kind)
	if err != nil {
		return 0, err
	}
	var max int64
	for _, m := range members {
		if inScope(scope, m) && m.position > max {
			max = m.position
		}
	}
	return max, nil
}

func (s *PositionStore) Neighbor(_ context.Context, scope position.Scope, pos int64, dir position.Direction) (position.Slot, bool, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	members, err := s.members(scope.Kind)
	if err != nil {
		return position.Slot{}, false, err
	}

	var best *member
	for i := range members {
		m := &members[i]
		if !inScope(scope, *m) {
			continue
		}
		switch dir {
		case position.Up:
			if m.position < pos && (best == nil || m.position > best.position) {
				best = m
			}
		case position.Down:
			if m.position > pos && (best == nil || m.position < best.position) {
				best = m
			}
		}
	}
	if best == nil {
		return position.Slot{}, false, nil
	}
	return position.Slot{ID: best.id, Position: best.position}, true, nil
}

func (s *PositionStore) SetPosition(_ context.Context, kind id.Kind, recordID id.ID, pos int64, timestamp *int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return s.setPosition(kind, recordID, pos, timestamp)
}

// setPosition writes one position. Callers hold db.mu for writing.
func (s *PositionStore) setPosition(kind id.Kind, recordID id.ID, pos int64, timestamp *int64) error {
	switch kind {
	case id.KindCategory:
		c, ok := s.db.categories[recordID]
		if !ok {
			return fmt.Errorf("category %d vanished", recordID)
		}
		c.Position = pos
		if timestamp != nil {
			c.Timestamp = *timestamp
		}
		s.db.categories[recordID] = c
	case id.KindArticle:
		a, ok := s.db.articles[recordID]
		if !ok {
			return fmt.Errorf("article %d vanished", recordID)
		}
		a.Position = pos
		if timestamp != nil {
			a.Timestamp = *timestamp
		}
		s.db.articles[recordID] = a
	case id.KindLot:
		l, ok := s.db.lots[recordID]
		if !ok {
			return fmt.Errorf("lot %d vanished", recordID)
		}
		l.Position = pos
		if timestamp != nil {
			l.Timestamp = *timestamp
		}
		s.db.lots[recordID] = l
	default:
		return fmt.Errorf("unknown kind %q", kind)
	}
	return nil
}

func (s *PositionStore) CloseGap(_ context.Context, scope position.Scope, pos int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	members, err := s.members(scope.Kind)
	if err != nil {
		return err
	}
	for _, m := range members {
		if inScope(scope, m) && m.position > pos {
			if err := s.setPosition(scope.Kind, m.id, m.position-1, nil); err != nil {
				return err
			}
		}
	}
	return nil
}
