package memory

import (
	"context"
	"errors"
	"time"

	"inventory/internal/domain/stocktaking"
)

var _ stocktaking.Repository = (*SessionRepo)(nil)

// SessionRepo stores stocktaking sessions.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a session repository.
func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

func (r *SessionRepo) Current(context.Context) (*stocktaking.Session, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for i := range r.db.sessions {
		if r.db.sessions[i].Active() {
			s := r.db.sessions[i]
			return &s, nil
		}
	}
	return nil, nil
}

func (r *SessionRepo) Open(_ context.Context, start time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, s := range r.db.sessions {
		if s.Active() {
			return errors.New("a session is already open")
		}
	}
	r.db.sessions = append(r.db.sessions, stocktaking.Session{
		ID:    int64(len(r.db.sessions) + 1),
		Start: start,
	})
	return nil
}

func (r *SessionRepo) Close(_ context.Context, stop time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range r.db.sessions {
		if r.db.sessions[i].Active() {
			r.db.sessions[i].Stop = &stop
			return nil
		}
	}
	return errors.New("no open session")
}
