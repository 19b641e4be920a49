package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"inventory/internal/core/apperror"
	"inventory/internal/domain/stocktaking"
)

var _ stocktaking.Repository = (*SessionRepo)(nil)

// sessionDoc carries an "open" marker while the session runs. A partial
// unique index on it admits a single open session.
type sessionDoc struct {
	ID    int64      `bson:"_id"`
	Start time.Time  `bson:"start"`
	Stop  *time.Time `bson:"stop,omitempty"`
	Open  *bool      `bson:"open,omitempty"`
}

func (d sessionDoc) session() *stocktaking.Session {
	return &stocktaking.Session{ID: d.ID, Start: d.Start, Stop: d.Stop}
}

// SessionRepo stores stocktaking sessions in the inventories collection.
type SessionRepo struct {
	db  *DB
	seq *Sequence
}

// NewSessionRepo creates a session repository.
func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db, seq: NewSequence(db)}
}

func (r *SessionRepo) Current(ctx context.Context) (*stocktaking.Session, error) {
	var doc sessionDoc
	err := r.db.collection(collInventories).FindOne(ctx, bson.M{"open": true}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("current session: %w", err)
	}
	return doc.session(), nil
}

func (r *SessionRepo) Open(ctx context.Context, start time.Time) error {
	sessionID, err := r.seq.next(ctx, collInventories)
	if err != nil {
		return err
	}
	open := true
	_, err = r.db.collection(collInventories).InsertOne(ctx, sessionDoc{ID: sessionID, Start: start, Open: &open})
	if mongo.IsDuplicateKeyError(err) {
		return apperror.NewConflict("inventory is already active")
	}
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	return nil
}

func (r *SessionRepo) Close(ctx context.Context, stop time.Time) error {
	res, err := r.db.collection(collInventories).UpdateOne(ctx, bson.M{"open": true}, bson.M{
		"$set":   bson.M{"stop": stop},
		"$unset": bson.M{"open": ""},
	})
	if err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperror.NewConflict("inventory is not active")
	}
	return nil
}
