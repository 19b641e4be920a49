package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"inventory/internal/core/id"
	"inventory/internal/domain/position"
)

var _ position.Store = (*PositionStore)(nil)

// PositionStore implements position.Store. The collection name equals the
// kind.
type PositionStore struct {
	db *DB
}

// NewPositionStore creates a position store.
func NewPositionStore(db *DB) *PositionStore {
	return &PositionStore{db: db}
}

// LockScope bumps a per-scope lock document inside the session. Two
// transactions touching the same scope then write the same document, so the
// later one aborts with a write conflict and WithTransaction retries it.
func (s *PositionStore) LockScope(ctx context.Context, scope position.Scope) error {
	filter, update := scopeLock(scope)
	_, err := s.db.collection(collScopeLocks).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("lock scope %s: %w", scope, err)
	}
	return nil
}

func scopeLock(scope position.Scope) (bson.M, bson.M) {
	return bson.M{"_id": scope.String()}, bson.M{"$inc": bson.M{"v": 1}}
}

func scopeFilter(scope position.Scope) bson.M {
	if scope.IsGlobal() {
		return bson.M{}
	}
	return bson.M{scope.ParentField: scope.ParentID}
}

// neighborFilter selects the records after (Down) or before (Up) pos.
func neighborFilter(scope position.Scope, pos int64, dir position.Direction) (bson.M, bson.D) {
	filter := scopeFilter(scope)
	if dir == position.Up {
		filter["position"] = bson.M{"$lt": pos}
		return filter, bson.D{{Key: "position", Value: -1}}
	}
	filter["position"] = bson.M{"$gt": pos}
	return filter, bson.D{{Key: "position", Value: 1}}
}

func (s *PositionStore) MaxPosition(ctx context.Context, scope position.Scope) (int64, error) {
	opts := options.FindOne().
		SetSort(bson.D{{Key: "position", Value: -1}}).
		SetProjection(bson.M{"position": 1})

	var slot position.Slot
	err := s.db.collection(string(scope.Kind)).FindOne(ctx, scopeFilter(scope), opts).Decode(&slot)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("max position of %s: %w", scope, err)
	}
	return slot.Position, nil
}

func (s *PositionStore) Neighbor(ctx context.Context, scope position.Scope, pos int64, dir position.Direction) (position.Slot, bool, error) {
	filter, sort := neighborFilter(scope, pos, dir)
	opts := options.FindOne().SetSort(sort).SetProjection(bson.M{"position": 1})

	var slot position.Slot
	err := s.db.collection(string(scope.Kind)).FindOne(ctx, filter, opts).Decode(&slot)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return position.Slot{}, false, nil
	}
	if err != nil {
		return position.Slot{}, false, fmt.Errorf("neighbor in %s: %w", scope, err)
	}
	return slot, true, nil
}

func (s *PositionStore) SetPosition(ctx context.Context, kind id.Kind, recordID id.ID, pos int64, timestamp *int64) error {
	set := bson.M{"position": pos}
	if timestamp != nil {
		set["timestamp"] = *timestamp
	}
	res, err := s.db.collection(string(kind)).UpdateByID(ctx, recordID, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("set position of %s %d: %w", kind, recordID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("set position: %s %d does not exist", kind, recordID)
	}
	return nil
}

func (s *PositionStore) CloseGap(ctx context.Context, scope position.Scope, pos int64) error {
	filter := scopeFilter(scope)
	filter["position"] = bson.M{"$gt": pos}
	if _, err := s.db.collection(string(scope.Kind)).UpdateMany(ctx, filter, bson.M{"$inc": bson.M{"position": -1}}); err != nil {
		return fmt.Errorf("close gap in %s: %w", scope, err)
	}
	return nil
}
