package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"inventory/internal/core/id"
)

var _ id.Allocator = (*Sequence)(nil)

// Sequence allocates identifiers from the counters collection.
type Sequence struct {
	db *DB
}

// NewSequence creates an identifier allocator.
func NewSequence(db *DB) *Sequence {
	return &Sequence{db: db}
}

type counter struct {
	Key string `bson:"_id"`
	Seq int64  `bson:"seq"`
}

// Next returns the next identifier of kind.
func (s *Sequence) Next(ctx context.Context, kind id.Kind) (id.ID, error) {
	return s.next(ctx, string(kind))
}

func (s *Sequence) next(ctx context.Context, key string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var c counter
	err := s.db.collection(collCounters).
		FindOneAndUpdate(ctx, bson.M{"_id": key}, bson.M{"$inc": bson.M{"seq": 1}}, opts).
		Decode(&c)
	if err != nil {
		return 0, fmt.Errorf("next %s id: %w", key, err)
	}
	return c.Seq, nil
}
