package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"inventory/internal/core/apperror"
	"inventory/internal/core/id"
	"inventory/internal/domain/lot"
)

var _ lot.Repository = (*LotRepo)(nil)

// LotRepo stores lots.
type LotRepo struct {
	db *DB
}

// NewLotRepo creates a lot repository.
func NewLotRepo(db *DB) *LotRepo {
	return &LotRepo{db: db}
}

func (r *LotRepo) ListByArticles(ctx context.Context, articles []id.ID) ([]lot.Lot, error) {
	if len(articles) == 0 {
		return []lot.Lot{}, nil
	}
	out, err := findAll[lot.Lot](ctx, r.db.collection(collLots),
		bson.M{"article": bson.M{"$in": articles}},
		options.Find().SetSort(ascending("article", "position")))
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	return out, nil
}

func (r *LotRepo) Get(ctx context.Context, lotID id.ID) (lot.Lot, error) {
	var l lot.Lot
	err := findOne(ctx, r.db.collection(collLots), bson.M{"_id": lotID}, &l, apperror.NewNotFound("lot", lotID))
	if err != nil {
		return l, fmt.Errorf("get lot: %w", err)
	}
	return l, nil
}

// GetForUpdate reads like Get; see CategoryRepo.GetForUpdate.
func (r *LotRepo) GetForUpdate(ctx context.Context, lotID id.ID) (lot.Lot, error) {
	return r.Get(ctx, lotID)
}

func (r *LotRepo) Create(ctx context.Context, lots ...lot.Lot) error {
	if len(lots) == 0 {
		return nil
	}
	docs := make([]any, len(lots))
	for i, l := range lots {
		docs[i] = l
	}
	if _, err := r.db.collection(collLots).InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert lots: %w", err)
	}
	return nil
}

func (r *LotRepo) Update(ctx context.Context, l lot.Lot) error {
	res, err := r.db.collection(collLots).UpdateByID(ctx, l.ID, bson.M{
		"$set": bson.M{"bestBefore": l.BestBefore, "stock": l.Stock, "timestamp": l.Timestamp},
	})
	if err != nil {
		return fmt.Errorf("update lot: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperror.NewNotFound("lot", l.ID)
	}
	return nil
}

func (r *LotRepo) AdjustStock(ctx context.Context, lotID id.ID, delta int64, timestamp int64) (lot.Lot, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{
		"$inc": bson.M{"stock": delta},
		"$set": bson.M{"timestamp": timestamp},
	}

	var l lot.Lot
	err := r.db.collection(collLots).FindOneAndUpdate(ctx, bson.M{"_id": lotID}, update, opts).Decode(&l)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return l, apperror.NewNotFound("lot", lotID)
	}
	if err != nil {
		return l, fmt.Errorf("adjust stock: %w", err)
	}
	return l, nil
}

func (r *LotRepo) DeleteByArticle(ctx context.Context, articleID id.ID) error {
	if _, err := r.db.collection(collLots).DeleteMany(ctx, bson.M{"article": articleID}); err != nil {
		return fmt.Errorf("delete lots of article %d: %w", articleID, err)
	}
	return nil
}
