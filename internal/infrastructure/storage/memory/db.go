// Package memory provides an in-process storage backend. It backs tests and
// single-user setups that run without a database server.
package memory

import (
	"context"
	"slices"
	"sync"

	"inventory/internal/core/id"
	"inventory/internal/core/tx"
	"inventory/internal/domain/article"
	"inventory/internal/domain/auth"
	"inventory/internal/domain/category"
	"inventory/internal/domain/lot"
	"inventory/internal/domain/stocktaking"
)

// DB holds all records.
type DB struct {
	// txMu serializes transactions.
	txMu sync.Mutex
	// mu guards the maps below.
	mu sync.RWMutex

	categories map[id.ID]category.Category
	articles   map[id.ID]article.Article
	lots       map[id.ID]lot.Lot
	sessions   []stocktaking.Session
	tokens     []auth.Token
	counters   map[id.Kind]int64
}

// New creates an empty database.
func New() *DB {
	return &DB{
		categories: make(map[id.ID]category.Category),
		articles:   make(map[id.ID]article.Article),
		lots:       make(map[id.ID]lot.Lot),
		counters:   make(map[id.Kind]int64),
	}
}

// Ping always succeeds.
func (db *DB) Ping(context.Context) error { return nil }

type snapshot struct {
	categories map[id.ID]category.Category
	articles   map[id.ID]article.Article
	lots       map[id.ID]lot.Lot
	sessions   []stocktaking.Session
	tokens     []auth.Token
	counters   map[id.Kind]int64
}

func (db *DB) snapshot() snapshot {
	db.mu.RLock()
	defer db.mu.RUnlock()

	articles := make(map[id.ID]article.Article, len(db.articles))
	for k, a := range db.articles {
		articles[k] = cloneArticle(a)
	}
	return snapshot{
		categories: cloneMap(db.categories),
		articles:   articles,
		lots:       cloneMap(db.lots),
		sessions:   slices.Clone(db.sessions),
		tokens:     slices.Clone(db.tokens),
		counters:   cloneMap(db.counters),
	}
}

func (db *DB) restore(s snapshot) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.categories = s.categories
	db.articles = s.articles
	db.lots = s.lots
	db.sessions = s.sessions
	db.tokens = s.tokens
	db.counters = s.counters
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneArticle(a article.Article) article.Article {
	a.GTINs = slices.Clone(a.GTINs)
	a.Lots = nil
	return a
}

// Compile-time check that TxManager implements tx.Manager interface.
var _ tx.Manager = (*TxManager)(nil)

type txKey struct{}

// TxManager runs transactions one at a time and rolls back by restoring a
// snapshot taken at BEGIN.
type TxManager struct {
	db *DB
}

// NewTxManager creates a transaction manager for db.
func NewTxManager(db *DB) *TxManager {
	return &TxManager{db: db}
}

// RunInTransaction executes fn within a transaction.
// Nested calls reuse the existing transaction from context.
func (m *TxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	m.db.txMu.Lock()
	defer m.db.txMu.Unlock()

	before := m.db.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, struct{}{})); err != nil {
		m.db.restore(before)
		return err
	}
	return nil
}

// Sequence allocates identifiers from per-kind counters.
type Sequence struct {
	db *DB
}

// NewSequence creates an identifier allocator.
func NewSequence(db *DB) *Sequence {
	return &Sequence{db: db}
}

// Next returns the next identifier of kind.
func (s *Sequence) Next(_ context.Context, kind id.Kind) (id.ID, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.counters[kind]++
	return s.db.counters[kind], nil
}
