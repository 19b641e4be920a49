package article

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"inventory/internal/core/apperror"
	"inventory/internal/core/clock"
	"inventory/internal/core/id"
	"inventory/internal/core/revision"
	"inventory/internal/core/tx"
	"inventory/internal/domain/lot"
	"inventory/internal/domain/position"
	"inventory/pkg/logger"
)

// CategoryChecker reports whether a category exists.
type CategoryChecker interface {
	Exists(ctx context.Context, categoryID id.ID) (bool, error)
}

// SessionState reports whether a stocktaking session is running.
type SessionState interface {
	IsActive(ctx context.Context) (bool, error)
}

// LotInput is a lot given inline with an article.
type LotInput struct {
	BestBefore string
	Stock      int64
	Timestamp  *int64
}

// CreateInput holds the fields of a new article.
type CreateInput struct {
	Category  id.ID
	Name      string
	Size      decimal.Decimal
	Unit      string
	GTINs     []string
	Timestamp *int64
	Lots      []LotInput
}

// UpdateInput holds the writable fields of an article. A nil Lots leaves
// the lots untouched; a non-nil one replaces them.
type UpdateInput struct {
	Category  id.ID
	Name      string
	Size      decimal.Decimal
	Unit      string
	GTINs     []string
	Timestamp *int64
	Lots      *[]LotInput
}

// ResetInput optionally carries the client's timestamp.
type ResetInput struct {
	Timestamp *int64
}

// Service implements article operations.
type Service struct {
	repo       Repository
	lots       lot.Repository
	categories CategoryChecker
	sessions   SessionState
	positions  *position.Manager
	ids        id.Allocator
	txm        tx.Manager
	clock      clock.Clock
}

// NewService creates an article service.
func NewService(
	repo Repository,
	lots lot.Repository,
	categories CategoryChecker,
	sessions SessionState,
	positions *position.Manager,
	ids id.Allocator,
	txm tx.Manager,
	c clock.Clock,
) *Service {
	return &Service{
		repo:       repo,
		lots:       lots,
		categories: categories,
		sessions:   sessions,
		positions:  positions,
		ids:        ids,
		txm:        txm,
		clock:      c,
	}
}

// List returns all articles with their lots.
func (s *Service) List(ctx context.Context) ([]Article, error) {
	articles, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.attachLots(ctx, articles)
}

// ListByCategory returns the articles of a category with their lots.
func (s *Service) ListByCategory(ctx context.Context, categoryID id.ID) ([]Article, error) {
	ok, err := s.categories.Exists(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("check category: %w", err)
	}
	if !ok {
		return nil, apperror.NewNotFound("category", categoryID)
	}

	articles, err := s.repo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return s.attachLots(ctx, articles)
}

// Get returns a single article with its lots.
func (s *Service) Get(ctx context.Context, articleID id.ID) (Article, error) {
	a, err := s.repo.Get(ctx, articleID)
	if err != nil {
		return Article{}, err
	}
	withLots, err := s.attachLots(ctx, []Article{a})
	if err != nil {
		return Article{}, err
	}
	return withLots[0], nil
}

// Exists reports whether the article exists.
func (s *Service) Exists(ctx context.Context, articleID id.ID) (bool, error) {
	return s.repo.Exists(ctx, articleID)
}

// FindByGTIN returns the ids of up to limit articles listing gtin.
func (s *Service) FindByGTIN(ctx context.Context, gtin string, limit int) ([]id.ID, error) {
	return s.repo.FindByGTIN(ctx, gtin, limit)
}

// Create appends a new article to the end of its category. Inline lots are
// created with positions starting at 1 in the given order.
func (s *Service) Create(ctx context.Context, in CreateInput) (Article, error) {
	var created Article
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.requireCategory(ctx, in.Category); err != nil {
			return err
		}
		status, err := s.currentStatus(ctx)
		if err != nil {
			return err
		}

		scope := Scope(in.Category)
		if err := s.positions.Lock(ctx, scope); err != nil {
			return err
		}
		pos, err := s.positions.Next(ctx, scope)
		if err != nil {
			return err
		}
		articleID, err := s.ids.Next(ctx, id.KindArticle)
		if err != nil {
			return fmt.Errorf("allocate article id: %w", err)
		}

		created = Article{
			ID:          articleID,
			Category:    in.Category,
			Name:        in.Name,
			Size:        in.Size,
			Unit:        in.Unit,
			GTINs:       normalizeGTINs(in.GTINs),
			Inventoried: status,
			Position:    pos,
			Timestamp:   revision.Initial(in.Timestamp, clock.Unix(s.clock)),
		}
		if err := s.repo.Create(ctx, created); err != nil {
			return err
		}

		created.Lots, err = s.insertLots(ctx, articleID, in.Lots)
		return err
	})
	if err != nil {
		return Article{}, err
	}
	return created, nil
}

// Update overwrites the article unless the client's timestamp is older than
// the stored one; applied is false for such stale writes.
//
// Moving to another category appends the article there and closes the gap
// it leaves behind.
func (s *Service) Update(ctx context.Context, articleID id.ID, in UpdateInput) (applied bool, err error) {
	err = s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.getLocked(ctx, articleID, in.Category)
		if err != nil {
			return err
		}

		ts, ok := revision.Resolve(current.Timestamp, in.Timestamp, clock.Unix(s.clock))
		if !ok {
			logger.Debug(ctx, "stale article update ignored", "article_id", articleID, "stored", current.Timestamp)
			return nil
		}

		status, err := s.currentStatus(ctx)
		if err != nil {
			return err
		}

		oldCategory, oldPosition := current.Category, current.Position
		moved := in.Category != oldCategory
		if moved {
			if err := s.requireCategory(ctx, in.Category); err != nil {
				return err
			}
			current.Position, err = s.positions.Next(ctx, Scope(in.Category))
			if err != nil {
				return err
			}
		}

		current.Category = in.Category
		current.Name = in.Name
		current.Size = in.Size
		current.Unit = in.Unit
		current.GTINs = normalizeGTINs(in.GTINs)
		current.Inventoried = status
		current.Timestamp = ts
		if err := s.repo.Update(ctx, current); err != nil {
			return err
		}

		if moved {
			if err := s.positions.Detach(ctx, Scope(oldCategory), oldPosition); err != nil {
				return err
			}
		}

		if in.Lots != nil {
			if err := s.positions.Lock(ctx, lot.Scope(articleID)); err != nil {
				return err
			}
			if err := s.lots.DeleteByArticle(ctx, articleID); err != nil {
				return fmt.Errorf("delete lots: %w", err)
			}
			if _, err := s.insertLots(ctx, articleID, *in.Lots); err != nil {
				return err
			}
		}

		applied = true
		return nil
	})
	return applied, err
}

// Reset deletes all lots of the article and refreshes its status and
// timestamp. With a stale client timestamp nothing changes. The current
// article is returned in both cases.
func (s *Service) Reset(ctx context.Context, articleID id.ID, in ResetInput) (Article, error) {
	var result Article
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetForUpdate(ctx, articleID)
		if err != nil {
			return err
		}

		now := clock.Unix(s.clock)
		if _, ok := revision.Resolve(current.Timestamp, in.Timestamp, now); ok {
			status, err := s.currentStatus(ctx)
			if err != nil {
				return err
			}
			if err := s.positions.Lock(ctx, lot.Scope(articleID)); err != nil {
				return err
			}
			if err := s.lots.DeleteByArticle(ctx, articleID); err != nil {
				return fmt.Errorf("delete lots: %w", err)
			}
			current.Inventoried = status
			current.Timestamp = now
			if err := s.repo.Update(ctx, current); err != nil {
				return err
			}
		} else {
			logger.Debug(ctx, "stale article reset ignored", "article_id", articleID, "stored", current.Timestamp)
		}

		withLots, err := s.attachLots(ctx, []Article{current})
		if err != nil {
			return err
		}
		result = withLots[0]
		return nil
	})
	return result, err
}

// AdjustStock adds delta to the stock of the article as a whole: the first
// lot by position absorbs it, and an article without lots gets a new undated
// lot holding delta. Stock may become negative. The article's timestamp is
// refreshed.
func (s *Service) AdjustStock(ctx context.Context, articleID id.ID, delta int64) (Article, error) {
	var result Article
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetForUpdate(ctx, articleID)
		if err != nil {
			return err
		}
		if err := s.positions.Lock(ctx, lot.Scope(articleID)); err != nil {
			return err
		}

		existing, err := s.lots.ListByArticles(ctx, []id.ID{articleID})
		if err != nil {
			return fmt.Errorf("load lots: %w", err)
		}
		now := clock.Unix(s.clock)
		if len(existing) == 0 {
			if _, err := s.insertLots(ctx, articleID, []LotInput{{Stock: delta}}); err != nil {
				return err
			}
		} else if _, err := s.lots.AdjustStock(ctx, existing[0].ID, delta, now); err != nil {
			return err
		}

		current.Timestamp = now
		if err := s.repo.Update(ctx, current); err != nil {
			return err
		}
		withLots, err := s.attachLots(ctx, []Article{current})
		if err != nil {
			return err
		}
		result = withLots[0]
		return nil
	})
	return result, err
}

// Move swaps the article with its neighbor within the category and returns
// both articles with their lots, the moved one first.
func (s *Service) Move(ctx context.Context, articleID id.ID, dir position.Direction) ([]Article, error) {
	var result []Article
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.getLocked(ctx, articleID)
		if err != nil {
			return err
		}

		swapped, err := s.positions.Swap(ctx, Scope(current.Category), current.Slot(), dir)
		if errors.Is(err, position.ErrNoNeighbor) {
			return apperror.NewBadRequest(fmt.Sprintf("article cannot be moved %s", dir)).
				WithDetail("id", articleID)
		}
		if err != nil {
			return err
		}

		moved, err := s.repo.Get(ctx, swapped.Moved.ID)
		if err != nil {
			return err
		}
		displaced, err := s.repo.Get(ctx, swapped.Displaced.ID)
		if err != nil {
			return err
		}
		result, err = s.attachLots(ctx, []Article{moved, displaced})
		return err
	})
	return result, err
}

func (s *Service) requireCategory(ctx context.Context, categoryID id.ID) error {
	ok, err := s.categories.Exists(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("check category: %w", err)
	}
	if !ok {
		return apperror.NewValidation("category does not exist").WithDetail("category", categoryID)
	}
	return nil
}

func (s *Service) currentStatus(ctx context.Context) (Inventoried, error) {
	active, err := s.sessions.IsActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("check inventory session: %w", err)
	}
	return StatusFor(active), nil
}

// getLocked locks the category scope of the article, plus the scopes of
// extra categories, and only then the article row. Scope locks are always
// taken before row locks so concurrent moves cannot deadlock.
//
// The scope comes from an unlocked read. An article that changed category
// before its old scope was locked fails with a conflict.
func (s *Service) getLocked(ctx context.Context, articleID id.ID, extra ...id.ID) (Article, error) {
	seen, err := s.repo.Get(ctx, articleID)
	if err != nil {
		return Article{}, err
	}
	if err := s.lockScopes(ctx, append(extra, seen.Category)...); err != nil {
		return Article{}, err
	}

	current, err := s.repo.GetForUpdate(ctx, articleID)
	if err != nil {
		return Article{}, err
	}
	if current.Category != seen.Category {
		return Article{}, apperror.NewConflict("article was moved to another category concurrently").
			WithDetail("id", articleID)
	}
	return current, nil
}

// lockScopes locks category scopes in ascending id order, each once.
func (s *Service) lockScopes(ctx context.Context, categoryIDs ...id.ID) error {
	ordered := slices.Clone(categoryIDs)
	slices.Sort(ordered)
	for _, categoryID := range slices.Compact(ordered) {
		if err := s.positions.Lock(ctx, Scope(categoryID)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) insertLots(ctx context.Context, articleID id.ID, inputs []LotInput) ([]lot.Lot, error) {
	if len(inputs) == 0 {
		return []lot.Lot{}, nil
	}

	now := clock.Unix(s.clock)
	lots := make([]lot.Lot, 0, len(inputs))
	for i, in := range inputs {
		lotID, err := s.ids.Next(ctx, id.KindLot)
		if err != nil {
			return nil, fmt.Errorf("allocate lot id: %w", err)
		}
		lots = append(lots, lot.Lot{
			ID:         lotID,
			Article:    articleID,
			BestBefore: in.BestBefore,
			Stock:      in.Stock,
			Position:   int64(i + 1),
			Timestamp:  revision.Initial(in.Timestamp, now),
		})
	}

	if err := s.lots.Create(ctx, lots...); err != nil {
		return nil, fmt.Errorf("insert lots: %w", err)
	}
	return lots, nil
}

func (s *Service) attachLots(ctx context.Context, articles []Article) ([]Article, error) {
	if len(articles) == 0 {
		return articles, nil
	}

	ids := make([]id.ID, len(articles))
	for i, a := range articles {
		ids[i] = a.ID
	}
	lots, err := s.lots.ListByArticles(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load lots: %w", err)
	}

	byArticle := make(map[id.ID][]lot.Lot, len(articles))
	for _, l := range lots {
		byArticle[l.Article] = append(byArticle[l.Article], l)
	}
	for i := range articles {
		articles[i].Lots = byArticle[articles[i].ID]
		if articles[i].Lots == nil {
			articles[i].Lots = []lot.Lot{}
		}
		articles[i].GTINs = normalizeGTINs(articles[i].GTINs)
	}
	return articles, nil
}

func normalizeGTINs(gtins []string) []string {
	if gtins == nil {
		return []string{}
	}
	return gtins
}
