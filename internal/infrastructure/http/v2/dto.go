package v2

import (
	"github.com/shopspring/decimal"

	"inventory/internal/domain/article"
)

// ArticleRequest is the body of POST /articles. Stock and best-before
// describe the article as a whole.
type ArticleRequest struct {
	Category   *int64   `json:"category" binding:"required"`
	Name       *string  `json:"name" binding:"required"`
	Size       *float64 `json:"size" binding:"required"`
	Unit       *string  `json:"unit" binding:"required"`
	BestBefore string   `json:"best_before"`
	Stock      int64    `json:"stock"`
	Timestamp  *int64   `json:"timestamp"`
}

// ToCreateInput converts the request. A stock or best-before becomes the
// article's only lot.
func (r *ArticleRequest) ToCreateInput() article.CreateInput {
	in := article.CreateInput{
		Category:  *r.Category,
		Name:      *r.Name,
		Size:      decimal.NewFromFloat(*r.Size),
		Unit:      *r.Unit,
		Timestamp: r.Timestamp,
	}
	if r.Stock != 0 || r.BestBefore != "" {
		in.Lots = []article.LotInput{{BestBefore: r.BestBefore, Stock: r.Stock, Timestamp: r.Timestamp}}
	}
	return in
}

// ArticleResponse is an article flattened to a single stock figure.
type ArticleResponse struct {
	ID         int64   `json:"id"`
	Category   int64   `json:"category"`
	Name       string  `json:"name"`
	Size       float64 `json:"size"`
	Unit       string  `json:"unit"`
	BestBefore string  `json:"best_before"`
	Stock      int64   `json:"stock"`
	Position   int64   `json:"position"`
	Timestamp  int64   `json:"timestamp"`
}

// FromArticle sums the stock of all lots and reports the earliest
// best-before date among them.
func FromArticle(a article.Article) ArticleResponse {
	out := ArticleResponse{
		ID:        a.ID,
		Category:  a.Category,
		Name:      a.Name,
		Size:      a.Size.InexactFloat64(),
		Unit:      a.Unit,
		Position:  a.Position,
		Timestamp: a.Timestamp,
	}
	for _, l := range a.Lots {
		out.Stock += l.Stock
		if l.BestBefore != "" && (out.BestBefore == "" || l.BestBefore < out.BestBefore) {
			out.BestBefore = l.BestBefore
		}
	}
	return out
}

// ArticlesResponse wraps a list of articles.
type ArticlesResponse struct {
	Articles []ArticleResponse `json:"articles"`
}

// FromArticles converts a list of articles.
func FromArticles(list []article.Article) ArticlesResponse {
	out := make([]ArticleResponse, len(list))
	for i, a := range list {
		out[i] = FromArticle(a)
	}
	return ArticlesResponse{Articles: out}
}
