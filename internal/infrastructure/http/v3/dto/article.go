package dto

import (
	"github.com/shopspring/decimal"

	"inventory/internal/domain/article"
)

// InlineLot is a lot sent with an article.
type InlineLot struct {
	BestBefore *string `json:"best_before" binding:"required"`
	Stock      *int64  `json:"stock" binding:"required"`
	Timestamp  *int64  `json:"timestamp"`
}

func (l InlineLot) toInput() article.LotInput {
	return article.LotInput{BestBefore: *l.BestBefore, Stock: *l.Stock, Timestamp: l.Timestamp}
}

// ArticleRequest is the body of POST and PUT /articles. On update an
// absent lots field keeps the lots, a present one replaces them.
type ArticleRequest struct {
	Category  *int64       `json:"category" binding:"required"`
	Name      *string      `json:"name" binding:"required"`
	Size      *float64     `json:"size" binding:"required"`
	Unit      *string      `json:"unit" binding:"required"`
	GTINs     []string     `json:"gtins"`
	Timestamp *int64       `json:"timestamp"`
	Lots      *[]InlineLot `json:"lots" binding:"omitempty,dive"`
}

func (r *ArticleRequest) lotInputs() []article.LotInput {
	if r.Lots == nil {
		return nil
	}
	out := make([]article.LotInput, len(*r.Lots))
	for i, l := range *r.Lots {
		out[i] = l.toInput()
	}
	return out
}

// ToCreateInput converts the request for article creation.
func (r *ArticleRequest) ToCreateInput() article.CreateInput {
	return article.CreateInput{
		Category:  *r.Category,
		Name:      *r.Name,
		Size:      decimal.NewFromFloat(*r.Size),
		Unit:      *r.Unit,
		GTINs:     r.GTINs,
		Timestamp: r.Timestamp,
		Lots:      r.lotInputs(),
	}
}

// ToUpdateInput converts the request for an article update.
func (r *ArticleRequest) ToUpdateInput() article.UpdateInput {
	in := article.UpdateInput{
		Category:  *r.Category,
		Name:      *r.Name,
		Size:      decimal.NewFromFloat(*r.Size),
		Unit:      *r.Unit,
		GTINs:     r.GTINs,
		Timestamp: r.Timestamp,
	}
	if r.Lots != nil {
		lots := r.lotInputs()
		in.Lots = &lots
	}
	return in
}

// ResetRequest is the optional body of PUT /articles/:id/reset.
type ResetRequest struct {
	Timestamp *int64 `json:"timestamp"`
}

// ArticleResponse is the JSON form of an article with its lots.
type ArticleResponse struct {
	ID          int64         `json:"id"`
	Category    int64         `json:"category"`
	Name        string        `json:"name"`
	Size        float64       `json:"size"`
	Unit        string        `json:"unit"`
	GTINs       []string      `json:"gtins"`
	Inventoried int           `json:"inventoried"`
	Position    int64         `json:"position"`
	Timestamp   int64         `json:"timestamp"`
	Lots        []LotResponse `json:"lots"`
}

// FromArticle converts an article.
func FromArticle(a article.Article) ArticleResponse {
	gtins := a.GTINs
	if gtins == nil {
		gtins = []string{}
	}
	return ArticleResponse{
		ID:          a.ID,
		Category:    a.Category,
		Name:        a.Name,
		Size:        a.Size.InexactFloat64(),
		Unit:        a.Unit,
		GTINs:       gtins,
		Inventoried: int(a.Inventoried),
		Position:    a.Position,
		Timestamp:   a.Timestamp,
		Lots:        FromLots(a.Lots),
	}
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
