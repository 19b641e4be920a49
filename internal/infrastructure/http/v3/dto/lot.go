package dto

import (
	"inventory/internal/domain/lot"
)

// CreateLotRequest is the body of POST /lots.
type CreateLotRequest struct {
	Article    *int64  `json:"article" binding:"required"`
	BestBefore *string `json:"best_before" binding:"required"`
	Stock      *int64  `json:"stock" binding:"required"`
	Timestamp  *int64  `json:"timestamp"`
}

// ToInput converts the request.
func (r *CreateLotRequest) ToInput() lot.CreateInput {
	return lot.CreateInput{
		Article:    *r.Article,
		BestBefore: *r.BestBefore,
		Stock:      *r.Stock,
		Timestamp:  r.Timestamp,
	}
}

// UpdateLotRequest is the body of PUT /lots/:id. A lot stays with its
// article; an article field in the body is ignored.
type UpdateLotRequest struct {
	BestBefore *string `json:"best_before" binding:"required"`
	Stock      *int64  `json:"stock" binding:"required"`
	Timestamp  *int64  `json:"timestamp"`
}

// ToInput converts the request.
func (r *UpdateLotRequest) ToInput() lot.UpdateInput {
	return lot.UpdateInput{
		BestBefore: *r.BestBefore,
		Stock:      *r.Stock,
		Timestamp:  r.Timestamp,
	}
}

// LotResponse is the JSON form of a lot.
type LotResponse struct {
	ID         int64  `json:"id"`
	Article    int64  `json:"article"`
	BestBefore string `json:"best_before"`
	Stock      int64  `json:"stock"`
	Position   int64  `json:"position"`
	Timestamp  int64  `json:"timestamp"`
}

// FromLot converts a lot.
func FromLot(l lot.Lot) LotResponse {
	return LotResponse{
		ID:         l.ID,
		Article:    l.Article,
		BestBefore: l.BestBefore,
		Stock:      l.Stock,
		Position:   l.Position,
		Timestamp:  l.Timestamp,
	}
}

// LotsResponse wraps a list of lots.
type LotsResponse struct {
	Lots []LotResponse `json:"lots"`
}

// FromLots converts a list of lots. The result is never nil.
func FromLots(list []lot.Lot) []LotResponse {
	out := make([]LotResponse, len(list))
	for i, l := range list {
		out[i] = FromLot(l)
	}
	return out
}
