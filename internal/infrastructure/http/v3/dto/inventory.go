package dto

import (
	"inventory/internal/domain/gtin"
	"inventory/internal/domain/stocktaking"
)

// InventoryStatusResponse is the body of GET /inventory.
type InventoryStatusResponse struct {
	Status stocktaking.Status `json:"status"`
}

// GTINPath is the path of GET /gtin/:gtin.
type GTINPath struct {
	GTIN string `uri:"gtin" binding:"required,gtin"`
}

// GTINResponse is the body of GET /gtin/:gtin. Only the fields of the
// result type are present.
type GTINResponse struct {
	Type      gtin.ResultType `json:"type"`
	ArticleID *int64          `json:"articleId,omitempty"`
	Name      *string         `json:"name,omitempty"`
	Quantity  *string         `json:"quantity,omitempty"`
	Error     *string         `json:"error,omitempty"`
}

// FromGTINResult converts a lookup result.
func FromGTINResult(r gtin.Result) GTINResponse {
	out := GTINResponse{Type: r.Type}
	switch r.Type {
	case gtin.TypeExisting:
		out.ArticleID = &r.ArticleID
	case gtin.TypeFound:
		out.Name = &r.Name
		out.Quantity = &r.Quantity
	case gtin.TypeError:
		out.Error = &r.Error
	}
	return out
}
