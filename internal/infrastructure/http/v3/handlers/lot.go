package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"inventory/internal/core/id"
	"inventory/internal/domain/lot"
	"inventory/internal/domain/position"
	"inventory/internal/infrastructure/http/v3/dto"
)

// LotHandler serves /lots.
type LotHandler struct {
	*BaseHandler
	lots *lot.Service
}

// NewLotHandler creates a lot handler.
func NewLotHandler(base *BaseHandler, lots *lot.Service) *LotHandler {
	return &LotHandler{BaseHandler: base, lots: lots}
}

// Create handles POST /lots.
func (h *LotHandler) Create(c *gin.Context) {
	var req dto.CreateLotRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if _, err := h.lots.Create(c.Request.Context(), req.ToInput()); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// Update handles PUT /lots/:id.
func (h *LotHandler) Update(c *gin.Context) {
	lotID, ok := h.ParseID(c)
	if !ok {
		return
	}
	var req dto.UpdateLotRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if _, err := h.lots.Update(c.Request.Context(), lotID, req.ToInput()); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// Increment handles PUT /lots/:id/increment.
func (h *LotHandler) Increment(c *gin.Context) {
	h.adjust(c, h.lots.Increment)
}

// Decrement handles PUT /lots/:id/decrement.
func (h *LotHandler) Decrement(c *gin.Context) {
	h.adjust(c, h.lots.Decrement)
}

func (h *LotHandler) adjust(c *gin.Context, op func(ctx context.Context, lotID id.ID) (lot.Lot, error)) {
	lotID, ok := h.ParseID(c)
	if !ok {
		return
	}
	l, err := op(c.Request.Context(), lotID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromLot(l))
}

// MoveUp handles PUT /lots/:id/move-up.
func (h *LotHandler) MoveUp(c *gin.Context) { h.move(c, position.Up) }

// MoveDown handles PUT /lots/:id/move-down.
func (h *LotHandler) MoveDown(c *gin.Context) { h.move(c, position.Down) }

func (h *LotHandler) move(c *gin.Context, dir position.Direction) {
	lotID, ok := h.ParseID(c)
	if !ok {
		return
	}
	pair, err := h.lots.Move(c.Request.Context(), lotID, dir)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.LotsResponse{Lots: dto.FromLots(pair)})
}
