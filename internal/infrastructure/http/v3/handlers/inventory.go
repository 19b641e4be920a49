package handlers

import (
	"github.com/gin-gonic/gin"

	"inventory/internal/domain/stocktaking"
	"inventory/internal/infrastructure/http/v3/dto"
)

// InventoryHandler serves /inventory, the stocktaking session.
type InventoryHandler struct {
	*BaseHandler
	sessions *stocktaking.Service
}

// NewInventoryHandler creates an inventory handler.
func NewInventoryHandler(base *BaseHandler, sessions *stocktaking.Service) *InventoryHandler {
	return &InventoryHandler{BaseHandler: base, sessions: sessions}
}

// Status handles GET /inventory.
func (h *InventoryHandler) Status(c *gin.Context) {
	status, err := h.sessions.Status(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.InventoryStatusResponse{Status: status})
}

// Start handles PUT /inventory/start.
func (h *InventoryHandler) Start(c *gin.Context) {
	if err := h.sessions.Start(c.Request.Context()); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// Stop handles PUT /inventory/stop.
func (h *InventoryHandler) Stop(c *gin.Context) {
	if err := h.sessions.Stop(c.Request.Context()); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
