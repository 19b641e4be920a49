package handlers

import (
	"github.com/gin-gonic/gin"

	"inventory/internal/domain/gtin"
	"inventory/internal/infrastructure/http/v3/dto"
)

// GTINHandler serves /gtin.
type GTINHandler struct {
	*BaseHandler
	lookup *gtin.Service
}

// NewGTINHandler creates a barcode lookup handler.
func NewGTINHandler(base *BaseHandler, lookup *gtin.Service) *GTINHandler {
	return &GTINHandler{BaseHandler: base, lookup: lookup}
}

// Lookup handles GET /gtin/:gtin. Failures of the external database are
// part of the 200 response.
func (h *GTINHandler) Lookup(c *gin.Context) {
	var path dto.GTINPath
	if !h.BindURI(c, &path) {
		return
	}
	result, err := h.lookup.Lookup(c.Request.Context(), path.GTIN)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromGTINResult(result))
}
