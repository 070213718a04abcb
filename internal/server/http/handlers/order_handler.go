package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/boklen/rentals/internal/domain/model"
)

// OrderHandler manages order history and saved addresses.
type OrderHandler struct {
	facade CartFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade CartFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// List handles GET /api/orders. Newest orders come first.
func (h *OrderHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.facade.Orders())
}

// Place handles POST /api/orders.
func (h *OrderHandler) Place(c *gin.Context) {
	var draft model.OrderDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.facade.PlaceOrder(c.Request.Context(), draft))
}

// Addresses handles GET /api/addresses.
func (h *OrderHandler) Addresses(c *gin.Context) {
	c.JSON(http.StatusOK, h.facade.Addresses())
}

// AddAddress handles POST /api/addresses.
func (h *OrderHandler) AddAddress(c *gin.Context) {
	var fields model.AddressFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		badRequest(c, err)
		return
	}

	addr, err := h.facade.AddAddress(c.Request.Context(), fields)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, addr)
}

// UpdateAddress handles PUT /api/addresses/:id.
func (h *OrderHandler) UpdateAddress(c *gin.Context) {
	var fields model.AddressFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		badRequest(c, err)
		return
	}

	addr, err := h.facade.UpdateAddress(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, addr)
}
