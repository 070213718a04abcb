package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/boklen/rentals/internal/domain/model"
	"github.com/boklen/rentals/internal/server/http/dto"
	"github.com/boklen/rentals/internal/usecase"
)

// CartHandler manages cart endpoints and the machine catalog.
type CartHandler struct {
	facade CartFacade
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(facade CartFacade) *CartHandler {
	return &CartHandler{facade: facade}
}

// List handles GET /api/cart.
func (h *CartHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, dto.CartResponse{
		Items: h.facade.CartItems(),
		Total: h.facade.CartTotal(),
	})
}

// Add handles POST /api/cart.
func (h *CartHandler) Add(c *gin.Context) {
	var req dto.CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	item, err := h.facade.AddToCart(c.Request.Context(), req.ToModel())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Configure handles POST /api/cart/configure.
func (h *CartHandler) Configure(c *gin.Context) {
	var req dto.ConfigureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	item, err := h.facade.ConfigureItem(c.Request.Context(), usecase.ConfigureRequest{
		MachineID:  req.MachineID,
		RentalType: req.RentalType,
		WithDriver: req.WithDriver,
		Quantity:   req.Quantity,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Notes:      req.Notes,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Update handles PATCH /api/cart/:cartId.
func (h *CartHandler) Update(c *gin.Context) {
	var patch model.CartItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}

	item, err := h.facade.UpdateCartItem(c.Request.Context(), c.Param("cartId"), patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Remove handles DELETE /api/cart/:cartId. Unknown ids are not an error.
func (h *CartHandler) Remove(c *gin.Context) {
	h.facade.RemoveFromCart(c.Request.Context(), c.Param("cartId"))
	c.Status(http.StatusNoContent)
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(c *gin.Context) {
	h.facade.ClearCart(c.Request.Context())
	c.Status(http.StatusNoContent)
}

// Machines handles GET /api/machines.
func (h *CartHandler) Machines(c *gin.Context) {
	c.JSON(http.StatusOK, h.facade.Machines())
}
