package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/boklen/rentals/internal/server/http/dto"
)

// BookingHandler exposes the booking flow.
type BookingHandler struct {
	facade BookingFacade
}

// NewBookingHandler constructs BookingHandler.
func NewBookingHandler(facade BookingFacade) *BookingHandler {
	return &BookingHandler{facade: facade}
}

// State handles GET /api/booking.
func (h *BookingHandler) State(c *gin.Context) {
	c.JSON(http.StatusOK, h.facade.BookingState())
}

// Review handles POST /api/booking/review.
func (h *BookingHandler) Review(c *gin.Context) {
	snapshot, err := h.facade.ReviewBooking(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// FindProviders handles POST /api/booking/providers/search. The call
// blocks until the matcher answers or the client goes away.
func (h *BookingHandler) FindProviders(c *gin.Context) {
	snapshot, err := h.facade.FindProviders(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// SelectProvider handles POST /api/booking/providers/:id/select.
func (h *BookingHandler) SelectProvider(c *gin.Context) {
	snapshot, err := h.facade.SelectProvider(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// EditStartDate handles PATCH /api/booking/items/:cartId/start-date.
func (h *BookingHandler) EditStartDate(c *gin.Context) {
	var req dto.StartDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	item, err := h.facade.EditStartDate(c.Request.Context(), c.Param("cartId"), req.StartDate)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Confirm handles POST /api/booking/confirm.
func (h *BookingHandler) Confirm(c *gin.Context) {
	order, err := h.facade.ConfirmBooking(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// Reset handles POST /api/booking/reset.
func (h *BookingHandler) Reset(c *gin.Context) {
	c.JSON(http.StatusOK, h.facade.ResetBooking(c.Request.Context()))
}
