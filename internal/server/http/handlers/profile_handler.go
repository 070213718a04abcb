package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/boklen/rentals/internal/domain/model"
	"github.com/boklen/rentals/internal/server/http/dto"
)

// ProfileHandler serves the profile, location and preference screens.
type ProfileHandler struct {
	facade UserFacade
}

// NewProfileHandler constructs ProfileHandler.
func NewProfileHandler(facade UserFacade) *ProfileHandler {
	return &ProfileHandler{facade: facade}
}

// Get handles GET /api/profile.
func (h *ProfileHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewProfileResponse(h.facade.Profile()))
}

// Update handles PATCH /api/profile.
func (h *ProfileHandler) Update(c *gin.Context) {
	var patch model.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}

	profile, saved, err := h.facade.SaveProfile(c.Request.Context(), patch)
	if err != nil {
		writeError(c, err)
		return
	}
	resp := dto.NewProfileResponse(profile)
	resp.Saved = &saved
	c.JSON(http.StatusOK, resp)
}

// UpdatePassword handles PUT /api/profile/password. A wrong current
// password is reported in the body, not as an HTTP error.
func (h *ProfileHandler) UpdatePassword(c *gin.Context) {
	var req dto.PasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, h.facade.UpdatePassword(c.Request.Context(), req.OldPassword, req.NewPassword))
}

// Location handles GET /api/location.
func (h *ProfileHandler) Location(c *gin.Context) {
	c.JSON(http.StatusOK, dto.LocationResponse{Location: h.facade.Location()})
}

// SetLocation handles PUT /api/location.
func (h *ProfileHandler) SetLocation(c *gin.Context) {
	var req dto.LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.facade.SetLocation(c.Request.Context(), req.Location)
	c.JSON(http.StatusOK, dto.LocationResponse{Location: h.facade.Location()})
}

// Locations handles GET /api/locations.
func (h *ProfileHandler) Locations(c *gin.Context) {
	c.JSON(http.StatusOK, dto.LocationsResponse{
		Locations: h.facade.Locations(),
		Selected:  h.facade.Location(),
	})
}

// Preferences handles GET /api/preferences.
func (h *ProfileHandler) Preferences(c *gin.Context) {
	c.JSON(http.StatusOK, h.facade.Preferences())
}

// UpdatePreferences handles PATCH /api/preferences.
func (h *ProfileHandler) UpdatePreferences(c *gin.Context) {
	var patch model.PreferencesPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, h.facade.UpdatePreferences(c.Request.Context(), patch))
}
