package dto

import "github.com/boklen/rentals/internal/domain/model"

// ProfileResponse is the profile without its credential.
type ProfileResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Saved *bool  `json:"saved,omitempty"`
}

// NewProfileResponse strips the password hash from profile.
func NewProfileResponse(profile model.UserProfile) ProfileResponse {
	return ProfileResponse{Name: profile.Name, Email: profile.Email, Phone: profile.Phone}
}

// PasswordRequest changes the password.
type PasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// LocationRequest selects the service location.
type LocationRequest struct {
	Location string `json:"location" binding:"required"`
}

// LocationResponse reports the selected location.
type LocationResponse struct {
	Location string `json:"location"`
}

// LocationsResponse lists selectable locations and the current one.
type LocationsResponse struct {
	Locations []string `json:"locations"`
	Selected  string   `json:"selected"`
}
