package model

// UserProfile is the single device owner's profile.
type UserProfile struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	PasswordHash string `json:"passwordHash"`
}

// ProfilePatch lists profile fields that SaveUserData may overwrite.
type ProfilePatch struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// Apply merges the patch into profile and returns the result.
func (p ProfilePatch) Apply(profile UserProfile) UserProfile {
	if p.Name != nil {
		profile.Name = *p.Name
	}
	if p.Email != nil {
		profile.Email = *p.Email
	}
	if p.Phone != nil {
		profile.Phone = *p.Phone
	}
	return profile
}

// PasswordResult reports the outcome of a password change to the caller.
type PasswordResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Preferences holds the notification toggles.
type Preferences struct {
	AppNotifications bool `json:"isAppNotificationsEnabled"`
	SMS              bool `json:"isSmsEnabled"`
	EmailOffers      bool `json:"isEmailOffersEnabled"`
}

// PreferencesPatch toggles individual notification channels.
type PreferencesPatch struct {
	AppNotifications *bool `json:"isAppNotificationsEnabled,omitempty"`
	SMS              *bool `json:"isSmsEnabled,omitempty"`
	EmailOffers      *bool `json:"isEmailOffersEnabled,omitempty"`
}
