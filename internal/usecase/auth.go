package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/boklen/rentals/internal/domain/model"
)

// OTPChallenge tells the verification screen when it may offer a resend.
type OTPChallenge struct {
	Phone    string        `json:"phone"`
	Length   int           `json:"length"`
	ResendIn time.Duration `json:"-"`
}

// Registration is the sign-up form.
type Registration struct {
	Name  string
	Email string
	Phone string
}

// AuthUseCase backs the login and registration screens. There is no
// credential backend: inputs are format-checked and the flow proceeds.
type AuthUseCase struct {
	users *UserStore
	now   func() time.Time

	mu        sync.Mutex
	requested map[string]time.Time
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users *UserStore) *AuthUseCase {
	return &AuthUseCase{users: users, now: time.Now, requested: make(map[string]time.Time)}
}

// RequestOTP validates the phone and starts the resend countdown. Asking
// again before the countdown ends returns the remaining wait.
func (u *AuthUseCase) RequestOTP(ctx context.Context, phone string) (OTPChallenge, error) {
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return OTPChallenge{}, err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	now := u.now()
	if at, ok := u.requested[normalized]; ok {
		if remaining := OTPResendCooldown - now.Sub(at); remaining > 0 {
			return OTPChallenge{Phone: normalized, Length: OTPLength, ResendIn: remaining}, nil
		}
	}
	u.requested[normalized] = now
	return OTPChallenge{Phone: normalized, Length: OTPLength, ResendIn: OTPResendCooldown}, nil
}

// VerifyOTP checks the code format only.
func (u *AuthUseCase) VerifyOTP(ctx context.Context, phone, code string) (string, error) {
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return "", err
	}
	if err := ValidateOTP(code); err != nil {
		return "", err
	}

	u.mu.Lock()
	delete(u.requested, normalized)
	u.mu.Unlock()
	return normalized, nil
}

// Register validates the form and stores it as the device profile.
func (u *AuthUseCase) Register(ctx context.Context, reg Registration) (model.UserProfile, error) {
	phone, err := NormalizePhone(reg.Phone)
	if err != nil {
		return model.UserProfile{}, err
	}
	patch := model.ProfilePatch{Name: &reg.Name, Email: &reg.Email, Phone: &phone}
	if err := ValidateProfile(patch); err != nil {
		return model.UserProfile{}, err
	}
	u.users.SaveUserData(ctx, patch)
	return u.users.Profile(), nil
}
