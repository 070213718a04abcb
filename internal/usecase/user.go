package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	domainErrors "github.com/boklen/rentals/internal/domain/errors"
	"github.com/boklen/rentals/internal/domain/model"
	"github.com/boklen/rentals/internal/domain/repository"
	"github.com/boklen/rentals/internal/metrics"
	pkgAuth "github.com/boklen/rentals/internal/pkg/auth"
	"github.com/boklen/rentals/internal/schema"
)

// Demo identity a fresh install starts with.
const (
	DefaultUserName     = "Mohammed Al Saud"
	DefaultUserEmail    = "mohammed.alsaud@example.com"
	DefaultUserPhone    = "0501234567"
	DefaultUserPassword = "123456"
)

// User-facing password change messages.
const (
	MsgWrongPassword   = "كلمة المرور الحالية غير صحيحة"
	MsgEmptyPassword   = "يرجى إدخال كلمة مرور جديدة"
	MsgPasswordFailed  = "تعذر تحديث كلمة المرور، حاول مرة أخرى"
	MsgPasswordUpdated = "تم تحديث كلمة المرور بنجاح"
)

// DefaultPreferences are the notification toggles before the user changes any.
var DefaultPreferences = model.Preferences{AppNotifications: true, SMS: true, EmailOffers: false}

// UserStore holds the device profile, the selected location and the
// notification preferences.
type UserStore struct {
	mu       sync.RWMutex
	profile  model.UserProfile
	location string
	prefs    model.Preferences

	hasher  pkgAuth.PasswordHasher
	persist persistence
}

// NewUserStore constructs a UserStore populated with the demo profile.
func NewUserStore(kv repository.KeyValueStore, writer repository.SnapshotWriter, hasher pkgAuth.PasswordHasher, logger *slog.Logger, m *metrics.Metrics) *UserStore {
	s := &UserStore{
		location: model.DefaultLocation,
		prefs:    DefaultPreferences,
		hasher:   hasher,
		persist:  newPersistence("user", kv, writer, logger, m),
	}
	s.profile = s.defaultProfile()
	return s
}

func (s *UserStore) defaultProfile() model.UserProfile {
	profile := model.UserProfile{Name: DefaultUserName, Email: DefaultUserEmail, Phone: DefaultUserPhone}
	hash, err := s.hasher.Hash(DefaultUserPassword)
	if err != nil {
		s.persist.logger.Error("hash default password failed", slog.String("error", err.Error()))
		return profile
	}
	profile.PasswordHash = hash
	return profile
}

// storedProfile also accepts the plaintext password field older installs wrote.
type storedProfile struct {
	model.UserProfile
	Password string `json:"password,omitempty"`
}

// Load hydrates the store from persisted state.
func (s *UserStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stored storedProfile
	switch s.persist.load(ctx, repository.KeyUserProfile, &stored) {
	case loadCurrent:
		s.profile = stored.UserProfile
		if s.migratePasswordLocked(stored.Password) {
			_ = s.saveProfileLocked(ctx, "migrate")
		}
	case loadLegacy:
		s.profile = stored.UserProfile
		s.migratePasswordLocked(stored.Password)
		_ = s.saveProfileLocked(ctx, "migrate")
	case loadQuarantined:
		_ = s.saveProfileLocked(ctx, "reset")
	}

	s.loadLocationLocked(ctx)

	toggles := []struct {
		key string
		dst *bool
	}{
		{repository.KeyAppNotifications, &s.prefs.AppNotifications},
		{repository.KeySMS, &s.prefs.SMS},
		{repository.KeyEmailOffers, &s.prefs.EmailOffers},
	}
	for _, t := range toggles {
		var v bool
		switch s.persist.load(ctx, t.key, &v) {
		case loadCurrent:
			*t.dst = v
		case loadLegacy:
			*t.dst = v
			_ = s.persist.save(ctx, "migrate", value{key: t.key, v: v})
		case loadQuarantined:
			_ = s.persist.save(ctx, "reset", value{key: t.key, v: *t.dst})
		}
	}
	return ctx.Err()
}

// migratePasswordLocked turns a plaintext credential into a hash and reports
// whether the profile changed.
func (s *UserStore) migratePasswordLocked(legacy string) bool {
	plain := legacy
	if plain == "" && s.profile.PasswordHash != "" && !s.hasher.IsHash(s.profile.PasswordHash) {
		plain = s.profile.PasswordHash
	}
	if plain == "" {
		if s.profile.PasswordHash == "" {
			s.profile.PasswordHash = s.defaultProfile().PasswordHash
			return true
		}
		return false
	}

	hash, err := s.hasher.Hash(plain)
	if err != nil {
		s.persist.logger.Error("hash legacy password failed", slog.String("error", err.Error()))
		return false
	}
	s.profile.PasswordHash = hash
	return true
}

// loadLocationLocked reads the location. Older installs stored the bare city
// string instead of JSON, which is accepted as is.
func (s *UserStore) loadLocationLocked(ctx context.Context) {
	raw, err := s.persist.kv.Get(ctx, repository.KeyUserLocation)
	if err != nil {
		if !errors.Is(err, domainErrors.ErrNotFound) {
			s.persist.logger.Error("read state failed", slog.String("key", repository.KeyUserLocation), slog.String("error", err.Error()))
		}
		return
	}

	var loc string
	version, err := schema.Decode(raw, &loc)
	switch {
	case err == nil && version == schema.CurrentVersion:
		s.location = loc
		return
	case err == nil:
		s.location = loc
	case errors.Is(err, domainErrors.ErrCorruptValue) && len(raw) > 0 && !json.Valid(raw):
		s.location = string(raw)
	default:
		s.persist.quarantine(ctx, repository.KeyUserLocation, raw, err)
	}
	_ = s.persist.save(ctx, "migrate", value{key: repository.KeyUserLocation, v: s.location})
}

// Profile returns the current profile.
func (s *UserStore) Profile() model.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// SaveUserData merges patch into the profile and reports whether it was persisted.
func (s *UserStore) SaveUserData(ctx context.Context, patch model.ProfilePatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profile = patch.Apply(s.profile)
	return s.saveProfileLocked(ctx, "save_user_data") == nil
}

// UpdatePassword replaces the password when oldPassword matches the current one.
// The outcome is reported as data, it never fails with an error.
func (s *UserStore) UpdatePassword(ctx context.Context, oldPassword, newPassword string) model.PasswordResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.hasher.Compare(s.profile.PasswordHash, oldPassword); err != nil {
		return model.PasswordResult{Success: false, Message: MsgWrongPassword}
	}
	if newPassword == "" {
		return model.PasswordResult{Success: false, Message: MsgEmptyPassword}
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		s.persist.logger.Error("hash password failed", slog.String("error", err.Error()))
		return model.PasswordResult{Success: false, Message: MsgPasswordFailed}
	}
	s.profile.PasswordHash = hash
	_ = s.saveProfileLocked(ctx, "update_password")
	return model.PasswordResult{Success: true, Message: MsgPasswordUpdated}
}

// CheckPassword reports whether password matches the stored credential.
func (s *UserStore) CheckPassword(password string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasher.Compare(s.profile.PasswordHash, password) == nil
}

// Location returns the selected service location.
func (s *UserStore) Location() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.location
}

// Locations returns the selectable service locations.
func (s *UserStore) Locations() []string {
	return append([]string{}, model.Locations...)
}

// UpdateUserLocation stores loc. Values outside Locations are accepted.
func (s *UserStore) UpdateUserLocation(ctx context.Context, loc string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.location = loc
	_ = s.persist.save(ctx, "update_location", value{key: repository.KeyUserLocation, v: loc})
}

// Preferences returns the notification toggles.
func (s *UserStore) Preferences() model.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

// UpdatePreferences applies the set toggles and persists the changed keys.
func (s *UserStore) UpdatePreferences(ctx context.Context, patch model.PreferencesPatch) model.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()

	var values []value
	if patch.AppNotifications != nil {
		s.prefs.AppNotifications = *patch.AppNotifications
		values = append(values, value{key: repository.KeyAppNotifications, v: s.prefs.AppNotifications})
	}
	if patch.SMS != nil {
		s.prefs.SMS = *patch.SMS
		values = append(values, value{key: repository.KeySMS, v: s.prefs.SMS})
	}
	if patch.EmailOffers != nil {
		s.prefs.EmailOffers = *patch.EmailOffers
		values = append(values, value{key: repository.KeyEmailOffers, v: s.prefs.EmailOffers})
	}
	if len(values) > 0 {
		_ = s.persist.save(ctx, "update_preferences", values...)
	}
	return s.prefs
}

func (s *UserStore) saveProfileLocked(ctx context.Context, op string) error {
	return s.persist.save(ctx, op, value{key: repository.KeyUserProfile, v: s.profile})
}
