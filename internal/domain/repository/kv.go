package repository

import "context"

// Persisted keys of the device state.
const (
	KeyCartItems        = "cartItems"
	KeyOrders           = "myOrders"
	KeyAddresses        = "savedAddresses"
	KeyUserProfile      = "userProfile"
	KeyUserLocation     = "userLocation"
	KeyAppNotifications = "isAppNotificationsEnabled"
	KeySMS              = "isSmsEnabled"
	KeyEmailOffers      = "isEmailOffersEnabled"
)

// Entry is a single key/value pair to persist.
type Entry struct {
	Key   string
	Value []byte
}

// SnapshotWriter persists a batch of entries. Implementations apply the
// batch atomically or not at all.
type SnapshotWriter interface {
	SetMany(ctx context.Context, entries ...Entry) error
}

// KeyValueStore is the local storage that backs the state stores.
type KeyValueStore interface {
	SnapshotWriter
	// Get returns ErrNotFound when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, keys ...string) error
	Keys(ctx context.Context) ([]string, error)
	HealthCheck(ctx context.Context) error
}
