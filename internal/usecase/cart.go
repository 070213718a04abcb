package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/boklen/rentals/internal/domain/model"
	"github.com/boklen/rentals/internal/domain/repository"
	"github.com/boklen/rentals/internal/metrics"
)

// CartStore holds the working cart, the order history and saved addresses.
// The in-memory state is authoritative; every mutation persists all three
// collections in one batch and persistence failures are only logged.
type CartStore struct {
	mu        sync.RWMutex
	items     []model.CartItem
	orders    []model.Order
	addresses []model.Address

	persist persistence
	now     func() time.Time
	newID   func() string
}

// NewCartStore constructs an empty CartStore. Call Load to hydrate it.
func NewCartStore(kv repository.KeyValueStore, writer repository.SnapshotWriter, logger *slog.Logger, m *metrics.Metrics) *CartStore {
	return &CartStore{
		items:     []model.CartItem{},
		orders:    []model.Order{},
		addresses: []model.Address{},
		persist:   newPersistence("cart", kv, writer, logger, m),
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Load hydrates the store from persisted state. Legacy values are rewritten
// in the current format, unreadable ones are quarantined and reset.
func (s *CartStore) Load(ctx context.Context) error {
	var (
		items     []model.CartItem
		orders    []model.Order
		addresses []model.Address
	)
	results := []loadResult{
		s.persist.load(ctx, repository.KeyCartItems, &items),
		s.persist.load(ctx, repository.KeyOrders, &orders),
		s.persist.load(ctx, repository.KeyAddresses, &addresses),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nonNil(items)
	s.orders = nonNil(orders)
	s.addresses = nonNil(addresses)

	for _, r := range results {
		if r == loadLegacy || r == loadQuarantined {
			_ = s.saveLocked(ctx, "migrate")
			break
		}
	}
	return ctx.Err()
}

// AddToCart appends item under a freshly generated cartId and returns the
// stored line. Items are never merged, adding the same machine twice yields
// two lines.
func (s *CartStore) AddToCart(ctx context.Context, item model.CartItem) model.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.CartID = s.newID()
	s.items = append(s.items, item)
	_ = s.saveLocked(ctx, "add_to_cart")
	return item
}

// RemoveFromCart drops the line with cartID. Absent ids are ignored.
func (s *CartStore) RemoveFromCart(ctx context.Context, cartID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]model.CartItem, 0, len(s.items))
	for _, it := range s.items {
		if it.CartID != cartID {
			kept = append(kept, it)
		}
	}
	s.items = kept
	_ = s.saveLocked(ctx, "remove_from_cart")
}

// UpdateCartItem merges patch into the line with cartID and reports whether
// the line exists. Nothing is written when it does not.
func (s *CartStore) UpdateCartItem(ctx context.Context, cartID string, patch model.CartItemPatch) (model.CartItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, it := range s.items {
		if it.CartID != cartID {
			continue
		}
		updated := patch.Apply(it)
		updated.CartID = cartID
		s.items[i] = updated
		_ = s.saveLocked(ctx, "update_cart_item")
		return updated, true
	}
	return model.CartItem{}, false
}

// ClearCart empties the cart.
func (s *CartStore) ClearCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = []model.CartItem{}
	_ = s.saveLocked(ctx, "clear_cart")
}

// AddOrder records a new order at the head of the history. The cart is left
// untouched; callers that check out clear it explicitly.
func (s *CartStore) AddOrder(ctx context.Context, draft model.OrderDraft) model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := draft.Status
	if status == "" {
		status = model.OrderStatusUnderProcessing
	}
	order := model.Order{
		ID:         s.newID(),
		Date:       s.now().UTC(),
		Items:      copyItems(draft.Items),
		Status:     status,
		TotalPrice: draft.TotalPrice,
		Provider:   draft.Provider,
	}

	s.orders = append([]model.Order{order}, s.orders...)
	if err := s.saveLocked(ctx, "add_order"); err == nil {
		s.persist.flushSoon()
	}
	return cloneOrder(order)
}

// AddAddress saves a new address. Duplicates are allowed.
func (s *CartStore) AddAddress(ctx context.Context, fields model.AddressFields) model.Address {
	s.mu.Lock()
	defer s.mu.Unlock()

	addr := buildAddress(s.newID(), fields)
	s.addresses = append(s.addresses, addr)
	_ = s.saveLocked(ctx, "add_address")
	return addr
}

// UpdateAddress replaces the fields of the address with id.
func (s *CartStore) UpdateAddress(ctx context.Context, id string, fields model.AddressFields) (model.Address, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, a := range s.addresses {
		if a.ID != id {
			continue
		}
		s.addresses[i] = buildAddress(id, fields)
		_ = s.saveLocked(ctx, "update_address")
		return s.addresses[i], true
	}
	return model.Address{}, false
}

// CartItems returns a copy of the cart.
func (s *CartStore) CartItems() []model.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyItems(s.items)
}

// CartItem returns the line with cartID.
func (s *CartStore) CartItem(cartID string) (model.CartItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.items {
		if it.CartID == cartID {
			return it, true
		}
	}
	return model.CartItem{}, false
}

// CartTotal sums the stored line prices.
func (s *CartStore) CartTotal() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total float64
	for _, it := range s.items {
		total += it.Price
	}
	return total
}

// Orders returns the order history, newest first.
func (s *CartStore) Orders() []model.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Order, len(s.orders))
	for i, o := range s.orders {
		out[i] = cloneOrder(o)
	}
	return out
}

// Addresses returns a copy of the saved addresses.
func (s *CartStore) Addresses() []model.Address {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Address{}, s.addresses...)
}

func (s *CartStore) saveLocked(ctx context.Context, op string) error {
	return s.persist.save(ctx, op,
		value{key: repository.KeyCartItems, v: s.items},
		value{key: repository.KeyOrders, v: s.orders},
		value{key: repository.KeyAddresses, v: s.addresses},
	)
}

func buildAddress(id string, fields model.AddressFields) model.Address {
	return model.Address{
		ID:       id,
		Title:    fields.Type.Title(),
		City:     fields.City,
		District: fields.District,
		Type:     fields.Type,
		Address:  fields.Compose(),
	}
}

func copyItems(items []model.CartItem) []model.CartItem {
	if items == nil {
		return nil
	}
	return append([]model.CartItem{}, items...)
}

func cloneOrder(o model.Order) model.Order {
	o.Items = copyItems(o.Items)
	return o
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
