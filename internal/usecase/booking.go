package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	domainErrors "github.com/boklen/rentals/internal/domain/errors"
	"github.com/boklen/rentals/internal/domain/model"
)

// BookingState is a step of the booking flow.
type BookingState string

const (
	StateSelectingMachines   BookingState = "SelectingMachines"
	StateReviewingRequest    BookingState = "ReviewingRequest"
	StateFindingProviders    BookingState = "FindingProviders"
	StateMatchingProviders   BookingState = "MatchingProviders"
	StateOrderSummary        BookingState = "OrderSummary"
	StateBookingConfirmation BookingState = "BookingConfirmation"
)

// dateLayout is the ISO calendar date used for start and end dates.
const dateLayout = "2006-01-02"

// MatchRequest describes what a provider search is for.
type MatchRequest struct {
	Location string
	Items    []model.CartItem
}

// ProviderMatcher finds rental companies able to serve a request.
type ProviderMatcher interface {
	Match(ctx context.Context, req MatchRequest) ([]model.Provider, error)
}

// BookingSnapshot is a read-only view of the flow.
type BookingSnapshot struct {
	State     BookingState     `json:"state"`
	Providers []model.Provider `json:"providers,omitempty"`
	Provider  *model.Provider  `json:"provider,omitempty"`
	Order     *model.Order     `json:"order,omitempty"`
	Total     float64          `json:"total"`
}

// BookingFlow orchestrates one booking session over the cart. It owns no
// persisted state; a restart begins again at SelectingMachines.
type BookingFlow struct {
	mu        sync.Mutex
	state     BookingState
	providers []model.Provider
	selected  *model.Provider
	order     *model.Order
	// bumped by Reset so searches started earlier cannot land
	generation uint64

	cart    *CartStore
	user    *UserStore
	matcher ProviderMatcher
	logger  *slog.Logger
}

// NewBookingFlow constructs a flow at SelectingMachines.
func NewBookingFlow(cart *CartStore, user *UserStore, matcher ProviderMatcher, logger *slog.Logger) *BookingFlow {
	return &BookingFlow{
		state:   StateSelectingMachines,
		cart:    cart,
		user:    user,
		matcher: matcher,
		logger:  logger.With(slog.String("component", "booking")),
	}
}

// State returns the current step and its data.
func (f *BookingFlow) State() BookingSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

// Review moves to the request review step. It is also the way back from
// later steps and the start of a new booking after a confirmation.
func (f *BookingFlow) Review(ctx context.Context) (BookingSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.state {
	case StateFindingProviders:
		return f.snapshotLocked(), f.transitionError(StateReviewingRequest)
	case StateBookingConfirmation:
		f.clearLocked()
		f.moveLocked(StateSelectingMachines)
	case StateMatchingProviders, StateOrderSummary:
		f.providers = nil
		f.selected = nil
	}
	if len(f.cart.CartItems()) == 0 {
		return f.snapshotLocked(), domainErrors.ErrEmptyCart
	}
	f.moveLocked(StateReviewingRequest)
	return f.snapshotLocked(), nil
}

// FindProviders runs the matcher for the current cart. The lock is not held
// while waiting, so State keeps answering with FindingProviders. Cancelling
// ctx abandons the search and returns to ReviewingRequest.
func (f *BookingFlow) FindProviders(ctx context.Context) (BookingSnapshot, error) {
	f.mu.Lock()
	if f.state != StateReviewingRequest && f.state != StateMatchingProviders {
		defer f.mu.Unlock()
		return f.snapshotLocked(), f.transitionError(StateFindingProviders)
	}
	items := f.cart.CartItems()
	if len(items) == 0 {
		defer f.mu.Unlock()
		return f.snapshotLocked(), domainErrors.ErrEmptyCart
	}
	f.providers = nil
	f.selected = nil
	f.moveLocked(StateFindingProviders)
	generation := f.generation
	req := MatchRequest{Location: f.user.Location(), Items: items}
	f.mu.Unlock()

	started := time.Now()
	providers, err := f.matcher.Match(ctx, req)

	f.mu.Lock()
	defer f.mu.Unlock()

	if generation != f.generation {
		return f.snapshotLocked(), fmt.Errorf("search superseded: %w", domainErrors.ErrInvalidTransition)
	}
	if err == nil && len(providers) == 0 {
		err = domainErrors.ErrNoProviders
	}
	if err != nil {
		f.logger.Warn("provider search failed", slog.String("error", err.Error()))
		f.moveLocked(StateReviewingRequest)
		return f.snapshotLocked(), err
	}

	f.logger.Info("providers found", slog.Int("count", len(providers)), slog.Duration("elapsed", time.Since(started)))
	f.providers = append([]model.Provider{}, providers...)
	f.moveLocked(StateMatchingProviders)
	return f.snapshotLocked(), nil
}

// SelectProvider picks one of the matched providers.
func (f *BookingFlow) SelectProvider(providerID string) (BookingSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateMatchingProviders && f.state != StateOrderSummary {
		return f.snapshotLocked(), f.transitionError(StateOrderSummary)
	}
	for _, p := range f.providers {
		if p.ID == providerID {
			selected := p
			f.selected = &selected
			f.moveLocked(StateOrderSummary)
			return f.snapshotLocked(), nil
		}
	}
	return f.snapshotLocked(), fmt.Errorf("provider %q: %w", providerID, domainErrors.ErrUnknownProvider)
}

// EditStartDate changes the start date of one cart line from the summary
// or review step. Only startDate is touched.
func (f *BookingFlow) EditStartDate(ctx context.Context, cartID, date string) (model.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateOrderSummary && f.state != StateReviewingRequest {
		return model.CartItem{}, f.transitionError(StateOrderSummary)
	}
	current, ok := f.cart.CartItem(cartID)
	if !ok {
		return model.CartItem{}, fmt.Errorf("cart item %q: %w", cartID, domainErrors.ErrNotFound)
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return model.CartItem{}, fmt.Errorf("%w: %q", domainErrors.ErrInvalidDate, date)
	}
	if current.StartDate == date {
		return current, nil
	}
	item, ok := f.cart.UpdateCartItem(ctx, cartID, model.CartItemPatch{StartDate: &date})
	if !ok {
		return model.CartItem{}, fmt.Errorf("cart item %q: %w", cartID, domainErrors.ErrNotFound)
	}
	return item, nil
}

// Confirm places the order with the selected provider and clears the cart.
func (f *BookingFlow) Confirm(ctx context.Context) (model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateOrderSummary || f.selected == nil {
		return model.Order{}, f.transitionError(StateBookingConfirmation)
	}
	items := f.cart.CartItems()
	if len(items) == 0 {
		return model.Order{}, domainErrors.ErrEmptyCart
	}

	order := f.cart.AddOrder(ctx, model.OrderDraft{
		Items:      items,
		Status:     model.OrderStatusUnderProcessing,
		TotalPrice: f.cart.CartTotal(),
		Provider:   f.selected.Name,
	})
	f.cart.ClearCart(ctx)

	f.order = &order
	f.moveLocked(StateBookingConfirmation)
	f.logger.Info("booking confirmed", slog.String("order", order.ID), slog.String("provider", order.Provider))
	return order, nil
}

// Reset abandons the session and returns to SelectingMachines. The cart is kept.
func (f *BookingFlow) Reset() BookingSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.generation++
	f.clearLocked()
	f.moveLocked(StateSelectingMachines)
	return f.snapshotLocked()
}

func (f *BookingFlow) clearLocked() {
	f.providers = nil
	f.selected = nil
	f.order = nil
}

func (f *BookingFlow) moveLocked(to BookingState) {
	if f.state != to {
		f.logger.Debug("booking transition", slog.String("from", string(f.state)), slog.String("to", string(to)))
	}
	f.state = to
}

func (f *BookingFlow) transitionError(to BookingState) error {
	return fmt.Errorf("%s -> %s: %w", f.state, to, domainErrors.ErrInvalidTransition)
}

func (f *BookingFlow) snapshotLocked() BookingSnapshot {
	snap := BookingSnapshot{
		State:     f.state,
		Providers: append([]model.Provider(nil), f.providers...),
		Total:     f.cart.CartTotal(),
	}
	if f.selected != nil {
		p := *f.selected
		snap.Provider = &p
	}
	if f.order != nil {
		o := cloneOrder(*f.order)
		snap.Order = &o
	}
	return snap
}
