package app

import (
	"context"
	"fmt"

	domainErrors "github.com/boklen/rentals/internal/domain/errors"
	"github.com/boklen/rentals/internal/domain/model"
	"github.com/boklen/rentals/internal/domain/repository"
	"github.com/boklen/rentals/internal/usecase"
)

// RentalFacade is the single entry point the HTTP layer talks to. It adds
// form validation in front of the stores, which themselves accept anything.
type RentalFacade struct {
	cart    *usecase.CartStore
	user    *usecase.UserStore
	catalog *usecase.Catalog
	booking *usecase.BookingFlow
	auth    *usecase.AuthUseCase
	store   repository.KeyValueStore
}

// NewRentalFacade constructs RentalFacade.
func NewRentalFacade(cart *usecase.CartStore, user *usecase.UserStore, catalog *usecase.Catalog, booking *usecase.BookingFlow, auth *usecase.AuthUseCase, store repository.KeyValueStore) *RentalFacade {
	return &RentalFacade{cart: cart, user: user, catalog: catalog, booking: booking, auth: auth, store: store}
}

func (f *RentalFacade) CartItems() []model.CartItem {
	return f.cart.CartItems()
}

func (f *RentalFacade) CartTotal() float64 {
	return f.cart.CartTotal()
}

// AddToCart adds a manually priced line.
func (f *RentalFacade) AddToCart(ctx context.Context, item model.CartItem) (model.CartItem, error) {
	if err := usecase.ValidatePrice(item.Price); err != nil {
		return model.CartItem{}, err
	}
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	return f.cart.AddToCart(ctx, item), nil
}

// ConfigureItem prices a catalog machine and adds it to the cart.
func (f *RentalFacade) ConfigureItem(ctx context.Context, req usecase.ConfigureRequest) (model.CartItem, error) {
	item, err := f.catalog.ConfigureItem(req)
	if err != nil {
		return model.CartItem{}, err
	}
	return f.cart.AddToCart(ctx, item), nil
}

func (f *RentalFacade) UpdateCartItem(ctx context.Context, cartID string, patch model.CartItemPatch) (model.CartItem, error) {
	if patch.Price != nil {
		if err := usecase.ValidatePrice(*patch.Price); err != nil {
			return model.CartItem{}, err
		}
	}
	item, ok := f.cart.UpdateCartItem(ctx, cartID, patch)
	if !ok {
		return model.CartItem{}, fmt.Errorf("cart item %q: %w", cartID, domainErrors.ErrNotFound)
	}
	return item, nil
}

func (f *RentalFacade) RemoveFromCart(ctx context.Context, cartID string) {
	f.cart.RemoveFromCart(ctx, cartID)
}

func (f *RentalFacade) ClearCart(ctx context.Context) {
	f.cart.ClearCart(ctx)
}

func (f *RentalFacade) Orders() []model.Order {
	return f.cart.Orders()
}

func (f *RentalFacade) PlaceOrder(ctx context.Context, draft model.OrderDraft) model.Order {
	return f.cart.AddOrder(ctx, draft)
}

func (f *RentalFacade) Addresses() []model.Address {
	return f.cart.Addresses()
}

func (f *RentalFacade) AddAddress(ctx context.Context, fields model.AddressFields) (model.Address, error) {
	if err := usecase.ValidateAddress(fields); err != nil {
		return model.Address{}, err
	}
	return f.cart.AddAddress(ctx, fields), nil
}

func (f *RentalFacade) UpdateAddress(ctx context.Context, id string, fields model.AddressFields) (model.Address, error) {
	if err := usecase.ValidateAddress(fields); err != nil {
		return model.Address{}, err
	}
	addr, ok := f.cart.UpdateAddress(ctx, id, fields)
	if !ok {
		return model.Address{}, fmt.Errorf("address %q: %w", id, domainErrors.ErrNotFound)
	}
	return addr, nil
}

func (f *RentalFacade) Profile() model.UserProfile {
	return f.user.Profile()
}

// SaveProfile validates and merges patch. saved is false when the change is
// only held in memory because persisting it failed.
func (f *RentalFacade) SaveProfile(ctx context.Context, patch model.ProfilePatch) (profile model.UserProfile, saved bool, err error) {
	if err := usecase.ValidateProfile(patch); err != nil {
		return model.UserProfile{}, false, err
	}
	if patch.Phone != nil {
		phone, _ := usecase.NormalizePhone(*patch.Phone)
		patch.Phone = &phone
	}
	saved = f.user.SaveUserData(ctx, patch)
	return f.user.Profile(), saved, nil
}

func (f *RentalFacade) UpdatePassword(ctx context.Context, oldPassword, newPassword string) model.PasswordResult {
	return f.user.UpdatePassword(ctx, oldPassword, newPassword)
}

func (f *RentalFacade) Location() string {
	return f.user.Location()
}

func (f *RentalFacade) Locations() []string {
	return f.user.Locations()
}

func (f *RentalFacade) SetLocation(ctx context.Context, location string) {
	f.user.UpdateUserLocation(ctx, location)
}

func (f *RentalFacade) Preferences() model.Preferences {
	return f.user.Preferences()
}

func (f *RentalFacade) UpdatePreferences(ctx context.Context, patch model.PreferencesPatch) model.Preferences {
	return f.user.UpdatePreferences(ctx, patch)
}

func (f *RentalFacade) Machines() []model.Machine {
	return f.catalog.Machines()
}

func (f *RentalFacade) BookingState() usecase.BookingSnapshot {
	return f.booking.State()
}

func (f *RentalFacade) ReviewBooking(ctx context.Context) (usecase.BookingSnapshot, error) {
	return f.booking.Review(ctx)
}

func (f *RentalFacade) FindProviders(ctx context.Context) (usecase.BookingSnapshot, error) {
	return f.booking.FindProviders(ctx)
}

func (f *RentalFacade) SelectProvider(ctx context.Context, providerID string) (usecase.BookingSnapshot, error) {
	return f.booking.SelectProvider(providerID)
}

func (f *RentalFacade) EditStartDate(ctx context.Context, cartID, date string) (model.CartItem, error) {
	return f.booking.EditStartDate(ctx, cartID, date)
}

func (f *RentalFacade) ConfirmBooking(ctx context.Context) (model.Order, error) {
	return f.booking.Confirm(ctx)
}

func (f *RentalFacade) ResetBooking(ctx context.Context) usecase.BookingSnapshot {
	return f.booking.Reset()
}

func (f *RentalFacade) RequestOTP(ctx context.Context, phone string) (usecase.OTPChallenge, error) {
	return f.auth.RequestOTP(ctx, phone)
}

func (f *RentalFacade) VerifyOTP(ctx context.Context, phone, code string) (string, error) {
	return f.auth.VerifyOTP(ctx, phone, code)
}

func (f *RentalFacade) Register(ctx context.Context, reg usecase.Registration) (model.UserProfile, error) {
	return f.auth.Register(ctx, reg)
}

// HealthCheck reports whether the backing store answers.
func (f *RentalFacade) HealthCheck(ctx context.Context) error {
	return f.store.HealthCheck(ctx)
}
