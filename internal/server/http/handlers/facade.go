package handlers

import (
	"context"

	"github.com/boklen/rentals/internal/domain/model"
	"github.com/boklen/rentals/internal/usecase"
)

// CartFacade describes cart, order and address operations exposed via HTTP.
type CartFacade interface {
	CartItems() []model.CartItem
	CartTotal() float64
	AddToCart(ctx context.Context, item model.CartItem) (model.CartItem, error)
	ConfigureItem(ctx context.Context, req usecase.ConfigureRequest) (model.CartItem, error)
	UpdateCartItem(ctx context.Context, cartID string, patch model.CartItemPatch) (model.CartItem, error)
	RemoveFromCart(ctx context.Context, cartID string)
	ClearCart(ctx context.Context)

	Orders() []model.Order
	PlaceOrder(ctx context.Context, draft model.OrderDraft) model.Order

	Addresses() []model.Address
	AddAddress(ctx context.Context, fields model.AddressFields) (model.Address, error)
	UpdateAddress(ctx context.Context, id string, fields model.AddressFields) (model.Address, error)

	Machines() []model.Machine
}

// UserFacade covers the profile, location and preference screens.
type UserFacade interface {
	Profile() model.UserProfile
	SaveProfile(ctx context.Context, patch model.ProfilePatch) (model.UserProfile, bool, error)
	UpdatePassword(ctx context.Context, oldPassword, newPassword string) model.PasswordResult
	Location() string
	Locations() []string
	SetLocation(ctx context.Context, location string)
	Preferences() model.Preferences
	UpdatePreferences(ctx context.Context, patch model.PreferencesPatch) model.Preferences
}

// BookingFacade drives the booking flow.
type BookingFacade interface {
	BookingState() usecase.BookingSnapshot
	ReviewBooking(ctx context.Context) (usecase.BookingSnapshot, error)
	FindProviders(ctx context.Context) (usecase.BookingSnapshot, error)
	SelectProvider(ctx context.Context, providerID string) (usecase.BookingSnapshot, error)
	EditStartDate(ctx context.Context, cartID, date string) (model.CartItem, error)
	ConfirmBooking(ctx context.Context) (model.Order, error)
	ResetBooking(ctx context.Context) usecase.BookingSnapshot
}

// AuthFacade describes the format-only login and registration flow.
type AuthFacade interface {
	RequestOTP(ctx context.Context, phone string) (usecase.OTPChallenge, error)
	VerifyOTP(ctx context.Context, phone, code string) (string, error)
	Register(ctx context.Context, reg usecase.Registration) (model.UserProfile, error)
}

// HealthFacade reports backend availability.
type HealthFacade interface {
	HealthCheck(ctx context.Context) error
}

// RentalFacade aggregates the full set of operations used across handlers.
type RentalFacade interface {
	CartFacade
	UserFacade
	BookingFacade
	AuthFacade
	HealthFacade
}
