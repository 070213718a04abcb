// Package httpstub provides a RentalFacade stub for handler and router tests.
// It imports usecase, so it cannot live in package test.
package httpstub

import (
	"context"
	"time"

	"github.com/boklen/rentals/internal/domain/model"
	"github.com/boklen/rentals/internal/usecase"
)

// RentalFacadeStub provides controllable behaviour for every HTTP endpoint.
// Nil functions fall back to fixed data so tests only wire what they assert.
type RentalFacadeStub struct {
	Items []model.CartItem

	AddToCartFn      func(context.Context, model.CartItem) (model.CartItem, error)
	ConfigureItemFn  func(context.Context, usecase.ConfigureRequest) (model.CartItem, error)
	UpdateCartItemFn func(context.Context, string, model.CartItemPatch) (model.CartItem, error)
	RemoveFn         func(context.Context, string)
	ClearFn          func(context.Context)

	OrdersFn        func() []model.Order
	PlaceOrderFn    func(context.Context, model.OrderDraft) model.Order
	AddressesFn     func() []model.Address
	AddAddressFn    func(context.Context, model.AddressFields) (model.Address, error)
	UpdateAddressFn func(context.Context, string, model.AddressFields) (model.Address, error)

	ProfileFn           func() model.UserProfile
	SaveProfileFn       func(context.Context, model.ProfilePatch) (model.UserProfile, bool, error)
	UpdatePasswordFn    func(context.Context, string, string) model.PasswordResult
	SetLocationFn       func(context.Context, string)
	SelectedLocation    string
	PreferencesValue    model.Preferences
	UpdatePreferencesFn func(context.Context, model.PreferencesPatch) model.Preferences

	BookingStateFn   func() usecase.BookingSnapshot
	ReviewFn         func(context.Context) (usecase.BookingSnapshot, error)
	FindProvidersFn  func(context.Context) (usecase.BookingSnapshot, error)
	SelectProviderFn func(context.Context, string) (usecase.BookingSnapshot, error)
	EditStartDateFn  func(context.Context, string, string) (model.CartItem, error)
	ConfirmFn        func(context.Context) (model.Order, error)
	ResetFn          func(context.Context) usecase.BookingSnapshot

	RequestOTPFn func(context.Context, string) (usecase.OTPChallenge, error)
	VerifyOTPFn  func(context.Context, string, string) (string, error)
	RegisterFn   func(context.Context, usecase.Registration) (model.UserProfile, error)

	HealthErr error
}

func (s *RentalFacadeStub) CartItems() []model.CartItem {
	return append([]model.CartItem(nil), s.Items...)
}

func (s *RentalFacadeStub) CartTotal() float64 {
	var total float64
	for _, item := range s.Items {
		total += item.Price
	}
	return total
}

func (s *RentalFacadeStub) AddToCart(ctx context.Context, item model.CartItem) (model.CartItem, error) {
	if s.AddToCartFn != nil {
		return s.AddToCartFn(ctx, item)
	}
	item.CartID = "cart-1"
	return item, nil
}

func (s *RentalFacadeStub) ConfigureItem(ctx context.Context, req usecase.ConfigureRequest) (model.CartItem, error) {
	if s.ConfigureItemFn != nil {
		return s.ConfigureItemFn(ctx, req)
	}
	return model.CartItem{CartID: "cart-1", ID: req.MachineID, RentalType: req.RentalType, Quantity: req.Quantity}, nil
}

func (s *RentalFacadeStub) UpdateCartItem(ctx context.Context, cartID string, patch model.CartItemPatch) (model.CartItem, error) {
	if s.UpdateCartItemFn != nil {
		return s.UpdateCartItemFn(ctx, cartID, patch)
	}
	return patch.Apply(model.CartItem{CartID: cartID}), nil
}

func (s *RentalFacadeStub) RemoveFromCart(ctx context.Context, cartID string) {
	if s.RemoveFn != nil {
		s.RemoveFn(ctx, cartID)
	}
}

func (s *RentalFacadeStub) ClearCart(ctx context.Context) {
	if s.ClearFn != nil {
		s.ClearFn(ctx)
	}
}

func (s *RentalFacadeStub) Orders() []model.Order {
	if s.OrdersFn != nil {
		return s.OrdersFn()
	}
	return []model.Order{}
}

func (s *RentalFacadeStub) PlaceOrder(ctx context.Context, draft model.OrderDraft) model.Order {
	if s.PlaceOrderFn != nil {
		return s.PlaceOrderFn(ctx, draft)
	}
	return model.Order{
		ID:         "order-1",
		Date:       time.Unix(0, 0).UTC(),
		Items:      draft.Items,
		Status:     model.OrderStatusUnderProcessing,
		TotalPrice: draft.TotalPrice,
		Provider:   draft.Provider,
	}
}

func (s *RentalFacadeStub) Addresses() []model.Address {
	if s.AddressesFn != nil {
		return s.AddressesFn()
	}
	return []model.Address{}
}

func (s *RentalFacadeStub) AddAddress(ctx context.Context, fields model.AddressFields) (model.Address, error) {
	if s.AddAddressFn != nil {
		return s.AddAddressFn(ctx, fields)
	}
	return model.Address{ID: "addr-1", Title: fields.Type.Title(), City: fields.City, District: fields.District, Type: fields.Type, Address: fields.Compose()}, nil
}

func (s *RentalFacadeStub) UpdateAddress(ctx context.Context, id string, fields model.AddressFields) (model.Address, error) {
	if s.UpdateAddressFn != nil {
		return s.UpdateAddressFn(ctx, id, fields)
	}
	return model.Address{ID: id, Title: fields.Type.Title(), City: fields.City, District: fields.District, Type: fields.Type, Address: fields.Compose()}, nil
}

func (s *RentalFacadeStub) Machines() []model.Machine {
	return usecase.NewCatalog().Machines()
}

func (s *RentalFacadeStub) Profile() model.UserProfile {
	if s.ProfileFn != nil {
		return s.ProfileFn()
	}
	return model.UserProfile{Name: usecase.DefaultUserName, Email: usecase.DefaultUserEmail, Phone: usecase.DefaultUserPhone, PasswordHash: "hash:secret"}
}

func (s *RentalFacadeStub) SaveProfile(ctx context.Context, patch model.ProfilePatch) (model.UserProfile, bool, error) {
	if s.SaveProfileFn != nil {
		return s.SaveProfileFn(ctx, patch)
	}
	return patch.Apply(s.Profile()), true, nil
}

func (s *RentalFacadeStub) UpdatePassword(ctx context.Context, oldPassword, newPassword string) model.PasswordResult {
	if s.UpdatePasswordFn != nil {
		return s.UpdatePasswordFn(ctx, oldPassword, newPassword)
	}
	return model.PasswordResult{Success: true, Message: usecase.MsgPasswordUpdated}
}

func (s *RentalFacadeStub) Location() string {
	if s.SelectedLocation == "" {
		return model.DefaultLocation
	}
	return s.SelectedLocation
}

func (s *RentalFacadeStub) Locations() []string {
	return append([]string(nil), model.Locations...)
}

func (s *RentalFacadeStub) SetLocation(ctx context.Context, location string) {
	if s.SetLocationFn != nil {
		s.SetLocationFn(ctx, location)
	}
	s.SelectedLocation = location
}

func (s *RentalFacadeStub) Preferences() model.Preferences {
	return s.PreferencesValue
}

func (s *RentalFacadeStub) UpdatePreferences(ctx context.Context, patch model.PreferencesPatch) model.Preferences {
	if s.UpdatePreferencesFn != nil {
		return s.UpdatePreferencesFn(ctx, patch)
	}
	if patch.AppNotifications != nil {
		s.PreferencesValue.AppNotifications = *patch.AppNotifications
	}
	if patch.SMS != nil {
		s.PreferencesValue.SMS = *patch.SMS
	}
	if patch.EmailOffers != nil {
		s.PreferencesValue.EmailOffers = *patch.EmailOffers
	}
	return s.PreferencesValue
}

func (s *RentalFacadeStub) BookingState() usecase.BookingSnapshot {
	if s.BookingStateFn != nil {
		return s.BookingStateFn()
	}
	return usecase.BookingSnapshot{State: usecase.StateSelectingMachines}
}

func (s *RentalFacadeStub) ReviewBooking(ctx context.Context) (usecase.BookingSnapshot, error) {
	if s.ReviewFn != nil {
		return s.ReviewFn(ctx)
	}
	return usecase.BookingSnapshot{State: usecase.StateReviewingRequest}, nil
}

func (s *RentalFacadeStub) FindProviders(ctx context.Context) (usecase.BookingSnapshot, error) {
	if s.FindProvidersFn != nil {
		return s.FindProvidersFn(ctx)
	}
	return usecase.BookingSnapshot{State: usecase.StateMatchingProviders, Providers: []model.Provider{{ID: "prv-1", Name: "provider"}}}, nil
}

func (s *RentalFacadeStub) SelectProvider(ctx context.Context, providerID string) (usecase.BookingSnapshot, error) {
	if s.SelectProviderFn != nil {
		return s.SelectProviderFn(ctx, providerID)
	}
	return usecase.BookingSnapshot{State: usecase.StateOrderSummary, Provider: &model.Provider{ID: providerID}}, nil
}

func (s *RentalFacadeStub) EditStartDate(ctx context.Context, cartID, date string) (model.CartItem, error) {
	if s.EditStartDateFn != nil {
		return s.EditStartDateFn(ctx, cartID, date)
	}
	return model.CartItem{CartID: cartID, StartDate: date}, nil
}

func (s *RentalFacadeStub) ConfirmBooking(ctx context.Context) (model.Order, error) {
	if s.ConfirmFn != nil {
		return s.ConfirmFn(ctx)
	}
	return model.Order{ID: "order-1", Status: model.OrderStatusUnderProcessing}, nil
}

func (s *RentalFacadeStub) ResetBooking(ctx context.Context) usecase.BookingSnapshot {
	if s.ResetFn != nil {
		return s.ResetFn(ctx)
	}
	return usecase.BookingSnapshot{State: usecase.StateSelectingMachines}
}

func (s *RentalFacadeStub) RequestOTP(ctx context.Context, phone string) (usecase.OTPChallenge, error) {
	if s.RequestOTPFn != nil {
		return s.RequestOTPFn(ctx, phone)
	}
	return usecase.OTPChallenge{Phone: phone, Length: usecase.OTPLength, ResendIn: usecase.OTPResendCooldown}, nil
}

func (s *RentalFacadeStub) VerifyOTP(ctx context.Context, phone, code string) (string, error) {
	if s.VerifyOTPFn != nil {
		return s.VerifyOTPFn(ctx, phone, code)
	}
	return phone, nil
}

func (s *RentalFacadeStub) Register(ctx context.Context, reg usecase.Registration) (model.UserProfile, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, reg)
	}
	return model.UserProfile{Name: reg.Name, Email: reg.Email, Phone: reg.Phone, PasswordHash: "hash:secret"}, nil
}

func (s *RentalFacadeStub) HealthCheck(context.Context) error {
	return s.HealthErr
}
