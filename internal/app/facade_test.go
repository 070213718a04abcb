package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	domainErrors "github.com/boklen/rentals/internal/domain/errors"
	"github.com/boklen/rentals/internal/domain/model"
	testhelpers "github.com/boklen/rentals/internal/test"
	"github.com/boklen/rentals/internal/usecase"
)

type staticMatcher []model.Provider

func (m staticMatcher) Match(context.Context, usecase.MatchRequest) ([]model.Provider, error) {
	return m, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newFacade(t *testing.T) (*RentalFacade, *testhelpers.KVStoreStub) {
	t.Helper()
	kv := testhelpers.NewKVStoreStub()
	logger := discardLogger()
	cart := usecase.NewCartStore(kv, nil, logger, nil)
	user := usecase.NewUserStore(kv, nil, testhelpers.HasherStub{}, logger, nil)
	if err := cart.Load(context.Background()); err != nil {
		t.Fatalf("load cart: %v", err)
	}
	if err := user.Load(context.Background()); err != nil {
		t.Fatalf("load user: %v", err)
	}
	matcher := staticMatcher{{ID: "p1", Name: "شركة البناء المتقدم"}}
	booking := usecase.NewBookingFlow(cart, user, matcher, logger)
	auth := usecase.NewAuthUseCase(user)
	return NewRentalFacade(cart, user, usecase.NewCatalog(), booking, auth, kv), kv
}

func TestRentalFacadeCart(t *testing.T) {
	facade, _ := newFacade(t)
	ctx := context.Background()

	if _, err := facade.AddToCart(ctx, model.CartItem{Title: "Manual", Price: 0}); !errors.Is(err, domainErrors.ErrInvalidPrice) {
		t.Fatalf("expected invalid price, got %v", err)
	}
	manual, err := facade.AddToCart(ctx, model.CartItem{Title: "Manual", Price: 150})
	if err != nil {
		t.Fatalf("add returned error: %v", err)
	}
	if manual.Quantity != 1 {
		t.Fatalf("expected default quantity 1, got %d", manual.Quantity)
	}

	configured, err := facade.ConfigureItem(ctx, usecase.ConfigureRequest{MachineID: 7, RentalType: model.RentalTypeDaily, Quantity: 2})
	if err != nil {
		t.Fatalf("configure returned error: %v", err)
	}
	if configured.Price != 600 {
		t.Fatalf("expected quoted price 600, got %v", configured.Price)
	}
	if facade.CartTotal() != 750 || len(facade.CartItems()) != 2 {
		t.Fatalf("unexpected cart state: total=%v items=%d", facade.CartTotal(), len(facade.CartItems()))
	}

	negative := -1.0
	if _, err := facade.UpdateCartItem(ctx, manual.CartID, model.CartItemPatch{Price: &negative}); !errors.Is(err, domainErrors.ErrInvalidPrice) {
		t.Fatalf("expected invalid price, got %v", err)
	}
	notes := "gate 2"
	if _, err := facade.UpdateCartItem(ctx, "missing", model.CartItemPatch{Notes: &notes}); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	updated, err := facade.UpdateCartItem(ctx, manual.CartID, model.CartItemPatch{Notes: &notes})
	if err != nil || updated.Notes != notes {
		t.Fatalf("unexpected update: %+v %v", updated, err)
	}

	facade.RemoveFromCart(ctx, manual.CartID)
	if len(facade.CartItems()) != 1 {
		t.Fatalf("expected one item after remove")
	}
	facade.ClearCart(ctx)
	if len(facade.CartItems()) != 0 {
		t.Fatalf("expected empty cart")
	}
}

func TestRentalFacadeAddresses(t *testing.T) {
	facade, _ := newFacade(t)
	ctx := context.Background()

	if _, err := facade.AddAddress(ctx, model.AddressFields{City: "جدة"}); !errors.Is(err, domainErrors.ErrInvalidAddress) {
		t.Fatalf("expected invalid address, got %v", err)
	}
	addr, err := facade.AddAddress(ctx, model.AddressFields{City: "جدة", District: "الروضة", Type: model.AddressTypeHome})
	if err != nil {
		t.Fatalf("add address: %v", err)
	}
	if _, err := facade.UpdateAddress(ctx, "missing", model.AddressFields{City: "جدة", District: "الروضة", Type: model.AddressTypeHome}); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	updated, err := facade.UpdateAddress(ctx, addr.ID, model.AddressFields{City: "الرياض", District: "النخيل", Type: model.AddressTypeWork})
	if err != nil || updated.Title != "العمل" {
		t.Fatalf("unexpected update: %+v %v", updated, err)
	}
	if len(facade.Addresses()) != 1 {
		t.Fatalf("expected one address")
	}
}

func TestRentalFacadeProfile(t *testing.T) {
	facade, kv := newFacade(t)
	ctx := context.Background()

	bad := "x"
	if _, _, err := facade.SaveProfile(ctx, model.ProfilePatch{Phone: &bad}); !errors.Is(err, domainErrors.ErrInvalidPhone) {
		t.Fatalf("expected invalid phone, got %v", err)
	}

	phone := "+966 55 123 4567"
	profile, saved, err := facade.SaveProfile(ctx, model.ProfilePatch{Phone: &phone})
	if err != nil || !saved {
		t.Fatalf("save profile: saved=%v err=%v", saved, err)
	}
	if profile.Phone != "0551234567" {
		t.Fatalf("expected normalized phone, got %q", profile.Phone)
	}

	kv.SetErr = errors.New("read-only")
	name := "Offline"
	profile, saved, err = facade.SaveProfile(ctx, model.ProfilePatch{Name: &name})
	if err != nil || saved || profile.Name != name {
		t.Fatalf("expected in-memory save only: %+v saved=%v err=%v", profile, saved, err)
	}
	kv.SetErr = nil

	if res := facade.UpdatePassword(ctx, "nope", "x"); res.Success {
		t.Fatalf("expected password change to fail")
	}

	facade.SetLocation(ctx, model.Locations[1])
	if facade.Location() != model.Locations[1] || len(facade.Locations()) != len(model.Locations) {
		t.Fatalf("unexpected location state")
	}

	on := true
	if prefs := facade.UpdatePreferences(ctx, model.PreferencesPatch{EmailOffers: &on}); !prefs.EmailOffers || !facade.Preferences().EmailOffers {
		t.Fatalf("expected email offers enabled")
	}
}

func TestRentalFacadeBooking(t *testing.T) {
	facade, _ := newFacade(t)
	ctx := context.Background()

	if _, err := facade.ReviewBooking(ctx); !errors.Is(err, domainErrors.ErrEmptyCart) {
		t.Fatalf("expected empty cart, got %v", err)
	}
	item, _ := facade.ConfigureItem(ctx, usecase.ConfigureRequest{MachineID: 1, RentalType: model.RentalTypeTrip})
	if _, err := facade.ReviewBooking(ctx); err != nil {
		t.Fatalf("review: %v", err)
	}
	if _, err := facade.FindProviders(ctx); err != nil {
		t.Fatalf("find providers: %v", err)
	}
	if _, err := facade.SelectProvider(ctx, "p1"); err != nil {
		t.Fatalf("select provider: %v", err)
	}
	if _, err := facade.EditStartDate(ctx, item.CartID, "2025-07-01"); err != nil {
		t.Fatalf("edit start date: %v", err)
	}
	order, err := facade.ConfirmBooking(ctx)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if len(facade.Orders()) != 1 || facade.Orders()[0].ID != order.ID {
		t.Fatalf("order not recorded")
	}
	if facade.BookingState().State != usecase.StateBookingConfirmation {
		t.Fatalf("unexpected state %s", facade.BookingState().State)
	}
	if facade.ResetBooking(ctx).State != usecase.StateSelectingMachines {
		t.Fatalf("expected reset to selecting machines")
	}

	placed := facade.PlaceOrder(ctx, model.OrderDraft{TotalPrice: 99})
	if facade.Orders()[0].ID != placed.ID {
		t.Fatalf("expected newest order first")
	}
}

func TestRentalFacadeAuthAndHealth(t *testing.T) {
	facade, kv := newFacade(t)
	ctx := context.Background()

	if _, err := facade.RequestOTP(ctx, "0501234567"); err != nil {
		t.Fatalf("request otp: %v", err)
	}
	if _, err := facade.VerifyOTP(ctx, "0501234567", "1234"); err != nil {
		t.Fatalf("verify otp: %v", err)
	}
	if _, err := facade.Register(ctx, usecase.Registration{Name: "Sara", Email: "sara@example.com", Phone: "0551234567"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(facade.Machines()) == 0 {
		t.Fatalf("expected machines")
	}

	if err := facade.HealthCheck(ctx); err != nil {
		t.Fatalf("health: %v", err)
	}
	kv.HealthErr = errors.New("down")
	if err := facade.HealthCheck(ctx); err == nil {
		t.Fatalf("expected health error")
	}
}
