package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/boklen/rentals/internal/domain/errors"
	"github.com/boklen/rentals/internal/domain/model"
	testhelpers "github.com/boklen/rentals/internal/test"
)

type matcherFunc func(ctx context.Context, req MatchRequest) ([]model.Provider, error)

func (f matcherFunc) Match(ctx context.Context, req MatchRequest) ([]model.Provider, error) {
	return f(ctx, req)
}

var testProviders = []model.Provider{
	{ID: "p1", Name: "شركة البناء المتقدم", Rating: 4.8, Reviews: 120, Distance: "2.5 كم"},
	{ID: "p2", Name: "مؤسسة المعدات الثقيلة", Rating: 4.5, Reviews: 85, Distance: "4 كم"},
}

func staticMatcher(providers ...model.Provider) ProviderMatcher {
	return matcherFunc(func(context.Context, MatchRequest) ([]model.Provider, error) {
		return providers, nil
	})
}

type bookingFixture struct {
	kv   *testhelpers.KVStoreStub
	cart *CartStore
	user *UserStore
	flow *BookingFlow
}

func newBookingFixture(t *testing.T, matcher ProviderMatcher) bookingFixture {
	t.Helper()
	kv := testhelpers.NewKVStoreStub()
	cart := newTestCartStore(t, kv)
	user := newTestUserStore(t, kv, testhelpers.HasherStub{})
	return bookingFixture{kv: kv, cart: cart, user: user, flow: NewBookingFlow(cart, user, matcher, discardLogger())}
}

func TestBookingHappyPath(t *testing.T) {
	var seen MatchRequest
	fx := newBookingFixture(t, matcherFunc(func(_ context.Context, req MatchRequest) ([]model.Provider, error) {
		seen = req
		return testProviders, nil
	}))
	ctx := context.Background()

	assert.Equal(t, StateSelectingMachines, fx.flow.State().State)
	line := fx.cart.AddToCart(ctx, model.CartItem{ID: 7, Title: "Generator", Quantity: 1, Price: 300})
	fx.cart.AddToCart(ctx, model.CartItem{ID: 2, Title: "Loader", Quantity: 1, Price: 1200})

	snap, err := fx.flow.Review(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateReviewingRequest, snap.State)
	assert.Equal(t, 1500.0, snap.Total)

	snap, err = fx.flow.FindProviders(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateMatchingProviders, snap.State)
	assert.Equal(t, testProviders, snap.Providers)
	assert.Equal(t, model.DefaultLocation, seen.Location)
	assert.Len(t, seen.Items, 2)

	snap, err = fx.flow.SelectProvider("p2")
	require.NoError(t, err)
	assert.Equal(t, StateOrderSummary, snap.State)
	require.NotNil(t, snap.Provider)
	assert.Equal(t, "p2", snap.Provider.ID)

	edited, err := fx.flow.EditStartDate(ctx, line.CartID, "2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", edited.StartDate)

	order, err := fx.flow.Confirm(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, 1500.0, order.TotalPrice)
	assert.Equal(t, "مؤسسة المعدات الثقيلة", order.Provider)
	assert.Equal(t, model.OrderStatusUnderProcessing, order.Status)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "2025-06-01", order.Items[0].StartDate)

	assert.Empty(t, fx.cart.CartItems())
	require.Len(t, fx.cart.Orders(), 1)

	snap = fx.flow.State()
	assert.Equal(t, StateBookingConfirmation, snap.State)
	require.NotNil(t, snap.Order)
	assert.Equal(t, order.ID, snap.Order.ID)

	_, err = fx.flow.Confirm(ctx)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidTransition)
	assert.Len(t, fx.cart.Orders(), 1)
}

func TestBookingRejectsInvalidTransitions(t *testing.T) {
	fx := newBookingFixture(t, staticMatcher(testProviders...))
	ctx := context.Background()

	_, err := fx.flow.FindProviders(ctx)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidTransition)
	_, err = fx.flow.SelectProvider("p1")
	assert.ErrorIs(t, err, domainErrors.ErrInvalidTransition)
	_, err = fx.flow.Confirm(ctx)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidTransition)
	_, err = fx.flow.EditStartDate(ctx, "x", "2025-06-01")
	assert.ErrorIs(t, err, domainErrors.ErrInvalidTransition)

	assert.Equal(t, StateSelectingMachines, fx.flow.State().State)
}

func TestBookingReviewRequiresItems(t *testing.T) {
	fx := newBookingFixture(t, staticMatcher(testProviders...))

	_, err := fx.flow.Review(context.Background())
	assert.ErrorIs(t, err, domainErrors.ErrEmptyCart)
	assert.Equal(t, StateSelectingMachines, fx.flow.State().State)
}

func TestBookingSelectUnknownProvider(t *testing.T) {
	fx := newBookingFixture(t, staticMatcher(testProviders...))
	ctx := context.Background()
	fx.cart.AddToCart(ctx, testhelpers.RandomCartItem())
	_, _ = fx.flow.Review(ctx)
	_, err := fx.flow.FindProviders(ctx)
	require.NoError(t, err)

	_, err = fx.flow.SelectProvider("nope")
	assert.ErrorIs(t, err, domainErrors.ErrUnknownProvider)
	assert.Equal(t, StateMatchingProviders, fx.flow.State().State)
}

func TestBookingEditStartDateValidation(t *testing.T) {
	fx := newBookingFixture(t, staticMatcher(testProviders...))
	ctx := context.Background()
	fx.cart.AddToCart(ctx, testhelpers.RandomCartItem())
	_, _ = fx.flow.Review(ctx)

	_, err := fx.flow.EditStartDate(ctx, "missing", "2025-06-01")
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)

	line := fx.cart.CartItems()[0]
	_, err = fx.flow.EditStartDate(ctx, line.CartID, "01/06/2025")
	assert.ErrorIs(t, err, domainErrors.ErrInvalidDate)
}

func TestBookingSearchFailureReturnsToReview(t *testing.T) {
	cases := map[string]struct {
		matcher ProviderMatcher
		want    error
	}{
		"matcher error": {
			matcher: matcherFunc(func(context.Context, MatchRequest) ([]model.Provider, error) {
				return nil, errors.New("directory down")
			}),
		},
		"no providers": {matcher: staticMatcher(), want: domainErrors.ErrNoProviders},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			fx := newBookingFixture(t, tc.matcher)
			ctx := context.Background()
			fx.cart.AddToCart(ctx, testhelpers.RandomCartItem())
			_, _ = fx.flow.Review(ctx)

			snap, err := fx.flow.FindProviders(ctx)
			require.Error(t, err)
			if tc.want != nil {
				assert.ErrorIs(t, err, tc.want)
			}
			assert.Equal(t, StateReviewingRequest, snap.State)
		})
	}
}

func TestBookingSearchCancelledByContext(t *testing.T) {
	fx := newBookingFixture(t, matcherFunc(func(ctx context.Context, _ MatchRequest) ([]model.Provider, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}))
	ctx, cancel := context.WithCancel(context.Background())
	fx.cart.AddToCart(ctx, testhelpers.RandomCartItem())
	_, _ = fx.flow.Review(ctx)

	done := make(chan error, 1)
	go func() {
		_, err := fx.flow.FindProviders(ctx)
		done <- err
	}()

	require.Eventually(t, func() bool {
		return fx.flow.State().State == StateFindingProviders
	}, time.Second, 5*time.Millisecond)

	_, err := fx.flow.FindProviders(context.Background())
	assert.ErrorIs(t, err, domainErrors.ErrInvalidTransition)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.Equal(t, StateReviewingRequest, fx.flow.State().State)
}

func TestBookingResetDiscardsInFlightSearch(t *testing.T) {
	release := make(chan struct{})
	fx := newBookingFixture(t, matcherFunc(func(context.Context, MatchRequest) ([]model.Provider, error) {
		<-release
		return testProviders, nil
	}))
	ctx := context.Background()
	fx.cart.AddToCart(ctx, testhelpers.RandomCartItem())
	_, _ = fx.flow.Review(ctx)

	done := make(chan error, 1)
	go func() {
		_, err := fx.flow.FindProviders(ctx)
		done <- err
	}()
	require.Eventually(t, func() bool {
		return fx.flow.State().State == StateFindingProviders
	}, time.Second, 5*time.Millisecond)

	snap := fx.flow.Reset()
	assert.Equal(t, StateSelectingMachines, snap.State)
	close(release)

	assert.ErrorIs(t, <-done, domainErrors.ErrInvalidTransition)
	snap = fx.flow.State()
	assert.Equal(t, StateSelectingMachines, snap.State)
	assert.Empty(t, snap.Providers)
	assert.Len(t, fx.cart.CartItems(), 1, "reset keeps the cart")
}

func TestBookingReviewStartsNewSessionAfterConfirmation(t *testing.T) {
	fx := newBookingFixture(t, staticMatcher(testProviders...))
	ctx := context.Background()
	fx.cart.AddToCart(ctx, testhelpers.RandomCartItem())
	_, _ = fx.flow.Review(ctx)
	_, _ = fx.flow.FindProviders(ctx)
	_, _ = fx.flow.SelectProvider("p1")
	_, err := fx.flow.Confirm(ctx)
	require.NoError(t, err)

	_, err = fx.flow.Review(ctx)
	assert.ErrorIs(t, err, domainErrors.ErrEmptyCart)
	assert.Equal(t, StateSelectingMachines, fx.flow.State().State)

	fx.cart.AddToCart(ctx, testhelpers.RandomCartItem())
	snap, err := fx.flow.Review(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateReviewingRequest, snap.State)
	assert.Nil(t, snap.Order)
}

func TestBookingReviewAfterMatchingDropsProviders(t *testing.T) {
	fx := newBookingFixture(t, staticMatcher(testProviders...))
	ctx := context.Background()
	fx.cart.AddToCart(ctx, testhelpers.RandomCartItem())
	_, _ = fx.flow.Review(ctx)
	_, err := fx.flow.FindProviders(ctx)
	require.NoError(t, err)
	snap, err := fx.flow.SelectProvider("p1")
	require.NoError(t, err)
	require.NotNil(t, snap.Provider)

	snap, err = fx.flow.Review(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateReviewingRequest, snap.State)
	assert.Nil(t, snap.Provider)
	assert.Empty(t, snap.Providers)

	_, err = fx.flow.Confirm(ctx)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidTransition)
}

func TestBookingEditStartDateSkipsUnchangedDate(t *testing.T) {
	fx := newBookingFixture(t, staticMatcher(testProviders...))
	ctx := context.Background()
	line := fx.cart.AddToCart(ctx, model.CartItem{ID: 7, Title: "Generator", Quantity: 1, Price: 300, StartDate: "2025-06-01"})
	_, _ = fx.flow.Review(ctx)

	before := fx.kv.BatchCount()
	item, err := fx.flow.EditStartDate(ctx, line.CartID, "2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, line, item)
	assert.Equal(t, before, fx.kv.BatchCount())

	item, err = fx.flow.EditStartDate(ctx, line.CartID, "2025-06-02")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-02", item.StartDate)
	assert.Equal(t, before+1, fx.kv.BatchCount())
}
