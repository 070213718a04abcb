package test

import (
	"math/rand"
	"sync"
	"time"

	"github.com/boklen/rentals/internal/domain/model"
)

const asciiLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomASCIIString returns a pseudo-random ASCII string within the provided bounds.
// When maxLen equals minLen the resulting string always has that exact length.
func RandomASCIIString(minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	length := minLen
	if maxLen > minLen {
		length += randomIntn(maxLen - minLen + 1)
	}
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = asciiLetters[randomIntn(len(asciiLetters))]
	}
	return string(buf)
}

var rentalTypes = []model.RentalType{model.RentalTypeTrip, model.RentalTypeDaily, model.RentalTypeMonthly}

// RandomCartItem returns a cart line without a cartId.
func RandomCartItem() model.CartItem {
	qty := 1 + randomIntn(5)
	return model.CartItem{
		ID:         int64(1 + randomIntn(20)),
		Title:      RandomASCIIString(4, 12),
		RentalType: rentalTypes[randomIntn(len(rentalTypes))],
		Driver:     "with",
		Quantity:   qty,
		Price:      float64(qty * (50 + randomIntn(500))),
	}
}

// RandomCartItems returns n random cart lines.
func RandomCartItems(n int) []model.CartItem {
	items := make([]model.CartItem, n)
	for i := range items {
		items[i] = RandomCartItem()
	}
	return items
}

func randomIntn(n int) int {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Intn(n)
}
