package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/boklen/rentals/internal/domain/errors"
	"github.com/boklen/rentals/internal/domain/model"
)

func TestCatalogQuote(t *testing.T) {
	c := NewCatalog()

	price, err := c.Quote(7, model.RentalTypeDaily, 1)
	require.NoError(t, err)
	assert.Equal(t, 300.0, price)

	price, err = c.Quote(1, model.RentalTypeMonthly, 2)
	require.NoError(t, err)
	assert.Equal(t, 72000.0, price)

	_, err = c.Quote(99, model.RentalTypeDaily, 1)
	assert.ErrorIs(t, err, domainErrors.ErrUnknownMachine)

	_, err = c.Quote(7, "weekly", 1)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidPrice)
}

func TestCatalogConfigureItem(t *testing.T) {
	c := NewCatalog()

	item, err := c.ConfigureItem(ConfigureRequest{MachineID: 7, RentalType: model.RentalTypeDaily, WithDriver: true, StartDate: "2025-06-01"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), item.ID)
	assert.Equal(t, "Generator", item.Title)
	assert.Equal(t, 1, item.Quantity)
	assert.Equal(t, 300.0, item.Price)
	assert.Equal(t, DriverIncluded, item.Driver)
	assert.Empty(t, item.CartID)

	_, err = c.ConfigureItem(ConfigureRequest{MachineID: 42, RentalType: model.RentalTypeDaily})
	assert.ErrorIs(t, err, domainErrors.ErrUnknownMachine)
}

func TestCatalogMachinesOrder(t *testing.T) {
	list := NewCatalog().Machines()
	require.NotEmpty(t, list)
	for i, m := range list {
		assert.Equal(t, int64(i+1), m.ID)
		for _, rt := range []model.RentalType{model.RentalTypeTrip, model.RentalTypeDaily, model.RentalTypeMonthly} {
			assert.Greater(t, m.Rates[rt], 0.0, "machine %d rate %s", m.ID, rt)
		}
	}
}

func TestCatalogReturnsIndependentRates(t *testing.T) {
	c := NewCatalog()

	list := c.Machines()
	for _, m := range list {
		m.Rates[model.RentalTypeDaily] = 0
	}
	m, err := c.Machine(7)
	require.NoError(t, err)
	m.Rates[model.RentalTypeDaily] = 1

	price, err := c.Quote(7, model.RentalTypeDaily, 1)
	require.NoError(t, err)
	assert.Equal(t, 300.0, price)

	price, err = NewCatalog().Quote(7, model.RentalTypeDaily, 1)
	require.NoError(t, err)
	assert.Equal(t, 300.0, price)
}
