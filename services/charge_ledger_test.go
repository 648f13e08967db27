package services

import (
	"errors"
	"testing"
	"time"

	"lodging-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	items   map[uint]models.ChargeableItem
	written []models.BookingCharge
	lookups [][]uint
	err     error
}

func (c *fakeCatalog) FindChargeableItems(ids []uint) (map[uint]models.ChargeableItem, error) {
	c.lookups = append(c.lookups, ids)
	if c.err != nil {
		return nil, c.err
	}
	out := map[uint]models.ChargeableItem{}
	for _, id := range ids {
		if it, ok := c.items[id]; ok {
			out[id] = it
		}
	}
	return out, nil
}

func (c *fakeCatalog) CreateCharges(charges []models.BookingCharge) error {
	c.written = append(c.written, charges...)
	return nil
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{items: map[uint]models.ChargeableItem{
		1: {ID: 1, ItemName: "Towel", ChargeAmount: 50000},
		2: {ID: 2, ItemName: "Bed sheet", ChargeAmount: 120000},
	}}
}

func TestChargeLedger_Attach(t *testing.T) {
	catalog := newFakeCatalog()
	at := time.Date(2025, 3, 12, 16, 0, 0, 0, time.UTC)

	res, err := ChargeLedger{}.Attach(catalog, 42, []ChargeLine{
		{ChargeableItemID: 1, Quantity: 2},
		{ChargeableItemID: 2, Quantity: 1},
		{ChargeableItemID: 1, Quantity: 1},
	}, at)
	require.NoError(t, err)

	assert.Equal(t, int64(100000+120000+50000), res.Total)
	require.Len(t, res.Charges, 3)
	assert.Empty(t, res.Skipped)
	assert.Equal(t, res.Charges, catalog.written)

	first := res.Charges[0]
	assert.Equal(t, uint(42), first.BookingID)
	assert.Equal(t, "Towel", first.ItemName)
	assert.Equal(t, int64(50000), first.UnitPrice)
	assert.Equal(t, int64(100000), first.ChargeAtMoment)
	assert.Equal(t, at, first.CreatedAt)

	// duplicate ids are looked up once
	require.Len(t, catalog.lookups, 1)
	assert.ElementsMatch(t, []uint{1, 2}, catalog.lookups[0])
}

func TestChargeLedger_NoLines(t *testing.T) {
	catalog := newFakeCatalog()

	res, err := ChargeLedger{}.Attach(catalog, 1, nil, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Total)
	assert.Empty(t, catalog.lookups)
	assert.Empty(t, catalog.written)
}

func TestChargeLedger_AllMissing(t *testing.T) {
	catalog := newFakeCatalog()

	res, err := ChargeLedger{}.Attach(catalog, 1, []ChargeLine{{ChargeableItemID: 9, Quantity: 1}}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Total)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "chargeable item not found", res.Skipped[0].Reason)
	assert.Empty(t, catalog.written)
}

func TestChargeLedger_InvalidLines(t *testing.T) {
	for _, line := range []ChargeLine{
		{ChargeableItemID: 1, Quantity: 0},
		{ChargeableItemID: 1, Quantity: -3},
		{ChargeableItemID: 0, Quantity: 1},
	} {
		_, err := ChargeLedger{}.Attach(newFakeCatalog(), 1, []ChargeLine{line}, time.Now())
		assert.ErrorIs(t, err, ErrInvalidInput, "%+v", line)
	}
}

func TestChargeLedger_LookupError(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.err = errors.New("connection refused")

	_, err := ChargeLedger{}.Attach(catalog, 1, []ChargeLine{{ChargeableItemID: 1, Quantity: 1}}, time.Now())
	assert.EqualError(t, err, "connection refused")
}
