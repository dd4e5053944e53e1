package core

import (
	"testing"

	"github.com/nikolaydubina/fpdecimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertLevelAccounting checks the level's running total against the live
// sum of member remaining quantities.
func assertLevelAccounting(t *testing.T, level *PriceLevel) {
	t.Helper()
	sum := fpdecimal.Zero
	for _, o := range level.Orders() {
		sum = sum.Add(o.RemainingQuantity())
	}
	assert.True(t, level.TotalQuantity().Equal(sum),
		"total %s != live sum %s", level.TotalQuantity().String(), sum.String())
}

func TestPriceLevel_AddAndPop(t *testing.T) {
	level := NewPriceLevel(fpdecimal.FromFloat(10.0))
	assert.True(t, level.IsEmpty())

	a := newTestOrder(t, "a", Sell, 2, 10)
	b := newTestOrder(t, "b", Sell, 3, 10)

	level.AddOrder(a)
	level.AddOrder(b)
	assertLevelAccounting(t, level)
	assert.Equal(t, 2, level.Size())
	assert.Equal(t, "5", level.TotalQuantity().String())

	assert.Same(t, level, a.PriceLevel())
	assert.True(t, a.IsResting())

	popped := level.PopOrder()
	assert.Same(t, a, popped)
	assert.False(t, popped.IsResting())
	assertLevelAccounting(t, level)
	assert.Equal(t, "3", level.TotalQuantity().String())
}

func TestPriceLevel_ReadmitAfterPartialFill(t *testing.T) {
	level := NewPriceLevel(fpdecimal.FromFloat(10.0))

	a := newTestOrder(t, "a", Sell, 5, 10)
	b := newTestOrder(t, "b", Sell, 1, 10)
	level.AddOrder(a)
	level.AddOrder(b)

	maker := level.PopOrder()
	maker.DecreaseRemaining(fpdecimal.FromFloat(2.0))
	level.ReadmitOrder(maker)
	assertLevelAccounting(t, level)

	// Readmitted maker keeps priority over b.
	orders := level.Orders()
	require.Len(t, orders, 2)
	assert.Equal(t, "a", orders[0].ID())
	assert.Equal(t, "3", orders[0].RemainingQuantity().String())
	assert.Equal(t, "4", level.TotalQuantity().String())
}

func TestPriceLevel_CancelOrder(t *testing.T) {
	level := NewPriceLevel(fpdecimal.FromFloat(10.0))

	a := newTestOrder(t, "a", Buy, 2, 10)
	b := newTestOrder(t, "b", Buy, 3, 10)
	level.AddOrder(a)
	level.AddOrder(b)

	assert.True(t, level.CancelOrder(a))
	assert.False(t, a.IsResting())
	assertLevelAccounting(t, level)
	assert.Equal(t, "3", level.TotalQuantity().String())

	// Canceling an order that no longer rests here is a no-op.
	assert.False(t, level.CancelOrder(a))
	assert.Equal(t, 1, level.Size())
}

func TestPriceLevel_PopEmptyPanics(t *testing.T) {
	level := NewPriceLevel(fpdecimal.FromFloat(10.0))
	assert.Panics(t, func() { level.PopOrder() })
}

func TestPriceLevel_MixedSequenceAccounting(t *testing.T) {
	level := NewPriceLevel(fpdecimal.FromFloat(7.0))

	orders := []*Order{
		newTestOrder(t, "a", Sell, 1, 7),
		newTestOrder(t, "b", Sell, 2, 7),
		newTestOrder(t, "c", Sell, 3, 7),
		newTestOrder(t, "d", Sell, 4, 7),
	}
	for _, o := range orders {
		level.AddOrder(o)
		assertLevelAccounting(t, level)
	}

	level.CancelOrder(orders[2])
	assertLevelAccounting(t, level)

	popped := level.PopOrder()
	assertLevelAccounting(t, level)
	popped.DecreaseRemaining(fpdecimal.FromFloat(0.5))
	level.ReadmitOrder(popped)
	assertLevelAccounting(t, level)

	level.PopOrder()
	level.PopOrder()
	level.PopOrder()
	assert.True(t, level.IsEmpty())
	assert.Equal(t, "0", level.TotalQuantity().String())
}
