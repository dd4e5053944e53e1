package core

import (
	"fmt"
	"testing"

	"github.com/nikolaydubina/fpdecimal"

	"github.com/erain9/limitbook/pkg/id"
)

// BenchmarkRestingInsert measures the no-match fast path: orders that rest
// without touching the matching loop.
func BenchmarkRestingInsert(b *testing.B) {
	engine := NewMatchingEngine(id.NewCounter("bench-"))

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		orderID := fmt.Sprintf("bid-%d", i)
		price := fpdecimal.FromFloat(100.0 - float64(i%200)*0.1)
		quantity := fpdecimal.FromFloat(1.0 + float64(i%5))

		order, _ := NewLimitOrder(orderID, Buy, quantity, price)
		_, _ = engine.Submit(order)
	}
}

// BenchmarkSingleLevelMatching measures matching against a deep best level.
func BenchmarkSingleLevelMatching(b *testing.B) {
	engine := NewMatchingEngine(id.NewCounter("bench-"))

	// Seed a deep ask book so takers never run out of contra liquidity.
	for i := 0; i < 100; i++ {
		orderID := fmt.Sprintf("ask-%d", i)
		price := fpdecimal.FromFloat(100.0 + float64(i)*0.1)
		quantity := fpdecimal.FromFloat(1.0 + float64(i%5))

		order, _ := NewLimitOrder(orderID, Sell, quantity, price)
		_, _ = engine.Submit(order)
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		orderID := fmt.Sprintf("taker-%d", i)
		quantity := fpdecimal.FromFloat(2.0)
		price := fpdecimal.FromFloat(100.5)

		order, _ := NewLimitOrder(orderID, Buy, quantity, price)
		_, _ = engine.Submit(order)
	}
}

// BenchmarkMultiLevelMatching measures a taker sweeping several price
// levels, restoring the consumed liquidity between iterations.
func BenchmarkMultiLevelMatching(b *testing.B) {
	engine := NewMatchingEngine(id.NewCounter("bench-"))

	for i := 0; i < 50; i++ {
		for j := 0; j < 5; j++ {
			orderID := fmt.Sprintf("ask-%d-%d", i, j)
			price := fpdecimal.FromFloat(100.0 + float64(i)*0.1)
			quantity := fpdecimal.FromFloat(1.0)

			order, _ := NewLimitOrder(orderID, Sell, quantity, price)
			_, _ = engine.Submit(order)
		}
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		orderID := fmt.Sprintf("sweep-%d", i)
		price := fpdecimal.FromFloat(102.0)
		quantity := fpdecimal.FromFloat(10.0)

		order, _ := NewLimitOrder(orderID, Buy, quantity, price)
		_, _ = engine.Submit(order)

		if i < b.N-1 {
			b.StopTimer()
			for j := 0; j < 10; j++ {
				restoreID := fmt.Sprintf("restore-%d-%d", i, j)
				restorePrice := fpdecimal.FromFloat(100.0 + float64(j)*0.1)
				restoreQty := fpdecimal.FromFloat(1.0)

				restore, _ := NewLimitOrder(restoreID, Sell, restoreQty, restorePrice)
				_, _ = engine.Submit(restore)
			}
			b.StartTimer()
		}
	}
}

// BenchmarkCancel measures cancellation through the level back-reference.
func BenchmarkCancel(b *testing.B) {
	engine := NewMatchingEngine(id.NewCounter("bench-"))

	ids := make([]string, b.N)
	for i := 0; i < b.N; i++ {
		orderID := fmt.Sprintf("rest-%d", i)
		price := fpdecimal.FromFloat(50.0 - float64(i%500)*0.01)
		quantity := fpdecimal.FromFloat(1.0)

		order, _ := NewLimitOrder(orderID, Buy, quantity, price)
		_, _ = engine.Submit(order)
		ids[i] = orderID
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		engine.Cancel(ids[i])
	}
}
