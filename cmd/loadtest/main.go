package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/nikolaydubina/fpdecimal"
	"golang.org/x/time/rate"

	"github.com/erain9/limitbook/pkg/core"
	"github.com/erain9/limitbook/pkg/id"
	"github.com/erain9/limitbook/pkg/loadgen"
)

func main() {
	cfg, err := loadgen.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	engine := core.NewMatchingEngine(id.NewCounter("load-"))
	rng := rand.New(rand.NewSource(cfg.Seed))

	var limiter *rate.Limiter
	if cfg.RatePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), 1)
	}

	// Submit latency in microseconds, three significant figures.
	hist := hdrhistogram.New(1, 10_000_000, 3)
	ctx := context.Background()

	var trades int
	start := time.Now()

	for i := 0; i < cfg.NumOrders; i++ {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				log.Fatalf("Rate limiter failed: %v", err)
			}
		}

		order, err := core.NewLimitOrder("", randomSide(rng), randomQuantity(rng, cfg), randomPrice(rng, cfg))
		if err != nil {
			log.Fatalf("Failed to build order: %v", err)
		}

		submitStart := time.Now()
		res, err := engine.Submit(order)
		if err != nil {
			log.Fatalf("Failed to submit order: %v", err)
		}
		if err := hist.RecordValue(time.Since(submitStart).Microseconds()); err != nil {
			log.Fatalf("Failed to record latency: %v", err)
		}
		trades += len(res.Trades)
	}

	elapsed := time.Since(start)

	fmt.Printf("Submitted %d orders in %v (%.0f orders/sec)\n",
		cfg.NumOrders, elapsed, float64(cfg.NumOrders)/elapsed.Seconds())
	fmt.Printf("Trades emitted: %d\n", trades)
	fmt.Printf("Resting bid levels: %d, ask levels: %d\n",
		len(engine.OrderBook().PriceLevels(core.Buy)),
		len(engine.OrderBook().PriceLevels(core.Sell)))
	fmt.Println("Submit latency (us):")
	fmt.Printf("  p50=%d p90=%d p99=%d p99.9=%d max=%d\n",
		hist.ValueAtQuantile(50),
		hist.ValueAtQuantile(90),
		hist.ValueAtQuantile(99),
		hist.ValueAtQuantile(99.9),
		hist.Max())
}

func randomSide(rng *rand.Rand) core.Side {
	if rng.Intn(2) == 0 {
		return core.Buy
	}
	return core.Sell
}

func randomPrice(rng *rand.Rand, cfg *loadgen.Config) fpdecimal.Decimal {
	offset := float64(rng.Intn(cfg.PriceLevels)) - float64(cfg.PriceLevels)/2
	return fpdecimal.FromFloat(cfg.MidPrice + offset*cfg.TickSize)
}

func randomQuantity(rng *rand.Rand, cfg *loadgen.Config) fpdecimal.Decimal {
	q := rng.Float64() * cfg.MaxQuantity
	if q < 0.001 {
		q = 0.001
	}
	return fpdecimal.FromFloat(q)
}
