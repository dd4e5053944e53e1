package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/nikolaydubina/fpdecimal"
	"github.com/rs/zerolog/log"

	"github.com/erain9/limitbook/config"
	"github.com/erain9/limitbook/pkg/core"
	"github.com/erain9/limitbook/pkg/id"
	"github.com/erain9/limitbook/pkg/logging"
	"github.com/erain9/limitbook/pkg/messaging/kafka"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logging.Setup(logging.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Format == "pretty",
	})

	engine := core.NewMatchingEngine(id.NewCounter("order-"))

	if cfg.Feed.Enabled {
		sender, err := kafka.NewKafkaSender(cfg.Feed.BrokerAddr, cfg.Feed.Topic)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create execution feed sender")
		}
		defer sender.Close()
		engine.SetSender(sender)
	}

	// Seed a small book: three bid levels, three ask levels, no crossing.
	seed := []struct {
		side     core.Side
		price    float64
		quantity float64
	}{
		{core.Buy, 1, 3},
		{core.Buy, 2, 2},
		{core.Buy, 3, 1},
		{core.Sell, 4, 1},
		{core.Sell, 5, 2},
		{core.Sell, 6, 3},
	}

	for _, s := range seed {
		order, err := engine.NewLimitOrder(s.side, fpdecimal.FromFloat(s.quantity), fpdecimal.FromFloat(s.price))
		if err != nil {
			log.Fatal().Err(err).Msg("failed to build order")
		}
		if _, err := engine.Submit(order); err != nil {
			log.Fatal().Err(err).Msg("failed to submit order")
		}
	}

	printBook(engine.OrderBook())

	// A buy large enough to sweep every ask level.
	taker, err := engine.NewLimitOrder(core.Buy, fpdecimal.FromFloat(6.0), fpdecimal.FromFloat(7.0))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build order")
	}
	res, err := engine.Submit(taker)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to submit order")
	}

	printTrades(res)
	printBook(engine.OrderBook())
}

func printBook(book *core.OrderBook) {
	red := color.New(color.FgRed).SprintfFunc()
	green := color.New(color.FgGreen).SprintfFunc()

	fmt.Println("=====================")
	fmt.Println("Side | Price | Volume")

	// Asks print top-down from worst to best so the ladder reads like a
	// market depth view.
	asks := book.PriceLevels(core.Sell)
	for i := len(asks) - 1; i >= 0; i-- {
		fmt.Println(red("Ask  | %5s | %s", asks[i].Price.String(), asks[i].TotalQuantity.String()))
	}
	fmt.Println("-----")
	for _, level := range book.PriceLevels(core.Buy) {
		fmt.Println(green("Bid  | %5s | %s", level.Price.String(), level.TotalQuantity.String()))
	}
}

func printTrades(res *core.ExecResult) {
	cyan := color.New(color.FgCyan).SprintfFunc()

	fmt.Printf("\nTrades for %s (processed=%s, left=%s):\n",
		res.Order.ID(), res.Processed.String(), res.Left.String())
	for _, t := range res.Trades {
		fmt.Println(cyan("  %s %s %s %s @ %s qty %s",
			t.ID, t.OrderID, t.Side.String(), t.Role, t.Price.String(), t.Quantity.String()))
	}
}
