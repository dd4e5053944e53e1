package core

import (
	"fmt"
	"strings"

	"github.com/nikolaydubina/fpdecimal"
)

// OrderBook keeps the two sides of resting orders and matches incoming
// orders against the opposite side under price-time priority.
//
// Each side is an AVL tree of price levels plus a cached reference to the
// best level (max-price for bids, min-price for asks). The cache is
// maintained in lock-step with every tree mutation, never recomputed per
// call: it is non-nil exactly when the side's tree is non-empty and always
// equals the tree's extremum. A flat price index avoids a tree probe when
// an order arrives at a price that already has a level.
type OrderBook struct {
	bids *levelTree
	asks *levelTree

	bestBid *PriceLevel
	bestAsk *PriceLevel

	priceLevels map[string]*PriceLevel
}

// NewOrderBook creates an empty book
func NewOrderBook() *OrderBook {
	return &OrderBook{
		bids:        newLevelTree(),
		asks:        newLevelTree(),
		priceLevels: make(map[string]*PriceLevel),
	}
}

// IsEmpty returns true if the given side holds no resting orders
func (b *OrderBook) IsEmpty(side Side) bool {
	if side == Buy {
		return b.bids.IsEmpty()
	}
	return b.asks.IsEmpty()
}

// BestLevel returns the best price level of the given side, or nil.
// The returned level is live book state; callers must not mutate it.
func (b *OrderBook) BestLevel(side Side) *PriceLevel {
	if side == Buy {
		return b.bestBid
	}
	return b.bestAsk
}

// AddRestingOrder inserts the order into its side of the book: joining the
// existing level at its price, or creating one and refreshing the cached
// best reference if the new level is now the best.
func (b *OrderBook) AddRestingOrder(order *Order) {
	if order.Side() == Buy {
		b.bestBid = b.addOrder(b.bids, b.bestBid, order)
	} else {
		b.bestAsk = b.addOrder(b.asks, b.bestAsk, order)
	}
}

func (b *OrderBook) addOrder(tree *levelTree, best *PriceLevel, order *Order) *PriceLevel {
	key := order.Price().String()

	if level, ok := b.priceLevels[key]; ok {
		// Key unchanged, so the tree entry needs no rebalance.
		level.AddOrder(order)
		tree.Update(level.price, level)
		return best
	}

	level := NewPriceLevel(order.Price())
	level.AddOrder(order)
	tree.Insert(level.price, level)
	b.priceLevels[key] = level

	if best == nil {
		return level
	}
	if order.Side() == Buy && best.price.LessThan(level.price) {
		return level
	}
	if order.Side() == Sell && best.price.GreaterThan(level.price) {
		return level
	}
	return best
}

// ExecuteOrder runs the matching loop for an incoming order against the
// opposite side. Each iteration pops the highest-priority maker at the best
// crossing level, matches the minimum of the two remaining quantities at
// the maker's resting price and emits one trade record per party. A
// partially filled maker is readmitted to the front of its level; exhausted
// levels are removed and the best reference advanced to the tree's new
// extremum. Whatever quantity the loop leaves unfilled is inserted as a new
// resting order.
func (b *OrderBook) ExecuteOrder(taker *Order, res *ExecResult) {
	makerSide := taker.Side().Opposite()

	for taker.RemainingQuantity().GreaterThan(fpdecimal.Zero) && b.crossesBest(taker, makerSide) {
		best := b.BestLevel(makerSide)
		if best.IsEmpty() {
			best = b.advanceBestLevel(makerSide)
			if best == nil {
				break
			}
		}

		maker := best.PopOrder()
		if !maker.Matches(taker) {
			best.ReadmitOrder(maker)
			break
		}

		matched := minDecimal(maker.RemainingQuantity(), taker.RemainingQuantity())
		maker.DecreaseRemaining(matched)
		taker.DecreaseRemaining(matched)

		// Trades execute at the resting order's price, never the
		// aggressor's.
		res.appendFill(maker, matched, maker.Price())
		res.appendFill(taker, matched, maker.Price())

		if maker.RemainingQuantity().GreaterThan(fpdecimal.Zero) {
			// Maker absorbed the rest of the taker; front of the queue
			// keeps its time priority.
			best.ReadmitOrder(maker)
		}
	}

	if best := b.BestLevel(makerSide); best != nil && best.IsEmpty() {
		b.advanceBestLevel(makerSide)
	}

	if taker.RemainingQuantity().GreaterThan(fpdecimal.Zero) {
		b.AddRestingOrder(taker)
	}
}

// crossesBest reports whether the order's limit reaches the maker side's
// best price. An empty side never crosses.
func (b *OrderBook) crossesBest(order *Order, makerSide Side) bool {
	best := b.BestLevel(makerSide)
	if best == nil {
		return false
	}
	return order.MatchesPrice(best.price)
}

// advanceBestLevel drops the current, exhausted best level of the given
// side from its tree and price index, re-derives the best from the tree's
// new extremum and persists it.
func (b *OrderBook) advanceBestLevel(side Side) *PriceLevel {
	if side == Buy {
		if b.bestBid == nil {
			return nil
		}
		delete(b.priceLevels, b.bestBid.price.String())
		b.bids.Delete(b.bestBid.price)
		b.bestBid = b.bids.Max()
		return b.bestBid
	}

	if b.bestAsk == nil {
		return nil
	}
	delete(b.priceLevels, b.bestAsk.price.String())
	b.asks.Delete(b.bestAsk.price)
	b.bestAsk = b.asks.Min()
	return b.bestAsk
}

// CancelOrder removes a resting order via its level back-reference, O(1)
// rather than a tree search. Returns false if the order is not resting.
// A level emptied by the cancel is removed from its tree and the price
// index immediately; a zero-order level must never remain addressable as
// best.
func (b *OrderBook) CancelOrder(order *Order) bool {
	if order == nil {
		return false
	}

	level := order.PriceLevel()
	if level == nil {
		return false
	}

	if !level.CancelOrder(order) {
		return false
	}

	if level.IsEmpty() {
		b.removeLevel(order.Side(), level)
	}
	return true
}

func (b *OrderBook) removeLevel(side Side, level *PriceLevel) {
	delete(b.priceLevels, level.price.String())

	if side == Buy {
		b.bids.Delete(level.price)
		if b.bestBid == level {
			b.bestBid = b.bids.Max()
		}
		return
	}

	b.asks.Delete(level.price)
	if b.bestAsk == level {
		b.bestAsk = b.asks.Min()
	}
}

// LevelSnapshot is one (price, total quantity) entry of a book snapshot
type LevelSnapshot struct {
	Price         fpdecimal.Decimal
	TotalQuantity fpdecimal.Decimal
}

// PriceLevels returns the side's levels ordered best-to-worst: descending
// prices for bids, ascending for asks. The snapshot reflects live state.
func (b *OrderBook) PriceLevels(side Side) []LevelSnapshot {
	visit := func(out *[]LevelSnapshot) func(fpdecimal.Decimal, *PriceLevel) bool {
		return func(_ fpdecimal.Decimal, level *PriceLevel) bool {
			*out = append(*out, LevelSnapshot{
				Price:         level.Price(),
				TotalQuantity: level.TotalQuantity(),
			})
			return true
		}
	}

	if side == Buy {
		out := make([]LevelSnapshot, 0, b.bids.Size())
		b.bids.Descend(visit(&out))
		return out
	}

	out := make([]LevelSnapshot, 0, b.asks.Size())
	b.asks.Ascend(visit(&out))
	return out
}

// String implements fmt.Stringer interface
func (b *OrderBook) String() string {
	builder := strings.Builder{}

	builder.WriteString("Ask:")
	for _, level := range b.PriceLevels(Sell) {
		builder.WriteString(fmt.Sprintf("\n%s -> %s", level.Price.String(), level.TotalQuantity.String()))
	}
	builder.WriteString("\n")

	builder.WriteString("Bid:")
	for _, level := range b.PriceLevels(Buy) {
		builder.WriteString(fmt.Sprintf("\n%s -> %s", level.Price.String(), level.TotalQuantity.String()))
	}
	builder.WriteString("\n")

	return builder.String()
}

// minDecimal returns the minimum of two decimals
func minDecimal(a, b fpdecimal.Decimal) fpdecimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}
