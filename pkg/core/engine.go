package core

import (
	"github.com/erain9/limitbook/pkg/id"
	"github.com/erain9/limitbook/pkg/messaging"
	"github.com/nikolaydubina/fpdecimal"
	"github.com/rs/zerolog/log"
)

// MatchingEngine is the entry point for order flow: it owns the book,
// tracks every order ever accepted by id and accumulates the emitted
// trades.
//
// The engine provides no internal locking. Callers must serialize Submit
// and Cancel on one engine instance, e.g. behind a single dispatching
// goroutine; the matching core assumes exclusive access for the duration of
// each call.
type MatchingEngine struct {
	book   *OrderBook
	orders map[string]*Order
	filled map[string]*Order
	trades []Trade

	ids    id.Sequence
	sender messaging.Sender
}

// NewMatchingEngine creates an engine drawing order and trade ids from the
// given sequence.
func NewMatchingEngine(ids id.Sequence) *MatchingEngine {
	return &MatchingEngine{
		book:   NewOrderBook(),
		orders: make(map[string]*Order),
		filled: make(map[string]*Order),
		ids:    ids,
	}
}

// SetSender wires an execution feed. Send failures are logged, never
// surfaced to the submitter.
func (e *MatchingEngine) SetSender(sender messaging.Sender) {
	e.sender = sender
}

// NewLimitOrder builds an order with an engine-assigned id
func (e *MatchingEngine) NewLimitOrder(side Side, quantity, price fpdecimal.Decimal) (*Order, error) {
	return NewLimitOrder(e.ids.Next(), side, quantity, price)
}

// Submit processes an incoming order. An order with no id gets one
// assigned. Orders that cannot match — empty opposite side, or a limit that
// does not cross the opposite best — rest directly without entering the
// matching loop; everything else goes through the book's ExecuteOrder.
// Re-submission of a known id is an idempotent no-op returning no trades.
func (e *MatchingEngine) Submit(order *Order) (*ExecResult, error) {
	if order == nil {
		return nil, ErrInvalidArgument
	}

	if order.id == "" {
		order.id = e.ids.Next()
	}

	if _, ok := e.orders[order.id]; ok {
		log.Debug().Str("order_id", order.id).Msg("duplicate submission ignored")
		res := newExecResult(order, e.ids)
		res.Processed = order.FilledQuantity()
		res.Stored = order.IsResting()
		return res, nil
	}
	e.orders[order.id] = order

	res := newExecResult(order, e.ids)

	if e.restsDirectly(order) {
		e.book.AddRestingOrder(order)
	} else {
		e.book.ExecuteOrder(order, res)
	}

	res.Processed = order.FilledQuantity()
	res.Left = order.RemainingQuantity()
	res.Stored = order.IsResting()

	e.recordFills(res)
	e.publish(res)

	log.Debug().
		Str("order_id", order.ID()).
		Str("side", order.Side().String()).
		Str("price", order.Price().String()).
		Str("processed", res.Processed.String()).
		Str("left", res.Left.String()).
		Int("trades", len(res.Trades)).
		Msg("order processed")

	return res, nil
}

// Cancel removes a resting order by id. Unknown ids and orders no longer
// resting are a silent no-op returning nil; otherwise the canceled order is
// returned. The engine's stored reference is the canonical copy of mutable
// state, so cancellation always operates on it.
func (e *MatchingEngine) Cancel(orderID string) *Order {
	order, ok := e.orders[orderID]
	if !ok {
		return nil
	}

	if !e.book.CancelOrder(order) {
		return nil
	}
	order.Cancel()

	log.Debug().Str("order_id", orderID).Msg("order canceled")
	return order
}

// Order returns the engine's copy of an accepted order, or nil
func (e *MatchingEngine) Order(orderID string) *Order {
	return e.orders[orderID]
}

// OrderBook returns the engine-owned book, for inspection
func (e *MatchingEngine) OrderBook() *OrderBook {
	return e.book
}

// Trades returns every trade emitted since construction
func (e *MatchingEngine) Trades() []Trade {
	return e.trades
}

// FilledOrders returns the orders touched by at least one fill, by id
func (e *MatchingEngine) FilledOrders() map[string]*Order {
	return e.filled
}

// restsDirectly is the no-match fast path: true when the opposite side is
// completely empty or the order's limit does not reach the opposite best.
func (e *MatchingEngine) restsDirectly(order *Order) bool {
	opposite := order.Side().Opposite()
	if e.book.IsEmpty(opposite) {
		return true
	}
	best := e.book.BestLevel(opposite)
	if best == nil {
		return true
	}
	return !order.MatchesPrice(best.Price())
}

func (e *MatchingEngine) recordFills(res *ExecResult) {
	e.trades = append(e.trades, res.Trades...)
	for _, t := range res.Trades {
		if order, ok := e.orders[t.OrderID]; ok {
			e.filled[t.OrderID] = order
		}
	}
}

func (e *MatchingEngine) publish(res *ExecResult) {
	if e.sender == nil {
		return
	}

	msg := res.ToExecutionMessage()
	if msg == nil {
		return
	}

	if err := e.sender.SendExecutionMessage(msg); err != nil {
		log.Error().Err(err).Str("order_id", res.Order.ID()).Msg("failed to publish execution message")
	}
}
