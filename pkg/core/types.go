package core

import (
	"encoding/json"
	"strings"

	"github.com/erain9/limitbook/pkg/id"
	"github.com/erain9/limitbook/pkg/messaging"
	"github.com/nikolaydubina/fpdecimal"
)

// Trade is one party's fill in a single match. Every match between a maker
// and a taker produces exactly two records, each tagged with that party's
// order id and side, both priced at the maker's resting price.
type Trade struct {
	ID       string
	OrderID  string
	Side     Side
	Role     Role
	Price    fpdecimal.Decimal
	Quantity fpdecimal.Decimal
}

// MarshalJSON implements Marshaler interface
func (t *Trade) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID       string `json:"id"`
		OrderID  string `json:"orderID"`
		Side     string `json:"side"`
		Role     Role   `json:"role"`
		Price    string `json:"price"`
		Quantity string `json:"quantity"`
	}{
		ID:       t.ID,
		OrderID:  t.OrderID,
		Side:     t.Side.String(),
		Role:     t.Role,
		Price:    t.Price.String(),
		Quantity: t.Quantity.String(),
	})
}

// ExecResult contains information about one order submission: the trades
// it produced, how much of it executed and whether a remainder rests.
type ExecResult struct {
	// Initial order processed
	Order *Order
	// Trades executed, two records per fill event
	Trades []Trade
	// Total quantity matched for the initial order
	Processed fpdecimal.Decimal
	// Remaining quantity left for the initial order
	Left fpdecimal.Decimal
	// Whether the order (or its remainder) now rests in the book
	Stored bool

	ids id.Sequence
}

// newExecResult creates an empty result for the given order. Trade ids are
// drawn from the engine's sequence.
func newExecResult(order *Order, ids id.Sequence) *ExecResult {
	return &ExecResult{
		Order:  order,
		Trades: make([]Trade, 0),
		Left:   order.RemainingQuantity(),
		ids:    ids,
	}
}

// appendFill records one party's fill at the given price.
func (r *ExecResult) appendFill(order *Order, quantity, price fpdecimal.Decimal) {
	role := MAKER
	if order == r.Order {
		role = TAKER
	}
	r.Trades = append(r.Trades, Trade{
		ID:       r.ids.Next(),
		OrderID:  order.ID(),
		Side:     order.Side(),
		Role:     role,
		Price:    price,
		Quantity: quantity,
	})
}

// TradesFor returns the trade records tagged with the given order id
func (r *ExecResult) TradesFor(orderID string) []Trade {
	trades := make([]Trade, 0)
	for _, t := range r.Trades {
		if t.OrderID == orderID {
			trades = append(trades, t)
		}
	}
	return trades
}

// ToExecutionMessage converts the result to its messaging form.
func (r *ExecResult) ToExecutionMessage() *messaging.ExecutionMessage {
	if r == nil || r.Order == nil {
		return nil
	}

	trades := make([]messaging.Trade, len(r.Trades))
	for i, t := range r.Trades {
		trades[i] = messaging.Trade{
			ID:       t.ID,
			OrderID:  t.OrderID,
			Side:     t.Side.String(),
			Role:     string(t.Role),
			Price:    formatDecimal(t.Price),
			Quantity: formatDecimal(t.Quantity),
		}
	}

	return &messaging.ExecutionMessage{
		OrderID:      r.Order.ID(),
		ExecutedQty:  formatDecimal(r.Processed),
		RemainingQty: formatDecimal(r.Left),
		Stored:       r.Stored,
		Trades:       trades,
	}
}

// formatDecimal pads a decimal string to 3 fractional places so feed
// consumers see a fixed format.
func formatDecimal(d fpdecimal.Decimal) string {
	val := d.String()
	parts := strings.Split(val, ".")
	if len(parts) == 1 {
		return val + ".000"
	}
	if len(parts[1]) < 3 {
		return val + strings.Repeat("0", 3-len(parts[1]))
	}
	return val
}

// MarshalJSON implements json.Marshaler interface for ExecResult
func (r *ExecResult) MarshalJSON() ([]byte, error) {
	trades := make([]*Trade, len(r.Trades))
	for i := range r.Trades {
		trades[i] = &r.Trades[i]
	}

	return json.Marshal(struct {
		Order     *Order   `json:"order"`
		Trades    []*Trade `json:"trades"`
		Processed string   `json:"processed"`
		Left      string   `json:"left"`
		Stored    bool     `json:"stored"`
	}{
		Order:     r.Order,
		Trades:    trades,
		Processed: r.Processed.String(),
		Left:      r.Left.String(),
		Stored:    r.Stored,
	})
}
