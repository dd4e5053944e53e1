package core

import (
	"encoding/json"

	"github.com/nikolaydubina/fpdecimal"
)

// Side represents buy or sell side of the order
type Side int

// Order sides
const (
	Sell Side = iota
	Buy
)

// String returns side as string
func (s Side) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// Opposite returns the other side of the book
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

// Role represents maker or taker role
type Role string

// Order roles
const (
	MAKER Role = "MAKER"
	TAKER Role = "TAKER"
)

// Order stores information about a single limit order. The remaining
// quantity is mutated in place during matching so a partially filled maker
// keeps its identity when readmitted to its price level.
type Order struct {
	id        string
	side      Side
	price     fpdecimal.Decimal
	quantity  fpdecimal.Decimal
	remaining fpdecimal.Decimal
	canceled  bool

	// Location while resting; both nil once filled or canceled.
	level *PriceLevel
	node  *OrderNode
}

// NewLimitOrder creates new constant object Order
func NewLimitOrder(orderID string, side Side, quantity, price fpdecimal.Decimal) (*Order, error) {
	if quantity.LessThanOrEqual(fpdecimal.Zero) {
		return nil, ErrInvalidQuantity
	}

	if price.LessThanOrEqual(fpdecimal.Zero) {
		return nil, ErrInvalidPrice
	}

	return &Order{
		id:        orderID,
		side:      side,
		price:     price,
		quantity:  quantity,
		remaining: quantity,
	}, nil
}

// ID returns OrderID field copy
func (o *Order) ID() string {
	return o.id
}

// Side returns side of the Order
func (o *Order) Side() Side {
	return o.side
}

// Price returns Price field copy
func (o *Order) Price() fpdecimal.Decimal {
	return o.price
}

// Quantity returns the original quantity of the Order
func (o *Order) Quantity() fpdecimal.Decimal {
	return o.quantity
}

// RemainingQuantity returns the unfilled quantity of the Order
func (o *Order) RemainingQuantity() fpdecimal.Decimal {
	return o.remaining
}

// FilledQuantity returns the quantity already matched
func (o *Order) FilledQuantity() fpdecimal.Decimal {
	return o.quantity.Sub(o.remaining)
}

// DecreaseRemaining reduces the unfilled quantity by the matched amount
func (o *Order) DecreaseRemaining(quantity fpdecimal.Decimal) {
	o.remaining = o.remaining.Sub(quantity)
}

// IsFilled returns true once no quantity is left
func (o *Order) IsFilled() bool {
	return !o.remaining.GreaterThan(fpdecimal.Zero)
}

// IsResting returns true while the order sits in a price level queue
func (o *Order) IsResting() bool {
	return o.level != nil
}

// PriceLevel returns the level the order currently rests in, or nil
func (o *Order) PriceLevel() *PriceLevel {
	return o.level
}

// IsCanceled returns Canceled status
func (o *Order) IsCanceled() bool {
	return o.canceled
}

// Cancel set Canceled status
func (o *Order) Cancel() bool {
	o.canceled = true
	return o.canceled
}

// MatchesPrice reports whether the order's limit reaches the given price:
// at or above for buys, at or below for sells.
func (o *Order) MatchesPrice(price fpdecimal.Decimal) bool {
	if o.side == Buy {
		return o.price.GreaterThanOrEqual(price)
	}
	return o.price.LessThanOrEqual(price)
}

// Matches reports whether two orders can trade against each other.
func (o *Order) Matches(other *Order) bool {
	if o.side == other.side {
		return false
	}
	return o.MatchesPrice(other.price)
}

func (o *Order) setLocation(level *PriceLevel, node *OrderNode) {
	o.level = level
	o.node = node
}

func (o *Order) clearLocation() {
	o.level = nil
	o.node = nil
}

// MarshalJSON implements custom JSON marshaling for Order
func (o *Order) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID        string `json:"id"`
		Side      string `json:"side"`
		Price     string `json:"price"`
		Quantity  string `json:"quantity"`
		Remaining string `json:"remaining"`
		Canceled  bool   `json:"canceled"`
	}{
		ID:        o.id,
		Side:      o.side.String(),
		Price:     o.price.String(),
		Quantity:  o.quantity.String(),
		Remaining: o.remaining.String(),
		Canceled:  o.canceled,
	})
}

// String implements Stringer interface
func (o *Order) String() string {
	j, _ := o.MarshalJSON()
	return string(j)
}
