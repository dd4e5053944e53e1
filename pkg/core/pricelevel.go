package core

import "github.com/nikolaydubina/fpdecimal"

// PriceLevel holds every resting order at one exact price on one side,
// with a running total of their remaining quantities. The total is kept in
// lock-step with the queue: after every mutation it equals the sum of the
// members' remaining quantities.
type PriceLevel struct {
	price         fpdecimal.Decimal
	totalQuantity fpdecimal.Decimal
	orders        *OrderQueue
}

// NewPriceLevel creates an empty level at the given price
func NewPriceLevel(price fpdecimal.Decimal) *PriceLevel {
	return &PriceLevel{
		price:  price,
		orders: NewOrderQueue(),
	}
}

// Price returns the level's price
func (l *PriceLevel) Price() fpdecimal.Decimal {
	return l.price
}

// TotalQuantity returns the resting quantity across all queued orders
func (l *PriceLevel) TotalQuantity() fpdecimal.Decimal {
	return l.totalQuantity
}

// Size returns the number of resting orders at this level
func (l *PriceLevel) Size() int {
	return l.orders.Size()
}

// IsEmpty returns true if no orders rest at this level
func (l *PriceLevel) IsEmpty() bool {
	return l.orders.IsEmpty()
}

// AddOrder appends an arriving order at the back of the queue
func (l *PriceLevel) AddOrder(order *Order) {
	node := l.orders.PushBack(order)
	l.totalQuantity = l.totalQuantity.Add(order.RemainingQuantity())
	order.setLocation(l, node)
}

// ReadmitOrder puts a partially filled maker back at the front of the
// queue. The order is not newly arrived: it keeps priority over everything
// currently resting at this price.
func (l *PriceLevel) ReadmitOrder(order *Order) {
	node := l.orders.PushFront(order)
	l.totalQuantity = l.totalQuantity.Add(order.RemainingQuantity())
	order.setLocation(l, node)
}

// CancelOrder removes the order from the queue by its node handle.
// Returns false if the order is not resting at this level.
func (l *PriceLevel) CancelOrder(order *Order) bool {
	if !l.orders.Remove(order.node) {
		return false
	}
	l.totalQuantity = l.totalQuantity.Sub(order.RemainingQuantity())
	order.clearLocation()
	return true
}

// PopOrder removes and returns the highest-priority order. Popping an
// empty level means the best-price cache desynchronized from the tree, a
// programming error this panics on rather than matching against a stale
// reference.
func (l *PriceLevel) PopOrder() *Order {
	order := l.orders.PopFront()
	if order == nil {
		panic("core: pop from empty price level")
	}
	l.totalQuantity = l.totalQuantity.Sub(order.RemainingQuantity())
	order.clearLocation()
	return order
}

// Orders returns the resting orders in priority order, for inspection
func (l *PriceLevel) Orders() []*Order {
	return l.orders.Orders()
}
