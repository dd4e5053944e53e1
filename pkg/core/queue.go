package core

// OrderNode is one slot in an OrderQueue. Callers hold on to the node
// returned by PushBack/PushFront so a later Remove is O(1) without a scan.
type OrderNode struct {
	order *Order
	next  *OrderNode
	prev  *OrderNode
	queue *OrderQueue
}

// Order returns the order stored in the node
func (n *OrderNode) Order() *Order {
	return n.order
}

// OrderQueue is the FIFO of resting orders at one price. Insertion order is
// arrival order is priority order; PushFront exists only to restore a
// partially filled maker ahead of everyone currently resting.
type OrderQueue struct {
	head *OrderNode
	tail *OrderNode
	size int
}

// NewOrderQueue creates an empty queue
func NewOrderQueue() *OrderQueue {
	return &OrderQueue{}
}

// Size returns the number of queued orders
func (q *OrderQueue) Size() int {
	return q.size
}

// IsEmpty returns true if no orders are queued
func (q *OrderQueue) IsEmpty() bool {
	return q.size == 0
}

// PushBack appends an order at the tail and returns its node handle
func (q *OrderQueue) PushBack(order *Order) *OrderNode {
	node := &OrderNode{order: order, queue: q}
	if q.tail == nil {
		q.head = node
		q.tail = node
	} else {
		node.prev = q.tail
		q.tail.next = node
		q.tail = node
	}
	q.size++
	return node
}

// PushFront inserts an order at the head and returns its node handle
func (q *OrderQueue) PushFront(order *Order) *OrderNode {
	node := &OrderNode{order: order, queue: q}
	if q.head == nil {
		q.head = node
		q.tail = node
	} else {
		node.next = q.head
		q.head.prev = node
		q.head = node
	}
	q.size++
	return node
}

// PopFront removes and returns the highest-priority order, or nil when empty
func (q *OrderQueue) PopFront() *Order {
	node := q.head
	if node == nil {
		return nil
	}

	q.head = node.next
	if q.head != nil {
		q.head.prev = nil
	} else {
		q.tail = nil
	}
	q.size--

	node.next = nil
	node.queue = nil
	return node.order
}

// Remove unlinks the given node. Removing a node that is not a member of
// this queue is a no-op returning false.
func (q *OrderQueue) Remove(node *OrderNode) bool {
	if node == nil || node.queue != q {
		return false
	}

	if node.prev != nil {
		node.prev.next = node.next
	} else {
		q.head = node.next
	}

	if node.next != nil {
		node.next.prev = node.prev
	} else {
		q.tail = node.prev
	}

	node.next = nil
	node.prev = nil
	node.queue = nil
	q.size--
	return true
}

// Orders returns the queued orders in priority order. O(n), inspection only.
func (q *OrderQueue) Orders() []*Order {
	orders := make([]*Order, 0, q.size)
	for node := q.head; node != nil; node = node.next {
		orders = append(orders, node.order)
	}
	return orders
}
