package core

import (
	"testing"

	"github.com/nikolaydubina/fpdecimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T, orderID string, side Side, quantity, price float64) *Order {
	t.Helper()
	order, err := NewLimitOrder(orderID, side, fpdecimal.FromFloat(quantity), fpdecimal.FromFloat(price))
	require.NoError(t, err)
	return order
}

func queueIDs(q *OrderQueue) []string {
	ids := make([]string, 0, q.Size())
	for _, o := range q.Orders() {
		ids = append(ids, o.ID())
	}
	return ids
}

func TestOrderQueue_FIFO(t *testing.T) {
	q := NewOrderQueue()
	assert.True(t, q.IsEmpty())
	assert.Nil(t, q.PopFront())

	a := newTestOrder(t, "a", Buy, 1, 10)
	b := newTestOrder(t, "b", Buy, 2, 10)
	c := newTestOrder(t, "c", Buy, 3, 10)

	q.PushBack(a)
	q.PushBack(b)
	q.PushBack(c)

	assert.Equal(t, 3, q.Size())
	assert.Equal(t, []string{"a", "b", "c"}, queueIDs(q))

	assert.Same(t, a, q.PopFront())
	assert.Same(t, b, q.PopFront())
	assert.Same(t, c, q.PopFront())
	assert.Nil(t, q.PopFront())
	assert.Equal(t, 0, q.Size())
}

func TestOrderQueue_PushFrontKeepsPriority(t *testing.T) {
	q := NewOrderQueue()

	a := newTestOrder(t, "a", Sell, 1, 10)
	b := newTestOrder(t, "b", Sell, 2, 10)

	q.PushBack(a)
	q.PushBack(b)

	// Pop the head and put it back; it must stay ahead of b.
	popped := q.PopFront()
	q.PushFront(popped)

	assert.Equal(t, []string{"a", "b"}, queueIDs(q))
}

func TestOrderQueue_RemoveArbitraryNode(t *testing.T) {
	q := NewOrderQueue()

	a := newTestOrder(t, "a", Buy, 1, 10)
	b := newTestOrder(t, "b", Buy, 2, 10)
	c := newTestOrder(t, "c", Buy, 3, 10)

	q.PushBack(a)
	nodeB := q.PushBack(b)
	q.PushBack(c)

	assert.True(t, q.Remove(nodeB))
	assert.Equal(t, []string{"a", "c"}, queueIDs(q))

	// Removing an already-unlinked node is a no-op.
	assert.False(t, q.Remove(nodeB))
	assert.Equal(t, 2, q.Size())

	assert.False(t, q.Remove(nil))
}

func TestOrderQueue_RemoveHeadAndTail(t *testing.T) {
	q := NewOrderQueue()

	a := newTestOrder(t, "a", Buy, 1, 10)
	b := newTestOrder(t, "b", Buy, 2, 10)
	c := newTestOrder(t, "c", Buy, 3, 10)

	nodeA := q.PushBack(a)
	q.PushBack(b)
	nodeC := q.PushBack(c)

	assert.True(t, q.Remove(nodeA))
	assert.Equal(t, []string{"b", "c"}, queueIDs(q))

	assert.True(t, q.Remove(nodeC))
	assert.Equal(t, []string{"b"}, queueIDs(q))
}

func TestOrderQueue_RemoveSoleElement(t *testing.T) {
	q := NewOrderQueue()
	a := newTestOrder(t, "a", Buy, 1, 10)
	node := q.PushBack(a)

	assert.True(t, q.Remove(node))
	assert.True(t, q.IsEmpty())
	assert.Nil(t, q.PopFront())

	// Head and tail emptied together: the queue is reusable.
	q.PushBack(a)
	assert.Equal(t, []string{"a"}, queueIDs(q))
}

func TestOrderQueue_RemoveFromOtherQueue(t *testing.T) {
	q1 := NewOrderQueue()
	q2 := NewOrderQueue()

	a := newTestOrder(t, "a", Buy, 1, 10)
	node := q1.PushBack(a)

	assert.False(t, q2.Remove(node))
	assert.Equal(t, 1, q1.Size())
}
