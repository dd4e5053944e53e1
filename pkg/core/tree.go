package core

import "github.com/nikolaydubina/fpdecimal"

// treeNode is a node of the price tree.
type treeNode struct {
	key    fpdecimal.Decimal
	level  *PriceLevel
	height int
	left   *treeNode
	right  *treeNode
}

func (n *treeNode) leftHeight() int {
	if n.left != nil {
		return n.left.height
	}
	return 0
}

func (n *treeNode) rightHeight() int {
	if n.right != nil {
		return n.right.height
	}
	return 0
}

// balance is left height minus right height; legal values after any
// public tree call are -1, 0 and 1.
func (n *treeNode) balance() int {
	return n.leftHeight() - n.rightHeight()
}

func (n *treeNode) minNode() *treeNode {
	if n.left == nil {
		return n
	}
	return n.left.minNode()
}

func (n *treeNode) maxNode() *treeNode {
	if n.right == nil {
		return n
	}
	return n.right.maxNode()
}

// levelTree is an AVL tree mapping price to its PriceLevel. One side of the
// book owns one tree; prices are unique keys so there are no comparator
// ties. Extrema are re-derived by descent, which keeps rotations free of
// parent bookkeeping at the same O(log n) per order.
type levelTree struct {
	root *treeNode
	size int
}

func newLevelTree() *levelTree {
	return &levelTree{}
}

// IsEmpty returns true if the tree has no nodes
func (t *levelTree) IsEmpty() bool {
	return t.root == nil
}

// Size returns the number of price levels in the tree
func (t *levelTree) Size() int {
	return t.size
}

// Insert adds a price level keyed by price. Inserting an existing key
// replaces the stored level instead of duplicating the node.
func (t *levelTree) Insert(key fpdecimal.Decimal, level *PriceLevel) {
	if t.Find(key) != nil {
		t.Update(key, level)
		return
	}
	t.root = insertNode(t.root, &treeNode{key: key, level: level, height: 1})
	t.size++
}

// Delete removes the node with the given key; absent keys are a no-op.
func (t *levelTree) Delete(key fpdecimal.Decimal) {
	if t.Find(key) == nil {
		return
	}
	t.root = deleteNode(t.root, key)
	t.size--
}

// Find returns the level stored at key, or nil
func (t *levelTree) Find(key fpdecimal.Decimal) *PriceLevel {
	node := t.root
	for node != nil {
		if key.Equal(node.key) {
			return node.level
		}
		if key.LessThan(node.key) {
			node = node.left
		} else {
			node = node.right
		}
	}
	return nil
}

// Update replaces the level stored at key without restructuring. Absent
// keys are a no-op.
func (t *levelTree) Update(key fpdecimal.Decimal, level *PriceLevel) {
	node := t.root
	for node != nil {
		if key.Equal(node.key) {
			node.level = level
			return
		}
		if key.LessThan(node.key) {
			node = node.left
		} else {
			node = node.right
		}
	}
}

// Min returns the level at the smallest key, or nil
func (t *levelTree) Min() *PriceLevel {
	if t.root == nil {
		return nil
	}
	return t.root.minNode().level
}

// Max returns the level at the largest key, or nil
func (t *levelTree) Max() *PriceLevel {
	if t.root == nil {
		return nil
	}
	return t.root.maxNode().level
}

// Ascend walks the tree in increasing key order until fn returns false
func (t *levelTree) Ascend(fn func(key fpdecimal.Decimal, level *PriceLevel) bool) {
	ascend(t.root, fn)
}

// Descend walks the tree in decreasing key order until fn returns false
func (t *levelTree) Descend(fn func(key fpdecimal.Decimal, level *PriceLevel) bool) {
	descend(t.root, fn)
}

func ascend(node *treeNode, fn func(fpdecimal.Decimal, *PriceLevel) bool) bool {
	if node == nil {
		return true
	}
	if !ascend(node.left, fn) {
		return false
	}
	if !fn(node.key, node.level) {
		return false
	}
	return ascend(node.right, fn)
}

func descend(node *treeNode, fn func(fpdecimal.Decimal, *PriceLevel) bool) bool {
	if node == nil {
		return true
	}
	if !descend(node.right, fn) {
		return false
	}
	if !fn(node.key, node.level) {
		return false
	}
	return descend(node.left, fn)
}

// insertNode descends to the leaf position, then rebalances on the way
// back up: heights first, then one of the LL/LR/RL/RR rotations whenever a
// node's balance factor leaves {-1, 0, 1}.
func insertNode(root, node *treeNode) *treeNode {
	if root == nil {
		return node
	}
	if node.key.LessThan(root.key) {
		root.left = insertNode(root.left, node)
	} else {
		root.right = insertNode(root.right, node)
	}

	root.height = 1 + maxInt(root.leftHeight(), root.rightHeight())

	bf := root.balance()
	if bf > 1 {
		if node.key.LessThan(root.left.key) {
			return rotateRight(root)
		}
		root.left = rotateLeft(root.left)
		return rotateRight(root)
	}
	if bf < -1 {
		if node.key.GreaterThan(root.right.key) {
			return rotateLeft(root)
		}
		root.right = rotateRight(root.right)
		return rotateLeft(root)
	}

	return root
}

// deleteNode removes key from the subtree. A node with two children takes
// over its in-order successor's key and level, then the successor is
// deleted from the right subtree.
func deleteNode(root *treeNode, key fpdecimal.Decimal) *treeNode {
	if root == nil {
		return nil
	}

	if key.LessThan(root.key) {
		root.left = deleteNode(root.left, key)
	} else if key.GreaterThan(root.key) {
		root.right = deleteNode(root.right, key)
	} else {
		if root.left == nil {
			return root.right
		}
		if root.right == nil {
			return root.left
		}
		successor := root.right.minNode()
		root.key = successor.key
		root.level = successor.level
		root.right = deleteNode(root.right, successor.key)
	}

	root.height = 1 + maxInt(root.leftHeight(), root.rightHeight())

	bf := root.balance()
	if bf > 1 {
		if root.left.balance() >= 0 {
			return rotateRight(root)
		}
		root.left = rotateLeft(root.left)
		return rotateRight(root)
	}
	if bf < -1 {
		if root.right.balance() <= 0 {
			return rotateLeft(root)
		}
		root.right = rotateRight(root.right)
		return rotateLeft(root)
	}

	return root
}

func rotateLeft(z *treeNode) *treeNode {
	y := z.right
	z.right = y.left
	y.left = z
	z.height = 1 + maxInt(z.leftHeight(), z.rightHeight())
	y.height = 1 + maxInt(y.leftHeight(), y.rightHeight())
	return y
}

func rotateRight(z *treeNode) *treeNode {
	y := z.left
	z.left = y.right
	y.right = z
	z.height = 1 + maxInt(z.leftHeight(), z.rightHeight())
	y.height = 1 + maxInt(y.leftHeight(), y.rightHeight())
	return y
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
