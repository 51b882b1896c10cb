package iterator

import (
	"go.lepak.sg/simplemap/tree"
)

// InOrderStack is an iterator object over a binary tree.
// It does not rely on parent pointers, instead keeping
// an internal stack of nodes whose far subtree is still
// to be visited.
//
// The usage should be pretty familiar:
//
//	i := someTreeMap.Iterator()
//	for i.Next() {
//		k, v := i.Item().Entry()
//		... do stuff with k and v ...
//	}
//
// The iterator may be abandoned at any time. It is not restartable.
// The result of mutating the tree while iterating over it is undefined,
// except for Remove.
type InOrderStack[K, V any] struct {
	stack []*tree.Node[K, V]
	// at is the root of the next subtree to descend into.
	at *tree.Node[K, V]
	// last is the node yielded by Next, nil after Remove.
	last    *tree.Node[K, V]
	reverse bool
	remove  func(k K)
}

// Recursive in order iteration looks like this:
//	func visit(n *Node, f func(*Node)) {
//		if n == nil {
//			return
//		}
//		visit(n.Left, f)	--(1)
//		f(n)
//		visit(n.Right, f)	--(2)
//	}
// When Next is called, everything up to (1) can be run,
// all the way down to the leftmost child node. This adds
// visit stack frames and we can replicate this in i.stack.
// The associated call to Item is equivalent to f(n).
// The next call to Next continues from (2): i.at holds the
// right child of the popped node, and its left spine gets
// pushed on before popping again.
// Reverse iteration is the same with Left and Right flipped.

// NewInOrderStack creates a new ascending in-order iterator over the
// tree rooted at root.
// If the tree's height is known, pass it as heightHint.
// Otherwise it's safe to leave it as 0.
//
// remove is called by Remove with the key of the current node, and
// must delete it from the tree with tree.Unlink semantics. If remove
// is nil, Remove panics.
// Note: This is meant to be called by other tree implementations.
func NewInOrderStack[K, V any](
	root *tree.Node[K, V], heightHint int, remove func(k K)) *InOrderStack[K, V] {
	return &InOrderStack[K, V]{
		stack:  make([]*tree.Node[K, V], 0, heightHint+1),
		at:     root,
		remove: remove,
	}
}

// NewInOrderReverse is like NewInOrderStack, but iteration starts
// from the largest key and runs to the smallest.
func NewInOrderReverse[K, V any](
	root *tree.Node[K, V], heightHint int, remove func(k K)) *InOrderStack[K, V] {
	i := NewInOrderStack(root, heightHint, remove)
	i.reverse = true
	return i
}

func (i *InOrderStack[K, V]) near(n *tree.Node[K, V]) *tree.Node[K, V] {
	if i.reverse {
		return n.Right
	}
	return n.Left
}

func (i *InOrderStack[K, V]) far(n *tree.Node[K, V]) *tree.Node[K, V] {
	if i.reverse {
		return n.Left
	}
	return n.Right
}

// Next returns true if there is a next node to yield with Item.
// Next must always be called before Item.
func (i *InOrderStack[K, V]) Next() bool {
	if i == nil {
		return false
	}

	for n := i.at; n != nil; n = i.near(n) {
		i.stack = append(i.stack, n)
	}
	i.at = nil

	if len(i.stack) == 0 {
		i.last = nil
		return false
	}

	pop := i.stack[len(i.stack)-1]
	i.stack[len(i.stack)-1] = nil
	i.stack = i.stack[:len(i.stack)-1]

	i.last = pop
	i.at = i.far(pop)

	return true
}

// Item returns the current node of the iterator.
// The node must not be modified, except for its Value.
func (i *InOrderStack[K, V]) Item() *tree.Node[K, V] {
	return i.last
}

// Remove deletes the current node from the tree. The next call to
// Next yields the node that would have followed it.
func (i *InOrderStack[K, V]) Remove() {
	if i.last == nil {
		panic("Remove called without a current item")
	}

	if i.remove == nil {
		panic("Remove not supported by this iterator")
	}

	n := i.last
	i.last = nil

	// A node with two children is not detached: it takes its successor's
	// key and value, and the successor leaves its right subtree.
	// Ascending, the successor is the next item to yield, so revisit n.
	// Descending, the successor was already yielded, and the left
	// subtree in i.at is untouched.
	kept := n.Left != nil && n.Right != nil

	i.remove(n.Key)

	if kept && !i.reverse {
		i.stack = append(i.stack, n)
		i.at = nil
	}
}
