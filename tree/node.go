// Package tree holds the node type and key ordering shared by
// the tree implementations and iterators in this module.
package tree

import (
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
)

// Node is one key-value pair placed in a tree.
// A node is owned by exactly one slot: its parent's Left or Right,
// or the tree root. There is no parent pointer.
type Node[K, V any] struct {
	Key         K
	Value       V
	Left, Right *Node[K, V]
}

func NodeOf[K, V any](k K, v V) *Node[K, V] {
	return &Node[K, V]{
		Key:   k,
		Value: v,
	}
}

// Entry returns the node's key and value.
func (n *Node[K, V]) Entry() (K, V) {
	return n.Key, n.Value
}

type Order int

const (
	Less Order = iota - 1
	Equal
	Greater
)

func (o Order) String() string {
	switch o {
	case Less:
		return "Less"
	case Equal:
		return "Equal"
	case Greater:
		return "Greater"
	default:
		return "<invalid tree.Order>"
	}
}

// Comparator returns a negative number if l < r, zero if l == r
// and a positive number if l > r.
// It must define a strict total order which does not change while
// any tree is using it.
type Comparator[K any] func(l, r K) int

// Compare turns the result of cmp into an Order.
func (cmp Comparator[K]) Compare(l, r K) Order {
	c := cmp(l, r)
	switch {
	case c < 0:
		return Less
	case c > 0:
		return Greater
	default:
		return Equal
	}
}

func Compare[T constraints.Ordered](l, r T) Order {
	if l < r {
		return Less
	} else if l > r {
		return Greater
	} else {
		return Equal
	}
}

// Ordered is the natural Comparator for ordered types.
func Ordered[K constraints.Ordered](l, r K) int {
	return int(Compare(l, r))
}

// Textual compares the fmt.Sprint rendering of l and r.
//
// This is not a well-founded ordering in general: 10 sorts before 9,
// and distinct keys with the same rendering collide.
// Only use it when the textual form of K is already ordered the way
// you want, and prefer an explicit Comparator otherwise.
func Textual[K any](l, r K) int {
	return strings.Compare(fmt.Sprint(l), fmt.Sprint(r))
}
