package binary

import (
	"fmt"
	"io"
	"math/bits"
	"strings"

	"go.lepak.sg/simplemap/simplemap"
	"go.lepak.sg/simplemap/tree"
	"go.lepak.sg/simplemap/tree/iterator"
	"golang.org/x/exp/constraints"
)

var _ simplemap.Map[int, string] = (*Map[int, string])(nil)

// Map is an ordered map backed by a binary search tree. It is safe
// for concurrent reads (searching, iterating, etc) but not for
// concurrent reads and writes (setting, removing).
//
// The zero Map has no comparator and must not be used.
// Create one with New or NewOrdered.
//
// This tree implementation is not self-balancing. Inserting keys in
// sorted order makes it a linked list, so every operation here is
// iterative rather than recursive (except String).
//
// Invariants:
//   - At any node N in the tree, all node keys in the subtree rooted at N.Left
//     will be less than N.Key
//   - At any node N in the tree, all node keys in the subtree rooted at N.Right
//     will be greater than N.Key
//   - For every possible key, there will be at most one node with that key
//     in the tree (No duplicates allowed)
//   - size is the number of nodes, and is 0 iff root is nil
type Map[K, V any] struct {
	// the tree is rooted here.
	// don't return nodes directly - client could mutate keys or children!
	root *tree.Node[K, V]
	size int
	cmp  tree.Comparator[K]
}

// New returns an empty Map ordered by cmp.
// If cmp is nil, keys are ordered by their fmt.Sprint form
// (see tree.Textual), which is rarely what you want.
func New[K, V any](cmp tree.Comparator[K]) *Map[K, V] {
	if cmp == nil {
		cmp = tree.Textual[K]
	}

	return &Map[K, V]{
		cmp: cmp,
	}
}

// NewOrdered returns an empty Map ordered by the < operator on K.
func NewOrdered[K constraints.Ordered, V any]() *Map[K, V] {
	return New[K, V](tree.Ordered[K])
}

// Set associates v with k. If k was already in the map, the old value
// is replaced and returned with ok == true, and the size is unchanged.
// Otherwise a node is added and ok is false.
// A nil k returns simplemap.ErrNilKey.
func (m *Map[K, V]) Set(k K, v V) (prev V, ok bool, err error) {
	if simplemap.IsAbsent(k) {
		err = simplemap.ErrNilKey
		return
	}

	slot := tree.Find(&m.root, k, m.cmp)
	if n := *slot; n != nil {
		prev, n.Value = n.Value, v
		return prev, true, nil
	}

	*slot = tree.NodeOf(k, v)
	m.size++

	return
}

// Get returns the value associated with k.
// If k is not in the map, the error is a *simplemap.KeyNotFoundError[K].
// A nil k returns simplemap.ErrNilKey.
func (m *Map[K, V]) Get(k K) (v V, err error) {
	if simplemap.IsAbsent(k) {
		err = simplemap.ErrNilKey
		return
	}

	n := *tree.Find(&m.root, k, m.cmp)
	if n == nil {
		err = &simplemap.KeyNotFoundError[K]{Key: k}
		return
	}

	return n.Value, nil
}

// Len returns the number of pairs in the map. This is a constant-time operation.
func (m *Map[_, _]) Len() int {
	return m.size
}

// ContainsKey searches for k in the tree and returns true if it was found.
// A nil k is never found.
func (m *Map[K, _]) ContainsKey(k K) bool {
	if simplemap.IsAbsent(k) {
		return false
	}

	return *tree.Find(&m.root, k, m.cmp) != nil
}

// Remove deletes k from the map. If k was in the map, its value is
// returned with ok == true. Removing a missing key is not an error.
// A nil k returns simplemap.ErrNilKey.
func (m *Map[K, V]) Remove(k K) (prev V, ok bool, err error) {
	if simplemap.IsAbsent(k) {
		err = simplemap.ErrNilKey
		return
	}

	slot := tree.Find(&m.root, k, m.cmp)
	if *slot == nil {
		return
	}

	_, prev = tree.Unlink(slot)
	m.size--

	return prev, true, nil
}

// remove is handed to iterators for Remove.
func (m *Map[K, V]) remove(k K) {
	if _, ok, _ := m.Remove(k); !ok {
		panic(fmt.Sprintf("iterator removed key %v which is not in the map", k))
	}
}

// Clear removes every pair from the map.
func (m *Map[_, _]) Clear() {
	m.root = nil
	m.size = 0
}

// Lower returns the largest key in the tree that is less than k,
// and its value. If there is no such key, ok is false.
func (m *Map[K, V]) Lower(k K) (lk K, lv V, ok bool) {
	// The answer is the last node where the search for k turned right.
	// If k is found, keep searching its left subtree for the maximum,
	// which turns right at every step.
	n := m.root
	for n != nil {
		switch m.cmp.Compare(k, n.Key) {
		case tree.Less, tree.Equal:
			n = n.Left
		case tree.Greater:
			lk, lv, ok = n.Key, n.Value, true
			n = n.Right
		default:
			panic("unreachable")
		}
	}

	return
}

// Iterator returns an iterator object that yields the nodes of the
// tree in ascending key order. Nodes must not be modified except for
// their Value. See iterator.InOrderStack.
func (m *Map[K, V]) Iterator() *iterator.InOrderStack[K, V] {
	return iterator.NewInOrderStack(m.root, 0, m.remove)
}

// Descending returns an iterator object that yields the nodes of the
// tree in descending key order.
func (m *Map[K, V]) Descending() *iterator.InOrderStack[K, V] {
	return iterator.NewInOrderReverse(m.root, 0, m.remove)
}

// Keys returns an iterator over the keys in ascending order.
func (m *Map[K, V]) Keys() simplemap.Iterator[K] {
	return iterator.Keys[K, V]{InOrderStack: m.Iterator()}
}

// Values returns an iterator over the values in ascending key order.
func (m *Map[K, V]) Values() simplemap.Iterator[V] {
	return iterator.Values[K, V]{InOrderStack: m.Iterator()}
}

// ForEach calls f for each pair in the tree in ascending key order.
// The tree must not be modified by f.
// On an empty map, ForEach returns simplemap.ErrEmpty and f is not called.
func (m *Map[K, V]) ForEach(f func(k K, v V)) error {
	if m.root == nil {
		return simplemap.ErrEmpty
	}

	i := iterator.NewInOrderStack[K, V](m.root, 0, nil)
	for i.Next() {
		f(i.Item().Entry())
	}

	return nil
}

// PreOrder applies f to each pair in the tree in pre-order:
// a node before its left subtree, before its right subtree.
// If f returns false, the iteration is stopped early.
// Setting the keys of a fresh Map in pre-order rebuilds the same tree.
func (m *Map[K, V]) PreOrder(f func(k K, v V) bool) {
	if m.root == nil {
		return
	}

	stack := []*tree.Node[K, V]{m.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !f(n.Key, n.Value) {
			return
		}

		// right goes on first so left comes off first
		if n.Right != nil {
			stack = append(stack, n.Right)
		}
		if n.Left != nil {
			stack = append(stack, n.Left)
		}
	}
}

// InOrderCoroutine starts coroutine-style in-order iteration over keys.
// The usage is as follows:
//
//	co := m.InOrderCoroutine()
//	for k := range co.Items() {
//		... do stuff with k ...
//		if k meets some stopping condition {
//			co.Stop()
//		}
//	}
//
// Note: InOrderCoroutine starts a goroutine, which exits when either
// Stop() is called or the iteration is finished.
// The map must not be modified until then.
func (m *Map[K, V]) InOrderCoroutine() simplemap.CoIterator[K] {
	return simplemap.CoIterate[K](m.Keys())
}

// Height returns the actual height of the tree, and the height it
// would have if it were perfectly balanced. An empty tree has height 0.
func (m *Map[K, V]) Height() (actual, ideal int) {
	// ceil(log2(size+1))
	ideal = bits.Len(uint(m.size))

	var level []*tree.Node[K, V]
	if m.root != nil {
		level = append(level, m.root)
	}

	for len(level) > 0 {
		actual++
		var next []*tree.Node[K, V]
		for _, n := range level {
			if n.Left != nil {
				next = append(next, n.Left)
			}
			if n.Right != nil {
				next = append(next, n.Right)
			}
		}
		level = next
	}

	return
}

// Balanced returns true if the tree is as short as it can be
// for the number of nodes it holds.
func (m *Map[_, _]) Balanced() bool {
	actual, ideal := m.Height()
	return actual == ideal
}

// Dump writes the tree to w, one node per line as "key: value",
// indented two spaces per level. A node with any children lists both,
// with "<>" standing for a missing child. An empty tree is just "<>".
// The first write error is returned.
//
// For example, after setting 5, 3, 8, 1, 4:
//
//	5: five
//	  3: three
//	    1: one
//	    4: four
//	  8: eight
func (m *Map[K, V]) Dump(w io.Writer) error {
	type frame struct {
		n     *tree.Node[K, V]
		depth int
	}

	stack := []frame{{m.root, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		indent := strings.Repeat("  ", f.depth)

		if f.n == nil {
			if _, err := fmt.Fprintf(w, "%s<>\n", indent); err != nil {
				return err
			}
			continue
		}

		if _, err := fmt.Fprintf(w, "%s%v: %v\n", indent, f.n.Key, f.n.Value); err != nil {
			return err
		}

		if f.n.Left != nil || f.n.Right != nil {
			stack = append(stack,
				frame{f.n.Right, f.depth + 1},
				frame{f.n.Left, f.depth + 1})
		}
	}

	return nil
}

// String returns a string representation of the tree.
// A complete binary tree with height 2 would look like this:
//
//	4: d
//	├─L─2: b
//	│   ├─L─1: a
//	│   └─R─3: c
//	└─R─6: f
//	    ├─L─5: e
//	    └─R─7: g
func (m *Map[K, V]) String() string {
	var sb strings.Builder

	if m.root == nil {
		return ""
	}

	printvisit(&sb, m.root, "", "", true, false)

	return sb.String()
}

const (
	treeMidBranch    = "├─"
	treeLastBranch   = "└─"
	treeLeftBranch   = "L─"
	treeRightBranch  = "R─"
	treeMidContinue  = "│   "
	treeLastContinue = "    "
)

func printvisit[K, V any](
	sb *strings.Builder, n *tree.Node[K, V], prefix, branch string, initial, isMid bool) {
	if !initial {
		sb.WriteString(prefix)
		if isMid {
			prefix += treeMidContinue
			sb.WriteString(treeMidBranch)
		} else {
			prefix += treeLastContinue
			sb.WriteString(treeLastBranch)
		}
		sb.WriteString(branch)
	}
	fmt.Fprintf(sb, "%v: %v\n", n.Key, n.Value)

	if n.Left != nil {
		printvisit(sb, n.Left, prefix, treeLeftBranch, false, n.Right != nil)
	}

	if n.Right != nil {
		printvisit(sb, n.Right, prefix, treeRightBranch, false, false)
	}
}
