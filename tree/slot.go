package tree

// A slot is a **Node: the address of either the tree root or some
// node's Left or Right field. Mutating through a slot replaces the
// subtree it owns, so no parent pointers are needed.

// Find descends from root looking for k. It returns the slot holding
// the node with key k, or the empty slot where k would be inserted.
// Only one path is followed, so this takes O(height) comparisons.
func Find[K, V any](root **Node[K, V], k K, cmp Comparator[K]) **Node[K, V] {
	slot := root

	for *slot != nil {
		switch cmp.Compare(k, (*slot).Key) {
		case Less:
			slot = &(*slot).Left
		case Greater:
			slot = &(*slot).Right
		case Equal:
			return slot
		default:
			panic("unreachable")
		}
	}

	return slot
}

// Unlink removes the node held in slot from its tree and returns
// the key and value it held.
//
// A node with at most one child is replaced by that child.
// A node with two children takes the key and value of its in-order
// successor (the leftmost node of its right subtree) and the successor
// is unlinked instead. In that case the *Node in slot stays in the tree,
// which iterators holding it must account for.
func Unlink[K, V any](slot **Node[K, V]) (K, V) {
	n := *slot
	if n == nil {
		panic("cannot Unlink an empty slot")
	}

	k, v := n.Key, n.Value

	switch {
	case n.Left == nil:
		*slot = n.Right
		n.Right = nil
	case n.Right == nil:
		*slot = n.Left
		n.Left = nil
	default:
		succ := &n.Right
		for (*succ).Left != nil {
			succ = &(*succ).Left
		}

		s := *succ
		n.Key, n.Value = s.Key, s.Value
		// the successor has no left child
		*succ = s.Right
		s.Right = nil
	}

	return k, v
}
