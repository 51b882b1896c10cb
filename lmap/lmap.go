// Package lmap provides an implementation of a linked map.
// It is the hash-backed counterpart to binary.Map: the same
// simplemap.Map contract, in insertion order instead of key order.
package lmap

import (
	"fmt"
	"reflect"

	"go.lepak.sg/simplemap/simplemap"
)

var _ simplemap.Map[int, string] = (*LinkedMap[int, string])(nil)

// LinkedMap is a map combined with a linked list. It preserves
// insertion order and therefore iteration order as well.
// Updating the value of a key does not change its position.
// LinkedMap is not safe for concurrent use.
type LinkedMap[K comparable, V any] struct {
	m map[K]*entry[K, V]

	head, tail *entry[K, V]
}

type entry[K comparable, V any] struct {
	k K
	v V

	prev, next *entry[K, V]
}

// New returns a pointer to a new LinkedMap.
func New[K comparable, V any]() *LinkedMap[K, V] {
	return &LinkedMap[K, V]{
		m: make(map[K]*entry[K, V]),
	}
}

// Copy returns a copy of the LinkedMap with the same order.
// Keys and values are copied. Note: Pointer-typed values
// will still end up pointing to the same location in memory.
func (l *LinkedMap[K, V]) Copy() *LinkedMap[K, V] {
	lcopy := New[K, V]()

	for e := l.head; e != nil; e = e.next {
		lcopy.push(&entry[K, V]{k: e.k, v: e.v})
		lcopy.m[e.k] = lcopy.tail
	}

	return lcopy
}

// checkKey rejects keys the backing Go map cannot hold: nil keys, and
// interface keys with an unhashable dynamic value, which would panic.
func checkKey[K comparable](k K) error {
	if simplemap.IsAbsent(k) {
		return simplemap.ErrNilKey
	}

	if !reflect.ValueOf(&k).Elem().Comparable() {
		return fmt.Errorf("%w: unhashable key of type %T", simplemap.ErrInvalidArgument, k)
	}

	return nil
}

func (l *LinkedMap[K, V]) remove(e *entry[K, V]) {
	if e == nil {
		panic("nil entry")
	}

	if l.head == nil || l.tail == nil {
		panic("nil head or tail")
	}

	if e.prev != nil {
		e.prev.next = e.next
	} else {
		if l.head != e {
			panic("entry has no previous node but it is not the head")
		}
		l.head = e.next
	}

	if e.next != nil {
		e.next.prev = e.prev
	} else {
		if l.tail != e {
			panic("entry has no next node but it is not the tail")
		}
		l.tail = e.prev
	}

	delete(l.m, e.k)
}

func (l *LinkedMap[K, V]) push(e *entry[K, V]) {
	if e == nil {
		panic("nil entry")
	}

	if l.head == nil && l.tail == nil {
		l.head, l.tail = e, e
		return
	}

	e.prev = l.tail
	l.tail.next = e

	e.next = nil
	l.tail = e
}

// Set behaves like the map set `l[k] = v`, also returning the
// previous value if k was present. If k is not in the map, it is
// appended to the tail of the list.
// A nil or unhashable k returns an error matching
// simplemap.ErrInvalidArgument.
func (l *LinkedMap[K, V]) Set(k K, v V) (prev V, ok bool, err error) {
	if err = checkKey(k); err != nil {
		return
	}

	e, exist := l.m[k]
	if exist {
		if e.k != k {
			panic("entry key does not match map key")
		}

		prev, e.v = e.v, v
		return prev, true, nil
	}

	e = &entry[K, V]{
		k: k,
		v: v,
	}
	l.m[k] = e
	l.push(e)

	return
}

// Get behaves like the map access `v := l[k]`, except that a missing
// key returns a *simplemap.KeyNotFoundError[K].
// A nil or unhashable k returns an error matching
// simplemap.ErrInvalidArgument.
func (l *LinkedMap[K, V]) Get(k K) (v V, err error) {
	if err = checkKey(k); err != nil {
		return
	}

	e, ok := l.m[k]
	if !ok {
		err = &simplemap.KeyNotFoundError[K]{Key: k}
		return
	}

	return e.v, nil
}

// ContainsKey behaves like `_, ok := l[k]`.
// Keys rejected by Set are never found.
func (l *LinkedMap[K, _]) ContainsKey(k K) bool {
	if checkKey(k) != nil {
		return false
	}

	_, ok := l.m[k]
	return ok
}

// Remove behaves like `delete(l, k)`, also returning the removed
// value. If the key was not found, ok will be false.
// A nil or unhashable k returns an error matching
// simplemap.ErrInvalidArgument.
func (l *LinkedMap[K, V]) Remove(k K) (prev V, ok bool, err error) {
	if err = checkKey(k); err != nil {
		return
	}

	e, ok := l.m[k]
	if !ok {
		return
	}

	l.remove(e)

	return e.v, true, nil
}

// ForEach allows ordered iteration over the map as with
// `for k, v := range l {}`. The function f is called for every
// key-value pair in order.
// On an empty map, ForEach returns simplemap.ErrEmpty.
//
// The result of modifying the map while iterating over it is undefined.
func (l *LinkedMap[K, V]) ForEach(f func(k K, v V)) error {
	if l.head == nil {
		return simplemap.ErrEmpty
	}

	hare := l.head.next

	for e := l.head; e != nil; e = e.next {
		if e == hare {
			// bug in the map, not in the caller
			panic("cycle detected, iteration will not end")
		}

		f(e.k, e.v)

		if hare != nil && hare.next != nil {
			hare = hare.next.next
		} else {
			// hare has reached the end, iteration will too
			// e will never be nil
			hare = nil
		}
	}

	return nil
}

// Len behaves like `len(l)`. This is a constant-time operation.
func (l *LinkedMap[_, _]) Len() int {
	return len(l.m)
}

// Head returns the head element of the linked list. If pop is true,
// the head element is also removed from the map and list.
// If ok is false, no element was found.
func (l *LinkedMap[K, V]) Head(pop bool) (k K, v V, ok bool) {
	if l.head == nil {
		return
	}

	k, v, ok = l.head.k, l.head.v, true

	if pop {
		l.remove(l.head)
	}

	return
}

// Tail returns the tail element of the linked list. If pop is true,
// the tail element is also removed from the map and list.
// If ok is false, no element was found.
func (l *LinkedMap[K, V]) Tail(pop bool) (k K, v V, ok bool) {
	if l.tail == nil {
		return
	}

	k, v, ok = l.tail.k, l.tail.v, true

	if pop {
		l.remove(l.tail)
	}

	return
}

// Next returns the key and value of the element after k.
// If k is not in the map, or k is already the last element,
// ok is false, and kn and vn are their zero values.
func (l *LinkedMap[K, V]) Next(k K) (kn K, vn V, ok bool) {
	if checkKey(k) != nil {
		return
	}

	e, ok := l.m[k]
	if !ok || e.next == nil {
		ok = false
		return
	}

	return e.next.k, e.next.v, true
}

// Prev returns the key and value of the element before k.
// If k is not in the map, or k is already the first element,
// ok is false, and kp and vp are their zero values.
func (l *LinkedMap[K, V]) Prev(k K) (kp K, vp V, ok bool) {
	if checkKey(k) != nil {
		return
	}

	e, ok := l.m[k]
	if !ok || e.prev == nil {
		ok = false
		return
	}

	return e.prev.k, e.prev.v, true
}
