package lmap

import (
	"go.lepak.sg/simplemap/simplemap"
)

var (
	_ simplemap.Iterator[int]    = keys[int, string]{}
	_ simplemap.Iterator[string] = values[int, string]{}
)

// Iterator returns an iterator object starting at the head
// of the LinkedMap. The usual idiom for using an iterator is:
//
//	i := l.Iterator()
//	for i.Next() {
//		k, v := i.Entry()
//		// do stuff with k and v ...
//	}
//
// The iterator may be abandoned at any time. Just like
// LinkedMap, it is not safe for concurrent use, although
// multiple goroutines each holding their own iterator
// may independently iterate over the LinkedMap.
func (l *LinkedMap[K, V]) Iterator() *Iterator[K, V] {
	return &Iterator[K, V]{
		l: l,
	}
}

// Keys returns an iterator over the keys in insertion order.
func (l *LinkedMap[K, V]) Keys() simplemap.Iterator[K] {
	return keys[K, V]{l.Iterator()}
}

// Values returns an iterator over the values in insertion order.
func (l *LinkedMap[K, V]) Values() simplemap.Iterator[V] {
	return values[K, V]{l.Iterator()}
}

// Iterator is a map iterator object. See LinkedMap.Iterator.
type Iterator[K comparable, V any] struct {
	l         *LinkedMap[K, V]
	cur, hare *entry[K, V]
	// resume is where to continue after cur was removed
	resume  *entry[K, V]
	started bool
}

// Next advances the iterator and returns whether there is anything
// to be read with Entry.
// Next must be called before Entry.
func (i *Iterator[K, V]) Next() bool {
	switch {
	case !i.started:
		i.started = true
		i.cur = i.l.head
		i.hare = i.l.head
	case i.cur != nil:
		i.cur = i.cur.next
	default:
		i.cur, i.resume = i.resume, nil
	}

	if i.cur == nil {
		return false
	}

	if i.hare != nil && i.hare.next != nil {
		i.hare = i.hare.next.next
	} else {
		// hare has reached the end, iteration will too
		i.hare = nil
	}

	if i.cur == i.hare {
		panic("cycle detected, iteration will not end")
	}

	return true
}

// Entry returns the current key and value of the iterator.
func (i *Iterator[K, V]) Entry() (k K, v V) {
	return i.cur.k, i.cur.v
}

// Remove deletes the current entry from the map. The next call to
// Next yields the entry that followed it.
func (i *Iterator[K, V]) Remove() {
	if i.cur == nil {
		panic("Remove called without a current item")
	}

	e := i.cur
	i.cur, i.resume = nil, e.next
	i.l.remove(e)
}

type keys[K comparable, V any] struct {
	*Iterator[K, V]
}

func (i keys[K, _]) Item() K {
	return i.cur.k
}

type values[K comparable, V any] struct {
	*Iterator[K, V]
}

func (i values[_, V]) Item() V {
	return i.cur.v
}
