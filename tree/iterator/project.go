package iterator

import (
	"go.lepak.sg/simplemap/simplemap"
)

var (
	_ simplemap.Iterator[int]    = Keys[int, string]{}
	_ simplemap.Iterator[string] = Values[int, string]{}
)

// Keys projects an InOrderStack to the keys of its nodes.
// Next and Remove go straight to the underlying iterator.
type Keys[K, V any] struct {
	*InOrderStack[K, V]
}

// Item returns the current key of the iterator.
func (i Keys[K, _]) Item() K {
	return i.InOrderStack.Item().Key
}

// Values projects an InOrderStack to the values of its nodes.
// Next and Remove go straight to the underlying iterator.
type Values[K, V any] struct {
	*InOrderStack[K, V]
}

// Item returns the current value of the iterator.
func (i Values[_, V]) Item() V {
	return i.InOrderStack.Item().Value
}
