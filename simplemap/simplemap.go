// Package simplemap describes the map contract shared by the containers
// in this module, along with their error kinds.
// It is the generic version of a textbook "SimpleMap" interface,
// with Go-style error returns instead of exceptions.
package simplemap

import "reflect"

// Map is implemented by every backing structure in this module:
// binary.Map (ordered by a comparator) and lmap.LinkedMap
// (ordered by insertion).
//
// None of the implementations are safe for concurrent use.
type Map[K, V any] interface {
	// Set associates v with k. If k was already present, its old
	// value is returned with ok == true.
	Set(k K, v V) (prev V, ok bool, err error)
	// Get returns the value for k, or a *KeyNotFoundError.
	Get(k K) (V, error)
	// Len returns the number of pairs.
	Len() int
	// ContainsKey reports whether k is present.
	ContainsKey(k K) bool
	// Remove deletes k. If k was present, its value is returned
	// with ok == true.
	Remove(k K) (prev V, ok bool, err error)
	// Keys and Values iterate over the map in the implementation's order.
	Keys() Iterator[K]
	Values() Iterator[V]
	// ForEach calls f for every pair in the implementation's order.
	// It returns ErrEmpty if there is nothing to visit.
	ForEach(f func(k K, v V)) error
}

// Iterator describes the iterators returned by Map.Keys and Map.Values.
// Next must always be called before Item, even for the first round of
// iteration. If Next returns false, Item must not be called.
//
// Remove deletes the element most recently returned by Item from the
// underlying map. Iteration continues from the following element.
// It panics if Next has not returned true since the last Remove.
// Any other change to the map while iterating is undefined.
//
// The usual usage of an Iterator is like this:
//
//	i := m.Keys()
//	for i.Next() {
//		k := i.Item()
//		if k is unwanted {
//			i.Remove()
//		}
//	}
type Iterator[T any] interface {
	Next() bool
	Item() T
	Remove()
}

// IsAbsent reports whether k is a nil value: a nil interface, pointer,
// map, slice, func, chan or unsafe pointer. Such keys are not accepted
// by any Map in this module.
//
// Hash-backed maps also reject an interface key whose dynamic value
// cannot be hashed (a slice in an any, say), since the builtin map
// would panic on it. Tree-backed maps only compare keys through their
// comparator and accept them.
func IsAbsent[K any](k K) bool {
	// Going through &k keeps interface-typed K from being unwrapped
	// into its dynamic type (or into an invalid Value if nil).
	v := reflect.ValueOf(&k).Elem()

	switch v.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice,
		reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return v.IsNil()
	default:
		return false
	}
}
