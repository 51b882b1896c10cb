package simplemap

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is the kind of every error about a key that
	// no Map accepts. Match it with errors.Is.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNilKey is returned when an absent (nil) key is passed to
	// Set, Get or Remove. See IsAbsent.
	ErrNilKey = fmt.Errorf("%w: nil key", ErrInvalidArgument)

	// ErrKeyNotFound matches every *KeyNotFoundError under errors.Is.
	ErrKeyNotFound = errors.New("key not found")

	// ErrEmpty is returned by ForEach on a map with no pairs.
	ErrEmpty = errors.New("cannot apply a function to no pairs")
)

// KeyNotFoundError is returned by Get when the key is not in the map.
type KeyNotFoundError[K any] struct {
	Key K
}

func (e *KeyNotFoundError[K]) Error() string {
	return fmt.Sprintf("key not found: %v", e.Key)
}

// Is makes errors.Is(err, ErrKeyNotFound) work without wrapping.
func (e *KeyNotFoundError[K]) Is(target error) bool {
	return target == ErrKeyNotFound
}
