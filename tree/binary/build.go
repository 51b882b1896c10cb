package binary

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"go.lepak.sg/simplemap/simplemap"
	"go.lepak.sg/simplemap/tree"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

var (
	ErrNothingToBuild = errors.New("nothing to build")
	ErrLengthMismatch = errors.New("pre- and in-order traversals have different lengths")
	ErrDuplicateKey   = errors.New("duplicated key in traversal")
	ErrNotInOrder     = errors.New("in-order traversal is not sorted by the comparator")
	ErrKeyMismatch    = errors.New("pre-order key not found in in-order traversal")
	ErrShapeMismatch  = errors.New("traversals do not describe the same tree")
)

// BuildRandom builds a Map with num pairs.
// Keys are in the range [0, num) and are inserted in a random order.
// Each value is its key squared.
// The seed for the random insert order is a parameter,
// which ensures repeatable results.
func BuildRandom(num int, seed int64) *Map[int, int] {
	rd := rand.New(rand.NewSource(seed))

	keys := make([]int, num)
	for i := 0; i < num; i++ {
		keys[i] = i
	}

	rd.Shuffle(num, func(i, j int) {
		keys[i], keys[j] = keys[j], keys[i]
	})

	m := NewOrdered[int, int]()
	for _, k := range keys {
		// int keys are never absent
		_, _, _ = m.Set(k, k*k)
	}

	return m
}

// BuildRandomBalanced builds a balanced Map with num pairs, like
// BuildRandom, by trying random insert orders until one comes out
// balanced. Up to workers attempts run in parallel.
// The seed for every attempt is drawn from seed, in attempt order.
//
// Along with the Map, the attempt number that built it is returned.
// If several attempts succeed at once, the earliest wins.
// If ctx is done before any attempt succeeds, its error is returned.
func BuildRandomBalanced(
	ctx context.Context, num int, seed int64, workers int) (*Map[int, int], int, error) {
	if workers <= 0 {
		workers = 1
	}

	rd := rand.New(rand.NewSource(seed))

	found, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(found)
	sema := semaphore.NewWeighted(int64(workers))

	var (
		mu      sync.Mutex
		best    *Map[int, int]
		bestAtt int
	)

	for attempt := 1; gctx.Err() == nil; attempt++ {
		// Acquire may succeed on a done context if a slot is free,
		// hence the check in the loop condition as well.
		if err := sema.Acquire(gctx, 1); err != nil {
			break
		}

		attempt, attemptSeed := attempt, rd.Int63()
		g.Go(func() error {
			defer sema.Release(1)

			m := BuildRandom(num, attemptSeed)
			if !m.Balanced() {
				return nil
			}

			mu.Lock()
			defer mu.Unlock()
			if best == nil || attempt < bestAtt {
				best, bestAtt = m, attempt
			}
			cancel()

			return nil
		})
	}

	// workers never return errors, this only waits
	_ = g.Wait()

	if best != nil {
		return best, bestAtt, nil
	}

	return nil, 0, ctx.Err()
}

// BuildFromTraversals rebuilds a Map from the pre-order and in-order
// traversals of its keys, as produced by PreOrder and Keys.
// value gives the value for each key; if it is nil, values are zero.
// cmp orders the keys as in New.
//
// The in-order traversal of a search tree is its keys sorted by cmp,
// so in is checked for that. Setting the keys in pre-order then
// recreates the tree, which is checked against pre at the end.
// Time O(N*height), space O(N).
func BuildFromTraversals[K, V any](
	cmp tree.Comparator[K], pre, in []K, value func(K) V) (*Map[K, V], error) {
	if len(in) == 0 {
		return nil, ErrNothingToBuild
	}

	if len(in) != len(pre) {
		return nil, ErrLengthMismatch
	}

	m := New[K, V](cmp)

	for i, k := range in {
		if simplemap.IsAbsent(k) {
			return nil, simplemap.ErrNilKey
		}
		if i == 0 {
			continue
		}

		switch m.cmp.Compare(in[i-1], k) {
		case tree.Less:
		case tree.Equal:
			return nil, fmt.Errorf("in-order key %v: %w", k, ErrDuplicateKey)
		default:
			return nil, fmt.Errorf("in-order keys %v, %v: %w", in[i-1], k, ErrNotInOrder)
		}
	}

	for _, k := range pre {
		if simplemap.IsAbsent(k) {
			return nil, simplemap.ErrNilKey
		}

		if _, found := slices.BinarySearchFunc[K](in, k, m.cmp); !found {
			return nil, fmt.Errorf("pre-order key %v: %w", k, ErrKeyMismatch)
		}

		slot := tree.Find(&m.root, k, m.cmp)
		if *slot != nil {
			return nil, fmt.Errorf("pre-order key %v: %w", k, ErrDuplicateKey)
		}

		var v V
		if value != nil {
			v = value(k)
		}
		*slot = tree.NodeOf(k, v)
		m.size++
	}

	// Any permutation of in builds some tree, but only one of them
	// walks back out as pre.
	i := 0
	m.PreOrder(func(k K, _ V) bool {
		if m.cmp.Compare(k, pre[i]) != tree.Equal {
			return false
		}
		i++
		return true
	})
	if i != len(pre) {
		return nil, fmt.Errorf("pre-order key %v at %d: %w", pre[i], i, ErrShapeMismatch)
	}

	return m, nil
}
