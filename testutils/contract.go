package testutils

import (
	"fmt"
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lepak.sg/simplemap/simplemap"
)

// MapContract runs the behaviour every simplemap.Map must share against
// maps made by newMap. Keys are always set in ascending order, so an
// implementation may iterate in either key or insertion order.
func MapContract(t *testing.T, newMap func() simplemap.Map[int, string]) {
	tests := []struct {
		name string
		do   func(t *testing.T, m simplemap.Map[int, string])
	}{
		{
			name: "empty",
			do: func(t *testing.T, m simplemap.Map[int, string]) {
				assert.Equal(t, 0, m.Len())
				assert.False(t, m.ContainsKey(1))

				_, err := m.Get(1)
				assert.ErrorIs(t, err, simplemap.ErrKeyNotFound)

				err = m.ForEach(func(k int, v string) {
					t.Errorf("ForEach callback was called: %d->%s", k, v)
				})
				assert.ErrorIs(t, err, simplemap.ErrEmpty)

				assert.False(t, m.Keys().Next(), "keys")
				assert.False(t, m.Values().Next(), "values")

				prev, ok, err := m.Remove(1)
				assert.NoError(t, err)
				assert.False(t, ok)
				assert.Equal(t, "", prev)
			},
		},
		{
			name: "set then get",
			do: func(t *testing.T, m simplemap.Map[int, string]) {
				prev, ok, err := m.Set(1, "one")
				require.NoError(t, err)
				assert.False(t, ok)
				assert.Equal(t, "", prev)

				v, err := m.Get(1)
				require.NoError(t, err)
				assert.Equal(t, "one", v)
				assert.True(t, m.ContainsKey(1))
				assert.Equal(t, 1, m.Len())
			},
		},
		{
			name: "update returns previous",
			do: func(t *testing.T, m simplemap.Map[int, string]) {
				_, _, err := m.Set(1, "one")
				require.NoError(t, err)

				prev, ok, err := m.Set(1, "uno")
				require.NoError(t, err)
				assert.True(t, ok)
				assert.Equal(t, "one", prev)
				assert.Equal(t, 1, m.Len())

				// setting an equal value is still an update
				prev, ok, err = m.Set(1, "uno")
				require.NoError(t, err)
				assert.True(t, ok)
				assert.Equal(t, "uno", prev)
				assert.Equal(t, 1, m.Len())
			},
		},
		{
			name: "missing key",
			do: func(t *testing.T, m simplemap.Map[int, string]) {
				fill(t, m, 1, 2, 3)

				_, err := m.Get(4)
				assert.ErrorIs(t, err, simplemap.ErrKeyNotFound)

				var knf *simplemap.KeyNotFoundError[int]
				if assert.ErrorAs(t, err, &knf) {
					assert.Equal(t, 4, knf.Key)
				}
				assert.False(t, m.ContainsKey(4))
			},
		},
		{
			name: "remove shrinks",
			do: func(t *testing.T, m simplemap.Map[int, string]) {
				fill(t, m, 1, 2, 3)

				prev, ok, err := m.Remove(2)
				require.NoError(t, err)
				assert.True(t, ok)
				assert.Equal(t, "2", prev)
				assert.Equal(t, 2, m.Len())

				_, err = m.Get(2)
				assert.ErrorIs(t, err, simplemap.ErrKeyNotFound)
				assert.False(t, m.ContainsKey(2))

				prev, ok, err = m.Remove(2)
				require.NoError(t, err)
				assert.False(t, ok)
				assert.Equal(t, "", prev)
				assert.Equal(t, 2, m.Len())

				assert.Equal(t, []int{1, 3}, collect(m.Keys()))
			},
		},
		{
			name: "iterate",
			do: func(t *testing.T, m simplemap.Map[int, string]) {
				fill(t, m, 1, 2, 3, 4, 5)

				assert.Equal(t, []int{1, 2, 3, 4, 5}, collect(m.Keys()))
				assert.Equal(t, []string{"1", "2", "3", "4", "5"}, collect(m.Values()))

				var ks []int
				var vs []string
				err := m.ForEach(func(k int, v string) {
					ks = append(ks, k)
					vs = append(vs, v)
				})
				require.NoError(t, err)
				assert.Equal(t, []int{1, 2, 3, 4, 5}, ks)
				assert.Equal(t, []string{"1", "2", "3", "4", "5"}, vs)
			},
		},
		{
			name: "remove all while iterating",
			do: func(t *testing.T, m simplemap.Map[int, string]) {
				fill(t, m, 1, 2, 3, 4, 5, 6, 7)

				var seen []int
				i := m.Keys()
				for i.Next() {
					seen = append(seen, i.Item())
					i.Remove()
				}

				assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, seen)
				assert.Equal(t, 0, m.Len())
				assert.ErrorIs(t, m.ForEach(func(int, string) {}), simplemap.ErrEmpty)
			},
		},
		{
			name: "remove some while iterating values",
			do: func(t *testing.T, m simplemap.Map[int, string]) {
				fill(t, m, 1, 2, 3, 4, 5, 6, 7)

				var seen []string
				i := m.Values()
				for i.Next() {
					v := i.Item()
					seen = append(seen, v)
					if n, _ := strconv.Atoi(v); n%3 != 0 {
						i.Remove()
					}
				}

				assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "7"}, seen)
				assert.Equal(t, []int{3, 6}, collect(m.Keys()))
				assert.Equal(t, 2, m.Len())
			},
		},
		{
			name: "remove twice panics",
			do: func(t *testing.T, m simplemap.Map[int, string]) {
				fill(t, m, 1, 2)

				i := m.Keys()
				require.True(t, i.Next())
				i.Remove()
				assert.Panics(t, i.Remove)
				assert.Equal(t, 1, m.Len())
			},
		},
		{
			name: "random against builtin map",
			do: func(t *testing.T, m simplemap.Map[int, string]) {
				rd := rand.New(rand.NewSource(0x5eed))
				ref := make(map[int]string)

				for op := 0; op < 2000; op++ {
					k := rd.Intn(200)
					if rd.Intn(3) == 0 {
						prev, ok, err := m.Remove(k)
						require.NoError(t, err)
						refPrev, refOk := ref[k]
						require.Equal(t, refOk, ok, "remove %d", k)
						require.Equal(t, refPrev, prev, "remove %d", k)
						delete(ref, k)
					} else {
						v := fmt.Sprint(op)
						prev, ok, err := m.Set(k, v)
						require.NoError(t, err)
						refPrev, refOk := ref[k]
						require.Equal(t, refOk, ok, "set %d", k)
						require.Equal(t, refPrev, prev, "set %d", k)
						ref[k] = v
					}
					require.Equal(t, len(ref), m.Len())
				}

				for k, v := range ref {
					got, err := m.Get(k)
					require.NoError(t, err)
					assert.Equal(t, v, got)
				}

				assert.Len(t, collect(m.Keys()), len(ref))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.do(t, newMap())
		})
	}
}

// MapContractNilKeys checks that nil keys are rejected without
// changing the map.
func MapContractNilKeys(t *testing.T, newMap func() simplemap.Map[*int, string]) {
	m := newMap()
	one := 1

	_, _, err := m.Set(&one, "one")
	require.NoError(t, err)

	_, _, err = m.Set(nil, "nil")
	assert.ErrorIs(t, err, simplemap.ErrInvalidArgument)

	_, err = m.Get(nil)
	assert.ErrorIs(t, err, simplemap.ErrInvalidArgument)

	_, _, err = m.Remove(nil)
	assert.ErrorIs(t, err, simplemap.ErrInvalidArgument)

	assert.False(t, m.ContainsKey(nil))
	assert.Equal(t, 1, m.Len())

	v, err := m.Get(&one)
	require.NoError(t, err)
	assert.Equal(t, "one", v)
}

// fill sets each key to its decimal form.
func fill(t *testing.T, m simplemap.Map[int, string], keys ...int) {
	t.Helper()
	for _, k := range keys {
		_, _, err := m.Set(k, strconv.Itoa(k))
		require.NoError(t, err)
	}
}

func collect[T any](i simplemap.Iterator[T]) (out []T) {
	for i.Next() {
		out = append(out, i.Item())
	}
	return
}
