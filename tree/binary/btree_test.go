package binary

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lepak.sg/simplemap/simplemap"
	"go.lepak.sg/simplemap/testutils"
	"go.lepak.sg/simplemap/tree"
	"go.uber.org/goleak"
	"golang.org/x/exp/slices"
)

type setspec[K, V any] struct {
	key      K
	value    V
	wantPrev V
	wantOk   bool
}

func TestSet(t *testing.T) {
	tests := []struct {
		name string
		sets []setspec[int, string]
		post func(t *testing.T, m *Map[int, string])
	}{
		{
			name: "empty",
			post: func(t *testing.T, m *Map[int, string]) {
				assert.Nil(t, m.root)
				assert.Equal(t, 0, m.size)
			},
		},
		{
			name: "one",
			sets: []setspec[int, string]{
				{key: 1, value: "one"},
			},
			post: func(t *testing.T, m *Map[int, string]) {
				require.NotNil(t, m.root)
				assert.Equal(t, 1, m.root.Key)
				assert.Equal(t, "one", m.root.Value)
				assert.Nil(t, m.root.Left)
				assert.Nil(t, m.root.Right)
				assert.Equal(t, 1, m.size)
			},
		},
		{
			name: "one duplicate",
			sets: []setspec[int, string]{
				{key: 1, value: "one"},
				{key: 1, value: "uno", wantPrev: "one", wantOk: true},
			},
			post: func(t *testing.T, m *Map[int, string]) {
				require.NotNil(t, m.root)
				assert.Equal(t, 1, m.root.Key)
				assert.Equal(t, "uno", m.root.Value)
				assert.Nil(t, m.root.Left)
				assert.Nil(t, m.root.Right)
				assert.Equal(t, 1, m.size)
			},
		},
		{
			name: "left",
			sets: []setspec[int, string]{
				{key: 2, value: "two"},
				{key: 1, value: "one"},
			},
			post: func(t *testing.T, m *Map[int, string]) {
				require.NotNil(t, m.root)
				assert.Equal(t, 2, m.root.Key)
				require.NotNil(t, m.root.Left)
				assert.Nil(t, m.root.Right)
				assert.Equal(t, 1, m.root.Left.Key)
				assert.Nil(t, m.root.Left.Left)
				assert.Nil(t, m.root.Left.Right)
				assert.Equal(t, 2, m.size)
			},
		},
		{
			name: "right",
			sets: []setspec[int, string]{
				{key: 1, value: "one"},
				{key: 2, value: "two"},
			},
			post: func(t *testing.T, m *Map[int, string]) {
				require.NotNil(t, m.root)
				assert.Equal(t, 1, m.root.Key)
				assert.Nil(t, m.root.Left)
				require.NotNil(t, m.root.Right)
				assert.Equal(t, 2, m.root.Right.Key)
				assert.Nil(t, m.root.Right.Left)
				assert.Nil(t, m.root.Right.Right)
				assert.Equal(t, 2, m.size)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewOrdered[int, string]()

			for _, s := range tt.sets {
				prev, ok, err := m.Set(s.key, s.value)
				require.NoError(t, err)
				assert.Equal(t, s.wantOk, ok)
				assert.Equal(t, s.wantPrev, prev)
			}

			tt.post(t, m)
		})
	}
}

func TestContract(t *testing.T) {
	testutils.MapContract(t, func() simplemap.Map[int, string] {
		return NewOrdered[int, string]()
	})
}

func TestContract_NilKeys(t *testing.T) {
	testutils.MapContractNilKeys(t, func() simplemap.Map[*int, string] {
		return New[*int, string](func(l, r *int) int {
			return tree.Ordered(*l, *r)
		})
	})
}

func newExample(t *testing.T) *Map[int, string] {
	m := NewOrdered[int, string]()
	for _, kv := range []struct {
		k int
		v string
	}{{5, "five"}, {3, "three"}, {8, "eight"}, {1, "one"}, {4, "four"}} {
		_, _, err := m.Set(kv.k, kv.v)
		require.NoError(t, err)
	}
	return m
}

func keysOf[K, V any](m *Map[K, V]) (out []K) {
	i := m.Keys()
	for i.Next() {
		out = append(out, i.Item())
	}
	return
}

func TestTraversalOrder(t *testing.T) {
	m := newExample(t)

	assert.Equal(t, []int{1, 3, 4, 5, 8}, keysOf(m))
	assert.Equal(t, 5, m.Len())

	var desc []int
	i := m.Descending()
	for i.Next() {
		desc = append(desc, i.Item().Key)
	}
	assert.Equal(t, []int{8, 5, 4, 3, 1}, desc)
}

func TestDefaultComparator(t *testing.T) {
	m := New[int, string](nil)
	for _, k := range []int{9, 10, 1, 100} {
		_, _, err := m.Set(k, fmt.Sprint(k))
		require.NoError(t, err)
	}

	// textual order, not numeric
	assert.Equal(t, []int{1, 10, 100, 9}, keysOf(m))

	v, err := m.Get(10)
	require.NoError(t, err)
	assert.Equal(t, "10", v)
}

func TestRemove(t *testing.T) {
	tests := []struct {
		name     string
		key      int
		wantPrev string
		wantOk   bool
		wantDump string
	}{
		{
			name:     "leaf",
			key:      1,
			wantPrev: "one",
			wantOk:   true,
			wantDump: "5: five\n  3: three\n    <>\n    4: four\n  8: eight\n",
		},
		{
			name:     "two children",
			key:      3,
			wantPrev: "three",
			wantOk:   true,
			wantDump: "5: five\n  4: four\n    1: one\n    <>\n  8: eight\n",
		},
		{
			name:     "root",
			key:      5,
			wantPrev: "five",
			wantOk:   true,
			wantDump: "8: eight\n  3: three\n    1: one\n    4: four\n  <>\n",
		},
		{
			name:     "missing",
			key:      6,
			wantDump: "5: five\n  3: three\n    1: one\n    4: four\n  8: eight\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newExample(t)

			prev, ok, err := m.Remove(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.wantPrev, prev)

			want := 5
			if tt.wantOk {
				want--
			}
			assert.Equal(t, want, m.Len())

			var buf bytes.Buffer
			require.NoError(t, m.Dump(&buf))
			assert.Equal(t, tt.wantDump, buf.String())
		})
	}
}

func TestDump(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewOrdered[int, string]().Dump(&buf))
	assert.Equal(t, "<>\n", buf.String())

	buf.Reset()
	require.NoError(t, newExample(t).Dump(&buf))
	assert.Equal(t, strings.Join([]string{
		"5: five",
		"  3: three",
		"    1: one",
		"    4: four",
		"  8: eight",
		"",
	}, "\n"), buf.String())
}

type failWriter struct {
	left int
}

var errWriteFailed = errors.New("write failed")

func (w *failWriter) Write(p []byte) (int, error) {
	if w.left == 0 {
		return 0, errWriteFailed
	}
	w.left--
	return len(p), nil
}

func TestDump_WriteError(t *testing.T) {
	m := newExample(t)

	err := m.Dump(&failWriter{left: 2})
	assert.ErrorIs(t, err, errWriteFailed)
}

func TestString(t *testing.T) {
	m := NewOrdered[int, string]()
	assert.Equal(t, "", m.String())

	for _, k := range []int{4, 2, 6, 1, 3, 5, 7} {
		_, _, err := m.Set(k, string(rune('a'+k-1)))
		require.NoError(t, err)
	}

	assert.Equal(t, strings.Join([]string{
		"4: d",
		"├─L─2: b",
		"│   ├─L─1: a",
		"│   └─R─3: c",
		"└─R─6: f",
		"    ├─L─5: e",
		"    └─R─7: g",
		"",
	}, "\n"), m.String())
}

func TestLower(t *testing.T) {
	m := newExample(t)

	tests := []struct {
		k      int
		want   int
		wantOk bool
	}{
		{k: 0},
		{k: 1},
		{k: 2, want: 1, wantOk: true},
		{k: 3, want: 1, wantOk: true},
		{k: 4, want: 3, wantOk: true},
		{k: 5, want: 4, wantOk: true},
		{k: 8, want: 5, wantOk: true},
		{k: 100, want: 8, wantOk: true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.k), func(t *testing.T) {
			got, _, ok := m.Lower(tt.k)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIterator_RemoveDuringIteration(t *testing.T) {
	m := BuildRandom(200, 42)

	var seen []int
	i := m.Iterator()
	for i.Next() {
		k, v := i.Item().Entry()
		require.Equal(t, k*k, v)
		seen = append(seen, k)
		if k%2 == 1 {
			i.Remove()
		}
	}

	require.Len(t, seen, 200)
	assert.True(t, slices.IsSorted(seen))
	assert.Equal(t, 100, m.Len())

	left := keysOf(m)
	assert.Len(t, left, 100)
	for _, k := range left {
		assert.Zero(t, k%2, "odd key %d survived", k)
	}
}

func TestDescending_RemoveDuringIteration(t *testing.T) {
	m := BuildRandom(100, 7)

	var seen []int
	i := m.Descending()
	for i.Next() {
		seen = append(seen, i.Item().Key)
		i.Remove()
	}

	require.Len(t, seen, 100)
	for j := range seen {
		assert.Equal(t, 99-j, seen[j])
	}
	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.root)
}

func TestForEach(t *testing.T) {
	m := NewOrdered[int, string]()
	assert.ErrorIs(t, m.ForEach(func(int, string) {}), simplemap.ErrEmpty)

	m = newExample(t)
	var got []string
	require.NoError(t, m.ForEach(func(k int, v string) {
		got = append(got, fmt.Sprintf("%d=%s", k, v))
	}))
	assert.Equal(t, []string{"1=one", "3=three", "4=four", "5=five", "8=eight"}, got)
}

func TestForEach_Skewed(t *testing.T) {
	// sorted inserts make a linked list
	const n = 10000
	m := NewOrdered[int, struct{}]()
	for k := 0; k < n; k++ {
		_, _, err := m.Set(k, struct{}{})
		require.NoError(t, err)
	}

	actual, _ := m.Height()
	assert.Equal(t, n, actual)

	count, last := 0, -1
	require.NoError(t, m.ForEach(func(k int, _ struct{}) {
		assert.Greater(t, k, last)
		last = k
		count++
	}))
	assert.Equal(t, n, count)

	_, err := m.Get(n - 1)
	assert.NoError(t, err)

	for k := 0; k < n; k++ {
		_, ok, err := m.Remove(k)
		require.NoError(t, err)
		require.True(t, ok)
	}
	assert.Equal(t, 0, m.Len())
}

func TestPreOrder_Rebuild(t *testing.T) {
	seedrd := rand.New(rand.NewSource(0x123456789abcdef0))

	for round := 0; round < 20; round++ {
		m := BuildRandom(100, int64(seedrd.Uint64()))

		rebuilt := NewOrdered[int, int]()
		m.PreOrder(func(k, v int) bool {
			_, _, err := rebuilt.Set(k, v)
			require.NoError(t, err)
			return true
		})

		assert.Equal(t, m.String(), rebuilt.String(), "round %d", round)
	}
}

func TestPreOrder_Stop(t *testing.T) {
	m := newExample(t)

	var got []int
	m.PreOrder(func(k int, _ string) bool {
		got = append(got, k)
		return len(got) < 3
	})
	assert.Equal(t, []int{5, 3, 1}, got)
}

func TestHeight(t *testing.T) {
	m := NewOrdered[int, string]()
	actual, ideal := m.Height()
	assert.Equal(t, 0, actual)
	assert.Equal(t, 0, ideal)
	assert.True(t, m.Balanced())

	m = newExample(t)
	actual, ideal = m.Height()
	assert.Equal(t, 3, actual)
	assert.Equal(t, 3, ideal)
	assert.True(t, m.Balanced())

	_, _, err := m.Set(9, "nine")
	require.NoError(t, err)
	_, _, err = m.Set(10, "ten")
	require.NoError(t, err)
	actual, ideal = m.Height()
	assert.Equal(t, 4, actual)
	assert.Equal(t, 3, ideal)
	assert.False(t, m.Balanced())
}

func TestClear(t *testing.T) {
	m := newExample(t)
	m.Clear()

	assert.Equal(t, 0, m.Len())
	assert.False(t, m.ContainsKey(5))
	assert.ErrorIs(t, m.ForEach(func(int, string) {}), simplemap.ErrEmpty)
}

func TestInOrderCoroutine(t *testing.T) {
	m := BuildRandom(50, 1)

	var got []int
	for k := range m.InOrderCoroutine().Items() {
		got = append(got, k)
	}
	assert.Len(t, got, 50)
	assert.True(t, slices.IsSorted(got))

	co := m.InOrderCoroutine()
	for k := range co.Items() {
		if k == 10 {
			co.Stop()
			break
		}
	}

	goleak.VerifyNone(t)
}
