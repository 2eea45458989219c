/*
 * NDMap - Multi-Dimensional Maps
 *
 * Copyright Flow Foundation
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package ndmap

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestNestedMap(t *testing.T, dimensions int) *NestedMap[string, int] {
	m, err := NewNestedMap[string, int](dimensions)
	require.NoError(t, err)
	return m
}

func TestNestedMapTreeOrder(t *testing.T) {
	t.Parallel()

	m := newTestNestedMap(t, 3)

	require.NoError(t, m.Set(Path[string]{"a", "a", "a"}, 0))
	require.NoError(t, m.Set(Path[string]{"a", "b", "a"}, 1))
	require.NoError(t, m.Set(Path[string]{"a", "a", "b"}, 2))

	paths := slices.Collect(m.Keys())
	require.Equal(t, []Path[string]{
		{"a", "a", "a"},
		{"a", "a", "b"},
		{"a", "b", "a"},
	}, paths)

	require.Equal(t, []int{0, 2, 1}, slices.Collect(m.Values()))
}

func TestNestedMapPerLevelInsertionOrder(t *testing.T) {
	t.Parallel()

	m := newTestNestedMap(t, 2)

	require.NoError(t, m.Set(Path[string]{"z", "2"}, 0))
	require.NoError(t, m.Set(Path[string]{"a", "9"}, 1))
	require.NoError(t, m.Set(Path[string]{"z", "1"}, 2))
	require.NoError(t, m.Set(Path[string]{"m", "5"}, 3))

	require.Equal(t, []Path[string]{
		{"z", "2"},
		{"z", "1"},
		{"a", "9"},
		{"m", "5"},
	}, slices.Collect(m.Keys()))
}

func TestNestedMapLookup(t *testing.T) {
	t.Parallel()

	m := newTestNestedMap(t, 3)
	require.NoError(t, m.Set(Path[string]{"a", "b", "c"}, 7))

	t.Run("full path", func(t *testing.T) {
		n, found, err := m.Lookup(Path[string]{"a", "b", "c"})
		require.NoError(t, err)
		require.True(t, found)
		require.True(t, n.IsLeaf())
		require.Nil(t, n.Branch())
		require.Equal(t, 7, n.Value())
	})

	t.Run("two keys", func(t *testing.T) {
		n, found, err := m.Lookup(Path[string]{"a", "b"})
		require.NoError(t, err)
		require.True(t, found)
		require.False(t, n.IsLeaf())

		b := n.Branch()
		require.Equal(t, 2, b.Depth())
		require.True(t, b.IsLeafLevel())
		require.Equal(t, 1, b.Len())
		require.True(t, b.Has("c"))
		require.Equal(t, []string{"c"}, slices.Collect(b.Keys()))

		v, ok := b.Value("c")
		require.True(t, ok)
		require.Equal(t, 7, v)

		_, ok = b.Child("c")
		require.False(t, ok)
	})

	t.Run("one key", func(t *testing.T) {
		n, found, err := m.Lookup(Path[string]{"a"})
		require.NoError(t, err)
		require.True(t, found)

		b := n.Branch()
		require.Equal(t, 1, b.Depth())
		require.False(t, b.IsLeafLevel())
		require.True(t, b.Has("b"))
		require.Equal(t, 1, b.Size())

		_, ok := b.Value("b")
		require.False(t, ok)

		child, ok := b.Child("b")
		require.True(t, ok)
		require.Equal(t, 2, child.Depth())
		require.True(t, child.Has("c"))

		_, ok = b.Child("x")
		require.False(t, ok)
	})

	t.Run("branch entries", func(t *testing.T) {
		m := newTestNestedMap(t, 3)
		require.NoError(t, m.Set(Path[string]{"a", "b", "c"}, 7))
		require.NoError(t, m.Set(Path[string]{"a", "b", "d"}, 8))
		require.NoError(t, m.Set(Path[string]{"a", "e", "f"}, 9))

		n, found, err := m.Lookup(Path[string]{"a"})
		require.NoError(t, err)
		require.True(t, found)

		var keys []string
		var depths []int
		for key, child := range n.Branch().All() {
			require.False(t, child.IsLeaf())
			keys = append(keys, key)
			depths = append(depths, child.Branch().Depth())
		}
		require.Equal(t, []string{"b", "e"}, keys)
		require.Equal(t, []int{2, 2}, depths)

		n, found, err = m.Lookup(Path[string]{"a", "b"})
		require.NoError(t, err)
		require.True(t, found)

		values := make(map[string]int)
		var order []string
		for key, child := range n.Branch().All() {
			require.True(t, child.IsLeaf())
			order = append(order, key)
			values[key] = child.Value()
		}
		require.Equal(t, []string{"c", "d"}, order)
		require.Equal(t, map[string]int{"c": 7, "d": 8}, values)

		count := 0
		for range n.Branch().All() {
			count++
			break
		}
		require.Equal(t, 1, count)
	})

	t.Run("empty path", func(t *testing.T) {
		n, found, err := m.Lookup(nil)
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, 0, n.Branch().Depth())
		require.Equal(t, 1, n.Branch().Size())
	})

	t.Run("missing", func(t *testing.T) {
		for _, path := range []Path[string]{
			{"x"},
			{"a", "x"},
			{"a", "b", "x"},
			{"x", "b", "c"},
		} {
			n, found, err := m.Lookup(path)
			require.NoError(t, err)
			require.False(t, found)
			require.Nil(t, n.Branch())
		}
	})

	t.Run("too many keys", func(t *testing.T) {
		_, _, err := m.Lookup(Path[string]{"a", "b", "c", "d"})
		requireInvalidArity(t, err, 3, 4)
		require.Equal(t, "NestedMap.Lookup", err.(*InvalidArityError).Operation())
	})
}

func TestNestedMapGetRequiresFullPath(t *testing.T) {
	t.Parallel()

	m := newTestNestedMap(t, 3)
	require.NoError(t, m.Set(Path[string]{"a", "b", "c"}, 1))

	_, _, err := m.Get(Path[string]{"a", "b"})
	requireInvalidArity(t, err, 3, 2)
	require.Contains(t, err.(*InvalidArityError).Operation(), "Lookup")
}

func TestNestedMapHasPartialPath(t *testing.T) {
	t.Parallel()

	m := newTestNestedMap(t, 3)
	require.NoError(t, m.Set(Path[string]{"a", "b", "c"}, 1))

	for _, tc := range []struct {
		path Path[string]
		want bool
	}{
		{Path[string]{"a"}, true},
		{Path[string]{"a", "b"}, true},
		{Path[string]{"a", "b", "c"}, true},
		{Path[string]{"b"}, false},
		{Path[string]{"a", "c"}, false},
		{Path[string]{"a", "b", "d"}, false},
		{Path[string]{}, false},
	} {
		has, err := m.Has(tc.path)
		require.NoError(t, err)
		require.Equal(t, tc.want, has, "path %v", tc.path)
	}
}

func TestNestedMapDeleteKeepsEmptyBranches(t *testing.T) {
	t.Parallel()

	m := newTestNestedMap(t, 3)
	require.NoError(t, m.Set(Path[string]{"a", "b", "c"}, 1))

	deleted, err := m.Delete(Path[string]{"a", "b", "c"})
	require.NoError(t, err)
	require.True(t, deleted)
	require.Equal(t, 0, m.Size())

	// Ancestor branches are not pruned.
	has, err := m.Has(Path[string]{"a", "b"})
	require.NoError(t, err)
	require.True(t, has)

	n, found, err := m.Lookup(Path[string]{"a", "b"})
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 0, n.Branch().Len())

	// Empty branches produce no entries.
	require.Empty(t, slices.Collect(m.Keys()))

	require.NoError(t, VerifyNestedMap(m))
}

func TestNestedMapOneDimension(t *testing.T) {
	t.Parallel()

	m := newTestNestedMap(t, 1)

	require.NoError(t, m.Set(Path[string]{"b"}, 2))
	require.NoError(t, m.Set(Path[string]{"a"}, 1))

	v, found, err := m.Get(Path[string]{"a"})
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 1, v)

	require.Equal(t, 2, m.Size())
	require.Equal(t, []Path[string]{{"b"}, {"a"}}, slices.Collect(m.Keys()))

	n, found, err := m.Lookup(nil)
	require.NoError(t, err)
	require.True(t, found)
	require.True(t, n.Branch().IsLeafLevel())

	deleted, err := m.Delete(Path[string]{"b"})
	require.NoError(t, err)
	require.True(t, deleted)
	require.Equal(t, 1, m.Size())

	require.NoError(t, VerifyNestedMap(m))
}

func TestNestedMapNonStringKeys(t *testing.T) {
	t.Parallel()

	type point struct{ x, y int }

	t.Run("struct keys", func(t *testing.T) {
		m, err := NewNestedMap[point, string](2)
		require.NoError(t, err)

		require.NoError(t, m.Set(Path[point]{{1, 2}, {3, 4}}, "a"))
		require.NoError(t, m.Set(Path[point]{{1, 2}, {5, 6}}, "b"))

		v, found, err := m.Get(Path[point]{{1, 2}, {5, 6}})
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, "b", v)

		require.Equal(t, 2, m.Size())
	})

	t.Run("pointer identity keys", func(t *testing.T) {
		m, err := NewNestedMap[*point, int](2)
		require.NoError(t, err)

		p1 := &point{1, 1}
		p2 := &point{1, 1}

		require.NoError(t, m.Set(Path[*point]{p1, p1}, 1))
		require.NoError(t, m.Set(Path[*point]{p1, p2}, 2))

		require.Equal(t, 2, m.Size())

		_, found, err := m.Get(Path[*point]{p2, p1})
		require.NoError(t, err)
		require.False(t, found)
	})

	t.Run("any keys", func(t *testing.T) {
		m, err := NewNestedMap[any, int](2)
		require.NoError(t, err)

		require.NoError(t, m.Set(Path[any]{1, "1"}, 1))
		require.NoError(t, m.Set(Path[any]{"1", 1}, 2))

		v, found, err := m.Get(Path[any]{1, "1"})
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, 1, v)

		require.Equal(t, 2, m.Size())
	})
}

func TestNestedMapIterator(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		m := newTestNestedMap(t, 3)
		it := m.Iterator()

		_, _, ok := it.Next()
		require.False(t, ok)

		// Done stays done.
		_, ok = it.NextKey()
		require.False(t, ok)
	})

	t.Run("next variants share position", func(t *testing.T) {
		m := newTestNestedMap(t, 3)
		setGrid(t, m)

		it := m.Iterator()

		path, value, ok := it.Next()
		require.True(t, ok)
		require.Equal(t, grid[0].path, path)
		require.Equal(t, 0, value)

		path, ok = it.NextKey()
		require.True(t, ok)
		require.Equal(t, grid[1].path, path)

		value, ok = it.NextValue()
		require.True(t, ok)
		require.Equal(t, 2, value)

		count := 3
		for {
			_, ok := it.NextValue()
			if !ok {
				break
			}
			count++
		}
		require.Equal(t, len(grid), count)

		_, _, ok = it.Next()
		require.False(t, ok)
	})

	t.Run("skips empty branches", func(t *testing.T) {
		m := newTestNestedMap(t, 3)

		require.NoError(t, m.Set(Path[string]{"a", "a", "a"}, 0))
		require.NoError(t, m.Set(Path[string]{"b", "b", "b"}, 1))
		require.NoError(t, m.Set(Path[string]{"c", "c", "c"}, 2))

		_, err := m.Delete(Path[string]{"a", "a", "a"})
		require.NoError(t, err)
		_, err = m.Delete(Path[string]{"b", "b", "b"})
		require.NoError(t, err)

		require.Equal(t, []Path[string]{{"c", "c", "c"}}, slices.Collect(m.Keys()))
	})

	t.Run("independent iterators", func(t *testing.T) {
		m := newTestNestedMap(t, 3)
		setGrid(t, m)

		it1 := m.Iterator()
		it2 := m.Iterator()

		v1, _ := it1.NextValue()
		v1, _ = it1.NextValue()
		v2, _ := it2.NextValue()

		require.Equal(t, 1, v1)
		require.Equal(t, 0, v2)
	})
}

func TestNestedMapForEach(t *testing.T) {
	t.Parallel()

	m := newTestNestedMap(t, 3)
	setGrid(t, m)

	var values []int
	m.ForEach(func(value int, path Path[string], container *NestedMap[string, int]) {
		require.Same(t, m, container)
		require.Equal(t, grid[value].path, path)
		values = append(values, value)
	})

	require.Equal(t, len(grid), len(values))
}

func TestNestedMapBranchReflectsMutation(t *testing.T) {
	t.Parallel()

	m := newTestNestedMap(t, 3)
	require.NoError(t, m.Set(Path[string]{"a", "b", "c"}, 1))

	n, _, err := m.Lookup(Path[string]{"a", "b"})
	require.NoError(t, err)
	b := n.Branch()

	require.NoError(t, m.Set(Path[string]{"a", "b", "d"}, 2))
	require.Equal(t, 2, b.Len())
	require.Equal(t, []string{"c", "d"}, slices.Collect(b.Keys()))
}

func TestNestedMapDump(t *testing.T) {
	t.Parallel()

	m := newTestNestedMap(t, 2)
	require.NoError(t, m.Set(Path[string]{"a", "x"}, 1))
	require.NoError(t, m.Set(Path[string]{"b", "y"}, 2))

	require.Equal(t, []string{
		"level 1, branch [], keys [a b]",
		"level 2, leaf [a], values [x:1]",
		"level 2, leaf [b], values [y:2]",
	}, DumpNestedMap(m))
}
