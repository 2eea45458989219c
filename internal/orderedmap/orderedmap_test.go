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

package orderedmap

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func collectKeys[K comparable, V any](m *Map[K, V]) []K {
	return slices.Collect(m.Keys())
}

func TestMapSetAndGet(t *testing.T) {
	t.Parallel()

	m := New[string, int]()

	require.True(t, m.Set("b", 1))
	require.True(t, m.Set("a", 2))
	require.True(t, m.Set("c", 3))
	require.Equal(t, 3, m.Len())

	v, ok := m.Get("a")
	require.True(t, ok)
	require.Equal(t, 2, v)

	_, ok = m.Get("x")
	require.False(t, ok)
	require.False(t, m.Has("x"))
	require.True(t, m.Has("c"))

	require.Equal(t, []string{"b", "a", "c"}, collectKeys(m))
}

func TestMapOverwriteKeepsPosition(t *testing.T) {
	t.Parallel()

	m := New[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)

	require.False(t, m.Set("a", 10))
	require.Equal(t, 3, m.Len())
	require.Equal(t, []string{"a", "b", "c"}, collectKeys(m))
	require.Equal(t, []int{10, 2, 3}, slices.Collect(m.Values()))
}

func TestMapDelete(t *testing.T) {
	t.Parallel()

	t.Run("head middle tail", func(t *testing.T) {
		m := New[int, int]()
		for i := 0; i < 5; i++ {
			m.Set(i, i*10)
		}

		require.True(t, m.Delete(2))
		require.Equal(t, []int{0, 1, 3, 4}, collectKeys(m))

		require.True(t, m.Delete(0))
		require.Equal(t, []int{1, 3, 4}, collectKeys(m))

		require.True(t, m.Delete(4))
		require.Equal(t, []int{1, 3}, collectKeys(m))

		require.False(t, m.Delete(4))
		require.Equal(t, 2, m.Len())
	})

	t.Run("reinsert moves to end", func(t *testing.T) {
		m := New[string, int]()
		m.Set("a", 1)
		m.Set("b", 2)

		m.Delete("a")
		m.Set("a", 3)

		require.Equal(t, []string{"b", "a"}, collectKeys(m))
	})

	t.Run("delete all", func(t *testing.T) {
		m := New[string, int]()
		m.Set("a", 1)
		m.Delete("a")

		require.Nil(t, m.Front())
		require.Equal(t, 0, m.Len())

		m.Set("b", 2)
		require.Equal(t, []string{"b"}, collectKeys(m))
	})
}

func TestMapClear(t *testing.T) {
	t.Parallel()

	m := New[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)

	m.Clear()

	require.Equal(t, 0, m.Len())
	require.Nil(t, m.Front())
	require.False(t, m.Has("a"))

	m.Set("c", 3)
	require.Equal(t, []string{"c"}, collectKeys(m))
}

func TestMapCursor(t *testing.T) {
	t.Parallel()

	m := New[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)

	var keys []string
	var values []int
	for e := m.Front(); e != nil; e = e.Next() {
		keys = append(keys, e.Key)
		values = append(values, e.Value)
	}

	require.Equal(t, []string{"a", "b", "c"}, keys)
	require.Equal(t, []int{1, 2, 3}, values)
}

func TestMapCursorSurvivesDelete(t *testing.T) {
	t.Parallel()

	m := New[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)
	m.Set("d", 4)

	var keys []string
	for e := m.Front(); e != nil; e = e.Next() {
		keys = append(keys, e.Key)
		if e.Key == "b" || e.Key == "c" {
			require.True(t, m.Delete(e.Key))
		}
	}

	require.Equal(t, []string{"a", "b", "c", "d"}, keys)
	require.Equal(t, []string{"a", "d"}, collectKeys(m))
}

func TestMapAllStopsEarly(t *testing.T) {
	t.Parallel()

	m := New[int, string]()
	m.Set(1, "one")
	m.Set(2, "two")
	m.Set(3, "three")

	var seen []int
	for k := range m.All() {
		seen = append(seen, k)
		if k == 2 {
			break
		}
	}

	require.Equal(t, []int{1, 2}, seen)
}
