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
	"iter"
	"slices"
)

// Path is an ordered sequence of keys addressing one slot of a map.
type Path[K any] []K

// Clone returns a copy of p that doesn't share its backing array.
func (p Path[K]) Clone() Path[K] {
	return slices.Clone(p)
}

// Container is implemented by NestedMap and FlattenedMap.
type Container[K any, V any] interface {
	Dimensions() int

	Set(path Path[K], value V) error
	Get(path Path[K]) (V, bool, error)
	Has(path Path[K]) (bool, error)
	Delete(path Path[K]) (bool, error)

	Clear()
	Size() int

	All() iter.Seq2[Path[K], V]
	Entries() iter.Seq2[Path[K], V]
	Keys() iter.Seq[Path[K]]
	Values() iter.Seq[V]

	Iterate(fn MapEntryIterationFunc[K, V]) error
}

var _ Container[string, int] = &NestedMap[string, int]{}
var _ Container[string, int] = &FlattenedMap[string, int]{}

// MapIterator is a single pass cursor over a map's entries.
// Next, NextKey, and NextValue return false once the map is exhausted.
type MapIterator[K any, V any] interface {
	Next() (Path[K], V, bool)
	NextKey() (Path[K], bool)
	NextValue() (V, bool)
}

// Iterate functions

type MapEntryIterationFunc[K any, V any] func(Path[K], V) (resume bool, err error)

func iterateMap[K any, V any](iterator MapIterator[K, V], fn MapEntryIterationFunc[K, V]) error {
	for {
		path, value, ok := iterator.Next()
		if !ok {
			return nil
		}
		resume, err := fn(path, value)
		if err != nil {
			// Wrap err as external error (if needed) because err is returned by MapEntryIterationFunc callback.
			return wrapErrorAsExternalErrorIfNeeded(err)
		}
		if !resume {
			return nil
		}
	}
}

func entries[K any, V any](newIterator func() MapIterator[K, V]) iter.Seq2[Path[K], V] {
	return func(yield func(Path[K], V) bool) {
		it := newIterator()
		for {
			path, value, ok := it.Next()
			if !ok || !yield(path, value) {
				return
			}
		}
	}
}

func keys[K any, V any](newIterator func() MapIterator[K, V]) iter.Seq[Path[K]] {
	return func(yield func(Path[K]) bool) {
		it := newIterator()
		for {
			path, ok := it.NextKey()
			if !ok || !yield(path) {
				return
			}
		}
	}
}

func values[K any, V any](newIterator func() MapIterator[K, V]) iter.Seq[V] {
	return func(yield func(V) bool) {
		it := newIterator()
		for {
			value, ok := it.NextValue()
			if !ok || !yield(value) {
				return
			}
		}
	}
}
