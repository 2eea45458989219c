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

	"github.com/onflow/ndmap/internal/orderedmap"
)

// FlattenedMap emulates a multi-dimensional map with a single flat map whose
// keys are paths encoded by a KeyCodec.
//
// Entries are iterated in global insertion order, regardless of how their
// paths relate. Size is O(1). Unlike NestedMap, every operation requires a
// full path.
//
// FlattenedMap isn't safe for concurrent use.
type FlattenedMap[K any, V any] struct {
	dimensions int
	codec      KeyCodec[K]
	root       *orderedmap.Map[string, V]
}

// NewFlattenedMap creates an empty map with string keys joined by DefaultSeparator.
func NewFlattenedMap[V any](dimensions int) (*FlattenedMap[string, V], error) {
	return NewFlattenedMapWithSeparator[V](dimensions, DefaultSeparator)
}

// NewFlattenedMapWithSeparator creates an empty map with string keys joined by separator.
// Keys must not contain separator.
func NewFlattenedMapWithSeparator[V any](dimensions int, separator string) (*FlattenedMap[string, V], error) {
	return NewFlattenedMapWithCodec[string, V](dimensions, NewSeparatorCodec(separator))
}

// NewFlattenedMapWithCodec creates an empty map whose composite keys are produced by codec.
func NewFlattenedMapWithCodec[K any, V any](dimensions int, codec KeyCodec[K]) (*FlattenedMap[K, V], error) {
	if dimensions < 1 {
		return nil, NewInvalidDimensionsError(dimensions)
	}
	return &FlattenedMap[K, V]{
		dimensions: dimensions,
		codec:      codec,
		root:       orderedmap.New[string, V](),
	}, nil
}

func (m *FlattenedMap[K, V]) Dimensions() int {
	return m.dimensions
}

// Codec returns the codec producing m's composite keys.
func (m *FlattenedMap[K, V]) Codec() KeyCodec[K] {
	return m.codec
}

func (m *FlattenedMap[K, V]) keyFromPath(op string, path Path[K]) (string, error) {
	if len(path) != m.dimensions {
		return "", NewInvalidArityError(op, m.dimensions, len(path))
	}

	key, err := m.codec.EncodeKey(path)
	if err != nil {
		// Wrap err as external error (if needed) because err is returned by KeyCodec interface.
		return "", wrapErrorfAsExternalErrorIfNeeded(err, "failed to encode path")
	}

	return key, nil
}

func (m *FlattenedMap[K, V]) pathFromKey(key string) (Path[K], error) {
	path, err := m.codec.DecodeKey(key)
	if err != nil {
		// Wrap err as external error (if needed) because err is returned by KeyCodec interface.
		return nil, wrapErrorfAsExternalErrorIfNeeded(err, "failed to decode key")
	}

	if len(path) != m.dimensions {
		return nil, NewKeyDecodingErrorf(key, "decoded %d keys, want %d", len(path), m.dimensions)
	}

	return path, nil
}

// Set stores value at path. path must have exactly Dimensions keys.
// Overwriting a path keeps its position in iteration order.
func (m *FlattenedMap[K, V]) Set(path Path[K], value V) error {
	key, err := m.keyFromPath("FlattenedMap.Set", path)
	if err != nil {
		return err
	}

	m.root.Set(key, value)
	return nil
}

// Get returns the value stored at path. path must have exactly Dimensions keys.
func (m *FlattenedMap[K, V]) Get(path Path[K]) (V, bool, error) {
	key, err := m.keyFromPath("FlattenedMap.Get", path)
	if err != nil {
		var zero V
		return zero, false, err
	}

	value, ok := m.root.Get(key)
	return value, ok, nil
}

// Has reports whether a value is stored at path. path must have exactly Dimensions keys.
func (m *FlattenedMap[K, V]) Has(path Path[K]) (bool, error) {
	key, err := m.keyFromPath("FlattenedMap.Has", path)
	if err != nil {
		return false, err
	}

	return m.root.Has(key), nil
}

// Delete removes the value at path and reports whether it was present.
// path must have exactly Dimensions keys.
func (m *FlattenedMap[K, V]) Delete(path Path[K]) (bool, error) {
	key, err := m.keyFromPath("FlattenedMap.Delete", path)
	if err != nil {
		return false, err
	}

	return m.root.Delete(key), nil
}

// Size returns the number of stored values.
func (m *FlattenedMap[K, V]) Size() int {
	return m.root.Len()
}

// Clear removes all values.
func (m *FlattenedMap[K, V]) Clear() {
	m.root.Clear()
}

// Iterator returns a single pass iterator over all entries in insertion order.
func (m *FlattenedMap[K, V]) Iterator() *FlattenedMapIterator[K, V] {
	return newFlattenedMapIterator(m)
}

func (m *FlattenedMap[K, V]) newIterator() MapIterator[K, V] {
	return m.Iterator()
}

// All iterates all entries. It is the same as Entries.
func (m *FlattenedMap[K, V]) All() iter.Seq2[Path[K], V] {
	return m.Entries()
}

// Entries iterates decoded paths and their values in insertion order.
// Iteration stops at the first key that fails to decode; use Iterate
// or Iterator to observe the error.
func (m *FlattenedMap[K, V]) Entries() iter.Seq2[Path[K], V] {
	return entries(m.newIterator)
}

// Keys iterates decoded paths in insertion order.
func (m *FlattenedMap[K, V]) Keys() iter.Seq[Path[K]] {
	return keys(m.newIterator)
}

// Values iterates values in insertion order.
func (m *FlattenedMap[K, V]) Values() iter.Seq[V] {
	return values(m.newIterator)
}

// ForEach calls fn for every entry in insertion order.
// It returns the first key decoding error, after which fn isn't called again.
func (m *FlattenedMap[K, V]) ForEach(fn func(value V, path Path[K], m *FlattenedMap[K, V])) error {
	for e := m.root.Front(); e != nil; e = e.Next() {
		path, err := m.pathFromKey(e.Key)
		if err != nil {
			return err
		}
		fn(e.Value, path, m)
	}
	return nil
}

// Iterate calls fn for every entry in insertion order until fn returns false or an error.
func (m *FlattenedMap[K, V]) Iterate(fn MapEntryIterationFunc[K, V]) error {
	it := m.Iterator()
	err := iterateMap[K, V](it, fn)
	if err != nil {
		return err
	}
	return it.Err()
}
