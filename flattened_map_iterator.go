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

import "github.com/onflow/ndmap/internal/orderedmap"

// FlattenedMapIterator passes through the flat map's entries in insertion
// order, decoding each composite key back into a path.
//
// If a key fails to decode the iterator stops and Err returns the error.
type FlattenedMapIterator[K any, V any] struct {
	m    *FlattenedMap[K, V]
	next *orderedmap.Entry[string, V]
	err  error
}

var _ MapIterator[string, int] = &FlattenedMapIterator[string, int]{}

func newFlattenedMapIterator[K any, V any](m *FlattenedMap[K, V]) *FlattenedMapIterator[K, V] {
	return &FlattenedMapIterator[K, V]{m: m, next: m.root.Front()}
}

func (i *FlattenedMapIterator[K, V]) advance() (*orderedmap.Entry[string, V], bool) {
	if i.err != nil || i.next == nil {
		return nil, false
	}
	e := i.next
	i.next = e.Next()
	return e, true
}

func (i *FlattenedMapIterator[K, V]) decode(e *orderedmap.Entry[string, V]) (Path[K], bool) {
	path, err := i.m.pathFromKey(e.Key)
	if err != nil {
		i.err = err
		i.next = nil
		return nil, false
	}
	return path, true
}

// Next returns the next decoded path and its value.
func (i *FlattenedMapIterator[K, V]) Next() (Path[K], V, bool) {
	var zero V

	e, ok := i.advance()
	if !ok {
		return nil, zero, false
	}

	path, ok := i.decode(e)
	if !ok {
		return nil, zero, false
	}

	return path, e.Value, true
}

// NextKey returns the next decoded path.
func (i *FlattenedMapIterator[K, V]) NextKey() (Path[K], bool) {
	e, ok := i.advance()
	if !ok {
		return nil, false
	}
	return i.decode(e)
}

// NextValue returns the next value without decoding its key.
func (i *FlattenedMapIterator[K, V]) NextValue() (V, bool) {
	e, ok := i.advance()
	if !ok {
		var zero V
		return zero, false
	}
	return e.Value, true
}

// Err returns the key decoding error that stopped the iterator, if any.
func (i *FlattenedMapIterator[K, V]) Err() error {
	return i.err
}
