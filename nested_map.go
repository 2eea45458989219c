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

// node is one level of a NestedMap. Exactly one of branches and leaves is
// set: branches above the leaf level, leaves at depth dimensions-1.
type node[K comparable, V any] struct {
	branches *orderedmap.Map[K, *node[K, V]]
	leaves   *orderedmap.Map[K, V]
}

func newNode[K comparable, V any](depth, dimensions int) *node[K, V] {
	if depth == dimensions-1 {
		return &node[K, V]{leaves: orderedmap.New[K, V]()}
	}
	return &node[K, V]{branches: orderedmap.New[K, *node[K, V]]()}
}

func (n *node[K, V]) isLeaf() bool {
	return n.leaves != nil
}

func (n *node[K, V]) len() int {
	if n.isLeaf() {
		return n.leaves.Len()
	}
	return n.branches.Len()
}

func (n *node[K, V]) has(key K) bool {
	if n.isLeaf() {
		return n.leaves.Has(key)
	}
	return n.branches.Has(key)
}

// size returns the number of values stored in n and its descendants.
// remaining is the number of levels from n down to and including the leaf level.
func (n *node[K, V]) size(remaining int) int {
	if remaining <= 1 {
		return n.len()
	}
	size := 0
	for child := range n.branches.Values() {
		size += child.size(remaining - 1)
	}
	return size
}

// NestedMap is a multi-dimensional map built as a tree of maps, one level
// per dimension.
//
// Within a level, keys are iterated in insertion order. Across levels they
// aren't: entries sharing a prefix are visited together, so the overall
// order follows the tree and not the global insertion order.
// Use FlattenedMap when global insertion order matters.
//
// Deleting a value doesn't prune branches left empty by the deletion.
//
// NestedMap isn't safe for concurrent use.
type NestedMap[K comparable, V any] struct {
	dimensions int
	root       *node[K, V]
}

// NewNestedMap creates an empty map with the given number of dimensions.
func NewNestedMap[K comparable, V any](dimensions int) (*NestedMap[K, V], error) {
	if dimensions < 1 {
		return nil, NewInvalidDimensionsError(dimensions)
	}
	return &NestedMap[K, V]{
		dimensions: dimensions,
		root:       newNode[K, V](0, dimensions),
	}, nil
}

func (m *NestedMap[K, V]) Dimensions() int {
	return m.dimensions
}

// walk follows prefix from the root without creating branches.
// len(prefix) must be less than m.dimensions.
func (m *NestedMap[K, V]) walk(prefix Path[K]) (*node[K, V], bool) {
	n := m.root
	for _, key := range prefix {
		child, ok := n.branches.Get(key)
		if !ok {
			return nil, false
		}
		n = child
	}
	return n, true
}

// Set stores value at path, creating missing branches along the way.
// path must have exactly Dimensions keys.
func (m *NestedMap[K, V]) Set(path Path[K], value V) error {
	if len(path) != m.dimensions {
		return NewInvalidArityError("NestedMap.Set", m.dimensions, len(path))
	}

	n := m.root
	for depth, key := range path[:m.dimensions-1] {
		child, ok := n.branches.Get(key)
		if !ok {
			child = newNode[K, V](depth+1, m.dimensions)
			n.branches.Set(key, child)
		}
		n = child
	}

	n.leaves.Set(path[m.dimensions-1], value)
	return nil
}

// Get returns the value stored at path.
// path must have exactly Dimensions keys. Callers holding a shorter prefix
// should use Lookup, which returns the branch below it.
func (m *NestedMap[K, V]) Get(path Path[K]) (V, bool, error) {
	var zero V

	if len(path) != m.dimensions {
		return zero, false, NewInvalidArityError("NestedMap.Get (use Lookup for prefixes)", m.dimensions, len(path))
	}

	parent, ok := m.walk(path[:m.dimensions-1])
	if !ok {
		return zero, false, nil
	}

	value, ok := parent.leaves.Get(path[m.dimensions-1])
	return value, ok, nil
}

// Lookup returns whatever is stored at path: the value if path is a full
// path, or the branch holding the remaining levels if path is a prefix.
// An empty path returns the root branch.
// It fails if path has more than Dimensions keys.
func (m *NestedMap[K, V]) Lookup(path Path[K]) (Node[K, V], bool, error) {
	if len(path) > m.dimensions {
		return Node[K, V]{}, false, NewInvalidArityError("NestedMap.Lookup", m.dimensions, len(path))
	}

	if len(path) == m.dimensions {
		value, ok, err := m.Get(path)
		if err != nil || !ok {
			return Node[K, V]{}, false, err
		}
		return Node[K, V]{value: value}, true, nil
	}

	n, ok := m.walk(path)
	if !ok {
		return Node[K, V]{}, false, nil
	}

	return Node[K, V]{
		branch: &Branch[K, V]{
			n:          n,
			depth:      len(path),
			dimensions: m.dimensions,
		},
	}, true, nil
}

// Has reports whether a value (full path) or a branch (prefix) exists at path.
// An empty path reports false. It fails if path has more than Dimensions keys.
func (m *NestedMap[K, V]) Has(path Path[K]) (bool, error) {
	if len(path) > m.dimensions {
		return false, NewInvalidArityError("NestedMap.Has", m.dimensions, len(path))
	}

	if len(path) == 0 {
		return false, nil
	}

	last := len(path) - 1

	parent, ok := m.walk(path[:last])
	if !ok {
		return false, nil
	}

	return parent.has(path[last]), nil
}

// Delete removes the value at path and reports whether it was present.
// path must have exactly Dimensions keys. Branches left empty are kept.
func (m *NestedMap[K, V]) Delete(path Path[K]) (bool, error) {
	if len(path) != m.dimensions {
		return false, NewInvalidArityError("NestedMap.Delete", m.dimensions, len(path))
	}

	parent, ok := m.walk(path[:m.dimensions-1])
	if !ok {
		return false, nil
	}

	return parent.leaves.Delete(path[m.dimensions-1]), nil
}

// Size returns the number of stored values.
// It walks the whole tree on every call.
func (m *NestedMap[K, V]) Size() int {
	return m.root.size(m.dimensions)
}

// Clear removes all values.
func (m *NestedMap[K, V]) Clear() {
	m.root = newNode[K, V](0, m.dimensions)
}

// Iterator returns a single pass iterator over all entries.
func (m *NestedMap[K, V]) Iterator() *NestedMapIterator[K, V] {
	return newNestedMapIterator(m)
}

func (m *NestedMap[K, V]) newIterator() MapIterator[K, V] {
	return m.Iterator()
}

// All iterates all entries. It is the same as Entries.
func (m *NestedMap[K, V]) All() iter.Seq2[Path[K], V] {
	return m.Entries()
}

// Entries iterates full paths and their values in tree order.
func (m *NestedMap[K, V]) Entries() iter.Seq2[Path[K], V] {
	return entries(m.newIterator)
}

// Keys iterates full paths in tree order.
func (m *NestedMap[K, V]) Keys() iter.Seq[Path[K]] {
	return keys(m.newIterator)
}

// Values iterates values in tree order.
func (m *NestedMap[K, V]) Values() iter.Seq[V] {
	return values(m.newIterator)
}

// ForEach calls fn for every entry in tree order.
func (m *NestedMap[K, V]) ForEach(fn func(value V, path Path[K], m *NestedMap[K, V])) {
	it := m.Iterator()
	for {
		path, value, ok := it.Next()
		if !ok {
			return
		}
		fn(value, path, m)
	}
}

// Iterate calls fn for every entry in tree order until fn returns false or an error.
func (m *NestedMap[K, V]) Iterate(fn MapEntryIterationFunc[K, V]) error {
	return iterateMap[K, V](m.Iterator(), fn)
}

// Node is the result of NestedMap.Lookup: a stored value for a full path,
// or a Branch for a prefix.
type Node[K comparable, V any] struct {
	value  V
	branch *Branch[K, V]
}

// IsLeaf reports whether the node holds a stored value.
func (n Node[K, V]) IsLeaf() bool {
	return n.branch == nil
}

// Value returns the stored value, or the zero value for a branch.
func (n Node[K, V]) Value() V {
	return n.value
}

// Branch returns the branch, or nil for a stored value.
func (n Node[K, V]) Branch() *Branch[K, V] {
	return n.branch
}

// Branch is a read only view of the submap below a path prefix.
// It reflects later changes to the map, except for Clear.
type Branch[K comparable, V any] struct {
	n          *node[K, V]
	depth      int
	dimensions int
}

// Depth returns the length of the prefix leading to b.
func (b *Branch[K, V]) Depth() int {
	return b.depth
}

// IsLeafLevel reports whether b's keys map directly to values.
func (b *Branch[K, V]) IsLeafLevel() bool {
	return b.n.isLeaf()
}

// Len returns the number of keys directly under b.
func (b *Branch[K, V]) Len() int {
	return b.n.len()
}

// Size returns the number of values stored below b.
func (b *Branch[K, V]) Size() int {
	return b.n.size(b.dimensions - b.depth)
}

func (b *Branch[K, V]) Has(key K) bool {
	return b.n.has(key)
}

// Keys iterates the keys directly under b in insertion order.
func (b *Branch[K, V]) Keys() iter.Seq[K] {
	if b.n.isLeaf() {
		return b.n.leaves.Keys()
	}
	return b.n.branches.Keys()
}

// Child returns the branch below key. It returns false at the leaf level.
func (b *Branch[K, V]) Child(key K) (*Branch[K, V], bool) {
	if b.n.isLeaf() {
		return nil, false
	}
	child, ok := b.n.branches.Get(key)
	if !ok {
		return nil, false
	}
	return &Branch[K, V]{n: child, depth: b.depth + 1, dimensions: b.dimensions}, true
}

// All iterates the entries directly under b in insertion order. At the leaf
// level each Node holds a value, above it each Node holds a child Branch.
func (b *Branch[K, V]) All() iter.Seq2[K, Node[K, V]] {
	return func(yield func(K, Node[K, V]) bool) {
		if b.n.isLeaf() {
			for key, value := range b.n.leaves.All() {
				if !yield(key, Node[K, V]{value: value}) {
					return
				}
			}
			return
		}
		for key, child := range b.n.branches.All() {
			branch := &Branch[K, V]{n: child, depth: b.depth + 1, dimensions: b.dimensions}
			if !yield(key, Node[K, V]{branch: branch}) {
				return
			}
		}
	}
}

// Value returns the value stored under key. It returns false above the leaf level.
func (b *Branch[K, V]) Value(key K) (V, bool) {
	if !b.n.isLeaf() {
		var zero V
		return zero, false
	}
	return b.n.leaves.Get(key)
}
