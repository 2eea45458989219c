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

// nestedMapFrame is the cursor of one level of the traversal.
// Levels above the leaf level use nextBranch, the leaf level uses nextLeaf.
type nestedMapFrame[K comparable, V any] struct {
	nextBranch *orderedmap.Entry[K, *node[K, V]]
	nextLeaf   *orderedmap.Entry[K, V]
}

func newNestedMapFrame[K comparable, V any](n *node[K, V]) nestedMapFrame[K, V] {
	if n.isLeaf() {
		return nestedMapFrame[K, V]{nextLeaf: n.leaves.Front()}
	}
	return nestedMapFrame[K, V]{nextBranch: n.branches.Front()}
}

// NestedMapIterator walks a NestedMap depth first.
//
// It keeps a LIFO stack of per-level cursors and a parallel stack of the keys
// chosen at each level. Next descends while the current level is a branch
// level, produces an entry at the leaf level, and ascends when a level is
// exhausted. Once the root level is exhausted the iterator stays done.
//
// The iterator is single pass. Mutating the map during iteration has
// undefined results.
type NestedMapIterator[K comparable, V any] struct {
	dimensions int
	frames     []nestedMapFrame[K, V] // LIFO stack, frames[0] is the root level
	keys       Path[K]                // keys[i] is the key taken at level i
}

var _ MapIterator[string, int] = &NestedMapIterator[string, int]{}

func newNestedMapIterator[K comparable, V any](m *NestedMap[K, V]) *NestedMapIterator[K, V] {
	frames := make([]nestedMapFrame[K, V], 1, m.dimensions)
	frames[0] = newNestedMapFrame(m.root)

	return &NestedMapIterator[K, V]{
		dimensions: m.dimensions,
		frames:     frames,
		keys:       make(Path[K], 0, m.dimensions),
	}
}

// advance moves to the next leaf entry.
func (i *NestedMapIterator[K, V]) advance() (*orderedmap.Entry[K, V], bool) {
	for len(i.frames) > 0 {
		depth := len(i.frames) - 1
		frame := &i.frames[depth]

		if depth < i.dimensions-1 {
			e := frame.nextBranch
			if e == nil {
				i.ascend()
				continue
			}
			frame.nextBranch = e.Next()

			// Descend into child branch.
			i.keys = append(i.keys, e.Key)
			i.frames = append(i.frames, newNestedMapFrame(e.Value))
			continue
		}

		e := frame.nextLeaf
		if e == nil {
			i.ascend()
			continue
		}
		frame.nextLeaf = e.Next()

		return e, true
	}

	// Root level is exhausted.
	return nil, false
}

// ascend pops the current level and the key that led to it.
func (i *NestedMapIterator[K, V]) ascend() {
	last := len(i.frames) - 1
	i.frames[last] = nestedMapFrame[K, V]{}
	i.frames = i.frames[:last]

	if len(i.keys) > 0 {
		var zero K
		i.keys[len(i.keys)-1] = zero
		i.keys = i.keys[:len(i.keys)-1]
	}
}

func (i *NestedMapIterator[K, V]) path(leafKey K) Path[K] {
	path := make(Path[K], 0, i.dimensions)
	path = append(path, i.keys...)
	return append(path, leafKey)
}

// Next returns the next full path and its value.
// The returned path is owned by the caller.
func (i *NestedMapIterator[K, V]) Next() (Path[K], V, bool) {
	e, ok := i.advance()
	if !ok {
		var zero V
		return nil, zero, false
	}
	return i.path(e.Key), e.Value, true
}

// NextKey returns the next full path.
func (i *NestedMapIterator[K, V]) NextKey() (Path[K], bool) {
	e, ok := i.advance()
	if !ok {
		return nil, false
	}
	return i.path(e.Key), true
}

// NextValue returns the next value.
func (i *NestedMapIterator[K, V]) NextValue() (V, bool) {
	e, ok := i.advance()
	if !ok {
		var zero V
		return zero, false
	}
	return e.Value, true
}
