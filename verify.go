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

import "fmt"

// VerifyNestedMap checks that every node above the leaf level holds only
// branches, every node at the leaf level holds only values, and that Size
// agrees with the number of iterated entries.
func VerifyNestedMap[K comparable, V any](m *NestedMap[K, V]) error {
	if m.dimensions < 1 {
		return NewVerificationErrorf("dimensions %d, want > 0", m.dimensions)
	}

	count, err := verifyNode(m.root, 0, m.dimensions, nil)
	if err != nil {
		return err
	}

	size := m.Size()
	if size != count {
		return NewVerificationErrorf("Size() %d, counted %d values", size, count)
	}

	iterated := 0
	err = m.Iterate(func(path Path[K], _ V) (bool, error) {
		if len(path) != m.dimensions {
			return false, NewVerificationErrorf("iterated path %v has %d keys, want %d", path, len(path), m.dimensions)
		}
		iterated++
		return true, nil
	})
	if err != nil {
		return err
	}

	if iterated != count {
		return NewVerificationErrorf("iterated %d entries, counted %d values", iterated, count)
	}

	return nil
}

func verifyNode[K comparable, V any](n *node[K, V], depth, dimensions int, prefix Path[K]) (int, error) {
	if n == nil {
		return 0, NewVerificationErrorf("nil node at prefix %v", prefix)
	}

	if depth == dimensions-1 {
		if n.leaves == nil || n.branches != nil {
			return 0, NewVerificationErrorf("node at prefix %v (depth %d) isn't a leaf node", prefix, depth)
		}
		return n.leaves.Len(), nil
	}

	if n.branches == nil || n.leaves != nil {
		return 0, NewVerificationErrorf("node at prefix %v (depth %d) isn't a branch node", prefix, depth)
	}

	count := 0
	for key, child := range n.branches.All() {
		childPrefix := append(prefix.Clone(), key)
		c, err := verifyNode(child, depth+1, dimensions, childPrefix)
		if err != nil {
			return 0, err
		}
		count += c
	}

	return count, nil
}

// VerifyFlattenedMap checks that every composite key decodes to a full path
// that encodes back to the same key.
func VerifyFlattenedMap[K any, V any](m *FlattenedMap[K, V]) error {
	if m.dimensions < 1 {
		return NewVerificationErrorf("dimensions %d, want > 0", m.dimensions)
	}

	count := 0
	for e := m.root.Front(); e != nil; e = e.Next() {
		path, err := m.pathFromKey(e.Key)
		if err != nil {
			return NewVerificationError(err)
		}

		key, err := m.codec.EncodeKey(path)
		if err != nil {
			return NewVerificationError(err)
		}

		if key != e.Key {
			return NewVerificationError(fmt.Errorf("key %q decodes to %v which encodes to %q", e.Key, path, key))
		}

		count++
	}

	if count != m.Size() {
		return NewVerificationErrorf("Size() %d, counted %d entries", m.Size(), count)
	}

	return nil
}
