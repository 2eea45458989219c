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
	"fmt"
	"strings"
)

func PrintNestedMap[K comparable, V any](m *NestedMap[K, V]) {
	fmt.Println(strings.Join(DumpNestedMap(m), "\n"))
}

// DumpNestedMap returns one line per node, level by level.
func DumpNestedMap[K comparable, V any](m *NestedMap[K, V]) []string {
	type levelNode struct {
		prefix Path[K]
		n      *node[K, V]
	}

	var dumps []string

	nextLevel := []levelNode{{n: m.root}}

	level := 0
	for len(nextLevel) > 0 {

		nodes := nextLevel

		nextLevel = nil

		for _, ln := range nodes {
			if ln.n.isLeaf() {
				var entries []string
				for key, value := range ln.n.leaves.All() {
					entries = append(entries, fmt.Sprintf("%v:%v", key, value))
				}
				dumps = append(dumps, fmt.Sprintf("level %d, leaf %v, values [%s]", level+1, ln.prefix, strings.Join(entries, " ")))
				continue
			}

			var keys []string
			for key, child := range ln.n.branches.All() {
				keys = append(keys, fmt.Sprintf("%v", key))
				nextLevel = append(nextLevel, levelNode{prefix: append(ln.prefix.Clone(), key), n: child})
			}
			dumps = append(dumps, fmt.Sprintf("level %d, branch %v, keys [%s]", level+1, ln.prefix, strings.Join(keys, " ")))
		}

		level++
	}

	return dumps
}

func PrintFlattenedMap[K any, V any](m *FlattenedMap[K, V]) {
	fmt.Println(strings.Join(DumpFlattenedMap(m), "\n"))
}

// DumpFlattenedMap returns one line per entry in insertion order.
func DumpFlattenedMap[K any, V any](m *FlattenedMap[K, V]) []string {
	var dumps []string
	for e := m.root.Front(); e != nil; e = e.Next() {
		path, err := m.pathFromKey(e.Key)
		if err != nil {
			dumps = append(dumps, fmt.Sprintf("key %q, error %s", e.Key, err))
			continue
		}
		dumps = append(dumps, fmt.Sprintf("key %q, path %v, value %v", e.Key, path, e.Value))
	}
	return dumps
}
