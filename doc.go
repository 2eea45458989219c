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

// Package ndmap implements multi-dimensional maps: maps keyed by a path of
// a fixed number of keys instead of a single key.
//
// Two variants implement the same Container contract:
//
//   - NestedMap is a tree of maps, one level per dimension. Keys can be any
//     comparable type and partial paths can be looked up, but iteration
//     follows the tree: insertion order is kept per level only.
//   - FlattenedMap stores every value in one flat map under a composite key
//     produced by a KeyCodec. Size is O(1) and iteration follows global
//     insertion order, but every operation needs a full path.
//
// The number of dimensions is fixed when a map is created. Operations given
// a path of the wrong length return *InvalidArityError. A missing entry is
// never an error: Get reports it with false.
package ndmap
