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
	"flag"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	runes = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_")
)

var seed = flag.Int64("seed", 0, "seed for pseudo-random source")

func newRand(tb testing.TB) *rand.Rand {
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	// Benchmarks always log, so only log for tests which
	// will only log with -v flag or on error.
	if t, ok := tb.(*testing.T); ok {
		t.Logf("seed: %d\n", *seed)
	}

	return rand.New(rand.NewSource(*seed))
}

// randStr returns random UTF-8 string of given length.
func randStr(r *rand.Rand, length int) string {
	b := make([]rune, length)
	for i := 0; i < length; i++ {
		b[i] = runes[r.Intn(len(runes))]
	}
	return string(b)
}

// gridEntry is one cell of a 1x3x4 grid, inserted in row-major order.
type gridEntry struct {
	path  Path[string]
	value int
}

var grid = []gridEntry{
	{Path[string]{"a", "a", "a"}, 0},
	{Path[string]{"a", "a", "b"}, 1},
	{Path[string]{"a", "a", "c"}, 2},
	{Path[string]{"a", "a", "d"}, 3},
	{Path[string]{"a", "b", "a"}, 4},
	{Path[string]{"a", "b", "b"}, 5},
	{Path[string]{"a", "b", "c"}, 6},
	{Path[string]{"a", "b", "d"}, 7},
	{Path[string]{"a", "c", "a"}, 8},
	{Path[string]{"a", "c", "b"}, 9},
	{Path[string]{"a", "c", "c"}, 10},
	{Path[string]{"a", "c", "d"}, 11},
}

func setGrid(t *testing.T, m Container[string, int]) {
	for _, e := range grid {
		err := m.Set(e.path, e.value)
		require.NoError(t, err)
	}
}

// containerFactory creates an empty Container with string keys.
type containerFactory struct {
	name string
	new  func(dimensions int) (Container[string, int], error)
}

func newNestedContainer(dimensions int) (Container[string, int], error) {
	m, err := NewNestedMap[string, int](dimensions)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func newFlattenedContainer(dimensions int) (Container[string, int], error) {
	m, err := NewFlattenedMap[int](dimensions)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func newCBORFlattenedContainer(dimensions int) (Container[string, int], error) {
	codec, err := NewCBORCodec[string]()
	if err != nil {
		return nil, err
	}
	m, err := NewFlattenedMapWithCodec[string, int](dimensions, codec)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func newMsgpackFlattenedContainer(dimensions int) (Container[string, int], error) {
	m, err := NewFlattenedMapWithCodec[string, int](dimensions, NewMsgpackCodec[string]())
	if err != nil {
		return nil, err
	}
	return m, nil
}

var containerFactories = []containerFactory{
	{name: "nested", new: newNestedContainer},
	{name: "flattened", new: newFlattenedContainer},
	{name: "flattened cbor", new: newCBORFlattenedContainer},
	{name: "flattened msgpack", new: newMsgpackFlattenedContainer},
}

func newTestContainer(t *testing.T, f containerFactory, dimensions int) Container[string, int] {
	m, err := f.new(dimensions)
	require.NoError(t, err)
	require.Equal(t, dimensions, m.Dimensions())
	return m
}

func verifyContainer(t *testing.T, m Container[string, int]) {
	switch m := m.(type) {
	case *NestedMap[string, int]:
		require.NoError(t, VerifyNestedMap(m))
	case *FlattenedMap[string, int]:
		require.NoError(t, VerifyFlattenedMap(m))
	default:
		t.Fatalf("unexpected container type %T", m)
	}
}

func makePath(prefix string, dimensions int) Path[string] {
	path := make(Path[string], dimensions)
	for i := range path {
		path[i] = prefix
	}
	return path
}

func requireInvalidArity(t *testing.T, err error, dimensions, keys int) {
	var arityErr *InvalidArityError
	require.ErrorAs(t, err, &arityErr)
	require.Equal(t, dimensions, arityErr.Dimensions())
	require.Equal(t, keys, arityErr.Keys())
	require.False(t, arityErr.IsFatal())
}
