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

package main

import (
	"math/rand"
	"time"

	"github.com/onflow/ndmap"
	"github.com/phuslu/log"
)

var (
	letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")

	r *rand.Rand
)

func newRand(logger *log.Logger, seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger.Info().Msgf("rand seed 0x%x", seed)
	return rand.New(rand.NewSource(seed))
}

func randStr(n int) string {
	runes := make([]rune, n)
	for i := range runes {
		runes[i] = letters[r.Intn(len(letters))]
	}
	return string(runes)
}

// randomPath returns a path of short keys so that generated paths
// share prefixes and collide often.
func randomPath(dimensions, keyLength int) ndmap.Path[string] {
	path := make(ndmap.Path[string], dimensions)
	for i := range path {
		path[i] = randStr(r.Intn(keyLength) + 1)
	}
	return path
}

// referenceKey joins path into a key of the reference Go map.
func referenceKey(path ndmap.Path[string]) string {
	var n int
	for _, k := range path {
		n += len(k) + 1
	}
	b := make([]byte, 0, n)
	for _, k := range path {
		b = append(b, k...)
		b = append(b, 0)
	}
	return string(b)
}
