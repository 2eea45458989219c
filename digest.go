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
	"encoding/binary"

	"github.com/fxamacker/cbor/v2"
	"github.com/fxamacker/circlehash"
	"github.com/zeebo/blake3"
)

var digestEncOptions = cbor.CoreDetEncOptions()

// Digester hashes one encoded entry.
type Digester interface {
	// Size returns the digest length in bytes.
	Size() int
	Sum(data []byte) []byte
}

type circleHashDigester struct {
	seed uint64
}

var _ Digester = &circleHashDigester{}

// NewCircleHashDigester returns a fast 64-bit Digester using CircleHash64 with seed.
func NewCircleHashDigester(seed uint64) Digester {
	return &circleHashDigester{seed: seed}
}

func (d *circleHashDigester) Size() int {
	return 8
}

func (d *circleHashDigester) Sum(data []byte) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], circlehash.Hash64(data, d.seed))
	return b[:]
}

type blake3Digester struct{}

var _ Digester = blake3Digester{}

// NewBLAKE3Digester returns a 256-bit Digester using BLAKE3.
func NewBLAKE3Digester() Digester {
	return blake3Digester{}
}

func (blake3Digester) Size() int {
	return 32
}

func (blake3Digester) Sum(data []byte) []byte {
	sum := blake3.Sum256(data)
	return sum[:]
}

// ContentDigest returns a digest of c's entries that doesn't depend on
// iteration order. Two containers holding the same paths and values have
// the same digest, whichever variant they are.
//
// Each entry is encoded as the CBOR array [path, value] with deterministic
// core encoding, hashed with d, and the entry digests are summed modulo 2^(8*d.Size()).
func ContentDigest[K any, V any](c Container[K, V], d Digester) ([]byte, error) {
	encMode, err := digestEncOptions.EncMode()
	if err != nil {
		return nil, err
	}

	sum := make([]byte, d.Size())

	err = c.Iterate(func(path Path[K], value V) (bool, error) {
		data, err := encMode.Marshal([]interface{}{[]K(path), value})
		if err != nil {
			return false, NewKeyEncodingError(err)
		}
		addDigest(sum, d.Sum(data))
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	return sum, nil
}

// addDigest adds digest to sum as big-endian unsigned integers, dropping the final carry.
func addDigest(sum, digest []byte) {
	carry := uint16(0)
	for i := len(sum) - 1; i >= 0; i-- {
		s := uint16(sum[i]) + uint16(digest[i]) + carry
		sum[i] = byte(s)
		carry = s >> 8
	}
}
