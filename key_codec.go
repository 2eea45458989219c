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
	"bytes"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// DefaultSeparator is the separator used by NewFlattenedMap.
const DefaultSeparator = ":"

// KeyCodec converts a path to the composite key stored by a FlattenedMap and back.
// DecodeKey(EncodeKey(p)) must reproduce p.
type KeyCodec[K any] interface {
	EncodeKey(path Path[K]) (string, error)
	DecodeKey(key string) (Path[K], error)
}

// SeparatorCodec joins string keys with a separator.
//
// Keys must not contain the separator. This isn't checked on encode:
// a key containing the separator silently aliases another path, and
// decoding it yields the wrong number of keys.
type SeparatorCodec struct {
	separator string
}

var _ KeyCodec[string] = SeparatorCodec{}

func NewSeparatorCodec(separator string) SeparatorCodec {
	return SeparatorCodec{separator: separator}
}

func (c SeparatorCodec) Separator() string {
	return c.separator
}

func (c SeparatorCodec) EncodeKey(path Path[string]) (string, error) {
	return strings.Join(path, c.separator), nil
}

func (c SeparatorCodec) DecodeKey(key string) (Path[string], error) {
	return strings.Split(key, c.separator), nil
}

// CBORCodec encodes a path as a CBOR array using deterministic core encoding.
// It supports any key type CBOR can round trip. String keys may contain any
// bytes, including invalid UTF-8, and decode back unchanged.
type CBORCodec[K any] struct {
	encMode cbor.EncMode
	decMode cbor.DecMode
}

var _ KeyCodec[string] = &CBORCodec[string]{}

func NewCBORCodec[K any]() (*CBORCodec[K], error) {
	encMode, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return nil, err
	}

	decMode, err := cbor.DecOptions{UTF8: cbor.UTF8DecodeInvalid}.DecMode()
	if err != nil {
		return nil, err
	}

	return &CBORCodec[K]{encMode: encMode, decMode: decMode}, nil
}

func (c *CBORCodec[K]) EncodeKey(path Path[K]) (string, error) {
	b, err := c.encMode.Marshal([]K(path))
	if err != nil {
		return "", NewKeyEncodingError(err)
	}
	return string(b), nil
}

func (c *CBORCodec[K]) DecodeKey(key string) (Path[K], error) {
	var path []K
	err := c.decMode.Unmarshal([]byte(key), &path)
	if err != nil {
		return nil, NewKeyDecodingError(key, err)
	}
	return path, nil
}

// MsgpackCodec encodes a path as a MessagePack array.
// Map keys inside path elements are sorted so that equal paths encode equally.
type MsgpackCodec[K any] struct{}

var _ KeyCodec[string] = MsgpackCodec[string]{}

func NewMsgpackCodec[K any]() MsgpackCodec[K] {
	return MsgpackCodec[K]{}
}

func (MsgpackCodec[K]) EncodeKey(path Path[K]) (string, error) {
	var buf bytes.Buffer

	enc := msgpack.GetEncoder()
	enc.Reset(&buf)
	enc.SetSortMapKeys(true)
	err := enc.Encode([]K(path))
	msgpack.PutEncoder(enc)
	if err != nil {
		return "", NewKeyEncodingError(err)
	}

	return buf.String(), nil
}

func (MsgpackCodec[K]) DecodeKey(key string) (Path[K], error) {
	var path []K

	dec := msgpack.GetDecoder()
	dec.Reset(strings.NewReader(key))
	err := dec.Decode(&path)
	msgpack.PutDecoder(dec)
	if err != nil {
		return nil, NewKeyDecodingError(key, err)
	}

	return path, nil
}
