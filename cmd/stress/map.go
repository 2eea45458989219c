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
	"bytes"
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/onflow/ndmap"
	"github.com/phuslu/log"
)

const (
	mapSetOp = iota
	mapDeleteOp
	mapGetOp
	maxMapOp
)

const (
	nestedMapName    = "nested"
	flattenedMapName = "flattened"
)

type mapStatus struct {
	lock sync.RWMutex

	startTime time.Time

	count uint64 // number of elements in each map

	setOps    uint64
	deleteOps uint64
	getOps    uint64
	clearOps  uint64
	checks    uint64
}

func newMapStatus() *mapStatus {
	return &mapStatus{startTime: time.Now()}
}

func (status *mapStatus) log(logger *log.Logger) {
	status.lock.RLock()
	defer status.lock.RUnlock()

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	logger.Info().
		Str("duration", time.Since(status.startTime).Truncate(time.Second).String()).
		Uint64("heapAllocMiB", m.Alloc/1024/1024).
		Uint64("elements", status.count).
		Uint64("sets", status.setOps).
		Uint64("deletes", status.deleteOps).
		Uint64("gets", status.getOps).
		Uint64("clears", status.clearOps).
		Uint64("checks", status.checks).
		Msg("status")
}

func (status *mapStatus) incSet(new bool) {
	status.lock.Lock()
	defer status.lock.Unlock()

	status.setOps++

	if new {
		status.count++
	}
}

func (status *mapStatus) incDelete() {
	status.lock.Lock()
	defer status.lock.Unlock()

	status.deleteOps++
	status.count--
}

func (status *mapStatus) incGet() {
	status.lock.Lock()
	defer status.lock.Unlock()

	status.getOps++
}

func (status *mapStatus) incClear() {
	status.lock.Lock()
	defer status.lock.Unlock()

	status.clearOps++
	status.count = 0
}

func (status *mapStatus) incCheck() {
	status.lock.Lock()
	defer status.lock.Unlock()

	status.checks++
}

type namedMap struct {
	name string
	m    ndmap.Container[string, uint64]
}

func newFlattenedMap(cfg config) (*ndmap.FlattenedMap[string, uint64], error) {
	switch cfg.codec {
	case "cbor":
		codec, err := ndmap.NewCBORCodec[string]()
		if err != nil {
			return nil, err
		}
		return ndmap.NewFlattenedMapWithCodec[string, uint64](cfg.dimensions, codec)
	case "msgpack":
		return ndmap.NewFlattenedMapWithCodec[string, uint64](cfg.dimensions, ndmap.NewMsgpackCodec[string]())
	default:
		return ndmap.NewFlattenedMapWithSeparator[uint64](cfg.dimensions, cfg.separator)
	}
}

// testMaps applies the same random operations to a NestedMap and a
// FlattenedMap and checks both against a plain Go map after every op.
func testMaps(ctx context.Context, logger *log.Logger, cfg config, status *mapStatus, metrics *metrics) error {

	nested, err := ndmap.NewNestedMap[string, uint64](cfg.dimensions)
	if err != nil {
		return fmt.Errorf("failed to create nested map: %w", err)
	}

	flattened, err := newFlattenedMap(cfg)
	if err != nil {
		return fmt.Errorf("failed to create flattened map: %w", err)
	}

	maps := []namedMap{
		{name: nestedMapName, m: nested},
		{name: flattenedMapName, m: flattened},
	}

	// elements contains generated paths and values. It is used to check data loss.
	elements := make(map[string]uint64, cfg.maxLength)

	// paths contains generated paths. It is used to select random paths for deletion.
	paths := make([]ndmap.Path[string], 0, cfg.maxLength)

	opCount := uint64(0)

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("stopping stress test")
			return nil
		default:
		}

		nextOp := r.Intn(maxMapOp)

		if uint64(len(elements)) >= cfg.maxLength {
			// Occasionally drop everything instead of trimming one path at a time.
			if r.Intn(10) == 0 {
				for _, nm := range maps {
					nm.m.Clear()
					metrics.op(nm.name, "clear")
				}
				clear(elements)
				paths = paths[:0]
				status.incClear()
				logger.Debug().Msg("cleared maps")
				continue
			}
			nextOp = mapDeleteOp
		}

		switch nextOp {

		case mapSetOp:
			opCount++

			path := randomPath(cfg.dimensions, cfg.keyLength)
			value := r.Uint64()
			key := referenceKey(path)

			_, exists := elements[key]
			if !exists {
				paths = append(paths, path)
			}
			elements[key] = value

			for _, nm := range maps {
				err := nm.m.Set(path, value)
				if err != nil {
					return fmt.Errorf("%s: failed to set %d at %v: %w", nm.name, value, path, err)
				}
				metrics.op(nm.name, "set")
			}

			status.incSet(!exists)

		case mapDeleteOp:
			if len(paths) == 0 {
				continue
			}

			opCount++

			i := r.Intn(len(paths))
			path := paths[i]
			key := referenceKey(path)

			delete(elements, key)

			last := len(paths) - 1
			if i != last {
				paths[i] = paths[last]
			}
			paths[last] = nil
			paths = paths[:last]

			for _, nm := range maps {
				deleted, err := nm.m.Delete(path)
				if err != nil {
					return fmt.Errorf("%s: failed to delete %v: %w", nm.name, path, err)
				}
				if !deleted {
					return fmt.Errorf("%s: Delete(%v) returned false, want true", nm.name, path)
				}
				metrics.op(nm.name, "delete")
			}

			status.incDelete()

		case mapGetOp:
			opCount++

			path := randomPath(cfg.dimensions, cfg.keyLength)
			want, exists := elements[referenceKey(path)]

			for _, nm := range maps {
				got, found, err := nm.m.Get(path)
				if err != nil {
					return fmt.Errorf("%s: failed to get %v: %w", nm.name, path, err)
				}
				if found != exists || got != want {
					return fmt.Errorf("%s: Get(%v) returned (%d, %t), want (%d, %t)", nm.name, path, got, found, want, exists)
				}
				metrics.op(nm.name, "get")
			}

			status.incGet()
		}

		for _, nm := range maps {
			size := nm.m.Size()
			if size != len(elements) {
				return fmt.Errorf("%s: Size() %d != len(elements) %d", nm.name, size, len(elements))
			}
			metrics.size(nm.name, size)
		}

		if opCount >= cfg.checkInterval {
			opCount = 0

			err := checkMaps(nested, flattened, elements)
			if err != nil {
				return err
			}

			metrics.verifications.Inc()
			status.incCheck()
		}
	}
}

// checkMaps verifies both maps' structure, compares them with elements,
// and compares their content digests.
func checkMaps(
	nested *ndmap.NestedMap[string, uint64],
	flattened *ndmap.FlattenedMap[string, uint64],
	elements map[string]uint64,
) error {

	err := ndmap.VerifyNestedMap(nested)
	if err != nil {
		return err
	}

	err = ndmap.VerifyFlattenedMap(flattened)
	if err != nil {
		return err
	}

	for _, nm := range []namedMap{{nestedMapName, nested}, {flattenedMapName, flattened}} {
		err = checkMapDataLoss(nm.m, elements)
		if err != nil {
			return fmt.Errorf("%s: %w", nm.name, err)
		}
	}

	digester := ndmap.NewCircleHashDigester(uint64(r.Int63()))

	nestedDigest, err := ndmap.ContentDigest[string, uint64](nested, digester)
	if err != nil {
		return fmt.Errorf("failed to digest nested map: %w", err)
	}

	flattenedDigest, err := ndmap.ContentDigest[string, uint64](flattened, digester)
	if err != nil {
		return fmt.Errorf("failed to digest flattened map: %w", err)
	}

	if !bytes.Equal(nestedDigest, flattenedDigest) {
		return fmt.Errorf("content digest mismatch: nested %x, flattened %x", nestedDigest, flattenedDigest)
	}

	return nil
}

func checkMapDataLoss(m ndmap.Container[string, uint64], elements map[string]uint64) error {

	// Check map has the same number of elements as elements
	if m.Size() != len(elements) {
		return fmt.Errorf("Size() %d != len(elements) %d", m.Size(), len(elements))
	}

	// Check every iterated element
	count := 0
	err := m.Iterate(func(path ndmap.Path[string], value uint64) (bool, error) {
		count++
		want, ok := elements[referenceKey(path)]
		if !ok {
			return false, fmt.Errorf("iterated unknown path %v", path)
		}
		if want != value {
			return false, fmt.Errorf("path %v has value %d, want %d", path, value, want)
		}
		return true, nil
	})
	if err != nil {
		return err
	}

	if count != len(elements) {
		return fmt.Errorf("iterated %d elements, want %d", count, len(elements))
	}

	return nil
}
