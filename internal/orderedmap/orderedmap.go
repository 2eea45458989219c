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

// Package orderedmap provides a hash map that iterates in insertion order.
package orderedmap

import "iter"

// Entry is an element of Map's insertion-ordered entry list.
type Entry[K comparable, V any] struct {
	Key   K
	Value V

	prev, next *Entry[K, V]
}

// Next returns the entry inserted after e, or nil at the end of the map.
func (e *Entry[K, V]) Next() *Entry[K, V] {
	return e.next
}

// Map is a map[K]V that remembers insertion order.
// Overwriting an existing key keeps its position; deleting and
// re-inserting a key moves it to the end.
// The zero value is not ready to use, call New.
type Map[K comparable, V any] struct {
	entries map[K]*Entry[K, V]
	head    *Entry[K, V]
	tail    *Entry[K, V]
}

func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{entries: make(map[K]*Entry[K, V])}
}

func (m *Map[K, V]) Len() int {
	return len(m.entries)
}

func (m *Map[K, V]) Get(key K) (V, bool) {
	e, ok := m.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	return e.Value, true
}

func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.entries[key]
	return ok
}

// Set stores value under key and reports whether key was newly inserted.
func (m *Map[K, V]) Set(key K, value V) bool {
	if e, ok := m.entries[key]; ok {
		e.Value = value
		return false
	}

	e := &Entry[K, V]{Key: key, Value: value, prev: m.tail}
	if m.tail != nil {
		m.tail.next = e
	} else {
		m.head = e
	}
	m.tail = e
	m.entries[key] = e
	return true
}

// Delete removes key and reports whether it was present.
func (m *Map[K, V]) Delete(key K) bool {
	e, ok := m.entries[key]
	if !ok {
		return false
	}

	if e.prev != nil {
		e.prev.next = e.next
	} else {
		m.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		m.tail = e.prev
	}

	// e.next is kept so a cursor parked on e can still advance.
	e.prev = nil

	delete(m.entries, key)
	return true
}

func (m *Map[K, V]) Clear() {
	clear(m.entries)
	m.head = nil
	m.tail = nil
}

// Front returns the oldest entry, or nil if m is empty.
func (m *Map[K, V]) Front() *Entry[K, V] {
	return m.head
}

// All iterates entries in insertion order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for e := m.head; e != nil; e = e.Next() {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// Keys iterates keys in insertion order.
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for e := m.head; e != nil; e = e.Next() {
			if !yield(e.Key) {
				return
			}
		}
	}
}

// Values iterates values in insertion order.
func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for e := m.head; e != nil; e = e.Next() {
			if !yield(e.Value) {
				return
			}
		}
	}
}
