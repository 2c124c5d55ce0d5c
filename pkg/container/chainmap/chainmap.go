// Copyright 2022 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package chainmap

import (
	"golang.org/x/exp/slices"

	"github.com/matrixorigin/chainmap/pkg/common/moerr"
)

// ChainedMap is a hash table with a fixed number of buckets. Keys that land
// in the same bucket are chained in insertion order.
//
// With the default AppendDuplicates policy it behaves as an ordered multimap:
// inserting a key that is already present adds another entry, lookups return
// the oldest one.
//
// A ChainedMap is not safe for concurrent use.
type ChainedMap[K comparable, V any] struct {
	hasher  Hasher[K]
	policy  DuplicatePolicy
	count   int
	buckets [][]Entry[K, V]
}

func New[K comparable, V any](n int, hasher Hasher[K], opts ...Option) (*ChainedMap[K, V], error) {
	if n <= 0 {
		return nil, moerr.NewInvalidCapacityNoCtx(n)
	}
	if hasher == nil {
		return nil, moerr.NewInvalidArgNoCtx("hasher", "nil")
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	m := &ChainedMap[K, V]{
		hasher:  hasher,
		policy:  o.policy,
		buckets: make([][]Entry[K, V], n),
	}
	for i := range m.buckets {
		m.buckets[i] = make([]Entry[K, V], 0)
	}
	return m, nil
}

func NewStringMap[V any](n int, opts ...Option) (*ChainedMap[string, V], error) {
	return New[string, V](n, StringHash, opts...)
}

// bucketIndex folds h into [0, len(buckets)). The remainder is taken before
// the sign is dropped, so math.MinInt64 cannot overflow.
func (m *ChainedMap[K, V]) bucketIndex(h int64) int {
	i := h % int64(len(m.buckets))
	if i < 0 {
		i = -i
	}
	return int(i)
}

// BucketOf returns the index of the bucket key belongs to.
func (m *ChainedMap[K, V]) BucketOf(key K) int {
	return m.bucketIndex(m.hasher(key))
}

func find[K comparable, V any](b []Entry[K, V], key K) int {
	for i := range b {
		if b[i].Key == key {
			return i
		}
	}
	return -1
}

func (m *ChainedMap[K, V]) Insert(key K, value V) {
	idx := m.BucketOf(key)
	if m.policy == ReplaceDuplicates {
		if i := find(m.buckets[idx], key); i >= 0 {
			m.buckets[idx][i] = Entry[K, V]{Key: key, Value: value}
			return
		}
	}
	m.buckets[idx] = append(m.buckets[idx], Entry[K, V]{Key: key, Value: value})
	m.count++
}

// Get returns the value of the oldest entry for key.
func (m *ChainedMap[K, V]) Get(key K) (V, bool) {
	b := m.buckets[m.BucketOf(key)]
	if i := find(b, key); i >= 0 {
		return b[i].Value, true
	}
	var v V
	return v, false
}

func (m *ChainedMap[K, V]) Contains(key K) bool {
	return find(m.buckets[m.BucketOf(key)], key) >= 0
}

// Delete removes the oldest entry for key and returns its value. Other
// entries of the bucket keep their order and no other bucket is touched.
func (m *ChainedMap[K, V]) Delete(key K) (V, bool) {
	idx := m.BucketOf(key)
	b := m.buckets[idx]
	i := find(b, key)
	if i < 0 {
		var v V
		return v, false
	}
	v := b[i].Value
	b = slices.Delete(b, i, i+1)
	// release the vacated tail slot
	b[:len(b)+1][len(b)] = Entry[K, V]{}
	m.buckets[idx] = b
	m.count--
	return v, true
}

// Count returns how many entries carry key.
func (m *ChainedMap[K, V]) Count(key K) int {
	n := 0
	for _, e := range m.buckets[m.BucketOf(key)] {
		if e.Key == key {
			n++
		}
	}
	return n
}

// GetAll returns every value stored under key, oldest first.
func (m *ChainedMap[K, V]) GetAll(key K) []V {
	var vs []V
	for _, e := range m.buckets[m.BucketOf(key)] {
		if e.Key == key {
			vs = append(vs, e.Value)
		}
	}
	return vs
}

// Range calls fn for every entry in bucket order, then chain order, until fn
// returns false. fn must not modify the map.
func (m *ChainedMap[K, V]) Range(fn func(key K, value V) bool) {
	for _, b := range m.buckets {
		for _, e := range b {
			if !fn(e.Key, e.Value) {
				return
			}
		}
	}
}

func (m *ChainedMap[K, V]) Reset() {
	for i := range m.buckets {
		m.buckets[i] = make([]Entry[K, V], 0)
	}
	m.count = 0
}

func (m *ChainedMap[K, V]) Len() int {
	return m.count
}

func (m *ChainedMap[K, V]) IsEmpty() bool {
	return m.count == 0
}

func (m *ChainedMap[K, V]) BucketCount() int {
	return len(m.buckets)
}

func (m *ChainedMap[K, V]) Policy() DuplicatePolicy {
	return m.policy
}

func (m *ChainedMap[K, V]) LoadFactor() float64 {
	return float64(m.count) / float64(len(m.buckets))
}

// Dump copies every bucket in index order.
func (m *ChainedMap[K, V]) Dump() []BucketDump[K, V] {
	dump := make([]BucketDump[K, V], len(m.buckets))
	for i, b := range m.buckets {
		dump[i] = BucketDump[K, V]{
			Index:   i,
			Entries: slices.Clone(b),
		}
	}
	return dump
}

func (m *ChainedMap[K, V]) Stats() Stats {
	s := Stats{
		Buckets:    len(m.buckets),
		Entries:    m.count,
		LoadFactor: m.LoadFactor(),
	}
	for _, b := range m.buckets {
		if len(b) > 0 {
			s.NonEmpty++
		}
		if len(b) > s.MaxChain {
			s.MaxChain = len(b)
		}
	}
	return s
}
