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

// DefaultBucketCount is the bucket count used when none is configured.
const DefaultBucketCount = 10

// Hasher maps a key to a signed hash. Negative results are allowed; the map
// folds them into the bucket range.
type Hasher[K any] func(K) int64

// DuplicatePolicy decides what Insert does with a key that is already present.
type DuplicatePolicy uint8

const (
	// AppendDuplicates appends another entry for the key. Lookup and Delete
	// see the oldest entry first, newer ones stay shadowed until it is deleted.
	AppendDuplicates DuplicatePolicy = iota
	// ReplaceDuplicates overwrites the oldest entry for the key in place.
	ReplaceDuplicates
)

func (p DuplicatePolicy) String() string {
	switch p {
	case AppendDuplicates:
		return "append"
	case ReplaceDuplicates:
		return "replace"
	default:
		return "unknown"
	}
}

type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// BucketDump is a copy of one bucket, entries in insertion order.
type BucketDump[K comparable, V any] struct {
	Index   int
	Entries []Entry[K, V]
}

type Stats struct {
	Buckets    int
	Entries    int
	NonEmpty   int
	MaxChain   int
	LoadFactor float64
}

type options struct {
	policy DuplicatePolicy
}

type Option func(*options)

func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}
