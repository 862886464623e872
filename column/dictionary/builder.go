// Copyright (C) 2024 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package dictionary

import (
	"golang.org/x/exp/slices"

	"github.com/dchest/siphash"
)

// probeKey0, probeKey1 are fixed random keys for the siphash-based
// dedup probe set below, in the same spirit as the two fixed keys used
// to seed peer-partitioning hashes in splitter.go.
const (
	probeKey0 = uint64(0xc10a2d3f9b7e5641)
	probeKey1 = uint64(0x1f4b9a6e2d8c0357)
)

// probeBuckets must be a power of two.
const probeBuckets = 1024

// Builder accumulates distinct non-null strings into a sorted
// Dictionary. It deduplicates with a fixed table of probeBuckets
// siphash-keyed buckets, each holding the distinct strings that hash
// there, so an insert compares only against its own bucket instead of
// paying for a sort on every insert.
type Builder struct {
	buckets [][]string // bucket -> already-seen strings hashing there
	seen    int
}

// NewBuilder returns an empty dictionary builder.
func NewBuilder() *Builder {
	return &Builder{buckets: make([][]string, probeBuckets)}
}

func bucketOf(s string) int {
	return int(siphash.Hash(probeKey0, probeKey1, []byte(s)) & (probeBuckets - 1))
}

// Insert records s as a member of the dictionary-to-be. Duplicate
// inserts of the same string are no-ops.
func (b *Builder) Insert(s string) {
	i := bucketOf(s)
	bucket := b.buckets[i]
	for _, x := range bucket {
		if x == s {
			return
		}
	}
	b.buckets[i] = append(bucket, s)
	b.seen++
}

// Len returns the number of distinct strings inserted so far.
func (b *Builder) Len() int {
	return b.seen
}

// Build finalizes the builder into a sorted Dictionary. The builder
// must not be used afterwards.
func (b *Builder) Build() *Dictionary {
	entries := make([]string, 0, b.seen)
	for _, bucket := range b.buckets {
		entries = append(entries, bucket...)
	}
	slices.Sort(entries)
	return FromSorted(entries)
}
