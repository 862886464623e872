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

// Package dictionary implements the sorted, deduplicated string dictionary
// shared by the plain and run-length column encodings.
//
// Encoded id 0 is reserved for NULL by every caller of this package; a
// Dictionary itself only ever holds non-null strings and hands out ids in
// [1, Len()].
package dictionary

import (
	"encoding/binary"
	"sort"

	"golang.org/x/exp/slices"
)

// Dictionary is a lexicographically sorted, immutable list of distinct
// non-null strings. Its encoded id space is 1-based; 0 is reserved for
// NULL by callers and is never assigned by Dictionary itself.
type Dictionary struct {
	entries []string
	bytes   int
}

// NullID is the encoded id reserved for NULL.
const NullID uint32 = 0

// New returns the empty dictionary.
func New() *Dictionary {
	return &Dictionary{}
}

// FromSorted builds a Dictionary directly from an already sorted,
// duplicate-free list of strings, taking ownership of entries.
// Callers that already produced a sorted dictionary (e.g. via Builder)
// should prefer this over re-sorting.
func FromSorted(entries []string) *Dictionary {
	d := &Dictionary{entries: entries}
	for _, s := range entries {
		d.bytes += len(s)
	}
	return d
}

// Len returns the number of distinct strings in the dictionary (its
// cardinality D).
func (d *Dictionary) Len() int {
	return len(d.entries)
}

// Bytes returns the total length, in bytes, of the interned strings.
func (d *Dictionary) Bytes() int {
	return d.bytes
}

// Lookup returns the encoded id for s and true if s is present in the
// dictionary, or (0, false) otherwise.
func (d *Dictionary) Lookup(s string) (uint32, bool) {
	i := sort.SearchStrings(d.entries, s)
	if i < len(d.entries) && d.entries[i] == s {
		return uint32(i + 1), true
	}
	return 0, false
}

// InsertionPoint returns the index at which s would be inserted to keep
// the dictionary sorted (0-based, in [0, D]; for a present value it is
// one less than the encoded id that value carries).
func (d *Dictionary) InsertionPoint(s string) int {
	return sort.SearchStrings(d.entries, s)
}

// String returns the dictionary entry for the given encoded id.
// It returns ("", false) for NullID and for any id outside [1, Len()].
func (d *Dictionary) String(id uint32) (string, bool) {
	if id == NullID || int(id) > len(d.entries) {
		return "", false
	}
	return d.entries[id-1], true
}

// At returns the dictionary entry at the given 0-based sorted position.
func (d *Dictionary) At(pos int) string {
	return d.entries[pos]
}

// Entries returns the dictionary's sorted entries. Callers must not
// mutate the returned slice.
func (d *Dictionary) Entries() []string {
	return d.entries
}

// CompressedSize estimates the footprint of the interned strings under
// block compression (see CompressedBytes), used by the encodings'
// Size() to report a more realistic memory estimate than raw byte count
// for dictionaries with repetitive content (e.g. common prefixes).
func (d *Dictionary) CompressedSize() int {
	return CompressedBytes(d.entries)
}

// fingerprintSeed perturbs the per-string hash contribution with the
// entry's dense position so that permutations of the same strings under
// a different sort order would not collide (the dictionary is always
// sorted, but this keeps Fingerprint meaningful if that ever changes).
func fingerprintSeed(pos int) uint64 {
	return uint64(pos) * 0x9e3779b97f4a7c15
}

// Hash64 computes a content hash of the dictionary using the supplied
// keyed hash function, combining every entry with its dense position.
// It is used by Column.Fingerprint to cheaply compare column content.
func (d *Dictionary) Hash64(hash func(key0, key1 uint64, buf []byte) uint64) uint64 {
	var acc uint64
	var lenbuf [binary.MaxVarintLen64]byte
	for i, s := range d.entries {
		n := binary.PutUvarint(lenbuf[:], uint64(len(s)))
		h := hash(fingerprintSeed(i), 0, append(slices.Clone(lenbuf[:n]), s...))
		acc ^= h + 0x9e3779b9 + acc<<6 + acc>>2
	}
	return acc
}
