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

// Package rle implements the run-length dictionary column encoding: the
// column is stored as a sequence of (dictionary-id, run-length) pairs,
// plus an inverted index mapping each encoded id to the set of row ids
// where it appears.
package rle

import (
	"fmt"

	"github.com/sneller-labs/strcolumn/column/dictionary"
	"github.com/sneller-labs/strcolumn/column/rowset"
	"github.com/sneller-labs/strcolumn/column/value"
)

// run is a (id, length) pair: length consecutive rows sharing id.
type run struct {
	id  uint32
	len uint32
}

// RLE is a run-length dictionary column encoding backed by a shared
// dictionary, a list of runs, and a per-id inverted index.
type RLE struct {
	dict     *dictionary.Dictionary
	runs     []run
	byID     []rowset.Set // index 0 is NULL's inverted index
	numRows  int
	nonNull  int
	nextRow  uint32
	min, max string
	hasRange bool
}

// New returns an empty RLE encoding seeded with dict. The dictionary's
// ids are assigned once, in sorted order, and never change afterwards.
func New(dict *dictionary.Dictionary) *RLE {
	r := &RLE{dict: dict}
	r.byID = make([]rowset.Set, dict.Len()+1)
	return r
}

// PushAdditional appends count rows with logical value v (nil for NULL)
// to the encoding. Consecutive calls that resolve to the same id merge
// into a single run, preserving invariant 2 (no two adjacent runs share
// an id); see spec section 4.5.
func (r *RLE) PushAdditional(v *string, count int) {
	if count <= 0 {
		return
	}
	id := dictionary.NullID
	if v != nil {
		var ok bool
		id, ok = r.dict.Lookup(*v)
		if !ok {
			panic(fmt.Sprintf("rle: value %q not present in seeded dictionary", *v))
		}
		r.nonNull += count
		r.observe(*v)
	}
	lo := r.nextRow
	hi := lo + uint32(count)
	r.byID[id].AddRange(lo, hi)
	r.nextRow = hi
	r.numRows += count

	if n := len(r.runs); n > 0 && r.runs[n-1].id == id {
		r.runs[n-1].len += uint32(count)
		return
	}
	r.runs = append(r.runs, run{id: id, len: uint32(count)})
}

func (r *RLE) observe(v string) {
	if !r.hasRange {
		r.min, r.max = v, v
		r.hasRange = true
		return
	}
	if v < r.min {
		r.min = v
	}
	if v > r.max {
		r.max = v
	}
}

// NumRows returns N, the number of logical rows in the column.
func (r *RLE) NumRows() int {
	return r.numRows
}

// Size returns an estimate, in bytes, of the memory held by the
// encoding: the dictionary, the run list, and the inverted index.
func (r *RLE) Size() int {
	idx := 0
	for i := range r.byID {
		idx += r.byID[i].Len() * 4
	}
	return r.dict.CompressedSize() + len(r.runs)*8 + idx
}

// ColumnMin returns the lexicographic minimum non-null value, or
// ("", false) if the column contains only NULLs.
func (r *RLE) ColumnMin() (string, bool) {
	return r.min, r.hasRange
}

// ColumnMax returns the lexicographic maximum non-null value, or
// ("", false) if the column contains only NULLs.
func (r *RLE) ColumnMax() (string, bool) {
	return r.max, r.hasRange
}

// ContainsNull reports whether any row holds NULL.
func (r *RLE) ContainsNull() bool {
	return !r.byID[dictionary.NullID].IsEmpty()
}

// HasAnyNonNullValue reports whether N - #nulls > 0.
func (r *RLE) HasAnyNonNullValue() bool {
	return r.nonNull > 0
}

// HasPrecomputedRowIDSets always returns true for the RLE encoding.
func (r *RLE) HasPrecomputedRowIDSets() bool {
	return true
}

func (r *RLE) String() string {
	return fmt.Sprintf("rle(rows=%d, runs=%d, dict=%d)", r.numRows, len(r.runs), r.dict.Len())
}
