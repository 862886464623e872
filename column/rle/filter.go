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

package rle

import (
	"github.com/sneller-labs/strcolumn/column/cmp"
	"github.com/sneller-labs/strcolumn/column/rowset"
)

// RowIDsFilter returns the set of row ids where the row value
// op-relates to v, exploiting the inverted index instead of scanning
// runs: equality clones the matching id's set; inequality and ordered
// comparisons union the sets of every qualifying id, always excluding
// NULL (id 0).
func (r *RLE) RowIDsFilter(v string, op cmp.Op, dst rowset.Set) rowset.Set {
	id, present := r.dict.Lookup(v)
	switch op {
	case cmp.Equal:
		if present {
			dst.Union(&r.byID[id])
		}
	case cmp.NotEqual:
		for e := uint32(1); e <= uint32(r.dict.Len()); e++ {
			if present && e == id {
				continue
			}
			dst.Union(&r.byID[e])
		}
	default:
		lo, hi := ordinalBounds(r.dict.InsertionPoint(v), present, op)
		for e := lo; e <= hi && e <= uint32(r.dict.Len()); e++ {
			dst.Union(&r.byID[e])
		}
	}
	return dst
}

// ordinalBounds translates an ordinal comparison against v into an
// inclusive [lo, hi] range of encoded ids to union, given ip, the
// 0-based position v occupies (or would occupy) in the sorted
// dictionary. See plain.ordinalBounds for the identical derivation.
func ordinalBounds(ip int, present bool, op cmp.Op) (lo, hi uint32) {
	switch op {
	case cmp.Less:
		return 1, uint32(ip)
	case cmp.LessEqual:
		bound := uint32(ip)
		if present {
			bound++
		}
		return 1, bound
	case cmp.Greater:
		bound := uint32(ip + 1)
		if present {
			bound++
		}
		return bound, ^uint32(0)
	case cmp.GreaterEqual:
		return uint32(ip + 1), ^uint32(0)
	}
	panic("rle: ordinalBounds called with non-ordinal op")
}

// GroupRowIDs returns borrowed references to the internally maintained
// inverted index, one set per dictionary entry (index 0 is NULL's set),
// avoiding the copy the plain encoding must pay.
func (r *RLE) GroupRowIDs() []*rowset.Set {
	out := make([]*rowset.Set, len(r.byID))
	for i := range r.byID {
		out[i] = &r.byID[i]
	}
	return out
}

// HasOtherNonNullValues reports whether the column contains a non-null
// value that is not a member of values. It iterates the dictionary in
// sorted order and returns true on the first non-null id present in the
// inverted index whose string is not in values.
func (r *RLE) HasOtherNonNullValues(values map[string]struct{}) bool {
	for i := 0; i < r.dict.Len(); i++ {
		id := uint32(i + 1)
		if r.byID[id].IsEmpty() {
			continue
		}
		s := r.dict.At(i)
		if _, ok := values[s]; !ok {
			return true
		}
	}
	return false
}
