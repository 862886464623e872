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

// Package plain implements the plain dictionary column encoding: one
// encoded id per logical row, with no inverted index.
package plain

import (
	"fmt"

	"github.com/sneller-labs/strcolumn/column/dictionary"
	"github.com/sneller-labs/strcolumn/column/rowset"
	"github.com/sneller-labs/strcolumn/column/value"
)

// Plain is a column encoding that stores exactly one dictionary id per
// row. It never precomputes an inverted index; filters fall back to a
// linear scan of ids after a single binary search against the
// dictionary.
type Plain struct {
	dict     *dictionary.Dictionary
	ids      []uint32
	nonNull  int
	min, max string
	hasRange bool
}

// New returns an empty Plain encoding seeded with dict. The dictionary's
// ids are assigned once, in sorted order, and never change afterwards.
func New(dict *dictionary.Dictionary) *Plain {
	return &Plain{dict: dict}
}

// PushAdditional appends count rows with logical value v (nil for NULL)
// to the encoding. It is the append primitive used by the ingest path;
// see spec section 4.5 (push_additional).
func (p *Plain) PushAdditional(v *string, count int) {
	if count <= 0 {
		return
	}
	id := dictionary.NullID
	if v != nil {
		var ok bool
		id, ok = p.dict.Lookup(*v)
		if !ok {
			panic(fmt.Sprintf("plain: value %q not present in seeded dictionary", *v))
		}
		p.nonNull += count
		p.observe(*v)
	}
	for i := 0; i < count; i++ {
		p.ids = append(p.ids, id)
	}
}

func (p *Plain) observe(v string) {
	if !p.hasRange {
		p.min, p.max = v, v
		p.hasRange = true
		return
	}
	if v < p.min {
		p.min = v
	}
	if v > p.max {
		p.max = v
	}
}

// NumRows returns N, the number of logical rows in the column.
func (p *Plain) NumRows() int {
	return len(p.ids)
}

// Size returns an estimate, in bytes, of the memory held by the
// encoding, including the dictionary.
func (p *Plain) Size() int {
	return p.dict.CompressedSize() + len(p.ids)*4
}

// ColumnMin returns the lexicographic minimum non-null value, or
// ("", false) if the column contains only NULLs.
func (p *Plain) ColumnMin() (string, bool) {
	return p.min, p.hasRange
}

// ColumnMax returns the lexicographic maximum non-null value, or
// ("", false) if the column contains only NULLs.
func (p *Plain) ColumnMax() (string, bool) {
	return p.max, p.hasRange
}

// ContainsNull reports whether any row holds NULL.
func (p *Plain) ContainsNull() bool {
	return p.nonNull < len(p.ids)
}

// HasAnyNonNullValue reports whether N - #nulls > 0.
func (p *Plain) HasAnyNonNullValue() bool {
	return p.nonNull > 0
}

// HasNonNullValue reports whether any row in rows holds a non-null
// value.
func (p *Plain) HasNonNullValue(rows []uint32) bool {
	for _, r := range rows {
		if p.ids[r] != dictionary.NullID {
			return true
		}
	}
	return false
}

// HasOtherNonNullValues reports whether the column contains a non-null
// value that is not a member of values. It short-circuits on the first
// such row.
func (p *Plain) HasOtherNonNullValues(values map[string]struct{}) bool {
	for _, id := range p.ids {
		if id == dictionary.NullID {
			continue
		}
		s, _ := p.dict.String(id)
		if _, ok := values[s]; !ok {
			return true
		}
	}
	return false
}

// Value returns the logical value at row r.
func (p *Plain) Value(r uint32) value.Value {
	return p.decode(p.ids[r])
}

func (p *Plain) decode(id uint32) value.Value {
	s, ok := p.dict.String(id)
	if !ok {
		return value.Null
	}
	return value.String(s)
}

// Values appends, in input order, the logical value at each row in
// rows to dst and returns the extended slice.
func (p *Plain) Values(rows []uint32, dst value.Values) value.Values {
	for _, r := range rows {
		dst = value.Append(dst, p.Value(r))
	}
	return dst
}

// AllValues appends all N logical values, in row order, to dst.
func (p *Plain) AllValues(dst value.Values) value.Values {
	for r := range p.ids {
		dst = value.Append(dst, p.Value(uint32(r)))
	}
	return dst
}

// DecodeID returns the logical value for the given encoded id, or
// value.Null if e is out of range.
func (p *Plain) DecodeID(e uint32) value.Value {
	return p.decode(e)
}

// DistinctValues returns the set of distinct logical values (including
// NULL) present at rows.
func (p *Plain) DistinctValues(rows []uint32, dst *value.Set) *value.Set {
	dst = value.NewSet(dst)
	for _, r := range rows {
		dst.Add(p.Value(r))
	}
	return dst
}

// Min returns the lexicographic minimum non-null value among rows, or
// value.Null if every row in rows is NULL.
func (p *Plain) Min(rows []uint32) value.Value {
	var min string
	found := false
	for _, r := range rows {
		s, ok := p.Value(r).Get()
		if !ok {
			continue
		}
		if !found || s < min {
			min = s
			found = true
		}
	}
	if !found {
		return value.Null
	}
	return value.String(min)
}

// Max returns the lexicographic maximum non-null value among rows, or
// value.Null if every row in rows is NULL.
func (p *Plain) Max(rows []uint32) value.Value {
	var max string
	found := false
	for _, r := range rows {
		s, ok := p.Value(r).Get()
		if !ok {
			continue
		}
		if !found || s > max {
			max = s
			found = true
		}
	}
	if !found {
		return value.Null
	}
	return value.String(max)
}

// Count returns the number of non-null rows among rows.
func (p *Plain) Count(rows []uint32) int {
	n := 0
	for _, r := range rows {
		if p.ids[r] != dictionary.NullID {
			n++
		}
	}
	return n
}

// GroupRowIDs computes, on demand, one rowset.Set per dictionary entry
// indexed by its encoded id (index 0 is the NULL group). Unlike the RLE
// encoding, Plain must materialize these sets by scanning ids; it has no
// precomputed inverted index.
func (p *Plain) GroupRowIDs() []rowset.Set {
	out := make([]rowset.Set, p.dict.Len()+1)
	for i := range out {
		out[i] = rowset.New(len(p.ids))
	}
	for r, id := range p.ids {
		out[id].Add(uint32(r))
	}
	return out
}

// EncodedValues appends the encoded ids at rows to dst.
func (p *Plain) EncodedValues(rows []uint32, dst []uint32) []uint32 {
	for _, r := range rows {
		dst = append(dst, p.ids[r])
	}
	return dst
}

// AllEncodedValues appends all N encoded ids, in row order, to dst.
func (p *Plain) AllEncodedValues(dst []uint32) []uint32 {
	return append(dst, p.ids...)
}

// HasPrecomputedRowIDSets always returns false for the plain encoding.
func (p *Plain) HasPrecomputedRowIDSets() bool {
	return false
}

func (p *Plain) String() string {
	return fmt.Sprintf("plain(rows=%d, dict=%d)", len(p.ids), p.dict.Len())
}
