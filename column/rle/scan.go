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
	"fmt"

	"github.com/sneller-labs/strcolumn/column/dictionary"
	"github.com/sneller-labs/strcolumn/column/value"
)

// cursor walks the run list while tracking the row range [start, end)
// covered by the run it currently points at. It is reused across calls
// with an ascending list of target row ids so random access stays
// O(#runs) rather than O(#runs) per lookup.
type cursor struct {
	runs  []run
	idx   int
	start uint32
	end   uint32
}

func (r *RLE) newCursor() cursor {
	c := cursor{runs: r.runs}
	if len(r.runs) > 0 {
		c.end = r.runs[0].len
	}
	return c
}

// seek advances c until its run covers row, panicking if row is out of
// range (a programmer error per spec section 7.1).
func (c *cursor) seek(row uint32) uint32 {
	if row < c.start {
		// rows are expected in ascending order for a single cursor;
		// a caller that violates this restarts the walk from the front.
		c.idx = 0
		c.start = 0
		c.end = 0
		if len(c.runs) > 0 {
			c.end = c.runs[0].len
		}
	}
	for row >= c.end {
		c.idx++
		if c.idx >= len(c.runs) {
			panic(fmt.Sprintf("rle: row id %d out of range", row))
		}
		c.start = c.end
		c.end += c.runs[c.idx].len
	}
	return c.runs[c.idx].id
}

func (r *RLE) decode(id uint32) value.Value {
	s, ok := r.dict.String(id)
	if !ok {
		return value.Null
	}
	return value.String(s)
}

// Value returns the logical value at row r.
func (r *RLE) Value(row uint32) value.Value {
	c := r.newCursor()
	return r.decode(c.seek(row))
}

// Values appends, in input order, the logical value at each row in
// rows to dst and returns the extended slice. rows is expected to be
// ascending for the O(#runs) cursor walk to hold; non-ascending input
// still produces correct results, just without that guarantee.
func (r *RLE) Values(rows []uint32, dst value.Values) value.Values {
	c := r.newCursor()
	for _, row := range rows {
		dst = value.Append(dst, r.decode(c.seek(row)))
	}
	return dst
}

// AllValues appends all N logical values, in row order, to dst.
func (r *RLE) AllValues(dst value.Values) value.Values {
	for _, run := range r.runs {
		v := r.decode(run.id)
		for i := uint32(0); i < run.len; i++ {
			dst = value.Append(dst, v)
		}
	}
	return dst
}

// DecodeID returns the logical value for the given encoded id, or
// value.Null if e is out of range.
func (r *RLE) DecodeID(e uint32) value.Value {
	return r.decode(e)
}

// EncodedValues appends the encoded ids at rows to dst.
func (r *RLE) EncodedValues(rows []uint32, dst []uint32) []uint32 {
	c := r.newCursor()
	for _, row := range rows {
		dst = append(dst, c.seek(row))
	}
	return dst
}

// AllEncodedValues appends all N encoded ids, in row order, to dst.
func (r *RLE) AllEncodedValues(dst []uint32) []uint32 {
	for _, run := range r.runs {
		for i := uint32(0); i < run.len; i++ {
			dst = append(dst, run.id)
		}
	}
	return dst
}

// DistinctValues returns the set of distinct logical values (including
// NULL) present at rows.
func (r *RLE) DistinctValues(rows []uint32, dst *value.Set) *value.Set {
	dst = value.NewSet(dst)
	c := r.newCursor()
	for _, row := range rows {
		dst.Add(r.decode(c.seek(row)))
	}
	return dst
}

// Min returns the lexicographic minimum non-null value among rows, or
// value.Null if every row in rows is NULL.
func (r *RLE) Min(rows []uint32) value.Value {
	c := r.newCursor()
	var min string
	found := false
	for _, row := range rows {
		id := c.seek(row)
		if id == dictionary.NullID {
			continue
		}
		s, _ := r.dict.String(id)
		if !found || s < min {
			min, found = s, true
		}
	}
	if !found {
		return value.Null
	}
	return value.String(min)
}

// Max returns the lexicographic maximum non-null value among rows, or
// value.Null if every row in rows is NULL.
func (r *RLE) Max(rows []uint32) value.Value {
	c := r.newCursor()
	var max string
	found := false
	for _, row := range rows {
		id := c.seek(row)
		if id == dictionary.NullID {
			continue
		}
		s, _ := r.dict.String(id)
		if !found || s > max {
			max, found = s, true
		}
	}
	if !found {
		return value.Null
	}
	return value.String(max)
}

// Count returns the number of non-null rows among rows.
func (r *RLE) Count(rows []uint32) int {
	c := r.newCursor()
	n := 0
	for _, row := range rows {
		if c.seek(row) != dictionary.NullID {
			n++
		}
	}
	return n
}

// HasNonNullValue reports whether any row in rows holds a non-null
// value.
func (r *RLE) HasNonNullValue(rows []uint32) bool {
	c := r.newCursor()
	for _, row := range rows {
		if c.seek(row) != dictionary.NullID {
			return true
		}
	}
	return false
}
