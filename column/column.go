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

// Package column implements a string column that picks, at build time,
// between two concrete encodings - plain and run-length dictionary
// encoding - and hides the choice behind a single façade type so callers
// never need to know which one backs a given column.
package column

import (
	"fmt"

	"github.com/dchest/siphash"
	"github.com/google/uuid"

	"github.com/sneller-labs/strcolumn/column/cmp"
	"github.com/sneller-labs/strcolumn/column/dictionary"
	"github.com/sneller-labs/strcolumn/column/plain"
	"github.com/sneller-labs/strcolumn/column/rle"
	"github.com/sneller-labs/strcolumn/column/rowset"
	"github.com/sneller-labs/strcolumn/column/value"
)

// DefaultCardinalityLimit is the dictionary cardinality above which a
// new column is built using the plain encoding instead of run-length
// dictionary encoding. Below the limit, RLE's inverted index tends to
// be cheap relative to the scan time it saves; above it, the index
// itself becomes the dominant cost.
const DefaultCardinalityLimit = 100_000

// fingerprintKey0, fingerprintKey1 seed the keyed hash Column.Fingerprint
// uses, in the same spirit as the two fixed keys splitter.go uses to seed
// its peer-partitioning hash of each blob's ETag.
const (
	fingerprintKey0 = uint64(0x5bd1e995a88e4355)
	fingerprintKey1 = uint64(0x27d4eb2f165667c5)
)

// encoding is the set of operations a concrete column encoding must
// support; plain.Plain and rle.RLE both satisfy it.
type encoding interface {
	NumRows() int
	Size() int
	ColumnMin() (string, bool)
	ColumnMax() (string, bool)
	ContainsNull() bool
	HasAnyNonNullValue() bool
	HasNonNullValue(rows []uint32) bool
	HasOtherNonNullValues(values map[string]struct{}) bool
	Value(r uint32) value.Value
	Values(rows []uint32, dst value.Values) value.Values
	AllValues(dst value.Values) value.Values
	DecodeID(e uint32) value.Value
	EncodedValues(rows []uint32, dst []uint32) []uint32
	AllEncodedValues(dst []uint32) []uint32
	DistinctValues(rows []uint32, dst *value.Set) *value.Set
	Min(rows []uint32) value.Value
	Max(rows []uint32) value.Value
	Count(rows []uint32) int
	HasPrecomputedRowIDSets() bool
	RowIDsFilter(v string, op cmp.Op, dst rowset.Set) rowset.Set
	String() string
}

// Column is a string column backed by either the plain or the run-length
// dictionary encoding. The zero value is not usable; construct one with
// FromPlain, FromRLE, or (more commonly) via package colbuild.
type Column struct {
	enc  encoding
	dict *dictionary.Dictionary
	id   uuid.UUID
}

// FromPlain wraps an already-built plain encoding as a Column.
func FromPlain(dict *dictionary.Dictionary, p *plain.Plain) *Column {
	return &Column{enc: p, dict: dict, id: uuid.New()}
}

// FromRLE wraps an already-built RLE encoding as a Column.
func FromRLE(dict *dictionary.Dictionary, r *rle.RLE) *Column {
	return &Column{enc: r, dict: dict, id: uuid.New()}
}

// ChooseEncoding reports which encoding a column with the given
// dictionary cardinality should use under limit (pass 0 to use
// DefaultCardinalityLimit).
func ChooseEncoding(cardinality int, limit int) Kind {
	if limit <= 0 {
		limit = DefaultCardinalityLimit
	}
	if cardinality > limit {
		return Plain
	}
	return RLE
}

// Kind identifies which concrete encoding backs a Column.
type Kind int

const (
	Plain Kind = iota
	RLE
)

func (k Kind) String() string {
	if k == Plain {
		return "plain"
	}
	return "rle"
}

// Encoding reports which concrete encoding backs c.
func (c *Column) Encoding() Kind {
	if _, ok := c.enc.(*plain.Plain); ok {
		return Plain
	}
	return RLE
}

// ID returns the identifier assigned to c when it was sealed. Two
// Columns built independently, even from identical data, never share an
// ID; compare Fingerprint for content equality instead.
func (c *Column) ID() uuid.UUID {
	return c.id
}

// Fingerprint returns a content hash of c's dictionary, suitable for
// cheaply detecting whether two columns carry the same set of distinct
// values without comparing row data.
func (c *Column) Fingerprint() uint64 {
	return c.dict.Hash64(func(key0, key1 uint64, buf []byte) uint64 {
		return siphash.Hash(key0^fingerprintKey0, key1^fingerprintKey1, buf)
	})
}

// NumRows returns N, the number of logical rows in the column.
func (c *Column) NumRows() int { return c.enc.NumRows() }

// DictionaryLen returns the column's dictionary cardinality D, the
// number of distinct non-null values it holds.
func (c *Column) DictionaryLen() int { return c.dict.Len() }

// Size returns an estimate, in bytes, of the memory held by the column.
func (c *Column) Size() int { return c.enc.Size() }

// ColumnMin returns the lexicographic minimum non-null value in the
// entire column, or ("", false) if every row is NULL.
func (c *Column) ColumnMin() (string, bool) { return c.enc.ColumnMin() }

// ColumnMax returns the lexicographic maximum non-null value in the
// entire column, or ("", false) if every row is NULL.
func (c *Column) ColumnMax() (string, bool) { return c.enc.ColumnMax() }

// ContainsNull reports whether any row in the column holds NULL.
func (c *Column) ContainsNull() bool { return c.enc.ContainsNull() }

// HasAnyNonNullValue reports whether the column holds at least one
// non-null row.
func (c *Column) HasAnyNonNullValue() bool { return c.enc.HasAnyNonNullValue() }

// HasNonNullValue reports whether any row in rows holds a non-null
// value.
func (c *Column) HasNonNullValue(rows []uint32) bool { return c.enc.HasNonNullValue(rows) }

// HasOtherNonNullValues reports whether the column contains a non-null
// value that is not a member of values.
func (c *Column) HasOtherNonNullValues(values map[string]struct{}) bool {
	return c.enc.HasOtherNonNullValues(values)
}

// Value returns the logical value at row r.
func (c *Column) Value(r uint32) value.Value { return c.enc.Value(r) }

// Values appends, in input order, the logical value at each row in rows
// to dst and returns the extended slice.
func (c *Column) Values(rows []uint32, dst value.Values) value.Values {
	return c.enc.Values(rows, dst)
}

// AllValues appends all N logical values, in row order, to dst.
func (c *Column) AllValues(dst value.Values) value.Values { return c.enc.AllValues(dst) }

// DecodeID returns the logical value for the given encoded id.
func (c *Column) DecodeID(e uint32) value.Value { return c.enc.DecodeID(e) }

// EncodedValues appends the encoded ids at rows to dst.
func (c *Column) EncodedValues(rows []uint32, dst []uint32) []uint32 {
	return c.enc.EncodedValues(rows, dst)
}

// AllEncodedValues appends all N encoded ids, in row order, to dst.
func (c *Column) AllEncodedValues(dst []uint32) []uint32 { return c.enc.AllEncodedValues(dst) }

// DistinctValues returns the set of distinct logical values (including
// NULL) present at rows.
func (c *Column) DistinctValues(rows []uint32, dst *value.Set) *value.Set {
	return c.enc.DistinctValues(rows, dst)
}

// Min returns the lexicographic minimum non-null value among rows.
func (c *Column) Min(rows []uint32) value.Value { return c.enc.Min(rows) }

// Max returns the lexicographic maximum non-null value among rows.
func (c *Column) Max(rows []uint32) value.Value { return c.enc.Max(rows) }

// Count returns the number of non-null rows among rows.
func (c *Column) Count(rows []uint32) int { return c.enc.Count(rows) }

// RowIDsFilter returns the set of row ids where the row value op-relates
// to v.
func (c *Column) RowIDsFilter(v string, op cmp.Op, dst rowset.Set) rowset.Set {
	return c.enc.RowIDsFilter(v, op, dst)
}

// GroupRowIDsKind discriminates the two shapes GroupRowIDs can return.
type GroupRowIDsKind int

const (
	// Borrowed means the Sets alias the column's own inverted index and
	// must not be mutated by the caller.
	Borrowed GroupRowIDsKind = iota
	// Owned means the Sets were freshly materialized for this call and
	// are safe for the caller to mutate or keep.
	Owned
)

// GroupRowIDsResult is the two-variant result of GroupRowIDs: an RLE
// column borrows its precomputed inverted index, while a plain column
// must materialize one on demand. Callers that only need to iterate row
// ids can do so uniformly via Borrow; callers that need to mutate or
// retain the sets should branch on Kind and, for Borrowed, Clone first.
type GroupRowIDsResult struct {
	Kind     GroupRowIDsKind
	borrowed []*rowset.Set
	owned    []rowset.Set
}

// Len returns the number of groups, i.e. dictionary cardinality plus one
// for the NULL group at index 0.
func (g GroupRowIDsResult) Len() int {
	if g.Kind == Borrowed {
		return len(g.borrowed)
	}
	return len(g.owned)
}

// Borrow returns a read-only view of group i's row id set, valid
// regardless of Kind. The returned pointer must not be retained or
// mutated if Kind is Borrowed.
func (g GroupRowIDsResult) Borrow(i int) *rowset.Set {
	if g.Kind == Borrowed {
		return g.borrowed[i]
	}
	return &g.owned[i]
}

// GroupRowIDs partitions the column's rows by encoded id, including the
// NULL group at index 0. For an RLE-encoded column this borrows the
// existing inverted index without copying any set
// (HasPrecomputedRowIDSets() true); for a
// plain-encoded column it scans once to build fresh sets.
func (c *Column) GroupRowIDs() GroupRowIDsResult {
	switch enc := c.enc.(type) {
	case *rle.RLE:
		return GroupRowIDsResult{Kind: Borrowed, borrowed: enc.GroupRowIDs()}
	case *plain.Plain:
		return GroupRowIDsResult{Kind: Owned, owned: enc.GroupRowIDs()}
	default:
		panic(fmt.Sprintf("column: unknown encoding %T", c.enc))
	}
}

// HasPrecomputedRowIDSets reports whether GroupRowIDs can be served from
// an existing inverted index (true for RLE) rather than a fresh scan
// (false for plain).
func (c *Column) HasPrecomputedRowIDSets() bool { return c.enc.HasPrecomputedRowIDSets() }

func (c *Column) String() string {
	return c.enc.String()
}
