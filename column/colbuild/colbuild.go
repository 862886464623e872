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

// Package colbuild implements the two-pass ingest protocol that turns a
// batch of optional strings into a sealed column.Column: a first pass
// builds the shared dictionary, and a second collapses consecutive
// equal values into run-length PushAdditional calls against whichever
// concrete encoding the dictionary's cardinality selects.
package colbuild

import (
	"github.com/sneller-labs/strcolumn/column"
	"github.com/sneller-labs/strcolumn/column/dictionary"
	"github.com/sneller-labs/strcolumn/column/plain"
	"github.com/sneller-labs/strcolumn/column/rle"
)

// Errorf is a global diagnostic hook, set before building by a host
// program that wants to capture additional build-time diagnostics (for
// example the encoding chosen and why). It is nil by default, in which
// case diagnostics are simply dropped.
var Errorf func(f string, args ...any)

func errorf(f string, args ...any) {
	if Errorf != nil {
		Errorf(f, args...)
	}
}

// Options configures a Builder.
type Options struct {
	// CardinalityLimit overrides column.DefaultCardinalityLimit when
	// positive. A column whose distinct non-null value count exceeds
	// this is built using the plain encoding instead of RLE.
	CardinalityLimit int
}

// Builder accumulates optional string values, in row order, and seals
// them into a column.Column. The zero Builder is not usable; construct
// one with New.
type Builder struct {
	opts   Options
	dict   *dictionary.Builder
	values []*string
}

// New returns a Builder configured with opts.
func New(opts Options) *Builder {
	return &Builder{opts: opts, dict: dictionary.NewBuilder()}
}

// Push appends one logical row (nil for NULL) to the column under
// construction.
func (b *Builder) Push(v *string) {
	if v != nil {
		b.dict.Insert(*v)
	}
	b.values = append(b.values, v)
}

// FromStrings builds a column.Column from a batch of non-null strings.
func FromStrings(values []string, opts Options) *column.Column {
	ptrs := make([]*string, len(values))
	for i := range values {
		ptrs[i] = &values[i]
	}
	return FromOptionalStrings(ptrs, opts)
}

// FromArray builds a column.Column from a flat string array plus a
// parallel null bitmap (valid[i] true means row i holds array[i]; false
// means row i is NULL and array[i] is ignored). It mirrors the typed
// Arrow-style array constructor the original engine exposes alongside
// its iterator-based one.
func FromArray(array []string, valid []bool, opts Options) *column.Column {
	if len(valid) != len(array) {
		panic("colbuild: array and valid must have equal length")
	}
	ptrs := make([]*string, len(array))
	for i, ok := range valid {
		if ok {
			ptrs[i] = &array[i]
		}
	}
	return FromOptionalStrings(ptrs, opts)
}

// FromOptionalStrings builds a column.Column from a batch of optional
// strings (nil denotes NULL), choosing the encoding from the resulting
// dictionary's cardinality.
func FromOptionalStrings(values []*string, opts Options) *column.Column {
	b := New(opts)
	for _, v := range values {
		b.Push(v)
	}
	return b.Build()
}

// Build seals the accumulated rows into a column.Column. The Builder
// must not be reused afterwards.
func (b *Builder) Build() *column.Column {
	dict := b.dict.Build()
	kind := column.ChooseEncoding(dict.Len(), b.opts.CardinalityLimit)
	errorf("colbuild: sealing column of %d rows, dictionary cardinality %d, encoding %s",
		len(b.values), dict.Len(), kind)

	switch kind {
	case column.RLE:
		r := rle.New(dict)
		pushRuns(b.values, func(v *string, n int) { r.PushAdditional(v, n) })
		return column.FromRLE(dict, r)
	default:
		p := plain.New(dict)
		pushRuns(b.values, func(v *string, n int) { p.PushAdditional(v, n) })
		return column.FromPlain(dict, p)
	}
}

// pushRuns collapses consecutive equal values in values into a single
// push(v, count) call, which is the form every PushAdditional caller in
// this package uses: one call per run of equal values rather than one
// per row.
func pushRuns(values []*string, push func(v *string, count int)) {
	if len(values) == 0 {
		return
	}
	eq := func(a, b *string) bool {
		if a == nil || b == nil {
			return a == b
		}
		return *a == *b
	}
	prev := values[0]
	count := 1
	for _, v := range values[1:] {
		if eq(prev, v) {
			count++
			continue
		}
		push(prev, count)
		prev, count = v, 1
	}
	push(prev, count)
}
