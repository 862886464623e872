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

package colbuild

import (
	"testing"

	"github.com/sneller-labs/strcolumn/column"
)

func str(s string) *string { return &s }

func TestFromOptionalStringsPicksRLEBelowThreshold(t *testing.T) {
	c := FromOptionalStrings([]*string{str("a"), nil, str("b"), str("a")}, Options{})
	if c.Encoding() != column.RLE {
		t.Fatalf("encoding=%s, want rle", c.Encoding())
	}
	if c.NumRows() != 4 {
		t.Fatalf("NumRows()=%d, want 4", c.NumRows())
	}
	if !c.ContainsNull() {
		t.Fatal("expected contains_null")
	}
}

func TestFromOptionalStringsPicksPlainAboveThreshold(t *testing.T) {
	n := 10
	values := make([]*string, n)
	for i := range values {
		s := string(rune('a' + i))
		values[i] = &s
	}
	c := FromOptionalStrings(values, Options{CardinalityLimit: n - 1})
	if c.Encoding() != column.Plain {
		t.Fatalf("encoding=%s, want plain", c.Encoding())
	}
}

func TestFromArrayMatchesNullBitmap(t *testing.T) {
	array := []string{"x", "y", "z"}
	valid := []bool{true, false, true}
	c := FromArray(array, valid, Options{})
	if c.NumRows() != 3 {
		t.Fatalf("NumRows()=%d, want 3", c.NumRows())
	}
	v := c.Value(1)
	if !v.IsNull() {
		t.Fatal("row 1 must be NULL per the supplied bitmap")
	}
	v = c.Value(0)
	if s, ok := v.Get(); !ok || s != "x" {
		t.Fatalf("row 0=%q,%v want x,true", s, ok)
	}
}

func TestFromStringsHasNoNulls(t *testing.T) {
	c := FromStrings([]string{"a", "b", "c"}, Options{})
	if c.ContainsNull() {
		t.Fatal("FromStrings must never produce NULL rows")
	}
}

func TestBuilderPushIncremental(t *testing.T) {
	b := New(Options{})
	b.Push(str("a"))
	b.Push(nil)
	b.Push(str("a"))
	c := b.Build()
	if c.NumRows() != 3 {
		t.Fatalf("NumRows()=%d, want 3", c.NumRows())
	}
	if n := c.Count([]uint32{0, 1, 2}); n != 2 {
		t.Fatalf("Count=%d, want 2", n)
	}
}
