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

package rowset

import (
	"testing"

	"golang.org/x/exp/slices"
)

func TestAddAndIterate(t *testing.T) {
	s := New(10)
	for _, r := range []uint32{3, 1, 4, 1, 5} {
		s.Add(r)
	}
	want := []uint32{1, 3, 4, 5}
	got := s.IntoSortedVec()
	if !slices.Equal(want, got) {
		t.Fatalf("want %v, got %v", want, got)
	}
	if s.Len() != len(want) {
		t.Fatalf("Len()=%d, want %d", s.Len(), len(want))
	}
}

func TestAddRangePromotesToBitmap(t *testing.T) {
	s := New(100)
	s.AddRange(0, 80)
	if s.bitmap == nil {
		t.Fatal("expected dense set to be promoted to a bitmap")
	}
	if s.Len() != 80 {
		t.Fatalf("Len()=%d, want 80", s.Len())
	}
}

func TestUnionSortedSorted(t *testing.T) {
	a := New(0)
	a.AddRange(0, 3)
	b := New(0)
	b.AddRange(2, 5)
	a.Union(&b)
	want := []uint32{0, 1, 2, 3, 4}
	got := a.IntoSortedVec()
	if !slices.Equal(want, got) {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func TestUnionMixedRepresentations(t *testing.T) {
	a := New(128)
	a.AddRange(0, 100) // promotes to bitmap
	b := New(0)
	b.Add(100)
	b.Add(127)
	a.Union(&b)
	if a.Len() != 102 {
		t.Fatalf("Len()=%d, want 102", a.Len())
	}
	if !a.contains(127) {
		t.Fatal("expected union to contain row 127")
	}
}

func TestIntersect(t *testing.T) {
	a := New(0)
	a.AddRange(0, 10)
	b := New(0)
	b.AddRange(5, 15)
	a.Intersect(&b)
	want := []uint32{5, 6, 7, 8, 9}
	got := a.IntoSortedVec()
	if !slices.Equal(want, got) {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func TestIntersectWithEmptyIsEmpty(t *testing.T) {
	a := New(0)
	a.AddRange(0, 10)
	b := New(0)
	a.Intersect(&b)
	if !a.IsEmpty() {
		t.Fatal("expected empty intersection")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	a := New(0)
	a.Add(1)
	c := a.Clone()
	a.Add(2)
	if c.Len() != 1 {
		t.Fatalf("clone should not observe later mutation, Len()=%d", c.Len())
	}
}

func TestAppendToPreservesExistingContents(t *testing.T) {
	s := New(0)
	s.Add(5)
	s.Add(9)
	dst := []uint32{100, 200}
	got := s.AppendTo(dst)
	want := []uint32{100, 200, 5, 9}
	if !slices.Equal(want, got) {
		t.Fatalf("want %v, got %v", want, got)
	}
}
