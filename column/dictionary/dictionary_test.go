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

import "testing"

func TestBuilderDeduplicatesAndSorts(t *testing.T) {
	b := NewBuilder()
	for _, s := range []string{"c", "a", "b", "a", "c", "a"} {
		b.Insert(s)
	}
	if b.Len() != 3 {
		t.Fatalf("Len()=%d, want 3", b.Len())
	}
	d := b.Build()
	if d.Len() != 3 {
		t.Fatalf("dictionary Len()=%d, want 3", d.Len())
	}
	want := []string{"a", "b", "c"}
	for i, w := range want {
		if d.At(i) != w {
			t.Fatalf("At(%d)=%q, want %q", i, d.At(i), w)
		}
	}
}

func TestLookupAndDecode(t *testing.T) {
	d := FromSorted([]string{"a", "b", "c"})
	id, ok := d.Lookup("b")
	if !ok || id != 2 {
		t.Fatalf("Lookup(b)=(%d,%v), want (2,true)", id, ok)
	}
	s, ok := d.String(id)
	if !ok || s != "b" {
		t.Fatalf("String(%d)=(%q,%v), want (b,true)", id, s, ok)
	}
	if _, ok := d.Lookup("bb"); ok {
		t.Fatal("expected miss for absent value")
	}
	if _, ok := d.String(NullID); ok {
		t.Fatal("NullID must never decode to a string")
	}
}

func TestDictionaryOrderMatchesIDOrder(t *testing.T) {
	d := FromSorted([]string{"alpha", "beta", "gamma"})
	u, _ := d.Lookup("alpha")
	v, _ := d.Lookup("gamma")
	if !(u < v) {
		t.Fatalf("expected id(alpha) < id(gamma), got %d, %d", u, v)
	}
}

func TestInsertionPointForAbsentValue(t *testing.T) {
	d := FromSorted([]string{"b", "d", "f"})
	if p := d.InsertionPoint("a"); p != 0 {
		t.Fatalf("InsertionPoint(a)=%d, want 0", p)
	}
	if p := d.InsertionPoint("c"); p != 1 {
		t.Fatalf("InsertionPoint(c)=%d, want 1", p)
	}
	if p := d.InsertionPoint("z"); p != 3 {
		t.Fatalf("InsertionPoint(z)=%d, want 3", p)
	}
}
