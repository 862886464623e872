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

package value

import "testing"

func TestSetDistinguishesNullFromEmptyString(t *testing.T) {
	s := NewSet(nil)
	s.Add(Null)
	s.Add(String(""))
	if !s.HasNull() {
		t.Fatal("expected NULL in set")
	}
	if _, ok := s.Strings()[""]; !ok {
		t.Fatal("expected empty string as a distinct non-null member")
	}
	if s.Len() != 2 {
		t.Fatalf("Len()=%d, want 2", s.Len())
	}
}

func TestSetCloneIsIndependent(t *testing.T) {
	s := NewSet(nil)
	s.Add(String("a"))
	s.Add(Null)

	c := s.Clone()
	c.Add(String("b"))

	if _, ok := s.Strings()["b"]; ok {
		t.Fatal("mutating the clone must not affect the original")
	}
	if !c.HasNull() {
		t.Fatal("clone must preserve the NULL flag")
	}
}

func TestAppendPreservesOrderAndNulls(t *testing.T) {
	var vs Values
	vs = Append(vs, String("a"))
	vs = Append(vs, Null)
	vs = Append(vs, String("b"))
	if len(vs) != 3 || vs[1] != nil || *vs[0] != "a" || *vs[2] != "b" {
		t.Fatalf("unexpected Values: %v", vs)
	}
}
