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

package column

import (
	"testing"

	"github.com/sneller-labs/strcolumn/column/cmp"
	"github.com/sneller-labs/strcolumn/column/dictionary"
	"github.com/sneller-labs/strcolumn/column/plain"
	"github.com/sneller-labs/strcolumn/column/rle"
	"github.com/sneller-labs/strcolumn/column/rowset"
)

// buildBoth ingests the same values into both concrete encodings using
// the shared ingest protocol (spec section 4.5), so tests can assert
// that every public operation agrees between them regardless of which
// one a given column happens to pick.
func buildBoth(values []*string) (*Column, *Column) {
	b := dictionary.NewBuilder()
	for _, v := range values {
		if v != nil {
			b.Insert(*v)
		}
	}
	dict := b.Build()
	p := plain.New(dict)
	r := rle.New(dict)

	if len(values) > 0 {
		prev := values[0]
		count := 1
		eq := func(a, b *string) bool {
			if a == nil || b == nil {
				return a == b
			}
			return *a == *b
		}
		push := func(v *string, n int) {
			p.PushAdditional(v, n)
			r.PushAdditional(v, n)
		}
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
	return FromPlain(dict, p), FromRLE(dict, r)
}

func str(s string) *string { return &s }

func rowsN(n int) []uint32 {
	out := make([]uint32, n)
	for i := range out {
		out[i] = uint32(i)
	}
	return out
}

func TestEncodingEquivalence(t *testing.T) {
	values := []*string{str("b"), nil, str("a"), str("a"), str("c"), nil, str("b")}
	pc, rc := buildBoth(values)

	if pc.NumRows() != rc.NumRows() {
		t.Fatalf("NumRows mismatch: plain=%d rle=%d", pc.NumRows(), rc.NumRows())
	}
	if pc.ContainsNull() != rc.ContainsNull() {
		t.Fatal("ContainsNull mismatch")
	}
	pmin, pok := pc.ColumnMin()
	rmin, rok := rc.ColumnMin()
	if pmin != rmin || pok != rok {
		t.Fatalf("ColumnMin mismatch: plain=(%q,%v) rle=(%q,%v)", pmin, pok, rmin, rok)
	}

	rows := rowsN(pc.NumRows())
	for _, op := range []cmp.Op{cmp.Equal, cmp.NotEqual, cmp.Less, cmp.LessEqual, cmp.Greater, cmp.GreaterEqual} {
		for _, v := range []string{"a", "b", "c", "zz"} {
			pset := pc.RowIDsFilter(v, op, rowset.New(len(rows)))
			rset := rc.RowIDsFilter(v, op, rowset.New(len(rows)))
			pr := pset.IntoSortedVec()
			rr := rset.IntoSortedVec()
			if len(pr) != len(rr) {
				t.Fatalf("filter %s %q mismatch: plain=%v rle=%v", op, v, pr, rr)
			}
			for i := range pr {
				if pr[i] != rr[i] {
					t.Fatalf("filter %s %q mismatch: plain=%v rle=%v", op, v, pr, rr)
				}
			}
		}
	}

	pg := pc.GroupRowIDs()
	rg := rc.GroupRowIDs()
	if pg.Len() != rg.Len() {
		t.Fatalf("GroupRowIDs length mismatch: plain=%d rle=%d", pg.Len(), rg.Len())
	}
	for i := 0; i < pg.Len(); i++ {
		pr := pg.Borrow(i).IntoSortedVec()
		rr := rg.Borrow(i).IntoSortedVec()
		if len(pr) != len(rr) {
			t.Fatalf("group %d mismatch: plain=%v rle=%v", i, pr, rr)
		}
		for j := range pr {
			if pr[j] != rr[j] {
				t.Fatalf("group %d mismatch: plain=%v rle=%v", i, pr, rr)
			}
		}
	}

	if !rc.HasPrecomputedRowIDSets() {
		t.Fatal("rle column must report precomputed row id sets")
	}
	if pc.HasPrecomputedRowIDSets() {
		t.Fatal("plain column must not report precomputed row id sets")
	}
}

func TestChooseEncodingThreshold(t *testing.T) {
	if k := ChooseEncoding(100_000, 0); k != RLE {
		t.Fatalf("cardinality at limit should stay RLE, got %s", k)
	}
	if k := ChooseEncoding(100_001, 0); k != Plain {
		t.Fatalf("cardinality above limit should switch to plain, got %s", k)
	}
}

func TestFingerprintStableAcrossEncodings(t *testing.T) {
	values := []*string{str("a"), str("b"), str("c")}
	pc, rc := buildBoth(values)
	if pc.Fingerprint() != rc.Fingerprint() {
		t.Fatal("fingerprint must depend only on the dictionary, not the encoding")
	}
}

func TestColumnIDsAreUnique(t *testing.T) {
	_, rc1 := buildBoth([]*string{str("a")})
	_, rc2 := buildBoth([]*string{str("a")})
	if rc1.ID() == rc2.ID() {
		t.Fatal("independently built columns must not share an ID")
	}
}
