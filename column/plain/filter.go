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

package plain

import (
	"github.com/sneller-labs/strcolumn/column/cmp"
	"github.com/sneller-labs/strcolumn/column/dictionary"
	"github.com/sneller-labs/strcolumn/column/rowset"
)

// RowIDsFilter returns the set of row ids where the row value op-relates
// to v, appending into dst. Because the dictionary is sorted, equality
// and inequality translate into a single binary search for v's id
// followed by a linear scan of ids; ordered comparisons translate into a
// binary search for the threshold id followed by a scan against it. If v
// is absent from the dictionary, equality returns the empty set,
// inequality returns every non-null row, and ordered operators use the
// adjacent insertion point as the threshold.
func (p *Plain) RowIDsFilter(v string, op cmp.Op, dst rowset.Set) rowset.Set {
	id, present := p.dict.Lookup(v)
	switch op {
	case cmp.Equal:
		if present {
			p.scanEqual(id, &dst)
		}
	case cmp.NotEqual:
		if present {
			p.scanNotEqual(id, &dst)
		} else {
			p.scanNonNull(&dst)
		}
	default:
		lo, hi := ordinalBounds(p.dict.InsertionPoint(v), present, op)
		p.scanBetween(lo, hi, &dst)
	}
	return dst
}

// ordinalBounds translates an ordinal comparison against v into an
// inclusive [lo, hi] range of encoded ids to keep, given ip, the 0-based
// position v occupies (or would occupy) in the sorted dictionary.
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
	panic("plain: ordinalBounds called with non-ordinal op")
}

func (p *Plain) scanEqual(id uint32, dst *rowset.Set) {
	for r, got := range p.ids {
		if got == id {
			dst.Add(uint32(r))
		}
	}
}

func (p *Plain) scanNotEqual(id uint32, dst *rowset.Set) {
	for r, got := range p.ids {
		if got != dictionary.NullID && got != id {
			dst.Add(uint32(r))
		}
	}
}

func (p *Plain) scanNonNull(dst *rowset.Set) {
	for r, got := range p.ids {
		if got != dictionary.NullID {
			dst.Add(uint32(r))
		}
	}
}

func (p *Plain) scanBetween(lo, hi uint32, dst *rowset.Set) {
	for r, got := range p.ids {
		if got >= lo && got <= hi {
			dst.Add(uint32(r))
		}
	}
}
