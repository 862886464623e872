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

import "golang.org/x/exp/slices"

// Sorted is an ascending, duplicate-free vector of row ids.
type Sorted []uint32

// Add inserts r, keeping Sorted ordered and duplicate-free.
func (s *Sorted) Add(r uint32) {
	i, ok := slices.BinarySearch(*s, r)
	if ok {
		return
	}
	*s = slices.Insert(*s, i, r)
}

// AddRange inserts every row id in [lo, hi).
func (s *Sorted) AddRange(lo, hi uint32) {
	for r := lo; r < hi; r++ {
		s.Add(r)
	}
}
