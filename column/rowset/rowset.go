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

// Package rowset implements a compact, mergeable set of 32-bit row ids.
//
// A Set transparently picks between two backing representations: a
// word-packed Bitmap when the set is dense relative to its universe, and a
// Sorted vector of ids when it is not. Callers never observe which
// representation is active; Union and Intersect produce results equivalent
// to always operating on the bitmap representation.
package rowset

import "golang.org/x/exp/slices"

// densityPromote is the population/universe ratio above which a Sorted
// set is rebuilt as a Bitmap. Below it, a sorted vector is smaller and
// just as fast to scan for the row counts this engine deals with.
const densityPromote = 1.0 / 32.0

// Set is an unordered collection of distinct 32-bit row ids with ascending
// iteration. The zero Set is empty and ready to use.
type Set struct {
	bitmap Bitmap
	sorted Sorted
	// universe is the N a Bitmap would be sized for; 0 means "unknown",
	// in which case Set never promotes to a Bitmap on its own.
	universe int
}

// New returns an empty Set pre-sized for a universe of n row ids.
// A Set created with New(0) behaves identically to the zero Set.
func New(n int) Set {
	return Set{universe: n}
}

// Len returns the number of ids in the set.
func (s *Set) Len() int {
	if s.bitmap != nil {
		return s.bitmap.Count()
	}
	return len(s.sorted)
}

// IsEmpty returns whether the set contains no ids.
func (s *Set) IsEmpty() bool {
	if s.bitmap != nil {
		return s.bitmap.Count() == 0
	}
	return len(s.sorted) == 0
}

// Add inserts row id r into the set.
func (s *Set) Add(r uint32) {
	if s.bitmap != nil {
		s.bitmap.Set(r)
		return
	}
	s.sorted.Add(r)
	s.maybePromote()
}

// AddRange inserts every row id in the half-open interval [lo, hi) into
// the set.
func (s *Set) AddRange(lo, hi uint32) {
	if hi <= lo {
		return
	}
	if s.bitmap != nil {
		s.bitmap.SetRange(lo, hi)
		return
	}
	s.sorted.AddRange(lo, hi)
	s.maybePromote()
}

// maybePromote rebuilds the set as a Bitmap once its population makes the
// sorted representation less compact than a bitmap would be.
func (s *Set) maybePromote() {
	if s.universe <= 0 {
		return
	}
	if float64(len(s.sorted))/float64(s.universe) < densityPromote {
		return
	}
	b := MakeBitmap(s.universe)
	for _, r := range s.sorted {
		b.Set(r)
	}
	s.bitmap = b
	s.sorted = nil
}

// Union merges other into s in place; afterwards s contains every id
// present in either set.
func (s *Set) Union(other *Set) {
	if other.IsEmpty() {
		return
	}
	if s.bitmap != nil || other.bitmap != nil {
		n := s.universe
		if other.universe > n {
			n = other.universe
		}
		dst := s.ensureBitmap(n)
		other.Iterate(func(r uint32) { dst.Set(r) })
		return
	}
	merged := make(Sorted, 0, len(s.sorted)+len(other.sorted))
	merged = append(merged, s.sorted...)
	merged = append(merged, other.sorted...)
	slices.Sort(merged)
	s.sorted = slices.Compact(merged)
	s.maybePromote()
}

// Intersect restricts s in place to ids also present in other.
func (s *Set) Intersect(other *Set) {
	if s.IsEmpty() || other.IsEmpty() {
		s.bitmap = nil
		s.sorted = s.sorted[:0]
		return
	}
	kept := make(Sorted, 0, s.Len())
	s.Iterate(func(r uint32) {
		if other.contains(r) {
			kept = append(kept, r)
		}
	})
	s.bitmap = nil
	s.sorted = kept
	s.maybePromote()
}

func (s *Set) contains(r uint32) bool {
	if s.bitmap != nil {
		return s.bitmap.Get(r)
	}
	_, ok := slices.BinarySearch(s.sorted, r)
	return ok
}

func (s *Set) ensureBitmap(n int) Bitmap {
	if s.bitmap != nil {
		if n > s.universe {
			s.bitmap = s.bitmap.grow(n)
			s.universe = n
		}
		return s.bitmap
	}
	b := MakeBitmap(n)
	for _, r := range s.sorted {
		b.Set(r)
	}
	s.bitmap = b
	s.sorted = nil
	s.universe = n
	return b
}

// Iterate calls fn once for every row id in the set, in ascending order.
func (s *Set) Iterate(fn func(r uint32)) {
	if s.bitmap != nil {
		s.bitmap.Iterate(fn)
		return
	}
	for _, r := range s.sorted {
		fn(r)
	}
}

// AppendTo appends every row id in the set, in ascending order, to dst
// and returns the extended slice. Existing contents of dst are preserved,
// so callers can concatenate results across repeated calls.
func (s *Set) AppendTo(dst []uint32) []uint32 {
	if s.bitmap != nil {
		return s.bitmap.AppendTo(dst)
	}
	return append(dst, s.sorted...)
}

// IntoSortedVec materializes the set as a freshly-allocated ascending
// slice of row ids.
func (s *Set) IntoSortedVec() []uint32 {
	return s.AppendTo(make([]uint32, 0, s.Len()))
}

// Clone returns an independent copy of s.
func (s *Set) Clone() Set {
	out := Set{universe: s.universe}
	if s.bitmap != nil {
		out.bitmap = slices.Clone(s.bitmap)
	}
	if s.sorted != nil {
		out.sorted = slices.Clone(s.sorted)
	}
	return out
}
