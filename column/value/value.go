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

// Package value holds the small outbound types the column encodings and
// the column façade use to represent logical values without copying
// string bytes: a single optional string (Value), a batch of them in row
// order (Values), and a deduplicated set of them (Set).
package value

import "golang.org/x/exp/maps"

// Value is a logical column value: either a borrowed string or NULL.
type Value struct {
	s     string
	valid bool
}

// String returns the non-null string value s.
func String(s string) Value { return Value{s: s, valid: true} }

// Null is the distinguished NULL value.
var Null = Value{}

// IsNull reports whether v is NULL.
func (v Value) IsNull() bool { return !v.valid }

// Get returns the string and true if v is not NULL, or ("", false)
// otherwise.
func (v Value) Get() (string, bool) { return v.s, v.valid }

// Values is a batch of optional strings in input row order. A nil entry
// denotes NULL.
type Values []*string

// Append appends v to dst, preserving input order, and returns the
// extended slice. Existing contents of dst are never cleared, so
// repeated Append calls concatenate results.
func Append(dst Values, v Value) Values {
	if v.IsNull() {
		return append(dst, nil)
	}
	s := v.s
	return append(dst, &s)
}

// Set is a deduplicated collection of logical values, used by
// distinct-value queries. It distinguishes NULL from every non-null
// string, including the empty string.
type Set struct {
	strings map[string]struct{}
	null    bool
}

// NewSet returns reuse unchanged when it is non-nil, so later additions
// accumulate alongside its existing members; pass nil to allocate a
// fresh, empty Set.
func NewSet(reuse *Set) *Set {
	if reuse != nil {
		return reuse
	}
	return &Set{strings: make(map[string]struct{})}
}

// Add inserts v into the set.
func (s *Set) Add(v Value) {
	if s.strings == nil {
		s.strings = make(map[string]struct{})
	}
	if v.IsNull() {
		s.null = true
		return
	}
	str, _ := v.Get()
	s.strings[str] = struct{}{}
}

// HasNull reports whether NULL is a member of the set.
func (s *Set) HasNull() bool {
	return s != nil && s.null
}

// Len returns the number of distinct members, counting NULL as one
// member when present.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	n := len(s.strings)
	if s.null {
		n++
	}
	return n
}

// Strings returns the non-null members of the set as a map keyed by
// string. NULL membership is reported separately by HasNull.
func (s *Set) Strings() map[string]struct{} {
	if s == nil {
		return nil
	}
	return s.strings
}

// Clone returns an independent copy of s, safe to mutate without
// affecting the original.
func (s *Set) Clone() *Set {
	if s == nil {
		return nil
	}
	return &Set{strings: maps.Clone(s.strings), null: s.null}
}
