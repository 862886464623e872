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

// Package cmp defines the comparison operators the column encodings
// accept for row-id filtering.
package cmp

// Op is a comparison operation.
type Op int

const (
	Equal Op = iota
	NotEqual

	// note: keep these in order so Ordinal can determine
	// membership with a single range check.
	Less
	LessEqual
	Greater
	GreaterEqual
)

func (op Op) String() string {
	switch op {
	case Equal:
		return "="
	case NotEqual:
		return "<>"
	case Less:
		return "<"
	case LessEqual:
		return "<="
	case Greater:
		return ">"
	case GreaterEqual:
		return ">="
	default:
		return "<unknown cmp op>"
	}
}

// Ordinal reports whether op is one of the four ordered comparisons.
func (op Op) Ordinal() bool {
	return op >= Less && op <= GreaterEqual
}

// Flip returns the operator equivalent to op with its operands
// reversed, e.g. Flip(Less) is Greater.
func (op Op) Flip() Op {
	switch op {
	case Less:
		return Greater
	case LessEqual:
		return GreaterEqual
	case Greater:
		return Less
	case GreaterEqual:
		return LessEqual
	default:
		return op
	}
}
