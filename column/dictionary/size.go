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

import "github.com/sneller-labs/strcolumn/compr"

// CompressedBytes estimates the footprint of entries under s2 block
// compression. Dictionaries tend to share long common substrings (paths,
// hostnames, enum-like tags), so this is typically a much tighter memory
// estimate than the raw byte count Dictionary.Bytes reports.
func CompressedBytes(entries []string) int {
	if len(entries) == 0 {
		return 0
	}
	c := compr.Compression("s2")
	var src []byte
	for _, s := range entries {
		src = append(src, s...)
	}
	return len(c.Compress(src, nil))
}
