/*
Copyright 2011-2017 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package archive parses the standalone Quantum (.Q) container: the fixed
// header, the variable-length file table, and the DOS timestamps each
// entry carries. It is the minimal, read-only feed-in to the decompression
// core in package stream; it never touches the compressed payload itself.
package archive

import "time"

// Header holds the fixed fields of a .Q archive, immutable once parsed.
type Header struct {
	Major, Minor byte
	NumFiles     uint16
	TableSize    byte // window exponent
	CompFlags    byte
}

// Entry describes one file stored in the archive. Populated at parse time
// and never modified afterward.
type Entry struct {
	Name        string
	Comment     string
	OriginalLen uint32
	DOSTime     uint16
	DOSDate     uint16
}

// ModTime decodes the entry's packed DOS date/time fields into a time.Time,
// per spec.md section 6. Seconds are stored with 2-second resolution.
func (e Entry) ModTime() time.Time {
	day := int(e.DOSDate & 0x1F)
	month := int((e.DOSDate >> 5) & 0x0F)
	year := int((e.DOSDate>>9)&0x7F) + 1980

	second := int(e.DOSTime&0x1F) * 2
	minute := int((e.DOSTime >> 5) & 0x3F)
	hour := int((e.DOSTime >> 11) & 0x1F)

	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
}
