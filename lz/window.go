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

// Package lz implements the Quantum LZ77 engine: the sliding window buffer
// and the selector-driven synthesis of literal bytes and back-references
// that, together with the entropy package's adaptive models, reconstitute
// the original byte stream.
package lz

// window is a ring buffer of size 2^tableSize bytes, the history LZ77
// matches are copied from. Its initial contents are undefined-but-readable
// (zero-filled here, matching the reference decoder) since a well-formed
// stream never references a position that has not been written yet.
type window struct {
	buf  []byte
	posn int
}

func newWindow(tableSize uint) *window {
	return &window{buf: make([]byte, 1<<tableSize)}
}

func (w *window) size() int {
	return len(w.buf)
}

// putByte writes b at the write cursor and advances it, wrapping modulo
// the window size.
func (w *window) putByte(b byte) {
	w.buf[w.posn] = b
	w.posn = (w.posn + 1) % w.size()
}

// copyMatch copies length bytes starting offset bytes behind the write
// cursor, one byte at a time (never as a block copy): the source can trail
// the destination by less than length when offset < length, so each byte
// written must become visible to the read side before the next byte is
// read. Returns the copied bytes.
func (w *window) copyMatch(offset uint32, length int) []byte {
	out := make([]byte, length)
	size := w.size()
	src := (w.posn - int(offset) + size) % size

	for i := 0; i < length; i++ {
		b := w.buf[src]
		w.putByte(b)
		out[i] = b
		src = (src + 1) % size
	}

	return out
}
