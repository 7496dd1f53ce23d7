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

package archive

import (
	"encoding/binary"
	"strings"
	"unicode/utf8"

	quantum "github.com/cinematronics/unquantum"
)

// Parsed holds the header, the file table, and the byte offset of the
// first compressed byte — everything the Stream Orchestrator needs to
// start decompression.
type Parsed struct {
	Header          Header
	Entries         []Entry
	CompressedStart int
}

// Parse reads a .Q archive's header and file table from buf. It validates
// the signature and table size but does not touch the compressed payload.
func Parse(buf []byte) (*Parsed, error) {
	if len(buf) < 8 {
		return nil, quantum.NewError(quantum.KindMalformedContainer, "archive too short: %d bytes", len(buf))
	}

	if buf[0] != quantum.Signature[0] || buf[1] != quantum.Signature[1] {
		return nil, quantum.NewError(quantum.KindMalformedContainer, "invalid signature: %02x%02x", buf[0], buf[1])
	}

	h := Header{
		Major:     buf[2],
		Minor:     buf[3],
		NumFiles:  binary.LittleEndian.Uint16(buf[4:6]),
		TableSize: buf[6],
		CompFlags: buf[7],
	}

	if h.TableSize < quantum.MinTableSize || h.TableSize > quantum.MaxTableSize {
		return nil, quantum.NewError(quantum.KindMalformedContainer, "invalid table size: %d", h.TableSize)
	}

	r := &cursor{buf: buf, pos: 8}
	entries := make([]Entry, 0, h.NumFiles)

	for i := uint16(0); i < h.NumFiles; i++ {
		var e Entry
		var err error

		if e.Name, err = r.readString(); err != nil {
			return nil, err
		}

		if e.Comment, err = r.readString(); err != nil {
			return nil, err
		}

		if e.OriginalLen, err = r.readUint32(); err != nil {
			return nil, err
		}

		if e.DOSTime, err = r.readUint16(); err != nil {
			return nil, err
		}

		if e.DOSDate, err = r.readUint16(); err != nil {
			return nil, err
		}

		entries = append(entries, e)
	}

	return &Parsed{Header: h, Entries: entries, CompressedStart: r.pos}, nil
}

// cursor walks buf sequentially, reporting a malformed-container error on
// any read that would run past the end of the buffer.
type cursor struct {
	buf []byte
	pos int
}

func (c *cursor) need(n int) error {
	if c.pos+n > len(c.buf) {
		return quantum.NewError(quantum.KindMalformedContainer, "truncated header at offset %d", c.pos)
	}

	return nil
}

func (c *cursor) readUint16() (uint16, error) {
	if err := c.need(2); err != nil {
		return 0, err
	}

	v := binary.LittleEndian.Uint16(c.buf[c.pos : c.pos+2])
	c.pos += 2
	return v, nil
}

func (c *cursor) readUint32() (uint32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}

	v := binary.LittleEndian.Uint32(c.buf[c.pos : c.pos+4])
	c.pos += 4
	return v, nil
}

// readString reads a variable-length-prefixed string: one length byte if
// the high bit is clear (length < 128), otherwise a two-byte big-endian
// length whose top bit is the continuation marker and whose low 15 bits
// are the length.
func (c *cursor) readString() (string, error) {
	if err := c.need(1); err != nil {
		return "", err
	}

	first := c.buf[c.pos]
	c.pos++

	var length int

	if first&0x80 == 0 {
		length = int(first)
	} else {
		if err := c.need(1); err != nil {
			return "", err
		}

		second := c.buf[c.pos]
		c.pos++
		length = (int(first&0x7F) << 8) | int(second)
	}

	if err := c.need(length); err != nil {
		return "", err
	}

	s := string(c.buf[c.pos : c.pos+length])
	c.pos += length

	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "�")
	}

	return s, nil
}
