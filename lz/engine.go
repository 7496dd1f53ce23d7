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

package lz

import (
	quantum "github.com/cinematronics/unquantum"
	"github.com/cinematronics/unquantum/entropy"
)

// bitReader is the raw-bit source needed for position/length extra bits.
type bitReader interface {
	ReadMany(n uint) uint32
}

// Engine drives the nine adaptive models (M0..M3 literal buckets, M4/M5
// short-match position, M6/M6len general match position/length, M7 top
// selector) and the sliding window that together replay one Quantum
// bitstream. The same Engine, its models, and its Decoder persist across
// every file of a multi-file archive: the window carries over too, and
// nothing about the Engine is reset at a file boundary (spec.md 4.5).
type Engine struct {
	win        *window
	dec        *entropy.Decoder
	br         bitReader
	literals   [4]*entropy.Model // M0..M3
	m4, m5, m6 *entropy.Model
	m6len      *entropy.Model
	selector   *entropy.Model // M7
	listener   quantum.Listener
	fileIndex  int
}

// NewEngine builds the LZ77 engine for an archive with the given window
// exponent (table size), decoding through dec and reading raw extra bits
// through br. listener may be nil.
func NewEngine(windowBits uint, dec *entropy.Decoder, br bitReader, listener quantum.Listener) *Engine {
	e := &Engine{
		win:      newWindow(windowBits),
		dec:      dec,
		br:       br,
		listener: listener,
	}

	for i := range e.literals {
		e.literals[i] = entropy.NewModel(i*64, 64)
	}

	e.m4 = entropy.NewModel(0, quantum.M4SlotCount(windowBits))
	e.m5 = entropy.NewModel(0, quantum.M5SlotCount(windowBits))
	e.m6 = entropy.NewModel(0, quantum.PositionSlotCount(windowBits))
	e.m6len = entropy.NewModel(0, quantum.NumLengthSlots)
	e.selector = entropy.NewModel(0, 7)

	return e
}

// SetFileIndex tells the Engine which file's selectors are currently being
// decoded, purely for Event reporting.
func (e *Engine) SetFileIndex(i int) {
	e.fileIndex = i
}

// DecodeUnit decodes one top-level selector and everything it implies (a
// literal byte, or a match copy), trimming the produced bytes to at most
// remaining — the number of bytes still owed to the current file. It
// returns the produced bytes.
func (e *Engine) DecodeUnit(remaining int) ([]byte, error) {
	sel, err := e.decode(e.selector)

	if err != nil {
		return nil, err
	}

	switch {
	case sel >= 0 && sel <= 3:
		lit, err := e.decode(e.literals[sel])

		if err != nil {
			return nil, err
		}

		e.win.putByte(byte(lit))
		return []byte{byte(lit)}, nil

	case sel == 4:
		return e.decodeShortMatch(e.m4, 3, remaining)

	case sel == 5:
		return e.decodeShortMatch(e.m5, 4, remaining)

	case sel == 6:
		return e.decodeGeneralMatch(remaining)

	default:
		return nil, quantum.NewError(quantum.KindCorruptBitstream, "invalid selector %d", sel)
	}
}

func (e *Engine) decodeShortMatch(posModel *entropy.Model, length, remaining int) ([]byte, error) {
	offset, err := e.decodePosition(posModel)

	if err != nil {
		return nil, err
	}

	return e.emitMatch(offset, length, remaining), nil
}

func (e *Engine) decodeGeneralMatch(remaining int) ([]byte, error) {
	q, err := e.decode(e.m6len)

	if err != nil {
		return nil, err
	}

	if q >= quantum.NumLengthSlots {
		return nil, quantum.NewError(quantum.KindCorruptBitstream, "length slot %d out of range", q)
	}

	extra := e.br.ReadMany(quantum.LengthExtra[q])
	length := int(quantum.LengthBase[q]) + int(extra) + 5

	offset, err := e.decodePosition(e.m6)

	if err != nil {
		return nil, err
	}

	return e.emitMatch(offset, length, remaining), nil
}

// decodePosition decodes a position slot from model and converts it to a
// window offset via the shared POSITION_BASE/EXTRA_BITS tables.
func (e *Engine) decodePosition(model *entropy.Model) (uint32, error) {
	p, err := e.decode(model)

	if err != nil {
		return 0, err
	}

	if p >= quantum.NumPositionSlots {
		return 0, quantum.NewError(quantum.KindCorruptBitstream, "position slot %d out of range", p)
	}

	extra := e.br.ReadMany(quantum.ExtraBits[p])
	return quantum.PositionBase[p] + extra + 1, nil
}

func (e *Engine) emitMatch(offset uint32, length, remaining int) []byte {
	if length > remaining {
		length = remaining
	}

	return e.win.copyMatch(offset, length)
}

func (e *Engine) decode(m *entropy.Model) (int, error) {
	sym, rescaled, err := e.dec.DecodeSymbol(m)

	if err != nil {
		return 0, quantum.NewError(quantum.KindCorruptBitstream, "%w", err)
	}

	if rescaled && e.listener != nil {
		e.listener.ProcessEvent(quantum.NewEventFromString(quantum.EvtRescale, e.fileIndex, "model rescaled"))
	}

	return sym, nil
}
