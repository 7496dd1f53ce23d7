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

// Package stream drives the per-file decompression loop: one bitstream,
// one arithmetic decoder, and one set of nine adaptive models shared across
// every file of a Quantum archive, with a 16-bit marker discarded at every
// file boundary but the last. This is the one synchronous, single-threaded
// entry point into the core (spec.md section 5) — nothing here outlives one
// call to Decompress or DecompressArchive.
package stream

import (
	quantum "github.com/cinematronics/unquantum"
	"github.com/cinematronics/unquantum/archive"
	"github.com/cinematronics/unquantum/bitstream"
	"github.com/cinematronics/unquantum/entropy"
	"github.com/cinematronics/unquantum/lz"
)

// Decompress replays a Quantum compressed payload against the declared
// per-file sizes and returns the concatenation of every file's bytes. The
// coder state and the nine adaptive models are constructed once and persist
// across every file; only a 16-bit marker is consumed between files. listener
// may be nil.
func Decompress(payload []byte, fileSizes []uint32, windowBits uint, listener quantum.Listener) ([]byte, error) {
	if windowBits < quantum.MinTableSize || windowBits > quantum.MaxTableSize {
		return nil, quantum.NewError(quantum.KindMalformedContainer, "invalid table size: %d", windowBits)
	}

	if len(fileSizes) == 0 {
		if listener != nil {
			listener.ProcessEvent(quantum.NewEvent(quantum.EvtDecompressionEnd, -1, 0))
		}

		return []byte{}, nil
	}

	var total int64

	for _, s := range fileSizes {
		total += int64(s)
	}

	br := bitstream.NewReader(payload)
	dec := entropy.NewDecoder(br)
	engine := lz.NewEngine(windowBits, dec, br, listener)

	output := make([]byte, 0, total)

	for k, size := range fileSizes {
		engine.SetFileIndex(k)

		if listener != nil {
			listener.ProcessEvent(quantum.NewEvent(quantum.EvtFileStart, k, int64(size)))
		}

		fileEnd := len(output) + int(size)

		for len(output) < fileEnd {
			produced, err := engine.DecodeUnit(fileEnd - len(output))

			if err != nil {
				return nil, err
			}

			output = append(output, produced...)
		}

		if listener != nil {
			listener.ProcessEvent(quantum.NewEvent(quantum.EvtFileEnd, k, int64(size)))
		}

		if k != len(fileSizes)-1 {
			br.Read(16) // discard the inter-file marker; its value is never validated
		}
	}

	if int64(len(output)) != total {
		return nil, quantum.NewError(quantum.KindSizeMismatch, "decompressed %d bytes, expected %d", len(output), total)
	}

	if listener != nil {
		listener.ProcessEvent(quantum.NewEvent(quantum.EvtDecompressionEnd, -1, total))
	}

	return output, nil
}

// DecompressArchive parses a standalone .Q archive and decompresses its
// entire compressed tail, returning the parsed file table alongside the
// concatenated output bytes (split points are Entries[i].OriginalLen).
func DecompressArchive(buf []byte, listener quantum.Listener) (*archive.Parsed, []byte, error) {
	parsed, err := archive.Parse(buf)

	if err != nil {
		return nil, nil, err
	}

	if listener != nil {
		listener.ProcessEvent(quantum.NewEvent(quantum.EvtArchiveParsed, -1, int64(len(parsed.Entries))))
	}

	sizes := make([]uint32, len(parsed.Entries))

	for i, e := range parsed.Entries {
		sizes[i] = e.OriginalLen
	}

	payload := buf[parsed.CompressedStart:]
	out, err := Decompress(payload, sizes, uint(parsed.Header.TableSize), listener)

	if err != nil {
		return nil, nil, err
	}

	return parsed, out, nil
}

// Split divides a decompressed byte stream into per-file slices according
// to parsed.Entries' declared sizes.
func Split(parsed *archive.Parsed, data []byte) [][]byte {
	out := make([][]byte, len(parsed.Entries))
	off := 0

	for i, e := range parsed.Entries {
		out[i] = data[off : off+int(e.OriginalLen)]
		off += int(e.OriginalLen)
	}

	return out
}
